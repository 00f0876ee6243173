package services

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/patinhas/adoption-api/internal/config"
	"github.com/patinhas/adoption-api/internal/dto"
	"github.com/patinhas/adoption-api/internal/mailer"
	"github.com/patinhas/adoption-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingMailer struct {
	sent []mailer.Message
}

func (m *recordingMailer) Send(_ context.Context, msg mailer.Message) error {
	m.sent = append(m.sent, msg)
	return nil
}

func testAuthConfig() *config.Config {
	return &config.Config{
		JWTSecret:        "access-secret",
		JWTResetSecret:   "reset-secret",
		JWTAccessExpiry:  15 * time.Minute,
		JWTRefreshExpiry: time.Hour,
		JWTResetExpiry:   time.Hour,
		FrontendURL:      "https://patinhas.example",
		AdminEmails:      "root@patinhas.example",
	}
}

func TestIdentifyAdminBootstrapList(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewAuthService(db, testAuthConfig(), &recordingMailer{})
	id := uuid.New()

	mock.ExpectQuery(`SELECT "id","email","is_admin","is_active" FROM "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "is_admin", "is_active"}).
			AddRow(id, "Root@Patinhas.example", false, true))

	identity, err := svc.Identify(context.Background(), id)
	require.NoError(t, err)
	assert.True(t, identity.IsAdmin)
	assert.Equal(t, id, identity.UserID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIdentifyInactiveUser(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewAuthService(db, testAuthConfig(), &recordingMailer{})
	id := uuid.New()

	mock.ExpectQuery(`FROM "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "is_admin", "is_active"}).
			AddRow(id, "ana@patinhas.example", false, false))

	_, err := svc.Identify(context.Background(), id)
	assert.ErrorIs(t, err, ErrInactiveUser)
}

func TestRequestPasswordResetUnknownEmail(t *testing.T) {
	db, mock := newMockDB(t)
	m := &recordingMailer{}
	svc := NewAuthService(db, testAuthConfig(), m)

	mock.ExpectQuery(`SELECT \* FROM "users"`).WillReturnRows(sqlmock.NewRows([]string{"id"}))

	err := svc.RequestPasswordReset(context.Background(), &dto.PasswordResetRequest{Email: "ghost@patinhas.example"})
	require.NoError(t, err)
	assert.Empty(t, m.sent)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRequestPasswordResetSendsLink(t *testing.T) {
	db, mock := newMockDB(t)
	m := &recordingMailer{}
	svc := NewAuthService(db, testAuthConfig(), m)

	mock.ExpectQuery(`SELECT \* FROM "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "password"}).
			AddRow(uuid.New(), "Ana", "ana@patinhas.example", "$2a$10$hash"))

	require.NoError(t, svc.RequestPasswordReset(context.Background(), &dto.PasswordResetRequest{Email: "ANA@patinhas.example"}))
	require.Len(t, m.sent, 1)
	assert.Equal(t, "ana@patinhas.example", m.sent[0].To)
	assert.Contains(t, m.sent[0].HTML, "https://patinhas.example/reset-password/")
}

func TestResetPasswordRejectsAccessToken(t *testing.T) {
	db, mock := newMockDB(t)
	cfg := testAuthConfig()
	cfg.JWTResetSecret = cfg.JWTSecret
	svc := NewAuthService(db, cfg, &recordingMailer{})

	access, err := svc.generateAccessToken(&models.User{ID: uuid.New(), Email: "ana@patinhas.example"})
	require.NoError(t, err)

	err = svc.ResetPassword(context.Background(), access, &dto.PasswordResetConfirmRequest{Password: "nova-senha-1", PasswordConfirmation: "nova-senha-1"})
	assert.ErrorIs(t, err, ErrInvalidToken)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResetPasswordRejectsExpiredToken(t *testing.T) {
	db, _ := newMockDB(t)
	svc := NewAuthService(db, testAuthConfig(), &recordingMailer{})

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":     uuid.NewString(),
		"purpose": resetPurpose,
		"exp":     time.Now().Add(-time.Minute).Unix(),
	})
	raw, err := token.SignedString([]byte("reset-secret"))
	require.NoError(t, err)

	err = svc.ResetPassword(context.Background(), raw, &dto.PasswordResetConfirmRequest{Password: "nova-senha-1", PasswordConfirmation: "nova-senha-1"})
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestResetPasswordTokenIsSingleUse(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewAuthService(db, testAuthConfig(), &recordingMailer{})

	user := &models.User{ID: uuid.New(), Email: "ana@patinhas.example", Password: "$2a$10$old"}
	raw, err := svc.resetToken(user)
	require.NoError(t, err)

	// The password already changed since the link was issued.
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "password"}).AddRow(user.ID, user.Email, "$2a$10$new"))
	mock.ExpectRollback()

	err = svc.ResetPassword(context.Background(), raw, &dto.PasswordResetConfirmRequest{Password: "nova-senha-1", PasswordConfirmation: "nova-senha-1"})
	assert.ErrorIs(t, err, ErrInvalidToken)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHashTokenIsStable(t *testing.T) {
	assert.Equal(t, hashToken("abc"), hashToken("abc"))
	assert.NotEqual(t, hashToken("abc"), hashToken("abd"))
	assert.Len(t, passwordFingerprint("$2a$10$hash"), 16)
}
