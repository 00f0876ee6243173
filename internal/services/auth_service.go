package services

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/patinhas/adoption-api/internal/authctx"
	"github.com/patinhas/adoption-api/internal/config"
	"github.com/patinhas/adoption-api/internal/dto"
	"github.com/patinhas/adoption-api/internal/mailer"
	"github.com/patinhas/adoption-api/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const resetPurpose = "password_reset"

type AuthService struct {
	db     *gorm.DB
	cfg    *config.Config
	mailer mailer.Mailer
	admins map[string]bool
}

func NewAuthService(db *gorm.DB, cfg *config.Config, m mailer.Mailer) *AuthService {
	admins := make(map[string]bool)
	for _, email := range cfg.AdminEmailList() {
		admins[email] = true
	}
	return &AuthService{db: db, cfg: cfg, mailer: m, admins: admins}
}

func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	q := s.db.WithContext(ctx)
	if req.Email != "" {
		q = q.Where("email = ?", strings.ToLower(strings.TrimSpace(req.Email)))
	} else {
		q = q.Where("login = ?", strings.TrimSpace(req.Login))
	}

	var user models.User
	if err := q.First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, ErrInactiveUser
	}

	return s.generateTokenPair(ctx, &user)
}

func (s *AuthService) Refresh(ctx context.Context, req *dto.RefreshRequest) (*dto.AuthResponse, error) {
	db := s.db.WithContext(ctx)
	tokenHash := hashToken(req.RefreshToken)

	var stored models.RefreshToken
	if err := db.Where("token_hash = ? AND revoked = false", tokenHash).First(&stored).Error; err != nil {
		return nil, notFound(err, ErrInvalidToken)
	}

	if err := db.Model(&stored).Update("revoked", true).Error; err != nil {
		return nil, fmt.Errorf("revoke refresh token: %w", err)
	}
	if time.Now().After(stored.ExpiresAt) {
		return nil, ErrInvalidToken
	}

	var user models.User
	if err := db.First(&user, "id = ?", stored.UserID).Error; err != nil {
		return nil, notFound(err, ErrInvalidToken)
	}
	if !user.IsActive {
		return nil, ErrInactiveUser
	}

	return s.generateTokenPair(ctx, &user)
}

func (s *AuthService) Logout(ctx context.Context, userID uuid.UUID, req *dto.LogoutRequest) error {
	return s.db.WithContext(ctx).Model(&models.RefreshToken{}).
		Where("token_hash = ? AND user_id = ?", hashToken(req.RefreshToken), userID).
		Update("revoked", true).Error
}

// Identify resolves the subject of a verified access token into the caller's
// identity. The user must still exist and be active; the admin flag is read
// from the database or the ADMIN_EMAILS bootstrap list.
func (s *AuthService) Identify(ctx context.Context, userID uuid.UUID) (authctx.Identity, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Select("id", "email", "is_admin", "is_active").First(&user, "id = ?", userID).Error; err != nil {
		return authctx.Identity{}, notFound(err, ErrUserNotFound)
	}
	if !user.IsActive {
		return authctx.Identity{}, ErrInactiveUser
	}
	return authctx.Identity{
		UserID:  user.ID,
		Email:   user.Email,
		IsAdmin: user.IsAdmin || s.admins[strings.ToLower(user.Email)],
	}, nil
}

// RequestPasswordReset mails a reset link when the email belongs to a user.
// Unknown emails succeed silently so the endpoint does not reveal which accounts exist.
func (s *AuthService) RequestPasswordReset(ctx context.Context, req *dto.PasswordResetRequest) error {
	var user models.User
	err := s.db.WithContext(ctx).Where("email = ?", strings.ToLower(strings.TrimSpace(req.Email))).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		slog.Info("password reset requested for unknown email")
		return nil
	}
	if err != nil {
		return err
	}

	token, err := s.resetToken(&user)
	if err != nil {
		return err
	}

	msg, err := mailer.PasswordReset(user.Email, mailer.PasswordResetData{
		Name:      user.Name,
		Link:      s.cfg.FrontendURL + "/reset-password/" + token,
		ExpiresIn: s.cfg.JWTResetExpiry.String(),
	})
	if err != nil {
		return err
	}
	if err := s.mailer.Send(ctx, msg); err != nil {
		return fmt.Errorf("send password reset: %w", err)
	}
	slog.Info("password reset mail sent", "user_id", user.ID.String())
	return nil
}

// ResetPassword sets a new password from a reset token and revokes every
// refresh token of the user. A token stops working once the password changes.
func (s *AuthService) ResetPassword(ctx context.Context, rawToken string, req *dto.PasswordResetConfirmRequest) error {
	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(rawToken, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(s.cfg.JWTResetSecret), nil
	})
	if err != nil || !token.Valid {
		return ErrInvalidToken
	}
	if purpose, _ := claims["purpose"].(string); purpose != resetPurpose {
		return ErrInvalidToken
	}
	sub, _ := claims["sub"].(string)
	userID, err := uuid.Parse(sub)
	if err != nil {
		return ErrInvalidToken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, "id = ?", userID).Error; err != nil {
			return notFound(err, ErrInvalidToken)
		}
		if fp, _ := claims["pwd"].(string); fp != passwordFingerprint(user.Password) {
			return ErrInvalidToken
		}
		if err := tx.Model(&user).Update("password", string(hash)).Error; err != nil {
			return err
		}
		return tx.Model(&models.RefreshToken{}).Where("user_id = ?", user.ID).Update("revoked", true).Error
	})
}

// PurgeRefreshTokens deletes expired and revoked refresh tokens.
func (s *AuthService) PurgeRefreshTokens(ctx context.Context) (int64, error) {
	res := s.db.WithContext(ctx).Where("expires_at < ? OR revoked = true", time.Now()).Delete(&models.RefreshToken{})
	return res.RowsAffected, res.Error
}

func (s *AuthService) resetToken(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":     user.ID.String(),
		"purpose": resetPurpose,
		"pwd":     passwordFingerprint(user.Password),
		"iat":     time.Now().Unix(),
		"exp":     time.Now().Add(s.cfg.JWTResetExpiry).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.JWTResetSecret))
}

func (s *AuthService) generateTokenPair(ctx context.Context, user *models.User) (*dto.AuthResponse, error) {
	accessToken, err := s.generateAccessToken(user)
	if err != nil {
		return nil, err
	}

	refreshToken, err := s.generateRefreshToken(ctx, user)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    int64(s.cfg.JWTAccessExpiry.Seconds()),
		User:         user,
	}, nil
}

func (s *AuthService) generateAccessToken(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":      user.ID.String(),
		"email":    user.Email,
		"is_admin": user.IsAdmin,
		"iat":      time.Now().Unix(),
		"exp":      time.Now().Add(s.cfg.JWTAccessExpiry).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

func (s *AuthService) generateRefreshToken(ctx context.Context, user *models.User) (string, error) {
	rawBytes := make([]byte, 32)
	if _, err := rand.Read(rawBytes); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}

	rawToken := base64.URLEncoding.EncodeToString(rawBytes)
	record := models.RefreshToken{
		ID:        uuid.New(),
		UserID:    user.ID,
		TokenHash: hashToken(rawToken),
		ExpiresAt: time.Now().Add(s.cfg.JWTRefreshExpiry),
	}

	if err := s.db.WithContext(ctx).Create(&record).Error; err != nil {
		return "", fmt.Errorf("failed to store refresh token: %w", err)
	}

	return rawToken, nil
}

func hashToken(token string) string {
	h := sha256.Sum256([]byte(token))
	return fmt.Sprintf("%x", h)
}

func passwordFingerprint(passwordHash string) string {
	return hashToken(passwordHash)[:16]
}
