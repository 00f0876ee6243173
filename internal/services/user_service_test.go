package services

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/patinhas/adoption-api/internal/authctx"
	"github.com/patinhas/adoption-api/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserDeleteResyncsAdoptedPets(t *testing.T) {
	db, mock := newMockDB(t)
	c, mr := newTestCache(t)
	svc := NewUserService(db, c)

	userID, adoptedPet, donatedPet, unrelated := uuid.New(), uuid.New(), uuid.New(), uuid.New()
	for _, id := range []uuid.UUID{adoptedPet, donatedPet, unrelated} {
		require.NoError(t, mr.Set(petCacheKey(id), "{}"))
	}

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT DISTINCT "pet_id" FROM "adoptions" WHERE user_id = \$1 AND status = \$2`).
		WithArgs(userID, "approved").
		WillReturnRows(sqlmock.NewRows([]string{"pet_id"}).AddRow(adoptedPet))
	mock.ExpectQuery(`SELECT DISTINCT "pet_id" FROM "donations" WHERE user_id = \$1`).
		WithArgs(userID).
		WillReturnRows(sqlmock.NewRows([]string{"pet_id"}).AddRow(donatedPet))
	mock.ExpectExec(`DELETE FROM "users" WHERE id = \$1`).
		WithArgs(userID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "adoptions" WHERE pet_id = \$1 AND status = \$2`).
		WithArgs(adoptedPet, "approved").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec(`UPDATE "pets" SET "is_adopted"=\$1`).
		WithArgs(false, sqlmock.AnyArg(), adoptedPet).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, svc.Delete(context.Background(), userID))

	assert.False(t, mr.Exists(petCacheKey(adoptedPet)))
	assert.False(t, mr.Exists(petCacheKey(donatedPet)))
	assert.True(t, mr.Exists(petCacheKey(unrelated)))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserDeleteMissingRollsBack(t *testing.T) {
	db, mock := newMockDB(t)
	c, _ := newTestCache(t)
	svc := NewUserService(db, c)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT DISTINCT "pet_id" FROM "adoptions"`).WillReturnRows(sqlmock.NewRows([]string{"pet_id"}))
	mock.ExpectQuery(`SELECT DISTINCT "pet_id" FROM "donations"`).WillReturnRows(sqlmock.NewRows([]string{"pet_id"}))
	mock.ExpectExec(`DELETE FROM "users"`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := svc.Delete(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrUserNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRenameDropsDonatedPetViews(t *testing.T) {
	db, mock := newMockDB(t)
	c, mr := newTestCache(t)
	svc := NewUserService(db, c)

	userID, donatedPet := uuid.New(), uuid.New()
	require.NoError(t, mr.Set(petCacheKey(donatedPet), "{}"))

	userRow := func(name string) *sqlmock.Rows {
		return sqlmock.NewRows([]string{"id", "name", "email", "login"}).AddRow(userID, name, "ana@example.com", "ana")
	}
	noAddresses := func() *sqlmock.Rows { return sqlmock.NewRows([]string{"id", "user_id"}) }

	mock.ExpectQuery(`SELECT \* FROM "users"`).WillReturnRows(userRow("Ana"))
	mock.ExpectQuery(`SELECT \* FROM "addresses"`).WillReturnRows(noAddresses())
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "users" SET "name"=\$1`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	mock.ExpectQuery(`SELECT DISTINCT "pet_id" FROM "donations" WHERE user_id = \$1`).
		WithArgs(userID).
		WillReturnRows(sqlmock.NewRows([]string{"pet_id"}).AddRow(donatedPet))
	mock.ExpectQuery(`SELECT \* FROM "users"`).WillReturnRows(userRow("Ana Souza"))
	mock.ExpectQuery(`SELECT \* FROM "addresses"`).WillReturnRows(noAddresses())

	user, err := svc.Update(context.Background(), authctx.Identity{UserID: userID}, userID, &dto.UpdateUserRequest{Name: strPtr("Ana Souza")})
	require.NoError(t, err)
	assert.Equal(t, "Ana Souza", user.Name)
	assert.False(t, mr.Exists(petCacheKey(donatedPet)))
	assert.NoError(t, mock.ExpectationsWereMet())
}
