package services

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeleteTypeDropsCachedTypes(t *testing.T) {
	db, mock := newMockDB(t)
	c, mr := newTestCache(t)
	svc := NewQuestionService(db, c, time.Minute)
	typeID := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "question_types" ORDER BY type_name ASC`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "type_name"}).AddRow(typeID, "Moradia"))
	types, err := svc.ListTypes(context.Background())
	require.NoError(t, err)
	require.Len(t, types, 1)
	assert.True(t, mr.Exists(questionTypesCacheKey))

	// Questions of the type go with it through the type_id cascade, so the
	// service issues a single delete.
	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "question_types" WHERE id = \$1`).
		WithArgs(typeID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, svc.DeleteType(context.Background(), typeID))
	assert.False(t, mr.Exists(questionTypesCacheKey))

	mock.ExpectQuery(`SELECT \* FROM "question_types" ORDER BY type_name ASC`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "type_name"}))
	types, err = svc.ListTypes(context.Background())
	require.NoError(t, err)
	assert.Empty(t, types)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteTypeMissing(t *testing.T) {
	db, mock := newMockDB(t)
	c, mr := newTestCache(t)
	svc := NewQuestionService(db, c, time.Minute)
	require.NoError(t, mr.Set(questionTypesCacheKey, "[]"))

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "question_types"`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	err := svc.DeleteType(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrQuestionTypeNotFound)
	assert.True(t, mr.Exists(questionTypesCacheKey))
	assert.NoError(t, mock.ExpectationsWereMet())
}
