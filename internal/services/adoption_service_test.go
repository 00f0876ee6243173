package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/patinhas/adoption-api/internal/authctx"
	"github.com/patinhas/adoption-api/internal/cache"
	"github.com/patinhas/adoption-api/internal/dto"
	"github.com/patinhas/adoption-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestInsertAdoptionWithAnswers(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewAdoptionService(db, cache.Noop{})

	adoption := models.Adoption{ID: uuid.New(), UserID: uuid.New(), PetID: uuid.New(), Status: models.StatusPending}
	answers := []models.Answer{
		{ID: uuid.New(), QuestionID: uuid.New(), AnswerContent: strPtr("Sim")},
		{ID: uuid.New(), QuestionID: uuid.New()},
	}

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "adoptions"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(adoption.ID))
	mock.ExpectQuery(`INSERT INTO "answers"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(answers[0].ID).AddRow(answers[1].ID))
	mock.ExpectCommit()

	require.NoError(t, svc.insert(context.Background(), &adoption, answers))
	for _, a := range answers {
		assert.Equal(t, adoption.ID, a.AdoptionID)
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInsertAdoptionRollsBackWhenAnswersFail(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewAdoptionService(db, cache.Noop{})

	adoption := models.Adoption{ID: uuid.New(), UserID: uuid.New(), PetID: uuid.New(), Status: models.StatusPending}
	answers := []models.Answer{{ID: uuid.New(), QuestionID: uuid.New()}}

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "adoptions"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(adoption.ID))
	mock.ExpectQuery(`INSERT INTO "answers"`).WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	err := svc.insert(context.Background(), &adoption, answers)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "insert answers")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInsertAdoptionWithoutAnswers(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewAdoptionService(db, cache.Noop{})

	adoption := models.Adoption{ID: uuid.New(), UserID: uuid.New(), PetID: uuid.New(), Status: models.StatusPending}

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "adoptions"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(adoption.ID))
	mock.ExpectCommit()

	require.NoError(t, svc.insert(context.Background(), &adoption, nil))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateAdoptionRejectsMalformedPetID(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewAdoptionService(db, cache.Noop{})

	_, err := svc.Create(context.Background(), uuid.New(), &dto.CreateAdoptionRequest{PetID: "not-a-uuid"})

	var verr *dto.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "pet_id", verr.Errors[0].Field)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateAdoptionUnknownPet(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewAdoptionService(db, cache.Noop{})

	mock.ExpectQuery(`SELECT count\(\*\) FROM "pets"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	_, err := svc.Create(context.Background(), uuid.New(), &dto.CreateAdoptionRequest{PetID: uuid.NewString()})
	assert.ErrorIs(t, err, ErrPetNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateAdoptionUnknownQuestion(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewAdoptionService(db, cache.Noop{})

	known := uuid.New()
	req := &dto.CreateAdoptionRequest{
		PetID: uuid.NewString(),
		Answers: []dto.AnswerInput{
			{QuestionID: known.String(), AnswerContent: strPtr("Tenho quintal")},
			{QuestionID: uuid.NewString(), AnswerContent: strPtr("Não")},
		},
	}

	mock.ExpectQuery(`SELECT count\(\*\) FROM "pets"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(`SELECT "id" FROM "questions"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(known))

	_, err := svc.Create(context.Background(), uuid.New(), req)

	var verr *dto.ValidationError
	require.ErrorAs(t, err, &verr)
	require.Len(t, verr.Errors, 1)
	assert.Equal(t, "answers[1].question_id", verr.Errors[0].Field)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateStatusRejectsUnknownStatusBeforeQuerying(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewAdoptionService(db, cache.Noop{})

	_, err := svc.UpdateStatus(context.Background(), uuid.New(), "invalido")
	assert.ErrorIs(t, err, ErrInvalidStatus)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateStatusMissingAdoption(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewAdoptionService(db, cache.Noop{})

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "adoptions" .* FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectRollback()

	_, err := svc.UpdateStatus(context.Background(), uuid.New(), string(models.StatusApproved))
	assert.ErrorIs(t, err, ErrAdoptionNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteAdoptionOwnership(t *testing.T) {
	owner := uuid.New()
	id := uuid.New()

	tests := []struct {
		name    string
		actor   authctx.Identity
		rows    *sqlmock.Rows
		wantErr error
	}{
		{
			name:    "missing adoption is reported before permissions",
			actor:   authctx.Identity{UserID: uuid.New()},
			rows:    sqlmock.NewRows([]string{"id", "user_id", "pet_id", "status"}),
			wantErr: ErrAdoptionNotFound,
		},
		{
			name:    "other user is forbidden",
			actor:   authctx.Identity{UserID: uuid.New()},
			rows:    sqlmock.NewRows([]string{"id", "user_id", "pet_id", "status"}).AddRow(id, owner, uuid.New(), "pending"),
			wantErr: ErrForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newMockDB(t)
			svc := NewAdoptionService(db, cache.Noop{})

			mock.ExpectQuery(`SELECT "id","user_id","pet_id","status" FROM "adoptions"`).WillReturnRows(tt.rows)

			err := svc.Delete(context.Background(), tt.actor, id)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestParseAnswers(t *testing.T) {
	qid := uuid.New()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	answers, err := parseAnswers([]dto.AnswerInput{{QuestionID: qid.String()}, {QuestionID: uuid.NewString()}}, now)
	require.NoError(t, err)
	require.Len(t, answers, 2)
	assert.Equal(t, qid, answers[0].QuestionID)
	assert.NotEqual(t, uuid.Nil, answers[0].ID)
	assert.Equal(t, now, answers[0].CreatedAt)
	assert.True(t, answers[1].CreatedAt.After(answers[0].CreatedAt), "request order must survive a batch insert")

	_, err = parseAnswers([]dto.AnswerInput{{QuestionID: qid.String()}, {QuestionID: "x"}}, now)
	var verr *dto.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "answers[1].question_id", verr.Errors[0].Field)
}

var adoptionColumns = []string{"id", "user_id", "pet_id", "status", "acceptance_date"}

func TestUpdateStatusSideEffects(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	earlier := now.Add(-48 * time.Hour)

	tests := []struct {
		name           string
		from           models.AdoptionStatus
		fromAcceptance any
		to             models.AdoptionStatus
		wantAcceptance any
		approvedLeft   int64 // approved adoptions for the pet after the update; -1 skips the resync
		wantAdopted    bool
	}{
		{name: "approve stamps acceptance and adopts the pet", from: models.StatusPending, to: models.StatusApproved, wantAcceptance: now, approvedLeft: 1, wantAdopted: true},
		{name: "leaving approved clears acceptance and frees the pet", from: models.StatusApproved, fromAcceptance: earlier, to: models.StatusRejected, wantAcceptance: nil, approvedLeft: 0, wantAdopted: false},
		{name: "leaving approved keeps the pet adopted by another request", from: models.StatusApproved, fromAcceptance: earlier, to: models.StatusCancelled, wantAcceptance: nil, approvedLeft: 1, wantAdopted: true},
		{name: "pending to rejected leaves the pet alone", from: models.StatusPending, to: models.StatusRejected, wantAcceptance: nil, approvedLeft: -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newMockDB(t)
			svc := NewAdoptionService(db, cache.Noop{})
			svc.now = func() time.Time { return now }

			id, owner, petID := uuid.New(), uuid.New(), uuid.New()

			mock.ExpectBegin()
			mock.ExpectQuery(`SELECT \* FROM "adoptions" WHERE id = \$1 .*FOR UPDATE`).
				WillReturnRows(sqlmock.NewRows(adoptionColumns).AddRow(id, owner, petID, string(tt.from), tt.fromAcceptance))
			mock.ExpectExec(`UPDATE "adoptions" SET "acceptance_date"=\$1,"status"=\$2,"updated_at"=\$3 WHERE id = \$4`).
				WithArgs(tt.wantAcceptance, string(tt.to), sqlmock.AnyArg(), id).
				WillReturnResult(sqlmock.NewResult(0, 1))
			if tt.approvedLeft >= 0 {
				mock.ExpectQuery(`SELECT count\(\*\) FROM "adoptions" WHERE pet_id = \$1 AND status = \$2`).
					WithArgs(petID, "approved").
					WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(tt.approvedLeft))
				mock.ExpectExec(`UPDATE "pets" SET "is_adopted"=\$1`).
					WithArgs(tt.wantAdopted, sqlmock.AnyArg(), petID).
					WillReturnResult(sqlmock.NewResult(0, 1))
			}
			mock.ExpectCommit()
			mock.ExpectQuery(`SELECT \* FROM "adoptions" WHERE id = \$1`).WillReturnError(errors.New("connection reset"))

			adoption, err := svc.UpdateStatus(context.Background(), id, string(tt.to))
			require.NoError(t, err)
			assert.Equal(t, tt.to, adoption.Status)
			if tt.wantAcceptance == nil {
				assert.Nil(t, adoption.AcceptanceDate)
			} else {
				require.NotNil(t, adoption.AcceptanceDate)
				assert.Equal(t, now, *adoption.AcceptanceDate)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUpdateStatusReturnsCommittedRowWhenRereadFails(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewAdoptionService(db, cache.Noop{})

	id, owner, petID := uuid.New(), uuid.New(), uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "adoptions" .*FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows(adoptionColumns).AddRow(id, owner, petID, "pending", nil))
	mock.ExpectExec(`UPDATE "adoptions"`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	mock.ExpectQuery(`SELECT \* FROM "adoptions" WHERE id = \$1`).WillReturnError(errors.New("connection reset"))

	adoption, err := svc.UpdateStatus(context.Background(), id, string(models.StatusCancelled))
	require.NoError(t, err, "the status change is committed and must not surface as a failure")
	assert.Equal(t, id, adoption.ID)
	assert.Equal(t, owner, adoption.UserID)
	assert.Equal(t, models.StatusCancelled, adoption.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateForUserChangesStatusAndUpsertsAnswers(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewAdoptionService(db, cache.Noop{})
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	id, owner, petID := uuid.New(), uuid.New(), uuid.New()
	answered, fresh := uuid.New(), uuid.New()
	existingAnswer, newAnswer := uuid.New(), uuid.New()

	req := &dto.UpdateAdoptionRequest{
		Status: strPtr(string(models.StatusCancelled)),
		Answers: []dto.AnswerInput{
			{QuestionID: answered.String(), AnswerContent: strPtr("Sim, tenho quintal")},
			{QuestionID: fresh.String(), AnswerContent: strPtr("Dois gatos")},
		},
	}

	mock.ExpectQuery(`SELECT "id" FROM "questions" WHERE id IN \(\$1,\$2\)`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(answered).AddRow(fresh))
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "adoptions" WHERE .*user_id = \$\d.*FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows(adoptionColumns).AddRow(id, owner, petID, "pending", nil))
	mock.ExpectExec(`UPDATE "adoptions" SET "acceptance_date"=\$1,"status"=\$2`).
		WithArgs(nil, "cancelled", sqlmock.AnyArg(), id).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT \* FROM "answers" WHERE adoption_id = \$1 AND question_id = \$2`).
		WithArgs(id, answered, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "adoption_id", "question_id", "answer_content"}).AddRow(existingAnswer, id, answered, "Não"))
	mock.ExpectExec(`UPDATE "answers" SET "answer_content"=\$1,"updated_at"=\$2 WHERE "answers"."id" = \$3`).
		WithArgs("Sim, tenho quintal", sqlmock.AnyArg(), existingAnswer).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT \* FROM "answers" WHERE adoption_id = \$1 AND question_id = \$2`).
		WithArgs(id, fresh, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery(`INSERT INTO "answers"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(newAnswer))
	mock.ExpectCommit()
	mock.ExpectQuery(`SELECT \* FROM "adoptions" WHERE id = \$1`).WillReturnError(errors.New("connection reset"))

	adoption, err := svc.UpdateForUser(context.Background(), owner, id, req)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCancelled, adoption.Status)
	assert.Nil(t, adoption.AcceptanceDate)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateForUserOtherUsersAdoptionIsNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewAdoptionService(db, cache.Noop{})

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "adoptions" WHERE .*user_id = \$\d.*FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows(adoptionColumns))
	mock.ExpectRollback()

	_, err := svc.UpdateForUser(context.Background(), uuid.New(), uuid.New(), &dto.UpdateAdoptionRequest{Status: strPtr("approved")})
	assert.ErrorIs(t, err, ErrAdoptionNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAttachQuestion(t *testing.T) {
	questionColumns := []string{"id", "type_id", "question_content", "question_number"}

	tests := []struct {
		name      string
		questions *sqlmock.Rows
		insertErr error
		wantErr   error
	}{
		{
			name:      "attached",
			questions: sqlmock.NewRows(questionColumns).AddRow(uuid.New(), uuid.New(), "Tem quintal?", 1),
		},
		{
			name:      "unknown question",
			questions: sqlmock.NewRows(questionColumns),
			wantErr:   ErrQuestionNotFound,
		},
		{
			name:      "already attached",
			questions: sqlmock.NewRows(questionColumns).AddRow(uuid.New(), uuid.New(), "Tem quintal?", 1),
			insertErr: &pgconn.PgError{Code: "23505", Message: "duplicate key value violates unique constraint"},
			wantErr:   ErrQuestionAlreadyAttached,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newMockDB(t)
			svc := NewAdoptionService(db, cache.Noop{})

			mock.ExpectQuery(`SELECT count\(\*\) FROM "adoptions"`).
				WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
			mock.ExpectQuery(`SELECT \* FROM "questions" WHERE id = \$1`).WillReturnRows(tt.questions)
			if tt.wantErr != ErrQuestionNotFound {
				mock.ExpectQuery(`SELECT \* FROM "question_types"`).
					WillReturnRows(sqlmock.NewRows([]string{"id", "type_name"}))
				mock.ExpectBegin()
				insert := mock.ExpectExec(`INSERT INTO "adoption_questions"`)
				if tt.insertErr != nil {
					insert.WillReturnError(tt.insertErr)
					mock.ExpectRollback()
				} else {
					insert.WillReturnResult(sqlmock.NewResult(0, 1))
					mock.ExpectCommit()
				}
			}

			q, err := svc.AttachQuestion(context.Background(), uuid.New(), &dto.AttachQuestionRequest{QuestionID: uuid.NewString()})
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, "Tem quintal?", q.QuestionContent)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestAttachQuestionUnknownAdoption(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewAdoptionService(db, cache.Noop{})

	mock.ExpectQuery(`SELECT count\(\*\) FROM "adoptions"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	_, err := svc.AttachQuestion(context.Background(), uuid.New(), &dto.AttachQuestionRequest{QuestionID: uuid.NewString()})
	assert.ErrorIs(t, err, ErrAdoptionNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
