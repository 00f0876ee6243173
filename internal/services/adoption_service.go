package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/patinhas/adoption-api/internal/authctx"
	"github.com/patinhas/adoption-api/internal/cache"
	"github.com/patinhas/adoption-api/internal/database"
	"github.com/patinhas/adoption-api/internal/dto"
	"github.com/patinhas/adoption-api/internal/metrics"
	"github.com/patinhas/adoption-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AdoptionService struct {
	db    *gorm.DB
	cache cache.Cache
	now   func() time.Time
}

func NewAdoptionService(db *gorm.DB, c cache.Cache) *AdoptionService {
	return &AdoptionService{db: db, cache: c, now: time.Now}
}

// answerOrder lists answers in the order they were submitted; parseAnswers
// spaces created_at so a batch keeps its request order.
const answerOrder = "created_at ASC, id ASC"

// withAdoptionDetails loads everything an adoption read returns.
func withAdoptionDetails(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Pet").
		Preload("User").
		Preload("Questions", func(db *gorm.DB) *gorm.DB { return db.Order("question_number ASC") }).
		Preload("Answers", func(db *gorm.DB) *gorm.DB { return db.Order(answerOrder) }).
		Preload("Answers.Question", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "question_content", "question_number")
		})
}

// Create inserts a pending adoption and its answers in one transaction and
// returns the adoption re-read with its pet, user, questions and answers.
func (s *AdoptionService) Create(ctx context.Context, userID uuid.UUID, req *dto.CreateAdoptionRequest) (*models.Adoption, error) {
	petID, err := uuid.Parse(req.PetID)
	if err != nil {
		return nil, dto.NewValidationError("pet_id", "must be a valid UUID")
	}
	answers, err := parseAnswers(req.Answers, s.now())
	if err != nil {
		return nil, err
	}

	if err := mustExist(ctx, s.db, &models.Pet{}, petID, ErrPetNotFound); err != nil {
		return nil, err
	}
	if err := s.checkQuestions(ctx, answers); err != nil {
		return nil, err
	}

	adoption := models.Adoption{
		ID:          uuid.New(),
		UserID:      userID,
		PetID:       petID,
		RequestDate: s.now(),
		Status:      models.StatusPending,
	}
	if err := s.insert(ctx, &adoption, answers); err != nil {
		return nil, err
	}

	metrics.AdoptionCreated()
	slog.Info("adoption created", "adoption_id", adoption.ID.String(), "user_id", userID.String(), "answers", len(answers))
	return s.Get(ctx, adoption.ID)
}

func (s *AdoptionService) insert(ctx context.Context, adoption *models.Adoption, answers []models.Answer) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(adoption).Error; err != nil {
			return fmt.Errorf("insert adoption: %w", err)
		}
		if len(answers) == 0 {
			return nil
		}
		for i := range answers {
			answers[i].AdoptionID = adoption.ID
		}
		if err := tx.Omit(clause.Associations).Create(&answers).Error; err != nil {
			return fmt.Errorf("insert answers: %w", err)
		}
		return nil
	})
}

func (s *AdoptionService) Get(ctx context.Context, id uuid.UUID) (*models.Adoption, error) {
	var adoption models.Adoption
	if err := s.db.WithContext(ctx).Scopes(withAdoptionDetails).First(&adoption, "id = ?", id).Error; err != nil {
		return nil, notFound(err, ErrAdoptionNotFound)
	}
	return &adoption, nil
}

// GetFor returns the adoption when the actor owns it or is an admin.
func (s *AdoptionService) GetFor(ctx context.Context, actor authctx.Identity, id uuid.UUID) (*models.Adoption, error) {
	if _, err := s.authorize(ctx, actor, id); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

// GetForUser looks the adoption up inside one user's scope.
func (s *AdoptionService) GetForUser(ctx context.Context, userID, id uuid.UUID) (*models.Adoption, error) {
	var adoption models.Adoption
	err := s.db.WithContext(ctx).Scopes(withAdoptionDetails, database.ForUser(userID)).
		First(&adoption, "id = ?", id).Error
	if err != nil {
		return nil, notFound(err, ErrAdoptionNotFound)
	}
	return &adoption, nil
}

// GetForPet looks the adoption up inside one pet's scope; non-admins only see their own.
func (s *AdoptionService) GetForPet(ctx context.Context, actor authctx.Identity, petID, id uuid.UUID) (*models.Adoption, error) {
	var adoption models.Adoption
	err := s.db.WithContext(ctx).Scopes(withAdoptionDetails).
		Where("pet_id = ?", petID).First(&adoption, "id = ?", id).Error
	if err != nil {
		return nil, notFound(err, ErrAdoptionNotFound)
	}
	if !actor.CanActFor(adoption.UserID) {
		return nil, ErrForbidden
	}
	return &adoption, nil
}

func (s *AdoptionService) List(ctx context.Context, filter dto.AdoptionFilter, page dto.PageQuery) ([]models.Adoption, int64, error) {
	query := s.db.WithContext(ctx).Model(&models.Adoption{})
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	return s.list(query, page)
}

func (s *AdoptionService) ListByUser(ctx context.Context, userID uuid.UUID, page dto.PageQuery) ([]models.Adoption, int64, error) {
	if err := mustExist(ctx, s.db, &models.User{}, userID, ErrUserNotFound); err != nil {
		return nil, 0, err
	}
	return s.list(s.db.WithContext(ctx).Model(&models.Adoption{}).Scopes(database.ForUser(userID)), page)
}

func (s *AdoptionService) ListByPet(ctx context.Context, petID uuid.UUID, page dto.PageQuery) ([]models.Adoption, int64, error) {
	if err := mustExist(ctx, s.db, &models.Pet{}, petID, ErrPetNotFound); err != nil {
		return nil, 0, err
	}
	return s.list(s.db.WithContext(ctx).Model(&models.Adoption{}).Where("pet_id = ?", petID), page)
}

func (s *AdoptionService) list(query *gorm.DB, page dto.PageQuery) ([]models.Adoption, int64, error) {
	var adoptions []models.Adoption
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := query.
		Preload("Pet").
		Preload("User").
		Order("request_date DESC").
		Scopes(database.Paginate(page.Page, page.Limit)).
		Find(&adoptions).Error
	if err != nil {
		return nil, 0, err
	}
	return adoptions, total, nil
}

// UpdateStatus is the admin status endpoint. The status is checked before any
// SQL runs; the row is locked for the rest of the transaction.
func (s *AdoptionService) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*models.Adoption, error) {
	target := models.AdoptionStatus(status)
	if !target.Valid() {
		return nil, ErrInvalidStatus
	}

	var locked *models.Adoption
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		adoption, err := lockAdoption(tx, id, nil)
		if err != nil {
			return err
		}
		locked = adoption
		return s.applyStatus(tx, adoption, target)
	})
	if err != nil {
		return nil, err
	}

	s.invalidatePet(ctx, locked.PetID)
	metrics.AdoptionStatusChanged(status)
	slog.Info("adoption status changed", "adoption_id", id.String(), "status", status)
	return s.reread(ctx, locked), nil
}

// UpdateForUser is the owner-scoped update: status and/or answers.
func (s *AdoptionService) UpdateForUser(ctx context.Context, userID, id uuid.UUID, req *dto.UpdateAdoptionRequest) (*models.Adoption, error) {
	var target models.AdoptionStatus
	if req.Status != nil {
		target = models.AdoptionStatus(*req.Status)
		if !target.Valid() {
			return nil, ErrInvalidStatus
		}
	}
	answers, err := parseAnswers(req.Answers, s.now())
	if err != nil {
		return nil, err
	}
	if err := s.checkQuestions(ctx, answers); err != nil {
		return nil, err
	}

	var locked *models.Adoption
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		adoption, err := lockAdoption(tx, id, &userID)
		if err != nil {
			return err
		}
		locked = adoption
		if target != "" {
			if err := s.applyStatus(tx, adoption, target); err != nil {
				return err
			}
		}
		return upsertAnswers(tx, id, answers)
	})
	if err != nil {
		return nil, err
	}

	if target != "" {
		s.invalidatePet(ctx, locked.PetID)
		metrics.AdoptionStatusChanged(string(target))
	}
	return s.reread(ctx, locked), nil
}

// reread loads the full view of a committed change. The write already
// succeeded, so a failed read falls back to the locked row.
func (s *AdoptionService) reread(ctx context.Context, locked *models.Adoption) *models.Adoption {
	adoption, err := s.Get(ctx, locked.ID)
	if err != nil {
		slog.Warn("adoption re-read after update failed", "adoption_id", locked.ID.String(), "error", err)
		return locked
	}
	return adoption
}

// Delete removes an adoption the actor owns (or any, for admins).
// Answers and question links cascade.
func (s *AdoptionService) Delete(ctx context.Context, actor authctx.Identity, id uuid.UUID) error {
	adoption, err := s.authorize(ctx, actor, id)
	if err != nil {
		return err
	}
	return s.delete(ctx, adoption)
}

func (s *AdoptionService) DeleteForUser(ctx context.Context, userID, id uuid.UUID) error {
	var adoption models.Adoption
	if err := s.db.WithContext(ctx).Scopes(database.ForUser(userID)).First(&adoption, "id = ?", id).Error; err != nil {
		return notFound(err, ErrAdoptionNotFound)
	}
	return s.delete(ctx, &adoption)
}

func (s *AdoptionService) delete(ctx context.Context, adoption *models.Adoption) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.Adoption{}, "id = ?", adoption.ID).Error; err != nil {
			return err
		}
		if adoption.Status == models.StatusApproved {
			return syncPetAdopted(tx, adoption.PetID)
		}
		return nil
	})
	if err != nil {
		return err
	}
	if adoption.Status == models.StatusApproved {
		s.invalidatePet(ctx, adoption.PetID)
	}
	return nil
}

// applyStatus writes the new status, stamps or clears acceptance_date and
// keeps the pet's is_adopted flag in line with its approved adoptions.
// adoption is updated in place.
func (s *AdoptionService) applyStatus(tx *gorm.DB, adoption *models.Adoption, target models.AdoptionStatus) error {
	if !models.CanTransition(adoption.Status, target) {
		return ErrInvalidStatus
	}
	wasApproved := adoption.Status == models.StatusApproved
	acceptance := adoption.AcceptanceDate

	updates := map[string]any{"status": target}
	switch {
	case target == models.StatusApproved && !wasApproved:
		now := s.now()
		acceptance = &now
		updates["acceptance_date"] = now
	case target != models.StatusApproved:
		acceptance = nil
		updates["acceptance_date"] = nil
	}
	if err := tx.Model(&models.Adoption{}).Where("id = ?", adoption.ID).Updates(updates).Error; err != nil {
		return fmt.Errorf("update adoption status: %w", err)
	}
	adoption.Status = target
	adoption.AcceptanceDate = acceptance

	if target == models.StatusApproved || wasApproved {
		return syncPetAdopted(tx, adoption.PetID)
	}
	return nil
}

func syncPetAdopted(tx *gorm.DB, petID uuid.UUID) error {
	var approved int64
	if err := tx.Model(&models.Adoption{}).
		Where("pet_id = ? AND status = ?", petID, models.StatusApproved).
		Count(&approved).Error; err != nil {
		return err
	}
	return tx.Model(&models.Pet{}).Where("id = ?", petID).Update("is_adopted", approved > 0).Error
}

func lockAdoption(tx *gorm.DB, id uuid.UUID, userID *uuid.UUID) (*models.Adoption, error) {
	query := tx.Clauses(clause.Locking{Strength: "UPDATE"})
	if userID != nil {
		query = query.Scopes(database.ForUser(*userID))
	}
	var adoption models.Adoption
	if err := query.First(&adoption, "id = ?", id).Error; err != nil {
		return nil, notFound(err, ErrAdoptionNotFound)
	}
	return &adoption, nil
}

// authorize loads the adoption owner and applies the owner-or-admin rule.
// A missing adoption is reported before any permission check.
func (s *AdoptionService) authorize(ctx context.Context, actor authctx.Identity, id uuid.UUID) (*models.Adoption, error) {
	var adoption models.Adoption
	err := s.db.WithContext(ctx).Select("id", "user_id", "pet_id", "status").First(&adoption, "id = ?", id).Error
	if err != nil {
		return nil, notFound(err, ErrAdoptionNotFound)
	}
	if !actor.CanActFor(adoption.UserID) {
		return nil, ErrForbidden
	}
	return &adoption, nil
}

// checkQuestions rejects answers that point at questions which do not exist.
func (s *AdoptionService) checkQuestions(ctx context.Context, answers []models.Answer) error {
	if len(answers) == 0 {
		return nil
	}
	ids := make([]uuid.UUID, 0, len(answers))
	for _, a := range answers {
		ids = append(ids, a.QuestionID)
	}

	var found []uuid.UUID
	if err := s.db.WithContext(ctx).Model(&models.Question{}).Where("id IN ?", ids).Pluck("id", &found).Error; err != nil {
		return err
	}
	known := make(map[uuid.UUID]bool, len(found))
	for _, id := range found {
		known[id] = true
	}

	verr := &dto.ValidationError{}
	for i, a := range answers {
		if !known[a.QuestionID] {
			verr.Errors = append(verr.Errors, dto.FieldError{
				Field:   fmt.Sprintf("answers[%d].question_id", i),
				Message: "references an unknown question",
			})
		}
	}
	if len(verr.Errors) > 0 {
		return verr
	}
	return nil
}

// parseAnswers stamps each answer one microsecond after the previous one,
// the resolution of a Postgres timestamp.
func parseAnswers(inputs []dto.AnswerInput, now time.Time) ([]models.Answer, error) {
	answers := make([]models.Answer, 0, len(inputs))
	for i, in := range inputs {
		qid, err := uuid.Parse(in.QuestionID)
		if err != nil {
			return nil, dto.NewValidationError(fmt.Sprintf("answers[%d].question_id", i), "must be a valid UUID")
		}
		answers = append(answers, models.Answer{
			ID:            uuid.New(),
			QuestionID:    qid,
			AnswerContent: in.AnswerContent,
			CreatedAt:     now.Add(time.Duration(i) * time.Microsecond),
		})
	}
	return answers, nil
}

// upsertAnswers replaces the content of existing answers to the same question
// and inserts the rest.
func upsertAnswers(tx *gorm.DB, adoptionID uuid.UUID, answers []models.Answer) error {
	for _, a := range answers {
		var existing models.Answer
		err := tx.Where("adoption_id = ? AND question_id = ?", adoptionID, a.QuestionID).First(&existing).Error
		switch {
		case err == nil:
			if err := tx.Model(&existing).Update("answer_content", a.AnswerContent).Error; err != nil {
				return err
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			a.AdoptionID = adoptionID
			if err := tx.Omit(clause.Associations).Create(&a).Error; err != nil {
				return err
			}
		default:
			return err
		}
	}
	return nil
}

func (s *AdoptionService) invalidatePet(ctx context.Context, petID uuid.UUID) {
	invalidatePets(ctx, s.cache, petID)
}
