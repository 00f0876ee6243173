package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/patinhas/adoption-api/internal/authctx"
	"github.com/patinhas/adoption-api/internal/dto"
	"github.com/patinhas/adoption-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func attachedQuestions(db *gorm.DB, adoptionID uuid.UUID) *gorm.DB {
	return db.Model(&models.Question{}).
		Joins("JOIN adoption_questions ON adoption_questions.question_id = questions.id").
		Where("adoption_questions.adoption_id = ?", adoptionID)
}

func (s *AdoptionService) ListQuestions(ctx context.Context, actor authctx.Identity, adoptionID uuid.UUID) ([]models.Question, error) {
	if _, err := s.authorize(ctx, actor, adoptionID); err != nil {
		return nil, err
	}
	questions := make([]models.Question, 0)
	err := attachedQuestions(s.db.WithContext(ctx), adoptionID).
		Preload("Type").
		Order("questions.question_number ASC").
		Find(&questions).Error
	return questions, err
}

func (s *AdoptionService) GetQuestion(ctx context.Context, actor authctx.Identity, adoptionID, questionID uuid.UUID) (*models.Question, error) {
	if _, err := s.authorize(ctx, actor, adoptionID); err != nil {
		return nil, err
	}
	var q models.Question
	err := attachedQuestions(s.db.WithContext(ctx), adoptionID).
		Preload("Type").
		First(&q, "questions.id = ?", questionID).Error
	if err != nil {
		return nil, notFound(err, ErrQuestionNotAttached)
	}
	return &q, nil
}

// AttachQuestion links an existing catalog question to the adoption.
func (s *AdoptionService) AttachQuestion(ctx context.Context, adoptionID uuid.UUID, req *dto.AttachQuestionRequest) (*models.Question, error) {
	questionID, err := uuid.Parse(req.QuestionID)
	if err != nil {
		return nil, dto.NewValidationError("question_id", "must be a valid UUID")
	}
	if err := mustExist(ctx, s.db, &models.Adoption{}, adoptionID, ErrAdoptionNotFound); err != nil {
		return nil, err
	}
	var q models.Question
	if err := s.db.WithContext(ctx).Preload("Type").First(&q, "id = ?", questionID).Error; err != nil {
		return nil, notFound(err, ErrQuestionNotFound)
	}

	link := models.AdoptionQuestion{AdoptionID: adoptionID, QuestionID: questionID}
	if err := s.db.WithContext(ctx).Create(&link).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrQuestionAlreadyAttached
		}
		return nil, fmt.Errorf("attach question: %w", err)
	}
	return &q, nil
}

func (s *AdoptionService) DetachQuestion(ctx context.Context, adoptionID, questionID uuid.UUID) error {
	res := s.db.WithContext(ctx).
		Where("adoption_id = ? AND question_id = ?", adoptionID, questionID).
		Delete(&models.AdoptionQuestion{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrQuestionNotAttached
	}
	return nil
}

func (s *AdoptionService) ListAnswers(ctx context.Context, actor authctx.Identity, adoptionID uuid.UUID) ([]models.Answer, error) {
	if _, err := s.authorize(ctx, actor, adoptionID); err != nil {
		return nil, err
	}
	answers := make([]models.Answer, 0)
	err := s.db.WithContext(ctx).
		Preload("Question").
		Where("adoption_id = ?", adoptionID).
		Order(answerOrder).
		Find(&answers).Error
	return answers, err
}

// AddAnswers inserts a batch of answers atomically.
func (s *AdoptionService) AddAnswers(ctx context.Context, actor authctx.Identity, adoptionID uuid.UUID, req *dto.CreateAnswersRequest) ([]models.Answer, error) {
	answers, err := parseAnswers(req.Answers, s.now())
	if err != nil {
		return nil, err
	}
	if _, err := s.authorize(ctx, actor, adoptionID); err != nil {
		return nil, err
	}
	if err := s.checkQuestions(ctx, answers); err != nil {
		return nil, err
	}
	for i := range answers {
		answers[i].AdoptionID = adoptionID
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Omit(clause.Associations).Create(&answers).Error
	})
	if err != nil {
		return nil, fmt.Errorf("insert answers: %w", err)
	}
	return answers, nil
}

func (s *AdoptionService) GetAnswer(ctx context.Context, actor authctx.Identity, adoptionID, answerID uuid.UUID) (*models.Answer, error) {
	if _, err := s.authorize(ctx, actor, adoptionID); err != nil {
		return nil, err
	}
	return s.findAnswer(ctx, adoptionID, answerID)
}

func (s *AdoptionService) UpdateAnswer(ctx context.Context, actor authctx.Identity, adoptionID, answerID uuid.UUID, req *dto.UpdateAnswerRequest) (*models.Answer, error) {
	if _, err := s.authorize(ctx, actor, adoptionID); err != nil {
		return nil, err
	}
	answer, err := s.findAnswer(ctx, adoptionID, answerID)
	if err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Model(&models.Answer{}).Where("id = ?", answer.ID).
		Update("answer_content", req.AnswerContent).Error; err != nil {
		return nil, err
	}
	answer.AnswerContent = req.AnswerContent
	return answer, nil
}

func (s *AdoptionService) DeleteAnswer(ctx context.Context, adoptionID, answerID uuid.UUID) error {
	res := s.db.WithContext(ctx).
		Where("adoption_id = ?", adoptionID).
		Delete(&models.Answer{}, "id = ?", answerID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrAnswerNotFound
	}
	return nil
}

func (s *AdoptionService) findAnswer(ctx context.Context, adoptionID, answerID uuid.UUID) (*models.Answer, error) {
	var answer models.Answer
	err := s.db.WithContext(ctx).Preload("Question").
		Where("adoption_id = ?", adoptionID).
		First(&answer, "id = ?", answerID).Error
	if err != nil {
		return nil, notFound(err, ErrAnswerNotFound)
	}
	return &answer, nil
}
