package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/patinhas/adoption-api/internal/cache"
	"github.com/patinhas/adoption-api/internal/database"
	"github.com/patinhas/adoption-api/internal/dto"
	"github.com/patinhas/adoption-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const questionTypesCacheKey = "question_types:all"

type QuestionService struct {
	db       *gorm.DB
	cache    cache.Cache
	cacheTTL time.Duration
}

func NewQuestionService(db *gorm.DB, c cache.Cache, cacheTTL time.Duration) *QuestionService {
	return &QuestionService{db: db, cache: c, cacheTTL: cacheTTL}
}

func (s *QuestionService) List(ctx context.Context, filter dto.QuestionFilter, page dto.PageQuery) ([]models.Question, int64, error) {
	var questions []models.Question
	var total int64

	query := s.db.WithContext(ctx).Model(&models.Question{})
	if filter.TypeID != "" {
		query = query.Where("type_id = ?", filter.TypeID)
	}
	if filter.Active != nil {
		query = query.Where("is_active = ?", *filter.Active)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := query.Preload("Type").
		Order("question_number ASC").
		Scopes(database.Paginate(page.Page, page.Limit)).
		Find(&questions).Error
	if err != nil {
		return nil, 0, err
	}
	return questions, total, nil
}

func (s *QuestionService) Get(ctx context.Context, id uuid.UUID) (*models.Question, error) {
	var q models.Question
	if err := s.db.WithContext(ctx).Preload("Type").First(&q, "id = ?", id).Error; err != nil {
		return nil, notFound(err, ErrQuestionNotFound)
	}
	return &q, nil
}

func (s *QuestionService) Create(ctx context.Context, req *dto.CreateQuestionRequest) (*models.Question, error) {
	typeID, err := uuid.Parse(req.TypeID)
	if err != nil {
		return nil, dto.NewValidationError("type_id", "must be a valid UUID")
	}
	if err := mustExist(ctx, s.db, &models.QuestionType{}, typeID, ErrQuestionTypeNotFound); err != nil {
		return nil, err
	}

	q := models.Question{
		ID:              uuid.New(),
		TypeID:          typeID,
		QuestionContent: strings.TrimSpace(req.QuestionContent),
		QuestionNumber:  *req.QuestionNumber,
		IsActive:        true,
	}
	if req.IsOptional != nil {
		q.IsOptional = *req.IsOptional
	}
	if req.IsActive != nil {
		q.IsActive = *req.IsActive
	}
	// Select forces false booleans to be written instead of the column default.
	if err := s.db.WithContext(ctx).Select("*").Omit(clause.Associations).Create(&q).Error; err != nil {
		return nil, fmt.Errorf("failed to create question: %w", err)
	}
	return s.Get(ctx, q.ID)
}

func (s *QuestionService) Update(ctx context.Context, id uuid.UUID, req *dto.UpdateQuestionRequest) (*models.Question, error) {
	if err := mustExist(ctx, s.db, &models.Question{}, id, ErrQuestionNotFound); err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if req.TypeID != nil {
		typeID, err := uuid.Parse(*req.TypeID)
		if err != nil {
			return nil, dto.NewValidationError("type_id", "must be a valid UUID")
		}
		if err := mustExist(ctx, s.db, &models.QuestionType{}, typeID, ErrQuestionTypeNotFound); err != nil {
			return nil, err
		}
		updates["type_id"] = typeID
	}
	if req.QuestionContent != nil {
		updates["question_content"] = strings.TrimSpace(*req.QuestionContent)
	}
	if req.QuestionNumber != nil {
		updates["question_number"] = *req.QuestionNumber
	}
	if req.IsOptional != nil {
		updates["is_optional"] = *req.IsOptional
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}

	if len(updates) > 0 {
		if err := s.db.WithContext(ctx).Model(&models.Question{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update question: %w", err)
		}
	}
	return s.Get(ctx, id)
}

// Delete removes the question together with its answers and adoption links.
func (s *QuestionService) Delete(ctx context.Context, id uuid.UUID) error {
	res := s.db.WithContext(ctx).Delete(&models.Question{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrQuestionNotFound
	}
	return nil
}

func (s *QuestionService) ListTypes(ctx context.Context) ([]models.QuestionType, error) {
	types := make([]models.QuestionType, 0)
	if found, err := s.cache.Get(ctx, questionTypesCacheKey, &types); err != nil {
		slog.Warn("question type cache read failed", "error", err)
	} else if found {
		return types, nil
	}

	if err := s.db.WithContext(ctx).Order("type_name ASC").Find(&types).Error; err != nil {
		return nil, err
	}
	if err := s.cache.Set(ctx, questionTypesCacheKey, types, s.cacheTTL); err != nil {
		slog.Warn("question type cache write failed", "error", err)
	}
	return types, nil
}

func (s *QuestionService) GetType(ctx context.Context, id uuid.UUID) (*models.QuestionType, error) {
	var qt models.QuestionType
	if err := s.db.WithContext(ctx).First(&qt, "id = ?", id).Error; err != nil {
		return nil, notFound(err, ErrQuestionTypeNotFound)
	}
	return &qt, nil
}

func (s *QuestionService) CreateType(ctx context.Context, req *dto.CreateQuestionTypeRequest) (*models.QuestionType, error) {
	name := strings.TrimSpace(req.TypeName)
	if err := s.checkTypeName(ctx, uuid.Nil, name); err != nil {
		return nil, err
	}
	qt := models.QuestionType{ID: uuid.New(), TypeName: name, TypeDescription: req.TypeDescription}
	if err := s.db.WithContext(ctx).Create(&qt).Error; err != nil {
		return nil, fmt.Errorf("failed to create question type: %w", err)
	}
	s.invalidateTypes(ctx)
	return &qt, nil
}

func (s *QuestionService) UpdateType(ctx context.Context, id uuid.UUID, req *dto.UpdateQuestionTypeRequest) (*models.QuestionType, error) {
	qt, err := s.GetType(ctx, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if req.TypeName != nil {
		name := strings.TrimSpace(*req.TypeName)
		if name != qt.TypeName {
			if err := s.checkTypeName(ctx, id, name); err != nil {
				return nil, err
			}
			updates["type_name"] = name
		}
	}
	if req.TypeDescription != nil {
		updates["type_description"] = *req.TypeDescription
	}
	if len(updates) > 0 {
		if err := s.db.WithContext(ctx).Model(&models.QuestionType{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update question type: %w", err)
		}
		s.invalidateTypes(ctx)
	}
	return s.GetType(ctx, id)
}

// DeleteType removes the type; its questions (and their answers and links)
// are removed by the type_id foreign key cascade.
func (s *QuestionService) DeleteType(ctx context.Context, id uuid.UUID) error {
	res := s.db.WithContext(ctx).Delete(&models.QuestionType{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrQuestionTypeNotFound
	}
	s.invalidateTypes(ctx)
	return nil
}

func (s *QuestionService) checkTypeName(ctx context.Context, self uuid.UUID, name string) error {
	var n int64
	if err := s.db.WithContext(ctx).Model(&models.QuestionType{}).
		Where("type_name = ? AND id <> ?", name, self).Count(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		return ErrTypeNameTaken
	}
	return nil
}

func (s *QuestionService) invalidateTypes(ctx context.Context) {
	if err := s.cache.Delete(ctx, questionTypesCacheKey); err != nil {
		slog.Warn("question type cache invalidation failed", "error", err)
	}
}
