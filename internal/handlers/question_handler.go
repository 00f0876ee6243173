package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/patinhas/adoption-api/internal/dto"
	"github.com/patinhas/adoption-api/internal/models"
)

type QuestionService interface {
	List(ctx context.Context, filter dto.QuestionFilter, page dto.PageQuery) ([]models.Question, int64, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Question, error)
	Create(ctx context.Context, req *dto.CreateQuestionRequest) (*models.Question, error)
	Update(ctx context.Context, id uuid.UUID, req *dto.UpdateQuestionRequest) (*models.Question, error)
	Delete(ctx context.Context, id uuid.UUID) error

	ListTypes(ctx context.Context) ([]models.QuestionType, error)
	GetType(ctx context.Context, id uuid.UUID) (*models.QuestionType, error)
	CreateType(ctx context.Context, req *dto.CreateQuestionTypeRequest) (*models.QuestionType, error)
	UpdateType(ctx context.Context, id uuid.UUID, req *dto.UpdateQuestionTypeRequest) (*models.QuestionType, error)
	DeleteType(ctx context.Context, id uuid.UUID) error
}

type QuestionHandler struct {
	questions QuestionService
}

func NewQuestionHandler(questions QuestionService) *QuestionHandler {
	return &QuestionHandler{questions: questions}
}

// List godoc
// @Summary List questions
// @Tags questions
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" minimum(1) default(1)
// @Param limit query int false "Page size" minimum(1) maximum(100) default(10)
// @Param type_id query string false "Question type ID" Format(uuid)
// @Param active query bool false "Only active or only inactive questions"
// @Success 200 {object} dto.Envelope{data=[]models.Question}
// @Failure 400 {object} dto.Envelope "validation failed"
// @Failure 401 {object} dto.Envelope "missing or invalid token"
// @Router /questions [get]
func (h *QuestionHandler) List(c *fiber.Ctx) error {
	page, err := pageQuery(c)
	if err != nil {
		return respondError(c, err)
	}
	var filter dto.QuestionFilter
	if err := bindQuery(c, &filter); err != nil {
		return respondError(c, err)
	}

	questions, total, err := h.questions.List(c.UserContext(), filter, page)
	if err != nil {
		return respondError(c, err)
	}
	return paged(c, questions, total, page)
}

// Get godoc
// @Summary Get a question
// @Tags questions
// @Produce json
// @Security BearerAuth
// @Param question_id path string true "Question ID" Format(uuid)
// @Success 200 {object} dto.Envelope{data=models.Question}
// @Failure 401 {object} dto.Envelope "missing or invalid token"
// @Failure 404 {object} dto.Envelope "question not found"
// @Router /questions/{question_id} [get]
func (h *QuestionHandler) Get(c *fiber.Ctx) error {
	id, err := uuidParam(c, "question_id")
	if err != nil {
		return respondError(c, err)
	}
	question, err := h.questions.Get(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return ok(c, question)
}

// Create godoc
// @Summary Create a question
// @Tags questions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.CreateQuestionRequest true "Question data"
// @Success 201 {object} dto.Envelope{data=models.Question}
// @Failure 400 {object} dto.Envelope "validation failed"
// @Failure 401 {object} dto.Envelope "missing or invalid token"
// @Failure 403 {object} dto.Envelope "admin only"
// @Failure 404 {object} dto.Envelope "question type not found"
// @Router /questions [post]
func (h *QuestionHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateQuestionRequest
	if err := bind(c, &req); err != nil {
		return respondError(c, err)
	}
	question, err := h.questions.Create(c.UserContext(), &req)
	if err != nil {
		return respondError(c, err)
	}
	return created(c, question)
}

// Update godoc
// @Summary Update a question
// @Tags questions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param question_id path string true "Question ID" Format(uuid)
// @Param payload body dto.UpdateQuestionRequest true "Fields to change"
// @Success 200 {object} dto.Envelope{data=models.Question}
// @Failure 400 {object} dto.Envelope "validation failed"
// @Failure 401 {object} dto.Envelope "missing or invalid token"
// @Failure 403 {object} dto.Envelope "admin only"
// @Failure 404 {object} dto.Envelope "question or question type not found"
// @Router /questions/{question_id} [put]
func (h *QuestionHandler) Update(c *fiber.Ctx) error {
	id, err := uuidParam(c, "question_id")
	if err != nil {
		return respondError(c, err)
	}
	var req dto.UpdateQuestionRequest
	if err := bind(c, &req); err != nil {
		return respondError(c, err)
	}

	question, err := h.questions.Update(c.UserContext(), id, &req)
	if err != nil {
		return respondError(c, err)
	}
	return ok(c, question)
}

// Delete godoc
// @Summary Delete a question
// @Tags questions
// @Produce json
// @Security BearerAuth
// @Param question_id path string true "Question ID" Format(uuid)
// @Success 204 "No Content"
// @Failure 401 {object} dto.Envelope "missing or invalid token"
// @Failure 403 {object} dto.Envelope "admin only"
// @Failure 404 {object} dto.Envelope "question not found"
// @Router /questions/{question_id} [delete]
func (h *QuestionHandler) Delete(c *fiber.Ctx) error {
	id, err := uuidParam(c, "question_id")
	if err != nil {
		return respondError(c, err)
	}
	if err := h.questions.Delete(c.UserContext(), id); err != nil {
		return respondError(c, err)
	}
	return noContent(c)
}

// ListTypes godoc
// @Summary List question types
// @Tags questions
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.Envelope{data=[]models.QuestionType}
// @Failure 401 {object} dto.Envelope "missing or invalid token"
// @Router /questions/types [get]
func (h *QuestionHandler) ListTypes(c *fiber.Ctx) error {
	types, err := h.questions.ListTypes(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return ok(c, types)
}

// GetType godoc
// @Summary Get a question type
// @Tags questions
// @Produce json
// @Security BearerAuth
// @Param type_id path string true "Question type ID" Format(uuid)
// @Success 200 {object} dto.Envelope{data=models.QuestionType}
// @Failure 401 {object} dto.Envelope "missing or invalid token"
// @Failure 404 {object} dto.Envelope "question type not found"
// @Router /questions/types/{type_id} [get]
func (h *QuestionHandler) GetType(c *fiber.Ctx) error {
	id, err := uuidParam(c, "type_id")
	if err != nil {
		return respondError(c, err)
	}
	qt, err := h.questions.GetType(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return ok(c, qt)
}

// CreateType godoc
// @Summary Create a question type
// @Tags questions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.CreateQuestionTypeRequest true "Type data"
// @Success 201 {object} dto.Envelope{data=models.QuestionType}
// @Failure 400 {object} dto.Envelope "validation failed"
// @Failure 401 {object} dto.Envelope "missing or invalid token"
// @Failure 403 {object} dto.Envelope "admin only"
// @Failure 409 {object} dto.Envelope "type name already in use"
// @Router /questions/types [post]
func (h *QuestionHandler) CreateType(c *fiber.Ctx) error {
	var req dto.CreateQuestionTypeRequest
	if err := bind(c, &req); err != nil {
		return respondError(c, err)
	}
	qt, err := h.questions.CreateType(c.UserContext(), &req)
	if err != nil {
		return respondError(c, err)
	}
	return created(c, qt)
}

// UpdateType godoc
// @Summary Update a question type
// @Tags questions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param type_id path string true "Question type ID" Format(uuid)
// @Param payload body dto.UpdateQuestionTypeRequest true "Fields to change"
// @Success 200 {object} dto.Envelope{data=models.QuestionType}
// @Failure 400 {object} dto.Envelope "validation failed"
// @Failure 401 {object} dto.Envelope "missing or invalid token"
// @Failure 403 {object} dto.Envelope "admin only"
// @Failure 404 {object} dto.Envelope "question type not found"
// @Failure 409 {object} dto.Envelope "type name already in use"
// @Router /questions/types/{type_id} [put]
func (h *QuestionHandler) UpdateType(c *fiber.Ctx) error {
	id, err := uuidParam(c, "type_id")
	if err != nil {
		return respondError(c, err)
	}
	var req dto.UpdateQuestionTypeRequest
	if err := bind(c, &req); err != nil {
		return respondError(c, err)
	}

	qt, err := h.questions.UpdateType(c.UserContext(), id, &req)
	if err != nil {
		return respondError(c, err)
	}
	return ok(c, qt)
}

// DeleteType also removes every question of that type.
// @Summary Delete a question type
// @Description Deleting a type also deletes its questions and their answers.
// @Tags questions
// @Produce json
// @Security BearerAuth
// @Param type_id path string true "Question type ID" Format(uuid)
// @Success 204 "No Content"
// @Failure 401 {object} dto.Envelope "missing or invalid token"
// @Failure 403 {object} dto.Envelope "admin only"
// @Failure 404 {object} dto.Envelope "question type not found"
// @Router /questions/types/{type_id} [delete]
func (h *QuestionHandler) DeleteType(c *fiber.Ctx) error {
	id, err := uuidParam(c, "type_id")
	if err != nil {
		return respondError(c, err)
	}
	if err := h.questions.DeleteType(c.UserContext(), id); err != nil {
		return respondError(c, err)
	}
	return noContent(c)
}
