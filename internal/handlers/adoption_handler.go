package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/patinhas/adoption-api/internal/authctx"
	"github.com/patinhas/adoption-api/internal/dto"
	"github.com/patinhas/adoption-api/internal/models"
)

type AdoptionService interface {
	Create(ctx context.Context, userID uuid.UUID, req *dto.CreateAdoptionRequest) (*models.Adoption, error)
	GetFor(ctx context.Context, actor authctx.Identity, id uuid.UUID) (*models.Adoption, error)
	GetForUser(ctx context.Context, userID, id uuid.UUID) (*models.Adoption, error)
	GetForPet(ctx context.Context, actor authctx.Identity, petID, id uuid.UUID) (*models.Adoption, error)
	List(ctx context.Context, filter dto.AdoptionFilter, page dto.PageQuery) ([]models.Adoption, int64, error)
	ListByUser(ctx context.Context, userID uuid.UUID, page dto.PageQuery) ([]models.Adoption, int64, error)
	ListByPet(ctx context.Context, petID uuid.UUID, page dto.PageQuery) ([]models.Adoption, int64, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*models.Adoption, error)
	UpdateForUser(ctx context.Context, userID, id uuid.UUID, req *dto.UpdateAdoptionRequest) (*models.Adoption, error)
	Delete(ctx context.Context, actor authctx.Identity, id uuid.UUID) error
	DeleteForUser(ctx context.Context, userID, id uuid.UUID) error

	ListQuestions(ctx context.Context, actor authctx.Identity, adoptionID uuid.UUID) ([]models.Question, error)
	GetQuestion(ctx context.Context, actor authctx.Identity, adoptionID, questionID uuid.UUID) (*models.Question, error)
	AttachQuestion(ctx context.Context, adoptionID uuid.UUID, req *dto.AttachQuestionRequest) (*models.Question, error)
	DetachQuestion(ctx context.Context, adoptionID, questionID uuid.UUID) error

	ListAnswers(ctx context.Context, actor authctx.Identity, adoptionID uuid.UUID) ([]models.Answer, error)
	AddAnswers(ctx context.Context, actor authctx.Identity, adoptionID uuid.UUID, req *dto.CreateAnswersRequest) ([]models.Answer, error)
	GetAnswer(ctx context.Context, actor authctx.Identity, adoptionID, answerID uuid.UUID) (*models.Answer, error)
	UpdateAnswer(ctx context.Context, actor authctx.Identity, adoptionID, answerID uuid.UUID, req *dto.UpdateAnswerRequest) (*models.Answer, error)
	DeleteAnswer(ctx context.Context, adoptionID, answerID uuid.UUID) error
}

type AdoptionHandler struct {
	adoptions AdoptionService
}

func NewAdoptionHandler(adoptions AdoptionService) *AdoptionHandler {
	return &AdoptionHandler{adoptions: adoptions}
}

// Create files an adoption request for the caller.
// @Summary Request an adoption
// @Description Creates a pending adoption for the caller. The adoption and its answers are stored in one transaction.
// @Tags adoptions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.CreateAdoptionRequest true "Pet and questionnaire answers"
// @Success 201 {object} dto.Envelope{data=models.Adoption}
// @Failure 400 {object} dto.Envelope "validation failed"
// @Failure 401 {object} dto.Envelope "missing or invalid token"
// @Failure 404 {object} dto.Envelope "pet or question not found"
// @Router /adoptions [post]
func (h *AdoptionHandler) Create(c *fiber.Ctx) error {
	actor, err := identity(c)
	if err != nil {
		return respondError(c, err)
	}
	return h.create(c, actor.UserID)
}

func (h *AdoptionHandler) create(c *fiber.Ctx, userID uuid.UUID) error {
	var req dto.CreateAdoptionRequest
	if err := bind(c, &req); err != nil {
		return respondError(c, err)
	}
	adoption, err := h.adoptions.Create(c.UserContext(), userID, &req)
	if err != nil {
		return respondError(c, err)
	}
	return created(c, adoption)
}

// List godoc
// @Summary List adoptions
// @Tags adoptions
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" minimum(1) default(1)
// @Param limit query int false "Page size" minimum(1) maximum(100) default(10)
// @Param status query string false "Filter by status" Enums(pending, approved, rejected, cancelled)
// @Success 200 {object} dto.Envelope{data=[]models.Adoption}
// @Failure 400 {object} dto.Envelope "validation failed"
// @Failure 401 {object} dto.Envelope "missing or invalid token"
// @Failure 403 {object} dto.Envelope "admin only"
// @Router /adoptions [get]
func (h *AdoptionHandler) List(c *fiber.Ctx) error {
	page, err := pageQuery(c)
	if err != nil {
		return respondError(c, err)
	}
	var filter dto.AdoptionFilter
	if err := bindQuery(c, &filter); err != nil {
		return respondError(c, err)
	}

	adoptions, total, err := h.adoptions.List(c.UserContext(), filter, page)
	if err != nil {
		return respondError(c, err)
	}
	return paged(c, adoptions, total, page)
}

// Get godoc
// @Summary Get an adoption
// @Tags adoptions
// @Produce json
// @Security BearerAuth
// @Param adoption_id path string true "Adoption ID" Format(uuid)
// @Success 200 {object} dto.Envelope{data=models.Adoption}
// @Failure 401 {object} dto.Envelope "missing or invalid token"
// @Failure 403 {object} dto.Envelope "not the owner"
// @Failure 404 {object} dto.Envelope "adoption not found"
// @Router /adoptions/{adoption_id} [get]
func (h *AdoptionHandler) Get(c *fiber.Ctx) error {
	actor, err := identity(c)
	if err != nil {
		return respondError(c, err)
	}
	id, err := uuidParam(c, "adoption_id")
	if err != nil {
		return respondError(c, err)
	}
	adoption, err := h.adoptions.GetFor(c.UserContext(), actor, id)
	if err != nil {
		return respondError(c, err)
	}
	return ok(c, adoption)
}

// UpdateStatus is admin-only; an out-of-enum status fails validation before
// the service is called.
// @Summary Change adoption status
// @Description Approving stamps the acceptance date and marks the pet adopted. Leaving approved clears both.
// @Tags adoptions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param adoption_id path string true "Adoption ID" Format(uuid)
// @Param payload body dto.UpdateAdoptionStatusRequest true "New status"
// @Success 200 {object} dto.Envelope{data=models.Adoption}
// @Failure 400 {object} dto.Envelope "validation failed"
// @Failure 401 {object} dto.Envelope "missing or invalid token"
// @Failure 403 {object} dto.Envelope "admin only"
// @Failure 404 {object} dto.Envelope "adoption not found"
// @Router /adoptions/{adoption_id}/status [put]
func (h *AdoptionHandler) UpdateStatus(c *fiber.Ctx) error {
	id, err := uuidParam(c, "adoption_id")
	if err != nil {
		return respondError(c, err)
	}
	var req dto.UpdateAdoptionStatusRequest
	if err := bind(c, &req); err != nil {
		return respondError(c, err)
	}

	adoption, err := h.adoptions.UpdateStatus(c.UserContext(), id, req.Status)
	if err != nil {
		return respondError(c, err)
	}
	return ok(c, adoption)
}

// Delete godoc
// @Summary Delete an adoption
// @Tags adoptions
// @Produce json
// @Security BearerAuth
// @Param adoption_id path string true "Adoption ID" Format(uuid)
// @Success 204 "No Content"
// @Failure 401 {object} dto.Envelope "missing or invalid token"
// @Failure 403 {object} dto.Envelope "not the owner"
// @Failure 404 {object} dto.Envelope "adoption not found"
// @Router /adoptions/{adoption_id} [delete]
func (h *AdoptionHandler) Delete(c *fiber.Ctx) error {
	actor, err := identity(c)
	if err != nil {
		return respondError(c, err)
	}
	id, err := uuidParam(c, "adoption_id")
	if err != nil {
		return respondError(c, err)
	}
	if err := h.adoptions.Delete(c.UserContext(), actor, id); err != nil {
		return respondError(c, err)
	}
	return noContent(c)
}

// /users/:user_id/adoptions. SelfOrAdmin has already checked :user_id.

// ListForUser godoc
// @Summary List a user's adoptions
// @Tags adoptions
// @Produce json
// @Security BearerAuth
// @Param user_id path string true "User ID" Format(uuid)
// @Param page query int false "Page number" minimum(1) default(1)
// @Param limit query int false "Page size" minimum(1) maximum(100) default(10)
// @Success 200 {object} dto.Envelope{data=[]models.Adoption}
// @Failure 400 {object} dto.Envelope "validation failed"
// @Failure 401 {object} dto.Envelope "missing or invalid token"
// @Failure 403 {object} dto.Envelope "not the owner"
// @Router /users/{user_id}/adoptions [get]
func (h *AdoptionHandler) ListForUser(c *fiber.Ctx) error {
	userID, err := uuidParam(c, "user_id")
	if err != nil {
		return respondError(c, err)
	}
	page, err := pageQuery(c)
	if err != nil {
		return respondError(c, err)
	}

	adoptions, total, err := h.adoptions.ListByUser(c.UserContext(), userID, page)
	if err != nil {
		return respondError(c, err)
	}
	return paged(c, adoptions, total, page)
}

// CreateForUser godoc
// @Summary Request an adoption for a user
// @Tags adoptions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param user_id path string true "User ID" Format(uuid)
// @Param payload body dto.CreateAdoptionRequest true "Pet and questionnaire answers"
// @Success 201 {object} dto.Envelope{data=models.Adoption}
// @Failure 400 {object} dto.Envelope "validation failed"
// @Failure 401 {object} dto.Envelope "missing or invalid token"
// @Failure 403 {object} dto.Envelope "not the owner"
// @Failure 404 {object} dto.Envelope "user, pet or question not found"
// @Router /users/{user_id}/adoptions [post]
func (h *AdoptionHandler) CreateForUser(c *fiber.Ctx) error {
	userID, err := uuidParam(c, "user_id")
	if err != nil {
		return respondError(c, err)
	}
	return h.create(c, userID)
}

// GetForUser godoc
// @Summary Get a user's adoption
// @Tags adoptions
// @Produce json
// @Security BearerAuth
// @Param user_id path string true "User ID" Format(uuid)
// @Param adoption_id path string true "Adoption ID" Format(uuid)
// @Success 200 {object} dto.Envelope{data=models.Adoption}
// @Failure 401 {object} dto.Envelope "missing or invalid token"
// @Failure 403 {object} dto.Envelope "not the owner"
// @Failure 404 {object} dto.Envelope "adoption not found"
// @Router /users/{user_id}/adoptions/{adoption_id} [get]
func (h *AdoptionHandler) GetForUser(c *fiber.Ctx) error {
	ids, err := uuidParams(c, "user_id", "adoption_id")
	if err != nil {
		return respondError(c, err)
	}
	adoption, err := h.adoptions.GetForUser(c.UserContext(), ids[0], ids[1])
	if err != nil {
		return respondError(c, err)
	}
	return ok(c, adoption)
}

// UpdateForUser godoc
// @Summary Update a user's adoption
// @Tags adoptions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param user_id path string true "User ID" Format(uuid)
// @Param adoption_id path string true "Adoption ID" Format(uuid)
// @Param payload body dto.UpdateAdoptionRequest true "Status and answers to upsert"
// @Success 200 {object} dto.Envelope{data=models.Adoption}
// @Failure 400 {object} dto.Envelope "validation failed"
// @Failure 401 {object} dto.Envelope "missing or invalid token"
// @Failure 403 {object} dto.Envelope "not the owner"
// @Failure 404 {object} dto.Envelope "adoption not found"
// @Router /users/{user_id}/adoptions/{adoption_id} [put]
func (h *AdoptionHandler) UpdateForUser(c *fiber.Ctx) error {
	ids, err := uuidParams(c, "user_id", "adoption_id")
	if err != nil {
		return respondError(c, err)
	}
	var req dto.UpdateAdoptionRequest
	if err := bind(c, &req); err != nil {
		return respondError(c, err)
	}

	adoption, err := h.adoptions.UpdateForUser(c.UserContext(), ids[0], ids[1], &req)
	if err != nil {
		return respondError(c, err)
	}
	return ok(c, adoption)
}

// DeleteForUser godoc
// @Summary Delete a user's adoption
// @Tags adoptions
// @Produce json
// @Security BearerAuth
// @Param user_id path string true "User ID" Format(uuid)
// @Param adoption_id path string true "Adoption ID" Format(uuid)
// @Success 204 "No Content"
// @Failure 401 {object} dto.Envelope "missing or invalid token"
// @Failure 403 {object} dto.Envelope "not the owner"
// @Failure 404 {object} dto.Envelope "adoption not found"
// @Router /users/{user_id}/adoptions/{adoption_id} [delete]
func (h *AdoptionHandler) DeleteForUser(c *fiber.Ctx) error {
	ids, err := uuidParams(c, "user_id", "adoption_id")
	if err != nil {
		return respondError(c, err)
	}
	if err := h.adoptions.DeleteForUser(c.UserContext(), ids[0], ids[1]); err != nil {
		return respondError(c, err)
	}
	return noContent(c)
}

// /pets/:pet_id/adoptions

// ListForPet godoc
// @Summary List a pet's adoptions
// @Tags adoptions
// @Produce json
// @Security BearerAuth
// @Param pet_id path string true "Pet ID" Format(uuid)
// @Param page query int false "Page number" minimum(1) default(1)
// @Param limit query int false "Page size" minimum(1) maximum(100) default(10)
// @Success 200 {object} dto.Envelope{data=[]models.Adoption}
// @Failure 400 {object} dto.Envelope "validation failed"
// @Failure 401 {object} dto.Envelope "missing or invalid token"
// @Failure 403 {object} dto.Envelope "admin only"
// @Failure 404 {object} dto.Envelope "pet not found"
// @Router /pets/{pet_id}/adoptions [get]
func (h *AdoptionHandler) ListForPet(c *fiber.Ctx) error {
	petID, err := uuidParam(c, "pet_id")
	if err != nil {
		return respondError(c, err)
	}
	page, err := pageQuery(c)
	if err != nil {
		return respondError(c, err)
	}

	adoptions, total, err := h.adoptions.ListByPet(c.UserContext(), petID, page)
	if err != nil {
		return respondError(c, err)
	}
	return paged(c, adoptions, total, page)
}

// GetForPet godoc
// @Summary Get a pet's adoption
// @Tags adoptions
// @Produce json
// @Security BearerAuth
// @Param pet_id path string true "Pet ID" Format(uuid)
// @Param adoption_id path string true "Adoption ID" Format(uuid)
// @Success 200 {object} dto.Envelope{data=models.Adoption}
// @Failure 401 {object} dto.Envelope "missing or invalid token"
// @Failure 403 {object} dto.Envelope "not the owner"
// @Failure 404 {object} dto.Envelope "adoption not found"
// @Router /pets/{pet_id}/adoptions/{adoption_id} [get]
func (h *AdoptionHandler) GetForPet(c *fiber.Ctx) error {
	actor, err := identity(c)
	if err != nil {
		return respondError(c, err)
	}
	ids, err := uuidParams(c, "pet_id", "adoption_id")
	if err != nil {
		return respondError(c, err)
	}
	adoption, err := h.adoptions.GetForPet(c.UserContext(), actor, ids[0], ids[1])
	if err != nil {
		return respondError(c, err)
	}
	return ok(c, adoption)
}

// /adoptions/:adoption_id/questions

// ListQuestions godoc
// @Summary List attached questions
// @Tags adoptions
// @Produce json
// @Security BearerAuth
// @Param adoption_id path string true "Adoption ID" Format(uuid)
// @Success 200 {object} dto.Envelope{data=[]models.Question}
// @Failure 401 {object} dto.Envelope "missing or invalid token"
// @Failure 403 {object} dto.Envelope "not the owner"
// @Failure 404 {object} dto.Envelope "adoption not found"
// @Router /adoptions/{adoption_id}/questions [get]
func (h *AdoptionHandler) ListQuestions(c *fiber.Ctx) error {
	actor, err := identity(c)
	if err != nil {
		return respondError(c, err)
	}
	id, err := uuidParam(c, "adoption_id")
	if err != nil {
		return respondError(c, err)
	}
	questions, err := h.adoptions.ListQuestions(c.UserContext(), actor, id)
	if err != nil {
		return respondError(c, err)
	}
	return ok(c, questions)
}

// GetQuestion godoc
// @Summary Get an attached question
// @Tags adoptions
// @Produce json
// @Security BearerAuth
// @Param adoption_id path string true "Adoption ID" Format(uuid)
// @Param question_id path string true "Question ID" Format(uuid)
// @Success 200 {object} dto.Envelope{data=models.Question}
// @Failure 401 {object} dto.Envelope "missing or invalid token"
// @Failure 403 {object} dto.Envelope "not the owner"
// @Failure 404 {object} dto.Envelope "adoption or question not found"
// @Router /adoptions/{adoption_id}/questions/{question_id} [get]
func (h *AdoptionHandler) GetQuestion(c *fiber.Ctx) error {
	actor, err := identity(c)
	if err != nil {
		return respondError(c, err)
	}
	ids, err := uuidParams(c, "adoption_id", "question_id")
	if err != nil {
		return respondError(c, err)
	}
	question, err := h.adoptions.GetQuestion(c.UserContext(), actor, ids[0], ids[1])
	if err != nil {
		return respondError(c, err)
	}
	return ok(c, question)
}

// AttachQuestion godoc
// @Summary Attach a question
// @Tags adoptions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param adoption_id path string true "Adoption ID" Format(uuid)
// @Param payload body dto.AttachQuestionRequest true "Question to attach"
// @Success 201 {object} dto.Envelope{data=models.Question}
// @Failure 400 {object} dto.Envelope "validation failed"
// @Failure 401 {object} dto.Envelope "missing or invalid token"
// @Failure 403 {object} dto.Envelope "admin only"
// @Failure 404 {object} dto.Envelope "adoption or question not found"
// @Failure 409 {object} dto.Envelope "question already attached"
// @Router /adoptions/{adoption_id}/questions [post]
func (h *AdoptionHandler) AttachQuestion(c *fiber.Ctx) error {
	id, err := uuidParam(c, "adoption_id")
	if err != nil {
		return respondError(c, err)
	}
	var req dto.AttachQuestionRequest
	if err := bind(c, &req); err != nil {
		return respondError(c, err)
	}

	question, err := h.adoptions.AttachQuestion(c.UserContext(), id, &req)
	if err != nil {
		return respondError(c, err)
	}
	return created(c, question)
}

// DetachQuestion godoc
// @Summary Detach a question
// @Tags adoptions
// @Produce json
// @Security BearerAuth
// @Param adoption_id path string true "Adoption ID" Format(uuid)
// @Param question_id path string true "Question ID" Format(uuid)
// @Success 204 "No Content"
// @Failure 401 {object} dto.Envelope "missing or invalid token"
// @Failure 403 {object} dto.Envelope "admin only"
// @Failure 404 {object} dto.Envelope "adoption or question not found"
// @Router /adoptions/{adoption_id}/questions/{question_id} [delete]
func (h *AdoptionHandler) DetachQuestion(c *fiber.Ctx) error {
	ids, err := uuidParams(c, "adoption_id", "question_id")
	if err != nil {
		return respondError(c, err)
	}
	if err := h.adoptions.DetachQuestion(c.UserContext(), ids[0], ids[1]); err != nil {
		return respondError(c, err)
	}
	return noContent(c)
}

// /adoptions/:adoption_id/answers

// ListAnswers godoc
// @Summary List answers
// @Description Answers come back in the order they were submitted.
// @Tags adoptions
// @Produce json
// @Security BearerAuth
// @Param adoption_id path string true "Adoption ID" Format(uuid)
// @Success 200 {object} dto.Envelope{data=[]models.Answer}
// @Failure 401 {object} dto.Envelope "missing or invalid token"
// @Failure 403 {object} dto.Envelope "not the owner"
// @Failure 404 {object} dto.Envelope "adoption not found"
// @Router /adoptions/{adoption_id}/answers [get]
func (h *AdoptionHandler) ListAnswers(c *fiber.Ctx) error {
	actor, err := identity(c)
	if err != nil {
		return respondError(c, err)
	}
	id, err := uuidParam(c, "adoption_id")
	if err != nil {
		return respondError(c, err)
	}
	answers, err := h.adoptions.ListAnswers(c.UserContext(), actor, id)
	if err != nil {
		return respondError(c, err)
	}
	return ok(c, answers)
}

// AddAnswers godoc
// @Summary Submit answers
// @Tags adoptions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param adoption_id path string true "Adoption ID" Format(uuid)
// @Param payload body dto.CreateAnswersRequest true "Answers"
// @Success 201 {object} dto.Envelope{data=[]models.Answer}
// @Failure 400 {object} dto.Envelope "validation failed"
// @Failure 401 {object} dto.Envelope "missing or invalid token"
// @Failure 403 {object} dto.Envelope "not the owner"
// @Failure 404 {object} dto.Envelope "adoption or question not found"
// @Router /adoptions/{adoption_id}/answers [post]
func (h *AdoptionHandler) AddAnswers(c *fiber.Ctx) error {
	actor, err := identity(c)
	if err != nil {
		return respondError(c, err)
	}
	id, err := uuidParam(c, "adoption_id")
	if err != nil {
		return respondError(c, err)
	}
	var req dto.CreateAnswersRequest
	if err := bind(c, &req); err != nil {
		return respondError(c, err)
	}

	answers, err := h.adoptions.AddAnswers(c.UserContext(), actor, id, &req)
	if err != nil {
		return respondError(c, err)
	}
	return created(c, answers)
}

// GetAnswer godoc
// @Summary Get an answer
// @Tags adoptions
// @Produce json
// @Security BearerAuth
// @Param adoption_id path string true "Adoption ID" Format(uuid)
// @Param answer_id path string true "Answer ID" Format(uuid)
// @Success 200 {object} dto.Envelope{data=models.Answer}
// @Failure 401 {object} dto.Envelope "missing or invalid token"
// @Failure 403 {object} dto.Envelope "not the owner"
// @Failure 404 {object} dto.Envelope "adoption or answer not found"
// @Router /adoptions/{adoption_id}/answers/{answer_id} [get]
func (h *AdoptionHandler) GetAnswer(c *fiber.Ctx) error {
	actor, err := identity(c)
	if err != nil {
		return respondError(c, err)
	}
	ids, err := uuidParams(c, "adoption_id", "answer_id")
	if err != nil {
		return respondError(c, err)
	}
	answer, err := h.adoptions.GetAnswer(c.UserContext(), actor, ids[0], ids[1])
	if err != nil {
		return respondError(c, err)
	}
	return ok(c, answer)
}

// UpdateAnswer godoc
// @Summary Update an answer
// @Tags adoptions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param adoption_id path string true "Adoption ID" Format(uuid)
// @Param answer_id path string true "Answer ID" Format(uuid)
// @Param payload body dto.UpdateAnswerRequest true "New content"
// @Success 200 {object} dto.Envelope{data=models.Answer}
// @Failure 400 {object} dto.Envelope "validation failed"
// @Failure 401 {object} dto.Envelope "missing or invalid token"
// @Failure 403 {object} dto.Envelope "not the owner"
// @Failure 404 {object} dto.Envelope "adoption or answer not found"
// @Router /adoptions/{adoption_id}/answers/{answer_id} [put]
func (h *AdoptionHandler) UpdateAnswer(c *fiber.Ctx) error {
	actor, err := identity(c)
	if err != nil {
		return respondError(c, err)
	}
	ids, err := uuidParams(c, "adoption_id", "answer_id")
	if err != nil {
		return respondError(c, err)
	}
	var req dto.UpdateAnswerRequest
	if err := bind(c, &req); err != nil {
		return respondError(c, err)
	}

	answer, err := h.adoptions.UpdateAnswer(c.UserContext(), actor, ids[0], ids[1], &req)
	if err != nil {
		return respondError(c, err)
	}
	return ok(c, answer)
}

// DeleteAnswer godoc
// @Summary Delete an answer
// @Tags adoptions
// @Produce json
// @Security BearerAuth
// @Param adoption_id path string true "Adoption ID" Format(uuid)
// @Param answer_id path string true "Answer ID" Format(uuid)
// @Success 204 "No Content"
// @Failure 401 {object} dto.Envelope "missing or invalid token"
// @Failure 403 {object} dto.Envelope "admin only"
// @Failure 404 {object} dto.Envelope "adoption or answer not found"
// @Router /adoptions/{adoption_id}/answers/{answer_id} [delete]
func (h *AdoptionHandler) DeleteAnswer(c *fiber.Ctx) error {
	ids, err := uuidParams(c, "adoption_id", "answer_id")
	if err != nil {
		return respondError(c, err)
	}
	if err := h.adoptions.DeleteAnswer(c.UserContext(), ids[0], ids[1]); err != nil {
		return respondError(c, err)
	}
	return noContent(c)
}
