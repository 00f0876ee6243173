package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/patinhas/adoption-api/internal/authctx"
	"github.com/patinhas/adoption-api/internal/dto"
	"github.com/patinhas/adoption-api/internal/models"
)

type DonationService interface {
	Create(ctx context.Context, userID uuid.UUID, req *dto.CreateDonationRequest) (*models.Donation, error)
	List(ctx context.Context, page dto.PageQuery) ([]models.Donation, int64, error)
	ListByUser(ctx context.Context, userID uuid.UUID, page dto.PageQuery) ([]models.Donation, int64, error)
	ListByPet(ctx context.Context, petID uuid.UUID, page dto.PageQuery) ([]models.Donation, int64, error)
	Get(ctx context.Context, actor authctx.Identity, id uuid.UUID) (*models.Donation, error)
	GetForUser(ctx context.Context, userID, id uuid.UUID) (*models.Donation, error)
	GetForPet(ctx context.Context, petID, id uuid.UUID) (*models.Donation, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteForUser(ctx context.Context, userID, id uuid.UUID) error
}

type DonationHandler struct {
	donations DonationService
}

func NewDonationHandler(donations DonationService) *DonationHandler {
	return &DonationHandler{donations: donations}
}

// Create godoc
// @Summary Register a donation
// @Tags donations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.CreateDonationRequest true "Pet receiving the donation"
// @Success 201 {object} dto.Envelope{data=models.Donation}
// @Failure 400 {object} dto.Envelope "validation failed"
// @Failure 401 {object} dto.Envelope "missing or invalid token"
// @Failure 404 {object} dto.Envelope "pet not found"
// @Router /donations [post]
func (h *DonationHandler) Create(c *fiber.Ctx) error {
	actor, err := identity(c)
	if err != nil {
		return respondError(c, err)
	}
	return h.create(c, actor.UserID)
}

func (h *DonationHandler) create(c *fiber.Ctx, userID uuid.UUID) error {
	var req dto.CreateDonationRequest
	if err := bind(c, &req); err != nil {
		return respondError(c, err)
	}
	donation, err := h.donations.Create(c.UserContext(), userID, &req)
	if err != nil {
		return respondError(c, err)
	}
	return created(c, donation)
}

// List godoc
// @Summary List donations
// @Tags donations
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" minimum(1) default(1)
// @Param limit query int false "Page size" minimum(1) maximum(100) default(10)
// @Success 200 {object} dto.Envelope{data=[]models.Donation}
// @Failure 400 {object} dto.Envelope "validation failed"
// @Failure 401 {object} dto.Envelope "missing or invalid token"
// @Failure 403 {object} dto.Envelope "admin only"
// @Router /donations [get]
func (h *DonationHandler) List(c *fiber.Ctx) error {
	page, err := pageQuery(c)
	if err != nil {
		return respondError(c, err)
	}
	donations, total, err := h.donations.List(c.UserContext(), page)
	if err != nil {
		return respondError(c, err)
	}
	return paged(c, donations, total, page)
}

// Mine lists the caller's own donations.
// @Summary List own donations
// @Tags donations
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" minimum(1) default(1)
// @Param limit query int false "Page size" minimum(1) maximum(100) default(10)
// @Success 200 {object} dto.Envelope{data=[]models.Donation}
// @Failure 400 {object} dto.Envelope "validation failed"
// @Failure 401 {object} dto.Envelope "missing or invalid token"
// @Router /donations/user [get]
func (h *DonationHandler) Mine(c *fiber.Ctx) error {
	actor, err := identity(c)
	if err != nil {
		return respondError(c, err)
	}
	return h.listByUser(c, actor.UserID)
}

func (h *DonationHandler) listByUser(c *fiber.Ctx, userID uuid.UUID) error {
	page, err := pageQuery(c)
	if err != nil {
		return respondError(c, err)
	}
	donations, total, err := h.donations.ListByUser(c.UserContext(), userID, page)
	if err != nil {
		return respondError(c, err)
	}
	return paged(c, donations, total, page)
}

// Get godoc
// @Summary Get a donation
// @Tags donations
// @Produce json
// @Security BearerAuth
// @Param donation_id path string true "Donation ID" Format(uuid)
// @Success 200 {object} dto.Envelope{data=models.Donation}
// @Failure 401 {object} dto.Envelope "missing or invalid token"
// @Failure 403 {object} dto.Envelope "not the owner"
// @Failure 404 {object} dto.Envelope "donation not found"
// @Router /donations/{donation_id} [get]
func (h *DonationHandler) Get(c *fiber.Ctx) error {
	actor, err := identity(c)
	if err != nil {
		return respondError(c, err)
	}
	id, err := uuidParam(c, "donation_id")
	if err != nil {
		return respondError(c, err)
	}
	donation, err := h.donations.Get(c.UserContext(), actor, id)
	if err != nil {
		return respondError(c, err)
	}
	return ok(c, donation)
}

// Delete godoc
// @Summary Delete a donation
// @Tags donations
// @Produce json
// @Security BearerAuth
// @Param donation_id path string true "Donation ID" Format(uuid)
// @Success 204 "No Content"
// @Failure 401 {object} dto.Envelope "missing or invalid token"
// @Failure 403 {object} dto.Envelope "admin only"
// @Failure 404 {object} dto.Envelope "donation not found"
// @Router /donations/{donation_id} [delete]
func (h *DonationHandler) Delete(c *fiber.Ctx) error {
	id, err := uuidParam(c, "donation_id")
	if err != nil {
		return respondError(c, err)
	}
	if err := h.donations.Delete(c.UserContext(), id); err != nil {
		return respondError(c, err)
	}
	return noContent(c)
}

// ListForUser godoc
// @Summary List a user's donations
// @Tags donations
// @Produce json
// @Security BearerAuth
// @Param user_id path string true "User ID" Format(uuid)
// @Param page query int false "Page number" minimum(1) default(1)
// @Param limit query int false "Page size" minimum(1) maximum(100) default(10)
// @Success 200 {object} dto.Envelope{data=[]models.Donation}
// @Failure 400 {object} dto.Envelope "validation failed"
// @Failure 401 {object} dto.Envelope "missing or invalid token"
// @Failure 403 {object} dto.Envelope "not the owner"
// @Router /users/{user_id}/donations [get]
func (h *DonationHandler) ListForUser(c *fiber.Ctx) error {
	userID, err := uuidParam(c, "user_id")
	if err != nil {
		return respondError(c, err)
	}
	return h.listByUser(c, userID)
}

// CreateForUser godoc
// @Summary Register a donation for a user
// @Tags donations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param user_id path string true "User ID" Format(uuid)
// @Param payload body dto.CreateDonationRequest true "Pet receiving the donation"
// @Success 201 {object} dto.Envelope{data=models.Donation}
// @Failure 400 {object} dto.Envelope "validation failed"
// @Failure 401 {object} dto.Envelope "missing or invalid token"
// @Failure 403 {object} dto.Envelope "not the owner"
// @Failure 404 {object} dto.Envelope "user or pet not found"
// @Router /users/{user_id}/donations [post]
func (h *DonationHandler) CreateForUser(c *fiber.Ctx) error {
	userID, err := uuidParam(c, "user_id")
	if err != nil {
		return respondError(c, err)
	}
	return h.create(c, userID)
}

// GetForUser godoc
// @Summary Get a user's donation
// @Tags donations
// @Produce json
// @Security BearerAuth
// @Param user_id path string true "User ID" Format(uuid)
// @Param donation_id path string true "Donation ID" Format(uuid)
// @Success 200 {object} dto.Envelope{data=models.Donation}
// @Failure 401 {object} dto.Envelope "missing or invalid token"
// @Failure 403 {object} dto.Envelope "not the owner"
// @Failure 404 {object} dto.Envelope "donation not found"
// @Router /users/{user_id}/donations/{donation_id} [get]
func (h *DonationHandler) GetForUser(c *fiber.Ctx) error {
	ids, err := uuidParams(c, "user_id", "donation_id")
	if err != nil {
		return respondError(c, err)
	}
	donation, err := h.donations.GetForUser(c.UserContext(), ids[0], ids[1])
	if err != nil {
		return respondError(c, err)
	}
	return ok(c, donation)
}

// DeleteForUser godoc
// @Summary Delete a user's donation
// @Tags donations
// @Produce json
// @Security BearerAuth
// @Param user_id path string true "User ID" Format(uuid)
// @Param donation_id path string true "Donation ID" Format(uuid)
// @Success 204 "No Content"
// @Failure 401 {object} dto.Envelope "missing or invalid token"
// @Failure 403 {object} dto.Envelope "not the owner"
// @Failure 404 {object} dto.Envelope "donation not found"
// @Router /users/{user_id}/donations/{donation_id} [delete]
func (h *DonationHandler) DeleteForUser(c *fiber.Ctx) error {
	ids, err := uuidParams(c, "user_id", "donation_id")
	if err != nil {
		return respondError(c, err)
	}
	if err := h.donations.DeleteForUser(c.UserContext(), ids[0], ids[1]); err != nil {
		return respondError(c, err)
	}
	return noContent(c)
}

// ListForPet godoc
// @Summary List a pet's donations
// @Tags donations
// @Produce json
// @Security BearerAuth
// @Param pet_id path string true "Pet ID" Format(uuid)
// @Param page query int false "Page number" minimum(1) default(1)
// @Param limit query int false "Page size" minimum(1) maximum(100) default(10)
// @Success 200 {object} dto.Envelope{data=[]models.Donation}
// @Failure 400 {object} dto.Envelope "validation failed"
// @Failure 401 {object} dto.Envelope "missing or invalid token"
// @Failure 404 {object} dto.Envelope "pet not found"
// @Router /pets/{pet_id}/donations [get]
func (h *DonationHandler) ListForPet(c *fiber.Ctx) error {
	petID, err := uuidParam(c, "pet_id")
	if err != nil {
		return respondError(c, err)
	}
	page, err := pageQuery(c)
	if err != nil {
		return respondError(c, err)
	}
	donations, total, err := h.donations.ListByPet(c.UserContext(), petID, page)
	if err != nil {
		return respondError(c, err)
	}
	return paged(c, donations, total, page)
}

// GetForPet godoc
// @Summary Get a pet's donation
// @Tags donations
// @Produce json
// @Security BearerAuth
// @Param pet_id path string true "Pet ID" Format(uuid)
// @Param donation_id path string true "Donation ID" Format(uuid)
// @Success 200 {object} dto.Envelope{data=models.Donation}
// @Failure 401 {object} dto.Envelope "missing or invalid token"
// @Failure 404 {object} dto.Envelope "donation not found"
// @Router /pets/{pet_id}/donations/{donation_id} [get]
func (h *DonationHandler) GetForPet(c *fiber.Ctx) error {
	ids, err := uuidParams(c, "pet_id", "donation_id")
	if err != nil {
		return respondError(c, err)
	}
	donation, err := h.donations.GetForPet(c.UserContext(), ids[0], ids[1])
	if err != nil {
		return respondError(c, err)
	}
	return ok(c, donation)
}
