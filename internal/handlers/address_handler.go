package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/patinhas/adoption-api/internal/authctx"
	"github.com/patinhas/adoption-api/internal/dto"
	"github.com/patinhas/adoption-api/internal/models"
)

type AddressService interface {
	List(ctx context.Context, page dto.PageQuery) ([]models.Address, int64, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Address, error)
	Create(ctx context.Context, userID uuid.UUID, req *dto.CreateAddressRequest) (*models.Address, error)
	Get(ctx context.Context, actor authctx.Identity, id uuid.UUID) (*models.Address, error)
	GetForUser(ctx context.Context, userID, id uuid.UUID) (*models.Address, error)
	Update(ctx context.Context, actor authctx.Identity, id uuid.UUID, req *dto.UpdateAddressRequest) (*models.Address, error)
	Delete(ctx context.Context, actor authctx.Identity, id uuid.UUID) error
}

type AddressHandler struct {
	addresses AddressService
}

func NewAddressHandler(addresses AddressService) *AddressHandler {
	return &AddressHandler{addresses: addresses}
}

// List godoc
// @Summary List addresses
// @Tags addresses
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" minimum(1) default(1)
// @Param limit query int false "Page size" minimum(1) maximum(100) default(10)
// @Success 200 {object} dto.Envelope{data=[]models.Address}
// @Failure 400 {object} dto.Envelope "validation failed"
// @Failure 401 {object} dto.Envelope "missing or invalid token"
// @Failure 403 {object} dto.Envelope "admin only"
// @Router /addresses [get]
func (h *AddressHandler) List(c *fiber.Ctx) error {
	page, err := pageQuery(c)
	if err != nil {
		return respondError(c, err)
	}
	addresses, total, err := h.addresses.List(c.UserContext(), page)
	if err != nil {
		return respondError(c, err)
	}
	return paged(c, addresses, total, page)
}

// Create godoc
// @Summary Create an address
// @Tags addresses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.CreateAddressRequest true "Address data"
// @Success 201 {object} dto.Envelope{data=models.Address}
// @Failure 400 {object} dto.Envelope "validation failed"
// @Failure 401 {object} dto.Envelope "missing or invalid token"
// @Router /addresses [post]
func (h *AddressHandler) Create(c *fiber.Ctx) error {
	actor, err := identity(c)
	if err != nil {
		return respondError(c, err)
	}
	return h.create(c, actor.UserID)
}

func (h *AddressHandler) create(c *fiber.Ctx, userID uuid.UUID) error {
	var req dto.CreateAddressRequest
	if err := bind(c, &req); err != nil {
		return respondError(c, err)
	}
	addr, err := h.addresses.Create(c.UserContext(), userID, &req)
	if err != nil {
		return respondError(c, err)
	}
	return created(c, addr)
}

// Get godoc
// @Summary Get an address
// @Tags addresses
// @Produce json
// @Security BearerAuth
// @Param address_id path string true "Address ID" Format(uuid)
// @Success 200 {object} dto.Envelope{data=models.Address}
// @Failure 401 {object} dto.Envelope "missing or invalid token"
// @Failure 403 {object} dto.Envelope "not the owner"
// @Failure 404 {object} dto.Envelope "address not found"
// @Router /addresses/{address_id} [get]
func (h *AddressHandler) Get(c *fiber.Ctx) error {
	actor, err := identity(c)
	if err != nil {
		return respondError(c, err)
	}
	id, err := uuidParam(c, "address_id")
	if err != nil {
		return respondError(c, err)
	}
	addr, err := h.addresses.Get(c.UserContext(), actor, id)
	if err != nil {
		return respondError(c, err)
	}
	return ok(c, addr)
}

// Update godoc
// @Summary Update an address
// @Tags addresses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param address_id path string true "Address ID" Format(uuid)
// @Param payload body dto.UpdateAddressRequest true "Fields to change"
// @Success 200 {object} dto.Envelope{data=models.Address}
// @Failure 400 {object} dto.Envelope "validation failed"
// @Failure 401 {object} dto.Envelope "missing or invalid token"
// @Failure 403 {object} dto.Envelope "not the owner"
// @Failure 404 {object} dto.Envelope "address not found"
// @Router /addresses/{address_id} [put]
func (h *AddressHandler) Update(c *fiber.Ctx) error {
	actor, err := identity(c)
	if err != nil {
		return respondError(c, err)
	}
	id, err := uuidParam(c, "address_id")
	if err != nil {
		return respondError(c, err)
	}
	return h.update(c, actor, id)
}

func (h *AddressHandler) update(c *fiber.Ctx, actor authctx.Identity, id uuid.UUID) error {
	var req dto.UpdateAddressRequest
	if err := bind(c, &req); err != nil {
		return respondError(c, err)
	}
	addr, err := h.addresses.Update(c.UserContext(), actor, id, &req)
	if err != nil {
		return respondError(c, err)
	}
	return ok(c, addr)
}

// Delete godoc
// @Summary Delete an address
// @Tags addresses
// @Produce json
// @Security BearerAuth
// @Param address_id path string true "Address ID" Format(uuid)
// @Success 204 "No Content"
// @Failure 401 {object} dto.Envelope "missing or invalid token"
// @Failure 403 {object} dto.Envelope "not the owner"
// @Failure 404 {object} dto.Envelope "address not found"
// @Router /addresses/{address_id} [delete]
func (h *AddressHandler) Delete(c *fiber.Ctx) error {
	actor, err := identity(c)
	if err != nil {
		return respondError(c, err)
	}
	id, err := uuidParam(c, "address_id")
	if err != nil {
		return respondError(c, err)
	}
	if err := h.addresses.Delete(c.UserContext(), actor, id); err != nil {
		return respondError(c, err)
	}
	return noContent(c)
}

// ListForUser godoc
// @Summary List a user's addresses
// @Tags addresses
// @Produce json
// @Security BearerAuth
// @Param user_id path string true "User ID" Format(uuid)
// @Success 200 {object} dto.Envelope{data=[]models.Address}
// @Failure 401 {object} dto.Envelope "missing or invalid token"
// @Failure 403 {object} dto.Envelope "not the owner"
// @Router /users/{user_id}/addresses [get]
func (h *AddressHandler) ListForUser(c *fiber.Ctx) error {
	userID, err := uuidParam(c, "user_id")
	if err != nil {
		return respondError(c, err)
	}
	addresses, err := h.addresses.ListByUser(c.UserContext(), userID)
	if err != nil {
		return respondError(c, err)
	}
	return ok(c, addresses)
}

// CreateForUser godoc
// @Summary Create an address for a user
// @Tags addresses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param user_id path string true "User ID" Format(uuid)
// @Param payload body dto.CreateAddressRequest true "Address data"
// @Success 201 {object} dto.Envelope{data=models.Address}
// @Failure 400 {object} dto.Envelope "validation failed"
// @Failure 401 {object} dto.Envelope "missing or invalid token"
// @Failure 403 {object} dto.Envelope "not the owner"
// @Failure 404 {object} dto.Envelope "user not found"
// @Router /users/{user_id}/addresses [post]
func (h *AddressHandler) CreateForUser(c *fiber.Ctx) error {
	userID, err := uuidParam(c, "user_id")
	if err != nil {
		return respondError(c, err)
	}
	return h.create(c, userID)
}

// GetForUser godoc
// @Summary Get a user's address
// @Tags addresses
// @Produce json
// @Security BearerAuth
// @Param user_id path string true "User ID" Format(uuid)
// @Param address_id path string true "Address ID" Format(uuid)
// @Success 200 {object} dto.Envelope{data=models.Address}
// @Failure 401 {object} dto.Envelope "missing or invalid token"
// @Failure 403 {object} dto.Envelope "not the owner"
// @Failure 404 {object} dto.Envelope "address not found"
// @Router /users/{user_id}/addresses/{address_id} [get]
func (h *AddressHandler) GetForUser(c *fiber.Ctx) error {
	ids, err := uuidParams(c, "user_id", "address_id")
	if err != nil {
		return respondError(c, err)
	}
	addr, err := h.addresses.GetForUser(c.UserContext(), ids[0], ids[1])
	if err != nil {
		return respondError(c, err)
	}
	return ok(c, addr)
}

// UpdateForUser and DeleteForUser first confirm the address belongs to
// :user_id so another user's id in the path reads as not found.
// @Summary Update a user's address
// @Tags addresses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param user_id path string true "User ID" Format(uuid)
// @Param address_id path string true "Address ID" Format(uuid)
// @Param payload body dto.UpdateAddressRequest true "Fields to change"
// @Success 200 {object} dto.Envelope{data=models.Address}
// @Failure 400 {object} dto.Envelope "validation failed"
// @Failure 401 {object} dto.Envelope "missing or invalid token"
// @Failure 403 {object} dto.Envelope "not the owner"
// @Failure 404 {object} dto.Envelope "address not found"
// @Router /users/{user_id}/addresses/{address_id} [put]
func (h *AddressHandler) UpdateForUser(c *fiber.Ctx) error {
	actor, err := identity(c)
	if err != nil {
		return respondError(c, err)
	}
	ids, err := uuidParams(c, "user_id", "address_id")
	if err != nil {
		return respondError(c, err)
	}
	if _, err := h.addresses.GetForUser(c.UserContext(), ids[0], ids[1]); err != nil {
		return respondError(c, err)
	}
	return h.update(c, actor, ids[1])
}

// DeleteForUser godoc
// @Summary Delete a user's address
// @Tags addresses
// @Produce json
// @Security BearerAuth
// @Param user_id path string true "User ID" Format(uuid)
// @Param address_id path string true "Address ID" Format(uuid)
// @Success 204 "No Content"
// @Failure 401 {object} dto.Envelope "missing or invalid token"
// @Failure 403 {object} dto.Envelope "not the owner"
// @Failure 404 {object} dto.Envelope "address not found"
// @Router /users/{user_id}/addresses/{address_id} [delete]
func (h *AddressHandler) DeleteForUser(c *fiber.Ctx) error {
	actor, err := identity(c)
	if err != nil {
		return respondError(c, err)
	}
	ids, err := uuidParams(c, "user_id", "address_id")
	if err != nil {
		return respondError(c, err)
	}
	if _, err := h.addresses.GetForUser(c.UserContext(), ids[0], ids[1]); err != nil {
		return respondError(c, err)
	}
	if err := h.addresses.Delete(c.UserContext(), actor, ids[1]); err != nil {
		return respondError(c, err)
	}
	return noContent(c)
}
