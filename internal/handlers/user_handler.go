package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/patinhas/adoption-api/internal/authctx"
	"github.com/patinhas/adoption-api/internal/dto"
	"github.com/patinhas/adoption-api/internal/models"
)

type UserService interface {
	Create(ctx context.Context, req *dto.CreateUserRequest) (*models.User, error)
	Get(ctx context.Context, id uuid.UUID) (*models.User, error)
	List(ctx context.Context, page dto.PageQuery) ([]models.User, int64, error)
	Update(ctx context.Context, actor authctx.Identity, id uuid.UUID, req *dto.UpdateUserRequest) (*models.User, error)
	ChangePassword(ctx context.Context, id uuid.UUID, req *dto.ChangePasswordRequest) error
	SetAdmin(ctx context.Context, id uuid.UUID, isAdmin bool) (*models.User, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type UserHandler struct {
	users UserService
}

func NewUserHandler(users UserService) *UserHandler {
	return &UserHandler{users: users}
}

// Register is the public sign-up endpoint.
// @Summary Register a user
// @Tags users
// @Accept json
// @Produce json
// @Param payload body dto.CreateUserRequest true "User data"
// @Success 201 {object} dto.Envelope{data=models.User}
// @Failure 400 {object} dto.Envelope "validation failed"
// @Failure 409 {object} dto.Envelope "email or login already in use"
// @Router /users [post]
func (h *UserHandler) Register(c *fiber.Ctx) error {
	var req dto.CreateUserRequest
	if err := bind(c, &req); err != nil {
		return respondError(c, err)
	}

	user, err := h.users.Create(c.UserContext(), &req)
	if err != nil {
		return respondError(c, err)
	}
	return created(c, user)
}

// Me godoc
// @Summary Current user
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.Envelope{data=models.User}
// @Failure 401 {object} dto.Envelope "missing or invalid token"
// @Router /users/me [get]
func (h *UserHandler) Me(c *fiber.Ctx) error {
	actor, err := identity(c)
	if err != nil {
		return respondError(c, err)
	}
	user, err := h.users.Get(c.UserContext(), actor.UserID)
	if err != nil {
		return respondError(c, err)
	}
	return ok(c, user)
}

// UpdateMe godoc
// @Summary Update current user
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.UpdateUserRequest true "Fields to change"
// @Success 200 {object} dto.Envelope{data=models.User}
// @Failure 400 {object} dto.Envelope "validation failed"
// @Failure 401 {object} dto.Envelope "missing or invalid token"
// @Failure 409 {object} dto.Envelope "email or login already in use"
// @Router /users/me [put]
func (h *UserHandler) UpdateMe(c *fiber.Ctx) error {
	actor, err := identity(c)
	if err != nil {
		return respondError(c, err)
	}
	return h.update(c, actor, actor.UserID)
}

// ChangePassword godoc
// @Summary Change password
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.ChangePasswordRequest true "Current and new password"
// @Success 200 {object} dto.Envelope
// @Failure 400 {object} dto.Envelope "validation failed or wrong current password"
// @Failure 401 {object} dto.Envelope "missing or invalid token"
// @Router /users/me/password [put]
func (h *UserHandler) ChangePassword(c *fiber.Ctx) error {
	actor, err := identity(c)
	if err != nil {
		return respondError(c, err)
	}
	var req dto.ChangePasswordRequest
	if err := bind(c, &req); err != nil {
		return respondError(c, err)
	}

	if err := h.users.ChangePassword(c.UserContext(), actor.UserID, &req); err != nil {
		return respondError(c, err)
	}
	return message(c, "Password updated successfully")
}

// List godoc
// @Summary List users
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" minimum(1) default(1)
// @Param limit query int false "Page size" minimum(1) maximum(100) default(10)
// @Success 200 {object} dto.Envelope{data=[]models.User}
// @Failure 400 {object} dto.Envelope "validation failed"
// @Failure 401 {object} dto.Envelope "missing or invalid token"
// @Failure 403 {object} dto.Envelope "admin only"
// @Router /users [get]
func (h *UserHandler) List(c *fiber.Ctx) error {
	page, err := pageQuery(c)
	if err != nil {
		return respondError(c, err)
	}
	users, total, err := h.users.List(c.UserContext(), page)
	if err != nil {
		return respondError(c, err)
	}
	return paged(c, users, total, page)
}

// Get godoc
// @Summary Get a user
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param user_id path string true "User ID" Format(uuid)
// @Success 200 {object} dto.Envelope{data=models.User}
// @Failure 401 {object} dto.Envelope "missing or invalid token"
// @Failure 403 {object} dto.Envelope "admin only"
// @Failure 404 {object} dto.Envelope "user not found"
// @Router /users/{user_id} [get]
func (h *UserHandler) Get(c *fiber.Ctx) error {
	id, err := uuidParam(c, "user_id")
	if err != nil {
		return respondError(c, err)
	}
	user, err := h.users.Get(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return ok(c, user)
}

// Update godoc
// @Summary Update a user
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param user_id path string true "User ID" Format(uuid)
// @Param payload body dto.UpdateUserRequest true "Fields to change"
// @Success 200 {object} dto.Envelope{data=models.User}
// @Failure 400 {object} dto.Envelope "validation failed"
// @Failure 401 {object} dto.Envelope "missing or invalid token"
// @Failure 403 {object} dto.Envelope "admin only"
// @Failure 404 {object} dto.Envelope "user not found"
// @Failure 409 {object} dto.Envelope "email or login already in use"
// @Router /users/{user_id} [put]
func (h *UserHandler) Update(c *fiber.Ctx) error {
	actor, err := identity(c)
	if err != nil {
		return respondError(c, err)
	}
	id, err := uuidParam(c, "user_id")
	if err != nil {
		return respondError(c, err)
	}
	return h.update(c, actor, id)
}

func (h *UserHandler) update(c *fiber.Ctx, actor authctx.Identity, id uuid.UUID) error {
	var req dto.UpdateUserRequest
	if err := bind(c, &req); err != nil {
		return respondError(c, err)
	}
	user, err := h.users.Update(c.UserContext(), actor, id, &req)
	if err != nil {
		return respondError(c, err)
	}
	return ok(c, user)
}

// SetAdmin godoc
// @Summary Grant or revoke admin
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param user_id path string true "User ID" Format(uuid)
// @Param payload body dto.SetAdminRequest true "Admin flag"
// @Success 200 {object} dto.Envelope{data=models.User}
// @Failure 400 {object} dto.Envelope "validation failed"
// @Failure 401 {object} dto.Envelope "missing or invalid token"
// @Failure 403 {object} dto.Envelope "admin only"
// @Failure 404 {object} dto.Envelope "user not found"
// @Router /users/{user_id}/admin [patch]
func (h *UserHandler) SetAdmin(c *fiber.Ctx) error {
	id, err := uuidParam(c, "user_id")
	if err != nil {
		return respondError(c, err)
	}
	var req dto.SetAdminRequest
	if err := bind(c, &req); err != nil {
		return respondError(c, err)
	}

	user, err := h.users.SetAdmin(c.UserContext(), id, *req.IsAdmin)
	if err != nil {
		return respondError(c, err)
	}
	return ok(c, user)
}

// Delete godoc
// @Summary Delete a user
// @Description Removes the user with their addresses, adoptions and donations.
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param user_id path string true "User ID" Format(uuid)
// @Success 204 "No Content"
// @Failure 401 {object} dto.Envelope "missing or invalid token"
// @Failure 403 {object} dto.Envelope "admin only"
// @Failure 404 {object} dto.Envelope "user not found"
// @Router /users/{user_id} [delete]
func (h *UserHandler) Delete(c *fiber.Ctx) error {
	id, err := uuidParam(c, "user_id")
	if err != nil {
		return respondError(c, err)
	}
	if err := h.users.Delete(c.UserContext(), id); err != nil {
		return respondError(c, err)
	}
	return noContent(c)
}
