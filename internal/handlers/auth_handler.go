package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/patinhas/adoption-api/internal/dto"
)

type AuthService interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error)
	Refresh(ctx context.Context, req *dto.RefreshRequest) (*dto.AuthResponse, error)
	Logout(ctx context.Context, userID uuid.UUID, req *dto.LogoutRequest) error
	RequestPasswordReset(ctx context.Context, req *dto.PasswordResetRequest) error
	ResetPassword(ctx context.Context, token string, req *dto.PasswordResetConfirmRequest) error
}

type AuthHandler struct {
	authService AuthService
}

func NewAuthHandler(authService AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login godoc
// @Summary Log in
// @Description Authenticates with either login or email and returns an access and refresh token pair.
// @Tags auth
// @Accept json
// @Produce json
// @Param payload body dto.LoginRequest true "Login or email and password"
// @Success 200 {object} dto.Envelope{data=dto.AuthResponse}
// @Failure 400 {object} dto.Envelope "validation failed"
// @Failure 401 {object} dto.Envelope "invalid credentials or inactive account"
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := bind(c, &req); err != nil {
		return respondError(c, err)
	}

	resp, err := h.authService.Login(c.UserContext(), &req)
	if err != nil {
		return respondError(c, err)
	}
	return ok(c, resp)
}

// Refresh godoc
// @Summary Rotate tokens
// @Description Exchanges a refresh token for a new pair. The presented token is revoked.
// @Tags auth
// @Accept json
// @Produce json
// @Param payload body dto.RefreshRequest true "Refresh token"
// @Success 200 {object} dto.Envelope{data=dto.AuthResponse}
// @Failure 400 {object} dto.Envelope "validation failed"
// @Failure 401 {object} dto.Envelope "invalid or expired token"
// @Router /auth/refresh [post]
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	var req dto.RefreshRequest
	if err := bind(c, &req); err != nil {
		return respondError(c, err)
	}

	resp, err := h.authService.Refresh(c.UserContext(), &req)
	if err != nil {
		return respondError(c, err)
	}
	return ok(c, resp)
}

// Logout godoc
// @Summary Log out
// @Tags auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.LogoutRequest true "Refresh token to revoke"
// @Success 200 {object} dto.Envelope
// @Failure 400 {object} dto.Envelope "validation failed"
// @Failure 401 {object} dto.Envelope "missing or invalid token"
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	actor, err := identity(c)
	if err != nil {
		return respondError(c, err)
	}
	var req dto.LogoutRequest
	if err := bind(c, &req); err != nil {
		return respondError(c, err)
	}

	if err := h.authService.Logout(c.UserContext(), actor.UserID, &req); err != nil {
		return respondError(c, err)
	}
	return message(c, "Logged out successfully")
}

// RequestPasswordReset answers the same way whether or not the email exists.
// @Summary Request a password reset
// @Description Sends a reset link when the email is registered. The response is the same either way.
// @Tags auth
// @Accept json
// @Produce json
// @Param payload body dto.PasswordResetRequest true "Account email"
// @Success 200 {object} dto.Envelope
// @Failure 400 {object} dto.Envelope "validation failed"
// @Router /auth/password/reset [post]
func (h *AuthHandler) RequestPasswordReset(c *fiber.Ctx) error {
	var req dto.PasswordResetRequest
	if err := bind(c, &req); err != nil {
		return respondError(c, err)
	}

	if err := h.authService.RequestPasswordReset(c.UserContext(), &req); err != nil {
		return respondError(c, err)
	}
	return message(c, "If the email is registered, a reset link has been sent")
}

// ResetPassword godoc
// @Summary Reset password
// @Tags auth
// @Accept json
// @Produce json
// @Param token path string true "Reset token from the email"
// @Param payload body dto.PasswordResetConfirmRequest true "New password"
// @Success 200 {object} dto.Envelope
// @Failure 400 {object} dto.Envelope "validation failed"
// @Failure 401 {object} dto.Envelope "invalid or expired token"
// @Router /auth/password/reset/{token} [post]
func (h *AuthHandler) ResetPassword(c *fiber.Ctx) error {
	var req dto.PasswordResetConfirmRequest
	if err := bind(c, &req); err != nil {
		return respondError(c, err)
	}

	if err := h.authService.ResetPassword(c.UserContext(), c.Params("token"), &req); err != nil {
		return respondError(c, err)
	}
	return message(c, "Password updated successfully")
}
