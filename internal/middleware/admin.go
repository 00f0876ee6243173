package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/patinhas/adoption-api/internal/authctx"
	"github.com/patinhas/adoption-api/internal/dto"
)

// AdminRequired must run after JWTProtected.
func AdminRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, ok := authctx.From(c)
		if !ok {
			return unauthorized(c, "Unauthorized")
		}
		if !identity.IsAdmin {
			return forbidden(c, "Admin access required")
		}
		return c.Next()
	}
}

// SelfOrAdmin guards /users/:user_id/... routes: the path user must be the
// caller unless the caller is an admin.
func SelfOrAdmin(param string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, ok := authctx.From(c)
		if !ok {
			return unauthorized(c, "Unauthorized")
		}
		userID, err := uuid.Parse(c.Params(param))
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.Envelope{
				Status:  dto.StatusError,
				Message: "Validation failed",
				Errors:  []dto.FieldError{{Field: param, Message: "must be a valid UUID"}},
			})
		}
		if !identity.CanActFor(userID) {
			return forbidden(c, "You do not have permission to access this resource")
		}
		return c.Next()
	}
}

func forbidden(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusForbidden).JSON(dto.Envelope{
		Status: dto.StatusError, Message: message,
	})
}
