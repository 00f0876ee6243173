package middleware

import (
	"context"
	"errors"

	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/patinhas/adoption-api/internal/authctx"
	"github.com/patinhas/adoption-api/internal/config"
	"github.com/patinhas/adoption-api/internal/dto"
	"github.com/patinhas/adoption-api/internal/services"
)

// Identifier resolves the subject of a verified access token.
type Identifier interface {
	Identify(ctx context.Context, userID uuid.UUID) (authctx.Identity, error)
}

var errNotAccessToken = errors.New("not an access token")

func JWTProtected(cfg *config.Config, identifier Identifier) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey: jwtware.SigningKey{Key: []byte(cfg.JWTSecret)},
		SuccessHandler: func(c *fiber.Ctx) error {
			identity, err := resolveIdentity(c, identifier)
			switch {
			case err == nil:
				authctx.Set(c, identity)
				return c.Next()
			case errors.Is(err, errNotAccessToken), errors.Is(err, services.ErrUserNotFound):
				return unauthorized(c, "Unauthorized: invalid or expired token")
			case errors.Is(err, services.ErrInactiveUser):
				return unauthorized(c, "Unauthorized: user account is inactive")
			default:
				return err
			}
		},
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return unauthorized(c, "Unauthorized: invalid or expired token")
		},
	})
}

func resolveIdentity(c *fiber.Ctx, identifier Identifier) (authctx.Identity, error) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok {
		return authctx.Identity{}, errNotAccessToken
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return authctx.Identity{}, errNotAccessToken
	}
	// Reset links may share the signing secret; they never authenticate requests.
	if _, ok := claims["purpose"]; ok {
		return authctx.Identity{}, errNotAccessToken
	}
	sub, _ := claims["sub"].(string)
	userID, err := uuid.Parse(sub)
	if err != nil {
		return authctx.Identity{}, errNotAccessToken
	}
	return identifier.Identify(c.UserContext(), userID)
}

func unauthorized(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.Envelope{
		Status: dto.StatusError, Message: message,
	})
}
