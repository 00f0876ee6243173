package authctx

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const localsKey = "identity"

// Identity is the authenticated caller resolved from the bearer token.
type Identity struct {
	UserID  uuid.UUID
	Email   string
	IsAdmin bool
}

// CanActFor reports whether the caller may act on resources owned by userID.
func (i Identity) CanActFor(userID uuid.UUID) bool {
	return i.IsAdmin || i.UserID == userID
}

func Set(c *fiber.Ctx, id Identity) {
	c.Locals(localsKey, id)
}

// From returns the identity stored by the auth middleware.
func From(c *fiber.Ctx) (Identity, bool) {
	id, ok := c.Locals(localsKey).(Identity)
	return id, ok
}
