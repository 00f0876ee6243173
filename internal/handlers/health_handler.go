package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/patinhas/adoption-api/internal/dto"
)

// Pinger reports whether a backing service is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingFunc adapts a function to Pinger.
type PingFunc func(ctx context.Context) error

func (f PingFunc) Ping(ctx context.Context) error { return f(ctx) }

type HealthHandler struct {
	db    Pinger
	cache Pinger
}

func NewHealthHandler(db, cache Pinger) *HealthHandler {
	return &HealthHandler{db: db, cache: cache}
}

// Check always answers 200 so the container stays up while a dependency
// recovers; the body says which one is failing.
// @Summary Service health
// @Tags health
// @Produce json
// @Success 200 {object} dto.Envelope{data=dto.HealthResponse}
// @Router /health [get]
func (h *HealthHandler) Check(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
	defer cancel()

	resp := dto.HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		DB:        "ok",
		Cache:     "ok",
	}
	if err := h.db.Ping(ctx); err != nil {
		resp.Status = "degraded"
		resp.DB = "unhealthy: " + err.Error()
	}
	if err := h.cache.Ping(ctx); err != nil {
		resp.Status = "degraded"
		resp.Cache = "unhealthy: " + err.Error()
	}
	return ok(c, resp)
}
