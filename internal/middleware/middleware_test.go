package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/patinhas/adoption-api/internal/authctx"
	"github.com/patinhas/adoption-api/internal/config"
	"github.com/patinhas/adoption-api/internal/dto"
	"github.com/patinhas/adoption-api/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "middleware-secret"

type fakeIdentifier struct {
	users map[uuid.UUID]authctx.Identity
	err   error
}

func (f *fakeIdentifier) Identify(_ context.Context, userID uuid.UUID) (authctx.Identity, error) {
	if f.err != nil {
		return authctx.Identity{}, f.err
	}
	id, ok := f.users[userID]
	if !ok {
		return authctx.Identity{}, services.ErrUserNotFound
	}
	return id, nil
}

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return raw
}

func accessToken(t *testing.T, userID uuid.UUID) string {
	return signToken(t, jwt.MapClaims{"sub": userID.String(), "exp": time.Now().Add(time.Minute).Unix()})
}

func newTestApp(identifier Identifier, handlers ...fiber.Handler) *fiber.App {
	app := fiber.New()
	chain := append([]fiber.Handler{JWTProtected(&config.Config{JWTSecret: testSecret}, identifier)}, handlers...)
	chain = append(chain, func(c *fiber.Ctx) error {
		identity, _ := authctx.From(c)
		return c.JSON(fiber.Map{"user_id": identity.UserID.String(), "is_admin": identity.IsAdmin})
	})
	app.Get("/users/:user_id", chain...)
	return app
}

func doRequest(t *testing.T, app *fiber.App, path, token string) (*http.Response, dto.Envelope) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)

	var env dto.Envelope
	_ = json.NewDecoder(resp.Body).Decode(&env)
	return resp, env
}

func TestJWTProtected(t *testing.T) {
	ana := uuid.New()
	identifier := &fakeIdentifier{users: map[uuid.UUID]authctx.Identity{ana: {UserID: ana}}}
	app := newTestApp(identifier)

	tests := []struct {
		name   string
		token  string
		status int
	}{
		{name: "missing header", token: "", status: fiber.StatusUnauthorized},
		{name: "garbage token", token: "not-a-jwt", status: fiber.StatusUnauthorized},
		{name: "unknown user", token: accessToken(t, uuid.New()), status: fiber.StatusUnauthorized},
		{
			name:   "reset token",
			token:  signToken(t, jwt.MapClaims{"sub": ana.String(), "purpose": "password_reset", "exp": time.Now().Add(time.Minute).Unix()}),
			status: fiber.StatusUnauthorized,
		},
		{
			name:   "expired token",
			token:  signToken(t, jwt.MapClaims{"sub": ana.String(), "exp": time.Now().Add(-time.Minute).Unix()}),
			status: fiber.StatusUnauthorized,
		},
		{name: "valid token", token: accessToken(t, ana), status: fiber.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, env := doRequest(t, app, "/users/"+ana.String(), tt.token)
			assert.Equal(t, tt.status, resp.StatusCode)
			if tt.status == fiber.StatusUnauthorized {
				assert.Equal(t, dto.StatusError, env.Status)
			}
		})
	}
}

func TestJWTProtectedInactiveUser(t *testing.T) {
	app := newTestApp(&fakeIdentifier{err: services.ErrInactiveUser})
	resp, env := doRequest(t, app, "/users/"+uuid.NewString(), accessToken(t, uuid.New()))
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, env.Message, "inactive")
}

func TestJWTProtectedLookupFailure(t *testing.T) {
	app := newTestApp(&fakeIdentifier{err: errors.New("db down")})
	resp, _ := doRequest(t, app, "/users/"+uuid.NewString(), accessToken(t, uuid.New()))
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
}

func TestAdminRequired(t *testing.T) {
	admin, member := uuid.New(), uuid.New()
	identifier := &fakeIdentifier{users: map[uuid.UUID]authctx.Identity{
		admin:  {UserID: admin, IsAdmin: true},
		member: {UserID: member},
	}}
	app := newTestApp(identifier, AdminRequired())

	resp, env := doRequest(t, app, "/users/"+member.String(), accessToken(t, member))
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "Admin access required", env.Message)

	resp, _ = doRequest(t, app, "/users/"+member.String(), accessToken(t, admin))
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestSelfOrAdmin(t *testing.T) {
	admin, ana, bia := uuid.New(), uuid.New(), uuid.New()
	identifier := &fakeIdentifier{users: map[uuid.UUID]authctx.Identity{
		admin: {UserID: admin, IsAdmin: true},
		ana:   {UserID: ana},
		bia:   {UserID: bia},
	}}
	app := newTestApp(identifier, SelfOrAdmin("user_id"))

	tests := []struct {
		name   string
		caller uuid.UUID
		path   string
		status int
	}{
		{name: "own resources", caller: ana, path: "/users/" + ana.String(), status: fiber.StatusOK},
		{name: "someone else's", caller: bia, path: "/users/" + ana.String(), status: fiber.StatusForbidden},
		{name: "admin", caller: admin, path: "/users/" + ana.String(), status: fiber.StatusOK},
		{name: "malformed id", caller: ana, path: "/users/abc", status: fiber.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, _ := doRequest(t, app, tt.path, accessToken(t, tt.caller))
			assert.Equal(t, tt.status, resp.StatusCode)
		})
	}
}

func TestSecurityHeadersAndCORS(t *testing.T) {
	app := fiber.New()
	app.Use(CORS(&config.Config{CORSOrigins: "https://patinhas.example"}))
	app.Use(SecurityHeaders())
	app.Get("/", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusNoContent) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://patinhas.example")
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, "nosniff", resp.Header.Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", resp.Header.Get("X-Frame-Options"))
	assert.Equal(t, "https://patinhas.example", resp.Header.Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "X-Request-ID", resp.Header.Get("Access-Control-Expose-Headers"))
}
