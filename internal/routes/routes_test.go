package routes

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/patinhas/adoption-api/internal/authctx"
	"github.com/patinhas/adoption-api/internal/config"
	"github.com/patinhas/adoption-api/internal/docs"
	"github.com/patinhas/adoption-api/internal/dto"
	"github.com/patinhas/adoption-api/internal/handlers"
	"github.com/patinhas/adoption-api/internal/models"
	"github.com/patinhas/adoption-api/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "routes-secret"

type identities map[uuid.UUID]authctx.Identity

func (ids identities) Identify(_ context.Context, userID uuid.UUID) (authctx.Identity, error) {
	id, ok := ids[userID]
	if !ok {
		return authctx.Identity{}, services.ErrUserNotFound
	}
	return id, nil
}

type adoptionsStub struct {
	handlers.AdoptionService
	statusCalls int
}

func (s *adoptionsStub) UpdateStatus(_ context.Context, id uuid.UUID, status string) (*models.Adoption, error) {
	s.statusCalls++
	return &models.Adoption{ID: id, Status: models.AdoptionStatus(status)}, nil
}

func (s *adoptionsStub) ListByUser(_ context.Context, userID uuid.UUID, _ dto.PageQuery) ([]models.Adoption, int64, error) {
	return []models.Adoption{{ID: uuid.New(), UserID: userID, Status: models.StatusPending}}, 1, nil
}

type addressesStub struct {
	handlers.AddressService
}

func (addressesStub) Get(context.Context, authctx.Identity, uuid.UUID) (*models.Address, error) {
	return nil, services.ErrAddressNotFound
}

type petsStub struct {
	handlers.PetService
}

func (petsStub) List(context.Context, dto.PetFilter, dto.PageQuery) ([]models.Pet, int64, error) {
	return []models.Pet{}, 0, nil
}

type okPinger struct{}

func (okPinger) Ping(context.Context) error { return nil }

type fixture struct {
	app       *fiber.App
	adoptions *adoptionsStub
	admin     uuid.UUID
	ana       uuid.UUID
	bia       uuid.UUID
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{adoptions: &adoptionsStub{}, admin: uuid.New(), ana: uuid.New(), bia: uuid.New()}
	ids := identities{
		f.admin: {UserID: f.admin, IsAdmin: true},
		f.ana:   {UserID: f.ana},
		f.bia:   {UserID: f.bia},
	}

	f.app = fiber.New()
	Setup(f.app, &config.Config{JWTSecret: secret, StorageType: "s3"}, ids, Handlers{
		Auth:      handlers.NewAuthHandler(nil),
		Health:    handlers.NewHealthHandler(okPinger{}, okPinger{}),
		Users:     handlers.NewUserHandler(nil),
		Pets:      handlers.NewPetHandler(petsStub{}),
		Adoptions: handlers.NewAdoptionHandler(f.adoptions),
		Donations: handlers.NewDonationHandler(nil),
		Addresses: handlers.NewAddressHandler(addressesStub{}),
		Questions: handlers.NewQuestionHandler(nil),
	})
	return f
}

func (f *fixture) request(t *testing.T, method, path string, caller uuid.UUID, body string) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if caller != uuid.Nil {
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"sub": caller.String(),
			"exp": time.Now().Add(time.Minute).Unix(),
		}).SignedString([]byte(secret))
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := f.app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestHealthIsPublic(t *testing.T) {
	f := newFixture(t)
	for _, path := range []string{"/health", "/api/health"} {
		resp := f.request(t, http.MethodGet, path, uuid.Nil, "")
		assert.Equal(t, fiber.StatusOK, resp.StatusCode, path)
	}
}

func TestProtectedRoutesNeedToken(t *testing.T) {
	f := newFixture(t)

	resp := f.request(t, http.MethodGet, "/api/pets", uuid.Nil, "")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	var env dto.Envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	assert.Equal(t, dto.StatusError, env.Status)

	resp = f.request(t, http.MethodGet, "/api/pets", f.ana, "")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestStatusEndpointIsAdminOnly(t *testing.T) {
	f := newFixture(t)
	path := "/api/adoptions/" + uuid.NewString() + "/status"

	resp := f.request(t, http.MethodPut, path, f.ana, `{"status":"approved"}`)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	assert.Zero(t, f.adoptions.statusCalls)

	resp = f.request(t, http.MethodPut, path, f.admin, `{"status":"approved"}`)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, f.adoptions.statusCalls)
}

func TestUserAdoptionsOwnership(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name   string
		caller uuid.UUID
		owner  uuid.UUID
		status int
	}{
		{name: "own adoptions", caller: f.ana, owner: f.ana, status: fiber.StatusOK},
		{name: "another user's adoptions", caller: f.bia, owner: f.ana, status: fiber.StatusForbidden},
		{name: "admin", caller: f.admin, owner: f.ana, status: fiber.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := f.request(t, http.MethodGet, "/api/users/"+tt.owner.String()+"/adoptions", tt.caller, "")
			assert.Equal(t, tt.status, resp.StatusCode)
		})
	}
}

func TestMissingAddressIsNotFound(t *testing.T) {
	f := newFixture(t)

	resp := f.request(t, http.MethodGet, "/api/addresses/"+uuid.NewString(), f.ana, "")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	var env dto.Envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	assert.Equal(t, services.ErrAddressNotFound.Error(), env.Message)
}

func TestOpenAPIDocument(t *testing.T) {
	f := newFixture(t)

	resp := f.request(t, http.MethodGet, "/api/docs/doc.json", uuid.Nil, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var doc map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&doc))
	assert.Equal(t, "2.0", doc["swagger"])
	assert.Contains(t, doc["paths"], "/adoptions/{adoption_id}/status")
}

var pathParam = regexp.MustCompile(`:(\w+)`)

// Every /api route is documented and every documented operation is routed.
func TestOpenAPIDocumentMatchesRoutes(t *testing.T) {
	f := newFixture(t)

	var doc struct {
		BasePath string                                `json:"basePath"`
		Paths    map[string]map[string]json.RawMessage `json:"paths"`
	}
	require.NoError(t, json.Unmarshal([]byte(docs.SwaggerInfo.ReadDoc()), &doc))
	require.Equal(t, "/api", doc.BasePath)

	documented := map[string]bool{}
	for path, ops := range doc.Paths {
		for method := range ops {
			documented[strings.ToUpper(method)+" "+path] = true
		}
	}

	routed := map[string]bool{}
	for _, r := range f.app.GetRoutes(true) {
		if r.Method == fiber.MethodHead || !strings.HasPrefix(r.Path, doc.BasePath+"/") || strings.HasPrefix(r.Path, "/api/docs") {
			continue
		}
		path := strings.TrimSuffix(strings.TrimPrefix(r.Path, doc.BasePath), "/")
		routed[r.Method+" "+pathParam.ReplaceAllString(path, "{$1}")] = true
	}

	for op := range routed {
		assert.True(t, documented[op], "route %s has no annotations", op)
	}
	for op := range documented {
		assert.True(t, routed[op], "documented operation %s is not routed", op)
	}
	assert.Len(t, routed, 80)
}
