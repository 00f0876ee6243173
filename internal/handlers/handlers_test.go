package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/patinhas/adoption-api/internal/authctx"
	"github.com/patinhas/adoption-api/internal/dto"
	"github.com/patinhas/adoption-api/internal/models"
	"github.com/patinhas/adoption-api/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeAdoptions struct {
	AdoptionService

	created      *dto.CreateAdoptionRequest
	statusCalls  int
	listedPage   dto.PageQuery
	listedFilter dto.AdoptionFilter
	total        int64
}

func (f *fakeAdoptions) Create(_ context.Context, userID uuid.UUID, req *dto.CreateAdoptionRequest) (*models.Adoption, error) {
	f.created = req
	return &models.Adoption{ID: uuid.New(), UserID: userID, PetID: uuid.MustParse(req.PetID), Status: models.StatusPending}, nil
}

func (f *fakeAdoptions) UpdateStatus(_ context.Context, id uuid.UUID, status string) (*models.Adoption, error) {
	f.statusCalls++
	return &models.Adoption{ID: id, Status: models.AdoptionStatus(status)}, nil
}

func (f *fakeAdoptions) List(_ context.Context, filter dto.AdoptionFilter, page dto.PageQuery) ([]models.Adoption, int64, error) {
	f.listedFilter, f.listedPage = filter, page
	return []models.Adoption{}, f.total, nil
}

type fakePets struct {
	PetService
	uploads int
}

func (f *fakePets) AddImage(_ context.Context, petID uuid.UUID, filename, _ string, r io.Reader) (*models.PetImage, error) {
	f.uploads++
	_, _ = io.Copy(io.Discard, r)
	return &models.PetImage{ID: uuid.New(), PetID: petID, Key: filename}, nil
}

func withIdentity(id authctx.Identity) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authctx.Set(c, id)
		return c.Next()
	}
}

func send(t *testing.T, app *fiber.App, method, path string, body any) (*http.Response, dto.Envelope) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	return do(t, app, req)
}

func do(t *testing.T, app *fiber.App, req *http.Request) (*http.Response, dto.Envelope) {
	t.Helper()
	resp, err := app.Test(req)
	require.NoError(t, err)

	var env dto.Envelope
	if resp.StatusCode != fiber.StatusNoContent {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	}
	return resp, env
}

func adoptionApp(svc AdoptionService, caller authctx.Identity) *fiber.App {
	h := NewAdoptionHandler(svc)
	app := fiber.New()
	app.Use(withIdentity(caller))
	app.Post("/adoptions", h.Create)
	app.Get("/adoptions", h.List)
	app.Put("/adoptions/:adoption_id/status", h.UpdateStatus)
	return app
}

func TestCreateAdoption(t *testing.T) {
	svc := &fakeAdoptions{}
	app := adoptionApp(svc, authctx.Identity{UserID: uuid.New()})
	petID := uuid.NewString()

	resp, env := send(t, app, http.MethodPost, "/adoptions", fiber.Map{
		"pet_id": petID,
		"answers": []fiber.Map{
			{"question_id": uuid.NewString(), "answer_content": "Moro em casa com quintal"},
		},
	})

	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
	assert.Equal(t, dto.StatusSuccess, env.Status)
	require.NotNil(t, svc.created)
	assert.Len(t, svc.created.Answers, 1)

	data := env.Data.(map[string]any)
	assert.Equal(t, "pending", data["status"])
	assert.Equal(t, petID, data["pet_id"])
}

func TestCreateAdoptionValidation(t *testing.T) {
	svc := &fakeAdoptions{}
	app := adoptionApp(svc, authctx.Identity{UserID: uuid.New()})

	resp, env := send(t, app, http.MethodPost, "/adoptions", fiber.Map{
		"answers": []fiber.Map{{"question_id": "nope"}},
	})

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, dto.StatusError, env.Status)
	fields := make([]string, 0, len(env.Errors))
	for _, fe := range env.Errors {
		fields = append(fields, fe.Field)
	}
	assert.Contains(t, fields, "pet_id")
	assert.Contains(t, fields, "answers[0].question_id")
	assert.Contains(t, fields, "answers[0].answer_content")
	assert.Nil(t, svc.created)
}

func TestCreateAdoptionMalformedBody(t *testing.T) {
	app := adoptionApp(&fakeAdoptions{}, authctx.Identity{UserID: uuid.New()})

	req := httptest.NewRequest(http.MethodPost, "/adoptions", strings.NewReader("{"))
	req.Header.Set("Content-Type", "application/json")
	resp, env := do(t, app, req)

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "body", env.Errors[0].Field)
}

func TestUpdateStatusRejectsUnknownStatus(t *testing.T) {
	svc := &fakeAdoptions{}
	app := adoptionApp(svc, authctx.Identity{UserID: uuid.New(), IsAdmin: true})

	resp, env := send(t, app, http.MethodPut, "/adoptions/"+uuid.NewString()+"/status", fiber.Map{"status": "invalido"})

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	require.Len(t, env.Errors, 1)
	assert.Equal(t, "status", env.Errors[0].Field)
	assert.Zero(t, svc.statusCalls)
}

func TestUpdateStatus(t *testing.T) {
	svc := &fakeAdoptions{}
	app := adoptionApp(svc, authctx.Identity{UserID: uuid.New(), IsAdmin: true})

	resp, env := send(t, app, http.MethodPut, "/adoptions/"+uuid.NewString()+"/status", fiber.Map{"status": "approved"})

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, svc.statusCalls)
	assert.Equal(t, "approved", env.Data.(map[string]any)["status"])
}

func TestUpdateStatusMalformedID(t *testing.T) {
	svc := &fakeAdoptions{}
	app := adoptionApp(svc, authctx.Identity{UserID: uuid.New(), IsAdmin: true})

	resp, env := send(t, app, http.MethodPut, "/adoptions/42/status", fiber.Map{"status": "approved"})

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "adoption_id", env.Errors[0].Field)
	assert.Zero(t, svc.statusCalls)
}

func TestListPagination(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		status    int
		wantPage  int
		wantLimit int
	}{
		{name: "defaults", query: "", status: fiber.StatusOK, wantPage: 1, wantLimit: 10},
		{name: "explicit", query: "?page=3&limit=25&status=approved", status: fiber.StatusOK, wantPage: 3, wantLimit: 25},
		{name: "limit above cap", query: "?limit=101", status: fiber.StatusBadRequest},
		{name: "page zero", query: "?page=0", status: fiber.StatusBadRequest},
		{name: "unknown status", query: "?status=maybe", status: fiber.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeAdoptions{total: 53}
			app := adoptionApp(svc, authctx.Identity{UserID: uuid.New(), IsAdmin: true})

			resp, env := send(t, app, http.MethodGet, "/adoptions"+tt.query, nil)
			require.Equal(t, tt.status, resp.StatusCode)
			if tt.status != fiber.StatusOK {
				return
			}
			assert.Equal(t, tt.wantPage, svc.listedPage.Page)
			assert.Equal(t, tt.wantLimit, svc.listedPage.Limit)
			require.NotNil(t, env.Pagination)
			assert.Equal(t, int64(53), env.Pagination.Total)
			assert.Equal(t, (53+tt.wantLimit-1)/tt.wantLimit, env.Pagination.Pages)
		})
	}
}

func multipartImage(t *testing.T, contentType string, size int) (*bytes.Buffer, string) {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="image"; filename="Rex.PNG"`)
	header.Set("Content-Type", contentType)
	part, err := w.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(bytes.Repeat([]byte{0x89}, size))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return &body, w.FormDataContentType()
}

func TestUploadImage(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		size        int
		status      int
	}{
		{name: "png", contentType: "image/png", size: 1024, status: fiber.StatusCreated},
		{name: "not an image", contentType: "application/pdf", size: 1024, status: fiber.StatusBadRequest},
		{name: "too large", contentType: "image/jpeg", size: maxImageSize + 1, status: fiber.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakePets{}
			h := NewPetHandler(svc)
			app := fiber.New(fiber.Config{BodyLimit: 8 * 1024 * 1024})
			app.Post("/pets/:pet_id/images", h.UploadImage)

			body, ct := multipartImage(t, tt.contentType, tt.size)
			req := httptest.NewRequest(http.MethodPost, "/pets/"+uuid.NewString()+"/images", body)
			req.Header.Set("Content-Type", ct)

			resp, err := app.Test(req, -1)
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)
			if tt.status == fiber.StatusCreated {
				assert.Equal(t, 1, svc.uploads)
			} else {
				assert.Zero(t, svc.uploads)
			}
		})
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{services.ErrAddressNotFound, fiber.StatusNotFound},
		{fmt.Errorf("wrapped: %w", services.ErrAdoptionNotFound), fiber.StatusNotFound},
		{services.ErrForbidden, fiber.StatusForbidden},
		{services.ErrEmailTaken, fiber.StatusConflict},
		{services.ErrQuestionAlreadyAttached, fiber.StatusConflict},
		{gorm.ErrDuplicatedKey, fiber.StatusConflict},
		{gorm.ErrForeignKeyViolated, fiber.StatusBadRequest},
		{services.ErrInvalidStatus, fiber.StatusBadRequest},
		{services.ErrInvalidCredentials, fiber.StatusUnauthorized},
		{services.ErrInvalidToken, fiber.StatusUnauthorized},
		{errors.New("connection refused"), fiber.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			status, _ := classify(tt.err)
			assert.Equal(t, tt.status, status)
		})
	}
}

func TestRespondErrorHidesInternalDetail(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		return respondError(c, errors.New("pq: password authentication failed"))
	})

	resp, env := send(t, app, http.MethodGet, "/", nil)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "Internal server error", env.Message)
}

type stubPinger struct{ err error }

func (s stubPinger) Ping(context.Context) error { return s.err }

func TestHealthCheck(t *testing.T) {
	app := fiber.New()
	app.Get("/health", NewHealthHandler(stubPinger{}, stubPinger{err: errors.New("dial tcp: refused")}).Check)

	resp, env := send(t, app, http.MethodGet, "/health", nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	data := env.Data.(map[string]any)
	assert.Equal(t, "degraded", data["status"])
	assert.Equal(t, "ok", data["db"])
	assert.Contains(t, data["cache"], "unhealthy")
}
