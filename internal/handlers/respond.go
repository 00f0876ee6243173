package handlers

import (
	"errors"
	"log/slog"
	"runtime/debug"

	"github.com/getsentry/sentry-go"
	sentryfiber "github.com/getsentry/sentry-go/fiber"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/patinhas/adoption-api/internal/authctx"
	"github.com/patinhas/adoption-api/internal/dto"
	"github.com/patinhas/adoption-api/internal/services"
	"gorm.io/gorm"
)

var notFoundErrors = []error{
	services.ErrUserNotFound,
	services.ErrPetNotFound,
	services.ErrImageNotFound,
	services.ErrAdoptionNotFound,
	services.ErrAnswerNotFound,
	services.ErrQuestionNotFound,
	services.ErrQuestionNotAttached,
	services.ErrQuestionTypeNotFound,
	services.ErrAddressNotFound,
	services.ErrDonationNotFound,
}

var conflictErrors = []error{
	services.ErrEmailTaken,
	services.ErrLoginTaken,
	services.ErrTypeNameTaken,
	services.ErrQuestionAlreadyAttached,
}

func ok(c *fiber.Ctx, data any) error {
	return c.JSON(dto.Envelope{Status: dto.StatusSuccess, Data: data})
}

func created(c *fiber.Ctx, data any) error {
	return c.Status(fiber.StatusCreated).JSON(dto.Envelope{Status: dto.StatusSuccess, Data: data})
}

func message(c *fiber.Ctx, msg string) error {
	return c.JSON(dto.Envelope{Status: dto.StatusSuccess, Message: msg})
}

func noContent(c *fiber.Ctx) error {
	return c.SendStatus(fiber.StatusNoContent)
}

func paged(c *fiber.Ctx, data any, total int64, page dto.PageQuery) error {
	return c.JSON(dto.Envelope{
		Status:     dto.StatusSuccess,
		Data:       data,
		Pagination: dto.NewPagination(total, page.Page, page.Limit),
	})
}

func fail(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(dto.Envelope{Status: dto.StatusError, Message: msg})
}

// respondError maps a service error onto the envelope. Expected failures are
// logged at INFO; anything unrecognised is a 500 logged with its stack.
func respondError(c *fiber.Ctx, err error) error {
	var verr *dto.ValidationError
	var ferr *fiber.Error

	status, msg := classify(err)
	switch {
	case errors.As(err, &verr):
		slog.Info("request rejected", "request_id", requestID(c), "path", c.Path(), "error", err.Error())
		return c.Status(fiber.StatusBadRequest).JSON(dto.Envelope{
			Status:  dto.StatusError,
			Message: "Validation failed",
			Errors:  verr.Errors,
		})
	case errors.As(err, &ferr):
		status, msg = ferr.Code, ferr.Message
	}

	if status >= fiber.StatusInternalServerError {
		slog.Error("unexpected error",
			"request_id", requestID(c),
			"method", c.Method(),
			"path", c.Path(),
			"error", err.Error(),
			"stack", string(debug.Stack()),
		)
		if hub := sentryfiber.GetHubFromContext(c); hub != nil {
			hub.CaptureException(err)
		} else {
			sentry.CaptureException(err)
		}
		return fail(c, status, "Internal server error")
	}

	slog.Info("request failed", "request_id", requestID(c), "path", c.Path(), "status", status, "error", err.Error())
	return fail(c, status, msg)
}

func classify(err error) (int, string) {
	for _, target := range notFoundErrors {
		if errors.Is(err, target) {
			return fiber.StatusNotFound, target.Error()
		}
	}
	for _, target := range conflictErrors {
		if errors.Is(err, target) {
			return fiber.StatusConflict, target.Error()
		}
	}
	switch {
	case errors.Is(err, services.ErrForbidden):
		return fiber.StatusForbidden, services.ErrForbidden.Error()
	case errors.Is(err, services.ErrInvalidCredentials),
		errors.Is(err, services.ErrInvalidToken),
		errors.Is(err, services.ErrInactiveUser):
		return fiber.StatusUnauthorized, err.Error()
	case errors.Is(err, services.ErrInvalidStatus), errors.Is(err, services.ErrWrongPassword):
		return fiber.StatusBadRequest, err.Error()
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fiber.StatusConflict, "resource already exists"
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return fiber.StatusBadRequest, "referenced resource does not exist"
	}
	return fiber.StatusInternalServerError, "Internal server error"
}

// bind parses the JSON body into dst and validates it.
func bind(c *fiber.Ctx, dst any) error {
	if err := c.BodyParser(dst); err != nil {
		return dto.NewValidationError("body", "must be a valid JSON object")
	}
	return dto.Validate(dst)
}

// bindQuery parses and validates query parameters into dst.
func bindQuery(c *fiber.Ctx, dst any) error {
	if err := c.QueryParser(dst); err != nil {
		return dto.NewValidationError("query", err.Error())
	}
	return dto.Validate(dst)
}

func pageQuery(c *fiber.Ctx) (dto.PageQuery, error) {
	page := dto.PageQuery{Page: dto.DefaultPage, Limit: dto.DefaultLimit}
	if err := bindQuery(c, &page); err != nil {
		return page, err
	}
	return page, nil
}

func uuidParam(c *fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(name))
	if err != nil {
		return uuid.Nil, dto.NewValidationError(name, "must be a valid UUID")
	}
	return id, nil
}

// uuidParams parses several path params at once, in order.
func uuidParams(c *fiber.Ctx, names ...string) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, len(names))
	for i, name := range names {
		id, err := uuidParam(c, name)
		if err != nil {
			return nil, err
		}
		ids[i] = id
	}
	return ids, nil
}

func identity(c *fiber.Ctx) (authctx.Identity, error) {
	id, ok := authctx.From(c)
	if !ok {
		return authctx.Identity{}, fiber.NewError(fiber.StatusUnauthorized, "Unauthorized")
	}
	return id, nil
}

func requestID(c *fiber.Ctx) string {
	if id, ok := c.Locals("requestid").(string); ok {
		return id
	}
	return string(c.Response().Header.Peek(fiber.HeaderXRequestID))
}
