package handlers

import (
	"context"
	"io"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/patinhas/adoption-api/internal/dto"
	"github.com/patinhas/adoption-api/internal/models"
)

const maxImageSize = 5 * 1024 * 1024

type PetService interface {
	Create(ctx context.Context, req *dto.CreatePetRequest) (*models.Pet, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Pet, error)
	List(ctx context.Context, filter dto.PetFilter, page dto.PageQuery) ([]models.Pet, int64, error)
	Update(ctx context.Context, id uuid.UUID, req *dto.UpdatePetRequest) (*models.Pet, error)
	Delete(ctx context.Context, id uuid.UUID) error

	ListImages(ctx context.Context, petID uuid.UUID) ([]models.PetImage, error)
	ListAllImages(ctx context.Context, page dto.PageQuery) ([]models.PetImage, int64, error)
	GetImage(ctx context.Context, petID *uuid.UUID, imageID uuid.UUID) (*models.PetImage, error)
	AddImage(ctx context.Context, petID uuid.UUID, filename, contentType string, r io.Reader) (*models.PetImage, error)
	DeleteImage(ctx context.Context, petID *uuid.UUID, imageID uuid.UUID) error
}

type PetHandler struct {
	pets PetService
}

func NewPetHandler(pets PetService) *PetHandler {
	return &PetHandler{pets: pets}
}

// List godoc
// @Summary List pets
// @Tags pets
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" minimum(1) default(1)
// @Param limit query int false "Page size" minimum(1) maximum(100) default(10)
// @Param species query string false "Species; synonyms such as cachorro or gato are accepted"
// @Param city query string false "City, partial match"
// @Param state query string false "Two-letter state code"
// @Param status query string false "Adoption status" Enums(available, adopted, disponivel, adotado)
// @Success 200 {object} dto.Envelope{data=[]models.Pet}
// @Failure 400 {object} dto.Envelope "validation failed"
// @Failure 401 {object} dto.Envelope "missing or invalid token"
// @Router /pets [get]
func (h *PetHandler) List(c *fiber.Ctx) error {
	page, err := pageQuery(c)
	if err != nil {
		return respondError(c, err)
	}
	var filter dto.PetFilter
	if err := bindQuery(c, &filter); err != nil {
		return respondError(c, err)
	}

	pets, total, err := h.pets.List(c.UserContext(), filter, page)
	if err != nil {
		return respondError(c, err)
	}
	return paged(c, pets, total, page)
}

// Create godoc
// @Summary Create a pet
// @Tags pets
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.CreatePetRequest true "Pet data"
// @Success 201 {object} dto.Envelope{data=models.Pet}
// @Failure 400 {object} dto.Envelope "validation failed"
// @Failure 401 {object} dto.Envelope "missing or invalid token"
// @Router /pets [post]
func (h *PetHandler) Create(c *fiber.Ctx) error {
	var req dto.CreatePetRequest
	if err := bind(c, &req); err != nil {
		return respondError(c, err)
	}
	pet, err := h.pets.Create(c.UserContext(), &req)
	if err != nil {
		return respondError(c, err)
	}
	return created(c, pet)
}

// Get godoc
// @Summary Get a pet
// @Description Returns the pet with its images and donations.
// @Tags pets
// @Produce json
// @Security BearerAuth
// @Param pet_id path string true "Pet ID" Format(uuid)
// @Success 200 {object} dto.Envelope{data=models.Pet}
// @Failure 401 {object} dto.Envelope "missing or invalid token"
// @Failure 404 {object} dto.Envelope "pet not found"
// @Router /pets/{pet_id} [get]
func (h *PetHandler) Get(c *fiber.Ctx) error {
	id, err := uuidParam(c, "pet_id")
	if err != nil {
		return respondError(c, err)
	}
	pet, err := h.pets.Get(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return ok(c, pet)
}

// Update godoc
// @Summary Update a pet
// @Tags pets
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param pet_id path string true "Pet ID" Format(uuid)
// @Param payload body dto.UpdatePetRequest true "Fields to change"
// @Success 200 {object} dto.Envelope{data=models.Pet}
// @Failure 400 {object} dto.Envelope "validation failed"
// @Failure 401 {object} dto.Envelope "missing or invalid token"
// @Failure 403 {object} dto.Envelope "admin only"
// @Failure 404 {object} dto.Envelope "pet not found"
// @Router /pets/{pet_id} [put]
func (h *PetHandler) Update(c *fiber.Ctx) error {
	id, err := uuidParam(c, "pet_id")
	if err != nil {
		return respondError(c, err)
	}
	var req dto.UpdatePetRequest
	if err := bind(c, &req); err != nil {
		return respondError(c, err)
	}

	pet, err := h.pets.Update(c.UserContext(), id, &req)
	if err != nil {
		return respondError(c, err)
	}
	return ok(c, pet)
}

// Delete godoc
// @Summary Delete a pet
// @Tags pets
// @Produce json
// @Security BearerAuth
// @Param pet_id path string true "Pet ID" Format(uuid)
// @Success 204 "No Content"
// @Failure 401 {object} dto.Envelope "missing or invalid token"
// @Failure 403 {object} dto.Envelope "admin only"
// @Failure 404 {object} dto.Envelope "pet not found"
// @Router /pets/{pet_id} [delete]
func (h *PetHandler) Delete(c *fiber.Ctx) error {
	id, err := uuidParam(c, "pet_id")
	if err != nil {
		return respondError(c, err)
	}
	if err := h.pets.Delete(c.UserContext(), id); err != nil {
		return respondError(c, err)
	}
	return noContent(c)
}

// ListImages godoc
// @Summary List a pet's images
// @Tags pets
// @Produce json
// @Security BearerAuth
// @Param pet_id path string true "Pet ID" Format(uuid)
// @Success 200 {object} dto.Envelope{data=[]models.PetImage}
// @Failure 401 {object} dto.Envelope "missing or invalid token"
// @Failure 404 {object} dto.Envelope "pet not found"
// @Router /pets/{pet_id}/images [get]
func (h *PetHandler) ListImages(c *fiber.Ctx) error {
	id, err := uuidParam(c, "pet_id")
	if err != nil {
		return respondError(c, err)
	}
	images, err := h.pets.ListImages(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return ok(c, images)
}

// UploadImage godoc
// @Summary Upload a pet image
// @Tags pets
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param pet_id path string true "Pet ID" Format(uuid)
// @Param image formData file true "Image up to 5MB"
// @Success 201 {object} dto.Envelope{data=models.PetImage}
// @Failure 400 {object} dto.Envelope "validation failed"
// @Failure 401 {object} dto.Envelope "missing or invalid token"
// @Failure 404 {object} dto.Envelope "pet not found"
// @Router /pets/{pet_id}/images [post]
func (h *PetHandler) UploadImage(c *fiber.Ctx) error {
	id, err := uuidParam(c, "pet_id")
	if err != nil {
		return respondError(c, err)
	}
	return h.upload(c, id)
}

// GetImage godoc
// @Summary Get a pet image
// @Tags pets
// @Produce json
// @Security BearerAuth
// @Param pet_id path string true "Pet ID" Format(uuid)
// @Param image_id path string true "Image ID" Format(uuid)
// @Success 200 {object} dto.Envelope{data=models.PetImage}
// @Failure 401 {object} dto.Envelope "missing or invalid token"
// @Failure 404 {object} dto.Envelope "image not found"
// @Router /pets/{pet_id}/images/{image_id} [get]
func (h *PetHandler) GetImage(c *fiber.Ctx) error {
	ids, err := uuidParams(c, "pet_id", "image_id")
	if err != nil {
		return respondError(c, err)
	}
	img, err := h.pets.GetImage(c.UserContext(), &ids[0], ids[1])
	if err != nil {
		return respondError(c, err)
	}
	return ok(c, img)
}

// DeleteImage godoc
// @Summary Delete a pet image
// @Tags pets
// @Produce json
// @Security BearerAuth
// @Param pet_id path string true "Pet ID" Format(uuid)
// @Param image_id path string true "Image ID" Format(uuid)
// @Success 204 "No Content"
// @Failure 401 {object} dto.Envelope "missing or invalid token"
// @Failure 404 {object} dto.Envelope "image not found"
// @Router /pets/{pet_id}/images/{image_id} [delete]
func (h *PetHandler) DeleteImage(c *fiber.Ctx) error {
	ids, err := uuidParams(c, "pet_id", "image_id")
	if err != nil {
		return respondError(c, err)
	}
	if err := h.pets.DeleteImage(c.UserContext(), &ids[0], ids[1]); err != nil {
		return respondError(c, err)
	}
	return noContent(c)
}

// The /pet_images endpoints address images directly, without the pet in the path.

// ListAllImages godoc
// @Summary List all pet images
// @Tags pet_images
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" minimum(1) default(1)
// @Param limit query int false "Page size" minimum(1) maximum(100) default(10)
// @Success 200 {object} dto.Envelope{data=[]models.PetImage}
// @Failure 400 {object} dto.Envelope "validation failed"
// @Failure 401 {object} dto.Envelope "missing or invalid token"
// @Router /pet_images [get]
func (h *PetHandler) ListAllImages(c *fiber.Ctx) error {
	page, err := pageQuery(c)
	if err != nil {
		return respondError(c, err)
	}
	images, total, err := h.pets.ListAllImages(c.UserContext(), page)
	if err != nil {
		return respondError(c, err)
	}
	return paged(c, images, total, page)
}

// CreateImage godoc
// @Summary Upload an image
// @Tags pet_images
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param pet_id formData string true "Pet ID" Format(uuid)
// @Param image formData file true "Image up to 5MB"
// @Success 201 {object} dto.Envelope{data=models.PetImage}
// @Failure 400 {object} dto.Envelope "validation failed"
// @Failure 401 {object} dto.Envelope "missing or invalid token"
// @Failure 404 {object} dto.Envelope "pet not found"
// @Router /pet_images [post]
func (h *PetHandler) CreateImage(c *fiber.Ctx) error {
	petID, err := uuid.Parse(c.FormValue("pet_id"))
	if err != nil {
		return respondError(c, dto.NewValidationError("pet_id", "must be a valid UUID"))
	}
	return h.upload(c, petID)
}

// GetImageByID godoc
// @Summary Get an image
// @Tags pet_images
// @Produce json
// @Security BearerAuth
// @Param image_id path string true "Image ID" Format(uuid)
// @Success 200 {object} dto.Envelope{data=models.PetImage}
// @Failure 401 {object} dto.Envelope "missing or invalid token"
// @Failure 404 {object} dto.Envelope "image not found"
// @Router /pet_images/{image_id} [get]
func (h *PetHandler) GetImageByID(c *fiber.Ctx) error {
	id, err := uuidParam(c, "image_id")
	if err != nil {
		return respondError(c, err)
	}
	img, err := h.pets.GetImage(c.UserContext(), nil, id)
	if err != nil {
		return respondError(c, err)
	}
	return ok(c, img)
}

// DeleteImageByID godoc
// @Summary Delete an image
// @Tags pet_images
// @Produce json
// @Security BearerAuth
// @Param image_id path string true "Image ID" Format(uuid)
// @Success 204 "No Content"
// @Failure 401 {object} dto.Envelope "missing or invalid token"
// @Failure 404 {object} dto.Envelope "image not found"
// @Router /pet_images/{image_id} [delete]
func (h *PetHandler) DeleteImageByID(c *fiber.Ctx) error {
	id, err := uuidParam(c, "image_id")
	if err != nil {
		return respondError(c, err)
	}
	if err := h.pets.DeleteImage(c.UserContext(), nil, id); err != nil {
		return respondError(c, err)
	}
	return noContent(c)
}

func (h *PetHandler) upload(c *fiber.Ctx, petID uuid.UUID) error {
	file, err := c.FormFile("image")
	if err != nil {
		return respondError(c, dto.NewValidationError("image", "is required"))
	}
	if file.Size > maxImageSize {
		return respondError(c, dto.NewValidationError("image", "must be at most 5MB"))
	}
	contentType := file.Header.Get(fiber.HeaderContentType)
	if !strings.HasPrefix(contentType, "image/") {
		return respondError(c, dto.NewValidationError("image", "must be an image"))
	}

	f, err := file.Open()
	if err != nil {
		return respondError(c, err)
	}
	defer f.Close()

	img, err := h.pets.AddImage(c.UserContext(), petID, file.Filename, contentType, f)
	if err != nil {
		return respondError(c, err)
	}
	return created(c, img)
}
