package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/patinhas/adoption-api/internal/cache"
	"github.com/patinhas/adoption-api/internal/database"
	"github.com/patinhas/adoption-api/internal/dto"
	"github.com/patinhas/adoption-api/internal/models"
	"github.com/patinhas/adoption-api/internal/storage"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func petCacheKey(id uuid.UUID) string {
	return "pets:" + id.String()
}

type PetService struct {
	db       *gorm.DB
	cache    cache.Cache
	storage  storage.Storage
	cacheTTL time.Duration
}

func NewPetService(db *gorm.DB, c cache.Cache, st storage.Storage, cacheTTL time.Duration) *PetService {
	return &PetService{db: db, cache: c, storage: st, cacheTTL: cacheTTL}
}

// withDetails eager-loads images and donations with the donor's contact fields.
func withDetails(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Images", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		Preload("Donations").
		Preload("Donations.User", func(db *gorm.DB) *gorm.DB { return db.Select("id", "name", "phone_number") })
}

func (s *PetService) Create(ctx context.Context, req *dto.CreatePetRequest) (*models.Pet, error) {
	pet := models.Pet{
		ID:          uuid.New(),
		Name:        strings.TrimSpace(req.Name),
		Species:     models.Species(req.Species),
		Gender:      models.Gender(req.Gender),
		Breed:       req.Breed,
		Age:         *req.Age,
		Size:        models.PetSize(req.Size),
		Colour:      req.Colour,
		Personality: req.Personality,
		SpecialCare: req.SpecialCare,
		Description: req.Description,
		State:       strings.ToUpper(req.State),
		City:        strings.TrimSpace(req.City),
		Vaccinated:  req.Vaccinated,
		Castrated:   req.Castrated,
		Vermifuged:  req.Vermifuged,
		IsAdopted:   req.IsAdopted,
	}
	if err := s.db.WithContext(ctx).Omit(clause.Associations).Create(&pet).Error; err != nil {
		return nil, fmt.Errorf("failed to create pet: %w", err)
	}
	return s.Get(ctx, pet.ID)
}

func (s *PetService) Get(ctx context.Context, id uuid.UUID) (*models.Pet, error) {
	var pet models.Pet
	key := petCacheKey(id)
	if found, err := s.cache.Get(ctx, key, &pet); err != nil {
		slog.Warn("pet cache read failed", "key", key, "error", err)
	} else if found {
		return &pet, nil
	}

	if err := s.db.WithContext(ctx).Scopes(withDetails).First(&pet, "id = ?", id).Error; err != nil {
		return nil, notFound(err, ErrPetNotFound)
	}
	s.resolveURLs(pet.Images)

	if err := s.cache.Set(ctx, key, &pet, s.cacheTTL); err != nil {
		slog.Warn("pet cache write failed", "key", key, "error", err)
	}
	return &pet, nil
}

func (s *PetService) List(ctx context.Context, filter dto.PetFilter, page dto.PageQuery) ([]models.Pet, int64, error) {
	var pets []models.Pet
	var total int64

	query := s.db.WithContext(ctx).Model(&models.Pet{})
	if filter.Species != "" {
		query = query.Where("species = ?", models.NormalizeSpecies(filter.Species))
	}
	if filter.City != "" {
		query = query.Where("city ILIKE ?", "%"+strings.TrimSpace(filter.City)+"%")
	}
	if filter.State != "" {
		query = query.Where("UPPER(state) = ?", strings.ToUpper(filter.State))
	}
	if adopted := filter.Adopted(); adopted != nil {
		query = query.Where("is_adopted = ?", *adopted)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := query.Scopes(withDetails, database.Paginate(page.Page, page.Limit)).
		Order("created_at DESC").Find(&pets).Error; err != nil {
		return nil, 0, err
	}
	for i := range pets {
		s.resolveURLs(pets[i].Images)
	}
	return pets, total, nil
}

func (s *PetService) Update(ctx context.Context, id uuid.UUID, req *dto.UpdatePetRequest) (*models.Pet, error) {
	var pet models.Pet
	if err := s.db.WithContext(ctx).First(&pet, "id = ?", id).Error; err != nil {
		return nil, notFound(err, ErrPetNotFound)
	}

	if req.Name != nil {
		pet.Name = strings.TrimSpace(*req.Name)
	}
	if req.Species != nil {
		pet.Species = models.Species(*req.Species)
	}
	if req.Gender != nil {
		pet.Gender = models.Gender(*req.Gender)
	}
	if req.Breed != nil {
		pet.Breed = req.Breed
	}
	if req.Age != nil {
		pet.Age = *req.Age
	}
	if req.Size != nil {
		pet.Size = models.PetSize(*req.Size)
	}
	if req.Colour != nil {
		pet.Colour = req.Colour
	}
	if req.Personality != nil {
		pet.Personality = req.Personality
	}
	if req.SpecialCare != nil {
		pet.SpecialCare = req.SpecialCare
	}
	if req.Description != nil {
		pet.Description = req.Description
	}
	if req.State != nil {
		pet.State = strings.ToUpper(*req.State)
	}
	if req.City != nil {
		pet.City = strings.TrimSpace(*req.City)
	}
	if req.Vaccinated != nil {
		pet.Vaccinated = *req.Vaccinated
	}
	if req.Castrated != nil {
		pet.Castrated = *req.Castrated
	}
	if req.Vermifuged != nil {
		pet.Vermifuged = *req.Vermifuged
	}
	if req.IsAdopted != nil {
		pet.IsAdopted = *req.IsAdopted
	}

	if err := s.db.WithContext(ctx).Omit(clause.Associations).Save(&pet).Error; err != nil {
		return nil, fmt.Errorf("failed to update pet: %w", err)
	}
	s.invalidate(ctx, id)
	return s.Get(ctx, id)
}

// Delete removes the pet, its rows cascade, and then its stored image files.
func (s *PetService) Delete(ctx context.Context, id uuid.UUID) error {
	var images []models.PetImage
	if err := s.db.WithContext(ctx).Where("pet_id = ?", id).Find(&images).Error; err != nil {
		return err
	}

	res := s.db.WithContext(ctx).Delete(&models.Pet{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrPetNotFound
	}
	s.invalidate(ctx, id)

	for _, img := range images {
		if err := s.storage.Delete(ctx, img.Key); err != nil {
			slog.Warn("failed to delete pet image file", "key", img.Key, "error", err)
		}
	}
	return nil
}

func (s *PetService) ListImages(ctx context.Context, petID uuid.UUID) ([]models.PetImage, error) {
	if err := mustExist(ctx, s.db, &models.Pet{}, petID, ErrPetNotFound); err != nil {
		return nil, err
	}
	images := make([]models.PetImage, 0)
	if err := s.db.WithContext(ctx).Where("pet_id = ?", petID).Order("created_at ASC").Find(&images).Error; err != nil {
		return nil, err
	}
	s.resolveURLs(images)
	return images, nil
}

func (s *PetService) ListAllImages(ctx context.Context, page dto.PageQuery) ([]models.PetImage, int64, error) {
	var images []models.PetImage
	var total int64

	query := s.db.WithContext(ctx).Model(&models.PetImage{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := query.Order("created_at DESC").Scopes(database.Paginate(page.Page, page.Limit)).Find(&images).Error; err != nil {
		return nil, 0, err
	}
	s.resolveURLs(images)
	return images, total, nil
}

// GetImage looks an image up by id; a non-nil petID also scopes it to that pet.
func (s *PetService) GetImage(ctx context.Context, petID *uuid.UUID, imageID uuid.UUID) (*models.PetImage, error) {
	query := s.db.WithContext(ctx).Where("id = ?", imageID)
	if petID != nil {
		query = query.Where("pet_id = ?", *petID)
	}
	var img models.PetImage
	if err := query.First(&img).Error; err != nil {
		return nil, notFound(err, ErrImageNotFound)
	}
	img.URL = s.storage.URL(img.Key)
	return &img, nil
}

// AddImage stores the upload and records it against the pet.
func (s *PetService) AddImage(ctx context.Context, petID uuid.UUID, filename, contentType string, r io.Reader) (*models.PetImage, error) {
	if err := mustExist(ctx, s.db, &models.Pet{}, petID, ErrPetNotFound); err != nil {
		return nil, err
	}

	key := storage.FileName(filename, time.Now())
	if err := s.storage.Save(ctx, key, contentType, r); err != nil {
		return nil, err
	}

	img := models.PetImage{ID: uuid.New(), PetID: petID, Key: key}
	if err := s.db.WithContext(ctx).Omit(clause.Associations).Create(&img).Error; err != nil {
		if delErr := s.storage.Delete(ctx, key); delErr != nil {
			slog.Warn("failed to remove orphaned upload", "key", key, "error", delErr)
		}
		return nil, fmt.Errorf("failed to save pet image: %w", err)
	}
	s.invalidate(ctx, petID)

	img.URL = s.storage.URL(key)
	return &img, nil
}

func (s *PetService) DeleteImage(ctx context.Context, petID *uuid.UUID, imageID uuid.UUID) error {
	img, err := s.GetImage(ctx, petID, imageID)
	if err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Delete(&models.PetImage{}, "id = ?", img.ID).Error; err != nil {
		return err
	}
	s.invalidate(ctx, img.PetID)

	if err := s.storage.Delete(ctx, img.Key); err != nil {
		slog.Warn("failed to delete pet image file", "key", img.Key, "error", err)
	}
	return nil
}

func (s *PetService) resolveURLs(images []models.PetImage) {
	for i := range images {
		images[i].URL = s.storage.URL(images[i].Key)
	}
}

func (s *PetService) invalidate(ctx context.Context, id uuid.UUID) {
	invalidatePets(ctx, s.cache, id)
}

// invalidatePets drops the cached detail view of every given pet. Anything
// that changes a pet's images, donations, donors or is_adopted flag calls it.
func invalidatePets(ctx context.Context, c cache.Cache, ids ...uuid.UUID) {
	keys := make([]string, 0, len(ids))
	seen := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		if id == uuid.Nil || seen[id] {
			continue
		}
		seen[id] = true
		keys = append(keys, petCacheKey(id))
	}
	if len(keys) == 0 {
		return
	}
	if err := c.Delete(ctx, keys...); err != nil {
		slog.Warn("pet cache invalidation failed", "keys", keys, "error", err)
	}
}
