package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/patinhas/adoption-api/internal/authctx"
	"github.com/patinhas/adoption-api/internal/cache"
	"github.com/patinhas/adoption-api/internal/database"
	"github.com/patinhas/adoption-api/internal/dto"
	"github.com/patinhas/adoption-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DonationService struct {
	db    *gorm.DB
	cache cache.Cache
}

func NewDonationService(db *gorm.DB, c cache.Cache) *DonationService {
	return &DonationService{db: db, cache: c}
}

func withDonationDetails(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Pet").
		Preload("User", func(db *gorm.DB) *gorm.DB { return db.Select("id", "name", "email", "phone_number") })
}

func (s *DonationService) Create(ctx context.Context, userID uuid.UUID, req *dto.CreateDonationRequest) (*models.Donation, error) {
	petID, err := uuid.Parse(req.PetID)
	if err != nil {
		return nil, dto.NewValidationError("pet_id", "must be a valid UUID")
	}
	if err := mustExist(ctx, s.db, &models.User{}, userID, ErrUserNotFound); err != nil {
		return nil, err
	}
	if err := mustExist(ctx, s.db, &models.Pet{}, petID, ErrPetNotFound); err != nil {
		return nil, err
	}

	donation := models.Donation{ID: uuid.New(), UserID: userID, PetID: petID, DonationDate: time.Now()}
	if err := s.db.WithContext(ctx).Omit(clause.Associations).Create(&donation).Error; err != nil {
		return nil, fmt.Errorf("failed to create donation: %w", err)
	}
	invalidatePets(ctx, s.cache, petID)
	return s.get(ctx, s.db.WithContext(ctx), donation.ID)
}

func (s *DonationService) List(ctx context.Context, page dto.PageQuery) ([]models.Donation, int64, error) {
	return s.list(s.db.WithContext(ctx).Model(&models.Donation{}), page)
}

func (s *DonationService) ListByUser(ctx context.Context, userID uuid.UUID, page dto.PageQuery) ([]models.Donation, int64, error) {
	if err := mustExist(ctx, s.db, &models.User{}, userID, ErrUserNotFound); err != nil {
		return nil, 0, err
	}
	return s.list(s.db.WithContext(ctx).Model(&models.Donation{}).Scopes(database.ForUser(userID)), page)
}

func (s *DonationService) ListByPet(ctx context.Context, petID uuid.UUID, page dto.PageQuery) ([]models.Donation, int64, error) {
	if err := mustExist(ctx, s.db, &models.Pet{}, petID, ErrPetNotFound); err != nil {
		return nil, 0, err
	}
	return s.list(s.db.WithContext(ctx).Model(&models.Donation{}).Where("pet_id = ?", petID), page)
}

func (s *DonationService) list(query *gorm.DB, page dto.PageQuery) ([]models.Donation, int64, error) {
	var donations []models.Donation
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := query.Scopes(withDonationDetails, database.Paginate(page.Page, page.Limit)).
		Order("donation_date DESC").
		Find(&donations).Error
	if err != nil {
		return nil, 0, err
	}
	return donations, total, nil
}

// Get applies the owner-or-admin rule after the donation is found.
func (s *DonationService) Get(ctx context.Context, actor authctx.Identity, id uuid.UUID) (*models.Donation, error) {
	donation, err := s.get(ctx, s.db.WithContext(ctx), id)
	if err != nil {
		return nil, err
	}
	if !actor.CanActFor(donation.UserID) {
		return nil, ErrForbidden
	}
	return donation, nil
}

func (s *DonationService) GetForUser(ctx context.Context, userID, id uuid.UUID) (*models.Donation, error) {
	return s.get(ctx, s.db.WithContext(ctx).Scopes(database.ForUser(userID)), id)
}

func (s *DonationService) GetForPet(ctx context.Context, petID, id uuid.UUID) (*models.Donation, error) {
	return s.get(ctx, s.db.WithContext(ctx).Where("pet_id = ?", petID), id)
}

func (s *DonationService) get(_ context.Context, query *gorm.DB, id uuid.UUID) (*models.Donation, error) {
	var donation models.Donation
	if err := query.Scopes(withDonationDetails).First(&donation, "id = ?", id).Error; err != nil {
		return nil, notFound(err, ErrDonationNotFound)
	}
	return &donation, nil
}

func (s *DonationService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.delete(ctx, s.db.WithContext(ctx), id)
}

func (s *DonationService) DeleteForUser(ctx context.Context, userID, id uuid.UUID) error {
	return s.delete(ctx, s.db.WithContext(ctx).Scopes(database.ForUser(userID)), id)
}

// delete returns the removed row's pet_id so the pet's cached view can be dropped.
func (s *DonationService) delete(ctx context.Context, query *gorm.DB, id uuid.UUID) error {
	var removed []models.Donation
	res := query.Clauses(clause.Returning{Columns: []clause.Column{{Name: "pet_id"}}}).
		Where("id = ?", id).
		Delete(&removed)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrDonationNotFound
	}
	for _, d := range removed {
		invalidatePets(ctx, s.cache, d.PetID)
	}
	return nil
}
