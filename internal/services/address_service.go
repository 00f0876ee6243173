package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/patinhas/adoption-api/internal/authctx"
	"github.com/patinhas/adoption-api/internal/database"
	"github.com/patinhas/adoption-api/internal/dto"
	"github.com/patinhas/adoption-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AddressService struct {
	db *gorm.DB
}

func NewAddressService(db *gorm.DB) *AddressService {
	return &AddressService{db: db}
}

func (s *AddressService) List(ctx context.Context, page dto.PageQuery) ([]models.Address, int64, error) {
	var addresses []models.Address
	var total int64

	query := s.db.WithContext(ctx).Model(&models.Address{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := query.Order("created_at DESC").Scopes(database.Paginate(page.Page, page.Limit)).Find(&addresses).Error; err != nil {
		return nil, 0, err
	}
	return addresses, total, nil
}

func (s *AddressService) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Address, error) {
	if err := mustExist(ctx, s.db, &models.User{}, userID, ErrUserNotFound); err != nil {
		return nil, err
	}
	addresses := make([]models.Address, 0)
	err := s.db.WithContext(ctx).Scopes(database.ForUser(userID)).Order("created_at ASC").Find(&addresses).Error
	return addresses, err
}

func (s *AddressService) Create(ctx context.Context, userID uuid.UUID, req *dto.CreateAddressRequest) (*models.Address, error) {
	if err := mustExist(ctx, s.db, &models.User{}, userID, ErrUserNotFound); err != nil {
		return nil, err
	}
	addr := models.Address{
		ID:                uuid.New(),
		UserID:            userID,
		ZipCode:           req.ZipCode,
		StreetName:        strings.TrimSpace(req.StreetName),
		AddressNumber:     strings.TrimSpace(req.AddressNumber),
		AddressComplement: req.AddressComplement,
		Neighborhood:      strings.TrimSpace(req.Neighborhood),
		CityName:          strings.TrimSpace(req.CityName),
		StateName:         strings.ToUpper(req.StateName),
	}
	if err := s.db.WithContext(ctx).Omit(clause.Associations).Create(&addr).Error; err != nil {
		return nil, fmt.Errorf("failed to create address: %w", err)
	}
	return &addr, nil
}

// Get applies the owner-or-admin rule after the address is found.
func (s *AddressService) Get(ctx context.Context, actor authctx.Identity, id uuid.UUID) (*models.Address, error) {
	var addr models.Address
	if err := s.db.WithContext(ctx).First(&addr, "id = ?", id).Error; err != nil {
		return nil, notFound(err, ErrAddressNotFound)
	}
	if !actor.CanActFor(addr.UserID) {
		return nil, ErrForbidden
	}
	return &addr, nil
}

func (s *AddressService) GetForUser(ctx context.Context, userID, id uuid.UUID) (*models.Address, error) {
	var addr models.Address
	if err := s.db.WithContext(ctx).Scopes(database.ForUser(userID)).First(&addr, "id = ?", id).Error; err != nil {
		return nil, notFound(err, ErrAddressNotFound)
	}
	return &addr, nil
}

// Update locks the row so concurrent edits apply one after the other.
func (s *AddressService) Update(ctx context.Context, actor authctx.Identity, id uuid.UUID, req *dto.UpdateAddressRequest) (*models.Address, error) {
	var addr models.Address
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&addr, "id = ?", id).Error; err != nil {
			return notFound(err, ErrAddressNotFound)
		}
		if !actor.CanActFor(addr.UserID) {
			return ErrForbidden
		}
		applyAddressUpdate(&addr, req)
		return tx.Omit(clause.Associations).Save(&addr).Error
	})
	if err != nil {
		return nil, err
	}
	return &addr, nil
}

func (s *AddressService) Delete(ctx context.Context, actor authctx.Identity, id uuid.UUID) error {
	addr, err := s.Get(ctx, actor, id)
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).Delete(&models.Address{}, "id = ?", addr.ID).Error
}

func applyAddressUpdate(addr *models.Address, req *dto.UpdateAddressRequest) {
	if req.ZipCode != nil {
		addr.ZipCode = *req.ZipCode
	}
	if req.StreetName != nil {
		addr.StreetName = strings.TrimSpace(*req.StreetName)
	}
	if req.AddressNumber != nil {
		addr.AddressNumber = strings.TrimSpace(*req.AddressNumber)
	}
	if req.AddressComplement != nil {
		addr.AddressComplement = req.AddressComplement
	}
	if req.Neighborhood != nil {
		addr.Neighborhood = strings.TrimSpace(*req.Neighborhood)
	}
	if req.CityName != nil {
		addr.CityName = strings.TrimSpace(*req.CityName)
	}
	if req.StateName != nil {
		addr.StateName = strings.ToUpper(*req.StateName)
	}
}
