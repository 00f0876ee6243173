package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/patinhas/adoption-api/internal/authctx"
	"github.com/patinhas/adoption-api/internal/cache"
	"github.com/patinhas/adoption-api/internal/database"
	"github.com/patinhas/adoption-api/internal/dto"
	"github.com/patinhas/adoption-api/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserService struct {
	db    *gorm.DB
	cache cache.Cache
}

func NewUserService(db *gorm.DB, c cache.Cache) *UserService {
	return &UserService{db: db, cache: c}
}

func (s *UserService) Create(ctx context.Context, req *dto.CreateUserRequest) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	login := strings.TrimSpace(req.Login)
	if err := s.checkUnique(ctx, uuid.Nil, email, login); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	userType := models.UserType(req.Type)
	if userType == "" {
		userType = models.UserTypeAdopter
	}

	user := models.User{
		ID:          uuid.New(),
		Name:        strings.TrimSpace(req.Name),
		Email:       email,
		PhoneNumber: req.PhoneNumber,
		Login:       login,
		Password:    string(hash),
		Type:        userType,
		IsActive:    true,
		Image:       req.Image,
	}
	if err := s.db.WithContext(ctx).Omit(clause.Associations).Create(&user).Error; err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return &user, nil
}

func (s *UserService) Get(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).
		Preload("Addresses", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		First(&user, "id = ?", id).Error
	if err != nil {
		return nil, notFound(err, ErrUserNotFound)
	}
	return &user, nil
}

func (s *UserService) List(ctx context.Context, page dto.PageQuery) ([]models.User, int64, error) {
	var users []models.User
	var total int64

	query := s.db.WithContext(ctx).Model(&models.User{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := query.Order("name ASC").Scopes(database.Paginate(page.Page, page.Limit)).Find(&users).Error; err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

// Update applies a partial update. is_active is only changed by admins.
func (s *UserService) Update(ctx context.Context, actor authctx.Identity, id uuid.UUID, req *dto.UpdateUserRequest) (*models.User, error) {
	user, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]any{}
	var newEmail, newLogin string
	if req.Email != nil {
		if e := strings.ToLower(strings.TrimSpace(*req.Email)); e != user.Email {
			newEmail = e
			updates["email"] = e
		}
	}
	if req.Login != nil {
		if l := strings.TrimSpace(*req.Login); l != user.Login {
			newLogin = l
			updates["login"] = l
		}
	}
	if err := s.checkUnique(ctx, id, newEmail, newLogin); err != nil {
		return nil, err
	}

	if req.Name != nil {
		updates["name"] = strings.TrimSpace(*req.Name)
	}
	if req.PhoneNumber != nil {
		updates["phone_number"] = *req.PhoneNumber
	}
	if req.Type != nil {
		updates["type"] = *req.Type
	}
	if req.Image != nil {
		updates["image"] = *req.Image
	}
	if req.IsActive != nil && actor.IsAdmin {
		updates["is_active"] = *req.IsActive
	}

	if len(updates) > 0 {
		if err := s.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update user: %w", err)
		}
	}

	// Cached pet views embed the donor's name and phone.
	_, renamed := updates["name"]
	_, rephoned := updates["phone_number"]
	if renamed || rephoned {
		var donated []uuid.UUID
		if err := s.db.WithContext(ctx).Model(&models.Donation{}).
			Where("user_id = ?", id).Distinct().Pluck("pet_id", &donated).Error; err != nil {
			return nil, err
		}
		invalidatePets(ctx, s.cache, donated...)
	}
	return s.Get(ctx, id)
}

func (s *UserService) ChangePassword(ctx context.Context, id uuid.UUID, req *dto.ChangePasswordRequest) error {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return notFound(err, ErrUserNotFound)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.CurrentPassword)); err != nil {
		return ErrWrongPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	return s.db.WithContext(ctx).Model(&user).Update("password", string(hash)).Error
}

func (s *UserService) SetAdmin(ctx context.Context, id uuid.UUID, isAdmin bool) (*models.User, error) {
	res := s.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Update("is_admin", isAdmin)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrUserNotFound
	}
	return s.Get(ctx, id)
}

// Delete removes the user; addresses, adoptions, answers, donations and
// refresh tokens go with it through ON DELETE CASCADE. Pets that lose an
// approved adoption get is_adopted recomputed in the same transaction.
func (s *UserService) Delete(ctx context.Context, id uuid.UUID) error {
	var adopted, donated []uuid.UUID
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Adoption{}).
			Where("user_id = ? AND status = ?", id, models.StatusApproved).
			Distinct().Pluck("pet_id", &adopted).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Donation{}).
			Where("user_id = ?", id).
			Distinct().Pluck("pet_id", &donated).Error; err != nil {
			return err
		}

		res := tx.Delete(&models.User{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrUserNotFound
		}

		for _, petID := range adopted {
			if err := syncPetAdopted(tx, petID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	invalidatePets(ctx, s.cache, append(adopted, donated...)...)
	return nil
}

// checkUnique skips empty values and ignores the row identified by self.
func (s *UserService) checkUnique(ctx context.Context, self uuid.UUID, email, login string) error {
	db := s.db.WithContext(ctx)
	if email != "" {
		var n int64
		if err := db.Model(&models.User{}).Where("email = ? AND id <> ?", email, self).Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return ErrEmailTaken
		}
	}
	if login != "" {
		var n int64
		if err := db.Model(&models.User{}).Where("login = ? AND id <> ?", login, self).Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return ErrLoginTaken
		}
	}
	return nil
}
