package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrForbidden = errors.New("you do not have permission to access this resource")

	ErrUserNotFound         = errors.New("user not found")
	ErrPetNotFound          = errors.New("pet not found")
	ErrImageNotFound        = errors.New("pet image not found")
	ErrAdoptionNotFound     = errors.New("adoption request not found")
	ErrAnswerNotFound       = errors.New("answer not found")
	ErrQuestionNotFound     = errors.New("question not found")
	ErrQuestionNotAttached  = errors.New("question is not attached to this adoption")
	ErrQuestionTypeNotFound = errors.New("question type not found")
	ErrAddressNotFound      = errors.New("address not found")
	ErrDonationNotFound     = errors.New("donation not found")

	ErrEmailTaken              = errors.New("email already registered")
	ErrLoginTaken              = errors.New("login already in use")
	ErrTypeNameTaken           = errors.New("question type name already in use")
	ErrQuestionAlreadyAttached = errors.New("question already attached to this adoption")

	ErrInvalidCredentials = errors.New("invalid login or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrInactiveUser       = errors.New("user account is inactive")
	ErrWrongPassword      = errors.New("current password is incorrect")
	ErrInvalidStatus      = errors.New("invalid adoption status")
)

// notFound converts gorm.ErrRecordNotFound into the given sentinel.
func notFound(err, sentinel error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return sentinel
	}
	return err
}

// exists reports whether a row with the given primary key exists.
func exists(ctx context.Context, db *gorm.DB, model any, id uuid.UUID) (bool, error) {
	var n int64
	if err := db.WithContext(ctx).Model(model).Where("id = ?", id).Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

func mustExist(ctx context.Context, db *gorm.DB, model any, id uuid.UUID, sentinel error) error {
	ok, err := exists(ctx, db, model, id)
	if err != nil {
		return err
	}
	if !ok {
		return sentinel
	}
	return nil
}
