package models

import (
	"time"

	"github.com/google/uuid"
)

type UserType string

const (
	UserTypeDonor   UserType = "donor"
	UserTypeAdopter UserType = "adopter"
	UserTypeBoth    UserType = "both"
)

type User struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name        string    `gorm:"size:100;not null" json:"name"`
	Email       string    `gorm:"size:255;not null;uniqueIndex" json:"email"`
	PhoneNumber *string   `gorm:"size:20" json:"phone_number"`
	Login       string    `gorm:"size:32;not null;uniqueIndex" json:"login"`
	Password    string    `gorm:"not null" json:"-"`
	Type        UserType  `gorm:"size:10;not null;default:'adopter'" json:"type"`
	IsActive    bool      `gorm:"not null;default:true" json:"is_active"`
	IsAdmin     bool      `gorm:"not null;default:false" json:"is_admin"`
	Image       *string   `gorm:"size:255" json:"image"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Addresses   []Address `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"addresses,omitempty"`
}
