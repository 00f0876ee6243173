package models

import (
	"time"

	"github.com/google/uuid"
)

type Donation struct {
	ID           uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID       uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	PetID        uuid.UUID `gorm:"type:uuid;not null;index" json:"pet_id"`
	DonationDate time.Time `gorm:"not null;index" json:"donation_date"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	User         *User     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	Pet          *Pet      `gorm:"foreignKey:PetID;constraint:OnDelete:CASCADE" json:"pet,omitempty"`
}
