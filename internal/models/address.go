package models

import (
	"time"

	"github.com/google/uuid"
)

type Address struct {
	ID                uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID            uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	ZipCode           string    `gorm:"size:9;not null" json:"zip_code"`
	StreetName        string    `gorm:"size:70;not null" json:"street_name"`
	AddressNumber     string    `gorm:"size:10;not null" json:"address_number"`
	AddressComplement *string   `gorm:"size:100" json:"address_complement"`
	Neighborhood      string    `gorm:"size:100;not null" json:"neighborhood"`
	CityName          string    `gorm:"size:100;not null" json:"city_name"`
	StateName         string    `gorm:"size:2;not null" json:"state_name"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
	User              *User     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}
