package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Pet struct {
	ID          uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name        string     `gorm:"column:pet_name;size:50;not null" json:"pet_name"`
	Species     Species    `gorm:"size:10;not null;index" json:"species"`
	Gender      Gender     `gorm:"size:10;not null" json:"gender"`
	Breed       *string    `gorm:"size:20" json:"breed"`
	Age         int        `gorm:"not null;check:age >= 0" json:"age"`
	Size        PetSize    `gorm:"size:10;not null" json:"size"`
	Colour      *string    `gorm:"size:30" json:"colour"`
	Personality *string    `gorm:"size:255" json:"personality"`
	SpecialCare *string    `gorm:"size:255" json:"special_care"`
	Description *string    `gorm:"size:255" json:"description"`
	State       string     `gorm:"size:2;not null;index" json:"state"`
	City        string     `gorm:"size:100;not null;index" json:"city"`
	Vaccinated  bool       `gorm:"not null;default:false" json:"vaccinated"`
	Castrated   bool       `gorm:"not null;default:false" json:"castrated"`
	Vermifuged  bool       `gorm:"not null;default:false" json:"vermifuged"`
	IsAdopted   bool       `gorm:"not null;default:false;index" json:"is_adopted"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	Images      []PetImage `gorm:"foreignKey:PetID;constraint:OnDelete:CASCADE" json:"images,omitempty"`
	Donations   []Donation `gorm:"foreignKey:PetID;constraint:OnDelete:CASCADE" json:"donations,omitempty"`
}

// BeforeSave stores the canonical form of every enumerated attribute.
func (p *Pet) BeforeSave(_ *gorm.DB) error {
	p.Species = NormalizeSpecies(string(p.Species))
	if g, ok := ParseGender(string(p.Gender)); ok {
		p.Gender = g
	}
	if s, ok := ParsePetSize(string(p.Size)); ok {
		p.Size = s
	}
	return nil
}

type PetImage struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	PetID     uuid.UUID `gorm:"type:uuid;not null;index" json:"pet_id"`
	Key       string    `gorm:"column:image;size:255;not null" json:"-"`
	URL       string    `gorm:"-" json:"image"`
	CreatedAt time.Time `json:"created_at"`
	Pet       *Pet      `gorm:"foreignKey:PetID;constraint:OnDelete:CASCADE" json:"-"`
}
