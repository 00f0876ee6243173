package models

import (
	"time"

	"github.com/google/uuid"
)

type Adoption struct {
	ID             uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID         uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	PetID          uuid.UUID      `gorm:"type:uuid;not null;index" json:"pet_id"`
	RequestDate    time.Time      `gorm:"not null;index" json:"request_date"`
	AcceptanceDate *time.Time     `json:"acceptance_date"`
	Status         AdoptionStatus `gorm:"size:20;not null;default:'pending';index;check:chk_adoptions_status,status IN ('pending','approved','rejected','cancelled')" json:"status"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	User           *User          `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	Pet            *Pet           `gorm:"foreignKey:PetID;constraint:OnDelete:CASCADE" json:"pet,omitempty"`
	Questions      []Question     `gorm:"many2many:adoption_questions;joinForeignKey:AdoptionID;joinReferences:QuestionID;constraint:OnDelete:CASCADE" json:"questions"`
	Answers        []Answer       `gorm:"foreignKey:AdoptionID;constraint:OnDelete:CASCADE" json:"answers"`
}

// AdoptionQuestion links a catalog Question to one Adoption.
type AdoptionQuestion struct {
	AdoptionID uuid.UUID `gorm:"type:uuid;primaryKey" json:"adoption_id"`
	QuestionID uuid.UUID `gorm:"type:uuid;primaryKey" json:"question_id"`
	CreatedAt  time.Time `json:"created_at"`
}

type Answer struct {
	ID            uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	AdoptionID    uuid.UUID `gorm:"type:uuid;not null;index" json:"adoption_id"`
	QuestionID    uuid.UUID `gorm:"type:uuid;not null;index" json:"question_id"`
	AnswerContent *string   `gorm:"type:text" json:"answer_content"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
	Adoption      *Adoption `gorm:"foreignKey:AdoptionID;constraint:OnDelete:CASCADE" json:"-"`
	Question      *Question `gorm:"foreignKey:QuestionID;constraint:OnDelete:CASCADE" json:"question,omitempty"`
}
