package models

import (
	"time"

	"github.com/google/uuid"
)

type QuestionType struct {
	ID              uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	TypeName        string    `gorm:"size:50;not null;uniqueIndex" json:"type_name"`
	TypeDescription *string   `gorm:"size:255" json:"type_description"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// Question is a catalog item; deleting its QuestionType deletes it too.
type Question struct {
	ID              uuid.UUID     `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	TypeID          uuid.UUID     `gorm:"type:uuid;not null;index" json:"type_id"`
	QuestionContent string        `gorm:"size:255;not null" json:"question_content"`
	QuestionNumber  int           `gorm:"not null;index" json:"question_number"`
	IsOptional      bool          `gorm:"not null;default:false" json:"is_optional"`
	IsActive        bool          `gorm:"not null;default:true" json:"is_active"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
	Type            *QuestionType `gorm:"foreignKey:TypeID;constraint:OnDelete:CASCADE" json:"type,omitempty"`
}
