package dto

type CreateQuestionRequest struct {
	TypeID          string `json:"type_id" validate:"required,uuid"`
	QuestionContent string `json:"question_content" validate:"required,max=255"`
	QuestionNumber  *int   `json:"question_number" validate:"required,min=0"`
	IsOptional      *bool  `json:"is_optional"`
	IsActive        *bool  `json:"is_active"`
}

type UpdateQuestionRequest struct {
	TypeID          *string `json:"type_id" validate:"omitempty,uuid"`
	QuestionContent *string `json:"question_content" validate:"omitempty,max=255"`
	QuestionNumber  *int    `json:"question_number" validate:"omitempty,min=0"`
	IsOptional      *bool   `json:"is_optional"`
	IsActive        *bool   `json:"is_active"`
}

type QuestionFilter struct {
	TypeID string `query:"type_id" validate:"omitempty,uuid"`
	Active *bool  `query:"active"`
}

type CreateQuestionTypeRequest struct {
	TypeName        string  `json:"type_name" validate:"required,max=50"`
	TypeDescription *string `json:"type_description" validate:"omitempty,max=255"`
}

type UpdateQuestionTypeRequest struct {
	TypeName        *string `json:"type_name" validate:"omitempty,min=1,max=50"`
	TypeDescription *string `json:"type_description" validate:"omitempty,max=255"`
}
