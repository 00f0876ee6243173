package dto

type AnswerInput struct {
	QuestionID    string  `json:"question_id" validate:"required,uuid"`
	AnswerContent *string `json:"answer_content" validate:"required,min=1"`
}

type CreateAdoptionRequest struct {
	PetID   string        `json:"pet_id" validate:"required,uuid"`
	Answers []AnswerInput `json:"answers" validate:"omitempty,dive"`
}

type UpdateAdoptionStatusRequest struct {
	Status string `json:"status" validate:"required,adoption_status"`
}

// UpdateAdoptionRequest is the owner-scoped update: status and/or answers.
type UpdateAdoptionRequest struct {
	Status  *string       `json:"status" validate:"omitempty,adoption_status"`
	Answers []AnswerInput `json:"answers" validate:"omitempty,dive"`
}

type AdoptionFilter struct {
	Status string `query:"status" validate:"omitempty,adoption_status"`
}

type AttachQuestionRequest struct {
	QuestionID string `json:"question_id" validate:"required,uuid"`
}

type CreateAnswersRequest struct {
	Answers []AnswerInput `json:"answers" validate:"required,min=1,dive"`
}

type UpdateAnswerRequest struct {
	AnswerContent *string `json:"answer_content" validate:"required,min=1"`
}
