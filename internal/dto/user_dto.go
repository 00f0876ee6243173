package dto

type CreateUserRequest struct {
	Name        string  `json:"name" validate:"required,max=100"`
	Email       string  `json:"email" validate:"required,email,max=255"`
	PhoneNumber *string `json:"phone_number" validate:"omitempty,max=20"`
	Login       string  `json:"login" validate:"required,alphanum,min=3,max=32"`
	Password    string  `json:"password" validate:"required,min=6"`
	Type        string  `json:"type" validate:"omitempty,oneof=donor adopter both"`
	Image       *string `json:"image" validate:"omitempty,max=255"`
}

// UpdateUserRequest is a partial update; nil fields are left untouched.
// IsActive is only honoured for admins.
type UpdateUserRequest struct {
	Name        *string `json:"name" validate:"omitempty,max=100"`
	Email       *string `json:"email" validate:"omitempty,email,max=255"`
	PhoneNumber *string `json:"phone_number" validate:"omitempty,max=20"`
	Login       *string `json:"login" validate:"omitempty,alphanum,min=3,max=32"`
	Type        *string `json:"type" validate:"omitempty,oneof=donor adopter both"`
	Image       *string `json:"image" validate:"omitempty,max=255"`
	IsActive    *bool   `json:"is_active"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=6"`
}

type SetAdminRequest struct {
	IsAdmin *bool `json:"is_admin" validate:"required"`
}
