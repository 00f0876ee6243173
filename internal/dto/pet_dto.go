package dto

type CreatePetRequest struct {
	Name        string  `json:"pet_name" validate:"required,max=50"`
	Species     string  `json:"species" validate:"required,species"`
	Gender      string  `json:"gender" validate:"required,gender"`
	Breed       *string `json:"breed" validate:"omitempty,max=20"`
	Age         *int    `json:"age" validate:"required,min=0,max=50"`
	Size        string  `json:"size" validate:"required,petsize"`
	Colour      *string `json:"colour" validate:"omitempty,max=30"`
	Personality *string `json:"personality" validate:"omitempty,max=255"`
	SpecialCare *string `json:"special_care" validate:"omitempty,max=255"`
	Description *string `json:"description" validate:"omitempty,max=255"`
	State       string  `json:"state" validate:"required,uf"`
	City        string  `json:"city" validate:"required,max=100"`
	Vaccinated  bool    `json:"vaccinated"`
	Castrated   bool    `json:"castrated"`
	Vermifuged  bool    `json:"vermifuged"`
	IsAdopted   bool    `json:"is_adopted"`
}

type UpdatePetRequest struct {
	Name        *string `json:"pet_name" validate:"omitempty,max=50"`
	Species     *string `json:"species" validate:"omitempty,species"`
	Gender      *string `json:"gender" validate:"omitempty,gender"`
	Breed       *string `json:"breed" validate:"omitempty,max=20"`
	Age         *int    `json:"age" validate:"omitempty,min=0,max=50"`
	Size        *string `json:"size" validate:"omitempty,petsize"`
	Colour      *string `json:"colour" validate:"omitempty,max=30"`
	Personality *string `json:"personality" validate:"omitempty,max=255"`
	SpecialCare *string `json:"special_care" validate:"omitempty,max=255"`
	Description *string `json:"description" validate:"omitempty,max=255"`
	State       *string `json:"state" validate:"omitempty,uf"`
	City        *string `json:"city" validate:"omitempty,max=100"`
	Vaccinated  *bool   `json:"vaccinated"`
	Castrated   *bool   `json:"castrated"`
	Vermifuged  *bool   `json:"vermifuged"`
	IsAdopted   *bool   `json:"is_adopted"`
}

type PetFilter struct {
	Species string `query:"species" validate:"omitempty,species"`
	City    string `query:"city" validate:"omitempty,max=100"`
	State   string `query:"state" validate:"omitempty,uf"`
	Status  string `query:"status" validate:"omitempty,oneof=available adopted disponivel adotado"`
}

// Adopted translates the status filter into the is_adopted flag.
func (f PetFilter) Adopted() *bool {
	var v bool
	switch f.Status {
	case "available", "disponivel":
		v = false
	case "adopted", "adotado":
		v = true
	default:
		return nil
	}
	return &v
}
