package dto

type CreateAddressRequest struct {
	ZipCode           string  `json:"zip_code" validate:"required,zipcode"`
	StreetName        string  `json:"street_name" validate:"required,max=70"`
	AddressNumber     string  `json:"address_number" validate:"required,max=10"`
	AddressComplement *string `json:"address_complement" validate:"omitempty,max=100"`
	Neighborhood      string  `json:"neighborhood" validate:"required,max=100"`
	CityName          string  `json:"city_name" validate:"required,max=100"`
	StateName         string  `json:"state_name" validate:"required,uf"`
}

type UpdateAddressRequest struct {
	ZipCode           *string `json:"zip_code" validate:"omitempty,zipcode"`
	StreetName        *string `json:"street_name" validate:"omitempty,min=1,max=70"`
	AddressNumber     *string `json:"address_number" validate:"omitempty,min=1,max=10"`
	AddressComplement *string `json:"address_complement" validate:"omitempty,max=100"`
	Neighborhood      *string `json:"neighborhood" validate:"omitempty,min=1,max=100"`
	CityName          *string `json:"city_name" validate:"omitempty,min=1,max=100"`
	StateName         *string `json:"state_name" validate:"omitempty,uf"`
}

type CreateDonationRequest struct {
	PetID string `json:"pet_id" validate:"required,uuid"`
}
