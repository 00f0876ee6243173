package models

import "strings"

type Species string

const (
	SpeciesDog   Species = "dog"
	SpeciesCat   Species = "cat"
	SpeciesOther Species = "other"
)

var speciesSynonyms = map[string]Species{
	"dog":       SpeciesDog,
	"dogs":      SpeciesDog,
	"canine":    SpeciesDog,
	"cachorro":  SpeciesDog,
	"cachorros": SpeciesDog,
	"cao":       SpeciesDog,
	"cão":       SpeciesDog,
	"cat":       SpeciesCat,
	"cats":      SpeciesCat,
	"feline":    SpeciesCat,
	"gato":      SpeciesCat,
	"gatos":     SpeciesCat,
	"other":     SpeciesOther,
	"outro":     SpeciesOther,
	"outros":    SpeciesOther,
}

// NormalizeSpecies maps any casing or synonym to dog, cat or other.
// Unknown values fall back to other.
func NormalizeSpecies(raw string) Species {
	if s, ok := speciesSynonyms[strings.ToLower(strings.TrimSpace(raw))]; ok {
		return s
	}
	return SpeciesOther
}

// IsKnownSpecies reports whether raw is one of the accepted spellings.
func IsKnownSpecies(raw string) bool {
	_, ok := speciesSynonyms[strings.ToLower(strings.TrimSpace(raw))]
	return ok
}

type Gender string

const (
	GenderMale    Gender = "male"
	GenderFemale  Gender = "female"
	GenderUnknown Gender = "unknown"
)

func ParseGender(raw string) (Gender, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "male", "macho", "m":
		return GenderMale, true
	case "female", "femea", "fêmea", "f":
		return GenderFemale, true
	case "unknown", "nao sei", "não sei":
		return GenderUnknown, true
	}
	return "", false
}

type PetSize string

const (
	SizeSmall  PetSize = "small"
	SizeMedium PetSize = "medium"
	SizeLarge  PetSize = "large"
)

func ParsePetSize(raw string) (PetSize, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "small", "pequeno":
		return SizeSmall, true
	case "medium", "medio", "médio":
		return SizeMedium, true
	case "large", "grande":
		return SizeLarge, true
	}
	return "", false
}

type AdoptionStatus string

const (
	StatusPending   AdoptionStatus = "pending"
	StatusApproved  AdoptionStatus = "approved"
	StatusRejected  AdoptionStatus = "rejected"
	StatusCancelled AdoptionStatus = "cancelled"
)

// AdoptionStatuses lists every status an adoption may hold.
var AdoptionStatuses = []AdoptionStatus{StatusPending, StatusApproved, StatusRejected, StatusCancelled}

func (s AdoptionStatus) Valid() bool {
	for _, v := range AdoptionStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// CanTransition reports whether an adoption may move from one status to another.
// Every status is reachable from every other; only the target must be valid.
func CanTransition(_, to AdoptionStatus) bool {
	return to.Valid()
}

// BrazilianStates holds the 27 federative unit codes accepted for addresses and pets.
var BrazilianStates = []string{
	"AC", "AL", "AP", "AM", "BA", "CE", "DF", "ES", "GO", "MA", "MT", "MS", "MG", "PA",
	"PB", "PR", "PE", "PI", "RJ", "RN", "RS", "RO", "RR", "SC", "SP", "SE", "TO",
}

func IsBrazilianState(code string) bool {
	code = strings.ToUpper(code)
	for _, s := range BrazilianStates {
		if s == code {
			return true
		}
	}
	return false
}
