package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeSpecies(t *testing.T) {
	cases := map[string]Species{
		"DOG":      SpeciesDog,
		" Dog ":    SpeciesDog,
		"cachorro": SpeciesDog,
		"Gato":     SpeciesCat,
		"cats":     SpeciesCat,
		"outro":    SpeciesOther,
		"parrot":   SpeciesOther,
		"":         SpeciesOther,
	}
	for in, want := range cases {
		assert.Equal(t, want, NormalizeSpecies(in), "input %q", in)
	}

	assert.True(t, IsKnownSpecies("CACHORRO"))
	assert.False(t, IsKnownSpecies("parrot"))
}

func TestPetBeforeSaveCanonicalises(t *testing.T) {
	p := &Pet{Species: "DOG", Gender: "Macho", Size: "grande"}
	assert.NoError(t, p.BeforeSave(nil))
	assert.Equal(t, SpeciesDog, p.Species)
	assert.Equal(t, GenderMale, p.Gender)
	assert.Equal(t, SizeLarge, p.Size)
}

func TestAdoptionStatusValid(t *testing.T) {
	for _, s := range AdoptionStatuses {
		assert.True(t, s.Valid())
	}
	assert.False(t, AdoptionStatus("invalido").Valid())
	assert.False(t, AdoptionStatus("").Valid())
	assert.False(t, AdoptionStatus("Pending").Valid())
}

func TestCanTransitionIsPermissive(t *testing.T) {
	for _, from := range AdoptionStatuses {
		for _, to := range AdoptionStatuses {
			assert.True(t, CanTransition(from, to), "%s -> %s", from, to)
		}
		assert.False(t, CanTransition(from, "archived"))
	}
}

func TestIsBrazilianState(t *testing.T) {
	assert.Len(t, BrazilianStates, 27)
	assert.True(t, IsBrazilianState("sp"))
	assert.True(t, IsBrazilianState("DF"))
	assert.False(t, IsBrazilianState("XX"))
}
