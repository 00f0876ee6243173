package models

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/schema"
)

// tableConstraints returns the foreign keys AutoMigrate emits for the model's
// table, keyed by column. Belongs-to relations paired with a has-many on the
// parent resolve to the parent's constraint tag.
func tableConstraints(t *testing.T, model any) map[string]*schema.Constraint {
	t.Helper()

	s, err := schema.Parse(model, &sync.Map{}, schema.NamingStrategy{})
	require.NoError(t, err)

	out := map[string]*schema.Constraint{}
	for _, rel := range s.Relationships.Relations {
		c := rel.ParseConstraint()
		if c == nil || c.Schema != s {
			continue
		}
		for _, fk := range c.ForeignKeys {
			out[fk.DBName] = c
		}
	}
	return out
}

func TestForeignKeysCascadeOnDelete(t *testing.T) {
	tests := []struct {
		model      any
		column     string
		references string
	}{
		{model: &Question{}, column: "type_id", references: "question_types"},
		{model: &Answer{}, column: "question_id", references: "questions"},
		{model: &Answer{}, column: "adoption_id", references: "adoptions"},
		{model: &Adoption{}, column: "pet_id", references: "pets"},
		{model: &Adoption{}, column: "user_id", references: "users"},
		{model: &Donation{}, column: "pet_id", references: "pets"},
		{model: &Donation{}, column: "user_id", references: "users"},
		{model: &PetImage{}, column: "pet_id", references: "pets"},
		{model: &Address{}, column: "user_id", references: "users"},
		{model: &RefreshToken{}, column: "user_id", references: "users"},
	}

	for _, tt := range tests {
		t.Run(tt.column+"->"+tt.references, func(t *testing.T) {
			c, ok := tableConstraints(t, tt.model)[tt.column]
			require.True(t, ok, "no foreign key on %s", tt.column)
			assert.Equal(t, "CASCADE", c.OnDelete)
			assert.Equal(t, tt.references, c.ReferenceSchema.Table)
		})
	}
}
