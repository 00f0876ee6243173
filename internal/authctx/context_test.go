package authctx

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestCanActFor(t *testing.T) {
	owner := uuid.New()
	other := uuid.New()

	assert.True(t, Identity{UserID: owner}.CanActFor(owner))
	assert.False(t, Identity{UserID: owner}.CanActFor(other))
	assert.True(t, Identity{UserID: owner, IsAdmin: true}.CanActFor(other))
}
