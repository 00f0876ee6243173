package services

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/patinhas/adoption-api/internal/dto"
	"github.com/patinhas/adoption-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListFiltersByCanonicalSpecies(t *testing.T) {
	for _, species := range []string{"dog", "DOG", " Cachorro "} {
		t.Run(species, func(t *testing.T) {
			db, mock := newMockDB(t)
			c, _ := newTestCache(t)
			svc := NewPetService(db, c, nil, time.Minute)
			petID := uuid.New()

			mock.ExpectQuery(`SELECT count\(\*\) FROM "pets" WHERE species = \$1`).
				WithArgs("dog").
				WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
			mock.ExpectQuery(`SELECT \* FROM "pets" WHERE species = \$1 ORDER BY created_at DESC LIMIT \$2`).
				WithArgs("dog", 10).
				WillReturnRows(sqlmock.NewRows([]string{"id", "pet_name", "species"}).AddRow(petID, "Rex", "dog"))
			mock.ExpectQuery(`SELECT \* FROM "donations" WHERE "donations"."pet_id" = \$1`).
				WillReturnRows(sqlmock.NewRows([]string{"id", "pet_id"}))
			mock.ExpectQuery(`SELECT \* FROM "pet_images" WHERE "pet_images"."pet_id" = \$1 ORDER BY created_at ASC`).
				WillReturnRows(sqlmock.NewRows([]string{"id", "pet_id"}))

			pets, total, err := svc.List(context.Background(), dto.PetFilter{Species: species}, dto.PageQuery{Page: 1, Limit: 10})
			require.NoError(t, err)
			assert.EqualValues(t, 1, total)
			require.Len(t, pets, 1)
			assert.Equal(t, models.SpeciesDog, pets[0].Species)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestListWithoutFiltersHasNoWhere(t *testing.T) {
	db, mock := newMockDB(t)
	c, _ := newTestCache(t)
	svc := NewPetService(db, c, nil, time.Minute)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "pets"$`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(`SELECT \* FROM "pets" ORDER BY created_at DESC LIMIT \$1 OFFSET \$2`).
		WithArgs(5, 5).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	pets, total, err := svc.List(context.Background(), dto.PetFilter{}, dto.PageQuery{Page: 2, Limit: 5})
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, pets)
	assert.NoError(t, mock.ExpectationsWereMet())
}
