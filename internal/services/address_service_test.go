package services

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/patinhas/adoption-api/internal/authctx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddressGet(t *testing.T) {
	owner := uuid.New()
	id := uuid.New()
	columns := []string{"id", "user_id", "zip_code", "street_name", "address_number", "neighborhood", "city_name", "state_name"}
	row := func() *sqlmock.Rows {
		return sqlmock.NewRows(columns).AddRow(id, owner, "01310-100", "Avenida Paulista", "1000", "Bela Vista", "São Paulo", "SP")
	}

	tests := []struct {
		name    string
		actor   authctx.Identity
		rows    *sqlmock.Rows
		wantErr error
	}{
		{name: "owner", actor: authctx.Identity{UserID: owner}, rows: row()},
		{name: "admin", actor: authctx.Identity{UserID: uuid.New(), IsAdmin: true}, rows: row()},
		{name: "other user", actor: authctx.Identity{UserID: uuid.New()}, rows: row(), wantErr: ErrForbidden},
		{name: "missing", actor: authctx.Identity{UserID: owner}, rows: sqlmock.NewRows(columns), wantErr: ErrAddressNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newMockDB(t)
			svc := NewAddressService(db)

			mock.ExpectQuery(`SELECT \* FROM "addresses"`).WillReturnRows(tt.rows)

			addr, err := svc.Get(context.Background(), tt.actor, id)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, addr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, "SP", addr.StateName)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
