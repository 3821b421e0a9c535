package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"tablereservation/internal/domain"
)

func storeRows() *sqlmock.Rows {
	created := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)
	return sqlmock.NewRows([]string{
		"id", "owner_id", "name", "address", "description", "status",
		"lat", "lon", "business_hours", "recess_window", "created_at", "updated_at",
	}).AddRow("store-1", "owner-1", "Table One", "1 Main St", "bistro",
		string(domain.StoreOpen), 37.5, 127.0, "09:00 - 18:00", "15:00 - 16:00", created, created)
}

func TestStoreRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`INSERT INTO stores`).
		WithArgs("owner-1", "Table One", "1 Main St", "bistro", domain.StoreOpen,
			37.5, 127.0, "09:00 - 18:00", "15:00 - 16:00", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("store-uuid-1"))

	now := time.Now()
	store := domain.NewStore("owner-1", "Table One", "1 Main St", "bistro", 37.5, 127.0, "09:00 - 18:00", "15:00 - 16:00", now)
	require.NoError(t, NewStoreRepository(db).Create(context.Background(), store))
	require.Equal(t, "store-uuid-1", store.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStoreRepository_GetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT id, owner_id, name`).
			WithArgs("store-1").
			WillReturnRows(storeRows())

		store, err := NewStoreRepository(db).GetByID(ctx, "store-1")
		require.NoError(t, err)
		require.Equal(t, "Table One", store.Name)
		require.Equal(t, domain.StoreOpen, store.Status)
		require.Equal(t, "15:00 - 16:00", store.RecessWindow)
	})

	t.Run("not found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT id, owner_id, name`).
			WithArgs("store-missing").
			WillReturnError(sql.ErrNoRows)

		_, err = NewStoreRepository(db).GetByID(ctx, "store-missing")
		require.ErrorIs(t, err, domain.ErrStoreNotFound)
	})
}

func TestStoreRepository_SearchByName(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT id, owner_id, name .* ILIKE`).
		WithArgs("Table").
		WillReturnRows(storeRows())

	stores, err := NewStoreRepository(db).SearchByName(context.Background(), "Table")
	require.NoError(t, err)
	require.Len(t, stores, 1)
}

func TestStoreRepository_CountOpenByOwner(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT COUNT`).
		WithArgs("owner-1", domain.StoreOpen).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	n, err := NewStoreRepository(db).CountOpenByOwner(context.Background(), "owner-1")
	require.NoError(t, err)
	require.Equal(t, 2, n)
}

func TestStoreRepository_ExistsByOwnerAndLocation(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs("owner-1", "1 Main St", 37.5, 127.0).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	exists, err := NewStoreRepository(db).ExistsByOwnerAndLocation(context.Background(), "owner-1", "1 Main St", 37.5, 127.0)
	require.NoError(t, err)
	require.False(t, exists)
}
