package postgres

import (
	"context"
	"database/sql"
	"errors"

	"tablereservation/internal/domain"
)

type storeRepository struct {
	DB *sql.DB
}

func NewStoreRepository(db *sql.DB) domain.StoreRepository {
	return &storeRepository{DB: db}
}

const storeColumns = "id, owner_id, name, address, description, status, lat, lon, business_hours, recess_window, created_at, updated_at"

func scanStore(row interface{ Scan(...any) error }) (*domain.Store, error) {
	s := &domain.Store{}
	err := row.Scan(
		&s.ID, &s.OwnerID, &s.Name, &s.Address, &s.Description, &s.Status,
		&s.Lat, &s.Lon, &s.BusinessHours, &s.RecessWindow, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (r *storeRepository) Create(ctx context.Context, s *domain.Store) error {
	query := `
		INSERT INTO stores (owner_id, name, address, description, status, lat, lon, business_hours, recess_window, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query,
		s.OwnerID, s.Name, s.Address, s.Description, s.Status,
		s.Lat, s.Lon, s.BusinessHours, s.RecessWindow, s.CreatedAt, s.UpdatedAt,
	).Scan(&s.ID)
	if err != nil {
		return domain.NewStorageError("create store", err)
	}
	return nil
}

func (r *storeRepository) GetByID(ctx context.Context, id string) (*domain.Store, error) {
	query := `SELECT ` + storeColumns + ` FROM stores WHERE id = $1`
	s, err := scanStore(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrStoreNotFound
		}
		return nil, domain.NewStorageError("get store", err)
	}
	return s, nil
}

func (r *storeRepository) List(ctx context.Context) ([]*domain.Store, error) {
	query := `SELECT ` + storeColumns + ` FROM stores ORDER BY created_at DESC`
	return r.queryStores(ctx, query)
}

func (r *storeRepository) SearchByName(ctx context.Context, name string) ([]*domain.Store, error) {
	query := `SELECT ` + storeColumns + ` FROM stores WHERE name ILIKE '%' || $1 || '%' ORDER BY name`
	return r.queryStores(ctx, query, name)
}

func (r *storeRepository) queryStores(ctx context.Context, query string, args ...any) ([]*domain.Store, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, domain.NewStorageError("list stores", err)
	}
	defer rows.Close()
	stores := make([]*domain.Store, 0)
	for rows.Next() {
		s, err := scanStore(rows)
		if err != nil {
			return nil, domain.NewStorageError("scan store", err)
		}
		stores = append(stores, s)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.NewStorageError("list stores", err)
	}
	return stores, nil
}

func (r *storeRepository) CountOpenByOwner(ctx context.Context, ownerID string) (int, error) {
	query := `SELECT COUNT(*) FROM stores WHERE owner_id = $1 AND status = $2`
	var n int
	if err := r.DB.QueryRowContext(ctx, query, ownerID, domain.StoreOpen).Scan(&n); err != nil {
		return 0, domain.NewStorageError("count open stores", err)
	}
	return n, nil
}

func (r *storeRepository) ExistsByOwnerAndLocation(ctx context.Context, ownerID, address string, lat, lon float64) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM stores
			WHERE owner_id = $1 AND address = $2 AND lat = $3 AND lon = $4
		)
	`
	var exists bool
	if err := r.DB.QueryRowContext(ctx, query, ownerID, address, lat, lon).Scan(&exists); err != nil {
		return false, domain.NewStorageError("check duplicate store", err)
	}
	return exists, nil
}
