package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"

	"tablereservation/internal/domain"
)

type reservationRepository struct {
	DB *sql.DB
}

// NewReservationRepository returns a ReservationRepository backed by postgres.
// The reservations table carries a unique index on (reservation_date,
// reservation_time); the index is what makes the slot check+insert atomic
// under concurrent bookings.
func NewReservationRepository(db *sql.DB) domain.ReservationRepository {
	return &reservationRepository{DB: db}
}

func (r *reservationRepository) Create(ctx context.Context, rsv *domain.Reservation) error {
	query := `
		INSERT INTO reservations (store_id, customer_id, reservation_date, reservation_time, party_size, memo, code, approval_status, visit_status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query,
		rsv.StoreID, rsv.CustomerID, rsv.Date, rsv.Time, rsv.PartySize, rsv.Memo,
		rsv.Code, rsv.ApprovalStatus, rsv.VisitStatus, rsv.CreatedAt, rsv.UpdatedAt,
	).Scan(&rsv.ID)
	if err != nil {
		var perr *pq.Error
		if errors.As(err, &perr) && perr.Code == "23505" {
			return domain.ErrSlotTaken
		}
		return domain.NewStorageError("create reservation", err)
	}
	return nil
}

func (r *reservationRepository) GetByID(ctx context.Context, id string) (*domain.Reservation, error) {
	query := `
		SELECT id, store_id, customer_id, reservation_date, reservation_time, party_size, memo, code, approval_status, visit_status, created_at, updated_at
		FROM reservations
		WHERE id = $1
	`
	rsv := &domain.Reservation{}
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&rsv.ID, &rsv.StoreID, &rsv.CustomerID, &rsv.Date, &rsv.Time, &rsv.PartySize,
		&rsv.Memo, &rsv.Code, &rsv.ApprovalStatus, &rsv.VisitStatus, &rsv.CreatedAt, &rsv.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrReservationNotFound
		}
		return nil, domain.NewStorageError("get reservation", err)
	}
	return rsv, nil
}

func (r *reservationRepository) ListByStore(ctx context.Context, storeID string) ([]*domain.Reservation, error) {
	query := `
		SELECT id, store_id, customer_id, reservation_date, reservation_time, party_size, memo, code, approval_status, visit_status, created_at, updated_at
		FROM reservations
		WHERE store_id = $1
		ORDER BY reservation_date, reservation_time
	`
	rows, err := r.DB.QueryContext(ctx, query, storeID)
	if err != nil {
		return nil, domain.NewStorageError("list reservations", err)
	}
	defer rows.Close()
	reservations := make([]*domain.Reservation, 0)
	for rows.Next() {
		rsv := &domain.Reservation{}
		if err := rows.Scan(
			&rsv.ID, &rsv.StoreID, &rsv.CustomerID, &rsv.Date, &rsv.Time, &rsv.PartySize,
			&rsv.Memo, &rsv.Code, &rsv.ApprovalStatus, &rsv.VisitStatus, &rsv.CreatedAt, &rsv.UpdatedAt,
		); err != nil {
			return nil, domain.NewStorageError("scan reservation", err)
		}
		reservations = append(reservations, rsv)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.NewStorageError("list reservations", err)
	}
	return reservations, nil
}

// ExistsSlot checks the slot key on (date, time) alone, across all stores,
// matching the source system's conflict contract.
func (r *reservationRepository) ExistsSlot(ctx context.Context, date time.Time, clock string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM reservations
			WHERE reservation_date = $1 AND reservation_time = $2
		)
	`
	var exists bool
	if err := r.DB.QueryRowContext(ctx, query, date, clock).Scan(&exists); err != nil {
		return false, domain.NewStorageError("check slot", err)
	}
	return exists, nil
}

func (r *reservationRepository) UpdateApprovalStatus(ctx context.Context, id string, from, to domain.ApprovalStatus) (bool, error) {
	query := `
		UPDATE reservations
		SET approval_status = $3, updated_at = NOW()
		WHERE id = $1 AND approval_status = $2
	`
	result, err := r.DB.ExecContext(ctx, query, id, from, to)
	if err != nil {
		return false, domain.NewStorageError("update approval status", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, domain.NewStorageError("update approval status", err)
	}
	return rows > 0, nil
}

func (r *reservationRepository) UpdateVisitStatus(ctx context.Context, id string, from, to domain.VisitStatus) (bool, error) {
	query := `
		UPDATE reservations
		SET visit_status = $3, updated_at = NOW()
		WHERE id = $1 AND visit_status = $2
	`
	result, err := r.DB.ExecContext(ctx, query, id, from, to)
	if err != nil {
		return false, domain.NewStorageError("update visit status", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, domain.NewStorageError("update visit status", err)
	}
	return rows > 0, nil
}
