package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/require"

	"tablereservation/internal/domain"
)

var testDate = time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC)

func testReservation() *domain.Reservation {
	created := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	return &domain.Reservation{
		StoreID:        "store-1",
		CustomerID:     "member-1",
		Date:           testDate,
		Time:           "18:00",
		PartySize:      2,
		Memo:           "window seat",
		Code:           "0042",
		ApprovalStatus: domain.ApprovalPending,
		VisitStatus:    domain.VisitNotVisited,
		CreatedAt:      created,
		UpdatedAt:      created,
	}
}

func TestReservationRepository_Create(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		mock    func(mock sqlmock.Sqlmock)
		wantErr error
		wantID  string
	}{
		{
			name: "success",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO reservations`).
					WithArgs("store-1", "member-1", testDate, "18:00", 2, "window seat", "0042",
						domain.ApprovalPending, domain.VisitNotVisited, sqlmock.AnyArg(), sqlmock.AnyArg()).
					WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("rsv-uuid-1"))
			},
			wantID: "rsv-uuid-1",
		},
		{
			name: "unique violation on slot key",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO reservations`).
					WillReturnError(&pq.Error{Code: "23505"})
			},
			wantErr: domain.ErrSlotTaken,
		},
		{
			name: "driver failure is a storage error",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO reservations`).
					WillReturnError(sql.ErrConnDone)
			},
			wantErr: sql.ErrConnDone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewReservationRepository(db)
			rsv := testReservation()
			err = repo.Create(ctx, rsv)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.wantID, rsv.ID)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestReservationRepository_Create_WrapsStorageError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`INSERT INTO reservations`).WillReturnError(sql.ErrConnDone)
	err = NewReservationRepository(db).Create(context.Background(), testReservation())
	var storageErr *domain.StorageError
	require.ErrorAs(t, err, &storageErr)
}

func reservationRows() *sqlmock.Rows {
	created := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	return sqlmock.NewRows([]string{
		"id", "store_id", "customer_id", "reservation_date", "reservation_time",
		"party_size", "memo", "code", "approval_status", "visit_status", "created_at", "updated_at",
	}).AddRow("rsv-1", "store-1", "member-1", testDate, "18:00", 2, "", "0042",
		string(domain.ApprovalPending), string(domain.VisitNotVisited), created, created)
}

func TestReservationRepository_GetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT id, store_id, customer_id`).
			WithArgs("rsv-1").
			WillReturnRows(reservationRows())

		rsv, err := NewReservationRepository(db).GetByID(ctx, "rsv-1")
		require.NoError(t, err)
		require.Equal(t, "rsv-1", rsv.ID)
		require.Equal(t, domain.ApprovalPending, rsv.ApprovalStatus)
		require.Equal(t, domain.VisitNotVisited, rsv.VisitStatus)
		require.Equal(t, "0042", rsv.Code)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT id, store_id, customer_id`).
			WithArgs("rsv-missing").
			WillReturnError(sql.ErrNoRows)

		_, err = NewReservationRepository(db).GetByID(ctx, "rsv-missing")
		require.ErrorIs(t, err, domain.ErrReservationNotFound)
	})
}

func TestReservationRepository_ListByStore(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT id, store_id, customer_id`).
		WithArgs("store-1").
		WillReturnRows(reservationRows())

	got, err := NewReservationRepository(db).ListByStore(context.Background(), "store-1")
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "rsv-1", got[0].ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReservationRepository_ListByStore_Empty(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT id, store_id, customer_id`).
		WithArgs("store-1").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "store_id", "customer_id", "reservation_date", "reservation_time",
			"party_size", "memo", "code", "approval_status", "visit_status", "created_at", "updated_at",
		}))

	got, err := NewReservationRepository(db).ListByStore(context.Background(), "store-1")
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestReservationRepository_ExistsSlot(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs(testDate, "18:00").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	taken, err := NewReservationRepository(db).ExistsSlot(context.Background(), testDate, "18:00")
	require.NoError(t, err)
	require.True(t, taken)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReservationRepository_UpdateApprovalStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("swaps when current status matches", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec(`UPDATE reservations`).
			WithArgs("rsv-1", domain.ApprovalPending, domain.ApprovalApproved).
			WillReturnResult(sqlmock.NewResult(0, 1))

		updated, err := NewReservationRepository(db).UpdateApprovalStatus(ctx, "rsv-1", domain.ApprovalPending, domain.ApprovalApproved)
		require.NoError(t, err)
		require.True(t, updated)
	})

	t.Run("reports stale state on zero rows", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec(`UPDATE reservations`).
			WithArgs("rsv-1", domain.ApprovalPending, domain.ApprovalRejected).
			WillReturnResult(sqlmock.NewResult(0, 0))

		updated, err := NewReservationRepository(db).UpdateApprovalStatus(ctx, "rsv-1", domain.ApprovalPending, domain.ApprovalRejected)
		require.NoError(t, err)
		require.False(t, updated)
	})
}

func TestReservationRepository_UpdateVisitStatus(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`UPDATE reservations`).
		WithArgs("rsv-1", domain.VisitNotVisited, domain.VisitCancelled).
		WillReturnResult(sqlmock.NewResult(0, 1))

	updated, err := NewReservationRepository(db).UpdateVisitStatus(context.Background(), "rsv-1", domain.VisitNotVisited, domain.VisitCancelled)
	require.NoError(t, err)
	require.True(t, updated)
	require.NoError(t, mock.ExpectationsWereMet())
}
