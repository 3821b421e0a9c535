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

func memberRows() *sqlmock.Rows {
	created := time.Date(2026, 7, 1, 9, 0, 0, 0, time.UTC)
	return sqlmock.NewRows([]string{
		"id", "email", "phone", "nickname", "password_hash", "salt",
		"role", "status", "created_at", "updated_at",
	}).AddRow("member-1", "customer@example.com", "010-1111-2222", "customer", "hash", "salt",
		string(domain.RoleCustomer), string(domain.MemberActive), created, created)
}

func TestMemberRepository_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`INSERT INTO members`).
			WithArgs("customer@example.com", "010-1111-2222", "customer", "hash", "salt",
				domain.RoleCustomer, domain.MemberActive, sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("member-uuid-1"))

		member := domain.NewMember("customer@example.com", "010-1111-2222", "customer", "hash", "salt", domain.RoleCustomer, time.Now())
		require.NoError(t, NewMemberRepository(db).Create(ctx, member))
		require.Equal(t, "member-uuid-1", member.ID)
	})

	t.Run("duplicate email", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`INSERT INTO members`).
			WillReturnError(&pq.Error{Code: "23505"})

		member := domain.NewMember("customer@example.com", "010", "nick", "hash", "salt", domain.RoleCustomer, time.Now())
		require.ErrorIs(t, NewMemberRepository(db).Create(ctx, member), domain.ErrDuplicateEmail)
	})
}

func TestMemberRepository_GetByEmail(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT id, email, phone`).
			WithArgs("customer@example.com").
			WillReturnRows(memberRows())

		member, err := NewMemberRepository(db).GetByEmail(ctx, "customer@example.com")
		require.NoError(t, err)
		require.Equal(t, "member-1", member.ID)
		require.Equal(t, domain.RoleCustomer, member.Role)
	})

	t.Run("not found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT id, email, phone`).
			WithArgs("ghost@example.com").
			WillReturnError(sql.ErrNoRows)

		_, err = NewMemberRepository(db).GetByEmail(ctx, "ghost@example.com")
		require.ErrorIs(t, err, domain.ErrMemberNotFound)
	})
}

func TestMemberRepository_Exists(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs("010-1111-2222").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := NewMemberRepository(db).ExistsByPhone(context.Background(), "010-1111-2222")
	require.NoError(t, err)
	require.True(t, exists)
}
