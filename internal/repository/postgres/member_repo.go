package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"tablereservation/internal/domain"
)

type memberRepository struct {
	DB *sql.DB
}

func NewMemberRepository(db *sql.DB) domain.MemberRepository {
	return &memberRepository{DB: db}
}

const memberColumns = "id, email, phone, nickname, password_hash, salt, role, status, created_at, updated_at"

func scanMember(row interface{ Scan(...any) error }) (*domain.Member, error) {
	m := &domain.Member{}
	err := row.Scan(
		&m.ID, &m.Email, &m.Phone, &m.Nickname, &m.PasswordHash, &m.Salt,
		&m.Role, &m.Status, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (r *memberRepository) Create(ctx context.Context, m *domain.Member) error {
	query := `
		INSERT INTO members (email, phone, nickname, password_hash, salt, role, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query,
		m.Email, m.Phone, m.Nickname, m.PasswordHash, m.Salt, m.Role, m.Status, m.CreatedAt, m.UpdatedAt,
	).Scan(&m.ID)
	if err != nil {
		var perr *pq.Error
		if errors.As(err, &perr) && perr.Code == "23505" {
			return domain.ErrDuplicateEmail
		}
		return domain.NewStorageError("create member", err)
	}
	return nil
}

func (r *memberRepository) GetByID(ctx context.Context, id string) (*domain.Member, error) {
	query := `SELECT ` + memberColumns + ` FROM members WHERE id = $1`
	m, err := scanMember(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrMemberNotFound
		}
		return nil, domain.NewStorageError("get member", err)
	}
	return m, nil
}

func (r *memberRepository) GetByEmail(ctx context.Context, email string) (*domain.Member, error) {
	query := `SELECT ` + memberColumns + ` FROM members WHERE email = $1`
	m, err := scanMember(r.DB.QueryRowContext(ctx, query, email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrMemberNotFound
		}
		return nil, domain.NewStorageError("get member by email", err)
	}
	return m, nil
}

func (r *memberRepository) ExistsByPhone(ctx context.Context, phone string) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS (SELECT 1 FROM members WHERE phone = $1)`, phone)
}

func (r *memberRepository) ExistsByNickname(ctx context.Context, nickname string) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS (SELECT 1 FROM members WHERE nickname = $1)`, nickname)
}

func (r *memberRepository) exists(ctx context.Context, query string, arg any) (bool, error) {
	var exists bool
	if err := r.DB.QueryRowContext(ctx, query, arg).Scan(&exists); err != nil {
		return false, domain.NewStorageError("check member exists", err)
	}
	return exists, nil
}
