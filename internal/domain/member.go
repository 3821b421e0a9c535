package domain

import (
	"context"
	"time"
)

// MemberRole distinguishes store owners (partners) from customers.
type MemberRole string

const (
	RoleOwner    MemberRole = "OWNER"
	RoleCustomer MemberRole = "CUSTOMER"
)

// MemberStatus is the account state of a member.
type MemberStatus string

const (
	MemberActive    MemberStatus = "ACTIVE"
	MemberBlocked   MemberStatus = "BLOCKED"
	MemberWithdrawn MemberStatus = "WITHDRAWN"
)

// Member represents a registered member, either a store owner or a customer.
// swagger:model Member
type Member struct {
	ID           string       `json:"id"`
	Email        string       `json:"email"`
	Phone        string       `json:"phone"`
	Nickname     string       `json:"nickname"`
	PasswordHash string       `json:"-"`
	Salt         string       `json:"-"`
	Role         MemberRole   `json:"role"`
	Status       MemberStatus `json:"status"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// NewMember returns a new active Member. ID is set by the repository on create.
func NewMember(email, phone, nickname, passwordHash, salt string, role MemberRole, createdAt time.Time) *Member {
	return &Member{
		Email:        email,
		Phone:        phone,
		Nickname:     nickname,
		PasswordHash: passwordHash,
		Salt:         salt,
		Role:         role,
		Status:       MemberActive,
		CreatedAt:    createdAt,
		UpdatedAt:    createdAt,
	}
}

// PasswordHasher handles salt generation, hashing, and verification.
type PasswordHasher interface {
	GenerateSalt() (string, error)
	Hash(salt, password string) (hash string, err error)
	Compare(hash, salt, password string) error
}

// TokenIssuer issues tokens (e.g. JWT) for an authenticated member.
type TokenIssuer interface {
	Issue(memberID, email string, role MemberRole, expiry time.Duration) (string, error)
}

// TokenVerifier verifies a token and returns the authenticated member ID.
type TokenVerifier interface {
	Verify(token string) (memberID string, err error)
}

// MemberRepository defines the interface for member storage.
type MemberRepository interface {
	Create(ctx context.Context, member *Member) error
	GetByID(ctx context.Context, id string) (*Member, error)
	GetByEmail(ctx context.Context, email string) (*Member, error)
	ExistsByPhone(ctx context.Context, phone string) (bool, error)
	ExistsByNickname(ctx context.Context, nickname string) (bool, error)
}

// MemberService defines registration and login.
type MemberService interface {
	Register(ctx context.Context, email, phone, nickname, password string, role MemberRole) (*Member, error)
	Login(ctx context.Context, email, password string) (token string, member *Member, err error)
}
