package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"tablereservation/internal/domain"
)

const minPasswordLen = 8

var emailRegexp = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

type memberService struct {
	memberRepo  domain.MemberRepository
	hasher      domain.PasswordHasher
	tokenIssuer domain.TokenIssuer
	tokenExpiry time.Duration
}

// NewMemberService creates a MemberService with the given repository, hasher
// and token issuer.
func NewMemberService(memberRepo domain.MemberRepository, hasher domain.PasswordHasher, tokenIssuer domain.TokenIssuer, tokenExpiry time.Duration) domain.MemberService {
	return &memberService{
		memberRepo:  memberRepo,
		hasher:      hasher,
		tokenIssuer: tokenIssuer,
		tokenExpiry: tokenExpiry,
	}
}

func (s *memberService) Register(ctx context.Context, email, phone, nickname, password string, role domain.MemberRole) (*domain.Member, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if !emailRegexp.MatchString(email) {
		return nil, domain.ErrInvalidInput
	}
	if len(password) < minPasswordLen {
		return nil, domain.ErrInvalidInput
	}
	if role != domain.RoleOwner && role != domain.RoleCustomer {
		return nil, domain.ErrInvalidInput
	}

	if _, err := s.memberRepo.GetByEmail(ctx, email); err == nil {
		return nil, domain.ErrDuplicateEmail
	} else if !errors.Is(err, domain.ErrMemberNotFound) {
		return nil, fmt.Errorf("get member by email: %w", err)
	}
	if exists, err := s.memberRepo.ExistsByPhone(ctx, phone); err != nil {
		return nil, fmt.Errorf("check phone: %w", err)
	} else if exists {
		return nil, domain.ErrDuplicatePhone
	}
	if exists, err := s.memberRepo.ExistsByNickname(ctx, nickname); err != nil {
		return nil, fmt.Errorf("check nickname: %w", err)
	} else if exists {
		return nil, domain.ErrDuplicateNickname
	}

	salt, err := s.hasher.GenerateSalt()
	if err != nil {
		return nil, fmt.Errorf("generate salt: %w", err)
	}
	hash, err := s.hasher.Hash(salt, password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	member := domain.NewMember(email, phone, strings.TrimSpace(nickname), hash, salt, role, time.Now())
	if err := s.memberRepo.Create(ctx, member); err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			return nil, domain.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("create member: %w", err)
	}
	return member, nil
}

func (s *memberService) Login(ctx context.Context, email, password string) (string, *domain.Member, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	member, err := s.memberRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrMemberNotFound) {
			return "", nil, domain.ErrMemberNotFound
		}
		return "", nil, fmt.Errorf("get member by email: %w", err)
	}
	if err := s.hasher.Compare(member.PasswordHash, member.Salt, password); err != nil {
		return "", nil, domain.ErrInvalidPassword
	}
	token, err := s.tokenIssuer.Issue(member.ID, member.Email, member.Role, s.tokenExpiry)
	if err != nil {
		return "", nil, fmt.Errorf("issue token: %w", err)
	}
	return token, member, nil
}
