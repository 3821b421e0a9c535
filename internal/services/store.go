package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"tablereservation/internal/domain"
)

// A partner may run at most this many OPEN stores at once.
const maxOpenStoresPerOwner = 2

type storeService struct {
	storeRepo  domain.StoreRepository
	memberRepo domain.MemberRepository
}

// NewStoreService creates a StoreService with the given repositories.
func NewStoreService(storeRepo domain.StoreRepository, memberRepo domain.MemberRepository) domain.StoreService {
	return &storeService{
		storeRepo:  storeRepo,
		memberRepo: memberRepo,
	}
}

func (s *storeService) Register(ctx context.Context, ownerID, name, address, description string, lat, lon float64, businessHours, recessWindow string) (*domain.Store, error) {
	owner, err := s.memberRepo.GetByID(ctx, ownerID)
	if err != nil {
		if errors.Is(err, domain.ErrMemberNotFound) {
			return nil, domain.ErrMemberNotFound
		}
		return nil, fmt.Errorf("get owner: %w", err)
	}
	if owner.Role != domain.RoleOwner {
		return nil, domain.ErrNotPartner
	}

	if recessWindow != "" {
		if _, err := domain.ParseTimeWindow(recessWindow); err != nil {
			return nil, domain.ErrInvalidInput
		}
	}

	open, err := s.storeRepo.CountOpenByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("count open stores: %w", err)
	}
	if open >= maxOpenStoresPerOwner {
		return nil, domain.ErrMaxStoresExceeded
	}

	exists, err := s.storeRepo.ExistsByOwnerAndLocation(ctx, ownerID, address, lat, lon)
	if err != nil {
		return nil, fmt.Errorf("check duplicate store: %w", err)
	}
	if exists {
		return nil, domain.ErrDuplicateStore
	}

	store := domain.NewStore(ownerID, strings.TrimSpace(name), address, description, lat, lon, businessHours, recessWindow, time.Now())
	if err := s.storeRepo.Create(ctx, store); err != nil {
		return nil, fmt.Errorf("create store: %w", err)
	}
	return store, nil
}

func (s *storeService) GetByID(ctx context.Context, id string) (*domain.Store, error) {
	store, err := s.storeRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrStoreNotFound) {
			return nil, domain.ErrStoreNotFound
		}
		return nil, fmt.Errorf("get store: %w", err)
	}
	return store, nil
}

func (s *storeService) List(ctx context.Context) ([]*domain.Store, error) {
	stores, err := s.storeRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list stores: %w", err)
	}
	if stores == nil {
		stores = []*domain.Store{}
	}
	return stores, nil
}

func (s *storeService) SearchByName(ctx context.Context, name string) ([]*domain.Store, error) {
	stores, err := s.storeRepo.SearchByName(ctx, strings.TrimSpace(name))
	if err != nil {
		return nil, fmt.Errorf("search stores: %w", err)
	}
	if stores == nil {
		stores = []*domain.Store{}
	}
	return stores, nil
}
