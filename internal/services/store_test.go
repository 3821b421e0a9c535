package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"tablereservation/internal/domain"
)

func TestStoreRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("owner registers store", func(t *testing.T) {
		svc := NewStoreService(&mockStoreRepository{stores: map[string]*domain.Store{}}, newTestMemberRepo())
		store, err := svc.Register(ctx, "owner-1", "Table One", "1 Main St", "bistro", 37.5, 127.0, "09:00 - 18:00", "15:00 - 16:00")
		require.NoError(t, err)
		require.Equal(t, domain.StoreOpen, store.Status)
		require.Equal(t, "owner-1", store.OwnerID)
	})

	t.Run("customer is not a partner", func(t *testing.T) {
		svc := NewStoreService(&mockStoreRepository{stores: map[string]*domain.Store{}}, newTestMemberRepo())
		_, err := svc.Register(ctx, "member-1", "Nope", "1 Main St", "", 0, 0, "", "")
		require.ErrorIs(t, err, domain.ErrNotPartner)
	})

	t.Run("unknown owner", func(t *testing.T) {
		svc := NewStoreService(&mockStoreRepository{stores: map[string]*domain.Store{}}, newTestMemberRepo())
		_, err := svc.Register(ctx, "ghost", "Nope", "1 Main St", "", 0, 0, "", "")
		require.ErrorIs(t, err, domain.ErrMemberNotFound)
	})

	t.Run("open store limit", func(t *testing.T) {
		storeRepo := &mockStoreRepository{stores: map[string]*domain.Store{
			"s1": {ID: "s1", OwnerID: "owner-1", Status: domain.StoreOpen, Address: "a1"},
			"s2": {ID: "s2", OwnerID: "owner-1", Status: domain.StoreOpen, Address: "a2"},
		}}
		svc := NewStoreService(storeRepo, newTestMemberRepo())
		_, err := svc.Register(ctx, "owner-1", "Third", "a3", "", 0, 0, "", "")
		require.ErrorIs(t, err, domain.ErrMaxStoresExceeded)
	})

	t.Run("closed stores do not count toward the limit", func(t *testing.T) {
		storeRepo := &mockStoreRepository{stores: map[string]*domain.Store{
			"s1": {ID: "s1", OwnerID: "owner-1", Status: domain.StoreOpen, Address: "a1"},
			"s2": {ID: "s2", OwnerID: "owner-1", Status: domain.StoreOutOfBusiness, Address: "a2"},
		}}
		svc := NewStoreService(storeRepo, newTestMemberRepo())
		_, err := svc.Register(ctx, "owner-1", "Third", "a3", "", 1, 1, "", "")
		require.NoError(t, err)
	})

	t.Run("duplicate location", func(t *testing.T) {
		storeRepo := &mockStoreRepository{stores: map[string]*domain.Store{
			"s1": {ID: "s1", OwnerID: "owner-1", Status: domain.StoreOpen, Address: "1 Main St", Lat: 37.5, Lon: 127.0},
		}}
		svc := NewStoreService(storeRepo, newTestMemberRepo())
		_, err := svc.Register(ctx, "owner-1", "Clone", "1 Main St", "", 37.5, 127.0, "", "")
		require.ErrorIs(t, err, domain.ErrDuplicateStore)
	})

	t.Run("malformed recess window", func(t *testing.T) {
		svc := NewStoreService(&mockStoreRepository{stores: map[string]*domain.Store{}}, newTestMemberRepo())
		_, err := svc.Register(ctx, "owner-1", "Bad", "1 Main St", "", 0, 0, "", "3pm to 4pm")
		require.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

func TestStoreGetByID(t *testing.T) {
	ctx := context.Background()
	svc := NewStoreService(newTestStoreRepo(), newTestMemberRepo())

	store, err := svc.GetByID(ctx, "store-1")
	require.NoError(t, err)
	require.Equal(t, "Table One", store.Name)

	_, err = svc.GetByID(ctx, "store-missing")
	require.ErrorIs(t, err, domain.ErrStoreNotFound)
}
