package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tablereservation/internal/domain"
)

type reservationService struct {
	reservationRepo domain.ReservationRepository
	storeRepo       domain.StoreRepository
	memberRepo      domain.MemberRepository
	codes           domain.CodeGenerator
	now             func() time.Time
}

// NewReservationService creates the reservation workflow with the given
// repositories and code generator. nowFunc may be nil, in which case the
// system clock is used.
func NewReservationService(
	reservationRepo domain.ReservationRepository,
	storeRepo domain.StoreRepository,
	memberRepo domain.MemberRepository,
	codes domain.CodeGenerator,
	nowFunc func() time.Time,
) domain.ReservationService {
	if nowFunc == nil {
		nowFunc = time.Now
	}
	return &reservationService{
		reservationRepo: reservationRepo,
		storeRepo:       storeRepo,
		memberRepo:      memberRepo,
		codes:           codes,
		now:             nowFunc,
	}
}

func (s *reservationService) Reserve(ctx context.Context, req domain.ReservationRequest) (*domain.Reservation, error) {
	store, err := s.storeRepo.GetByID(ctx, req.StoreID)
	if err != nil {
		if errors.Is(err, domain.ErrStoreNotFound) {
			return nil, domain.ErrStoreNotFound
		}
		return nil, fmt.Errorf("get store: %w", err)
	}
	if _, err := s.memberRepo.GetByID(ctx, req.CustomerID); err != nil {
		if errors.Is(err, domain.ErrMemberNotFound) {
			return nil, domain.ErrMemberNotFound
		}
		return nil, fmt.Errorf("get customer: %w", err)
	}

	if store.Status != domain.StoreOpen {
		return nil, domain.ErrStoreClosed
	}

	requested, err := domain.ParseClockTime(req.Time)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	if recess, ok, err := store.Recess(); err != nil {
		return nil, fmt.Errorf("parse recess window: %w", err)
	} else if ok && recess.Contains(requested) {
		return nil, domain.ErrDuringRecess
	}

	// The slot key is (date, time) across all stores, matching the source
	// system's contract. The unique index behind Create closes the window
	// between this check and the insert.
	taken, err := s.reservationRepo.ExistsSlot(ctx, req.Date, req.Time)
	if err != nil {
		return nil, fmt.Errorf("check slot: %w", err)
	}
	if taken {
		return nil, domain.ErrSlotTaken
	}

	now := s.now()
	reservation := domain.NewReservation(store.ID, req.CustomerID, req.Date, req.Time, req.PartySize, req.Memo, s.codes.Generate(), now)
	if err := s.reservationRepo.Create(ctx, reservation); err != nil {
		if errors.Is(err, domain.ErrSlotTaken) {
			return nil, domain.ErrSlotTaken
		}
		return nil, fmt.Errorf("create reservation: %w", err)
	}
	return reservation, nil
}

func (s *reservationService) Cancel(ctx context.Context, reservationID, actorID string) error {
	reservation, err := s.getReservation(ctx, reservationID)
	if err != nil {
		return err
	}
	if reservation.CustomerID != actorID {
		return domain.ErrAccessDenied
	}

	from := reservation.VisitStatus
	if err := reservation.Cancel(); err != nil {
		return err
	}
	return s.persistVisitStatus(ctx, reservation, from)
}

func (s *reservationService) ConfirmVisit(ctx context.Context, reservationID, code string) error {
	reservation, err := s.getReservation(ctx, reservationID)
	if err != nil {
		return err
	}

	from := reservation.VisitStatus
	if err := reservation.ConfirmVisit(code, s.now()); err != nil {
		return err
	}
	return s.persistVisitStatus(ctx, reservation, from)
}

func (s *reservationService) ApproveOrReject(ctx context.Context, reservationID, actorID string, decision domain.ApprovalStatus) error {
	reservation, err := s.getReservation(ctx, reservationID)
	if err != nil {
		return err
	}
	if err := s.authorizeOwner(ctx, reservation, actorID); err != nil {
		return err
	}

	from := reservation.ApprovalStatus
	if err := reservation.SetApproval(decision); err != nil {
		return err
	}
	updated, err := s.reservationRepo.UpdateApprovalStatus(ctx, reservation.ID, from, reservation.ApprovalStatus)
	if err != nil {
		return fmt.Errorf("update approval status: %w", err)
	}
	if !updated {
		// Lost a race against a concurrent decision.
		return domain.ErrAlreadyProcessed
	}
	return nil
}

func (s *reservationService) MarkNoShow(ctx context.Context, reservationID, actorID string) error {
	reservation, err := s.getReservation(ctx, reservationID)
	if err != nil {
		return err
	}
	if err := s.authorizeOwner(ctx, reservation, actorID); err != nil {
		return err
	}

	from := reservation.VisitStatus
	if err := reservation.MarkNoShow(); err != nil {
		return err
	}
	return s.persistVisitStatus(ctx, reservation, from)
}

func (s *reservationService) ListByStore(ctx context.Context, storeID string) ([]*domain.Reservation, error) {
	if _, err := s.storeRepo.GetByID(ctx, storeID); err != nil {
		if errors.Is(err, domain.ErrStoreNotFound) {
			return nil, domain.ErrStoreNotFound
		}
		return nil, fmt.Errorf("get store: %w", err)
	}
	reservations, err := s.reservationRepo.ListByStore(ctx, storeID)
	if err != nil {
		return nil, fmt.Errorf("list reservations: %w", err)
	}
	if len(reservations) == 0 {
		return nil, domain.ErrNoReservationsForStore
	}
	return reservations, nil
}

func (s *reservationService) getReservation(ctx context.Context, id string) (*domain.Reservation, error) {
	reservation, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrReservationNotFound) {
			return nil, domain.ErrReservationNotFound
		}
		return nil, fmt.Errorf("get reservation: %w", err)
	}
	return reservation, nil
}

// authorizeOwner checks that the actor owns the store the reservation belongs to.
func (s *reservationService) authorizeOwner(ctx context.Context, reservation *domain.Reservation, actorID string) error {
	store, err := s.storeRepo.GetByID(ctx, reservation.StoreID)
	if err != nil {
		if errors.Is(err, domain.ErrStoreNotFound) {
			return domain.ErrStoreNotFound
		}
		return fmt.Errorf("get store: %w", err)
	}
	if store.OwnerID != actorID {
		return domain.ErrAccessDenied
	}
	return nil
}

// persistVisitStatus writes a visit-track transition with a compare-and-swap
// on the previous status. When the swap fails the row was changed by a
// concurrent call; the current state is re-read to produce the same typed
// error a sequential caller would have seen.
func (s *reservationService) persistVisitStatus(ctx context.Context, reservation *domain.Reservation, from domain.VisitStatus) error {
	updated, err := s.reservationRepo.UpdateVisitStatus(ctx, reservation.ID, from, reservation.VisitStatus)
	if err != nil {
		return fmt.Errorf("update visit status: %w", err)
	}
	if !updated {
		return s.staleVisitError(ctx, reservation.ID)
	}
	return nil
}

func (s *reservationService) staleVisitError(ctx context.Context, reservationID string) error {
	current, err := s.getReservation(ctx, reservationID)
	if err != nil {
		return err
	}
	switch current.VisitStatus {
	case domain.VisitVisited:
		return domain.ErrAlreadyVisited
	case domain.VisitCancelled, domain.VisitCancelledNoShow:
		return domain.ErrAlreadyCancelled
	}
	return domain.ErrAlreadyCancelled
}
