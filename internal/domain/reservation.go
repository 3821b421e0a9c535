package domain

import (
	"context"
	"time"
)

// ArrivalThresholdMinutes is how long before the reserved time a kiosk visit
// confirmation becomes acceptable. There is no upper bound on lateness.
const ArrivalThresholdMinutes = 10

// ApprovalStatus is the owner-driven approval track of a reservation.
type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "PENDING"
	ApprovalApproved ApprovalStatus = "APPROVED"
	ApprovalRejected ApprovalStatus = "REJECTED"
)

// VisitStatus is the fulfillment track of a reservation. The VISITED and
// CANCELLED states are terminal.
type VisitStatus string

const (
	VisitNotVisited      VisitStatus = "NOT_VISITED"
	VisitVisited         VisitStatus = "VISITED_WITHIN_RESERVATION_TIME"
	VisitCancelled       VisitStatus = "CANCELLED_NOT_VISITED"
	VisitCancelledNoShow VisitStatus = "CANCELLED_NO_SHOW"
)

// Reservation is a booking of a (store, date, time) slot by a customer.
// Store and customer are referenced by ID only; this engine never mutates them.
// swagger:model Reservation
type Reservation struct {
	ID             string         `json:"id"`
	StoreID        string         `json:"store_id"`
	CustomerID     string         `json:"customer_id"`
	Date           time.Time      `json:"date"`
	Time           string         `json:"time"`
	PartySize      int            `json:"party_size"`
	Memo           string         `json:"memo"`
	Code           string         `json:"-"`
	ApprovalStatus ApprovalStatus `json:"approval_status"`
	VisitStatus    VisitStatus    `json:"visit_status"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

// NewReservation returns a reservation in the initial (PENDING, NOT_VISITED)
// state. The code is assigned once here and is immutable afterward.
func NewReservation(storeID, customerID string, date time.Time, clock string, partySize int, memo, code string, createdAt time.Time) *Reservation {
	return &Reservation{
		StoreID:        storeID,
		CustomerID:     customerID,
		Date:           date,
		Time:           clock,
		PartySize:      partySize,
		Memo:           memo,
		Code:           code,
		ApprovalStatus: ApprovalPending,
		VisitStatus:    VisitNotVisited,
		CreatedAt:      createdAt,
		UpdatedAt:      createdAt,
	}
}

// ReservedAt combines the reservation date and HH:MM time into a wall-clock
// instant in the given location.
func (r *Reservation) ReservedAt() (time.Time, error) {
	t, err := ParseClockTime(r.Time)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(r.Date.Year(), r.Date.Month(), r.Date.Day(), t.Hour, t.Minute, 0, 0, r.Date.Location()), nil
}

// SetApproval moves the approval track out of PENDING. Any further approval
// decision fails: APPROVED and REJECTED are terminal.
func (r *Reservation) SetApproval(target ApprovalStatus) error {
	if target != ApprovalApproved && target != ApprovalRejected {
		return ErrInvalidInput
	}
	if r.ApprovalStatus != ApprovalPending {
		return ErrAlreadyProcessed
	}
	r.ApprovalStatus = target
	return nil
}

// Cancel moves the visit track to CANCELLED_NOT_VISITED. A visited or already
// cancelled reservation cannot be cancelled again.
func (r *Reservation) Cancel() error {
	if err := r.checkVisitPending(); err != nil {
		return err
	}
	r.VisitStatus = VisitCancelled
	return nil
}

// MarkNoShow moves the visit track to CANCELLED_NO_SHOW, with the same
// terminal-state guards as Cancel.
func (r *Reservation) MarkNoShow() error {
	if err := r.checkVisitPending(); err != nil {
		return err
	}
	r.VisitStatus = VisitCancelledNoShow
	return nil
}

func (r *Reservation) checkVisitPending() error {
	switch r.VisitStatus {
	case VisitVisited:
		return ErrAlreadyVisited
	case VisitCancelled, VisitCancelledNoShow:
		return ErrAlreadyCancelled
	}
	return nil
}

// ConfirmVisit performs the kiosk visit confirmation. Gates are checked in
// order: approval track, terminal visit states, arrival window, code match.
func (r *Reservation) ConfirmVisit(code string, now time.Time) error {
	switch r.ApprovalStatus {
	case ApprovalPending:
		return ErrUnapproved
	case ApprovalRejected:
		return ErrDeclined
	}
	if err := r.checkVisitPending(); err != nil {
		return err
	}
	reservedAt, err := r.ReservedAt()
	if err != nil {
		return err
	}
	if !WithinArrivalWindow(reservedAt, now) {
		return ErrTooEarly
	}
	if r.Code != code {
		return ErrCodeMismatch
	}
	r.VisitStatus = VisitVisited
	return nil
}

// WithinArrivalWindow reports whether a visit confirmation at now is timely
// for a reservation at reservedAt: accepted from reservedAt minus the arrival
// threshold onward, with no upper bound on lateness.
func WithinArrivalWindow(reservedAt, now time.Time) bool {
	return !now.Before(reservedAt.Add(-ArrivalThresholdMinutes * time.Minute))
}

// CodeGenerator produces the short verification code bound to a reservation
// at creation time. Implementations must be injectable for deterministic tests.
type CodeGenerator interface {
	Generate() string
}

// ReservationRepository defines the interface for reservation storage.
//
// Create must be atomic with respect to the slot key: when a concurrent insert
// wins the same (date, time) slot, Create fails with ErrSlotTaken. The status
// update methods are compare-and-swap: they report updated=false when the row
// no longer carries the expected current status.
type ReservationRepository interface {
	Create(ctx context.Context, reservation *Reservation) error
	GetByID(ctx context.Context, id string) (*Reservation, error)
	ListByStore(ctx context.Context, storeID string) ([]*Reservation, error)
	ExistsSlot(ctx context.Context, date time.Time, clock string) (bool, error)
	UpdateApprovalStatus(ctx context.Context, id string, from, to ApprovalStatus) (updated bool, err error)
	UpdateVisitStatus(ctx context.Context, id string, from, to VisitStatus) (updated bool, err error)
}

// ReservationRequest carries the data for a new booking.
type ReservationRequest struct {
	StoreID    string
	CustomerID string
	Date       time.Time
	Time       string
	PartySize  int
	Memo       string
}

// ReservationService is the reservation workflow consumed by the delivery
// layer. actorID is always the authenticated member performing the call.
type ReservationService interface {
	Reserve(ctx context.Context, req ReservationRequest) (*Reservation, error)
	Cancel(ctx context.Context, reservationID, actorID string) error
	ConfirmVisit(ctx context.Context, reservationID, code string) error
	ApproveOrReject(ctx context.Context, reservationID, actorID string, decision ApprovalStatus) error
	MarkNoShow(ctx context.Context, reservationID, actorID string) error
	ListByStore(ctx context.Context, storeID string) ([]*Reservation, error)
}
