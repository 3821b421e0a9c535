package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors shared across the reservation engine. Every failure the
// services can produce is one of these kinds; callers map them to stable
// HTTP statuses at the delivery boundary.
var (
	// Referenced entity absent.
	ErrStoreNotFound       = errors.New("store not found")
	ErrMemberNotFound      = errors.New("member not found")
	ErrReservationNotFound = errors.New("reservation not found")

	// Booking preconditions failed.
	ErrStoreClosed  = errors.New("store is not open for business")
	ErrDuringRecess = errors.New("requested time falls inside the store recess window")
	ErrSlotTaken    = errors.New("another reservation already occupies this slot")

	// Wrong actor.
	ErrAccessDenied = errors.New("access denied")

	// Illegal re-transition.
	ErrAlreadyProcessed = errors.New("reservation already approved or rejected")
	ErrAlreadyCancelled = errors.New("reservation already cancelled")
	ErrAlreadyVisited   = errors.New("reservation visit already confirmed")

	// Visit-confirmation preconditions failed.
	ErrUnapproved   = errors.New("reservation has not been approved")
	ErrDeclined     = errors.New("reservation was rejected")
	ErrTooEarly     = errors.New("too early to confirm visit")
	ErrCodeMismatch = errors.New("reservation code does not match")

	// Empty listing is a failure, preserved from the source system.
	ErrNoReservationsForStore = errors.New("no reservations for this store")

	// Member registration / login.
	ErrDuplicateEmail    = errors.New("email already in use")
	ErrDuplicatePhone    = errors.New("phone number already in use")
	ErrDuplicateNickname = errors.New("nickname already in use")
	ErrInvalidPassword   = errors.New("password does not match")

	// Store registration.
	ErrNotPartner        = errors.New("owner role required to register a store")
	ErrMaxStoresExceeded = errors.New("open store limit reached")
	ErrDuplicateStore    = errors.New("a store with the same address and location already exists")

	ErrInvalidInput = errors.New("invalid input")
)

// StorageError wraps a persistence-layer failure (connectivity, driver errors).
// The engine never interprets these beyond surfacing them as a distinct kind.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// NewStorageError wraps err as a StorageError for the given operation.
func NewStorageError(op string, err error) error {
	return &StorageError{Op: op, Err: err}
}
