package domain

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// StoreStatus is the operating state of a store.
type StoreStatus string

const (
	StoreOpen          StoreStatus = "OPEN"
	StoreOutOfBusiness StoreStatus = "OUT_OF_BUSINESS"
)

// Store represents a bookable store owned by a partner member.
// swagger:model Store
type Store struct {
	ID            string      `json:"id"`
	OwnerID       string      `json:"owner_id"`
	Name          string      `json:"name"`
	Address       string      `json:"address"`
	Description   string      `json:"description"`
	Status        StoreStatus `json:"status"`
	Lat           float64     `json:"lat"`
	Lon           float64     `json:"lon"`
	BusinessHours string      `json:"business_hours"`
	RecessWindow  string      `json:"recess_window"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
}

// NewStore returns a new open Store. ID is set by the repository on create.
func NewStore(ownerID, name, address, description string, lat, lon float64, businessHours, recessWindow string, createdAt time.Time) *Store {
	return &Store{
		OwnerID:       ownerID,
		Name:          name,
		Address:       address,
		Description:   description,
		Status:        StoreOpen,
		Lat:           lat,
		Lon:           lon,
		BusinessHours: businessHours,
		RecessWindow:  recessWindow,
		CreatedAt:     createdAt,
		UpdatedAt:     createdAt,
	}
}

// ClockTime is a wall-clock time of day in HH:MM.
type ClockTime struct {
	Hour   int
	Minute int
}

// ParseClockTime parses "HH:MM" (24-hour).
func ParseClockTime(s string) (ClockTime, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return ClockTime{}, fmt.Errorf("parse clock time %q: want HH:MM", s)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return ClockTime{}, fmt.Errorf("parse clock time %q: bad hour", s)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return ClockTime{}, fmt.Errorf("parse clock time %q: bad minute", s)
	}
	return ClockTime{Hour: hour, Minute: minute}, nil
}

func (t ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// TimeWindow is a daily wall-clock range such as a store's recess window.
type TimeWindow struct {
	Start ClockTime
	End   ClockTime
}

// ParseTimeWindow parses the source format "HH:MM - HH:MM".
func ParseTimeWindow(s string) (TimeWindow, error) {
	parts := strings.Split(s, " - ")
	if len(parts) != 2 {
		return TimeWindow{}, fmt.Errorf("parse time window %q: want \"HH:MM - HH:MM\"", s)
	}
	start, err := ParseClockTime(parts[0])
	if err != nil {
		return TimeWindow{}, err
	}
	end, err := ParseClockTime(parts[1])
	if err != nil {
		return TimeWindow{}, err
	}
	return TimeWindow{Start: start, End: end}, nil
}

// Contains reports whether t falls inside the window. Both boundaries are
// inclusive: a time exactly at the start or at the end still counts as inside.
func (w TimeWindow) Contains(t ClockTime) bool {
	if t.Hour > w.Start.Hour && t.Hour < w.End.Hour {
		return true
	}
	if t.Hour == w.Start.Hour && t.Minute >= w.Start.Minute {
		return true
	}
	return t.Hour == w.End.Hour && t.Minute <= w.End.Minute
}

// Recess returns the parsed recess window. ok is false when the store has
// no recess window configured.
func (s *Store) Recess() (w TimeWindow, ok bool, err error) {
	if strings.TrimSpace(s.RecessWindow) == "" {
		return TimeWindow{}, false, nil
	}
	w, err = ParseTimeWindow(s.RecessWindow)
	if err != nil {
		return TimeWindow{}, false, err
	}
	return w, true, nil
}

// StoreRepository defines the interface for store storage.
type StoreRepository interface {
	Create(ctx context.Context, store *Store) error
	GetByID(ctx context.Context, id string) (*Store, error)
	List(ctx context.Context) ([]*Store, error)
	SearchByName(ctx context.Context, name string) ([]*Store, error)
	CountOpenByOwner(ctx context.Context, ownerID string) (int, error)
	ExistsByOwnerAndLocation(ctx context.Context, ownerID, address string, lat, lon float64) (bool, error)
}

// StoreService defines store registration and browsing.
type StoreService interface {
	Register(ctx context.Context, ownerID, name, address, description string, lat, lon float64, businessHours, recessWindow string) (*Store, error)
	GetByID(ctx context.Context, id string) (*Store, error)
	List(ctx context.Context) ([]*Store, error)
	SearchByName(ctx context.Context, name string) ([]*Store, error)
}
