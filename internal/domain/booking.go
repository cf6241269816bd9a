package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "PENDING"
	BookingStatusApproved  BookingStatus = "APPROVED"
	BookingStatusRejected  BookingStatus = "REJECTED"
	BookingStatusConfirmed BookingStatus = "CONFIRMED"
	BookingStatusCancelled BookingStatus = "CANCELLED"
)

// ActiveStatuses are the statuses that occupy a time slot. REJECTED and
// CANCELLED bookings release their slot and do not count for conflicts.
var ActiveStatuses = []BookingStatus{
	BookingStatusPending,
	BookingStatusApproved,
	BookingStatusConfirmed,
}

func (s BookingStatus) Active() bool {
	for _, a := range ActiveStatuses {
		if s == a {
			return true
		}
	}
	return false
}

// Terminal reports whether no further lifecycle transition is allowed.
func (s BookingStatus) Terminal() bool {
	return s == BookingStatusRejected || s == BookingStatusCancelled || s == BookingStatusConfirmed
}

// Actor identifies who drives a lifecycle transition. It selects the
// notification tag on approval and is recorded on cancellations.
type Actor string

const (
	ActorSystem Actor = "system"
	ActorAdmin  Actor = "admin"
)

type Booking struct {
	ID          int64
	Reference   string
	FacilityID  int64
	AccountID   int64
	BookedOn    time.Time
	TimeSlot    string
	Credits     decimal.Decimal
	Status      BookingStatus
	Title       string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
