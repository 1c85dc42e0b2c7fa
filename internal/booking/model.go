package booking

import (
	"net/http"
	"time"

	"github.com/peerrent/rental-backend/internal/pkg/apperror"
)

var (
	ErrNotFound         = apperror.New(http.StatusNotFound, "booking not found")
	ErrValidation       = apperror.New(http.StatusBadRequest, "start and end times are required")
	ErrInvalidTimeRange = apperror.New(http.StatusBadRequest, "start time must be before end time")
	ErrStartTimePast    = apperror.New(http.StatusBadRequest, "cannot create booking in the past")
	ErrItemNotFound     = apperror.New(http.StatusNotFound, "item not found")
	ErrItemUnavailable  = apperror.New(http.StatusBadRequest, "item is not available for booking")
	ErrUserNotFound     = apperror.New(http.StatusNotFound, "user not found")
	ErrPermissionDenied = apperror.New(http.StatusForbidden, "permission denied")
	ErrInvalidState     = apperror.New(http.StatusBadRequest, "booking status has already been decided")
	ErrUnsupportedState = apperror.New(http.StatusBadRequest, "unsupported state keyword")
)

// invalidStateError wraps ErrInvalidState with the current status so callers
// can tell an already-approved booking from an already-rejected one.
func invalidStateError(current Status) error {
	return apperror.Wrap(ErrInvalidState, http.StatusBadRequest, "booking status is already "+string(current))
}

// unsupportedStateError wraps ErrUnsupportedState echoing the rejected keyword.
func unsupportedStateError(keyword string) error {
	return apperror.Wrap(ErrUnsupportedState, http.StatusBadRequest, "unsupported state: "+keyword)
}

// Status is the approval status of a booking. A booking is created WAITING
// and moves exactly once to APPROVED or REJECTED. CANCELED is terminal and
// reachable only outside the approval flow.
type Status string

const (
	StatusWaiting  Status = "WAITING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
	StatusCanceled Status = "CANCELED"
)

// State selects which temporal/status bucket of bookings a listing returns.
type State string

const (
	StateAll      State = "ALL"
	StateCurrent  State = "CURRENT"
	StatePast     State = "PAST"
	StateFuture   State = "FUTURE"
	StateWaiting  State = "WAITING"
	StateRejected State = "REJECTED"
)

// ParseState matches the keyword case-sensitively. Unknown keywords fail
// instead of falling back to ALL.
func ParseState(s string) (State, error) {
	switch State(s) {
	case StateAll, StateCurrent, StatePast, StateFuture, StateWaiting, StateRejected:
		return State(s), nil
	default:
		return "", unsupportedStateError(s)
	}
}

// Booking is a time-bounded reservation of an item by a booker.
type Booking struct {
	ID          string
	ItemID      string
	ItemName    string
	ItemOwnerID string
	BookerID    string
	BookerName  string
	Start       time.Time
	End         time.Time
	Status      Status
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Filter selects bookings for a listing. Exactly one of BookerID/OwnerID is
// set: BookerID selects the user's own bookings, OwnerID selects bookings on
// items the user owns. Now anchors the temporal buckets.
type Filter struct {
	BookerID string
	OwnerID  string
	State    State
	Now      time.Time
	Limit    int
	Offset   int
}
