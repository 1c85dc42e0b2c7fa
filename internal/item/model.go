package item

import (
	"net/http"
	"time"

	"github.com/peerrent/rental-backend/internal/pkg/apperror"
)

var (
	ErrNotFound             = apperror.New(http.StatusNotFound, "item not found")
	ErrUserNotFound         = apperror.New(http.StatusNotFound, "user not found")
	ErrPermissionDenied     = apperror.New(http.StatusForbidden, "permission denied")
	ErrNameRequired         = apperror.New(http.StatusBadRequest, "name is required")
	ErrDescriptionRequired  = apperror.New(http.StatusBadRequest, "description is required")
	ErrAvailabilityRequired = apperror.New(http.StatusBadRequest, "available flag is required")
	ErrCommentTextRequired  = apperror.New(http.StatusBadRequest, "comment text is required")
	ErrCommentNotAllowed    = apperror.New(http.StatusBadRequest, "commenting requires a finished booking of the item")
)

// Item is a listing offered for rental by its owner.
type Item struct {
	ID          string
	OwnerID     string
	OwnerName   string
	Name        string
	Description string
	Available   bool
	RequestID   *string // item-request this listing answers, if any
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Comment is feedback left on an item by a past renter.
type Comment struct {
	ID         string
	ItemID     string
	AuthorID   string
	AuthorName string
	Text       string
	CreatedAt  time.Time
}

// BookingRef is the minimal view of a booking used to enrich item responses.
type BookingRef struct {
	ID       string
	BookerID string
	Start    time.Time
	End      time.Time
}

// Detail is an item together with its comments and, for the owner only, the
// adjacent approved bookings.
type Detail struct {
	Item
	LastBooking *BookingRef
	NextBooking *BookingRef
	Comments    []Comment
}
