package booking

import (
	"context"
	"time"

	"github.com/peerrent/rental-backend/internal/item"
)

// ItemBookingLookup adapts the booking repository to the item module's
// BookingLookup, exposing only the reduced BookingRef view.
type ItemBookingLookup struct {
	repo Repository
}

func NewItemBookingLookup(repo Repository) *ItemBookingLookup {
	return &ItemBookingLookup{repo: repo}
}

func (l *ItemBookingLookup) LastForItem(ctx context.Context, itemID string, now time.Time) (*item.BookingRef, error) {
	b, err := l.repo.LastForItem(ctx, itemID, now)
	if err != nil || b == nil {
		return nil, err
	}
	return toRef(b), nil
}

func (l *ItemBookingLookup) NextForItem(ctx context.Context, itemID string, now time.Time) (*item.BookingRef, error) {
	b, err := l.repo.NextForItem(ctx, itemID, now)
	if err != nil || b == nil {
		return nil, err
	}
	return toRef(b), nil
}

func (l *ItemBookingLookup) HasApprovedPastBooking(ctx context.Context, itemID, userID string, now time.Time) (bool, error) {
	return l.repo.HasApprovedPastBooking(ctx, itemID, userID, now)
}

func toRef(b *Booking) *item.BookingRef {
	return &item.BookingRef{
		ID:       b.ID,
		BookerID: b.BookerID,
		Start:    b.Start,
		End:      b.End,
	}
}
