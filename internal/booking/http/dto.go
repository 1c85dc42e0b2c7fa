package http

import (
	"time"

	"github.com/peerrent/rental-backend/internal/booking"
	itemHttp "github.com/peerrent/rental-backend/internal/item/http"
	userHttp "github.com/peerrent/rental-backend/internal/user/http"
)

type BookingResponse struct {
	ID        string           `json:"id"`
	Item      itemHttp.ItemTag `json:"item"`
	Booker    userHttp.UserTag `json:"booker"`
	Start     time.Time        `json:"start"`
	End       time.Time        `json:"end"`
	Status    string           `json:"status"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

func NewBookingResponse(b *booking.Booking) BookingResponse {
	return BookingResponse{
		ID:        b.ID,
		Item:      itemHttp.ItemTag{ID: b.ItemID, Name: b.ItemName},
		Booker:    userHttp.UserTag{ID: b.BookerID, Name: b.BookerName},
		Start:     b.Start,
		End:       b.End,
		Status:    string(b.Status),
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

// CreateBookingRequest carries the booking payload. Start and end stay
// pointers so the engine, not the binding layer, decides that missing times
// are a validation failure.
type CreateBookingRequest struct {
	ItemID string     `json:"item_id" binding:"required,uuid"`
	Start  *time.Time `json:"start"`
	End    *time.Time `json:"end"`
}

type ListBookingsRequest struct {
	State string `form:"state,default=ALL"`
	From  int    `form:"from,default=0"`
	Size  int    `form:"size,default=20"`
}
