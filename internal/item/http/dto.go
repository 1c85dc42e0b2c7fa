package http

import (
	"time"

	"github.com/peerrent/rental-backend/internal/item"
	userHttp "github.com/peerrent/rental-backend/internal/user/http"
)

type ItemResponse struct {
	ID          string            `json:"id"`
	Owner       userHttp.UserTag  `json:"owner"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Available   bool              `json:"available"`
	RequestID   *string           `json:"request_id,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

func NewItemResponse(i *item.Item) ItemResponse {
	return ItemResponse{
		ID:          i.ID,
		Owner:       userHttp.UserTag{ID: i.OwnerID, Name: i.OwnerName},
		Name:        i.Name,
		Description: i.Description,
		Available:   i.Available,
		RequestID:   i.RequestID,
		CreatedAt:   i.CreatedAt,
		UpdatedAt:   i.UpdatedAt,
	}
}

// ItemTag is the minimal item representation embedded in other responses.
type ItemTag struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// BookingRefResponse is the short booking view attached to owner item views.
type BookingRefResponse struct {
	ID       string    `json:"id"`
	BookerID string    `json:"booker_id"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
}

func newBookingRefResponse(ref *item.BookingRef) *BookingRefResponse {
	if ref == nil {
		return nil
	}
	return &BookingRefResponse{
		ID:       ref.ID,
		BookerID: ref.BookerID,
		Start:    ref.Start,
		End:      ref.End,
	}
}

type CommentResponse struct {
	ID         string    `json:"id"`
	AuthorName string    `json:"author_name"`
	Text       string    `json:"text"`
	CreatedAt  time.Time `json:"created_at"`
}

func NewCommentResponse(c *item.Comment) CommentResponse {
	return CommentResponse{
		ID:         c.ID,
		AuthorName: c.AuthorName,
		Text:       c.Text,
		CreatedAt:  c.CreatedAt,
	}
}

type ItemDetailResponse struct {
	ItemResponse
	LastBooking *BookingRefResponse `json:"last_booking"`
	NextBooking *BookingRefResponse `json:"next_booking"`
	Comments    []CommentResponse   `json:"comments"`
}

func NewItemDetailResponse(d *item.Detail) ItemDetailResponse {
	comments := make([]CommentResponse, len(d.Comments))
	for i := range d.Comments {
		comments[i] = NewCommentResponse(&d.Comments[i])
	}

	return ItemDetailResponse{
		ItemResponse: NewItemResponse(&d.Item),
		LastBooking:  newBookingRefResponse(d.LastBooking),
		NextBooking:  newBookingRefResponse(d.NextBooking),
		Comments:     comments,
	}
}

type CreateItemRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description" binding:"required"`
	Available   *bool   `json:"available" binding:"required"`
	RequestID   *string `json:"request_id" binding:"omitempty,uuid"`
}

type UpdateItemRequest struct {
	Name        *string `json:"name" binding:"omitempty"`
	Description *string `json:"description" binding:"omitempty"`
	Available   *bool   `json:"available" binding:"omitempty"`
}

type SearchItemsRequest struct {
	Text string `form:"text"`
	From int    `form:"from,default=0"`
	Size int    `form:"size,default=20"`
}

type AddCommentRequest struct {
	Text string `json:"text" binding:"required"`
}
