package http

import (
	"time"

	"github.com/peerrent/rental-backend/internal/itemrequest"
)

type ItemRefResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	OwnerID   string `json:"owner_id"`
	Available bool   `json:"available"`
}

type RequestResponse struct {
	ID            string            `json:"id"`
	RequesterID   string            `json:"requester_id"`
	RequesterName string            `json:"requester_name"`
	Description   string            `json:"description"`
	CreatedAt     time.Time         `json:"created_at"`
	Items         []ItemRefResponse `json:"items"`
}

func NewRequestResponse(wa *itemrequest.WithAnswers) RequestResponse {
	items := make([]ItemRefResponse, len(wa.Items))
	for i, ref := range wa.Items {
		items[i] = ItemRefResponse{
			ID:        ref.ID,
			Name:      ref.Name,
			OwnerID:   ref.OwnerID,
			Available: ref.Available,
		}
	}

	return RequestResponse{
		ID:            wa.ID,
		RequesterID:   wa.RequesterID,
		RequesterName: wa.RequesterName,
		Description:   wa.Description,
		CreatedAt:     wa.CreatedAt,
		Items:         items,
	}
}

// NewCreatedResponse renders a freshly created request, which cannot have
// answers yet.
func NewCreatedResponse(req *itemrequest.ItemRequest) RequestResponse {
	return NewRequestResponse(&itemrequest.WithAnswers{ItemRequest: *req, Items: nil})
}

type CreateRequestBody struct {
	Description string `json:"description" binding:"required"`
}
