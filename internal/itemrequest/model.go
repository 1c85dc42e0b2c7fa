package itemrequest

import (
	"errors"
	"time"
)

var (
	ErrNotFound            = errors.New("item request not found")
	ErrDescriptionRequired = errors.New("description is required")
	ErrUserNotFound        = errors.New("user not found")
)

// ItemRequest is a wish for an item that is not listed yet. Owners may answer
// it by creating an item that references the request.
type ItemRequest struct {
	ID            string
	RequesterID   string
	RequesterName string
	Description   string
	CreatedAt     time.Time
}

// ItemRef is a short view of an item created in answer to a request.
type ItemRef struct {
	ID        string
	Name      string
	OwnerID   string
	Available bool
}

// WithAnswers is an item request together with the items answering it.
type WithAnswers struct {
	ItemRequest
	Items []ItemRef
}
