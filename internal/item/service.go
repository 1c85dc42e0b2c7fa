package item

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/peerrent/rental-backend/internal/clock"
	"github.com/peerrent/rental-backend/internal/user"
)

type CreateRequest struct {
	Name        string
	Description string
	Available   *bool
	RequestID   *string
}

type UpdateRequest struct {
	Name        *string
	Description *string
	Available   *bool
}

// BookingLookup answers the booking-adjacency questions the item views need.
// It is implemented by the booking module and injected here to keep the
// dependency one-way.
type BookingLookup interface {
	// LastForItem returns the most recent approved booking of the item that
	// started at or before now, or nil when there is none.
	LastForItem(ctx context.Context, itemID string, now time.Time) (*BookingRef, error)
	// NextForItem returns the nearest approved booking of the item that
	// starts at or after now, or nil when there is none.
	NextForItem(ctx context.Context, itemID string, now time.Time) (*BookingRef, error)
	// HasApprovedPastBooking reports whether the user holds an approved
	// booking of the item that started before now.
	HasApprovedPastBooking(ctx context.Context, itemID, userID string, now time.Time) (bool, error)
}

type Service interface {
	Create(ctx context.Context, ownerID string, req CreateRequest) (*Item, error)
	GetByID(ctx context.Context, id, viewerID string) (*Detail, error)
	ListByOwner(ctx context.Context, ownerID string, limit, offset int) ([]*Detail, int, error)
	Search(ctx context.Context, text string, limit, offset int) ([]*Item, int, error)
	Update(ctx context.Context, id, actorID string, req UpdateRequest) (*Item, error)
	Delete(ctx context.Context, id, actorID string) error
	AddComment(ctx context.Context, itemID, authorID, text string) (*Comment, error)
}

type service struct {
	repo        Repository
	userService user.Service
	bookings    BookingLookup
	clk         clock.Clock
}

func NewService(repo Repository, userService user.Service, bookings BookingLookup, clk clock.Clock) Service {
	return &service{
		repo:        repo,
		userService: userService,
		bookings:    bookings,
		clk:         clk,
	}
}

func (s *service) Create(ctx context.Context, ownerID string, req CreateRequest) (*Item, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrNameRequired
	}
	if strings.TrimSpace(req.Description) == "" {
		return nil, ErrDescriptionRequired
	}
	if req.Available == nil {
		return nil, ErrAvailabilityRequired
	}

	owner, err := s.userService.GetByID(ctx, ownerID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	i := &Item{
		OwnerID:     owner.ID,
		OwnerName:   owner.Name,
		Name:        req.Name,
		Description: req.Description,
		Available:   *req.Available,
		RequestID:   req.RequestID,
	}

	if err := s.repo.Create(ctx, i); err != nil {
		return nil, err
	}
	return i, nil
}

func (s *service) GetByID(ctx context.Context, id, viewerID string) (*Detail, error) {
	i, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	comments, err := s.repo.ListComments(ctx, id)
	if err != nil {
		return nil, err
	}

	d := &Detail{Item: *i, Comments: comments}

	// Adjacent bookings are visible to the owner only; everyone else always
	// sees them as absent.
	if viewerID == i.OwnerID {
		if err := s.attachAdjacent(ctx, d); err != nil {
			return nil, err
		}
	}

	return d, nil
}

func (s *service) ListByOwner(ctx context.Context, ownerID string, limit, offset int) ([]*Detail, int, error) {
	if _, err := s.userService.GetByID(ctx, ownerID); err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, 0, ErrUserNotFound
		}
		return nil, 0, err
	}

	items, total, err := s.repo.ListByOwner(ctx, ownerID, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	details := make([]*Detail, len(items))
	for idx, i := range items {
		d := &Detail{Item: *i}
		if err := s.attachAdjacent(ctx, d); err != nil {
			return nil, 0, err
		}
		details[idx] = d
	}

	return details, total, nil
}

func (s *service) attachAdjacent(ctx context.Context, d *Detail) error {
	now := s.clk.Now()

	last, err := s.bookings.LastForItem(ctx, d.ID, now)
	if err != nil {
		return err
	}
	next, err := s.bookings.NextForItem(ctx, d.ID, now)
	if err != nil {
		return err
	}

	d.LastBooking = last
	d.NextBooking = next
	return nil
}

func (s *service) Search(ctx context.Context, text string, limit, offset int) ([]*Item, int, error) {
	// Blank search text yields an empty result rather than everything.
	if strings.TrimSpace(text) == "" {
		return []*Item{}, 0, nil
	}
	return s.repo.Search(ctx, text, limit, offset)
}

func (s *service) Update(ctx context.Context, id, actorID string, req UpdateRequest) (*Item, error) {
	i, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if i.OwnerID != actorID {
		return nil, ErrPermissionDenied
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, ErrNameRequired
		}
		i.Name = *req.Name
	}
	if req.Description != nil {
		if strings.TrimSpace(*req.Description) == "" {
			return nil, ErrDescriptionRequired
		}
		i.Description = *req.Description
	}
	if req.Available != nil {
		i.Available = *req.Available
	}

	if err := s.repo.Update(ctx, i); err != nil {
		return nil, err
	}
	return i, nil
}

func (s *service) Delete(ctx context.Context, id, actorID string) error {
	i, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if i.OwnerID != actorID {
		return ErrPermissionDenied
	}

	return s.repo.Delete(ctx, id)
}

func (s *service) AddComment(ctx context.Context, itemID, authorID, text string) (*Comment, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrCommentTextRequired
	}

	author, err := s.userService.GetByID(ctx, authorID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if _, err := s.repo.GetByID(ctx, itemID); err != nil {
		return nil, err
	}

	ok, err := s.bookings.HasApprovedPastBooking(ctx, itemID, authorID, s.clk.Now())
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrCommentNotAllowed
	}

	c := &Comment{
		ItemID:     itemID,
		AuthorID:   author.ID,
		AuthorName: author.Name,
		Text:       text,
	}

	if err := s.repo.AddComment(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}
