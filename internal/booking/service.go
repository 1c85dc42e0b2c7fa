package booking

import (
	"context"
	"errors"
	"time"

	"github.com/peerrent/rental-backend/internal/clock"
	"github.com/peerrent/rental-backend/internal/item"
	"github.com/peerrent/rental-backend/internal/user"
)

type CreateRequest struct {
	ItemID string
	Start  time.Time
	End    time.Time
}

// ItemGateway is the narrow item lookup the engine needs. item.Repository
// satisfies it.
type ItemGateway interface {
	GetByID(ctx context.Context, id string) (*item.Item, error)
}

// UserGateway is the narrow user lookup the engine needs. user.Service
// satisfies it.
type UserGateway interface {
	GetByID(ctx context.Context, id string) (*user.User, error)
}

type Service interface {
	// Create validates and persists a new WAITING booking for the requester.
	Create(ctx context.Context, bookerID string, req CreateRequest) (*Booking, error)
	// Approve moves a WAITING booking to APPROVED or REJECTED. Only the
	// item's owner may decide, and only once.
	Approve(ctx context.Context, bookingID, ownerID string, approved bool) (*Booking, error)
	// GetByID returns the booking when the viewer is its booker or the
	// item's owner.
	GetByID(ctx context.Context, bookingID, viewerID string) (*Booking, error)
	// ListByBooker returns the user's own bookings in the given state bucket,
	// newest start first.
	ListByBooker(ctx context.Context, bookerID, stateKeyword string, limit, offset int) ([]*Booking, error)
	// ListByOwner returns bookings on items the user owns, same mapping.
	ListByOwner(ctx context.Context, ownerID, stateKeyword string, limit, offset int) ([]*Booking, error)
}

type service struct {
	repo  Repository
	items ItemGateway
	users UserGateway
	clk   clock.Clock
}

func NewService(repo Repository, items ItemGateway, users UserGateway, clk clock.Clock) Service {
	return &service{
		repo:  repo,
		items: items,
		users: users,
		clk:   clk,
	}
}

func (s *service) Create(ctx context.Context, bookerID string, req CreateRequest) (*Booking, error) {
	// Guards run in a fixed order and short-circuit; once one fails no
	// further lookups happen.
	if req.Start.IsZero() || req.End.IsZero() {
		return nil, ErrValidation
	}
	if req.Start.Equal(req.End) || req.Start.After(req.End) {
		return nil, ErrInvalidTimeRange
	}
	if req.Start.Before(s.clk.Now()) {
		return nil, ErrStartTimePast
	}

	it, err := s.items.GetByID(ctx, req.ItemID)
	if err != nil {
		if errors.Is(err, item.ErrNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}
	if !it.Available {
		return nil, ErrItemUnavailable
	}

	booker, err := s.users.GetByID(ctx, bookerID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if booker.ID == it.OwnerID {
		// Owners cannot book their own items.
		return nil, ErrPermissionDenied
	}

	// Overlapping WAITING/APPROVED bookings on the same item are allowed to
	// coexist; the owner arbitrates at approval time.
	b := &Booking{
		ItemID:      it.ID,
		ItemName:    it.Name,
		ItemOwnerID: it.OwnerID,
		BookerID:    booker.ID,
		BookerName:  booker.Name,
		Start:       req.Start,
		End:         req.End,
		Status:      StatusWaiting,
	}

	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *service) Approve(ctx context.Context, bookingID, ownerID string, approved bool) (*Booking, error) {
	if _, err := s.users.GetByID(ctx, ownerID); err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	b, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if b.ItemOwnerID != ownerID {
		return nil, ErrPermissionDenied
	}

	if b.Status != StatusWaiting {
		return nil, invalidStateError(b.Status)
	}

	status := StatusApproved
	if !approved {
		status = StatusRejected
	}

	changed, err := s.repo.UpdateStatus(ctx, bookingID, status)
	if err != nil {
		return nil, err
	}
	if !changed {
		// A concurrent decision won the race; report the committed status.
		current, err := s.repo.GetByID(ctx, bookingID)
		if err != nil {
			return nil, err
		}
		return nil, invalidStateError(current.Status)
	}

	b.Status = status
	return b, nil
}

func (s *service) GetByID(ctx context.Context, bookingID, viewerID string) (*Booking, error) {
	if _, err := s.users.GetByID(ctx, viewerID); err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	b, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if viewerID != b.BookerID && viewerID != b.ItemOwnerID {
		return nil, ErrPermissionDenied
	}

	return b, nil
}

func (s *service) ListByBooker(ctx context.Context, bookerID, stateKeyword string, limit, offset int) ([]*Booking, error) {
	state, err := s.prepareList(ctx, bookerID, stateKeyword)
	if err != nil {
		return nil, err
	}

	return s.repo.List(ctx, Filter{
		BookerID: bookerID,
		State:    state,
		Now:      s.clk.Now(),
		Limit:    limit,
		Offset:   offset,
	})
}

func (s *service) ListByOwner(ctx context.Context, ownerID, stateKeyword string, limit, offset int) ([]*Booking, error) {
	state, err := s.prepareList(ctx, ownerID, stateKeyword)
	if err != nil {
		return nil, err
	}

	return s.repo.List(ctx, Filter{
		OwnerID: ownerID,
		State:   state,
		Now:     s.clk.Now(),
		Limit:   limit,
		Offset:  offset,
	})
}

// prepareList parses the state keyword before touching the store, then checks
// the actor exists. An unknown keyword never reaches the repository.
func (s *service) prepareList(ctx context.Context, actorID, stateKeyword string) (State, error) {
	state, err := ParseState(stateKeyword)
	if err != nil {
		return "", err
	}

	if _, err := s.users.GetByID(ctx, actorID); err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return "", ErrUserNotFound
		}
		return "", err
	}

	return state, nil
}
