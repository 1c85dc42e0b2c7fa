package booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peerrent/rental-backend/internal/clock"
	"github.com/peerrent/rental-backend/internal/item"
	"github.com/peerrent/rental-backend/internal/user"
)

type fakeItems struct {
	items map[string]*item.Item
	calls int
}

func (f *fakeItems) GetByID(_ context.Context, id string) (*item.Item, error) {
	f.calls++
	if it, ok := f.items[id]; ok {
		return it, nil
	}
	return nil, item.ErrNotFound
}

type fakeUsers struct {
	users map[string]*user.User
	calls int
}

func (f *fakeUsers) GetByID(_ context.Context, id string) (*user.User, error) {
	f.calls++
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, user.ErrNotFound
}

type fakeRepo struct {
	bookings     map[string]*Booking
	nextID       int
	updateResult bool
	listCalls    int
	lastFilter   Filter
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{bookings: map[string]*Booking{}, updateResult: true}
}

func (f *fakeRepo) Create(_ context.Context, b *Booking) error {
	f.nextID++
	b.ID = string(rune('a' + f.nextID))
	b.CreatedAt = time.Now()
	b.UpdatedAt = b.CreatedAt
	copied := *b
	f.bookings[b.ID] = &copied
	return nil
}

func (f *fakeRepo) GetByID(_ context.Context, id string) (*Booking, error) {
	if b, ok := f.bookings[id]; ok {
		copied := *b
		return &copied, nil
	}
	return nil, ErrNotFound
}

func (f *fakeRepo) List(_ context.Context, filter Filter) ([]*Booking, error) {
	f.listCalls++
	f.lastFilter = filter
	return nil, nil
}

func (f *fakeRepo) UpdateStatus(_ context.Context, id string, status Status) (bool, error) {
	if !f.updateResult {
		return false, nil
	}
	b, ok := f.bookings[id]
	if !ok || b.Status != StatusWaiting {
		return false, nil
	}
	b.Status = status
	return true, nil
}

func (f *fakeRepo) LastForItem(context.Context, string, time.Time) (*Booking, error) {
	return nil, nil
}

func (f *fakeRepo) NextForItem(context.Context, string, time.Time) (*Booking, error) {
	return nil, nil
}

func (f *fakeRepo) HasApprovedPastBooking(context.Context, string, string, time.Time) (bool, error) {
	return false, nil
}

const (
	ownerID    = "owner-1"
	bookerID   = "booker-1"
	strangerID = "stranger-1"
	itemID     = "item-1"
)

type fixture struct {
	repo    *fakeRepo
	items   *fakeItems
	users   *fakeUsers
	clk     *clock.Fixed
	service Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	f := &fixture{
		repo: newFakeRepo(),
		items: &fakeItems{items: map[string]*item.Item{
			itemID: {ID: itemID, OwnerID: ownerID, Name: "Cargo bike", Available: true},
		}},
		users: &fakeUsers{users: map[string]*user.User{
			ownerID:    {ID: ownerID, Name: "Alice"},
			bookerID:   {ID: bookerID, Name: "Bob"},
			strangerID: {ID: strangerID, Name: "Mallory"},
		}},
		clk: clock.NewFixed(now),
	}
	f.service = NewService(f.repo, f.items, f.users, f.clk)
	return f
}

func (f *fixture) createReq(startOffset, endOffset time.Duration) CreateRequest {
	now := f.clk.Now()
	return CreateRequest{
		ItemID: itemID,
		Start:  now.Add(startOffset),
		End:    now.Add(endOffset),
	}
}

func TestCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("creates waiting booking", func(t *testing.T) {
		f := newFixture(t)

		b, err := f.service.Create(ctx, bookerID, f.createReq(time.Hour, 2*time.Hour))
		require.NoError(t, err)

		assert.Equal(t, StatusWaiting, b.Status)
		assert.Equal(t, itemID, b.ItemID)
		assert.Equal(t, "Cargo bike", b.ItemName)
		assert.Equal(t, ownerID, b.ItemOwnerID)
		assert.Equal(t, bookerID, b.BookerID)
		assert.Equal(t, "Bob", b.BookerName)
		assert.NotEmpty(t, b.ID)
	})

	t.Run("missing times fail before any lookup", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.service.Create(ctx, bookerID, CreateRequest{ItemID: itemID})
		assert.ErrorIs(t, err, ErrValidation)
		assert.Zero(t, f.items.calls)
		assert.Zero(t, f.users.calls)
	})

	t.Run("start equal to end fails before any lookup", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.service.Create(ctx, bookerID, f.createReq(time.Hour, time.Hour))
		assert.ErrorIs(t, err, ErrInvalidTimeRange)
		assert.Zero(t, f.items.calls)
	})

	t.Run("start after end", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.service.Create(ctx, bookerID, f.createReq(2*time.Hour, time.Hour))
		assert.ErrorIs(t, err, ErrInvalidTimeRange)
	})

	t.Run("start in the past", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.service.Create(ctx, bookerID, f.createReq(-time.Minute, time.Hour))
		assert.ErrorIs(t, err, ErrStartTimePast)
		assert.Zero(t, f.items.calls)
	})

	t.Run("unknown item", func(t *testing.T) {
		f := newFixture(t)

		req := f.createReq(time.Hour, 2*time.Hour)
		req.ItemID = "nope"
		_, err := f.service.Create(ctx, bookerID, req)
		assert.ErrorIs(t, err, ErrItemNotFound)
	})

	t.Run("unavailable item", func(t *testing.T) {
		f := newFixture(t)
		f.items.items[itemID].Available = false

		_, err := f.service.Create(ctx, bookerID, f.createReq(time.Hour, 2*time.Hour))
		assert.ErrorIs(t, err, ErrItemUnavailable)
	})

	t.Run("unknown booker", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.service.Create(ctx, "ghost", f.createReq(time.Hour, 2*time.Hour))
		assert.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("owner cannot book own item", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.service.Create(ctx, ownerID, f.createReq(time.Hour, 2*time.Hour))
		assert.ErrorIs(t, err, ErrPermissionDenied)
	})

	t.Run("overlapping bookings are accepted", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.service.Create(ctx, bookerID, f.createReq(time.Hour, 2*time.Hour))
		require.NoError(t, err)
		_, err = f.service.Create(ctx, strangerID, f.createReq(time.Hour, 2*time.Hour))
		require.NoError(t, err)
	})
}

func TestApprove(t *testing.T) {
	ctx := context.Background()

	create := func(t *testing.T, f *fixture) *Booking {
		t.Helper()
		b, err := f.service.Create(ctx, bookerID, f.createReq(time.Hour, 2*time.Hour))
		require.NoError(t, err)
		return b
	}

	t.Run("owner approves", func(t *testing.T) {
		f := newFixture(t)
		b := create(t, f)

		got, err := f.service.Approve(ctx, b.ID, ownerID, true)
		require.NoError(t, err)
		assert.Equal(t, StatusApproved, got.Status)
	})

	t.Run("owner rejects", func(t *testing.T) {
		f := newFixture(t)
		b := create(t, f)

		got, err := f.service.Approve(ctx, b.ID, ownerID, false)
		require.NoError(t, err)
		assert.Equal(t, StatusRejected, got.Status)
	})

	t.Run("booker cannot decide", func(t *testing.T) {
		f := newFixture(t)
		b := create(t, f)

		_, err := f.service.Approve(ctx, b.ID, bookerID, true)
		assert.ErrorIs(t, err, ErrPermissionDenied)
	})

	t.Run("second decision fails and names the committed status", func(t *testing.T) {
		f := newFixture(t)
		b := create(t, f)

		_, err := f.service.Approve(ctx, b.ID, ownerID, true)
		require.NoError(t, err)

		_, err = f.service.Approve(ctx, b.ID, ownerID, false)
		assert.ErrorIs(t, err, ErrInvalidState)
		assert.ErrorContains(t, err, "APPROVED")
	})

	t.Run("losing a concurrent decision reports the winner's status", func(t *testing.T) {
		f := newFixture(t)
		b := create(t, f)

		// The conditional update misses because another decision landed
		// between the read and the write.
		f.repo.updateResult = false
		f.repo.bookings[b.ID].Status = StatusRejected

		_, err := f.service.Approve(ctx, b.ID, ownerID, true)
		assert.ErrorIs(t, err, ErrInvalidState)
		assert.ErrorContains(t, err, "REJECTED")
	})

	t.Run("unknown booking", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.service.Approve(ctx, "nope", ownerID, true)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("unknown decider", func(t *testing.T) {
		f := newFixture(t)
		b := create(t, f)

		_, err := f.service.Approve(ctx, b.ID, "ghost", true)
		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestGetByID(t *testing.T) {
	ctx := context.Background()

	f := newFixture(t)
	b, err := f.service.Create(ctx, bookerID, f.createReq(time.Hour, 2*time.Hour))
	require.NoError(t, err)

	t.Run("booker sees own booking", func(t *testing.T) {
		got, err := f.service.GetByID(ctx, b.ID, bookerID)
		require.NoError(t, err)
		assert.Equal(t, b.ID, got.ID)
	})

	t.Run("item owner sees the booking", func(t *testing.T) {
		got, err := f.service.GetByID(ctx, b.ID, ownerID)
		require.NoError(t, err)
		assert.Equal(t, b.ID, got.ID)
	})

	t.Run("stranger is denied", func(t *testing.T) {
		_, err := f.service.GetByID(ctx, b.ID, strangerID)
		assert.ErrorIs(t, err, ErrPermissionDenied)
	})

	t.Run("unknown booking", func(t *testing.T) {
		_, err := f.service.GetByID(ctx, "nope", bookerID)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("unknown viewer", func(t *testing.T) {
		_, err := f.service.GetByID(ctx, b.ID, "ghost")
		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestList(t *testing.T) {
	ctx := context.Background()

	t.Run("booker listing fills the filter", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.service.ListByBooker(ctx, bookerID, "WAITING", 20, 0)
		require.NoError(t, err)

		assert.Equal(t, bookerID, f.repo.lastFilter.BookerID)
		assert.Empty(t, f.repo.lastFilter.OwnerID)
		assert.Equal(t, StateWaiting, f.repo.lastFilter.State)
		assert.Equal(t, f.clk.Now(), f.repo.lastFilter.Now)
		assert.Equal(t, 20, f.repo.lastFilter.Limit)
	})

	t.Run("owner listing fills the filter", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.service.ListByOwner(ctx, ownerID, "ALL", 10, 30)
		require.NoError(t, err)

		assert.Equal(t, ownerID, f.repo.lastFilter.OwnerID)
		assert.Empty(t, f.repo.lastFilter.BookerID)
		assert.Equal(t, StateAll, f.repo.lastFilter.State)
		assert.Equal(t, 30, f.repo.lastFilter.Offset)
	})

	t.Run("unknown keyword fails before any store access", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.service.ListByBooker(ctx, bookerID, "BOGUS", 20, 0)
		assert.ErrorIs(t, err, ErrUnsupportedState)
		assert.ErrorContains(t, err, "BOGUS")
		assert.Zero(t, f.users.calls)
		assert.Zero(t, f.repo.listCalls)
	})

	t.Run("keywords are case sensitive", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.service.ListByBooker(ctx, bookerID, "waiting", 20, 0)
		assert.ErrorIs(t, err, ErrUnsupportedState)
	})

	t.Run("unknown actor", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.service.ListByOwner(ctx, "ghost", "ALL", 20, 0)
		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}
