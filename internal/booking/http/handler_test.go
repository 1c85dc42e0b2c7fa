package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peerrent/rental-backend/internal/booking"
	"github.com/peerrent/rental-backend/internal/identity"
)

const (
	actorID   = "0d9c4f3e-9b1a-4f56-8a1f-2f1a2b3c4d5e"
	itemID    = "11111111-2222-3333-4444-555555555555"
	bookingID = "99999999-8888-7777-6666-555555555555"
)

type stubService struct {
	booking  *booking.Booking
	bookings []*booking.Booking
	err      error

	lastState string
	lastLimit int
}

func (s *stubService) Create(context.Context, string, booking.CreateRequest) (*booking.Booking, error) {
	return s.booking, s.err
}

func (s *stubService) Approve(context.Context, string, string, bool) (*booking.Booking, error) {
	return s.booking, s.err
}

func (s *stubService) GetByID(context.Context, string, string) (*booking.Booking, error) {
	return s.booking, s.err
}

func (s *stubService) ListByBooker(_ context.Context, _ string, state string, limit, _ int) ([]*booking.Booking, error) {
	s.lastState = state
	s.lastLimit = limit
	return s.bookings, s.err
}

func (s *stubService) ListByOwner(_ context.Context, _ string, state string, limit, _ int) ([]*booking.Booking, error) {
	s.lastState = state
	s.lastLimit = limit
	return s.bookings, s.err
}

func setup(service booking.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	v1 := r.Group("")
	RegisterRoutes(v1, NewHandler(service), identity.Required())
	return r
}

func do(r *gin.Engine, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(identity.Header, actorID)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func sampleBooking() *booking.Booking {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	return &booking.Booking{
		ID:          bookingID,
		ItemID:      itemID,
		ItemName:    "Cargo bike",
		ItemOwnerID: "owner-1",
		BookerID:    actorID,
		BookerName:  "Bob",
		Start:       now.Add(time.Hour),
		End:         now.Add(2 * time.Hour),
		Status:      booking.StatusWaiting,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func TestCreateEndpoint(t *testing.T) {
	t.Run("returns created booking", func(t *testing.T) {
		svc := &stubService{booking: sampleBooking()}
		r := setup(svc)

		w := do(r, http.MethodPost, "/bookings",
			`{"item_id":"`+itemID+`","start":"2025-06-01T13:00:00Z","end":"2025-06-01T14:00:00Z"}`)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), `"WAITING"`)
	})

	t.Run("missing times surface the engine's validation error", func(t *testing.T) {
		svc := &stubService{err: booking.ErrValidation}
		r := setup(svc)

		w := do(r, http.MethodPost, "/bookings", `{"item_id":"`+itemID+`"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "start and end times are required")
	})

	t.Run("malformed item id fails binding", func(t *testing.T) {
		svc := &stubService{booking: sampleBooking()}
		r := setup(svc)

		w := do(r, http.MethodPost, "/bookings", `{"item_id":"not-a-uuid"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestApproveEndpoint(t *testing.T) {
	t.Run("approves", func(t *testing.T) {
		b := sampleBooking()
		b.Status = booking.StatusApproved
		svc := &stubService{booking: b}
		r := setup(svc)

		w := do(r, http.MethodPatch, "/bookings/"+bookingID+"?approved=true", "")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"APPROVED"`)
	})

	t.Run("approved must be boolean", func(t *testing.T) {
		svc := &stubService{booking: sampleBooking()}
		r := setup(svc)

		w := do(r, http.MethodPatch, "/bookings/"+bookingID+"?approved=banana", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("decided booking reports its status", func(t *testing.T) {
		svc := &stubService{err: booking.ErrInvalidState}
		r := setup(svc)

		w := do(r, http.MethodPatch, "/bookings/"+bookingID+"?approved=false", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestGetEndpoint(t *testing.T) {
	t.Run("stranger gets forbidden", func(t *testing.T) {
		svc := &stubService{err: booking.ErrPermissionDenied}
		r := setup(svc)

		w := do(r, http.MethodGet, "/bookings/"+bookingID, "")
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("unknown booking is not found", func(t *testing.T) {
		svc := &stubService{err: booking.ErrNotFound}
		r := setup(svc)

		w := do(r, http.MethodGet, "/bookings/"+bookingID, "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestListEndpoints(t *testing.T) {
	t.Run("state defaults to ALL", func(t *testing.T) {
		svc := &stubService{bookings: []*booking.Booking{sampleBooking()}}
		r := setup(svc)

		w := do(r, http.MethodGet, "/bookings", "")

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "ALL", svc.lastState)
		assert.Equal(t, 20, svc.lastLimit)
	})

	t.Run("pagination floors to the page start", func(t *testing.T) {
		svc := &stubService{}
		r := setup(svc)

		w := do(r, http.MethodGet, "/bookings/owner?state=WAITING&from=30&size=20", "")

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "WAITING", svc.lastState)
	})

	t.Run("invalid paging is rejected", func(t *testing.T) {
		svc := &stubService{}
		r := setup(svc)

		w := do(r, http.MethodGet, "/bookings?from=-1", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unsupported state passes the engine error through", func(t *testing.T) {
		svc := &stubService{err: booking.ErrUnsupportedState}
		r := setup(svc)

		w := do(r, http.MethodGet, "/bookings?state=BOGUS", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("requests without identity are rejected", func(t *testing.T) {
		svc := &stubService{}
		r := setup(svc)

		req := httptest.NewRequest(http.MethodGet, "/bookings", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
