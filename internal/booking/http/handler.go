package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/peerrent/rental-backend/internal/booking"
	"github.com/peerrent/rental-backend/internal/identity"
	"github.com/peerrent/rental-backend/internal/pkg/request"
	"github.com/peerrent/rental-backend/internal/pkg/response"
)

type Handler struct {
	service booking.Service
}

func NewHandler(service booking.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateBookingRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	var start, end time.Time
	if body.Start != nil {
		start = *body.Start
	}
	if body.End != nil {
		end = *body.End
	}

	b, err := h.service.Create(c.Request.Context(), identity.GetUserID(c), booking.CreateRequest{
		ItemID: body.ItemID,
		Start:  start,
		End:    end,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewBookingResponse(b))
}

func (h *Handler) Approve(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	approved, err := strconv.ParseBool(c.Query("approved"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "approved must be true or false"})
		return
	}

	b, err := h.service.Approve(c.Request.Context(), uri.ID, identity.GetUserID(c), approved)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewBookingResponse(b))
}

func (h *Handler) Get(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	b, err := h.service.GetByID(c.Request.Context(), uri.ID, identity.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewBookingResponse(b))
}

func (h *Handler) ListOwn(c *gin.Context) {
	h.list(c, false)
}

func (h *Handler) ListForOwner(c *gin.Context) {
	h.list(c, true)
}

func (h *Handler) list(c *gin.Context, ownerPerspective bool) {
	var req ListBookingsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}

	page := request.PageParams{From: req.From, Size: req.Size}
	if err := page.Validate(); err != nil {
		response.Error(c, err)
		return
	}

	actorID := identity.GetUserID(c)
	_, size := page.Page()

	var bookings []*booking.Booking
	var err error
	if ownerPerspective {
		bookings, err = h.service.ListByOwner(c.Request.Context(), actorID, req.State, size, page.Offset())
	} else {
		bookings, err = h.service.ListByBooker(c.Request.Context(), actorID, req.State, size, page.Offset())
	}
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]BookingResponse, len(bookings))
	for i, b := range bookings {
		items[i] = NewBookingResponse(b)
	}

	c.JSON(http.StatusOK, items)
}
