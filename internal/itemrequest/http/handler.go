package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/peerrent/rental-backend/internal/identity"
	"github.com/peerrent/rental-backend/internal/itemrequest"
	"github.com/peerrent/rental-backend/internal/pkg/request"
	"github.com/peerrent/rental-backend/internal/pkg/response"
)

type Handler struct {
	service itemrequest.Service
}

func NewHandler(service itemrequest.Service) *Handler {
	return &Handler{service: service}
}

func mapError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, itemrequest.ErrNotFound),
		errors.Is(err, itemrequest.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, itemrequest.ErrDescriptionRequired):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		response.Error(c, err)
	}
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	req, err := h.service.Create(c.Request.Context(), identity.GetUserID(c), body.Description)
	if err != nil {
		mapError(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewCreatedResponse(req))
}

func (h *Handler) ListOwn(c *gin.Context) {
	reqs, err := h.service.ListOwn(c.Request.Context(), identity.GetUserID(c))
	if err != nil {
		mapError(c, err)
		return
	}

	items := make([]RequestResponse, len(reqs))
	for i, r := range reqs {
		items[i] = NewRequestResponse(r)
	}

	c.JSON(http.StatusOK, items)
}

func (h *Handler) ListOthers(c *gin.Context) {
	var page request.PageParams
	if err := c.ShouldBindQuery(&page); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}
	if err := page.Validate(); err != nil {
		response.Error(c, err)
		return
	}

	_, size := page.Page()
	reqs, _, err := h.service.ListOthers(c.Request.Context(), identity.GetUserID(c), size, page.Offset())
	if err != nil {
		mapError(c, err)
		return
	}

	items := make([]RequestResponse, len(reqs))
	for i, r := range reqs {
		items[i] = NewRequestResponse(r)
	}

	c.JSON(http.StatusOK, items)
}

func (h *Handler) Get(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	req, err := h.service.GetByID(c.Request.Context(), uri.ID, identity.GetUserID(c))
	if err != nil {
		mapError(c, err)
		return
	}

	c.JSON(http.StatusOK, NewRequestResponse(req))
}
