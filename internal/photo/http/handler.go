package http

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/peerrent/rental-backend/internal/identity"
	"github.com/peerrent/rental-backend/internal/photo"
	"github.com/peerrent/rental-backend/internal/pkg/request"
	"github.com/peerrent/rental-backend/internal/pkg/response"
)

type Handler struct {
	service photo.Service
}

func NewHandler(service photo.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Upload(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	header, err := c.FormFile("photo")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "photo form file is required"})
		return
	}

	p, err := h.service.Upload(c.Request.Context(), uri.ID, identity.GetUserID(c), header)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewPhotoResponse(p))
}

func (h *Handler) ListByItem(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	photos, err := h.service.ListByItem(c.Request.Context(), uri.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]PhotoResponse, len(photos))
	for i, p := range photos {
		items[i] = NewPhotoResponse(p)
	}

	c.JSON(http.StatusOK, items)
}

func (h *Handler) Download(c *gin.Context) {
	h.stream(c, false)
}

func (h *Handler) DownloadThumbnail(c *gin.Context) {
	h.stream(c, true)
}

func (h *Handler) stream(c *gin.Context, thumbnail bool) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	var rc io.ReadCloser
	var p *photo.Photo
	var err error
	if thumbnail {
		rc, p, err = h.service.DownloadThumbnail(c.Request.Context(), uri.ID)
	} else {
		rc, p, err = h.service.Download(c.Request.Context(), uri.ID)
	}
	if err != nil {
		response.Error(c, err)
		return
	}
	defer rc.Close()

	contentType := p.ContentType
	if thumbnail {
		contentType = "image/jpeg"
	}

	c.Header("Content-Type", contentType)
	c.Status(http.StatusOK)
	_, _ = io.Copy(c.Writer, rc)
}

func (h *Handler) Delete(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	if err := h.service.Delete(c.Request.Context(), uri.ID, identity.GetUserID(c)); err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
