package photo

import (
	"net/http"
	"time"

	"github.com/peerrent/rental-backend/internal/pkg/apperror"
)

var (
	ErrNotFound         = apperror.New(http.StatusNotFound, "photo not found")
	ErrItemNotFound     = apperror.New(http.StatusNotFound, "item not found")
	ErrPermissionDenied = apperror.New(http.StatusForbidden, "permission denied")
	ErrNotAnImage       = apperror.New(http.StatusBadRequest, "uploaded file is not an image")
	ErrTooLarge         = apperror.New(http.StatusBadRequest, "uploaded file is too large")
)

// Photo is an image attached to an item listing.
type Photo struct {
	ID            string
	ItemID        string
	UploaderID    string
	Filename      string
	StoragePath   string
	ThumbnailPath *string
	ContentType   string
	Size          int64
	CreatedAt     time.Time
}

// URL returns the public path for the photo content.
func URL(id string) string {
	return "/photos/" + id
}

// ThumbnailURL returns the public path for the photo thumbnail.
func ThumbnailURL(id string) string {
	return "/photos/" + id + "/thumbnail"
}
