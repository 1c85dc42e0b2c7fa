package request

import "github.com/peerrent/rental-backend/internal/pkg/apperror"

// ErrInvalidPaging is returned when from/size query parameters are out of range.
var ErrInvalidPaging = apperror.New(400, "from must be >= 0 and size must be > 0")

// ByIDRequest is a common struct for endpoints that take an ID path parameter.
type ByIDRequest struct {
	ID string `uri:"id" binding:"required,uuid"`
}

// PageParams is the zero-based offset/limit pair used by list endpoints.
type PageParams struct {
	From int `form:"from,default=0"`
	Size int `form:"size,default=20"`
}

// Validate checks the raw parameters before translation.
func (p PageParams) Validate() error {
	if p.From < 0 || p.Size <= 0 {
		return ErrInvalidPaging
	}
	return nil
}

// Page translates the offset/limit pair into a page index and page size.
// The index is from/size using floor division, so when from is not a multiple
// of size the effective row offset is approximate (pageIndex*size), not exact.
// Callers must not assume exact-offset semantics.
func (p PageParams) Page() (pageIndex, pageSize int) {
	return p.From / p.Size, p.Size
}

// Offset returns the row offset the translated page maps to.
func (p PageParams) Offset() int {
	pageIndex, pageSize := p.Page()
	return pageIndex * pageSize
}
