package request

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPageParamsValidate(t *testing.T) {
	assert.NoError(t, PageParams{From: 0, Size: 20}.Validate())
	assert.NoError(t, PageParams{From: 100, Size: 1}.Validate())

	assert.ErrorIs(t, PageParams{From: -1, Size: 20}.Validate(), ErrInvalidPaging)
	assert.ErrorIs(t, PageParams{From: 0, Size: 0}.Validate(), ErrInvalidPaging)
	assert.ErrorIs(t, PageParams{From: 0, Size: -5}.Validate(), ErrInvalidPaging)
}

func TestPageParamsPage(t *testing.T) {
	tests := []struct {
		name       string
		from, size int
		pageIndex  int
		offset     int
	}{
		{"start of first page", 0, 20, 0, 0},
		{"aligned offset", 40, 20, 2, 40},
		{"misaligned offset floors to page start", 30, 20, 1, 20},
		{"just below a page boundary", 19, 20, 0, 0},
		{"exactly one page", 20, 20, 1, 20},
		{"size one is always exact", 7, 1, 7, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := PageParams{From: tt.from, Size: tt.size}

			pageIndex, pageSize := p.Page()
			assert.Equal(t, tt.pageIndex, pageIndex)
			assert.Equal(t, tt.size, pageSize)
			assert.Equal(t, tt.offset, p.Offset())
		})
	}
}
