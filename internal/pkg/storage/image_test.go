package storage

import (
	"bytes"
	"image"
	"image/jpeg"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodeJPEG(t *testing.T, width, height int) *bytes.Buffer {
	t.Helper()

	buf := new(bytes.Buffer)
	require.NoError(t, jpeg.Encode(buf, image.NewRGBA(image.Rect(0, 0, width, height)), nil))
	return buf
}

func TestThumbnailFitsBounds(t *testing.T) {
	thumbs := NewThumbnailer()

	out, err := thumbs.Thumbnail(encodeJPEG(t, 800, 600), 200, 200)
	require.NoError(t, err)

	img, err := jpeg.Decode(out)
	require.NoError(t, err)

	bounds := img.Bounds()
	assert.LessOrEqual(t, bounds.Dx(), 200)
	assert.LessOrEqual(t, bounds.Dy(), 200)
	// Aspect ratio is preserved, so the wide side hits the bound.
	assert.Equal(t, 200, bounds.Dx())
}

func TestThumbnailKeepsSmallImages(t *testing.T) {
	thumbs := NewThumbnailer()

	out, err := thumbs.Thumbnail(encodeJPEG(t, 100, 50), 200, 200)
	require.NoError(t, err)

	img, err := jpeg.Decode(out)
	require.NoError(t, err)
	assert.Equal(t, 100, img.Bounds().Dx())
}

func TestThumbnailRejectsNonImage(t *testing.T) {
	thumbs := NewThumbnailer()

	_, err := thumbs.Thumbnail(strings.NewReader("plain text"), 200, 200)
	assert.Error(t, err)
}
