package imaging_test

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"strings"
	"testing"

	"github.com/frameart/storefront/internal/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngDataURL(t *testing.T, w, h int) string {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 128, A: 255})
		}
	}

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))

	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
}

func decodeJPEG(t *testing.T, dataURL string) image.Image {
	t.Helper()

	require.True(t, strings.HasPrefix(dataURL, "data:image/jpeg;base64,"))

	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(dataURL, "data:image/jpeg;base64,"))
	require.NoError(t, err)

	img, err := jpeg.Decode(bytes.NewReader(raw))
	require.NoError(t, err)

	return img
}

func TestNormalize(t *testing.T) {
	t.Run("Success - Plain URL passes through", func(t *testing.T) {
		out, err := imaging.Normalize("https://images.example/a.jpg")

		require.NoError(t, err)
		assert.Equal(t, "https://images.example/a.jpg", out)
	})

	t.Run("Success - Large image is scaled to fit", func(t *testing.T) {
		// Arrange
		in := pngDataURL(t, 800, 400)

		// Act
		out, err := imaging.Normalize(in)

		// Assert
		require.NoError(t, err)
		img := decodeJPEG(t, out)
		assert.Equal(t, 400, img.Bounds().Dx())
		assert.Equal(t, 200, img.Bounds().Dy())
	})

	t.Run("Success - Small image keeps its size", func(t *testing.T) {
		out, err := imaging.Normalize(pngDataURL(t, 40, 30))

		require.NoError(t, err)
		img := decodeJPEG(t, out)
		assert.Equal(t, 40, img.Bounds().Dx())
		assert.Equal(t, 30, img.Bounds().Dy())
	})

	t.Run("Failure - Not base64", func(t *testing.T) {
		_, err := imaging.Normalize("data:image/png;base64,@@@")

		require.ErrorIs(t, err, imaging.ErrInvalidDataURL)
	})

	t.Run("Failure - Not an image", func(t *testing.T) {
		_, err := imaging.Normalize("data:text/plain;base64," + base64.StdEncoding.EncodeToString([]byte("hi")))

		require.ErrorIs(t, err, imaging.ErrInvalidDataURL)
	})

	t.Run("Failure - Undecodable image", func(t *testing.T) {
		_, err := imaging.Normalize("data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte("not a png")))

		require.Error(t, err)
	})
}

func TestFit(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 300, 900))

	dst := imaging.Fit(src, 400, 400)

	assert.Equal(t, 133, dst.Bounds().Dx())
	assert.Equal(t, 400, dst.Bounds().Dy())
}
