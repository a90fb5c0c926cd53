// Package imaging shrinks inline artwork images before they are stored in a
// public gallery document.
package imaging

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"strings"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

const (
	MaxWidth    = 400
	MaxHeight   = 400
	JPEGQuality = 30
)

var ErrInvalidDataURL = errors.New("invalid image data url")

// IsDataURL reports whether ref carries the image inline.
func IsDataURL(ref string) bool {
	return strings.HasPrefix(ref, "data:")
}

// Normalize returns plain URLs unchanged. An inline image is decoded,
// scaled down to fit MaxWidth x MaxHeight and re-encoded as a JPEG data URL.
func Normalize(ref string) (string, error) {
	if !IsDataURL(ref) {
		return ref, nil
	}

	payload, err := decodeDataURL(ref)
	if err != nil {
		return "", err
	}

	src, _, err := image.Decode(bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to decode image: %w", err)
	}

	dst := Fit(src, MaxWidth, MaxHeight)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: JPEGQuality}); err != nil {
		return "", fmt.Errorf("failed to encode image: %w", err)
	}

	return "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// Fit scales src down, keeping its aspect ratio, until it fits within
// maxW x maxH. Images that already fit are returned as is.
func Fit(src image.Image, maxW, maxH int) image.Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()

	if w <= maxW && h <= maxH {
		return src
	}

	nw, nh := maxW, h*maxW/w
	if w*maxH <= h*maxW {
		nw, nh = w*maxH/h, maxH
	}

	nw, nh = max(nw, 1), max(nh, 1)

	dst := image.NewRGBA(image.Rect(0, 0, nw, nh))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)

	return dst
}

func decodeDataURL(ref string) ([]byte, error) {
	header, data, ok := strings.Cut(strings.TrimPrefix(ref, "data:"), ",")
	if !ok {
		return nil, ErrInvalidDataURL
	}

	if !strings.HasSuffix(header, ";base64") || !strings.HasPrefix(header, "image/") {
		return nil, ErrInvalidDataURL
	}

	payload, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDataURL, err)
	}

	return payload, nil
}
