// Package imaging prepares item and proof photos for upload: the format is
// checked by sniffing, large photos are shrunk and everything is sent as
// JPEG.
package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"golang.org/x/image/draw"
)

const (
	// MaxDimension bounds the longer side of an uploaded photo.
	MaxDimension = 1600
	// MaxInputBytes bounds the size of a photo accepted from the browser.
	MaxInputBytes = 10 << 20
	// JPEGQuality is the re-encode quality.
	JPEGQuality = 82
)

var (
	// ErrUnsupported is returned for anything other than JPEG or PNG.
	ErrUnsupported = errors.New("unsupported image format")
	// ErrTooLarge is returned when the input exceeds MaxInputBytes.
	ErrTooLarge = errors.New("image is too large")
)

var accepted = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
}

// Photo is a prepared upload.
type Photo struct {
	Filename    string
	ContentType string
	Data        []byte
	Width       int
	Height      int
}

// Prepare reads a browser-submitted photo named name and returns it as a
// JPEG no larger than MaxDimension on either side. Transparent areas are
// flattened onto white.
func Prepare(name string, r io.Reader) (*Photo, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxInputBytes+1))
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}
	if len(data) > MaxInputBytes {
		return nil, ErrTooLarge
	}

	detected := http.DetectContentType(data)
	if !accepted[detected] {
		return nil, fmt.Errorf("%w: %s", ErrUnsupported, detected)
	}

	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", name, err)
	}

	img := fit(src, MaxDimension)
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: JPEGQuality}); err != nil {
		return nil, fmt.Errorf("encoding %s: %w", name, err)
	}

	b := img.Bounds()
	return &Photo{
		Filename:    jpegName(name),
		ContentType: "image/jpeg",
		Data:        buf.Bytes(),
		Width:       b.Dx(),
		Height:      b.Dy(),
	}, nil
}

// fit returns img scaled down to maxDim, composited over white so the JPEG
// encoder never sees alpha.
func fit(img image.Image, maxDim int) image.Image {
	sb := img.Bounds()
	w, h := scaled(sb.Dx(), sb.Dy(), maxDim)

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	if w == sb.Dx() && h == sb.Dy() {
		draw.Draw(dst, dst.Bounds(), img, sb.Min, draw.Over)
		return dst
	}
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, sb, draw.Over, nil)
	return dst
}

// scaled keeps the aspect ratio while bounding the longer side.
func scaled(w, h, maxDim int) (int, int) {
	if w <= maxDim && h <= maxDim {
		return w, h
	}
	if w >= h {
		return maxDim, max(1, h*maxDim/w)
	}
	return max(1, w*maxDim/h), maxDim
}

func jpegName(name string) string {
	base := filepath.Base(name)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	if base == "" || base == "." || base == string(filepath.Separator) {
		base = "photo"
	}
	return base + ".jpg"
}
