// Package imaging validates and normalizes uploaded mission photos.
package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"net/http"

	"golang.org/x/image/draw"
	"golang.org/x/image/webp"
)

// MaxDimension is the maximum width or height for stored photos.
const MaxDimension = 2048

// JPEGQuality is the compression quality for re-encoded JPEG output.
const JPEGQuality = 85

// AllowedMIME lists the accepted input MIME types.
var AllowedMIME = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

// ProcessResult contains the processed photo data.
type ProcessResult struct {
	Data []byte
	MIME string
}

// Process sniffs the actual MIME type from the bytes (not trusting
// client headers), validates it against the accepted set, and
// downscales JPEG/PNG images larger than MaxDimension, re-encoding in
// the original format. WEBP is validated but passed through unchanged
// since the standard library has no WEBP encoder.
func Process(data []byte) (*ProcessResult, error) {
	detected := http.DetectContentType(data)
	if !AllowedMIME[detected] {
		return nil, fmt.Errorf("unsupported image format: %s (only JPEG, PNG and WEBP accepted)", detected)
	}

	if detected == "image/webp" {
		if _, err := webp.DecodeConfig(bytes.NewReader(data)); err != nil {
			return nil, fmt.Errorf("decoding WEBP: %w", err)
		}
		return &ProcessResult{Data: data, MIME: detected}, nil
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding image: %w", err)
	}

	bounds := img.Bounds()
	if bounds.Dx() <= MaxDimension && bounds.Dy() <= MaxDimension {
		return &ProcessResult{Data: data, MIME: detected}, nil
	}

	img = downscale(img, MaxDimension)

	var buf bytes.Buffer
	switch format {
	case "png":
		err = png.Encode(&buf, img)
	default:
		err = jpeg.Encode(&buf, img, &jpeg.Options{Quality: JPEGQuality})
	}
	if err != nil {
		return nil, fmt.Errorf("encoding %s: %w", format, err)
	}

	return &ProcessResult{Data: buf.Bytes(), MIME: detected}, nil
}

// downscale resizes the image so neither dimension exceeds maxDim,
// preserving aspect ratio, using Catmull-Rom interpolation.
func downscale(img image.Image, maxDim int) image.Image {
	bounds := img.Bounds()
	w := bounds.Dx()
	h := bounds.Dy()

	newW, newH := w, h
	if w > h {
		newW = maxDim
		newH = int(float64(h) * float64(maxDim) / float64(w))
	} else {
		newH = maxDim
		newW = int(float64(w) * float64(maxDim) / float64(h))
	}

	if newW < 1 {
		newW = 1
	}
	if newH < 1 {
		newH = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, newW, newH))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
	return dst
}
