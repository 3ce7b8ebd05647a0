package imaging

import (
	"bytes"
	"image"
	"image/png"
	"testing"
)

// encodePNG renders a blank PNG of the given size.
func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))); err != nil {
		t.Fatalf("encoding test PNG: %v", err)
	}
	return buf.Bytes()
}

func TestProcessSmallImagePassthrough(t *testing.T) {
	data := encodePNG(t, 10, 10)

	result, err := Process(data)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if result.MIME != "image/png" {
		t.Errorf("expected image/png, got %q", result.MIME)
	}
	if !bytes.Equal(result.Data, data) {
		t.Error("expected small image to pass through unchanged")
	}
}

func TestProcessDownscalesOversized(t *testing.T) {
	data := encodePNG(t, MaxDimension*2, 100)

	result, err := Process(data)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}

	img, _, err := image.Decode(bytes.NewReader(result.Data))
	if err != nil {
		t.Fatalf("decoding result: %v", err)
	}
	bounds := img.Bounds()
	if bounds.Dx() > MaxDimension || bounds.Dy() > MaxDimension {
		t.Errorf("expected downscale within %d, got %dx%d", MaxDimension, bounds.Dx(), bounds.Dy())
	}
	if bounds.Dx() != MaxDimension {
		t.Errorf("expected width %d, got %d", MaxDimension, bounds.Dx())
	}
}

func TestProcessRejectsNonImage(t *testing.T) {
	if _, err := Process([]byte("definitely not an image")); err == nil {
		t.Error("expected error for non-image data")
	}
}

func TestProcessRejectsCorruptWEBP(t *testing.T) {
	// Bytes that sniff as WEBP but do not decode.
	data := []byte("RIFF\x24\x00\x00\x00WEBPVP8 garbage that is not a frame")
	if _, err := Process(data); err == nil {
		t.Error("expected error for corrupt WEBP data")
	}
}
