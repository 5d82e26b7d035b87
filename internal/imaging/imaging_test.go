package imaging

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"strings"
	"testing"
)

func createTestJPEG(w, h int) []byte {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{255, 0, 0, 255})
		}
	}
	var buf bytes.Buffer
	jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90})
	return buf.Bytes()
}

func createTestPNG(w, h int) []byte {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{0, 0, 255, 255})
		}
	}
	var buf bytes.Buffer
	png.Encode(&buf, img)
	return buf.Bytes()
}

func TestProcessJPEG(t *testing.T) {
	data := createTestJPEG(100, 100)
	result, err := Process(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Process JPEG: %v", err)
	}
	if result.MIME != "image/jpeg" {
		t.Errorf("expected image/jpeg, got %s", result.MIME)
	}
	if len(result.Data) == 0 {
		t.Error("expected non-empty data")
	}
}

func TestProcessPNG(t *testing.T) {
	data := createTestPNG(100, 100)
	result, err := Process(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Process PNG: %v", err)
	}
	if result.MIME != "image/jpeg" {
		t.Errorf("expected image/jpeg (always outputs JPEG), got %s", result.MIME)
	}
}

func TestProcessDownscale(t *testing.T) {
	// Create a 2048x2048 image.
	data := createTestJPEG(2048, 2048)
	result, err := Process(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Process large image: %v", err)
	}

	// Decode the result and check dimensions.
	img, _, err := image.Decode(bytes.NewReader(result.Data))
	if err != nil {
		t.Fatalf("decoding result: %v", err)
	}
	bounds := img.Bounds()
	if bounds.Dx() > MaxDimension || bounds.Dy() > MaxDimension {
		t.Errorf("expected max %dx%d, got %dx%d", MaxDimension, MaxDimension, bounds.Dx(), bounds.Dy())
	}
}

func TestProcessSmallImageNotUpscaled(t *testing.T) {
	data := createTestJPEG(50, 50)
	result, err := Process(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Process small image: %v", err)
	}

	img, _, err := image.Decode(bytes.NewReader(result.Data))
	if err != nil {
		t.Fatalf("decoding result: %v", err)
	}
	bounds := img.Bounds()
	if bounds.Dx() != 50 || bounds.Dy() != 50 {
		t.Errorf("small image should not be resized: got %dx%d", bounds.Dx(), bounds.Dy())
	}
}

func TestProcessInvalidFormat(t *testing.T) {
	_, err := Process(bytes.NewReader([]byte("not an image")))
	if err == nil {
		t.Error("expected error for invalid format")
	}
}

func TestProcessOversized(t *testing.T) {
	// Raw bytes over the cap are rejected before decoding.
	big := make([]byte, MaxFileBytes+1)
	copy(big, "\xff\xd8\xff")
	_, err := Process(bytes.NewReader(big))
	if err == nil {
		t.Error("expected error for oversized input")
	}
	if err != nil && !strings.Contains(err.Error(), "less than 5MB") {
		t.Errorf("unexpected error message: %v", err)
	}
}

func TestDataURIRoundTrip(t *testing.T) {
	data := createTestJPEG(10, 10)
	uri := EncodeDataURI(data, "image/jpeg")
	if !strings.HasPrefix(uri, "data:image/jpeg;base64,") {
		t.Fatalf("unexpected URI prefix: %.40s", uri)
	}

	mime, decoded, err := DecodeDataURI(uri)
	if err != nil {
		t.Fatalf("DecodeDataURI: %v", err)
	}
	if mime != "image/jpeg" {
		t.Errorf("expected image/jpeg, got %s", mime)
	}
	if !bytes.Equal(decoded, data) {
		t.Error("decoded payload differs from input")
	}

	size, err := DecodedSize(uri)
	if err != nil {
		t.Fatalf("DecodedSize: %v", err)
	}
	if size != len(data) {
		t.Errorf("expected size %d, got %d", len(data), size)
	}
}

func TestDecodeDataURIMalformed(t *testing.T) {
	for _, uri := range []string{
		"image/jpeg;base64,abcd",
		"data:image/jpeg,abcd",
		"data:image/jpeg;base64",
		"data:image/jpeg;base64,%%%",
	} {
		if _, _, err := DecodeDataURI(uri); err == nil {
			t.Errorf("expected error for %q", uri)
		}
	}
}
