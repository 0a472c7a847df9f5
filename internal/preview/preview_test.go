package preview

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/uttarakargayathri/Style-Sense-GEN-AI/internal/models"
)

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestDecode(t *testing.T) {
	data := encodePNG(t, 3, 2)

	got, err := Decode(models.File{Name: "photo.png", MediaType: "image/png", Data: data})
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	if got.Format != "png" {
		t.Errorf("format: got %s, want png", got.Format)
	}
	if got.Width != 3 || got.Height != 2 {
		t.Errorf("dimensions: got %dx%d, want 3x2", got.Width, got.Height)
	}
	if !strings.HasPrefix(got.DataURL, "data:image/png;base64,") {
		t.Errorf("data url: got %.40s", got.DataURL)
	}
	if got.Size != int64(len(data)) {
		t.Errorf("size: got %d", got.Size)
	}
	if got.String() != "photo.png (image/png, 3x2)" {
		t.Errorf("String: got %s", got.String())
	}
}

func TestDecodeUnknownFormat(t *testing.T) {
	svg := []byte(`<svg xmlns="http://www.w3.org/2000/svg"/>`)

	got, err := Decode(models.File{Name: "logo.svg", MediaType: "image/svg+xml", Data: svg})
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got.HasDimensions() {
		t.Errorf("svg should have no dimensions, got %dx%d", got.Width, got.Height)
	}
	if got.Format != "svg+xml" {
		t.Errorf("format: got %s", got.Format)
	}
	if got.DataURL != DataURL("image/svg+xml", svg) {
		t.Errorf("data url mismatch")
	}
}

func TestDecodeErrors(t *testing.T) {
	if _, err := Decode(models.File{Name: "a.png", MediaType: "image/png"}); !errors.Is(err, ErrEmpty) {
		t.Errorf("empty: got %v, want ErrEmpty", err)
	}

	truncated := encodePNG(t, 4, 4)[:12]
	if _, err := Decode(models.File{Name: "a.png", MediaType: "image/png", Data: truncated}); err == nil {
		t.Error("truncated png should fail")
	}
}
