// Package preview turns a selected file into something a view can display.
package preview

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"strings"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/uttarakargayathri/Style-Sense-GEN-AI/internal/models"
)

var ErrEmpty = errors.New("file is empty")

// Image is the decoded, displayable form of a file.
// Width and Height are zero when no decoder is registered for the format.
type Image struct {
	Name      string
	MediaType string
	Size      int64
	DataURL   string
	Format    string
	Width     int
	Height    int
}

func (i Image) HasDimensions() bool {
	return i.Width > 0 && i.Height > 0
}

func (i Image) String() string {
	if !i.HasDimensions() {
		return fmt.Sprintf("%s (%s)", i.Name, i.MediaType)
	}
	return fmt.Sprintf("%s (%s, %dx%d)", i.Name, i.MediaType, i.Width, i.Height)
}

// Decode reads f the way a browser's FileReader.readAsDataURL would and
// probes the image header for its format and dimensions.
func Decode(f models.File) (Image, error) {
	if len(f.Data) == 0 {
		return Image{}, ErrEmpty
	}

	img := Image{
		Name:      f.Name,
		MediaType: f.MediaType,
		Size:      f.Size(),
		DataURL:   DataURL(f.MediaType, f.Data),
		Format:    strings.TrimPrefix(strings.ToLower(f.MediaType), "image/"),
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(f.Data))
	switch {
	case err == nil:
		img.Format = format
		img.Width = cfg.Width
		img.Height = cfg.Height
	case errors.Is(err, image.ErrFormat):
		// no registered decoder, e.g. svg or heic; the data url still previews
	default:
		return Image{}, fmt.Errorf("decode %s: %w", f.Name, err)
	}

	return img, nil
}

func DataURL(mediaType string, data []byte) string {
	return fmt.Sprintf("data:%s;base64,%s", mediaType, base64.StdEncoding.EncodeToString(data))
}
