package models

import (
	"fmt"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// File is an upload candidate: raw bytes with a declared media type and name.
type File struct {
	Name      string
	MediaType string
	Data      []byte
}

// IsImage reports whether the declared media type is an image type.
func (f File) IsImage() bool {
	return IsImageType(f.MediaType)
}

func (f File) Size() int64 {
	return int64(len(f.Data))
}

func IsImageType(mediaType string) bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(mediaType)), "image/")
}

// ReadFile loads path from disk. The media type comes from the extension,
// falling back to content sniffing when the extension is unknown.
func ReadFile(path string) (File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("failed to read file: %w", err)
	}

	return File{
		Name:      filepath.Base(path),
		MediaType: DetectMediaType(path, data),
		Data:      data,
	}, nil
}

func DetectMediaType(name string, data []byte) string {
	if ext := filepath.Ext(name); ext != "" {
		if t := mime.TypeByExtension(strings.ToLower(ext)); t != "" {
			if mediaType, _, err := mime.ParseMediaType(t); err == nil {
				return mediaType
			}
		}
	}

	if len(data) == 0 {
		return "application/octet-stream"
	}
	mediaType, _, err := mime.ParseMediaType(http.DetectContentType(data))
	if err != nil {
		return "application/octet-stream"
	}
	return mediaType
}
