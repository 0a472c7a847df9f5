package models

import "fmt"

// AnalyzeRequest is the image the service sends to the model
type AnalyzeRequest struct {
	FileName  string
	MediaType string
	Data      []byte
}

func (r AnalyzeRequest) Validate() error {
	if len(r.Data) == 0 {
		return fmt.Errorf("file is empty")
	}
	if r.FileName == "" {
		return fmt.Errorf("file name is empty")
	}
	if !IsImageType(r.MediaType) {
		return fmt.Errorf("unsupported media type {%s}", r.MediaType)
	}
	return nil
}

// AnalyzeResponse is the body of a successful /analyze call.
// Analysis is a pointer so clients can tell a missing field from an empty one.
type AnalyzeResponse struct {
	Analysis *string `json:"analysis" example:"## Key pieces\n- Denim jacket"`
}

// WelcomeResponse is returned from the API root
type WelcomeResponse struct {
	Message string `json:"message" example:"Welcome to StyleSense API."`
}

type StreamChunk struct {
	Delta string `json:"delta,omitempty"`
	Done  bool   `json:"-"`
	Err   error  `json:"-"`
}
