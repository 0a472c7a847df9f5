// Package render turns analysis text into what the results pane shows.
package render

import (
	"fmt"
	"log"

	"github.com/charmbracelet/glamour"
	"github.com/uttarakargayathri/Style-Sense-GEN-AI/internal/config"
)

type Renderer interface {
	Name() string
	Render(text string) (string, error)
}

// Plain inserts the text verbatim.
type Plain struct{}

func (Plain) Name() string { return config.RendererPlain }

func (Plain) Render(text string) (string, error) { return text, nil }

// Markdown renders lightweight markup for the terminal.
type Markdown struct {
	term *glamour.TermRenderer
}

// NewMarkdown builds a glamour renderer. style is a glamour standard style
// name ("dark", "light", "notty", ...) or "auto" to follow the terminal.
func NewMarkdown(style string, wordWrap int) (*Markdown, error) {
	opts := []glamour.TermRendererOption{
		glamour.WithWordWrap(wordWrap),
	}
	if style == "" || style == "auto" {
		opts = append(opts, glamour.WithAutoStyle())
	} else {
		opts = append(opts, glamour.WithStandardStyle(style))
	}

	term, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return nil, fmt.Errorf("markdown renderer: %w", err)
	}
	return &Markdown{term: term}, nil
}

func (m *Markdown) Name() string { return config.RendererMarkdown }

func (m *Markdown) Render(text string) (string, error) {
	return m.term.Render(text)
}

// Resolve picks the renderer once at startup. In auto mode a markdown
// renderer that cannot be built falls back to Plain.
func Resolve(mode, style string, wordWrap int, logger *log.Logger) (Renderer, error) {
	switch mode {
	case config.RendererPlain:
		return Plain{}, nil
	case config.RendererMarkdown:
		return NewMarkdown(style, wordWrap)
	case config.RendererAuto, "":
		md, err := NewMarkdown(style, wordWrap)
		if err != nil {
			if logger != nil {
				logger.Printf("markdown unavailable, using plain text: %v\n", err)
			}
			return Plain{}, nil
		}
		return md, nil
	default:
		return nil, fmt.Errorf("unsupported renderer {%s}", mode)
	}
}
