// Package controller implements the upload-and-analyze flow: acquire an
// image, preview it, send it for analysis and show the rendered result.
package controller

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"sync"

	"github.com/google/uuid"
	"github.com/uttarakargayathri/Style-Sense-GEN-AI/internal/models"
	"github.com/uttarakargayathri/Style-Sense-GEN-AI/internal/preview"
	"github.com/uttarakargayathri/Style-Sense-GEN-AI/internal/render"
)

const (
	AlertNotImage   = "Please upload an image file."
	AlertUnreadable = "Could not read image file."
)

var (
	ErrNotImage   = errors.New("not an image file")
	ErrUnreadable = errors.New("unreadable image file")
	// ErrStale is returned by an operation whose outcome was dropped because
	// a newer Acquire, Reset or Analyze happened first.
	ErrStale = errors.New("superseded by a newer action")
)

type Analyzer interface {
	Analyze(ctx context.Context, f models.File) (string, error)
}

// Alerter shows a blocking notification to the user.
type Alerter interface {
	Alert(message string)
}

type AlerterFunc func(message string)

func (f AlerterFunc) Alert(message string) { f(message) }

type Decoder func(f models.File) (preview.Image, error)

type Option func(*Controller)

func WithAlerter(a Alerter) Option {
	return func(c *Controller) { c.alerter = a }
}

func WithDecoder(d Decoder) Option {
	return func(c *Controller) { c.decode = d }
}

func WithLogger(l *log.Logger) Option {
	return func(c *Controller) { c.logger = l }
}

// Controller owns the selected file and drives the View. All methods are
// safe for concurrent use. View subscribers run while the controller lock is
// held and must not call back into the controller.
type Controller struct {
	view     *View
	analyzer Analyzer
	renderer render.Renderer
	alerter  Alerter
	decode   Decoder
	logger   *log.Logger

	mu         sync.Mutex
	state      State
	selected   *models.File
	result     string
	generation uint64
	inflight   uuid.UUID
	cancel     context.CancelFunc
}

func New(view *View, analyzer Analyzer, renderer render.Renderer, opts ...Option) *Controller {
	c := &Controller{
		view:     view,
		analyzer: analyzer,
		renderer: renderer,
		decode:   preview.Decode,
		logger:   log.New(io.Discard, "", 0),
		state:    StateIdle,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.renderer == nil {
		c.renderer = render.Plain{}
	}
	if c.alerter == nil {
		c.alerter = AlerterFunc(func(msg string) { c.logger.Printf("alert: %s\n", msg) })
	}
	return c
}

func (c *Controller) View() *View {
	return c.view
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Selected returns a copy of the selected file.
func (c *Controller) Selected() (models.File, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.selected == nil {
		return models.File{}, false
	}
	return *c.selected, true
}

// Result returns the raw text of the last successful analysis.
func (c *Controller) Result() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.result
}

// AcquirePath reads path from disk and acquires it, the way picking a file in
// a file input does. On acceptance the file input shows path.
func (c *Controller) AcquirePath(path string) error {
	f, err := models.ReadFile(path)
	if err != nil {
		c.logger.Printf("acquire %s: %v\n", path, err)
		c.alerter.Alert(AlertUnreadable)
		return fmt.Errorf("%w: %w", ErrUnreadable, err)
	}
	return c.acquire(f, path)
}

// Acquire stages f as the selected file and switches the view to its
// preview. Non-image files are rejected with an alert and no state change.
func (c *Controller) Acquire(f models.File) error {
	return c.acquire(f, f.Name)
}

func (c *Controller) acquire(f models.File, inputValue string) error {
	if !f.IsImage() {
		c.logger.Printf("rejected %s: media type %q\n", f.Name, f.MediaType)
		c.alerter.Alert(AlertNotImage)
		return ErrNotImage
	}

	c.mu.Lock()
	c.generation++
	gen := c.generation
	c.mu.Unlock()

	img, err := c.decode(f)

	c.mu.Lock()
	if gen != c.generation {
		c.mu.Unlock()
		return ErrStale
	}
	if err != nil {
		c.mu.Unlock()
		c.logger.Printf("decode %s: %v\n", f.Name, err)
		c.alerter.Alert(AlertUnreadable)
		return fmt.Errorf("%w: %w", ErrUnreadable, err)
	}
	defer c.mu.Unlock()

	c.cancelInflightLocked()
	c.selected = &f
	c.result = ""
	c.state = StatePreviewing

	c.view.SetFileInput(inputValue)
	c.view.SetPreview(&img)
	c.view.ShowDropZone(false)
	c.view.ShowPreview(true)
	c.view.ShowResults(false)
	c.view.ShowLoader(false)
	c.view.SetContent("")

	c.logger.Printf("selected %s\n", img.String())
	return nil
}

// Reset drops the selected file and any result and returns to the drop zone.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.generation++
	c.cancelInflightLocked()
	c.selected = nil
	c.result = ""
	c.state = StateIdle

	c.view.SetFileInput("")
	c.view.ShowPreview(false)
	c.view.SetPreview(nil)
	c.view.ShowDropZone(true)
	c.view.ShowResults(false)
	c.view.ShowLoader(false)
	c.view.SetContent("")
}

// Analyze sends the selected file for analysis and blocks until the result
// is shown. Without a selected file it does nothing and returns nil.
// A request overtaken by a newer Analyze, Acquire or Reset is cancelled and
// its outcome dropped with ErrStale.
func (c *Controller) Analyze(ctx context.Context) error {
	c.mu.Lock()
	if c.selected == nil {
		c.mu.Unlock()
		return nil
	}

	c.cancelInflightLocked()
	token := uuid.New()
	reqCtx, cancel := context.WithCancel(ctx)
	c.inflight = token
	c.cancel = cancel
	file := *c.selected
	c.state = StateAnalyzing
	c.result = ""

	c.view.ShowResults(true)
	c.view.ShowLoader(true)
	c.view.ShowContent(false)
	c.view.ScrollResultsIntoView()
	c.mu.Unlock()

	c.logger.Printf("analyze %s token=%s\n", file.Name, token)
	text, err := c.analyzer.Analyze(reqCtx, file)

	c.mu.Lock()
	defer c.mu.Unlock()
	cancel()

	if c.inflight != token {
		c.logger.Printf("dropped stale analysis token=%s\n", token)
		return ErrStale
	}
	c.inflight = uuid.Nil
	c.cancel = nil

	if err != nil {
		c.logger.Printf("analysis failed token=%s: %v\n", token, err)
		c.state = StateErrorShown
		c.view.SetErrorContent(ErrorMessage(err))
		c.view.ShowLoader(false)
		c.view.ShowContent(true)
		return err
	}

	rendered, rerr := c.renderer.Render(text)
	if rerr != nil {
		c.logger.Printf("%s render failed, showing raw text: %v\n", c.renderer.Name(), rerr)
		rendered = text
	}

	c.result = text
	c.state = StateResultsShown
	c.view.SetContent(rendered)
	c.view.ShowLoader(false)
	c.view.ShowContent(true)
	return nil
}

// ErrorMessage is the inline text shown for a failed analysis.
func ErrorMessage(err error) string {
	return fmt.Sprintf("Error: %s. Please try again.", err)
}

func (c *Controller) cancelInflightLocked() {
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.inflight = uuid.Nil
}
