package tui

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/uttarakargayathri/Style-Sense-GEN-AI/internal/controller"
	"github.com/uttarakargayathri/Style-Sense-GEN-AI/internal/models"
	"github.com/uttarakargayathri/Style-Sense-GEN-AI/internal/render"
)

type stubAnalyzer struct {
	text string
	err  error
}

func (s stubAnalyzer) Analyze(context.Context, models.File) (string, error) {
	return s.text, s.err
}

func TestCleanDroppedPath(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "/tmp/photo.png", want: "/tmp/photo.png"},
		{in: "  /tmp/photo.png \n", want: "/tmp/photo.png"},
		{in: "'/tmp/my photo.png'", want: "/tmp/my photo.png"},
		{in: `"/tmp/my photo.png"`, want: "/tmp/my photo.png"},
		{in: `/tmp/my\ photo\ \(1\).png`, want: "/tmp/my photo (1).png"},
		{in: "file:///tmp/my%20photo.png", want: "/tmp/my photo.png"},
		{in: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := cleanDroppedPath(tt.in); got != tt.want {
				t.Errorf("cleanDroppedPath(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestBridge(t *testing.T) {
	view := controller.NewView()
	b := NewBridge(view)
	defer b.Close()

	view.ShowResults(true)
	view.ShowLoader(true)
	view.ShowContent(false)

	select {
	case msg := <-runCmd(b.waitForChange()):
		if _, ok := msg.(viewChangedMsg); !ok {
			t.Fatalf("got %T, want viewChangedMsg", msg)
		}
	case <-time.After(time.Second):
		t.Fatal("no change signal")
	}

	select {
	case <-b.changed:
		t.Error("changes should be coalesced into one signal")
	default:
	}

	b.Alert("Please upload an image file.")
	msg := b.waitForAlert()()
	if a, ok := msg.(alertMsg); !ok || a.text != "Please upload an image file." {
		t.Errorf("alert: got %#v", msg)
	}
}

func runCmd(cmd tea.Cmd) <-chan tea.Msg {
	ch := make(chan tea.Msg, 1)
	go func() { ch <- cmd() }()
	return ch
}

func writePNG(t *testing.T, dir, name string) string {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 6, 4))); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, buf.Bytes(), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func newTestModel(t *testing.T, analyzer controller.Analyzer) (*Model, *controller.Controller) {
	t.Helper()
	view := controller.NewView()
	bridge := NewBridge(view)
	t.Cleanup(bridge.Close)

	ctrl := controller.New(view, analyzer, render.Plain{}, controller.WithAlerter(bridge))
	m := New(ctrl, bridge, "http://127.0.0.1:8000/analyze")
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return m, ctrl
}

func press(m *Model, key string) tea.Cmd {
	var msg tea.KeyMsg
	switch key {
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
	_, cmd := m.Update(msg)
	return cmd
}

func TestDropAnalyzeReset(t *testing.T) {
	m, ctrl := newTestModel(t, stubAnalyzer{text: "Sharp denim look."})
	path := writePNG(t, t.TempDir(), "look.png")

	m.input.SetValue("'" + path + "'")
	cmd := press(m, "enter")
	if cmd == nil {
		t.Fatal("enter should start loading the file")
	}
	if done, ok := cmd().(opDoneMsg); !ok || done.err != nil {
		t.Fatalf("acquire: got %#v", done)
	}
	m.Update(viewChangedMsg{})

	if ctrl.State() != controller.StatePreviewing {
		t.Fatalf("state: got %s", ctrl.State())
	}
	if out := m.View(); !strings.Contains(out, "look.png") || !strings.Contains(out, "6 × 4 px") {
		t.Errorf("preview view missing file details:\n%s", out)
	}

	cmd = press(m, "a")
	cmd()
	m.Update(viewChangedMsg{})

	if ctrl.State() != controller.StateResultsShown {
		t.Fatalf("state: got %s", ctrl.State())
	}
	if out := m.View(); !strings.Contains(out, "Sharp denim look.") {
		t.Errorf("results missing:\n%s", out)
	}

	cmd = press(m, "r")
	cmd()
	m.Update(viewChangedMsg{})

	if ctrl.State() != controller.StateIdle {
		t.Fatalf("state: got %s", ctrl.State())
	}
	if m.input.Value() != "" {
		t.Errorf("input should be cleared, got %q", m.input.Value())
	}
	if out := m.View(); !strings.Contains(out, "Drag an outfit photo") {
		t.Errorf("drop zone missing:\n%s", out)
	}
}

func TestRejectedFileShowsAlert(t *testing.T) {
	m, ctrl := newTestModel(t, stubAnalyzer{text: "unused"})
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.pdf")
	if err := os.WriteFile(path, []byte("%PDF-1.4"), 0o600); err != nil {
		t.Fatal(err)
	}

	m.input.SetValue(path)
	done := press(m, "enter")().(opDoneMsg)
	if done.err != nil {
		t.Errorf("rejection should not be reported twice: %v", done.err)
	}

	m.Update(m.bridge.waitForAlert()())
	if out := m.View(); !strings.Contains(out, controller.AlertNotImage) {
		t.Errorf("alert missing:\n%s", out)
	}
	if ctrl.State() != controller.StateIdle {
		t.Errorf("state: got %s", ctrl.State())
	}

	press(m, "x")
	if m.alert != "" {
		t.Error("any key should dismiss the alert")
	}
}

func TestErrorContentIsShown(t *testing.T) {
	m, _ := newTestModel(t, stubAnalyzer{err: context.DeadlineExceeded})
	path := writePNG(t, t.TempDir(), "look.png")

	m.input.SetValue(path)
	press(m, "enter")()
	press(m, "a")()
	m.Update(viewChangedMsg{})

	if out := m.View(); !strings.Contains(out, "Error: context deadline exceeded. Please try again.") {
		t.Errorf("error content missing:\n%s", out)
	}
}
