// Package tui is the terminal front end for the upload-and-analyze
// controller. It only reads the controller's view model; every state change
// goes through controller operations run as commands.
package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/uttarakargayathri/Style-Sense-GEN-AI/internal/controller"
)

// opDoneMsg reports the end of a controller operation. Outcomes already
// reach the view model, so the error is only kept for the status line.
type opDoneMsg struct {
	op  string
	err error
}

type Model struct {
	ctrl     *controller.Controller
	bridge   *Bridge
	endpoint string

	ctx    context.Context
	cancel context.CancelFunc

	vm         controller.ViewModel
	lastScroll int

	input    textinput.Model
	picker   filepicker.Model
	browsing bool
	spinner  spinner.Model
	results  viewport.Model

	alert    string
	status   string
	width    int
	height   int
	quitting bool
}

func New(ctrl *controller.Controller, bridge *Bridge, endpoint string) *Model {
	input := textinput.New()
	input.Placeholder = "drop an outfit photo here, or type its path"
	input.Prompt = "› "
	input.CharLimit = 4096
	input.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(accent)

	ctx, cancel := context.WithCancel(context.Background())

	return &Model{
		ctrl:     ctrl,
		bridge:   bridge,
		endpoint: endpoint,
		ctx:      ctx,
		cancel:   cancel,
		vm:       ctrl.View().Snapshot(),
		input:    input,
		spinner:  sp,
		results:  viewport.New(80, 16),
	}
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		m.spinner.Tick,
		m.bridge.waitForChange(),
		m.bridge.waitForAlert(),
	)
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = max(msg.Width-8, 20)
		m.results.Width = max(msg.Width-4, 20)
		m.results.Height = max(msg.Height-16, 6)
		return m, nil

	case viewChangedMsg:
		m.syncView()
		return m, m.bridge.waitForChange()

	case alertMsg:
		m.alert = msg.text
		return m, m.bridge.waitForAlert()

	case opDoneMsg:
		m.status = ""
		if msg.err != nil {
			m.status = fmt.Sprintf("%s: %v", msg.op, msg.err)
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m.quit()
		}
		if m.alert != "" {
			m.alert = ""
			return m, nil
		}
		if m.browsing {
			return m.updatePicker(msg)
		}
		if m.vm.DropZoneVisible {
			return m.updateDropZone(msg)
		}
		return m.updatePreview(msg)
	}

	if m.browsing {
		var cmd tea.Cmd
		m.picker, cmd = m.picker.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) updateDropZone(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return m.quit()
	case "ctrl+o":
		return m, m.openPicker()
	case "enter":
		path := cleanDroppedPath(m.input.Value())
		if path == "" {
			return m, nil
		}
		return m, m.acquire(path)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) updatePreview(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		return m.quit()
	case "a", "enter":
		return m, m.analyze()
	case "r":
		return m, m.reset()
	case "o", "ctrl+o":
		return m, m.openPicker()
	}

	if m.vm.ResultsVisible && m.vm.ContentVisible {
		var cmd tea.Cmd
		m.results, cmd = m.results.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) updatePicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "esc" {
		m.browsing = false
		return m, nil
	}

	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)

	if ok, path := m.picker.DidSelectFile(msg); ok {
		m.browsing = false
		return m, tea.Batch(cmd, m.acquire(path))
	}
	// the controller owns rejection, so disallowed picks go through it too
	if ok, path := m.picker.DidSelectDisabledFile(msg); ok {
		m.browsing = false
		return m, tea.Batch(cmd, m.acquire(path))
	}
	return m, cmd
}

func (m *Model) openPicker() tea.Cmd {
	fp := filepicker.New()
	fp.AllowedTypes = imageExtensions
	fp.ShowHidden = false
	fp.AutoHeight = false
	fp.Height = max(m.height-10, 8)
	if dir, err := os.Getwd(); err == nil {
		fp.CurrentDirectory = dir
	}
	m.picker = fp
	m.browsing = true
	return m.picker.Init()
}

func (m *Model) acquire(path string) tea.Cmd {
	m.status = "reading " + path
	return func() tea.Msg {
		return opDoneMsg{op: "acquire", err: reportable(m.ctrl.AcquirePath(path))}
	}
}

func (m *Model) analyze() tea.Cmd {
	m.status = ""
	ctx := m.ctx
	return func() tea.Msg {
		// failures are rendered inline by the controller
		_ = m.ctrl.Analyze(ctx)
		return opDoneMsg{op: "analyze"}
	}
}

func (m *Model) reset() tea.Cmd {
	return func() tea.Msg {
		m.ctrl.Reset()
		return opDoneMsg{op: "reset"}
	}
}

// reportable drops errors the user has already seen as an alert.
func reportable(err error) error {
	switch {
	case err == nil,
		errors.Is(err, controller.ErrNotImage),
		errors.Is(err, controller.ErrUnreadable),
		errors.Is(err, controller.ErrStale):
		return nil
	}
	return err
}

func (m *Model) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	m.cancel()
	return m, tea.Quit
}

func (m *Model) syncView() {
	m.vm = m.ctrl.View().Snapshot()

	if m.vm.FileInputValue == "" && m.input.Value() != "" {
		m.input.Reset()
	}
	if m.vm.DropZoneVisible {
		m.input.Focus()
	} else {
		m.input.Blur()
	}

	content := m.vm.Content
	if m.vm.ContentIsError {
		content = errorStyle.Render(content)
	}
	m.results.SetContent(content)

	if m.vm.ScrollSeq != m.lastScroll {
		m.lastScroll = m.vm.ScrollSeq
		m.results.GotoTop()
	}
}

func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("StyleSense · outfit analysis"))
	b.WriteString("\n")

	if m.alert != "" {
		b.WriteString(alertStyle.Render("! " + m.alert))
		b.WriteString(helpStyle.Render("  press any key"))
		b.WriteString("\n\n")
	}

	switch {
	case m.browsing:
		b.WriteString(dropZoneStyle.Render("Choose an image\n\n" + m.picker.View()))
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("enter select · esc cancel"))
		return b.String()
	case m.vm.DropZoneVisible:
		b.WriteString(dropZoneStyle.Render("Drag an outfit photo onto this window\nor press ctrl+o to browse\n\n" + m.input.View()))
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("enter load · ctrl+o browse · esc quit"))
	case m.vm.PreviewVisible:
		b.WriteString(m.previewView())
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("a analyze · r reset · o open another · ↑/↓ scroll · q quit"))
	}
	b.WriteString("\n")

	if m.vm.ResultsVisible {
		b.WriteString("\n")
		b.WriteString(m.resultsView())
		b.WriteString("\n")
	}

	if m.status != "" {
		b.WriteString(helpStyle.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render("endpoint " + m.endpoint))
	return b.String()
}

func (m *Model) previewView() string {
	img := m.vm.Preview
	if img == nil {
		return previewStyle.Render("loading preview…")
	}

	dims := "unknown"
	if img.HasDimensions() {
		dims = fmt.Sprintf("%d × %d px", img.Width, img.Height)
	}

	rows := []string{
		labelStyle.Render("file") + img.Name,
		labelStyle.Render("type") + img.MediaType,
		labelStyle.Render("format") + img.Format,
		labelStyle.Render("size") + humanize.Bytes(uint64(img.Size)),
		labelStyle.Render("dimensions") + dims,
	}
	return previewStyle.Render(strings.Join(rows, "\n"))
}

func (m *Model) resultsView() string {
	switch {
	case m.vm.LoaderVisible:
		return resultsStyle.Render(m.spinner.View() + " Analyzing your outfit…")
	case m.vm.ContentVisible:
		return resultsStyle.Render(m.results.View())
	default:
		return ""
	}
}

// Run starts the terminal UI and blocks until the user quits.
func Run(ctrl *controller.Controller, bridge *Bridge, endpoint string) error {
	defer bridge.Close()

	p := tea.NewProgram(New(ctrl, bridge, endpoint), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
