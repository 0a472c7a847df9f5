package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/uttarakargayathri/Style-Sense-GEN-AI/internal/controller"
)

type viewChangedMsg struct{}

type alertMsg struct {
	text string
}

// Bridge carries view changes and alerts from the controller into the
// bubbletea event loop. View changes are coalesced: the model re-reads the
// snapshot, so one pending signal is enough.
type Bridge struct {
	changed     chan struct{}
	alerts      chan string
	unsubscribe func()
}

func NewBridge(view *controller.View) *Bridge {
	b := &Bridge{
		changed: make(chan struct{}, 1),
		alerts:  make(chan string, 8),
	}
	b.unsubscribe = view.Subscribe(func(controller.ViewModel) {
		select {
		case b.changed <- struct{}{}:
		default:
		}
	})
	return b
}

// Alert implements controller.Alerter.
func (b *Bridge) Alert(message string) {
	select {
	case b.alerts <- message:
	default:
	}
}

func (b *Bridge) Close() {
	b.unsubscribe()
}

func (b *Bridge) waitForChange() tea.Cmd {
	return func() tea.Msg {
		<-b.changed
		return viewChangedMsg{}
	}
}

func (b *Bridge) waitForAlert() tea.Cmd {
	return func() tea.Msg {
		return alertMsg{text: <-b.alerts}
	}
}
