package controller

import (
	"sync"

	"github.com/uttarakargayathri/Style-Sense-GEN-AI/internal/preview"
)

// ViewModel is a snapshot of every UI role the controller drives.
type ViewModel struct {
	DropZoneVisible bool
	FileInputValue  string

	PreviewVisible bool
	Preview        *preview.Image

	ResultsVisible bool
	LoaderVisible  bool
	ContentVisible bool
	Content        string
	ContentIsError bool

	// ScrollSeq increases every time the results area asks to be scrolled
	// into view.
	ScrollSeq int
}

// View holds the view model and notifies subscribers after every setter.
type View struct {
	mu     sync.Mutex
	model  ViewModel
	nextID int
	subs   map[int]func(ViewModel)
}

func NewView() *View {
	return &View{
		model: ViewModel{DropZoneVisible: true},
		subs:  make(map[int]func(ViewModel)),
	}
}

func (v *View) Snapshot() ViewModel {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.snapshotLocked()
}

// Subscribe registers fn for every change. Subscribers are called without
// the view lock held and must not block.
func (v *View) Subscribe(fn func(ViewModel)) (unsubscribe func()) {
	v.mu.Lock()
	id := v.nextID
	v.nextID++
	v.subs[id] = fn
	v.mu.Unlock()

	return func() {
		v.mu.Lock()
		delete(v.subs, id)
		v.mu.Unlock()
	}
}

func (v *View) ShowDropZone(visible bool) {
	v.update(func(m *ViewModel) { m.DropZoneVisible = visible })
}

func (v *View) SetFileInput(value string) {
	v.update(func(m *ViewModel) { m.FileInputValue = value })
}

func (v *View) ShowPreview(visible bool) {
	v.update(func(m *ViewModel) { m.PreviewVisible = visible })
}

func (v *View) SetPreview(img *preview.Image) {
	v.update(func(m *ViewModel) { m.Preview = img })
}

func (v *View) ShowResults(visible bool) {
	v.update(func(m *ViewModel) { m.ResultsVisible = visible })
}

func (v *View) ShowLoader(visible bool) {
	v.update(func(m *ViewModel) { m.LoaderVisible = visible })
}

func (v *View) ShowContent(visible bool) {
	v.update(func(m *ViewModel) { m.ContentVisible = visible })
}

func (v *View) SetContent(content string) {
	v.update(func(m *ViewModel) {
		m.Content = content
		m.ContentIsError = false
	})
}

func (v *View) SetErrorContent(content string) {
	v.update(func(m *ViewModel) {
		m.Content = content
		m.ContentIsError = true
	})
}

func (v *View) ScrollResultsIntoView() {
	v.update(func(m *ViewModel) { m.ScrollSeq++ })
}

func (v *View) update(fn func(*ViewModel)) {
	v.mu.Lock()
	fn(&v.model)
	snap := v.snapshotLocked()
	subs := make([]func(ViewModel), 0, len(v.subs))
	for _, s := range v.subs {
		subs = append(subs, s)
	}
	v.mu.Unlock()

	for _, s := range subs {
		s(snap)
	}
}

func (v *View) snapshotLocked() ViewModel {
	snap := v.model
	if snap.Preview != nil {
		img := *snap.Preview
		snap.Preview = &img
	}
	return snap
}
