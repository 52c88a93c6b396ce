package interact

import (
	"context"
	"sync"

	"github.com/ziadkadry99/docpage/internal/render"
)

// RootMargin is the viewport margin the page script observes headings with.
// It ignores the bottom 60% of the viewport so headings near the top win.
const RootMargin = "0px 0px -60% 0px"

// EntryState is a table-of-contents entry with its active mark.
type EntryState struct {
	ID     string
	Active bool
}

// Tracker keeps the active section of a table of contents. It subscribes to
// the entries' headings and consumes "entered view" events in arrival order
// on a single goroutine; that goroutine is the only writer of the active id.
type Tracker struct {
	order    []string
	targets  map[string]struct{}
	events   chan string
	onChange func(id string)

	mu     sync.RWMutex
	active string
}

// NewTracker subscribes to the headings of entries. onChange, if set, is
// called from Run whenever the active section changes.
func NewTracker(entries []render.TocEntry, onChange func(id string)) *Tracker {
	t := &Tracker{
		targets:  make(map[string]struct{}, len(entries)),
		events:   make(chan string, 64),
		onChange: onChange,
	}
	for _, e := range entries {
		if e.ID == "" {
			continue
		}
		t.order = append(t.order, e.ID)
		t.targets[e.ID] = struct{}{}
	}
	return t
}

// Tracks reports whether id is one of the subscribed headings.
func (t *Tracker) Tracks(id string) bool {
	_, ok := t.targets[id]
	return ok
}

// Enter queues an "entered view" event. Events for headings outside the
// subscription are dropped and reported as false.
func (t *Tracker) Enter(ctx context.Context, id string) bool {
	if !t.Tracks(id) {
		return false
	}
	select {
	case t.events <- id:
		return true
	case <-ctx.Done():
		return false
	}
}

// Run consumes events until ctx is done.
func (t *Tracker) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case id := <-t.events:
			t.activate(id)
		}
	}
}

func (t *Tracker) activate(id string) {
	t.mu.Lock()
	if t.active == id {
		t.mu.Unlock()
		return
	}
	t.active = id
	t.mu.Unlock()

	if t.onChange != nil {
		t.onChange(id)
	}
}

// Active returns the id of the active section, or "" before any event.
func (t *Tracker) Active() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.active
}

// Entries returns every subscribed entry with exactly the active one marked.
func (t *Tracker) Entries() []EntryState {
	active := t.Active()
	out := make([]EntryState, len(t.order))
	for i, id := range t.order {
		out[i] = EntryState{ID: id, Active: id == active}
	}
	return out
}
