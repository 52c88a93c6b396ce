package interact

import (
	"net/url"
	"strings"
	"sync"
	"time"
)

// DefaultDeepLinkDelay lets layout settle before the initial scroll.
const DefaultDeepLinkDelay = 100 * time.Millisecond

// Scroller brings an element of the page into view.
type Scroller interface {
	ScrollTo(id string, replaceHash bool) error
}

// Navigator performs the one-time scroll to the URL fragment present when
// the page loaded.
type Navigator struct {
	has      func(id string) bool
	delay    time.Duration
	scroller Scroller
	onError  func(error)

	once  sync.Once
	mu    sync.Mutex
	timer *time.Timer
}

// NewNavigator creates a Navigator. has reports whether the rendered page
// contains an element with a given id.
func NewNavigator(has func(id string) bool, scroller Scroller, delay time.Duration, onError func(error)) *Navigator {
	if delay < 0 {
		delay = DefaultDeepLinkDelay
	}
	return &Navigator{has: has, delay: delay, scroller: scroller, onError: onError}
}

// FragmentID strips the leading '#' from a URL fragment and decodes it.
func FragmentID(fragment string) string {
	id := strings.TrimPrefix(fragment, "#")
	if decoded, err := url.PathUnescape(id); err == nil {
		return decoded
	}
	return id
}

// Navigate schedules a smooth scroll to the fragment's element after the
// navigator's delay. Only the first call per Navigator has any effect; it
// returns the target id and whether one was found.
func (n *Navigator) Navigate(fragment string) (string, bool) {
	var (
		target string
		found  bool
	)
	n.once.Do(func() {
		id := FragmentID(fragment)
		if id == "" || !n.has(id) {
			return
		}
		target, found = id, true

		n.mu.Lock()
		defer n.mu.Unlock()
		n.timer = time.AfterFunc(n.delay, func() {
			if err := n.scroller.ScrollTo(id, false); err != nil && n.onError != nil {
				n.onError(err)
			}
		})
	})
	return target, found
}

// Stop cancels a scroll that has not happened yet.
func (n *Navigator) Stop() {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.timer != nil {
		n.timer.Stop()
	}
}
