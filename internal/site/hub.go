package site

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ziadkadry99/docpage/internal/render"
)

// DefaultClaimTTL is how long a rendered page waits for its socket.
const DefaultClaimTTL = time.Minute

// Hub hands rendered pages to the socket the page opens after loading.
// Each page can be claimed once.
type Hub struct {
	ttl time.Duration
	now func() time.Time

	mu    sync.Mutex
	pages map[string]hubEntry
}

type hubEntry struct {
	page    *render.Page
	expires time.Time
}

func NewHub(ttl time.Duration) *Hub {
	return &Hub{ttl: ttl, now: time.Now, pages: make(map[string]hubEntry)}
}

// Put parks page and returns the id its socket claims it with.
func (h *Hub) Put(page *render.Page) string {
	id := uuid.NewString()
	now := h.now()

	h.mu.Lock()
	defer h.mu.Unlock()
	for k, e := range h.pages {
		if now.After(e.expires) {
			delete(h.pages, k)
		}
	}
	h.pages[id] = hubEntry{page: page, expires: now.Add(h.ttl)}
	return id
}

// Claim removes and returns the page parked under id.
func (h *Hub) Claim(id string) (*render.Page, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	e, ok := h.pages[id]
	if !ok {
		return nil, false
	}
	delete(h.pages, id)
	if h.now().After(e.expires) {
		return nil, false
	}
	return e.page, true
}

// Len returns the number of unclaimed pages, expired ones included.
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.pages)
}
