package interact

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ziadkadry99/docpage/internal/render"
)

// DefaultCopyWindow is how long a control shows its copied label.
const DefaultCopyWindow = 2 * time.Second

// Clipboard writes text to the user's clipboard.
type Clipboard interface {
	WriteText(ctx context.Context, text string) error
}

// CopyControl is the copy button of one preformatted block.
type CopyControl struct {
	block     int
	text      string
	clipboard Clipboard
	window    time.Duration
	onLabel   func(block int, label string)

	mu    sync.Mutex
	label string
	gen   uint64
	timer *time.Timer
}

// NewCopyControl creates a control for snippet. onLabel, if set, is called
// with every label change, in order.
func NewCopyControl(snippet render.Snippet, cb Clipboard, window time.Duration, onLabel func(block int, label string)) *CopyControl {
	if window <= 0 {
		window = DefaultCopyWindow
	}
	return &CopyControl{
		block:     snippet.Block,
		text:      snippet.Text,
		clipboard: cb,
		window:    window,
		onLabel:   onLabel,
		label:     render.CopyLabel,
	}
}

// Label returns the control's current label.
func (c *CopyControl) Label() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.label
}

// Activate writes the snippet to the clipboard and shows the copied label
// for the control's window. Activating again restarts the window. When the
// write fails the label is left unchanged.
func (c *CopyControl) Activate(ctx context.Context) error {
	if err := c.clipboard.WriteText(ctx, c.text); err != nil {
		return fmt.Errorf("%w: block %d: %v", ErrClipboard, c.block, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.gen++
	gen := c.gen
	if c.timer != nil {
		c.timer.Stop()
	}
	c.setLabel(render.CopiedLabel)
	c.timer = time.AfterFunc(c.window, func() { c.revert(gen) })
	return nil
}

func (c *CopyControl) revert(gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen {
		return
	}
	c.timer = nil
	c.setLabel(render.CopyLabel)
}

// setLabel must be called with c.mu held.
func (c *CopyControl) setLabel(label string) {
	if c.label == label {
		return
	}
	c.label = label
	if c.onLabel != nil {
		c.onLabel(c.block, label)
	}
}

// Stop cancels a pending revert.
func (c *CopyControl) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gen++
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}
