package interact

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/ziadkadry99/docpage/internal/render"
)

// ErrClipboardDenied is returned when the page reports a failed write.
var ErrClipboardDenied = errors.New("clipboard write denied by page")

// Options configures a Session.
type Options struct {
	CopyWindow    time.Duration
	DeepLinkDelay time.Duration
	Logger        *zap.Logger
}

// Session is the interaction state of one page load.
type Session struct {
	page      *render.Page
	out       Outbox
	logger    *zap.Logger
	clipboard *RequestClipboard
	controls  []*CopyControl
	tracker   *Tracker
	navigator *Navigator

	wg sync.WaitGroup
}

// NewSession wires copy controls, the section tracker and the deep-link
// navigator of page to out.
func NewSession(page *render.Page, out Outbox, opts Options) *Session {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.CopyWindow <= 0 {
		opts.CopyWindow = DefaultCopyWindow
	}
	if opts.DeepLinkDelay <= 0 {
		opts.DeepLinkDelay = DefaultDeepLinkDelay
	}

	s := &Session{
		page:      page,
		out:       out,
		logger:    opts.Logger.With(zap.String("slug", page.Slug)),
		clipboard: NewRequestClipboard(out),
	}

	s.controls = make([]*CopyControl, len(page.Snippets))
	for i, snip := range page.Snippets {
		s.controls[i] = NewCopyControl(snip, s.clipboard, opts.CopyWindow, s.sendLabel)
	}
	s.tracker = NewTracker(page.TOC, s.sendActive)
	s.navigator = NewNavigator(page.HasID, s, opts.DeepLinkDelay, func(err error) {
		s.logger.Debug("deep link scroll failed", zap.Error(err))
	})
	return s
}

// Start runs the section tracker until ctx is done.
func (s *Session) Start(ctx context.Context) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.tracker.Run(ctx)
	}()
}

// Close stops pending timers and waits for in-flight work. The context
// passed to Start and Handle must be canceled first.
func (s *Session) Close() {
	s.navigator.Stop()
	for _, c := range s.controls {
		c.Stop()
	}
	s.wg.Wait()
}

// Tracker returns the session's section tracker.
func (s *Session) Tracker() *Tracker { return s.tracker }

// Control returns the copy control of block i.
func (s *Session) Control(i int) (*CopyControl, bool) {
	if i < 0 || i >= len(s.controls) {
		return nil, false
	}
	return s.controls[i], true
}

// Handle applies one event from the page.
func (s *Session) Handle(ctx context.Context, ev Event) error {
	switch ev.Type {
	case EventHello:
		if id, ok := s.navigator.Navigate(ev.Hash); ok {
			s.logger.Debug("deep link", zap.String("id", id))
		}
		return nil

	case EventVisible:
		s.tracker.Enter(ctx, ev.ID)
		return nil

	case EventNavigate:
		if !s.page.HasID(ev.ID) {
			return fmt.Errorf("%w: %q", ErrUnknownTarget, ev.ID)
		}
		return s.out.Send(Command{Type: CommandScroll, ID: ev.ID, Smooth: true, ReplaceHash: true})

	case EventCopy:
		ctrl, ok := s.Control(ev.Block)
		if !ok {
			return fmt.Errorf("%w: %d", ErrUnknownBlock, ev.Block)
		}
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			if err := ctrl.Activate(ctx); err != nil {
				s.logger.Debug("copy failed", zap.Int("block", ev.Block), zap.Error(err))
			}
		}()
		return nil

	case EventClipboard:
		if !s.clipboard.Resolve(ev.Seq, ev.OK) {
			s.logger.Debug("stale clipboard ack", zap.Uint64("seq", ev.Seq))
		}
		return nil

	default:
		return fmt.Errorf("%w: %q", ErrUnknownEvent, ev.Type)
	}
}

// ScrollTo implements Scroller for the initial deep link.
func (s *Session) ScrollTo(id string, replaceHash bool) error {
	return s.out.Send(Command{Type: CommandScroll, ID: id, Smooth: true, ReplaceHash: replaceHash})
}

func (s *Session) sendLabel(block int, label string) {
	if err := s.out.Send(Command{Type: CommandLabel, Block: block, Label: label}); err != nil {
		s.logger.Debug("send label", zap.Error(err))
	}
}

func (s *Session) sendActive(id string) {
	if err := s.out.Send(Command{Type: CommandActive, ID: id}); err != nil {
		s.logger.Debug("send active", zap.Error(err))
	}
}

// RequestClipboard asks the page to write to the browser clipboard and waits
// for its acknowledgement.
type RequestClipboard struct {
	out Outbox

	mu      sync.Mutex
	next    uint64
	pending map[uint64]chan bool
}

func NewRequestClipboard(out Outbox) *RequestClipboard {
	return &RequestClipboard{out: out, pending: make(map[uint64]chan bool)}
}

// WriteText sends a clipboard command and blocks until the page answers or
// ctx is done.
func (c *RequestClipboard) WriteText(ctx context.Context, text string) error {
	c.mu.Lock()
	c.next++
	seq := c.next
	ack := make(chan bool, 1)
	c.pending[seq] = ack
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		delete(c.pending, seq)
		c.mu.Unlock()
	}()

	if err := c.out.Send(Command{Type: CommandClipboard, Seq: seq, Text: text}); err != nil {
		return err
	}

	select {
	case ok := <-ack:
		if !ok {
			return ErrClipboardDenied
		}
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Resolve delivers the page's answer to request seq. It reports false when
// no such request is waiting.
func (c *RequestClipboard) Resolve(seq uint64, ok bool) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	ack, found := c.pending[seq]
	if !found {
		return false
	}
	delete(c.pending, seq)
	ack <- ok
	return true
}
