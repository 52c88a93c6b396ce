// Package interact holds the per-page interaction state of a rendered
// document: copy controls, the active table-of-contents section and the
// initial deep link. The page script reports browser events; a Session turns
// them into state changes and answers with commands.
package interact

import "errors"

var (
	ErrUnknownEvent  = errors.New("unknown event type")
	ErrUnknownBlock  = errors.New("unknown code block")
	ErrUnknownTarget = errors.New("unknown navigation target")
	ErrClipboard     = errors.New("clipboard write failed")
)

// Event types sent by the page script.
const (
	EventHello     = "hello"
	EventVisible   = "visible"
	EventNavigate  = "navigate"
	EventCopy      = "copy"
	EventClipboard = "clipboard"
)

// Command types sent to the page script.
const (
	CommandActive    = "active"
	CommandScroll    = "scroll"
	CommandClipboard = "clipboard"
	CommandLabel     = "label"
)

// Event is a message from the page.
type Event struct {
	Type  string `json:"type"`
	Hash  string `json:"hash,omitempty"`  // hello: location.hash at load
	ID    string `json:"id,omitempty"`    // visible, navigate: heading id
	Block int    `json:"block,omitempty"` // copy: block index
	Seq   uint64 `json:"seq,omitempty"`   // clipboard: request sequence
	OK    bool   `json:"ok,omitempty"`    // clipboard: write outcome
}

// Command is a message to the page.
type Command struct {
	Type        string `json:"type"`
	ID          string `json:"id,omitempty"`
	Smooth      bool   `json:"smooth,omitempty"`
	ReplaceHash bool   `json:"replace_hash,omitempty"`
	Block       int    `json:"block"`
	Label       string `json:"label,omitempty"`
	Seq         uint64 `json:"seq,omitempty"`
	Text        string `json:"text,omitempty"`
}

// Outbox delivers commands to the page. Implementations must be safe for
// concurrent use.
type Outbox interface {
	Send(cmd Command) error
}
