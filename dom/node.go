// Package dom defines the document capabilities glint needs from a page and
// provides an in-memory implementation backed by golang.org/x/net/html.
//
// Components never assume a node exists: every query may return nil and every
// caller treats nil as "nothing to do". The in-memory Document serialises all
// access behind a single lock so timer callbacks running on other goroutines
// can mutate the tree safely.
package dom

// Node is an element in a page.
//
// Query and Closest return nil (the untyped interface value) when nothing
// matches.
type Node interface {
	Tag() string
	Parent() Node
	FirstChild() Node
	Children() []Node
	AppendChild(child Node)
	InsertBefore(child, ref Node)
	Remove()

	Query(selector string) Node
	QueryAll(selector string) []Node
	Closest(selector string) Node

	HasClass(name string) bool
	AddClass(names ...string)
	RemoveClass(names ...string)
	ToggleClass(name string) bool
	ClassName() string
	SetClassName(className string)

	Attr(name string) (string, bool)
	SetAttr(name, value string)
	RemoveAttr(name string)

	Text() string
	SetText(text string)
	Value() string
	SetValue(value string)
	Disabled() bool
	SetDisabled(disabled bool)

	Style(property string) string
	SetStyle(property, value string)
	Rect() Rect

	AddEventListener(eventType string, fn Listener)
	Submit()
}

// Document is the page root plus the window-level surface (viewport size,
// window events, viewport intersection).
type Document interface {
	Body() Node
	Query(selector string) Node
	QueryAll(selector string) []Node
	CreateElement(tag string) Node

	// AddEventListener registers a document or window level listener
	// (keydown, mousedown, resize).
	AddEventListener(eventType string, fn Listener)

	ViewportWidth() float64

	// Observe calls fn once, the first time n intersects the viewport.
	Observe(n Node, fn func(Node))
}

// Rect is an element's bounding box in client coordinates.
type Rect struct {
	Left   float64
	Top    float64
	Width  float64
	Height float64
}

// Event is a DOM event delivered to a Listener.
type Event struct {
	Type    string
	Target  Node
	Key     string
	ClientX float64
	ClientY float64
}

// Listener handles a dispatched event.
type Listener func(e *Event)

// Event types used by glint.
const (
	EventInput     = "input"
	EventFocus     = "focus"
	EventBlur      = "blur"
	EventClick     = "click"
	EventKeyDown   = "keydown"
	EventMouseDown = "mousedown"
	EventResize    = "resize"
	EventSubmit    = "submit"
)

// bubbles reports whether events of this type propagate to ancestors and
// the document.
func bubbles(eventType string) bool {
	switch eventType {
	case EventFocus, EventBlur, EventResize:
		return false
	default:
		return true
	}
}
