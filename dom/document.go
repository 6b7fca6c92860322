package dom

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// DefaultViewportWidth is the viewport width of a freshly parsed HTMLDocument.
const DefaultViewportWidth = 1024

const blankPage = "<!DOCTYPE html><html><head></head><body></body></html>"

// HTMLDocument is an in-memory page. It is safe for concurrent use.
type HTMLDocument struct {
	mu        sync.Mutex
	root      *html.Node
	elements  map[*html.Node]*Element
	listeners map[string][]Listener
	observers map[*html.Node][]func(Node)
	width     float64
}

// Ensure HTMLDocument implements Document.
var _ Document = (*HTMLDocument)(nil)

// New returns an empty page with a head and body.
func New() *HTMLDocument {
	doc, err := Parse(strings.NewReader(blankPage))
	if err != nil {
		// The blank page is a constant; html.Parse only fails on reader errors.
		panic(fmt.Sprintf("dom: blank page: %v", err))
	}
	return doc
}

// Parse builds a Document from server-rendered HTML.
func Parse(r io.Reader) (*HTMLDocument, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse html: %w", err)
	}
	return &HTMLDocument{
		root:      root,
		elements:  make(map[*html.Node]*Element),
		listeners: make(map[string][]Listener),
		observers: make(map[*html.Node][]func(Node)),
		width:     DefaultViewportWidth,
	}, nil
}

// ParseString is Parse for an in-memory string.
func ParseString(s string) (*HTMLDocument, error) {
	return Parse(strings.NewReader(s))
}

// Render writes the current page as HTML.
func (d *HTMLDocument) Render(w io.Writer) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return html.Render(w, d.root)
}

// String renders the page, returning "" on failure.
func (d *HTMLDocument) String() string {
	var sb strings.Builder
	if err := d.Render(&sb); err != nil {
		return ""
	}
	return sb.String()
}

// Body returns the body element, or nil.
func (d *HTMLDocument) Body() Node {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.wrap(findTag(d.root, atom.Body))
}

// Query returns the first element matching selector, or nil.
func (d *HTMLDocument) Query(selector string) Node {
	d.mu.Lock()
	defer d.mu.Unlock()
	sel, ok := compile(selector)
	if !ok {
		return nil
	}
	return d.wrap(sel.MatchFirst(d.root))
}

// QueryAll returns every element matching selector in document order.
func (d *HTMLDocument) QueryAll(selector string) []Node {
	d.mu.Lock()
	defer d.mu.Unlock()
	sel, ok := compile(selector)
	if !ok {
		return nil
	}
	return d.wrapAll(sel.MatchAll(d.root))
}

// CreateElement returns a detached element.
func (d *HTMLDocument) CreateElement(tag string) Node {
	d.mu.Lock()
	defer d.mu.Unlock()
	tag = strings.ToLower(tag)
	n := &html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
	}
	return d.element(n)
}

// AddEventListener registers a document or window level listener.
func (d *HTMLDocument) AddEventListener(eventType string, fn Listener) {
	if fn == nil {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.listeners[eventType] = append(d.listeners[eventType], fn)
}

// ViewportWidth returns the simulated window width.
func (d *HTMLDocument) ViewportWidth() float64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.width
}

// Observe records fn to run when n first intersects the viewport.
// See Intersect.
func (d *HTMLDocument) Observe(n Node, fn func(Node)) {
	e, ok := n.(*Element)
	if !ok || e == nil || fn == nil {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.observers[e.node] = append(d.observers[e.node], fn)
}

// Intersect simulates n scrolling into view. Observers fire once.
func (d *HTMLDocument) Intersect(n Node) {
	e, ok := n.(*Element)
	if !ok || e == nil {
		return
	}
	d.mu.Lock()
	fns := d.observers[e.node]
	delete(d.observers, e.node)
	d.mu.Unlock()

	for _, fn := range fns {
		fn(e)
	}
}

// Resize sets the viewport width and fires window resize listeners.
func (d *HTMLDocument) Resize(width float64) {
	d.mu.Lock()
	d.width = width
	d.mu.Unlock()
	d.Dispatch(&Event{Type: EventResize})
}

// Dispatch delivers a document level event (one with no element target,
// or a synthetic window event).
func (d *HTMLDocument) Dispatch(ev *Event) {
	if ev == nil {
		return
	}
	d.mu.Lock()
	fns := append([]Listener(nil), d.listeners[ev.Type]...)
	d.mu.Unlock()

	for _, fn := range fns {
		fn(ev)
	}
}

// element returns the cached wrapper for n. Caller holds d.mu.
func (d *HTMLDocument) element(n *html.Node) *Element {
	if e, ok := d.elements[n]; ok {
		return e
	}
	e := &Element{doc: d, node: n}
	d.elements[n] = e
	return e
}

// wrap converts n to a Node, keeping nil as the untyped nil interface.
// Caller holds d.mu.
func (d *HTMLDocument) wrap(n *html.Node) Node {
	if n == nil {
		return nil
	}
	return d.element(n)
}

// wrapAll converts nodes to Nodes. Caller holds d.mu.
func (d *HTMLDocument) wrapAll(nodes []*html.Node) []Node {
	if len(nodes) == 0 {
		return nil
	}
	out := make([]Node, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, d.element(n))
	}
	return out
}

// findTag returns the first element with the given atom under n.
func findTag(n *html.Node, a atom.Atom) *html.Node {
	if n.Type == html.ElementNode && n.DataAtom == a {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findTag(c, a); found != nil {
			return found
		}
	}
	return nil
}
