package dom

import (
	"strings"

	"golang.org/x/net/html"
)

// Element is a node of an HTMLDocument.
type Element struct {
	doc       *HTMLDocument
	node      *html.Node
	listeners map[string][]Listener
	rect      Rect
	submits   int
}

// Ensure Element implements Node.
var _ Node = (*Element)(nil)

// Tag returns the lower-case tag name.
func (e *Element) Tag() string {
	return e.node.Data
}

// Parent returns the parent element, or nil for the root or a detached node.
func (e *Element) Parent() Node {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	p := e.node.Parent
	if p == nil || p.Type != html.ElementNode {
		return nil
	}
	return e.doc.element(p)
}

// FirstChild returns the first element child, or nil.
func (e *Element) FirstChild() Node {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	for c := e.node.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			return e.doc.element(c)
		}
	}
	return nil
}

// Children returns the element children in order.
func (e *Element) Children() []Node {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	var out []Node
	for c := e.node.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			out = append(out, e.doc.element(c))
		}
	}
	return out
}

// AppendChild moves child to the end of e. Nodes from another document
// are ignored.
func (e *Element) AppendChild(child Node) {
	c, ok := e.own(child)
	if !ok {
		return
	}
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	detach(c.node)
	e.node.AppendChild(c.node)
}

// InsertBefore moves child in front of ref. A nil ref, or one that is not
// a child of e, appends.
func (e *Element) InsertBefore(child, ref Node) {
	c, ok := e.own(child)
	if !ok {
		return
	}
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	detach(c.node)
	if r, ok := ref.(*Element); ok && r != nil && r.node.Parent == e.node {
		e.node.InsertBefore(c.node, r.node)
		return
	}
	e.node.AppendChild(c.node)
}

// Remove detaches e from its parent. Removing a detached node is a no-op.
func (e *Element) Remove() {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	detach(e.node)
}

// Connected reports whether e is attached to its document.
func (e *Element) Connected() bool {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	for n := e.node; n != nil; n = n.Parent {
		if n == e.doc.root {
			return true
		}
	}
	return false
}

// Query returns the first descendant matching selector, or nil.
func (e *Element) Query(selector string) Node {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	sel, ok := compile(selector)
	if !ok {
		return nil
	}
	for c := e.node.FirstChild; c != nil; c = c.NextSibling {
		if found := sel.MatchFirst(c); found != nil {
			return e.doc.element(found)
		}
	}
	return nil
}

// QueryAll returns every descendant matching selector in document order.
func (e *Element) QueryAll(selector string) []Node {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	sel, ok := compile(selector)
	if !ok {
		return nil
	}
	var found []*html.Node
	for c := e.node.FirstChild; c != nil; c = c.NextSibling {
		found = append(found, sel.MatchAll(c)...)
	}
	return e.doc.wrapAll(found)
}

// Closest returns the nearest inclusive ancestor matching selector, or nil.
func (e *Element) Closest(selector string) Node {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	sel, ok := compile(selector)
	if !ok {
		return nil
	}
	for n := e.node; n != nil; n = n.Parent {
		if n.Type == html.ElementNode && sel.Match(n) {
			return e.doc.element(n)
		}
	}
	return nil
}

// HasClass reports whether name is in the class list.
func (e *Element) HasClass(name string) bool {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	for _, c := range e.classes() {
		if c == name {
			return true
		}
	}
	return false
}

// AddClass appends each name not already present.
func (e *Element) AddClass(names ...string) {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	list := e.classes()
	for _, name := range names {
		if name == "" || contains(list, name) {
			continue
		}
		list = append(list, name)
	}
	e.setClasses(list)
}

// RemoveClass drops each name. Absent names are ignored.
func (e *Element) RemoveClass(names ...string) {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	list := e.classes()
	kept := list[:0]
	for _, c := range list {
		if !contains(names, c) {
			kept = append(kept, c)
		}
	}
	e.setClasses(kept)
}

// ToggleClass flips name and reports whether it is now present.
func (e *Element) ToggleClass(name string) bool {
	if e.HasClass(name) {
		e.RemoveClass(name)
		return false
	}
	e.AddClass(name)
	return true
}

// ClassName returns the raw class attribute.
func (e *Element) ClassName() string {
	v, _ := e.Attr("class")
	return v
}

// SetClassName replaces the whole class list.
func (e *Element) SetClassName(className string) {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	e.setClasses(strings.Fields(className))
}

// Attr returns the attribute value and whether it is present.
func (e *Element) Attr(name string) (string, bool) {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	return getAttr(e.node, name)
}

// SetAttr sets or replaces an attribute.
func (e *Element) SetAttr(name, value string) {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	setAttr(e.node, name, value)
}

// RemoveAttr deletes an attribute.
func (e *Element) RemoveAttr(name string) {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	removeAttr(e.node, name)
}

// Text returns the concatenated text content.
func (e *Element) Text() string {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	var sb strings.Builder
	collectText(e.node, &sb)
	return sb.String()
}

// SetText replaces all children with a single text node.
func (e *Element) SetText(text string) {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	for c := e.node.FirstChild; c != nil; {
		next := c.NextSibling
		e.node.RemoveChild(c)
		c = next
	}
	e.node.AppendChild(&html.Node{Type: html.TextNode, Data: text})
}

// Value returns the form control value: the text of a textarea, the value
// of the selected option of a select (the first option when none is
// selected), and the value attribute otherwise.
func (e *Element) Value() string {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	switch e.node.Data {
	case "textarea":
		var sb strings.Builder
		collectText(e.node, &sb)
		return sb.String()
	case "select":
		if opt := selectedOption(e.node); opt != nil {
			return optionValue(opt)
		}
		return ""
	default:
		v, _ := getAttr(e.node, "value")
		return v
	}
}

// SetValue sets the form control value. A select selects the first option
// with that value, or none when nothing matches.
func (e *Element) SetValue(value string) {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	switch e.node.Data {
	case "textarea":
		for c := e.node.FirstChild; c != nil; {
			next := c.NextSibling
			e.node.RemoveChild(c)
			c = next
		}
		e.node.AppendChild(&html.Node{Type: html.TextNode, Data: value})
	case "select":
		matched := false
		for _, opt := range options(e.node) {
			removeAttr(opt, "selected")
			if !matched && optionValue(opt) == value {
				setAttr(opt, "selected", "")
				matched = true
			}
		}
	default:
		setAttr(e.node, "value", value)
	}
}

// Disabled reports whether the disabled attribute is present.
func (e *Element) Disabled() bool {
	_, ok := e.Attr("disabled")
	return ok
}

// SetDisabled adds or removes the disabled attribute.
func (e *Element) SetDisabled(disabled bool) {
	if disabled {
		e.SetAttr("disabled", "")
		return
	}
	e.RemoveAttr("disabled")
}

// Style returns an inline style property, or "".
func (e *Element) Style(property string) string {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	raw, _ := getAttr(e.node, "style")
	for _, decl := range parseStyle(raw) {
		if decl.property == property {
			return decl.value
		}
	}
	return ""
}

// SetStyle sets an inline style property. An empty value removes it.
func (e *Element) SetStyle(property, value string) {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	raw, _ := getAttr(e.node, "style")
	decls := parseStyle(raw)
	replaced := false
	kept := decls[:0]
	for _, decl := range decls {
		if decl.property == property {
			if value == "" {
				continue
			}
			decl.value = value
			replaced = true
		}
		kept = append(kept, decl)
	}
	if !replaced && value != "" {
		kept = append(kept, declaration{property: property, value: value})
	}
	if len(kept) == 0 {
		removeAttr(e.node, "style")
		return
	}
	setAttr(e.node, "style", formatStyle(kept))
}

// Rect returns the bounding box set with SetRect.
func (e *Element) Rect() Rect {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	return e.rect
}

// SetRect sets the bounding box reported by Rect. The in-memory document
// does no layout.
func (e *Element) SetRect(r Rect) {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	e.rect = r
}

// AddEventListener registers fn for eventType on e.
func (e *Element) AddEventListener(eventType string, fn Listener) {
	if fn == nil {
		return
	}
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	if e.listeners == nil {
		e.listeners = make(map[string][]Listener)
	}
	e.listeners[eventType] = append(e.listeners[eventType], fn)
}

// Dispatch delivers ev to e. Bubbling events continue to each ancestor and
// then to document listeners. Target defaults to e.
func (e *Element) Dispatch(ev *Event) {
	if ev == nil {
		return
	}
	if ev.Target == nil {
		ev.Target = e
	}
	if isMouseEvent(ev.Type) && e.Disabled() && isFormControl(e.node.Data) {
		return
	}

	e.doc.mu.Lock()
	fns := append([]Listener(nil), e.listeners[ev.Type]...)
	if bubbles(ev.Type) {
		for n := e.node.Parent; n != nil; n = n.Parent {
			if anc, ok := e.doc.elements[n]; ok {
				fns = append(fns, anc.listeners[ev.Type]...)
			}
		}
		fns = append(fns, e.doc.listeners[ev.Type]...)
	}
	e.doc.mu.Unlock()

	for _, fn := range fns {
		fn(ev)
	}
}

// Submit records a form submission.
func (e *Element) Submit() {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	e.submits++
}

// Submissions returns how many times Submit was called.
func (e *Element) Submissions() int {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	return e.submits
}

// OuterHTML renders e and its subtree.
func (e *Element) OuterHTML() string {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	var sb strings.Builder
	if err := html.Render(&sb, e.node); err != nil {
		return ""
	}
	return sb.String()
}

// own returns n as an element of the same document.
func (e *Element) own(n Node) (*Element, bool) {
	c, ok := n.(*Element)
	if !ok || c == nil || c.doc != e.doc || c == e {
		return nil, false
	}
	return c, true
}

// classes returns the class list. Caller holds doc.mu.
func (e *Element) classes() []string {
	raw, _ := getAttr(e.node, "class")
	return strings.Fields(raw)
}

// setClasses writes the class list back. Caller holds doc.mu.
func (e *Element) setClasses(list []string) {
	if len(list) == 0 {
		removeAttr(e.node, "class")
		return
	}
	setAttr(e.node, "class", strings.Join(list, " "))
}

func detach(n *html.Node) {
	if n.Parent != nil {
		n.Parent.RemoveChild(n)
	}
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func getAttr(n *html.Node, name string) (string, bool) {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == name {
			return a.Val, true
		}
	}
	return "", false
}

func setAttr(n *html.Node, name, value string) {
	for i, a := range n.Attr {
		if a.Namespace == "" && a.Key == name {
			n.Attr[i].Val = value
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: name, Val: value})
}

func removeAttr(n *html.Node, name string) {
	kept := n.Attr[:0]
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == name {
			continue
		}
		kept = append(kept, a)
	}
	n.Attr = kept
}

// isMouseEvent reports whether browsers withhold events of this type from
// disabled form controls.
func isMouseEvent(eventType string) bool {
	switch eventType {
	case EventClick, EventMouseDown:
		return true
	default:
		return false
	}
}

func isFormControl(tag string) bool {
	switch tag {
	case "button", "input", "select", "textarea":
		return true
	default:
		return false
	}
}

// options returns the option elements of a select in document order,
// including those inside optgroups.
func options(n *html.Node) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type != html.ElementNode {
				continue
			}
			if c.Data == "option" {
				out = append(out, c)
				continue
			}
			walk(c)
		}
	}
	walk(n)
	return out
}

// selectedOption returns the last option marked selected, or the first
// option, or nil for an empty select.
func selectedOption(n *html.Node) *html.Node {
	opts := options(n)
	if len(opts) == 0 {
		return nil
	}
	var selected *html.Node
	for _, opt := range opts {
		if _, ok := getAttr(opt, "selected"); ok {
			selected = opt
		}
	}
	if selected == nil {
		return opts[0]
	}
	return selected
}

// optionValue is the value attribute, or the option's text with whitespace
// collapsed.
func optionValue(opt *html.Node) string {
	if v, ok := getAttr(opt, "value"); ok {
		return v
	}
	var sb strings.Builder
	collectText(opt, &sb)
	return strings.Join(strings.Fields(sb.String()), " ")
}

func collectText(n *html.Node, sb *strings.Builder) {
	if n.Type == html.TextNode {
		sb.WriteString(n.Data)
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, sb)
	}
}

type declaration struct {
	property string
	value    string
}

func parseStyle(raw string) []declaration {
	var decls []declaration
	for _, part := range strings.Split(raw, ";") {
		prop, val, ok := strings.Cut(part, ":")
		if !ok {
			continue
		}
		prop = strings.TrimSpace(prop)
		if prop == "" {
			continue
		}
		decls = append(decls, declaration{property: prop, value: strings.TrimSpace(val)})
	}
	return decls
}

func formatStyle(decls []declaration) string {
	parts := make([]string, len(decls))
	for i, d := range decls {
		parts[i] = d.property + ": " + d.value
	}
	return strings.Join(parts, "; ") + ";"
}
