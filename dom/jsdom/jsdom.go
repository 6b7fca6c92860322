//go:build js && wasm

// Package jsdom implements dom.Node and dom.Document over the browser DOM
// through syscall/js.
package jsdom

import (
	"syscall/js"

	"github.com/zoobzio/glint/dom"
)

// Document wraps window.document.
type Document struct {
	window js.Value
	doc    js.Value
	funcs  []js.Func
}

// Element wraps a browser element.
type Element struct {
	owner *Document
	v     js.Value
}

var (
	_ dom.Document = (*Document)(nil)
	_ dom.Node     = (*Element)(nil)
)

// New returns the current browser document.
func New() *Document {
	return &Document{
		window: js.Global(),
		doc:    js.Global().Get("document"),
	}
}

// Release frees every callback registered through this document.
func (d *Document) Release() {
	for _, fn := range d.funcs {
		fn.Release()
	}
	d.funcs = nil
}

// Wrap adapts a js element handed in from script.
func (d *Document) Wrap(v js.Value) dom.Node {
	return d.wrap(v)
}

func (d *Document) wrap(v js.Value) dom.Node {
	if v.IsNull() || v.IsUndefined() {
		return nil
	}
	return &Element{owner: d, v: v}
}

func (d *Document) wrapList(list js.Value) []dom.Node {
	if list.IsNull() || list.IsUndefined() {
		return nil
	}
	n := list.Length()
	out := make([]dom.Node, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, &Element{owner: d, v: list.Index(i)})
	}
	return out
}

// Body returns document.body.
func (d *Document) Body() dom.Node {
	return d.wrap(d.doc.Get("body"))
}

// Query runs document.querySelector.
func (d *Document) Query(selector string) dom.Node {
	return d.wrap(safeCall(d.doc, "querySelector", selector))
}

// QueryAll runs document.querySelectorAll.
func (d *Document) QueryAll(selector string) []dom.Node {
	return d.wrapList(safeCall(d.doc, "querySelectorAll", selector))
}

// CreateElement runs document.createElement.
func (d *Document) CreateElement(tag string) dom.Node {
	return d.wrap(d.doc.Call("createElement", tag))
}

// AddEventListener attaches to window for resize and to document otherwise.
func (d *Document) AddEventListener(eventType string, fn dom.Listener) {
	if fn == nil {
		return
	}
	target := d.doc
	if eventType == dom.EventResize {
		target = d.window
	}
	target.Call("addEventListener", eventType, d.listener(fn))
}

// ViewportWidth returns window.innerWidth.
func (d *Document) ViewportWidth() float64 {
	return d.window.Get("innerWidth").Float()
}

// Observe uses an IntersectionObserver that unobserves after the first hit.
func (d *Document) Observe(n dom.Node, fn func(dom.Node)) {
	el, ok := n.(*Element)
	if !ok || el == nil || fn == nil {
		return
	}
	ctor := d.window.Get("IntersectionObserver")
	if ctor.IsUndefined() {
		fn(el)
		return
	}
	cb := js.FuncOf(func(_ js.Value, args []js.Value) any {
		entries, observer := args[0], args[1]
		for i := 0; i < entries.Length(); i++ {
			entry := entries.Index(i)
			if !entry.Get("isIntersecting").Bool() {
				continue
			}
			observer.Call("unobserve", entry.Get("target"))
			fn(d.wrap(entry.Get("target")))
		}
		return nil
	})
	d.funcs = append(d.funcs, cb)
	ctor.New(cb).Call("observe", el.v)
}

func (d *Document) listener(fn dom.Listener) js.Func {
	cb := js.FuncOf(func(_ js.Value, args []js.Value) any {
		fn(d.event(args[0]))
		return nil
	})
	d.funcs = append(d.funcs, cb)
	return cb
}

func (d *Document) event(v js.Value) *dom.Event {
	ev := &dom.Event{Type: v.Get("type").String()}
	if t := v.Get("target"); t.Truthy() && t.Get("nodeType").Int() == 1 {
		ev.Target = d.wrap(t)
	}
	if k := v.Get("key"); k.Type() == js.TypeString {
		ev.Key = k.String()
	}
	if x := v.Get("clientX"); x.Type() == js.TypeNumber {
		ev.ClientX = x.Float()
		ev.ClientY = v.Get("clientY").Float()
	}
	return ev
}

// safeCall runs a selector method, returning null when the selector throws.
func safeCall(v js.Value, method, selector string) (out js.Value) {
	defer func() {
		if recover() != nil {
			out = js.Null()
		}
	}()
	return v.Call(method, selector)
}

// Tag returns the lower-case tag name.
func (e *Element) Tag() string {
	return e.v.Get("localName").String()
}

// Parent returns parentElement.
func (e *Element) Parent() dom.Node {
	return e.owner.wrap(e.v.Get("parentElement"))
}

// FirstChild returns firstElementChild.
func (e *Element) FirstChild() dom.Node {
	return e.owner.wrap(e.v.Get("firstElementChild"))
}

// Children returns the element children.
func (e *Element) Children() []dom.Node {
	return e.owner.wrapList(e.v.Get("children"))
}

// AppendChild appends child.
func (e *Element) AppendChild(child dom.Node) {
	if c, ok := child.(*Element); ok && c != nil {
		e.v.Call("appendChild", c.v)
	}
}

// InsertBefore inserts child before ref, or appends when ref is nil.
func (e *Element) InsertBefore(child, ref dom.Node) {
	c, ok := child.(*Element)
	if !ok || c == nil {
		return
	}
	r, ok := ref.(*Element)
	if !ok || r == nil {
		e.v.Call("appendChild", c.v)
		return
	}
	e.v.Call("insertBefore", c.v, r.v)
}

// Remove detaches e.
func (e *Element) Remove() {
	e.v.Call("remove")
}

// Query runs querySelector on e.
func (e *Element) Query(selector string) dom.Node {
	return e.owner.wrap(safeCall(e.v, "querySelector", selector))
}

// QueryAll runs querySelectorAll on e.
func (e *Element) QueryAll(selector string) []dom.Node {
	return e.owner.wrapList(safeCall(e.v, "querySelectorAll", selector))
}

// Closest runs closest on e.
func (e *Element) Closest(selector string) dom.Node {
	return e.owner.wrap(safeCall(e.v, "closest", selector))
}

// HasClass checks classList.
func (e *Element) HasClass(name string) bool {
	return e.v.Get("classList").Call("contains", name).Bool()
}

// AddClass adds to classList.
func (e *Element) AddClass(names ...string) {
	e.v.Get("classList").Call("add", toArgs(names)...)
}

// RemoveClass removes from classList.
func (e *Element) RemoveClass(names ...string) {
	e.v.Get("classList").Call("remove", toArgs(names)...)
}

// ToggleClass toggles on classList.
func (e *Element) ToggleClass(name string) bool {
	return e.v.Get("classList").Call("toggle", name).Bool()
}

// ClassName returns className.
func (e *Element) ClassName() string {
	return e.v.Get("className").String()
}

// SetClassName sets className.
func (e *Element) SetClassName(className string) {
	e.v.Set("className", className)
}

// Attr returns getAttribute.
func (e *Element) Attr(name string) (string, bool) {
	if !e.v.Call("hasAttribute", name).Bool() {
		return "", false
	}
	return e.v.Call("getAttribute", name).String(), true
}

// SetAttr calls setAttribute.
func (e *Element) SetAttr(name, value string) {
	e.v.Call("setAttribute", name, value)
}

// RemoveAttr calls removeAttribute.
func (e *Element) RemoveAttr(name string) {
	e.v.Call("removeAttribute", name)
}

// Text returns textContent.
func (e *Element) Text() string {
	return e.v.Get("textContent").String()
}

// SetText sets textContent.
func (e *Element) SetText(text string) {
	e.v.Set("textContent", text)
}

// Value returns the live value property.
func (e *Element) Value() string {
	v := e.v.Get("value")
	if v.Type() != js.TypeString {
		return ""
	}
	return v.String()
}

// SetValue sets the live value property.
func (e *Element) SetValue(value string) {
	e.v.Set("value", value)
}

// Disabled returns the disabled property.
func (e *Element) Disabled() bool {
	return e.v.Get("disabled").Truthy()
}

// SetDisabled sets the disabled property.
func (e *Element) SetDisabled(disabled bool) {
	e.v.Set("disabled", disabled)
}

// Style reads an inline style property.
func (e *Element) Style(property string) string {
	return e.v.Get("style").Call("getPropertyValue", property).String()
}

// SetStyle writes an inline style property. Empty removes it.
func (e *Element) SetStyle(property, value string) {
	style := e.v.Get("style")
	if value == "" {
		style.Call("removeProperty", property)
		return
	}
	style.Call("setProperty", property, value)
}

// Rect returns getBoundingClientRect.
func (e *Element) Rect() dom.Rect {
	r := e.v.Call("getBoundingClientRect")
	return dom.Rect{
		Left:   r.Get("left").Float(),
		Top:    r.Get("top").Float(),
		Width:  r.Get("width").Float(),
		Height: r.Get("height").Float(),
	}
}

// AddEventListener attaches fn to e.
func (e *Element) AddEventListener(eventType string, fn dom.Listener) {
	if fn == nil {
		return
	}
	e.v.Call("addEventListener", eventType, e.owner.listener(fn))
}

// Submit calls form.submit when available.
func (e *Element) Submit() {
	if e.v.Get("submit").Type() == js.TypeFunction {
		e.v.Call("submit")
	}
}

func toArgs(names []string) []any {
	out := make([]any, len(names))
	for i, n := range names {
		out[i] = n
	}
	return out
}
