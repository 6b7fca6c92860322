package glint

import (
	"strings"

	"github.com/zoobzio/glint/dom"
)

const classFocused = "focused"

// initForms wires live validation on every .form-control and ripple plus
// loading feedback on every .btn.
func (p *Page) initForms() {
	for _, input := range p.queryAll(".form-control") {
		input.AddEventListener(dom.EventFocus, func(*dom.Event) {
			if group := input.Parent(); group != nil {
				group.AddClass(classFocused)
			}
		})
		input.AddEventListener(dom.EventBlur, func(*dom.Event) {
			if group := input.Parent(); group != nil {
				group.RemoveClass(classFocused)
			}
			p.ValidateField(input)
		})
		input.AddEventListener(dom.EventInput, func(*dom.Event) {
			p.ValidateField(input)
		})
	}

	for _, btn := range p.queryAll(".btn") {
		btn.AddEventListener(dom.EventClick, func(e *dom.Event) {
			p.Ripple(btn, e.ClientX, e.ClientY)
			if isSubmit(btn) {
				p.StartLoading(btn)
			}
		})
	}
}

// isSubmit reports whether n submits its form when clicked: a button with
// no type (or an unknown one) or type=submit, or an input with type=submit.
func isSubmit(n dom.Node) bool {
	typ, _ := n.Attr("type")
	typ = strings.ToLower(strings.TrimSpace(typ))
	switch n.Tag() {
	case "button":
		return typ != "button" && typ != "reset"
	case "input":
		return typ == "submit"
	default:
		return false
	}
}
