package glint

import (
	"github.com/zoobzio/glint/dom"
)

const classKeyboardNav = "keyboard-navigation"

// initKeyboard wires the document shortcuts: Escape closes the active modal,
// Enter in a form control submits its form, Tab turns on focus rings and any
// mouse press turns them off.
func (p *Page) initKeyboard() {
	p.doc.AddEventListener(dom.EventKeyDown, func(e *dom.Event) {
		switch e.Key {
		case "Escape":
			if modal := p.query(".modal.active"); modal != nil {
				modal.RemoveClass(classActive)
			}
		case "Enter":
			if e.Target == nil || !e.Target.HasClass("form-control") {
				return
			}
			if form := e.Target.Closest("form"); form != nil {
				form.Submit()
			}
		case "Tab":
			if body := p.doc.Body(); body != nil {
				body.AddClass(classKeyboardNav)
			}
		}
	})

	p.doc.AddEventListener(dom.EventMouseDown, func(*dom.Event) {
		if body := p.doc.Body(); body != nil {
			body.RemoveClass(classKeyboardNav)
		}
	})
}

// initLazyImages swaps data-src into src the first time each image is seen.
func (p *Page) initLazyImages() {
	for _, img := range p.queryAll("img[data-src]") {
		p.doc.Observe(img, func(n dom.Node) {
			if src, ok := n.Attr("data-src"); ok {
				n.SetAttr("src", src)
			}
			n.RemoveClass("lazy")
		})
	}
}
