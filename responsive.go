package glint

import (
	"github.com/zoobzio/glint/dom"
)

const classActive = "active"

// initResponsive wires the mobile menu toggle and the debounced resize
// handler.
func (p *Page) initResponsive() {
	if toggle := p.query(".mobile-menu-toggle"); toggle != nil {
		toggle.AddEventListener(dom.EventClick, func(*dom.Event) {
			p.ToggleMobileMenu()
		})
	}

	cfg := p.Config()
	resize := NewDebouncer(p.handleResize, millis(cfg.ResizeDebounceMS)).
		Scheduler(p.sched).
		Metrics(p.metrics)

	p.mu.Lock()
	p.resize = resize
	p.mu.Unlock()

	p.doc.AddEventListener(dom.EventResize, func(*dom.Event) {
		resize.Call(p.doc.ViewportWidth())
	})
}

// ToggleMobileMenu flips the active class on .mobile-menu.
func (p *Page) ToggleMobileMenu() {
	if menu := p.query(".mobile-menu"); menu != nil {
		menu.ToggleClass(classActive)
	}
}

// handleResize drops hover lifting from cards on narrow viewports and
// restores it on wide ones.
func (p *Page) handleResize(width float64) {
	mobile := width < float64(p.Config().MobileBreakpoint)
	for _, card := range p.queryAll(".competition-card, .club-card") {
		if mobile {
			card.RemoveClass(classHoverLift)
		} else {
			card.AddClass(classHoverLift)
		}
	}
}
