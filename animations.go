package glint

import (
	"strconv"

	"github.com/zoobzio/glint/dom"
)

// Role and effect classes.
const (
	classFadeIn     = "fade-in"
	classSlideInUp  = "slide-in-up"
	classFloating   = "floating"
	classDynamicBg  = "dynamic-bg"
	classHoverLift  = "hover-lift"
	classGlowOK     = "glow-success"
	classGlowError  = "glow-error"
	selectorCards   = ".card, .competition-card, .club-card"
	selectorLifters = ".btn, .competition-card, .club-card"
)

// initAnimations staggers entrance animations: cards by 0.1s each, forms by
// 0.2s each. The header floats.
func (p *Page) initAnimations() {
	for i, card := range p.queryAll(selectorCards) {
		card.AddClass(classFadeIn)
		card.SetStyle("animation-delay", stagger(i, 100))
	}
	for i, form := range p.queryAll("form") {
		form.AddClass(classSlideInUp)
		form.SetStyle("animation-delay", stagger(i, 200))
	}
	if header := p.query(".header"); header != nil {
		header.AddClass(classFloating)
	}
}

func (p *Page) initDynamicEffects() {
	if body := p.doc.Body(); body != nil {
		body.AddClass(classDynamicBg)
	}
	addClassAll(p.queryAll(selectorLifters), classHoverLift)
	addClassAll(p.queryAll(".points-display, .alert-success"), classGlowOK)
	addClassAll(p.queryAll(".alert-error"), classGlowError)
}

// stagger formats the i-th delay of step milliseconds in seconds, e.g.
// "0s", "0.1s", "0.2s".
func stagger(i, stepMS int) string {
	return strconv.FormatFloat(float64(i*stepMS)/1000, 'f', -1, 64) + "s"
}

func addClassAll(nodes []dom.Node, class string) {
	for _, n := range nodes {
		n.AddClass(class)
	}
}
