package glint

import (
	"math"
	"strconv"

	"github.com/zoobzio/capitan"
	"github.com/zoobzio/glint/dom"
)

const classRipple = "ripple"

// Ripple inserts a square overlay into n, centred on the pointer at
// (clientX, clientY) and as wide as the larger side of n. It is removed
// after Config.RippleMS. Every call makes a new overlay, so rapid clicks
// overlap.
func (p *Page) Ripple(n dom.Node, clientX, clientY float64) {
	if n == nil || p.doc == nil {
		return
	}
	ripple := p.doc.CreateElement("span")
	if ripple == nil {
		return
	}

	rect := n.Rect()
	size := math.Max(rect.Width, rect.Height)
	x := clientX - rect.Left - size/2
	y := clientY - rect.Top - size/2

	ripple.SetStyle("width", px(size))
	ripple.SetStyle("height", px(size))
	ripple.SetStyle("left", px(x))
	ripple.SetStyle("top", px(y))
	ripple.AddClass(classRipple)
	n.AppendChild(ripple)

	ctx := p.context()
	clock := p.sched.Clock()
	created := clock.Now()
	p.metrics.OnTransientCreated(TransientRipple)
	capitan.Emit(ctx, RippleCreated)

	p.sched.After(millis(p.Config().RippleMS), func() {
		ripple.Remove()
		p.metrics.OnTransientExpired(TransientRipple, clock.Since(created))
	})
}

func px(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "px"
}
