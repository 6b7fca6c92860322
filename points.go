package glint

import (
	"strconv"

	"github.com/zoobzio/capitan"
)

const classPulse = "pulse"

// UpdatePointsDisplay pulses .points-display and, after Config.PointsMS,
// sets its text to Config.PointsLabel followed by points.
func (p *Page) UpdatePointsDisplay(points int) {
	display := p.query(".points-display")
	if display == nil {
		return
	}
	cfg := p.Config()
	display.AddClass(classPulse)

	ctx := p.context()
	clock := p.sched.Clock()
	created := clock.Now()
	p.metrics.OnTransientCreated(TransientPoints)

	p.sched.After(millis(cfg.PointsMS), func() {
		display.SetText(cfg.PointsLabel + strconv.Itoa(points))
		display.RemoveClass(classPulse)

		p.metrics.OnTransientExpired(TransientPoints, clock.Since(created))
		capitan.Emit(ctx, PointsUpdated,
			KeyPoints.Field(points),
		)
	})
}
