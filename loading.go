package glint

import (
	"github.com/zoobzio/capitan"
	"github.com/zoobzio/glint/dom"
)

const classLoading = "loading"

// StartLoading swaps btn's text for Config.LoadingLabel, adds the loading
// class and disables it. After Config.LoadingMS the original text and
// state come back no matter what happened in the meantime.
//
// The restore is a fixed cosmetic timeout, not a completion signal: a
// submission slower than LoadingMS gets its button back before it has
// finished. Nothing should gate real submission logic on it.
func (p *Page) StartLoading(btn dom.Node) {
	if btn == nil {
		return
	}
	cfg := p.Config()
	original := btn.Text()

	btn.SetText(cfg.LoadingLabel)
	btn.AddClass(classLoading)
	btn.SetDisabled(true)

	ctx := p.context()
	clock := p.sched.Clock()
	created := clock.Now()
	p.metrics.OnTransientCreated(TransientLoading)
	capitan.Emit(ctx, LoadingStarted,
		KeyWait.Field(millis(cfg.LoadingMS)),
	)

	p.sched.After(millis(cfg.LoadingMS), func() {
		btn.SetText(original)
		btn.RemoveClass(classLoading)
		btn.SetDisabled(false)

		lifetime := clock.Since(created)
		p.metrics.OnTransientExpired(TransientLoading, lifetime)
		capitan.Emit(ctx, LoadingRestored,
			KeyLifetime.Field(lifetime),
		)
	})
}
