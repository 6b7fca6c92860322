package glint

import (
	"strconv"

	"github.com/zoobzio/capitan"
	"github.com/zoobzio/glint/dom"
)

const (
	classFlipIn = "flip-in"

	// transitionAttr holds the token of the newest transition on a badge.
	transitionAttr = "data-status-transition"
)

// UpdateCompetitionStatus transitions the .competition-status badge inside
// competition. It is a no-op when either is missing.
func (p *Page) UpdateCompetitionStatus(competition dom.Node, status string) {
	if competition == nil {
		return
	}
	p.TransitionStatus(competition.Query(".competition-status"), status)
}

// TransitionStatus adds flip-in to badge and, after Config.StatusMS,
// replaces its classes with "competition-status status-<status>".
//
// The newest call on a badge wins: each call stamps the badge with a fresh
// token and a firing whose token is no longer current does nothing. Two
// quick calls therefore end in the second call's status, applied once.
func (p *Page) TransitionStatus(badge dom.Node, status string) {
	if badge == nil {
		return
	}
	token := strconv.FormatUint(p.seq.Add(1), 10)

	badge.AddClass(classFlipIn)
	badge.SetAttr(transitionAttr, token)

	ctx := p.context()
	clock := p.sched.Clock()
	created := clock.Now()
	p.metrics.OnTransientCreated(TransientStatus)
	capitan.Emit(ctx, StatusStarted,
		KeyStatus.Field(status),
	)

	p.sched.After(millis(p.Config().StatusMS), func() {
		if current, ok := badge.Attr(transitionAttr); !ok || current != token {
			return
		}
		badge.RemoveAttr(transitionAttr)
		badge.SetClassName("competition-status status-" + status)
		badge.RemoveClass(classFlipIn)

		lifetime := clock.Since(created)
		p.metrics.OnTransientExpired(TransientStatus, lifetime)
		capitan.Emit(ctx, StatusApplied,
			KeyStatus.Field(status),
			KeyLifetime.Field(lifetime),
		)
	})
}
