package glint

import (
	"math"
	"strconv"

	"github.com/zoobzio/capitan"
)

// ShowProgress fills .progress-fill to percentage and shows .progress-bar.
// The value is passed through as-is: nothing clamps it to [0, 100].
func (p *Page) ShowProgress(percentage float64) {
	bar := p.query(".progress-bar")
	if bar == nil {
		return
	}
	fill := bar.Query(".progress-fill")
	if fill == nil {
		return
	}
	width := formatNumber(percentage) + "%"
	fill.SetStyle("--progress-width", width)
	bar.SetStyle("display", "block")

	capitan.Emit(p.context(), ProgressShown,
		KeyProgress.Field(width),
	)
}

// HideProgress hides .progress-bar.
func (p *Page) HideProgress() {
	bar := p.query(".progress-bar")
	if bar == nil {
		return
	}
	bar.SetStyle("display", "none")
	capitan.Emit(p.context(), ProgressHidden)
}

// formatNumber prints v the way a page script would interpolate it:
// shortest form, with Infinity and NaN spelled out.
func formatNumber(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	default:
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
}
