package main

import (
	"fmt"
	"os"
	"time"

	"github.com/zoobzio/clockz"
	"github.com/zoobzio/glint"
	"github.com/zoobzio/glint/dom"
	"go.uber.org/zap"
)

// Scenario is a scripted user session replayed against a page.
type Scenario struct {
	// Viewport is the initial window width. Zero keeps the document default.
	Viewport float64 `yaml:"viewport" json:"viewport"`
	Steps    []Step  `yaml:"steps" json:"steps"`
}

// Step is one scripted action. Which fields matter depends on Action.
type Step struct {
	Action  string  `yaml:"action" json:"action"`
	Target  string  `yaml:"target" json:"target"`
	Value   string  `yaml:"value" json:"value"`
	Key     string  `yaml:"key" json:"key"`
	X       float64 `yaml:"x" json:"x"`
	Y       float64 `yaml:"y" json:"y"`
	Width   float64 `yaml:"width" json:"width"`
	Kind    string  `yaml:"kind" json:"kind"`
	Message string  `yaml:"message" json:"message"`
	Status  string  `yaml:"status" json:"status"`
	Percent float64 `yaml:"percent" json:"percent"`
	Points  int     `yaml:"points" json:"points"`
	WaitMS  int     `yaml:"wait_ms" json:"wait_ms"`
}

// Step actions.
const (
	actionInput     = "input"
	actionFocus     = "focus"
	actionBlur      = "blur"
	actionClick     = "click"
	actionKeyDown   = "keydown"
	actionMouseDown = "mousedown"
	actionResize    = "resize"
	actionIntersect = "intersect"
	actionNotify    = "notify"
	actionStatus    = "status"
	actionProgress  = "progress"
	actionHide      = "hide-progress"
	actionPoints    = "points"
	actionWait      = "wait"
)

// LoadScenario reads a YAML or JSON scenario file.
func LoadScenario(path string) (Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Scenario{}, fmt.Errorf("failed to read scenario %s: %w", path, err)
	}
	var s Scenario
	if err := glint.CodecFor(path).Unmarshal(data, &s); err != nil {
		return Scenario{}, fmt.Errorf("failed to decode scenario %s: %w", path, err)
	}
	return s, nil
}

// Run replays every step on page. Timed follow-ups only advance through
// wait steps, so the rendered page reflects the state at the end of the
// last wait.
func (s Scenario) Run(page *glint.Page, doc *dom.HTMLDocument, clock *clockz.FakeClock) error {
	if s.Viewport > 0 {
		doc.Resize(s.Viewport)
	}
	for i, st := range s.Steps {
		logger.Debug("Scenario step",
			zap.Int("index", i),
			zap.String("action", st.Action),
			zap.String("target", st.Target),
		)
		if err := st.run(page, doc, clock); err != nil {
			return fmt.Errorf("step %d (%s): %w", i+1, st.Action, err)
		}
	}
	return nil
}

func (st Step) run(page *glint.Page, doc *dom.HTMLDocument, clock *clockz.FakeClock) error {
	switch st.Action {
	case actionInput:
		el, err := st.element(doc)
		if err != nil {
			return err
		}
		el.SetValue(st.Value)
		el.Dispatch(&dom.Event{Type: dom.EventInput})
	case actionFocus, actionBlur, actionClick, actionMouseDown:
		el, err := st.element(doc)
		if err != nil {
			return err
		}
		el.Dispatch(&dom.Event{Type: st.Action, ClientX: st.X, ClientY: st.Y})
	case actionKeyDown:
		ev := &dom.Event{Type: dom.EventKeyDown, Key: st.Key}
		if st.Target == "" {
			doc.Dispatch(ev)
			return nil
		}
		el, err := st.element(doc)
		if err != nil {
			return err
		}
		el.Dispatch(ev)
	case actionResize:
		doc.Resize(st.Width)
	case actionIntersect:
		el, err := st.element(doc)
		if err != nil {
			return err
		}
		doc.Intersect(el)
	case actionNotify:
		switch st.Kind {
		case "", "success":
			page.ShowSuccessMessage(st.Message)
		case "error":
			page.ShowErrorMessage(st.Message)
		default:
			return fmt.Errorf("unknown notice kind %q", st.Kind)
		}
	case actionStatus:
		el, err := st.element(doc)
		if err != nil {
			return err
		}
		page.UpdateCompetitionStatus(el, st.Status)
	case actionProgress:
		page.ShowProgress(st.Percent)
	case actionHide:
		page.HideProgress()
	case actionPoints:
		page.UpdatePointsDisplay(st.Points)
	case actionWait:
		page.Scheduler().Step(clock, time.Duration(st.WaitMS)*time.Millisecond)
	default:
		return fmt.Errorf("unknown action %q", st.Action)
	}
	return nil
}

func (st Step) element(doc *dom.HTMLDocument) (*dom.Element, error) {
	if st.Target == "" {
		return nil, fmt.Errorf("target is required")
	}
	el, ok := doc.Query(st.Target).(*dom.Element)
	if !ok || el == nil {
		return nil, fmt.Errorf("no element matches %q", st.Target)
	}
	return el, nil
}
