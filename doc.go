/*
Package glint provides the interactive behaviour of a server-rendered page:
live form validation, debounced handlers, click ripples, loading buttons,
transient notices, competition status transitions, progress and points
displays.

glint works on a dom.Document. In the browser that is the real DOM through
dom/jsdom (GOOS=js GOARCH=wasm). Everywhere else it is an in-memory
dom.HTMLDocument, which is how the behaviour is tested and how cmd/glint
replays sessions headlessly.

# Basic Usage

Wrap the document in a Page and bootstrap it once it is loaded:

	page := glint.NewPage(doc)
	if err := page.Bootstrap(ctx); err != nil {
	    return err
	}

Bootstrap wires entrance animations, form listeners, hover effects,
responsive behaviour, keyboard shortcuts and lazy images. The page API can
be called with or without it:

	page.ShowSuccessMessage("Great-booking complete!")
	page.UpdatePointsDisplay(4)
	page.UpdateCompetitionStatus(card, "closed")
	page.ShowProgress(40)

Every missing target element is a silent no-op.

# Validation

A form control is validated from its value, type, required, min and max
attributes. The verdict is Neutral, Valid or Invalid and is mirrored as the
valid / invalid class on the control's container:

	verdict := page.ValidateField(input)

Validate applies the same rules to a Field snapshot without touching the
document.

# Timing

Every delayed follow-up runs on the page's Scheduler. Pass a
clockz.FakeClock to make time explicit:

	clock := clockz.NewFakeClock()
	page := glint.NewPage(doc, glint.WithClock(clock))

	page.ShowErrorMessage("Sorry, that email wasn't found.")
	page.Scheduler().Step(clock, 5*time.Second) // the notice starts fading

Debouncer collapses bursts of calls into one delayed call with the latest
arguments:

	d := glint.NewDebouncer(relayout, 250*time.Millisecond).Clock(clock)

# Configuration

Delays, labels and the mobile breakpoint come from Config. DefaultConfig
matches the stock stylesheet; LoadConfig decodes YAML or JSON over it and
validates the result. A Reloader watches a Source and applies each accepted
change:

	r := glint.NewReloader(glint.NewFileSource("page.yaml"),
	    func(ctx context.Context, _, curr glint.Config) error {
	        return page.Apply(curr)
	    },
	).Codec(glint.YAMLCodec{}).Seed(glint.DefaultConfig)

# Observability

glint emits capitan signals (see signals.go and fields.go) for bootstrap,
validation, notices, loading, ripples, status, progress, points and config
reloads. A MetricsProvider receives counters and lifetimes.
*/
package glint
