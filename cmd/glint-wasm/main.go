//go:build js && wasm

// Command glint-wasm runs the page behaviour in the browser and exposes the
// page API on window for server-rendered templates.
package main

import (
	"context"
	"math"
	"syscall/js"

	"github.com/zoobzio/glint"
	"github.com/zoobzio/glint/dom/jsdom"
)

func main() {
	doc := jsdom.New()
	page := glint.NewPage(doc)

	if err := page.Bootstrap(context.Background()); err != nil {
		js.Global().Get("console").Call("error", "glint: "+err.Error())
		return
	}

	window := js.Global()
	expose := func(name string, fn func(args []js.Value) any) {
		window.Set(name, js.FuncOf(func(_ js.Value, args []js.Value) any {
			return fn(args)
		}))
	}

	expose("validateField", func(args []js.Value) any {
		if len(args) < 1 {
			return nil
		}
		return page.ValidateField(doc.Wrap(args[0])).String()
	})
	expose("updatePointsDisplay", func(args []js.Value) any {
		if len(args) < 1 {
			return nil
		}
		if n, ok := points(args[0]); ok {
			page.UpdatePointsDisplay(n)
		}
		return nil
	})
	expose("showSuccessMessage", func(args []js.Value) any {
		if len(args) < 1 {
			return nil
		}
		page.ShowSuccessMessage(text(args[0]))
		return nil
	})
	expose("showErrorMessage", func(args []js.Value) any {
		if len(args) < 1 {
			return nil
		}
		page.ShowErrorMessage(text(args[0]))
		return nil
	})
	expose("updateCompetitionStatus", func(args []js.Value) any {
		if len(args) < 2 {
			return nil
		}
		page.UpdateCompetitionStatus(doc.Wrap(args[0]), text(args[1]))
		return nil
	})
	expose("showProgress", func(args []js.Value) any {
		if len(args) < 1 {
			return nil
		}
		page.ShowProgress(number(args[0]))
		return nil
	})
	expose("hideProgress", func(_ []js.Value) any {
		page.HideProgress()
		return nil
	})

	select {}
}

// number converts v the way script arithmetic does, so "12" is 12 and
// anything unparsable is NaN.
func number(v js.Value) float64 {
	return js.Global().Call("Number", v).Float()
}

// points reads a points total. Values that are not finite numbers are
// dropped.
func points(v js.Value) (int, bool) {
	n := number(v)
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false
	}
	return int(n), true
}

// text converts v the way template interpolation does.
func text(v js.Value) string {
	return js.Global().Call("String", v).String()
}
