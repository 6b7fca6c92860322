package dom

import (
	"sync"

	"github.com/andybalholm/cascadia"
)

// selectors caches compiled selectors. Role-class selectors are reused on
// every event, so compiling once matters.
var selectors sync.Map // map[string]cascadia.Selector

// compile returns the compiled selector, or false when the selector is
// malformed. A malformed selector matches nothing.
func compile(selector string) (cascadia.Selector, bool) {
	if cached, ok := selectors.Load(selector); ok {
		sel, valid := cached.(cascadia.Selector)
		return sel, valid
	}
	sel, err := cascadia.Compile(selector)
	if err != nil {
		selectors.Store(selector, false)
		return nil, false
	}
	selectors.Store(selector, sel)
	return sel, true
}
