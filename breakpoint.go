package orbita

import (
	"fmt"
	"sort"
)

// debounceWindow is the quiet period a viewport width must hold before a
// breakpoint change is confirmed, in seconds.
const debounceWindow = 0.15

// breakpointEntry pairs a tier name with its minimum viewport width.
type breakpointEntry struct {
	name     string
	minWidth float64
}

// BreakpointResolver deterministically maps a viewport width to a named
// breakpoint. Width changes are debounced: re-entrant changes inside an
// in-flight quiet window reset the timer, and a confirmed change fires
// the transition callback exactly once with (new, previous), no matter
// how many resize events landed inside the window.
//
// The debounce is counted down by Update ticks, keeping the resolver
// inside the single-threaded cooperative model.
type BreakpointResolver struct {
	entries []breakpointEntry // sorted descending by minWidth
	current string

	pendingWidth float64
	debounce     float64 // remaining quiet time; 0 = idle

	// OnChange fires when a debounced width lands in a different tier.
	OnChange func(newBp, oldBp string)
}

// NewBreakpointResolver builds a resolver from a name→min-width table
// and resolves the initial width without firing OnChange.
func NewBreakpointResolver(breakpoints map[string]float64, initialWidth float64) (*BreakpointResolver, error) {
	if len(breakpoints) == 0 {
		return nil, fmt.Errorf("orbita: breakpoint table is empty")
	}
	entries := make([]breakpointEntry, 0, len(breakpoints))
	for name, min := range breakpoints {
		if min < 0 {
			return nil, fmt.Errorf("orbita: breakpoint %q has negative min width %v", name, min)
		}
		entries = append(entries, breakpointEntry{name: name, minWidth: min})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].minWidth != entries[j].minWidth {
			return entries[i].minWidth > entries[j].minWidth
		}
		return entries[i].name < entries[j].name
	})
	r := &BreakpointResolver{entries: entries}
	r.current = r.Resolve(initialWidth)
	return r, nil
}

// Resolve returns the name of the highest-threshold breakpoint whose
// minimum width is <= width. When none qualifies, the lowest-threshold
// entry acts as the floor.
func (r *BreakpointResolver) Resolve(width float64) string {
	for _, e := range r.entries {
		if e.minWidth <= width {
			return e.name
		}
	}
	return r.entries[len(r.entries)-1].name
}

// Current returns the active breakpoint name.
func (r *BreakpointResolver) Current() string { return r.current }

// SetViewportWidth records a resize event. The change is not applied
// until the width has been stable for the debounce window.
func (r *BreakpointResolver) SetViewportWidth(width float64) {
	r.pendingWidth = width
	r.debounce = debounceWindow
}

// Update advances the debounce timer by dt seconds and fires OnChange if
// a quiet window just elapsed on a tier change.
func (r *BreakpointResolver) Update(dt float64) {
	if r.debounce <= 0 {
		return
	}
	r.debounce -= dt
	if r.debounce > 0 {
		return
	}
	r.debounce = 0
	next := r.Resolve(r.pendingWidth)
	if next == r.current {
		return
	}
	prev := r.current
	r.current = next
	if r.OnChange != nil {
		r.OnChange(next, prev)
	}
}
