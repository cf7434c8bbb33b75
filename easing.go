package orbita

import (
	"fmt"

	"github.com/tanema/gween/ease"
)

// ErrUnknownEasing is returned when a step or keyframe names an easing
// curve that is not in the table. Unknown easings fail fast at enqueue
// time: silently defaulting would corrupt animation pacing invisibly.
var ErrUnknownEasing = fmt.Errorf("orbita: unknown easing")

// easingTable maps config-facing names to gween easing functions. The
// table is fixed; it is the full set of curves gween ships.
var easingTable = map[string]ease.TweenFunc{
	"linear":         ease.Linear,
	"in-quad":        ease.InQuad,
	"out-quad":       ease.OutQuad,
	"in-out-quad":    ease.InOutQuad,
	"in-cubic":       ease.InCubic,
	"out-cubic":      ease.OutCubic,
	"in-out-cubic":   ease.InOutCubic,
	"in-quart":       ease.InQuart,
	"out-quart":      ease.OutQuart,
	"in-out-quart":   ease.InOutQuart,
	"in-quint":       ease.InQuint,
	"out-quint":      ease.OutQuint,
	"in-out-quint":   ease.InOutQuint,
	"in-sine":        ease.InSine,
	"out-sine":       ease.OutSine,
	"in-out-sine":    ease.InOutSine,
	"in-expo":        ease.InExpo,
	"out-expo":       ease.OutExpo,
	"in-out-expo":    ease.InOutExpo,
	"in-circ":        ease.InCirc,
	"out-circ":       ease.OutCirc,
	"in-out-circ":    ease.InOutCirc,
	"in-back":        ease.InBack,
	"out-back":       ease.OutBack,
	"in-out-back":    ease.InOutBack,
	"in-bounce":      ease.InBounce,
	"out-bounce":     ease.OutBounce,
	"in-out-bounce":  ease.InOutBounce,
	"in-elastic":     ease.InElastic,
	"out-elastic":    ease.OutElastic,
	"in-out-elastic": ease.InOutElastic,
}

// resolveEasing returns the easing function for name. The empty string
// resolves to linear; any other name not in the table is an error.
func resolveEasing(name string) (ease.TweenFunc, error) {
	if name == "" {
		return ease.Linear, nil
	}
	fn, ok := easingTable[name]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownEasing, name)
	}
	return fn, nil
}

// EasingNames returns the names accepted in step and keyframe
// definitions, in no particular order.
func EasingNames() []string {
	names := make([]string, 0, len(easingTable))
	for name := range easingTable {
		names = append(names, name)
	}
	return names
}
