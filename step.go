package orbita

import (
	"fmt"
	"math"
)

// Property keys accepted in a Delta. Unrecognized keys are ignored at
// play time, not rejected.
const (
	PropScaleX        = "scale.x"
	PropScaleY        = "scale.y"
	PropScaleZ        = "scale.z"
	PropPositionX     = "position.x"
	PropPositionY     = "position.y"
	PropPositionZ     = "position.z"
	PropRotationX     = "rotation.x"
	PropRotationZ     = "rotation.z"
	PropImageScale    = "imageScale"
	PropRotationSpeed = "rotationSpeed"
)

// Delta is a partial property bag: only the keys present are animated,
// every other property keeps its current value for the whole step.
// "rotation.y" is deliberately not a valid key — the y axis is driven by
// the continuous spin and queued steps must never overwrite it.
type Delta map[string]float64

// clone returns a shallow copy so queued steps are immune to caller
// mutation after enqueue.
func (d Delta) clone() Delta {
	if d == nil {
		return nil
	}
	c := make(Delta, len(d))
	for k, v := range d {
		c[k] = v
	}
	return c
}

// Step is a single queued interpolation. Exactly one of the explicit
// timing fields or Keyframe governs timing at play time: when responsive
// mode is enabled and Keyframe names an entry in the keyframe table, the
// table's duration/delay/easing replace the explicit fields.
type Step struct {
	// Target holds the properties to interpolate toward. A nil or empty
	// Target is a valid "no change" step; it still honors timing and
	// fires OnComplete.
	Target Delta

	// Duration and Delay are in milliseconds.
	Duration float64
	Delay    float64

	// Easing names a curve in the easing table. Empty means linear.
	Easing string

	// Keyframe optionally names a shared timing triple.
	Keyframe string

	// OnComplete fires once when the step finishes. It does not fire if
	// the step is cancelled by Stop or a breakpoint change.
	OnComplete func()
}

// validate rejects numeric input that would otherwise propagate NaN
// through the interpolation math.
func (s *Step) validate() error {
	if math.IsNaN(s.Duration) || s.Duration < 0 {
		return fmt.Errorf("orbita: step duration must be >= 0, got %v", s.Duration)
	}
	if math.IsNaN(s.Delay) || s.Delay < 0 {
		return fmt.Errorf("orbita: step delay must be >= 0, got %v", s.Delay)
	}
	for key, v := range s.Target {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("orbita: step target %q is not finite: %v", key, v)
		}
		if key == PropImageScale && v <= 0 {
			return fmt.Errorf("orbita: step target imageScale must be > 0, got %v", v)
		}
	}
	if _, err := resolveEasing(s.Easing); err != nil {
		return err
	}
	return nil
}
