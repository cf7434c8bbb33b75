package orbita

import (
	"fmt"

	"github.com/tanema/gween"
)

// settleDelay is the fixed pause between a confirmed breakpoint change
// and the start of the new tier's sequence, in seconds.
const settleDelay = 0.1

// timeEps absorbs the rounding drift of summed ticks when deciding step
// completion. A nanosecond of animation time is far below one frame.
const timeEps = 1e-9

// Cell is a shared scalar side channel (the size multiplier and the
// rotation speed). Set drops writes that do not change the value, so an
// expensive observer — the morph pass in particular — never runs for a
// tween tick that produced the same value as the last one.
//
// The guard is exact float64 equality. A plateauing tween can therefore
// suppress a write of an identical value, which is the point; it can
// never suppress a write of a different one.
type Cell struct {
	value    float64
	onChange func(float64)
}

// NewCell creates a cell with an initial value and an optional observer.
// The observer is not called for the initial value.
func NewCell(initial float64, onChange func(float64)) *Cell {
	return &Cell{value: initial, onChange: onChange}
}

// Get returns the current value.
func (c *Cell) Get() float64 { return c.value }

// Set stores v and notifies the observer, unless v equals the current
// value exactly.
func (c *Cell) Set(v float64) {
	if v == c.value {
		return
	}
	c.value = v
	if c.onChange != nil {
		c.onChange(v)
	}
}

// propTween is one animated property within the active step.
type propTween struct {
	key string
	tw  *gween.Tween
}

// activeStep is the single in-flight interpolation.
type activeStep struct {
	step      Step
	delay     float64 // seconds until interpolation begins
	remaining float64 // seconds of interpolation left (drives empty-target steps)
	tweens    []propTween
	started   bool // snapshot taken and tweens built
}

// Engine is a strictly ordered cooperative scheduler: it owns a FIFO of
// steps, runs at most one interpolation at a time, and advances to the
// next queued step automatically. It holds non-owning references to the
// animated Transform and to the two side-channel cells, mutating them as
// a side effect of each Update tick.
//
// All methods must be called from the same goroutine that calls Update.
type Engine struct {
	target        *Transform
	imageScale    *Cell
	rotationSpeed *Cell

	keyframes  KeyframeTable
	responsive bool

	queue  []Step
	active *activeStep

	// Pending sequence scheduled by a breakpoint change.
	settle  float64
	pending []Step

	sequences map[string][]Step

	completionListeners []func(Step)

	logf func(format string, args ...any)
}

// NewEngine creates an engine writing to target and the given cells.
// Nil arguments get detached defaults so a bare engine is still usable
// in isolation (and in tests).
func NewEngine(target *Transform, imageScale, rotationSpeed *Cell, keyframes KeyframeTable) *Engine {
	if target == nil {
		target = NewTransform()
	}
	if imageScale == nil {
		imageScale = NewCell(1, nil)
	}
	if rotationSpeed == nil {
		rotationSpeed = NewCell(0, nil)
	}
	return &Engine{
		target:        target,
		imageScale:    imageScale,
		rotationSpeed: rotationSpeed,
		keyframes:     keyframes,
		sequences:     make(map[string][]Step),
		logf:          debugLogf,
	}
}

// SetResponsiveMode enables keyframe-reference resolution. While
// enabled, a step's Keyframe overrides its explicit timing at enqueue.
func (e *Engine) SetResponsiveMode(enabled bool) {
	e.responsive = enabled
}

// Target returns the transform the engine animates.
func (e *Engine) Target() *Transform { return e.target }

// IsPlaying reports whether a step is currently interpolating or
// delayed.
func (e *Engine) IsPlaying() bool { return e.active != nil }

// QueueLen returns the number of queued-but-not-started steps.
func (e *Engine) QueueLen() int { return len(e.queue) }

// OnStepComplete registers a listener invoked after each step's own
// OnComplete callback. Listeners observe completed steps only; cancelled
// steps are never reported. This is the composition point for
// completion-tracking wrappers such as SequenceTracker.
func (e *Engine) OnStepComplete(fn func(Step)) {
	e.completionListeners = append(e.completionListeners, fn)
}

// resolveTiming applies the keyframe table to a step. The keyframe wins
// only while responsive mode is enabled; a lookup miss is recoverable
// and leaves the step's explicit timing in place.
func (e *Engine) resolveTiming(step *Step) {
	if !e.responsive || step.Keyframe == "" {
		return
	}
	kf, ok := e.keyframes.Lookup(step.Keyframe)
	if !ok {
		e.logf("keyframe %q not found; using step's explicit timing", step.Keyframe)
		return
	}
	step.Duration = kf.Duration
	step.Delay = kf.Delay
	step.Easing = kf.Easing
}

// Enqueue validates step, resolves its keyframe timing, and appends it
// to the queue. If nothing is playing, playback of the queue head begins
// on the next Update tick. Unknown easing names and invalid numerics are
// rejected here, before any interpolation math can see them.
func (e *Engine) Enqueue(step Step) error {
	e.resolveTiming(&step)
	if err := step.validate(); err != nil {
		return err
	}
	step.Target = step.Target.clone()
	e.queue = append(e.queue, step)
	return nil
}

// PlaySequence enqueues every step in order. The whole sequence is
// validated before any step is queued, so a bad step cannot leave a
// half-enqueued sequence behind.
func (e *Engine) PlaySequence(steps []Step) error {
	resolved := make([]Step, len(steps))
	for i, step := range steps {
		e.resolveTiming(&step)
		if err := step.validate(); err != nil {
			return fmt.Errorf("step %d: %w", i, err)
		}
		step.Target = step.Target.clone()
		resolved[i] = step
	}
	e.queue = append(e.queue, resolved...)
	return nil
}

// RegisterSequence stores a named step sequence for breakpoint-driven
// playback. Validation happens here so OnBreakpointChange cannot fail.
func (e *Engine) RegisterSequence(name string, steps []Step) error {
	resolved := make([]Step, len(steps))
	for i, step := range steps {
		e.resolveTiming(&step)
		if err := step.validate(); err != nil {
			return fmt.Errorf("sequence %q step %d: %w", name, i, err)
		}
		step.Target = step.Target.clone()
		resolved[i] = step
	}
	e.sequences[name] = resolved
	return nil
}

// Stop cancels the in-flight interpolation, freezing the target at its
// last interpolated value, and discards all queued steps. The cancelled
// step's OnComplete never fires. Stopping an idle engine is a no-op.
func (e *Engine) Stop() {
	e.active = nil
	e.queue = e.queue[:0]
	e.pending = nil
	e.settle = 0
}

// OnBreakpointChange stops playback and schedules the sequence
// registered for newBp after a short settle delay. Unregistered
// breakpoints just stop (recoverable, logged).
func (e *Engine) OnBreakpointChange(newBp, oldBp string) {
	e.Stop()
	steps, ok := e.sequences[newBp]
	if !ok {
		e.logf("no sequence registered for breakpoint %q (was %q)", newBp, oldBp)
		return
	}
	e.pending = steps
	e.settle = settleDelay
}

// Update advances the engine by dt seconds of wall-clock time. It must
// be called once per frame; it is a no-op while nothing is playing,
// queued, or pending.
func (e *Engine) Update(dt float64) {
	if e.settle > 0 {
		if e.settle > dt {
			e.settle -= dt
			return
		}
		// The settle consumes only its share of the tick; the remainder
		// advances the newly queued sequence.
		dt -= e.settle
		e.settle = 0
		e.queue = append(e.queue, e.pending...)
		e.pending = nil
	}

	if e.active == nil {
		e.startNext()
	}
	a := e.active
	if a == nil {
		return
	}

	if !a.started {
		if a.delay > dt {
			a.delay -= dt
			return
		}
		// Delay expires this tick; the remainder advances interpolation.
		dt -= a.delay
		a.delay = 0
		e.beginInterpolation(a)
	}

	done := a.remaining <= dt+timeEps
	a.remaining -= dt
	if !done {
		for _, pt := range a.tweens {
			v, _ := pt.tw.Update(float32(dt))
			e.applyProp(pt.key, float64(v))
		}
		return
	}

	// The engine's clock is authoritative for completion; gween
	// accumulates elapsed time in float32, which can lag the tick sum
	// past the duration, and a zero-duration tween reports its begin
	// value. Land every property exactly on its end value instead of
	// asking the tweens.
	for key, end := range a.step.Target {
		if _, ok := e.currentValue(key); ok {
			e.applyProp(key, end)
		}
	}

	step := a.step
	e.active = nil
	if step.OnComplete != nil {
		step.OnComplete()
	}
	for _, fn := range e.completionListeners {
		fn(step)
	}
	// The next step starts on the following tick; leftover dt is not
	// carried across step boundaries.
	e.startNext()
}

// startNext promotes the queue head to the active step.
func (e *Engine) startNext() {
	if len(e.queue) == 0 {
		return
	}
	step := e.queue[0]
	copy(e.queue, e.queue[1:])
	e.queue = e.queue[:len(e.queue)-1]
	e.active = &activeStep{
		step:  step,
		delay: step.Delay / 1000,
	}
}

// beginInterpolation takes a fresh snapshot of the target and builds one
// tween per property present in the step's delta. Keys absent from the
// delta get no tween at all, which is what makes this a partial update:
// their values are simply never written.
func (e *Engine) beginInterpolation(a *activeStep) {
	a.started = true
	a.remaining = a.step.Duration / 1000

	// Easing was validated at enqueue; a table miss here is impossible.
	fn, err := resolveEasing(a.step.Easing)
	if err != nil {
		e.logf("easing %q vanished between enqueue and play: %v", a.step.Easing, err)
		a.tweens = nil
		return
	}

	duration := float32(a.step.Duration / 1000)
	a.tweens = a.tweens[:0]
	for key, end := range a.step.Target {
		start, ok := e.currentValue(key)
		if !ok {
			// Unrecognized key: ignored, not an error.
			continue
		}
		a.tweens = append(a.tweens, propTween{
			key: key,
			tw:  gween.New(float32(start), float32(end), duration, fn),
		})
	}
}

// currentValue reads the live value behind a property key.
func (e *Engine) currentValue(key string) (float64, bool) {
	switch key {
	case PropScaleX:
		return e.target.Scale.X, true
	case PropScaleY:
		return e.target.Scale.Y, true
	case PropScaleZ:
		return e.target.Scale.Z, true
	case PropPositionX:
		return e.target.Position.X, true
	case PropPositionY:
		return e.target.Position.Y, true
	case PropPositionZ:
		return e.target.Position.Z, true
	case PropRotationX:
		return e.target.Rotation.X, true
	case PropRotationZ:
		return e.target.Rotation.Z, true
	case PropImageScale:
		return e.imageScale.Get(), true
	case PropRotationSpeed:
		return e.rotationSpeed.Get(), true
	}
	return 0, false
}

// applyProp writes an interpolated value to its destination. Scale and
// position write straight onto the transform; rotation writes x and z
// only (y belongs to the spin); the two side channels go through their
// cells, whose equality guard suppresses redundant downstream work.
func (e *Engine) applyProp(key string, v float64) {
	switch key {
	case PropScaleX:
		e.target.Scale.X = v
	case PropScaleY:
		e.target.Scale.Y = v
	case PropScaleZ:
		e.target.Scale.Z = v
	case PropPositionX:
		e.target.Position.X = v
	case PropPositionY:
		e.target.Position.Y = v
	case PropPositionZ:
		e.target.Position.Z = v
	case PropRotationX:
		e.target.Rotation.X = v
	case PropRotationZ:
		e.target.Rotation.Z = v
	case PropImageScale:
		e.imageScale.Set(v)
	case PropRotationSpeed:
		e.rotationSpeed.Set(v)
	}
}

// Dispose stops playback and drops all registered sequences and
// listeners. The engine must not be used afterwards.
func (e *Engine) Dispose() {
	e.Stop()
	e.sequences = nil
	e.completionListeners = nil
}
