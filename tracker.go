package orbita

// SequenceTracker observes step completions on an Engine through
// callback registration. It is a plain wrapper over the engine's event
// hook — composition, not a subclassed animation manager — so it can be
// attached and discarded without touching engine internals.
type SequenceTracker struct {
	completed int
	lastStep  Step
	hasLast   bool
	onAll     func()
	expected  int
}

// NewSequenceTracker attaches a tracker to the engine.
func NewSequenceTracker(e *Engine) *SequenceTracker {
	t := &SequenceTracker{}
	e.OnStepComplete(t.record)
	return t
}

// ExpectSteps arms the tracker to fire fn once count further steps have
// completed. Cancelled steps never count.
func (t *SequenceTracker) ExpectSteps(count int, fn func()) {
	t.expected = t.completed + count
	t.onAll = fn
}

// Completed returns the number of steps observed since attachment.
func (t *SequenceTracker) Completed() int { return t.completed }

// LastStep returns the most recently completed step, if any.
func (t *SequenceTracker) LastStep() (Step, bool) {
	return t.lastStep, t.hasLast
}

func (t *SequenceTracker) record(step Step) {
	t.completed++
	t.lastStep = step
	t.hasLast = true
	if t.onAll != nil && t.completed >= t.expected {
		fn := t.onAll
		t.onAll = nil
		fn()
	}
}
