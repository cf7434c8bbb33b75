package orbita

import "testing"

func TestTrackerFiresOnceAfterExpectedCompletions(t *testing.T) {
	e, _, _ := newTestEngine()
	tr := NewSequenceTracker(e)

	fired := 0
	tr.ExpectSteps(2, func() { fired++ })

	_ = e.PlaySequence([]Step{
		{Target: Delta{PropPositionX: 1}, Duration: 100},
		{Target: Delta{PropPositionX: 2}, Duration: 100},
		{Target: Delta{PropPositionX: 3}, Duration: 100},
	})

	e.Update(0.1)
	if fired != 0 || tr.Completed() != 1 {
		t.Fatalf("after step 1: fired=%d completed=%d", fired, tr.Completed())
	}
	e.Update(0.1)
	if fired != 1 {
		t.Fatalf("fired = %d after two completions, want 1", fired)
	}
	e.Update(0.1)
	if fired != 1 {
		t.Errorf("fired = %d after a third completion, want still 1", fired)
	}
	if tr.Completed() != 3 {
		t.Errorf("Completed() = %d, want 3", tr.Completed())
	}

	last, ok := tr.LastStep()
	if !ok || last.Target[PropPositionX] != 3 {
		t.Errorf("LastStep() = %+v, ok=%v", last, ok)
	}
}

func TestTrackerIgnoresCancelledSteps(t *testing.T) {
	e, _, _ := newTestEngine()
	tr := NewSequenceTracker(e)
	fired := false
	tr.ExpectSteps(1, func() { fired = true })

	_ = e.Enqueue(Step{Target: Delta{PropPositionX: 1}, Duration: 1000})
	e.Update(0.1)
	e.Stop()
	e.Update(1)

	if tr.Completed() != 0 || fired {
		t.Errorf("cancelled step counted: completed=%d fired=%v", tr.Completed(), fired)
	}
	if _, ok := tr.LastStep(); ok {
		t.Error("LastStep should report nothing before any completion")
	}
}
