package orbita

import "testing"

func testBreakpoints() map[string]float64 {
	return map[string]float64{
		"mobile":     0,
		"tablet":     768,
		"desktop":    1024,
		"widescreen": 1440,
	}
}

func TestResolveSelectsHighestQualifyingThreshold(t *testing.T) {
	r, err := NewBreakpointResolver(testBreakpoints(), 0)
	if err != nil {
		t.Fatalf("NewBreakpointResolver: %v", err)
	}

	widths := []float64{0, 767, 768, 1023, 1440, 5000}
	want := []string{"mobile", "mobile", "tablet", "tablet", "widescreen", "widescreen"}
	for i, w := range widths {
		if got := r.Resolve(w); got != want[i] {
			t.Errorf("Resolve(%v) = %q, want %q", w, got, want[i])
		}
	}
}

func TestResolveFloorsBelowLowestThreshold(t *testing.T) {
	r, err := NewBreakpointResolver(map[string]float64{"small": 400, "large": 1200}, 100)
	if err != nil {
		t.Fatalf("NewBreakpointResolver: %v", err)
	}
	// 100 is below every minimum; the lowest-threshold entry is the floor.
	if got := r.Resolve(100); got != "small" {
		t.Errorf("Resolve(100) = %q, want %q", got, "small")
	}
	if r.Current() != "small" {
		t.Errorf("Current() = %q, want %q", r.Current(), "small")
	}
}

func TestEmptyBreakpointTableRejected(t *testing.T) {
	if _, err := NewBreakpointResolver(nil, 0); err == nil {
		t.Fatal("empty table should be rejected")
	}
}

func TestDebounceFiresOnceWithNewAndPrevious(t *testing.T) {
	r, _ := NewBreakpointResolver(testBreakpoints(), 320)
	fired := 0
	var gotNew, gotOld string
	r.OnChange = func(newBp, oldBp string) {
		fired++
		gotNew, gotOld = newBp, oldBp
	}

	// Several resize events inside one debounce window: the timer
	// resets each time and only the final width counts.
	r.SetViewportWidth(800)
	r.Update(0.1)
	r.SetViewportWidth(900)
	r.Update(0.1)
	r.SetViewportWidth(1500)
	r.Update(0.1)
	if fired != 0 {
		t.Fatal("change fired before the quiet window elapsed")
	}

	r.Update(0.05)
	if fired != 1 {
		t.Fatalf("fired %d times, want exactly 1", fired)
	}
	if gotNew != "widescreen" || gotOld != "mobile" {
		t.Errorf("OnChange(%q, %q), want (widescreen, mobile)", gotNew, gotOld)
	}
	if r.Current() != "widescreen" {
		t.Errorf("Current() = %q after change", r.Current())
	}
}

func TestDebounceSameTierDoesNotFire(t *testing.T) {
	r, _ := NewBreakpointResolver(testBreakpoints(), 800)
	fired := 0
	r.OnChange = func(newBp, oldBp string) { fired++ }

	r.SetViewportWidth(900) // still tablet
	r.Update(0.2)
	if fired != 0 {
		t.Errorf("fired %d times for a same-tier resize, want 0", fired)
	}
}

func TestUpdateIdleIsNoOp(t *testing.T) {
	r, _ := NewBreakpointResolver(testBreakpoints(), 800)
	fired := 0
	r.OnChange = func(newBp, oldBp string) { fired++ }
	for i := 0; i < 10; i++ {
		r.Update(1)
	}
	if fired != 0 || r.Current() != "tablet" {
		t.Error("idle resolver must not change state")
	}
}
