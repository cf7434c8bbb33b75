package orbita

import (
	"errors"
	"testing"
)

func TestResolveEasingCoversEveryPublishedName(t *testing.T) {
	for _, name := range EasingNames() {
		fn, err := resolveEasing(name)
		if err != nil || fn == nil {
			t.Errorf("resolveEasing(%q): fn=%v err=%v", name, fn, err)
		}
	}
}

func TestResolveEasingEmptyDefaultsToLinear(t *testing.T) {
	fn, err := resolveEasing("")
	if err != nil {
		t.Fatalf("resolveEasing(\"\"): %v", err)
	}
	// Linear easing: halfway through, halfway there.
	if got := fn(0.5, 0, 10, 1); got != 5 {
		t.Errorf("default easing at t=0.5 = %v, want 5", got)
	}
}

func TestResolveEasingRejectsUnknownNames(t *testing.T) {
	if _, err := resolveEasing("swoosh"); !errors.Is(err, ErrUnknownEasing) {
		t.Errorf("err = %v, want ErrUnknownEasing", err)
	}
}
