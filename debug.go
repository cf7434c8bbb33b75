package orbita

import (
	"fmt"
	"os"
)

// globalDebug enables verbose logging of recoverable conditions (missing
// keyframes, unregistered breakpoint sequences, skipped batch items).
// Mirrors the most recent SetDebugMode call; orbita is single-threaded
// so a plain bool suffices.
var globalDebug bool

// SetDebugMode toggles verbose logging to stderr.
func SetDebugMode(enabled bool) {
	globalDebug = enabled
}

// debugLogf prints a recoverable-condition message to stderr when debug
// mode is on. Hard failures are returned as errors, never logged here.
func debugLogf(format string, args ...any) {
	if !globalDebug {
		return
	}
	_, _ = fmt.Fprintf(os.Stderr, "[orbita] "+format+"\n", args...)
}
