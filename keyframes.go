package orbita

// KeyframeTiming is a named (duration, delay, easing) triple shared
// across all responsive configurations. Durations are in milliseconds.
// Entries are immutable once defined.
type KeyframeTiming struct {
	Duration float64 `yaml:"duration"`
	Delay    float64 `yaml:"delay"`
	Easing   string  `yaml:"easing"`
}

// KeyframeTable resolves keyframe timings by name.
type KeyframeTable map[string]KeyframeTiming

// Lookup returns the named timing. A miss is a recoverable condition:
// callers fall back to their own explicit duration/delay/easing.
func (t KeyframeTable) Lookup(name string) (KeyframeTiming, bool) {
	kf, ok := t[name]
	return kf, ok
}
