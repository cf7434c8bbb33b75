package orbita

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// CameraSettings are the per-breakpoint camera overrides. Distance is
// how far the camera sits from the globe center along +Z; FOV is the
// vertical field of view in degrees.
type CameraSettings struct {
	Distance float64 `yaml:"distance"`
	FOV      float64 `yaml:"fov"`
}

// GlobeSettings are the per-breakpoint globe overrides.
type GlobeSettings struct {
	Radius        float64 `yaml:"radius"`
	RotationSpeed float64 `yaml:"rotationSpeed"`
	ImageScale    float64 `yaml:"imageScale"`
	Segments      int     `yaml:"segments"`
}

// ParticleSettings are carried through for the consumer's particle-orbit
// layer; orbita itself does not render particles.
type ParticleSettings struct {
	Count  int     `yaml:"count"`
	Radius float64 `yaml:"radius"`
	Size   float64 `yaml:"size"`
}

// BreakpointSettings bundles every per-breakpoint override.
type BreakpointSettings struct {
	Camera    CameraSettings   `yaml:"camera"`
	Globe     GlobeSettings    `yaml:"globe"`
	Particles ParticleSettings `yaml:"particles"`
}

// StepConfig is the YAML shape of a single animation step. Each step is
// either fully explicit (duration/delay/easing) or keyframe-referencing.
type StepConfig struct {
	Target   map[string]float64 `yaml:"target"`
	Duration float64            `yaml:"duration"`
	Delay    float64            `yaml:"delay"`
	Easing   string             `yaml:"easing"`
	Keyframe string             `yaml:"keyframe"`
}

// Step converts the config shape into an engine step.
func (sc StepConfig) Step() Step {
	return Step{
		Target:   Delta(sc.Target).clone(),
		Duration: sc.Duration,
		Delay:    sc.Delay,
		Easing:   sc.Easing,
		Keyframe: sc.Keyframe,
	}
}

// Config is the full responsive configuration: the breakpoint table,
// the shared keyframe timing table, per-breakpoint step sequences, and
// per-breakpoint settings. A Config is loaded once and treated as
// read-only by every consumer; overrides go through Merge, which
// produces a new value and never mutates the base.
type Config struct {
	Breakpoints map[string]float64            `yaml:"breakpoints"`
	Keyframes   KeyframeTable                 `yaml:"keyframes"`
	Sequences   map[string][]StepConfig       `yaml:"sequences"`
	Settings    map[string]BreakpointSettings `yaml:"settings"`
}

// LoadConfig parses a YAML configuration document.
func LoadConfig(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("orbita: parse config: %w", err)
	}
	if len(cfg.Breakpoints) == 0 {
		return nil, fmt.Errorf("orbita: config has no breakpoints")
	}
	for name, kf := range cfg.Keyframes {
		if kf.Duration < 0 || kf.Delay < 0 {
			return nil, fmt.Errorf("orbita: keyframe %q has negative timing", name)
		}
		if _, err := resolveEasing(kf.Easing); err != nil {
			return nil, fmt.Errorf("orbita: keyframe %q: %w", name, err)
		}
	}
	return &cfg, nil
}

// SettingsFor returns the settings bundle for a breakpoint name. The
// zero value is returned for unknown names (recoverable, logged).
func (c *Config) SettingsFor(name string) BreakpointSettings {
	s, ok := c.Settings[name]
	if !ok {
		debugLogf("no settings for breakpoint %q", name)
	}
	return s
}

// Merge returns a new Config with override applied on top of base.
// Map entries in override replace same-named entries in base; maps
// absent from override are copied from base unchanged. Neither input is
// mutated.
func Merge(base, override *Config) *Config {
	out := &Config{
		Breakpoints: mergeMaps(base.Breakpoints, override.Breakpoints),
		Keyframes:   mergeMaps(base.Keyframes, override.Keyframes),
		Sequences:   mergeSequences(base.Sequences, override.Sequences),
		Settings:    mergeMaps(base.Settings, override.Settings),
	}
	return out
}

// mergeMaps copies base then lays override entries over it.
func mergeMaps[M ~map[string]V, V any](base, override M) M {
	out := make(M, len(base)+len(override))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range override {
		out[k] = v
	}
	return out
}

// mergeSequences deep-copies step slices so the result shares no backing
// arrays with either input.
func mergeSequences(base, override map[string][]StepConfig) map[string][]StepConfig {
	out := make(map[string][]StepConfig, len(base)+len(override))
	for k, v := range base {
		out[k] = append([]StepConfig(nil), v...)
	}
	for k, v := range override {
		out[k] = append([]StepConfig(nil), v...)
	}
	return out
}
