package prefabs

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/tmago/duel/adapt"
	"github.com/tmago/duel/agent"
	"github.com/tmago/duel/telemetry"
)

// DuelSpec is the full external configuration surface: tracker window,
// classifier thresholds, adaptation cadence and presets, and the agent's
// base parameters.
type DuelSpec struct {
	Tracker    TrackerSpec      `yaml:"tracker"`
	Classifier adapt.Thresholds `yaml:"classifier"`
	Adaptation AdaptationSpec   `yaml:"adaptation"`
	Enemy      agent.Data       `yaml:"enemy"`

	// ScoreScript is an optional tengo script adjusting chase action
	// scores. Empty disables the hook.
	ScoreScript string `yaml:"score_script"`
}

type TrackerSpec struct {
	WindowSeconds   float64 `yaml:"window_seconds"`
	SampleInterval  float64 `yaml:"sample_interval"`
	FrequencyAnchor float64 `yaml:"frequency_anchor"`
	DistanceAnchor  float64 `yaml:"distance_anchor"`
}

func (t TrackerSpec) Window() time.Duration {
	return time.Duration(t.WindowSeconds * float64(time.Second))
}

func (t TrackerSpec) Interval() time.Duration {
	return time.Duration(t.SampleInterval * float64(time.Second))
}

func (t TrackerSpec) Anchors() telemetry.Anchors {
	return telemetry.Anchors{Frequency: t.FrequencyAnchor, Distance: t.DistanceAnchor}
}

type AdaptationSpec struct {
	EvaluationSeconds float64                 `yaml:"evaluation_seconds"`
	TransitionSeconds float64                 `yaml:"transition_seconds"`
	Presets           map[string]adapt.Tuning `yaml:"presets"`
}

var styleNames = map[string]adapt.Style{
	"balanced":   adapt.StyleBalanced,
	"aggressive": adapt.StyleAggressive,
	"defensive":  adapt.StyleDefensive,
	"aerial":     adapt.StyleAerial,
	"ranged":     adapt.StyleRanged,
}

// ControllerConfig converts the spec into the adaptation controller's
// config. Presets keyed by unknown style names are an error; missing styles
// fall back to the built-in preset for that style.
func (s DuelSpec) ControllerConfig() (adapt.Config, error) {
	cfg := adapt.Config{
		Thresholds:         s.Classifier,
		Presets:            adapt.DefaultPresets(),
		EvaluationInterval: time.Duration(s.Adaptation.EvaluationSeconds * float64(time.Second)),
		TransitionDuration: time.Duration(s.Adaptation.TransitionSeconds * float64(time.Second)),
	}
	for name, tuning := range s.Adaptation.Presets {
		style, ok := styleNames[name]
		if !ok {
			return cfg, fmt.Errorf("prefabs: unknown style %q in presets", name)
		}
		cfg.Presets[style] = tuning
	}
	return cfg, nil
}

// LoadSpec decodes a yaml document into T.
func LoadSpec[T any](data []byte) (T, error) {
	var out T
	if err := yaml.Unmarshal(data, &out); err != nil {
		var zero T
		return zero, fmt.Errorf("prefabs: decode spec: %w", err)
	}
	return out, nil
}

// LoadDuelSpec reads a duel spec from disk, falling back to the embedded
// default when path is empty.
func LoadDuelSpec(path string) (DuelSpec, error) {
	data, err := Load(path)
	if err != nil {
		return DuelSpec{}, err
	}
	return LoadSpec[DuelSpec](data)
}
