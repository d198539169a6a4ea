package prefabs

import (
	"testing"
	"time"

	"github.com/tmago/duel/adapt"
	"github.com/tmago/duel/agent"
)

func TestEmbeddedDefaultSpec(t *testing.T) {
	spec, err := LoadDuelSpec("")
	if err != nil {
		t.Fatalf("embedded default should load: %v", err)
	}

	if spec.Tracker.Window() != 10*time.Second {
		t.Fatalf("expected 10s window, got %v", spec.Tracker.Window())
	}
	if spec.Tracker.Interval() != 500*time.Millisecond {
		t.Fatalf("expected 500ms sample interval, got %v", spec.Tracker.Interval())
	}
	if spec.Classifier.Aggressive != 0.65 {
		t.Fatalf("expected aggressive threshold 0.65, got %v", spec.Classifier.Aggressive)
	}
	if spec.Enemy != agent.DefaultData() {
		t.Fatalf("embedded enemy data should match the built-in defaults\nembedded: %+v\ndefault:  %+v", spec.Enemy, agent.DefaultData())
	}
}

func TestControllerConfigFromSpec(t *testing.T) {
	spec, err := LoadDuelSpec("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	cfg, err := spec.ControllerConfig()
	if err != nil {
		t.Fatalf("controller config: %v", err)
	}
	if cfg.EvaluationInterval != 5*time.Second {
		t.Fatalf("expected 5s evaluation interval, got %v", cfg.EvaluationInterval)
	}
	if cfg.TransitionDuration != 2*time.Second {
		t.Fatalf("expected 2s transition, got %v", cfg.TransitionDuration)
	}
	if got := cfg.Presets[adapt.StyleRanged].Name; got != "anti_ranged" {
		t.Fatalf("expected ranged preset anti_ranged, got %q", got)
	}
	// Styles the spec omits keep their built-in preset.
	if got := cfg.Presets[adapt.StyleBalanced].ChaseSpeedMult; got != 1 {
		t.Fatalf("expected balanced preset untouched, got chase mult %v", got)
	}
}

func TestControllerConfigRejectsUnknownStyle(t *testing.T) {
	spec := DuelSpec{
		Adaptation: AdaptationSpec{
			Presets: map[string]adapt.Tuning{"berserk": {}},
		},
	}
	if _, err := spec.ControllerConfig(); err == nil {
		t.Fatalf("expected an error for unknown style name")
	}
}

func TestLoadSpecRejectsBadYaml(t *testing.T) {
	if _, err := LoadSpec[DuelSpec]([]byte("tracker: [not a map")); err == nil {
		t.Fatalf("expected a decode error")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load("/nonexistent/duel.yaml"); err == nil {
		t.Fatalf("expected an error for a missing file")
	}
}

func TestCompileScoreHook(t *testing.T) {
	hook, err := CompileScoreHook(`
score := func(dash, artillery, attack) {
	return [dash * 2, artillery, 0]
}
`)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}

	out := hook(agent.Scores{Dash: 1, Artillery: 0.5, Attack: 3})
	if out.Dash != 2 {
		t.Fatalf("expected dash doubled to 2, got %v", out.Dash)
	}
	if out.Artillery != 0.5 {
		t.Fatalf("expected artillery passed through, got %v", out.Artillery)
	}
	if out.Attack != 0 {
		t.Fatalf("expected attack zeroed, got %v", out.Attack)
	}
}

func TestCompileScoreHookRejectsBadScript(t *testing.T) {
	if _, err := CompileScoreHook(`score := func(`); err == nil {
		t.Fatalf("expected a compile error")
	}
}
