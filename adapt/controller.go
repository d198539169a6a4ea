package adapt

import (
	"time"

	"github.com/tmago/duel/common"
	"github.com/tmago/duel/telemetry"
)

// ProfileSource supplies the current behavior profile. *telemetry.Tracker
// satisfies it.
type ProfileSource interface {
	Profile() telemetry.Profile
}

// Sink receives style-change notifications. It is observational only and is
// never called when the re-evaluated style is unchanged.
type Sink interface {
	StyleChanged(old, new Style, snapshot telemetry.Profile)
}

// Controller re-classifies the opponent's style on a fixed cadence and, on a
// change, blends the live tuning from its current value to the new style's
// preset over a fixed transition time. Without a profile source it holds the
// default tuning and does nothing; that is the disabled-adaptation mode, not
// an error.
type Controller struct {
	source ProfileSource
	sink   Sink

	thresholds Thresholds
	presets    Presets

	evaluationInterval time.Duration
	transitionDuration time.Duration

	style   Style
	current Tuning

	evaluationTimer time.Duration

	transitioning   bool
	previous        Tuning
	target          Tuning
	transitionTimer time.Duration
}

// Config collects the controller's externally supplied parameters.
type Config struct {
	Thresholds         Thresholds
	Presets            Presets
	EvaluationInterval time.Duration
	TransitionDuration time.Duration
}

func DefaultConfig() Config {
	return Config{
		Thresholds:         DefaultThresholds(),
		Presets:            DefaultPresets(),
		EvaluationInterval: 5 * time.Second,
		TransitionDuration: 2 * time.Second,
	}
}

func NewController(source ProfileSource, sink Sink, cfg Config) *Controller {
	if cfg.EvaluationInterval <= 0 {
		cfg.EvaluationInterval = 5 * time.Second
	}
	if cfg.TransitionDuration <= 0 {
		cfg.TransitionDuration = 2 * time.Second
	}
	if cfg.Presets == nil {
		cfg.Presets = DefaultPresets()
	}
	return &Controller{
		source:             source,
		sink:               sink,
		thresholds:         cfg.Thresholds,
		presets:            cfg.Presets,
		evaluationInterval: cfg.EvaluationInterval,
		transitionDuration: cfg.TransitionDuration,
		style:              StyleBalanced,
		current:            DefaultTuning(),
	}
}

// SetConfig swaps thresholds and presets in place, for config hot reload.
// The committed style and any in-flight transition are kept; the new presets
// take effect at the next style change.
func (c *Controller) SetConfig(cfg Config) {
	if c == nil {
		return
	}
	c.thresholds = cfg.Thresholds
	if cfg.Presets != nil {
		c.presets = cfg.Presets
	}
	if cfg.EvaluationInterval > 0 {
		c.evaluationInterval = cfg.EvaluationInterval
	}
	if cfg.TransitionDuration > 0 {
		c.transitionDuration = cfg.TransitionDuration
	}
}

// Style returns the committed style.
func (c *Controller) Style() Style {
	if c == nil {
		return StyleBalanced
	}
	return c.style
}

// Current returns the live tuning for this tick, clamped to the global band.
func (c *Controller) Current() Tuning {
	if c == nil {
		return DefaultTuning()
	}
	return c.current.Clamped()
}

// Transitioning reports whether a tuning blend is in flight.
func (c *Controller) Transitioning() bool { return c != nil && c.transitioning }

// Update advances both timers. Call once per tick, after the tracker has
// recomputed the profile and before the agent FSM reads Current.
func (c *Controller) Update(dt time.Duration) {
	if c == nil || c.source == nil {
		return
	}

	c.evaluationTimer += dt
	if c.evaluationTimer >= c.evaluationInterval {
		c.evaluationTimer = 0
		c.evaluate()
	}

	if c.transitioning {
		c.transitionTimer += dt
		t := common.Clamp01(float64(c.transitionTimer) / float64(c.transitionDuration))
		c.current = Lerp(c.previous, c.target, t)
		if t >= 1 {
			c.transitioning = false
		}
	}
}

func (c *Controller) evaluate() {
	profile := c.source.Profile()
	next := Classify(profile, c.thresholds)
	if next == c.style {
		return
	}
	old := c.style
	c.style = next
	c.previous = c.current
	c.target = c.presets.Preset(next)
	c.transitionTimer = 0
	c.transitioning = true
	if c.sink != nil {
		c.sink.StyleChanged(old, next, profile)
	}
}
