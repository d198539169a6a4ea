package adapt

import "github.com/tmago/duel/telemetry"

// Style is the discrete classification of the opponent's recent playstyle.
type Style int

const (
	StyleBalanced Style = iota
	StyleAggressive
	StyleDefensive
	StyleAerial
	StyleRanged
)

func (s Style) String() string {
	switch s {
	case StyleBalanced:
		return "balanced"
	case StyleAggressive:
		return "aggressive"
	case StyleDefensive:
		return "defensive"
	case StyleAerial:
		return "aerial"
	case StyleRanged:
		return "ranged"
	default:
		return "unknown"
	}
}

// Thresholds configures the classifier rules.
type Thresholds struct {
	Aggressive float64 `yaml:"aggressive"`
	Defensive  float64 `yaml:"defensive"`
	Aerial     float64 `yaml:"aerial"`
	Ranged     float64 `yaml:"ranged"`

	// AerialMinFrequency gates the aerial rule so a single early jump attack
	// doesn't classify a passive opponent as aerial.
	AerialMinFrequency float64 `yaml:"aerial_min_frequency"`
	// RangedMinDistance gates the ranged rule to opponents actually keeping
	// their distance.
	RangedMinDistance float64 `yaml:"ranged_min_distance"`
}

func DefaultThresholds() Thresholds {
	return Thresholds{
		Aggressive:         0.65,
		Defensive:          0.5,
		Aerial:             0.3,
		Ranged:             0.4,
		AerialMinFrequency: 0.2,
		RangedMinDistance:  5.0,
	}
}

// Classify maps a profile to a style. Rules are evaluated in a fixed order
// so the most dangerous matching pattern wins; a profile passing both the
// aggressive and defensive thresholds is aggressive.
func Classify(p telemetry.Profile, th Thresholds) Style {
	switch {
	case p.AggressionScore >= th.Aggressive:
		return StyleAggressive
	case p.BlockRate >= th.Defensive:
		return StyleDefensive
	case p.AerialRatio() >= th.Aerial && p.AttackFrequency > th.AerialMinFrequency:
		return StyleAerial
	case p.RangedRatio >= th.Ranged && p.AverageDistance > th.RangedMinDistance:
		return StyleRanged
	default:
		return StyleBalanced
	}
}
