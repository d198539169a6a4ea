package adapt

import "github.com/tmago/duel/common"

// Clamp band shared by every multiplier field. Adaptation can never push an
// effective cooldown or speed outside [0.5x, 2x] of its base value.
const (
	MultiplierMin = 0.5
	MultiplierMax = 2.0
)

// Tuning is a named set of multipliers and bonuses applied on top of the
// agent's base parameters.
type Tuning struct {
	Name string `yaml:"name"`

	ChaseSpeedMult     float64 `yaml:"chase_speed_mult"`
	RetreatRangeMult   float64 `yaml:"retreat_range_mult"`
	RetreatSpeedMult   float64 `yaml:"retreat_speed_mult"`
	AttackCooldownMult float64 `yaml:"attack_cooldown_mult"`
	DodgeCooldownMult  float64 `yaml:"dodge_cooldown_mult"`

	DashPriorityBonus      float64 `yaml:"dash_priority_bonus"`
	ArtilleryPriorityBonus float64 `yaml:"artillery_priority_bonus"`
}

// DefaultTuning is the at-rest tuning: all multipliers 1, all bonuses 0.
func DefaultTuning() Tuning {
	return Tuning{
		Name:               "default",
		ChaseSpeedMult:     1,
		RetreatRangeMult:   1,
		RetreatSpeedMult:   1,
		AttackCooldownMult: 1,
		DodgeCooldownMult:  1,
	}
}

// Clamped returns the tuning with every multiplier forced into the global
// band. Bonuses are additive and not clamped.
func (t Tuning) Clamped() Tuning {
	t.ChaseSpeedMult = common.Clamp(t.ChaseSpeedMult, MultiplierMin, MultiplierMax)
	t.RetreatRangeMult = common.Clamp(t.RetreatRangeMult, MultiplierMin, MultiplierMax)
	t.RetreatSpeedMult = common.Clamp(t.RetreatSpeedMult, MultiplierMin, MultiplierMax)
	t.AttackCooldownMult = common.Clamp(t.AttackCooldownMult, MultiplierMin, MultiplierMax)
	t.DodgeCooldownMult = common.Clamp(t.DodgeCooldownMult, MultiplierMin, MultiplierMax)
	return t
}

// Lerp interpolates every numeric field of a toward b by t in [0,1]. At t=0
// the result equals a exactly; at t=1 it equals b. The name follows b so a
// finished transition reports the target preset.
func Lerp(a, b Tuning, t float64) Tuning {
	t = common.Clamp01(t)
	return Tuning{
		Name:                   b.Name,
		ChaseSpeedMult:         common.Lerp(a.ChaseSpeedMult, b.ChaseSpeedMult, t),
		RetreatRangeMult:       common.Lerp(a.RetreatRangeMult, b.RetreatRangeMult, t),
		RetreatSpeedMult:       common.Lerp(a.RetreatSpeedMult, b.RetreatSpeedMult, t),
		AttackCooldownMult:     common.Lerp(a.AttackCooldownMult, b.AttackCooldownMult, t),
		DodgeCooldownMult:      common.Lerp(a.DodgeCooldownMult, b.DodgeCooldownMult, t),
		DashPriorityBonus:      common.Lerp(a.DashPriorityBonus, b.DashPriorityBonus, t),
		ArtilleryPriorityBonus: common.Lerp(a.ArtilleryPriorityBonus, b.ArtilleryPriorityBonus, t),
	}
}

// Presets maps each style to the tuning chosen to counter it.
type Presets map[Style]Tuning

// DefaultPresets returns the hand-tuned counter presets.
//
// The intents: press a defensive opponent harder, keep range against an
// aggressive one, punish aerial opponents with faster dodges and dashes,
// and close fast on ranged opponents with dash and artillery.
func DefaultPresets() Presets {
	return Presets{
		StyleBalanced: DefaultTuning(),
		StyleAggressive: {
			Name:                   "anti_aggressive",
			ChaseSpeedMult:         0.9,
			RetreatRangeMult:       1.4,
			RetreatSpeedMult:       1.3,
			AttackCooldownMult:     1.1,
			DodgeCooldownMult:      0.7,
			DashPriorityBonus:      0,
			ArtilleryPriorityBonus: 0.5,
		},
		StyleDefensive: {
			Name:                   "anti_defensive",
			ChaseSpeedMult:         1.2,
			RetreatRangeMult:       0.8,
			RetreatSpeedMult:       0.9,
			AttackCooldownMult:     0.8,
			DodgeCooldownMult:      1.0,
			DashPriorityBonus:      1.0,
			ArtilleryPriorityBonus: 0.5,
		},
		StyleAerial: {
			Name:                   "anti_aerial",
			ChaseSpeedMult:         1.1,
			RetreatRangeMult:       1.0,
			RetreatSpeedMult:       1.0,
			AttackCooldownMult:     0.9,
			DodgeCooldownMult:      0.6,
			DashPriorityBonus:      0.8,
			ArtilleryPriorityBonus: 0,
		},
		StyleRanged: {
			Name:                   "anti_ranged",
			ChaseSpeedMult:         1.4,
			RetreatRangeMult:       0.7,
			RetreatSpeedMult:       0.8,
			AttackCooldownMult:     1.0,
			DodgeCooldownMult:      0.8,
			DashPriorityBonus:      1.5,
			ArtilleryPriorityBonus: 1.0,
		},
	}
}

// Preset returns the tuning for a style, falling back to the default tuning
// for styles without a preset.
func (p Presets) Preset(s Style) Tuning {
	if t, ok := p[s]; ok {
		return t
	}
	return DefaultTuning()
}
