package agent

// Data is the agent's base parameter set. All times are seconds, all
// distances world units. Values are externally supplied; out-of-range
// configuration (negative cooldowns, inverted patrol bounds) is not
// validated and produces undefined but non-crashing behavior.
type Data struct {
	PatrolSpeed  float64 `yaml:"patrol_speed"`
	ChaseSpeed   float64 `yaml:"chase_speed"`
	PatrolMinX   float64 `yaml:"patrol_min_x"`
	PatrolMaxX   float64 `yaml:"patrol_max_x"`
	PatrolPause  float64 `yaml:"patrol_pause"`
	IdleScanTime float64 `yaml:"idle_scan_time"`

	DetectionRange float64 `yaml:"detection_range"`
	ThreatRange    float64 `yaml:"threat_range"`

	AttackRange     float64 `yaml:"attack_range"`
	AttackCooldown  float64 `yaml:"attack_cooldown"`
	AttackDamage    float64 `yaml:"attack_damage"`
	FireDelay       float64 `yaml:"fire_delay"`
	AttackRecovery  float64 `yaml:"attack_recovery"`
	ProjectileSpeed float64 `yaml:"projectile_speed"`

	RetreatRange   float64 `yaml:"retreat_range"`
	RetreatSpeed   float64 `yaml:"retreat_speed"`
	RetreatMaxTime float64 `yaml:"retreat_max_time"`

	DodgeCooldown float64 `yaml:"dodge_cooldown"`
	DodgeImpulse  float64 `yaml:"dodge_impulse"`
	DodgeMaxTime  float64 `yaml:"dodge_max_time"`

	StunDuration float64 `yaml:"stun_duration"`

	DashSpeed     float64 `yaml:"dash_speed"`
	DashDuration  float64 `yaml:"dash_duration"`
	DashCooldown  float64 `yaml:"dash_cooldown"`
	DashMinRange  float64 `yaml:"dash_min_range"`
	DashMaxRange  float64 `yaml:"dash_max_range"`
	DashDamage    float64 `yaml:"dash_damage"`
	DashKnockback float64 `yaml:"dash_knockback"`

	ArtilleryCooldown    float64 `yaml:"artillery_cooldown"`
	ArtilleryWindup      float64 `yaml:"artillery_windup"`
	ArtilleryInterval    float64 `yaml:"artillery_interval"`
	ArtilleryStrikes     int     `yaml:"artillery_strikes"`
	ArtilleryMaxDuration float64 `yaml:"artillery_max_duration"`
	ArtilleryDamage      float64 `yaml:"artillery_damage"`
}

// DefaultData returns a workable baseline parameter set.
func DefaultData() Data {
	return Data{
		PatrolSpeed:  1.5,
		ChaseSpeed:   3.0,
		PatrolMinX:   -6,
		PatrolMaxX:   6,
		PatrolPause:  1.0,
		IdleScanTime: 0.5,

		DetectionRange: 12,
		ThreatRange:    3,

		AttackRange:     2.5,
		AttackCooldown:  1.2,
		AttackDamage:    1,
		FireDelay:       0.35,
		AttackRecovery:  0.4,
		ProjectileSpeed: 8,

		RetreatRange:   4,
		RetreatSpeed:   2.5,
		RetreatMaxTime: 1.5,

		DodgeCooldown: 2.0,
		DodgeImpulse:  7,
		DodgeMaxTime:  1.0,

		StunDuration: 0.8,

		DashSpeed:     9,
		DashDuration:  0.4,
		DashCooldown:  4.0,
		DashMinRange:  3,
		DashMaxRange:  8,
		DashDamage:    1,
		DashKnockback: 4,

		ArtilleryCooldown:    8.0,
		ArtilleryWindup:      0.6,
		ArtilleryInterval:    0.3,
		ArtilleryStrikes:     4,
		ArtilleryMaxDuration: 3.0,
		ArtilleryDamage:      1,
	}
}
