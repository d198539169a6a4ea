package telemetry

import (
	"math"
	"time"
)

// AttackKind identifies which attack the tracked combatant threw.
type AttackKind int

const (
	AttackMelee AttackKind = iota
	AttackUppercut
	AttackJump
	AttackRanged
	attackKindCount
)

func (k AttackKind) String() string {
	switch k {
	case AttackMelee:
		return "melee"
	case AttackUppercut:
		return "uppercut"
	case AttackJump:
		return "jump_attack"
	case AttackRanged:
		return "ranged"
	default:
		return "unknown"
	}
}

// Event is one recorded combat action.
type Event struct {
	At   time.Time
	Kind AttackKind
}

// Sample is one periodic observation of the tracked combatant.
type Sample struct {
	At       time.Time
	Distance float64
	Blocking bool
}

// Log is the rolling-window record of combat events and periodic samples.
// Events older than the window are pruned with a strict cutoff: an event
// stamped exactly at now-window is dropped. Samples live in a fixed ring
// sized ceil(window/sampleInterval).
type Log struct {
	window         time.Duration
	sampleInterval time.Duration

	events []Event

	samples    []Sample
	sampleHead int
	sampleLen  int

	sampleTimer time.Duration

	damageDealt float64
	damageTaken float64
}

// NewLog creates a Log with the given retention window and sample cadence.
// Non-positive arguments fall back to 10s / 500ms.
func NewLog(window, sampleInterval time.Duration) *Log {
	if window <= 0 {
		window = 10 * time.Second
	}
	if sampleInterval <= 0 {
		sampleInterval = 500 * time.Millisecond
	}
	n := int(math.Ceil(float64(window) / float64(sampleInterval)))
	if n < 1 {
		n = 1
	}
	return &Log{
		window:         window,
		sampleInterval: sampleInterval,
		samples:        make([]Sample, n),
	}
}

func (l *Log) Window() time.Duration { return l.window }

// RecordAttack appends an attack event stamped at the given time.
func (l *Log) RecordAttack(kind AttackKind, at time.Time) {
	if l == nil {
		return
	}
	l.events = append(l.events, Event{At: at, Kind: kind})
}

// RecordDamageDealt adds to the cumulative damage-dealt counter.
func (l *Log) RecordDamageDealt(amount float64) {
	if l == nil || amount <= 0 {
		return
	}
	l.damageDealt += amount
}

// RecordDamageTaken adds to the cumulative damage-taken counter.
func (l *Log) RecordDamageTaken(amount float64) {
	if l == nil || amount <= 0 {
		return
	}
	l.damageTaken += amount
}

// Observe accumulates dt against the sample cadence and, when it elapses,
// stores a sample of the combatant's current distance and block state.
func (l *Log) Observe(distance float64, blocking bool, dt time.Duration, now time.Time) {
	if l == nil {
		return
	}
	l.sampleTimer += dt
	for l.sampleTimer >= l.sampleInterval {
		l.sampleTimer -= l.sampleInterval
		l.pushSample(Sample{At: now, Distance: distance, Blocking: blocking})
	}
}

func (l *Log) pushSample(s Sample) {
	idx := (l.sampleHead + l.sampleLen) % len(l.samples)
	l.samples[idx] = s
	if l.sampleLen < len(l.samples) {
		l.sampleLen++
	} else {
		l.sampleHead = (l.sampleHead + 1) % len(l.samples)
	}
}

// Prune drops events with timestamps strictly older than now-window.
func (l *Log) Prune(now time.Time) {
	if l == nil || len(l.events) == 0 {
		return
	}
	cutoff := now.Add(-l.window)
	keep := 0
	for keep < len(l.events) && l.events[keep].At.Before(cutoff) {
		keep++
	}
	if keep > 0 {
		l.events = append(l.events[:0], l.events[keep:]...)
	}
}

// Events returns the retained events in append order.
func (l *Log) Events() []Event {
	if l == nil {
		return nil
	}
	return l.events
}

// Samples returns the retained samples, oldest first.
func (l *Log) Samples() []Sample {
	if l == nil || l.sampleLen == 0 {
		return nil
	}
	out := make([]Sample, 0, l.sampleLen)
	for i := 0; i < l.sampleLen; i++ {
		out = append(out, l.samples[(l.sampleHead+i)%len(l.samples)])
	}
	return out
}

func (l *Log) DamageDealt() float64 { return l.damageDealt }
func (l *Log) DamageTaken() float64 { return l.damageTaken }

// Reset clears all events, samples, and cumulative counters for a new
// encounter.
func (l *Log) Reset() {
	if l == nil {
		return
	}
	l.events = l.events[:0]
	l.sampleHead = 0
	l.sampleLen = 0
	l.sampleTimer = 0
	l.damageDealt = 0
	l.damageTaken = 0
}
