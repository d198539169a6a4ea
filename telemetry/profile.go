package telemetry

import (
	"time"

	"github.com/tmago/duel/common"
)

// NoSampleDistance is the averageDistance reported when the log holds no
// samples yet.
const NoSampleDistance = 999

// Profile is a normalized snapshot of the tracked combatant's recent
// behavior. It is recomputed from the log every tick and carries no state of
// its own.
type Profile struct {
	AttackFrequency float64 // attacks per second inside the window

	MeleeRatio    float64
	UppercutRatio float64
	JumpRatio     float64
	RangedRatio   float64

	BlockRate       float64
	AverageDistance float64
	AggressionScore float64

	DamageDealt float64
	DamageTaken float64
}

// AerialRatio is the share of jump attacks in the window.
func (p Profile) AerialRatio() float64 { return p.JumpRatio }

// Anchors are the normalization constants for the aggression score: the
// attack frequency considered "very aggressive" and the distance considered
// "very far".
type Anchors struct {
	Frequency float64
	Distance  float64
}

// DefaultAnchors returns 2.0 attacks/sec and 10.0 distance units.
func DefaultAnchors() Anchors {
	return Anchors{Frequency: 2.0, Distance: 10.0}
}

// Tracker owns a Log and derives the current Profile from it. It is the
// single writer of the profile; consumers read the returned value.
type Tracker struct {
	log     *Log
	anchors Anchors
	profile Profile
}

func NewTracker(log *Log, anchors Anchors) *Tracker {
	if anchors.Frequency <= 0 || anchors.Distance <= 0 {
		anchors = DefaultAnchors()
	}
	return &Tracker{log: log, anchors: anchors, profile: emptyProfile()}
}

func (t *Tracker) Log() *Log { return t.log }

// Update prunes the log and recomputes the profile. Call once per tick,
// before the adaptation controller runs.
func (t *Tracker) Update(now time.Time) {
	if t == nil || t.log == nil {
		return
	}
	t.log.Prune(now)
	t.profile = Recompute(t.log.Events(), t.log.Samples(), t.log.Window(), t.anchors)
	t.profile.DamageDealt = t.log.DamageDealt()
	t.profile.DamageTaken = t.log.DamageTaken()
}

// Profile returns the most recently computed profile.
func (t *Tracker) Profile() Profile {
	if t == nil {
		return emptyProfile()
	}
	return t.profile
}

// Reset clears tracking for a new encounter.
func (t *Tracker) Reset() {
	if t == nil {
		return
	}
	if t.log != nil {
		t.log.Reset()
	}
	t.profile = emptyProfile()
}

func emptyProfile() Profile {
	return Profile{AverageDistance: NoSampleDistance}
}

// Recompute derives a Profile from the given events and samples. It is a
// pure function: zero events or samples produce zero rates and the sentinel
// distance, never NaN.
func Recompute(events []Event, samples []Sample, window time.Duration, anchors Anchors) Profile {
	p := emptyProfile()

	if window > 0 {
		p.AttackFrequency = float64(len(events)) / window.Seconds()
	}

	if len(events) > 0 {
		var counts [attackKindCount]int
		for _, ev := range events {
			if ev.Kind >= 0 && ev.Kind < attackKindCount {
				counts[ev.Kind]++
			}
		}
		total := float64(len(events))
		p.MeleeRatio = float64(counts[AttackMelee]) / total
		p.UppercutRatio = float64(counts[AttackUppercut]) / total
		p.JumpRatio = float64(counts[AttackJump]) / total
		p.RangedRatio = float64(counts[AttackRanged]) / total
	}

	if len(samples) > 0 {
		var distSum float64
		blocked := 0
		for _, s := range samples {
			distSum += s.Distance
			if s.Blocking {
				blocked++
			}
		}
		p.AverageDistance = distSum / float64(len(samples))
		p.BlockRate = float64(blocked) / float64(len(samples))
	}

	freqNorm := common.Clamp01(p.AttackFrequency / anchors.Frequency)
	closeNorm := common.Clamp01(1 - p.AverageDistance/anchors.Distance)
	p.AggressionScore = 0.6*freqNorm + 0.4*closeNorm

	return p
}
