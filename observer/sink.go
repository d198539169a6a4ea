// Package observer routes the core's debug events to a structured logger.
// Everything here is observational; nothing feeds back into decisions.
package observer

import (
	"go.uber.org/zap"

	"github.com/tmago/duel/adapt"
	"github.com/tmago/duel/agent"
	"github.com/tmago/duel/telemetry"
)

// Sink logs style changes and FSM transitions. A nil logger is replaced
// with a no-op one, so a zero-config Sink is silent.
type Sink struct {
	log *zap.Logger
}

func NewSink(log *zap.Logger) *Sink {
	if log == nil {
		log = zap.NewNop()
	}
	return &Sink{log: log}
}

// StyleChanged is called once per style change, never on an unchanged
// re-evaluation.
func (s *Sink) StyleChanged(old, new adapt.Style, snapshot telemetry.Profile) {
	s.log.Info("style changed",
		zap.String("old", old.String()),
		zap.String("new", new.String()),
		zap.Float64("attack_frequency", snapshot.AttackFrequency),
		zap.Float64("block_rate", snapshot.BlockRate),
		zap.Float64("average_distance", snapshot.AverageDistance),
		zap.Float64("aggression", snapshot.AggressionScore),
		zap.Float64("aerial_ratio", snapshot.AerialRatio()),
		zap.Float64("ranged_ratio", snapshot.RangedRatio),
	)
}

func (s *Sink) StateChanged(old, new agent.StateID) {
	s.log.Debug("agent transition",
		zap.String("old", old.String()),
		zap.String("new", new.String()),
	)
}
