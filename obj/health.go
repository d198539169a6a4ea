package obj

// Health tracks hit points with brief post-hit invulnerability.
type Health struct {
	Max     float64
	Current float64
	IFrames float64 // seconds of invulnerability remaining
	Dead    bool

	OnDamage func(amount float64)
	OnDeath  func()
}

func NewHealth(max float64) *Health {
	if max <= 0 {
		max = 1
	}
	return &Health{Max: max, Current: max}
}

func (h *Health) IsAlive() bool {
	return h != nil && !h.Dead && h.Current > 0
}

// ApplyDamage applies damage unless dead or inside i-frames. Reports
// whether the hit landed.
func (h *Health) ApplyDamage(amount float64) bool {
	if h == nil || h.Dead || h.IFrames > 0 || amount <= 0 {
		return false
	}
	h.Current -= amount
	h.IFrames = 0.5
	if h.OnDamage != nil {
		h.OnDamage(amount)
	}
	if h.Current <= 0 {
		h.Current = 0
		h.Dead = true
		if h.OnDeath != nil {
			h.OnDeath()
		}
	}
	return true
}

// Tick advances the i-frame timer.
func (h *Health) Tick(dt float64) {
	if h == nil {
		return
	}
	if h.IFrames > 0 {
		h.IFrames -= dt
		if h.IFrames < 0 {
			h.IFrames = 0
		}
	}
}
