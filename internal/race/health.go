package race

// Health tracks hit points. Damage never heals; only Reset restores it.
type Health struct {
	Current int
	Max     int
}

func NewHealth(max int) Health {
	return Health{Current: max, Max: max}
}

// Damage subtracts amount, ignoring negative values, and reports whether
// the entity is now dead.
func (h *Health) Damage(amount int) bool {
	if amount > 0 {
		h.Current -= amount
	}
	return h.Current <= 0
}

func (h *Health) Reset() {
	h.Current = h.Max
}

func (h Health) Fraction() float64 {
	if h.Max <= 0 {
		return 0
	}
	f := float64(h.Current) / float64(h.Max)
	return clampF(f, 0, 1)
}

func (h Health) IsDead() bool {
	return h.Current <= 0
}

// Below reports whether health is under frac of the maximum.
func (h Health) Below(frac float64) bool {
	return float64(h.Current) < frac*float64(h.Max)
}
