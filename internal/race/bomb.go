package race

type BombState uint8

const (
	BombActive BombState = iota
	BombExploding
	BombInactive
)

func (s BombState) String() string {
	switch s {
	case BombActive:
		return "active"
	case BombExploding:
		return "exploding"
	case BombInactive:
		return "inactive"
	}
	return "unknown"
}

// Bomb is a proximity mine. Driving into the trigger radius sets it off;
// for a short time every car inside the blast radius is thrown back, then
// the bomb stays hidden for a cooldown before rearming.
type Bomb struct {
	Pos     Vec2
	Rot     float64
	State   BombState
	Trigger Sphere
	Blast   Sphere
	Effect  Effect

	eTime float64
	cd    float64
	t     BombTuning
}

func NewBomb(pos Vec2, rot float64, t *Tuning, rng *Rand) *Bomb {
	bt := t.Bomb
	return &Bomb{
		Pos:     pos,
		Rot:     rot,
		State:   BombActive,
		Trigger: NewSphere(pos.X, pos.Z, bt.TriggerRadius),
		Blast:   NewSphere(pos.X, pos.Z, bt.ExplosionRadius),
		Effect:  NewExplosion(t.Particles, pos.Vec3(bt.Height), rng),
		t:       bt,
	}
}

// Detonate switches an armed bomb to exploding.
func (b *Bomb) Detonate() {
	b.State = BombExploding
	b.eTime = b.t.ExplosionTime
}

// Update runs the explosion particles and the state timers.
func (b *Bomb) Update(dt float64) {
	if b.State == BombExploding {
		b.Effect.Update(dt, true, SpawnParams{})
		b.eTime -= dt
		if b.eTime < 0 {
			b.State = BombInactive
			b.cd = b.t.Cooldown
		}
	} else {
		b.Effect.Update(dt, false, SpawnParams{})
	}

	if b.State == BombInactive {
		b.cd -= dt
		if b.cd < 0 {
			b.State = BombActive
		}
	}
}

// Rearm puts the bomb back in its armed state.
func (b *Bomb) Rearm() {
	b.State = BombActive
	b.eTime, b.cd = 0, 0
}

// Visible reports whether the bomb body is shown.
func (b *Bomb) Visible() bool { return b.State != BombInactive }
