package race

import "math"

type ParticleKind uint8

const (
	ParticleFire ParticleKind = iota
	ParticleFireCore
	ParticleSmoke
	ParticleExhaust
	ParticleExplosion
)

func (k ParticleKind) String() string {
	switch k {
	case ParticleFire:
		return "fire"
	case ParticleFireCore:
		return "fire_core"
	case ParticleSmoke:
		return "smoke"
	case ParticleExhaust:
		return "exhaust"
	case ParticleExplosion:
		return "explosion"
	}
	return "unknown"
}

// SpawnParams carries the per-frame inputs a car hands to its emitters.
// Jitter scales the start velocity element-wise (v = sv + sv*jitter) and
// Drift is added to the spawn velocity as-is, so particles trail the car.
type SpawnParams struct {
	Jitter Vec2
	Drift  Vec2
}

// flameLifeCap bounds the lifetime stretch of flame particles spawned
// right at the origin.
const flameLifeCap = 10.0

// Particle is one recycled slot of an emitter.
type Particle struct {
	Pos     Vec3
	Vel     Vec3
	Life    float64
	MaxLife float64
	Kind    ParticleKind
	Visible bool

	start  Vec3
	origin Vec3
	radius float64
	minV2  float64
}

func (p *Particle) spawn(cfg *EmitterConfig, rng *Rand, sp SpawnParams) {
	if cfg.BurstSpeed > 0 {
		p.start = burstVelocity(rng, cfg.BurstSpeed)
	}

	d := rng.RangeF(0, p.radius)
	p.Pos = Vec3{
		X: p.origin.X + d*math.Cos(rng.Angle()),
		Y: p.origin.Y,
		Z: p.origin.Z + d*math.Cos(rng.Angle()),
	}

	p.MaxLife = cfg.MinLife + rng.RangeF(0, cfg.MaxLife-cfg.MinLife)
	if cfg.Flame && p.radius > 0 {
		p.MaxLife *= p.radius / math.Max(d, p.radius/flameLifeCap)
	}
	p.Life = 0

	p.Vel = p.start.Add(p.start.Mul(Vec3{sp.Jitter.X, 0, sp.Jitter.Z})).Add(sp.Drift.Vec3(0))
	if cfg.Angle != 0 {
		p.Vel.X += rng.RangeF(-cfg.Angle, cfg.Angle)
		p.Vel.Z += rng.RangeF(-cfg.Angle, cfg.Angle)
	}
	p.Visible = true
}

// update advances the particle and recycles it once it has expired or
// slowed below its threshold. Inactive emitters hide expired particles.
func (p *Particle) update(dt float64, accel, origin Vec3, active bool, cfg *EmitterConfig, rng *Rand, sp SpawnParams) {
	p.Vel = p.Vel.Add(accel.Scale(dt))
	p.origin = origin
	if p.Visible {
		p.Pos = p.Pos.Add(p.Vel.Scale(dt))
	}
	p.Life += dt
	if p.Life > p.MaxLife || p.Vel.Length() <= p.minV2 {
		if active {
			p.spawn(cfg, rng, sp)
		} else {
			p.Visible = false
		}
	}
}

// Fraction is the consumed share of the particle's lifetime.
func (p *Particle) Fraction() float64 {
	if p.MaxLife <= 0 {
		return 1
	}
	return clampF(p.Life/p.MaxLife, 0, 1)
}

// burstVelocity picks a random direction in the upper hemisphere.
func burstVelocity(rng *Rand, speed float64) Vec3 {
	v := Vec3{rng.RangeF(-50, 50), rng.RangeF(0, 100), rng.RangeF(-50, 50)}
	return v.Normal().Scale(speed)
}
