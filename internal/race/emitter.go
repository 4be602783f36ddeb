package race

// Emitter owns a fixed pool of particles. Slots are filled one at a time at
// the configured frequency and, once used, are respawned in place forever.
type Emitter struct {
	Kind     ParticleKind
	Origin   Vec3
	Radius   float64
	VelRatio float64

	cfg       EmitterConfig
	particles []Particle
	timer     float64
	rng       *Rand
}

func NewEmitter(kind ParticleKind, cfg EmitterConfig, origin Vec3, radius, velRatio float64, rng *Rand) *Emitter {
	capacity := cfg.Capacity
	if capacity < 1 {
		capacity = 1
	}
	return &Emitter{
		Kind:      kind,
		Origin:    origin,
		Radius:    radius,
		VelRatio:  velRatio,
		cfg:       cfg,
		particles: make([]Particle, 0, capacity),
		rng:       rng,
	}
}

// Capacity is the size of the slot pool. At most Capacity-1 slots are used.
func (e *Emitter) Capacity() int { return cap(e.particles) }

// Live is the number of slots that have been used.
func (e *Emitter) Live() int { return len(e.particles) }

func (e *Emitter) Particles() []Particle { return e.particles }

// Update spawns at most one new particle and advances all used slots.
func (e *Emitter) Update(dt float64, active bool, sp SpawnParams) {
	e.timer += dt
	if active && len(e.particles) < cap(e.particles)-1 && e.timer > e.cfg.Frequency {
		e.add(sp)
		e.timer = 0
	}

	origin := e.origin()
	for i := range e.particles {
		p := &e.particles[i]
		accel := e.cfg.Acceleration
		if e.cfg.VelocityDamping != 0 {
			accel = p.Vel.Scale(e.cfg.VelocityDamping)
		}
		p.update(dt, accel, origin, active, &e.cfg, e.rng, sp)
	}
}

func (e *Emitter) add(sp SpawnParams) {
	sv := e.cfg.StartVelocity
	sv.Y *= e.VelRatio
	minSpeed := e.cfg.MinSpeed
	e.particles = append(e.particles, Particle{
		Kind:   e.Kind,
		start:  sv,
		origin: e.origin(),
		radius: e.Radius,
		minV2:  minSpeed * minSpeed,
	})
	e.particles[len(e.particles)-1].spawn(&e.cfg, e.rng, sp)
}

func (e *Emitter) origin() Vec3 {
	if e.cfg.Height != 0 {
		return Vec3{e.Origin.X, e.cfg.Height, e.Origin.Z}
	}
	return e.Origin
}

// Effect groups emitters that share an origin, such as the two flame layers
// of a fire.
type Effect []*Emitter

func (fx Effect) Update(dt float64, active bool, sp SpawnParams) {
	for _, e := range fx {
		e.Update(dt, active, sp)
	}
}

func (fx Effect) SetOrigin(o Vec3) {
	for _, e := range fx {
		e.Origin = o
	}
}

// Each visits every visible particle.
func (fx Effect) Each(fn func(p *Particle)) {
	for _, e := range fx {
		for i := range e.particles {
			if e.particles[i].Visible {
				fn(&e.particles[i])
			}
		}
	}
}

// NewFire builds the two-layer flame used by burning cars and tanks.
func NewFire(pt ParticleTuning, origin Vec3, radius, velRatio float64, rng *Rand) Effect {
	return Effect{
		NewEmitter(ParticleFire, pt.Fire, origin, radius, velRatio, rng),
		NewEmitter(ParticleFireCore, pt.FireCore, origin, radius, velRatio, rng),
	}
}

func NewSmoke(pt ParticleTuning, origin Vec3, radius float64, rng *Rand) Effect {
	return Effect{NewEmitter(ParticleSmoke, pt.Smoke, origin, radius, 1, rng)}
}

func NewExhaust(pt ParticleTuning, origin Vec3, radius float64, rng *Rand) Effect {
	return Effect{NewEmitter(ParticleExhaust, pt.Exhaust, origin, radius, 1, rng)}
}

func NewExplosion(pt ParticleTuning, origin Vec3, rng *Rand) Effect {
	return Effect{NewEmitter(ParticleExplosion, pt.Explosion, origin, pt.BombRadius, 1, rng)}
}
