package race

import (
	"fmt"
	"math"
)

// CarID is a stable index into the race's car arena.
type CarID int

// NoCar is the empty car collision guard.
const NoCar CarID = -1

// Car is one hover vehicle: kinematics, damage, boost, burn and, for AI
// drivers, path-following state.
type Car struct {
	ID   CarID
	Name string
	AI   bool

	// Race progress.
	Lap       int
	NextCheck int
	RacePos   int
	RaceTime  float64
	Finished  bool

	Health Health

	Pos      Vec2
	PrevPos  Vec2
	Height   float64
	Yaw      float64
	Tilt     float64
	Lean     float64
	Facing   Vec2
	Momentum Vec2
	Thrust   Vec2
	Drag     Vec2

	ThMult    float64
	BoostMult float64
	DrMult    float64

	BoostTimer  float64
	BoostLocked bool

	ColDamage       int
	BurnTimer       float64
	burnDamageTimer float64
	ExplosionTimer  float64

	colSphere ObstacleID
	colBox    ObstacleID
	colCar    CarID
	bobble    float64
	gate      int

	// AI path state.
	Lane      int
	Waypoint  int
	Goal      Vec2
	goalYaw   float64
	newThrust float64
	speedCD   float64

	Fire    Effect
	Smoke   Effect
	Exhaust Effect

	start    Vec2
	startYaw float64
	lanes    [][]Vec2
	t        *Tuning
	rng      *Rand
}

// CarName returns the display name for the car at index i.
func CarName(t *Tuning, i int) string {
	if i == 0 {
		return t.Game.PlayerName
	}
	return fmt.Sprintf("CAR%d", i+1)
}

// NewCar places a car at its start slot. lanes must hold at least one
// waypoint per lane; the nearest lane start is chosen.
func NewCar(id CarID, ai bool, start Vec2, yaw float64, lanes [][]Vec2, t *Tuning, rng *Rand) *Car {
	c := &Car{
		ID:       id,
		Name:     CarName(t, int(id)),
		AI:       ai,
		RacePos:  int(id) + 1,
		start:    start,
		startYaw: yaw,
		lanes:    lanes,
		t:        t,
		rng:      rng,
	}
	ct := &t.Car
	c.Fire = NewFire(t.Particles, start.Vec3(ct.HoverHeight+ct.FireHeight), ct.FireRadius, ct.FireVelRatio, rng)
	c.Smoke = NewSmoke(t.Particles, start.Vec3(ct.HoverHeight+ct.SmokeHeight), ct.SmokeRadius, rng)
	c.Exhaust = NewExhaust(t.Particles, start.Vec3(ct.HoverHeight+ct.ExhaustHeight), ct.ExhaustRadius, rng)
	c.Reset(start, yaw)
	return c
}

// Reset reinitialises every mutable field for a new race at start.
func (c *Car) Reset(start Vec2, yaw float64) {
	ct := &c.t.Car
	c.start, c.startYaw = start, yaw

	c.RaceTime = 0
	c.NextCheck = 0
	c.Lap = 1
	c.Finished = false

	c.Pos = start
	c.PrevPos = Vec2{}
	c.Height = ct.HoverHeight - ct.HoverRange + float64(c.rng.Intn(100))*0.01
	c.bobble = 1
	if c.rng.Intn(2) == 1 {
		c.bobble = -1
	}
	c.Yaw = yaw
	c.Facing = FacingVector(yaw)
	c.Tilt, c.Lean = 0, 0

	c.Momentum, c.Thrust, c.Drag = Vec2{}, Vec2{}, Vec2{}
	c.ThMult, c.BoostMult, c.DrMult = 1, 1, 1

	c.colSphere, c.colBox, c.colCar = NoObstacle, NoObstacle, NoCar
	c.gate = -1

	c.BoostTimer = ct.BoostTime
	c.BoostLocked = false

	c.Health = NewHealth(ct.MaxHP)
	c.ColDamage = 0
	c.BurnTimer, c.burnDamageTimer, c.ExplosionTimer = 0, 0, 0

	c.Waypoint = 0
	c.Goal = start
	c.goalYaw = yaw
	c.newThrust = 1
	c.speedCD = 0
	c.Lane = c.nearestLane()
}

func (c *Car) nearestLane() int {
	best, bestD := 0, -1.0
	for i, lane := range c.lanes {
		if len(lane) == 0 {
			continue
		}
		d := lane[0].Sub(c.Pos).Length()
		if bestD < 0 || d < bestD {
			best, bestD = i, d
		}
	}
	return best
}

// Body returns the collision footprint.
func (c *Car) Body() Body {
	return Body{Pos: c.Pos, Prev: c.PrevPos, R: c.t.Car.Radius}
}

// Update advances one frame of physics and particles.
func (c *Car) Update(dt float64) {
	c.ResetCollision()
	c.Facing = FacingVector(c.Yaw)
	c.Move(dt)
	c.rotate(dt)
	c.bob(dt)
	c.UpdateDamage(dt)
	c.UpdateParticles(dt)
}

func (c *Car) UpdateTime(dt float64) {
	c.RaceTime += dt
}

// Move integrates momentum. Dead cars keep drifting without thrust.
func (c *Car) Move(dt float64) {
	if c.Health.IsDead() {
		c.Thrust = Vec2{}
	}
	c.Drag = c.Momentum.Scale(c.t.Car.DragCoefficient * c.DrMult * dt)
	c.Momentum = c.Momentum.Add(c.Thrust).Add(c.Drag)
	c.PrevPos = c.Pos
	c.Pos = c.Pos.Add(c.Momentum.Scale(dt))
}

func (c *Car) rotate(dt float64) {
	c.Lean -= c.Lean * c.t.Car.TiltDrag * dt
	c.Tilt -= c.Tilt * c.t.Car.TiltDrag * dt
}

func (c *Car) bob(dt float64) {
	ct := &c.t.Car
	if c.Height > ct.HoverHeight+ct.HoverRange {
		c.bobble = -1
	} else if c.Height < ct.HoverHeight-ct.HoverRange {
		c.bobble = 1
	}
	c.Height += ct.HoverSpeed * c.bobble * dt
}

// UpdateDamage recomputes the impact damage from the current speed.
func (c *Car) UpdateDamage(dt float64) {
	c.ColDamage = ImpactDamage(c.Momentum.Length(), c.t.Car.DamageFactor)
	if c.ExplosionTimer > 0 {
		c.ExplosionTimer -= dt
	}
}

// ImpactDamage converts a squared speed into collision damage.
func ImpactDamage(speed2, factor float64) int {
	v := math.Sqrt(math.Max(speed2, 0)) * factor
	return int(math.Floor(v * v))
}

func (c *Car) TakeDamage(dmg int) {
	if c.Health.Damage(dmg) {
		c.ThMult = 0
	}
}

// Speed is the true speed in world units per second.
func (c *Car) Speed() float64 { return c.Momentum.Magnitude() }

// ResetCollision restores thrust once the car has slowed after a bounce.
func (c *Car) ResetCollision() {
	if c.ThMult == c.t.Car.CollisionThrust && c.Momentum.Length() < c.t.Car.SlowSpeed {
		c.ThMult = 1
		c.colSphere, c.colBox, c.colCar = NoObstacle, NoObstacle, NoCar
	}
}

// UpdateParticles drives the fire, smoke and exhaust attached to the car.
func (c *Car) UpdateParticles(dt float64) {
	ct := &c.t.Car
	jitter := c.Momentum.Neg()

	if c.BurnTimer > 0 {
		c.Burn(dt)
	} else {
		c.Fire.Update(dt, false, SpawnParams{})
	}

	smoke := SpawnParams{Jitter: jitter, Drift: c.Momentum.Scale(ct.SmokeDrift)}
	if c.Health.Below(ct.LowHP) {
		c.Smoke.SetOrigin(c.Pos.Add(c.Facing.Scale(ct.SmokeOffset)).Vec3(c.Height + ct.SmokeHeight))
		c.Smoke.Update(dt, true, smoke)
	} else {
		c.Smoke.Update(dt, false, smoke)
	}

	exhaust := SpawnParams{Jitter: jitter, Drift: c.Momentum.Scale(ct.ExhaustDrift)}
	if c.Momentum.Length() > ct.ExhaustMinSpeed && c.BoostMult > ct.ExhaustMinBoost {
		c.Exhaust.SetOrigin(c.Pos.Add(c.Facing.Scale(ct.ExhaustOffset)).Vec3(c.Height + ct.ExhaustHeight))
		c.Exhaust.Update(dt, true, exhaust)
	} else {
		c.Exhaust.Update(dt, false, exhaust)
	}
}

// Burn shows the flames and applies damage over time. Fast cars put the
// fire out more slowly than slow ones.
func (c *Car) Burn(dt float64) {
	ct := &c.t.Car
	c.Fire.SetOrigin(c.Pos.Vec3(c.Height + ct.FireHeight))
	c.Fire.Update(dt, true, SpawnParams{Jitter: c.Momentum.Neg()})

	if c.Momentum.Length() > ct.ExtinguishSpeed {
		c.BurnTimer -= dt
	} else {
		c.BurnTimer -= dt * ct.ExtinguishMult
	}

	c.burnDamageTimer += dt
	if c.burnDamageTimer > ct.BurnInterval {
		c.TakeDamage(ct.BurnDamage)
		c.burnDamageTimer = 0
	}
	if c.BurnTimer < 0 {
		c.burnDamageTimer = 0
	}
}

// Ignite sets the burn timer to full.
func (c *Car) Ignite() {
	c.BurnTimer = c.t.Car.BurnTime
}

// Explosion pushes the car away from a bomb and damages it, at most once
// per explosion cooldown. It reports whether the blast was applied.
func (c *Car) Explosion(bomb Vec2) bool {
	if c.ExplosionTimer > 0 {
		return false
	}
	ct := &c.t.Car
	dist := c.Pos.Sub(bomb)
	l := clampF(dist.Length(), ct.BombMinDist, ct.BombMaxDist)

	c.Momentum = c.Momentum.Sub(dist.Normal().Scale(ct.BombImpact / l))
	c.TakeDamage(int(ct.BombDamage / l))
	c.ExplosionTimer = ct.ExplosionCooldown
	return true
}
