package race

// Controls is the player's input for one frame. Held keys drive the car;
// Start, Restart and Quit are edge-triggered presses.
type Controls struct {
	Forward  bool
	Backward bool
	Left     bool
	Right    bool
	Boost    bool

	Start   bool
	Restart bool
	Quit    bool
}

// Drive applies player input: thrust, steering and boost.
func (c *Car) Drive(in Controls, dt float64) {
	ct := &c.t.Car
	switch {
	case in.Forward:
		c.Thrust = c.Facing.Scale(ct.Thrust * c.ThMult * c.BoostMult * dt)
		c.TiltBy(1, dt)
	case in.Backward:
		c.Thrust = c.Facing.Scale(-ct.Thrust * ct.ReverseRatio * c.ThMult * c.BoostMult * dt)
		c.TiltBy(-1, dt)
	default:
		c.Thrust = Vec2{}
	}

	switch {
	case in.Left:
		c.Yaw -= ct.RotationSpeed * dt
		c.LeanBy(1, dt)
	case in.Right:
		c.Yaw += ct.RotationSpeed * dt
		c.LeanBy(-1, dt)
	}

	c.Boost(in.Boost, dt)
}

// TiltBy pitches the body forward (dir 1) or back (dir -1). Back tilt is
// limited to half the forward range.
func (c *Car) TiltBy(dir, dt float64) {
	maxTilt := c.t.Car.MaxTilt
	c.Tilt = clampF(c.Tilt+c.t.Car.TiltFactor*dir*dt, -maxTilt/2, maxTilt)
}

// LeanBy rolls the body into a turn.
func (c *Car) LeanBy(dir, dt float64) {
	maxLean := c.t.Car.MaxLean
	c.Lean = clampF(c.Lean+c.t.Car.LeanFactor*dir*dt, -maxLean, maxLean)
}

// Boost runs the boost timer. Holding boost while moving drains the timer;
// running dry overheats the engine, locking boost and raising drag until the
// timer recovers to zero. Below the low-health threshold boost stays locked.
func (c *Car) Boost(held bool, dt float64) {
	ct := &c.t.Car
	if !c.Health.Below(ct.LowHP) {
		if held && !c.BoostLocked && c.Thrust.Length() > ct.BoostMinThrust {
			if c.BoostTimer > 0 {
				c.BoostMult = ct.BoostMultiplier
				c.BoostTimer -= dt
			}
			if c.BoostTimer <= 0 {
				c.BoostMult = 1
				c.BoostTimer = ct.OverheatTime
				c.BoostLocked = true
				c.DrMult = ct.OverheatDrag
			}
			return
		}
		if c.BoostTimer < ct.BoostTime {
			c.BoostTimer += dt
			if c.BoostLocked && c.BoostTimer >= 0 {
				c.BoostLocked = false
				c.DrMult = 1
			}
		} else {
			c.BoostTimer = ct.BoostTime
		}
		if c.BoostTimer >= 0 {
			c.BoostMult = 1
		}
		return
	}

	if c.BoostTimer < 0 && c.BoostTimer > ct.OverheatTime {
		c.BoostTimer += dt
	} else {
		c.DrMult = 1
		c.BoostTimer = ct.BoostDownTime
	}
	c.BoostMult = 1
	c.BoostLocked = true
}

// Overheated reports whether boost is locked by the overheat penalty.
func (c *Car) Overheated() bool {
	return c.BoostLocked && c.BoostTimer < 0 && c.BoostTimer != c.t.Car.BoostDownTime
}
