package race

// SpeedZone selects the band AINewSpeed draws from.
type SpeedZone uint8

const (
	SpeedSlow SpeedZone = iota
	SpeedFast
)

// FollowPath steers the car after its goal marker. The marker runs ahead
// along the current lane and is pulled toward the next waypoint, so the car
// chases a point that smooths out the corners.
func (c *Car) FollowPath(dt float64) {
	if c.Health.IsDead() {
		return
	}
	lane := c.currentLane()
	if len(lane) == 0 {
		return
	}
	ai := &c.t.AI
	ct := &c.t.Car
	waypoint := lane[c.Waypoint]

	c.Yaw = LookAt(c.Pos, c.Goal, c.Yaw)
	c.Facing = FacingVector(c.Yaw)
	c.goalYaw = LookAt(c.Goal, waypoint, c.goalYaw)
	c.TiltBy(1, dt)

	c.speedCD -= dt
	c.BoostMult = approach(c.BoostMult, c.newThrust, ai.ThrustChange*dt)

	c.Thrust = c.Facing.Scale(ct.Thrust * c.ThMult * c.BoostMult * dt)
	switch {
	case c.Health.Current < 1:
		c.Thrust = Vec2{}
	case c.AI && c.Health.Below(ct.LowHP):
		c.Thrust = c.Thrust.Scale(ai.LowHPPenalty)
	case c.Health.Below(ct.LowHP * 2):
		c.Thrust = c.Thrust.Scale(ai.MedHPPenalty)
	}
	c.Thrust = c.Thrust.Add(c.Thrust.Scale(ai.PositionBonus * float64(c.RacePos)))

	dist := max(c.Pos.Sub(c.Goal).Magnitude(), 1)
	if dist < ai.MaxGoalDist {
		c.Goal = c.Goal.Add(FacingVector(c.goalYaw).Scale(ai.GoalSpeed / dist * dt))
	}
	if c.Goal.Sub(waypoint).Length() <= ai.WaypointRadius {
		c.NextWaypoint()
	}
}

// NewSpeed retargets the thrust multiplier on entering a speed zone. Half
// of the time the car keeps its current target; a cooldown stops zones
// placed close together from retargeting every frame.
func (c *Car) NewSpeed(zone SpeedZone) {
	if c.speedCD > 0 {
		return
	}
	ai := &c.t.AI
	c.speedCD = ai.SpeedCooldown
	if !c.rng.Chance(0.5) {
		return
	}
	switch zone {
	case SpeedSlow:
		c.newThrust = ai.MidThrust - c.rng.RangeF(0, ai.MidThrust-ai.MinThrust)
	case SpeedFast:
		c.newThrust = ai.MidThrust + c.rng.RangeF(0, ai.MaxThrust-ai.MidThrust)
	}
}

// TargetThrust is the multiplier the AI is easing toward.
func (c *Car) TargetThrust() float64 { return c.newThrust }

func (c *Car) NextWaypoint() {
	lane := c.currentLane()
	c.Waypoint++
	if c.Waypoint >= len(lane) {
		c.Waypoint = 0
	}
}

// SwitchLane moves an AI car to the other lane at the same waypoint index.
// Player cars ignore it.
func (c *Car) SwitchLane() {
	if !c.AI || len(c.lanes) < 2 {
		return
	}
	c.Lane = (c.Lane + 1) % len(c.lanes)
	c.Waypoint--
	c.NextWaypoint()
}

func (c *Car) currentLane() []Vec2 {
	if c.Lane < 0 || c.Lane >= len(c.lanes) {
		return nil
	}
	lane := c.lanes[c.Lane]
	if c.Waypoint >= len(lane) {
		c.Waypoint = 0
	}
	return lane
}
