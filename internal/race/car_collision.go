package race

func (c *Car) bounced() {
	c.ThMult = c.t.Car.CollisionThrust
}

// SphereCollision rolls the car back and reverses it off a round obstacle.
// It reports false when the obstacle is the one the car just bounced off.
func (c *Car) SphereCollision(id ObstacleID) bool {
	if id == c.colSphere {
		return false
	}
	c.Pos = c.PrevPos
	c.Momentum = c.Momentum.Neg()
	c.bounced()
	c.colSphere = id
	c.colBox = NoObstacle
	c.TakeDamage(c.ColDamage)
	return true
}

// BoxCollision reverses only the momentum component along the axis the box
// was entered from. A repeat hit on the same box kicks AI cars free.
func (c *Car) BoxCollision(id ObstacleID, axis Axis) bool {
	if id == c.colBox {
		if c.AI {
			c.Momentum = c.Momentum.Scale(2)
		}
		return false
	}
	c.Pos = c.PrevPos
	switch axis {
	case AxisX:
		c.Momentum.X = -c.Momentum.X
	case AxisZ:
		c.Momentum.Z = -c.Momentum.Z
	default:
		c.Momentum = c.Momentum.Neg()
	}
	c.bounced()
	c.colBox = id
	c.colSphere = NoObstacle
	c.TakeDamage(c.ColDamage)
	return true
}

// Touching reports whether two cars overlap.
func (c *Car) Touching(o *Car) bool {
	r := c.t.Car.Radius
	return c.Pos.Sub(o.Pos).Length()-r*r*c.t.Car.CarRadiusMult < 0
}

// CarCollision resolves an overlap with o: both cars roll back and get
// opposite impulses along the line between them. Damage is shared, burning
// spreads, and when both use the same lane the trailing car changes lane.
func (c *Car) CarCollision(o *Car) bool {
	if !c.Touching(o) {
		return false
	}
	ct := &c.t.Car
	dist := c.Pos.Sub(o.Pos)

	c.Pos = c.PrevPos
	o.Pos = o.PrevPos

	d := dist.Normal().Scale(ct.CarImpact)
	change := c.Pos.Dot(d) - o.Pos.Dot(d)
	c.Momentum = d.Scale(change)
	o.Momentum = c.Momentum.Neg()

	c.bounced()
	c.colCar = o.ID
	c.colSphere, c.colBox = NoObstacle, NoObstacle

	dmg := (c.ColDamage + o.ColDamage) / 3
	c.TakeDamage(dmg)
	o.TakeDamage(dmg)

	burn := c.BurnTimer + o.BurnTimer
	c.BurnTimer, o.BurnTimer = burn, burn

	if c.Lane == o.Lane {
		if c.RacePos > o.RacePos {
			c.SwitchLane()
		} else {
			o.SwitchLane()
		}
	}
	return true
}

// LastCar is the car this one most recently bounced off.
func (c *Car) LastCar() CarID { return c.colCar }
