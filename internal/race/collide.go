package race

// collide resolves every car against the grid around it, against the other
// cars, and against the bombs. At most one obstacle collision is applied
// per car per frame.
func (r *Race) collide(dt float64) {
	g := r.Track.Grid
	for i, c := range r.Cars {
		x, z := g.Coord(c.Pos)
		r.cells[i] = [2]int{x, z}
	}

	for i, c := range r.Cars {
		r.collideCar(i, c)
	}

	radius := r.t.Car.Radius
	for i, c := range r.Cars {
		for _, b := range r.Track.Bombs {
			if b.State == BombActive && b.Trigger.Collision(c.Pos, radius) {
				b.Detonate()
				r.emit(Event{Type: EventBombTrigger, Car: c.ID, Other: NoCar, Pos: b.Pos})
			}
			if b.State == BombExploding && b.Blast.Collision(c.Pos, radius) {
				if c.Explosion(b.Pos) {
					r.emit(Event{Type: EventExplosionHit, Car: c.ID, Other: NoCar, Pos: b.Pos, Value: c.Health.Current})
				}
				if i == 0 {
					r.shake = r.t.Game.ShakeTime
				}
			}
		}
	}
	for _, b := range r.Track.Bombs {
		b.Update(dt)
	}
}

func (r *Race) collideCar(i int, c *Car) {
	g := r.Track.Grid
	radius := r.t.Car.Radius
	zones := c.AI || r.Game == StateOver
	hit := false

	g.Neighbours(r.cells[i][0], r.cells[i][1], func(cell *Cell, x, z int) {
		for _, f := range cell.Fire {
			if f.Collision(c.Pos, radius) {
				if c.BurnTimer <= 0 {
					r.emit(Event{Type: EventBurn, Car: c.ID, Other: NoCar, Pos: c.Pos})
				}
				c.Ignite()
				break
			}
		}

		if !hit {
			for _, s := range cell.Spheres {
				if s.Collision(c.Pos, radius) {
					r.obstacleHit(c, c.SphereCollision(s.ID))
					hit = true
					break
				}
			}
		}

		if !hit {
			for _, b := range cell.Boxes {
				if axis := b.Collision(c.Body()); axis != AxisNone {
					r.obstacleHit(c, c.BoxCollision(b.ID, axis))
					hit = true
					break
				}
			}
		}

		if !hit {
			for m, o := range r.Cars {
				if m == i || r.cells[m] != [2]int{x, z} || o.colCar == c.ID {
					continue
				}
				if c.CarCollision(o) {
					r.emit(Event{Type: EventCollision, Car: c.ID, Other: o.ID, Pos: c.Pos, Value: c.ColDamage})
					hit = true
					break
				}
			}
		}

		if zones {
			for _, s := range cell.Slow {
				if s.Collision(c.Pos, radius) {
					c.NewSpeed(SpeedSlow)
				}
			}
			for _, s := range cell.Fast {
				if s.Collision(c.Pos, radius) {
					c.NewSpeed(SpeedFast)
				}
			}
		}
	})
}

func (r *Race) obstacleHit(c *Car, applied bool) {
	if applied {
		r.emit(Event{Type: EventCollision, Car: c.ID, Other: NoCar, Pos: c.Pos, Value: c.ColDamage})
	}
}
