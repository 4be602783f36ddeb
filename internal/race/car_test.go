package race

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLanes() [][]Vec2 {
	return [][]Vec2{{{0, 50}, {0, 100}}, {{5, 50}, {5, 100}}}
}

func TestCarName(t *testing.T) {
	tune := testTuning()
	assert.Equal(t, "YOU", CarName(tune, 0))
	assert.Equal(t, "CAR2", CarName(tune, 1))
	assert.Equal(t, "CAR4", CarName(tune, 3))
}

func TestCarResetRestoresState(t *testing.T) {
	c := newTestCar(t, true)
	c.Momentum = Vec2{30, 4}
	c.Health.Damage(60)
	c.Lap, c.NextCheck, c.RaceTime, c.Finished = 3, 2, 88, true
	c.BoostTimer, c.BoostLocked, c.DrMult = -4, true, 2
	c.Ignite()

	c.Reset(Vec2{10, 20}, 90)
	assert.Equal(t, Vec2{10, 20}, c.Pos)
	assert.Equal(t, 90.0, c.Yaw)
	assert.True(t, c.Momentum.IsZero())
	assert.Equal(t, 100, c.Health.Current)
	assert.Equal(t, 1, c.Lap)
	assert.Equal(t, 0, c.NextCheck)
	assert.Zero(t, c.RaceTime)
	assert.False(t, c.Finished)
	assert.Equal(t, 3.0, c.BoostTimer)
	assert.False(t, c.BoostLocked)
	assert.Equal(t, 1.0, c.DrMult)
	assert.Zero(t, c.BurnTimer)
	assert.Equal(t, 1, c.Lane, "nearest lane start is (5, 50)")

	ct := c.t.Car
	assert.GreaterOrEqual(t, c.Height, ct.HoverHeight-ct.HoverRange)
	assert.Less(t, c.Height, ct.HoverHeight-ct.HoverRange+1)
}

func TestCarMoveAppliesDrag(t *testing.T) {
	c := newTestCar(t, false)
	c.Momentum = Vec2{10, 0}
	c.Move(0.1)
	assert.InDelta(t, 6.9, c.Momentum.X, 1e-9)
	assert.InDelta(t, 0.69, c.Pos.X, 1e-9)
	assert.Equal(t, Vec2{0, 0}, c.PrevPos)
}

func TestDeadCarHasNoThrust(t *testing.T) {
	c := newTestCar(t, false)
	c.TakeDamage(200)
	require.True(t, c.Health.IsDead())
	assert.Zero(t, c.ThMult)

	c.Thrust = Vec2{0, 5}
	c.Move(0.1)
	assert.True(t, c.Thrust.IsZero())
	assert.True(t, c.Momentum.IsZero())
}

func TestCollisionDamageFromSpeed(t *testing.T) {
	c := newTestCar(t, false)
	c.Momentum = Vec2{50, 0}
	c.UpdateDamage(0)
	require.Equal(t, 4, c.ColDamage)

	c.PrevPos = Vec2{-1, 0}
	require.True(t, c.BoxCollision(3, AxisX))
	assert.Equal(t, 96, c.Health.Current)
	assert.Equal(t, Vec2{-1, 0}, c.Pos)
	assert.Equal(t, Vec2{-50, 0}, c.Momentum)
	assert.Equal(t, c.t.Car.CollisionThrust, c.ThMult)

	assert.False(t, c.BoxCollision(3, AxisX), "same box twice")
	assert.Equal(t, 96, c.Health.Current)
	assert.Equal(t, Vec2{-50, 0}, c.Momentum)
}

func TestImpactDamage(t *testing.T) {
	assert.Equal(t, 0, ImpactDamage(0, 0.04))
	assert.Equal(t, 0, ImpactDamage(-10, 0.04))
	assert.Equal(t, 4, ImpactDamage(2500, 0.04))
	assert.Equal(t, 16, ImpactDamage(10000, 0.04))
}

func TestCarBoxCollisionFlipsAxis(t *testing.T) {
	c := newTestCar(t, false)
	c.Momentum = Vec2{5, 7}
	c.BoxCollision(1, AxisZ)
	assert.Equal(t, Vec2{5, -7}, c.Momentum)
	c.BoxCollision(2, AxisBoth)
	assert.Equal(t, Vec2{-5, 7}, c.Momentum)
}

func TestRepeatBoxHitKicksAIFree(t *testing.T) {
	c := newTestCar(t, true)
	c.Momentum = Vec2{3, 0}
	require.True(t, c.BoxCollision(1, AxisX))
	assert.False(t, c.BoxCollision(1, AxisX))
	assert.Equal(t, Vec2{-6, 0}, c.Momentum)
}

func TestCarSphereCollisionGuard(t *testing.T) {
	c := newTestCar(t, false)
	c.Momentum = Vec2{3, -4}
	c.PrevPos = Vec2{1, 1}
	c.Pos = Vec2{2, 2}
	require.True(t, c.SphereCollision(9))
	assert.Equal(t, Vec2{1, 1}, c.Pos)
	assert.Equal(t, Vec2{-3, 4}, c.Momentum)
	assert.False(t, c.SphereCollision(9))

	// Slowing down below the threshold restores thrust and clears the guard.
	c.Momentum = Vec2{1, 1}
	c.ResetCollision()
	assert.Equal(t, 1.0, c.ThMult)
	assert.True(t, c.SphereCollision(9))
}

func TestCarCollision(t *testing.T) {
	tune := testTuning()
	rng := NewRand(3)
	a := NewCar(0, true, Vec2{0, 0}, 0, testLanes(), tune, rng)
	b := NewCar(2, true, Vec2{1, 0}, 0, testLanes(), tune, rng)
	a.PrevPos = Vec2{-0.5, 0}
	b.PrevPos = Vec2{1.5, 0}
	a.BurnTimer = 2
	require.Equal(t, a.Lane, b.Lane)

	require.True(t, a.CarCollision(b))
	assert.Equal(t, Vec2{-0.5, 0}, a.Pos)
	assert.Equal(t, Vec2{1.5, 0}, b.Pos)
	assert.InDelta(t, -7.22, a.Momentum.X, 1e-9)
	assert.InDelta(t, 7.22, b.Momentum.X, 1e-9)
	assert.Equal(t, CarID(2), a.LastCar())
	assert.Equal(t, 2.0, b.BurnTimer, "fire spreads")
	assert.NotEqual(t, a.Lane, b.Lane, "trailing car changes lane")

	assert.False(t, a.CarCollision(b), "no longer touching")
}

func TestCarCollisionSharesDamage(t *testing.T) {
	tune := testTuning()
	rng := NewRand(3)
	a := NewCar(0, false, Vec2{0, 0}, 0, testLanes(), tune, rng)
	b := NewCar(1, true, Vec2{0, 1}, 0, testLanes(), tune, rng)
	a.ColDamage, b.ColDamage = 10, 5

	require.True(t, a.CarCollision(b))
	assert.Equal(t, 95, a.Health.Current)
	assert.Equal(t, 95, b.Health.Current)
}

func TestExplosionCooldown(t *testing.T) {
	c := newTestCar(t, false)
	require.True(t, c.Explosion(Vec2{3, 0}))
	assert.InDelta(t, -56, c.Momentum.X, 1e-9, "thrown away from the bomb")
	assert.Equal(t, 97, c.Health.Current)

	assert.False(t, c.Explosion(Vec2{3, 0}))
	assert.Equal(t, 97, c.Health.Current)

	c.UpdateDamage(3.1)
	assert.True(t, c.Explosion(Vec2{3, 0}))
}

func TestBurnDamagesOverTime(t *testing.T) {
	c := newTestCar(t, false)
	c.Ignite()
	require.Equal(t, 5.0, c.BurnTimer)

	c.Burn(0.6)
	assert.InDelta(t, 5-0.6*1.8, c.BurnTimer, 1e-9)
	assert.Equal(t, 99, c.Health.Current)

	for c.BurnTimer > 0 {
		c.UpdateParticles(0.1)
	}
	hp := c.Health.Current
	c.UpdateParticles(1)
	assert.Equal(t, hp, c.Health.Current, "no damage once the fire is out")
}

func TestFastCarsBurnLonger(t *testing.T) {
	slow := newTestCar(t, false)
	fast := newTestCar(t, false)
	fast.Momentum = Vec2{50, 0}
	slow.Ignite()
	fast.Ignite()
	slow.Burn(0.1)
	fast.Burn(0.1)
	assert.Greater(t, fast.BurnTimer, slow.BurnTimer)
}

func TestLowHealthSmokes(t *testing.T) {
	c := newTestCar(t, false)
	for i := 0; i < 5; i++ {
		c.UpdateParticles(0.3)
	}
	assert.Zero(t, c.Smoke[0].Live())

	c.TakeDamage(75)
	for i := 0; i < 5; i++ {
		c.UpdateParticles(0.3)
	}
	assert.Positive(t, c.Smoke[0].Live())
}

func TestBoostOverheats(t *testing.T) {
	c := newTestCar(t, false)
	in := Controls{Forward: true, Boost: true}

	c.Drive(in, 1)
	assert.Equal(t, 1.4, c.BoostMult)
	assert.Equal(t, 2.0, c.BoostTimer)
	c.Drive(in, 1)
	c.Drive(in, 1)

	assert.Equal(t, -5.0, c.BoostTimer)
	assert.True(t, c.BoostLocked)
	assert.Equal(t, 2.0, c.DrMult)
	assert.Equal(t, 1.0, c.BoostMult)
	assert.True(t, c.Overheated())

	// Locked: holding boost does nothing but recover.
	c.Drive(in, 1)
	assert.Equal(t, -4.0, c.BoostTimer)
	assert.Equal(t, 1.0, c.BoostMult)

	for i := 0; i < 4; i++ {
		c.Drive(Controls{Forward: true}, 1)
	}
	assert.Zero(t, c.BoostTimer)
	assert.False(t, c.BoostLocked)
	assert.Equal(t, 1.0, c.DrMult)

	for i := 0; i < 10; i++ {
		c.Drive(Controls{}, 1)
	}
	assert.Equal(t, 3.0, c.BoostTimer)
}

func TestBoostNeedsThrust(t *testing.T) {
	c := newTestCar(t, false)
	c.Drive(Controls{Boost: true}, 1)
	assert.Equal(t, 1.0, c.BoostMult)
	assert.Equal(t, 3.0, c.BoostTimer)
}

func TestBoostLockedWhenDamaged(t *testing.T) {
	c := newTestCar(t, false)
	c.TakeDamage(80)
	c.Drive(Controls{Forward: true, Boost: true}, 0.1)
	assert.True(t, c.BoostLocked)
	assert.Equal(t, 1.0, c.BoostMult)
	assert.Equal(t, -10.0, c.BoostTimer)
	assert.False(t, c.Overheated())
}

func TestDriveSteering(t *testing.T) {
	c := newTestCar(t, false)
	c.Drive(Controls{Forward: true, Left: true}, 0.1)
	assert.InDelta(t, -10, c.Yaw, 1e-9)
	assert.InDelta(t, 4.5, c.Lean, 1e-9)
	assert.InDelta(t, 4, c.Tilt, 1e-9)
	assert.InDelta(t, 15, c.Thrust.Magnitude(), 1e-9)

	c.Drive(Controls{Backward: true, Right: true}, 1)
	assert.Equal(t, -7.5, c.Tilt, "back tilt is capped at half")
	assert.Equal(t, -19.0, c.Lean)
	assert.InDelta(t, 75, c.Thrust.Magnitude(), 1e-9)
}
