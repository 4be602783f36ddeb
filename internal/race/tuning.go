package race

import (
	"errors"
	"fmt"
)

// ErrInvalidTuning is returned by Tuning.Validate.
var ErrInvalidTuning = errors.New("invalid tuning")

// Tuning holds every gameplay constant. It is passed by value into the
// constructors and never mutated by the simulation.
type Tuning struct {
	Car        CarTuning        `yaml:"car"`
	AI         AITuning         `yaml:"ai"`
	Particles  ParticleTuning   `yaml:"particles"`
	Grid       GridTuning       `yaml:"grid"`
	Track      TrackTuning      `yaml:"track"`
	Checkpoint CheckpointTuning `yaml:"checkpoint"`
	Bomb       BombTuning       `yaml:"bomb"`
	Game       GameTuning       `yaml:"game"`
	HUD        HUDTuning        `yaml:"hud"`
}

// CarTuning covers hover-car handling, boost, damage and burn.
type CarTuning struct {
	Radius          float64 `yaml:"radius"`
	RotationSpeed   float64 `yaml:"rotation_speed"` // degrees per second
	Thrust          float64 `yaml:"thrust"`
	ReverseRatio    float64 `yaml:"reverse_ratio"`
	DragCoefficient float64 `yaml:"drag_coefficient"`
	CollisionThrust float64 `yaml:"collision_thrust"`
	SlowSpeed       float64 `yaml:"slow_speed"` // squared

	BoostMultiplier float64 `yaml:"boost_multiplier"`
	BoostMinThrust  float64 `yaml:"boost_min_thrust"`
	BoostTime       float64 `yaml:"boost_time"`
	OverheatTime    float64 `yaml:"overheat_time"`
	BoostDownTime   float64 `yaml:"boost_down_time"`
	OverheatDrag    float64 `yaml:"overheat_drag"`

	HoverHeight   float64 `yaml:"hover_height"`
	HoverRange    float64 `yaml:"hover_range"`
	HoverSpeed    float64 `yaml:"hover_speed"`
	HoverStartMin float64 `yaml:"hover_start_min"`

	MaxTilt    float64 `yaml:"max_tilt"`
	TiltFactor float64 `yaml:"tilt_factor"`
	MaxLean    float64 `yaml:"max_lean"`
	LeanFactor float64 `yaml:"lean_factor"`
	TiltDrag   float64 `yaml:"tilt_drag"`

	MaxHP             int     `yaml:"max_hp"`
	LowHP             float64 `yaml:"low_hp"` // fraction of MaxHP
	DamageFactor      float64 `yaml:"damage_factor"`
	CarRadiusMult     float64 `yaml:"car_radius_mult"`
	CarImpact         float64 `yaml:"car_impact"`
	ExplosionCooldown float64 `yaml:"explosion_cooldown"`
	BombDamage        float64 `yaml:"bomb_damage"`
	BombImpact        float64 `yaml:"bomb_impact"`
	BombMinDist       float64 `yaml:"bomb_min_dist"`
	BombMaxDist       float64 `yaml:"bomb_max_dist"`

	BurnTime        float64 `yaml:"burn_time"`
	BurnDamage      int     `yaml:"burn_damage"`
	BurnInterval    float64 `yaml:"burn_interval"`
	ExtinguishSpeed float64 `yaml:"extinguish_speed"` // squared
	ExtinguishMult  float64 `yaml:"extinguish_mult"`

	FireHeight      float64 `yaml:"fire_height"`
	FireRadius      float64 `yaml:"fire_radius"`
	FireVelRatio    float64 `yaml:"fire_vel_ratio"`
	SmokeHeight     float64 `yaml:"smoke_height"`
	SmokeOffset     float64 `yaml:"smoke_offset"`
	SmokeRadius     float64 `yaml:"smoke_radius"`
	SmokeDrift      float64 `yaml:"smoke_drift"`
	ExhaustHeight   float64 `yaml:"exhaust_height"`
	ExhaustOffset   float64 `yaml:"exhaust_offset"`
	ExhaustRadius   float64 `yaml:"exhaust_radius"`
	ExhaustDrift    float64 `yaml:"exhaust_drift"`
	ExhaustMinSpeed float64 `yaml:"exhaust_min_speed"` // squared
	ExhaustMinBoost float64 `yaml:"exhaust_min_boost"`
}

// AITuning drives path following and AI speed choices.
type AITuning struct {
	GoalSpeed      float64 `yaml:"goal_speed"`
	MaxGoalDist    float64 `yaml:"max_goal_dist"`
	MinThrust      float64 `yaml:"min_thrust"`
	MidThrust      float64 `yaml:"mid_thrust"`
	MaxThrust      float64 `yaml:"max_thrust"`
	ThrustChange   float64 `yaml:"thrust_change"`
	SpeedCooldown  float64 `yaml:"speed_cooldown"`
	PositionBonus  float64 `yaml:"position_bonus"`
	LowHPPenalty   float64 `yaml:"low_hp_penalty"`
	MedHPPenalty   float64 `yaml:"med_hp_penalty"`
	WaypointRadius float64 `yaml:"waypoint_radius"` // squared
}

// EmitterConfig describes one particle effect.
type EmitterConfig struct {
	Capacity      int     `yaml:"capacity"`
	Frequency     float64 `yaml:"frequency"`
	StartVelocity Vec3    `yaml:"start_velocity"`
	Acceleration  Vec3    `yaml:"acceleration"`
	MinSpeed      float64 `yaml:"min_speed"`
	Angle         float64 `yaml:"angle"`
	MinLife       float64 `yaml:"min_life"`
	MaxLife       float64 `yaml:"max_life"`
	Flame         bool    `yaml:"flame"`
	Height        float64 `yaml:"height"`

	// VelocityDamping replaces Acceleration with velocity*VelocityDamping when non-zero.
	VelocityDamping float64 `yaml:"velocity_damping"`

	// BurstSpeed gives every spawn a fresh random upward direction of this speed.
	BurstSpeed float64 `yaml:"burst_speed"`
}

// ParticleTuning holds one emitter config per effect.
type ParticleTuning struct {
	Gravity        Vec3          `yaml:"gravity"`
	Fire           EmitterConfig `yaml:"fire"`
	FireCore       EmitterConfig `yaml:"fire_core"`
	Smoke          EmitterConfig `yaml:"smoke"`
	Exhaust        EmitterConfig `yaml:"exhaust"`
	Explosion      EmitterConfig `yaml:"explosion"`
	TankFireRadius float64       `yaml:"tank_fire_radius"`
	BombRadius     float64       `yaml:"bomb_radius"`
}

// GridTuning sizes the collision grid.
type GridTuning struct {
	TerrainSize float64 `yaml:"terrain_size"`
	CellSize    float64 `yaml:"cell_size"`
	WorldEdge   float64 `yaml:"world_edge"`
	ZoneRadius  float64 `yaml:"zone_radius"`
}

// Squares is the number of cells along one side.
func (g GridTuning) Squares() int {
	if g.CellSize <= 0 {
		return 0
	}
	return int(g.TerrainSize / g.CellSize)
}

// TrackTuning holds obstacle dimensions for each level record type. Box
// sizes are half extents for the unrotated (0 or 180 degree) placement.
type TrackTuning struct {
	Isle              Vec2      `yaml:"isle"`
	Wall              Vec2      `yaml:"wall"`
	TankRadius        float64   `yaml:"tank_radius"`
	TankFireHeight    float64   `yaml:"tank_fire_height"`
	TankFireZone      float64   `yaml:"tank_fire_zone"`
	SkyscraperShift   float64   `yaml:"skyscraper_shift"`
	SkyscraperCore    Vec2      `yaml:"skyscraper_core"`
	SkyscraperWing    Vec2      `yaml:"skyscraper_wing"`
	Skyscraper2Box    Vec2      `yaml:"skyscraper2_box"`
	Skyscraper2Radius float64   `yaml:"skyscraper2_radius"`
	BuildingHalf      float64   `yaml:"building_half"`
	BuildingCorner    float64   `yaml:"building_corner"`
	TribuneRadius     float64   `yaml:"tribune_radius"`
	StartDistance     float64   `yaml:"start_distance"`
	StartOffsets      []float64 `yaml:"start_offsets"`
	BushScales        []float64 `yaml:"bush_scales"`
}

// CheckpointTuning sizes the gates and their crossing flash.
type CheckpointTuning struct {
	Length      float64 `yaml:"length"`
	StrutRadius float64 `yaml:"strut_radius"`
	Width       float64 `yaml:"width"`
	WideMult    float64 `yaml:"wide_mult"`
	CrossTime   float64 `yaml:"cross_time"`
}

// BombTuning holds bomb radii and timers.
type BombTuning struct {
	TriggerRadius   float64 `yaml:"trigger_radius"`
	ExplosionRadius float64 `yaml:"explosion_radius"`
	Cooldown        float64 `yaml:"cooldown"`
	ExplosionTime   float64 `yaml:"explosion_time"`
	Height          float64 `yaml:"height"`
}

// GameTuning holds race rules and director timings.
type GameTuning struct {
	Laps        int     `yaml:"laps"`
	MaxCars     int     `yaml:"max_cars"`
	Countdown   float64 `yaml:"countdown"`
	SampleRate  float64 `yaml:"sample_rate"`
	WorldScale  float64 `yaml:"world_scale"` // metres per unit
	ShakeTime   float64 `yaml:"shake_time"`
	ShakeHeight float64 `yaml:"shake_height"`
	PlayerName  string  `yaml:"player_name"`
}

// HUDTuning controls warning flashes and boost bar bands.
type HUDTuning struct {
	FlashPeriod float64   `yaml:"flash_period"`
	FlashOn     float64   `yaml:"flash_on"`
	BoostBands  []float64 `yaml:"boost_bands"`
}

// DefaultTuning returns the stock handling and track values.
func DefaultTuning() Tuning {
	gravity := Vec3{0, -50, 0}
	return Tuning{
		Car: CarTuning{
			Radius:          2.8 * 0.4,
			RotationSpeed:   100,
			Thrust:          150,
			ReverseRatio:    0.5,
			DragCoefficient: -3.1,
			CollisionThrust: 0.01,
			SlowSpeed:       12,

			BoostMultiplier: 1.4,
			BoostMinThrust:  0.01,
			BoostTime:       3,
			OverheatTime:    -5,
			BoostDownTime:   -10,
			OverheatDrag:    2,

			HoverHeight:   2.6,
			HoverRange:    0.5,
			HoverSpeed:    1,
			HoverStartMin: 2.1,

			MaxTilt:    15,
			TiltFactor: 40,
			MaxLean:    19,
			LeanFactor: 45,
			TiltDrag:   5,

			MaxHP:             100,
			LowHP:             0.3,
			DamageFactor:      0.04,
			CarRadiusMult:     2.5,
			CarImpact:         1.9,
			ExplosionCooldown: 3,
			BombDamage:        15,
			BombImpact:        -280,
			BombMinDist:       2.3,
			BombMaxDist:       5,

			BurnTime:        5,
			BurnDamage:      1,
			BurnInterval:    0.5,
			ExtinguishSpeed: 1800,
			ExtinguishMult:  1.8,

			FireHeight:      1.4,
			FireRadius:      1.5,
			FireVelRatio:    0.45,
			SmokeHeight:     2.15,
			SmokeOffset:     -1.4,
			SmokeRadius:     0.1,
			SmokeDrift:      -0.2,
			ExhaustHeight:   1.7,
			ExhaustOffset:   -1.3,
			ExhaustRadius:   0.1,
			ExhaustDrift:    -0.2,
			ExhaustMinSpeed: 1900,
			ExhaustMinBoost: 1.01,
		},
		AI: AITuning{
			GoalSpeed:      270,
			MaxGoalDist:    8,
			MinThrust:      0.55,
			MidThrust:      1.15,
			MaxThrust:      1.6,
			ThrustChange:   1.5,
			SpeedCooldown:  2,
			PositionBonus:  0.04,
			LowHPPenalty:   0.4,
			MedHPPenalty:   0.9,
			WaypointRadius: 8,
		},
		Particles: ParticleTuning{
			Gravity: gravity,
			Fire: EmitterConfig{
				Capacity:      25,
				Frequency:     0.01,
				StartVelocity: Vec3{0, 40, 0},
				Acceleration:  gravity,
				MinSpeed:      0.8 * 40,
				MinLife:       0.01,
				MaxLife:       0.1,
				Flame:         true,
			},
			FireCore: EmitterConfig{
				Capacity:      5,
				Frequency:     0.01,
				StartVelocity: Vec3{0, 33, 0},
				Acceleration:  gravity,
				MinSpeed:      0.05 * 40,
				MinLife:       0.01,
				MaxLife:       0.4,
				Flame:         true,
			},
			Smoke: EmitterConfig{
				Capacity:      10,
				Frequency:     0.2,
				StartVelocity: Vec3{0, 6, 0},
				Acceleration:  Vec3{0, 5, 0},
				Angle:         4,
				MinLife:       1.2,
				MaxLife:       1.8,
			},
			Exhaust: EmitterConfig{
				Capacity:      15,
				Frequency:     0.01,
				StartVelocity: Vec3{0, -3, 0},
				Acceleration:  gravity,
				MinSpeed:      0.8 * -3,
				Angle:         17,
				MinLife:       0.01,
				MaxLife:       0.2,
			},
			Explosion: EmitterConfig{
				Capacity:        17,
				Frequency:       0.006,
				VelocityDamping: -0.5,
				MinSpeed:        0.1,
				MinLife:         0.7,
				MaxLife:         1.6,
				BurstSpeed:      9.2,
				Height:          1.5,
			},
			TankFireRadius: 2.5,
			BombRadius:     0.1,
		},
		Grid: GridTuning{
			TerrainSize: 2000,
			CellSize:    40,
			WorldEdge:   999,
			ZoneRadius:  3,
		},
		Track: TrackTuning{
			Isle:              Vec2{1.8, 2.5},
			Wall:              Vec2{0.9, 4.8},
			TankRadius:        1.8 * 0.4,
			TankFireHeight:    1.9,
			TankFireZone:      2.1,
			SkyscraperShift:   -2,
			SkyscraperCore:    Vec2{11, 7},
			SkyscraperWing:    Vec2{14.5, 1.5},
			Skyscraper2Box:    Vec2{8.2, 3.55},
			Skyscraper2Radius: 4.2,
			BuildingHalf:      10,
			BuildingCorner:    3.5,
			TribuneRadius:     4 * 0.6,
			StartDistance:     -9,
			StartOffsets:      []float64{-5.2, -1.9, 1.9, 5.2},
			BushScales:        []float64{6, 10, 15, 20},
		},
		Checkpoint: CheckpointTuning{
			Length:      9.7,
			StrutRadius: 1.3,
			Width:       1,
			WideMult:    3,
			CrossTime:   3,
		},
		Bomb: BombTuning{
			TriggerRadius:   1.6,
			ExplosionRadius: 10,
			Cooldown:        40,
			ExplosionTime:   0.5,
			Height:          0.3,
		},
		Game: GameTuning{
			Laps:        2,
			MaxCars:     4,
			Countdown:   3,
			SampleRate:  0.2,
			WorldScale:  1.3,
			ShakeTime:   0.2,
			ShakeHeight: 0.5,
			PlayerName:  "YOU",
		},
		HUD: HUDTuning{
			FlashPeriod: 1.2,
			FlashOn:     0.15,
			BoostBands:  []float64{1.5, 1.0, 0.6, 0.3},
		},
	}
}

// Validate rejects values that would stall or crash the simulation.
func (t Tuning) Validate() error {
	emitters := map[string]EmitterConfig{
		"fire":      t.Particles.Fire,
		"fire_core": t.Particles.FireCore,
		"smoke":     t.Particles.Smoke,
		"exhaust":   t.Particles.Exhaust,
		"explosion": t.Particles.Explosion,
	}
	for name, e := range emitters {
		if e.Capacity < 2 {
			return fmt.Errorf("%w: %s emitter capacity %d", ErrInvalidTuning, name, e.Capacity)
		}
		if e.Frequency <= 0 {
			return fmt.Errorf("%w: %s emitter frequency %v", ErrInvalidTuning, name, e.Frequency)
		}
		if e.MaxLife < e.MinLife {
			return fmt.Errorf("%w: %s emitter life range %v..%v", ErrInvalidTuning, name, e.MinLife, e.MaxLife)
		}
	}
	switch {
	case t.Grid.CellSize <= 0 || t.Grid.TerrainSize < 3*t.Grid.CellSize:
		return fmt.Errorf("%w: grid %vx%v", ErrInvalidTuning, t.Grid.TerrainSize, t.Grid.CellSize)
	case t.Game.Laps < 1:
		return fmt.Errorf("%w: laps %d", ErrInvalidTuning, t.Game.Laps)
	case t.Game.MaxCars < 1:
		return fmt.Errorf("%w: max cars %d", ErrInvalidTuning, t.Game.MaxCars)
	case len(t.Track.StartOffsets) < t.Game.MaxCars:
		return fmt.Errorf("%w: %d start offsets for %d cars", ErrInvalidTuning, len(t.Track.StartOffsets), t.Game.MaxCars)
	case t.Car.MaxHP <= 0:
		return fmt.Errorf("%w: max hp %d", ErrInvalidTuning, t.Car.MaxHP)
	case t.Car.Radius <= 0:
		return fmt.Errorf("%w: car radius %v", ErrInvalidTuning, t.Car.Radius)
	case t.Car.BombMinDist <= 0 || t.Car.BombMaxDist < t.Car.BombMinDist:
		return fmt.Errorf("%w: bomb distance clamp %v..%v", ErrInvalidTuning, t.Car.BombMinDist, t.Car.BombMaxDist)
	case t.AI.MinThrust > t.AI.MidThrust || t.AI.MidThrust > t.AI.MaxThrust:
		return fmt.Errorf("%w: ai thrust bands %v/%v/%v", ErrInvalidTuning, t.AI.MinThrust, t.AI.MidThrust, t.AI.MaxThrust)
	}
	return nil
}
