//go:build !android

package game

import (
	"hoverrace/internal/race"
	"hoverrace/internal/scene"
)

// groundMargin pads the ground plate past the outermost wall.
const groundMargin = 40

// frame holds the per-frame draw lists so their backing arrays are reused.
type frame struct {
	gates     scene.Sprites
	cars      scene.Sprites
	bars      scene.Sprites
	bombs     scene.Sprites
	particles scene.Sprites
	rects     []scene.Rect
}

// DrawTrack renders the ground, zones, walls, obstacles and gates.
func (r *Renderer) DrawTrack(st *scene.Static, rc *race.Race, f *frame, cam *scene.Camera, fbW, fbH int) {
	ground := st.Extents
	ground.W += 2 * groundMargin
	ground.H += 2 * groundMargin
	ground.Col = scene.Palette.Ground
	ground.A = 1

	f.rects = append(f.rects[:0], ground)
	f.rects = append(f.rects, st.Walls...)
	r.DrawRects(f.rects)

	r.DrawGlowSprites(st.Zones, cam, fbW, fbH)
	r.DrawSprites(st.Props, cam, fbW, fbH, false)
	r.DrawSprites(st.Solids, cam, fbW, fbH, false)

	f.gates.Reset()
	next := rc.Player().NextCheck
	r.DrawRects(scene.Gates(&f.gates, rc.Track.Checkpoints, next, rc.Tuning().Checkpoint))
	r.DrawSprites(f.gates, cam, fbW, fbH, false)
}

// DrawActors renders bombs, particles, cars and their health bars.
func (r *Renderer) DrawActors(rc *race.Race, f *frame, cam *scene.Camera, fbW, fbH int) {
	radius := rc.Tuning().Car.Radius

	f.bombs.Reset()
	scene.Bombs(&f.bombs, rc.Track.Bombs, rc.Elapsed)
	r.DrawSprites(f.bombs, cam, fbW, fbH, false)

	f.particles.Reset()
	scene.Particles(&f.particles, scene.World(rc)...)
	r.DrawGlowSprites(f.particles, cam, fbW, fbH)

	f.cars.Reset()
	scene.Cars(&f.cars, rc.Cars, radius)
	r.DrawCarSprites(f.cars, cam, fbW, fbH)

	f.bars.Reset()
	scene.HealthBars(&f.bars, rc.Cars, radius)
	r.DrawSprites(f.bars, cam, fbW, fbH, false)
}
