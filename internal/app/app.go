// Package app assembles a playable session: settings, level, race,
// sound and the spectator feed. Front-ends drive it one frame at a time.
package app

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"hoverrace/internal/audio"
	"hoverrace/internal/config"
	"hoverrace/internal/logging"
	"hoverrace/internal/race"
	"hoverrace/internal/telemetry"
)

// Seed is the value every random choice of a session derives from.
type Seed uint64

// Assets is everything read from disk or validated before a race exists.
type Assets struct {
	Records     []race.Record
	Fingerprint uint64
	Unknown     []string
	Tuning      *race.Tuning
}

// Spectators holds the configured telemetry transports. Either may be nil.
type Spectators struct {
	Hub    *telemetry.Hub
	WSAddr string
	QUIC   *telemetry.QUICPublisher
}

func (s *Spectators) publishers() []telemetry.Publisher {
	var pubs []telemetry.Publisher
	if s == nil {
		return pubs
	}
	if s.Hub != nil {
		pubs = append(pubs, s.Hub)
	}
	if s.QUIC != nil {
		pubs = append(pubs, s.QUIC)
	}
	return pubs
}

type App struct {
	Settings *config.Settings
	Log      *logging.Logger
	Session  uuid.UUID
	Seed     Seed
	Race     *race.Race
	Audio    *audio.Engine
	Feed     *telemetry.Feed

	spectators *Spectators
}

func NewApp(s *config.Settings, log *logging.Logger, assets *Assets, seed Seed, eng *audio.Engine, spect *Spectators) (*App, error) {
	session := uuid.New()
	log = log.With(logging.String("session", session.String()))

	rng := race.NewRand(uint64(seed))
	track, err := race.BuildTrack(assets.Records, assets.Tuning, rng)
	if err != nil {
		return nil, err
	}
	bus := race.NewEventBus()
	r, err := race.NewRace(track, assets.Tuning, rng, bus)
	if err != nil {
		return nil, err
	}
	logEvents(bus, r, log)
	if eng != nil {
		eng.Attach(bus, r.Player().ID)
	}

	log.Info("race ready",
		logging.Uint64("seed", uint64(seed)),
		logging.Uint64("track", assets.Fingerprint),
		logging.Int("cars", len(r.Cars)),
		logging.Int("checkpoints", len(track.Checkpoints)),
		logging.Int("skipped", track.Skipped),
	)

	return &App{
		Settings:   s,
		Log:        log,
		Session:    session,
		Seed:       seed,
		Race:       r,
		Audio:      eng,
		Feed:       telemetry.NewFeed(session, assets.Fingerprint, s.Telemetry.Rate, log, spect.publishers()...),
		spectators: spect,
	}, nil
}

// Step advances the race by dt and offers a frame to spectators.
func (a *App) Step(dt float64, in race.Controls) {
	a.Race.Step(dt, in)
	a.Feed.Offer(dt, a.Race)
}

// Serve runs the spectator listeners until ctx is cancelled. It returns
// immediately when none are configured.
func (a *App) Serve(ctx context.Context) error {
	s := a.spectators
	if s == nil || (s.Hub == nil && s.QUIC == nil) {
		return nil
	}
	g, ctx := errgroup.WithContext(ctx)
	if s.Hub != nil {
		g.Go(func() error { return s.Hub.ListenAndServe(ctx, s.WSAddr) })
	}
	if s.QUIC != nil {
		g.Go(func() error { return s.QUIC.Serve(ctx) })
	}
	return g.Wait()
}

func (a *App) Close() error {
	var errs []error
	if a.Audio != nil {
		errs = append(errs, a.Audio.Close())
	}
	if a.spectators != nil && a.spectators.QUIC != nil {
		errs = append(errs, a.spectators.QUIC.Close())
	}
	a.Log.Info("session closed", logging.Uint64("frames", a.Race.Frame))
	_ = a.Log.Sync()
	return errors.Join(errs...)
}

func logEvents(bus *race.EventBus, r *race.Race, log *logging.Logger) {
	name := func(id race.CarID) string {
		if c := r.Car(id); c != nil {
			return c.Name
		}
		return ""
	}
	bus.SubscribeAll(func(e race.Event) {
		fields := []logging.Field{
			logging.String("event", e.Type.String()),
			logging.Int("value", e.Value),
		}
		if e.Car != race.NoCar {
			fields = append(fields, logging.String("car", name(e.Car)))
		}
		if e.Other != race.NoCar {
			fields = append(fields, logging.String("other", name(e.Other)))
		}
		switch e.Type {
		case race.EventCollision, race.EventBombTrigger, race.EventExplosionHit, race.EventBurn, race.EventCheckpoint:
			log.Debug("race event", fields...)
		default:
			log.Info("race event", fields...)
		}
	})
}
