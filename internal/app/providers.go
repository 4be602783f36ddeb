package app

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"hoverrace/internal/audio"
	"hoverrace/internal/config"
	"hoverrace/internal/level"
	"hoverrace/internal/logging"
	"hoverrace/internal/telemetry"
)

// now and openAudio are replaced in tests.
var (
	now       = time.Now
	openAudio = (*audio.Engine).Open
)

func provideLogger(s *config.Settings) (*logging.Logger, error) {
	lvl, err := logging.ParseLevel(s.LogLevel)
	if err != nil {
		return nil, err
	}
	return logging.New(lvl).Named("hoverrace"), nil
}

// provideAssets reads the level and checks the tuning table concurrently.
func provideAssets(ctx context.Context, s *config.Settings, log *logging.Logger) (*Assets, error) {
	a := &Assets{}
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		records, err := level.Load(s.Level)
		if err != nil {
			return err
		}
		a.Records = records
		a.Fingerprint = level.Fingerprint(records)
		a.Unknown = level.Unknown(records)
		return ctx.Err()
	})
	g.Go(func() error {
		t := s.Tuning
		if err := t.Validate(); err != nil {
			return err
		}
		a.Tuning = &t
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	src := s.Level
	if src == "" {
		src = "builtin"
	}
	log.Info("level loaded",
		logging.String("level", src),
		logging.Int("records", len(a.Records)),
		logging.Uint64("fingerprint", a.Fingerprint),
	)
	if len(a.Unknown) > 0 {
		log.Warn("unknown level records skipped", logging.Any("types", a.Unknown))
	}
	return a, nil
}

func provideSeed(s *config.Settings, a *Assets) Seed {
	if s.Seed != 0 {
		return Seed(s.Seed)
	}
	return Seed(uint64(now().UnixNano()) ^ a.Fingerprint)
}

// provideAudio returns nil when sound is disabled or no device opens.
func provideAudio(s *config.Settings, log *logging.Logger) *audio.Engine {
	if !s.Audio.Enabled {
		return nil
	}
	eng := audio.NewEngine(s.Audio.Volume, log.Named("audio"))
	if err := openAudio(eng); err != nil {
		log.Warn("audio init failed, continuing without sound", logging.Error(err))
		return nil
	}
	return eng
}

func provideSpectators(s *config.Settings, log *logging.Logger) *Spectators {
	spect := &Spectators{WSAddr: s.Telemetry.WSAddr}
	tlog := log.Named("telemetry")
	if s.Telemetry.WSAddr != "" {
		spect.Hub = telemetry.NewHub(tlog)
	}
	if s.Telemetry.QUICAddr != "" {
		pub, err := telemetry.ListenQUIC(s.Telemetry.QUICAddr, tlog)
		if err != nil {
			log.Warn("quic telemetry disabled", logging.Error(err))
		} else {
			spect.QUIC = pub
		}
	}
	return spect
}
