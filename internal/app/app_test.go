package app

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"hoverrace/internal/audio"
	"hoverrace/internal/config"
	"hoverrace/internal/level"
	"hoverrace/internal/logging"
	"hoverrace/internal/race"
	"hoverrace/internal/telemetry"
)

func quietSettings() *config.Settings {
	s := config.Default()
	s.Seed = 42
	s.Audio.Enabled = false
	return &s
}

func newTestApp(t *testing.T, log *logging.Logger, spect *Spectators) *App {
	t.Helper()
	s := quietSettings()
	assets, err := provideAssets(context.Background(), s, log)
	require.NoError(t, err)
	a, err := NewApp(s, log, assets, provideSeed(s, assets), nil, spect)
	require.NoError(t, err)
	return a
}

func TestProvideAssetsBuiltin(t *testing.T) {
	s := quietSettings()
	a, err := provideAssets(context.Background(), s, logging.Nop())
	require.NoError(t, err)

	records, err := level.Default()
	require.NoError(t, err)
	assert.Equal(t, level.Fingerprint(records), a.Fingerprint)
	assert.Len(t, a.Records, len(records))
	assert.Empty(t, a.Unknown)
	require.NotNil(t, a.Tuning)
	assert.Equal(t, s.Tuning, *a.Tuning)
}

func TestProvideAssetsErrors(t *testing.T) {
	s := quietSettings()
	s.Tuning.Game.Laps = 0
	_, err := provideAssets(context.Background(), s, logging.Nop())
	assert.ErrorIs(t, err, race.ErrInvalidTuning)

	s = quietSettings()
	s.Level = filepath.Join(t.TempDir(), "missing.txt")
	_, err = provideAssets(context.Background(), s, logging.Nop())
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestProvideSeed(t *testing.T) {
	s := quietSettings()
	a := &Assets{Fingerprint: 0xff}
	assert.Equal(t, Seed(42), provideSeed(s, a))

	defer func(f func() time.Time) { now = f }(now)
	now = func() time.Time { return time.Unix(0, 0x1200) }
	s.Seed = 0
	assert.Equal(t, Seed(0x12ff), provideSeed(s, a))
}

func TestProvideAudio(t *testing.T) {
	s := quietSettings()
	assert.Nil(t, provideAudio(s, logging.Nop()))

	defer func(f func(*audio.Engine) error) { openAudio = f }(openAudio)
	opened := 0
	openAudio = func(*audio.Engine) error {
		opened++
		return errors.New("no device")
	}
	core, logs := observer.New(zap.WarnLevel)
	s.Audio.Enabled = true
	assert.Nil(t, provideAudio(s, logging.NewWithCore(core)))
	assert.Equal(t, 1, opened)
	assert.Equal(t, 1, logs.FilterMessage("audio init failed, continuing without sound").Len())

	openAudio = func(*audio.Engine) error { return nil }
	eng := provideAudio(s, logging.Nop())
	require.NotNil(t, eng)
	assert.Zero(t, eng.Active())
}

func TestProvideSpectators(t *testing.T) {
	s := quietSettings()
	spect := provideSpectators(s, logging.Nop())
	assert.Nil(t, spect.Hub)
	assert.Nil(t, spect.QUIC)
	assert.Empty(t, spect.publishers())

	s.Telemetry.WSAddr = "127.0.0.1:0"
	spect = provideSpectators(s, logging.Nop())
	assert.NotNil(t, spect.Hub)
	assert.Len(t, spect.publishers(), 1)
}

func TestAppStepAndEvents(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	hub := telemetry.NewHub(logging.Nop())
	a := newTestApp(t, logging.NewWithCore(core), &Spectators{Hub: hub})

	assert.Equal(t, 1, logs.FilterMessage("race ready").Len())
	assert.Equal(t, uint64(0), a.Race.Frame)

	a.Step(0.05, race.Controls{Start: true})
	for i := 0; i < 80; i++ {
		a.Step(0.05, race.Controls{Forward: true})
	}
	assert.Equal(t, uint64(81), a.Race.Frame)
	assert.Equal(t, race.StateRace, a.Race.Game)

	events := logs.FilterMessage("race event").AllUntimed()
	require.NotEmpty(t, events)
	assert.Equal(t, "countdown", events[0].ContextMap()["event"])
	assert.Equal(t, 1, logs.FilterField(zap.String("event", "race_start")).Len())
	assert.Equal(t, a.Session.String(), events[0].ContextMap()["session"])
}

func TestServeWithoutSpectators(t *testing.T) {
	a := newTestApp(t, logging.Nop(), &Spectators{})
	assert.NoError(t, a.Serve(context.Background()))
	assert.NoError(t, a.Close())
}

func TestServeStopsOnCancel(t *testing.T) {
	a := newTestApp(t, logging.Nop(), &Spectators{Hub: telemetry.NewHub(logging.Nop()), WSAddr: "127.0.0.1:0"})
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.Serve(ctx) }()
	time.Sleep(50 * time.Millisecond)
	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("serve did not stop")
	}
}

func TestInitialize(t *testing.T) {
	s := quietSettings()
	s.LogLevel = "error"
	a, err := Initialize(context.Background(), s)
	require.NoError(t, err)
	assert.Nil(t, a.Audio)
	assert.Equal(t, Seed(42), a.Seed)
	assert.Len(t, a.Race.Cars, s.Tuning.Game.MaxCars)
	require.NoError(t, a.Close())

	s.LogLevel = "loud"
	_, err = Initialize(context.Background(), s)
	assert.Error(t, err)
}
