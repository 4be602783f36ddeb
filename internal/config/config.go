// Package config loads runtime settings and tuning overrides.
//
// Settings come from three layers, later ones winning: a YAML file, the
// HOVERRACE_* environment variables, and command-line flags. The optional
// tuning block of the file is applied on top of race.DefaultTuning, so a
// preset only names the values it changes.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"hoverrace/internal/race"
)

// Environment variables.
const (
	EnvConfig   = "HOVERRACE_CONFIG"
	EnvSeed     = "HOVERRACE_SEED"
	EnvLevel    = "HOVERRACE_LEVEL"
	EnvLogLevel = "HOVERRACE_LOG_LEVEL"
	EnvWSAddr   = "HOVERRACE_WS_ADDR"
	EnvQUICAddr = "HOVERRACE_QUIC_ADDR"
)

// ErrInvalid is returned for settings outside their allowed range.
var ErrInvalid = errors.New("invalid settings")

type Settings struct {
	// Seed drives every random choice of a session. Zero picks one from the
	// clock and the level fingerprint.
	Seed     uint64 `yaml:"seed"`
	LogLevel string `yaml:"log_level"`
	// Level is a track file path; empty selects the built-in circuit.
	Level     string      `yaml:"level"`
	Window    Window      `yaml:"window"`
	Audio     Audio       `yaml:"audio"`
	Telemetry Telemetry   `yaml:"telemetry"`
	Tuning    race.Tuning `yaml:"tuning"`
}

type Window struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

type Audio struct {
	Enabled bool    `yaml:"enabled"`
	Volume  float64 `yaml:"volume"`
}

// Telemetry configures the spectator feed. An empty address disables that
// transport.
type Telemetry struct {
	WSAddr   string  `yaml:"ws_addr"`
	QUICAddr string  `yaml:"quic_addr"`
	Rate     float64 `yaml:"rate"` // snapshots per second
}

// Enabled reports whether any transport is configured.
func (t Telemetry) Enabled() bool { return t.WSAddr != "" || t.QUICAddr != "" }

func Default() Settings {
	return Settings{
		LogLevel: "info",
		Window:   Window{Width: 1024, Height: 768, Title: "Hover Race"},
		Audio:    Audio{Enabled: true, Volume: 0.6},
		Telemetry: Telemetry{
			Rate: 20,
		},
		Tuning: race.DefaultTuning(),
	}
}

func (s Settings) Validate() error {
	switch s.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: log level %q", ErrInvalid, s.LogLevel)
	}
	if s.Window.Width <= 0 || s.Window.Height <= 0 {
		return fmt.Errorf("%w: window %dx%d", ErrInvalid, s.Window.Width, s.Window.Height)
	}
	if s.Audio.Volume < 0 || s.Audio.Volume > 1 {
		return fmt.Errorf("%w: volume %v", ErrInvalid, s.Audio.Volume)
	}
	if s.Telemetry.Rate <= 0 {
		return fmt.Errorf("%w: telemetry rate %v", ErrInvalid, s.Telemetry.Rate)
	}
	if err := s.Tuning.Validate(); err != nil {
		return fmt.Errorf("tuning: %w", err)
	}
	return nil
}

// Decode reads a YAML document over the defaults. Unknown keys are errors.
func Decode(r io.Reader) (Settings, error) {
	s := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil && !errors.Is(err, io.EOF) {
		return Settings{}, fmt.Errorf("decode config: %w", err)
	}
	return s, nil
}

// Load decodes the file at path, or returns the defaults when path is empty.
func Load(path string) (Settings, error) {
	if path == "" {
		return Default(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return Settings{}, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()
	return Decode(f)
}

// ApplyEnv overrides settings from HOVERRACE_* variables. A malformed seed
// is ignored.
func (s *Settings) ApplyEnv(getenv func(string) string) {
	if v := getenv(EnvSeed); v != "" {
		if n, err := strconv.ParseUint(v, 10, 64); err == nil {
			s.Seed = n
		}
	}
	if v := getenv(EnvLevel); v != "" {
		s.Level = v
	}
	if v := getenv(EnvLogLevel); v != "" {
		s.LogLevel = v
	}
	if v := getenv(EnvWSAddr); v != "" {
		s.Telemetry.WSAddr = v
	}
	if v := getenv(EnvQUICAddr); v != "" {
		s.Telemetry.QUICAddr = v
	}
}

// FromArgs builds the settings of a process: flags name the config file
// and override the level, seed and log level.
func FromArgs(name string, args []string, getenv func(string) string) (Settings, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	path := fs.String("config", "", "YAML settings file (env "+EnvConfig+")")
	level := fs.String("level", "", "track file; empty uses the built-in circuit")
	seed := fs.Uint64("seed", 0, "random seed; 0 picks one")
	logLevel := fs.String("log", "", "log level: debug, info, warn or error")
	if err := fs.Parse(args); err != nil {
		return Settings{}, err
	}

	if *path == "" {
		*path = getenv(EnvConfig)
	}
	s, err := Load(*path)
	if err != nil {
		return Settings{}, err
	}
	s.ApplyEnv(getenv)
	if *level != "" {
		s.Level = *level
	}
	if *seed != 0 {
		s.Seed = *seed
	}
	if *logLevel != "" {
		s.LogLevel = *logLevel
	}
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}
