package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/lixenwraith/crosswalk/parameter"
)

// Prefix is prepended to every environment variable name
const Prefix = "CROSSWALK_"

// Config holds the tunables a run may override from the environment
// Unset variables keep the value from Default
type Config struct {
	Seed     int64         `env:"SEED"`
	Tick     time.Duration `env:"TICK"`
	AudioDir string        `env:"AUDIO_DIR"`
	Volume   float64       `env:"VOLUME"`
	LogFile  string        `env:"LOG_FILE"`

	SignalWait      time.Duration `env:"SIGNAL_WAIT"`
	SignalCrossHold time.Duration `env:"SIGNAL_CROSS_HOLD"`
	SignalPedsGreen time.Duration `env:"SIGNAL_PEDS_GREEN"`

	HonkIntervalMin time.Duration `env:"HONK_INTERVAL_MIN"`
	HonkIntervalMax time.Duration `env:"HONK_INTERVAL_MAX"`
	HonkPitchMin    float64       `env:"HONK_PITCH_MIN"`
	HonkPitchMax    float64       `env:"HONK_PITCH_MAX"`

	CheckpointCount   int           `env:"CHECKPOINT_COUNT"`
	CheckpointSpacing float64       `env:"CHECKPOINT_SPACING"`
	CruiseSpeed       float64       `env:"CRUISE_SPEED"`
	SpawnInterval     time.Duration `env:"SPAWN_INTERVAL"`

	IntroPause    time.Duration `env:"INTRO_PAUSE"`
	AfterTryPause time.Duration `env:"AFTER_TRY_PAUSE"`
	OutroPause    time.Duration `env:"OUTRO_PAUSE"`
}

// Default returns the stock configuration
func Default() Config {
	return Config{
		Seed:     parameter.DefaultSeed,
		Tick:     parameter.TickInterval,
		Volume:   1,
		LogFile:  parameter.LogFile,
		AudioDir: "",

		SignalWait:      parameter.SignalWaitTime,
		SignalCrossHold: parameter.SignalCrossCueHold,
		SignalPedsGreen: parameter.SignalPedsGreenDuration,

		HonkIntervalMin: parameter.HonkIntervalMin,
		HonkIntervalMax: parameter.HonkIntervalMax,
		HonkPitchMin:    parameter.HonkPitchMin,
		HonkPitchMax:    parameter.HonkPitchMax,

		CheckpointCount:   parameter.CheckpointCount,
		CheckpointSpacing: parameter.CheckpointSpacing,
		CruiseSpeed:       parameter.VehicleCruiseSpeed,
		SpawnInterval:     parameter.SpawnInterval,

		IntroPause:    parameter.ScenarioIntroPause,
		AfterTryPause: parameter.ScenarioAfterTryPause,
		OutroPause:    parameter.ScenarioOutroPause,
	}
}

// Parse overlays CROSSWALK_* variables onto Default
func Parse() (Config, error) {
	cfg := Default()
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: Prefix}); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// LoadFromEnv returns the environment configuration, or the defaults when it does not parse or validate
// The returned error reports why the defaults were used
func LoadFromEnv() (Config, error) {
	cfg, err := Parse()
	if err != nil {
		return Default(), err
	}
	if err := cfg.Validate(); err != nil {
		return Default(), fmt.Errorf("invalid env config: %w", err)
	}
	return cfg, nil
}

// Validate rejects values the scene cannot run with
func (c Config) Validate() error {
	var errs []error
	positive := []struct {
		name string
		d    time.Duration
	}{
		{"TICK", c.Tick},
		{"SIGNAL_WAIT", c.SignalWait},
		{"SIGNAL_CROSS_HOLD", c.SignalCrossHold},
		{"SIGNAL_PEDS_GREEN", c.SignalPedsGreen},
		{"HONK_INTERVAL_MIN", c.HonkIntervalMin},
		{"HONK_INTERVAL_MAX", c.HonkIntervalMax},
		{"SPAWN_INTERVAL", c.SpawnInterval},
	}
	for _, p := range positive {
		if p.d <= 0 {
			errs = append(errs, fmt.Errorf("%s%s must be positive, got %v", Prefix, p.name, p.d))
		}
	}
	if c.IntroPause < 0 || c.AfterTryPause < 0 || c.OutroPause < 0 {
		errs = append(errs, fmt.Errorf("narration pauses must not be negative"))
	}
	if c.HonkIntervalMin > c.HonkIntervalMax {
		errs = append(errs, fmt.Errorf("honk interval min %v exceeds max %v", c.HonkIntervalMin, c.HonkIntervalMax))
	}
	if c.HonkPitchMin <= 0 || c.HonkPitchMin > c.HonkPitchMax {
		errs = append(errs, fmt.Errorf("honk pitch range [%v, %v] is invalid", c.HonkPitchMin, c.HonkPitchMax))
	}
	if c.CheckpointCount < 1 {
		errs = append(errs, fmt.Errorf("checkpoint count must be at least 1, got %d", c.CheckpointCount))
	}
	if c.CheckpointSpacing <= parameter.VehicleLength {
		errs = append(errs, fmt.Errorf("checkpoint spacing %v must exceed vehicle length %v", c.CheckpointSpacing, parameter.VehicleLength))
	}
	if c.CruiseSpeed <= parameter.StoppedSpeed {
		errs = append(errs, fmt.Errorf("cruise speed %v is too low", c.CruiseSpeed))
	}
	if c.Volume < 0 {
		errs = append(errs, fmt.Errorf("volume must not be negative"))
	}
	return errors.Join(errs...)
}
