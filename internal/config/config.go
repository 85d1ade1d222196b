// Package config holds the settings shared by the example programs: which
// document and artboard to play, the output canvas and logging. Settings come
// from defaults, an optional YAML file and VB_* environment overrides, in that
// order; programs apply their command-line flags last.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoggingConfig mirrors logx.Options.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Source bool   `yaml:"source"`
	File   string `yaml:"file"`
}

// Config is the program configuration.
type Config struct {
	// File is the animation document to load.
	File string `yaml:"file"`
	// Artboard selects an artboard by name; empty means the first one.
	Artboard string `yaml:"artboard"`
	// Animation selects an animation by name; empty means the first one.
	Animation string `yaml:"animation"`

	Width  int `yaml:"width"`  // 0 uses the artboard width
	Height int `yaml:"height"` // 0 uses the artboard height
	Frames int `yaml:"frames"`
	FPS    int `yaml:"fps"`

	// Output is the directory receiving rendered frames.
	Output string `yaml:"output"`
	// Background is a "#RRGGBB" or "#AARRGGBB" clear color.
	Background string `yaml:"background"`

	Logging LoggingConfig `yaml:"logging"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		FPS:        30,
		Frames:     30,
		Output:     "frames",
		Background: "#00000000",
		Logging:    LoggingConfig{Level: "info", Format: "console"},
	}
}

// Env var names used as overrides.
const (
	EnvFile       = "VB_FILE"
	EnvArtboard   = "VB_ARTBOARD"
	EnvAnimation  = "VB_ANIMATION"
	EnvWidth      = "VB_WIDTH"
	EnvHeight     = "VB_HEIGHT"
	EnvFrames     = "VB_FRAMES"
	EnvFPS        = "VB_FPS"
	EnvOutput     = "VB_OUTPUT"
	EnvBackground = "VB_BACKGROUND"
	// Logging envs
	EnvLogLevel  = "VB_LOG_LEVEL"
	EnvLogFormat = "VB_LOG_FORMAT"
	EnvLogSource = "VB_LOG_SOURCE"
	EnvLogFile   = "VB_LOG_FILE"
)

// Load builds the configuration from defaults, the YAML file at path (skipped
// when path is empty) and the environment. A missing or malformed file is an
// error.
func Load(path string) (Config, error) {
	cfg := Defaults()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("config: %w", err)
		}
		var fileCfg Config
		if err := yaml.Unmarshal(data, &fileCfg); err != nil {
			return cfg, fmt.Errorf("config: parse %s: %w", path, err)
		}
		mergeInto(&cfg, &fileCfg)
	}
	applyEnvOverrides(&cfg)
	return cfg, cfg.Validate()
}

// Validate reports settings no program can work with.
func (c Config) Validate() error {
	switch {
	case c.Width < 0 || c.Height < 0:
		return fmt.Errorf("config: negative canvas size %dx%d", c.Width, c.Height)
	case c.FPS <= 0:
		return fmt.Errorf("config: fps must be positive, got %d", c.FPS)
	case c.Frames < 0:
		return fmt.Errorf("config: negative frame count %d", c.Frames)
	}
	return nil
}

// FrameStep is the animation time between two frames, in seconds.
func (c Config) FrameStep() float32 { return 1 / float32(c.FPS) }

func mergeInto(dst, src *Config) {
	setString(&dst.File, src.File)
	setString(&dst.Artboard, src.Artboard)
	setString(&dst.Animation, src.Animation)
	setString(&dst.Output, src.Output)
	setString(&dst.Background, src.Background)
	if src.Width != 0 {
		dst.Width = src.Width
	}
	if src.Height != 0 {
		dst.Height = src.Height
	}
	if src.Frames != 0 {
		dst.Frames = src.Frames
	}
	if src.FPS != 0 {
		dst.FPS = src.FPS
	}
	// logging
	if v := strings.TrimSpace(src.Logging.Level); v != "" {
		dst.Logging.Level = strings.ToLower(v)
	}
	if v := strings.TrimSpace(src.Logging.Format); v != "" {
		dst.Logging.Format = strings.ToLower(v)
	}
	dst.Logging.Source = src.Logging.Source
	setString(&dst.Logging.File, src.Logging.File)
}

func setString(dst *string, v string) {
	if v = strings.TrimSpace(v); v != "" {
		*dst = v
	}
}

func applyEnvOverrides(cfg *Config) {
	setString(&cfg.File, os.Getenv(EnvFile))
	setString(&cfg.Artboard, os.Getenv(EnvArtboard))
	setString(&cfg.Animation, os.Getenv(EnvAnimation))
	setString(&cfg.Output, os.Getenv(EnvOutput))
	setString(&cfg.Background, os.Getenv(EnvBackground))
	envInt(&cfg.Width, EnvWidth)
	envInt(&cfg.Height, EnvHeight)
	envInt(&cfg.Frames, EnvFrames)
	envInt(&cfg.FPS, EnvFPS)
	// logging overrides
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		cfg.Logging.Level = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFormat)); v != "" {
		cfg.Logging.Format = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogSource)); v != "" {
		cfg.Logging.Source = isTrue(v)
	}
	setString(&cfg.Logging.File, os.Getenv(EnvLogFile))
}

// envInt ignores values that do not parse.
func envInt(dst *int, key string) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return
	}
	if n, err := strconv.Atoi(v); err == nil {
		*dst = n
	}
}

func isTrue(v string) bool {
	switch strings.ToLower(v) {
	case "1", "true", "on", "yes":
		return true
	}
	return false
}
