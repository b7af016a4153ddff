package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/idilsaglam/vtodo/internal/seed"
	"github.com/idilsaglam/vtodo/internal/viewport"
)

// Keys, also used as flag names.
const (
	KeyRowHeight    = "row-height"
	KeyViewportSize = "viewport-size"
	KeyOverscan     = "overscan"
	KeySeedFile     = "seed-file"
	KeySeedCount    = "seed-count"
	KeyLogFile      = "log-file"
	KeyLogLevel     = "log-level"
	KeyTheme        = "theme"
	KeyColor        = "color"
)

// Colour modes.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Config is the runtime configuration.
type Config struct {
	RowHeight float64
	// ViewportSize of 0 means "as tall as the terminal allows".
	ViewportSize float64
	Overscan     int
	SeedFile     string
	SeedCount    int
	LogFile      string
	LogLevel     slog.Level
	Theme        string
	Color        string
}

// Viewport returns the engine constants for the given viewport size. A
// configured size wins over the one passed in.
func (c Config) Viewport(size float64) viewport.Config {
	if c.ViewportSize > 0 {
		size = c.ViewportSize
	}
	return viewport.Config{RowHeight: c.RowHeight, ViewportSize: size, Overscan: c.Overscan}
}

// RegisterFlags adds the configuration flags to fs.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.Float64(KeyRowHeight, 1, "height of one row, in viewport units")
	fs.Float64(KeyViewportSize, 0, "viewport height (0: fit the terminal)")
	fs.Int(KeyOverscan, viewport.DefaultOverscan, "rows rendered beyond each edge of the viewport")
	fs.String(KeySeedFile, "", "JSON or YAML file to seed the list from")
	fs.Int(KeySeedCount, seed.DefaultCount, "number of generated entries when no seed file is given")
	fs.String(KeyLogFile, "", "write logs to this file")
	fs.String(KeyLogLevel, "info", "log level: debug, info, warn, error")
	fs.String(KeyTheme, "classic", "theme of the headless output: classic, neon, mono")
	fs.String(KeyColor, ColorAuto, "colour output: auto, always, never")
}

// Load reads defaults, an optional .vtodo.yaml (home directory, then working
// directory), VTODO_* environment variables and the flags in fs, in
// increasing order of precedence.
func Load(fs *pflag.FlagSet) (Config, error) {
	v := viper.New()
	v.SetDefault(KeyRowHeight, 1.0)
	v.SetDefault(KeyViewportSize, 0.0)
	v.SetDefault(KeyOverscan, viewport.DefaultOverscan)
	v.SetDefault(KeySeedCount, seed.DefaultCount)
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyTheme, "classic")
	v.SetDefault(KeyColor, ColorAuto)

	v.SetConfigName(".vtodo") // .yaml is implicit
	if home, err := homedir.Dir(); err == nil {
		v.AddConfigPath(home)
	}
	v.AddConfigPath("./")
	v.SetEnvPrefix("VTODO")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}
	if fs != nil {
		if err := v.BindPFlags(fs); err != nil {
			return Config{}, fmt.Errorf("bind flags: %w", err)
		}
	}
	return fromViper(v)
}

func fromViper(v *viper.Viper) (Config, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(v.GetString(KeyLogLevel))); err != nil {
		return Config{}, fmt.Errorf("log level: %w", err)
	}
	logFile := v.GetString(KeyLogFile)
	if logFile != "" {
		p, err := homedir.Expand(logFile)
		if err != nil {
			return Config{}, fmt.Errorf("log file: %w", err)
		}
		logFile = p
	}
	c := Config{
		RowHeight:    v.GetFloat64(KeyRowHeight),
		ViewportSize: v.GetFloat64(KeyViewportSize),
		Overscan:     v.GetInt(KeyOverscan),
		SeedFile:     v.GetString(KeySeedFile),
		SeedCount:    v.GetInt(KeySeedCount),
		LogFile:      logFile,
		LogLevel:     level,
		Theme:        v.GetString(KeyTheme),
		Color:        strings.ToLower(v.GetString(KeyColor)),
	}
	return c, c.Validate()
}

// Validate checks the engine constants. A zero viewport size is allowed and
// resolved later from the terminal.
func (c Config) Validate() error {
	size := c.ViewportSize
	if size == 0 {
		size = 1
	}
	if err := c.Viewport(size).Validate(); err != nil {
		return err
	}
	if c.SeedCount < 0 {
		return fmt.Errorf("%w: seed count must not be negative, got %d", viewport.ErrConfig, c.SeedCount)
	}
	switch c.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("%w: color must be auto, always or never, got %q", viewport.ErrConfig, c.Color)
	}
	return nil
}
