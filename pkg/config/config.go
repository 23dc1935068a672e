package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/knadh/koanf/parsers/toml/v2"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/ritzau/graphsketch/pkg/geometry"
	"github.com/ritzau/graphsketch/pkg/graph"
	"github.com/ritzau/graphsketch/pkg/logging"
	"github.com/spf13/pflag"
)

// DefaultFile is the config file looked up in the working directory
const DefaultFile = "graphsketch.toml"

// EnvPrefix prefixes environment overrides, e.g. GRAPHSKETCH_PORT=9090
const EnvPrefix = "GRAPHSKETCH_"

// Config holds all configuration for the application
type Config struct {
	Port        int    `koanf:"port"`
	OpenBrowser bool   `koanf:"open"`
	Watch       bool   `koanf:"watch"`
	Verbosity   string `koanf:"verbosity"`
	VerboseCnt  int    `koanf:"verbose"`
	JSONLogs    bool   `koanf:"json_logs"`

	// Editor settings, reloadable while serving
	Radius    float64 `koanf:"radius"`
	Tolerance float64 `koanf:"tolerance"`
	HitShape  string  `koanf:"hit_shape"`
	Loops     string  `koanf:"loops"`

	// File is the config file that was read, empty if none was found
	File string `koanf:"-"`
}

// Defaults returns the built-in configuration values
func Defaults() map[string]interface{} {
	return map[string]interface{}{
		"port":      8080,
		"open":      false,
		"watch":     false,
		"verbosity": "",
		"verbose":   0,
		"json_logs": false,
		"radius":    10.0,
		"tolerance": 0.0,
		"hit_shape": "box",
		"loops":     "twice",
	}
}

// Load loads configuration from defaults, config file, environment variables, and flags.
// Priority: Flags > Env > Config File > Defaults
func Load(f *pflag.FlagSet) (*Config, error) {
	return LoadFile(f, DefaultFile)
}

// LoadFile is Load with an explicit config file path. A missing file is not an
// error; a malformed one is.
func LoadFile(f *pflag.FlagSet, path string) (*Config, error) {
	k := koanf.New(".")

	// 1. Defaults
	if err := k.Load(makeMapProvider(Defaults()), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Config file (optional)
	var used string
	if path != "" {
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			if !isNotExist(err) {
				return nil, fmt.Errorf("failed to load %s: %w", path, err)
			}
			logging.Debug("no config file", "path", path)
		} else {
			used = path
		}
	}

	// 3. Environment variables. Keys are flat, so underscores are kept
	// (GRAPHSKETCH_HIT_SHAPE -> hit_shape).
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// 4. Flags
	if f != nil {
		if err := k.Load(posflag.ProviderWithFlag(f, ".", k, flagKey(f)), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.File = used

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// flagKey maps dashed flag names onto config keys (--hit-shape -> hit_shape).
// Unchanged flags only fill keys that no earlier layer has set.
func flagKey(f *pflag.FlagSet) func(*pflag.Flag) (string, interface{}) {
	return func(fl *pflag.Flag) (string, interface{}) {
		return strings.ReplaceAll(fl.Name, "-", "_"), posflag.FlagVal(f, fl)
	}
}

func isNotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}

// Validate rejects values the editor cannot work with
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	if c.Radius <= 0 {
		return fmt.Errorf("radius must be positive, got %g", c.Radius)
	}
	if c.Tolerance < 0 {
		return fmt.Errorf("tolerance must not be negative, got %g", c.Tolerance)
	}
	if _, err := geometry.ParseHitShape(c.HitShape); err != nil {
		return err
	}
	if _, err := graph.ParseLoopPolicy(c.Loops); err != nil {
		return err
	}
	if _, err := logging.LevelFor(c.Verbosity, c.VerboseCnt); err != nil {
		return err
	}
	return nil
}

// Shape returns the parsed hit shape. Validate has already checked it.
func (c *Config) Shape() geometry.HitShape {
	s, _ := geometry.ParseHitShape(c.HitShape)
	return s
}

// LoopPolicy returns the parsed loop policy. Validate has already checked it.
func (c *Config) LoopPolicy() graph.LoopPolicy {
	p, _ := graph.ParseLoopPolicy(c.Loops)
	return p
}

// Helper to use map as a provider
type mapProvider struct {
	m map[string]interface{}
}

func makeMapProvider(m map[string]interface{}) *mapProvider {
	return &mapProvider{m: m}
}

func (p *mapProvider) Read() (map[string]interface{}, error) {
	return p.m, nil
}

func (p *mapProvider) ReadBytes() ([]byte, error) {
	return nil, fmt.Errorf("not implemented")
}
