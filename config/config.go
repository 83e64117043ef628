package config

import (
	"fmt"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Config struct {
	Sim     SimConfig     `mapstructure:"sim"`
	Logging LoggingConfig `mapstructure:"logging"`
	Viewer  ViewerConfig  `mapstructure:"viewer"`
}

type SimConfig struct {
	Scene           string `mapstructure:"scene"`
	TPS             int    `mapstructure:"tps"`
	Ticks           int    `mapstructure:"ticks"`
	TransitionsOnly bool   `mapstructure:"transitions_only"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`  // debug | info | warn | error
	Format string `mapstructure:"format"` // console | json
}

type ViewerConfig struct {
	Scale float64 `mapstructure:"scale"` // pixels per world unit
	Mouse bool    `mapstructure:"mouse"`
	Watch bool    `mapstructure:"watch"`
}

// flagKeys maps command line flags onto config keys.
var flagKeys = map[string]string{
	"scene":            "sim.scene",
	"tps":              "sim.tps",
	"ticks":            "sim.ticks",
	"transitions-only": "sim.transitions_only",
	"log-level":        "logging.level",
	"log-format":       "logging.format",
	"scale":            "viewer.scale",
	"mouse":            "viewer.mouse",
	"watch":            "viewer.watch",
}

// RegisterFlags adds the flags Load knows how to bind.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String("config", "", "config file (yaml, toml or json)")
	fs.String("scene", "courtyard.yaml", "scene spec under prefabs/")
	fs.Int("tps", 60, "simulation ticks per second")
	fs.Int("ticks", 600, "ticks to simulate (headless only)")
	fs.Bool("transitions-only", false, "print only ticks with a guard transition")
	fs.String("log-level", "info", "log level")
	fs.String("log-format", "console", "log format: console or json")
	fs.Float64("scale", 32, "viewer pixels per world unit")
	fs.Bool("mouse", false, "player follows the mouse in the viewer")
	fs.Bool("watch", true, "hot reload prefab edits in the viewer")
}

// Load reads path (optional) over the defaults, then applies any flags the
// user set on fs.
func Load(path string, fs *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	v.SetDefault("sim.scene", "courtyard.yaml")
	v.SetDefault("sim.tps", 60)
	v.SetDefault("sim.ticks", 600)
	v.SetDefault("sim.transitions_only", false)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("viewer.scale", 32.0)
	v.SetDefault("viewer.mouse", false)
	v.SetDefault("viewer.watch", true)

	if fs != nil {
		for name, key := range flagKeys {
			f := fs.Lookup(name)
			if f == nil || !f.Changed {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return nil, fmt.Errorf("config: bind %s: %w", name, err)
			}
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Sim.Scene == "" {
		return fmt.Errorf("config: sim.scene is empty")
	}
	if c.Sim.TPS <= 0 {
		return fmt.Errorf("config: sim.tps must be positive, got %d", c.Sim.TPS)
	}
	if c.Sim.Ticks < 0 {
		return fmt.Errorf("config: sim.ticks must not be negative, got %d", c.Sim.Ticks)
	}
	if c.Viewer.Scale <= 0 {
		return fmt.Errorf("config: viewer.scale must be positive, got %g", c.Viewer.Scale)
	}
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("config: unknown logging.format %q", c.Logging.Format)
	}
	return nil
}
