// Package simconfig loads tunable sim constants from YAML, the same
// two-stage viper-then-yaml decode the teacher project used for its
// training hyperparameters: viper reads an outer envelope (so the config
// file can live alongside unrelated keys a host app might add), and the
// `def` sub-document is re-marshalled and decoded into the typed struct
// below with gopkg.in/yaml.v3. No sim package reads a SimConfig:
// sim.World only stores one (World.WithConfig) and InitRun installs
// Default(), so config is never consulted mid-tick.
package simconfig

import (
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// HyperParameter overrides a single named spec constant.
type HyperParameter struct {
	Key string  `yaml:"key"`
	Val float32 `yaml:"val"`
}

// SimConfig is the set of tunables a host may load. Every field is
// optional; Get, GetDifficulty and GetEconomy return the caller's default
// for a missing key.
type SimConfig struct {
	// Overrides is a flat key/value table for any scalar constant named
	// in spec.md (attack timings, ranges, cooldowns, rates, ...).
	Overrides []HyperParameter `yaml:"overrides"`
	// Difficulty holds named adaptive-AI target values (component H).
	Difficulty map[string]float32 `yaml:"difficulty"`
	// Economy holds named shop/choice weighting values (component I).
	Economy map[string]float32 `yaml:"economy"`
}

type outerEnvelope struct {
	Kind string      `mapstructure:"kind"`
	Def  interface{} `mapstructure:"def"`
}

// Get returns the override for key, or def if no override was loaded.
func (c *SimConfig) Get(key string, def float32) float32 {
	if c == nil {
		return def
	}
	for _, kv := range c.Overrides {
		if kv.Key == key {
			return kv.Val
		}
	}
	return def
}

// GetDifficulty returns a difficulty seed value, or def if unset.
func (c *SimConfig) GetDifficulty(key string, def float32) float32 {
	if c == nil {
		return def
	}
	if v, ok := c.Difficulty[key]; ok {
		return v
	}
	return def
}

// GetEconomy returns an economy override, or def if unset.
func (c *SimConfig) GetEconomy(key string, def float32) float32 {
	if c == nil {
		return def
	}
	if v, ok := c.Economy[key]; ok {
		return v
	}
	return def
}

// Default returns a SimConfig with no overrides: pure spec.md defaults.
func Default() *SimConfig {
	return &SimConfig{}
}

// FromYaml loads a SimConfig from path. A missing file is not an error —
// it yields Default() so callers never need to special-case "no config".
func FromYaml(path string) (*SimConfig, error) {
	if _, err := filepath.Abs(path); err != nil {
		return nil, err
	}

	vp := viper.New()
	vp.SetConfigFile(path)
	vp.SetConfigType("yaml")
	if err := vp.ReadInConfig(); err != nil {
		if _, isNotFound := err.(viper.ConfigFileNotFoundError); isNotFound || os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, err
	}

	outer := &outerEnvelope{}
	if err := vp.Unmarshal(outer); err != nil {
		return nil, err
	}

	// A bare file with no "def" envelope is allowed too: try decoding the
	// raw settings directly as the inner config.
	if outer.Def == nil {
		cfg := &SimConfig{}
		if err := vp.Unmarshal(cfg); err != nil {
			return nil, err
		}
		return cfg, nil
	}

	raw, err := yaml.Marshal(outer.Def)
	if err != nil {
		return nil, err
	}

	cfg := &SimConfig{}
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Watch installs a config-change callback on path that receives the
// freshly loaded config each time the file changes. It never mutates a
// running World. Internally this is
// viper's WatchConfig, which chains to fsnotify.
func Watch(path string, onChange func(*SimConfig)) error {
	vp := viper.New()
	vp.SetConfigFile(path)
	vp.SetConfigType("yaml")
	if err := vp.ReadInConfig(); err != nil {
		return err
	}

	vp.OnConfigChange(func(_ fsnotify.Event) {
		cfg, err := FromYaml(path)
		if err != nil {
			return
		}
		onChange(cfg)
	})
	vp.WatchConfig()
	return nil
}
