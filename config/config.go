package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/zbanalyzer/zbparse/scene"
	"github.com/zbanalyzer/zbparse/zorton"
)

// Address is a 68000 address written in YAML as a hex string ("0x3FE00",
// "3FE00h", "$3FE00") or as a plain integer.
type Address uint32

func (a *Address) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("address must be a scalar (line %d)", value.Line)
	}
	v, err := zorton.ParseAddress(value.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	*a = Address(v)
	return nil
}

func (a Address) MarshalYAML() (any, error) {
	return zorton.Pointer(a).String(), nil
}

// Config holds the parser and analysis settings.
type Config struct {
	MemoryOffset Address   `yaml:"memory_offset"`
	MinRun       int       `yaml:"min_run"`
	Strategy     string    `yaml:"strategy"`
	MaxDepth     int       `yaml:"max_depth"`
	Compression  string    `yaml:"compression"`
	SceneOrder   []Address `yaml:"scene_order"`
	Debug        bool      `yaml:"debug"`
}

func Default() *Config {
	return &Config{
		MemoryOffset: zorton.MemoryOffset,
		MinRun:       zorton.DefaultMinRun,
		Strategy:     string(zorton.StrategyDiscriminator),
		MaxDepth:     scene.DefaultMaxDepth,
		Compression:  "zstd",
	}
}

// Load reads a YAML file over the defaults. An empty filename returns the
// defaults.
func Load(filename string) (*Config, error) {
	cfg := Default()
	if filename == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("config: load %s: %w", filename, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal %s: %w", filename, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %s: %w", filename, err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.MinRun < 1 {
		return fmt.Errorf("min_run must be at least 1, got %d", c.MinRun)
	}
	if !zorton.Strategy(c.Strategy).Valid() {
		return fmt.Errorf("unknown strategy %q", c.Strategy)
	}
	if c.MaxDepth < 1 {
		return fmt.Errorf("max_depth must be at least 1, got %d", c.MaxDepth)
	}
	if _, err := zorton.ParseCompression(c.Compression); err != nil {
		return err
	}
	return nil
}

// ScanOptions converts the config to parser options.
func (c *Config) ScanOptions() zorton.Options {
	return zorton.Options{
		Base:     uint32(c.MemoryOffset),
		MinRun:   c.MinRun,
		Strategy: zorton.Strategy(c.Strategy),
	}
}

func (c *Config) PackCompression() zorton.PackCompression {
	comp, err := zorton.ParseCompression(c.Compression)
	if err != nil {
		return zorton.PackCompZstd
	}
	return comp
}

func (c *Config) Order() []zorton.Pointer {
	out := make([]zorton.Pointer, len(c.SceneOrder))
	for i, a := range c.SceneOrder {
		out[i] = zorton.Pointer(a)
	}
	return out
}
