// Package config loads the bodygen.yaml settings file.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultFile is the settings file looked up in the working directory.
const DefaultFile = "bodygen.yaml"

// Config is the full settings file.
type Config struct {
	DataFolder    string `yaml:"data_folder" json:"data_folder"`
	OutputFolder  string `yaml:"output_folder" json:"output_folder"`
	SlidersDir    string `yaml:"sliders_dir" json:"sliders_dir"`
	CategoriesDir string `yaml:"categories_dir" json:"categories_dir"`
	PresetsDir    string `yaml:"presets_dir" json:"presets_dir"`
	Workers       int    `yaml:"workers" json:"workers"`
	Percent       *bool  `yaml:"percent" json:"percent"`
	SliderSize    string `yaml:"slider_size" json:"slider_size"`
	LogLevel      string `yaml:"log_level" json:"log_level"`

	Cache   CacheConfig   `yaml:"cache" json:"cache"`
	HTTP    HTTPConfig    `yaml:"http" json:"http"`
	Metrics MetricsConfig `yaml:"metrics" json:"metrics"`
	Bodies  []BodyConfig  `yaml:"bodies" json:"bodies"`
}

// CacheConfig selects the TRI cache backend.
type CacheConfig struct {
	Backend  string        `yaml:"backend" json:"backend"`
	Address  string        `yaml:"address" json:"address"`
	Password string        `yaml:"password" json:"password"`
	DB       int           `yaml:"db" json:"db"`
	Prefix   string        `yaml:"prefix" json:"prefix"`
	TTL      time.Duration `yaml:"ttl" json:"ttl"`
}

type HTTPConfig struct {
	Port int `yaml:"port" json:"port"`
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled" json:"enabled"`
	Port    int  `yaml:"port" json:"port"`
}

// BodyConfig names a preview body: a glTF base mesh and its TRI file.
type BodyConfig struct {
	Name string `yaml:"name" json:"name"`
	Mesh string `yaml:"mesh" json:"mesh"`
	Tri  string `yaml:"tri" json:"tri"`
}

const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

// Load reads path (YAML, or JSON by extension) and applies defaults. A missing
// file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if strings.EqualFold(filepath.Ext(path), ".json") {
			if err := json.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse %s: %w", path, err)
			}
		} else if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	case os.IsNotExist(err):
	default:
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.DataFolder == "" {
		c.DataFolder = "."
	}
	if c.OutputFolder == "" {
		c.OutputFolder = c.DataFolder
	}
	bodySlide := filepath.Join(c.DataFolder, "Tools", "BodySlide")
	if c.SlidersDir == "" {
		c.SlidersDir = filepath.Join(bodySlide, "Sliders")
	}
	if c.CategoriesDir == "" {
		c.CategoriesDir = filepath.Join(bodySlide, "SliderCategories")
	}
	if c.PresetsDir == "" {
		c.PresetsDir = filepath.Join(bodySlide, "SliderPresets")
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
	if c.Percent == nil {
		t := true
		c.Percent = &t
	}
	if c.SliderSize == "" {
		c.SliderSize = "big"
	}
	if c.Cache.Backend == "" {
		c.Cache.Backend = BackendMemory
	}
	if c.Cache.Address == "" {
		c.Cache.Address = "localhost:6379"
	}
	if c.HTTP.Port == 0 {
		c.HTTP.Port = 8080
	}
	if c.Metrics.Port == 0 {
		c.Metrics.Port = 9090
	}
}

// Validate checks values that defaults cannot fix.
func (c *Config) Validate() error {
	switch c.Cache.Backend {
	case BackendMemory, BackendRedis:
	default:
		return fmt.Errorf("unknown cache backend %q", c.Cache.Backend)
	}
	switch strings.ToLower(c.SliderSize) {
	case "big", "small", "all":
	default:
		return fmt.Errorf("slider_size must be big, small or all, got %q", c.SliderSize)
	}
	for i, b := range c.Bodies {
		if b.Name == "" || b.Mesh == "" || b.Tri == "" {
			return fmt.Errorf("bodies[%d]: name, mesh and tri are required", i)
		}
	}
	return nil
}

// SetDataFolder points the data folder at dir and re-derives the folders
// that were not set explicitly in the file.
func (c *Config) SetDataFolder(dir string) {
	old := c.DataFolder
	oldBodySlide := filepath.Join(old, "Tools", "BodySlide")
	c.DataFolder = dir
	if c.OutputFolder == old {
		c.OutputFolder = dir
	}
	newBodySlide := filepath.Join(dir, "Tools", "BodySlide")
	for _, p := range []*string{&c.SlidersDir, &c.CategoriesDir, &c.PresetsDir} {
		if rel, err := filepath.Rel(oldBodySlide, *p); err == nil && !strings.HasPrefix(rel, "..") {
			*p = filepath.Join(newBodySlide, rel)
		}
	}
}

// UsePercent reports whether preset values are 0..100 percentages.
func (c *Config) UsePercent() bool {
	return c.Percent == nil || *c.Percent
}

// SizeFilter returns the slider size to keep, or "" for all.
func (c *Config) SizeFilter() string {
	if strings.EqualFold(c.SliderSize, "all") {
		return ""
	}
	return strings.ToLower(c.SliderSize)
}
