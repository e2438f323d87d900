package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/SyedUmais05/Java-code-smell-detector/pkg/analyzer/smells"
)

// EnvPrefix prefixes environment overrides. A double underscore separates
// sections: JSMELL_SERVER__MAX_LINES sets server.max_lines.
const EnvPrefix = "JSMELL_"

// Config holds all configuration options for jsmell.
type Config struct {
	// Detection limits
	Thresholds smells.Thresholds `koanf:"thresholds" toml:"thresholds"`

	// HTTP boundary settings
	Server ServerConfig `koanf:"server" toml:"server"`

	// File exclusion patterns used when analyzing directories
	Exclude ExcludeConfig `koanf:"exclude" toml:"exclude"`

	// Cache settings
	Cache CacheConfig `koanf:"cache" toml:"cache"`

	// Output settings
	Output OutputConfig `koanf:"output" toml:"output"`

	// Logging settings
	Log LogConfig `koanf:"log" toml:"log"`
}

// ServerConfig controls the HTTP API.
type ServerConfig struct {
	Addr           string   `koanf:"addr" toml:"addr"`
	MaxLines       int      `koanf:"max_lines" toml:"max_lines"`
	AllowedOrigins []string `koanf:"allowed_origins" toml:"allowed_origins"`
}

// ExcludeConfig defines file exclusion patterns.
type ExcludeConfig struct {
	Patterns  []string `koanf:"patterns" toml:"patterns"`
	Dirs      []string `koanf:"dirs" toml:"dirs"`
	Gitignore bool     `koanf:"gitignore" toml:"gitignore"` // also honor .gitignore files
}

// CacheConfig controls caching behavior.
type CacheConfig struct {
	Enabled bool   `koanf:"enabled" toml:"enabled"`
	Dir     string `koanf:"dir" toml:"dir"`
	TTL     int    `koanf:"ttl" toml:"ttl"` // TTL in hours
}

// OutputConfig controls output formatting.
type OutputConfig struct {
	Format string `koanf:"format" toml:"format"` // text, json, markdown, toon, yaml
	Color  bool   `koanf:"color" toml:"color"`
}

// LogConfig controls structured logging.
type LogConfig struct {
	Level       string `koanf:"level" toml:"level"`
	Development bool   `koanf:"development" toml:"development"`
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Thresholds: smells.DefaultThresholds(),
		Server: ServerConfig{
			Addr:     ":8000",
			MaxLines: 500,
			AllowedOrigins: []string{
				"http://localhost:5173",
				"http://127.0.0.1:5173",
				"*",
			},
		},
		Exclude: ExcludeConfig{
			Patterns: []string{
				"module-info.java",
				"package-info.java",
			},
			Dirs: []string{
				".git",
				".jsmell",
				"target",
				"build",
				"out",
				"node_modules",
				".gradle",
				".idea",
			},
			Gitignore: true,
		},
		Cache: CacheConfig{
			Enabled: true,
			Dir:     ".jsmell/cache",
			TTL:     24,
		},
		Output: OutputConfig{
			Format: "text",
			Color:  true,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load loads configuration from a file, then applies environment overrides.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	cfg := DefaultConfig()

	// Determine parser based on extension
	var parser koanf.Parser
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".toml":
		parser = toml.Parser()
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		parser = toml.Parser()
	}

	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, fmt.Errorf("failed to load config %s: %w", path, err)
	}
	if err := loadEnv(k); err != nil {
		return nil, err
	}

	if err := decode(k, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// FromEnv returns the defaults with environment overrides applied.
func FromEnv() (*Config, error) {
	k := koanf.New(".")
	cfg := DefaultConfig()
	if err := loadEnv(k); err != nil {
		return nil, err
	}
	if err := decode(k, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid environment config: %w", err)
	}
	return cfg, nil
}

// decode unmarshals over the defaults in cfg. Lists replace the default list
// instead of being merged into it element by element.
func decode(k *koanf.Koanf, cfg *Config) error {
	return k.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
				mapstructure.StringToSliceHookFunc(","),
			),
			Result:           cfg,
			WeaklyTypedInput: true,
			ZeroFields:       true,
		},
	})
}

func loadEnv(k *koanf.Koanf) error {
	provider := env.ProviderWithValue(EnvPrefix, ".", func(key, value string) (string, interface{}) {
		key = strings.ToLower(strings.TrimPrefix(key, EnvPrefix))
		key = strings.ReplaceAll(key, "__", ".")
		switch key {
		case "server.allowed_origins", "exclude.patterns", "exclude.dirs":
			return key, splitList(value)
		}
		return key, value
	})
	if err := k.Load(provider, nil); err != nil {
		return fmt.Errorf("failed to load environment: %w", err)
	}
	return nil
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// LoadOrDefault tries to load config from standard locations or returns
// defaults. Environment overrides apply in both cases.
func LoadOrDefault() *Config {
	if path := Find(); path != "" {
		if cfg, err := Load(path); err == nil {
			return cfg
		}
	}
	if cfg, err := FromEnv(); err == nil {
		return cfg
	}
	return DefaultConfig()
}

// Find returns the first config file in the standard locations, or "".
func Find() string {
	configNames := []string{
		"jsmell.toml",
		"jsmell.yaml",
		"jsmell.yml",
		"jsmell.json",
		".jsmell.toml",
		".jsmell.yaml",
		".jsmell.yml",
		".jsmell.json",
	}

	// Search in current directory and .jsmell directory
	searchDirs := []string{".", ".jsmell"}

	for _, dir := range searchDirs {
		for _, name := range configNames {
			path := filepath.Join(dir, name)
			if _, err := os.Stat(path); err == nil {
				return path
			}
		}
	}
	return ""
}

// Validate reports invalid settings.
func (c *Config) Validate() error {
	var errs []error
	if err := c.Thresholds.Validate(); err != nil {
		errs = append(errs, err)
	}
	if c.Server.MaxLines <= 0 {
		errs = append(errs, fmt.Errorf("server.max_lines must be positive, got %d", c.Server.MaxLines))
	}
	if c.Cache.TTL < 0 {
		errs = append(errs, fmt.Errorf("cache.ttl must not be negative, got %d", c.Cache.TTL))
	}
	return errors.Join(errs...)
}

// ShouldExclude checks if a path should be excluded from analysis.
func (c *Config) ShouldExclude(path string) bool {
	// Check directory exclusions
	for _, dir := range c.Exclude.Dirs {
		if strings.Contains(path, string(filepath.Separator)+dir+string(filepath.Separator)) ||
			strings.HasPrefix(path, dir+string(filepath.Separator)) {
			return true
		}
	}

	// Check pattern exclusions
	base := filepath.Base(path)
	for _, pattern := range c.Exclude.Patterns {
		if matched, _ := filepath.Match(pattern, base); matched {
			return true
		}
	}

	return false
}
