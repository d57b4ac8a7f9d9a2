package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Database drivers.
const (
	DriverMongo  = "mongo"
	DriverMemory = "memory"
)

// EnvConfigPath names an explicit config file, overriding the env lookup.
const EnvConfigPath = "CONFIG_PATH"

// Config holds the campus API configuration.
type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	Database DatabaseConfig `yaml:"database"`
	Cache    CacheConfig    `yaml:"cache"`
	Query    QueryConfig    `yaml:"query"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
}

// Addr is the listen address for http.Server.
func (h HTTPConfig) Addr() string { return fmt.Sprintf(":%d", h.Port) }

func (h HTTPConfig) ReadTimeout() time.Duration     { return seconds(h.ReadTimeoutSec) }
func (h HTTPConfig) WriteTimeout() time.Duration    { return seconds(h.WriteTimeoutSec) }
func (h HTTPConfig) ShutdownTimeout() time.Duration { return seconds(h.ShutdownSec) }

// DatabaseConfig holds document store settings.
type DatabaseConfig struct {
	Driver           string `yaml:"driver"` // mongo, memory (default: mongo)
	URI              string `yaml:"uri"`
	Name             string `yaml:"name"`
	ReadinessTimeout int    `yaml:"readiness_timeout_sec"`
	SeedFile         string `yaml:"seed_file"` // loaded at startup when set
}

// Readiness bounds how long startup waits for the store to answer a ping.
func (d DatabaseConfig) Readiness() time.Duration { return seconds(d.ReadinessTimeout) }

// CacheConfig holds the count cache settings. Empty addrs disables the cache.
type CacheConfig struct {
	Addrs       []string `yaml:"addrs"`
	Password    string   `yaml:"password"`
	DB          int      `yaml:"db"`
	CountTTLSec int      `yaml:"count_ttl_sec"`
}

// Enabled reports whether a cache backend is configured.
func (c CacheConfig) Enabled() bool { return len(c.Addrs) > 0 }

// CountTTL returns the count cache TTL.
func (c CacheConfig) CountTTL() time.Duration { return seconds(c.CountTTLSec) }

// QueryConfig holds list pagination settings. MaxLimit 0 disables clamping.
type QueryConfig struct {
	DefaultLimit int `yaml:"default_limit"`
	MaxLimit     int `yaml:"max_limit"`
}

func seconds(n int) time.Duration { return time.Duration(n) * time.Second }

// Load reads configuration for an environment (local, dev, prod).
// CONFIG_PATH, when set, wins over the env-based lookup.
func Load(env string) (Config, error) {
	if path := os.Getenv(EnvConfigPath); path != "" {
		return LoadFile(path)
	}
	return LoadFile(findConfigPath(env))
}

// LoadFile reads, expands, defaults and validates one YAML file.
func LoadFile(configPath string) (Config, error) {
	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(expandEnvVars(data), &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config %s: %w", configPath, err)
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config %s: %w", configPath, err)
	}
	return cfg, nil
}

// MustLoad loads configuration or panics.
func MustLoad(env string) Config {
	cfg, err := Load(env)
	if err != nil {
		panic(err)
	}
	return cfg
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills zero values.
func (c *Config) ApplyDefaults() {
	positive(&c.HTTP.ReadTimeoutSec, 10)
	positive(&c.HTTP.WriteTimeoutSec, 10)
	positive(&c.HTTP.ShutdownSec, 10)
	positive(&c.Database.ReadinessTimeout, 10)
	positive(&c.Cache.CountTTLSec, 30)
	positive(&c.Query.DefaultLimit, 10)

	if c.Database.Driver == "" {
		c.Database.Driver = DriverMongo
	}
	if c.Database.Name == "" {
		c.Database.Name = "campus"
	}
	c.Query.MaxLimit = max(c.Query.MaxLimit, 0)
}

func positive(v *int, def int) {
	if *v <= 0 {
		*v = def
	}
}

// Validate reports every problem found, joined.
func (c *Config) Validate() error {
	var errs []error
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		errs = append(errs, fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port))
	}
	switch c.Database.Driver {
	case DriverMongo:
		if c.Database.URI == "" {
			errs = append(errs, errors.New("database.uri is required for the mongo driver"))
		}
	case DriverMemory:
	default:
		errs = append(errs, fmt.Errorf("database.driver must be %q or %q, got %q",
			DriverMongo, DriverMemory, c.Database.Driver))
	}
	if c.Cache.DB < 0 {
		errs = append(errs, fmt.Errorf("cache.db must not be negative, got %d", c.Cache.DB))
	}
	if c.Query.MaxLimit > 0 && c.Query.DefaultLimit > c.Query.MaxLimit {
		errs = append(errs, fmt.Errorf("query.default_limit (%d) must not exceed query.max_limit (%d)",
			c.Query.DefaultLimit, c.Query.MaxLimit))
	}
	return errors.Join(errs...)
}

// findConfigPath tries ./config first, then the repository's config dir
// (so tests run from package directories find it).
func findConfigPath(env string) string {
	rel := filepath.Join("config", env+".yaml")
	if fileExists(rel) {
		return rel
	}
	_, self, _, _ := runtime.Caller(0)
	root := filepath.Join(filepath.Dir(self), "..", "..")
	if path := filepath.Join(root, rel); fileExists(path) {
		return path
	}
	return rel
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

// expandEnvVars replaces ${VAR} and ${VAR:-default}. An unset VAR without a
// default expands to the empty string.
func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		name, def, hasDefault := strings.Cut(string(match[2:len(match)-1]), ":-")
		if val := os.Getenv(name); val != "" || !hasDefault {
			return []byte(val)
		}
		return []byte(def)
	})
}
