package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

const (
	defaultPort           = "8080"
	defaultRemoteTimeout  = 10 * time.Second
	defaultLogLevel       = "info"
	defaultRateLimitRPS   = 25.0
	defaultRateLimitBurst = 50
)

// financeConfDir is the location of the finance configuration files relative
// to the base directory.
var financeConfDir = filepath.Join("repository", "conf", "finance")

// Config aggregates runtime configuration resolved from multiple sources.
// Precedence: CLI flags > YAML config > Environment variables > Defaults
type Config struct {
	Port                 string        `yaml:"port"`
	BaseDir              string        `yaml:"base_dir"`
	RemoteTimeout        time.Duration `yaml:"remote_timeout"`
	LogLevel             string        `yaml:"log_level"`
	ShutdownGracePeriod  time.Duration `yaml:"shutdown_grace_period"`
	ReadHeaderTimeout    time.Duration `yaml:"read_header_timeout"`
	WriteTimeout         time.Duration `yaml:"write_timeout"`
	IdleTimeout          time.Duration `yaml:"idle_timeout"`
	EnableRequestLogging bool          `yaml:"enable_request_logging"`
	RateLimitRPS         float64       `yaml:"-"`
	RateLimitBurst       int           `yaml:"-"`
}

// yamlConfig represents the YAML configuration file structure.
type yamlConfig struct {
	Port                 string        `yaml:"port"`
	BaseDir              string        `yaml:"base_dir"`
	RemoteTimeout        string        `yaml:"remote_timeout"`
	LogLevel             string        `yaml:"log_level"`
	ShutdownGracePeriod  string        `yaml:"shutdown_grace_period"`
	ReadHeaderTimeout    string        `yaml:"read_header_timeout"`
	WriteTimeout         string        `yaml:"write_timeout"`
	IdleTimeout          string        `yaml:"idle_timeout"`
	EnableRequestLogging *bool         `yaml:"enable_request_logging"`
	RateLimit            yamlRateLimit `yaml:"rate_limit"`
}

// yamlRateLimit represents the rate limit section in YAML.
type yamlRateLimit struct {
	RPS   *float64 `yaml:"rps"`
	Burst *int     `yaml:"burst"`
}

// envConfig maps environment variables. CARBON_HOME keeps the name the
// finance deployment already exports for its base directory.
type envConfig struct {
	Port           string        `env:"PORT"`
	BaseDir        string        `env:"CARBON_HOME"`
	RemoteTimeout  time.Duration `env:"JWKS_REMOTE_TIMEOUT"`
	LogLevel       string        `env:"LOG_LEVEL"`
	RateLimitRPS   float64       `env:"RATE_LIMIT_RPS" envDefault:"-1"`
	RateLimitBurst int           `env:"RATE_LIMIT_BURST" envDefault:"-1"`
}

// CLIOverrides holds command-line flag overrides.
type CLIOverrides struct {
	ConfigFile     string
	Port           *string
	BaseDir        *string
	RemoteTimeout  *time.Duration
	LogLevel       *string
	RateLimitRPS   *float64
	RateLimitBurst *int
}

// Load extracts configuration from multiple sources with precedence:
// CLI flags > YAML config > Environment variables > Defaults
func Load(overrides *CLIOverrides) (Config, error) {
	cfg := defaultConfig()

	// Environment first so that YAML and flags can override it.
	if err := applyEnvConfig(&cfg); err != nil {
		return Config{}, err
	}

	if overrides != nil && overrides.ConfigFile != "" {
		yamlCfg, err := loadFromFile(overrides.ConfigFile)
		if err != nil {
			return Config{}, fmt.Errorf("load YAML config: %w", err)
		}
		if err := applyYAMLConfig(&cfg, yamlCfg); err != nil {
			return Config{}, fmt.Errorf("apply YAML config: %w", err)
		}
	}

	if overrides != nil {
		applyCLIOverrides(&cfg, overrides)
	}

	if err := validateConfig(cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// FinanceDir returns the directory holding config.properties and
// cert-list.json for the given base directory.
func FinanceDir(baseDir string) string {
	return filepath.Join(baseDir, financeConfDir)
}

// defaultConfig returns a Config with default values.
func defaultConfig() Config {
	return Config{
		Port:                 defaultPort,
		RemoteTimeout:        defaultRemoteTimeout,
		LogLevel:             defaultLogLevel,
		ShutdownGracePeriod:  10 * time.Second,
		ReadHeaderTimeout:    5 * time.Second,
		WriteTimeout:         30 * time.Second,
		IdleTimeout:          60 * time.Second,
		EnableRequestLogging: true,
		RateLimitRPS:         defaultRateLimitRPS,
		RateLimitBurst:       defaultRateLimitBurst,
	}
}

// loadFromFile loads configuration from a YAML file.
func loadFromFile(path string) (*yamlConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	var yamlCfg yamlConfig
	if err := yaml.Unmarshal(data, &yamlCfg); err != nil {
		return nil, fmt.Errorf("parse YAML: %w", err)
	}

	return &yamlCfg, nil
}

// applyYAMLConfig applies YAML configuration to the Config struct.
func applyYAMLConfig(cfg *Config, yamlCfg *yamlConfig) error {
	if yamlCfg.Port != "" {
		cfg.Port = yamlCfg.Port
	}

	if yamlCfg.BaseDir != "" {
		cfg.BaseDir = yamlCfg.BaseDir
	}

	if yamlCfg.LogLevel != "" {
		cfg.LogLevel = yamlCfg.LogLevel
	}

	durations := []struct {
		name string
		raw  string
		dst  *time.Duration
	}{
		{"remote_timeout", yamlCfg.RemoteTimeout, &cfg.RemoteTimeout},
		{"shutdown_grace_period", yamlCfg.ShutdownGracePeriod, &cfg.ShutdownGracePeriod},
		{"read_header_timeout", yamlCfg.ReadHeaderTimeout, &cfg.ReadHeaderTimeout},
		{"write_timeout", yamlCfg.WriteTimeout, &cfg.WriteTimeout},
		{"idle_timeout", yamlCfg.IdleTimeout, &cfg.IdleTimeout},
	}
	for _, d := range durations {
		if d.raw == "" {
			continue
		}
		parsed, err := time.ParseDuration(d.raw)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", d.name, d.raw, err)
		}
		*d.dst = parsed
	}

	if yamlCfg.EnableRequestLogging != nil {
		cfg.EnableRequestLogging = *yamlCfg.EnableRequestLogging
	}

	if yamlCfg.RateLimit.RPS != nil {
		cfg.RateLimitRPS = *yamlCfg.RateLimit.RPS
	}

	if yamlCfg.RateLimit.Burst != nil {
		cfg.RateLimitBurst = *yamlCfg.RateLimit.Burst
	}

	return nil
}

// applyEnvConfig applies environment variable configuration.
func applyEnvConfig(cfg *Config) error {
	var envCfg envConfig
	if err := env.Parse(&envCfg); err != nil {
		return fmt.Errorf("parse environment: %w", err)
	}

	if port := strings.TrimSpace(envCfg.Port); port != "" {
		cfg.Port = port
	}

	if baseDir := strings.TrimSpace(envCfg.BaseDir); baseDir != "" {
		cfg.BaseDir = baseDir
	}

	if envCfg.RemoteTimeout > 0 {
		cfg.RemoteTimeout = envCfg.RemoteTimeout
	}

	if level := strings.TrimSpace(envCfg.LogLevel); level != "" {
		cfg.LogLevel = level
	}

	if envCfg.RateLimitRPS >= 0 {
		cfg.RateLimitRPS = envCfg.RateLimitRPS
	}

	if envCfg.RateLimitBurst >= 0 {
		cfg.RateLimitBurst = envCfg.RateLimitBurst
	}

	return nil
}

// applyCLIOverrides applies command-line flag overrides.
func applyCLIOverrides(cfg *Config, overrides *CLIOverrides) {
	if overrides.Port != nil && *overrides.Port != "" {
		cfg.Port = *overrides.Port
	}

	if overrides.BaseDir != nil && *overrides.BaseDir != "" {
		cfg.BaseDir = *overrides.BaseDir
	}

	if overrides.RemoteTimeout != nil && *overrides.RemoteTimeout > 0 {
		cfg.RemoteTimeout = *overrides.RemoteTimeout
	}

	if overrides.LogLevel != nil && *overrides.LogLevel != "" {
		cfg.LogLevel = *overrides.LogLevel
	}

	if overrides.RateLimitRPS != nil && *overrides.RateLimitRPS >= 0 {
		cfg.RateLimitRPS = *overrides.RateLimitRPS
	}

	if overrides.RateLimitBurst != nil && *overrides.RateLimitBurst >= 0 {
		cfg.RateLimitBurst = *overrides.RateLimitBurst
	}
}

// validateConfig validates the final configuration.
func validateConfig(cfg Config) error {
	if cfg.RemoteTimeout <= 0 {
		return fmt.Errorf("remote timeout must be > 0")
	}
	if cfg.RateLimitRPS < 0 {
		return fmt.Errorf("RATE_LIMIT_RPS must be >= 0")
	}
	if cfg.RateLimitBurst < 0 {
		return fmt.Errorf("RATE_LIMIT_BURST must be >= 0")
	}
	if _, err := zapcore.ParseLevel(cfg.LogLevel); err != nil {
		return fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
	}
	return nil
}
