// Package config loads process configuration for the export bridge.
// Values come from defaults, an optional zamexport.yaml, and environment
// variables; they are read once at startup and never reloaded.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// ZammadConfig holds connection settings for the remote Zammad instance.
type ZammadConfig struct {
	URL               string        `mapstructure:"url"`
	Token             string        `mapstructure:"token"`
	Timeout           time.Duration `mapstructure:"timeout"`
	RequestsPerSecond float64       `mapstructure:"requests_per_second"`
	RetryWait         time.Duration `mapstructure:"retry_wait"`
	MaxAttempts       int           `mapstructure:"max_attempts"`
	ExcludeTitle      string        `mapstructure:"exclude_title"`
	DayFallback       bool          `mapstructure:"day_fallback"`
}

// ExportConfig selects the sink destination and format.
type ExportConfig struct {
	Path   string `mapstructure:"path"`
	Format string `mapstructure:"format"` // "csv" or "xlsx"
}

// ServerConfig holds the HTTP listener settings.
type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

// LogConfig controls log destinations. Level selects HTTP framework
// verbosity ("debug" keeps gin in debug mode); the application logger
// itself is unleveled.
type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

// ScheduleConfig enables the optional previous-day export job.
type ScheduleConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Spec    string `mapstructure:"spec"`
}

// Config is the full immutable process configuration.
type Config struct {
	Zammad   ZammadConfig   `mapstructure:"zammad"`
	Export   ExportConfig   `mapstructure:"export"`
	Server   ServerConfig   `mapstructure:"server"`
	Log      LogConfig      `mapstructure:"log"`
	Schedule ScheduleConfig `mapstructure:"schedule"`
}

// RateDelay returns the fixed pause applied after each successful API call.
func (z ZammadConfig) RateDelay() time.Duration {
	if z.RequestsPerSecond <= 0 {
		return 0
	}
	return time.Duration(float64(time.Second) / z.RequestsPerSecond)
}

// Load reads configuration from defaults, an optional YAML file, and the
// environment. An empty path searches the working directory for
// zamexport.yaml; a missing file is not an error, a malformed one is.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("zammad.timeout", 60*time.Second)
	v.SetDefault("zammad.requests_per_second", 3.0)
	v.SetDefault("zammad.retry_wait", time.Second)
	v.SetDefault("zammad.max_attempts", 2)
	v.SetDefault("zammad.exclude_title", "Undelivered Mail Returned to Sender")
	v.SetDefault("zammad.day_fallback", true)
	v.SetDefault("export.path", "./tickets_data.csv")
	v.SetDefault("export.format", "csv")
	v.SetDefault("server.addr", ":8000")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "zamexport.log")
	v.SetDefault("schedule.enabled", false)
	v.SetDefault("schedule.spec", "15 0 * * *")

	// Environment names kept compatible with earlier deployments.
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, env := range map[string]string{
		"zammad.url":   "ZAMMAD_URL",
		"zammad.token": "ZAMMAD_TOKEN",
		"export.path":  "CSV_PATH",
		"log.level":    "LOG_LEVEL",
		"log.file":     "LOG_FILE",
	} {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", env, err)
		}
	}

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("zamexport")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		if path != "" {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the settings that have no usable default.
func (c *Config) Validate() error {
	c.Zammad.URL = strings.TrimRight(strings.TrimSpace(c.Zammad.URL), "/")
	if c.Zammad.URL == "" {
		return fmt.Errorf("zammad.url is required (set ZAMMAD_URL)")
	}
	if strings.TrimSpace(c.Zammad.Token) == "" {
		return fmt.Errorf("zammad.token is required (set ZAMMAD_TOKEN)")
	}
	if c.Zammad.MaxAttempts < 1 {
		return fmt.Errorf("zammad.max_attempts must be at least 1, got %d", c.Zammad.MaxAttempts)
	}
	switch strings.ToLower(c.Export.Format) {
	case "csv", "xlsx":
		c.Export.Format = strings.ToLower(c.Export.Format)
	default:
		return fmt.Errorf("export.format must be csv or xlsx, got %q", c.Export.Format)
	}
	if c.Export.Path == "" {
		return fmt.Errorf("export.path is required")
	}
	return nil
}
