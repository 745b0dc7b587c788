package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Source kinds.
const (
	SourceFile     = "file"
	SourceS3       = "s3"
	SourceGCS      = "gcs"
	SourcePostgres = "postgres"
)

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Source    SourceConfig    `yaml:"source"`
	Database  DatabaseConfig  `yaml:"database"`
	Hermes    HermesConfig    `yaml:"hermes"`
	Broadcast BroadcastConfig `yaml:"broadcast"`
	Logging   LoggingConfig   `yaml:"logging"`
}

type ServerConfig struct {
	Port               int      `yaml:"port"`
	MetricsPort        int      `yaml:"metrics_port"`
	CORSOrigins        []string `yaml:"cors_origins"`
	RateLimitPerMinute int      `yaml:"rate_limit_per_minute"`
}

// SourceConfig selects where the village problem table is read from.
type SourceConfig struct {
	Kind      string `yaml:"kind"`
	Path      string `yaml:"path"`
	Bucket    string `yaml:"bucket"`
	Key       string `yaml:"key"`
	Region    string `yaml:"region"`
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
	Table     string `yaml:"table"`
}

type DatabaseConfig struct {
	URL string `yaml:"url"`
}

// HermesConfig points at the NATS server. An empty URL disables events.
type HermesConfig struct {
	URL string `yaml:"url"`
}

type BroadcastConfig struct {
	Enabled        bool `yaml:"enabled"`
	TickIntervalMs int  `yaml:"tick_interval_ms"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

func (c *Config) TickInterval() time.Duration {
	return time.Duration(c.Broadcast.TickIntervalMs) * time.Millisecond
}

func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			Port:               8000,
			MetricsPort:        8001,
			CORSOrigins:        []string{"*"},
			RateLimitPerMinute: 120,
		},
		Source: SourceConfig{
			Kind:  SourceFile,
			Path:  "village_data.csv",
			Table: "village_problems",
		},
		Broadcast: BroadcastConfig{
			TickIntervalMs: 60000,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

func Load(path string) (*Config, error) {
	cfg := defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	applyEnv(cfg)
	return cfg, nil
}

// Validate checks that the selected source has what it needs to load.
func (c *Config) Validate() error {
	switch c.Source.Kind {
	case SourceFile:
		if c.Source.Path == "" {
			return errors.New("source.path is required for kind file")
		}
	case SourceS3, SourceGCS:
		if c.Source.Bucket == "" || c.Source.Key == "" {
			return fmt.Errorf("source.bucket and source.key are required for kind %s", c.Source.Kind)
		}
	case SourcePostgres:
		if c.Database.URL == "" {
			return errors.New("database.url is required for kind postgres")
		}
	default:
		return fmt.Errorf("unknown source kind %q", c.Source.Kind)
	}
	if c.Broadcast.Enabled && c.Broadcast.TickIntervalMs <= 0 {
		return errors.New("broadcast.tick_interval_ms must be positive")
	}
	return nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("RURAL_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = n
		}
	}
	if v := os.Getenv("RURAL_METRICS_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Server.MetricsPort = n
		}
	}
	if v := os.Getenv("RURAL_CORS_ORIGINS"); v != "" {
		var origins []string
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		cfg.Server.CORSOrigins = origins
	}
	if v := os.Getenv("RURAL_SOURCE_KIND"); v != "" {
		cfg.Source.Kind = v
	}
	if v := os.Getenv("RURAL_SOURCE_PATH"); v != "" {
		cfg.Source.Path = v
	}
	if v := os.Getenv("RURAL_SOURCE_BUCKET"); v != "" {
		cfg.Source.Bucket = v
	}
	if v := os.Getenv("RURAL_SOURCE_KEY"); v != "" {
		cfg.Source.Key = v
	}
	if v := os.Getenv("RURAL_SOURCE_REGION"); v != "" {
		cfg.Source.Region = v
	}
	if v := os.Getenv("RURAL_SOURCE_ENDPOINT"); v != "" {
		cfg.Source.Endpoint = v
	}
	if v := os.Getenv("RURAL_DATABASE_URL"); v != "" {
		cfg.Database.URL = v
	}
	if v := os.Getenv("RURAL_HERMES_URL"); v != "" {
		cfg.Hermes.URL = v
	}
	if v := os.Getenv("RURAL_BROADCAST_ENABLED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Broadcast.Enabled = b
		}
	}
	if v := os.Getenv("RURAL_TICK_INTERVAL_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Broadcast.TickIntervalMs = n
		}
	}
	if v := os.Getenv("RURAL_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
}
