package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	LLM      LLMConfig      `yaml:"llm"`
	Database DatabaseConfig `yaml:"database"`
	Events   EventsConfig   `yaml:"events"`
	Logging  LoggingConfig  `yaml:"logging"`
}

type ServerConfig struct {
	Port           int    `yaml:"port"`
	MetricsPort    int    `yaml:"metrics_port"`
	AdminToken     string `yaml:"admin_token"`
	RateLimitPerIP int    `yaml:"rate_limit_per_ip"`
}

type LLMConfig struct {
	Provider  string        `yaml:"provider"`
	APIKey    string        `yaml:"api_key"`
	Model     string        `yaml:"model"`
	BaseURL   string        `yaml:"base_url"`
	TimeoutMs int           `yaml:"timeout_ms"`
	Breaker   BreakerConfig `yaml:"breaker"`
}

type BreakerConfig struct {
	Enabled       bool    `yaml:"enabled"`
	MinRequests   uint32  `yaml:"min_requests"`
	FailureRatio  float64 `yaml:"failure_ratio"`
	OpenTimeoutMs int     `yaml:"open_timeout_ms"`
}

// DatabaseConfig points at the optional audit trail. Empty URL disables it.
type DatabaseConfig struct {
	URL string `yaml:"url"`
}

type EventsConfig struct {
	NATSURL      string   `yaml:"nats_url"`
	KafkaBrokers []string `yaml:"kafka_brokers"`
	KafkaTopic   string   `yaml:"kafka_topic"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

func (c *Config) LLMTimeout() time.Duration {
	return time.Duration(c.LLM.TimeoutMs) * time.Millisecond
}

func (c *Config) BreakerOpenTimeout() time.Duration {
	return time.Duration(c.LLM.Breaker.OpenTimeoutMs) * time.Millisecond
}

// SlogLevel maps the configured level name; unknown names mean info.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.Logging.Level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func Load(path string) (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:           8700,
			MetricsPort:    8701,
			RateLimitPerIP: 60,
		},
		LLM: LLMConfig{
			Provider:  "huggingface",
			TimeoutMs: 30000,
			Breaker: BreakerConfig{
				Enabled:       true,
				MinRequests:   3,
				FailureRatio:  0.6,
				OpenTimeoutMs: 60000,
			},
		},
		Events: EventsConfig{
			KafkaTopic: "underwriting-events",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}

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

// providerKeyEnv names the conventional API key variable per provider. These are read
// only when no key is configured explicitly.
var providerKeyEnv = map[string]string{
	"huggingface": "HF_API_TOKEN",
	"claude":      "ANTHROPIC_API_KEY",
	"openai":      "OPENAI_API_KEY",
	"gemini":      "GEMINI_API_KEY",
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("UNDERWRITER_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = n
		}
	}
	if v := os.Getenv("UNDERWRITER_METRICS_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Server.MetricsPort = n
		}
	}
	if v := os.Getenv("UNDERWRITER_ADMIN_TOKEN"); v != "" {
		cfg.Server.AdminToken = v
	}
	if v := os.Getenv("UNDERWRITER_LLM_PROVIDER"); v != "" {
		cfg.LLM.Provider = v
	}
	if v := os.Getenv("UNDERWRITER_LLM_API_KEY"); v != "" {
		cfg.LLM.APIKey = v
	}
	if v := os.Getenv("UNDERWRITER_LLM_MODEL"); v != "" {
		cfg.LLM.Model = v
	}
	if v := os.Getenv("UNDERWRITER_LLM_BASE_URL"); v != "" {
		cfg.LLM.BaseURL = v
	}
	if v := os.Getenv("UNDERWRITER_LLM_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.LLM.TimeoutMs = n
		}
	}
	if v := os.Getenv("UNDERWRITER_LLM_BREAKER_ENABLED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.LLM.Breaker.Enabled = b
		}
	}
	if cfg.LLM.APIKey == "" {
		if name, ok := providerKeyEnv[strings.ToLower(cfg.LLM.Provider)]; ok {
			cfg.LLM.APIKey = os.Getenv(name)
		}
	}
	if v := os.Getenv("UNDERWRITER_DATABASE_URL"); v != "" {
		cfg.Database.URL = v
	}
	if v := os.Getenv("UNDERWRITER_NATS_URL"); v != "" {
		cfg.Events.NATSURL = v
	}
	if v := os.Getenv("UNDERWRITER_KAFKA_BROKERS"); v != "" {
		cfg.Events.KafkaBrokers = splitList(v)
	}
	if v := os.Getenv("UNDERWRITER_KAFKA_TOPIC"); v != "" {
		cfg.Events.KafkaTopic = v
	}
	if v := os.Getenv("UNDERWRITER_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
