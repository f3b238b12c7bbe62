// Package config assembles runtime configuration. A yaml file gives the
// declarative baseline; environment variables override individual fields so
// deployments can tweak without editing files.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config captures everything cmd/server needs to wire the process.
type Config struct {
	Addr     string `yaml:"addr"`
	LogLevel string `yaml:"log_level"`

	// ExplorerBase is the base URL for human-followable transaction and
	// asset links in API responses.
	ExplorerBase string `yaml:"explorer_base"`

	// FundAmount is the default funding watermark for newly provisioned
	// ledger accounts, in whole ledger units.
	FundAmount uint64 `yaml:"fund_amount"`

	// AssetURL is the default metadata URL attached to tokenized profiles
	// when the caller supplies none.
	AssetURL string `yaml:"asset_url"`

	Worth WorthConfig `yaml:"worth"`
	Kafka KafkaConfig `yaml:"kafka"`
}

// WorthConfig points at the external worth-estimation endpoint. An empty URL
// disables remote estimation; registration then uses static defaults.
type WorthConfig struct {
	URL            string `yaml:"url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// Timeout returns the worth call deadline as a duration.
func (w WorthConfig) Timeout() time.Duration {
	return time.Duration(w.TimeoutSeconds) * time.Second
}

// KafkaConfig enables audit event publishing when brokers are set.
type KafkaConfig struct {
	Brokers []string `yaml:"brokers"`
	Topic   string   `yaml:"topic"`
}

func defaults() Config {
	return Config{
		Addr:         ":8080",
		LogLevel:     "info",
		ExplorerBase: "https://lora.algokit.io/localnet",
		FundAmount:   10,
		AssetURL:     "https://example.com/metadata.json",
		Worth:        WorthConfig{TimeoutSeconds: 5},
		Kafka:        KafkaConfig{Topic: "hask.audit"},
	}
}

// Load reads the optional yaml file named by HASK_CONFIG, then applies
// environment overrides.
func Load() (Config, error) {
	cfg := defaults()

	if path := os.Getenv("HASK_CONFIG"); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config file: %w", err)
		}
	}

	applyEnv(&cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("HASK_ADDR"); v != "" {
		cfg.Addr = v
	}
	if v := os.Getenv("HASK_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("HASK_EXPLORER_BASE"); v != "" {
		cfg.ExplorerBase = strings.TrimRight(v, "/")
	}
	if v := os.Getenv("HASK_FUND_AMOUNT"); v != "" {
		if n, err := strconv.ParseUint(v, 10, 64); err == nil {
			cfg.FundAmount = n
		}
	}
	if v := os.Getenv("HASK_ASSET_URL"); v != "" {
		cfg.AssetURL = v
	}
	if v := os.Getenv("HASK_WORTH_URL"); v != "" {
		cfg.Worth.URL = v
	}
	if v := os.Getenv("HASK_KAFKA_BROKERS"); v != "" {
		cfg.Kafka.Brokers = strings.Split(v, ",")
	}
	if v := os.Getenv("HASK_KAFKA_TOPIC"); v != "" {
		cfg.Kafka.Topic = v
	}
}
