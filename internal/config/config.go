// Package config loads the evaluator's process-wide configuration from
// environment variables (and, optionally, a YAML file) using viper.
package config

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Config is the immutable, process-wide configuration. It is loaded once at
// startup and passed by reference to every subsystem that needs it.
type Config struct {
	LogLevel string `mapstructure:"log_level"`

	// MaxEvaluations is N, the number of sandbox slots 0..N-1 the box
	// scheduler multiplexes concurrent evaluations over.
	MaxEvaluations int `mapstructure:"max_evaluations"`

	RedisURL            string `mapstructure:"redis_url"`
	RedisQueueKey        string `mapstructure:"redis_queue_key"`
	RedisResponsePubsub  string `mapstructure:"redis_response_pubsub"`

	RunWithCgroups   bool `mapstructure:"run_with_cgroups"`
	RunWithQuotas    bool `mapstructure:"run_with_quotas"`
	ExitOnEmptyQueue bool `mapstructure:"exit_on_empty_queue"`
	ForceDebugLogs   bool `mapstructure:"force_debug_logs"`

	// OpsBindAddress serves the ambient health/occupancy endpoint. Empty
	// disables it.
	OpsBindAddress string `mapstructure:"ops_bind_address"`

	IsolatePath string `mapstructure:"isolate_path"`
}

// Load reads configuration from environment variables (prefixed EVALUATOR_
// for evaluator-specific keys, bare for the legacy REDIS_*/RUN_WITH_*
// names spec.md §6 documents) and an optional config file.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("log_level", "info")
	v.SetDefault("max_evaluations", 2)
	v.SetDefault("redis_url", "redis://localhost:6379")
	v.SetDefault("redis_queue_key", "evaluator_msg_queue")
	v.SetDefault("redis_response_pubsub", "evaluator_evaluations")
	v.SetDefault("run_with_cgroups", true)
	v.SetDefault("run_with_quotas", true)
	v.SetDefault("exit_on_empty_queue", false)
	v.SetDefault("force_debug_logs", false)
	v.SetDefault("ops_bind_address", "0.0.0.0:8090")
	v.SetDefault("isolate_path", "/usr/local/bin/isolate")

	bindEnv(v, "max_evaluations", "EVALUATOR_MAX_EVALUATIONS")
	bindEnv(v, "redis_url", "REDIS_URL")
	bindEnv(v, "redis_queue_key", "REDIS_QUEUE_KEY")
	bindEnv(v, "redis_response_pubsub", "REDIS_RESPONSE_PUBSUB")
	bindEnv(v, "run_with_cgroups", "RUN_WITH_CGROUPS")
	bindEnv(v, "run_with_quotas", "RUN_WITH_QUOTAS")
	bindEnv(v, "exit_on_empty_queue", "EXIT_ON_EMPTY_QUEUE")
	bindEnv(v, "force_debug_logs", "FORCE_DEBUG_LOGS")
	bindEnv(v, "log_level", "EVALUATOR_LOG_LEVEL")
	bindEnv(v, "ops_bind_address", "EVALUATOR_OPS_BIND_ADDRESS")
	bindEnv(v, "isolate_path", "EVALUATOR_ISOLATE_PATH")

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("/etc/evaluator/")
	v.AddConfigPath("$HOME/.evaluator/")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.ForceDebugLogs {
		cfg.LogLevel = "debug"
	}

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func bindEnv(v *viper.Viper, key, env string) {
	_ = v.BindEnv(key, env)
}

func validate(cfg *Config) error {
	if cfg.MaxEvaluations <= 0 || cfg.MaxEvaluations > 255 {
		return fmt.Errorf("max_evaluations must be in 1..255, got %d", cfg.MaxEvaluations)
	}

	if _, err := logrus.ParseLevel(cfg.LogLevel); err != nil {
		return fmt.Errorf("invalid log level: %s", cfg.LogLevel)
	}

	if cfg.RedisQueueKey == "" {
		return fmt.Errorf("redis_queue_key must not be empty")
	}

	if _, err := os.Stat(cfg.IsolatePath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to stat isolate_path: %w", err)
	}

	return nil
}

// GetLogLevel returns the parsed logrus level, defaulting to Info on any
// parse failure that slipped past validate (should not happen in practice).
func (c *Config) GetLogLevel() logrus.Level {
	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return logrus.InfoLevel
	}
	return level
}
