package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Environment string
	Host        string `toml:"host"`
	Port        int    `toml:"port"`

	// logging
	LogLevel      string `toml:"log_level"`
	LogsPath      string `toml:"logs_path"`
	LogToStdout   bool   `toml:"log_to_stdout"`
	SentryEnabled bool   `toml:"sentry_enabled"`

	// database; when DatabaseURL or the service key (env) is missing, or the
	// connection cannot be established, the server runs with in-memory storage
	DatabaseURL string `toml:"database_url"`

	// redis, used for request rate limiting on the AI endpoints
	RedisHost string `toml:"redis_host"`
	RedisPort string `toml:"redis_port"`

	// ai provider: openai, deepseek or mock
	AIProvider      string `toml:"ai_provider"`
	OpenAIBaseURL   string `toml:"openai_base_url"`
	OpenAIModel     string `toml:"openai_model"`
	DeepseekBaseURL string `toml:"deepseek_base_url"`
	DeepseekModel   string `toml:"deepseek_model"`

	AIRateLimitAllowedPerMin int `toml:"ai_rate_limit_allowed_per_min"`

	PrometheusMetricsHost string `toml:"prometheus_metrics_host"`
	PrometheusMetricsPort string `toml:"prometheus_metrics_port"`
}

type Toml struct {
	Development *Config
	Production  *Config
}

func (t *Toml) Get(env string) (*Config, error) {
	switch strings.ToLower(env) {
	case "dev", "development":
		return t.Development, nil
	case "prod", "production":
		return t.Production, nil
	default:
		return nil, fmt.Errorf("unknown env: %s", env)
	}
}

func Load(env, path string) (*Config, error) {
	configBytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var tomlConfig Toml
	if err := toml.Unmarshal(configBytes, &tomlConfig); err != nil {
		return nil, fmt.Errorf("unmarshal config file: %w", err)
	}

	cfg, err := tomlConfig.Get(env)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		return nil, fmt.Errorf("config for env %s is empty", env)
	}

	cfg.Environment = env
	return cfg, nil
}
