// Package config loads papersmith settings from an optional YAML file and
// the environment.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/papersmith/papersmith/internal/llm"
	"github.com/papersmith/papersmith/internal/paper"
)

// EnvPrefix prefixes every environment override, e.g. PAPERSMITH_LLM_PROVIDER.
const EnvPrefix = "PAPERSMITH"

// Config is the complete process configuration. It is read once at startup
// and never mutated afterwards.
type Config struct {
	Server ServerConfig `mapstructure:"server"`
	LLM    llm.Config   `mapstructure:"llm"`
	Paper  PaperConfig  `mapstructure:"paper"`
	Store  StoreConfig  `mapstructure:"store"`
	Log    LogConfig    `mapstructure:"log"`

	// File is the config file that was read, or "" when none was found.
	File string `mapstructure:"-"`
}

type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	AllowedOrigins  []string      `mapstructure:"allowed_origins"`
	MaxBodyBytes    int64         `mapstructure:"max_body_bytes"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type PaperConfig struct {
	MinSyllabusLength int `mapstructure:"min_syllabus_length"`
}

// StoreConfig locates the usage ledger. An empty Path disables it.
type StoreConfig struct {
	Path string `mapstructure:"path"`
}

type LogConfig struct {
	Development bool `mapstructure:"development"`
}

// Load reads configuration. When path is empty, config.yaml is looked up in
// ./config and the working directory; a missing file is not an error.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// PORT is the platform convention; the prefixed variable still wins.
	if err := v.BindEnv("server.port", "PORT"); err != nil {
		return nil, fmt.Errorf("bind PORT: %w", err)
	}

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.File = v.ConfigFileUsed()
	cfg.LLM.ApplyStandardEnv()

	return &cfg, nil
}

// setDefaults registers every key so that environment overrides reach
// Unmarshal even when no config file sets them.
func setDefaults(v *viper.Viper) {
	d := llm.DefaultConfig()
	p := paper.DefaultConfig()

	v.SetDefault("server.port", 3000)
	v.SetDefault("server.allowed_origins", []string{"*"})
	v.SetDefault("server.max_body_bytes", int64(1<<20))
	v.SetDefault("server.shutdown_timeout", 10*time.Second)

	v.SetDefault("llm.provider", d.Provider)
	v.SetDefault("llm.model", d.Model)
	v.SetDefault("llm.max_tokens", d.MaxTokens)
	v.SetDefault("llm.temperature", d.Temperature)
	v.SetDefault("llm.timeout", d.Timeout)
	v.SetDefault("llm.structured_output", d.StructuredOutput)
	v.SetDefault("llm.openai.api_key", "")
	v.SetDefault("llm.openai.model", d.OpenAI.Model)
	v.SetDefault("llm.openai.base_url", "")
	v.SetDefault("llm.gemini.api_key", "")
	v.SetDefault("llm.gemini.model", d.Gemini.Model)
	v.SetDefault("llm.anthropic.api_key", "")
	v.SetDefault("llm.anthropic.model", d.Anthropic.Model)
	v.SetDefault("llm.openrouter.api_key", "")
	v.SetDefault("llm.openrouter.model", d.OpenRouter.Model)
	v.SetDefault("llm.openrouter.base_url", d.OpenRouter.BaseURL)
	v.SetDefault("llm.openrouter.app_url", "")
	v.SetDefault("llm.openrouter.app_name", d.OpenRouter.AppName)
	v.SetDefault("llm.mock.response", "")
	v.SetDefault("llm.retry.max_retries", d.Retry.MaxRetries)
	v.SetDefault("llm.retry.initial_wait", d.Retry.InitialWait)
	v.SetDefault("llm.retry.max_wait", d.Retry.MaxWait)
	v.SetDefault("llm.retry.multiplier", d.Retry.Multiplier)

	v.SetDefault("paper.min_syllabus_length", p.MinSyllabusLength)
	v.SetDefault("store.path", "")
	v.SetDefault("log.development", false)
}

// Validate reports the first setting that would prevent the service from
// running, including a missing provider credential.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be within 1-65535, got %d", c.Server.Port)
	}
	if c.Server.MaxBodyBytes <= 0 {
		return fmt.Errorf("server.max_body_bytes must be positive, got %d", c.Server.MaxBodyBytes)
	}
	if c.Server.ShutdownTimeout < 0 {
		return fmt.Errorf("server.shutdown_timeout must not be negative, got %s", c.Server.ShutdownTimeout)
	}
	if c.Paper.MinSyllabusLength < 1 {
		return fmt.Errorf("paper.min_syllabus_length must be at least 1, got %d", c.Paper.MinSyllabusLength)
	}
	return c.LLM.Validate()
}

// PaperConfig returns the generator settings derived from c.
func (c *Config) PaperConfig() paper.Config {
	return paper.Config{
		MinSyllabusLength: c.Paper.MinSyllabusLength,
		Options:           c.LLM.Options(),
		StructuredOutput:  c.LLM.StructuredOutput,
	}
}
