// Package config loads application settings from an optional YAML file and
// the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/abhisek/focoleve/internal/llm"
	"github.com/abhisek/focoleve/internal/logging"
	"github.com/abhisek/focoleve/internal/pomodoro"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every key when read from the environment,
// e.g. FOCOLEVE_LLM_PROVIDER for llm.provider.
const EnvPrefix = "FOCOLEVE"

// Config is the resolved application configuration.
type Config struct {
	DBPath string
	Log    logging.Config
	LLM    llm.Config
	Timer  pomodoro.Durations
	Server ServerConfig

	// File is the config file that was read, empty if none.
	File string
}

// ServerConfig configures the local JSON API.
type ServerConfig struct {
	Addr            string
	Mode            string // gin mode: debug, release, test
	RateLimitPerMin int
}

// Load reads configuration. When path is empty, config.yaml is looked up in
// the user config directory and the working directory; a missing file is
// not an error. An explicit path must exist.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := bindProviderKeys(v); err != nil {
		return nil, err
	}

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		if dir, err := userConfigDir(); err == nil {
			v.AddConfigPath(dir)
		}
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	cfg := &Config{File: v.ConfigFileUsed()}

	// FOCOLEVE_DB names the parent "db" key to viper and hides db.path, so
	// the short alias is read here and wins over every other source.
	cfg.DBPath = os.Getenv("FOCOLEVE_DB")
	if cfg.DBPath == "" {
		cfg.DBPath = v.GetString("db.path")
	}

	cfg.Log.Level = v.GetString("log.level")
	cfg.Log.Path = v.GetString("log.path")
	cfg.Log.Encoding = v.GetString("log.encoding")

	cfg.LLM = llm.DefaultConfig()
	cfg.LLM.Provider = strings.ToLower(strings.TrimSpace(v.GetString("llm.provider")))
	for _, name := range llm.Remote {
		key := "llm." + name + "."
		cfg.LLM.Endpoints[name] = llm.Endpoint{
			APIKey:  v.GetString(key + "api_key"),
			Model:   v.GetString(key + "model"),
			BaseURL: v.GetString(key + "base_url"),
		}
	}
	cfg.LLM.Timeout = v.GetDuration("llm.timeout")
	cfg.LLM.RequestsPerMinute = v.GetInt("llm.requests_per_minute")
	cfg.LLM.Retry.MaxAttempts = v.GetInt("llm.retry.max_attempts")
	cfg.LLM.Retry.InitialWait = v.GetDuration("llm.retry.initial_wait")
	cfg.LLM.Retry.MaxWait = v.GetDuration("llm.retry.max_wait")
	cfg.LLM.Retry.Multiplier = v.GetFloat64("llm.retry.multiplier")

	cfg.Timer.Focus = v.GetDuration("timer.focus")
	cfg.Timer.Break = v.GetDuration("timer.break")

	cfg.Server.Addr = v.GetString("server.addr")
	cfg.Server.Mode = v.GetString("server.mode")
	cfg.Server.RateLimitPerMin = v.GetInt("server.rate_limit_per_min")

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	d := llm.DefaultConfig()
	t := pomodoro.DefaultDurations()

	v.SetDefault("db.path", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.path", "")
	v.SetDefault("log.encoding", "json")

	v.SetDefault("llm.provider", "")
	for name, ep := range d.Endpoints {
		v.SetDefault("llm."+name+".model", ep.Model)
		v.SetDefault("llm."+name+".base_url", "")
	}
	v.SetDefault("llm.timeout", d.Timeout)
	v.SetDefault("llm.requests_per_minute", 0)
	v.SetDefault("llm.retry.max_attempts", d.Retry.MaxAttempts)
	v.SetDefault("llm.retry.initial_wait", d.Retry.InitialWait)
	v.SetDefault("llm.retry.max_wait", d.Retry.MaxWait)
	v.SetDefault("llm.retry.multiplier", d.Retry.Multiplier)

	v.SetDefault("timer.focus", t.Focus)
	v.SetDefault("timer.break", t.Break)

	v.SetDefault("server.addr", "127.0.0.1:8787")
	v.SetDefault("server.mode", "release")
	v.SetDefault("server.rate_limit_per_min", 120)
}

// bindProviderKeys lets the conventional vendor variables supply API keys.
// The prefixed variable takes precedence.
func bindProviderKeys(v *viper.Viper) error {
	bindings := map[string][]string{
		"llm.gemini.api_key":     {"FOCOLEVE_LLM_GEMINI_API_KEY", "GEMINI_API_KEY", "API_KEY"},
		"llm.openai.api_key":     {"FOCOLEVE_LLM_OPENAI_API_KEY", "OPENAI_API_KEY"},
		"llm.anthropic.api_key":  {"FOCOLEVE_LLM_ANTHROPIC_API_KEY", "ANTHROPIC_API_KEY"},
		"llm.openrouter.api_key": {"FOCOLEVE_LLM_OPENROUTER_API_KEY", "OPENROUTER_API_KEY"},
		"db.path":                {"FOCOLEVE_DB_PATH"},
	}
	for key, envs := range bindings {
		if err := v.BindEnv(append([]string{key}, envs...)...); err != nil {
			return fmt.Errorf("bind %s: %w", key, err)
		}
	}
	return nil
}

func (c *Config) validate() error {
	if c.Timer.Focus < time.Second || c.Timer.Break < time.Second {
		return fmt.Errorf("timer durations must be at least 1s (focus %s, break %s)", c.Timer.Focus, c.Timer.Break)
	}
	if c.LLM.Retry.MaxAttempts < 1 {
		return fmt.Errorf("llm.retry.max_attempts must be at least 1, got %d", c.LLM.Retry.MaxAttempts)
	}
	if c.LLM.RequestsPerMinute < 0 {
		return fmt.Errorf("llm.requests_per_minute must not be negative")
	}
	switch c.Server.Mode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("server.mode must be debug, release or test, got %q", c.Server.Mode)
	}
	return nil
}

func userConfigDir() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "focoleve"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "focoleve"), nil
}
