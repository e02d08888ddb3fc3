// Package config loads wordloop settings from defaults, an optional config
// file, a .env file, WORDLOOP_* environment variables and command flags,
// in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/wordloop/wordloop/internal/hints"
	"github.com/wordloop/wordloop/internal/llm"
	"github.com/wordloop/wordloop/internal/quiz"
	"github.com/wordloop/wordloop/internal/vocab"
)

// EnvPrefix prefixes every environment variable, e.g. WORDLOOP_LOG_LEVEL.
const EnvPrefix = "WORDLOOP"

// Config holds all configuration for wordloop.
type Config struct {
	// DB is the SQLite path. Empty means store.DefaultDBPath.
	DB string `mapstructure:"db"`
	// Dataset is a dataset JSON file. Empty means the embedded starter set.
	Dataset string `mapstructure:"dataset"`
	// Category and Mode are empty unless set somewhere; the TUI then keeps
	// the values stored with the progress.
	Category string         `mapstructure:"category"`
	Mode     string         `mapstructure:"mode"`
	Log      LogConfig      `mapstructure:"log"`
	Snapshot SnapshotConfig `mapstructure:"snapshot"`
	Hints    hints.Config   `mapstructure:"hints"`
	LLM      llm.Config     `mapstructure:"llm"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	// File receives TUI logs. Empty means <datadir>/wordloop.log.
	File string `mapstructure:"file"`
}

// SnapshotConfig controls snapshot retention.
type SnapshotConfig struct {
	Keep int `mapstructure:"keep"`
}

// Options tells Load where to look.
type Options struct {
	// ConfigFile is an explicit config path. It must exist when set.
	ConfigFile string
	// EnvFile is loaded into the process environment when present.
	// Defaults to ".env".
	EnvFile string
	// Flags are bound by name; see flagKeys.
	Flags *pflag.FlagSet
	// Getenv is used for LLM provider discovery. Defaults to os.Getenv.
	Getenv func(string) string
}

// flagKeys maps command flag names to config keys.
var flagKeys = map[string]string{
	"db":        "db",
	"dataset":   "dataset",
	"category":  "category",
	"mode":      "mode",
	"log-level": "log.level",
}

// Load builds the effective configuration.
func Load(opts Options) (*Config, error) {
	envFile := opts.EnvFile
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load %s: %w", envFile, err)
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, key := range []string{"category", "mode"} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", key, err)
		}
	}

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", opts.ConfigFile, err)
		}
	} else {
		v.SetConfigName("config")
		if dir, err := Dir(); err == nil {
			v.AddConfigPath(dir)
		}
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	if opts.Flags != nil {
		for name, key := range flagKeys {
			if f := opts.Flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	getenv := opts.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}
	if cfg.Hints.Enabled {
		cfg.LLM, _ = cfg.LLM.Discover(getenv)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects values that would otherwise be silently defaulted.
func (c *Config) Validate() error {
	if _, ok := vocab.ParseCategory(c.Category); !ok {
		return fmt.Errorf("invalid category %q", c.Category)
	}
	if c.Mode != "" && quiz.ParseMode(c.Mode) != quiz.Mode(c.Mode) {
		return fmt.Errorf("invalid mode %q (want %s or %s)", c.Mode, quiz.ModeTermToMeaning, quiz.ModeMeaningToTerm)
	}
	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("invalid log format %q (want text or json)", c.Log.Format)
	}
	if c.Snapshot.Keep < 1 {
		return fmt.Errorf("snapshot.keep must be at least 1, got %d", c.Snapshot.Keep)
	}
	if err := c.LLM.Validate(); err != nil {
		return fmt.Errorf("llm: %w", err)
	}
	return nil
}

// CategoryValue returns the parsed category, CategoryAll when unset.
func (c *Config) CategoryValue() vocab.Category {
	cat, _ := vocab.ParseCategory(c.Category)
	return cat
}

// CategoryOverride returns the category only when one was configured.
func (c *Config) CategoryOverride() vocab.Category {
	if c.Category == "" {
		return ""
	}
	return c.CategoryValue()
}

// ModeValue returns the parsed mode, the default mode when unset.
func (c *Config) ModeValue() quiz.Mode {
	return quiz.ParseMode(c.Mode)
}

// ModeOverride returns the mode only when one was configured.
func (c *Config) ModeOverride() quiz.Mode {
	if c.Mode == "" {
		return ""
	}
	return c.ModeValue()
}

// Dir is where the optional config.yaml lives:
// $XDG_CONFIG_HOME/wordloop or ~/.config/wordloop.
func Dir() (string, error) {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "wordloop"), nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("db", "")
	v.SetDefault("dataset", "")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.file", "")

	v.SetDefault("snapshot.keep", 20)

	h := hints.DefaultConfig()
	v.SetDefault("hints.enabled", h.Enabled)
	v.SetDefault("hints.max_tokens", h.MaxTokens)
	v.SetDefault("hints.temperature", h.Temperature)
	v.SetDefault("hints.timeout", h.Timeout)

	// Every key needs a default for AutomaticEnv to reach it on Unmarshal.
	l := llm.DefaultConfig()
	v.SetDefault("llm.provider", l.Provider)
	for name, pc := range map[string]llm.ProviderConfig{
		llm.ProviderAnthropic:  l.Anthropic,
		llm.ProviderOpenAI:     l.OpenAI,
		llm.ProviderGemini:     l.Gemini,
		llm.ProviderOpenRouter: l.OpenRouter,
	} {
		v.SetDefault("llm."+name+".api_key", pc.APIKey)
		v.SetDefault("llm."+name+".model", pc.Model)
		v.SetDefault("llm."+name+".base_url", pc.BaseURL)
	}
	v.SetDefault("llm.retry.max_attempts", l.Retry.MaxAttempts)
	v.SetDefault("llm.retry.initial_wait", l.Retry.InitialWait)
	v.SetDefault("llm.retry.max_wait", l.Retry.MaxWait)
	v.SetDefault("llm.retry.multiplier", l.Retry.Multiplier)
}
