// Package config resolves runtime settings from flags, TUTOR_* environment
// variables, an optional .env file and an optional tutor.yaml.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/studytrack/tutor/internal/llm"
)

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "TUTOR"

// Viper keys.
const (
	KeyDataFile  = "data_file"
	KeyHistoryDB = "history_db"
	KeyLogFile   = "log_file"
	KeyLogLevel  = "log_level"
	KeyBankFile  = "bank_file"
	KeySplash    = "splash"

	KeyLLMProvider = "llm.provider"
	KeyLLMModel    = "llm.model"
	KeyLLMAPIKey   = "llm.api_key"
	KeyLLMBaseURL  = "llm.base_url"
	KeyLLMTimeout  = "llm.timeout"
)

// DefaultDataFile is the score file name, resolved from the working directory.
const DefaultDataFile = "data.json"

var validLevels = []string{"debug", "info", "warn", "error"}

// Config holds resolved runtime settings.
type Config struct {
	DataFile  string `mapstructure:"data_file"`
	HistoryDB string `mapstructure:"history_db"`
	LogFile   string `mapstructure:"log_file"`
	LogLevel  string `mapstructure:"log_level"`
	BankFile  string `mapstructure:"bank_file"`
	Splash    bool   `mapstructure:"splash"`

	LLM LLMConfig `mapstructure:"llm"`

	// ConfigFile is the tutor.yaml that was read, if any.
	ConfigFile string `mapstructure:"-"`
}

// LLMConfig selects the optional coaching model.
type LLMConfig struct {
	Provider string        `mapstructure:"provider"`
	Model    string        `mapstructure:"model"`
	APIKey   string        `mapstructure:"api_key"`
	BaseURL  string        `mapstructure:"base_url"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

// Resolve converts the settings into an llm.Config. The API key falls back
// to the provider's conventional environment variable.
func (c LLMConfig) Resolve() llm.Config {
	return llm.Config{
		Provider: c.Provider,
		Model:    c.Model,
		APIKey:   c.APIKey,
		BaseURL:  c.BaseURL,
		Timeout:  c.Timeout,
	}.DiscoverAPIKey().WithDefaults()
}

// New returns a viper instance with defaults and environment bindings.
// Callers bind command-line flags on top before calling Load.
func New() *viper.Viper {
	v := viper.New()

	v.SetDefault(KeyDataFile, DefaultDataFile)
	v.SetDefault(KeyHistoryDB, "")
	v.SetDefault(KeyLogFile, "")
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyBankFile, "")
	v.SetDefault(KeySplash, true)
	v.SetDefault(KeyLLMProvider, "")
	v.SetDefault(KeyLLMModel, "")
	v.SetDefault(KeyLLMAPIKey, "")
	v.SetDefault(KeyLLMBaseURL, "")
	v.SetDefault(KeyLLMTimeout, 30*time.Second)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v
}

// Load reads the optional .env and config file into v and returns the
// resolved Config. An explicit configFile must exist; otherwise tutor.yaml
// is searched in the working directory and $XDG_CONFIG_HOME/tutor.
func Load(v *viper.Viper, configFile string) (*Config, error) {
	// .env is optional and never overrides variables already set.
	_ = godotenv.Load()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("tutor")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, "tutor"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.ConfigFile = v.ConfigFileUsed()

	cfg.resolvePaths()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// resolvePaths places the history database and log file next to the score
// file unless set explicitly.
func (c *Config) resolvePaths() {
	dir := filepath.Dir(c.DataFile)
	if c.HistoryDB == "" {
		c.HistoryDB = filepath.Join(dir, "tutor.db")
	}
	if c.LogFile == "" {
		c.LogFile = filepath.Join(dir, "tutor.log")
	}
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
}

// Validate checks the resolved settings.
func (c *Config) Validate() error {
	var errs []string

	if strings.TrimSpace(c.DataFile) == "" {
		errs = append(errs, "data file path is empty")
	}
	if !slices.Contains(validLevels, c.LogLevel) {
		errs = append(errs, fmt.Sprintf("unknown log level %q (want one of %s)", c.LogLevel, strings.Join(validLevels, ", ")))
	}
	if c.LLM.Provider != "" && llm.DefaultModel(c.LLM.Provider) == "" {
		errs = append(errs, fmt.Sprintf("unknown LLM provider %q", c.LLM.Provider))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}
