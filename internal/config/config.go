// Package config loads settings for the journy command-line tool from a
// YAML file, JOURNY_* environment variables and command-line flags.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	journy "github.com/journy-io/sdk-go"
)

// EnvPrefix is the prefix of every environment variable read by Load.
const EnvPrefix = "JOURNY"

// Config holds the tool configuration.
type Config struct {
	APIKey           string        `mapstructure:"api_key"`
	APIURL           string        `mapstructure:"api_url"`
	Timeout          time.Duration `mapstructure:"timeout"`
	QueueConcurrency int           `mapstructure:"queue_concurrency"`
	RateLimit        float64       `mapstructure:"rate_limit"`
	RateBurst        int           `mapstructure:"rate_burst"`
	LogLevel         string        `mapstructure:"log_level"`
	LogFormat        string        `mapstructure:"log_format"`
}

// flagKeys maps command-line flag names to configuration keys.
var flagKeys = map[string]string{
	"api-key":           "api_key",
	"api-url":           "api_url",
	"timeout":           "timeout",
	"queue-concurrency": "queue_concurrency",
	"rate-limit":        "rate_limit",
	"rate-burst":        "rate_burst",
	"log-level":         "log_level",
	"log-format":        "log_format",
}

// Load builds a Config. Values are taken, in order of precedence, from
// flags that were set, environment variables, configFile and defaults.
// An empty configFile skips the file. flags may be nil.
func Load(configFile string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	v.SetDefault("api_key", "")
	v.SetDefault("api_url", "https://api.journy.io")
	v.SetDefault("timeout", 5*time.Second)
	v.SetDefault("queue_concurrency", 0)
	v.SetDefault("rate_limit", 0.0)
	v.SetDefault("rate_burst", 1)
	v.SetDefault("log_level", "warn")
	v.SetDefault("log_format", "text")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.APIKey) == "" {
		return errors.New("api_key is required")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %v", c.Timeout)
	}
	if c.QueueConcurrency < 0 {
		return fmt.Errorf("queue_concurrency cannot be negative, got %d", c.QueueConcurrency)
	}
	if c.RateLimit < 0 {
		return fmt.Errorf("rate_limit cannot be negative, got %v", c.RateLimit)
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("log_format must be text or json, got %q", c.LogFormat)
	}
	return nil
}

// NewLogger builds a logger writing to out at the configured level and format.
func (c *Config) NewLogger(out io.Writer) (*logrus.Logger, error) {
	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("log_level: %w", err)
	}

	logger := logrus.New()
	logger.SetOutput(out)
	logger.SetLevel(level)
	if c.LogFormat == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return logger, nil
}

// ClientOptions converts the configuration into client options.
func (c *Config) ClientOptions(logger logrus.FieldLogger) []journy.Option {
	opts := []journy.Option{
		journy.WithBaseURL(c.APIURL),
		journy.WithTimeout(c.Timeout),
		journy.WithLogger(logger),
	}
	if c.QueueConcurrency > 0 {
		opts = append(opts, journy.WithQueue(c.QueueConcurrency))
	}
	if c.RateLimit > 0 {
		opts = append(opts, journy.WithRateLimit(c.RateLimit, c.RateBurst))
	}
	return opts
}

// LoadEnvFile loads variables from a dotenv file without overriding ones
// already set. A missing file is not an error.
func LoadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}
