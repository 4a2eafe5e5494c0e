// SPDX-License-Identifier: EPL-2.0

// Package config loads micshim settings from defaults, an optional config
// file, .env files and MICSHIM_ environment variables, in increasing order
// of precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/ik5/micshim/capture"
	"github.com/ik5/micshim/fetch"
	"github.com/ik5/micshim/internal/logging"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const EnvPrefix = "MICSHIM"

var ErrInvalidConfig = errors.New("invalid configuration")

type Config struct {
	// Source is the URI of the audio file that replaces the microphone.
	Source         string `mapstructure:"source"`
	SampleRate     int    `mapstructure:"sample_rate"`
	Channels       int    `mapstructure:"channels"`
	KeepRealStream bool   `mapstructure:"keep_real_stream"`
	Fallback       string `mapstructure:"fallback"`

	Fetch FetchConfig `mapstructure:"fetch"`
	Log   LogConfig   `mapstructure:"log"`
}

type FetchConfig struct {
	Timeout  time.Duration `mapstructure:"timeout"`
	Retries  int           `mapstructure:"retries"`
	MaxBytes int64         `mapstructure:"max_bytes"`
	Root     string        `mapstructure:"root"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

func SetDefaults(v *viper.Viper) {
	v.SetDefault("source", "")
	v.SetDefault("sample_rate", capture.DefaultSampleRate)
	v.SetDefault("channels", capture.DefaultChannels)
	v.SetDefault("keep_real_stream", false)
	v.SetDefault("fallback", capture.FallbackNone.String())

	v.SetDefault("fetch.timeout", fetch.DefaultTimeout)
	v.SetDefault("fetch.retries", 0)
	v.SetDefault("fetch.max_bytes", fetch.DefaultMaxBytes)
	v.SetDefault("fetch.root", "")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")
}

// New returns a viper instance with defaults and environment binding, so
// "fetch.timeout" is read from MICSHIM_FETCH_TIMEOUT.
func New() *viper.Viper {
	v := viper.New()
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v
}

// Load reads configFile (optional) into v and returns the validated result.
// envFiles are loaded into the process environment first; without any, a
// .env file in the working directory is loaded when present. Variables
// already set in the environment are never overwritten.
func Load(v *viper.Viper, configFile string, envFiles ...string) (*Config, error) {
	if err := loadEnv(envFiles); err != nil {
		return nil, err
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", configFile, err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func loadEnv(files []string) error {
	if len(files) > 0 {
		if err := godotenv.Load(files...); err != nil {
			return fmt.Errorf("loading env files: %w", err)
		}
		return nil
	}

	err := godotenv.Load()
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("loading .env: %w", err)
	}
	return nil
}

// Validate checks ranges and enumerations. An empty Source is allowed here;
// it is rejected when a substitution is built.
func (c *Config) Validate() error {
	var errs []error

	if c.SampleRate <= 0 {
		errs = append(errs, fmt.Errorf("sample_rate must be positive, got %d", c.SampleRate))
	}
	if c.Channels < 1 || c.Channels > 8 {
		errs = append(errs, fmt.Errorf("channels must be between 1 and 8, got %d", c.Channels))
	}
	if _, err := capture.ParseFallback(c.Fallback); err != nil {
		errs = append(errs, err)
	}
	if c.Fetch.Timeout < 0 {
		errs = append(errs, fmt.Errorf("fetch.timeout must not be negative, got %s", c.Fetch.Timeout))
	}
	if c.Fetch.Retries < 0 {
		errs = append(errs, fmt.Errorf("fetch.retries must not be negative, got %d", c.Fetch.Retries))
	}
	if c.Fetch.MaxBytes <= 0 {
		errs = append(errs, fmt.Errorf("fetch.max_bytes must be positive, got %d", c.Fetch.MaxBytes))
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
	}
	return nil
}

// FallbackPolicy returns the parsed fallback setting. Validate has already
// rejected unknown values.
func (c *Config) FallbackPolicy() capture.FallbackPolicy {
	p, _ := capture.ParseFallback(c.Fallback)
	return p
}
