// Package config loads the dashboard configuration from YAML with
// environment overrides.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

var configLogger zerolog.Logger

func SetLogger(l zerolog.Logger) {
	configLogger = l
}

// EnvPrefix starts every environment override.
const EnvPrefix = "CONTENTDESK_"

// DefaultPath is the config file read when no path is given.
const DefaultPath = "contentdesk.yaml"

// Config represents the complete configuration structure
type Config struct {
	API     APIConfig     `yaml:"api"`
	Auth    AuthConfig    `yaml:"auth"`
	Upload  UploadConfig  `yaml:"upload"`
	Editor  EditorConfig  `yaml:"editor"`
	Logging LoggingConfig `yaml:"logging"`
}

type APIConfig struct {
	BaseURL string `yaml:"base_url" default:"http://localhost:5000"`
	// MediaBaseURL is where relative asset URLs are resolved. Media requests
	// still go to BaseURL. Empty means BaseURL.
	MediaBaseURL string `yaml:"media_base_url" default:""`
	// TimeoutSeconds bounds each request. Zero leaves requests unbounded.
	TimeoutSeconds int `yaml:"timeout_seconds" default:"0"`
	// RequestsPerSecond throttles outgoing requests. Zero disables throttling.
	RequestsPerSecond int `yaml:"requests_per_second" default:"0"`
}

type AuthConfig struct {
	// BaseURL serves the login endpoints. Empty means the API base URL.
	BaseURL   string `yaml:"base_url" default:""`
	TokenFile string `yaml:"token_file" default:""`
	// Token is only read from the environment.
	Token string `yaml:"-"`
}

type UploadConfig struct {
	MaxImages  int      `yaml:"max_images" default:"10"`
	Accept     []string `yaml:"accept" default:"image/*"`
	Extensions []string `yaml:"extensions" default:".png,.jpg,.jpeg,.gif,.webp,.svg"`
}

type EditorConfig struct {
	UnknownTags    string `yaml:"unknown_tags" default:"flatten"`
	EmptyParagraph string `yaml:"empty_paragraph" default:"break"`
	KeepDirection  bool   `yaml:"keep_direction" default:"true"`
}

type LoggingConfig struct {
	Level string `yaml:"level" default:"info"`
}

// LoadConfig reads path, falling back to defaults when the file does not
// exist, then applies environment overrides.
func LoadConfig(path string) (*Config, error) {
	config := &Config{}

	// Apply default values first
	applyDefaults(config)

	if path == "" {
		path = DefaultPath
	}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		configLogger.Info().Str("path", path).Msg("Config file not found, using defaults")
	case err != nil:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	default:
		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	if err := applyEnv(config, os.LookupEnv); err != nil {
		return nil, err
	}
	config.resolve()

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Default returns the configuration used without file or environment.
func Default() *Config {
	config := &Config{}
	applyDefaults(config)
	config.resolve()
	return config
}

func (c *Config) resolve() {
	if c.API.MediaBaseURL == "" {
		c.API.MediaBaseURL = c.API.BaseURL
	}
	if c.Auth.BaseURL == "" {
		c.Auth.BaseURL = c.API.BaseURL
	}
	if c.Auth.TokenFile == "" {
		c.Auth.TokenFile = DefaultTokenFile()
	}
}

// Validate checks the resolved configuration.
func (c *Config) Validate() error {
	for name, raw := range map[string]string{
		"api.base_url":       c.API.BaseURL,
		"api.media_base_url": c.API.MediaBaseURL,
		"auth.base_url":      c.Auth.BaseURL,
	} {
		u, err := url.Parse(raw)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("invalid %s %q", name, raw)
		}
	}
	if c.API.TimeoutSeconds < 0 {
		return fmt.Errorf("invalid api.timeout_seconds %d", c.API.TimeoutSeconds)
	}
	if c.API.RequestsPerSecond < 0 {
		return fmt.Errorf("invalid api.requests_per_second %d", c.API.RequestsPerSecond)
	}
	if c.Upload.MaxImages < 0 {
		return fmt.Errorf("invalid upload.max_images %d", c.Upload.MaxImages)
	}
	switch c.Editor.UnknownTags {
	case "flatten", "drop", "error":
	default:
		return fmt.Errorf("invalid editor.unknown_tags %q", c.Editor.UnknownTags)
	}
	switch c.Editor.EmptyParagraph {
	case "break", "bare":
	default:
		return fmt.Errorf("invalid editor.empty_paragraph %q", c.Editor.EmptyParagraph)
	}
	return nil
}

// Timeout returns the request timeout as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.API.TimeoutSeconds) * time.Second
}

// DefaultTokenFile is the token location under the user config directory.
func DefaultTokenFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, "contentdesk", "token")
}

type lookupFunc func(key string) (string, bool)

func applyEnv(config *Config, lookup lookupFunc) error {
	str := func(key string, target *string) {
		if v, ok := lookup(EnvPrefix + key); ok && v != "" {
			*target = v
		}
	}

	str("API_URL", &config.API.BaseURL)
	str("MEDIA_URL", &config.API.MediaBaseURL)
	str("AUTH_URL", &config.Auth.BaseURL)
	str("TOKEN", &config.Auth.Token)
	str("TOKEN_FILE", &config.Auth.TokenFile)
	str("LOG_LEVEL", &config.Logging.Level)

	for key, target := range map[string]*int{
		"MAX_IMAGES":      &config.Upload.MaxImages,
		"TIMEOUT_SECONDS": &config.API.TimeoutSeconds,
		"RATE_LIMIT":      &config.API.RequestsPerSecond,
	} {
		v, ok := lookup(EnvPrefix + key)
		if !ok || v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s%s %q: %w", EnvPrefix, key, v, err)
		}
		*target = n
	}
	return nil
}

func ApplyDefaults(config interface{}) {
	applyDefaults(config)
}

func applyDefaults(config interface{}) {
	v := reflect.ValueOf(config)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}

	if v.Kind() != reflect.Struct {
		return
	}

	t := v.Type()
	for i := 0; i < v.NumField(); i++ {
		field := v.Field(i)
		fieldType := t.Field(i)

		if !field.IsValid() || !field.CanSet() {
			continue
		}

		if field.Kind() == reflect.Struct {
			applyDefaults(field.Addr().Interface())
			continue
		}

		defaultValue := fieldType.Tag.Get("default")
		if defaultValue == "" {
			continue
		}

		switch field.Kind() {
		case reflect.String:
			field.SetString(defaultValue)
		case reflect.Bool:
			if val, err := strconv.ParseBool(defaultValue); err == nil {
				field.SetBool(val)
			}
		case reflect.Int:
			if val, err := strconv.ParseInt(defaultValue, 10, 64); err == nil {
				field.SetInt(val)
			}
		case reflect.Slice:
			if field.Len() == 0 && field.Type().Elem().Kind() == reflect.String {
				parts := strings.Split(defaultValue, ",")
				slice := reflect.MakeSlice(field.Type(), len(parts), len(parts))
				for j, part := range parts {
					slice.Index(j).SetString(strings.TrimSpace(part))
				}
				field.Set(slice)
			}
		default:
			configLogger.Warn().
				Str("field_name", fieldType.Name).
				Str("field_type", field.Kind().String()).
				Msg("Unsupported field type for default value")
		}
	}
}
