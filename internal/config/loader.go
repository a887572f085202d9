package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"creditd/internal/credit"
)

// Serving modes.
const (
	ModeAPI  = "api"
	ModeForm = "form"
	ModeBoth = "both"
)

// Defaults applied by WithDefaults when the corresponding field is unset.
const (
	DefaultAddr         = "0.0.0.0:5000"
	DefaultModelPath    = "models/credit_pipeline.json"
	DefaultMode         = ModeAPI
	DefaultLocale       = "es"
	DefaultMaxBodyBytes = 1 << 20
	DefaultLogLevel     = "info"
	DefaultLogFormat    = "console"
)

// Config holds runtime parameters for the service.
// Zero values mean "unspecified" and are replaced by WithDefaults.
type Config struct {
	Addr      string `json:"addr" yaml:"addr" toml:"addr"`
	ModelPath string `json:"model_path" yaml:"model_path" toml:"model_path"`
	Mode      string `json:"mode" yaml:"mode" toml:"mode"`
	// Clamp maps numeric fields to a maximum; a null maximum disables clamping
	// for that field. A nil map selects the default table, an empty map none.
	Clamp        map[string]*float64 `json:"clamp" yaml:"clamp" toml:"clamp"`
	Force        map[string]string   `json:"force" yaml:"force" toml:"force"`
	Locale       string              `json:"locale" yaml:"locale" toml:"locale"`
	MaxBodyBytes int64               `json:"max_body_bytes" yaml:"max_body_bytes" toml:"max_body_bytes"`
	CORS         CORSConfig          `json:"cors" yaml:"cors" toml:"cors"`
	Log          LogConfig           `json:"log" yaml:"log" toml:"log"`
}

// CORSConfig configures the opt-in CORS middleware.
type CORSConfig struct {
	Enabled bool     `json:"enabled" yaml:"enabled" toml:"enabled"`
	Origins []string `json:"origins" yaml:"origins" toml:"origins"`
	Methods []string `json:"methods" yaml:"methods" toml:"methods"`
	Headers []string `json:"headers" yaml:"headers" toml:"headers"`
}

// LogConfig configures the process logger. An empty File logs to stderr.
type LogConfig struct {
	Level      string `json:"level" yaml:"level" toml:"level"`
	Format     string `json:"format" yaml:"format" toml:"format"`
	File       string `json:"file" yaml:"file" toml:"file"`
	MaxSizeMB  int    `json:"max_size_mb" yaml:"max_size_mb" toml:"max_size_mb"`
	MaxBackups int    `json:"max_backups" yaml:"max_backups" toml:"max_backups"`
	MaxAgeDays int    `json:"max_age_days" yaml:"max_age_days" toml:"max_age_days"`
	Compress   bool   `json:"compress" yaml:"compress" toml:"compress"`
}

// Load reads a configuration file based on its extension.
// Supports: .yaml/.yml, .json, .toml
func Load(path string) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, fmt.Errorf("empty config path")
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
	case ".json":
		if err := json.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
	case ".toml":
		if err := toml.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
	default:
		return cfg, fmt.Errorf("unsupported config extension: %s", ext)
	}
	return cfg, nil
}

// WithDefaults returns a copy of c with unset fields filled in.
func (c Config) WithDefaults() Config {
	if c.Addr == "" {
		c.Addr = DefaultAddr
	}
	if c.ModelPath == "" {
		c.ModelPath = DefaultModelPath
	}
	if c.Mode == "" {
		c.Mode = DefaultMode
	}
	if c.Clamp == nil {
		c.Clamp = credit.DefaultClampTable()
	}
	if c.Locale == "" {
		c.Locale = DefaultLocale
	}
	if c.MaxBodyBytes <= 0 {
		c.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}
	if c.Log.Format == "" {
		c.Log.Format = DefaultLogFormat
	}
	if c.CORS.Enabled {
		if len(c.CORS.Origins) == 0 {
			c.CORS.Origins = []string{"*"}
		}
		if len(c.CORS.Methods) == 0 {
			c.CORS.Methods = []string{"GET", "POST", "OPTIONS"}
		}
		if len(c.CORS.Headers) == 0 {
			c.CORS.Headers = []string{"Content-Type"}
		}
	}
	return c
}

// ApplyEnv overrides fields from CREDITD_* environment variables.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	str("CREDITD_ADDR", &c.Addr)
	str("CREDITD_MODEL_PATH", &c.ModelPath)
	str("CREDITD_MODE", &c.Mode)
	str("CREDITD_LOCALE", &c.Locale)
	str("CREDITD_LOG_LEVEL", &c.Log.Level)
	str("CREDITD_LOG_FORMAT", &c.Log.Format)
	str("CREDITD_LOG_FILE", &c.Log.File)
	if v, ok := lookup("CREDITD_CORS_ORIGINS"); ok {
		if origins := splitCSV(v); len(origins) > 0 {
			c.CORS.Enabled = true
			c.CORS.Origins = origins
		}
	}
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("addr is required")
	}
	if c.ModelPath == "" {
		return fmt.Errorf("model_path is required")
	}
	switch c.Mode {
	case ModeAPI, ModeForm, ModeBoth:
	default:
		return fmt.Errorf("unknown mode %q (want %s, %s or %s)", c.Mode, ModeAPI, ModeForm, ModeBoth)
	}
	if _, err := credit.NewNormalizer(c.Clamp, c.Force); err != nil {
		return err
	}
	if _, err := language.Parse(c.Locale); err != nil {
		return fmt.Errorf("locale %q: %w", c.Locale, err)
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("unknown log format %q", c.Log.Format)
	}
	return nil
}

// splitCSV splits a comma-separated list, trimming blanks and dropping empties.
func splitCSV(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
