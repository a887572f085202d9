package main

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"

	"creditd/internal/common/fsutil"
	"creditd/internal/config"
	"creditd/internal/credit"
	"creditd/internal/logging"
	"creditd/internal/model"
	"creditd/internal/predictor"
)

// loadConfig layers the config file, CREDITD_* variables and flags, in that
// order, then fills defaults and validates.
func loadConfig(cmd *cobra.Command, o *rootOptions, lookup func(string) (string, bool)) (config.Config, error) {
	var cfg config.Config
	if o.configPath != "" {
		c, err := config.Load(o.configPath)
		if err != nil {
			return cfg, fmt.Errorf("config: %w", err)
		}
		cfg = c
	}
	cfg.ApplyEnv(lookup)

	flags := cmd.Flags()
	set := func(name string, dst *string, v string) {
		if flags.Changed(name) {
			*dst = v
		}
	}
	set("addr", &cfg.Addr, o.addr)
	set("model", &cfg.ModelPath, o.modelPath)
	set("mode", &cfg.Mode, o.mode)
	set("locale", &cfg.Locale, o.locale)
	set("log-level", &cfg.Log.Level, o.logLevel)
	set("log-format", &cfg.Log.Format, o.logFormat)

	cfg = cfg.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

func newLogger(cfg config.Config, stderr io.Writer) (zerolog.Logger, io.Closer, error) {
	return logging.New(logging.Options{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		File:       cfg.Log.File,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAgeDays: cfg.Log.MaxAgeDays,
		Compress:   cfg.Log.Compress,
		Stderr:     stderr,
	})
}

// resolveModelPath resolves the artifact path against the binary's directory
// first and the working directory second.
func resolveModelPath(p string) (string, error) {
	var bases []string
	if dir, err := fsutil.ExecutableDir(); err == nil {
		bases = append(bases, dir)
	}
	if wd, err := os.Getwd(); err == nil {
		bases = append(bases, wd)
	}
	return fsutil.ResolvePath(p, bases...)
}

func loadPipeline(cfg config.Config) (*model.Pipeline, error) {
	path, err := resolveModelPath(cfg.ModelPath)
	if err != nil {
		return nil, err
	}
	return model.Load(path)
}

// buildService loads the artifact and wires the normalizer and locale.
func buildService(cfg config.Config) (*predictor.Service, error) {
	p, err := loadPipeline(cfg)
	if err != nil {
		return nil, err
	}
	norm, err := credit.NewNormalizer(cfg.Clamp, cfg.Force)
	if err != nil {
		return nil, err
	}
	tag, err := language.Parse(cfg.Locale)
	if err != nil {
		return nil, fmt.Errorf("locale %q: %w", cfg.Locale, err)
	}
	return predictor.New(p, norm, tag)
}
