// Package logging builds the process zerolog logger.
package logging

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options selects level, format and destination.
type Options struct {
	Level  string
	Format string // json or console
	// File enables size-based rotation via lumberjack; empty logs to Stderr.
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
	// Stderr overrides os.Stderr, mainly for tests.
	Stderr io.Writer
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// New returns the configured logger and a closer for its output.
func New(o Options) (zerolog.Logger, io.Closer, error) {
	lvl := zerolog.InfoLevel
	if o.Level != "" {
		l, err := zerolog.ParseLevel(o.Level)
		if err != nil {
			return zerolog.Nop(), nopCloser{}, fmt.Errorf("log level %q: %w", o.Level, err)
		}
		lvl = l
	}

	var out io.Writer = o.Stderr
	if out == nil {
		out = os.Stderr
	}
	var closer io.Closer = nopCloser{}
	if o.File != "" {
		lj := &lumberjack.Logger{
			Filename:   o.File,
			MaxSize:    o.MaxSizeMB,
			MaxBackups: o.MaxBackups,
			MaxAge:     o.MaxAgeDays,
			Compress:   o.Compress,
		}
		out, closer = lj, lj
	}

	switch o.Format {
	case "", "json":
	case "console":
		// no colors when writing to a file
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339, NoColor: o.File != ""}
	default:
		return zerolog.Nop(), nopCloser{}, fmt.Errorf("unknown log format %q", o.Format)
	}

	return zerolog.New(out).Level(lvl).With().Timestamp().Logger(), closer, nil
}
