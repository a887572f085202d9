package httpapi

import (
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

// zlog is the structured logger used by the HTTP layer. Nop until SetLogger.
var zlog = zerolog.Nop()

// SetLogger installs a structured logger used by the HTTP layer.
func SetLogger(l zerolog.Logger) { zlog = l }

// LogLevel controls per-request logging behavior.
type LogLevel int

const (
	LevelOff LogLevel = iota
	LevelError
	LevelInfo
	LevelDebug
)

func parseLevel(s string) LogLevel {
	switch s {
	case "off", "":
		return LevelOff
	case "error":
		return LevelError
	case "info":
		return LevelInfo
	case "debug":
		return LevelDebug
	default:
		return LevelInfo
	}
}

// global default, read once
var defaultLogLevel = func() LogLevel {
	if v, ok := os.LookupEnv("CREDITD_REQUEST_LOG"); ok {
		return parseLevel(v)
	}
	return LevelInfo
}()

func requestLogLevel(r *http.Request) LogLevel {
	// Per-request overrides
	if v := r.URL.Query().Get("log"); v != "" {
		if v == "1" {
			return LevelDebug
		}
		return parseLevel(v)
	}
	if v := r.Header.Get("X-Log-Level"); v != "" {
		return parseLevel(v)
	}
	return defaultLogLevel
}

// requestEvent starts a log event tagged with the request id, or returns nil
// when the request's level is below at.
func requestEvent(r *http.Request, lvl, at LogLevel) *zerolog.Event {
	if lvl < at {
		return nil
	}
	var e *zerolog.Event
	switch at {
	case LevelDebug:
		e = zlog.Debug()
	case LevelError:
		e = zlog.Error()
	default:
		e = zlog.Info()
	}
	e = e.Str("path", r.URL.Path)
	if rid := middleware.GetReqID(r.Context()); rid != "" {
		e = e.Str("request_id", rid)
	}
	return e
}

// logEnd logs the outcome of a prediction request. Failures are logged at
// error level, successes at info.
func logEnd(r *http.Request, lvl LogLevel, status int, start time.Time, err error) {
	at := LevelInfo
	if err != nil && status >= http.StatusInternalServerError {
		at = LevelError
	}
	if e := requestEvent(r, lvl, at); e != nil {
		e.Int("status", status).Dur("dur", time.Since(start)).Err(err).Msg("predict end")
	}
}
