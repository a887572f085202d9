package predictor

import (
	"time"

	"golang.org/x/text/language"

	"creditd/internal/credit"
	"creditd/internal/model"
	"creditd/pkg/types"
)

// DefaultLocale is used for display formatting when Config.Locale is unset.
var DefaultLocale = language.Spanish

// Model is the prediction surface of a loaded pipeline.
type Model interface {
	Predict(row model.Row) (int, error)
	PredictProba(row model.Row) (float64, error)
}

// Config encapsulates everything a Service is built from.
type Config struct {
	Model      Model
	Normalizer *credit.Normalizer
	// Info and Categories describe the model for status and form rendering.
	Info       types.ModelInfo
	Categories map[string][]string
	// Locale controls percentage formatting for human display.
	Locale language.Tag
}

// NewWithConfig constructs a Service from Config. A nil Normalizer means no
// clamping and no forced fields.
func NewWithConfig(cfg Config) *Service {
	s := &Service{
		model:      cfg.Model,
		norm:       cfg.Normalizer,
		info:       cfg.Info,
		categories: make(map[string][]string, len(cfg.Categories)),
		locale:     cfg.Locale,
		startTime:  time.Now(),
	}
	if s.norm == nil {
		s.norm, _ = credit.NewNormalizer(nil, nil)
	}
	if s.locale == language.Und {
		s.locale = DefaultLocale
	}
	for k, v := range cfg.Categories {
		s.categories[k] = append([]string(nil), v...)
	}
	return s
}
