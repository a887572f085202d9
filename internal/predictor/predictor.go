package predictor

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/text/language"

	"creditd/internal/credit"
	"creditd/internal/model"
	"creditd/pkg/types"
)

// Service runs normalization and inference for one record at a time.
type Service struct {
	model      Model
	norm       *credit.Normalizer
	info       types.ModelInfo
	categories map[string][]string
	locale     language.Tag
	startTime  time.Time
}

// New builds a Service around a loaded pipeline. It fails when the pipeline
// was not trained on the A1..A15 record, or treats a field with another kind.
func New(p *model.Pipeline, norm *credit.Normalizer, locale language.Tag) (*Service, error) {
	if err := CheckSchema(p); err != nil {
		return nil, err
	}
	info := p.Info()
	cats := make(map[string][]string)
	for _, f := range credit.FieldNames {
		if c := p.Categories(f); c != nil {
			cats[f] = c
		}
	}
	return NewWithConfig(Config{
		Model:      p,
		Normalizer: norm,
		Info: types.ModelInfo{
			Name:      info.Name,
			Estimator: info.Estimator,
			Path:      info.Path,
			Features:  info.Features,
			Classes:   info.Classes,
			Trees:     info.Trees,
		},
		Categories: cats,
		Locale:     locale,
	}), nil
}

// CheckSchema verifies the pipeline's feature names, order and column kinds
// against the credit record, and that its positive class is the approved class.
func CheckSchema(p *model.Pipeline) error {
	feats := p.Features()
	if len(feats) != len(credit.FieldNames) {
		return fmt.Errorf("model has %d features, record has %d", len(feats), len(credit.FieldNames))
	}
	for i, f := range credit.FieldNames {
		if feats[i] != f {
			return fmt.Errorf("model feature %d is %q, record field is %q", i, feats[i], f)
		}
		want, _ := credit.Kind(f)
		got, _ := p.ColumnKind(f)
		if got != want {
			return fmt.Errorf("model treats %s as %s, record field is %s", f, got, want)
		}
	}
	info := p.Info()
	if len(info.Classes) != 2 || !hasClass(info.Classes, 0) || !hasClass(info.Classes, ApprovedClass) {
		return fmt.Errorf("model classes %v, want 0 and %d", info.Classes, ApprovedClass)
	}
	if info.PositiveClass != ApprovedClass {
		return fmt.Errorf("model positive class is %d, want %d", info.PositiveClass, ApprovedClass)
	}
	return nil
}

func hasClass(classes []int, c int) bool {
	for _, x := range classes {
		if x == c {
			return true
		}
	}
	return false
}

// Predict normalizes rec, builds the single-row table and asks the model for
// the approval probability and the class.
func (s *Service) Predict(ctx context.Context, rec credit.Record) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	n := s.norm.Normalize(rec)
	row := n.Model.Row()
	prob, err := s.model.PredictProba(row)
	if err != nil {
		if errors.Is(err, model.ErrUnknownCategory) {
			return Result{}, ErrInvalidInput(err)
		}
		return Result{}, inferenceError{op: "predict_proba", err: err}
	}
	class, err := s.model.Predict(row)
	if err != nil {
		return Result{}, inferenceError{op: "predict", err: err}
	}
	return Result{Display: n.Display, Model: n.Model, Class: class, Probability: prob}, nil
}

// Ready reports whether a model is attached.
func (s *Service) Ready() bool { return s.model != nil }
