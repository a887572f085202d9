package model

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// FormatVersion is the only artifact format this package understands.
const FormatVersion = 1

// Artifact is the on-disk form of a fitted pipeline.
type Artifact struct {
	FormatVersion int           `json:"format_version"`
	Name          string        `json:"name"`
	Features      []string      `json:"features"`
	Classes       []int         `json:"classes"`
	PositiveClass *int          `json:"positive_class,omitempty"`
	Preprocess    Preprocess    `json:"preprocess"`
	Estimator     EstimatorSpec `json:"estimator"`
}

// Preprocess lists the column transformers applied before the estimator.
// Numeric columns are encoded first, then one one-hot block per categorical column.
type Preprocess struct {
	Numeric     []NumericStep     `json:"numeric"`
	Categorical []CategoricalStep `json:"categorical"`
}

// NumericStep imputes a missing value with Fill and optionally standardizes.
// A zero Scale disables standardization.
type NumericStep struct {
	Column string  `json:"column"`
	Fill   float64 `json:"fill"`
	Mean   float64 `json:"mean,omitempty"`
	Scale  float64 `json:"scale,omitempty"`
}

// CategoricalStep imputes a missing value with Fill and one-hot encodes over Categories.
type CategoricalStep struct {
	Column        string   `json:"column"`
	Fill          string   `json:"fill"`
	Categories    []string `json:"categories"`
	HandleUnknown string   `json:"handle_unknown,omitempty"`
}

// EstimatorSpec is a tagged union of the supported classifiers.
type EstimatorSpec struct {
	Type      string    `json:"type"`
	Trees     []Tree    `json:"trees,omitempty"`
	Coef      []float64 `json:"coef,omitempty"`
	Intercept float64   `json:"intercept,omitempty"`
}

// Estimator kinds.
const (
	KindRandomForest       = "random_forest"
	KindLogisticRegression = "logistic_regression"
)

// Info summarizes a loaded pipeline.
type Info struct {
	Name      string
	Estimator string
	Features  []string
	Classes   []int
	// PositiveClass is the label whose probability PredictProba returns.
	PositiveClass int
	Trees         int
	Path          string
}

// Pipeline is a validated, immutable prediction pipeline. It is safe for
// concurrent use by multiple goroutines.
type Pipeline struct {
	name     string
	path     string
	features []string
	classes  []int
	posIdx   int
	enc      *encoder
	est      estimator
}

// Load reads and validates the artifact at path.
func Load(path string) (*Pipeline, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read model artifact: %w", err)
	}
	var a Artifact
	if err := json.Unmarshal(b, &a); err != nil {
		return nil, fmt.Errorf("decode model artifact %s: %w", filepath.Base(path), err)
	}
	p, err := FromArtifact(a)
	if err != nil {
		return nil, fmt.Errorf("model artifact %s: %w", filepath.Base(path), err)
	}
	p.path = path
	return p, nil
}

// FromArtifact validates a decoded artifact and builds a Pipeline.
func FromArtifact(a Artifact) (*Pipeline, error) {
	if a.FormatVersion != FormatVersion {
		return nil, fmt.Errorf("unsupported format_version %d", a.FormatVersion)
	}
	if len(a.Features) == 0 {
		return nil, fmt.Errorf("no features declared")
	}
	if len(a.Classes) < 2 {
		return nil, fmt.Errorf("need at least two classes, got %d", len(a.Classes))
	}
	pos := 1
	if a.PositiveClass != nil {
		pos = *a.PositiveClass
	}
	posIdx := -1
	seen := make(map[int]bool, len(a.Classes))
	for i, c := range a.Classes {
		if seen[c] {
			return nil, fmt.Errorf("duplicate class %d", c)
		}
		seen[c] = true
		if c == pos {
			posIdx = i
		}
	}
	if posIdx < 0 {
		return nil, fmt.Errorf("positive class %d not in classes %v", pos, a.Classes)
	}
	enc, err := newEncoder(a.Features, a.Preprocess)
	if err != nil {
		return nil, err
	}
	est, err := newEstimator(a.Estimator, enc.width, len(a.Classes))
	if err != nil {
		return nil, err
	}
	return &Pipeline{
		name:     a.Name,
		features: append([]string(nil), a.Features...),
		classes:  append([]int(nil), a.Classes...),
		posIdx:   posIdx,
		enc:      enc,
		est:      est,
	}, nil
}

// Features returns the training column names in order.
func (p *Pipeline) Features() []string { return append([]string(nil), p.features...) }

// ColumnKind reports whether the pipeline treats column as numeric or categorical.
func (p *Pipeline) ColumnKind(column string) (ColumnKind, bool) {
	k, ok := p.enc.kinds[column]
	return k, ok
}

// Categories returns the known categories of a categorical column.
func (p *Pipeline) Categories(column string) []string {
	for _, s := range p.enc.cat {
		if s.Column == column {
			return append([]string(nil), s.Categories...)
		}
	}
	return nil
}

// Info returns a summary of the pipeline.
func (p *Pipeline) Info() Info {
	return Info{
		Name:          p.name,
		Estimator:     p.est.kind(),
		Features:      p.Features(),
		Classes:       append([]int(nil), p.classes...),
		PositiveClass: p.classes[p.posIdx],
		Trees:         p.est.size(),
		Path:          p.path,
	}
}

// PredictProba returns the probability assigned to the positive class.
func (p *Pipeline) PredictProba(row Row) (float64, error) {
	proba, err := p.proba(row)
	if err != nil {
		return 0, err
	}
	return proba[p.posIdx], nil
}

// Predict returns the most probable class label. Ties go to the class listed first.
func (p *Pipeline) Predict(row Row) (int, error) {
	proba, err := p.proba(row)
	if err != nil {
		return 0, err
	}
	best := 0
	for i := 1; i < len(proba); i++ {
		if proba[i] > proba[best] {
			best = i
		}
	}
	return p.classes[best], nil
}

func (p *Pipeline) proba(row Row) ([]float64, error) {
	x, err := p.enc.transform(row)
	if err != nil {
		return nil, err
	}
	return p.est.proba(x), nil
}
