package model

import (
	"fmt"
	"math"
)

// ColumnKind is the encoding applied to an input column.
type ColumnKind int

const (
	Numeric ColumnKind = iota + 1
	Categorical
)

func (k ColumnKind) String() string {
	switch k {
	case Numeric:
		return "numeric"
	case Categorical:
		return "categorical"
	default:
		return "unknown"
	}
}

// Row is a single-row table. Values[i] belongs to Columns[i] and is nil
// (missing), a float64 or a string.
type Row struct {
	Columns []string
	Values  []any
}

const (
	handleIgnore = "ignore"
	handleError  = "error"
)

type encoder struct {
	features []string
	kinds    map[string]ColumnKind
	num      []NumericStep
	cat      []CategoricalStep
	// index of each step's column within features
	numPos []int
	catPos []int
	// offset of each categorical block in the encoded vector
	catOff []int
	catIdx []map[string]int
	width  int
}

func newEncoder(features []string, pp Preprocess) (*encoder, error) {
	pos := make(map[string]int, len(features))
	for i, f := range features {
		if _, dup := pos[f]; dup {
			return nil, fmt.Errorf("duplicate feature %q", f)
		}
		pos[f] = i
	}
	e := &encoder{
		features: append([]string(nil), features...),
		kinds:    make(map[string]ColumnKind, len(features)),
		num:      append([]NumericStep(nil), pp.Numeric...),
		cat:      make([]CategoricalStep, 0, len(pp.Categorical)),
	}
	claim := func(col string, k ColumnKind) (int, error) {
		i, ok := pos[col]
		if !ok {
			return 0, fmt.Errorf("%s step for undeclared feature %q", k, col)
		}
		if prev, taken := e.kinds[col]; taken {
			return 0, fmt.Errorf("feature %q has both %s and %s steps", col, prev, k)
		}
		e.kinds[col] = k
		return i, nil
	}
	for _, s := range e.num {
		i, err := claim(s.Column, Numeric)
		if err != nil {
			return nil, err
		}
		if s.Scale < 0 {
			return nil, fmt.Errorf("feature %q: negative scale", s.Column)
		}
		e.numPos = append(e.numPos, i)
	}
	e.width = len(e.num)
	for _, s := range pp.Categorical {
		i, err := claim(s.Column, Categorical)
		if err != nil {
			return nil, err
		}
		switch s.HandleUnknown {
		case "":
			s.HandleUnknown = handleIgnore
		case handleIgnore, handleError:
		default:
			return nil, fmt.Errorf("feature %q: unknown handle_unknown %q", s.Column, s.HandleUnknown)
		}
		if len(s.Categories) == 0 {
			return nil, fmt.Errorf("feature %q: no categories", s.Column)
		}
		idx := make(map[string]int, len(s.Categories))
		for j, c := range s.Categories {
			if _, dup := idx[c]; dup {
				return nil, fmt.Errorf("feature %q: duplicate category %q", s.Column, c)
			}
			idx[c] = j
		}
		if _, ok := idx[s.Fill]; !ok {
			return nil, fmt.Errorf("feature %q: fill %q is not a known category", s.Column, s.Fill)
		}
		e.cat = append(e.cat, s)
		e.catPos = append(e.catPos, i)
		e.catOff = append(e.catOff, e.width)
		e.catIdx = append(e.catIdx, idx)
		e.width += len(s.Categories)
	}
	for _, f := range features {
		if _, ok := e.kinds[f]; !ok {
			return nil, fmt.Errorf("feature %q has no preprocessing step", f)
		}
	}
	return e, nil
}

func (e *encoder) transform(row Row) ([]float64, error) {
	if err := e.checkColumns(row); err != nil {
		return nil, err
	}
	x := make([]float64, e.width)
	for i, s := range e.num {
		v := s.Fill
		switch raw := row.Values[e.numPos[i]].(type) {
		case nil:
		case float64:
			if math.IsNaN(raw) {
				break
			}
			v = raw
		default:
			return nil, &TypeError{Column: s.Column, Want: Numeric, Got: raw}
		}
		if s.Scale > 0 {
			v = (v - s.Mean) / s.Scale
		}
		x[i] = v
	}
	for i, s := range e.cat {
		v := s.Fill
		switch raw := row.Values[e.catPos[i]].(type) {
		case nil:
		case string:
			v = raw
		default:
			return nil, &TypeError{Column: s.Column, Want: Categorical, Got: raw}
		}
		j, ok := e.catIdx[i][v]
		if !ok {
			if s.HandleUnknown == handleError {
				return nil, fmt.Errorf("%w: %s=%q", ErrUnknownCategory, s.Column, v)
			}
			continue
		}
		x[e.catOff[i]+j] = 1
	}
	return x, nil
}

func (e *encoder) checkColumns(row Row) error {
	if len(row.Columns) != len(row.Values) {
		return fmt.Errorf("%w: %d columns, %d values", ErrColumnMismatch, len(row.Columns), len(row.Values))
	}
	if len(row.Columns) != len(e.features) {
		return fmt.Errorf("%w: got %d columns, model expects %d", ErrColumnMismatch, len(row.Columns), len(e.features))
	}
	for i, c := range row.Columns {
		if c != e.features[i] {
			return fmt.Errorf("%w: column %d is %q, model expects %q", ErrColumnMismatch, i, c, e.features[i])
		}
	}
	return nil
}
