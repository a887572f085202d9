package model

import (
	"fmt"
	"math"
)

type estimator interface {
	// proba returns one probability per class, in class order.
	proba(x []float64) []float64
	kind() string
	size() int
}

func newEstimator(spec EstimatorSpec, width, nClasses int) (estimator, error) {
	switch spec.Type {
	case KindRandomForest:
		return newForest(spec.Trees, width, nClasses)
	case KindLogisticRegression:
		if nClasses != 2 {
			return nil, fmt.Errorf("logistic_regression supports 2 classes, got %d", nClasses)
		}
		if len(spec.Coef) != width {
			return nil, fmt.Errorf("logistic_regression: %d coefficients for %d encoded features", len(spec.Coef), width)
		}
		return &logistic{coef: append([]float64(nil), spec.Coef...), intercept: spec.Intercept}, nil
	case "":
		return nil, fmt.Errorf("estimator type is required")
	default:
		return nil, fmt.Errorf("unsupported estimator type %q", spec.Type)
	}
}

// Tree is a fitted binary decision tree in flat array form. Node i is a leaf
// when ChildrenLeft[i] == -1; Value[i] holds per-class sample counts or weights.
type Tree struct {
	ChildrenLeft  []int       `json:"children_left"`
	ChildrenRight []int       `json:"children_right"`
	Feature       []int       `json:"feature"`
	Threshold     []float64   `json:"threshold"`
	Value         [][]float64 `json:"value"`
}

const leaf = -1

func (t *Tree) validate(width, nClasses int) error {
	n := len(t.ChildrenLeft)
	if n == 0 {
		return fmt.Errorf("empty tree")
	}
	if len(t.ChildrenRight) != n || len(t.Feature) != n || len(t.Threshold) != n || len(t.Value) != n {
		return fmt.Errorf("node arrays differ in length")
	}
	for i := 0; i < n; i++ {
		if len(t.Value[i]) != nClasses {
			return fmt.Errorf("node %d: %d values for %d classes", i, len(t.Value[i]), nClasses)
		}
		l, r := t.ChildrenLeft[i], t.ChildrenRight[i]
		if l == leaf {
			if r != leaf {
				return fmt.Errorf("node %d: half leaf", i)
			}
			var sum float64
			for _, v := range t.Value[i] {
				if v < 0 {
					return fmt.Errorf("node %d: negative value", i)
				}
				sum += v
			}
			if sum <= 0 {
				return fmt.Errorf("node %d: leaf without samples", i)
			}
			continue
		}
		// children always follow their parent in sklearn's layout, which also rules out cycles
		if l <= i || l >= n || r <= i || r >= n {
			return fmt.Errorf("node %d: child index out of range", i)
		}
		if f := t.Feature[i]; f < 0 || f >= width {
			return fmt.Errorf("node %d: feature %d outside encoded width %d", i, f, width)
		}
	}
	return nil
}

// leafValue walks x down the tree and returns the normalized class distribution.
func (t *Tree) leafValue(x []float64, out []float64) {
	i := 0
	for t.ChildrenLeft[i] != leaf {
		if x[t.Feature[i]] <= t.Threshold[i] {
			i = t.ChildrenLeft[i]
		} else {
			i = t.ChildrenRight[i]
		}
	}
	var sum float64
	for _, v := range t.Value[i] {
		sum += v
	}
	for c, v := range t.Value[i] {
		out[c] += v / sum
	}
}

type forest struct {
	trees    []Tree
	nClasses int
}

func newForest(trees []Tree, width, nClasses int) (*forest, error) {
	if len(trees) == 0 {
		return nil, fmt.Errorf("random_forest has no trees")
	}
	for i := range trees {
		if err := trees[i].validate(width, nClasses); err != nil {
			return nil, fmt.Errorf("tree %d: %w", i, err)
		}
	}
	return &forest{trees: trees, nClasses: nClasses}, nil
}

func (f *forest) proba(x []float64) []float64 {
	out := make([]float64, f.nClasses)
	for i := range f.trees {
		f.trees[i].leafValue(x, out)
	}
	n := float64(len(f.trees))
	for c := range out {
		out[c] /= n
	}
	return out
}

func (f *forest) kind() string { return KindRandomForest }
func (f *forest) size() int    { return len(f.trees) }

type logistic struct {
	coef      []float64
	intercept float64
}

func (l *logistic) proba(x []float64) []float64 {
	z := l.intercept
	for i, w := range l.coef {
		z += w * x[i]
	}
	p := 1 / (1 + math.Exp(-z))
	return []float64{1 - p, p}
}

func (l *logistic) kind() string { return KindLogisticRegression }
func (l *logistic) size() int    { return 0 }
