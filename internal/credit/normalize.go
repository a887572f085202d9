package credit

import (
	"fmt"
	"math"
	"net/url"
	"sort"

	"creditd/internal/model"
)

// ClampTable maps numeric fields to the maximum value the model may see.
// A nil maximum leaves the field unclamped.
type ClampTable map[string]*float64

// DefaultClampTable is the widened table used for the current dataset scale.
func DefaultClampTable() ClampTable {
	return ClampTable{"A11": ptr(7.5), "A14": ptr(50000000.1), "A15": ptr(500000000.1)}
}

// LegacyClampTable is the earlier, tighter table.
func LegacyClampTable() ClampTable {
	return ClampTable{"A11": ptr(7.5), "A14": ptr(577.5), "A15": ptr(988.75)}
}

func ptr(f float64) *float64 { return &f }

// Validate checks that every key names a numeric field and every maximum is finite.
func (c ClampTable) Validate() error {
	for name, limit := range c {
		k, ok := Kind(name)
		if !ok {
			return fmt.Errorf("clamp: unknown field %q", name)
		}
		if k != model.Numeric {
			return fmt.Errorf("clamp: field %s is categorical", name)
		}
		if limit != nil && (math.IsNaN(*limit) || math.IsInf(*limit, 0)) {
			return fmt.Errorf("clamp: field %s has non-finite maximum %v", name, *limit)
		}
	}
	return nil
}

// Apply returns v limited to the field's maximum. Null values and fields
// without a maximum pass through unchanged.
func (c ClampTable) Apply(name string, v Number) Number {
	limit := c[name]
	if limit == nil || !v.Valid || v.Value <= *limit {
		return v
	}
	return Num(*limit)
}

// Normalized holds the two parallel views of one request: what the user
// entered and what the model is shown.
type Normalized struct {
	Display Record
	Model   Record
}

// Normalizer applies the clamp table and forced constants to a record.
// It is immutable and safe for concurrent use.
type Normalizer struct {
	clamp ClampTable
	force Record
	// names of forced fields, sorted
	forced []string
}

// NewNormalizer validates clamp and force. Force values are parsed with the
// field's kind; an empty value forces null.
func NewNormalizer(clamp ClampTable, force map[string]string) (*Normalizer, error) {
	if err := clamp.Validate(); err != nil {
		return nil, err
	}
	n := &Normalizer{clamp: make(ClampTable, len(clamp))}
	for k, v := range clamp {
		if v != nil {
			v = ptr(*v)
		}
		n.clamp[k] = v
	}
	for name, raw := range force {
		if err := n.force.Set(name, raw); err != nil {
			return nil, fmt.Errorf("force: %w", err)
		}
		n.forced = append(n.forced, name)
	}
	sort.Strings(n.forced)
	return n, nil
}

// Clamp returns a copy of the clamp table.
func (n *Normalizer) Clamp() ClampTable {
	out := make(ClampTable, len(n.clamp))
	for k, v := range n.clamp {
		if v != nil {
			v = ptr(*v)
		}
		out[k] = v
	}
	return out
}

// Forced returns the forced field values rendered as text.
func (n *Normalizer) Forced() map[string]string {
	vals := n.force.Values()
	out := make(map[string]string, len(n.forced))
	for _, f := range n.forced {
		out[f] = vals[f]
	}
	return out
}

// Normalize clamps numeric fields and overrides forced fields. The input is
// returned untouched as Display.
func (n *Normalizer) Normalize(in Record) Normalized {
	out := in
	for name, v := range out.numbers() {
		*v = n.clamp.Apply(name, *v)
	}
	if len(n.forced) > 0 {
		fnum, ftext := n.force.numbers(), n.force.texts()
		onum, otext := out.numbers(), out.texts()
		for _, f := range n.forced {
			if p, ok := onum[f]; ok {
				*p = *fnum[f]
			} else {
				*otext[f] = *ftext[f]
			}
		}
	}
	return Normalized{Display: in, Model: out}
}

// ParseForm builds a record from form-encoded fields. Missing and empty
// fields are null. Parsing continues past a malformed number, which is left
// null; the first such error is returned as a *FieldError.
func ParseForm(form url.Values) (Record, error) {
	var r Record
	var first error
	for _, f := range FieldNames {
		if err := r.Set(f, form.Get(f)); err != nil && first == nil {
			first = err
		}
	}
	return r, first
}
