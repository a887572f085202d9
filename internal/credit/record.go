// Package credit defines the credit application record (fields A1..A15) and
// the normalization applied to it before it is shown to the model.
package credit

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"creditd/internal/model"
)

// FieldNames lists the record columns in the order the model was trained on.
var FieldNames = []string{"A1", "A2", "A3", "A4", "A5", "A6", "A7", "A8", "A9", "A10", "A11", "A12", "A13", "A14", "A15"}

var numericFields = map[string]bool{"A2": true, "A3": true, "A8": true, "A11": true, "A14": true, "A15": true}

// Kind reports the column kind of a field name; ok is false for unknown names.
func Kind(name string) (kind model.ColumnKind, ok bool) {
	if !IsField(name) {
		return 0, false
	}
	if numericFields[name] {
		return model.Numeric, true
	}
	return model.Categorical, true
}

// IsField reports whether name is one of A1..A15.
func IsField(name string) bool {
	for _, f := range FieldNames {
		if f == name {
			return true
		}
	}
	return false
}

// Number is an optional numeric field value.
type Number struct {
	Value float64
	Valid bool
}

// Num returns a present Number.
func Num(v float64) Number { return Number{Value: v, Valid: true} }

func (n Number) String() string {
	if !n.Valid {
		return ""
	}
	return strconv.FormatFloat(n.Value, 'f', -1, 64)
}

func (n Number) cell() any {
	if !n.Valid {
		return nil
	}
	return n.Value
}

// MarshalJSON renders a missing value as null.
func (n Number) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(n.Value)
}

// Text is an optional categorical field value.
type Text struct {
	Value string
	Valid bool
}

// Str returns a present Text.
func Str(v string) Text { return Text{Value: v, Valid: true} }

func (t Text) String() string { return t.Value }

func (t Text) cell() any {
	if !t.Valid {
		return nil
	}
	return t.Value
}

// MarshalJSON renders a missing value as null.
func (t Text) MarshalJSON() ([]byte, error) {
	if !t.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(t.Value)
}

// Record is one credit application. Absent fields are invalid (null), never zero.
type Record struct {
	A1  Text   `json:"A1"`
	A2  Number `json:"A2"`
	A3  Number `json:"A3"`
	A4  Text   `json:"A4"`
	A5  Text   `json:"A5"`
	A6  Text   `json:"A6"`
	A7  Text   `json:"A7"`
	A8  Number `json:"A8"`
	A9  Text   `json:"A9"`
	A10 Text   `json:"A10"`
	A11 Number `json:"A11"`
	A12 Text   `json:"A12"`
	A13 Text   `json:"A13"`
	A14 Number `json:"A14"`
	A15 Number `json:"A15"`
}

func (r *Record) numbers() map[string]*Number {
	return map[string]*Number{"A2": &r.A2, "A3": &r.A3, "A8": &r.A8, "A11": &r.A11, "A14": &r.A14, "A15": &r.A15}
}

func (r *Record) texts() map[string]*Text {
	return map[string]*Text{
		"A1": &r.A1, "A4": &r.A4, "A5": &r.A5, "A6": &r.A6, "A7": &r.A7,
		"A9": &r.A9, "A10": &r.A10, "A12": &r.A12, "A13": &r.A13,
	}
}

// Numeric returns the numeric field name; ok is false for categorical or unknown names.
func (r Record) Numeric(name string) (Number, bool) {
	p, ok := r.numbers()[name]
	if !ok {
		return Number{}, false
	}
	return *p, true
}

// Categorical returns the categorical field name; ok is false for numeric or unknown names.
func (r Record) Categorical(name string) (Text, bool) {
	p, ok := r.texts()[name]
	if !ok {
		return Text{}, false
	}
	return *p, true
}

// Set parses raw into field name using the field's kind.
// Empty or blank raw sets the field to null.
func (r *Record) Set(name, raw string) error {
	raw = strings.TrimSpace(raw)
	if n, ok := r.numbers()[name]; ok {
		v, err := parseNumber(name, raw)
		if err != nil {
			return err
		}
		*n = v
		return nil
	}
	if t, ok := r.texts()[name]; ok {
		if raw == "" {
			*t = Text{}
		} else {
			*t = Str(raw)
		}
		return nil
	}
	return &FieldError{Field: name, Value: raw, Reason: "unknown field"}
}

// Values returns every field rendered as text, keyed by name. Null renders as "".
func (r Record) Values() map[string]string {
	out := make(map[string]string, len(FieldNames))
	for k, v := range r.numbers() {
		out[k] = v.String()
	}
	for k, v := range r.texts() {
		out[k] = v.String()
	}
	return out
}

// Row builds the single-row table handed to the model, columns in FieldNames order.
func (r Record) Row() model.Row {
	nums, texts := r.numbers(), r.texts()
	row := model.Row{Columns: append([]string(nil), FieldNames...), Values: make([]any, len(FieldNames))}
	for i, f := range FieldNames {
		if n, ok := nums[f]; ok {
			row.Values[i] = n.cell()
		} else {
			row.Values[i] = texts[f].cell()
		}
	}
	return row
}

// UnmarshalJSON accepts numbers either as JSON numbers or numeric strings.
// Absent fields, null and "" are null. Unknown keys are ignored.
func (r *Record) UnmarshalJSON(b []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*r = Record{}
	for name, msg := range raw {
		if n, ok := r.numbers()[name]; ok {
			v, err := decodeNumber(name, msg)
			if err != nil {
				return err
			}
			*n = v
		} else if t, ok := r.texts()[name]; ok {
			v, err := decodeText(name, msg)
			if err != nil {
				return err
			}
			*t = v
		}
	}
	return nil
}

func decodeNumber(name string, msg json.RawMessage) (Number, error) {
	msg = bytes.TrimSpace(msg)
	if len(msg) == 0 || bytes.Equal(msg, []byte("null")) {
		return Number{}, nil
	}
	if msg[0] == '"' {
		var s string
		if err := json.Unmarshal(msg, &s); err != nil {
			return Number{}, &FieldError{Field: name, Value: string(msg), Reason: "invalid string"}
		}
		return parseNumber(name, strings.TrimSpace(s))
	}
	var f float64
	if err := json.Unmarshal(msg, &f); err != nil {
		return Number{}, &FieldError{Field: name, Value: string(msg), Reason: "not a number"}
	}
	return Num(f), nil
}

func decodeText(name string, msg json.RawMessage) (Text, error) {
	msg = bytes.TrimSpace(msg)
	if len(msg) == 0 || bytes.Equal(msg, []byte("null")) {
		return Text{}, nil
	}
	var s string
	if err := json.Unmarshal(msg, &s); err != nil {
		return Text{}, &FieldError{Field: name, Value: string(msg), Reason: "not a string"}
	}
	if s == "" {
		return Text{}, nil
	}
	return Str(s), nil
}

func parseNumber(name, raw string) (Number, error) {
	if raw == "" {
		return Number{}, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return Number{}, &FieldError{Field: name, Value: raw, Reason: "not a number"}
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Number{}, &FieldError{Field: name, Value: raw, Reason: "not a finite number"}
	}
	return Num(f), nil
}

// FieldError reports a field value that could not be parsed.
type FieldError struct {
	Field  string
	Value  string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s (%q)", e.Field, e.Reason, e.Value)
}
