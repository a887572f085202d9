package credit

import (
	"encoding/json"
	"errors"
	"math"
	"net/url"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"creditd/internal/model"
)

func fullRecord() Record {
	return Record{
		A1: Str("a"), A2: Num(30), A3: Num(4), A4: Str("u"), A5: Str("g"), A6: Str("c"), A7: Str("v"),
		A8: Num(2.5), A9: Str("t"), A10: Str("t"), A11: Num(1), A12: Str("t"), A13: Str("g"),
		A14: Num(200), A15: Num(1000),
	}
}

func TestClampTable_Apply(t *testing.T) {
	c := ClampTable{"A11": ptr(7.5), "A14": nil}

	assert.Equal(t, Num(7.5), c.Apply("A11", Num(10)))
	assert.Equal(t, Num(7.5), c.Apply("A11", Num(7.5)))
	assert.Equal(t, Num(3), c.Apply("A11", Num(3)))
	assert.Equal(t, Num(-4), c.Apply("A11", Num(-4)))
	assert.Equal(t, Number{}, c.Apply("A11", Number{}))
	// nil maximum passes through
	assert.Equal(t, Num(1e12), c.Apply("A14", Num(1e12)))
	// not in the table
	assert.Equal(t, Num(1e12), c.Apply("A15", Num(1e12)))
}

func TestClampTable_Validate(t *testing.T) {
	require.NoError(t, DefaultClampTable().Validate())
	require.NoError(t, LegacyClampTable().Validate())
	assert.Error(t, ClampTable{"A9": ptr(1)}.Validate())
	assert.Error(t, ClampTable{"A16": ptr(1)}.Validate())
	assert.Error(t, ClampTable{"A11": ptr(math.NaN())}.Validate())
	assert.Error(t, ClampTable{"A14": ptr(math.Inf(1))}.Validate())
	require.NoError(t, ClampTable{"A15": nil}.Validate())

	_, err := NewNormalizer(ClampTable{"A11": ptr(math.NaN())}, nil)
	assert.Error(t, err)
}

func TestNormalize_ClampProperties(t *testing.T) {
	n, err := NewNormalizer(LegacyClampTable(), nil)
	require.NoError(t, err)

	inputs := []float64{-1, 0, 7.4, 7.5, 7.6, 577.5, 600, 988.75, 1e9}
	for _, v := range inputs {
		rec := Record{A11: Num(v), A14: Num(v), A15: Num(v), A2: Num(v)}
		got := n.Normalize(rec).Model
		for name, limit := range LegacyClampTable() {
			out, _ := got.Numeric(name)
			in, _ := rec.Numeric(name)
			assert.LessOrEqual(t, out.Value, *limit, "%s=%v", name, v)
			if in.Value <= *limit {
				assert.Equal(t, in, out, "%s=%v", name, v)
			}
		}
		// not in the table: identity
		assert.Equal(t, rec.A2, got.A2)
	}
}

func TestNormalize_ScenarioA11(t *testing.T) {
	n, err := NewNormalizer(DefaultClampTable(), nil)
	require.NoError(t, err)

	rec := fullRecord()
	rec.A11 = Num(10)
	out := n.Normalize(rec)
	assert.Equal(t, Num(7.5), out.Model.A11)
	assert.Equal(t, Num(10), out.Display.A11)
}

func TestNormalize_NullStaysNull(t *testing.T) {
	n, err := NewNormalizer(DefaultClampTable(), nil)
	require.NoError(t, err)

	out := n.Normalize(Record{})
	if diff := cmp.Diff(Record{}, out.Model); diff != "" {
		t.Fatalf("empty record changed (-want +got):\n%s", diff)
	}
	for i, v := range out.Model.Row().Values {
		assert.Nil(t, v, "column %d", i)
	}
}

func TestNormalize_UnclampedFieldsIdentity(t *testing.T) {
	n, err := NewNormalizer(DefaultClampTable(), nil)
	require.NoError(t, err)

	rec := fullRecord()
	out := n.Normalize(rec)
	if diff := cmp.Diff(rec, out.Model); diff != "" {
		t.Fatalf("in-range record changed (-want +got):\n%s", diff)
	}
}

func TestNormalize_ForcedField(t *testing.T) {
	n, err := NewNormalizer(DefaultClampTable(), map[string]string{"A12": "f", "A8": "1.25"})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"A12": "f", "A8": "1.25"}, n.Forced())

	for _, user := range []Text{Str("t"), Str("f"), {}} {
		rec := fullRecord()
		rec.A12 = user
		out := n.Normalize(rec)
		assert.Equal(t, Str("f"), out.Model.A12)
		assert.Equal(t, Num(1.25), out.Model.A8)
		assert.Equal(t, user, out.Display.A12)
		assert.Equal(t, Num(2.5), out.Display.A8)
	}
}

func TestNewNormalizer_Errors(t *testing.T) {
	_, err := NewNormalizer(ClampTable{"A1": ptr(1)}, nil)
	assert.Error(t, err)

	_, err = NewNormalizer(nil, map[string]string{"A11": "lots"})
	var fe *FieldError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "A11", fe.Field)

	_, err = NewNormalizer(nil, map[string]string{"B1": "x"})
	assert.Error(t, err)
}

func TestNormalizer_ClampIsCopied(t *testing.T) {
	table := ClampTable{"A11": ptr(7.5)}
	n, err := NewNormalizer(table, nil)
	require.NoError(t, err)
	*table["A11"] = 1
	assert.Equal(t, Num(7.5), n.Normalize(Record{A11: Num(9)}).Model.A11)

	c := n.Clamp()
	*c["A11"] = 2
	assert.Equal(t, 7.5, *n.Clamp()["A11"])
}

func TestRecord_UnmarshalJSON(t *testing.T) {
	var r Record
	err := json.Unmarshal([]byte(`{
		"A1": "a", "A2": 30, "A3": "4.0", "A4": "u", "A5": null, "A6": "",
		"A8": " 2.5 ", "A9": "t", "A11": 1.0, "A14": "", "A15": null, "extra": [1,2]
	}`), &r)
	require.NoError(t, err)

	want := Record{A1: Str("a"), A2: Num(30), A3: Num(4), A4: Str("u"), A8: Num(2.5), A9: Str("t"), A11: Num(1)}
	if diff := cmp.Diff(want, r); diff != "" {
		t.Fatalf("decoded record mismatch (-want +got):\n%s", diff)
	}
}

func TestRecord_UnmarshalJSON_Malformed(t *testing.T) {
	cases := map[string]string{
		"A2":  `{"A2": "abc"}`,
		"A14": `{"A14": true}`,
		"A9":  `{"A9": 1}`,
		"A15": `{"A15": "NaN"}`,
	}
	for field, body := range cases {
		var r Record
		err := json.Unmarshal([]byte(body), &r)
		var fe *FieldError
		require.True(t, errors.As(err, &fe), "%s: %v", field, err)
		assert.Equal(t, field, fe.Field)
	}

	var r Record
	assert.Error(t, json.Unmarshal([]byte(`[1,2]`), &r))
}

func TestRecord_MarshalJSON(t *testing.T) {
	b, err := json.Marshal(Record{A1: Str("b"), A2: Num(22.5)})
	require.NoError(t, err)
	var m map[string]any
	require.NoError(t, json.Unmarshal(b, &m))
	assert.Equal(t, "b", m["A1"])
	assert.Equal(t, 22.5, m["A2"])
	assert.Nil(t, m["A3"])
	assert.Len(t, m, 15)
}

func TestParseForm(t *testing.T) {
	form := url.Values{}
	form.Set("A1", "b")
	form.Set("A2", "41.5")
	form.Set("A11", "10")
	form.Set("A14", "")
	form.Set("A9", " t ")

	r, err := ParseForm(form)
	require.NoError(t, err)
	assert.Equal(t, Str("b"), r.A1)
	assert.Equal(t, Num(41.5), r.A2)
	assert.Equal(t, Num(10), r.A11)
	assert.Equal(t, Number{}, r.A14)
	assert.Equal(t, Number{}, r.A15)
	assert.Equal(t, Str("t"), r.A9)
	assert.Equal(t, Text{}, r.A4)
}

func TestParseForm_Malformed(t *testing.T) {
	form := url.Values{"A3": {"1,5"}, "A8": {"x"}, "A13": {"s"}}
	r, err := ParseForm(form)
	var fe *FieldError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "A3", fe.Field)
	// parsing continued past the bad fields
	assert.Equal(t, Str("s"), r.A13)
	assert.Equal(t, Number{}, r.A3)
}

func TestRecord_RowOrderAndTypes(t *testing.T) {
	row := fullRecord().Row()
	require.Equal(t, FieldNames, row.Columns)
	for i, name := range row.Columns {
		k, ok := Kind(name)
		require.True(t, ok)
		switch k {
		case model.Numeric:
			assert.IsType(t, float64(0), row.Values[i], name)
		case model.Categorical:
			assert.IsType(t, "", row.Values[i], name)
		}
	}
}

func TestRecord_Values(t *testing.T) {
	v := Record{A1: Str("a"), A2: Num(30), A14: Num(0.5)}.Values()
	assert.Len(t, v, 15)
	assert.Equal(t, "a", v["A1"])
	assert.Equal(t, "30", v["A2"])
	assert.Equal(t, "0.5", v["A14"])
	assert.Equal(t, "", v["A15"])
}
