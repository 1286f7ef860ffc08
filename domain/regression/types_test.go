package regression

import (
	"encoding/json"
	"math"
	"testing"

	"goregress/domain/field"
)

func TestRecommendType(t *testing.T) {
	cases := []struct {
		gt   field.GeneralType
		want Type
	}{
		{field.Quantitative, TypeLinear},
		{field.Temporal, TypeLinear},
		{field.Categorical, TypeLogistic},
	}
	for _, c := range cases {
		got := RecommendType(field.Field{Name: "y", GeneralType: c.gt})
		if got != c.want {
			t.Errorf("RecommendType(%s): expected %s, got %s", c.gt, c.want, got)
		}
	}
}

func TestParseType(t *testing.T) {
	if typ, ok := ParseType("logistic"); !ok || typ != TypeLogistic {
		t.Errorf("ParseType(logistic): got (%s, %v)", typ, ok)
	}
	if _, ok := ParseType("quadratic"); ok {
		t.Error("ParseType should reject unknown regression types")
	}
}

func TestStatMarshalSanitizesNonFinite(t *testing.T) {
	payload := map[string]Stat{
		"ok":   1.5,
		"nan":  Stat(math.NaN()),
		"pinf": Stat(math.Inf(1)),
		"ninf": Stat(math.Inf(-1)),
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	var decoded map[string]*float64
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if decoded["ok"] == nil || *decoded["ok"] != 1.5 {
		t.Error("Finite value should round-trip")
	}
	for _, key := range []string{"nan", "pinf", "ninf"} {
		if decoded[key] != nil {
			t.Errorf("%s should marshal as null, got %v", key, *decoded[key])
		}
	}
}

func TestStatUnmarshalNull(t *testing.T) {
	var s Stat
	if err := json.Unmarshal([]byte("null"), &s); err != nil {
		t.Fatalf("Unmarshal null failed: %v", err)
	}
	if !math.IsNaN(float64(s)) {
		t.Errorf("null should decode to NaN, got %f", float64(s))
	}
}

func TestModelSpecFormula(t *testing.T) {
	spec := ModelSpec{
		Dependent: field.Field{Name: "sales"},
		Terms: []field.Field{
			{Name: "region"},
			{Name: "age"},
		},
	}
	if got := spec.Formula(); got != "sales ~ region + age" {
		t.Errorf("Expected formula 'sales ~ region + age', got %q", got)
	}

	empty := ModelSpec{Dependent: field.Field{Name: "sales"}}
	if got := empty.Formula(); got != "sales ~ 1" {
		t.Errorf("Expected intercept-only formula, got %q", got)
	}
}
