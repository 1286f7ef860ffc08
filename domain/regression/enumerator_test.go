package regression

import (
	"testing"

	"goregress/domain/field"
)

func enumFields() (field.Field, []field.Field) {
	dep := field.Field{Name: "y", GeneralType: field.Quantitative}
	indep := []field.Field{
		{Name: "a", GeneralType: field.Quantitative},
		{Name: "b", GeneralType: field.Quantitative},
		{Name: "c", GeneralType: field.Categorical},
	}
	return dep, indep
}

func TestFullModelEnumerator(t *testing.T) {
	dep, indep := enumFields()
	considered, specs, err := FullModelEnumerator{}.Enumerate(dep, indep)
	if err != nil {
		t.Fatalf("Enumerate failed: %v", err)
	}
	if len(specs) != 1 || len(considered) != 1 {
		t.Fatalf("Expected one candidate, got %d specs / %d considered", len(specs), len(considered))
	}
	if specs[0].Formula() != "y ~ a + b + c" {
		t.Errorf("Unexpected formula %q", specs[0].Formula())
	}
	if len(considered[0]) != 3 {
		t.Errorf("Considered fields should cover all independents, got %v", field.Names(considered[0]))
	}
}

func TestAllSubsetsEnumerator(t *testing.T) {
	dep, indep := enumFields()
	considered, specs, err := AllSubsetsEnumerator{MaxVars: 8}.Enumerate(dep, indep)
	if err != nil {
		t.Fatalf("Enumerate failed: %v", err)
	}
	// 2^3 - 1 non-empty subsets
	if len(specs) != 7 || len(considered) != 7 {
		t.Fatalf("Expected 7 candidates, got %d", len(specs))
	}
	// size-major ordering: three singletons first, full model last
	for i := 0; i < 3; i++ {
		if len(specs[i].Terms) != 1 {
			t.Errorf("Candidate %d should be a singleton, got %v", i, field.Names(specs[i].Terms))
		}
	}
	if len(specs[6].Terms) != 3 {
		t.Errorf("Last candidate should be the full model, got %v", field.Names(specs[6].Terms))
	}
}

func TestAllSubsetsEnumeratorDeterministic(t *testing.T) {
	dep, indep := enumFields()
	_, first, _ := AllSubsetsEnumerator{}.Enumerate(dep, indep)
	_, second, _ := AllSubsetsEnumerator{}.Enumerate(dep, indep)
	for i := range first {
		if first[i].Formula() != second[i].Formula() {
			t.Errorf("Candidate %d differs across runs: %q vs %q", i, first[i].Formula(), second[i].Formula())
		}
	}
}

func TestAllSubsetsEnumeratorGuard(t *testing.T) {
	dep := field.Field{Name: "y"}
	indep := make([]field.Field, 9)
	for i := range indep {
		indep[i] = field.Field{Name: string(rune('a' + i))}
	}
	if _, _, err := (AllSubsetsEnumerator{MaxVars: 8}).Enumerate(dep, indep); err == nil {
		t.Error("Expected error when independents exceed MaxVars")
	}
}
