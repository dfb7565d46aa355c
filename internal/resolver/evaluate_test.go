package resolver

import (
	"reflect"
	"testing"

	"github.com/anvil-platform/depgame/internal/graph"
)

func TestEvaluate_FullChainIsValid(t *testing.T) {
	m, err := Build(chain(t), "A==2.0")
	if err != nil {
		t.Fatalf("Build error: %v", err)
	}
	ev := m.Evaluate(NewSelection("A==2.0", "B==1.3", "G==0.5"))
	if !ev.Satisfied {
		t.Fatalf("expected full chain to satisfy every clause, got %v", ev.Results)
	}
}

func TestEvaluate_MissingDependency(t *testing.T) {
	m, err := Build(chain(t), "A==2.0")
	if err != nil {
		t.Fatalf("Build error: %v", err)
	}
	ev := m.Evaluate(NewSelection("A==2.0"))
	if ev.Satisfied {
		t.Fatalf("expected root alone to be invalid")
	}
	// root, A → B, B → G
	if want := []bool{true, false, true}; !reflect.DeepEqual(ev.Results, want) {
		t.Fatalf("expected results %v, got %v", want, ev.Results)
	}
}

func TestEvaluate_EmptySelectionNeverSatisfies(t *testing.T) {
	for _, root := range []graph.Token{"A==2.0", "B==1.3", "G==0.5"} {
		m, err := Build(chain(t), root)
		if err != nil {
			t.Fatalf("Build error: %v", err)
		}
		ev := m.Evaluate(NewSelection())
		if ev.Satisfied {
			t.Fatalf("expected empty selection to fail for root %s", root)
		}
		if ev.Results[0] {
			t.Fatalf("expected root clause to fail for root %s", root)
		}
	}
}

func TestEvaluate_TwoVersionsFailExclusionClause(t *testing.T) {
	m, err := Build(booleanLogic(t), "A==2.0")
	if err != nil {
		t.Fatalf("Build error: %v", err)
	}
	ev := m.Evaluate(NewSelection("A==2.0", "B==1.3", "B==1.4", "G==0.6", "G==0.7"))
	if ev.Satisfied {
		t.Fatalf("expected two versions of B and G to be invalid")
	}
	clauses := m.Clauses()
	for i, c := range clauses {
		if c.Type != ClauseVersionConstraint {
			continue
		}
		both := true
		for _, l := range c.Literals {
			both = both && (l.Token == "B==1.3" || l.Token == "B==1.4" || l.Token == "G==0.6" || l.Token == "G==0.7")
		}
		if both && ev.Results[i] {
			t.Fatalf("expected clause %d (%s) to fail", i, c.Formula)
		}
	}
}

func TestEvaluateClause(t *testing.T) {
	c := Clause{Literals: []Literal{{"a==1.0", false}, {"b==1.0", true}}}
	cases := []struct {
		sel  Selection
		want bool
	}{
		{NewSelection(), true},
		{NewSelection("a==1.0"), false},
		{NewSelection("a==1.0", "b==1.0"), true},
		{NewSelection("b==1.0"), true},
	}
	for _, tc := range cases {
		if got := EvaluateClause(c, tc.sel); got != tc.want {
			t.Fatalf("EvaluateClause(%v) = %v, want %v", tc.sel.UnsortedList(), got, tc.want)
		}
	}
	if EvaluateClause(Clause{}, NewSelection("a==1.0")) {
		t.Fatalf("expected empty clause to be unsatisfiable")
	}
}

func TestExplain_MatchesEvaluate(t *testing.T) {
	m, err := Build(booleanLogic(t), "A==2.0")
	if err != nil {
		t.Fatalf("Build error: %v", err)
	}
	sel := NewSelection("A==2.0", "B==1.3")
	ev := m.Evaluate(sel)
	ex := m.Explain(sel)
	if len(ex) != len(ev.Results) {
		t.Fatalf("expected %d explanations, got %d", len(ev.Results), len(ex))
	}
	for i, e := range ex {
		if e.Index != i+1 {
			t.Fatalf("expected 1-based index %d, got %d", i+1, e.Index)
		}
		if e.Satisfied != ev.Results[i] {
			t.Fatalf("explanation %d disagrees with evaluation", i)
		}
	}
	if ex[0].Type != ClauseRoot || ex[len(ex)-1].Type != ClauseDependency {
		t.Fatalf("expected root first and dependencies last, got %s and %s", ex[0].Type, ex[len(ex)-1].Type)
	}
}

func TestPackageLevelHelpersValidateRoot(t *testing.T) {
	g := chain(t)
	if _, err := EvaluateAll(g, "nope", NewSelection()); err == nil {
		t.Fatalf("expected EvaluateAll to reject unknown root")
	}
	if _, err := Explain(g, "nope", NewSelection()); err == nil {
		t.Fatalf("expected Explain to reject unknown root")
	}
	if _, err := FindSolutions(g, "nope", 1); err == nil {
		t.Fatalf("expected FindSolutions to reject unknown root")
	}

	ev, err := EvaluateAll(g, "A==2.0", NewSelection("A==2.0", "B==1.3", "G==0.5"))
	if err != nil || !ev.Satisfied {
		t.Fatalf("expected valid evaluation, got %+v (err=%v)", ev, err)
	}
}
