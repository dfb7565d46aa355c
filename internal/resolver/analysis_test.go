package resolver

import (
	"reflect"
	"strings"
	"testing"

	"github.com/anvil-platform/depgame/internal/graph"
)

func TestStats(t *testing.T) {
	m, err := Build(booleanLogic(t), "A==2.0")
	if err != nil {
		t.Fatalf("Build error: %v", err)
	}
	got := m.Stats()
	want := Stats{
		TotalClauses:    9,
		TotalVariables:  6,
		PackageGroups:   3,
		AvgClauseLength: 20.0 / 9.0,
		MaxClauseLength: 3,
		MinClauseLength: 1,
	}
	if got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
}

func TestSummary(t *testing.T) {
	m, err := Build(booleanLogic(t), "A==2.0")
	if err != nil {
		t.Fatalf("Build error: %v", err)
	}
	s := m.Summary()
	if len(s.Root) != 1 || !strings.Contains(s.Root[0], "A v2.0") {
		t.Fatalf("unexpected root summary: %v", s.Root)
	}
	wantVersions := []string{
		"At most one version of B can be selected: 1.3, 1.4",
		"At most one version of G can be selected: 0.5, 0.6, 0.7",
	}
	if !reflect.DeepEqual(s.Versions, wantVersions) {
		t.Fatalf("expected %v, got %v", wantVersions, s.Versions)
	}
	if len(s.Dependencies) != 3 || s.Dependencies[0] != "If A(2.0) is selected, then B, G must also be selected" {
		t.Fatalf("unexpected dependency summary: %v", s.Dependencies)
	}
}

// Every subset of the puzzle is checked: Violations must be empty exactly
// when every clause holds.
func TestViolations_AgreeWithEvaluate(t *testing.T) {
	g := booleanLogic(t)
	m, err := Build(g, "A==2.0")
	if err != nil {
		t.Fatalf("Build error: %v", err)
	}
	nodes := g.Nodes()
	for mask := 0; mask < 1<<len(nodes); mask++ {
		sel := NewSelection()
		for i, n := range nodes {
			if mask&(1<<i) != 0 {
				sel.Insert(n)
			}
		}
		violations := m.Violations(sel)
		if valid := m.Evaluate(sel).Satisfied; valid != (len(violations) == 0) {
			t.Fatalf("selection %v: valid=%v but violations=%v", sel.UnsortedList(), valid, violations)
		}
	}
}

func TestViolations_Messages(t *testing.T) {
	m, err := Build(booleanLogic(t), "A==2.0")
	if err != nil {
		t.Fatalf("Build error: %v", err)
	}

	v := m.Violations(NewSelection())
	if len(v) != 1 || v[0].Kind != ViolationRootMissing {
		t.Fatalf("expected only a missing root, got %v", v)
	}

	v = m.Violations(NewSelection("A==2.0", "B==1.4", "G==0.5", "G==0.6"))
	kinds := make([]ViolationKind, len(v))
	for i := range v {
		kinds[i] = v[i].Kind
	}
	want := []ViolationKind{ViolationMultipleVersions, ViolationWrongDependency}
	if !reflect.DeepEqual(kinds, want) {
		t.Fatalf("expected kinds %v, got %v (%v)", want, kinds, v)
	}
	if v[0].Message != "Multiple versions selected for G: G==0.5, G==0.6" {
		t.Fatalf("unexpected message %q", v[0].Message)
	}
	if v[1].Package != "B==1.4" || v[1].Dependency != "G" {
		t.Fatalf("unexpected violation %+v", v[1])
	}

	v = m.Violations(NewSelection("A==2.0", "G==0.6"))
	if len(v) != 1 || v[0].Kind != ViolationUnmetDependency || v[0].Message != "A==2.0 requires B but it's not selected" {
		t.Fatalf("unexpected violations %v", v)
	}
}

func TestInstallable(t *testing.T) {
	m, err := Build(chain(t), "A==2.0")
	if err != nil {
		t.Fatalf("Build error: %v", err)
	}

	if got := m.Installable(NewSelection("A==2.0", "B==1.3")); len(got) != 0 {
		t.Fatalf("expected nothing installable without G, got %v", got)
	}
	if got, want := m.Installable(NewSelection("B==1.3", "G==0.5")), []graph.Token{"B==1.3", "G==0.5"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	if got := m.Installable(NewSelection("A==2.0", "B==1.3", "G==0.5")); len(got) != 3 {
		t.Fatalf("expected all installable, got %v", got)
	}
}

func TestInstallable_Cycle(t *testing.T) {
	g := mustGraph(t,
		[]graph.Token{"x==1.0", "y==1.0"},
		graph.Edge{From: "x==1.0", To: "y==1.0"},
		graph.Edge{From: "y==1.0", To: "x==1.0"},
	)
	m, err := Build(g, "x==1.0")
	if err != nil {
		t.Fatalf("Build error: %v", err)
	}
	sel := NewSelection("x==1.0", "y==1.0")
	if got := m.Installable(sel); len(got) != 2 {
		t.Fatalf("expected both cycle members installable, got %v", got)
	}
	if !m.Satisfied(sel) {
		t.Fatalf("expected cycle to be a valid selection")
	}
	if got := m.Installable(NewSelection("x==1.0")); len(got) != 0 {
		t.Fatalf("expected x alone not installable, got %v", got)
	}
}

func TestHint(t *testing.T) {
	m, err := Build(booleanLogic(t), "A==2.0")
	if err != nil {
		t.Fatalf("Build error: %v", err)
	}
	hint := m.Hint()
	want := NewSelection("A==2.0", "B==1.4", "G==0.7")
	if !hint.Equal(want) {
		t.Fatalf("expected hint %v, got %v", want.UnsortedList(), hint.UnsortedList())
	}
	if !m.Satisfied(hint) {
		t.Fatalf("expected greedy hint to solve this puzzle")
	}
}

func TestHint_PrefersSemanticOrder(t *testing.T) {
	g := mustGraph(t,
		[]graph.Token{"app==1.0", "lib==1.9", "lib==1.10"},
		graph.Edge{From: "app==1.0", To: "lib==1.9"},
		graph.Edge{From: "app==1.0", To: "lib==1.10"},
	)
	m, err := Build(g, "app==1.0")
	if err != nil {
		t.Fatalf("Build error: %v", err)
	}
	if hint := m.Hint(); !hint.Has("lib==1.10") {
		t.Fatalf("expected lib==1.10 to win over lib==1.9, got %v", hint.UnsortedList())
	}
}
