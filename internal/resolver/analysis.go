package resolver

import (
	"fmt"
	"strings"

	"k8s.io/apimachinery/pkg/util/sets"

	"github.com/anvil-platform/depgame/internal/graph"
)

// Stats reports the size of the clause model.
func (m *Model) Stats() Stats {
	s := Stats{
		TotalClauses:   len(m.clauses),
		TotalVariables: m.graph.Len(),
		PackageGroups:  len(m.graph.PackageNames()),
	}
	if len(m.clauses) == 0 {
		return s
	}
	total := 0
	s.MinClauseLength = len(m.clauses[0].Literals)
	for _, c := range m.clauses {
		n := len(c.Literals)
		total += n
		if n > s.MaxClauseLength {
			s.MaxClauseLength = n
		}
		if n < s.MinClauseLength {
			s.MinClauseLength = n
		}
	}
	s.AvgClauseLength = float64(total) / float64(len(m.clauses))
	return s
}

// Summary describes the rules of the puzzle in plain language.
func (m *Model) Summary() Summary {
	s := Summary{
		Root: []string{fmt.Sprintf("%s must be selected (it's the root package)", m.root.Display())},
	}

	for _, name := range m.graph.PackageNames() {
		versions := m.graph.Versions(name)
		if len(versions) < 2 {
			continue
		}
		vs := make([]string, len(versions))
		for i, v := range versions {
			vs[i] = v.Version()
		}
		s.Versions = append(s.Versions,
			fmt.Sprintf("At most one version of %s can be selected: %s", name, strings.Join(vs, ", ")))
	}

	for _, p := range m.graph.Nodes() {
		groups := groupByName(m.graph.Successors(p))
		if len(groups) == 0 {
			continue
		}
		names := make([]string, len(groups))
		for i, g := range groups {
			names[i] = g.name
		}
		s.Dependencies = append(s.Dependencies,
			fmt.Sprintf("If %s(%s) is selected, then %s must also be selected", p.Name(), p.Version(), strings.Join(names, ", ")))
	}
	return s
}

// Violations lists every reason sel is not a solution. The list is empty
// exactly when Evaluate(sel).Satisfied holds.
//
// Order: root, then packages with several selected versions (group order),
// then unmet dependencies (node order, dependency names in edge order).
func (m *Model) Violations(sel Selection) []Violation {
	var out []Violation

	if !sel.Has(m.root) {
		out = append(out, Violation{
			Kind:    ViolationRootMissing,
			Package: string(m.root),
			Message: fmt.Sprintf("Root package %s is not selected", m.root),
		})
	}

	for _, name := range m.graph.PackageNames() {
		chosen := selectedVersions(m.graph.Versions(name), sel)
		if len(chosen) < 2 {
			continue
		}
		out = append(out, Violation{
			Kind:    ViolationMultipleVersions,
			Package: name,
			Message: fmt.Sprintf("Multiple versions selected for %s: %s", name, joinTokens(chosen)),
		})
	}

	for _, p := range m.graph.Nodes() {
		if !sel.Has(p) {
			continue
		}
		for _, dep := range groupByName(m.graph.Successors(p)) {
			if len(selectedVersions(dep.versions, sel)) > 0 {
				continue
			}
			v := Violation{Package: string(p), Dependency: dep.name}
			if other := selectedVersions(m.graph.Versions(dep.name), sel); len(other) > 0 {
				v.Kind = ViolationWrongDependency
				v.Message = fmt.Sprintf("%s requires %s but selected %s does not satisfy it", p, joinTokens(dep.versions), joinTokens(other))
			} else {
				v.Kind = ViolationUnmetDependency
				v.Message = fmt.Sprintf("%s requires %s but it's not selected", p, dep.name)
			}
			out = append(out, v)
		}
	}
	return out
}

// Installable returns the selected tokens whose dependencies are met
// transitively by selected versions, in node order. A dependency cycle back
// onto a package being checked counts as met.
func (m *Model) Installable(sel Selection) []graph.Token {
	var out []graph.Token
	for _, n := range m.graph.Nodes() {
		if sel.Has(n) && m.installable(n, sel, sets.New[graph.Token]()) {
			out = append(out, n)
		}
	}
	return out
}

func (m *Model) installable(t graph.Token, sel Selection, path sets.Set[graph.Token]) bool {
	if path.Has(t) {
		return true
	}
	path.Insert(t)
	defer path.Delete(t)

	for _, dep := range groupByName(m.graph.Successors(t)) {
		met := false
		for _, d := range dep.versions {
			if sel.Has(d) && m.installable(d, sel, path) {
				met = true
				break
			}
		}
		if !met {
			return false
		}
	}
	return true
}

func selectedVersions(versions []graph.Token, sel Selection) []graph.Token {
	var out []graph.Token
	for _, v := range versions {
		if sel.Has(v) {
			out = append(out, v)
		}
	}
	return out
}

func joinTokens(tokens []graph.Token) string {
	s := make([]string, len(tokens))
	for i, t := range tokens {
		s[i] = string(t)
	}
	return strings.Join(s, ", ")
}
