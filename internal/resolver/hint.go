package resolver

import (
	"github.com/anvil-platform/depgame/internal/graph"
	"github.com/anvil-platform/depgame/internal/semver"
)

// Hint builds a greedy suggestion: the root, then for every dependency name
// not yet covered, the highest version among that dependency's targets,
// followed recursively.
//
// The greedy walk never backtracks, so a hint for a solvable puzzle can still
// be wrong. Callers should evaluate it before presenting it as a solution.
func (m *Model) Hint() Selection {
	sel := NewSelection(m.root)
	visited := NewSelection()

	var visit func(t graph.Token)
	visit = func(t graph.Token) {
		if visited.Has(t) {
			return
		}
		visited.Insert(t)

		for _, dep := range groupByName(m.graph.Successors(t)) {
			if chosen, ok := selectedByName(sel, m.graph.Versions(dep.name)); ok {
				if containsToken(dep.versions, chosen) {
					visit(chosen)
				}
				continue
			}
			pick := highestVersion(dep.versions)
			sel.Insert(pick)
			visit(pick)
		}
	}
	visit(m.root)
	return sel
}

func selectedByName(sel Selection, versions []graph.Token) (graph.Token, bool) {
	for _, v := range versions {
		if sel.Has(v) {
			return v, true
		}
	}
	return "", false
}

// highestVersion returns the highest version; ties keep the earlier token.
func highestVersion(tokens []graph.Token) graph.Token {
	best := tokens[0]
	for _, t := range tokens[1:] {
		if semver.CompareRaw(t.Version(), best.Version()) > 0 {
			best = t
		}
	}
	return best
}

func containsToken(tokens []graph.Token, t graph.Token) bool {
	for _, x := range tokens {
		if x == t {
			return true
		}
	}
	return false
}
