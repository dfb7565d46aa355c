package resolver

import (
	"fmt"
	"strings"

	"github.com/anvil-platform/depgame/internal/graph"
)

// Model is the clause form of one dependency graph and root.
//
// A Model is immutable once built and safe to share between readers.
type Model struct {
	graph   *graph.DependencyGraph
	root    graph.Token
	clauses []Clause
}

// Build translates g into clauses that hold exactly when root is installable:
//
//  1. the root clause (always index 0);
//  2. pairwise version exclusion for every package with 2+ versions;
//  3. one dependency implication per (dependent node, dependency name).
//
// Build fails with a *ConfigurationError when root is not a node of g.
func Build(g *graph.DependencyGraph, root graph.Token) (*Model, error) {
	if g == nil {
		return nil, &ConfigurationError{Root: root, Err: ErrNilGraph}
	}
	if !g.Has(root) {
		return nil, &ConfigurationError{Root: root, Err: ErrRootNotInGraph}
	}

	clauses := make([]Clause, 0, 1+g.Len())
	clauses = append(clauses, rootClause(root))
	clauses = append(clauses, versionClauses(g)...)
	clauses = append(clauses, dependencyClauses(g)...)

	return &Model{graph: g, root: root, clauses: clauses}, nil
}

func (m *Model) Graph() *graph.DependencyGraph { return m.graph }

func (m *Model) Root() graph.Token { return m.root }

// Clauses returns a copy of the clause list in model order.
func (m *Model) Clauses() []Clause {
	out := make([]Clause, len(m.clauses))
	for i, c := range m.clauses {
		out[i] = c.clone()
	}
	return out
}

func (m *Model) Len() int { return len(m.clauses) }

func rootClause(root graph.Token) Clause {
	label := root.Label()
	return Clause{
		Type:        ClauseRoot,
		Literals:    []Literal{{Token: root, Polarity: true}},
		Formula:     label,
		Description: fmt.Sprintf("Root package %s must be installed", label),
	}
}

// versionClauses encodes "at most one version" as ¬(a ∧ b) for every pair,
// in group order and ascending index order within a group.
func versionClauses(g *graph.DependencyGraph) []Clause {
	var out []Clause
	for _, name := range g.PackageNames() {
		versions := g.Versions(name)
		for i := 0; i < len(versions); i++ {
			for j := i + 1; j < len(versions); j++ {
				a, b := versions[i].Label(), versions[j].Label()
				out = append(out, Clause{
					Type: ClauseVersionConstraint,
					Literals: []Literal{
						{Token: versions[i], Polarity: false},
						{Token: versions[j], Polarity: false},
					},
					Formula:     fmt.Sprintf("¬(%s ∧ %s)", a, b),
					Description: fmt.Sprintf("Cannot select both %s and %s", a, b),
				})
			}
		}
	}
	return out
}

// dependencyClauses encodes P → (d1 ∨ d2 ∨ …) for each dependency name of P.
// Edges to several versions of one package collapse into a single clause.
func dependencyClauses(g *graph.DependencyGraph) []Clause {
	var out []Clause
	for _, p := range g.Nodes() {
		for _, dep := range groupByName(g.Successors(p)) {
			literals := make([]Literal, 0, 1+len(dep.versions))
			literals = append(literals, Literal{Token: p, Polarity: false})
			labels := make([]string, len(dep.versions))
			for i, d := range dep.versions {
				literals = append(literals, Literal{Token: d, Polarity: true})
				labels[i] = d.Label()
			}

			target := labels[0]
			if len(labels) > 1 {
				target = "(" + strings.Join(labels, " ∨ ") + ")"
			}
			out = append(out, Clause{
				Type:        ClauseDependency,
				Literals:    literals,
				Formula:     fmt.Sprintf("%s → %s", p.Label(), target),
				Description: fmt.Sprintf("If %s is selected, then %s must be selected", p.Label(), target),
			})
		}
	}
	return out
}

type depGroup struct {
	name     string
	versions []graph.Token
}

// groupByName groups tokens by package name, keeping first-appearance order
// for names and input order within a name.
func groupByName(tokens []graph.Token) []depGroup {
	var groups []depGroup
	index := make(map[string]int)
	for _, t := range tokens {
		name := t.Name()
		i, ok := index[name]
		if !ok {
			i = len(groups)
			index[name] = i
			groups = append(groups, depGroup{name: name})
		}
		groups[i].versions = append(groups[i].versions, t)
	}
	return groups
}
