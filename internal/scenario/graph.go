package scenario

import (
	"fmt"

	gamev1alpha1 "github.com/anvil-platform/depgame/api/v1alpha1"
	"github.com/anvil-platform/depgame/internal/graph"
)

// Graph validates s and converts it into a dependency graph and root token.
// Version-range dependencies expand into one edge per matching package.
func Graph(s *gamev1alpha1.Scenario) (*graph.DependencyGraph, graph.Token, error) {
	if errs := Validate(s); len(errs) > 0 {
		return nil, "", fmt.Errorf("scenario %q is invalid: %w", s.Name, errs.ToAggregate())
	}

	nodes := make([]graph.Token, len(s.Spec.Packages))
	for i, p := range s.Spec.Packages {
		nodes[i] = graph.Token(p)
	}

	var edges []graph.Edge
	for _, d := range s.Spec.Dependencies {
		from := graph.Token(d.From)
		if d.To != "" {
			edges = append(edges, graph.Edge{From: from, To: graph.Token(d.To)})
			continue
		}
		targets, err := matchConstraint(d.Package, d.Constraint, s.Spec.Packages)
		if err != nil {
			return nil, "", fmt.Errorf("scenario %q: %w", s.Name, err)
		}
		for _, t := range targets {
			edges = append(edges, graph.Edge{From: from, To: t})
		}
	}

	g, err := graph.New(nodes, edges)
	if err != nil {
		return nil, "", fmt.Errorf("scenario %q: %w", s.Name, err)
	}
	return g, graph.Token(s.Spec.Root), nil
}
