// Package resolver turns a package dependency graph into propositional
// clauses and answers installability questions against them: whether a
// selection satisfies every clause, which clauses fail, and which selections
// are solutions.
//
// The search is deliberately brute force and bounded by MaxCandidates; it is
// not a SAT solver.
package resolver

import "github.com/anvil-platform/depgame/internal/graph"

// EvaluateAll builds the model for g and root and evaluates sel against it.
func EvaluateAll(g *graph.DependencyGraph, root graph.Token, sel Selection) (Evaluation, error) {
	m, err := Build(g, root)
	if err != nil {
		return Evaluation{}, err
	}
	return m.Evaluate(sel), nil
}

// Explain builds the model for g and root and explains sel against it.
func Explain(g *graph.DependencyGraph, root graph.Token, sel Selection) ([]Explanation, error) {
	m, err := Build(g, root)
	if err != nil {
		return nil, err
	}
	return m.Explain(sel), nil
}

// FindSolutions builds the model for g and root and returns up to maxCount solutions.
func FindSolutions(g *graph.DependencyGraph, root graph.Token, maxCount int) ([]Selection, error) {
	m, err := Build(g, root)
	if err != nil {
		return nil, err
	}
	return m.FindSolutions(maxCount), nil
}
