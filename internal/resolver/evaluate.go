package resolver

// EvaluateClause reports whether at least one literal of c holds for sel.
func EvaluateClause(c Clause, sel Selection) bool {
	for _, l := range c.Literals {
		if l.Satisfied(sel) {
			return true
		}
	}
	return false
}

// Evaluate checks sel against every clause, in model order.
//
// An empty selection never satisfies the model because of the root clause.
func (m *Model) Evaluate(sel Selection) Evaluation {
	results := make([]bool, len(m.clauses))
	all := true
	for i, c := range m.clauses {
		results[i] = EvaluateClause(c, sel)
		all = all && results[i]
	}
	return Evaluation{Satisfied: all, Results: results}
}

// Satisfied is Evaluate without the per-clause detail.
func (m *Model) Satisfied(sel Selection) bool {
	for _, c := range m.clauses {
		if !EvaluateClause(c, sel) {
			return false
		}
	}
	return true
}

// Explain evaluates sel and pairs every result with the clause's display text.
func (m *Model) Explain(sel Selection) []Explanation {
	out := make([]Explanation, len(m.clauses))
	for i, c := range m.clauses {
		out[i] = Explanation{
			Index:       i + 1,
			Formula:     c.Formula,
			Description: c.Description,
			Satisfied:   EvaluateClause(c, sel),
			Type:        c.Type,
		}
	}
	return out
}
