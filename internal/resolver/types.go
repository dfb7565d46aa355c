package resolver

import (
	"strings"

	"k8s.io/apimachinery/pkg/util/sets"

	"github.com/anvil-platform/depgame/internal/graph"
)

// Selection is a set of chosen package tokens.
type Selection = sets.Set[graph.Token]

// NewSelection returns a Selection holding tokens.
func NewSelection(tokens ...graph.Token) Selection {
	return sets.New(tokens...)
}

type ClauseType string

const (
	ClauseRoot              ClauseType = "root"
	ClauseVersionConstraint ClauseType = "version_constraint"
	ClauseDependency        ClauseType = "dependency"
)

// Literal is satisfied when the token's membership in a selection equals Polarity.
type Literal struct {
	Token    graph.Token `json:"token"`
	Polarity bool        `json:"polarity"`
}

func (l Literal) Satisfied(sel Selection) bool {
	return sel.Has(l.Token) == l.Polarity
}

// Clause is a disjunction of literals together with its display metadata.
type Clause struct {
	Type        ClauseType `json:"type"`
	Literals    []Literal  `json:"literals"`
	Formula     string     `json:"formula"`
	Description string     `json:"description"`
}

// String renders the raw disjunction, e.g. "¬A(2.0) ∨ B(1.3)".
func (c Clause) String() string {
	parts := make([]string, len(c.Literals))
	for i, l := range c.Literals {
		name, version := graph.Parse(l.Token)
		lit := name + "(" + version + ")"
		if !l.Polarity {
			lit = "¬" + lit
		}
		parts[i] = lit
	}
	return strings.Join(parts, " ∨ ")
}

func (c Clause) clone() Clause {
	c.Literals = append([]Literal(nil), c.Literals...)
	return c
}

// Evaluation is the outcome of checking a selection against every clause.
//
// Results is indexed like Model.Clauses.
type Evaluation struct {
	Satisfied bool
	Results   []bool
}

// Explanation describes one clause and whether the selection satisfies it.
//
// Index is 1-based, matching how clauses are numbered for players.
type Explanation struct {
	Index       int        `json:"index"`
	Formula     string     `json:"formula"`
	Description string     `json:"description"`
	Satisfied   bool       `json:"satisfied"`
	Type        ClauseType `json:"type"`
}

// Enumeration is the result of a bounded solution search.
type Enumeration struct {
	Solutions []Selection
	// Examined counts candidate selections visited, including those skipped
	// because they lack the root.
	Examined int
	// Exhausted is true when every subset of the nodes was visited, so the
	// solutions found are all the solutions there are (up to the requested max).
	Exhausted bool
}

// NameVersion is a display pair for one selected token.
type NameVersion struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// Stats summarises the size of a clause model.
type Stats struct {
	TotalClauses    int     `json:"totalClauses"`
	TotalVariables  int     `json:"totalVariables"`
	PackageGroups   int     `json:"packageGroups"`
	AvgClauseLength float64 `json:"avgClauseLength"`
	MaxClauseLength int     `json:"maxClauseLength"`
	MinClauseLength int     `json:"minClauseLength"`
}

// Summary is a plain-language description of the constraints, per category.
type Summary struct {
	Root         []string `json:"root"`
	Versions     []string `json:"versions"`
	Dependencies []string `json:"dependencies"`
}

type ViolationKind string

const (
	ViolationRootMissing      ViolationKind = "RootMissing"
	ViolationMultipleVersions ViolationKind = "MultipleVersions"
	ViolationUnmetDependency  ViolationKind = "UnmetDependency"
	ViolationWrongDependency  ViolationKind = "WrongDependencyVersion"
)

// Violation is one reason a selection is not a solution.
type Violation struct {
	Kind       ViolationKind `json:"kind"`
	Package    string        `json:"package"`
	Dependency string        `json:"dependency,omitempty"`
	Message    string        `json:"message"`
}
