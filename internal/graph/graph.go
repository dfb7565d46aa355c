// Package graph models the package dependency graph a puzzle is played on.
//
// A graph is built once per scenario and is read-only afterwards. Node order
// and edge order are preserved because the clause model derived from the graph
// must be reproducible.
package graph

// Edge is a dependency of From on To.
type Edge struct {
	From Token `json:"from"`
	To   Token `json:"to"`
}

// DependencyGraph is an immutable set of package tokens and the ordered
// dependency edges between them. Cycles and self-loops are allowed.
type DependencyGraph struct {
	nodes      []Token
	index      map[Token]int
	edges      []Edge
	successors map[Token][]Token

	// Package groups: names in first-appearance order, versions in node order.
	names  []string
	groups map[string][]Token
}

// New builds a graph from nodes and edges.
//
// Repeated nodes and repeated edges are collapsed onto their first occurrence.
// Every edge endpoint must be one of the nodes.
func New(nodes []Token, edges []Edge) (*DependencyGraph, error) {
	g := &DependencyGraph{
		nodes:      make([]Token, 0, len(nodes)),
		index:      make(map[Token]int, len(nodes)),
		successors: make(map[Token][]Token),
		groups:     make(map[string][]Token),
	}

	for i, n := range nodes {
		if n == "" {
			return nil, invalidf("node %d: empty package token", i)
		}
		if _, dup := g.index[n]; dup {
			continue
		}
		g.index[n] = len(g.nodes)
		g.nodes = append(g.nodes, n)

		name := n.Name()
		if _, seen := g.groups[name]; !seen {
			g.names = append(g.names, name)
		}
		g.groups[name] = append(g.groups[name], n)
	}

	seen := make(map[Edge]struct{}, len(edges))
	for i, e := range edges {
		if _, ok := g.index[e.From]; !ok {
			return nil, invalidf("edge %d: source %q is not a node", i, e.From)
		}
		if _, ok := g.index[e.To]; !ok {
			return nil, invalidf("edge %d: target %q is not a node", i, e.To)
		}
		if _, dup := seen[e]; dup {
			continue
		}
		seen[e] = struct{}{}
		g.edges = append(g.edges, e)
		g.successors[e.From] = append(g.successors[e.From], e.To)
	}

	return g, nil
}

// Nodes returns the nodes in insertion order.
func (g *DependencyGraph) Nodes() []Token {
	return append([]Token(nil), g.nodes...)
}

// Edges returns the edges in insertion order.
func (g *DependencyGraph) Edges() []Edge {
	return append([]Edge(nil), g.edges...)
}

func (g *DependencyGraph) Len() int { return len(g.nodes) }

func (g *DependencyGraph) EdgeCount() int { return len(g.edges) }

// Has reports whether t is a node of the graph.
func (g *DependencyGraph) Has(t Token) bool {
	if g == nil {
		return false
	}
	_, ok := g.index[t]
	return ok
}

// Index returns the position of t in node order.
func (g *DependencyGraph) Index(t Token) (int, bool) {
	i, ok := g.index[t]
	return i, ok
}

// Successors returns the direct dependencies of t in edge order.
func (g *DependencyGraph) Successors(t Token) []Token {
	return append([]Token(nil), g.successors[t]...)
}

// PackageNames returns every package name in order of first appearance.
func (g *DependencyGraph) PackageNames() []string {
	return append([]string(nil), g.names...)
}

// Versions returns the tokens that share the package name, in node order.
func (g *DependencyGraph) Versions(name string) []Token {
	return append([]Token(nil), g.groups[name]...)
}
