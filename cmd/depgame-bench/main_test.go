package main

import (
	"testing"

	"github.com/anvil-platform/depgame/internal/resolver"
	"github.com/anvil-platform/depgame/internal/scenario"
)

func TestLayered(t *testing.T) {
	s := layered(3, 2)
	g, root, err := scenario.Graph(s)
	if err != nil {
		t.Fatalf("Graph error: %v", err)
	}
	if root != "app==1.0.0" || g.Len() != 7 {
		t.Fatalf("unexpected graph: root=%q nodes=%d", root, g.Len())
	}
	// 2 root edges, then 2x2 between each pair of adjacent layers.
	if g.EdgeCount() != 10 {
		t.Fatalf("expected 10 edges, got %d", g.EdgeCount())
	}
}

func TestPlay(t *testing.T) {
	g, root, err := scenario.Graph(layered(3, 2))
	if err != nil {
		t.Fatalf("Graph error: %v", err)
	}
	m, err := resolver.Build(g, root)
	if err != nil {
		t.Fatalf("Build error: %v", err)
	}

	results := play(m, 4, 3)
	if len(results) != 4 {
		t.Fatalf("expected 4 results, got %d", len(results))
	}
	for _, r := range results {
		if !r.hintValid {
			t.Fatalf("expected the hint to solve a layered scenario")
		}
		if r.solutions != 3 {
			t.Fatalf("expected 3 solutions, got %d", r.solutions)
		}
	}
}
