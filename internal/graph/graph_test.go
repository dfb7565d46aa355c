package graph

import (
	"errors"
	"reflect"
	"testing"
)

func TestNew_GroupsVersionsByName(t *testing.T) {
	g, err := New(
		[]Token{"A==2.0", "B==1.3", "B==1.4", "G==0.5", "G==0.6", "G==0.7"},
		[]Edge{{"A==2.0", "B==1.3"}, {"B==1.3", "G==0.5"}},
	)
	if err != nil {
		t.Fatalf("New error: %v", err)
	}

	if got, want := g.PackageNames(), []string{"A", "B", "G"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("expected names %v, got %v", want, got)
	}
	if got, want := g.Versions("G"), []Token{"G==0.5", "G==0.6", "G==0.7"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("expected versions %v, got %v", want, got)
	}
	if g.Len() != 6 || g.EdgeCount() != 2 {
		t.Fatalf("expected 6 nodes and 2 edges, got %d and %d", g.Len(), g.EdgeCount())
	}
	if i, ok := g.Index("B==1.4"); !ok || i != 2 {
		t.Fatalf("expected B==1.4 at index 2, got %d (ok=%v)", i, ok)
	}
}

func TestNew_CollapsesDuplicates(t *testing.T) {
	g, err := New(
		[]Token{"a==1.0", "b==1.0", "a==1.0"},
		[]Edge{{"a==1.0", "b==1.0"}, {"a==1.0", "b==1.0"}},
	)
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	if g.Len() != 2 {
		t.Fatalf("expected duplicate node collapsed, got %d nodes", g.Len())
	}
	if got := g.Successors("a==1.0"); len(got) != 1 {
		t.Fatalf("expected duplicate edge collapsed, got %v", got)
	}
}

func TestNew_AllowsCycles(t *testing.T) {
	g, err := New(
		[]Token{"x==1.0", "y==1.0"},
		[]Edge{{"x==1.0", "y==1.0"}, {"y==1.0", "x==1.0"}, {"x==1.0", "x==1.0"}},
	)
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	if got, want := g.Successors("x==1.0"), []Token{"y==1.0", "x==1.0"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("expected successors %v, got %v", want, got)
	}
}

func TestNew_RejectsUnknownEndpoints(t *testing.T) {
	_, err := New([]Token{"a==1.0"}, []Edge{{"a==1.0", "b==1.0"}})
	if err == nil {
		t.Fatalf("expected error for unknown target")
	}
	if !errors.Is(err, ErrInvalidGraph) {
		t.Fatalf("expected ErrInvalidGraph, got %v", err)
	}

	_, err = New([]Token{"a==1.0"}, []Edge{{"z==1.0", "a==1.0"}})
	var gerr *GraphError
	if !errors.As(err, &gerr) {
		t.Fatalf("expected *GraphError, got %T", err)
	}
}

func TestNew_RejectsEmptyToken(t *testing.T) {
	if _, err := New([]Token{""}, nil); !errors.Is(err, ErrInvalidGraph) {
		t.Fatalf("expected ErrInvalidGraph, got %v", err)
	}
}

func TestAccessorsReturnCopies(t *testing.T) {
	g, err := New([]Token{"a==1.0", "b==1.0"}, []Edge{{"a==1.0", "b==1.0"}})
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	nodes := g.Nodes()
	nodes[0] = "mutated"
	if !g.Has("a==1.0") || g.Nodes()[0] != "a==1.0" {
		t.Fatalf("expected graph to be unaffected by caller mutation")
	}
	var nilGraph *DependencyGraph
	if nilGraph.Has("a==1.0") {
		t.Fatalf("expected nil graph to have no nodes")
	}
}
