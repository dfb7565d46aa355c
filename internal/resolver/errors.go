package resolver

import (
	"errors"
	"fmt"

	"github.com/anvil-platform/depgame/internal/graph"
)

var (
	// ErrRootNotInGraph indicates the designated root package is not a node of the graph.
	ErrRootNotInGraph = errors.New("root package not found in dependency graph")
	// ErrNilGraph indicates no graph was supplied.
	ErrNilGraph = errors.New("dependency graph is nil")
)

// ConfigurationError reports a graph/root pair a model cannot be built from.
type ConfigurationError struct {
	Root graph.Token
	Err  error
}

func (e *ConfigurationError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("configuration error: root %q: %v", e.Root, e.Err)
}

func (e *ConfigurationError) Unwrap() error { return e.Err }
