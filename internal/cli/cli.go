// Package cli implements the depgame command line: one-shot reports and an
// interactive prompt over a single game session.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/go-logr/logr"
	"sigs.k8s.io/controller-runtime/pkg/log"

	gamev1alpha1 "github.com/anvil-platform/depgame/api/v1alpha1"
	"github.com/anvil-platform/depgame/internal/graph"
	"github.com/anvil-platform/depgame/internal/scenario"
	"github.com/anvil-platform/depgame/internal/session"
)

const (
	OutputText = "text"
	OutputYAML = "yaml"
	OutputJSON = "json"

	DefaultSolutions = 5
)

var (
	ErrUnknownScenario = errors.New("unknown scenario")
	ErrUnknownOutput   = errors.New("unknown output format")
	ErrNoScenarios     = errors.New("no scenarios available")
)

// Config holds the options of one depgame invocation.
type Config struct {
	// Scenario names the puzzle to play. Empty selects the first one.
	Scenario string
	// File replaces the built-in puzzles with the scenarios stored in it.
	File string
	List bool

	Select    []string
	Explain   bool
	Solutions int
	Hint      bool
	Stats     bool

	Interactive bool
	Output      string

	Logger logr.Logger
}

func (c *Config) validate() error {
	switch c.Output {
	case "":
		c.Output = OutputText
	case OutputText, OutputYAML, OutputJSON:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownOutput, c.Output)
	}
	if c.Logger.GetSink() == nil {
		c.Logger = log.Log.WithName("depgame")
	}
	return nil
}

// Run executes cfg, reading interactive commands from in and writing
// everything it prints to out.
func Run(ctx context.Context, cfg Config, in io.Reader, out io.Writer) error {
	if err := cfg.validate(); err != nil {
		return err
	}

	scenarios, err := catalogue(cfg.File)
	if err != nil {
		return err
	}
	if cfg.List {
		return list(out, cfg.Output, scenarios, cfg.Solutions)
	}

	s, err := find(scenarios, cfg.Scenario)
	if err != nil {
		return err
	}
	g, root, err := scenario.Graph(s)
	if err != nil {
		return err
	}
	logger := cfg.Logger.WithValues("scenario", s.Name)
	sess, err := session.New(g, root, session.WithLogger(logger))
	if err != nil {
		return err
	}
	logger.V(1).Info("session started", "packages", g.Len(), "clauses", sess.Model().Len())

	if cfg.Interactive {
		return interactive(ctx, s, sess, in, out)
	}
	r := buildReport(s, sess, cfg)
	return render(out, cfg.Output, r, r.writeText)
}

func catalogue(file string) ([]gamev1alpha1.Scenario, error) {
	if file == "" {
		return scenario.Builtin(), nil
	}
	scenarios, err := scenario.LoadFile(file)
	if err != nil {
		return nil, err
	}
	if len(scenarios) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoScenarios, file)
	}
	return scenarios, nil
}

func find(scenarios []gamev1alpha1.Scenario, name string) (*gamev1alpha1.Scenario, error) {
	if len(scenarios) == 0 {
		return nil, ErrNoScenarios
	}
	if name == "" {
		return &scenarios[0], nil
	}
	for i := range scenarios {
		if scenarios[i].Name == name {
			return &scenarios[i], nil
		}
	}
	names := make([]string, len(scenarios))
	for i, s := range scenarios {
		names[i] = s.Name
	}
	return nil, fmt.Errorf("%w %q (available: %s)", ErrUnknownScenario, name, strings.Join(names, ", "))
}

// SplitList splits a comma separated flag value, dropping empty entries.
func SplitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func title(s *gamev1alpha1.Scenario) string {
	if s.Spec.DisplayName == "" {
		return s.Name
	}
	return fmt.Sprintf("%s (%s)", s.Spec.DisplayName, s.Name)
}

func tokens(raw []string) []graph.Token {
	out := make([]graph.Token, len(raw))
	for i, r := range raw {
		out[i] = graph.Token(r)
	}
	return out
}
