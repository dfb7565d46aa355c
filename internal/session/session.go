// Package session holds a player's selection for one puzzle.
//
// A Session owns its selection and is not safe for concurrent use. It
// refuses selections that would put two versions of a package side by side,
// and defers every other rule to the resolver's clause model.
package session

import (
	"fmt"
	"strconv"
	"time"

	"github.com/go-logr/logr"
	"k8s.io/apimachinery/pkg/util/sets"
	"sigs.k8s.io/controller-runtime/pkg/log"

	"github.com/anvil-platform/depgame/internal/graph"
	"github.com/anvil-platform/depgame/internal/resolver"
)

// Outcome is the result of a selection attempt.
type Outcome string

const (
	Accepted        Outcome = "Accepted"
	VersionConflict Outcome = "VersionConflict"
	InvalidToken    Outcome = "InvalidToken"
)

// Session is a single player's game state.
type Session struct {
	model    *resolver.Model
	selected resolver.Selection
	log      logr.Logger
}

type Option func(*Session)

// WithLogger sets the logger used for session events.
func WithLogger(l logr.Logger) Option {
	return func(s *Session) { s.log = l }
}

// New builds the clause model for g and root and starts an empty session.
func New(g *graph.DependencyGraph, root graph.Token, opts ...Option) (*Session, error) {
	m, err := resolver.Build(g, root)
	if err != nil {
		return nil, fmt.Errorf("new session: %w", err)
	}
	return NewFromModel(m, opts...), nil
}

// NewFromModel starts an empty session on an already built model. The model
// may be shared between sessions.
func NewFromModel(m *resolver.Model, opts ...Option) *Session {
	s := &Session{
		model:    m,
		selected: resolver.NewSelection(),
		log:      log.Log.WithName("session"),
	}
	for _, o := range opts {
		o(s)
	}
	s.log = s.log.WithValues("root", m.Root())
	sessionsCreatedTotal.Inc()
	return s
}

func (s *Session) Model() *resolver.Model { return s.model }

// Select adds t to the selection. The selection is left unchanged unless
// the outcome is Accepted.
func (s *Session) Select(t graph.Token) Outcome {
	outcome := s.trySelect(t)
	sessionSelectTotal.WithLabelValues(string(outcome)).Inc()
	s.log.V(1).Info("select", "token", t, "outcome", outcome)
	return outcome
}

func (s *Session) trySelect(t graph.Token) Outcome {
	if !s.model.Graph().Has(t) {
		return InvalidToken
	}
	if _, conflict := s.ConflictFor(t); conflict {
		return VersionConflict
	}
	s.selected.Insert(t)
	return Accepted
}

// ConflictFor returns the selected token that shares t's package name, if
// any. A token that is already selected conflicts with itself.
func (s *Session) ConflictFor(t graph.Token) (graph.Token, bool) {
	name := t.Name()
	for _, sel := range sets.List(s.selected) {
		if sel.Name() == name {
			return sel, true
		}
	}
	return "", false
}

// Deselect removes t and reports whether it was selected.
func (s *Session) Deselect(t graph.Token) bool {
	if !s.selected.Has(t) {
		return false
	}
	s.selected.Delete(t)
	s.log.V(1).Info("deselect", "token", t)
	return true
}

// Toggle deselects t when it is selected and selects it otherwise.
func (s *Session) Toggle(t graph.Token) Outcome {
	if s.Deselect(t) {
		return Accepted
	}
	return s.Select(t)
}

// Reset clears the selection.
func (s *Session) Reset() {
	s.selected.Clear()
	s.log.V(1).Info("reset")
}

// IsValid reports whether the current selection satisfies every clause.
func (s *Session) IsValid() bool {
	valid := s.model.Satisfied(s.selected)
	sessionValidityChecksTotal.WithLabelValues(strconv.FormatBool(valid)).Inc()
	return valid
}

// Selected returns the selected tokens in sorted order.
func (s *Session) Selected() []graph.Token {
	return sets.List(s.selected)
}

// Selection returns a copy of the current selection.
func (s *Session) Selection() resolver.Selection {
	return s.selected.Clone()
}

func (s *Session) Explain() []resolver.Explanation {
	return s.model.Explain(s.selected)
}

func (s *Session) Violations() []resolver.Violation {
	return s.model.Violations(s.selected)
}

func (s *Session) Installable() []graph.Token {
	return s.model.Installable(s.selected)
}

// Hint suggests a selection without changing the session.
func (s *Session) Hint() resolver.Selection {
	return s.model.Hint()
}

// ApplyHint replaces the selection with the model's hint and reports
// whether the result is a solution.
func (s *Session) ApplyHint() bool {
	s.selected = s.model.Hint()
	s.log.V(1).Info("applied hint", "selected", len(s.selected))
	return s.IsValid()
}

// Solutions runs the bounded solution search.
func (s *Session) Solutions(maxCount int) resolver.Enumeration {
	start := time.Now()
	e := s.model.Enumerate(maxCount)
	enumerationDuration.Observe(time.Since(start).Seconds())
	enumerationCandidatesTotal.Add(float64(e.Examined))
	enumerationSolutionsTotal.Add(float64(len(e.Solutions)))
	s.log.V(1).Info("enumerated solutions", "found", len(e.Solutions), "examined", e.Examined, "exhausted", e.Exhausted)
	return e
}

// State is a snapshot of a session for display.
type State struct {
	Root       graph.Token          `json:"root"`
	Selected   []graph.Token        `json:"selected"`
	Valid      bool                 `json:"valid"`
	Satisfied  int                  `json:"satisfiedClauses"`
	Total      int                  `json:"totalClauses"`
	Violations []resolver.Violation `json:"violations,omitempty"`
}

func (s *Session) State() State {
	ev := s.model.Evaluate(s.selected)
	satisfied := 0
	for _, ok := range ev.Results {
		if ok {
			satisfied++
		}
	}
	return State{
		Root:       s.model.Root(),
		Selected:   s.Selected(),
		Valid:      ev.Satisfied,
		Satisfied:  satisfied,
		Total:      len(ev.Results),
		Violations: s.model.Violations(s.selected),
	}
}
