package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"k8s.io/apimachinery/pkg/api/meta"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"sigs.k8s.io/yaml"

	gamev1alpha1 "github.com/anvil-platform/depgame/api/v1alpha1"
	"github.com/anvil-platform/depgame/internal/graph"
	"github.com/anvil-platform/depgame/internal/resolver"
	"github.com/anvil-platform/depgame/internal/scenario"
	"github.com/anvil-platform/depgame/internal/session"
)

// Report is the result of a one-shot run.
type Report struct {
	Scenario    string                 `json:"scenario"`
	Title       string                 `json:"title"`
	Selections  []SelectResult         `json:"selections,omitempty"`
	State       session.State          `json:"state"`
	Explanation []resolver.Explanation `json:"explanation,omitempty"`
	Stats       *resolver.Stats        `json:"stats,omitempty"`
	Summary     *resolver.Summary      `json:"summary,omitempty"`
	Hint        *HintReport            `json:"hint,omitempty"`
	Solutions   *SolutionsReport       `json:"solutions,omitempty"`
}

type SelectResult struct {
	Token   graph.Token     `json:"token"`
	Outcome session.Outcome `json:"outcome"`
}

type HintReport struct {
	Packages []resolver.NameVersion `json:"packages"`
	Valid    bool                   `json:"valid"`
}

type SolutionsReport struct {
	Found      [][]resolver.NameVersion `json:"found"`
	Examined   int                      `json:"examined"`
	Exhaustive bool                     `json:"exhaustive"`
}

func buildReport(s *gamev1alpha1.Scenario, sess *session.Session, cfg Config) *Report {
	r := &Report{Scenario: s.Name, Title: title(s)}
	for _, t := range tokens(cfg.Select) {
		r.Selections = append(r.Selections, SelectResult{Token: t, Outcome: sess.Select(t)})
	}
	r.State = sess.State()

	m := sess.Model()
	if cfg.Explain {
		r.Explanation = sess.Explain()
	}
	if cfg.Stats {
		stats, summary := m.Stats(), m.Summary()
		r.Stats, r.Summary = &stats, &summary
	}
	if cfg.Hint {
		hint := sess.Hint()
		r.Hint = &HintReport{Packages: resolver.SortedPairs(hint), Valid: m.Satisfied(hint)}
	}
	if cfg.Solutions > 0 {
		r.Solutions = solutionsReport(sess.Solutions(cfg.Solutions))
	}
	return r
}

func solutionsReport(e resolver.Enumeration) *SolutionsReport {
	found := make([][]resolver.NameVersion, 0, len(e.Solutions))
	for _, sol := range e.Solutions {
		found = append(found, resolver.SortedPairs(sol))
	}
	return &SolutionsReport{Found: found, Examined: e.Examined, Exhaustive: e.Exhausted}
}

// render writes v as YAML or JSON, or calls text for the text format.
func render(out io.Writer, format string, v any, text func(io.Writer) error) error {
	switch format {
	case OutputYAML:
		data, err := yaml.Marshal(v)
		if err != nil {
			return fmt.Errorf("marshal yaml: %w", err)
		}
		_, err = out.Write(data)
		return err
	case OutputJSON:
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	default:
		return text(out)
	}
}

// printer remembers the first write error so that text rendering can be
// written as a sequence of prints.
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}

func (r *Report) writeText(w io.Writer) error {
	p := &printer{w: w}
	p.printf("Scenario: %s\n", r.Title)
	p.printf("Root: %s\n", r.State.Root.Display())
	for _, s := range r.Selections {
		p.printf("select %s: %s\n", s.Token, s.Outcome)
	}
	writeState(p, r.State)
	if r.Explanation != nil {
		writeExplanation(p, r.Explanation)
	}
	if r.Stats != nil {
		writeStats(p, *r.Stats, r.Summary)
	}
	if r.Hint != nil {
		writeHint(p, r.Hint)
	}
	if r.Solutions != nil {
		writeSolutions(p, r.Solutions)
	}
	return p.err
}

func writeState(p *printer, st session.State) {
	if len(st.Selected) == 0 {
		p.printf("Selected: (none)\n")
	} else {
		p.printf("Selected: %s\n", joinTokens(st.Selected))
	}
	if st.Valid {
		p.printf("Status: ✓ ALL CONSTRAINTS SATISFIED (%d/%d clauses)\n", st.Satisfied, st.Total)
		return
	}
	p.printf("Status: ✗ CONSTRAINTS VIOLATED (%d/%d clauses)\n", st.Satisfied, st.Total)
	for _, v := range st.Violations {
		p.printf("  - %s\n", v.Message)
	}
}

var clauseHeadings = []struct {
	typ     resolver.ClauseType
	heading string
}{
	{resolver.ClauseRoot, "Root Package Constraint:"},
	{resolver.ClauseVersionConstraint, "Version Uniqueness Constraints (at most one version per package):"},
	{resolver.ClauseDependency, "Dependency Implications (if package selected, dependencies must be satisfied):"},
}

func writeExplanation(p *printer, explanation []resolver.Explanation) {
	for _, h := range clauseHeadings {
		first := true
		for _, e := range explanation {
			if e.Type != h.typ {
				continue
			}
			if first {
				p.printf("%s\n", h.heading)
				first = false
			}
			status := "✗ VIOLATED"
			if e.Satisfied {
				status = "✓ SATISFIED"
			}
			p.printf("  Term %d: %s  %s\n", e.Index, e.Formula, status)
		}
	}
}

func writeStats(p *printer, s resolver.Stats, summary *resolver.Summary) {
	p.printf("Clauses: %d  Variables: %d  Package groups: %d\n", s.TotalClauses, s.TotalVariables, s.PackageGroups)
	p.printf("Clause length: avg %.2f, min %d, max %d\n", s.AvgClauseLength, s.MinClauseLength, s.MaxClauseLength)
	if summary == nil {
		return
	}
	for _, line := range append(append(append([]string{}, summary.Root...), summary.Versions...), summary.Dependencies...) {
		p.printf("  %s\n", line)
	}
}

func writeHint(p *printer, h *HintReport) {
	verdict := "not a solution"
	if h.Valid {
		verdict = "solves the puzzle"
	}
	p.printf("Hint: %s (%s)\n", joinPairs(h.Packages), verdict)
}

func writeSolutions(p *printer, s *SolutionsReport) {
	search := "search stopped early"
	if s.Exhaustive {
		search = "search exhaustive"
	}
	p.printf("Solutions: %d found, %d candidates examined, %s\n", len(s.Found), s.Examined, search)
	if len(s.Found) == 0 {
		p.printf("  No valid solutions found.\n")
	}
	for i, sol := range s.Found {
		p.printf("  %d. %s\n", i+1, joinPairs(sol))
	}
}

func joinPairs(pairs []resolver.NameVersion) string {
	parts := make([]string, len(pairs))
	for i, nv := range pairs {
		parts[i] = nv.Name + " " + nv.Version
	}
	return strings.Join(parts, ", ")
}

func joinTokens(ts []graph.Token) string {
	parts := make([]string, len(ts))
	for i, t := range ts {
		parts[i] = string(t)
	}
	return strings.Join(parts, ", ")
}

// list assesses every scenario and prints the catalogue.
func list(out io.Writer, format string, scenarios []gamev1alpha1.Scenario, maxSolutions int) error {
	if maxSolutions < 1 {
		maxSolutions = 1
	}
	items := make([]gamev1alpha1.Scenario, len(scenarios))
	for i := range scenarios {
		items[i] = *scenarios[i].DeepCopy()
		// Invalid scenarios are reported through their Valid condition.
		_ = scenario.Assess(&items[i], maxSolutions)
	}
	l := &gamev1alpha1.ScenarioList{Items: items}
	l.APIVersion = gamev1alpha1.GroupVersion.String()
	l.Kind = "ScenarioList"

	return render(out, format, l, func(w io.Writer) error {
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "NAME\tPACKAGES\tROOT\tSOLVABLE\tDESCRIPTION")
		for _, s := range items {
			fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%s\n", s.Name, len(s.Spec.Packages), s.Spec.Root, solvable(&s), s.Spec.Description)
		}
		return tw.Flush()
	})
}

func solvable(s *gamev1alpha1.Scenario) string {
	if c := meta.FindStatusCondition(s.Status.Conditions, gamev1alpha1.ScenarioConditionValid); c != nil && c.Status != metav1.ConditionTrue {
		return c.Reason
	}
	if c := meta.FindStatusCondition(s.Status.Conditions, gamev1alpha1.ScenarioConditionSolvable); c != nil {
		return c.Reason
	}
	return "Unknown"
}
