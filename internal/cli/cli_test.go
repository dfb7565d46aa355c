package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/go-logr/logr/testr"
	"sigs.k8s.io/yaml"

	gamev1alpha1 "github.com/anvil-platform/depgame/api/v1alpha1"
	"github.com/anvil-platform/depgame/internal/session"
)

func run(t *testing.T, cfg Config, input string) string {
	t.Helper()
	cfg.Logger = testr.New(t)
	var out bytes.Buffer
	if err := Run(context.Background(), cfg, strings.NewReader(input), &out); err != nil {
		t.Fatalf("Run error: %v", err)
	}
	return out.String()
}

func TestRun_TextReport(t *testing.T) {
	out := run(t, Config{
		Scenario:  "boolean-logic",
		Select:    []string{"A==2.0", "B==1.3", "G==0.6"},
		Explain:   true,
		Stats:     true,
		Hint:      true,
		Solutions: 5,
	}, "")

	for _, want := range []string{
		"Scenario: Boolean Logic (boolean-logic)",
		"Root: A v2.0",
		"select B==1.3: Accepted",
		"Status: ✓ ALL CONSTRAINTS SATISFIED (9/9 clauses)",
		"Root Package Constraint:",
		"  Term 1: A2.0  ✓ SATISFIED",
		"Clauses: 9  Variables: 6  Package groups: 3",
		"Hint: A 2.0, B 1.4, G 0.7 (solves the puzzle)",
		"Solutions: 2 found, 64 candidates examined, search exhaustive",
		"  1. A 2.0, B 1.3, G 0.6",
		"  2. A 2.0, B 1.4, G 0.7",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected output to contain %q, got:\n%s", want, out)
		}
	}
}

func TestRun_ViolationsInText(t *testing.T) {
	out := run(t, Config{Scenario: "boolean-logic", Select: []string{"A==2.0"}}, "")
	if !strings.Contains(out, "Status: ✗ CONSTRAINTS VIOLATED") {
		t.Fatalf("expected violated status, got:\n%s", out)
	}
	if !strings.Contains(out, "  - A==2.0 requires B but it's not selected") {
		t.Fatalf("expected unmet dependency message, got:\n%s", out)
	}
}

func TestRun_JSONReport(t *testing.T) {
	out := run(t, Config{
		Scenario:  "torch-gpu-stack",
		Select:    []string{"torch==2.3.1", "cuda==12.1", "cuda==11.8"},
		Solutions: 5,
		Output:    OutputJSON,
	}, "")

	var r Report
	if err := json.Unmarshal([]byte(out), &r); err != nil {
		t.Fatalf("unmarshal: %v\n%s", err, out)
	}
	outcomes := make([]session.Outcome, len(r.Selections))
	for i, s := range r.Selections {
		outcomes[i] = s.Outcome
	}
	want := []session.Outcome{session.Accepted, session.Accepted, session.VersionConflict}
	if !reflect.DeepEqual(outcomes, want) {
		t.Fatalf("expected outcomes %v, got %v", want, outcomes)
	}
	if r.State.Valid || len(r.State.Selected) != 2 {
		t.Fatalf("unexpected state %+v", r.State)
	}
	if r.Solutions == nil || len(r.Solutions.Found) != 0 || !r.Solutions.Exhaustive {
		t.Fatalf("expected exhaustive empty solutions, got %+v", r.Solutions)
	}
}

func TestRun_YAMLReport(t *testing.T) {
	out := run(t, Config{Scenario: "simple-web-app", Output: OutputYAML}, "")
	var r Report
	if err := yaml.Unmarshal([]byte(out), &r); err != nil {
		t.Fatalf("unmarshal: %v\n%s", err, out)
	}
	if r.Scenario != "simple-web-app" || r.State.Root != "myapp==1.0.0" {
		t.Fatalf("unexpected report %+v", r)
	}
}

func TestRun_List(t *testing.T) {
	out := run(t, Config{List: true}, "")
	for _, want := range []string{"NAME", "boolean-logic", "data-science-stack", "SolutionFound"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected list to contain %q, got:\n%s", want, out)
		}
	}
	for _, line := range strings.Split(out, "\n") {
		if strings.HasPrefix(line, "torch-gpu-stack") && !strings.Contains(line, "Unsatisfiable") {
			t.Fatalf("expected torch scenario to be unsatisfiable, got %q", line)
		}
	}
}

func TestRun_ListYAML(t *testing.T) {
	out := run(t, Config{List: true, Output: OutputYAML}, "")
	var l gamev1alpha1.ScenarioList
	if err := yaml.Unmarshal([]byte(out), &l); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if l.Kind != "ScenarioList" || len(l.Items) != 4 {
		t.Fatalf("unexpected list %s with %d items", l.Kind, len(l.Items))
	}
	if l.Items[0].Status.Solutions != 1 {
		t.Fatalf("expected assessment to record one solution, got %d", l.Items[0].Status.Solutions)
	}
}

func TestRun_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "board.yaml")
	data := `apiVersion: game.platform/v1alpha1
kind: Scenario
metadata:
  name: tiny
spec:
  root: app==1.0
  packages: [app==1.0, lib==1.0]
  dependencies:
  - from: app==1.0
    to: lib==1.0
`
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	out := run(t, Config{File: path, Select: []string{"app==1.0", "lib==1.0"}}, "")
	if !strings.Contains(out, "Scenario: tiny") || !strings.Contains(out, "ALL CONSTRAINTS SATISFIED") {
		t.Fatalf("unexpected output:\n%s", out)
	}
}

func TestRun_Errors(t *testing.T) {
	var out bytes.Buffer
	err := Run(context.Background(), Config{Scenario: "nope"}, strings.NewReader(""), &out)
	if !errors.Is(err, ErrUnknownScenario) {
		t.Fatalf("expected ErrUnknownScenario, got %v", err)
	}
	err = Run(context.Background(), Config{Output: "xml"}, strings.NewReader(""), &out)
	if !errors.Is(err, ErrUnknownOutput) {
		t.Fatalf("expected ErrUnknownOutput, got %v", err)
	}
}

func TestRun_Interactive(t *testing.T) {
	script := strings.Join([]string{
		"select A==2.0 B==1.3",
		"select B==1.4",
		"select nope==1.0",
		"",
		"select G==0.6",
		"solutions 1",
		"bogus",
		"quit",
		"select G==0.5",
	}, "\n")
	out := run(t, Config{Scenario: "boolean-logic", Interactive: true}, script)

	for _, want := range []string{
		"A==2.0: Accepted",
		"B==1.4: VersionConflict (B==1.3 is already selected)",
		"nope==1.0: InvalidToken (no such package)",
		"Congratulations",
		"Solutions: 1 found",
		`unknown command "bogus"`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected output to contain %q, got:\n%s", want, out)
		}
	}
	if strings.Contains(out, "G==0.5") {
		t.Fatalf("expected commands after quit to be ignored, got:\n%s", out)
	}
}

func TestRun_InteractiveHintAndState(t *testing.T) {
	out := run(t, Config{Scenario: "boolean-logic", Interactive: true}, "hint apply\nstate\ndeselect G==0.7\ndeselect G==0.7\nreset\ncheck\n")
	for _, want := range []string{
		"Status: ✓ ALL CONSTRAINTS SATISFIED",
		"valid: true",
		"G==0.7: removed",
		"G==0.7: not selected",
		"Selection cleared.",
		"Selected: (none)",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected output to contain %q, got:\n%s", want, out)
		}
	}
}

func TestSplitList(t *testing.T) {
	got := SplitList(" A==2.0, ,B==1.3,")
	want := []string{"A==2.0", "B==1.3"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	if SplitList("") != nil {
		t.Fatalf("expected nil for empty input")
	}
}

func TestMetricsHandler(t *testing.T) {
	run(t, Config{Scenario: "boolean-logic", Select: []string{"A==2.0"}}, "")

	rec := httptest.NewRecorder()
	MetricsHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{"depgame_sessions_created_total", `depgame_session_select_total{outcome="Accepted"}`} {
		if !strings.Contains(body, want) {
			t.Fatalf("expected metrics to contain %q", want)
		}
	}
}
