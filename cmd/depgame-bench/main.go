package main

import (
	"flag"
	"fmt"
	"os"
	"sync"
	"time"

	"k8s.io/apimachinery/pkg/util/sets"
	"sigs.k8s.io/controller-runtime/pkg/log"
	"sigs.k8s.io/controller-runtime/pkg/log/zap"

	gamev1alpha1 "github.com/anvil-platform/depgame/api/v1alpha1"
	"github.com/anvil-platform/depgame/internal/resolver"
	"github.com/anvil-platform/depgame/internal/scenario"
	"github.com/anvil-platform/depgame/internal/session"
)

var setupLog = log.Log.WithName("bench")

// result is what one simulated player reports.
type result struct {
	latency   time.Duration
	hintValid bool
	solutions int
	examined  int
}

func main() {
	var numSessions int
	var scenarioName string
	var layers int
	var versions int
	var maxSolutions int

	flag.IntVar(&numSessions, "sessions", 10, "Number of concurrent sessions to play")
	flag.StringVar(&scenarioName, "scenario", "boolean-logic", "Built-in scenario to play")
	flag.IntVar(&layers, "layers", 0, "Play a generated layered scenario with this many packages instead")
	flag.IntVar(&versions, "versions", 2, "Versions per package in a generated scenario")
	flag.IntVar(&maxSolutions, "max-solutions", 20, "Solutions each session searches for")

	opts := zap.Options{}
	opts.BindFlags(flag.CommandLine)
	flag.Parse()
	log.SetLogger(zap.New(zap.UseFlagOptions(&opts)))

	var s *gamev1alpha1.Scenario
	if layers > 0 {
		s = layered(layers, versions)
	} else {
		var ok bool
		if s, ok = scenario.Lookup(scenarioName); !ok {
			setupLog.Error(fmt.Errorf("unknown scenario %q", scenarioName), "unable to load scenario")
			os.Exit(1)
		}
	}
	g, root, err := scenario.Graph(s)
	if err != nil {
		setupLog.Error(err, "invalid scenario", "scenario", s.Name)
		os.Exit(1)
	}
	m, err := resolver.Build(g, root)
	if err != nil {
		setupLog.Error(err, "unable to build clause model", "scenario", s.Name)
		os.Exit(1)
	}

	fmt.Printf("Starting bench: %d sessions on %s (%d packages, %d clauses)\n", numSessions, s.Name, g.Len(), m.Len())

	start := time.Now()
	results := play(m, numSessions, maxSolutions)
	totalDuration := time.Since(start)

	var totalLatency time.Duration
	solved := 0
	for _, r := range results {
		totalLatency += r.latency
		if r.hintValid {
			solved++
		}
	}
	if len(results) == 0 {
		fmt.Printf("Bench completed in %v. No sessions ran.\n", totalDuration)
		return
	}
	avgLatency := totalLatency / time.Duration(len(results))
	fmt.Printf("Bench completed in %v. Avg session latency: %v\n", totalDuration, avgLatency)
	fmt.Printf("Hint solved the puzzle in %d/%d sessions; %d solutions found after %d candidates per session\n",
		solved, len(results), results[0].solutions, results[0].examined)
}

// play runs n sessions concurrently. The model is shared read-only; every
// goroutine owns its session.
func play(m *resolver.Model, n, maxSolutions int) []result {
	var wg sync.WaitGroup
	results := make(chan result, n)

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			sess := session.NewFromModel(m, session.WithLogger(setupLog.WithValues("session", id)))

			begin := time.Now()
			hintValid := sess.ApplyHint()
			e := sess.Solutions(maxSolutions)
			for _, sol := range e.Solutions {
				sess.Reset()
				for _, t := range sets.List(sol) {
					sess.Select(t)
				}
				if !sess.IsValid() {
					setupLog.Info("replayed solution is not valid", "session", id)
				}
			}
			results <- result{
				latency:   time.Since(begin),
				hintValid: hintValid,
				solutions: len(e.Solutions),
				examined:  e.Examined,
			}
		}(i)
	}

	wg.Wait()
	close(results)

	out := make([]result, 0, n)
	for r := range results {
		out = append(out, r)
	}
	return out
}
