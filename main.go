package main

import (
	"flag"
	"os"

	"sigs.k8s.io/controller-runtime/pkg/log"
	"sigs.k8s.io/controller-runtime/pkg/log/zap"
	"sigs.k8s.io/controller-runtime/pkg/manager/signals"

	"github.com/anvil-platform/depgame/internal/cli"
)

var setupLog = log.Log.WithName("setup")

func main() {
	var cfg cli.Config
	var selectList string
	var metricsAddr string

	flag.StringVar(&cfg.Scenario, "scenario", "", "Name of the scenario to play. Defaults to the first scenario.")
	flag.StringVar(&cfg.File, "file", "", "Load scenarios from a YAML or JSON file instead of the built-in set.")
	flag.BoolVar(&cfg.List, "list", false, "List the available scenarios and whether they can be solved.")
	flag.StringVar(&selectList, "select", "", "Comma separated package tokens to select, in order.")
	flag.BoolVar(&cfg.Explain, "explain", false, "Show every clause and whether the selection satisfies it.")
	flag.IntVar(&cfg.Solutions, "solutions", 0, "Number of solutions to search for (0 disables the search).")
	flag.BoolVar(&cfg.Hint, "hint", false, "Show a suggested selection.")
	flag.BoolVar(&cfg.Stats, "stats", false, "Show clause statistics and a constraint summary.")
	flag.BoolVar(&cfg.Interactive, "interactive", false, "Play the scenario from an interactive prompt.")
	flag.StringVar(&cfg.Output, "output", cli.OutputText, "Output format: text, yaml or json.")
	flag.StringVar(&metricsAddr, "metrics-bind-address", "0", "The address the metric endpoint binds to. Use 0 to disable it.")

	opts := zap.Options{}
	opts.BindFlags(flag.CommandLine)
	flag.Parse()

	log.SetLogger(zap.New(zap.UseFlagOptions(&opts)))
	cfg.Select = cli.SplitList(selectList)
	cfg.Logger = log.Log.WithName("depgame")

	ctx := signals.SetupSignalHandler()
	if metricsAddr != "0" && metricsAddr != "" {
		go func() {
			if err := cli.ServeMetrics(ctx, metricsAddr, setupLog); err != nil {
				setupLog.Error(err, "metrics server stopped")
			}
		}()
	}

	if err := cli.Run(ctx, cfg, os.Stdin, os.Stdout); err != nil {
		setupLog.Error(err, "depgame failed")
		os.Exit(1)
	}
}
