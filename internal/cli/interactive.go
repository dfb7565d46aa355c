package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"sigs.k8s.io/yaml"

	gamev1alpha1 "github.com/anvil-platform/depgame/api/v1alpha1"
	"github.com/anvil-platform/depgame/internal/graph"
	"github.com/anvil-platform/depgame/internal/resolver"
	"github.com/anvil-platform/depgame/internal/session"
)

const helpText = `Commands:
  select <token>...    add packages to the selection
  deselect <token>...  remove packages from the selection
  toggle <token>...    select or deselect packages
  reset                clear the selection
  packages             list every package and whether it is selected
  check                show whether the selection solves the puzzle
  explain              show every clause and whether it holds
  solutions [n]        list up to n solutions (default 5)
  hint [apply]         suggest a selection, optionally replacing the current one
  state                print the session state as YAML
  help                 show this help
  quit                 leave the game
`

// interactive reads one command per line from in until quit or end of input.
func interactive(ctx context.Context, s *gamev1alpha1.Scenario, sess *session.Session, in io.Reader, out io.Writer) error {
	p := &printer{w: out}
	p.printf("%s\n", title(s))
	if s.Spec.Description != "" {
		p.printf("%s\n", s.Spec.Description)
	}
	p.printf("Goal: select packages so that %s can be installed. Type 'help' for commands.\n", sess.Model().Root().Display())

	scanner := bufio.NewScanner(in)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		p.printf("> ")
		if p.err != nil {
			return p.err
		}
		if !scanner.Scan() {
			break
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if quit := execute(p, sess, fields[0], fields[1:]); quit {
			break
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read command: %w", err)
	}
	return p.err
}

func execute(p *printer, sess *session.Session, cmd string, args []string) bool {
	switch strings.ToLower(cmd) {
	case "select", "s":
		if len(args) == 0 {
			p.printf("usage: select <token>...\n")
			return false
		}
		for _, t := range tokens(args) {
			printOutcome(p, sess, t, sess.Select(t))
		}
		announce(p, sess)
	case "deselect", "d":
		if len(args) == 0 {
			p.printf("usage: deselect <token>...\n")
			return false
		}
		for _, t := range tokens(args) {
			if sess.Deselect(t) {
				p.printf("%s: removed\n", t)
			} else {
				p.printf("%s: not selected\n", t)
			}
		}
	case "toggle", "t":
		if len(args) == 0 {
			p.printf("usage: toggle <token>...\n")
			return false
		}
		for _, t := range tokens(args) {
			printOutcome(p, sess, t, sess.Toggle(t))
		}
		announce(p, sess)
	case "reset":
		sess.Reset()
		p.printf("Selection cleared.\n")
	case "packages", "ls":
		writePackages(p, sess)
	case "check":
		writeState(p, sess.State())
	case "explain":
		writeExplanation(p, sess.Explain())
	case "solutions":
		n := DefaultSolutions
		if len(args) > 0 {
			v, err := strconv.Atoi(args[0])
			if err != nil || v < 1 {
				p.printf("solutions: %q is not a positive number\n", args[0])
				return false
			}
			n = v
		}
		writeSolutions(p, solutionsReport(sess.Solutions(n)))
	case "hint":
		if len(args) > 0 && args[0] == "apply" {
			sess.ApplyHint()
			writeState(p, sess.State())
			return false
		}
		hint := sess.Hint()
		writeHint(p, &HintReport{Packages: resolver.SortedPairs(hint), Valid: sess.Model().Satisfied(hint)})
	case "state":
		data, err := yaml.Marshal(sess.State())
		if err != nil {
			p.printf("state: %v\n", err)
			return false
		}
		p.printf("%s", data)
	case "help", "?":
		p.printf("%s", helpText)
	case "quit", "exit", "q":
		return true
	default:
		p.printf("unknown command %q, type 'help' for a list of commands\n", cmd)
	}
	return false
}

func printOutcome(p *printer, sess *session.Session, t graph.Token, o session.Outcome) {
	switch o {
	case session.VersionConflict:
		if other, ok := sess.ConflictFor(t); ok && other != t {
			p.printf("%s: %s (%s is already selected)\n", t, o, other)
			return
		}
		p.printf("%s: %s (already selected)\n", t, o)
	case session.InvalidToken:
		p.printf("%s: %s (no such package)\n", t, o)
	default:
		p.printf("%s: %s\n", t, o)
	}
}

func announce(p *printer, sess *session.Session) {
	if sess.IsValid() {
		p.printf("🎉 Congratulations! You've successfully resolved all dependencies!\n")
	}
}

func writePackages(p *printer, sess *session.Session) {
	sel := sess.Selection()
	for _, t := range sess.Model().Graph().Nodes() {
		mark := "○"
		if sel.Has(t) {
			mark = "✓"
		}
		p.printf("  %s %-20s %s\n", mark, string(t), t.Display())
	}
}
