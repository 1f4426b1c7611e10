package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"git.sr.ht/~sircmpwn/getopt"
	"github.com/fatih/color"
	"github.com/gavrilovmiroslav/husk/store"
)

var (
	callColor   = color.New(color.FgCyan).SprintFunc()
	returnColor = color.New(color.FgGreen).SprintFunc()
)

func showTrace(args []string) error {
	opts, optind, err := getopt.Getopts(args, "sr:")
	if err != nil {
		return err
	}
	var (
		summary bool
		run     uint64
	)
	for _, o := range opts {
		switch o.Option {
		case 's':
			summary = true
		case 'r':
			if run, err = strconv.ParseUint(o.Value, 10, 64); err != nil {
				return fmt.Errorf("-r: %w", err)
			}
		}
	}
	args = args[optind:]
	if len(args) != 1 {
		return fmt.Errorf("trace: expected one database")
	}
	s, err := store.Open(args[0])
	if err != nil {
		return err
	}
	defer s.Close()
	return printTrace(s, run, summary, os.Stdout)
}

// printTrace lists the runs of s, or prints the events of one run. A summary
// without a run number is about the last run.
func printTrace(s *store.Store, run uint64, summary bool, w io.Writer) error {
	if run == 0 && !summary {
		return listRuns(s, w)
	}
	if run == 0 {
		last, err := s.Last()
		if err != nil {
			return err
		}
		run = last.ID
	}
	events, err := s.Events(run)
	if err != nil {
		return err
	}
	if summary {
		printSummary(store.Summarize(events), w)
		return nil
	}
	printEvents(events, w)
	return nil
}

func listRuns(s *store.Store, w io.Writer) error {
	runs, err := s.Runs()
	if err != nil {
		return err
	}
	for _, r := range runs {
		outcome := r.Value
		if r.Err != "" {
			outcome = fail(r.Err)
		}
		fmt.Fprintf(w, "%4d  %s  %s  %s  %6d  %s\n", r.ID, r.When.Format("2006-01-02 15:04:05"), r.Program, r.Label, r.Steps, outcome)
	}
	return nil
}

func printEvents(events []store.Event, w io.Writer) {
	for _, e := range events {
		pad := strings.Repeat(" ", e.Depth)
		switch e.Kind {
		case store.KindCall:
			fmt.Fprintf(w, "%s%s %s (%s)\n", pad, callColor("call"), e.Name, strings.Join(e.Args, ", "))
		case store.KindFail:
			fmt.Fprintf(w, "%s%s %s: %s\n", pad, fail("fail"), e.Name, e.Err)
		default:
			fmt.Fprintf(w, "%s%s %s\n", pad, returnColor("return"), e.Result)
		}
	}
}

func printSummary(sum store.Summary, w io.Writer) {
	fmt.Fprintf(w, "calls: %d, failures: %d, max depth: %d\n", sum.Calls, sum.Failures, sum.MaxDepth)
	for _, c := range sum.Functions {
		fmt.Fprintf(w, "%8d  %s\n", c.Calls, c.Name)
	}
}
