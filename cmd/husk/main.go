package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"git.sr.ht/~sircmpwn/getopt"
	"github.com/fatih/color"
	"github.com/gavrilovmiroslav/husk"
	"github.com/gavrilovmiroslav/husk/store"
	"github.com/gavrilovmiroslav/husk/syntax"
	"github.com/gavrilovmiroslav/husk/term"
	"github.com/tevino/abool/v2"
)

const usage = `usage: husk <command> [options] [file]

commands:
  run   [-l] [-v] [-e entry] [-a seed] [-s steps] [-d depth] [-t db] file
        with -t and no -s, steps are bounded by 100000
  parse [-q] file
  scan  file
  repl  [-l] [-s steps] [-d depth] [file]
  trace [-s] [-r run] db
`

// traceSteps bounds a recorded run when no step budget is given: the
// recorder keeps every event in memory until the run ends.
const traceSteps = 100000

var (
	warn = color.New(color.FgYellow).SprintFunc()
	fail = color.New(color.FgRed).SprintFunc()
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
	var (
		args = os.Args[1:]
		err  error
	)
	switch args[0] {
	case "run":
		err = runFile(args)
	case "parse":
		err = parseFile(args)
	case "scan":
		err = scanFile(args)
	case "repl":
		err = runRepl(args)
	case "trace":
		err = showTrace(args)
	case "help", "-h":
		fmt.Print(usage)
	default:
		err = fmt.Errorf("%s: unknown command", args[0])
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, fail(err))
		os.Exit(1)
	}
}

// configure fills cfg from the options shared by run and repl.
func configure(cfg *husk.Config, opt getopt.Option) error {
	var err error
	switch opt.Option {
	case 'l':
		cfg.Linear = true
	case 's':
		cfg.MaxSteps, err = strconv.Atoi(opt.Value)
	case 'd':
		cfg.MaxDepth, err = strconv.Atoi(opt.Value)
	case 'e':
		cfg.Entry = opt.Value
	case 'a':
		cfg.Seed, err = syntax.ParseExpr(opt.Value)
	}
	if err != nil {
		return fmt.Errorf("-%c: %w", opt.Option, err)
	}
	return nil
}

func runFile(args []string) error {
	opts, optind, err := getopt.Getopts(args, "lvs:d:e:a:t:")
	if err != nil {
		return err
	}
	var (
		cfg     = husk.DefaultConfig()
		db      string
		verbose bool
	)
	for _, o := range opts {
		switch o.Option {
		case 't':
			db = o.Value
		case 'v':
			verbose = true
		default:
			if err := configure(&cfg, o); err != nil {
				return err
			}
		}
	}
	args = args[optind:]
	if len(args) != 1 {
		return fmt.Errorf("run: expected one file")
	}
	if db != "" {
		boundRecording(&cfg)
	}
	decls, err := parse(args[0])
	if err != nil {
		return err
	}
	prog, err := husk.LoadConfig(decls, cfg)
	if err != nil {
		return err
	}
	var tracers []husk.Tracer
	if verbose {
		tracers = append(tracers, husk.Trace(os.Stderr))
	}
	var rec *store.Recorder
	if db != "" {
		s, err := store.Open(db)
		if err != nil {
			return err
		}
		defer s.Close()
		if rec, err = s.Begin(term.DigestList(decls), args[0]); err != nil {
			return err
		}
		tracers = append(tracers, rec)
	}
	cfg.Tracer = husk.Tee(tracers...)
	cfg.Interrupt = abool.New()
	stop := interruptOnSignal(cfg.Interrupt)
	defer stop()

	res, err := husk.New(prog, cfg).Interpret()
	if rec != nil {
		if err := rec.Finish(res, err); err != nil {
			fmt.Fprintln(os.Stderr, warn(err))
		}
		fmt.Fprintf(os.Stderr, "run %d recorded\n", rec.ID())
	}
	if err != nil {
		var eerr *husk.EvalError
		if errors.As(err, &eerr) {
			fmt.Fprint(os.Stderr, eerr.Trace())
		}
		return err
	}
	if res.Diagnostic != nil {
		return res.Diagnostic
	}
	fmt.Println(res.Value)
	return nil
}

func boundRecording(cfg *husk.Config) {
	if cfg.MaxSteps == 0 {
		cfg.MaxSteps = traceSteps
	}
}

func parseFile(args []string) error {
	opts, optind, err := getopt.Getopts(args, "q")
	if err != nil {
		return err
	}
	var quiet bool
	for _, o := range opts {
		if o.Option == 'q' {
			quiet = true
		}
	}
	args = args[optind:]
	if len(args) != 1 {
		return fmt.Errorf("parse: expected one file")
	}
	decls, err := parse(args[0])
	if err != nil {
		return err
	}
	prog, err := husk.Load(decls)
	if err != nil {
		return err
	}
	if !quiet {
		for _, d := range decls {
			fmt.Println(d)
		}
	}
	for _, name := range prog.Undeclared() {
		fmt.Fprintf(os.Stderr, "%s: %s has clauses but no signature\n", warn("warning"), name)
	}
	fmt.Fprintf(os.Stderr, "%d types, %d functions, %d signatures (%s)\n",
		len(prog.Types()), len(prog.Functions()), len(prog.Bindings()), term.DigestList(decls))
	return nil
}

func scanFile(args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("scan: expected one file")
	}
	r, err := os.Open(args[1])
	if err != nil {
		return err
	}
	defer r.Close()
	return printTokens(r, os.Stdout)
}

func printTokens(r io.Reader, w io.Writer) error {
	scan := syntax.Scan(r)
	for {
		tok := scan.Scan()
		switch tok.Type {
		case syntax.EOF:
			return nil
		case syntax.Invalid:
			return fmt.Errorf("%s: invalid token %q", tok.Position, tok.Literal)
		}
		fmt.Fprintln(w, tok)
	}
}

func parse(file string) ([]term.Term, error) {
	r, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return syntax.Parse(r)
}

// interruptOnSignal sets flag on every SIGINT until the returned function is
// called.
func interruptOnSignal(flag *abool.AtomicBool) func() {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, os.Interrupt)
	done := make(chan struct{})
	go func() {
		for {
			select {
			case <-ch:
				flag.Set()
			case <-done:
				return
			}
		}
	}()
	return func() {
		signal.Stop(ch)
		close(done)
	}
}

func joinNames(list []string) string {
	if len(list) == 0 {
		return "-"
	}
	return strings.Join(list, " ")
}
