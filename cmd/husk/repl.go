package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"git.sr.ht/~sircmpwn/getopt"
	"github.com/fatih/color"
	"github.com/gavrilovmiroslav/husk"
	"github.com/gavrilovmiroslav/husk/syntax"
	"github.com/gavrilovmiroslav/husk/term"
	"github.com/peterh/liner"
	"github.com/tevino/abool/v2"
)

const (
	prompt      = "husk> "
	historyFile = ".husk_history"
)

var value = color.New(color.FgBlue).SprintFunc()

// session is the state of the repl: the declarations typed so far and the
// program loaded from them. A new program replaces the old one only when it
// loads without error.
type session struct {
	cfg   husk.Config
	decls []term.Term
	prog  *husk.Program
}

func (s *session) declare(list []term.Term) error {
	decls := append(s.decls[:len(s.decls):len(s.decls)], list...)
	prog, err := husk.LoadConfig(decls, s.cfg)
	if err != nil {
		return err
	}
	s.decls, s.prog = decls, prog
	return nil
}

func (s *session) eval(line string) (term.Term, int, error) {
	expr, err := syntax.ParseExpr(line)
	if err != nil {
		return nil, 0, err
	}
	s.cfg.Interrupt.UnSet()
	ev := husk.New(s.prog, s.cfg)
	res, err := ev.Reduce(expr)
	return res, ev.Steps(), err
}

// execute handles one line of input. It reports true when the session is
// over.
func (s *session) execute(line string, w io.Writer) (bool, error) {
	line = strings.TrimSpace(line)
	switch {
	case line == "":
		return false, nil
	case strings.HasPrefix(line, ":"):
		return s.command(line, w)
	case isDeclaration(line):
		list, err := syntax.ParseString(line)
		if err != nil {
			return false, err
		}
		return false, s.declare(list)
	default:
		res, steps, err := s.eval(line)
		if err != nil {
			return false, err
		}
		fmt.Fprintf(w, "%s (%d steps)\n", value(res), steps)
		return false, nil
	}
}

func (s *session) command(line string, w io.Writer) (bool, error) {
	fields := strings.Fields(line)
	switch fields[0] {
	case ":quit", ":q":
		return true, nil
	case ":defs":
		fmt.Fprintf(w, "types: %s\n", joinNames(s.prog.Types()))
		for _, name := range s.prog.Functions() {
			list, _ := s.prog.Clauses(name)
			if sig, err := s.prog.Binding(name); err == nil {
				fmt.Fprintf(w, "%s : %s\n", name, sig)
			}
			for _, c := range list {
				fmt.Fprintf(w, "  %s\n", c)
			}
		}
	case ":digest":
		fmt.Fprintln(w, term.DigestList(s.decls))
	case ":help":
		fmt.Fprintln(w, ":defs, :digest, :quit")
	default:
		return false, fmt.Errorf("%s: unknown command", fields[0])
	}
	return false, nil
}

func isDeclaration(line string) bool {
	scan := syntax.Scan(strings.NewReader(line))
	first := scan.Scan()
	switch first.Type {
	case syntax.Keyword, syntax.Let:
		return true
	case syntax.Ident:
		return scan.Scan().Type == syntax.Colon
	default:
		return false
	}
}

func runRepl(args []string) error {
	opts, optind, err := getopt.Getopts(args, "ls:d:")
	if err != nil {
		return err
	}
	s := session{
		cfg: husk.DefaultConfig(),
	}
	for _, o := range opts {
		if err := configure(&s.cfg, o); err != nil {
			return err
		}
	}
	s.cfg.Interrupt = abool.New()

	var decls []term.Term
	if args = args[optind:]; len(args) > 0 {
		if decls, err = parse(args[0]); err != nil {
			return err
		}
	}
	if err := s.declare(decls); err != nil {
		return err
	}

	stop := interruptOnSignal(s.cfg.Interrupt)
	defer stop()

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	home, _ := os.UserHomeDir()
	history := filepath.Join(home, historyFile)
	if f, err := os.Open(history); err == nil {
		ln.ReadHistory(f)
		f.Close()
	}
	defer func() {
		if f, err := os.Create(history); err == nil {
			ln.WriteHistory(f)
			f.Close()
		}
	}()

	for {
		line, err := ln.Prompt(prompt)
		if errors.Is(err, liner.ErrPromptAborted) {
			continue
		}
		if err != nil {
			fmt.Println()
			return nil
		}
		ln.AppendHistory(line)
		done, err := s.execute(line, os.Stdout)
		if err != nil {
			fmt.Fprintln(os.Stderr, fail(err))
		}
		if done {
			return nil
		}
	}
}
