package husk

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/gavrilovmiroslav/husk/term"
	"github.com/samber/lo"
)

// Tracer observes the calls made by an evaluator. It never changes the
// outcome of a reduction.
type Tracer interface {
	Enter(depth int, name string, args []term.Term)
	Leave(depth int, name string, res term.Term, err error)
}

type discard struct{}

func Discard() Tracer {
	return discard{}
}

func (discard) Enter(int, string, []term.Term) {}

func (discard) Leave(int, string, term.Term, error) {}

type writerTracer struct {
	w io.Writer

	call func(...interface{}) string
	ret  func(...interface{}) string
	fail func(...interface{}) string
}

// Trace prints one indented line per call and per return to w.
func Trace(w io.Writer) Tracer {
	return writerTracer{
		w:    w,
		call: color.New(color.FgCyan).SprintFunc(),
		ret:  color.New(color.FgGreen).SprintFunc(),
		fail: color.New(color.FgRed).SprintFunc(),
	}
}

func (t writerTracer) Enter(depth int, name string, args []term.Term) {
	list := lo.Map(args, func(a term.Term, _ int) string {
		return a.String()
	})
	fmt.Fprintf(t.w, "%s%s %s (%s)\n", indent(depth), t.call("call"), name, strings.Join(list, ", "))
}

func (t writerTracer) Leave(depth int, name string, res term.Term, err error) {
	if err != nil {
		fmt.Fprintf(t.w, "%s%s %s: %s\n", indent(depth), t.fail("fail"), name, err)
		return
	}
	fmt.Fprintf(t.w, "%s%s %s\n", indent(depth), t.ret("return"), res)
}

// Tee sends every event to all the given tracers.
func Tee(list ...Tracer) Tracer {
	return tee(list)
}

type tee []Tracer

func (t tee) Enter(depth int, name string, args []term.Term) {
	for _, x := range t {
		x.Enter(depth, name, args)
	}
}

func (t tee) Leave(depth int, name string, res term.Term, err error) {
	for _, x := range t {
		x.Leave(depth, name, res, err)
	}
}

func indent(depth int) string {
	return strings.Repeat(" ", depth)
}
