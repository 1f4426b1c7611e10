package term

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
)

func (i Identifier) String() string {
	return i.Name
}

func (g Group) String() string {
	return fmt.Sprint(g.Inner)
}

func (a Application) String() string {
	return joinSeq(a.Seq, " ", nested)
}

func (a Arrow) String() string {
	return joinSeq(a.Seq, " -> ", isArrow)
}

func (e Entity) String() string {
	if len(e.Seq) == 0 {
		return "decltype"
	}
	var str strings.Builder
	str.WriteString("decltype ")
	str.WriteString(e.Seq[0].String())
	for _, p := range e.Params() {
		str.WriteString(" ")
		str.WriteString(p.String())
	}
	ctors := e.Constructors()
	if len(ctors) == 0 {
		return str.String()
	}
	str.WriteString(" = ")
	list := lo.Map(ctors, func(a Application, _ int) string {
		return a.String()
	})
	str.WriteString(strings.Join(list, " | "))
	return str.String()
}

func (i IsA) String() string {
	return fmt.Sprintf("%s : %s", i.Left, i.Right)
}

func (e Equation) String() string {
	return fmt.Sprintf("%s = %s", e.Left, e.Right)
}

func (f FuncDef) String() string {
	return fmt.Sprintf("> %s = %s", f.Left, f.Right)
}

func (b Builtin) String() string {
	return "builtin " + b.Decl.String()
}

func (Marker) String() string {
	return "<>"
}

func (BuiltinMarker) String() string {
	return "<b>"
}

func joinSeq(seq []Term, sep string, paren func(Term) bool) string {
	list := lo.Map(seq, func(t Term, _ int) string {
		if paren(t) {
			return "(" + t.String() + ")"
		}
		return t.String()
	})
	return strings.Join(list, sep)
}

// nested reports whether t needs parentheses when it is an element of a
// sequence.
func nested(t Term) bool {
	if g, ok := t.(Group); ok {
		return nested(g.Inner)
	}
	c, ok := t.(Curried)
	return ok && len(c.Elems()) > 1
}

func isArrow(t Term) bool {
	if g, ok := t.(Group); ok {
		return isArrow(g.Inner)
	}
	a, ok := t.(Arrow)
	return ok && len(a.Seq) > 1
}
