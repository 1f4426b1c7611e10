package term

import "testing"

func TestEqual(t *testing.T) {
	shouldEqual(t, Ident("x"), Ident("x"))
	shouldEqual(t, Apply(Ident("f"), Ident("a")), Apply(Ident("f"), Ident("a")))
	shouldEqual(t, Func(Ident("a"), Ident("b")), Func(Ident("a"), Ident("b")))
	shouldEqual(t, Paren(Ident("a")), Paren(Ident("a")))
	shouldEqual(t, Typed(Ident("f"), Ident("t")), Typed(Ident("f"), Ident("t")))
	shouldEqual(t, Define(Apply(Ident("f"), Ident("X")), Ident("X")), Define(Apply(Ident("f"), Ident("X")), Ident("X")))
	shouldEqual(t, Marker{}, Marker{})
	shouldEqual(t, Application{}, Application{Seq: []Term{}})
}

func TestNotEqual(t *testing.T) {
	shouldNotEqual(t, Ident("x"), Ident("y"))
	shouldNotEqual(t, Apply(Ident("f"), Ident("a")), Apply(Ident("f"), Ident("b")))
	shouldNotEqual(t, Apply(Ident("f"), Ident("a")), Apply(Ident("f")))
	shouldNotEqual(t, Apply(Ident("a"), Ident("f")), Apply(Ident("f"), Ident("a")))
	shouldNotEqual(t, Typed(Ident("f"), Ident("t")), Typed(Ident("t"), Ident("f")))
}

func TestVariantMismatch(t *testing.T) {
	shouldNotEqual(t, Apply(Ident("a"), Ident("b")), Func(Ident("a"), Ident("b")))
	shouldNotEqual(t, Apply(Ident("a")), Ident("a"))
	shouldNotEqual(t, Paren(Ident("a")), Ident("a"))
	shouldNotEqual(t, Ident("a"), Paren(Ident("a")))
	shouldNotEqual(t, Typed(Ident("a"), Ident("b")), Define(Ident("a"), Ident("b")))
	shouldNotEqual(t, Equation{Left: Ident("a"), Right: Ident("b")}, Define(Ident("a"), Ident("b")))
	shouldNotEqual(t, Declare(Ident("a"), Ident("b")), Apply(Ident("a"), Ident("b")))
	shouldNotEqual(t, Marker{}, BuiltinMarker{})
	shouldNotEqual(t, Builtin{Decl: Typed(Ident("a"), Ident("b"))}, Typed(Ident("a"), Ident("b")))
}

func TestClone(t *testing.T) {
	list := []Term{
		Ident("x"),
		Apply(Ident("f"), Paren(Apply(Ident("g"), Ident("x"))), Ident("y")),
		Func(Ident("a"), Apply(Ident("list"), Ident("a")), Ident("'unit")),
		Declare(Ident("boolean"), Apply(Ident("true")), Apply(Ident("false"))),
		Builtin{Decl: Typed(Ident("print"), Func(Ident("a"), Ident("'unit")))},
		Define(Apply(Ident("f"), Ident("X")), Apply(Ident("g"), Ident("X"))),
		Equation{Left: Ident("a"), Right: Ident("b")},
	}
	for _, x := range list {
		shouldEqual(t, x, Clone(x))
	}

	a := Apply(Ident("f"), Ident("a"))
	c := Clone(a).(Application)
	c.Seq[1] = Ident("b")
	if !a.Seq[1].Equals(Ident("a")) {
		t.Errorf("clone shares elements with its original")
	}
}

func TestSubstAbsentKey(t *testing.T) {
	x := Apply(Ident("f"), Paren(Apply(Ident("g"), Ident("a"))), Func(Ident("a"), Ident("b")))
	shouldEqual(t, x, Subst(x, Ident("Z"), Ident("nope")))
}

func TestSubstReplaceWhole(t *testing.T) {
	repl := Apply(Ident("g"), Ident("b"))
	shouldEqual(t, Subst(Ident("X"), Ident("X"), repl), repl)
	shouldEqual(t, Subst(Apply(Ident("f"), Ident("a")), Apply(Ident("f"), Ident("a")), Ident("z")), Ident("z"))
}

func TestSubstNested(t *testing.T) {
	x := Apply(Ident("f"), Ident("X"), Paren(Apply(Ident("g"), Ident("X"))))
	want := Apply(Ident("f"), Ident("a"), Paren(Apply(Ident("g"), Ident("a"))))
	shouldEqual(t, Subst(x, Ident("X"), Ident("a")), want)

	sig := Func(Ident("X"), Ident("X"))
	shouldEqual(t, Subst(sig, Ident("X"), Ident("nat")), Func(Ident("nat"), Ident("nat")))
}

func TestSubstKeepsOriginal(t *testing.T) {
	x := Apply(Ident("f"), Ident("X"))
	_ = Subst(x, Ident("X"), Ident("a"))
	shouldEqual(t, x, Apply(Ident("f"), Ident("X")))
}

func TestSubstAtoms(t *testing.T) {
	b := Builtin{Decl: Typed(Ident("X"), Ident("t"))}
	shouldEqual(t, Subst(b, Ident("X"), Ident("a")), b)
	shouldEqual(t, Subst(Marker{}, Ident("X"), Ident("a")), Marker{})
}

func TestSubstNilGroup(t *testing.T) {
	g := Group{}
	shouldEqual(t, Subst(g, Ident("X"), Ident("a")), g)
}

func TestStrip(t *testing.T) {
	x := Apply(Ident("succ"), Paren(Apply(Ident("succ"), Paren(Ident("zero")))))
	want := Apply(Ident("succ"), Apply(Ident("succ"), Ident("zero")))
	shouldEqual(t, Strip(x), want)
	shouldEqual(t, Strip(Paren(Paren(Ident("a")))), Ident("a"))
	shouldEqual(t, Strip(Func(Paren(Ident("a")), Ident("b"))), Func(Ident("a"), Ident("b")))
	shouldNotEqual(t, x, want)
}

func TestSubstCapture(t *testing.T) {
	// Substitution does not rename: a replacement mentioning a variable that
	// is substituted later ends up rewritten as well.
	x := Apply(Ident("pair"), Ident("X"), Ident("Y"))
	x1 := Subst(x, Ident("X"), Ident("Y"))
	x2 := Subst(x1, Ident("Y"), Ident("b"))
	shouldEqual(t, x2, Apply(Ident("pair"), Ident("b"), Ident("b")))
}

func TestHeadTail(t *testing.T) {
	a := Apply(Ident("f"), Ident("a"), Ident("b"))
	h, err := a.Head()
	if err != nil || !h.Equals(Ident("f")) {
		t.Errorf("Expected: f\nActual: %v (%v)", h, err)
	}
	tl, _ := a.Tail()
	shouldEqual(t, tl, Application{Seq: []Term{Ident("a"), Ident("b")}})

	single, _ := Apply(Ident("f")).Tail()
	shouldEqual(t, single, Application{})
	if _, ok := single.(Application); !ok {
		t.Errorf("tail changed variant: %T", single)
	}

	arr, _ := Func(Ident("a"), Ident("b")).Tail()
	shouldEqual(t, arr, Arrow{Seq: []Term{Ident("b")}})

	if _, err := (Application{}).Head(); err == nil {
		t.Errorf("Expected: error on empty head")
	}
	if _, err := Tail(Ident("x")); err == nil {
		t.Errorf("Expected: error on tail of identifier")
	}
	if _, err := Head(Typed(Ident("x"), Ident("t"))); err == nil {
		t.Errorf("Expected: error on head of relation")
	}
}

func TestEntity(t *testing.T) {
	e := Declare(Ident("list"), Ident("a"), Apply(Ident("nil")), Apply(Ident("cons"), Ident("a"), Apply(Ident("list"), Ident("a"))))
	if n := len(e.Params()); n != 1 {
		t.Errorf("Expected: 1 param\nActual: %d", n)
	}
	if n := len(e.Constructors()); n != 2 {
		t.Errorf("Expected: 2 constructors\nActual: %d", n)
	}
}

func TestOccurs(t *testing.T) {
	x := Define(Apply(Ident("f"), Ident("X")), Paren(Apply(Ident("g"), Ident("Y"))))
	if !Occurs(x, Ident("Y")) {
		t.Errorf("Expected: Y occurs in %s", x)
	}
	if Occurs(x, Ident("Z")) {
		t.Errorf("Expected: Z does not occur in %s", x)
	}
}

func TestString(t *testing.T) {
	testString(t, Ident("x"), "x")
	testString(t, Paren(Ident("x")), "x")
	testString(t, Apply(Ident("f"), Ident("a"), Ident("b")), "f a b")
	testString(t, Apply(Ident("f"), Paren(Apply(Ident("g"), Ident("a")))), "f (g a)")
	testString(t, Apply(Ident("f"), Apply(Ident("g"), Ident("a"))), "f (g a)")
	testString(t, Func(Ident("boolean"), Ident("'unit")), "boolean -> 'unit")
	testString(t, Func(Func(Ident("a"), Ident("b")), Ident("c")), "(a -> b) -> c")
	testString(t, Func(Apply(Ident("list"), Ident("a")), Ident("b")), "list a -> b")
	testString(t, Apply(Ident("map"), Paren(Func(Ident("a"), Ident("b")))), "map (a -> b)")
	testString(t, Typed(Ident("f"), Func(Ident("a"), Ident("b"))), "f : a -> b")
	testString(t, Define(Apply(Ident("f"), Ident("true")), Ident("false")), "> f true = false")
	testString(t, Builtin{Decl: Typed(Ident("x"), Ident("t"))}, "builtin x : t")
	testString(t, Declare(Ident("boolean"), Apply(Ident("true")), Apply(Ident("false"))), "decltype boolean = true | false")
	testString(t, Declare(Ident("box"), Ident("a"), Apply(Ident("box"), Ident("a"))), "decltype box a = box a")
}

func TestFingerprint(t *testing.T) {
	a := Apply(Ident("f"), Paren(Ident("a")))
	if Fingerprint(a) != Fingerprint(Clone(a)) {
		t.Errorf("equal terms have different fingerprints")
	}
	if Fingerprint(a) == Fingerprint(Apply(Ident("f"), Ident("a"))) {
		t.Errorf("group does not change fingerprint")
	}
	if Fingerprint(Apply(Ident("a"), Ident("b"))) == Fingerprint(Func(Ident("a"), Ident("b"))) {
		t.Errorf("variant does not change fingerprint")
	}
	if Fingerprint(Apply(Ident("ab"), Ident("c"))) == Fingerprint(Apply(Ident("a"), Ident("bc"))) {
		t.Errorf("element boundaries do not change fingerprint")
	}
	if n := len(Digest(a)); n != 16 {
		t.Errorf("Expected: 16 hex digits\nActual: %d", n)
	}
}

func TestDigestList(t *testing.T) {
	a, b := Ident("a"), Ident("b")
	if DigestList([]Term{a, b}) != DigestList([]Term{Clone(a), Clone(b)}) {
		t.Errorf("equal lists have different digests")
	}
	if DigestList([]Term{a, b}) == DigestList([]Term{b, a}) {
		t.Errorf("order does not change digest")
	}
}

func testString(t *testing.T, x Term, want string) {
	if got := x.String(); got != want {
		t.Errorf("\nExpected: %s\nActual: %s", want, got)
	}
}

func shouldEqual(t *testing.T, t1, t2 Term) {
	t.Helper()
	if !Equal(t1, t2) {
		t.Errorf("\n%v | %v - Expected: equal", t1, t2)
	}
	if !Equal(t2, t1) {
		t.Errorf("\n%v | %v - Expected: equal (symmetric)", t2, t1)
	}
}

func shouldNotEqual(t *testing.T, t1, t2 Term) {
	t.Helper()
	if Equal(t1, t2) || Equal(t2, t1) {
		t.Errorf("\n%v | %v - Expected: not equal", t1, t2)
	}
}
