package cam

import (
	"testing"

	"github.com/arnobastenhof/camrepl/internal/ast"
	"github.com/arnobastenhof/camrepl/internal/diag"
	"github.com/arnobastenhof/camrepl/internal/env"
)

func TestRunQuoteLiteral(t *testing.T) {
	a := ast.NewAllocator(64)
	e := env.NewAllocator(64)

	got := Run(e, a.Quote(42))
	if got != 42 {
		t.Fatalf("got %d, want 42", got)
	}
}

func TestRunIdentityApplication(t *testing.T) {
	a := ast.NewAllocator(64)
	e := env.NewAllocator(64)

	// ((lambda (x) x) 7), unoptimized: COMP(PAIR(CUR(COMP(SND)), QUOTE(7)), APP)
	body := a.Comp(a.Snd())
	tree := a.Comp(a.Pair(a.Cur(body), a.Quote(7)), a.App())

	got := Run(e, tree)
	if got != 7 {
		t.Fatalf("got %d, want 7", got)
	}
}

func TestRunSumFoldsThroughPlusCombinator(t *testing.T) {
	a := ast.NewAllocator(64)
	e := env.NewAllocator(64)

	// (+ 1 2 3 4): acc starts at QUOTE(1), folds left through the plus
	// combinator three times.
	acc := a.Quote(1)
	for _, v := range []int{2, 3, 4} {
		acc = a.Comp(a.Pair(a.PlusCombinator(), a.Pair(acc, a.Quote(v))), a.App())
	}

	got := Run(e, acc)
	if got != 10 {
		t.Fatalf("got %d, want 10", got)
	}
}

func TestRunVariableDepthProjectsPastInnerBinding(t *testing.T) {
	a := ast.NewAllocator(64)
	e := env.NewAllocator(64)

	// ((lambda (x) (lambda (y) x)) 10 20): x is bound at depth 1, lowered
	// to COMP(FST, SND). Application is left-associative:
	// COMP(PAIR(COMP(PAIR(CUR(CUR(COMP(FST,SND))),QUOTE(10)),APP), QUOTE(20)), APP)
	xLookup := a.Comp(a.Fst(), a.Snd())
	abs := a.Cur(a.Cur(xLookup))
	appliedToX := a.Comp(a.Pair(abs, a.Quote(10)), a.App())
	tree := a.Comp(a.Pair(appliedToX, a.Quote(20)), a.App())

	got := Run(e, tree)
	if got != 10 {
		t.Fatalf("got %d, want 10 (x, not y)", got)
	}
}

func TestRunScopeShadowingYieldsInnermostBinding(t *testing.T) {
	a := ast.NewAllocator(64)
	e := env.NewAllocator(64)

	// ((lambda (x) (lambda (x) x)) 1 2): the inner x shadows the outer one
	// and is lowered to COMP(SND) (depth 0).
	xLookup := a.Comp(a.Snd())
	abs := a.Cur(a.Cur(xLookup))
	appliedOnce := a.Comp(a.Pair(abs, a.Quote(1)), a.App())
	tree := a.Comp(a.Pair(appliedOnce, a.Quote(2)), a.App())

	got := Run(e, tree)
	if got != 2 {
		t.Fatalf("got %d, want 2 (innermost binding shadows outer)", got)
	}
}

func TestRunHigherOrderApplication(t *testing.T) {
	a := ast.NewAllocator(128)
	e := env.NewAllocator(128)

	// ((lambda (f x) (f x x)) (lambda (a b) (+ a b)) 5) => 10
	// f is depth 1, x is depth 0 inside the two-arg abs.
	fRef := a.Comp(a.Fst(), a.Snd())
	xRef := a.Comp(a.Snd())
	// (f x x): COMP(PAIR(COMP(PAIR(f,x),APP), x), APP)
	inner := a.Comp(a.Pair(a.Comp(a.Pair(fRef, xRef), a.App()), xRef), a.App())
	outerAbs := a.Cur(a.Cur(inner))

	aRef := a.Comp(a.Fst(), a.Snd())
	bRef := a.Comp(a.Snd())
	sumBody := a.Comp(a.Pair(a.PlusCombinator(), a.Pair(aRef, bRef)), a.App())
	innerAbs := a.Cur(a.Cur(sumBody))

	appliedToInnerAbs := a.Comp(a.Pair(outerAbs, innerAbs), a.App())
	tree := a.Comp(a.Pair(appliedToInnerAbs, a.Quote(5)), a.App())

	got := Run(e, tree)
	if got != 10 {
		t.Fatalf("got %d, want 10", got)
	}
}

func runErr(t *testing.T, a *ast.Allocator, e *env.Allocator, tree *ast.Ast) error {
	t.Helper()
	var err error
	func() {
		defer diag.Recover(&err)
		Run(e, tree)
	}()
	return err
}

func TestRunFstOnNonPairIsInvariantViolation(t *testing.T) {
	a := ast.NewAllocator(64)
	e := env.NewAllocator(64)

	tree := a.Comp(a.Fst())
	if err := runErr(t, a, e, tree); err == nil {
		t.Fatal("expected a diagnostic, got none")
	}
}
