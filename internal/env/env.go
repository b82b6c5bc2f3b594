// Package env implements the CAM's value model: the tagged sum Nil | Int |
// Pair | Closure that the "environment" register holds.
package env

import (
	"github.com/arnobastenhof/camrepl/internal/ast"
	"github.com/arnobastenhof/camrepl/internal/diag"
	"github.com/arnobastenhof/camrepl/internal/pool"
)

// Kind tags an Env value's variant.
type Kind uint8

const (
	NilKind Kind = iota
	IntKind
	PairKind
	ClosureKind
)

func (k Kind) String() string {
	switch k {
	case NilKind:
		return "Nil"
	case IntKind:
		return "Int"
	case PairKind:
		return "Pair"
	case ClosureKind:
		return "Closure"
	default:
		return "Unknown"
	}
}

// Env is a single CAM value. Left/Right are populated for PairKind; Ctx
// and Code for ClosureKind; Num for IntKind.
type Env struct {
	idx   int
	Kind  Kind
	Num   int
	Left  *Env
	Right *Env
	Ctx   *Env
	Code  *ast.Ast
}

// Allocator draws Env values from a bounded pool, mirroring ast.Allocator. One Allocator backs the CAM's env register and auxiliary
// stack for the lifetime of a single evaluation.
type Allocator struct {
	pool *pool.Pool[Env]
}

// NewAllocator returns an Allocator with room for capacity values.
func NewAllocator(capacity int) *Allocator {
	return &Allocator{pool: pool.New[Env](capacity)}
}

// Clear discards every Env the allocator has handed out.
func (a *Allocator) Clear() {
	a.pool.Clear()
}

func (a *Allocator) alloc(kind Kind) *Env {
	idx, e, err := a.pool.Alloc()
	if err != nil {
		diag.Raise(diag.OutOfMemory())
	}
	e.idx = idx
	e.Kind = kind
	e.Num, e.Left, e.Right, e.Ctx, e.Code = 0, nil, nil, nil, nil
	return e
}

// Nil returns a fresh Nil value. The top-level program starts in this
// environment.
func (a *Allocator) Nil() *Env {
	return a.alloc(NilKind)
}

// Int returns a fresh Int value.
func (a *Allocator) Int(n int) *Env {
	e := a.alloc(IntKind)
	e.Num = n
	return e
}

// Pair returns a fresh Pair value owning left and right.
func (a *Allocator) Pair(left, right *Env) *Env {
	e := a.alloc(PairKind)
	e.Left, e.Right = left, right
	return e
}

// Closure returns a fresh Closure value capturing ctx and pointing at the
// IR node code. code is never copied: it references IR that outlives the
// computation.
func (a *Allocator) Closure(ctx *Env, code *ast.Ast) *Env {
	e := a.alloc(ClosureKind)
	e.Ctx, e.Code = ctx, code
	return e
}

// Copy returns a deep copy of e: every Env reachable from e is freshly
// allocated, so the result shares no mutable substructure with e. Code
// pointers inside any Closure are shared, since IR is read-only.
func (a *Allocator) Copy(e *Env) *Env {
	switch e.Kind {
	case NilKind:
		return a.Nil()
	case IntKind:
		return a.Int(e.Num)
	case PairKind:
		return a.Pair(a.Copy(e.Left), a.Copy(e.Right))
	case ClosureKind:
		return a.Closure(a.Copy(e.Ctx), e.Code)
	default:
		panic("env: unknown kind")
	}
}

// Equal reports whether e and other represent the same value: same Kind,
// same Num for IntKind, and recursively equal Left/Right for PairKind or
// Ctx for ClosureKind. It ignores the pool handle, allocator-internal
// bookkeeping with no bearing on the value itself. A Closure's Code is
// compared by pointer identity rather than recursed into, since IR is
// shared rather than copied: two closures are equal only if they share
// the very same code, not merely structurally identical code. go-cmp
// calls this method automatically when diffing *Env values.
func (e *Env) Equal(other *Env) bool {
	if e == nil || other == nil {
		return e == other
	}
	if e.Kind != other.Kind {
		return false
	}
	switch e.Kind {
	case IntKind:
		return e.Num == other.Num
	case PairKind:
		return e.Left.Equal(other.Left) && e.Right.Equal(other.Right)
	case ClosureKind:
		return e.Code == other.Code && e.Ctx.Equal(other.Ctx)
	default:
		return true
	}
}

// Free returns e and every Env reachable from it to the allocator's pool.
// Ast nodes referenced by a Closure's Code are untouched: they belong to
// the separate ast.Allocator and outlive this Env. Nil child pointers (a
// Pair or Closure whose children were detached first) are skipped.
func (a *Allocator) Free(e *Env) {
	if e == nil {
		return
	}
	var idxs []int
	var walk func(n *Env)
	walk = func(n *Env) {
		if n == nil {
			return
		}
		idxs = append(idxs, n.idx)
		switch n.Kind {
		case PairKind:
			walk(n.Left)
			walk(n.Right)
		case ClosureKind:
			walk(n.Ctx)
		}
	}
	walk(e)
	a.pool.FreeMany(idxs)
}
