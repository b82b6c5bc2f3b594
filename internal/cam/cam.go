// Package cam implements the CAM interpreter: a single-register stack
// machine whose env/stack transitions are dispatched by the shared
// ast.Visitor traversal protocol, grounded on original_source/src/cam.c.
package cam

import (
	"github.com/arnobastenhof/camrepl/internal/ast"
	"github.com/arnobastenhof/camrepl/internal/diag"
	"github.com/arnobastenhof/camrepl/internal/env"
)

// Machine is the CAM's mutable state: the env register plus an auxiliary
// save stack, both drawn from a shared env.Allocator.
type Machine struct {
	alloc *env.Allocator
	env   *env.Env
	stack []*env.Env
}

// New returns a Machine whose env register starts at Nil, the top-level
// program's initial environment.
func New(alloc *env.Allocator) *Machine {
	return &Machine{alloc: alloc, env: alloc.Nil()}
}

func (m *Machine) push(e *env.Env) {
	m.stack = append(m.stack, e)
}

func (m *Machine) pop() *env.Env {
	if len(m.stack) == 0 {
		diag.Raise(diag.Invariant("stack underflow"))
	}
	n := len(m.stack) - 1
	e := m.stack[n]
	m.stack = m.stack[:n]
	return e
}

// Run drives m over code and returns the resulting integer. code must be a
// fixed point of internal/optimizer; a well-formed program always leaves
// env as Int(n) when the top-level traversal completes.
func Run(alloc *env.Allocator, code *ast.Ast) int {
	m := New(alloc)
	ast.Traverse(code, m)
	if m.env.Kind != env.IntKind {
		diag.Raise(diag.Invariant("program did not reduce to an integer"))
	}
	return m.env.Num
}

func (m *Machine) VisitID(n *ast.Ast) ast.Status { return ast.Continue }

// VisitQuote drops env and replaces it with a fresh integer.
func (m *Machine) VisitQuote(n *ast.Ast) ast.Status {
	m.alloc.Free(m.env)
	m.env = m.alloc.Int(n.Value)
	return ast.Continue
}

// VisitFst requires env = Pair(l, r); env becomes l, r is dropped.
func (m *Machine) VisitFst(n *ast.Ast) ast.Status {
	if m.env.Kind != env.PairKind {
		diag.Raise(diag.Invariant("FST expects a pair"))
	}
	left, right := m.env.Left, m.env.Right
	m.alloc.Free(right)
	m.env.Left, m.env.Right = nil, nil
	m.alloc.Free(m.env)
	m.env = left
	return ast.Continue
}

// VisitSnd requires env = Pair(l, r); env becomes r, l is dropped.
func (m *Machine) VisitSnd(n *ast.Ast) ast.Status {
	if m.env.Kind != env.PairKind {
		diag.Raise(diag.Invariant("SND expects a pair"))
	}
	left, right := m.env.Left, m.env.Right
	m.alloc.Free(left)
	m.env.Left, m.env.Right = nil, nil
	m.alloc.Free(m.env)
	m.env = right
	return ast.Continue
}

// PreComp and PostComp are no-ops: COMP is just sequencing of its children.
func (m *Machine) PreComp(n *ast.Ast) ast.Status  { return ast.Continue }
func (m *Machine) PostComp(n *ast.Ast) ast.Status { return ast.Continue }

// PrePair saves a deep copy of env on the auxiliary stack before the left
// subterm runs; both subterms start from the same environment.
func (m *Machine) PrePair(n *ast.Ast) ast.Status {
	m.push(m.alloc.Copy(m.env))
	return ast.Continue
}

// InPair swaps the saved copy back into env and banks the left subterm's
// result on the stack, so the right subterm also starts from the original
// environment.
func (m *Machine) InPair(n *ast.Ast) ast.Status {
	saved := m.pop()
	m.push(m.env)
	m.env = saved
	return ast.Continue
}

// PostPair conses the saved left result with env's right result; the
// popped value becomes the pair's left child.
func (m *Machine) PostPair(n *ast.Ast) ast.Status {
	left := m.pop()
	m.env = m.alloc.Pair(left, m.env)
	return ast.Continue
}

// PreCur freezes the current environment into a closure and skips the
// body: capture is lazy, the body only runs when APP later invokes it.
func (m *Machine) PreCur(n *ast.Ast) ast.Status {
	m.env = m.alloc.Closure(m.env, n.Children[0])
	return ast.Skip
}

func (m *Machine) PostCur(n *ast.Ast) ast.Status { return ast.Continue }

// VisitApp requires env = Pair(closure, arg). It rebinds env to
// Pair(ctx, arg) and interprets the closure's code against that new
// environment, the substitution-free CAM calling convention.
func (m *Machine) VisitApp(n *ast.Ast) ast.Status {
	if m.env.Kind != env.PairKind {
		diag.Raise(diag.Invariant("APP expects a pair"))
	}
	closure := m.env.Left
	if closure.Kind != env.ClosureKind {
		diag.Raise(diag.Invariant("APP expects a closure in the pair's left"))
	}
	code := closure.Code
	m.env.Left = closure.Ctx
	closure.Ctx = nil
	m.alloc.Free(closure)
	ast.Traverse(code, m)
	return ast.Continue
}

// VisitPlus requires env = Pair(Int(a), Int(b)); env becomes Int(a+b).
func (m *Machine) VisitPlus(n *ast.Ast) ast.Status {
	if m.env.Kind != env.PairKind || m.env.Left.Kind != env.IntKind || m.env.Right.Kind != env.IntKind {
		diag.Raise(diag.Invariant("PLUS expects a pair of integers"))
	}
	sum := m.env.Left.Num + m.env.Right.Num
	left, right := m.env.Left, m.env.Right
	m.env.Left, m.env.Right = nil, nil
	m.alloc.Free(right)
	m.alloc.Free(m.env)
	m.env = left
	m.env.Num = sum
	return ast.Continue
}

var _ ast.Visitor = (*Machine)(nil)
