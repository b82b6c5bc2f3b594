// Package ast defines the combinator intermediate representation and the
// visitor-driven traversal protocol shared by the optimizer and the CAM
// interpreter.
package ast

import (
	"fmt"
	"strings"

	"github.com/arnobastenhof/camrepl/internal/diag"
	"github.com/arnobastenhof/camrepl/internal/pool"
)

// Kind is the tag of an Ast node; it doubles as the CAM instruction
// vocabulary.
type Kind uint8

const (
	ID Kind = iota
	APP
	QUOTE
	PLUS
	FST
	SND
	COMP
	PAIR
	CUR
)

func (k Kind) String() string {
	switch k {
	case ID:
		return "ID"
	case APP:
		return "APP"
	case QUOTE:
		return "QUOTE"
	case PLUS:
		return "PLUS"
	case FST:
		return "FST"
	case SND:
		return "SND"
	case COMP:
		return "COMP"
	case PAIR:
		return "PAIR"
	case CUR:
		return "CUR"
	default:
		return "UNKNOWN"
	}
}

// Ast is a single combinator IR node. Instances are immutable after
// construction except for the optimizer's in-progress rebuild, which
// only ever mutates a node it has itself just allocated.
type Ast struct {
	idx      int
	Kind     Kind
	Value    int // meaningful only when Kind == QUOTE
	Children []*Ast
}

// Allocator draws Ast nodes from a bounded pool and is the only way to
// construct one. A single Allocator is shared by the parser and the
// optimizer for the lifetime of one REPL evaluation; Clear resets it on
// error recovery.
type Allocator struct {
	pool *pool.Pool[Ast]
}

// NewAllocator returns an Allocator with room for capacity nodes.
func NewAllocator(capacity int) *Allocator {
	return &Allocator{pool: pool.New[Ast](capacity)}
}

// Clear discards every node the allocator has handed out. Used by
// internal/repl's error-recovery path.
func (a *Allocator) Clear() {
	a.pool.Clear()
}

func (a *Allocator) alloc(kind Kind) *Ast {
	idx, n, err := a.pool.Alloc()
	if err != nil {
		diag.Raise(diag.OutOfMemory())
	}
	n.idx = idx
	n.Kind = kind
	n.Value = 0
	n.Children = nil
	return n
}

// ID, Fst, Snd, App and Plus build the corresponding leaf nodes. Plus is
// the raw CAM instruction; surface programs never reference it directly,
// only through PlusCombinator's curried wrapper.
func (a *Allocator) ID() *Ast   { return a.alloc(ID) }
func (a *Allocator) Fst() *Ast  { return a.alloc(FST) }
func (a *Allocator) Snd() *Ast  { return a.alloc(SND) }
func (a *Allocator) App() *Ast  { return a.alloc(APP) }
func (a *Allocator) Plus() *Ast { return a.alloc(PLUS) }

// New allocates a bare node of kind with no children, for callers (the
// optimizer's rewrite passes) that build up a node's Children after
// allocating it rather than through one of the shape-specific
// constructors above.
func (a *Allocator) New(kind Kind) *Ast { return a.alloc(kind) }

// Quote builds an integer literal node.
func (a *Allocator) Quote(value int) *Ast {
	n := a.alloc(QUOTE)
	n.Value = value
	return n
}

// Pair builds a two-child PAIR node (left, right).
func (a *Allocator) Pair(left, right *Ast) *Ast {
	n := a.alloc(PAIR)
	n.Children = []*Ast{left, right}
	return n
}

// Comp builds a COMP node from an ordered list of children. A zero-length
// COMP is forbidden in fully optimized IR but is legal as an intermediate
// value while the optimizer's post-hook is still assembling it; see
// internal/optimizer.
func (a *Allocator) Comp(children ...*Ast) *Ast {
	n := a.alloc(COMP)
	n.Children = children
	return n
}

// Cur builds a one-child CUR node wrapping body.
func (a *Allocator) Cur(body *Ast) *Ast {
	n := a.alloc(CUR)
	n.Children = []*Ast{body}
	return n
}

// PlusCombinator builds CUR(COMP(SND, PLUS)): a closure that, applied to a
// pair, runs PLUS on the pair's second component. This is the parser's
// desugaring target for the surface `+` operator, grounded on
// original_source/src/ast.c's Ast_Plus.
func (a *Allocator) PlusCombinator() *Ast {
	return a.Cur(a.Comp(a.Snd(), a.Plus()))
}

// String renders n as an s-expression of its Kind and Children, e.g.
// "COMP(PAIR(CUR(COMP(SND)), QUOTE(7)), APP)". Used by cmd/cam's parse
// debugging subcommand; not used by any core transition.
func (n *Ast) String() string {
	if n.Kind == QUOTE {
		return fmt.Sprintf("QUOTE(%d)", n.Value)
	}
	if len(n.Children) == 0 {
		return n.Kind.String()
	}
	parts := make([]string, len(n.Children))
	for i, c := range n.Children {
		parts[i] = c.String()
	}
	return fmt.Sprintf("%s(%s)", n.Kind, strings.Join(parts, ", "))
}

// Equal reports whether a and other have the same shape: same Kind, same
// Value where relevant, and recursively equal Children. It ignores the
// pool handle, which is allocator-internal bookkeeping with no bearing on
// what tree a node represents. go-cmp calls this method automatically
// when diffing *Ast values, which is how internal/optimizer's tests
// compare trees without reaching into the unexported idx field.
func (n *Ast) Equal(other *Ast) bool {
	if n == nil || other == nil {
		return n == other
	}
	if n.Kind != other.Kind || n.Value != other.Value {
		return false
	}
	if len(n.Children) != len(other.Children) {
		return false
	}
	for i, c := range n.Children {
		if !c.Equal(other.Children[i]) {
			return false
		}
	}
	return true
}

// FreeNode returns n alone to the allocator's pool, without touching its
// children. Used by rewrite passes that detach a node's children before
// discarding its shell (the optimizer's COMP-flattening and beta rules).
func (a *Allocator) FreeNode(n *Ast) {
	a.pool.Free(n.idx)
}

// Free returns root and every node reachable from it to the allocator's
// pool. It is the bulk-free counterpart to FreeNode's single-node release.
func (a *Allocator) Free(root *Ast) {
	if root == nil {
		return
	}
	var idxs []int
	var walk func(n *Ast)
	walk = func(n *Ast) {
		idxs = append(idxs, n.idx)
		for _, c := range n.Children {
			walk(c)
		}
	}
	walk(root)
	a.pool.FreeMany(idxs)
}
