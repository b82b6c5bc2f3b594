// Package optimizer rewrites combinator IR to a local fixed point by
// eliminating identities, flattening compositions and contracting
// beta-redexes, grounded on original_source/src/optim.c's single-pass
// rewrite visitor.
package optimizer

import "github.com/arnobastenhof/camrepl/internal/ast"

// entry is one slot of the rewrite stack. A boundary entry marks where a
// COMP/PAIR/CUR currently under construction started; everything popped
// above it before the matching boundary is reached becomes that node's
// rebuilt children. This stands in for original_source's self-linked
// "solitary node" sentinel, which this package expresses as an explicit
// tag instead of an intrusive list trick.
type entry struct {
	boundary bool
	value    *ast.Ast // the node itself; for a boundary entry, the fresh
	// shell (empty Children) that PostComp/PostPair/PostCur will fill in
	// and push back as the node's final, rebuilt value.
}

// pass runs one rewrite traversal over a tree, rebuilding it bottom-up on
// an explicit stack rather than mutating the input in place — the input
// tree is freed whole by the caller once the rebuilt one is in hand.
type pass struct {
	alloc     *ast.Allocator
	stack     []entry
	mutations int
}

func (p *pass) push(v *ast.Ast) { p.stack = append(p.stack, entry{value: v}) }

func (p *pass) pushBoundary(k ast.Kind) {
	p.stack = append(p.stack, entry{boundary: true, value: p.alloc.New(k)})
}

func (p *pass) pop() entry {
	n := len(p.stack) - 1
	e := p.stack[n]
	p.stack = p.stack[:n]
	return e
}

// peekValue reports the non-boundary value currently on top of the stack,
// if there is one.
func (p *pass) peekValue() (*ast.Ast, bool) {
	if len(p.stack) == 0 {
		return nil, false
	}
	top := p.stack[len(p.stack)-1]
	if top.boundary {
		return nil, false
	}
	return top.value, true
}

func (p *pass) VisitID(n *ast.Ast) ast.Status    { p.push(p.alloc.ID()); return ast.Continue }
func (p *pass) VisitQuote(n *ast.Ast) ast.Status { p.push(p.alloc.Quote(n.Value)); return ast.Continue }
func (p *pass) VisitPlus(n *ast.Ast) ast.Status  { p.push(p.alloc.Plus()); return ast.Continue }

// VisitFst implements the FST/PAIR reduction: FST applied to a literal
// pair is just the pair's left component. Otherwise it behaves like any
// other leaf and copies itself forward unchanged.
func (p *pass) VisitFst(n *ast.Ast) ast.Status {
	if top, ok := p.peekValue(); ok && top.Kind == ast.PAIR {
		p.pop()
		left, right := top.Children[0], top.Children[1]
		p.alloc.Free(right)
		p.alloc.FreeNode(top)
		p.push(left)
		p.mutations++
		return ast.Continue
	}
	p.push(p.alloc.Fst())
	return ast.Continue
}

// VisitSnd implements the SND/PAIR reduction, symmetric to VisitFst.
func (p *pass) VisitSnd(n *ast.Ast) ast.Status {
	if top, ok := p.peekValue(); ok && top.Kind == ast.PAIR {
		p.pop()
		left, right := top.Children[0], top.Children[1]
		p.alloc.Free(left)
		p.alloc.FreeNode(top)
		p.push(right)
		p.mutations++
		return ast.Continue
	}
	p.push(p.alloc.Snd())
	return ast.Continue
}

// VisitApp implements the beta rule: APP applied to a literal pair whose
// left component is a CUR(body) contracts to running body against a
// freshly built (ctx, arg) environment. The pair stays on the stack,
// rewritten in place from (CUR(body), arg) to (ID, arg) — a CAM
// instruction that pairs the surrounding context with arg, exactly the
// environment body now expects — and body itself is pushed as a second,
// sibling instruction right after it, so the enclosing COMP runs them
// back to back in place of the single APP step. Otherwise APP copies
// itself forward unchanged.
func (p *pass) VisitApp(n *ast.Ast) ast.Status {
	if top, ok := p.peekValue(); ok && top.Kind == ast.PAIR && top.Children[0].Kind == ast.CUR {
		cur := top.Children[0]
		arg := top.Children[1]
		body := cur.Children[0]
		top.Children = []*ast.Ast{p.alloc.ID(), arg}
		p.alloc.FreeNode(cur)
		p.mutations++
		p.push(body)
		return ast.Continue
	}
	p.push(p.alloc.App())
	return ast.Continue
}

func (p *pass) PreComp(n *ast.Ast) ast.Status { p.pushBoundary(ast.COMP); return ast.Continue }
func (p *pass) PrePair(n *ast.Ast) ast.Status { p.pushBoundary(ast.PAIR); return ast.Continue }
func (p *pass) PreCur(n *ast.Ast) ast.Status  { p.pushBoundary(ast.CUR); return ast.Continue }

func (p *pass) InPair(n *ast.Ast) ast.Status { return ast.Continue }

// collectChildren pops entries down to (and including) the nearest
// boundary, returning that boundary's shell node plus the survivors in
// left-to-right order. For a COMP boundary, a popped COMP child is
// flattened (its own children spliced in directly, its shell freed) and
// a popped ID child is elided entirely — both forms of "composing with a
// no-op changes nothing" — counting one mutation each.
func (p *pass) collectChildren(kind ast.Kind) (*ast.Ast, []*ast.Ast) {
	var children []*ast.Ast
	for {
		e := p.pop()
		if e.boundary {
			return e.value, children
		}
		node := e.value
		if kind == ast.COMP {
			switch node.Kind {
			case ast.COMP:
				children = append(append([]*ast.Ast{}, node.Children...), children...)
				p.alloc.FreeNode(node)
				p.mutations++
				continue
			case ast.ID:
				p.alloc.FreeNode(node)
				p.mutations++
				continue
			}
		}
		children = append([]*ast.Ast{node}, children...)
	}
}

func (p *pass) PostComp(n *ast.Ast) ast.Status {
	marker, children := p.collectChildren(ast.COMP)
	marker.Children = children
	if len(children) == 0 {
		marker.Kind = ast.ID
	}
	p.push(marker)
	return ast.Continue
}

func (p *pass) PostPair(n *ast.Ast) ast.Status {
	marker, children := p.collectChildren(ast.PAIR)
	marker.Children = children
	p.push(marker)
	return ast.Continue
}

func (p *pass) PostCur(n *ast.Ast) ast.Status {
	marker, children := p.collectChildren(ast.CUR)
	marker.Children = children
	p.push(marker)
	return ast.Continue
}

var _ ast.Visitor = (*pass)(nil)

// Run rewrites root to a local fixed point: it repeats one rewrite pass,
// discarding the previous tree after each iteration, until a pass makes
// zero mutations, grounded on original_source/src/main.c's
// `do { ... } while (optim.cnt != 0)` driver.
func Run(alloc *ast.Allocator, root *ast.Ast) *ast.Ast {
	for {
		p := &pass{alloc: alloc}
		ast.Traverse(root, p)
		alloc.Free(root)
		root = p.pop().value
		if len(p.stack) != 0 {
			panic("optimizer: rewrite stack not empty after a pass")
		}
		if p.mutations == 0 {
			return root
		}
	}
}
