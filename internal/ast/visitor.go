package ast

// Status is the result of a visitor hook: whether Traverse should recurse
// into the node's children.
type Status int

const (
	// Continue recurses into the node's children, if any.
	Continue Status = iota
	// Skip does not recurse into the node's children.
	Skip
)

// Visitor is the thirteen-hook traversal protocol, one hook per (Kind,
// phase) pair. COMP, PAIR and CUR are the only kinds with
// children, so they alone have distinct pre/post hooks; PAIR additionally
// has an in-hook fired between its left and right subtree.
type Visitor interface {
	VisitID(n *Ast) Status
	VisitApp(n *Ast) Status
	VisitQuote(n *Ast) Status
	VisitPlus(n *Ast) Status
	VisitFst(n *Ast) Status
	VisitSnd(n *Ast) Status

	PreComp(n *Ast) Status
	PostComp(n *Ast) Status

	PrePair(n *Ast) Status
	InPair(n *Ast) Status
	PostPair(n *Ast) Status

	PreCur(n *Ast) Status
	PostCur(n *Ast) Status
}

// BaseVisitor implements every hook as a no-op returning Continue, the Go
// equivalent of original_source/src/ast.c's VisitDefault. Embed it to
// override only the hooks a particular pass cares about.
type BaseVisitor struct{}

func (BaseVisitor) VisitID(*Ast) Status    { return Continue }
func (BaseVisitor) VisitApp(*Ast) Status   { return Continue }
func (BaseVisitor) VisitQuote(*Ast) Status { return Continue }
func (BaseVisitor) VisitPlus(*Ast) Status  { return Continue }
func (BaseVisitor) VisitFst(*Ast) Status   { return Continue }
func (BaseVisitor) VisitSnd(*Ast) Status   { return Continue }

func (BaseVisitor) PreComp(*Ast) Status  { return Continue }
func (BaseVisitor) PostComp(*Ast) Status { return Continue }

func (BaseVisitor) PrePair(*Ast) Status  { return Continue }
func (BaseVisitor) InPair(*Ast) Status   { return Continue }
func (BaseVisitor) PostPair(*Ast) Status { return Continue }

func (BaseVisitor) PreCur(*Ast) Status  { return Continue }
func (BaseVisitor) PostCur(*Ast) Status { return Continue }

// Traverse drives v over n following the pre/in/post protocol.
//
// The post-hook for COMP/PAIR/CUR always fires once traversal of that
// node's children (or the decision not to recurse) is done, regardless of
// whether the pre-hook returned Skip — matching the unconditional final
// dispatch in original_source/src/ast.c's Ast_Traverse.
func Traverse(n *Ast, v Visitor) Status {
	var sc Status
	switch n.Kind {
	case ID:
		sc = v.VisitID(n)
	case APP:
		sc = v.VisitApp(n)
	case QUOTE:
		sc = v.VisitQuote(n)
	case PLUS:
		sc = v.VisitPlus(n)
	case FST:
		sc = v.VisitFst(n)
	case SND:
		sc = v.VisitSnd(n)
	case COMP:
		sc = v.PreComp(n)
	case PAIR:
		sc = v.PrePair(n)
	case CUR:
		sc = v.PreCur(n)
	}

	if sc == Continue && len(n.Children) > 0 {
		Traverse(n.Children[0], v)
		if n.Kind == PAIR {
			v.InPair(n)
		}
		for _, c := range n.Children[1:] {
			Traverse(c, v)
		}
	}

	switch n.Kind {
	case COMP:
		v.PostComp(n)
	case PAIR:
		v.PostPair(n)
	case CUR:
		v.PostCur(n)
	}

	return sc
}
