package caret

// Anchor is a caret position: a node plus an offset. For a text leaf the
// offset addresses a rune boundary in [0, RuneLen]. For a container it
// addresses a gap between children in [0, ChildCount], where ChildCount
// means "after the last child".
type Anchor struct {
	Node   *Node
	Offset int
}

// Stride is reserved for vertical (line-based) movement and has no effect on
// horizontal navigation.
type Stride int

const (
	// StrideCharacter is the default horizontal stride.
	StrideCharacter Stride = iota

	// StrideLine is reserved for vertical navigation.
	StrideLine
)

// Step is a navigation request.
type Step struct {
	Direction Direction
	Stride    Stride
}

// NeighborResult is the complete transition record of one navigation step:
// the original anchor, the resolved neighbor (nil on failure), whether the
// caret left its node, and the step that was applied.
type NeighborResult struct {
	Prev        Anchor
	Next        *Anchor
	Step        Step
	NodeChanged bool
	Err         *QueryError
}

// maxTraversalDepth bounds the mutual recursion between anchor normalization
// and neighbor dispatch. Normalization recurses at most once per tree level,
// so hitting the bound means a malformed (cyclic) tree.
const maxTraversalDepth = 1024

// HorizontalNeighbor resolves the caret position one step to the left or
// right of anchor, skipping ignorable nodes and offsets rejected by the
// segment policy. ErrAtBoundary reports that no neighbor exists in the
// requested direction; the other error kinds indicate caller misuse.
func (e *Engine) HorizontalNeighbor(anchor Anchor, step Step) NeighborResult {
	result := NeighborResult{Prev: anchor, Step: step}

	if !step.Direction.valid() {
		result.Err = e.fail(CodeInvalidDirection, "HorizontalNeighbor", map[string]any{"direction": int(step.Direction)})
		return result
	}
	if qerr := e.checkAnchor(anchor, "HorizontalNeighbor"); qerr != nil {
		result.Err = qerr
		return result
	}

	next, qerr := e.resolveNeighbor(anchor, step, 0)
	if qerr != nil {
		result.Err = qerr
		return result
	}
	result.Next = &next
	result.NodeChanged = next.Node != anchor.Node
	log.Debugf("neighbor %s: %s[%d] -> %s[%d]", step.Direction, anchor.Node.kind, anchor.Offset, next.Node.kind, next.Offset)
	return result
}

// VerticalNeighbor is deliberately unimplemented; line-based movement is
// outside this engine.
func (e *Engine) VerticalNeighbor(anchor Anchor, step Step) NeighborResult {
	return NeighborResult{
		Prev: anchor,
		Step: step,
		Err:  e.fail(CodeNotSupported, "VerticalNeighbor", nil),
	}
}

// checkAnchor validates that an anchor points at a navigable node reachable
// from the root, with an offset inside the node's addressable range.
func (e *Engine) checkAnchor(a Anchor, location string) *QueryError {
	if a.Node == nil || !e.underRoot(a.Node) {
		return e.fail(CodeInvalidAnchor, location, map[string]any{"reason": "node not under root"})
	}
	switch a.Node.kind {
	case KindText:
		if a.Offset < 0 || a.Offset > a.Node.RuneLen() {
			return e.fail(CodeInvalidAnchor, location, map[string]any{"offset": a.Offset})
		}
	case KindContainer:
		if a.Offset < 0 || a.Offset > a.Node.ChildCount() {
			return e.fail(CodeInvalidAnchor, location, map[string]any{"offset": a.Offset})
		}
	default:
		return e.fail(CodeInvalidAnchor, location, map[string]any{"kind": a.Node.kind.String()})
	}
	return nil
}

// resolveNeighbor dispatches one navigation step. Text anchors sitting at
// the edge nearest the direction take the sibling/ancestor path; interior
// text anchors step within the leaf; container anchors are normalized to a
// text-relative anchor first and re-dispatched.
func (e *Engine) resolveNeighbor(a Anchor, step Step, depth int) (Anchor, *QueryError) {
	if depth > maxTraversalDepth {
		return Anchor{}, e.fail(CodeInternal, "resolveNeighbor", map[string]any{"depth": depth})
	}
	switch a.Node.kind {
	case KindText:
		atEdge := (step.Direction == DirLeft && a.Offset == 0) ||
			(step.Direction == DirRight && a.Offset == a.Node.RuneLen())
		if atEdge {
			return e.edgeNeighbor(a, step.Direction)
		}
		return e.interiorNeighbor(a, step.Direction), nil
	case KindContainer:
		return e.normalizedNeighbor(a, step, depth)
	default:
		return Anchor{}, e.fail(CodeInvalidAnchor, "resolveNeighbor", map[string]any{"kind": a.Node.kind.String()})
	}
}

// interiorNeighbor handles a caret strictly inside a text leaf: step the
// offset once, then keep stepping while the segment policy rejects the
// candidate, clamping at the near edge if the scan exhausts the content.
func (e *Engine) interiorNeighbor(a Anchor, dir Direction) Anchor {
	if dir == DirLeft {
		offset := a.Offset - 1
		for offset > 0 && !e.validSegment(a, offset) {
			offset--
		}
		return Anchor{Node: a.Node, Offset: offset}
	}

	limit := a.Node.RuneLen()
	if e.compatScanClamp {
		// Historical clamp: the scan stops one short of the end offset.
		limit = a.Node.RuneLen() - 1
	}
	offset := a.Offset + 1
	for offset < limit && !e.validSegment(a, offset) {
		offset++
	}
	return Anchor{Node: a.Node, Offset: offset}
}

// edgeNeighbor handles a caret at the edge of its text leaf nearest the
// direction of travel. The next visible sibling is entered from the
// opposite side, so the caret lands adjacent to the gap it just crossed.
// With no sibling the walk moves up one level; when even the parent has no
// sibling to enter, the placeholder is synthesized beside the parent.
func (e *Engine) edgeNeighbor(a Anchor, dir Direction) (Anchor, *QueryError) {
	const location = "edgeNeighbor"

	if sib := e.findSibling(a.Node, dir); sib != nil {
		return e.boundaryAnchor(sib, dir.opposite(), location)
	}

	parent := a.Node.parent
	if parent == nil || parent == e.root {
		return Anchor{}, e.fail(CodeAtBoundary, location, map[string]any{"direction": dir.String()})
	}

	if sib := e.findSibling(parent, dir); sib != nil {
		return e.boundaryAnchor(sib, dir.opposite(), location)
	}

	// Nothing to enter beyond the parent either; give the caret a synthetic
	// text position beside it.
	ph := e.acquirePlaceholder()
	var err error
	if dir == DirLeft {
		err = parent.parent.InsertChildBefore(ph, parent)
	} else {
		err = parent.parent.InsertChildAfter(ph, parent)
	}
	if err != nil {
		return Anchor{}, e.fail(CodeInternal, location, map[string]any{"insert": err.Error()})
	}
	return Anchor{Node: ph, Offset: 0}, nil
}

// normalizedNeighbor rewrites a container-relative anchor to a text-relative
// one, preferring the child already adjacent to the gap so the visual caret
// position is preserved, then re-dispatches. When neither neighbor of the
// gap is a text leaf the placeholder is inserted into the gap itself.
func (e *Engine) normalizedNeighbor(a Anchor, step Step, depth int) (Anchor, *QueryError) {
	node := a.Node
	if node.kind != KindContainer {
		return Anchor{}, e.fail(CodeInvalidAnchor, "normalizedNeighbor", map[string]any{"kind": node.kind.String()})
	}

	if child := node.Child(a.Offset); child != nil && child.kind == KindText {
		return e.resolveNeighbor(Anchor{Node: child, Offset: 0}, step, depth+1)
	}
	if child := node.Child(a.Offset - 1); child != nil && child.kind == KindText {
		return e.resolveNeighbor(Anchor{Node: child, Offset: child.RuneLen()}, step, depth+1)
	}

	ph := e.acquirePlaceholder()
	var err error
	if a.Offset >= node.ChildCount() {
		err = node.AppendChild(ph)
	} else {
		err = node.InsertChildBefore(ph, node.children[a.Offset])
	}
	if err != nil {
		return Anchor{}, e.fail(CodeInternal, "normalizedNeighbor", map[string]any{"insert": err.Error()})
	}
	return e.resolveNeighbor(Anchor{Node: ph, Offset: 0}, step, depth+1)
}
