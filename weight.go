package caret

// Weight returns the linear-offset size of a node's subtree: rune count for
// a text leaf; for a container, the summed weight of its visible children
// plus one offset unit per marker (single-closing containers have one
// marker, all others two). Ignorable nodes weigh nothing.
//
// With Options.CacheWeights the computed container weight is stored on the
// node and reused until explicitly invalidated; the engine never detects
// staleness on its own.
func (e *Engine) Weight(node *Node) int {
	if e.ignored(node) {
		return 0
	}
	switch node.kind {
	case KindText:
		return node.RuneLen()
	case KindContainer:
		if e.cacheWeights && node.weightCached {
			return node.cachedWeight
		}
		w := 0
		for _, child := range node.children {
			w += e.Weight(child)
		}
		if node.singleClosing {
			w++
		} else {
			w += 2
		}
		if e.cacheWeights {
			node.cachedWeight = w
			node.weightCached = true
		}
		return w
	default:
		return 0
	}
}

// TotalWeight returns the weight of the whole document.
func (e *Engine) TotalWeight() int {
	return e.Weight(e.root)
}

// InvalidateWeight drops the cached weight of node and every ancestor up to
// the root. Callers must invoke this after mutating content anywhere under a
// cached container; stale caches silently corrupt offset conversion.
func (e *Engine) InvalidateWeight(node *Node) {
	for cur := node; cur != nil; cur = cur.parent {
		cur.weightCached = false
	}
}

// AnchorByOffset converts a linear document offset into a tree anchor,
// walking down from the root and consuming cached subtree weights to skip
// whole siblings. Offset 0 is the first caret position in the document.
func (e *Engine) AnchorByOffset(offset int) (Anchor, error) {
	a, qerr := e.anchorByOffsetIn(e.root, offset, "AnchorByOffset")
	return a, errValue(qerr)
}

// AnchorByOffsetIn is AnchorByOffset relative to a subtree: offset counts
// from the first caret position inside base. A text base resolves the
// offset directly within its content.
func (e *Engine) AnchorByOffsetIn(base *Node, offset int) (Anchor, error) {
	a, qerr := e.anchorByOffsetIn(base, offset, "AnchorByOffsetIn")
	return a, errValue(qerr)
}

func (e *Engine) anchorByOffsetIn(base *Node, offset int, location string) (Anchor, *QueryError) {
	if offset < 0 {
		return Anchor{}, e.fail(CodeOffsetOutOfRange, location, map[string]any{"offset": offset})
	}
	switch base.kind {
	case KindText:
		if offset > base.RuneLen() {
			return Anchor{}, e.fail(CodeInvalidSearch, location, map[string]any{"offset": offset, "length": base.RuneLen()})
		}
		return Anchor{Node: base, Offset: offset}, nil
	case KindContainer:
		// The +1 mirrors the root adjustment of OffsetByAnchor: budget is
		// measured from just outside the container, whose open marker the
		// first inner position sits behind.
		return e.descendByWeight(base, offset+1, location)
	default:
		return Anchor{}, e.fail(CodeInvalidAnchor, location, map[string]any{"kind": base.kind.String()})
	}
}

// descendByWeight scans a container's visible children left to right,
// spending budget against their weights: an exact match is the gap after
// that child, a smaller budget descends into the child (a container's open
// marker costs one unit on the way in).
func (e *Engine) descendByWeight(node *Node, budget int, location string) (Anchor, *QueryError) {
	for i, child := range node.children {
		if e.ignored(child) {
			continue
		}
		w := e.Weight(child)
		switch {
		case budget == w:
			return Anchor{Node: node, Offset: i + 1}, nil
		case budget < w:
			if child.kind == KindText {
				return Anchor{Node: child, Offset: budget}, nil
			}
			if budget == 0 {
				// Not enough left to cross the open marker; rest in the gap
				// before the child.
				return Anchor{Node: node, Offset: i}, nil
			}
			return e.descendByWeight(child, budget-1, location)
		default:
			budget -= w
		}
	}
	if budget <= 1 {
		return Anchor{Node: node, Offset: node.ChildCount()}, nil
	}
	return Anchor{}, e.fail(CodeOffsetOutOfRange, location, map[string]any{"remaining": budget})
}

// OffsetByAnchor converts a tree anchor into its linear document offset by
// accumulating the weights of everything before it: the in-leaf offset (or
// preceding children plus the open marker for a container anchor), then the
// visible left siblings at each level of the ascent. The final value is
// shifted by -1 so the root's first gap maps to offset 0.
func (e *Engine) OffsetByAnchor(a Anchor) (int, error) {
	offset, qerr := e.offsetByAnchor(a, "OffsetByAnchor")
	return offset, errValue(qerr)
}

func (e *Engine) offsetByAnchor(a Anchor, location string) (int, *QueryError) {
	if a.Node == nil {
		return 0, e.fail(CodeInvalidAnchor, location, nil)
	}

	var acc int
	switch a.Node.kind {
	case KindText:
		if a.Offset < 0 || a.Offset > a.Node.RuneLen() {
			return 0, e.fail(CodeInvalidAnchor, location, map[string]any{"offset": a.Offset})
		}
		acc = a.Offset
	case KindContainer:
		if a.Offset < 0 || a.Offset > a.Node.ChildCount() {
			return 0, e.fail(CodeInvalidAnchor, location, map[string]any{"offset": a.Offset})
		}
		acc = 1
		for _, child := range a.Node.children[:a.Offset] {
			acc += e.Weight(child)
		}
	default:
		return 0, e.fail(CodeInvalidAnchor, location, map[string]any{"kind": a.Node.kind.String()})
	}

	for cur := a.Node; cur != e.root; {
		parent := cur.parent
		if parent == nil {
			return 0, e.fail(CodeInvalidOffsetAnchor, location, nil)
		}
		for sib := e.findSibling(cur, DirLeft); sib != nil; sib = e.findSibling(sib, DirLeft) {
			acc += e.Weight(sib)
		}
		if parent != e.root {
			// Crossing into a non-root parent spends its open marker; the
			// root has none.
			acc++
		}
		cur = parent
	}
	return acc - 1, nil
}
