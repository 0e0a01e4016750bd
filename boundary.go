package caret

// BoundaryAnchor computes the entry caret position inside node when arriving
// from the given side: DirLeft yields the first valid position scanning from
// the left edge, DirRight the last position scanning from the right edge.
//
// A container with no visible children has no internal anchor; the engine's
// placeholder text leaf is inserted as the container's next sibling (or as
// its last child when the container is the root) and the anchor points into
// the placeholder.
func (e *Engine) BoundaryAnchor(node *Node, dir Direction) (Anchor, error) {
	a, qerr := e.boundaryAnchor(node, dir, "BoundaryAnchor")
	return a, errValue(qerr)
}

func (e *Engine) boundaryAnchor(node *Node, dir Direction, location string) (Anchor, *QueryError) {
	if !dir.valid() {
		return Anchor{}, e.fail(CodeInvalidBoundaryDirection, location, map[string]any{"direction": int(dir)})
	}
	switch node.kind {
	case KindText:
		if dir == DirLeft {
			return Anchor{Node: node, Offset: 0}, nil
		}
		return Anchor{Node: node, Offset: node.RuneLen()}, nil

	case KindContainer:
		if dir == DirLeft {
			for i, child := range node.children {
				if e.ignored(child) {
					continue
				}
				if child.kind == KindText {
					return Anchor{Node: child, Offset: 0}, nil
				}
				return Anchor{Node: node, Offset: i}, nil
			}
		} else {
			for i := len(node.children) - 1; i >= 0; i-- {
				child := node.children[i]
				if e.ignored(child) {
					continue
				}
				if child.kind == KindText {
					return Anchor{Node: child, Offset: child.RuneLen()}, nil
				}
				return Anchor{Node: node, Offset: i + 1}, nil
			}
		}
		// No visible child to anchor in; fall back to the placeholder.
		return e.placeholderBeside(node, location)

	default:
		return Anchor{}, e.fail(CodeInvalidAnchor, location, map[string]any{"kind": node.kind.String()})
	}
}

// placeholderBeside inserts the placeholder next to an empty container and
// returns an anchor at its start. The root cannot have siblings, so there
// the placeholder becomes the last child instead.
func (e *Engine) placeholderBeside(node *Node, location string) (Anchor, *QueryError) {
	ph := e.acquirePlaceholder()
	var err error
	if node.parent == nil {
		err = node.AppendChild(ph)
	} else {
		err = node.parent.InsertChildAfter(ph, node)
	}
	if err != nil {
		return Anchor{}, e.fail(CodeInternal, location, map[string]any{"insert": err.Error()})
	}
	return Anchor{Node: ph, Offset: 0}, nil
}

// acquirePlaceholder returns the engine's single outstanding placeholder
// text leaf, detaching it from wherever it currently sits. A fresh node is
// allocated only once the previous placeholder has been given content by
// the caller.
func (e *Engine) acquirePlaceholder() *Node {
	ph := e.placeholder
	if ph == nil || ph.RuneLen() > 0 {
		ph = NewText("")
		e.placeholder = ph
		log.Debugf("allocated placeholder")
	} else {
		ph.Detach()
	}
	return ph
}
