package caret

// Direction selects the side a navigation step moves toward.
type Direction int

const (
	// DirLeft moves toward the document start.
	DirLeft Direction = iota

	// DirRight moves toward the document end.
	DirRight
)

// String returns "left" or "right".
func (d Direction) String() string {
	switch d {
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "invalid"
	}
}

func (d Direction) valid() bool {
	return d == DirLeft || d == DirRight
}

func (d Direction) opposite() Direction {
	if d == DirLeft {
		return DirRight
	}
	return DirLeft
}

// sibling returns n's immediate sibling in the given direction, or nil.
func sibling(n *Node, dir Direction) *Node {
	if dir == DirLeft {
		return n.PrevSibling()
	}
	return n.NextSibling()
}

// findSibling walks n's sibling chain in the given direction and returns the
// first sibling that is visible to navigation, or nil when the chain is
// exhausted. Skipped along the way: ignorable nodes, and empty text leaves
// followed (in the same direction) by another text leaf, so that a run of
// adjacent empty texts collapses to its last member. No side effects.
func (e *Engine) findSibling(n *Node, dir Direction) *Node {
	for s := sibling(n, dir); s != nil; s = sibling(s, dir) {
		if e.ignored(s) {
			continue
		}
		if s.kind == KindText && s.RuneLen() == 0 {
			if next := sibling(s, dir); next != nil && next.kind == KindText {
				continue
			}
		}
		return s
	}
	return nil
}
