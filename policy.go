package caret

import "github.com/rivo/uniseg"

// IgnorePolicy reports whether a node is invisible to navigation. Ignorable
// nodes are transparent everywhere: sibling walks and boundary scans skip
// them and they contribute nothing to subtree weight. A nil policy ignores
// nothing; nodes of KindOther are always ignored regardless of policy.
type IgnorePolicy func(n *Node) bool

// SegmentPolicy reports whether offset is a legal caret rest inside the text
// leaf of anchor a. Interior navigation keeps stepping while the policy
// rejects the candidate offset, which is how composed-character boundaries
// are skipped. A nil policy accepts every offset.
type SegmentPolicy func(a Anchor, offset int) bool

// GraphemeSegments is a SegmentPolicy that only allows caret rests on
// grapheme cluster boundaries, so navigation never stops inside a combined
// emoji or a composed Hangul syllable.
func GraphemeSegments(a Anchor, offset int) bool {
	if a.Node == nil || a.Node.Kind() != KindText {
		return true
	}
	if offset <= 0 || offset >= a.Node.RuneLen() {
		return true
	}
	boundary := 0
	g := uniseg.NewGraphemes(a.Node.Text())
	for g.Next() {
		boundary += len(g.Runes())
		if boundary == offset {
			return true
		}
		if boundary > offset {
			return false
		}
	}
	return boundary == offset
}

// ignored reports whether traversal must skip the node: KindOther always,
// otherwise per the configured policy.
func (e *Engine) ignored(n *Node) bool {
	if n.kind == KindOther {
		return true
	}
	return e.ignore != nil && e.ignore(n)
}

// validSegment applies the configured segment policy.
func (e *Engine) validSegment(a Anchor, offset int) bool {
	return e.segment == nil || e.segment(a, offset)
}
