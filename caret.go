package caret

import (
	"github.com/tliron/commonlog"
	"golang.org/x/text/language"
)

var log = commonlog.GetLogger("caret")

// Options configures an Engine.
type Options struct {
	// Root is the traversal boundary. Anchors and weight computation never
	// cross above it. Required; must be a container.
	Root *Node

	// Ignore marks nodes as invisible to navigation (nil: ignore nothing).
	Ignore IgnorePolicy

	// Segment restricts which in-text offsets are legal caret rests
	// (nil: every offset is valid). See GraphemeSegments.
	Segment SegmentPolicy

	// CacheWeights stores computed container weights on the nodes. The cache
	// has no automatic invalidation: after mutating a subtree's content the
	// caller must invalidate through Engine.InvalidateWeight.
	CacheWeights bool

	// CompatScanClamp preserves the historical interior-scan clamp that stops
	// the rightward segment scan at length-1 instead of length. Off by
	// default; the corrected scan can rest at the text's end offset.
	CompatScanClamp bool

	// Language is a BCP 47 tag selecting the QueryError message language.
	// Unrecognized or empty tags fall back to English. No behavioral effect.
	Language string
}

// Engine resolves caret positions over one document tree. It is synchronous
// and performs no locking; callers must serialize tree mutation against
// concurrent navigation themselves.
type Engine struct {
	root            *Node
	ignore          IgnorePolicy
	segment         SegmentPolicy
	cacheWeights    bool
	compatScanClamp bool
	lang            language.Tag

	// The single outstanding placeholder text leaf. Reused while empty;
	// replaced once the caller gives it content. See acquirePlaceholder.
	placeholder *Node
}

// New creates an Engine over the given root.
func New(options Options) (*Engine, error) {
	if options.Root == nil {
		return nil, ErrNoRoot
	}
	if options.Root.kind != KindContainer {
		return nil, ErrNotAContainer
	}
	return &Engine{
		root:            options.Root,
		ignore:          options.Ignore,
		segment:         options.Segment,
		cacheWeights:    options.CacheWeights,
		compatScanClamp: options.CompatScanClamp,
		lang:            matchLanguage(options.Language),
	}, nil
}

// Root returns the configured traversal boundary.
func (e *Engine) Root() *Node {
	return e.root
}

// FirstAnchor returns the first valid caret position in the document.
func (e *Engine) FirstAnchor() (Anchor, error) {
	a, qerr := e.boundaryAnchor(e.root, DirLeft, "FirstAnchor")
	return a, errValue(qerr)
}

// LastAnchor returns the last valid caret position in the document.
func (e *Engine) LastAnchor() (Anchor, error) {
	a, qerr := e.boundaryAnchor(e.root, DirRight, "LastAnchor")
	return a, errValue(qerr)
}

// fail builds a localized QueryError for the given code.
func (e *Engine) fail(code ErrorCode, location string, context map[string]any) *QueryError {
	return &QueryError{
		Code:     code,
		Message:  messageFor(e.lang, code),
		Location: location,
		Context:  context,
	}
}

// underRoot reports whether n is the root or one of its descendants.
func (e *Engine) underRoot(n *Node) bool {
	for cur := n; cur != nil; cur = cur.parent {
		if cur == e.root {
			return true
		}
	}
	return false
}

// Range is a read-only projection of an externally supplied selection.
type Range struct {
	Start     Anchor
	End       Anchor
	Collapsed bool
}

// NewRange projects a selection range. Collapsed is derived once; the range
// is never updated afterwards.
func NewRange(start, end Anchor) Range {
	return Range{Start: start, End: end, Collapsed: start == end}
}
