// Package caret computes caret positions over a mixed document tree of
// containers and text leaves: horizontal neighbor resolution with
// caller-defined ignorable-node and text-segment policies, and conversion
// between tree anchors and a single linear offset using cached subtree
// weights.
package caret

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Navigation errors
var (
	// ErrAtBoundary indicates that no neighbor exists in the requested
	// direction. This is the expected outcome at the document edges, not a
	// misuse of the API.
	ErrAtBoundary = errors.New("no neighbor in the requested direction")

	// ErrInvalidDirection indicates a direction that is neither left nor right.
	ErrInvalidDirection = errors.New("direction must be left or right")

	// ErrInvalidBoundaryDirection indicates that boundary resolution was given
	// a direction it cannot handle.
	ErrInvalidBoundaryDirection = errors.New("boundary resolution requires a left or right direction")

	// ErrInvalidAnchor indicates that an anchor's node kind or offset does not
	// match the operation.
	ErrInvalidAnchor = errors.New("anchor does not match the operation")
)

// Offset conversion errors
var (
	// ErrInvalidSearch indicates an offset beyond a text leaf's content.
	ErrInvalidSearch = errors.New("offset exceeds text length")

	// ErrOffsetOutOfRange indicates an offset outside the document's
	// addressable range.
	ErrOffsetOutOfRange = errors.New("offset outside the addressable range")

	// ErrInvalidOffsetAnchor indicates that the ascent from an anchor cannot
	// reach the configured root.
	ErrInvalidOffsetAnchor = errors.New("anchor cannot reach the configured root")
)

// Tree structure errors
var (
	// ErrNotAContainer indicates that an operation expected a container node.
	ErrNotAContainer = errors.New("expected container node")

	// ErrNotAText indicates that an operation expected a text leaf.
	ErrNotAText = errors.New("expected text leaf")

	// ErrNotAChild indicates that a reference node does not belong to the
	// parent it was used with.
	ErrNotAChild = errors.New("node is not a child of this parent")

	// ErrInternal indicates an internal consistency error (should not happen).
	ErrInternal = errors.New("internal error")
)

// Configuration errors
var (
	// ErrNoRoot indicates that no root node was provided in Options.
	ErrNoRoot = errors.New("no root node provided")

	// ErrNotSupported indicates that an optional operation is not supported.
	ErrNotSupported = errors.New("operation not supported")
)

// ErrorCode identifies a failure kind in a QueryError.
type ErrorCode string

const (
	CodeAtBoundary               ErrorCode = "AtBoundary"
	CodeInvalidDirection         ErrorCode = "InvalidDirection"
	CodeInvalidBoundaryDirection ErrorCode = "InvalidBoundaryDirection"
	CodeInvalidAnchor            ErrorCode = "InvalidAnchor"
	CodeInvalidSearch            ErrorCode = "InvalidSearch"
	CodeOffsetOutOfRange         ErrorCode = "OffsetOutOfRange"
	CodeInvalidOffsetAnchor      ErrorCode = "InvalidOffsetAnchor"
	CodeInternal                 ErrorCode = "Internal"
	CodeNotSupported             ErrorCode = "NotSupported"
)

// codeSentinels maps each code to the sentinel matched by errors.Is.
var codeSentinels = map[ErrorCode]error{
	CodeAtBoundary:               ErrAtBoundary,
	CodeInvalidDirection:         ErrInvalidDirection,
	CodeInvalidBoundaryDirection: ErrInvalidBoundaryDirection,
	CodeInvalidAnchor:            ErrInvalidAnchor,
	CodeInvalidSearch:            ErrInvalidSearch,
	CodeOffsetOutOfRange:         ErrOffsetOutOfRange,
	CodeInvalidOffsetAnchor:      ErrInvalidOffsetAnchor,
	CodeInternal:                 ErrInternal,
	CodeNotSupported:             ErrNotSupported,
}

// QueryError is the structured failure reported by engine operations.
// Message is localized per the engine's configured language; Location names
// the operation that failed; Context carries optional detail values.
type QueryError struct {
	Code     ErrorCode
	Message  string
	Location string
	Context  map[string]any
}

// Error implements the error interface.
func (e *QueryError) Error() string {
	var b strings.Builder
	if e.Location != "" {
		b.WriteString(e.Location)
		b.WriteString(": ")
	}
	b.WriteString(e.Message)
	if len(e.Context) > 0 {
		keys := make([]string, 0, len(e.Context))
		for k := range e.Context {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		b.WriteString(" (")
		for i, k := range keys {
			if i > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "%s=%v", k, e.Context[k])
		}
		b.WriteString(")")
	}
	return b.String()
}

// Unwrap maps the code back to its sentinel so errors.Is works.
func (e *QueryError) Unwrap() error {
	return codeSentinels[e.Code]
}

// errValue converts a *QueryError to a plain error without wrapping a typed
// nil into a non-nil interface.
func errValue(qerr *QueryError) error {
	if qerr == nil {
		return nil
	}
	return qerr
}
