// Package dierr implements the structured error kinds normalization can
// emit. Message rendering lives here, next to the producers' constructors
// (expand for normalization errors, the di storage bridge for
// KindSelfLoop), but callers that want to branch on the failure kind should
// use Kind rather than string matching.
package dierr

import (
	"fmt"
	"strings"

	"github.com/injectkit/injectkit/typeid"
)

// Kind identifies which of the normalization error categories occurred.
type Kind int

const (
	KindMultipleBindings Kind = iota
	KindSelfLoop
	KindLazyComponentInstallationLoop
	KindIncompatibleReplacements
	KindReplacementAfterExpansion
)

// Error is the structured error normalization returns: expand.Run stops at
// the first fatal inconsistency and returns it as an *Error; there is no
// separate emit callback. It carries enough structure for a caller to render its own
// message; Error() is provided for convenience and for compatibility with
// the stdlib error interface.
type Error struct {
	kind Kind

	typeID typeid.TypeId
	path   []string

	target      string
	replacement string
	other       string
}

func (e *Error) Kind() Kind {
	return e.kind
}

// TypeID is populated for KindMultipleBindings and KindSelfLoop.
func (e *Error) TypeID() typeid.TypeId {
	return e.typeID
}

// Path is populated for KindSelfLoop and KindLazyComponentInstallationLoop.
func (e *Error) Path() []string {
	return e.path
}

func (e *Error) Error() string {
	switch e.kind {
	case KindMultipleBindings:
		return fmt.Sprintf("multiple bindings for %s", e.typeID)
	case KindSelfLoop:
		return fmt.Sprintf("dependency self-loop: %s", strings.Join(e.path, " -> "))
	case KindLazyComponentInstallationLoop:
		return fmt.Sprintf("lazy component installation loop: %s", strings.Join(e.path, " -> "))
	case KindIncompatibleReplacements:
		return fmt.Sprintf("incompatible replacements for %s: %s and %s", e.target, e.replacement, e.other)
	case KindReplacementAfterExpansion:
		return fmt.Sprintf("replacement %s declared after %s was already fully expanded", e.replacement, e.target)
	default:
		return "unknown normalization error"
	}
}

// NewMultipleBindings reports two non-equivalent bindings for t.
func NewMultipleBindings(t typeid.TypeId) *Error {
	return &Error{kind: KindMultipleBindings, typeID: t}
}

// NewSelfLoop reports a dependency closure that reaches back to its own
// origin. path lists the TypeId names from the origin back to itself.
func NewSelfLoop(t typeid.TypeId, path []string) *Error {
	return &Error{kind: KindSelfLoop, typeID: t, path: path}
}

// NewLazyComponentInstallationLoop reports a cyclic install graph. path
// lists component identities from the repeat point back to itself.
func NewLazyComponentInstallationLoop(path []string) *Error {
	return &Error{kind: KindLazyComponentInstallationLoop, path: path}
}

// NewIncompatibleReplacements reports two distinct replacements declared
// for the same target.
func NewIncompatibleReplacements(target, a, b string) *Error {
	return &Error{kind: KindIncompatibleReplacements, target: target, replacement: a, other: b}
}

// NewReplacementAfterExpansion reports that a replacement was declared
// after its target had already been fully expanded.
func NewReplacementAfterExpansion(target, replacement string) *Error {
	return &Error{kind: KindReplacementAfterExpansion, target: target, replacement: replacement}
}
