package erasure

import "fmt"

// Dependency describes the relationship to a service: an identity plus a
// behaviour flag telling the injector how to resolve and present it.
type Dependency interface {
	fmt.Stringer
	// Id returns the string identity shared by every behaviour view of the
	// same underlying token.
	Id() string
	// Flag carries the behaviour bits (resolution strategy) ORed with the
	// multi/item bits (cardinality).
	Flag() int
}

// Behaviour bits describe how a resolved value is presented to its
// consumer; exactly one is set per concrete token view.
const (
	// IDENTITY resolves eagerly as the bare value; failure fails resolution.
	IDENTITY = 1 << iota
	// OPTION resolves eagerly as an [Option], turning a missing provider
	// into [option.None] instead of a failure.
	OPTION
	// IOEITHER resolves lazily as a memoized [IOResult].
	IOEITHER
	// IOOPTION resolves lazily as a memoized [IOOption].
	IOOPTION

	// MULTI marks the container view of a multibinding (the `[]T` token).
	MULTI
	// ITEM marks a single contribution to a multibinding.
	ITEM
)

// BehaviourMask isolates the resolution-strategy bits from the
// cardinality bits (MULTI, ITEM) when masking a token's Flag.
const BehaviourMask = IDENTITY | OPTION | IOEITHER | IOOPTION
