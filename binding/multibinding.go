package binding

import "github.com/injectkit/injectkit/typeid"

// MultibindingEntry is one contribution to a multibinding set, carrying
// just enough to materialize its value later.
type MultibindingEntry struct {
	Create func() (any, error)
}

// MultibindingList is the ordered, duplicate-preserving list of
// contributions collected for one TypeId, plus the thunk that assembles
// them into the final container value.
type MultibindingList struct {
	Type          typeid.TypeId
	Items         []MultibindingEntry
	VectorCreator func(elements []any) any
}

// MultibindingSet maps a TypeId to the ordered multibinding contributions
// registered for it.
type MultibindingSet map[typeid.TypeId]*MultibindingList

// Accumulator is the working state behind the multibinding merge: it folds
// Multibinding/MultibindingVectorCreator entries, in arrival order, into a
// MultibindingSet.
type Accumulator struct {
	lists map[typeid.TypeId]*MultibindingList
	order []typeid.TypeId
}

// NewAccumulator creates an empty Accumulator.
func NewAccumulator() *Accumulator {
	return &Accumulator{lists: make(map[typeid.TypeId]*MultibindingList)}
}

func (a *Accumulator) listFor(t typeid.TypeId) *MultibindingList {
	l, ok := a.lists[t]
	if !ok {
		l = &MultibindingList{Type: t}
		a.lists[t] = l
		a.order = append(a.order, t)
	}
	return l
}

// AddMultibinding appends one element to t's list. Duplicates are
// intentional: adding the same multibinding n times yields n entries.
func (a *Accumulator) AddMultibinding(t typeid.TypeId, create func() (any, error)) {
	l := a.listFor(t)
	l.Items = append(l.Items, MultibindingEntry{Create: create})
}

// SetVectorCreator installs (or replaces) the materializer for t's list.
// When several equivalent vector-creator thunks are emitted for the same
// TypeId, the last one wins, since they are assumed interchangeable.
func (a *Accumulator) SetVectorCreator(t typeid.TypeId, materialize func(elements []any) any) {
	l := a.listFor(t)
	l.VectorCreator = materialize
}

// Finalize returns the accumulated MultibindingSet. Iteration order of the
// returned map is unspecified, as Go maps always are; MultibindingList.Items
// preserves first-appearance order within each TypeId, which is the
// ordering guarantee multibindings actually require.
func (a *Accumulator) Finalize() MultibindingSet {
	return MultibindingSet(a.lists)
}
