// Package storage implements the immutable, lookup-ready structure the
// injector consumes once normalization has finished.
package storage

import (
	"github.com/injectkit/injectkit/binding"
	"github.com/injectkit/injectkit/compress"
	"github.com/injectkit/injectkit/entry"
	"github.com/injectkit/injectkit/typeid"
)

// AllocatorSizing is the fixed-size allocator sizing contract from
// the sum of the per-binding allocation requirements, written
// once during normalization and read-only thereafter.
type AllocatorSizing struct {
	Size  uintptr
	Align uintptr
}

// Storage is the immutable NormalizedComponentStorage: a BindingTable, a
// MultibindingSet, the allocator sizing, and (when normalization ran in
// undoable mode) the compression undo records.
type Storage struct {
	table         *binding.Table
	multibindings binding.MultibindingSet
	sizing        AllocatorSizing
	undo          compress.UndoMap

	// implToIface indexes, for every compression this storage still has
	// an undo record for, which interface TypeId collapsed which impl
	// TypeId. It lets Lookup self-heal when an overlay asks for a
	// concrete type an earlier compression folded away (see compress,
	// "why undoability").
	implToIface map[typeid.TypeId]typeid.TypeId
}

// Build assembles the final Storage from the pieces an expand.Run call
// produced. It is the thin, lookup-ready wrapper described for the
// binding table, extended to also freeze the multibinding set and undo
// records.
func Build(table *binding.Table, multibindings binding.MultibindingSet, sizing AllocatorSizing, undo compress.UndoMap) *Storage {
	implToIface := make(map[typeid.TypeId]typeid.TypeId, len(undo))
	for iface, info := range undo {
		implToIface[info.Impl] = iface
	}
	return &Storage{
		table:         table,
		multibindings: multibindings,
		sizing:        sizing,
		undo:          undo,
		implToIface:   implToIface,
	}
}

// Lookup resolves id against the normalized table, self-healing by
// reversing a recorded compression if id names a concrete type that was
// folded away but is now being asked for directly.
func (s *Storage) Lookup(id typeid.TypeId) (binding.BaseBinding, bool) {
	if e, ok := s.table.Get(id); ok {
		return toBaseBinding(e), true
	}
	if _, ok := s.implToIface[id]; ok && s.undo.UndoByImpl(s.table, id) {
		delete(s.implToIface, id)
		if e, ok := s.table.Get(id); ok {
			return toBaseBinding(e), true
		}
	}
	return binding.BaseBinding{}, false
}

// All returns every locally-bound TypeId and its binding. It exists for
// callers that need to enumerate the whole table rather than resolve one
// TypeId at a time, such as wiring an external injector; callers must not
// mutate the returned map.
func (s *Storage) All() map[typeid.TypeId]binding.BaseBinding {
	out := make(map[typeid.TypeId]binding.BaseBinding, s.table.Len())
	for id, e := range s.table.Entries() {
		out[id] = toBaseBinding(e)
	}
	return out
}

// Multibindings returns the frozen MultibindingSet.
func (s *Storage) Multibindings() binding.MultibindingSet {
	return s.multibindings
}

// AllocatorSizing returns the sizing contract for the injector's
// per-object allocator.
func (s *Storage) AllocatorSizing() AllocatorSizing {
	return s.sizing
}

// Undo reverses the compression recorded for the exposed interface iface,
// if any, restoring both its and its collapsed implementation's original
// bindings.
func (s *Storage) Undo(iface typeid.TypeId) bool {
	return s.undo.Undo(s.table, iface)
}

// Len reports how many TypeIds the binding table currently binds.
func (s *Storage) Len() int {
	return s.table.Len()
}

func toBaseBinding(e entry.Entry) binding.BaseBinding {
	switch v := e.(type) {
	case entry.ConstructedObject:
		return binding.BaseBinding{Constructed: true, Value: v.Value}
	case entry.ObjectToConstruct:
		return binding.BaseBinding{Create: v.Create, Deps: v.Deps}
	default:
		return binding.BaseBinding{}
	}
}
