// Package binding implements the binding table builder and the
// multibinding accumulator. The table's Insert method embodies
// the dedup/conflict rules the expansion engine relies on; Table itself is
// otherwise a thin, lookup-ready wrapper around the normalized bindings.
package binding

import (
	"reflect"

	"github.com/injectkit/injectkit/dierr"
	"github.com/injectkit/injectkit/entry"
	"github.com/injectkit/injectkit/typeid"
)

// BaseBinding describes a single binding found in a pre-normalized base
// component that an overlay injector is being built on top of.
type BaseBinding struct {
	Constructed bool
	Value       any
	Create      entry.CreateFunc
	Deps        []typeid.TypeId
}

// BaseLookup is the "base-component lookup interface" parameter from
// given a TypeId, report whether a base component already
// binds it.
type BaseLookup interface {
	Lookup(t typeid.TypeId) (BaseBinding, bool)
}

// Table is the working `binding_data_map` during expansion and, once
// expansion ends, the final BindingTable.
type Table struct {
	entries map[typeid.TypeId]entry.Entry
	base    BaseLookup
}

// NewTable creates an empty table, optionally overlaying a pre-normalized
// base component.
func NewTable(base BaseLookup) *Table {
	return &Table{entries: make(map[typeid.TypeId]entry.Entry), base: base}
}

// Insert attempts to record e, which must be a ConstructedObject or an
// ObjectToConstruct. It implements normalization's dedup/conflict policy:
// §4.2: identical re-bindings are idempotent, differing ones conflict, and
// a base-component binding for the same TypeId is honored the same way a
// local one would be.
func (t *Table) Insert(e entry.Entry) *dierr.Error {
	id, ok := typeOf(e)
	if !ok {
		panic("binding.Table.Insert: entry is not a resolved binding")
	}

	if existing, ok := t.entries[id]; ok {
		if identical(existing, e) {
			return nil
		}
		return dierr.NewMultipleBindings(id)
	}

	if t.base != nil {
		if base, ok := t.base.Lookup(id); ok {
			if identicalToBase(base, e) {
				return nil
			}
			return dierr.NewMultipleBindings(id)
		}
	}

	t.entries[id] = e
	return nil
}

// ForceSet unconditionally (re)binds id to e, bypassing the conflict
// policy. It exists for the compressor's rewrite step and for undo, both
// of which operate on a table already known to be consistent.
func (t *Table) ForceSet(id typeid.TypeId, e entry.Entry) {
	t.entries[id] = e
}

// Delete removes id's entry, if any.
func (t *Table) Delete(id typeid.TypeId) {
	delete(t.entries, id)
}

// Get returns the entry bound to id, if any.
func (t *Table) Get(id typeid.TypeId) (entry.Entry, bool) {
	e, ok := t.entries[id]
	return e, ok
}

// Has reports whether id has a local binding (ignores the base lookup).
func (t *Table) Has(id typeid.TypeId) bool {
	_, ok := t.entries[id]
	return ok
}

// Entries returns the live (TypeId -> binding) map. Callers must not
// retain it past normalization.
func (t *Table) Entries() map[typeid.TypeId]entry.Entry {
	return t.entries
}

// Len returns the number of locally-bound TypeIds.
func (t *Table) Len() int {
	return len(t.entries)
}

func typeOf(e entry.Entry) (typeid.TypeId, bool) {
	switch v := e.(type) {
	case entry.ConstructedObject:
		return v.Type, true
	case entry.ObjectToConstruct:
		return v.Type, true
	default:
		return typeid.TypeId{}, false
	}
}

// identical implements the "is this a re-binding of the exact same thing"
// test: ConstructedObject compares by value/pointer identity (see the
// §9's Open Question, distinct addresses for the same TypeId are treated
// as a conflict, not tolerated); ObjectToConstruct compares by create
// thunk identity.
func identical(a, b entry.Entry) bool {
	switch av := a.(type) {
	case entry.ConstructedObject:
		bv, ok := b.(entry.ConstructedObject)
		return ok && samePointer(av.Value, bv.Value)
	case entry.ObjectToConstruct:
		bv, ok := b.(entry.ObjectToConstruct)
		return ok && sameFunc(av.Create, bv.Create)
	default:
		return false
	}
}

func identicalToBase(base BaseBinding, e entry.Entry) bool {
	switch v := e.(type) {
	case entry.ConstructedObject:
		return base.Constructed && samePointer(base.Value, v.Value)
	case entry.ObjectToConstruct:
		return !base.Constructed && sameFunc(base.Create, v.Create)
	default:
		return false
	}
}

func samePointer(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.Type() != vb.Type() {
		return false
	}
	switch va.Kind() {
	case reflect.Ptr, reflect.Chan, reflect.Map, reflect.Slice, reflect.Func, reflect.UnsafePointer:
		return va.Pointer() == vb.Pointer()
	default:
		if !va.Comparable() {
			return false
		}
		return a == b
	}
}

func sameFunc(a, b entry.CreateFunc) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return reflect.ValueOf(a).Pointer() == reflect.ValueOf(b).Pointer()
}
