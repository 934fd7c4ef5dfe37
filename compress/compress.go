// Package compress implements the binding compressor: the
// rewrite that fuses an interface binding I->C with its implementation
// binding C->f(deps) into a single binding I->f(deps), eliminating the
// intermediate object and its allocation.
package compress

import (
	"github.com/injectkit/injectkit/binding"
	"github.com/injectkit/injectkit/entry"
	"github.com/injectkit/injectkit/typeid"
)

// UndoInfo records what a single compression rewrote, so it can be
// reversed later when an overlay component needs the collapsed concrete
// type back.
type UndoInfo struct {
	Interface        typeid.TypeId
	Impl             typeid.TypeId
	OriginalIBinding entry.Entry
	OriginalCBinding entry.Entry
}

// UndoMap indexes UndoInfo by the interface TypeId that was compressed
// away, one compression per compressed interface TypeId.
type UndoMap map[typeid.TypeId]UndoInfo

// Apply rewrites table in place for every candidate that survives the
// veto checks below, and, when undoable is true, returns an
// UndoMap recording how to reverse each applied compression.
func Apply(
	table *binding.Table,
	candidates []entry.CompressedBinding,
	exposed map[typeid.TypeId]bool,
	multibindingSet binding.MultibindingSet,
	undoable bool,
) UndoMap {
	if len(candidates) == 0 {
		return nil
	}

	byImpl := make(map[typeid.TypeId][]entry.CompressedBinding, len(candidates))
	for _, c := range candidates {
		byImpl[c.Impl] = append(byImpl[c.Impl], c)
	}

	var undo UndoMap
	if undoable {
		undo = make(UndoMap)
	}

	for _, c := range candidates {
		if vetoed(c, table, exposed, byImpl, multibindingSet) {
			continue
		}

		cBinding, ok := table.Get(c.Impl)
		if !ok {
			// Nothing bound for the implementation type; no fold to apply.
			continue
		}

		iBinding, hadI := table.Get(c.Interface)

		if undoable {
			originalI := iBinding
			if !hadI {
				// Before compression I had no table entry at all (the
				// CompressedBinding hint never enters binding_data_map);
				// record a forwarding binding so Undo can restore the
				// pre-compression shape needed for
				// round-trip law.
				originalI = forwardingBinding(c.Interface, c.Impl)
			}
			undo[c.Interface] = UndoInfo{
				Interface:        c.Interface,
				Impl:             c.Impl,
				OriginalIBinding: originalI,
				OriginalCBinding: cBinding,
			}
		}

		table.ForceSet(c.Interface, retype(cBinding, c.Interface))
		table.Delete(c.Impl)
	}

	return undo
}

// vetoed implements the compressor's four veto conditions.
func vetoed(
	c entry.CompressedBinding,
	table *binding.Table,
	exposed map[typeid.TypeId]bool,
	byImpl map[typeid.TypeId][]entry.CompressedBinding,
	multibindingSet binding.MultibindingSet,
) bool {
	// C is an exposed root type.
	if exposed != nil && exposed[c.Impl] {
		return true
	}
	// Another interface also aliases C.
	if len(byImpl[c.Impl]) > 1 {
		return true
	}
	// C is the TypeId of a multibinding set.
	if multibindingSet != nil {
		if _, ok := multibindingSet[c.Impl]; ok {
			return true
		}
	}
	// C is depended on directly by a binding other than I's own.
	for id, e := range table.Entries() {
		otc, ok := e.(entry.ObjectToConstruct)
		if !ok {
			continue
		}
		if id == c.Interface {
			continue
		}
		for _, dep := range otc.Deps {
			if dep == c.Impl {
				return true
			}
		}
	}
	return false
}

// retype rewrites e's table key to id while keeping its construction
// thunk/value, since the underlying value is type-erased `any` and needs
// no runtime conversion, only new bookkeeping under the interface's key.
func retype(e entry.Entry, id typeid.TypeId) entry.Entry {
	switch v := e.(type) {
	case entry.ConstructedObject:
		v.Type = id
		return v
	case entry.ObjectToConstruct:
		v.Type = id
		return v
	default:
		return e
	}
}

// forwardingBinding synthesizes the I->C binding that existed only as a
// CompressedBinding hint prior to compression.
func forwardingBinding(iface, impl typeid.TypeId) entry.Entry {
	return entry.ObjectToConstruct{
		Type: iface,
		Deps: []typeid.TypeId{impl},
		Create: func(deps []any) (any, error) {
			return deps[0], nil
		},
	}
}

// Undo reverses the compression recorded for iface, restoring both I's
// and C's original bindings into table. It reports whether an undo record
// was found.
func (m UndoMap) Undo(table *binding.Table, iface typeid.TypeId) bool {
	info, ok := m[iface]
	if !ok {
		return false
	}
	table.ForceSet(info.Interface, info.OriginalIBinding)
	table.ForceSet(info.Impl, info.OriginalCBinding)
	delete(m, iface)
	return true
}

// UndoByImpl is like Undo but looked up by the collapsed concrete TypeId
// C rather than by the interface I — the direction an overlay component
// actually needs when it suddenly depends on C directly.
func (m UndoMap) UndoByImpl(table *binding.Table, impl typeid.TypeId) bool {
	for iface, info := range m {
		if info.Impl == impl {
			table.ForceSet(info.Interface, info.OriginalIBinding)
			table.ForceSet(info.Impl, info.OriginalCBinding)
			delete(m, iface)
			return true
		}
	}
	return false
}
