// Package expand implements the expansion engine: it drains
// a reversed stack of StorageEntries, expanding lazy sub-components,
// honoring replacements, detecting installation cycles, and folding
// resolved entries into a binding table and a multibinding accumulator.
package expand

import (
	"github.com/injectkit/injectkit/binding"
	"github.com/injectkit/injectkit/compress"
	"github.com/injectkit/injectkit/dierr"
	"github.com/injectkit/injectkit/entry"
	"github.com/injectkit/injectkit/storage"
	"github.com/injectkit/injectkit/typeid"
)

// Options carries the three normalization parameters enumerated in
// normalization's own entry-visibility rules.
type Options struct {
	// ExposedTypes are the TypeIds the caller declares as injection
	// roots; they cannot be compressed away.
	ExposedTypes map[typeid.TypeId]bool
	// Undoable, when true, makes the compressor record undo records for
	// every compression it applies.
	Undoable bool
	// Base, if non-nil, is the pre-normalized base component this one
	// overlays. A binding in the stream for a TypeId the base already binds
	// is dropped when identical to the base's and reported as
	// KindMultipleBindings otherwise. The returned Storage does not consult
	// Base on lookup.
	Base binding.BaseLookup
}

// Run drains entries (supplied in reversed order, i.e. natural user order
// on pop) and returns the resulting NormalizedComponentStorage, or the
// first structured error encountered.
func Run(entries []entry.Entry, opts Options) (*storage.Storage, *dierr.Error) {
	e := newEngine(entries, opts)
	if err := e.drain(); err != nil {
		return nil, err
	}

	multibindingSet := e.acc.Finalize()
	undo := compress.Apply(e.table, e.compressedCandidates, opts.ExposedTypes, multibindingSet, opts.Undoable)

	return storage.Build(
		e.table,
		multibindingSet,
		storage.AllocatorSizing{Size: e.allocSize, Align: e.allocAlign},
		undo,
	), nil
}

type engine struct {
	stack []entry.Entry

	fullyExpandedNoArgs map[uintptr]bool
	inProgressNoArgs    map[uintptr]bool
	activeNames         []string

	fullyExpandedWithArgs *componentSet
	inProgressWithArgs    *componentSet

	replacementsNoArgs   map[uintptr]entry.Entry
	replacementsWithArgs *componentReplacements

	table *binding.Table
	acc   *binding.Accumulator

	compressedCandidates []entry.CompressedBinding

	allocSize, allocAlign uintptr
}

func newEngine(entries []entry.Entry, opts Options) *engine {
	e := &engine{
		stack:                 append([]entry.Entry(nil), entries...),
		fullyExpandedNoArgs:   make(map[uintptr]bool),
		inProgressNoArgs:      make(map[uintptr]bool),
		fullyExpandedWithArgs: newComponentSet(),
		inProgressWithArgs:    newComponentSet(),
		replacementsNoArgs:    make(map[uintptr]entry.Entry),
		replacementsWithArgs:  newComponentReplacements(),
		table:                 binding.NewTable(opts.Base),
		acc:                   binding.NewAccumulator(),
	}
	return e
}

// drain implements the expansion engine's main loop: pop one entry at a
// time and dispatch on its variant until the stack is empty.
func (e *engine) drain() *dierr.Error {
	for len(e.stack) > 0 {
		cur := e.pop()
		if err := e.dispatch(cur); err != nil {
			return err
		}
	}
	return nil
}

func (e *engine) pop() entry.Entry {
	n := len(e.stack) - 1
	cur := e.stack[n]
	e.stack = e.stack[:n]
	return cur
}

// pushReversed pushes body so that popping reproduces its natural order,
// the same convention the top-level input stream requires.
func (e *engine) pushReversed(body []entry.Entry) {
	for i := len(body) - 1; i >= 0; i-- {
		e.stack = append(e.stack, body[i])
	}
}

func (e *engine) dispatch(cur entry.Entry) *dierr.Error {
	switch v := cur.(type) {
	case entry.ConstructedObject:
		return e.table.Insert(v)
	case entry.ObjectToConstruct:
		if err := e.table.Insert(v); err != nil {
			return err
		}
		e.allocSize += v.Size
		if v.Align > e.allocAlign {
			e.allocAlign = v.Align
		}
		return nil
	case entry.CompressedBinding:
		e.compressedCandidates = append(e.compressedCandidates, v)
		return nil
	case entry.Multibinding:
		e.acc.AddMultibinding(v.Type, v.Create)
		return nil
	case entry.MultibindingVectorCreator:
		e.acc.SetVectorCreator(v.Type, v.Materialize)
		return nil
	case entry.LazyComponentNoArgs:
		return e.handleNoArgs(v)
	case entry.LazyComponentWithArgs:
		return e.handleWithArgs(v)
	case entry.EndMarkerNoArgs:
		delete(e.inProgressNoArgs, v.ID)
		e.fullyExpandedNoArgs[v.ID] = true
		e.popActiveName()
		return nil
	case entry.EndMarkerWithArgs:
		e.inProgressWithArgs.Remove(v.Key)
		e.fullyExpandedWithArgs.Add(v.Key)
		e.popActiveName()
		return nil
	case entry.ReplacedLazyComponent:
		return e.handleReplacement(v)
	default:
		panic("expand: unknown entry variant")
	}
}

func (e *engine) pushActiveName(name string) {
	e.activeNames = append(e.activeNames, name)
}

func (e *engine) popActiveName() {
	if n := len(e.activeNames); n > 0 {
		e.activeNames = e.activeNames[:n-1]
	}
}

// cyclePath builds the "path from the repeat point" diagnostic the
// §4.2 describes: the active-name stack from repeat's first occurrence
// down to the top, plus repeat again to show the closed loop.
func cyclePath(active []string, repeat string) []string {
	start := 0
	for i, n := range active {
		if n == repeat {
			start = i
			break
		}
	}
	path := append([]string(nil), active[start:]...)
	return append(path, repeat)
}
