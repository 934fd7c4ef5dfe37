// Package entry implements the tagged union of storage entries that the
// surface builder compiles a component down to. The expansion engine in
// package expand only ever sees this small, closed set of variants.
package entry

import (
	"reflect"

	"github.com/injectkit/injectkit/typeid"
)

// Kind tags the variant of an Entry so two entries can be compared by
// variant without a type assertion (the expansion engine's replacement
// check does this). The engine's main dispatch is a type switch on the
// concrete variant.
type Kind int

const (
	KindConstructedObject Kind = iota
	KindObjectToConstruct
	KindCompressedBinding
	KindMultibinding
	KindMultibindingVectorCreator
	KindLazyComponentNoArgs
	KindLazyComponentWithArgs
	KindEndMarkerNoArgs
	KindEndMarkerWithArgs
	KindReplacedLazyComponent
)

// Entry is the tagged-union interface every storage entry variant
// implements.
type Entry interface {
	Kind() Kind
}

// ConstructedObject binds a TypeId to an already-existing instance.
type ConstructedObject struct {
	Type  typeid.TypeId
	Value any
}

func (ConstructedObject) Kind() Kind { return KindConstructedObject }

// CreateFunc constructs an instance from its already-resolved dependency
// values, supplied positionally in the same order as ObjectToConstruct.Deps.
type CreateFunc func(deps []any) (any, error)

// ObjectToConstruct binds a TypeId to a thunk that constructs the object
// the first time it is injected, plus the allocation footprint the
// per-object allocator must reserve for it.
type ObjectToConstruct struct {
	Type   typeid.TypeId
	Deps   []typeid.TypeId
	Create CreateFunc
	Size   uintptr
	Align  uintptr
}

func (ObjectToConstruct) Kind() Kind { return KindObjectToConstruct }

// CompressedBinding hints that Interface aliases Impl and is a candidate
// for the compressor to fuse away.
type CompressedBinding struct {
	Interface typeid.TypeId
	Impl      typeid.TypeId
}

func (CompressedBinding) Kind() Kind { return KindCompressedBinding }

// Multibinding is one element of a multiset keyed by Type.
type Multibinding struct {
	Type   typeid.TypeId
	Create func() (any, error)
}

func (Multibinding) Kind() Kind { return KindMultibinding }

// MultibindingVectorCreator materializes the ordered list of resolved
// elements for a multibinding set into the final container value.
type MultibindingVectorCreator struct {
	Type        typeid.TypeId
	Materialize func(elements []any) any
}

func (MultibindingVectorCreator) Kind() Kind { return KindMultibindingVectorCreator }

// ComponentKey is the structural identity of a with-args lazy component:
// the factory's function pointer plus its bound argument tuple. Two keys
// are equal iff they share the function pointer and their argument tuples
// are deeply equal: hash+equality on (fn, args).
type ComponentKey struct {
	FuncPtr uintptr
	Args    []any
}

// NewComponentKey builds a ComponentKey for factory fn invoked with args.
func NewComponentKey(fn any, args []any) ComponentKey {
	return ComponentKey{FuncPtr: reflect.ValueOf(fn).Pointer(), Args: args}
}

// Equal reports whether k and o name the same lazy component.
func (k ComponentKey) Equal(o ComponentKey) bool {
	return k.FuncPtr == o.FuncPtr && reflect.DeepEqual(k.Args, o.Args)
}

// LazyComponentNoArgs references a sub-component by factory function
// pointer alone, deduplicated by that pointer's identity.
type LazyComponentNoArgs struct {
	ID      uintptr
	Name    string
	Factory func() []Entry
}

func (LazyComponentNoArgs) Kind() Kind { return KindLazyComponentNoArgs }

// NewLazyComponentNoArgs derives ID from the factory's function pointer.
func NewLazyComponentNoArgs(name string, factory func() []Entry) LazyComponentNoArgs {
	return LazyComponentNoArgs{
		ID:      reflect.ValueOf(factory).Pointer(),
		Name:    name,
		Factory: factory,
	}
}

// LazyComponentWithArgs references a sub-component by a factory function
// together with a bound argument tuple, deduplicated structurally.
type LazyComponentWithArgs struct {
	Key     ComponentKey
	Name    string
	Factory func(args []any) []Entry
}

func (LazyComponentWithArgs) Kind() Kind { return KindLazyComponentWithArgs }

// EndMarkerNoArgs brackets the expansion scope of a no-args lazy component.
type EndMarkerNoArgs struct {
	ID   uintptr
	Name string
}

func (EndMarkerNoArgs) Kind() Kind { return KindEndMarkerNoArgs }

// EndMarkerWithArgs brackets the expansion scope of a with-args lazy
// component.
type EndMarkerWithArgs struct {
	Key  ComponentKey
	Name string
}

func (EndMarkerWithArgs) Kind() Kind { return KindEndMarkerWithArgs }

// ReplacedLazyComponent registers that Replacement should be expanded in
// place of the lazy component identified by (IsArgs, NoArgsTarget /
// WithArgsTarget) the first time that target is encountered.
type ReplacedLazyComponent struct {
	IsArgs         bool
	NoArgsTarget   uintptr
	WithArgsTarget ComponentKey
	TargetName     string
	Replacement    Entry
}

func (ReplacedLazyComponent) Kind() Kind { return KindReplacedLazyComponent }
