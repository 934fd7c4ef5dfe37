// Package component is the thin builder facade that authors a component's
// bindings and compiles them down to the reversed StorageEntry stream the
// expansion engine consumes. It performs no dependency-signature inference
// of its own: callers hand it already-resolved TypeIds and create thunks,
// the same division of labor the surface builder draws with the type
// checker it sits in front of.
package component

import (
	"github.com/injectkit/injectkit/entry"
	"github.com/injectkit/injectkit/typeid"
)

// Builder accumulates StorageEntries in natural authoring order; Compile
// reverses them into the order expand.Run expects.
type Builder struct {
	entries []entry.Entry
}

// New creates an empty Builder.
func New() *Builder {
	return &Builder{}
}

func (b *Builder) emit(e entry.Entry) {
	b.entries = append(b.entries, e)
}

// BindConstructed registers an already-existing instance as the binding
// for T.
func BindConstructed[T any](b *Builder, annotation string, value *T) typeid.TypeId {
	id := typeid.Of[T](annotation)
	b.emit(entry.ConstructedObject{Type: id, Value: value})
	return id
}

// Provide registers a binding that constructs T on first injection from
// its already-resolved dependencies, sized for the fixed-size allocator.
func Provide[T any](b *Builder, annotation string, deps []typeid.TypeId, create entry.CreateFunc, size, align uintptr) typeid.TypeId {
	id := typeid.Of[T](annotation)
	b.emit(entry.ObjectToConstruct{Type: id, Deps: deps, Create: create, Size: size, Align: align})
	return id
}

// Compress hints that the interface type I aliases its implementation C,
// making the pair a candidate for the binding compressor.
func Compress[I any, C any](b *Builder, ifaceAnnotation, implAnnotation string) {
	i := typeid.Of[I](ifaceAnnotation)
	c := typeid.Of[C](implAnnotation)
	b.emit(entry.CompressedBinding{Interface: i, Impl: c})
}

// Multibind appends one contribution to T's multibinding set.
func Multibind[T any](b *Builder, annotation string, create func() (any, error)) typeid.TypeId {
	id := typeid.Of[T](annotation)
	b.emit(entry.Multibinding{Type: id, Create: create})
	return id
}

// MultibindingVectorCreator installs the thunk that assembles T's
// multibinding contributions into their final container value.
func MultibindingVectorCreator[T any](b *Builder, annotation string, materialize func(elements []any) any) {
	id := typeid.Of[T](annotation)
	b.emit(entry.MultibindingVectorCreator{Type: id, Materialize: materialize})
}

// Install references a no-args lazy sub-component, deduplicated by the
// factory function's identity.
func Install(b *Builder, name string, factory func() []entry.Entry) entry.LazyComponentNoArgs {
	c := entry.NewLazyComponentNoArgs(name, factory)
	b.emit(c)
	return c
}

// InstallWithArgs references a lazy sub-component parameterized by a bound
// argument tuple, deduplicated structurally.
func InstallWithArgs(b *Builder, name string, factory func(args []any) []entry.Entry, args []any) entry.LazyComponentWithArgs {
	c := entry.LazyComponentWithArgs{
		Key:     entry.NewComponentKey(factory, args),
		Name:    name,
		Factory: factory,
	}
	b.emit(c)
	return c
}

// Replace substitutes replacement in place of target's own expansion. It
// must be emitted before target is installed.
func Replace(b *Builder, target entry.LazyComponentNoArgs, replacement entry.Entry) {
	b.emit(entry.ReplacedLazyComponent{
		NoArgsTarget: target.ID,
		TargetName:   target.Name,
		Replacement:  replacement,
	})
}

// ReplaceWithArgs is Replace's counterpart for with-args targets.
func ReplaceWithArgs(b *Builder, target entry.LazyComponentWithArgs, replacement entry.Entry) {
	b.emit(entry.ReplacedLazyComponent{
		IsArgs:         true,
		WithArgsTarget: target.Key,
		TargetName:     target.Name,
		Replacement:    replacement,
	})
}

// Compile returns the accumulated entries in the reversed order the
// expansion engine requires, leaving the Builder unchanged for further use.
func (b *Builder) Compile() []entry.Entry {
	out := make([]entry.Entry, len(b.entries))
	for i, e := range b.entries {
		out[len(b.entries)-1-i] = e
	}
	return out
}
