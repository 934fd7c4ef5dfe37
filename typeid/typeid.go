// Package typeid assigns a stable, totally-ordered, hashable identifier to
// every injectable (type, annotation) pair. The registry is process-wide
// and append-only: identifiers are handed out at static initialization or
// first use and never change afterwards.
package typeid

import (
	"fmt"
	"reflect"
	"sync"
)

// TypeId uniquely names an annotated type. Two TypeIds are equal iff they
// were obtained for the same reflected type and the same annotation.
type TypeId struct {
	handle uint64
	name   string
}

// ID returns the monotonically increasing handle backing this TypeId. It
// gives TypeId a total order and an O(1) hashable representation without
// exposing the registry's internal map.
func (t TypeId) ID() uint64 {
	return t.handle
}

// Less orders TypeIds by registration order, making the total order from
// the injectable identity model concrete.
func (t TypeId) Less(other TypeId) bool {
	return t.handle < other.handle
}

// String returns the human-readable name used in diagnostics.
func (t TypeId) String() string {
	return t.name
}

// IsZero reports whether t is the zero value, i.e. was never obtained from
// the registry.
func (t TypeId) IsZero() bool {
	return t.handle == 0
}

type key struct {
	rtype      reflect.Type
	annotation string
}

var (
	mu       sync.Mutex
	byKey    = map[key]TypeId{}
	counter  uint64
)

// Of returns the stable TypeId for T, optionally qualified by annotation
// (an empty annotation names the plain type). Repeated calls for the same
// (T, annotation) pair return the identical TypeId.
func Of[T any](annotation string) TypeId {
	var zero T
	rtype := reflect.TypeOf(&zero).Elem()
	return register(rtype, annotation)
}

// OfReflect is the non-generic counterpart of Of, for callers that know the
// payload type only as a reflect.Type (e.g. when inferring it from a
// constructed instance).
func OfReflect(rtype reflect.Type, annotation string) TypeId {
	return register(rtype, annotation)
}

func register(rtype reflect.Type, annotation string) TypeId {
	mu.Lock()
	defer mu.Unlock()

	k := key{rtype, annotation}
	if id, ok := byKey[k]; ok {
		return id
	}

	counter++
	id := TypeId{handle: counter, name: formatName(rtype, annotation)}
	byKey[k] = id
	return id
}

func formatName(rtype reflect.Type, annotation string) string {
	if annotation == "" {
		return rtype.String()
	}
	return fmt.Sprintf("%s@%s", annotation, rtype.String())
}
