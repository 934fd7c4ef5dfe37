package expand

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/injectkit/injectkit/dierr"
	"github.com/injectkit/injectkit/entry"
	"github.com/injectkit/injectkit/typeid"
)

type foo struct{}
type fooImplA struct{}
type fooImplB struct{}
type bar struct{}
type barImpl struct{}
type iface struct{}
type impl struct{}
type dep struct{}

// reversedEntries puts natural-order entries into the reversed order Run
// expects, so tests can write scenarios in the order a user would author
// them.
func reversedEntries(natural ...entry.Entry) []entry.Entry {
	out := make([]entry.Entry, len(natural))
	for i, e := range natural {
		out[len(natural)-1-i] = e
	}
	return out
}

func forwardCreate(deps []any) (any, error) {
	return deps[0], nil
}

func TestRun_CollidingBindingsError(t *testing.T) {
	fooID := typeid.Of[foo]("TestRun_CollidingBindingsError")
	a := fooImplA{}
	b := fooImplB{}

	entries := reversedEntries(
		entry.ConstructedObject{Type: fooID, Value: &a},
		entry.ConstructedObject{Type: fooID, Value: &b},
	)

	_, err := Run(entries, Options{})
	require.NotNil(t, err)
	assert.Equal(t, dierr.KindMultipleBindings, err.Kind())
	assert.Equal(t, fooID, err.TypeID())
}

func TestRun_IdempotentInstallation(t *testing.T) {
	barID := typeid.Of[bar]("TestRun_IdempotentInstallation")
	barImplVal := barImpl{}

	factory := func() []entry.Entry {
		return []entry.Entry{entry.ConstructedObject{Type: barID, Value: &barImplVal}}
	}
	g := entry.NewLazyComponentNoArgs("G", factory)

	entries := reversedEntries(entry.Entry(g), entry.Entry(g))

	storage, err := Run(entries, Options{})
	require.Nil(t, err)
	assert.Equal(t, 1, storage.Len())

	b, ok := storage.Lookup(barID)
	require.True(t, ok)
	assert.Same(t, &barImplVal, b.Value)
}

func TestRun_InstallationCycle(t *testing.T) {
	var g1Factory, g2Factory func() []entry.Entry
	g1Factory = func() []entry.Entry {
		return []entry.Entry{entry.Entry(entry.NewLazyComponentNoArgs("G2", g2Factory))}
	}
	g2Factory = func() []entry.Entry {
		return []entry.Entry{entry.Entry(entry.NewLazyComponentNoArgs("G1", g1Factory))}
	}

	g1 := entry.NewLazyComponentNoArgs("G1", g1Factory)
	entries := reversedEntries(entry.Entry(g1))

	_, err := Run(entries, Options{})
	require.NotNil(t, err)
	assert.Equal(t, dierr.KindLazyComponentInstallationLoop, err.Kind())
	assert.NotEmpty(t, err.Path())
}

func TestRun_CompressionApplied(t *testing.T) {
	ifaceID := typeid.Of[iface]("TestRun_CompressionApplied")
	implID := typeid.Of[impl]("TestRun_CompressionApplied")
	depID := typeid.Of[dep]("TestRun_CompressionApplied")
	depVal := dep{}

	entries := reversedEntries(
		entry.ObjectToConstruct{Type: ifaceID, Deps: []typeid.TypeId{implID}, Create: forwardCreate},
		entry.CompressedBinding{Interface: ifaceID, Impl: implID},
		entry.ObjectToConstruct{Type: implID, Deps: []typeid.TypeId{depID}, Create: forwardCreate},
		entry.ConstructedObject{Type: depID, Value: &depVal},
	)

	storage, err := Run(entries, Options{ExposedTypes: map[typeid.TypeId]bool{ifaceID: true}})
	require.Nil(t, err)

	_, implBound := storage.Lookup(implID)
	assert.False(t, implBound, "impl should be folded away by compression")

	ifaceBinding, ok := storage.Lookup(ifaceID)
	require.True(t, ok)
	assert.NotNil(t, ifaceBinding.Create)
	assert.Equal(t, []typeid.TypeId{depID}, ifaceBinding.Deps)
}

func TestRun_CompressionWithheldWhenImplExposed(t *testing.T) {
	ifaceID := typeid.Of[iface]("TestRun_CompressionWithheldWhenImplExposed")
	implID := typeid.Of[impl]("TestRun_CompressionWithheldWhenImplExposed")
	depID := typeid.Of[dep]("TestRun_CompressionWithheldWhenImplExposed")
	depVal := dep{}

	entries := reversedEntries(
		entry.ObjectToConstruct{Type: ifaceID, Deps: []typeid.TypeId{implID}, Create: forwardCreate},
		entry.CompressedBinding{Interface: ifaceID, Impl: implID},
		entry.ObjectToConstruct{Type: implID, Deps: []typeid.TypeId{depID}, Create: forwardCreate},
		entry.ConstructedObject{Type: depID, Value: &depVal},
	)

	storage, err := Run(entries, Options{ExposedTypes: map[typeid.TypeId]bool{
		ifaceID: true,
		implID:  true,
	}})
	require.Nil(t, err)

	_, ifaceBound := storage.Lookup(ifaceID)
	assert.True(t, ifaceBound)
	_, implBound := storage.Lookup(implID)
	assert.True(t, implBound, "impl must survive when it is itself exposed")
}

func TestRun_UndoAfterOverlay(t *testing.T) {
	ifaceID := typeid.Of[iface]("TestRun_UndoAfterOverlay")
	implID := typeid.Of[impl]("TestRun_UndoAfterOverlay")
	depID := typeid.Of[dep]("TestRun_UndoAfterOverlay")
	depVal := dep{}

	entries := reversedEntries(
		entry.ObjectToConstruct{Type: ifaceID, Deps: []typeid.TypeId{implID}, Create: forwardCreate},
		entry.CompressedBinding{Interface: ifaceID, Impl: implID},
		entry.ObjectToConstruct{Type: implID, Deps: []typeid.TypeId{depID}, Create: forwardCreate},
		entry.ConstructedObject{Type: depID, Value: &depVal},
	)

	base, err := Run(entries, Options{
		ExposedTypes: map[typeid.TypeId]bool{ifaceID: true},
		Undoable:     true,
	})
	require.Nil(t, err)

	assert.Equal(t, 2, base.Len(), "impl is folded away immediately after normalization")

	// An overlay component now depends on impl directly; asking the base
	// storage for it self-heals the compression, restoring both bindings.
	implBinding, ok := base.Lookup(implID)
	require.True(t, ok)
	assert.NotNil(t, implBinding.Create)

	_, ifaceBound := base.Lookup(ifaceID)
	assert.True(t, ifaceBound)
	assert.Equal(t, 3, base.Len())
}

func TestRun_EmptyComponent(t *testing.T) {
	storage, err := Run(nil, Options{})
	require.Nil(t, err)
	assert.Equal(t, 0, storage.Len())
	assert.Empty(t, storage.Multibindings())
}

func TestRun_ReplacementWithoutInstallIsDropped(t *testing.T) {
	barID := typeid.Of[bar]("TestRun_ReplacementWithoutInstallIsDropped")
	barImplVal := barImpl{}
	replacementFactory := func() []entry.Entry {
		return []entry.Entry{entry.ConstructedObject{Type: barID, Value: &barImplVal}}
	}
	target := func() []entry.Entry { return nil }

	targetComponent := entry.NewLazyComponentNoArgs("Target", target)
	replacement := entry.NewLazyComponentNoArgs("Replacement", replacementFactory)

	entries := reversedEntries(entry.Entry(entry.ReplacedLazyComponent{
		NoArgsTarget: targetComponent.ID,
		TargetName:   "Target",
		Replacement:  entry.Entry(replacement),
	}))

	storage, err := Run(entries, Options{})
	require.Nil(t, err)
	assert.Equal(t, 0, storage.Len())
}

func TestRun_ReplacementChainCollapses(t *testing.T) {
	barID := typeid.Of[bar]("TestRun_ReplacementChainCollapses")
	barImplVal := barImpl{}

	cFactory := func() []entry.Entry {
		return []entry.Entry{entry.ConstructedObject{Type: barID, Value: &barImplVal}}
	}
	bFactory := func() []entry.Entry { return nil }
	aFactory := func() []entry.Entry { return nil }

	cComponent := entry.NewLazyComponentNoArgs("C", cFactory)
	bComponent := entry.NewLazyComponentNoArgs("B", bFactory)
	aComponent := entry.NewLazyComponentNoArgs("A", aFactory)

	entries := reversedEntries(
		entry.Entry(entry.ReplacedLazyComponent{
			NoArgsTarget: aComponent.ID,
			TargetName:   "A",
			Replacement:  entry.Entry(bComponent),
		}),
		entry.Entry(entry.ReplacedLazyComponent{
			NoArgsTarget: bComponent.ID,
			TargetName:   "B",
			Replacement:  entry.Entry(cComponent),
		}),
		entry.Entry(aComponent),
	)

	storage, err := Run(entries, Options{})
	require.Nil(t, err)
	assert.Equal(t, 1, storage.Len())

	b, ok := storage.Lookup(barID)
	require.True(t, ok)
	assert.Same(t, &barImplVal, b.Value)
}

func TestRun_MultibindingsPreserveDuplicates(t *testing.T) {
	listID := typeid.Of[[]int]("TestRun_MultibindingsPreserveDuplicates")

	makeCreate := func(n int) func() (any, error) {
		return func() (any, error) { return n, nil }
	}

	entries := reversedEntries(
		entry.Multibinding{Type: listID, Create: makeCreate(1)},
		entry.Multibinding{Type: listID, Create: makeCreate(1)},
		entry.Multibinding{Type: listID, Create: makeCreate(2)},
		entry.MultibindingVectorCreator{Type: listID, Materialize: func(elements []any) any { return elements }},
	)

	storage, err := Run(entries, Options{})
	require.Nil(t, err)

	list := storage.Multibindings()[listID]
	require.NotNil(t, list)
	assert.Len(t, list.Items, 3)
	assert.NotNil(t, list.VectorCreator)
}
