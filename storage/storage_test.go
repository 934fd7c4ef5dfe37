package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/injectkit/injectkit/binding"
	"github.com/injectkit/injectkit/compress"
	"github.com/injectkit/injectkit/entry"
	"github.com/injectkit/injectkit/typeid"
)

type iface struct{}
type impl struct{}

func forward(deps []any) (any, error) { return deps[0], nil }

func TestBuild_LookupFindsLocalBinding(t *testing.T) {
	id := typeid.Of[impl](t.Name())
	tbl := binding.NewTable(nil)
	require.Nil(t, tbl.Insert(entry.ObjectToConstruct{Type: id, Create: forward}))

	s := Build(tbl, binding.MultibindingSet{}, AllocatorSizing{}, nil)
	b, ok := s.Lookup(id)
	require.True(t, ok)
	assert.NotNil(t, b.Create)
}

func TestBuild_LookupMissReportsFalse(t *testing.T) {
	id := typeid.Of[impl](t.Name())
	tbl := binding.NewTable(nil)
	s := Build(tbl, binding.MultibindingSet{}, AllocatorSizing{}, nil)

	_, ok := s.Lookup(id)
	assert.False(t, ok)
}

func TestBuild_LookupSelfHealsCompression(t *testing.T) {
	i := typeid.Of[iface](t.Name())
	c := typeid.Of[impl](t.Name())

	tbl := binding.NewTable(nil)
	require.Nil(t, tbl.Insert(entry.ObjectToConstruct{Type: i, Deps: []typeid.TypeId{c}, Create: forward}))
	require.Nil(t, tbl.Insert(entry.ObjectToConstruct{Type: c, Create: forward}))

	undo := compress.Apply(tbl, []entry.CompressedBinding{{Interface: i, Impl: c}}, nil, nil, true)
	s := Build(tbl, binding.MultibindingSet{}, AllocatorSizing{}, undo)

	assert.Equal(t, 1, s.Len())

	b, ok := s.Lookup(c)
	require.True(t, ok, "lookup of a folded-away impl should self-heal")
	assert.NotNil(t, b.Create)
	assert.Equal(t, 2, s.Len())

	_, ifaceOK := s.Lookup(i)
	assert.True(t, ifaceOK)
}

func TestBuild_UndoRestoresBothBindings(t *testing.T) {
	i := typeid.Of[iface](t.Name())
	c := typeid.Of[impl](t.Name())

	tbl := binding.NewTable(nil)
	require.Nil(t, tbl.Insert(entry.ObjectToConstruct{Type: i, Deps: []typeid.TypeId{c}, Create: forward}))
	require.Nil(t, tbl.Insert(entry.ObjectToConstruct{Type: c, Create: forward}))

	undo := compress.Apply(tbl, []entry.CompressedBinding{{Interface: i, Impl: c}}, nil, nil, true)
	s := Build(tbl, binding.MultibindingSet{}, AllocatorSizing{}, undo)

	ok := s.Undo(i)
	require.True(t, ok)
	assert.Equal(t, 2, s.Len())

	assert.False(t, s.Undo(i), "a second undo for the same interface has nothing left to reverse")
}

func TestBuild_AllocatorSizing(t *testing.T) {
	tbl := binding.NewTable(nil)
	s := Build(tbl, binding.MultibindingSet{}, AllocatorSizing{Size: 64, Align: 8}, nil)
	assert.Equal(t, AllocatorSizing{Size: 64, Align: 8}, s.AllocatorSizing())
}
