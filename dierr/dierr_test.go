package dierr

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/injectkit/injectkit/typeid"
)

type widget struct{}

func TestNewMultipleBindings(t *testing.T) {
	id := typeid.Of[widget]("TestNewMultipleBindings")
	err := NewMultipleBindings(id)
	assert.Equal(t, KindMultipleBindings, err.Kind())
	assert.Equal(t, id, err.TypeID())
	assert.Contains(t, err.Error(), "multiple bindings")
}

func TestNewSelfLoop(t *testing.T) {
	id := typeid.Of[widget]("TestNewSelfLoop")
	err := NewSelfLoop(id, []string{"A", "B", "A"})
	assert.Equal(t, KindSelfLoop, err.Kind())
	assert.Equal(t, []string{"A", "B", "A"}, err.Path())
}

func TestNewLazyComponentInstallationLoop(t *testing.T) {
	err := NewLazyComponentInstallationLoop([]string{"G1", "G2", "G1"})
	assert.Equal(t, KindLazyComponentInstallationLoop, err.Kind())
	assert.Equal(t, []string{"G1", "G2", "G1"}, err.Path())
	assert.Contains(t, err.Error(), "G1 -> G2 -> G1")
}

func TestNewIncompatibleReplacements(t *testing.T) {
	err := NewIncompatibleReplacements("Target", "A", "B")
	assert.Equal(t, KindIncompatibleReplacements, err.Kind())
	assert.Contains(t, err.Error(), "Target")
}

func TestNewReplacementAfterExpansion(t *testing.T) {
	err := NewReplacementAfterExpansion("Target", "Repl")
	assert.Equal(t, KindReplacementAfterExpansion, err.Kind())
	assert.Contains(t, err.Error(), "Target")
	assert.Contains(t, err.Error(), "Repl")
}

func TestError_ImplementsStdlibError(t *testing.T) {
	var err error = NewMultipleBindings(typeid.Of[widget]("TestError_ImplementsStdlibError"))
	assert.NotEmpty(t, err.Error())
}
