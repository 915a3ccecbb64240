package lox

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tok(name string) Token {
	return Token{Type: Identifier, Lexeme: name, Line: 1}
}

func TestEnvironment_DefineAndGet(t *testing.T) {
	env := NewEnvironment(nil)
	env.Define("a", 1.0)
	v, err := env.Get(tok("a"))
	require.NoError(t, err)
	assert.Equal(t, 1.0, v)
}

func TestEnvironment_RedefineInSameFrameAllowed(t *testing.T) {
	env := NewEnvironment(nil)
	env.Define("a", 1.0)
	env.Define("a", 2.0)
	v, err := env.Get(tok("a"))
	require.NoError(t, err)
	assert.Equal(t, 2.0, v)
}

func TestEnvironment_GetUndefinedIsRuntimeError(t *testing.T) {
	env := NewEnvironment(nil)
	_, err := env.Get(tok("missing"))
	require.Error(t, err)
	var rerr *RuntimeError
	require.ErrorAs(t, err, &rerr)
	assert.Contains(t, rerr.Msg, "Undefined variable 'missing'")
}

func TestEnvironment_GetWalksEnclosingChain(t *testing.T) {
	global := NewEnvironment(nil)
	global.Define("a", 1.0)
	inner := NewEnvironment(global)
	v, err := inner.Get(tok("a"))
	require.NoError(t, err)
	assert.Equal(t, 1.0, v)
}

func TestEnvironment_AssignNeverCreatesBinding(t *testing.T) {
	env := NewEnvironment(nil)
	err := env.Assign(tok("a"), 1.0)
	require.Error(t, err)
	_, getErr := env.Get(tok("a"))
	assert.Error(t, getErr)
}

func TestEnvironment_AssignFindsNearestDefiningFrame(t *testing.T) {
	global := NewEnvironment(nil)
	global.Define("a", 1.0)
	inner := NewEnvironment(global)

	require.NoError(t, inner.Assign(tok("a"), 2.0))
	v, _ := global.Get(tok("a"))
	assert.Equal(t, 2.0, v)
}

func TestEnvironment_GetAtAssignAtSkipExactDepth(t *testing.T) {
	global := NewEnvironment(nil)
	level1 := NewEnvironment(global)
	level2 := NewEnvironment(level1)
	level1.Define("x", "level1")

	assert.Equal(t, "level1", level2.GetAt(1, "x"))

	level2.AssignAt(1, "x", "changed")
	v, _ := level1.Get(tok("x"))
	assert.Equal(t, "changed", v)
}
