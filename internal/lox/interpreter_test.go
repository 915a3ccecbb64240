package lox

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Scenario tests, spec.md §8, inputs verbatim.

func TestInterpreter_Scenario1_ArithmeticPrecedence(t *testing.T) {
	out, rep := run("print 1 + 2 * 3;")
	require.Empty(t, rep.static)
	require.Empty(t, rep.runtime)
	assert.Equal(t, "7\n", out)
}

func TestInterpreter_Scenario2_StringConcatenation(t *testing.T) {
	out, rep := run(`var a = "hi"; print a + " world";`)
	require.Empty(t, rep.static)
	require.Empty(t, rep.runtime)
	assert.Equal(t, "hi world\n", out)
}

func TestInterpreter_Scenario3_BlockScopeShadowing(t *testing.T) {
	out, rep := run(`var a = 1; { var a = 2; print a; } print a;`)
	require.Empty(t, rep.static)
	require.Empty(t, rep.runtime)
	assert.Equal(t, "2\n1\n", out)
}

func TestInterpreter_Scenario4_ClosureCapturesMutableUpvalue(t *testing.T) {
	out, rep := run(`fun make() { var i = 0; fun inc() { i = i + 1; return i; } return inc; } var c = make(); print c(); print c();`)
	require.Empty(t, rep.static)
	require.Empty(t, rep.runtime)
	assert.Equal(t, "1\n2\n", out)
}

func TestInterpreter_Scenario5_SuperDispatch(t *testing.T) {
	out, rep := run(`class A { m() { print "A"; } } class B < A { m() { super.m(); print "B"; } } B().m();`)
	require.Empty(t, rep.static)
	require.Empty(t, rep.runtime)
	assert.Equal(t, "A\nB\n", out)
}

func TestInterpreter_Scenario6_InitializerSetsField(t *testing.T) {
	out, rep := run(`class P { init(n) { this.n = n; } } print P(7).n;`)
	require.Empty(t, rep.static)
	require.Empty(t, rep.runtime)
	assert.Equal(t, "7\n", out)
}

// Error scenarios, spec.md §8.

func TestInterpreter_Error_UndeclaredVariableIsRuntimeError(t *testing.T) {
	_, rep := run("print a;")
	require.Empty(t, rep.static)
	require.Len(t, rep.runtime, 1)
	assert.Contains(t, rep.runtime[0], "Undefined variable 'a'.")
}

func TestInterpreter_Error_TopLevelReturnIsStaticError(t *testing.T) {
	_, rep := run("return 1;")
	require.Len(t, rep.static, 1)
	assert.Contains(t, rep.static[0], "Can't return from top-level code.")
	assert.Empty(t, rep.runtime)
}

func TestInterpreter_Error_SelfInheritingClassIsStaticError(t *testing.T) {
	_, rep := run("class A < A {}")
	require.NotEmpty(t, rep.static)
	assert.Contains(t, rep.static[0], "Class can't inherit from itself.")
}

func TestInterpreter_Error_StringPlusNumberIsRuntimeError(t *testing.T) {
	_, rep := run(`"x" + 1;`)
	require.Empty(t, rep.static)
	require.Len(t, rep.runtime, 1)
	assert.Contains(t, rep.runtime[0], "Operands must be two numbers or two strings")
}

func TestInterpreter_Error_ReadOwnInitializerInBlockIsStaticError(t *testing.T) {
	_, rep := run(`{ var x = x; }`)
	require.Len(t, rep.static, 1)
	assert.Contains(t, rep.static[0], "Can't read local variable in its own initialiser")
}

// Universal properties, spec.md §8.

func TestInterpreter_Property_ShortCircuitOr_SkipsRightOperand(t *testing.T) {
	out, rep := run(`
		fun sideEffect() { print "evaluated"; return true; }
		if (true or sideEffect()) print "done";
	`)
	require.Empty(t, rep.static)
	require.Empty(t, rep.runtime)
	assert.Equal(t, "done\n", out, "the right operand of 'or' must not run when the left is truthy")
}

func TestInterpreter_Property_ShortCircuitAnd_SkipsRightOperand(t *testing.T) {
	out, rep := run(`
		fun sideEffect() { print "evaluated"; return true; }
		if (false and sideEffect()) print "unreachable"; else print "done";
	`)
	require.Empty(t, rep.static)
	require.Empty(t, rep.runtime)
	assert.Equal(t, "done\n", out, "the right operand of 'and' must not run when the left is falsy")
}

func TestInterpreter_Property_StringifyIntegerHasNoDecimalPoint(t *testing.T) {
	out, rep := run(`print 4; print 4.0; print 2 + 2;`)
	require.Empty(t, rep.static)
	require.Empty(t, rep.runtime)
	assert.Equal(t, "4\n4\n4\n", out)
}

func TestInterpreter_Property_StringifyNonIntegerKeepsDecimalPoint(t *testing.T) {
	out, rep := run(`print 1 / 4;`)
	require.Empty(t, rep.static)
	require.Empty(t, rep.runtime)
	assert.Equal(t, "0.25\n", out)
}

func TestInterpreter_Property_MethodBindingIdentity(t *testing.T) {
	// two fetches of the same bound method must each close over the same
	// `this`: the second call sees the field update made by the first.
	out, rep := run(`
		class Counter {
			init() { this.n = 0; }
			bump(x) { this.n = this.n + x; return this.n; }
		}
		var c = Counter();
		var m1 = c.bump;
		var m2 = c.bump;
		print m1(1);
		print m2(1);
		print c.n;
	`)
	require.Empty(t, rep.static)
	require.Empty(t, rep.runtime)
	assert.Equal(t, "1\n2\n2\n", out)
}

func TestInterpreter_Property_ClosureCorrectness_InnerFunctionsSeeNearestEnclosingBinding(t *testing.T) {
	out, rep := run(`
		var x = "global";
		fun outer() {
			var x = "outer";
			fun inner() { print x; }
			inner();
		}
		outer();
		var captured;
		{
			var y = "block";
			fun showY() { print y; }
			captured = showY;
		}
		captured();
	`)
	require.Empty(t, rep.static)
	require.Empty(t, rep.runtime)
	assert.Equal(t, "outer\nblock\n", out)
}

// Additional evaluator-semantics coverage beyond the literal scenario list.

func TestInterpreter_LogicalOperatorsReturnOperandNotBoolean(t *testing.T) {
	out, rep := run(`print nil or "default"; print "first" and "second";`)
	require.Empty(t, rep.static)
	require.Empty(t, rep.runtime)
	assert.Equal(t, "default\nsecond\n", out)
}

func TestInterpreter_Truthiness_NilAndFalseAreFalsy(t *testing.T) {
	out, rep := run(`
		if (nil) print "unreachable"; else print "nil falsy";
		if (false) print "unreachable"; else print "false falsy";
		if (0) print "zero truthy";
	`)
	require.Empty(t, rep.static)
	require.Empty(t, rep.runtime)
	assert.Equal(t, "nil falsy\nfalse falsy\nzero truthy\n", out)
}

func TestInterpreter_WhileLoop(t *testing.T) {
	out, rep := run(`var i = 0; while (i < 3) { print i; i = i + 1; }`)
	require.Empty(t, rep.static)
	require.Empty(t, rep.runtime)
	assert.Equal(t, "0\n1\n2\n", out)
}

func TestInterpreter_ForLoopDesugaring(t *testing.T) {
	out, rep := run(`for (var i = 0; i < 3; i = i + 1) print i;`)
	require.Empty(t, rep.static)
	require.Empty(t, rep.runtime)
	assert.Equal(t, "0\n1\n2\n", out)
}

func TestInterpreter_DivisionByZeroProducesInfNotRuntimeError(t *testing.T) {
	// Lox numbers are IEEE-754 doubles; division follows float semantics
	// rather than raising, same as the underlying float64 arithmetic.
	out, rep := run(`print 1 / 0;`)
	require.Empty(t, rep.static)
	require.Empty(t, rep.runtime)
	assert.Equal(t, "+Inf\n", out)
}

func TestInterpreter_CallingNonCallableIsRuntimeError(t *testing.T) {
	_, rep := run(`var x = 1; x();`)
	require.Empty(t, rep.static)
	require.Len(t, rep.runtime, 1)
	assert.Contains(t, rep.runtime[0], "Can only call functions and classes")
}

func TestInterpreter_ArityMismatchIsRuntimeError(t *testing.T) {
	_, rep := run(`fun f(a, b) { return a + b; } f(1);`)
	require.Empty(t, rep.static)
	require.Len(t, rep.runtime, 1)
	assert.Contains(t, rep.runtime[0], "Expected 2 arguments but got 1")
}

func TestInterpreter_UndefinedPropertyAccessIsRuntimeError(t *testing.T) {
	_, rep := run(`class A {} print A().missing;`)
	require.Empty(t, rep.static)
	require.Len(t, rep.runtime, 1)
	assert.Contains(t, rep.runtime[0], "Undefined property 'missing'.")
}

func TestInterpreter_NativeClockReturnsNumber(t *testing.T) {
	out, rep := run(`print clock() >= 0;`)
	require.Empty(t, rep.static)
	require.Empty(t, rep.runtime)
	assert.Equal(t, "true\n", out)
}
