package lox

// Callable is implemented by every Lox value that can appear as the
// callee of a call expression: native builtins, user functions/closures,
// and classes (invoking a class constructs an instance).
type Callable interface {
	Arity() int
	Call(in *Interpreter, args []interface{}) (interface{}, error)
	String() string
}
