package lox

// Function wraps a FunctionStmt AST node together with the environment
// captured at declaration time (its closure), giving it closure semantics.
// isInitializer marks a class's `init` method, which always returns `this`
// regardless of any explicit return (spec.md §4.6).
type Function struct {
	declaration   *FunctionStmt
	closure       *Environment
	isInitializer bool
}

// NewFunction wraps declaration with closure as its captured environment.
func NewFunction(declaration *FunctionStmt, closure *Environment, isInitializer bool) *Function {
	return &Function{declaration: declaration, closure: closure, isInitializer: isInitializer}
}

// Bind returns a new Function identical to f except its closure is a fresh
// frame enclosing f's closure and containing `this` → instance. Two binds
// of the same method on the same instance are independent Function values
// that both resolve `this` to the same instance (method binding identity,
// spec.md §8).
func (f *Function) Bind(instance *Instance) *Function {
	env := NewEnvironment(f.closure)
	env.Define("this", instance)
	return NewFunction(f.declaration, env, f.isInitializer)
}

func (f *Function) Arity() int {
	return len(f.declaration.Params)
}

func (f *Function) String() string {
	return "<fn " + f.declaration.Name.Lexeme + ">"
}

// Call creates a new environment enclosed by the closure, binds each
// parameter to its argument, and executes the body. A caught controlReturn
// supplies the result; otherwise the result is nil. An initializer always
// returns `this` at depth 0 of its own closure frame, regardless of any
// `return;` encountered.
func (f *Function) Call(in *Interpreter, args []interface{}) (interface{}, error) {
	env := NewEnvironment(f.closure)
	for i, param := range f.declaration.Params {
		env.Define(param.Lexeme, args[i])
	}

	err := in.executeBlock(f.declaration.Body, env)
	if ret, ok := err.(*controlReturn); ok {
		if f.isInitializer {
			return f.closure.GetAt(0, "this"), nil
		}
		return ret.value, nil
	}
	if err != nil {
		return nil, err
	}
	if f.isInitializer {
		return f.closure.GetAt(0, "this"), nil
	}
	return nil, nil
}
