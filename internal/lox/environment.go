package lox

// Environment is one frame of the lexical scope chain: a name→value
// mapping plus an optional link to an enclosing frame. The global frame
// has a nil enclosing link. See spec.md §3/§4.4 for the full contract.
type Environment struct {
	enclosing *Environment
	values    map[string]interface{}
}

// NewEnvironment returns a frame enclosed by enclosing (nil for the
// global frame).
func NewEnvironment(enclosing *Environment) *Environment {
	return &Environment{enclosing: enclosing, values: make(map[string]interface{})}
}

// Define always succeeds, including redefining a name already bound in
// this frame — intentional, to support the REPL (spec.md §3).
func (e *Environment) Define(name string, value interface{}) {
	e.values[name] = value
}

// Get walks the scope chain looking for name, failing with a RuntimeError
// if it is nowhere to be found.
func (e *Environment) Get(name Token) (interface{}, error) {
	if v, ok := e.values[name.Lexeme]; ok {
		return v, nil
	}
	if e.enclosing != nil {
		return e.enclosing.Get(name)
	}
	return nil, newRuntimeError(name, "Undefined variable '%s'.", name.Lexeme)
}

// Assign walks the scope chain to the nearest frame defining name and
// overwrites it there. It never creates a new binding; assigning an
// undefined name is a RuntimeError.
func (e *Environment) Assign(name Token, value interface{}) error {
	if _, ok := e.values[name.Lexeme]; ok {
		e.values[name.Lexeme] = value
		return nil
	}
	if e.enclosing != nil {
		return e.enclosing.Assign(name, value)
	}
	return newRuntimeError(name, "Undefined variable '%s'.", name.Lexeme)
}

// ancestor walks exactly distance enclosing links up the chain. The
// resolver guarantees distance never overshoots the chain.
func (e *Environment) ancestor(distance int) *Environment {
	env := e
	for i := 0; i < distance; i++ {
		env = env.enclosing
	}
	return env
}

// GetAt reads name directly out of the frame distance links up, with no
// existence check: the resolver guarantees the binding is present there.
func (e *Environment) GetAt(distance int, name string) interface{} {
	return e.ancestor(distance).values[name]
}

// AssignAt writes value directly into the frame distance links up.
func (e *Environment) AssignAt(distance int, name string, value interface{}) {
	e.ancestor(distance).values[name] = value
}
