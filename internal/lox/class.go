package lox

// Class is a runtime Lox class: its own methods plus an optional
// superclass link. Invoking a Class (it implements Callable) constructs
// an Instance.
type Class struct {
	Name       string
	Superclass *Class
	Methods    map[string]*Function
}

// NewClass returns a Class named name with the given superclass (nil if
// none) and method table.
func NewClass(name string, superclass *Class, methods map[string]*Function) *Class {
	return &Class{Name: name, Superclass: superclass, Methods: methods}
}

// FindMethod looks up name in the class's own methods, then recursively in
// its superclass chain.
func (c *Class) FindMethod(name string) (*Function, bool) {
	if m, ok := c.Methods[name]; ok {
		return m, true
	}
	if c.Superclass != nil {
		return c.Superclass.FindMethod(name)
	}
	return nil, false
}

func (c *Class) String() string {
	return "<Class " + c.Name + ">"
}

// Arity is the arity of `init` if the class defines one, else 0.
func (c *Class) Arity() int {
	if init, ok := c.FindMethod("init"); ok {
		return init.Arity()
	}
	return 0
}

// Call constructs an Instance of c and, if c (or an ancestor) defines
// `init`, binds it to the new instance and calls it with args.
func (c *Class) Call(in *Interpreter, args []interface{}) (interface{}, error) {
	instance := NewInstance(c)
	if init, ok := c.FindMethod("init"); ok {
		if _, err := init.Bind(instance).Call(in, args); err != nil {
			return nil, err
		}
	}
	return instance, nil
}

// Instance is a runtime object belonging to exactly one Class, with a
// mutable field table created lazily on first write.
type Instance struct {
	class  *Class
	fields map[string]interface{}
}

// NewInstance returns a new Instance of class with no fields set.
func NewInstance(class *Class) *Instance {
	return &Instance{class: class, fields: make(map[string]interface{})}
}

func (i *Instance) String() string {
	return "<" + i.class.Name + " instance>"
}

// Get returns a field if present, else a method bound to the instance,
// else a RuntimeError ("Undefined property ...").
func (i *Instance) Get(name Token) (interface{}, error) {
	if v, ok := i.fields[name.Lexeme]; ok {
		return v, nil
	}
	if method, ok := i.class.FindMethod(name.Lexeme); ok {
		return method.Bind(i), nil
	}
	return nil, newRuntimeError(name, "Undefined property '%s'.", name.Lexeme)
}

// Set always succeeds: fields are created on first write.
func (i *Instance) Set(name Token, value interface{}) {
	i.fields[name.Lexeme] = value
}
