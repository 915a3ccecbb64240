package lox

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
)

// controlReturn is the non-local transfer used to implement `return`: an
// ordinary Go error value carrying the return value, propagated up
// through exec/eval until Function.Call catches it at the call boundary.
// It must never escape the top-level Interpret loop — Interpret treats it
// as an internal invariant violation, never as a RuntimeError.
type controlReturn struct {
	value interface{}
}

func (c *controlReturn) Error() string { return "return outside function" }

// Interpreter walks the resolved AST and executes it. It implements both
// ExprVisitor and StmtVisitor.
type Interpreter struct {
	globals     *Environment
	environment *Environment
	locals      map[Expr]int
	output      io.Writer
	reporter    Reporter
	isREPL      bool
}

// NewInterpreter returns an Interpreter writing program output to output
// and reporting runtime errors to reporter. isREPL enables the prompt-mode
// convenience of auto-printing bare expression statement results.
func NewInterpreter(output io.Writer, reporter Reporter, isREPL bool) *Interpreter {
	globals := NewEnvironment(nil)
	globals.Define("clock", newClockFn())
	return &Interpreter{
		globals:     globals,
		environment: globals,
		locals:      make(map[Expr]int),
		output:      output,
		reporter:    reporter,
		isREPL:      isREPL,
	}
}

// Resolve merges the resolution-depth table computed by the Resolver into
// the interpreter's table. Merging (rather than replacing) matters in
// REPL mode: each prompt line is resolved independently, but earlier
// lines' closures may still be invoked later and must keep resolving
// their own captured variable references (spec.md §4.4's late-binding-at-
// the-global-frame guarantee only covers globals, not already-resolved
// locals).
func (in *Interpreter) Resolve(locals map[Expr]int) {
	if in.locals == nil {
		in.locals = make(map[Expr]int)
	}
	for expr, depth := range locals {
		in.locals[expr] = depth
	}
}

// Interpret executes stmts in source order. A RuntimeError aborts the
// remainder of the list and is reported via the Reporter; it does not
// panic.
func (in *Interpreter) Interpret(stmts []Stmt) {
	for _, stmt := range stmts {
		if err := in.exec(stmt); err != nil {
			if rerr, ok := err.(*RuntimeError); ok {
				in.reporter.ReportRuntime(rerr.Tok, rerr.Msg)
				return
			}
			if _, ok := err.(*controlReturn); ok {
				logrus.Panicln("return statement escaped top-level evaluation")
			}
			in.reporter.ReportRuntime(Token{}, err.Error())
			return
		}
	}
}

func (in *Interpreter) exec(s Stmt) error {
	_, err := s.Accept(in)
	return err
}

func (in *Interpreter) eval(e Expr) (interface{}, error) {
	return e.Accept(in)
}

// --- statements ---

func (in *Interpreter) VisitExpressionStmt(stmt *ExpressionStmt) (interface{}, error) {
	value, err := in.eval(stmt.Expr)
	if err != nil {
		return nil, err
	}
	if in.isREPL {
		switch stmt.Expr.(type) {
		case *AssignExpr, *CallExpr:
			// not printed, matching the teacher-adjacent REPL convention of
			// only auto-printing pure expression results
		default:
			fmt.Fprintln(in.output, stringify(value))
		}
	}
	return nil, nil
}

func (in *Interpreter) VisitPrintStmt(stmt *PrintStmt) (interface{}, error) {
	value, err := in.eval(stmt.Expr)
	if err != nil {
		return nil, err
	}
	fmt.Fprintln(in.output, stringify(value))
	return nil, nil
}

func (in *Interpreter) VisitVarStmt(stmt *VarStmt) (interface{}, error) {
	var value interface{}
	if stmt.Init != nil {
		var err error
		value, err = in.eval(stmt.Init)
		if err != nil {
			return nil, err
		}
	}
	in.environment.Define(stmt.Name.Lexeme, value)
	return nil, nil
}

func (in *Interpreter) VisitBlockStmt(stmt *BlockStmt) (interface{}, error) {
	return nil, in.executeBlock(stmt.Stmts, NewEnvironment(in.environment))
}

// executeBlock runs stmts with env pushed as the current environment,
// restoring the previous environment on return (including on error/
// control-return, so a thrown error still unwinds scope cleanly).
func (in *Interpreter) executeBlock(stmts []Stmt, env *Environment) error {
	previous := in.environment
	in.environment = env
	defer func() { in.environment = previous }()

	for _, stmt := range stmts {
		if err := in.exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (in *Interpreter) VisitIfStmt(stmt *IfStmt) (interface{}, error) {
	cond, err := in.eval(stmt.Cond)
	if err != nil {
		return nil, err
	}
	if truthy(cond) {
		return nil, in.exec(stmt.Then)
	} else if stmt.Else != nil {
		return nil, in.exec(stmt.Else)
	}
	return nil, nil
}

func (in *Interpreter) VisitWhileStmt(stmt *WhileStmt) (interface{}, error) {
	for {
		cond, err := in.eval(stmt.Cond)
		if err != nil {
			return nil, err
		}
		if !truthy(cond) {
			return nil, nil
		}
		if err := in.exec(stmt.Body); err != nil {
			return nil, err
		}
	}
}

func (in *Interpreter) VisitFunctionStmt(stmt *FunctionStmt) (interface{}, error) {
	fn := NewFunction(stmt, in.environment, false)
	in.environment.Define(stmt.Name.Lexeme, fn)
	return nil, nil
}

func (in *Interpreter) VisitReturnStmt(stmt *ReturnStmt) (interface{}, error) {
	var value interface{}
	if stmt.Value != nil {
		var err error
		value, err = in.eval(stmt.Value)
		if err != nil {
			return nil, err
		}
	}
	return nil, &controlReturn{value: value}
}

func (in *Interpreter) VisitClassStmt(stmt *ClassStmt) (interface{}, error) {
	var superclass *Class
	if stmt.Superclass != nil {
		superVal, err := in.eval(stmt.Superclass)
		if err != nil {
			return nil, err
		}
		var ok bool
		superclass, ok = superVal.(*Class)
		if !ok {
			return nil, newRuntimeError(stmt.Superclass.Name, "Superclass must be a class.")
		}
	}

	in.environment.Define(stmt.Name.Lexeme, nil)

	if stmt.Superclass != nil {
		in.environment = NewEnvironment(in.environment)
		in.environment.Define("super", superclass)
	}

	methods := make(map[string]*Function)
	for _, method := range stmt.Methods {
		isInit := method.Name.Lexeme == "init"
		methods[method.Name.Lexeme] = NewFunction(method, in.environment, isInit)
	}
	class := NewClass(stmt.Name.Lexeme, superclass, methods)

	if stmt.Superclass != nil {
		in.environment = in.environment.enclosing
	}

	if err := in.environment.Assign(stmt.Name, class); err != nil {
		return nil, err
	}
	return nil, nil
}

// --- expressions ---

func (in *Interpreter) VisitLiteralExpr(expr *LiteralExpr) (interface{}, error) {
	return expr.Value, nil
}

func (in *Interpreter) VisitGroupingExpr(expr *GroupingExpr) (interface{}, error) {
	return in.eval(expr.Inner)
}

func (in *Interpreter) VisitUnaryExpr(expr *UnaryExpr) (interface{}, error) {
	right, err := in.eval(expr.Right)
	if err != nil {
		return nil, err
	}
	switch expr.Op.Type {
	case Minus:
		num, ok := right.(float64)
		if !ok {
			return nil, newRuntimeError(expr.Op, "Operand must be a number.")
		}
		return -num, nil
	case Bang:
		return !truthy(right), nil
	}
	logrus.Panicf("unreachable unary operator %v", expr.Op.Type)
	return nil, nil
}

func (in *Interpreter) VisitBinaryExpr(expr *BinaryExpr) (interface{}, error) {
	left, err := in.eval(expr.Left)
	if err != nil {
		return nil, err
	}
	right, err := in.eval(expr.Right)
	if err != nil {
		return nil, err
	}

	switch expr.Op.Type {
	case BangEqual:
		return !isEqual(left, right), nil
	case EqualEqual:
		return isEqual(left, right), nil
	case Greater:
		return numericBinary(expr.Op, left, right, func(a, b float64) interface{} { return a > b })
	case GreaterEqual:
		return numericBinary(expr.Op, left, right, func(a, b float64) interface{} { return a >= b })
	case Less:
		return numericBinary(expr.Op, left, right, func(a, b float64) interface{} { return a < b })
	case LessEqual:
		return numericBinary(expr.Op, left, right, func(a, b float64) interface{} { return a <= b })
	case Minus:
		return numericBinary(expr.Op, left, right, func(a, b float64) interface{} { return a - b })
	case Slash:
		return numericBinary(expr.Op, left, right, func(a, b float64) interface{} { return a / b })
	case Star:
		return numericBinary(expr.Op, left, right, func(a, b float64) interface{} { return a * b })
	case Plus:
		if ln, lok := left.(float64); lok {
			if rn, rok := right.(float64); rok {
				return ln + rn, nil
			}
		}
		if ls, lok := left.(string); lok {
			if rs, rok := right.(string); rok {
				return ls + rs, nil
			}
		}
		return nil, newRuntimeError(expr.Op, "Operands must be two numbers or two strings.")
	}
	logrus.Panicf("unreachable binary operator %v", expr.Op.Type)
	return nil, nil
}

// numericBinary checks both operands are numbers before applying fn,
// reporting the shared "Operands must be a number." RuntimeError otherwise.
func numericBinary(op Token, left, right interface{}, fn func(a, b float64) interface{}) (interface{}, error) {
	ln, lok := left.(float64)
	rn, rok := right.(float64)
	if !lok || !rok {
		return nil, newRuntimeError(op, "Operands must be a number.")
	}
	return fn(ln, rn), nil
}

func (in *Interpreter) VisitLogicalExpr(expr *LogicalExpr) (interface{}, error) {
	left, err := in.eval(expr.Left)
	if err != nil {
		return nil, err
	}
	if expr.Op.Type == OrTok {
		if truthy(left) {
			return left, nil
		}
	} else {
		if !truthy(left) {
			return left, nil
		}
	}
	return in.eval(expr.Right)
}

func (in *Interpreter) VisitVariableExpr(expr *VariableExpr) (interface{}, error) {
	return in.lookUpVariable(expr.Name, expr)
}

func (in *Interpreter) lookUpVariable(name Token, expr Expr) (interface{}, error) {
	if distance, ok := in.locals[expr]; ok {
		return in.environment.GetAt(distance, name.Lexeme), nil
	}
	return in.globals.Get(name)
}

func (in *Interpreter) VisitAssignExpr(expr *AssignExpr) (interface{}, error) {
	value, err := in.eval(expr.Value)
	if err != nil {
		return nil, err
	}
	if distance, ok := in.locals[expr]; ok {
		in.environment.AssignAt(distance, expr.Name.Lexeme, value)
	} else if err := in.globals.Assign(expr.Name, value); err != nil {
		return nil, err
	}
	return value, nil
}

func (in *Interpreter) VisitCallExpr(expr *CallExpr) (interface{}, error) {
	callee, err := in.eval(expr.Callee)
	if err != nil {
		return nil, err
	}

	// Arguments are evaluated strictly left to right (spec.md §5); this
	// order is user-observable through side effects.
	args := make([]interface{}, 0, len(expr.Args))
	for _, a := range expr.Args {
		v, err := in.eval(a)
		if err != nil {
			return nil, err
		}
		args = append(args, v)
	}

	call, ok := callee.(Callable)
	if !ok {
		return nil, newRuntimeError(expr.Paren, "Can only call functions and classes.")
	}
	if len(args) != call.Arity() {
		return nil, newRuntimeError(expr.Paren, "Expected %d arguments but got %d.", call.Arity(), len(args))
	}
	return call.Call(in, args)
}

func (in *Interpreter) VisitGetExpr(expr *GetExpr) (interface{}, error) {
	obj, err := in.eval(expr.Object)
	if err != nil {
		return nil, err
	}
	instance, ok := obj.(*Instance)
	if !ok {
		return nil, newRuntimeError(expr.Name, "Only instances have properties.")
	}
	return instance.Get(expr.Name)
}

func (in *Interpreter) VisitSetExpr(expr *SetExpr) (interface{}, error) {
	obj, err := in.eval(expr.Object)
	if err != nil {
		return nil, err
	}
	instance, ok := obj.(*Instance)
	if !ok {
		return nil, newRuntimeError(expr.Name, "Only instances have fields.")
	}
	value, err := in.eval(expr.Value)
	if err != nil {
		return nil, err
	}
	instance.Set(expr.Name, value)
	return value, nil
}

func (in *Interpreter) VisitThisExpr(expr *ThisExpr) (interface{}, error) {
	return in.lookUpVariable(expr.Keyword, expr)
}

// VisitSuperExpr fetches the superclass at the depth the resolver recorded
// for `super`, `this` at depth-1 of that (this is always enclosed one
// frame deeper than super, see function.go Bind/VisitClassStmt), looks up
// the method on the superclass chain, and binds it to `this`.
func (in *Interpreter) VisitSuperExpr(expr *SuperExpr) (interface{}, error) {
	distance, ok := in.locals[expr]
	if !ok {
		logrus.Panicln("super expression left unresolved")
	}
	superclass, _ := in.environment.GetAt(distance, "super").(*Class)
	this, _ := in.environment.GetAt(distance-1, "this").(*Instance)

	method, found := superclass.FindMethod(expr.Method.Lexeme)
	if !found {
		return nil, newRuntimeError(expr.Method, "Undefined property '%s'.", expr.Method.Lexeme)
	}
	return method.Bind(this), nil
}
