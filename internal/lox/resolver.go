package lox

import "github.com/sirupsen/logrus"

type functionType int

const (
	ftNone functionType = iota
	ftFunction
	ftMethod
	ftInitializer
)

type classType int

const (
	ctNone classType = iota
	ctClass
	ctSubclass
)

// scope maps a name to whether it has finished being defined (false while
// its own initializer is still resolving).
type scope map[string]bool

// Resolver is the static pass that computes, for every resolvable
// variable/this/super reference, the number of enclosing scopes between
// its use and its defining scope (spec.md §4.3). It never mutates the
// AST; its only output is the resolution-depth table consumed by the
// evaluator.
type Resolver struct {
	errs            *errorCollector
	scopes          []scope
	currentFunction functionType
	currentClass    classType
	locals          map[Expr]int
}

// NewResolver returns a Resolver that reports errors to errs.
func NewResolver(errs *errorCollector) *Resolver {
	return &Resolver{errs: errs, locals: make(map[Expr]int)}
}

// Resolve walks the full statement list and returns the resolution-depth
// table (spec.md §3 "Resolution table").
func (r *Resolver) Resolve(stmts []Stmt) map[Expr]int {
	r.resolveStmts(stmts)
	logrus.Debugf("resolver: computed depths for %d expressions", len(r.locals))
	return r.locals
}

func (r *Resolver) resolveStmts(stmts []Stmt) {
	for _, s := range stmts {
		r.resolveStmt(s)
	}
}

func (r *Resolver) resolveStmt(s Stmt) {
	switch stmt := s.(type) {
	case *BlockStmt:
		r.beginScope()
		r.resolveStmts(stmt.Stmts)
		r.endScope()

	case *VarStmt:
		r.declare(stmt.Name)
		if stmt.Init != nil {
			r.resolveExpr(stmt.Init)
		}
		r.define(stmt.Name)

	case *FunctionStmt:
		r.declare(stmt.Name)
		r.define(stmt.Name)
		r.resolveFunction(stmt, ftFunction)

	case *ExpressionStmt:
		r.resolveExpr(stmt.Expr)

	case *IfStmt:
		r.resolveExpr(stmt.Cond)
		r.resolveStmt(stmt.Then)
		if stmt.Else != nil {
			r.resolveStmt(stmt.Else)
		}

	case *PrintStmt:
		r.resolveExpr(stmt.Expr)

	case *ReturnStmt:
		if r.currentFunction == ftNone {
			r.errs.tokenError(stmt.Keyword, "Can't return from top-level code.")
		}
		if stmt.Value != nil {
			if r.currentFunction == ftInitializer {
				r.errs.tokenError(stmt.Keyword, "Can't return a value from an initializer.")
			}
			r.resolveExpr(stmt.Value)
		}

	case *WhileStmt:
		r.resolveExpr(stmt.Cond)
		r.resolveStmt(stmt.Body)

	case *ClassStmt:
		r.resolveClass(stmt)
	}
}

func (r *Resolver) resolveClass(stmt *ClassStmt) {
	enclosingClass := r.currentClass
	r.currentClass = ctClass

	r.declare(stmt.Name)
	r.define(stmt.Name)

	if stmt.Superclass != nil {
		if stmt.Superclass.Name.Lexeme == stmt.Name.Lexeme {
			r.errs.tokenError(stmt.Superclass.Name, "Class can't inherit from itself.")
		}
		r.currentClass = ctSubclass
		r.resolveExpr(stmt.Superclass)

		r.beginScope()
		r.scopes[len(r.scopes)-1]["super"] = true
	}

	r.beginScope()
	r.scopes[len(r.scopes)-1]["this"] = true

	for _, method := range stmt.Methods {
		kind := ftMethod
		if method.Name.Lexeme == "init" {
			kind = ftInitializer
		}
		r.resolveFunction(method, kind)
	}

	r.endScope()
	if stmt.Superclass != nil {
		r.endScope()
	}

	r.currentClass = enclosingClass
}

func (r *Resolver) resolveFunction(fn *FunctionStmt, kind functionType) {
	enclosingFunction := r.currentFunction
	r.currentFunction = kind

	r.beginScope()
	for _, param := range fn.Params {
		r.declare(param)
		r.define(param)
	}
	r.resolveStmts(fn.Body)
	r.endScope()

	r.currentFunction = enclosingFunction
}

func (r *Resolver) resolveExpr(e Expr) {
	switch expr := e.(type) {
	case *VariableExpr:
		if len(r.scopes) > 0 {
			if defined, ok := r.scopes[len(r.scopes)-1][expr.Name.Lexeme]; ok && !defined {
				r.errs.tokenError(expr.Name, "Can't read local variable in its own initialiser.")
			}
		}
		r.resolveLocal(expr, expr.Name)

	case *AssignExpr:
		r.resolveExpr(expr.Value)
		r.resolveLocal(expr, expr.Name)

	case *BinaryExpr:
		r.resolveExpr(expr.Left)
		r.resolveExpr(expr.Right)

	case *CallExpr:
		r.resolveExpr(expr.Callee)
		for _, arg := range expr.Args {
			r.resolveExpr(arg)
		}

	case *GetExpr:
		r.resolveExpr(expr.Object)

	case *SetExpr:
		r.resolveExpr(expr.Value)
		r.resolveExpr(expr.Object)

	case *GroupingExpr:
		r.resolveExpr(expr.Inner)

	case *LiteralExpr:
		// nothing to resolve

	case *LogicalExpr:
		r.resolveExpr(expr.Left)
		r.resolveExpr(expr.Right)

	case *SuperExpr:
		switch r.currentClass {
		case ctNone:
			r.errs.tokenError(expr.Keyword, "Can't use 'super' outside of a class.")
		case ctClass:
			r.errs.tokenError(expr.Keyword, "Can't use 'super' in a class with no superclass.")
		}
		r.resolveLocal(expr, expr.Keyword)

	case *ThisExpr:
		if r.currentClass == ctNone {
			r.errs.tokenError(expr.Keyword, "Can't use 'this' outside of a class.")
			return
		}
		r.resolveLocal(expr, expr.Keyword)

	case *UnaryExpr:
		r.resolveExpr(expr.Right)
	}
}

// resolveLocal searches scopes from innermost outward; on the first hit at
// distance i, it records expr -> i. If the name is never found, the
// reference is left unrecorded and treated as a global lookup at runtime.
func (r *Resolver) resolveLocal(expr Expr, name Token) {
	for i := len(r.scopes) - 1; i >= 0; i-- {
		if _, ok := r.scopes[i][name.Lexeme]; ok {
			r.locals[expr] = len(r.scopes) - 1 - i
			return
		}
	}
}

func (r *Resolver) beginScope() {
	r.scopes = append(r.scopes, scope{})
}

func (r *Resolver) endScope() {
	r.scopes = r.scopes[:len(r.scopes)-1]
}

// declare adds name to the current scope as not-yet-defined. Redeclaring
// a name already present in the same scope is an error.
func (r *Resolver) declare(name Token) {
	if len(r.scopes) == 0 {
		return
	}
	current := r.scopes[len(r.scopes)-1]
	if _, ok := current[name.Lexeme]; ok {
		r.errs.tokenError(name, "Already a variable with this name in this scope.")
	}
	current[name.Lexeme] = false
}

// define marks name as fully initialized in the current scope.
func (r *Resolver) define(name Token) {
	if len(r.scopes) == 0 {
		return
	}
	r.scopes[len(r.scopes)-1][name.Lexeme] = true
}
