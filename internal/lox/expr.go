package lox

// Expr is any expression AST node. Every node is a distinct pointer, and
// the resolver's side-table (map[Expr]int) is keyed by that pointer
// identity. Each node also gets a unique integer id from freshExprID; the
// resolution table does not use it as its key.
type Expr interface {
	exprNode()
	id() int
	Accept(ExprVisitor) (interface{}, error)
}

var nextExprID int

func freshExprID() int {
	nextExprID++
	return nextExprID
}

type exprBase struct {
	nodeID int
}

func newExprBase() exprBase {
	return exprBase{nodeID: freshExprID()}
}

func (e exprBase) id() int { return e.nodeID }

// ExprVisitor is implemented by anything that walks the expression AST
// (the interpreter, the resolver, the debug printer).
type ExprVisitor interface {
	VisitLiteralExpr(*LiteralExpr) (interface{}, error)
	VisitUnaryExpr(*UnaryExpr) (interface{}, error)
	VisitBinaryExpr(*BinaryExpr) (interface{}, error)
	VisitLogicalExpr(*LogicalExpr) (interface{}, error)
	VisitGroupingExpr(*GroupingExpr) (interface{}, error)
	VisitVariableExpr(*VariableExpr) (interface{}, error)
	VisitAssignExpr(*AssignExpr) (interface{}, error)
	VisitCallExpr(*CallExpr) (interface{}, error)
	VisitGetExpr(*GetExpr) (interface{}, error)
	VisitSetExpr(*SetExpr) (interface{}, error)
	VisitThisExpr(*ThisExpr) (interface{}, error)
	VisitSuperExpr(*SuperExpr) (interface{}, error)
}

func (e *LiteralExpr) exprNode()  {}
func (e *UnaryExpr) exprNode()    {}
func (e *BinaryExpr) exprNode()   {}
func (e *LogicalExpr) exprNode()  {}
func (e *GroupingExpr) exprNode() {}
func (e *VariableExpr) exprNode() {}
func (e *AssignExpr) exprNode()   {}
func (e *CallExpr) exprNode()     {}
func (e *GetExpr) exprNode()      {}
func (e *SetExpr) exprNode()      {}
func (e *ThisExpr) exprNode()     {}
func (e *SuperExpr) exprNode()    {}

// LiteralExpr wraps a scanned literal value (number, string, bool, nil).
type LiteralExpr struct {
	exprBase
	Value interface{}
}

func NewLiteralExpr(value interface{}) *LiteralExpr {
	return &LiteralExpr{exprBase: newExprBase(), Value: value}
}

func (e *LiteralExpr) Accept(v ExprVisitor) (interface{}, error) {
	return v.VisitLiteralExpr(e)
}

// UnaryExpr is a prefix operator applied to a single operand (! or -).
type UnaryExpr struct {
	exprBase
	Op    Token
	Right Expr
}

func NewUnaryExpr(op Token, right Expr) *UnaryExpr {
	return &UnaryExpr{exprBase: newExprBase(), Op: op, Right: right}
}

func (e *UnaryExpr) Accept(v ExprVisitor) (interface{}, error) {
	return v.VisitUnaryExpr(e)
}

// BinaryExpr is an infix arithmetic/comparison/equality expression.
type BinaryExpr struct {
	exprBase
	Left  Expr
	Op    Token
	Right Expr
}

func NewBinaryExpr(left Expr, op Token, right Expr) *BinaryExpr {
	return &BinaryExpr{exprBase: newExprBase(), Left: left, Op: op, Right: right}
}

func (e *BinaryExpr) Accept(v ExprVisitor) (interface{}, error) {
	return v.VisitBinaryExpr(e)
}

// LogicalExpr is `and`/`or`, kept distinct from BinaryExpr because it must
// short-circuit (spec.md §4.5).
type LogicalExpr struct {
	exprBase
	Left  Expr
	Op    Token
	Right Expr
}

func NewLogicalExpr(left Expr, op Token, right Expr) *LogicalExpr {
	return &LogicalExpr{exprBase: newExprBase(), Left: left, Op: op, Right: right}
}

func (e *LogicalExpr) Accept(v ExprVisitor) (interface{}, error) {
	return v.VisitLogicalExpr(e)
}

// GroupingExpr is a parenthesized expression.
type GroupingExpr struct {
	exprBase
	Inner Expr
}

func NewGroupingExpr(inner Expr) *GroupingExpr {
	return &GroupingExpr{exprBase: newExprBase(), Inner: inner}
}

func (e *GroupingExpr) Accept(v ExprVisitor) (interface{}, error) {
	return v.VisitGroupingExpr(e)
}

// VariableExpr reads a named variable.
type VariableExpr struct {
	exprBase
	Name Token
}

func NewVariableExpr(name Token) *VariableExpr {
	return &VariableExpr{exprBase: newExprBase(), Name: name}
}

func (e *VariableExpr) Accept(v ExprVisitor) (interface{}, error) {
	return v.VisitVariableExpr(e)
}

// AssignExpr assigns a new value to an already-declared variable.
type AssignExpr struct {
	exprBase
	Name  Token
	Value Expr
}

func NewAssignExpr(name Token, value Expr) *AssignExpr {
	return &AssignExpr{exprBase: newExprBase(), Name: name, Value: value}
}

func (e *AssignExpr) Accept(v ExprVisitor) (interface{}, error) {
	return v.VisitAssignExpr(e)
}

// CallExpr invokes a callee with a list of evaluated arguments.
type CallExpr struct {
	exprBase
	Callee Expr
	Paren  Token
	Args   []Expr
}

func NewCallExpr(callee Expr, paren Token, args []Expr) *CallExpr {
	return &CallExpr{exprBase: newExprBase(), Callee: callee, Paren: paren, Args: args}
}

func (e *CallExpr) Accept(v ExprVisitor) (interface{}, error) {
	return v.VisitCallExpr(e)
}

// GetExpr reads a property off an instance.
type GetExpr struct {
	exprBase
	Object Expr
	Name   Token
}

func NewGetExpr(object Expr, name Token) *GetExpr {
	return &GetExpr{exprBase: newExprBase(), Object: object, Name: name}
}

func (e *GetExpr) Accept(v ExprVisitor) (interface{}, error) {
	return v.VisitGetExpr(e)
}

// SetExpr writes a property on an instance.
type SetExpr struct {
	exprBase
	Object Expr
	Name   Token
	Value  Expr
}

func NewSetExpr(object Expr, name Token, value Expr) *SetExpr {
	return &SetExpr{exprBase: newExprBase(), Object: object, Name: name, Value: value}
}

func (e *SetExpr) Accept(v ExprVisitor) (interface{}, error) {
	return v.VisitSetExpr(e)
}

// ThisExpr resolves the receiver inside a method body.
type ThisExpr struct {
	exprBase
	Keyword Token
}

func NewThisExpr(keyword Token) *ThisExpr {
	return &ThisExpr{exprBase: newExprBase(), Keyword: keyword}
}

func (e *ThisExpr) Accept(v ExprVisitor) (interface{}, error) {
	return v.VisitThisExpr(e)
}

// SuperExpr resolves a method on the enclosing class's superclass.
type SuperExpr struct {
	exprBase
	Keyword Token
	Method  Token
}

func NewSuperExpr(keyword, method Token) *SuperExpr {
	return &SuperExpr{exprBase: newExprBase(), Keyword: keyword, Method: method}
}

func (e *SuperExpr) Accept(v ExprVisitor) (interface{}, error) {
	return v.VisitSuperExpr(e)
}
