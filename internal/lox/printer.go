package lox

import (
	"fmt"
	"strings"
)

// Printer renders an expression tree as a Lisp-style parenthesized string,
// e.g. `(* (- 123) (group 45.67))`. It is a debug tool exposed through the
// `glox ast` subcommand (SPEC_FULL.md §3.4) — Lox programs cannot invoke
// it. Grounded on the teacher's ast_printer.go, generalized to the full
// expression grammar spec.md §3 defines (the teacher only covered
// Binary/Grouping/Literal/Unary).
type Printer struct{}

// Print renders expr.
func (p *Printer) Print(expr Expr) string {
	result, _ := expr.Accept(p)
	return result.(string)
}

func (p *Printer) parenthesize(name string, exprs ...Expr) (interface{}, error) {
	var b strings.Builder
	b.WriteByte('(')
	b.WriteString(name)
	for _, e := range exprs {
		b.WriteByte(' ')
		s, _ := e.Accept(p)
		b.WriteString(s.(string))
	}
	b.WriteByte(')')
	return b.String(), nil
}

func (p *Printer) VisitLiteralExpr(e *LiteralExpr) (interface{}, error) {
	if e.Value == nil {
		return "nil", nil
	}
	return stringify(e.Value), nil
}

func (p *Printer) VisitUnaryExpr(e *UnaryExpr) (interface{}, error) {
	return p.parenthesize(e.Op.Lexeme, e.Right)
}

func (p *Printer) VisitBinaryExpr(e *BinaryExpr) (interface{}, error) {
	return p.parenthesize(e.Op.Lexeme, e.Left, e.Right)
}

func (p *Printer) VisitLogicalExpr(e *LogicalExpr) (interface{}, error) {
	return p.parenthesize(e.Op.Lexeme, e.Left, e.Right)
}

func (p *Printer) VisitGroupingExpr(e *GroupingExpr) (interface{}, error) {
	return p.parenthesize("group", e.Inner)
}

func (p *Printer) VisitVariableExpr(e *VariableExpr) (interface{}, error) {
	return e.Name.Lexeme, nil
}

func (p *Printer) VisitAssignExpr(e *AssignExpr) (interface{}, error) {
	return p.parenthesize("= "+e.Name.Lexeme, e.Value)
}

func (p *Printer) VisitCallExpr(e *CallExpr) (interface{}, error) {
	return p.parenthesize("call", append([]Expr{e.Callee}, e.Args...)...)
}

func (p *Printer) VisitGetExpr(e *GetExpr) (interface{}, error) {
	return p.parenthesize("get ."+e.Name.Lexeme, e.Object)
}

func (p *Printer) VisitSetExpr(e *SetExpr) (interface{}, error) {
	return p.parenthesize("set ."+e.Name.Lexeme, e.Object, e.Value)
}

func (p *Printer) VisitThisExpr(e *ThisExpr) (interface{}, error) {
	return "this", nil
}

func (p *Printer) VisitSuperExpr(e *SuperExpr) (interface{}, error) {
	return fmt.Sprintf("(super.%s)", e.Method.Lexeme), nil
}
