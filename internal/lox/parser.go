package lox

// maxArgs is the cap on parameter/argument list length (spec.md §4.2).
// Exceeding it is a non-fatal error reported at the offending token;
// parsing continues.
const maxArgs = 255

// Parser is a recursive descent parser over the token sequence the
// grammar in spec.md §4.2 describes, with error synchronization at
// declaration boundaries.
type Parser struct {
	tokens  []Token
	current int
	errs    *errorCollector
}

// NewParser returns a Parser over tokens, reporting errors to errs.
func NewParser(tokens []Token, errs *errorCollector) *Parser {
	return &Parser{tokens: tokens, errs: errs}
}

// Parse parses the whole program and returns its statement list. Parse
// errors are reported via errs and do not stop the parse: the parser
// synchronizes and keeps collecting further declarations.
func (p *Parser) Parse() []Stmt {
	var stmts []Stmt
	for !p.isAtEnd() {
		if s := p.declaration(); s != nil {
			stmts = append(stmts, s)
		}
	}
	return stmts
}

// synchronizingError is panicked with by a parse rule when it could not
// proceed, after errorAt has already reported it; declaration() recovers
// it and resynchronizes.
type synchronizingError struct {
	err error
}

func (e *synchronizingError) Error() string { return e.err.Error() }

func (p *Parser) declaration() (stmt Stmt) {
	defer func() {
		if r := recover(); r != nil {
			se, ok := r.(*synchronizingError)
			if !ok {
				panic(r)
			}
			_ = se
			p.synchronize()
			stmt = nil
		}
	}()

	switch {
	case p.match(Class):
		return p.classDeclaration()
	case p.match(Fun):
		return p.function("function")
	case p.match(VarTok):
		return p.varDeclaration()
	default:
		return p.statement()
	}
}

func (p *Parser) classDeclaration() Stmt {
	name := p.consume(Identifier, "Expect class name.")

	var superclass *VariableExpr
	if p.match(Less) {
		superTok := p.consume(Identifier, "Expect superclass name.")
		superclass = NewVariableExpr(superTok)
	}

	p.consume(LeftBrace, "Expect '{' before class body.")
	var methods []*FunctionStmt
	for !p.check(RightBrace) && !p.isAtEnd() {
		methods = append(methods, p.function("method"))
	}
	p.consume(RightBrace, "Expect '}' after class body.")

	return &ClassStmt{Name: name, Superclass: superclass, Methods: methods}
}

func (p *Parser) function(kind string) *FunctionStmt {
	name := p.consume(Identifier, "Expect "+kind+" name.")
	p.consume(LeftParen, "Expect '(' after "+kind+" name.")
	var params []Token
	if !p.check(RightParen) {
		for {
			if len(params) >= maxArgs {
				p.errorAt(p.peek(), "Can't have more than 255 parameters.")
			}
			params = append(params, p.consume(Identifier, "Expect parameter name."))
			if !p.match(Comma) {
				break
			}
		}
	}
	p.consume(RightParen, "Expect ')' after parameters.")
	p.consume(LeftBrace, "Expect '{' before "+kind+" body.")
	body := p.block()
	return &FunctionStmt{Name: name, Params: params, Body: body}
}

func (p *Parser) varDeclaration() Stmt {
	name := p.consume(Identifier, "Expect variable name.")
	var init Expr
	if p.match(Equal) {
		init = p.expression()
	}
	p.consume(Semicolon, "Expect ';' after variable declaration.")
	return &VarStmt{Name: name, Init: init}
}

func (p *Parser) statement() Stmt {
	switch {
	case p.match(ForTok):
		return p.forStatement()
	case p.match(IfTok):
		return p.ifStatement()
	case p.match(PrintTok):
		return p.printStatement()
	case p.match(ReturnTok):
		return p.returnStatement()
	case p.match(WhileTok):
		return p.whileStatement()
	case p.match(LeftBrace):
		return &BlockStmt{Stmts: p.block()}
	default:
		return p.expressionStatement()
	}
}

// forStatement desugars `for (init; cond; incr) body` into a block
// containing init followed by `while (cond) { body; incr; }`, per
// spec.md §4.2. A missing condition becomes literal true.
func (p *Parser) forStatement() Stmt {
	p.consume(LeftParen, "Expect '(' after 'for'.")

	var initializer Stmt
	switch {
	case p.match(Semicolon):
		initializer = nil
	case p.match(VarTok):
		initializer = p.varDeclaration()
	default:
		initializer = p.expressionStatement()
	}

	var condition Expr
	if !p.check(Semicolon) {
		condition = p.expression()
	}
	p.consume(Semicolon, "Expect ';' after loop condition.")

	var increment Expr
	if !p.check(RightParen) {
		increment = p.expression()
	}
	p.consume(RightParen, "Expect ')' after for clauses.")

	body := p.statement()

	if increment != nil {
		body = &BlockStmt{Stmts: []Stmt{body, &ExpressionStmt{Expr: increment}}}
	}
	if condition == nil {
		condition = NewLiteralExpr(true)
	}
	body = &WhileStmt{Cond: condition, Body: body}

	stmts := []Stmt{body}
	if initializer != nil {
		stmts = []Stmt{initializer, body}
	}
	return &BlockStmt{Stmts: stmts}
}

func (p *Parser) ifStatement() Stmt {
	p.consume(LeftParen, "Expect '(' after 'if'.")
	cond := p.expression()
	p.consume(RightParen, "Expect ')' after if condition.")

	thenBranch := p.statement()
	var elseBranch Stmt
	if p.match(Else) {
		elseBranch = p.statement()
	}
	return &IfStmt{Cond: cond, Then: thenBranch, Else: elseBranch}
}

func (p *Parser) printStatement() Stmt {
	value := p.expression()
	p.consume(Semicolon, "Expect ';' after value.")
	return &PrintStmt{Expr: value}
}

func (p *Parser) returnStatement() Stmt {
	keyword := p.previous()
	var value Expr
	if !p.check(Semicolon) {
		value = p.expression()
	}
	p.consume(Semicolon, "Expect ';' after return value.")
	return &ReturnStmt{Keyword: keyword, Value: value}
}

func (p *Parser) whileStatement() Stmt {
	p.consume(LeftParen, "Expect '(' after 'while'.")
	cond := p.expression()
	p.consume(RightParen, "Expect ')' after condition.")
	body := p.statement()
	return &WhileStmt{Cond: cond, Body: body}
}

func (p *Parser) block() []Stmt {
	var stmts []Stmt
	for !p.check(RightBrace) && !p.isAtEnd() {
		if s := p.declaration(); s != nil {
			stmts = append(stmts, s)
		}
	}
	p.consume(RightBrace, "Expect '}' after block.")
	return stmts
}

func (p *Parser) expressionStatement() Stmt {
	expr := p.expression()
	p.consume(Semicolon, "Expect ';' after expression.")
	return &ExpressionStmt{Expr: expr}
}

func (p *Parser) expression() Expr {
	return p.assignment()
}

// assignment parses the left side at logic_or precedence first, then
// converts it to an Assign/Set node if '=' follows (spec.md §4.2). Any
// other left shape is reported as "Invalid assignment target." without
// aborting the parse (the already-parsed left is returned as-is).
func (p *Parser) assignment() Expr {
	expr := p.or()

	if p.match(Equal) {
		equals := p.previous()
		value := p.assignment()

		switch e := expr.(type) {
		case *VariableExpr:
			return NewAssignExpr(e.Name, value)
		case *GetExpr:
			return NewSetExpr(e.Object, e.Name, value)
		default:
			p.errorAt(equals, "Invalid assignment target.")
			return expr
		}
	}
	return expr
}

func (p *Parser) or() Expr {
	expr := p.and()
	for p.match(OrTok) {
		op := p.previous()
		right := p.and()
		expr = NewLogicalExpr(expr, op, right)
	}
	return expr
}

func (p *Parser) and() Expr {
	expr := p.equality()
	for p.match(And) {
		op := p.previous()
		right := p.equality()
		expr = NewLogicalExpr(expr, op, right)
	}
	return expr
}

func (p *Parser) equality() Expr {
	expr := p.comparison()
	for p.match(BangEqual, EqualEqual) {
		op := p.previous()
		right := p.comparison()
		expr = NewBinaryExpr(expr, op, right)
	}
	return expr
}

func (p *Parser) comparison() Expr {
	expr := p.term()
	for p.match(Greater, GreaterEqual, Less, LessEqual) {
		op := p.previous()
		right := p.term()
		expr = NewBinaryExpr(expr, op, right)
	}
	return expr
}

// term and factor are left-associative loops. The original Python source
// recursed on the right operand here, which made '-' and '/' right-
// associative — a bug spec.md §9 flags. This implementation loops, giving
// the spec-correct left-associative Lox semantics.
func (p *Parser) term() Expr {
	expr := p.factor()
	for p.match(Minus, Plus) {
		op := p.previous()
		right := p.factor()
		expr = NewBinaryExpr(expr, op, right)
	}
	return expr
}

func (p *Parser) factor() Expr {
	expr := p.unary()
	for p.match(Slash, Star) {
		op := p.previous()
		right := p.unary()
		expr = NewBinaryExpr(expr, op, right)
	}
	return expr
}

func (p *Parser) unary() Expr {
	if p.match(Bang, Minus) {
		op := p.previous()
		right := p.unary()
		return NewUnaryExpr(op, right)
	}
	return p.call()
}

func (p *Parser) call() Expr {
	expr := p.primary()
	for {
		switch {
		case p.match(LeftParen):
			expr = p.finishCall(expr)
		case p.match(Dot):
			name := p.consume(Identifier, "Expect property name after '.'.")
			expr = NewGetExpr(expr, name)
		default:
			return expr
		}
	}
}

func (p *Parser) finishCall(callee Expr) Expr {
	var args []Expr
	if !p.check(RightParen) {
		for {
			if len(args) >= maxArgs {
				p.errorAt(p.peek(), "Can't have more than 255 arguments.")
			}
			args = append(args, p.expression())
			if !p.match(Comma) {
				break
			}
		}
	}
	paren := p.consume(RightParen, "Expect ')' after arguments.")
	return NewCallExpr(callee, paren, args)
}

func (p *Parser) primary() Expr {
	switch {
	case p.match(FalseTok):
		return NewLiteralExpr(false)
	case p.match(TrueTok):
		return NewLiteralExpr(true)
	case p.match(NilTok):
		return NewLiteralExpr(nil)
	case p.match(Number, StringTok):
		return NewLiteralExpr(p.previous().Literal)
	case p.match(Super):
		keyword := p.previous()
		p.consume(Dot, "Expect '.' after 'super'.")
		method := p.consume(Identifier, "Expect superclass method name.")
		return NewSuperExpr(keyword, method)
	case p.match(ThisTok):
		return NewThisExpr(p.previous())
	case p.match(Identifier):
		return NewVariableExpr(p.previous())
	case p.match(LeftParen):
		expr := p.expression()
		p.consume(RightParen, "Expect ')' after expression.")
		return NewGroupingExpr(expr)
	}
	panic(p.errorAt(p.peek(), "Expect expression."))
}

// --- token stream primitives ---

func (p *Parser) match(types ...TokenType) bool {
	for _, t := range types {
		if p.check(t) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *Parser) check(t TokenType) bool {
	if p.isAtEnd() {
		return false
	}
	return p.peek().Type == t
}

func (p *Parser) advance() Token {
	if !p.isAtEnd() {
		p.current++
	}
	return p.previous()
}

func (p *Parser) isAtEnd() bool {
	return p.peek().Type == EOF
}

func (p *Parser) peek() Token {
	return p.tokens[p.current]
}

func (p *Parser) previous() Token {
	return p.tokens[p.current-1]
}

func (p *Parser) consume(t TokenType, msg string) Token {
	if p.check(t) {
		return p.advance()
	}
	panic(p.errorAt(p.peek(), msg))
}

// errorAt reports a parse error against tok and returns a
// *synchronizingError the caller may panic with to abort the current
// declaration and let declaration() synchronize.
func (p *Parser) errorAt(tok Token, msg string) *synchronizingError {
	p.errs.tokenError(tok, msg)
	return &synchronizingError{err: newTokenError(tok, msg)}
}

// synchronize discards tokens until it finds a likely statement boundary:
// just past a semicolon, or the next token begins a new declaration/
// statement (spec.md §4.2).
func (p *Parser) synchronize() {
	p.advance()
	for !p.isAtEnd() {
		if p.previous().Type == Semicolon {
			return
		}
		switch p.peek().Type {
		case Class, Fun, VarTok, ForTok, IfTok, WhileTok, PrintTok, ReturnTok:
			return
		}
		p.advance()
	}
}
