package lox

import "fmt"

// TokenType is an "enum-like" wrapper for the lexical token kinds.
type TokenType int

// Each token type is assigned a unique int value.
const (
	// single character tokens
	LeftParen TokenType = iota
	RightParen
	LeftBrace
	RightBrace
	Comma
	Dot
	Minus
	Plus
	Semicolon
	Slash
	Star

	// one or two character tokens
	Bang
	BangEqual
	Equal
	EqualEqual
	Greater
	GreaterEqual
	Less
	LessEqual

	// literals
	Identifier
	StringTok
	Number

	// keywords
	And
	Class
	Else
	FalseTok
	Fun
	ForTok
	IfTok
	NilTok
	OrTok
	PrintTok
	ReturnTok
	Super
	ThisTok
	TrueTok
	VarTok
	WhileTok

	// End of File
	EOF
)

var tokenNames = map[TokenType]string{
	LeftParen: "LEFT_PAREN", RightParen: "RIGHT_PAREN",
	LeftBrace: "LEFT_BRACE", RightBrace: "RIGHT_BRACE",
	Comma: "COMMA", Dot: "DOT", Minus: "MINUS", Plus: "PLUS",
	Semicolon: "SEMICOLON", Slash: "SLASH", Star: "STAR",
	Bang: "BANG", BangEqual: "BANG_EQUAL",
	Equal: "EQUAL", EqualEqual: "EQUAL_EQUAL",
	Greater: "GREATER", GreaterEqual: "GREATER_EQUAL",
	Less: "LESS", LessEqual: "LESS_EQUAL",
	Identifier: "IDENTIFIER", StringTok: "STRING", Number: "NUMBER",
	And: "AND", Class: "CLASS", Else: "ELSE", FalseTok: "FALSE",
	Fun: "FUN", ForTok: "FOR", IfTok: "IF", NilTok: "NIL", OrTok: "OR",
	PrintTok: "PRINT", ReturnTok: "RETURN", Super: "SUPER", ThisTok: "THIS",
	TrueTok: "TRUE", VarTok: "VAR", WhileTok: "WHILE", EOF: "EOF",
}

func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return fmt.Sprintf("TokenType(%d)", int(t))
}

// keywords maps reserved identifiers to their keyword token type. A maximal-
// munch identifier scan only checks this table once the longest possible
// identifier has been consumed.
var keywords = map[string]TokenType{
	"and": And, "class": Class, "else": Else, "false": FalseTok,
	"for": ForTok, "fun": Fun, "if": IfTok, "nil": NilTok, "or": OrTok,
	"print": PrintTok, "return": ReturnTok, "super": Super, "this": ThisTok,
	"true": TrueTok, "var": VarTok, "while": WhileTok,
}

// Token is a lexeme paired with its kind, literal value (if any), and the
// 1-based source line it was scanned from.
type Token struct {
	Type    TokenType
	Lexeme  string
	Literal interface{}
	Line    int
}

func (t Token) String() string {
	return fmt.Sprintf("%s %q %v", t.Type, t.Lexeme, t.Literal)
}
