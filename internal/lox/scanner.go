package lox

import (
	"strconv"

	"github.com/sirupsen/logrus"
)

// Scanner turns a source string into an ordered token sequence terminated by
// a single EOF token. Single-pass, character indexed, with two cursors
// (start of the current lexeme, current of the next unread byte) and a line
// counter. Lexical errors are reported but never stop the scan: the full
// source is always consumed (scanner totality, spec.md §8).
type Scanner struct {
	source  string
	tokens  []Token
	start   int
	current int
	line    int
	errs    *errorCollector
}

// NewScanner returns a Scanner ready to tokenize source.
func NewScanner(source string, errs *errorCollector) *Scanner {
	return &Scanner{source: source, line: 1, errs: errs}
}

// ScanTokens scans the full source and returns its token sequence, always
// ending with a single EOF token.
func (s *Scanner) ScanTokens() []Token {
	for !s.isAtEnd() {
		s.start = s.current
		s.scanToken()
	}
	s.tokens = append(s.tokens, Token{Type: EOF, Lexeme: "", Line: s.line})
	logrus.Debugf("scanner: produced %d tokens", len(s.tokens))
	return s.tokens
}

func (s *Scanner) isAtEnd() bool {
	return s.current >= len(s.source)
}

func (s *Scanner) advance() byte {
	c := s.source[s.current]
	s.current++
	return c
}

func (s *Scanner) peek() byte {
	if s.isAtEnd() {
		return 0
	}
	return s.source[s.current]
}

// peekNext looks one character past current. The correct end-of-input guard
// is current+1 >= len(source); the original Python source used a strict >
// here, an off-by-one bug spec.md §9 calls out. This implementation uses
// the correct guard.
func (s *Scanner) peekNext() byte {
	if s.current+1 >= len(s.source) {
		return 0
	}
	return s.source[s.current+1]
}

func (s *Scanner) match(expected byte) bool {
	if s.isAtEnd() || s.source[s.current] != expected {
		return false
	}
	s.current++
	return true
}

func (s *Scanner) addToken(t TokenType) {
	s.addTokenLiteral(t, nil)
}

func (s *Scanner) addTokenLiteral(t TokenType, literal interface{}) {
	lexeme := s.source[s.start:s.current]
	s.tokens = append(s.tokens, Token{Type: t, Lexeme: lexeme, Literal: literal, Line: s.line})
}

func (s *Scanner) scanToken() {
	c := s.advance()
	switch c {
	case '(':
		s.addToken(LeftParen)
	case ')':
		s.addToken(RightParen)
	case '{':
		s.addToken(LeftBrace)
	case '}':
		s.addToken(RightBrace)
	case ',':
		s.addToken(Comma)
	case '.':
		s.addToken(Dot)
	case '-':
		s.addToken(Minus)
	case '+':
		s.addToken(Plus)
	case ';':
		s.addToken(Semicolon)
	case '*':
		s.addToken(Star)
	case '!':
		s.addToken(s.twoChar('=', BangEqual, Bang))
	case '=':
		s.addToken(s.twoChar('=', EqualEqual, Equal))
	case '<':
		s.addToken(s.twoChar('=', LessEqual, Less))
	case '>':
		s.addToken(s.twoChar('=', GreaterEqual, Greater))
	case '/':
		if s.match('/') {
			for s.peek() != '\n' && !s.isAtEnd() {
				s.advance()
			}
		} else {
			s.addToken(Slash)
		}
	case ' ', '\r', '\t':
		// whitespace, ignored
	case '\n':
		s.line++
	case '"':
		s.scanString()
	default:
		switch {
		case isDigit(c):
			s.scanNumber()
		case isAlpha(c):
			s.scanIdentifier()
		default:
			s.errs.lineError(s.line, "Unexpected character.")
		}
	}
}

// twoChar implements the dispatch rule for !, =, <, > becoming their
// *_EQUAL form iff the next character is '='.
func (s *Scanner) twoChar(next byte, ifMatch, otherwise TokenType) TokenType {
	if s.match(next) {
		return ifMatch
	}
	return otherwise
}

func (s *Scanner) scanString() {
	for s.peek() != '"' && !s.isAtEnd() {
		if s.peek() == '\n' {
			s.line++
		}
		s.advance()
	}
	if s.isAtEnd() {
		s.errs.lineError(s.line, "Unterminated string.")
		return
	}
	// consume closing quote
	s.advance()
	value := s.source[s.start+1 : s.current-1]
	s.addTokenLiteral(StringTok, value)
}

func (s *Scanner) scanNumber() {
	for isDigit(s.peek()) {
		s.advance()
	}
	if s.peek() == '.' && isDigit(s.peekNext()) {
		s.advance()
		for isDigit(s.peek()) {
			s.advance()
		}
	}
	value, err := strconv.ParseFloat(s.source[s.start:s.current], 64)
	if err != nil {
		s.errs.lineError(s.line, "Invalid number literal.")
		return
	}
	s.addTokenLiteral(Number, value)
}

func (s *Scanner) scanIdentifier() {
	for isAlphaNumeric(s.peek()) {
		s.advance()
	}
	text := s.source[s.start:s.current]
	if kw, ok := keywords[text]; ok {
		s.addToken(kw)
		return
	}
	s.addToken(Identifier)
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isAlpha(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isAlphaNumeric(c byte) bool {
	return isAlpha(c) || isDigit(c)
}
