package lox

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scanAll(t *testing.T, source string) ([]Token, *recordingReporter) {
	t.Helper()
	rep := &recordingReporter{}
	errs := newErrorCollector(rep)
	s := NewScanner(source, errs)
	return s.ScanTokens(), rep
}

func TestScanner_EmptySourceYieldsOnlyEOF(t *testing.T) {
	tokens, rep := scanAll(t, "")
	require.Len(t, tokens, 1)
	assert.Equal(t, EOF, tokens[0].Type)
	assert.Empty(t, rep.static)
}

func TestScanner_Totality_AlwaysEndsInEOF(t *testing.T) {
	// property: for any input, scanning terminates and the last token is EOF.
	inputs := []string{
		"", "   ", "\n\n\n", "@@@", `"unterminated`, "1 + 2", "// comment only",
		"var a = 1; fun f() { return a; }",
	}
	for _, src := range inputs {
		tokens, _ := scanAll(t, src)
		require.NotEmpty(t, tokens)
		assert.Equal(t, EOF, tokens[len(tokens)-1].Type, "source %q", src)
	}
}

func TestScanner_Arithmetic(t *testing.T) {
	tokens, rep := scanAll(t, "2 + 4")
	require.Empty(t, rep.static)
	require.Len(t, tokens, 4)
	assert.Equal(t, Number, tokens[0].Type)
	assert.Equal(t, 2.0, tokens[0].Literal)
	assert.Equal(t, Plus, tokens[1].Type)
	assert.Equal(t, Number, tokens[2].Type)
	assert.Equal(t, 4.0, tokens[2].Literal)
	assert.Equal(t, EOF, tokens[3].Type)
}

func TestScanner_TwoCharOperators(t *testing.T) {
	tokens, _ := scanAll(t, "! != = == < <= > >=")
	types := make([]TokenType, 0, len(tokens)-1)
	for _, tok := range tokens[:len(tokens)-1] {
		types = append(types, tok.Type)
	}
	assert.Equal(t, []TokenType{Bang, BangEqual, Equal, EqualEqual, Less, LessEqual, Greater, GreaterEqual}, types)
}

func TestScanner_KeywordMaximalMunch(t *testing.T) {
	// "forest" must scan as a single IDENTIFIER, not FOR followed by "est".
	tokens, _ := scanAll(t, "forest")
	require.Len(t, tokens, 2)
	assert.Equal(t, Identifier, tokens[0].Type)
	assert.Equal(t, "forest", tokens[0].Lexeme)
}

func TestScanner_StringLiteral(t *testing.T) {
	tokens, rep := scanAll(t, `"hello world"`)
	require.Empty(t, rep.static)
	require.Len(t, tokens, 2)
	assert.Equal(t, StringTok, tokens[0].Type)
	assert.Equal(t, "hello world", tokens[0].Literal)
}

func TestScanner_MultilineStringUpdatesLine(t *testing.T) {
	tokens, _ := scanAll(t, "\"a\nb\"\nprint 1;")
	// the print token should be on line 3
	var printTok Token
	for _, tok := range tokens {
		if tok.Type == PrintTok {
			printTok = tok
		}
	}
	assert.Equal(t, 3, printTok.Line)
}

func TestScanner_UnterminatedStringIsLexicalError(t *testing.T) {
	_, rep := scanAll(t, `"no closing quote`)
	require.Len(t, rep.static, 1)
	assert.Contains(t, rep.static[0], "Unterminated string")
}

func TestScanner_UnexpectedCharacterContinuesScanning(t *testing.T) {
	tokens, rep := scanAll(t, "@ 1")
	require.Len(t, rep.static, 1)
	// scanning continues past the bad character and still finds the number
	foundNumber := false
	for _, tok := range tokens {
		if tok.Type == Number {
			foundNumber = true
		}
	}
	assert.True(t, foundNumber)
}

func TestScanner_LineCommentConsumedNotEmitted(t *testing.T) {
	tokens, _ := scanAll(t, "1 // a comment\n2")
	require.Len(t, tokens, 3)
	assert.Equal(t, Number, tokens[0].Type)
	assert.Equal(t, Number, tokens[1].Type)
}
