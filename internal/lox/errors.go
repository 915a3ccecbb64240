package lox

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
)

// RuntimeError carries the offending token (for its line) and a message.
// It is a plain error value, never a panic: see spec's control-flow note
// on distinguishing runtime errors from the internal non-local return
// carrier (controlReturn, in interpreter.go).
type RuntimeError struct {
	Tok Token
	Msg string
}

func (e *RuntimeError) Error() string {
	return e.Msg
}

func newRuntimeError(tok Token, format string, args ...interface{}) *RuntimeError {
	return &RuntimeError{Tok: tok, Msg: fmt.Sprintf(format, args...)}
}

// parseError is reported by the parser or resolver against a single token
// and carries enough to format the "[line N] Error <where>: <msg>" line
// spec.md §6 requires.
type parseError struct {
	line  int
	where string
	msg   string
}

func (e *parseError) Error() string {
	return fmt.Sprintf("[line %d] Error%s: %s", e.line, e.where, e.msg)
}

func newTokenError(tok Token, msg string) *parseError {
	where := fmt.Sprintf(" at '%s'", tok.Lexeme)
	if tok.Type == EOF {
		where = " at end"
	}
	return &parseError{line: tok.Line, where: where, msg: msg}
}

func newLineError(line int, msg string) *parseError {
	return &parseError{line: line, where: "", msg: msg}
}

// Reporter is the host error sink (spec.md §6): reportStatic/reportRuntime
// are called once per diagnostic, and the reporter is responsible for
// whatever presentation the host wants (cmd/glox uses the lipgloss-styled
// replstyle.Reporter in both file mode and the REPL).
type Reporter interface {
	ReportStatic(line int, where, message string)
	ReportRuntime(tok Token, message string)
}

// errorCollector accumulates the static errors reported during one run of
// the scanner/parser/resolver into a *multierror.Error, alongside the
// line-by-line text the Reporter writes out. This never changes what
// spec.md's output format requires on the output stream. The list is
// reachable only inside this package through errorOrNil; Pipeline.Run
// reports just the hadError/hadRuntimeError flags.
type errorCollector struct {
	reporter Reporter
	had      bool
	errs     *multierror.Error
}

func newErrorCollector(r Reporter) *errorCollector {
	return &errorCollector{reporter: r}
}

func (c *errorCollector) tokenError(tok Token, msg string) {
	pe := newTokenError(tok, msg)
	c.had = true
	c.errs = multierror.Append(c.errs, pe)
	where := pe.where
	c.reporter.ReportStatic(tok.Line, where, msg)
}

func (c *errorCollector) lineError(line int, msg string) {
	pe := newLineError(line, msg)
	c.had = true
	c.errs = multierror.Append(c.errs, pe)
	c.reporter.ReportStatic(line, "", msg)
}

func (c *errorCollector) hadError() bool {
	return c.had
}

func (c *errorCollector) errorOrNil() error {
	return c.errs.ErrorOrNil()
}
