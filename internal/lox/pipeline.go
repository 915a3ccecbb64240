package lox

import (
	"fmt"
	"io"
)

// Pipeline runs the full scanner → parser → resolver → evaluator chain
// over one chunk of source text (spec.md §1 "run(source) → ()"). File
// reading, argument parsing, and the REPL's readline loop are external
// collaborators (spec.md §1) that live in cmd/glox and call Run once per
// file or once per prompt line.
type Pipeline struct {
	interp   *Interpreter
	reporter Reporter
}

// NewPipeline returns a Pipeline that writes program output to output and
// sends diagnostics to reporter. isREPL enables the REPL's auto-print of
// bare expression statements.
func NewPipeline(output io.Writer, reporter Reporter, isREPL bool) *Pipeline {
	return &Pipeline{
		interp:   NewInterpreter(output, reporter, isREPL),
		reporter: reporter,
	}
}

// Run scans, parses, resolves, and — if no static error occurred —
// evaluates source. It reports whether any static error occurred and
// whether any runtime error occurred, so callers can implement the exit
// code policy in spec.md §6/§7 (65/70/0) or the REPL's per-prompt error
// flag reset.
func (p *Pipeline) Run(source string) (hadError, hadRuntimeError bool) {
	errs := newErrorCollector(p.reporter)

	scanner := NewScanner(source, errs)
	tokens := scanner.ScanTokens()

	parser := NewParser(tokens, errs)
	stmts := parser.Parse()

	if errs.hadError() {
		return true, false
	}

	resolver := NewResolver(errs)
	locals := resolver.Resolve(stmts)

	if errs.hadError() {
		return true, false
	}

	p.interp.Resolve(locals)

	runtimeErrs := newRuntimeTrackingReporter(p.reporter)
	p.interp.reporter = runtimeErrs
	p.interp.Interpret(stmts)

	return false, runtimeErrs.hadRuntimeError
}

// runtimeTrackingReporter wraps a Reporter to additionally latch whether
// any runtime error was reported, without changing the text it writes.
type runtimeTrackingReporter struct {
	inner           Reporter
	hadRuntimeError bool
}

func newRuntimeTrackingReporter(inner Reporter) *runtimeTrackingReporter {
	return &runtimeTrackingReporter{inner: inner}
}

func (r *runtimeTrackingReporter) ReportStatic(line int, where, message string) {
	r.inner.ReportStatic(line, where, message)
}

func (r *runtimeTrackingReporter) ReportRuntime(tok Token, message string) {
	r.hadRuntimeError = true
	r.inner.ReportRuntime(tok, message)
}

// ParseOnly scans and parses source without resolving or evaluating it,
// for tooling that only needs the AST (the `glox ast` debug subcommand,
// SPEC_FULL.md §3.4). It reports whether any lexical/parse error occurred.
func ParseOnly(source string, reporter Reporter) (stmts []Stmt, hadError bool) {
	errs := newErrorCollector(reporter)
	scanner := NewScanner(source, errs)
	tokens := scanner.ScanTokens()
	parser := NewParser(tokens, errs)
	stmts = parser.Parse()
	return stmts, errs.hadError()
}

// TextReporter is the plain, unstyled Reporter implementation, used by the
// `glox ast` subcommand: it writes exactly the formats spec.md §6 specifies.
type TextReporter struct {
	Out io.Writer
}

func (r *TextReporter) ReportStatic(line int, where, message string) {
	fmt.Fprintf(r.Out, "[line %d] Error%s: %s\n", line, where, message)
}

func (r *TextReporter) ReportRuntime(tok Token, message string) {
	fmt.Fprintf(r.Out, "%s\n\t[Line %d]\n", message, tok.Line)
}
