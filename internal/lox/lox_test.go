package lox

import (
	"bytes"
	"fmt"
)

// recordingReporter captures every diagnostic instead of writing it
// anywhere, for assertions in tests.
type recordingReporter struct {
	static  []string
	runtime []string
}

func (r *recordingReporter) ReportStatic(line int, where, message string) {
	r.static = append(r.static, fmt.Sprintf("[line %d] Error%s: %s", line, where, message))
}

func (r *recordingReporter) ReportRuntime(tok Token, message string) {
	r.runtime = append(r.runtime, message)
}

// run is a small end-to-end helper used by interpreter/pipeline tests: it
// runs source through a Pipeline writing to a bytes.Buffer and returns
// the captured stdout plus the diagnostics reporter.
func run(source string) (output string, rep *recordingReporter) {
	var buf bytes.Buffer
	rep = &recordingReporter{}
	p := NewPipeline(&buf, rep, false)
	p.Run(source)
	return buf.String(), rep
}
