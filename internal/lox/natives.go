package lox

import "time"

// clockFn is the single builtin spec.md's Non-goals allow: a zero-arity
// native returning a monotonic millisecond count, exposed in the global
// environment as `clock`.
type clockFn struct {
	start time.Time
}

func newClockFn() *clockFn {
	return &clockFn{start: time.Now()}
}

func (c *clockFn) Arity() int { return 0 }

func (c *clockFn) String() string { return "<native fn clock>" }

func (c *clockFn) Call(in *Interpreter, args []interface{}) (interface{}, error) {
	return float64(time.Since(c.start).Milliseconds()), nil
}
