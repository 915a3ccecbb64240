package lox

import (
	"fmt"
	"strconv"
	"strings"
)

// truthy implements Lox truthiness: nil and false are falsy, everything
// else (including 0 and "") is truthy.
func truthy(v interface{}) bool {
	if v == nil {
		return false
	}
	if b, ok := v.(bool); ok {
		return b
	}
	return true
}

// isEqual implements Lox equality: nil equals only nil; numbers/strings/
// bools compare by value; objects (instances/callables) compare by
// identity, which Go's == already gives for pointer-shaped values.
func isEqual(a, b interface{}) bool {
	if a == nil && b == nil {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	an, aNum := a.(float64)
	bn, bNum := b.(float64)
	if aNum && bNum {
		return an == bn
	}
	as, aStr := a.(string)
	bs, bStr := b.(string)
	if aStr && bStr {
		return as == bs
	}
	ab, aBool := a.(bool)
	bb, bBool := b.(bool)
	if aBool && bBool {
		return ab == bb
	}
	return a == b
}

// stringify converts a Lox runtime value to its printed form (spec.md
// §4.5): nil -> "nil", numbers drop a trailing ".0", booleans print
// true/false, strings print themselves, instances/classes/functions use
// their own String() forms.
func stringify(v interface{}) string {
	if v == nil {
		return "nil"
	}
	switch val := v.(type) {
	case float64:
		return formatNumber(val)
	case string:
		return val
	case bool:
		if val {
			return "true"
		}
		return "false"
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprintf("%v", val)
	}
}

// formatNumber renders a float64 with the shortest decimal representation,
// trimming a trailing ".0" so integer-valued doubles stringify with no
// decimal point (spec.md §8 "stringification round-trip").
func formatNumber(n float64) string {
	s := strconv.FormatFloat(n, 'f', -1, 64)
	if strings.HasSuffix(s, ".0") {
		return strings.TrimSuffix(s, ".0")
	}
	return s
}
