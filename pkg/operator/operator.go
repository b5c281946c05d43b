// Package operator maps single-character modifiers to binary numeric combinators.
//
// Steps that merge a computed value into existing state ("increase by", "scale by") use it to
// decide how to combine. An unknown modifier has no operator; the shared policy for that case
// is to replace the current value, which Combine implements.
package operator

import "golang.org/x/exp/constraints"

// Number is the set of types an operator can combine.
type Number interface {
	constraints.Integer | constraints.Float
}

// Op combines the current value with a new one.
type Op[T Number] func(current, value T) T

// For returns the combinator for mod. It reports false for any modifier other than '+' and '*'.
func For[T Number](mod rune) (Op[T], bool) {
	switch mod {
	case '+':
		return func(a, b T) T { return a + b }, true
	case '*':
		return func(a, b T) T { return a * b }, true
	}
	return nil, false
}

// Combine merges value into current using mod. Without an operator, value replaces current.
func Combine[T Number](mod rune, current, value T) T {
	if op, ok := For[T](mod); ok {
		return op(current, value)
	}
	return value
}

// Valid reports whether mod is empty (replace) or a known operator.
func Valid(mod rune) bool {
	switch mod {
	case 0, '+', '*':
		return true
	}
	return false
}
