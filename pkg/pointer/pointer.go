// Copyright (c) 2026 Agora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package pointer provides generic helpers for optional values.

Decoders record "was this field present" as a non-nil pointer and resolve
the defaults at the end:

  - To: Creates a pointer from a value literal.
  - Val: Dereferences a pointer, returning the zero value if nil.
  - Fallback: Dereferences a pointer, returning a fallback value if nil.
*/
package pointer

// To returns a pointer to a copy of v.
func To[T any](v T) *T {
	return &v
}

// Val dereferences p, or returns the zero value of T when p is nil.
func Val[T any](p *T) T {
	if p == nil {
		var zero T
		return zero
	}
	return *p
}

// Fallback dereferences p, or returns fallback when p is nil.
func Fallback[T any](p *T, fallback T) T {
	if p == nil {
		return fallback
	}
	return *p
}
