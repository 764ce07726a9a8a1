// Copyright (c) 2026 Agora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package search

import "fmt"

// ParameterDecodeError reports a grid parameter whose value is not valid JSON.
//
// It is the only error [Codec.Decode] returns. Every other malformed
// parameter falls back to its default.
type ParameterDecodeError struct {
	// Key is the query parameter that failed to decode.
	Key string
	// Err is the underlying JSON syntax error.
	Err error
}

// Error implements the error interface.
func (e *ParameterDecodeError) Error() string {
	return fmt.Sprintf("search: cannot decode parameter %q: %v", e.Key, e.Err)
}

// Unwrap exposes the JSON error to [errors.Is] and [errors.As].
func (e *ParameterDecodeError) Unwrap() error { return e.Err }
