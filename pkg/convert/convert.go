// Copyright (c) 2026 Agora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package convert provides lenient string conversions for query parameters.

A malformed value collapses to a default instead of an error. Do not use it
where malformed input must be reported; the event-search decoder, for one,
keeps its own presence-aware parsing.
*/
package convert

import "strconv"

// ToIntD converts s to an int, returning def when s is empty or malformed.
func ToIntD(s string, def int) int {
	if s == "" {
		return def
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	return def
}

// ToBool parses a boolean string ("true", "1", "false", "0").
// It returns false on an empty or malformed string.
func ToBool(s string) bool {
	v, _ := strconv.ParseBool(s)
	return v
}
