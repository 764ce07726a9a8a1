// Copyright (c) 2026 Agora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package slug generates ASCII URL slugs from arbitrary Unicode strings.
//
// Saved searches carry a slug of their name (e.g. "jazz-this-weekend") so a
// bookmark stays readable.
package slug

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// nonAlphanumeric matches every run of characters outside [a-z0-9].
var nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]+`)

// From converts s into a URL-safe ASCII slug.
//
// # Transformation Pipeline
//
// 1. Normalizes to NFD and drops combining marks (é → e).
// 2. Converts to lowercase.
// 3. Collapses every non-alphanumeric run into a single hyphen.
// 4. Trims leading and trailing hyphens.
//
// Letters without an ASCII decomposition are dropped, so the result may be
// empty; callers supply their own fallback.
func From(s string) string {
	stripMarks := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, err := transform.String(stripMarks, s)
	if err != nil {
		result = s
	}

	result = nonAlphanumeric.ReplaceAllString(strings.ToLower(result), "-")
	return strings.Trim(result, "-")
}
