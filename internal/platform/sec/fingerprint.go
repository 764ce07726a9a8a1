// Copyright (c) 2026 Agora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

import (
	"encoding/hex"

	"golang.org/x/crypto/blake2b"
)

// Fingerprint returns the hex BLAKE2b-256 digest of the concatenated parts.
//
// Parts are joined with a zero byte so ("ab", "c") and ("a", "bc") differ.
func Fingerprint(parts ...string) string {
	// A nil key never fails.
	hash, _ := blake2b.New256(nil)
	for i, part := range parts {
		if i > 0 {
			hash.Write([]byte{0})
		}
		hash.Write([]byte(part))
	}
	return hex.EncodeToString(hash.Sum(nil))
}
