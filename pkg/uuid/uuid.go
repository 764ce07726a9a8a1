// Copyright (c) 2026 Agora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package uuid generates the primary keys of Agora tables.

Keys are UUIDv7 values: time-ordered, so B-tree indexes in PostgreSQL grow at
the tail, and stored in the standard 'uuid' column type.
*/
package uuid

import "github.com/google/uuid"

// New generates a new UUIDv7 string.
//
// It panics only if the OS random source fails.
func New() string {
	id, err := uuid.NewV7()
	if err != nil {
		panic("uuid: failed to generate UUIDv7: " + err.Error())
	}
	return id.String()
}

