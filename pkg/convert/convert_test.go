// Copyright (c) 2026 Agora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package convert_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/agora/pkg/convert"
)

func TestToIntD(t *testing.T) {
	assert.Equal(t, 7, convert.ToIntD("7", 20))
	assert.Equal(t, -3, convert.ToIntD("-3", 20))
	assert.Equal(t, 20, convert.ToIntD("", 20))
	assert.Equal(t, 20, convert.ToIntD("seven", 20))
}

func TestToBool(t *testing.T) {
	for input, want := range map[string]bool{"true": true, "1": true, "TRUE": true, "false": false, "": false, "yes": false} {
		assert.Equal(t, want, convert.ToBool(input), input)
	}
}
