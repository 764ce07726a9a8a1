// Copyright (c) 2026 Agora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/agora/internal/platform/apperr"
	"github.com/taibuivan/agora/internal/platform/validate"
)

/*
TestValidator tests single rules and error accumulation in the chain.
*/
func TestValidator(t *testing.T) {
	tests := []struct {
		name   string
		build  func(v *validate.Validator) *validate.Validator
		fields []string
	}{
		{"required_ok", func(v *validate.Validator) *validate.Validator { return v.Required("id", "x") }, nil},
		{"required_blank", func(v *validate.Validator) *validate.Validator { return v.Required("id", "   ") }, []string{"id"}},
		{"uuid_upper", func(v *validate.Validator) *validate.Validator {
			return v.UUID("id", "0192F3A4-7C1D-7B2E-8F00-123456789ABC")
		}, nil},
		{"uuid_bad", func(v *validate.Validator) *validate.Validator { return v.UUID("id", "42") }, []string{"id"}},
		{"custom", func(v *validate.Validator) *validate.Validator { return v.Custom("field", true, "Unknown field") }, []string{"field"}},
		{"chain", func(v *validate.Validator) *validate.Validator {
			return v.Required("id", "").UUID("owner", "nope").Custom("field", false, "unused")
		}, []string{"id", "owner"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.build(&validate.Validator{}).Err()
			if tt.fields == nil {
				assert.NoError(t, err)
				return
			}

			ae := apperr.As(err)
			require.NotNil(t, ae)
			assert.Equal(t, apperr.CodeValidation, ae.Code)

			got := make([]string, 0, len(ae.Details))
			for _, detail := range ae.Details {
				got = append(got, detail.Field)
			}
			assert.Equal(t, tt.fields, got)
		})
	}
}

func TestFieldFailure(t *testing.T) {
	err := validate.FieldFailure("query", "Must be a valid URL query string")
	require.Len(t, err.Details, 1)
	assert.Equal(t, "query", err.Details[0].Field)
}

type savedFilter struct {
	Name    string   `json:"name" validate:"required,max=80"`
	Channel string   `json:"channel" validate:"omitempty,oneof=events discussions"`
	Tags    []string `json:"tags" validate:"dive,required"`
	Hidden  string   `json:"-" validate:"omitempty,len=2"`
}

/*
TestStruct maps validator tags to field errors named after JSON keys.
*/
func TestStruct(t *testing.T) {
	tests := []struct {
		name   string
		input  savedFilter
		fields []string
	}{
		{"valid", savedFilter{Name: "weekend", Channel: "events", Tags: []string{"go"}}, nil},
		{"missing_name", savedFilter{}, []string{"name"}},
		{"bad_channel", savedFilter{Name: "x", Channel: "forums"}, []string{"channel"}},
		{"empty_tag", savedFilter{Name: "x", Tags: []string{"go", ""}}, []string{"tags[1]"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validate.Struct(tt.input)
			if tt.fields == nil {
				assert.NoError(t, err)
				return
			}

			ae := apperr.As(err)
			require.NotNil(t, ae)
			assert.Equal(t, "VALIDATION_ERROR", ae.Code)

			got := make([]string, 0, len(ae.Details))
			for _, detail := range ae.Details {
				got = append(got, detail.Field)
				assert.NotEmpty(t, detail.Message)
			}
			assert.Equal(t, tt.fields, got)
		})
	}
}
