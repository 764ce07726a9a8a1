// Copyright (c) 2026 Agora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package validate

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"

	"github.com/taibuivan/agora/internal/platform/apperr"
)

var (
	engineOnce sync.Once
	engine     *validator.Validate
	translator ut.Translator
)

// initEngine builds the shared validator with English messages and
// JSON field names.
func initEngine() {
	locale := en.New()
	universal := ut.New(locale, locale)
	translator, _ = universal.GetTranslator("en")

	engine = validator.New(validator.WithRequiredStructEnabled())
	engine.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return field.Name
		}
		return name
	})

	if err := en_translations.RegisterDefaultTranslations(engine, translator); err != nil {
		panic("validate: register translations: " + err.Error())
	}
}

/*
Struct checks the `validate` tags of value.

Parameters:
  - value: any (Pointer to or value of a struct)

Returns:
  - error: VALIDATION_ERROR with one field error per failed tag, or nil
*/
func Struct(value any) error {
	engineOnce.Do(initEngine)

	err := engine.Struct(value)
	if err == nil {
		return nil
	}

	var failures validator.ValidationErrors
	if !errors.As(err, &failures) {
		return apperr.Internal(err)
	}

	fields := make([]apperr.FieldError, 0, len(failures))
	for _, failure := range failures {
		fields = append(fields, apperr.FieldError{
			Field:   fieldPath(failure.Namespace()),
			Message: failure.Translate(translator),
		})
	}
	return apperr.ValidationError("Validation failed", fields...)
}

// fieldPath drops the root struct name from a validator namespace.
func fieldPath(namespace string) string {
	if _, rest, found := strings.Cut(namespace, "."); found {
		return rest
	}
	return namespace
}
