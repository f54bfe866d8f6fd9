/*
 * Copyright 2026 The Inkwell Authors. All rights reserved.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package validation provides validation of user-provided values such as
// usernames and request bodies.
package validation

import (
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	entranslations "github.com/go-playground/validator/v10/translations/en"
)

var (
	defaultValidator = validator.New()

	defaultEn = en.New()
	uni       = ut.New(defaultEn, defaultEn)

	// trans translates violation messages for the 'en' locale.
	trans, _ = uni.GetTranslator(defaultEn.Locale())
)

func init() {
	if err := entranslations.RegisterDefaultTranslations(defaultValidator, trans); err != nil {
		panic(err)
	}
}

// Violation is a single validation failure on a field.
type Violation struct {
	Tag         string
	Field       string
	Description string
}

// Error returns the violation message.
func (v Violation) Error() string {
	return v.Description
}

// FormError is the error returned when a struct fails validation.
type FormError struct {
	Violations []Violation
}

// Error returns the first violation message.
func (e *FormError) Error() string {
	if len(e.Violations) == 0 {
		return "invalid form"
	}
	return e.Violations[0].Description
}

// ValidateStruct validates the given struct against its validate tags.
func ValidateStruct(v any) error {
	if err := defaultValidator.Struct(v); err != nil {
		invalidErrs, ok := err.(validator.ValidationErrors)
		if !ok {
			return err
		}

		formErr := &FormError{}
		for _, fieldErr := range invalidErrs {
			formErr.Violations = append(formErr.Violations, Violation{
				Tag:         fieldErr.Tag(),
				Field:       fieldErr.Field(),
				Description: fieldErr.Translate(trans),
			})
		}
		return formErr
	}
	return nil
}

// ValidateValue validates a single value against the given tag expression.
func ValidateValue(v any, tag string) error {
	if err := defaultValidator.Var(v, tag); err != nil {
		invalidErrs, ok := err.(validator.ValidationErrors)
		if !ok {
			return err
		}

		formErr := &FormError{}
		for _, fieldErr := range invalidErrs {
			formErr.Violations = append(formErr.Violations, Violation{
				Tag:         fieldErr.Tag(),
				Field:       fieldErr.Field(),
				Description: fieldErr.Translate(trans),
			})
		}
		return formErr
	}
	return nil
}
