// Reelmatch - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

// Package validation wraps go-playground/validator v10 for API request
// structs.
//
// Field names in error messages come from the `query` tag (falling back to
// `json`, then the Go name), so clients see the parameter they sent:
//
//	type RecommendRequest struct {
//	    Title string `query:"title" validate:"required,movietitle"`
//	    K     int    `query:"k" validate:"min=0,max=100"`
//	}
//
//	if errs := validation.ValidateStruct(&req); errs != nil {
//	    apiErr := errs.ToAPIError()
//	    ...
//	}
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

// MaxTitleLength bounds the movietitle validator.
const MaxTitleLength = 500

// CodeValidation is the APIError code for failed request validation.
const CodeValidation = "VALIDATION_ERROR"

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// GetValidator returns the shared validator with the custom tags
// registered. Safe for concurrent use.
func GetValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(fieldName)

		// Registration only fails on an empty tag or nil func
		_ = validate.RegisterValidation("movietitle", validateMovieTitle)
	})
	return validate
}

// FieldError is one failed rule on one field.
type FieldError struct {
	Field   string
	Tag     string
	Param   string
	Value   any
	Message string
}

func (e FieldError) Error() string { return e.Message }

// Errors collects every failed rule of a struct, in field order.
type Errors []FieldError

func (errs Errors) Error() string {
	if len(errs) == 0 {
		return "validation failed"
	}
	msgs := make([]string, len(errs))
	for i, e := range errs {
		msgs[i] = e.Message
	}
	return strings.Join(msgs, "; ")
}

// APIError mirrors models.APIError so this package stays import-free of models.
type APIError struct {
	Code    string
	Message string
	Details map[string]any
}

// ToAPIError renders errs as a VALIDATION_ERROR. A single failure reports
// its field, tag and value; several failures are listed under "fields".
func (errs Errors) ToAPIError() *APIError {
	switch len(errs) {
	case 0:
		return &APIError{Code: CodeValidation, Message: "Validation failed"}
	case 1:
		e := errs[0]
		return &APIError{
			Code:    CodeValidation,
			Message: e.Message,
			Details: map[string]any{"field": e.Field, "tag": e.Tag, "value": e.Value},
		}
	}

	fields := make([]map[string]any, len(errs))
	msgs := make([]string, len(errs))
	for i, e := range errs {
		fields[i] = map[string]any{"field": e.Field, "tag": e.Tag, "message": e.Message}
		msgs[i] = e.Field + ": " + e.Message
	}
	return &APIError{
		Code:    CodeValidation,
		Message: strings.Join(msgs, "; "),
		Details: map[string]any{"fields": fields},
	}
}

// ValidateStruct checks s against its validate tags. It returns nil when s
// is valid.
func ValidateStruct(s any) Errors {
	err := GetValidator().Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return Errors{{Field: "unknown", Tag: "unknown", Message: err.Error()}}
	}

	out := make(Errors, len(fieldErrs))
	for i, fe := range fieldErrs {
		out[i] = FieldError{
			Field:   fe.Field(),
			Tag:     fe.Tag(),
			Param:   fe.Param(),
			Value:   fe.Value(),
			Message: message(fe),
		}
	}
	return out
}

// fieldName reports the query or json name of a struct field.
func fieldName(fld reflect.StructField) string {
	for _, tag := range []string{"query", "json"} {
		name, _, _ := strings.Cut(fld.Tag.Get(tag), ",")
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return fld.Name
}

// validateMovieTitle accepts titles that are non-blank, valid UTF-8, at
// most MaxTitleLength runes and free of control characters.
func validateMovieTitle(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if strings.TrimSpace(s) == "" || !utf8.ValidString(s) {
		return false
	}
	if utf8.RuneCountInString(s) > MaxTitleLength {
		return false
	}
	for _, r := range s {
		if unicode.IsControl(r) {
			return false
		}
	}
	return true
}

func message(fe validator.FieldError) string {
	field, param := fe.Field(), fe.Param()
	unit := ""
	if fe.Kind() == reflect.String {
		unit = " characters"
	}

	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "movietitle":
		return field + " must be a non-blank title without control characters"
	case "url":
		return field + " must be a valid URL"
	case "boolean":
		return field + " must be true or false"
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, param)
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", field, param)
	case "lte":
		return fmt.Sprintf("%s must be less than or equal to %s", field, param)
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, param)
	case "lt":
		return fmt.Sprintf("%s must be less than %s", field, param)
	case "min":
		return fmt.Sprintf("%s must be at least %s%s", field, param, unit)
	case "max":
		return fmt.Sprintf("%s must be at most %s%s", field, param, unit)
	}
	return fmt.Sprintf("%s failed %s validation", field, fe.Tag())
}
