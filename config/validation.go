// Copyright 2026 The call Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/net/http/httpguts"

	"github.com/doschge/call/status"
)

// A FieldError describes one invalid configuration value.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Value   any    `json:"value,omitempty"`
}

// A ValidationError collects every invalid field found in a Config.
type ValidationError struct {
	Errors []FieldError `json:"errors"`
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 0 {
		return "config validation failed"
	}
	parts := make([]string, len(e.Errors))
	for i, fe := range e.Errors {
		parts[i] = fe.Field + " " + fe.Message
	}
	return "config validation failed: " + strings.Join(parts, "; ")
}

// Validate checks cfg against the struct rules plus two custom ones:
// "selector" admits retry status selectors and "method" admits HTTP
// method tokens. On failure it returns a *ValidationError listing
// every offending field.
func Validate(cfg *Config) error {
	v, err := newValidator()
	if err != nil {
		return err
	}
	err = v.Struct(cfg)
	if err == nil {
		return nil
	}
	var ves validator.ValidationErrors
	if !errors.As(err, &ves) {
		return err
	}
	fieldErrors := make([]FieldError, 0, len(ves))
	for _, fe := range ves {
		fieldErrors = append(fieldErrors, FieldError{
			Field:   fieldName(fe),
			Message: errorMessage(fe),
			Value:   fe.Value(),
		})
	}
	return &ValidationError{Errors: fieldErrors}
}

func newValidator() (*validator.Validate, error) {
	v := validator.New()
	if err := v.RegisterValidation("selector", validSelector); err != nil {
		return nil, fmt.Errorf("failed to register selector rule: %w", err)
	}
	if err := v.RegisterValidation("method", validMethod); err != nil {
		return nil, fmt.Errorf("failed to register method rule: %w", err)
	}
	return v, nil
}

func validSelector(fl validator.FieldLevel) bool {
	return status.ValidSelector(fl.Field().String())
}

func validMethod(fl validator.FieldLevel) bool {
	return httpguts.ValidHeaderFieldName(fl.Field().String())
}

// fieldName trims the struct type from the namespace, leaving paths
// like "Retry.Status[5zz]".
func fieldName(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func errorMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "url":
		return "must be a valid URL"
	case "min":
		return "must be at least " + fe.Param()
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "selector":
		return "must be a status code, status name, or range like 5xx"
	case "method":
		return "must be a valid HTTP method"
	default:
		return "failed " + fe.Tag() + " validation"
	}
}
