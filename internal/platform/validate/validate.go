// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package validate collects field errors from a chain of rules and reports
// them as one VALIDATION_ERROR.
//
//	err := (&validate.Validator{}).
//		Range("width", width, 1, 100000).
//		Range("height", height, 1, 100000).
//		Err()
package validate

import (
	"fmt"

	"github.com/taibuivan/sophia/internal/platform/apperr"
)

// ErrInvalidJSON is returned when a request body cannot be decoded.
var ErrInvalidJSON = apperr.ValidationError("Invalid JSON payload")

// Validator is single-use and not safe for concurrent use.
type Validator struct {
	errs []apperr.FieldError
}

// Range fails when value lies outside [min, max].
func (v *Validator) Range(field string, value, min, max int) *Validator {
	if value < min || value > max {
		v.add(field, fmt.Sprintf("Must be between %d and %d", min, max))
	}
	return v
}

// Err returns nil when every rule passed.
func (v *Validator) Err() error {
	if len(v.errs) == 0 {
		return nil
	}
	return apperr.ValidationError("Validation failed", v.errs...)
}

func (v *Validator) add(field, message string) {
	v.errs = append(v.errs, apperr.FieldError{Field: field, Message: message})
}
