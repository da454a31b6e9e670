// Performance Cycle FBT - Frequently Bought Together Recommendations
// Copyright 2026 josephmusso10-dev
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/josephmusso10-dev/Performance-Cycle-FBT

package api

import "errors"

// Common API errors
var (
	// ErrMissingProductID is returned by the debug endpoint without ?id=.
	ErrMissingProductID = errors.New("Missing required query param: id") //nolint:staticcheck // wire message shown to storefront users

	// ErrNilDependency indicates NewHandler was called without a required dependency.
	ErrNilDependency = errors.New("api: missing handler dependency")
)

// Error codes used in the error envelope.
const (
	CodeValidation    = "VALIDATION_ERROR"
	CodeRateLimited   = "RATE_LIMITED"
	CodeNotFound      = "NOT_FOUND"
	CodeMethodBlocked = "METHOD_NOT_ALLOWED"
	CodeInternal      = "INTERNAL_ERROR"
)

// APIError is the error object of the envelope.
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// ErrorResponse is the envelope written for non-storefront errors.
type ErrorResponse struct {
	Success bool      `json:"success"`
	Error   *APIError `json:"error"`
}
