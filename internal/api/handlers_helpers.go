// Performance Cycle FBT - Frequently Bought Together Recommendations
// Copyright 2026 josephmusso10-dev
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/josephmusso10-dev/Performance-Cycle-FBT

package api

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/goccy/go-json"

	"github.com/josephmusso10-dev/Performance-Cycle-FBT/internal/logging"
	"github.com/josephmusso10-dev/Performance-Cycle-FBT/internal/validation"
)

// DefaultProductPathPattern is the storefront product path; {slug} is
// replaced by the escaped product id.
const DefaultProductPathPattern = "/products/{slug}/"

// sanitizeLogValue removes control characters from strings to prevent log injection attacks.
func sanitizeLogValue(s string) string {
	var result strings.Builder
	result.Grow(len(s))
	for _, r := range s {
		if r < 0x20 || r == 0x7F {
			fmt.Fprintf(&result, "\\x%02x", r)
		} else {
			result.WriteRune(r)
		}
	}
	return result.String()
}

// respondJSON encodes v and writes it with status.
func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		logging.Error().Err(err).Msg("Failed to marshal JSON response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	writeJSONBytes(w, status, data)
}

// writeJSONBytes writes an already encoded JSON body.
func writeJSONBytes(w http.ResponseWriter, status int, data []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		logging.Error().Err(err).Msg("Failed to write JSON response")
	}
}

// respondError sends an error envelope
func respondError(w http.ResponseWriter, status int, code, message string, err error) {
	if err != nil {
		logging.Error().Str("code", sanitizeLogValue(code)).Str("error", sanitizeLogValue(err.Error())).Msg("API Error")
	}
	respondJSON(w, status, &ErrorResponse{
		Success: false,
		Error:   &APIError{Code: code, Message: message},
	})
}

// respondLegacyError writes the {"error": "..."} shape the storefront widget
// expects.
func respondLegacyError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// validateRequest validates a struct using go-playground/validator.
// Returns nil if validation passes, or an APIError with the VALIDATION_ERROR code.
func validateRequest(v interface{}) *APIError {
	validationErr := validation.ValidateStruct(v)
	if validationErr == nil {
		return nil
	}
	apiErr := validationErr.ToAPIError()
	return &APIError{
		Code:    apiErr.Code,
		Message: apiErr.Message,
		Details: apiErr.Details,
	}
}

// respondValidationError writes a 400 envelope for a failed validation.
func respondValidationError(w http.ResponseWriter, apiErr *APIError) {
	respondJSON(w, http.StatusBadRequest, &ErrorResponse{Success: false, Error: apiErr})
}

// storefrontURL builds the product page URL for slug. Every byte of the
// slug outside the unreserved set is percent-encoded, "/" included.
func storefrontURL(baseURL, pattern, slug string) string {
	escaped := strings.ReplaceAll(url.QueryEscape(slug), "+", "%20")
	path := strings.ReplaceAll(pattern, "{slug}", escaped)
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if baseURL != "" {
		return strings.TrimRight(baseURL, "/") + path
	}
	return path
}
