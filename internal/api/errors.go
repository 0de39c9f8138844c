package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/stallhq/storefront-api/internal/api/shared"
	"github.com/stallhq/storefront-api/internal/domain"
	"github.com/stallhq/storefront-api/internal/identity"
	"github.com/stallhq/storefront-api/internal/store"
)

// MapErrorToStatusCode maps internal errors onto the HTTP error taxonomy:
// bad input and upstream rejections are 400, missing/invalid tokens 401,
// ownership violations 403, absent records 404, everything unexpected 500.
func MapErrorToStatusCode(err error) int {
	switch {
	// Authentication errors
	case errors.Is(err, domain.ErrUnauthorized),
		errors.Is(err, identity.ErrInvalidToken):
		return http.StatusUnauthorized

	// Authorization errors
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden

	// Not found errors
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	// Bad request errors: invalid input and upstream rejections both
	// surface as 400, the latter with the provider message attached.
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, domain.ErrInvalidURL),
		errors.Is(err, identity.ErrInvalidCredentials),
		errors.Is(err, identity.ErrEmailTaken),
		errors.Is(err, identity.ErrUpstream),
		errors.Is(err, store.ErrUpstream):
		return http.StatusBadRequest

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking internal error details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, identity.ErrInvalidToken):
		return "Invalid token"

	case errors.Is(err, domain.ErrUnauthorized):
		return "Authentication required"

	case errors.Is(err, domain.ErrForbidden):
		return "You do not own this resource"

	case errors.Is(err, store.ErrProductNotFound):
		return "Product not found"

	case errors.Is(err, store.ErrCartItemNotFound):
		return "Cart item not found"

	case errors.Is(err, store.ErrProfileNotFound):
		return "Profile not found"

	case errors.Is(err, identity.ErrInvalidCredentials):
		return "Invalid login credentials"

	case errors.Is(err, identity.ErrEmailTaken):
		return "Email already registered"

	case errors.Is(err, store.ErrUpstream):
		return "Database operation failed"

	case errors.Is(err, identity.ErrUpstream):
		return "Authentication service request failed"

	default:
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			return verr.Error()
		}
		return "An unexpected error occurred"
	}
}

// upstreamDetailer is implemented by platform errors that carry the
// upstream service's own message.
type upstreamDetailer interface {
	UpstreamMessage() string
}

// UpstreamDetail extracts the external platform's error text from an
// error chain, for the details field of error responses.
func UpstreamDetail(err error) string {
	var detailer upstreamDetailer
	if errors.As(err, &detailer) {
		return detailer.UpstreamMessage()
	}
	return ""
}

// HandleAPIError classifies err, attaches any upstream detail, and writes
// the error response. fallbackMessage overrides the generic message for
// unexpected failures when non-empty.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, fallbackMessage string) {
	status := MapErrorToStatusCode(err)
	message := GetSafeErrorMessage(err)
	if status == http.StatusInternalServerError && fallbackMessage != "" {
		message = fallbackMessage
	}
	shared.RespondWithErrorAndLog(w, r, status, message, UpstreamDetail(err), err)
}

// SanitizeValidationError removes sensitive details from validation
// errors and returns a user-friendly message.
func SanitizeValidationError(err error) string {
	errMsg := err.Error()

	// Example format: "Key: 'LoginRequest.Email' Error:Field validation
	// for 'Email' failed on the 'required' tag"
	if strings.Contains(errMsg, "Field validation") {
		parts := strings.Split(errMsg, "Error:")
		if len(parts) >= 2 {
			fieldParts := strings.Split(parts[1], "'")
			if len(fieldParts) >= 3 {
				field := fieldParts[1]
				var tag string
				if len(fieldParts) >= 5 {
					tag = fieldParts[3]
				}
				if tag != "" {
					return fmt.Sprintf("Invalid %s: %s", field, getValidationTagMessage(tag))
				}
				return fmt.Sprintf("Invalid %s", field)
			}
		}
	}

	return "Validation error"
}

// getValidationTagMessage maps validation tags to user-friendly error messages
func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "email":
		return "invalid email format"
	case "min":
		return "too short"
	case "max":
		return "too long"
	case "url":
		return "invalid URL"
	default:
		return "validation failed"
	}
}
