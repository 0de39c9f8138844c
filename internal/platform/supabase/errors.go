package supabase

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// pgrstNoRowsCode is the record store's code for a single-object request
// that matched no rows.
const pgrstNoRowsCode = "PGRST116"

// PlatformError is a non-2xx response from the platform, either from the
// record store or from the identity provider. Message carries the
// upstream error text that handlers attach as the response detail.
type PlatformError struct {
	Status  int
	Code    string
	Message string
	Details string
	Hint    string
}

// Error implements the error interface.
func (e *PlatformError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("platform error %d (%s): %s", e.Status, e.Code, e.Message)
	}
	return fmt.Sprintf("platform error %d: %s", e.Status, e.Message)
}

// platformErrorBody covers the error payload shapes the platform emits.
// The record store uses message/code/details/hint; the identity provider
// uses msg or error/error_description depending on the endpoint.
type platformErrorBody struct {
	Message          string `json:"message"`
	Code             string `json:"code"`
	Details          string `json:"details"`
	Hint             string `json:"hint"`
	Msg              string `json:"msg"`
	ErrorField       string `json:"error"`
	ErrorDescription string `json:"error_description"`
	ErrorCode        string `json:"error_code"`
}

// parsePlatformError builds a PlatformError from a response body,
// tolerating all the payload shapes the platform produces as well as
// non-JSON bodies.
func parsePlatformError(status int, body []byte) *PlatformError {
	perr := &PlatformError{Status: status}

	var parsed platformErrorBody
	if len(body) > 0 && json.Unmarshal(body, &parsed) == nil {
		perr.Code = parsed.Code
		if perr.Code == "" {
			perr.Code = parsed.ErrorCode
		}
		perr.Details = parsed.Details
		perr.Hint = parsed.Hint

		switch {
		case parsed.Message != "":
			perr.Message = parsed.Message
		case parsed.Msg != "":
			perr.Message = parsed.Msg
		case parsed.ErrorDescription != "":
			perr.Message = parsed.ErrorDescription
		case parsed.ErrorField != "":
			perr.Message = parsed.ErrorField
		}
	}

	if perr.Message == "" {
		perr.Message = http.StatusText(status)
	}
	return perr
}

// isNoRows reports whether the error is a single-object request that
// matched nothing: either the store's explicit no-rows code or the 406 it
// returns when a single-row representation cannot be produced.
func isNoRows(err error) bool {
	var perr *PlatformError
	if !errors.As(err, &perr) {
		return false
	}
	return perr.Code == pgrstNoRowsCode || perr.Status == http.StatusNotAcceptable
}

// messageContains reports whether the platform error message contains the
// given fragment, case-insensitively. Used to classify identity provider
// rejections that are distinguished only by message text.
func messageContains(err error, fragment string) bool {
	var perr *PlatformError
	if !errors.As(err, &perr) {
		return false
	}
	return strings.Contains(strings.ToLower(perr.Message), strings.ToLower(fragment))
}

// UpstreamMessage returns the platform's own error text. The API layer
// uses it to populate the details field of error responses.
func (e *PlatformError) UpstreamMessage() string {
	return e.Message
}
