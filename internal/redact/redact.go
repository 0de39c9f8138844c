// Package redact removes credentials from strings before they reach the
// logs. Every upstream call in this system carries a bearer token or an
// API key, and upstream error messages occasionally echo request headers
// back, so raw errors are never logged without passing through here.
package redact

import "regexp"

// Placeholders substituted for matched secrets.
const (
	RedactedTokenPlaceholder = "[REDACTED_TOKEN]"
	RedactedKeyPlaceholder   = "[REDACTED_KEY]"
)

// Precompiled regex patterns
var (
	// Standard three-part base64url JWT, which is what both the platform
	// keys and the session tokens look like.
	jwtRegex = regexp.MustCompile(`eyJ[a-zA-Z0-9_-]+\.[a-zA-Z0-9_-]+\.[a-zA-Z0-9_-]*`)

	// Bearer header values of any shape.
	bearerRegex = regexp.MustCompile(`(?i)bearer\s+[A-Za-z0-9_\-.~+/=]+`)

	// key=... / apikey: ... style assignments.
	keyAssignRegex = regexp.MustCompile(`(?i)(api[_-]?key|service[_-]?role[_-]?key|anon[_-]?key|secret|token)(['"\s:=]+)[A-Za-z0-9_\-.~+/]{8,}`)
)

// String redacts credential material from the input string.
func String(input string) string {
	if input == "" {
		return input
	}
	result := jwtRegex.ReplaceAllString(input, RedactedTokenPlaceholder)
	result = bearerRegex.ReplaceAllString(result, "Bearer "+RedactedTokenPlaceholder)
	result = keyAssignRegex.ReplaceAllString(result, "$1$2"+RedactedKeyPlaceholder)
	return result
}

// Error redacts credential material from an error's Error() output.
func Error(err error) string {
	if err == nil {
		return ""
	}
	return String(err.Error())
}
