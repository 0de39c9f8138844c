// Package security provides input hardening for user-supplied content.
//
// Sanitizer strips all markup from the free-text fields the gateway
// stores (product titles and descriptions, profile usernames) so that
// whatever a storefront later renders from these records cannot carry
// script content. The policy is strict: no tags survive.
package security

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// Sanitizer strips markup from user-supplied text fields before storage.
// Safe for concurrent use.
type Sanitizer struct {
	policy *bluemonday.Policy
}

// NewSanitizer creates a Sanitizer with the strict no-markup policy.
func NewSanitizer() *Sanitizer {
	return &Sanitizer{policy: bluemonday.StrictPolicy()}
}

// Text returns the input with all markup removed, entities decoded, and
// surrounding whitespace trimmed. Idempotent for already-clean input.
func (s *Sanitizer) Text(input string) string {
	cleaned := s.policy.Sanitize(input)
	return strings.TrimSpace(html.UnescapeString(cleaned))
}
