// Package store defines the persistence interfaces the gateway consumes
// and the sentinel errors their implementations return. The only concrete
// implementation talks to the external platform's REST query surface; see
// internal/platform/supabase.
package store
