// Package domain contains the entities the gateway passes between the
// HTTP surface and the external platform: products, cart items, profiles,
// and provider-owned identities, together with their validation rules and
// the in-memory seller statistics aggregation.
//
// No entity here is authoritative; the external record store owns every
// row and the identity provider owns every identity. The types exist to
// give the request-handling layer explicit, validated shapes instead of
// loosely-typed pass-through maps.
package domain
