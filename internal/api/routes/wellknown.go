package routes

import (
	"Quill/internal/api/handlers/wellknown"

	"github.com/go-chi/chi/v5"
)

// RegisterWellKnownRoutes registers RFC 8615 well-known URI endpoints
//
// Spec: https://www.rfc-editor.org/rfc/rfc8615.html
func RegisterWellKnownRoutes(r chi.Router, keys wellknown.KeySource) {
	// Public half of the ES256 signing key, for clients verifying tokens offline
	r.Get("/.well-known/jwks.json", wellknown.NewJWKSHandler(keys).HandleJWKS)
}
