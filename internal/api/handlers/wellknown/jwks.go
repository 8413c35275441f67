package wellknown

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"Quill/internal/api/handlers"

	"github.com/lestrrat-go/jwx/v2/jwk"
)

// KeySource exposes the public signing keys. *auth.Issuer satisfies it.
type KeySource interface {
	PublicJWKS() (jwk.Set, bool)
}

// JWKSHandler serves the public half of the token signing key
type JWKSHandler struct {
	keys KeySource
}

// NewJWKSHandler creates a new JWKS handler
func NewJWKSHandler(keys KeySource) *JWKSHandler {
	return &JWKSHandler{keys: keys}
}

// HandleJWKS serves GET /.well-known/jwks.json
// Tokens signed with a shared secret have no public key, so the endpoint is 404 in that mode.
//
// Spec: https://www.rfc-editor.org/rfc/rfc7517.html#section-5
func (h *JWKSHandler) HandleJWKS(w http.ResponseWriter, r *http.Request) {
	set, ok := h.keys.PublicJWKS()
	if !ok {
		handlers.WriteError(w, http.StatusNotFound, "NotFound", "No public signing keys are published")
		return
	}

	body, err := json.Marshal(set)
	if err != nil {
		handlers.WriteInternalError(w, r, fmt.Errorf("failed to encode jwks: %w", err))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "public, max-age=300")
	if _, err := w.Write(body); err != nil {
		slog.Warn("failed to write jwks response", "error", err)
	}
}
