package wellknown

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"Quill/internal/auth"

	"github.com/lestrrat-go/jwx/v2/jwk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleJWKS_ES256(t *testing.T) {
	key, err := auth.GenerateSigningKey("test-key")
	require.NoError(t, err)
	raw, err := json.Marshal(key)
	require.NoError(t, err)

	issuer, err := auth.NewIssuer(auth.Config{PrivateJWK: string(raw)})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	NewJWKSHandler(issuer).HandleJWKS(rec, httptest.NewRequest(http.MethodGet, "/.well-known/jwks.json", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	set, err := jwk.Parse(rec.Body.Bytes())
	require.NoError(t, err)
	require.Equal(t, 1, set.Len())

	pub, ok := set.Key(0)
	require.True(t, ok)
	assert.Equal(t, "test-key", pub.KeyID())
	assert.NotContains(t, rec.Body.String(), `"d":`)
}

func TestHandleJWKS_SharedSecret(t *testing.T) {
	issuer, err := auth.NewIssuer(auth.Config{Secret: []byte(strings.Repeat("s", 32))})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	NewJWKSHandler(issuer).HandleJWKS(rec, httptest.NewRequest(http.MethodGet, "/.well-known/jwks.json", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "NotFound", body["error"])
}
