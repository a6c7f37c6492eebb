// Package testutil provides helpers shared by package tests: secp256k1 key
// generation, ES256K token signing (the issuing counterpart of the
// verification pipeline, needed only in tests), and a fake registry server.
package testutil

import (
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
)

// GenerateKey creates a fresh secp256k1 keypair and returns the private key
// together with the hex-encoded compressed public key.
func GenerateKey(t *testing.T) (*secp256k1.PrivateKey, string) {
	t.Helper()

	priv, err := secp256k1.GeneratePrivateKey()
	if err != nil {
		t.Fatalf("failed to generate key: %v", err)
	}
	return priv, hex.EncodeToString(priv.PubKey().SerializeCompressed())
}

// SignToken builds a compact ES256K token over the given claims, signed with
// priv. The signature is the raw 64-byte R||S form over SHA256 of the signing
// input.
func SignToken(t *testing.T, priv *secp256k1.PrivateKey, claims map[string]any) string {
	t.Helper()
	return SignTokenWithAlg(t, priv, "ES256K", claims)
}

// SignTokenWithAlg is SignToken with an explicit header algorithm, for tests
// that need a wrong-algorithm token.
func SignTokenWithAlg(t *testing.T, priv *secp256k1.PrivateKey, alg string, claims map[string]any) string {
	t.Helper()

	headerJSON, err := json.Marshal(map[string]string{"typ": "JWT", "alg": alg})
	if err != nil {
		t.Fatalf("failed to marshal header: %v", err)
	}
	payloadJSON, err := json.Marshal(claims)
	if err != nil {
		t.Fatalf("failed to marshal claims: %v", err)
	}

	signingInput := base64.RawURLEncoding.EncodeToString(headerJSON) +
		"." + base64.RawURLEncoding.EncodeToString(payloadJSON)

	hash := sha256.Sum256([]byte(signingInput))
	sig := ecdsa.Sign(priv, hash[:])
	r := sig.R()
	s := sig.S()
	rBytes := r.Bytes()
	sBytes := s.Bytes()
	raw := make([]byte, 0, 64)
	raw = append(raw, rBytes[:]...)
	raw = append(raw, sBytes[:]...)

	return signingInput + "." + base64.RawURLEncoding.EncodeToString(raw)
}

// AuthClaims returns a complete, currently-valid claim set for an auth
// response issued by iss with the given public key. Callers mutate the map to
// build failure cases.
func AuthClaims(iss, pubKeyHex string, now time.Time) map[string]any {
	return map[string]any{
		"iss":         iss,
		"iat":         now.Unix(),
		"jti":         "00000000-1111-2222-3333-444444444444",
		"exp":         now.Add(time.Hour).Unix(),
		"username":    nil,
		"profile":     map[string]any{},
		"public_keys": []string{pubKeyHex},
	}
}

// RegistryServer starts a fake naming registry serving the given
// username -> address map. Unknown names get a 404, matching the real
// registry's contract.
func RegistryServer(t *testing.T, names map[string]string) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/v1/names/", func(w http.ResponseWriter, r *http.Request) {
		username := strings.TrimPrefix(r.URL.Path, "/v1/names/")
		addr, ok := names[username]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(map[string]string{
			"address": addr,
			"status":  "registered",
		}); err != nil {
			t.Errorf("failed to encode registry response: %v", err)
		}
	})

	server := httptest.NewServer(mux)
	t.Cleanup(func() {
		server.Close()
	})

	return server
}
