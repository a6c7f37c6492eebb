// Package token decodes and verifies compact-serialized auth response tokens.
// Decoding happens in two stages: Decode parses structure and claims without
// touching the signature, so the caller can pull the public key out of the
// claims, and DecodeVerified re-decodes while enforcing an ES256K signature
// with that key. The split is inherent to the protocol: the key needed for
// verification lives inside the unverified claims.
package token

import (
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/lestrrat-go/jwx/v2/jwa"
)

// Algorithm is the only signature algorithm accepted in token headers.
const Algorithm = jwa.SignatureAlgorithm("ES256K")

var (
	// ErrMalformed is returned when a token cannot be decoded: wrong segment
	// count, bad base64, unparseable JSON, mistyped claims, or a header
	// naming any algorithm other than ES256K.
	ErrMalformed = fmt.Errorf("malformed token")
	// ErrSignatureInvalid is returned when cryptographic verification fails.
	ErrSignatureInvalid = fmt.Errorf("token signature invalid")
	// ErrExpired is returned when the token's exp has passed by more than the
	// allowed leeway during a verified decode.
	ErrExpired = fmt.Errorf("token expired")
)

// Claims is the decoded claim set of an auth response token. Username and
// Profile may be JSON null; presence of their keys is tracked separately.
type Claims struct {
	Issuer     string          `json:"iss"`
	IssuedAt   int64           `json:"iat"`
	TokenID    string          `json:"jti"`
	Expiry     int64           `json:"exp"`
	Username   *string         `json:"username"`
	Profile    json.RawMessage `json:"profile"`
	PublicKeys []string        `json:"public_keys"`

	raw map[string]json.RawMessage
}

// Has reports whether the named claim key was present in the token payload,
// even if its value was null.
func (c *Claims) Has(name string) bool {
	_, ok := c.raw[name]
	return ok
}

// Decode parses a compact-serialized token and returns its claim set without
// verifying the signature. The header must name the ES256K algorithm.
func Decode(raw string) (*Claims, error) {
	header, payload, _, err := splitCompact(raw)
	if err != nil {
		return nil, err
	}

	var hdr struct {
		Alg string `json:"alg"`
	}
	if err := json.Unmarshal(header, &hdr); err != nil {
		return nil, fmt.Errorf("%w: invalid header: %v", ErrMalformed, err)
	}
	if jwa.SignatureAlgorithm(hdr.Alg) != Algorithm {
		return nil, fmt.Errorf("%w: unexpected algorithm %q", ErrMalformed, hdr.Alg)
	}

	claims := &Claims{}
	if err := json.Unmarshal(payload, &claims.raw); err != nil {
		return nil, fmt.Errorf("%w: invalid claim set: %v", ErrMalformed, err)
	}
	if err := json.Unmarshal(payload, claims); err != nil {
		return nil, fmt.Errorf("%w: invalid claim values: %v", ErrMalformed, err)
	}
	return claims, nil
}

// decodeSegment decodes one base64url token segment.
func decodeSegment(seg []byte) ([]byte, error) {
	out, err := base64.RawURLEncoding.DecodeString(string(seg))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return out, nil
}
