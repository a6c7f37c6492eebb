package token

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
	"github.com/lestrrat-go/jwx/v2/jws"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

// signatureSize is the length of a raw ES256K signature: R and S as 32-byte
// big-endian integers.
const signatureSize = 64

// DecodeVerified re-decodes a token while verifying its ES256K signature
// against the given hex-encoded compressed public key. The exp claim is
// relaxed by leeway: a token whose expiry passed within leeway is still
// accepted. Only ErrMalformed, ErrSignatureInvalid or ErrExpired escape;
// underlying library failures never do.
func DecodeVerified(raw string, pubKeyHex string, leeway time.Duration) (*Claims, error) {
	pub, err := parsePublicKey(pubKeyHex)
	if err != nil {
		return nil, err
	}

	header, payload, sig, err := splitCompactRaw(raw)
	if err != nil {
		return nil, err
	}
	sigRaw, err := decodeSegment(sig)
	if err != nil {
		return nil, err
	}
	if len(sigRaw) != signatureSize {
		return nil, fmt.Errorf("%w: signature must be %d bytes, got %d",
			ErrSignatureInvalid, signatureSize, len(sigRaw))
	}

	// The JWS signing input is the two still-encoded segments joined by '.'.
	signingInput := make([]byte, 0, len(header)+1+len(payload))
	signingInput = append(signingInput, header...)
	signingInput = append(signingInput, '.')
	signingInput = append(signingInput, payload...)

	if !verifyES256K(pub, signingInput, sigRaw) {
		return nil, fmt.Errorf("%w: signature does not match key", ErrSignatureInvalid)
	}

	claims, err := Decode(raw)
	if err != nil {
		return nil, err
	}
	if err := validateTimes(raw, leeway); err != nil {
		return nil, err
	}
	return claims, nil
}

// parsePublicKey interprets a hex string as a compressed secp256k1 point and
// reconstructs the public key.
func parsePublicKey(pubKeyHex string) (*secp256k1.PublicKey, error) {
	rawKey, err := hex.DecodeString(pubKeyHex)
	if err != nil {
		return nil, fmt.Errorf("%w: public key is not valid hex", ErrSignatureInvalid)
	}
	pub, err := secp256k1.ParsePubKey(rawKey)
	if err != nil {
		return nil, fmt.Errorf("%w: cannot reconstruct public key point", ErrSignatureInvalid)
	}
	return pub, nil
}

// verifyES256K checks a raw R||S ECDSA signature over SHA256(signingInput).
func verifyES256K(pub *secp256k1.PublicKey, signingInput, sigRaw []byte) bool {
	var r, s secp256k1.ModNScalar
	if overflow := r.SetByteSlice(sigRaw[:32]); overflow {
		return false
	}
	if overflow := s.SetByteSlice(sigRaw[32:]); overflow {
		return false
	}
	hash := sha256.Sum256(signingInput)
	return ecdsa.NewSignature(&r, &s).Verify(hash[:], pub)
}

// validateTimes runs the registered time validations (exp, iat, nbf) with the
// configured leeway as acceptable clock skew.
func validateTimes(raw string, leeway time.Duration) error {
	tok, err := jwt.Parse([]byte(raw), jwt.WithVerify(false), jwt.WithValidate(false))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if err := jwt.Validate(tok, jwt.WithAcceptableSkew(leeway)); err != nil {
		if errors.Is(err, jwt.ErrTokenExpired()) {
			return fmt.Errorf("%w: exp passed more than %s ago", ErrExpired, leeway)
		}
		return fmt.Errorf("%w: %v", ErrExpired, err)
	}
	return nil
}

// splitCompact splits a compact token and base64-decodes the header and
// payload segments.
func splitCompact(raw string) (header, payload, sig []byte, err error) {
	h, p, s, err := splitCompactRaw(raw)
	if err != nil {
		return nil, nil, nil, err
	}
	if header, err = decodeSegment(h); err != nil {
		return nil, nil, nil, err
	}
	if payload, err = decodeSegment(p); err != nil {
		return nil, nil, nil, err
	}
	return header, payload, s, nil
}

// splitCompactRaw splits a compact token into its three still-encoded
// segments.
func splitCompactRaw(raw string) (header, payload, sig []byte, err error) {
	header, payload, sig, err = jws.SplitCompactString(raw)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return header, payload, sig, nil
}
