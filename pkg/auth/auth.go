// Package auth verifies self-issued auth responses: signed tokens claiming a
// username, a public key and an issuer DID. Verification establishes, without
// a trusted third party, that the token is well-formed, that the claimed key
// signed it, that the key derives the issuer's address, and that the claimed
// username is registered to that address.
package auth

import (
	"context"
	"errors"
	"time"

	"github.com/bitnames/authverify/pkg/auth/address"
	"github.com/bitnames/authverify/pkg/auth/did"
	"github.com/bitnames/authverify/pkg/auth/registry"
	"github.com/bitnames/authverify/pkg/auth/token"
)

// Config holds the tunable parameters of a Verifier. A Config is copied at
// construction; concurrent verifications against one Verifier are safe as
// long as the Verifier itself is not replaced mid-flight.
type Config struct {
	// RegistryURL is the base URL of the naming registry. Empty selects the
	// public default endpoint.
	RegistryURL string
	// Leeway relaxes the exp check during signature verification: a token
	// whose expiry passed within Leeway is still accepted.
	Leeway time.Duration
	// ValidWithin is the maximum allowed distance, in either direction,
	// between the token's iat and wall-clock time.
	ValidWithin time.Duration
}

// DefaultConfig returns the stock configuration: public registry endpoint,
// 30s leeway, 30s iat window.
func DefaultConfig() Config {
	return Config{
		RegistryURL: registry.DefaultBaseURL,
		Leeway:      30 * time.Second,
		ValidWithin: 30 * time.Second,
	}
}

// requiredClaims are the keys every auth response must carry. username and
// profile may be null, but the keys must exist.
var requiredClaims = []string{"iss", "iat", "jti", "exp", "username", "profile", "public_keys"}

// Verifier runs the auth response verification pipeline. Construct one with
// NewVerifier and reuse it across calls.
type Verifier struct {
	cfg      Config
	registry registry.Client
	now      func() time.Time
}

// NewVerifier creates a Verifier with the given configuration and registry
// client. A nil registry selects the HTTP client for cfg.RegistryURL.
func NewVerifier(cfg Config, reg registry.Client) *Verifier {
	if reg == nil {
		reg = registry.NewHTTPClient(cfg.RegistryURL)
	}
	return &Verifier{cfg: cfg, registry: reg, now: time.Now}
}

// VerifyAuthResponse runs the full verification state machine over a raw
// token. Each gate must pass before the next runs; the first failure is
// terminal and returned as a *VerificationError. On success the fully
// re-decoded, signature-verified claim set is returned. Verification is
// all-or-nothing: no partial claim set is ever handed back.
func (v *Verifier) VerifyAuthResponse(ctx context.Context, rawToken string) (*token.Claims, error) {
	// Gate 1: structural decode, no signature trust yet. The public key
	// needed for verification is itself inside these claims.
	claims, err := token.Decode(rawToken)
	if err != nil {
		return nil, failWrap(KindMalformedToken, "unable to decode token", err)
	}

	// Gate 2: every required claim key must be present.
	for _, name := range requiredClaims {
		if !claims.Has(name) {
			return nil, failf(KindMissingClaim, "missing required claim %q", name)
		}
	}

	// Gate 3: iat must carry an actual timestamp.
	if claims.IssuedAt == 0 {
		return nil, failf(KindMissingClaim, "missing required claim %q", "iat")
	}

	// Gate 4: iat must be close to wall-clock time at verification.
	skew := v.now().Unix() - claims.IssuedAt
	if skew < 0 {
		skew = -skew
	}
	if time.Duration(skew)*time.Second > v.cfg.ValidWithin {
		return nil, failf(KindStaleTimestamp, "timestamp claim skewed too far from present")
	}

	// Gate 5: exactly one public key.
	if len(claims.PublicKeys) != 1 {
		return nil, failf(KindUnsupportedKeyCount, "only 1 public key is supported, got %d", len(claims.PublicKeys))
	}
	pubKey := claims.PublicKeys[0]

	// Gate 6: verified re-decode against the sole key. From here on the
	// claim set is signature-backed.
	verified, err := token.DecodeVerified(rawToken, pubKey, v.cfg.Leeway)
	if err != nil {
		switch {
		case errors.Is(err, token.ErrSignatureInvalid):
			return nil, failWrap(KindSignatureInvalid, "signature on token is invalid", err)
		case errors.Is(err, token.ErrExpired):
			return nil, failWrap(KindSignatureInvalid, "token expired beyond the allowed leeway", err)
		case errors.Is(err, token.ErrMalformed):
			return nil, failWrap(KindMalformedToken, "unable to decode token", err)
		default:
			return nil, failWrap(KindInternal, "unexpected verification failure", err)
		}
	}

	// Gate 7: the key that signed the token must derive the address named by
	// the issuer DID. A malformed issuer or a non btc-addr method yields an
	// empty issuer address, which never matches.
	derivedAddr, err := address.FromPublicKey(pubKey)
	if err != nil {
		return nil, failWrap(KindInternal, "cannot derive address from verified key", err)
	}
	issuerAddr := did.AddressFrom(verified.Issuer)
	if !address.Equal(issuerAddr, derivedAddr) {
		return nil, failf(KindIssuerKeyMismatch, "public keys don't match issuer address")
	}

	// Gate 8: a claimed username must be registered to the issuer's address.
	// A null username passes trivially, with no registry call.
	if verified.Username != nil {
		rec, err := v.registry.Lookup(ctx, *verified.Username)
		switch {
		case errors.Is(err, registry.ErrNameNotFound):
			return nil, failf(KindUsernameNotFound, "issuer claimed a username that doesn't exist")
		case err != nil:
			return nil, failWrap(KindRegistryUnavailable, "registry lookup failed", err)
		}
		if !address.Equal(rec.Address, derivedAddr) {
			return nil, failf(KindUsernameOwnerMismatch, "public keys don't match owner of claimed username")
		}
	}

	return verified, nil
}
