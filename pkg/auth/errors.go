package auth

import (
	"errors"
	"fmt"
)

// Kind classifies a verification failure. The set is closed: every failure an
// auth response can produce maps to exactly one of these.
type Kind string

const (
	// KindMalformedToken marks structural decode failures: wrong segment
	// count, unparseable claim types, or a wrong algorithm tag.
	KindMalformedToken Kind = "malformed_token"
	// KindMissingClaim marks a required claim key that is absent.
	KindMissingClaim Kind = "missing_claim"
	// KindStaleTimestamp marks an iat skewed beyond the configured window.
	KindStaleTimestamp Kind = "stale_timestamp"
	// KindUnsupportedKeyCount marks a public_keys list whose length is not 1.
	KindUnsupportedKeyCount Kind = "unsupported_key_count"
	// KindSignatureInvalid marks a failed cryptographic verification.
	KindSignatureInvalid Kind = "signature_invalid"
	// KindIssuerKeyMismatch marks a public key whose derived address does not
	// match the address in the issuer DID.
	KindIssuerKeyMismatch Kind = "issuer_key_mismatch"
	// KindUsernameNotFound marks a claimed username the registry does not know.
	KindUsernameNotFound Kind = "username_not_found"
	// KindUsernameOwnerMismatch marks a registry owner address that does not
	// match the issuer's derived address.
	KindUsernameOwnerMismatch Kind = "username_owner_mismatch"
	// KindRegistryUnavailable marks transport or parse failures talking to
	// the registry.
	KindRegistryUnavailable Kind = "registry_unavailable"
	// KindInternal marks a truly unanticipated failure.
	KindInternal Kind = "internal"
)

// VerificationError is the single failure type surfaced by VerifyAuthResponse.
// It carries a closed-set Kind and a human-readable Reason.
type VerificationError struct {
	Kind   Kind
	Reason string
	Err    error
}

func (e *VerificationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Reason, e.Err)
	}
	return e.Reason
}

func (e *VerificationError) Unwrap() error {
	return e.Err
}

// KindOf returns the Kind carried by err, or KindInternal when err is not a
// VerificationError.
func KindOf(err error) Kind {
	var verr *VerificationError
	if errors.As(err, &verr) {
		return verr.Kind
	}
	return KindInternal
}

func failf(kind Kind, format string, args ...any) *VerificationError {
	return &VerificationError{Kind: kind, Reason: fmt.Sprintf(format, args...)}
}

func failWrap(kind Kind, reason string, err error) *VerificationError {
	return &VerificationError{Kind: kind, Reason: reason, Err: err}
}
