// Package did parses decentralized identifiers of the form
// did:<method>:<method-specific-id>. Only the btc-addr method carries an
// address that can be compared against a derived public-key address.
package did

import (
	"fmt"
	"strings"
)

// MethodBTCAddr is the one DID method whose identifier is a bitcoin address.
const MethodBTCAddr = "btc-addr"

// ErrInvalidDID is returned when a string is not a well-formed DID.
var ErrInvalidDID = fmt.Errorf("invalid DID format")

// DID is the parsed form of a decentralized identifier.
type DID struct {
	Method string
	ID     string
}

// Parse splits a DID string into its method and method-specific identifier.
// A DID has exactly three colon-separated parts and the scheme tag "did"
// (compared case-insensitively).
func Parse(s string) (*DID, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return nil, fmt.Errorf("%w: expected 3 parts, got %d", ErrInvalidDID, len(parts))
	}
	if !strings.EqualFold(parts[0], "did") {
		return nil, fmt.Errorf("%w: scheme must be \"did\"", ErrInvalidDID)
	}
	return &DID{Method: parts[1], ID: parts[2]}, nil
}

// AddressFrom extracts the bitcoin address from a DID string. It returns the
// empty string, not an error, when the DID is malformed or uses a method other
// than btc-addr; callers treat an empty address as non-matching.
func AddressFrom(s string) string {
	d, err := Parse(s)
	if err != nil {
		return ""
	}
	if d.Method != MethodBTCAddr {
		return ""
	}
	return d.ID
}
