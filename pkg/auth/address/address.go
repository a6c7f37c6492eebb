// Package address derives bitcoin P2PKH addresses from compressed secp256k1
// public keys. Derivation is pure and deterministic: the same key always
// yields the same address string.
package address

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/mr-tron/base58"
	"golang.org/x/crypto/ripemd160" //nolint:staticcheck // required by the address format
)

// pubKeyHashVersion is the version byte for pay-to-pubkey-hash addresses.
const pubKeyHashVersion = 0x00

// FromPublicKey derives the Base58Check-encoded P2PKH address for a
// hex-encoded compressed secp256k1 public key.
func FromPublicKey(pubKeyHex string) (string, error) {
	raw, err := hex.DecodeString(pubKeyHex)
	if err != nil {
		return "", fmt.Errorf("invalid public key hex: %w", err)
	}
	// Reconstruct the curve point to reject encodings that are not valid
	// compressed secp256k1 keys before hashing them into an address.
	pub, err := secp256k1.ParsePubKey(raw)
	if err != nil {
		return "", fmt.Errorf("invalid public key: %w", err)
	}
	return encodeBase58Check(pubKeyHashVersion, hash160(pub.SerializeCompressed())), nil
}

// Equal reports whether two addresses are the same. Comparison is a literal
// case-sensitive string match; no normalization is applied.
func Equal(a, b string) bool {
	return a != "" && a == b
}

// hash160 computes RIPEMD160(SHA256(b)), the standard bitcoin key hash.
func hash160(b []byte) []byte {
	sha := sha256.Sum256(b)
	h := ripemd160.New()
	h.Write(sha[:])
	return h.Sum(nil)
}

// encodeBase58Check prepends the version byte and appends the 4-byte double
// SHA256 checksum before base58 encoding.
func encodeBase58Check(version byte, payload []byte) string {
	buf := make([]byte, 0, 1+len(payload)+4)
	buf = append(buf, version)
	buf = append(buf, payload...)
	first := sha256.Sum256(buf)
	second := sha256.Sum256(first[:])
	buf = append(buf, second[:4]...)
	return base58.Encode(buf)
}
