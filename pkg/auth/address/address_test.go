package address

import (
	"testing"

	"github.com/bitnames/authverify/internal/testutil"
)

func TestFromPublicKeyKnownVectors(t *testing.T) {
	cases := []struct {
		pubKey string
		want   string
	}{
		// Compressed public keys for the private keys 1 and 2.
		{"0279be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798", "1BgGZ9tcN4rm9KBzDn7KprQz87SZ26SAMH"},
		{"02c6047f9441ed7d6d3045406e95c07cd85c778e4b8cef3ca7abac09b95c709ee5", "1cMh228HTCiwS8ZsaakH8A8wze1JR5ZsP"},
	}

	for _, c := range cases {
		got, err := FromPublicKey(c.pubKey)
		if err != nil {
			t.Fatalf("FromPublicKey(%s): %v", c.pubKey, err)
		}
		if got != c.want {
			t.Errorf("FromPublicKey(%s) = %s, want %s", c.pubKey, got, c.want)
		}
	}
}

func TestFromPublicKeyDeterministic(t *testing.T) {
	_, pubKey := testutil.GenerateKey(t)

	first, err := FromPublicKey(pubKey)
	if err != nil {
		t.Fatalf("first derivation: %v", err)
	}
	second, err := FromPublicKey(pubKey)
	if err != nil {
		t.Fatalf("second derivation: %v", err)
	}
	if first != second {
		t.Fatalf("derivation not deterministic: %s vs %s", first, second)
	}
}

func TestFromPublicKeyDistinctKeys(t *testing.T) {
	_, pubA := testutil.GenerateKey(t)
	_, pubB := testutil.GenerateKey(t)

	addrA, err := FromPublicKey(pubA)
	if err != nil {
		t.Fatalf("derive A: %v", err)
	}
	addrB, err := FromPublicKey(pubB)
	if err != nil {
		t.Fatalf("derive B: %v", err)
	}
	if addrA == addrB {
		t.Fatalf("distinct keys derived the same address %s", addrA)
	}
}

func TestFromPublicKeyRejectsBadInput(t *testing.T) {
	cases := []string{
		"not-hex",
		"",
		"0279be66", // truncated point
		// x-coordinate ≥ field prime, not a valid point encoding
		"02ffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff",
	}
	for _, c := range cases {
		if _, err := FromPublicKey(c); err == nil {
			t.Errorf("FromPublicKey(%q) expected error", c)
		}
	}
}

func TestEqual(t *testing.T) {
	if !Equal("1BgGZ9tcN4rm9KBzDn7KprQz87SZ26SAMH", "1BgGZ9tcN4rm9KBzDn7KprQz87SZ26SAMH") {
		t.Error("identical addresses should be equal")
	}
	if Equal("1BgGZ9tcN4rm9KBzDn7KprQz87SZ26SAMH", "1cMh228HTCiwS8ZsaakH8A8wze1JR5ZsP") {
		t.Error("different addresses should not be equal")
	}
	// Comparison is case-sensitive by design.
	if Equal("1BgGZ9tcN4rm9KBzDn7KprQz87SZ26SAMH", "1bgGZ9tcN4rm9KBzDn7KprQz87SZ26SAMH") {
		t.Error("comparison must be case-sensitive")
	}
	// An empty address never matches, even another empty one.
	if Equal("", "") {
		t.Error("empty addresses must not compare equal")
	}
}
