// Package id generates Stripe-style prefixed short identifiers.
package id

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
)

const (
	// Base62 alphabet: 0-9, A-Z, a-z
	alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

	// DefaultLength is the default length for generated short IDs
	DefaultLength = 12
)

// Prefixes for different entity types (Stripe-style)
const (
	PrefixPlan         = "plan"
	PrefixSubscription = "sub"
	PrefixPayment      = "pay"
	PrefixInvoice      = "inv"
	// PrefixCryptoTxn identifies the human-readable transaction id handed
	// to a user paying with crypto; the out-of-band confirmation flow keys
	// on it.
	PrefixCryptoTxn = "cp"
)

// Generate creates a random short ID with the specified length using Base62
// encoding. The generated ID is cryptographically random and URL-safe.
func Generate(length int) (string, error) {
	if length <= 0 {
		length = DefaultLength
	}

	result := make([]byte, length)
	alphabetLen := big.NewInt(int64(len(alphabet)))

	for i := 0; i < length; i++ {
		num, err := rand.Int(rand.Reader, alphabetLen)
		if err != nil {
			return "", fmt.Errorf("failed to generate random number: %w", err)
		}
		result[i] = alphabet[num.Int64()]
	}

	return string(result), nil
}

// MustGenerate creates a random short ID and panics on error.
func MustGenerate(length int) string {
	id, err := Generate(length)
	if err != nil {
		panic(err)
	}
	return id
}

// GenerateWithPrefix creates a prefixed ID in the format "prefix_randomstring".
func GenerateWithPrefix(prefix string, length int) (string, error) {
	id, err := Generate(length)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s_%s", prefix, id), nil
}

// MustGenerateWithPrefix creates a prefixed ID and panics on error.
func MustGenerateWithPrefix(prefix string, length int) string {
	id, err := GenerateWithPrefix(prefix, length)
	if err != nil {
		panic(err)
	}
	return id
}

// ValidatePrefix checks that sid is non-empty and carries the expected
// prefix, e.g. ValidatePrefix("sub_xK9mP2vL3nQd", PrefixSubscription).
func ValidatePrefix(sid, prefix string) error {
	if sid == "" {
		return fmt.Errorf("id is empty")
	}
	want := prefix + "_"
	if !strings.HasPrefix(sid, want) {
		return fmt.Errorf("id %q does not have prefix %q", sid, want)
	}
	if len(sid) <= len(want) {
		return fmt.Errorf("id %q has no body after prefix", sid)
	}
	return nil
}
