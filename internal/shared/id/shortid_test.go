package id

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate_Length(t *testing.T) {
	for _, length := range []int{1, 8, 12, 32} {
		got, err := Generate(length)
		require.NoError(t, err)
		assert.Len(t, got, length)
	}
}

func TestGenerate_DefaultLength(t *testing.T) {
	got, err := Generate(0)
	require.NoError(t, err)
	assert.Len(t, got, DefaultLength)
}

func TestGenerate_Alphabet(t *testing.T) {
	got, err := Generate(64)
	require.NoError(t, err)
	for _, r := range got {
		assert.True(t, strings.ContainsRune(alphabet, r), "unexpected rune %q", r)
	}
}

func TestGenerate_Uniqueness(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 1000; i++ {
		got := MustGenerate(DefaultLength)
		_, dup := seen[got]
		require.False(t, dup, "duplicate id generated: %s", got)
		seen[got] = struct{}{}
	}
}

func TestGenerateWithPrefix(t *testing.T) {
	got, err := GenerateWithPrefix(PrefixSubscription, DefaultLength)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(got, "sub_"))
	assert.Len(t, got, len("sub_")+DefaultLength)
}

func TestValidatePrefix(t *testing.T) {
	tests := []struct {
		name    string
		sid     string
		prefix  string
		wantErr bool
	}{
		{"valid", "sub_xK9mP2vL3nQd", PrefixSubscription, false},
		{"valid crypto", "cp_A1b2C3d4E5f6", PrefixCryptoTxn, false},
		{"empty", "", PrefixSubscription, true},
		{"wrong prefix", "plan_xK9mP2vL3nQd", PrefixSubscription, true},
		{"prefix only", "sub_", PrefixSubscription, true},
		{"no underscore", "subxK9mP2vL3nQd", PrefixSubscription, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePrefix(tt.sid, tt.prefix)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
