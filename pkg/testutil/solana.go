package testutil

import (
	"crypto/ed25519"
	"testing"

	"github.com/stretchr/testify/require"
)

func NewRandomKey(t *testing.T) ed25519.PublicKey {
	p, _, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)
	return p
}

// FilledKey returns a key with every byte set to b. Handy for fixtures where
// the value only needs to be recognizable.
func FilledKey(b byte) ed25519.PublicKey {
	k := make(ed25519.PublicKey, ed25519.PublicKeySize)
	for i := range k {
		k[i] = b
	}
	return k
}
