package tokenswap

import (
	"crypto/ed25519"

	"github.com/mr-tron/base58"
)

// ProgramKey is the address of the SPL token-swap program.
var ProgramKey = ed25519.PublicKey(mustBase58Decode("SwapsVeCiPHMUAtzQWZw7RjsKjgCjhwU55QGu4U1Szw"))

func mustBase58Decode(value string) []byte {
	decoded, err := base58.Decode(value)
	if err != nil {
		panic(err)
	}
	return decoded
}
