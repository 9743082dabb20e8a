package solana

import (
	"crypto/ed25519"
	"crypto/sha256"
	"math"

	"github.com/jdgcs/ed25519/edwards25519"
	"github.com/pkg/errors"
)

const (
	maxSeeds      = 16
	maxSeedLength = 32
)

var (
	ErrTooManySeeds          = errors.New("too many seeds")
	ErrMaxSeedLengthExceeded = errors.New("max seed length exceeded")

	ErrInvalidPublicKey = errors.New("invalid public key")

	// ErrAddressDerivationFailed indicates no program address exists for the
	// given seeds, program and bump.
	ErrAddressDerivationFailed = errors.New("address derivation failed")
)

var (
	programHashCtor = sha256.New
)

// CreateProgramAddress mirrors the implementation of the Solana SDK's CreateProgramAddress.
//
// ProgramAddresses are public keys that _do not_ lie on the ed25519 curve to ensure that
// there is no associated private key. In the event that the program and seed parameters
// result in a valid public key, ErrInvalidPublicKey is returned.
//
// Reference: https://github.com/solana-labs/solana/blob/5548e599fe4920b71766e0ad1d121755ce9c63d5/sdk/program/src/pubkey.rs#L158
func CreateProgramAddress(program ed25519.PublicKey, seeds ...[]byte) (ed25519.PublicKey, error) {
	if len(seeds) > maxSeeds {
		return nil, ErrTooManySeeds
	}

	h := programHashCtor()
	for _, s := range seeds {
		if len(s) > maxSeedLength {
			return nil, ErrMaxSeedLengthExceeded
		}

		if _, err := h.Write(s); err != nil {
			return nil, errors.Wrap(err, "failed to hash seed")
		}
	}

	for _, v := range [][]byte{program, []byte("ProgramDerivedAddress")} {
		if _, err := h.Write(v); err != nil {
			return nil, errors.Wrap(err, "failed to hash seed")
		}
	}

	var pub [32]byte
	copy(pub[:], h.Sum(nil))

	// A valid compressed edwards point has a private key, so it cannot be
	// used as a program address.
	var A edwards25519.ExtendedGroupElement
	if A.FromBytes(&pub) {
		return nil, ErrInvalidPublicKey
	}

	return pub[:], nil
}

// DeriveAddress computes the program address for seeds followed by a single
// bump seed byte.
//
// The returned error wraps ErrAddressDerivationFailed when the inputs admit no
// program address.
func DeriveAddress(program ed25519.PublicKey, bump uint8, seeds ...[]byte) (ed25519.PublicKey, error) {
	withBump := make([][]byte, 0, len(seeds)+1)
	withBump = append(withBump, seeds...)
	withBump = append(withBump, []byte{bump})

	pub, err := CreateProgramAddress(program, withBump...)
	if err == ErrInvalidPublicKey {
		return nil, errors.Wrapf(ErrAddressDerivationFailed, "bump %d lands on curve", bump)
	} else if err != nil {
		return nil, err
	}
	return pub, nil
}

// MustDeriveAddress is DeriveAddress for inputs that are fully controlled by
// the program itself. A failure there means persisted state is corrupt, so it
// panics instead of returning.
func MustDeriveAddress(program ed25519.PublicKey, bump uint8, seeds ...[]byte) ed25519.PublicKey {
	pub, err := DeriveAddress(program, bump, seeds...)
	if err != nil {
		panic(err)
	}
	return pub
}

// FindProgramAddressAndBump mirrors the implementation of the Solana SDK's
// FindProgramAddress. It returns the address and bump seed.
//
// Reference: https://github.com/solana-labs/solana/blob/5548e599fe4920b71766e0ad1d121755ce9c63d5/sdk/program/src/pubkey.rs#L234
func FindProgramAddressAndBump(program ed25519.PublicKey, seeds ...[]byte) (ed25519.PublicKey, uint8, error) {
	for bump := math.MaxUint8; bump > 0; bump-- {
		pub, err := DeriveAddress(program, uint8(bump), seeds...)
		if err == nil {
			return pub, uint8(bump), nil
		}
		if errors.Cause(err) != ErrAddressDerivationFailed {
			return nil, 0, err
		}
	}

	return nil, 0, ErrAddressDerivationFailed
}

// FindProgramAddress mirrors the implementation of the Solana SDK's FindProgramAddress.
// It only returns the address.
func FindProgramAddress(program ed25519.PublicKey, seeds ...[]byte) (ed25519.PublicKey, error) {
	pub, _, err := FindProgramAddressAndBump(program, seeds...)
	return pub, err
}
