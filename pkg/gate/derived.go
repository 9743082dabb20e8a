package gate

import (
	"bytes"
	"crypto/ed25519"

	"github.com/mr-tron/base58"
	"github.com/sirupsen/logrus"

	"github.com/stwrap/gatekeeper/pkg/solana"
)

// DerivedAddress computes the address of bump's role under program, derived
// from base. It panics if no address exists: every input is controlled by
// the program, so that can only mean the stored bump is corrupt.
func DerivedAddress(bump Bump, program, base ed25519.PublicKey) ed25519.PublicKey {
	return solana.MustDeriveAddress(program, bump.Seed(), bump.Role().seeds(base)...)
}

// CheckDerivedAccount verifies that candidate is the address derived for
// bump's role, under program, from base (typically the instance address).
//
// It must run before candidate is read or written. The comparison is pure,
// so a failure is final for the given inputs.
func CheckDerivedAccount(log *logrus.Entry, bump Bump, program, base, candidate ed25519.PublicKey) error {
	expected := DerivedAddress(bump, program, base)
	if bytes.Equal(expected, candidate) {
		return nil
	}

	role := bump.Role()
	log.WithFields(logrus.Fields{
		"role":     role.Name,
		"expected": base58.Encode(expected),
		"found":    base58.Encode(candidate),
	}).Warnf("expected %s to be %s, but found %s instead", role.Name, base58.Encode(expected), base58.Encode(candidate))

	return &DerivedAccountError{
		Role:     role,
		Expected: expected,
		Found:    candidate,
	}
}
