package gate

import (
	"crypto/ed25519"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/stwrap/gatekeeper/pkg/solana"
)

var testRole = Role{Name: "the test authority", Seed: []byte("test_authority")}

type testBump uint8

func (b testBump) Role() Role  { return testRole }
func (b testBump) Seed() uint8 { return uint8(b) }

type baseOnlyBump uint8

func (b baseOnlyBump) Role() Role  { return Role{Name: "the test instance"} }
func (b baseOnlyBump) Seed() uint8 { return uint8(b) }

func newTestLog() *logrus.Entry {
	return logrus.StandardLogger().WithField("type", "gate/test")
}

// findBump returns the canonical bump of testRole for program and base.
func findBump(t *testing.T, program, base ed25519.PublicKey) (ed25519.PublicKey, testBump) {
	address, bump, err := solana.FindProgramAddressAndBump(program, base, testRole.Seed)
	require.NoError(t, err)
	return address, testBump(bump)
}
