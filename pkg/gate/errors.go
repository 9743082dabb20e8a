package gate

import (
	"crypto/ed25519"
	"fmt"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
)

// Every check failure is terminal for the enclosing call. Callers match kinds
// with errors.Is.
var (
	ErrInvalidDerivedAccount       = errors.New("invalid derived account")
	ErrInvalidAccountOwner         = errors.New("invalid account owner")
	ErrInvalidAccountFormat        = errors.New("invalid account format")
	ErrInvalidMint                 = errors.New("invalid mint")
	ErrInvalidRewardsDestination   = errors.New("invalid rewards destination")
	ErrInvalidUnderlyingInstance   = errors.New("invalid underlying instance")
	ErrWrongExternalPoolInstance   = errors.New("wrong external pool instance")
	ErrWrongExternalPoolParameters = errors.New("wrong external pool parameters")
	ErrPoolUnpack                  = errors.New("failed to unpack pool state")
	ErrSchemaMismatch              = errors.New("schema mismatch")
	ErrMissingAccount              = errors.New("missing account")
)

// DerivedAccountError is returned when a supplied account does not sit at the
// address derived for its role.
type DerivedAccountError struct {
	Role     Role
	Expected ed25519.PublicKey
	Found    ed25519.PublicKey
}

func (e *DerivedAccountError) Error() string {
	return fmt.Sprintf(
		"%s: expected %s to be %s, found %s",
		ErrInvalidDerivedAccount.Error(),
		e.Role.Name,
		base58.Encode(e.Expected),
		base58.Encode(e.Found),
	)
}

func (e *DerivedAccountError) Unwrap() error {
	return ErrInvalidDerivedAccount
}

// MismatchError is returned by CheckExpectations for the first row whose
// found value differs from the expected one.
type MismatchError struct {
	Label    string
	Expected ed25519.PublicKey
	Found    ed25519.PublicKey
	Err      error
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf(
		"%s: %s expected %s, found %s",
		e.Err.Error(),
		e.Label,
		base58.Encode(e.Expected),
		base58.Encode(e.Found),
	)
}

func (e *MismatchError) Unwrap() error {
	return e.Err
}
