package token

import (
	"crypto/ed25519"

	"github.com/stwrap/gatekeeper/pkg/solana/binary"
)

type AccountState byte

const (
	AccountStateUninitialized AccountState = iota
	AccountStateInitialized
	AccountStateFrozen
)

// Reference: https://github.com/solana-labs/solana-program-library/blob/11b1e3eefdd4e523768d63f7c70a7aa391ea0d02/token/program/src/state.rs#L125
const AccountSize = 165

// Reference: https://github.com/solana-labs/solana-program-library/blob/11b1e3eefdd4e523768d63f7c70a7aa391ea0d02/token/program/src/state.rs#L33
const MintSize = 82

const optionSize = 4

type Account struct {
	// The mint associated with this account
	Mint ed25519.PublicKey
	// The owner of this account.
	Owner ed25519.PublicKey
	// The amount of tokens this account holds.
	Amount uint64
	// If set, then the 'DelegatedAmount' represents the amount
	// authorized by the delegate.
	Delegate ed25519.PublicKey
	// The account's state
	State AccountState
	// If set, this is a native token, and the value logs the rent-exempt reserve.
	IsNative *uint64
	// The amount delegated
	DelegatedAmount uint64
	// Optional authority to close the account.
	CloseAuthority ed25519.PublicKey
}

func (a *Account) Marshal() []byte {
	b := make([]byte, AccountSize)

	var offset int
	binary.PutKey32(b, a.Mint, &offset)
	binary.PutKey32(b, a.Owner, &offset)
	binary.PutUint64(b, a.Amount, &offset)
	binary.PutOptionalKey32(b, a.Delegate, &offset, optionSize)
	binary.PutUint8(b, uint8(a.State), &offset)
	binary.PutOptionalUint64(b, a.IsNative, &offset, optionSize)
	binary.PutUint64(b, a.DelegatedAmount, &offset)
	binary.PutOptionalKey32(b, a.CloseAuthority, &offset, optionSize)

	return b
}

// Unmarshal decodes a token account, returning false if b is not exactly one
// account long or carries an invalid option tag or account state.
func (a *Account) Unmarshal(b []byte) bool {
	if len(b) != AccountSize {
		return false
	}

	var decoded Account
	var state uint8
	var offset int
	binary.GetKey32(b, &decoded.Mint, &offset)
	binary.GetKey32(b, &decoded.Owner, &offset)
	binary.GetUint64(b, &decoded.Amount, &offset)
	if !binary.GetOptionalKey32(b, &decoded.Delegate, &offset, optionSize) {
		return false
	}
	binary.GetUint8(b, &state, &offset)
	if AccountState(state) > AccountStateFrozen {
		return false
	}
	decoded.State = AccountState(state)
	if !binary.GetOptionalUint64(b, &decoded.IsNative, &offset, optionSize) {
		return false
	}
	binary.GetUint64(b, &decoded.DelegatedAmount, &offset)
	if !binary.GetOptionalKey32(b, &decoded.CloseAuthority, &offset, optionSize) {
		return false
	}

	*a = decoded
	return true
}
