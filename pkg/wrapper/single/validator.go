package single

import (
	"crypto/ed25519"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/stwrap/gatekeeper/pkg/gate"
	"github.com/stwrap/gatekeeper/pkg/programs"
	"github.com/stwrap/gatekeeper/pkg/solana"
	"github.com/stwrap/gatekeeper/pkg/solana/token"
)

const (
	wrappedAssetLabel    = "the wrapped asset"
	underlyingAssetLabel = "the underlying asset"
)

// Validator checks the accounts supplied to a single-asset wrapper instance
// before any of them is used. It holds no per-call state.
type Validator struct {
	log          *logrus.Entry
	program      ed25519.PublicKey
	tokenProgram ed25519.PublicKey
}

func NewValidator(ids *programs.IDs) *Validator {
	return &Validator{
		log:          logrus.StandardLogger().WithField("type", "wrapper/single"),
		program:      ids.Wrapper,
		tokenProgram: ids.Token,
	}
}

// ValidatedDeposit is handed to deposit logic once every check passed.
type ValidatedDeposit struct {
	Record    *Record
	From      *token.Account
	Recipient *token.Account
}

// ValidatedWithdraw is handed to withdrawal logic once every check passed.
type ValidatedWithdraw struct {
	Record *Record
	From   *token.Account
	To     *token.Account
}

// LoadInstance loads the record held by account, which must be owned by the
// wrapper program.
func (v *Validator) LoadInstance(account *solana.AccountInfo) (*Record, error) {
	if account == nil {
		return nil, errors.Wrap(gate.ErrMissingAccount, "instance")
	}

	log := v.log.WithFields(logrus.Fields{
		"method":   "LoadInstance",
		"instance": base58.Encode(account.Address),
	})

	if !account.IsOwnedBy(v.program) {
		log.WithFields(logrus.Fields{
			"expected": base58.Encode(v.program),
			"found":    base58.Encode(account.Owner),
		}).Warn("instance is not owned by the wrapper program")
		return nil, gate.ErrInvalidAccountOwner
	}

	record, err := Load(account.Data)
	if err != nil {
		log.WithError(err).Warn("failure loading instance record")
		return nil, err
	}
	return record, nil
}

// CheckUnderlyingInstance pins the underlying protocol instance to the one
// stored in the record.
func (v *Validator) CheckUnderlyingInstance(record *Record, account *solana.AccountInfo) error {
	return gate.CheckExpectations(
		v.log.WithField("method", "CheckUnderlyingInstance"),
		gate.Expectation{
			Label:    "underlying instance",
			Expected: record.UnderlyingInstance,
			Found:    account.Address,
			Err:      gate.ErrInvalidUnderlyingInstance,
		},
	)
}

func (v *Validator) CheckMintAuthority(record *Record, instance, candidate ed25519.PublicKey) error {
	return gate.CheckDerivedAccount(v.log.WithField("method", "CheckMintAuthority"), record.MintAuthorityBump, v.program, instance, candidate)
}

// CheckReserveAuthority confirms candidate is this instance's reserve
// authority, both by derivation and against the authority stored in the
// record.
func (v *Validator) CheckReserveAuthority(record *Record, instance, candidate ed25519.PublicKey) error {
	log := v.log.WithField("method", "CheckReserveAuthority")

	if err := gate.CheckDerivedAccount(log, record.ReserveAuthorityBump, v.program, instance, candidate); err != nil {
		return err
	}
	return gate.CheckExpectations(
		log,
		gate.Expectation{
			Label:    "reserve authority",
			Expected: record.ReserveAuthority,
			Found:    candidate,
			Err:      gate.ErrInvalidDerivedAccount,
		},
	)
}

// CheckReserveAccount confirms candidate is this instance's reserve account.
// It does not check what the reserve holds.
func (v *Validator) CheckReserveAccount(record *Record, instance, candidate ed25519.PublicKey) error {
	return gate.CheckDerivedAccount(v.log.WithField("method", "CheckReserveAccount"), record.ReserveAccountBump, v.program, instance, candidate)
}

// CheckMint confirms account is the wrapped mint stored in the record.
func (v *Validator) CheckMint(record *Record, account *solana.AccountInfo) error {
	return gate.CheckMint(v.log.WithField("method", "CheckMint"), wrappedAssetLabel, v.tokenProgram, record.WrappedMint, account)
}

// CheckWrappedTokenAccount confirms account is a token account holding the
// wrapped asset.
func (v *Validator) CheckWrappedTokenAccount(record *Record, account *solana.AccountInfo) (*token.Account, error) {
	return gate.CheckTokenAccount(v.log.WithField("method", "CheckWrappedTokenAccount"), wrappedAssetLabel, v.tokenProgram, record.WrappedMint, account)
}

// CheckUnderlyingTokenAccount confirms account is a token account holding
// the underlying asset, whose mint is read from the underlying instance by
// the caller.
func (v *Validator) CheckUnderlyingTokenAccount(underlyingMint ed25519.PublicKey, account *solana.AccountInfo) (*token.Account, error) {
	return gate.CheckTokenAccount(v.log.WithField("method", "CheckUnderlyingTokenAccount"), underlyingAssetLabel, v.tokenProgram, underlyingMint, account)
}

// ValidateDeposit runs every check a deposit needs, in order, and stops at
// the first failure.
func (v *Validator) ValidateDeposit(accounts *DepositAccounts, underlyingMint ed25519.PublicKey) (*ValidatedDeposit, error) {
	if err := v.checkPresent("ValidateDeposit", accounts); err != nil {
		return nil, err
	}

	record, err := v.LoadInstance(accounts.Instance)
	if err != nil {
		return nil, err
	}
	instance := accounts.Instance.Address

	if err := v.CheckUnderlyingInstance(record, accounts.UnderlyingInstance); err != nil {
		return nil, err
	}
	if err := v.CheckReserveAccount(record, instance, accounts.Reserve.Address); err != nil {
		return nil, err
	}
	if err := v.CheckMintAuthority(record, instance, accounts.MintAuthority.Address); err != nil {
		return nil, err
	}
	if err := v.CheckMint(record, accounts.WrappedMint); err != nil {
		return nil, err
	}

	from, err := v.CheckUnderlyingTokenAccount(underlyingMint, accounts.From)
	if err != nil {
		return nil, err
	}
	recipient, err := v.CheckWrappedTokenAccount(record, accounts.Recipient)
	if err != nil {
		return nil, err
	}

	return &ValidatedDeposit{
		Record:    record,
		From:      from,
		Recipient: recipient,
	}, nil
}

// ValidateWithdraw runs every check a withdrawal needs, in order, and stops
// at the first failure.
func (v *Validator) ValidateWithdraw(accounts *WithdrawAccounts, underlyingMint ed25519.PublicKey) (*ValidatedWithdraw, error) {
	if err := v.checkPresent("ValidateWithdraw", accounts); err != nil {
		return nil, err
	}

	record, err := v.LoadInstance(accounts.Instance)
	if err != nil {
		return nil, err
	}
	instance := accounts.Instance.Address

	if err := v.CheckUnderlyingInstance(record, accounts.UnderlyingInstance); err != nil {
		return nil, err
	}
	if err := v.CheckReserveAccount(record, instance, accounts.Reserve.Address); err != nil {
		return nil, err
	}
	if err := v.CheckReserveAuthority(record, instance, accounts.ReserveAuthority.Address); err != nil {
		return nil, err
	}
	if err := v.CheckMint(record, accounts.WrappedMint); err != nil {
		return nil, err
	}

	from, err := v.CheckWrappedTokenAccount(record, accounts.From)
	if err != nil {
		return nil, err
	}
	to, err := v.CheckUnderlyingTokenAccount(underlyingMint, accounts.To)
	if err != nil {
		return nil, err
	}

	return &ValidatedWithdraw{
		Record: record,
		From:   from,
		To:     to,
	}, nil
}

type accountBundle interface {
	references() []gate.Reference
}

// checkPresent rejects a bundle with any unset account before a check
// dereferences one.
func (v *Validator) checkPresent(method string, bundle accountBundle) error {
	return gate.CheckPresent(v.log.WithField("method", method), bundle.references()...)
}
