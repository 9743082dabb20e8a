package dual

import (
	"crypto/ed25519"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/stwrap/gatekeeper/pkg/gate"
	"github.com/stwrap/gatekeeper/pkg/programs"
	"github.com/stwrap/gatekeeper/pkg/solana"
	"github.com/stwrap/gatekeeper/pkg/solana/token"
	"github.com/stwrap/gatekeeper/pkg/solana/tokenswap"
)

const (
	wrappedAssetLabel   = "the wrapped asset"
	primaryAssetLabel   = "the primary asset"
	secondaryAssetLabel = "the secondary asset"
)

// Validator checks the accounts supplied to a dual-asset wrapper instance
// before any of them is used. It holds no per-call state and is safe to share.
type Validator struct {
	log              *logrus.Entry
	program          ed25519.PublicKey
	tokenProgram     ed25519.PublicKey
	tokenSwapProgram ed25519.PublicKey
}

func NewValidator(ids *programs.IDs) *Validator {
	return &Validator{
		log:              logrus.StandardLogger().WithField("type", "wrapper/dual"),
		program:          ids.Wrapper,
		tokenProgram:     ids.Token,
		tokenSwapProgram: ids.TokenSwap,
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

// ValidatedSellRewards is handed to the reward sale once every check passed.
type ValidatedSellRewards struct {
	Record           *Record
	Pool             *tokenswap.SwapState
	PrimaryReserve   *token.Account
	SecondaryReserve *token.Account
}

// LoadInstance loads the record held by account. The account must be owned
// by the wrapper program and sit at the address derived from the record's
// underlying instance.
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

	if err := v.CheckSelfAddress(record, account.Address); err != nil {
		return nil, err
	}
	return record, nil
}

// CheckSelfAddress confirms candidate is the one instance that belongs to the
// record's underlying instance.
func (v *Validator) CheckSelfAddress(record *Record, candidate ed25519.PublicKey) error {
	return gate.CheckDerivedAccount(v.log.WithField("method", "CheckSelfAddress"), record.SelfBump, v.program, record.UnderlyingInstance, candidate)
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

func (v *Validator) CheckReserveAuthority(record *Record, instance, candidate ed25519.PublicKey) error {
	return gate.CheckDerivedAccount(v.log.WithField("method", "CheckReserveAuthority"), record.ReserveAuthorityBump, v.program, instance, candidate)
}

func (v *Validator) CheckPrimaryReserve(record *Record, instance, candidate ed25519.PublicKey) error {
	return gate.CheckDerivedAccount(v.log.WithField("method", "CheckPrimaryReserve"), record.PrimaryReserveBump, v.program, instance, candidate)
}

// CheckSecondaryReserve confirms candidate is this instance's secondary
// reserve account.
//
// The derivation uses the primary reserve's bump under the secondary label,
// which is how deployed instances were initialized. SecondaryReserveBump is
// stored but not consulted. Instances whose two canonical bumps differ cannot
// pass this check with the secondary's own address.
func (v *Validator) CheckSecondaryReserve(record *Record, instance, candidate ed25519.PublicKey) error {
	return gate.CheckDerivedAccount(v.log.WithField("method", "CheckSecondaryReserve"), SecondaryReserveBump(record.PrimaryReserveBump), v.program, instance, candidate)
}

// CheckSwapAuthority confirms candidate is the authority of the record's pool
// under the token-swap program.
func (v *Validator) CheckSwapAuthority(record *Record, candidate ed25519.PublicKey) error {
	return gate.CheckDerivedAccount(v.log.WithField("method", "CheckSwapAuthority"), record.SwapAuthorityBump, v.tokenSwapProgram, record.Pool, candidate)
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

// CheckPrimaryTokenAccount confirms account is a token account holding the
// primary asset, whose mint is read from the underlying instance by the
// caller.
func (v *Validator) CheckPrimaryTokenAccount(primaryMint ed25519.PublicKey, account *solana.AccountInfo) (*token.Account, error) {
	return gate.CheckTokenAccount(v.log.WithField("method", "CheckPrimaryTokenAccount"), primaryAssetLabel, v.tokenProgram, primaryMint, account)
}

// ValidateDeposit runs every check a deposit needs, in order, and stops at
// the first failure.
func (v *Validator) ValidateDeposit(accounts *DepositAccounts, primaryMint ed25519.PublicKey) (*ValidatedDeposit, error) {
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
	if err := v.CheckPrimaryReserve(record, instance, accounts.PrimaryReserve.Address); err != nil {
		return nil, err
	}
	if err := v.CheckMintAuthority(record, instance, accounts.MintAuthority.Address); err != nil {
		return nil, err
	}
	if err := v.CheckMint(record, accounts.WrappedMint); err != nil {
		return nil, err
	}

	from, err := v.CheckPrimaryTokenAccount(primaryMint, accounts.From)
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
func (v *Validator) ValidateWithdraw(accounts *WithdrawAccounts, primaryMint ed25519.PublicKey) (*ValidatedWithdraw, error) {
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
	if err := v.CheckPrimaryReserve(record, instance, accounts.PrimaryReserve.Address); err != nil {
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
	to, err := v.CheckPrimaryTokenAccount(primaryMint, accounts.To)
	if err != nil {
		return nil, err
	}

	return &ValidatedWithdraw{
		Record: record,
		From:   from,
		To:     to,
	}, nil
}

// ValidateSellRewards runs every check a reward sale needs, in order, and
// stops at the first failure.
func (v *Validator) ValidateSellRewards(accounts *SellRewardsAccounts, primaryMint ed25519.PublicKey) (*ValidatedSellRewards, error) {
	if err := v.checkPresent("ValidateSellRewards", accounts); err != nil {
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
	if err := v.CheckReserveAuthority(record, instance, accounts.ReserveAuthority.Address); err != nil {
		return nil, err
	}
	if err := v.CheckPrimaryReserve(record, instance, accounts.PrimaryReserve.Address); err != nil {
		return nil, err
	}

	pool, err := v.CheckSwapPool(record, accounts)
	if err != nil {
		return nil, err
	}
	if err := v.CheckSwapAuthority(record, accounts.SwapAuthority.Address); err != nil {
		return nil, err
	}

	// The pool must sell the same primary asset the underlying instance issues.
	if err := gate.CheckMint(v.log.WithField("method", "ValidateSellRewards"), primaryAssetLabel, v.tokenProgram, primaryMint, accounts.PrimaryMint); err != nil {
		return nil, err
	}

	primaryReserve, err := v.CheckPrimaryTokenAccount(primaryMint, accounts.PrimaryReserve)
	if err != nil {
		return nil, err
	}
	secondaryReserve, err := gate.CheckTokenAccount(v.log.WithField("method", "ValidateSellRewards"), secondaryAssetLabel, v.tokenProgram, pool.TokenBMint, accounts.SecondaryToken)
	if err != nil {
		return nil, err
	}

	return &ValidatedSellRewards{
		Record:           record,
		Pool:             pool,
		PrimaryReserve:   primaryReserve,
		SecondaryReserve: secondaryReserve,
	}, nil
}

// ChangeRewardsDestination validates the instance and stores the new rewards
// destination in its record. The instance data is rewritten in place only
// after every check passed.
func (v *Validator) ChangeRewardsDestination(accounts *ChangeRewardsDestinationAccounts) (*Record, error) {
	log := v.log.WithField("method", "ChangeRewardsDestination")

	if err := v.checkPresent("ChangeRewardsDestination", accounts); err != nil {
		return nil, err
	}

	record, err := v.LoadInstance(accounts.Instance)
	if err != nil {
		return nil, err
	}
	if err := v.CheckUnderlyingInstance(record, accounts.UnderlyingInstance); err != nil {
		return nil, err
	}

	updated := *record
	updated.RewardsDestination = accounts.NewRewardsDestination.Address
	if err := updated.Save(accounts.Instance.Data); err != nil {
		log.WithError(err).Warn("failure saving instance record")
		return nil, err
	}

	log.WithFields(logrus.Fields{
		"instance": base58.Encode(accounts.Instance.Address),
		"previous": base58.Encode(record.RewardsDestination),
		"current":  base58.Encode(updated.RewardsDestination),
	}).Info("rewards destination changed")

	return &updated, nil
}

type accountBundle interface {
	references() []gate.Reference
}

// checkPresent rejects a bundle with any unset account before a check
// dereferences one.
func (v *Validator) checkPresent(method string, bundle accountBundle) error {
	return gate.CheckPresent(v.log.WithField("method", method), bundle.references()...)
}
