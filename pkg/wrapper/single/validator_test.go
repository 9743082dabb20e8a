package single

import (
	"crypto/ed25519"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stwrap/gatekeeper/pkg/gate"
	"github.com/stwrap/gatekeeper/pkg/programs"
	"github.com/stwrap/gatekeeper/pkg/solana"
	"github.com/stwrap/gatekeeper/pkg/solana/token"
	"github.com/stwrap/gatekeeper/pkg/testutil"
)

type testEnv struct {
	program        ed25519.PublicKey
	record         *Record
	instance       *solana.AccountInfo
	underlying     *solana.AccountInfo
	underlyingMint ed25519.PublicKey

	mintAuthority    ed25519.PublicKey
	reserveAuthority ed25519.PublicKey
	reserveAccount   ed25519.PublicKey
}

func setup(t *testing.T) *testEnv {
	env := &testEnv{
		program:        testutil.NewRandomKey(t),
		underlyingMint: testutil.NewRandomKey(t),
	}
	instance := testutil.NewRandomKey(t)
	underlying := testutil.NewRandomKey(t)

	var mintAuthorityBump, reserveAuthorityBump, reserveAccountBump uint8
	var err error
	env.mintAuthority, mintAuthorityBump, err = solana.FindProgramAddressAndBump(env.program, instance, MintAuthorityRole.Seed)
	require.NoError(t, err)
	env.reserveAuthority, reserveAuthorityBump, err = solana.FindProgramAddressAndBump(env.program, instance, ReserveAuthorityRole.Seed)
	require.NoError(t, err)
	env.reserveAccount, reserveAccountBump, err = solana.FindProgramAddressAndBump(env.program, instance, ReserveAccountRole.Seed)
	require.NoError(t, err)

	env.record = &Record{
		WrappedMint:          testutil.NewRandomKey(t),
		ReserveAuthority:     env.reserveAuthority,
		UnderlyingInstance:   underlying,
		MintAuthorityBump:    MintAuthorityBump(mintAuthorityBump),
		ReserveAuthorityBump: ReserveAuthorityBump(reserveAuthorityBump),
		ReserveAccountBump:   ReserveAccountBump(reserveAccountBump),
	}

	data, err := env.record.Marshal()
	require.NoError(t, err)

	env.instance = &solana.AccountInfo{Address: instance, Owner: env.program, Data: data}
	env.underlying = &solana.AccountInfo{Address: underlying, Owner: testutil.NewRandomKey(t)}
	return env
}

func (e *testEnv) validator() *Validator {
	return NewValidator(&programs.IDs{Wrapper: e.program, Token: token.ProgramKey})
}

func (e *testEnv) tokenAccount(t *testing.T, mint ed25519.PublicKey, amount uint64) *solana.AccountInfo {
	state := token.Account{Mint: mint, Owner: testutil.NewRandomKey(t), Amount: amount, State: token.AccountStateInitialized}
	return &solana.AccountInfo{Address: testutil.NewRandomKey(t), Owner: token.ProgramKey, Data: state.Marshal()}
}

func (e *testEnv) depositAccounts(t *testing.T) *DepositAccounts {
	return &DepositAccounts{
		Instance:           e.instance,
		UnderlyingInstance: e.underlying,
		From:               e.tokenAccount(t, e.underlyingMint, 100),
		Reserve:            &solana.AccountInfo{Address: e.reserveAccount, Owner: token.ProgramKey},
		Recipient:          e.tokenAccount(t, e.record.WrappedMint, 0),
		WrappedMint:        &solana.AccountInfo{Address: e.record.WrappedMint, Owner: token.ProgramKey},
		MintAuthority:      &solana.AccountInfo{Address: e.mintAuthority},
	}
}

func (e *testEnv) withdrawAccounts(t *testing.T) *WithdrawAccounts {
	return &WithdrawAccounts{
		Instance:           e.instance,
		UnderlyingInstance: e.underlying,
		From:               e.tokenAccount(t, e.record.WrappedMint, 50),
		Reserve:            &solana.AccountInfo{Address: e.reserveAccount, Owner: token.ProgramKey},
		ReserveAuthority:   &solana.AccountInfo{Address: e.reserveAuthority},
		WrappedMint:        &solana.AccountInfo{Address: e.record.WrappedMint, Owner: token.ProgramKey},
		To:                 e.tokenAccount(t, e.underlyingMint, 0),
	}
}

func TestValidateDeposit_HappyPath(t *testing.T) {
	env := setup(t)
	v := env.validator()

	validated, err := v.ValidateDeposit(env.depositAccounts(t), env.underlyingMint)
	require.NoError(t, err)
	assert.Equal(t, env.record, validated.Record)
	assert.EqualValues(t, 100, validated.From.Amount)
	assert.EqualValues(t, env.record.WrappedMint, validated.Recipient.Mint)
}

func TestValidateDeposit_Failures(t *testing.T) {
	for _, tc := range []struct {
		name     string
		tamper   func(env *testEnv, accounts *DepositAccounts)
		expected error
	}{
		{
			name: "instance owned by another program",
			tamper: func(env *testEnv, accounts *DepositAccounts) {
				forged := *accounts.Instance
				forged.Owner = testutil.FilledKey(1)
				accounts.Instance = &forged
			},
			expected: gate.ErrInvalidAccountOwner,
		},
		{
			name: "instance data resized",
			tamper: func(env *testEnv, accounts *DepositAccounts) {
				forged := *accounts.Instance
				forged.Data = append(append([]byte{}, forged.Data...), 0)
				accounts.Instance = &forged
			},
			expected: gate.ErrSchemaMismatch,
		},
		{
			name: "wrong underlying instance",
			tamper: func(env *testEnv, accounts *DepositAccounts) {
				accounts.UnderlyingInstance = &solana.AccountInfo{Address: testutil.FilledKey(2)}
			},
			expected: gate.ErrInvalidUnderlyingInstance,
		},
		{
			name: "substituted reserve",
			tamper: func(env *testEnv, accounts *DepositAccounts) {
				accounts.Reserve = &solana.AccountInfo{Address: env.reserveAuthority, Owner: token.ProgramKey}
			},
			expected: gate.ErrInvalidDerivedAccount,
		},
		{
			name: "substituted mint authority",
			tamper: func(env *testEnv, accounts *DepositAccounts) {
				accounts.MintAuthority = &solana.AccountInfo{Address: env.reserveAuthority}
			},
			expected: gate.ErrInvalidDerivedAccount,
		},
		{
			name: "foreign mint",
			tamper: func(env *testEnv, accounts *DepositAccounts) {
				accounts.WrappedMint = &solana.AccountInfo{Address: testutil.FilledKey(3), Owner: token.ProgramKey}
			},
			expected: gate.ErrInvalidMint,
		},
		{
			name: "mint not owned by token program",
			tamper: func(env *testEnv, accounts *DepositAccounts) {
				accounts.WrappedMint = &solana.AccountInfo{Address: env.record.WrappedMint, Owner: testutil.FilledKey(4)}
			},
			expected: gate.ErrInvalidAccountOwner,
		},
		{
			name: "source holds the wrapped asset",
			tamper: func(env *testEnv, accounts *DepositAccounts) {
				accounts.From = env.tokenAccount(t, env.record.WrappedMint, 100)
			},
			expected: gate.ErrInvalidMint,
		},
		{
			name: "recipient is not a token account",
			tamper: func(env *testEnv, accounts *DepositAccounts) {
				accounts.Recipient = &solana.AccountInfo{Address: testutil.FilledKey(5), Owner: token.ProgramKey, Data: []byte{1}}
			},
			expected: gate.ErrInvalidAccountFormat,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			env := setup(t)
			v := env.validator()

			accounts := env.depositAccounts(t)
			tc.tamper(env, accounts)

			validated, err := v.ValidateDeposit(accounts, env.underlyingMint)
			assert.Nil(t, validated)
			assert.True(t, errors.Is(err, tc.expected), "got %v", err)
		})
	}
}

func TestValidateWithdraw(t *testing.T) {
	env := setup(t)
	v := env.validator()

	validated, err := v.ValidateWithdraw(env.withdrawAccounts(t), env.underlyingMint)
	require.NoError(t, err)
	assert.EqualValues(t, 50, validated.From.Amount)
	assert.EqualValues(t, env.underlyingMint, validated.To.Mint)

	// Mint authority passed where the reserve authority belongs.
	accounts := env.withdrawAccounts(t)
	accounts.ReserveAuthority = &solana.AccountInfo{Address: env.mintAuthority}
	_, err = v.ValidateWithdraw(accounts, env.underlyingMint)
	var derivedErr *gate.DerivedAccountError
	require.True(t, errors.As(err, &derivedErr))
	assert.Equal(t, ReserveAuthorityRole, derivedErr.Role)

	// Burning from an underlying-asset account.
	accounts = env.withdrawAccounts(t)
	accounts.From = env.tokenAccount(t, env.underlyingMint, 50)
	_, err = v.ValidateWithdraw(accounts, env.underlyingMint)
	assert.True(t, errors.Is(err, gate.ErrInvalidMint))
}

func TestCheckReserveAuthority_PinnedToRecord(t *testing.T) {
	env := setup(t)
	v := env.validator()
	instance := env.instance.Address

	require.NoError(t, v.CheckReserveAuthority(env.record, instance, env.reserveAuthority))

	// A record whose stored authority disagrees with the derived one.
	forged := *env.record
	forged.ReserveAuthority = testutil.FilledKey(8)
	err := v.CheckReserveAuthority(&forged, instance, env.reserveAuthority)
	var mismatch *gate.MismatchError
	require.True(t, errors.As(err, &mismatch))
	assert.True(t, errors.Is(err, gate.ErrInvalidDerivedAccount))
	assert.Equal(t, "reserve authority", mismatch.Label)
	assert.EqualValues(t, testutil.FilledKey(8), mismatch.Expected)

	forgedData, err := forged.Marshal()
	require.NoError(t, err)
	accounts := env.withdrawAccounts(t)
	accounts.Instance = &solana.AccountInfo{Address: instance, Owner: env.program, Data: forgedData}
	_, err = v.ValidateWithdraw(accounts, env.underlyingMint)
	assert.True(t, errors.Is(err, gate.ErrInvalidDerivedAccount))
}

func TestValidate_MissingAccount(t *testing.T) {
	env := setup(t)
	v := env.validator()

	deposit := env.depositAccounts(t)
	deposit.Reserve = nil
	_, err := v.ValidateDeposit(deposit, env.underlyingMint)
	assert.True(t, errors.Is(err, gate.ErrMissingAccount))
	assert.Contains(t, err.Error(), "reserve")

	withdraw := env.withdrawAccounts(t)
	withdraw.ReserveAuthority = nil
	_, err = v.ValidateWithdraw(withdraw, env.underlyingMint)
	assert.True(t, errors.Is(err, gate.ErrMissingAccount))

	_, err = v.ValidateWithdraw(nil, env.underlyingMint)
	assert.True(t, errors.Is(err, gate.ErrMissingAccount))
	_, err = v.LoadInstance(nil)
	assert.True(t, errors.Is(err, gate.ErrMissingAccount))
}

func TestValidate_DoesNotMutateRecord(t *testing.T) {
	env := setup(t)
	v := env.validator()
	before := append([]byte{}, env.instance.Data...)

	accounts := env.depositAccounts(t)
	accounts.Reserve = &solana.AccountInfo{Address: testutil.FilledKey(9)}
	_, err := v.ValidateDeposit(accounts, env.underlyingMint)
	require.Error(t, err)

	assert.Equal(t, before, env.instance.Data)
}
