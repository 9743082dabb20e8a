package dual

import (
	"github.com/stwrap/gatekeeper/pkg/gate"
	"github.com/stwrap/gatekeeper/pkg/solana"
)

// DepositAccounts are the accounts a deposit references: the depositor's
// primary-asset tokens move into the primary reserve and wrapped tokens are
// minted to the recipient.
type DepositAccounts struct {
	Instance           *solana.AccountInfo
	UnderlyingInstance *solana.AccountInfo
	From               *solana.AccountInfo
	PrimaryReserve     *solana.AccountInfo
	Recipient          *solana.AccountInfo
	WrappedMint        *solana.AccountInfo
	MintAuthority      *solana.AccountInfo
}

// WithdrawAccounts are the accounts a withdrawal references: wrapped tokens
// are burnt from From and primary-asset tokens leave the primary reserve for
// To.
type WithdrawAccounts struct {
	Instance           *solana.AccountInfo
	UnderlyingInstance *solana.AccountInfo
	From               *solana.AccountInfo
	PrimaryReserve     *solana.AccountInfo
	ReserveAuthority   *solana.AccountInfo
	WrappedMint        *solana.AccountInfo
	To                 *solana.AccountInfo
}

// SellRewardsAccounts are the accounts a reward sale references. Accrued
// primary-asset rewards are swapped through the pool into the secondary
// reserve.
type SellRewardsAccounts struct {
	Instance           *solana.AccountInfo
	UnderlyingInstance *solana.AccountInfo
	PrimaryReserve     *solana.AccountInfo
	ReserveAuthority   *solana.AccountInfo

	Pool *solana.AccountInfo
	// The pool's primary-asset token account.
	PrimaryToken *solana.AccountInfo
	// The secondary reserve, which is also the pool's secondary-asset token
	// account.
	SecondaryToken *solana.AccountInfo
	PoolMint       *solana.AccountInfo
	PrimaryMint    *solana.AccountInfo
	SecondaryMint  *solana.AccountInfo
	PoolFeeAccount *solana.AccountInfo
	SwapAuthority  *solana.AccountInfo

	RewardsDestination *solana.AccountInfo
}

// ChangeRewardsDestinationAccounts are the accounts a rewards destination
// change references. Authorizing the caller is left to the underlying
// protocol's manager check.
type ChangeRewardsDestinationAccounts struct {
	Instance              *solana.AccountInfo
	UnderlyingInstance    *solana.AccountInfo
	NewRewardsDestination *solana.AccountInfo
}

func (a *DepositAccounts) references() []gate.Reference {
	if a == nil {
		return []gate.Reference{{Name: "accounts"}}
	}
	return []gate.Reference{
		{Name: "instance", Account: a.Instance},
		{Name: "underlying instance", Account: a.UnderlyingInstance},
		{Name: "from", Account: a.From},
		{Name: "primary reserve", Account: a.PrimaryReserve},
		{Name: "recipient", Account: a.Recipient},
		{Name: "wrapped mint", Account: a.WrappedMint},
		{Name: "mint authority", Account: a.MintAuthority},
	}
}

func (a *WithdrawAccounts) references() []gate.Reference {
	if a == nil {
		return []gate.Reference{{Name: "accounts"}}
	}
	return []gate.Reference{
		{Name: "instance", Account: a.Instance},
		{Name: "underlying instance", Account: a.UnderlyingInstance},
		{Name: "from", Account: a.From},
		{Name: "primary reserve", Account: a.PrimaryReserve},
		{Name: "reserve authority", Account: a.ReserveAuthority},
		{Name: "wrapped mint", Account: a.WrappedMint},
		{Name: "to", Account: a.To},
	}
}

func (a *SellRewardsAccounts) references() []gate.Reference {
	if a == nil {
		return []gate.Reference{{Name: "accounts"}}
	}
	return []gate.Reference{
		{Name: "instance", Account: a.Instance},
		{Name: "underlying instance", Account: a.UnderlyingInstance},
		{Name: "primary reserve", Account: a.PrimaryReserve},
		{Name: "reserve authority", Account: a.ReserveAuthority},
		{Name: "pool", Account: a.Pool},
		{Name: "pool primary token account", Account: a.PrimaryToken},
		{Name: "pool secondary token account", Account: a.SecondaryToken},
		{Name: "pool mint", Account: a.PoolMint},
		{Name: "primary mint", Account: a.PrimaryMint},
		{Name: "secondary mint", Account: a.SecondaryMint},
		{Name: "pool fee account", Account: a.PoolFeeAccount},
		{Name: "swap authority", Account: a.SwapAuthority},
		{Name: "rewards destination", Account: a.RewardsDestination},
	}
}

func (a *ChangeRewardsDestinationAccounts) references() []gate.Reference {
	if a == nil {
		return []gate.Reference{{Name: "accounts"}}
	}
	return []gate.Reference{
		{Name: "instance", Account: a.Instance},
		{Name: "underlying instance", Account: a.UnderlyingInstance},
		{Name: "new rewards destination", Account: a.NewRewardsDestination},
	}
}
