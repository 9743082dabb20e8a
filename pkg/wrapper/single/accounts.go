package single

import (
	"github.com/stwrap/gatekeeper/pkg/gate"
	"github.com/stwrap/gatekeeper/pkg/solana"
)

// DepositAccounts are the accounts a deposit references: the depositor's
// underlying tokens move into the reserve and wrapped tokens are minted to
// the recipient.
type DepositAccounts struct {
	Instance           *solana.AccountInfo
	UnderlyingInstance *solana.AccountInfo
	From               *solana.AccountInfo
	Reserve            *solana.AccountInfo
	Recipient          *solana.AccountInfo
	WrappedMint        *solana.AccountInfo
	MintAuthority      *solana.AccountInfo
}

// WithdrawAccounts are the accounts a withdrawal references: wrapped tokens
// are burnt from From and underlying tokens leave the reserve for To.
type WithdrawAccounts struct {
	Instance           *solana.AccountInfo
	UnderlyingInstance *solana.AccountInfo
	From               *solana.AccountInfo
	Reserve            *solana.AccountInfo
	ReserveAuthority   *solana.AccountInfo
	WrappedMint        *solana.AccountInfo
	To                 *solana.AccountInfo
}

func (a *DepositAccounts) references() []gate.Reference {
	if a == nil {
		return []gate.Reference{{Name: "accounts"}}
	}
	return []gate.Reference{
		{Name: "instance", Account: a.Instance},
		{Name: "underlying instance", Account: a.UnderlyingInstance},
		{Name: "from", Account: a.From},
		{Name: "reserve", Account: a.Reserve},
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
		{Name: "reserve", Account: a.Reserve},
		{Name: "reserve authority", Account: a.ReserveAuthority},
		{Name: "wrapped mint", Account: a.WrappedMint},
		{Name: "to", Account: a.To},
	}
}
