package solana

import (
	"bytes"
	"crypto/ed25519"
	"fmt"

	"github.com/mr-tron/base58"
)

// AccountInfo is a snapshot of an account referenced by an instruction, as
// supplied by the (untrusted) caller. Nothing in it is trusted until checked.
type AccountInfo struct {
	Address    ed25519.PublicKey
	Owner      ed25519.PublicKey
	Data       []byte
	Lamports   uint64
	Executable bool

	// Slot the snapshot was read at. Zero when it did not come from a Client.
	Slot uint64
}

// IsOwnedBy returns whether the account's owning program is program.
func (a *AccountInfo) IsOwnedBy(program ed25519.PublicKey) bool {
	return bytes.Equal(a.Owner, program)
}

func (a *AccountInfo) String() string {
	return fmt.Sprintf(
		"AccountInfo{address=%s,owner=%s,lamports=%d,data_len=%d,slot=%d}",
		base58.Encode(a.Address),
		base58.Encode(a.Owner),
		a.Lamports,
		len(a.Data),
		a.Slot,
	)
}
