package single

import (
	"github.com/stwrap/gatekeeper/pkg/gate"
)

var (
	MintAuthorityRole = gate.Role{
		Name: "the wrapped mint authority",
		Seed: []byte("mint_authority"),
	}
	ReserveAuthorityRole = gate.Role{
		Name: "the reserve authority",
		Seed: []byte("reserve_authority"),
	}
	ReserveAccountRole = gate.Role{
		Name: "the reserve account",
		Seed: []byte("reserve_account"),
	}
)

type MintAuthorityBump uint8

func (MintAuthorityBump) Role() gate.Role { return MintAuthorityRole }
func (b MintAuthorityBump) Seed() uint8   { return uint8(b) }

type ReserveAuthorityBump uint8

func (ReserveAuthorityBump) Role() gate.Role { return ReserveAuthorityRole }
func (b ReserveAuthorityBump) Seed() uint8   { return uint8(b) }

type ReserveAccountBump uint8

func (ReserveAccountBump) Role() gate.Role { return ReserveAccountRole }
func (b ReserveAccountBump) Seed() uint8   { return uint8(b) }
