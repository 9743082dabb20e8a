package dual

import (
	"github.com/stwrap/gatekeeper/pkg/gate"
)

var (
	// SelfRole is derived from the underlying instance alone: there is one
	// wrapper instance per underlying instance.
	SelfRole = gate.Role{
		Name: "the wrapper instance",
	}
	MintAuthorityRole = gate.Role{
		Name: "the wrapped mint authority",
		Seed: []byte("mint_authority"),
	}
	ReserveAuthorityRole = gate.Role{
		Name: "the reserve authority",
		Seed: []byte("reserve_authority"),
	}
	PrimaryReserveRole = gate.Role{
		Name: "the primary asset reserve account",
		Seed: []byte("primary_reserve_account"),
	}
	SecondaryReserveRole = gate.Role{
		Name: "the secondary asset reserve account",
		Seed: []byte("secondary_reserve_account"),
	}
	// SwapAuthorityRole is derived from the pool address under the
	// token-swap program.
	SwapAuthorityRole = gate.Role{
		Name: "the swap pool authority",
	}
)

type SelfBump uint8

func (SelfBump) Role() gate.Role { return SelfRole }
func (b SelfBump) Seed() uint8   { return uint8(b) }

type MintAuthorityBump uint8

func (MintAuthorityBump) Role() gate.Role { return MintAuthorityRole }
func (b MintAuthorityBump) Seed() uint8   { return uint8(b) }

type ReserveAuthorityBump uint8

func (ReserveAuthorityBump) Role() gate.Role { return ReserveAuthorityRole }
func (b ReserveAuthorityBump) Seed() uint8   { return uint8(b) }

type PrimaryReserveBump uint8

func (PrimaryReserveBump) Role() gate.Role { return PrimaryReserveRole }
func (b PrimaryReserveBump) Seed() uint8   { return uint8(b) }

type SecondaryReserveBump uint8

func (SecondaryReserveBump) Role() gate.Role { return SecondaryReserveRole }
func (b SecondaryReserveBump) Seed() uint8   { return uint8(b) }

type SwapAuthorityBump uint8

func (SwapAuthorityBump) Role() gate.Role { return SwapAuthorityRole }
func (b SwapAuthorityBump) Seed() uint8   { return uint8(b) }
