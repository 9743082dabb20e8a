package dual

import (
	"crypto/ed25519"
	"fmt"

	"github.com/mr-tron/base58"
	"github.com/near/borsh-go"
	"github.com/pkg/errors"

	"github.com/stwrap/gatekeeper/pkg/gate"
)

// RecordLen is the exact serialized size of a Record. Instance accounts are
// allocated with this size and never resized.
const RecordLen = (32 + // underlying_program
	32 + // underlying_instance
	32 + // wrapped_mint
	32 + // pool
	32 + // rewards_destination
	1 + // self_bump
	1 + // mint_authority_bump
	1 + // reserve_authority_bump
	1 + // primary_reserve_bump
	1 + // secondary_reserve_bump
	1) // swap_authority_bump

// Record is the persisted configuration of a dual-asset wrapper instance.
type Record struct {
	// The program that owns UnderlyingInstance.
	UnderlyingProgram ed25519.PublicKey
	// The underlying protocol instance whose token is wrapped.
	UnderlyingInstance ed25519.PublicKey
	// The mint of the wrapped token this instance issues.
	WrappedMint ed25519.PublicKey
	// The token-swap pool used to convert rewards into the secondary asset.
	Pool ed25519.PublicKey
	// Where converted rewards are sent.
	RewardsDestination ed25519.PublicKey

	SelfBump             SelfBump
	MintAuthorityBump    MintAuthorityBump
	ReserveAuthorityBump ReserveAuthorityBump
	PrimaryReserveBump   PrimaryReserveBump
	SecondaryReserveBump SecondaryReserveBump
	SwapAuthorityBump    SwapAuthorityBump
}

type recordLayout struct {
	UnderlyingProgram    [32]byte
	UnderlyingInstance   [32]byte
	WrappedMint          [32]byte
	Pool                 [32]byte
	RewardsDestination   [32]byte
	SelfBump             uint8
	MintAuthorityBump    uint8
	ReserveAuthorityBump uint8
	PrimaryReserveBump   uint8
	SecondaryReserveBump uint8
	SwapAuthorityBump    uint8
}

// Load decodes a Record from account data, which must be exactly RecordLen
// bytes.
func Load(data []byte) (*Record, error) {
	if len(data) != RecordLen {
		return nil, errors.Wrapf(gate.ErrSchemaMismatch, "expected %d bytes, got %d", RecordLen, len(data))
	}

	var layout recordLayout
	if err := borsh.Deserialize(&layout, data); err != nil {
		return nil, errors.Wrap(gate.ErrSchemaMismatch, err.Error())
	}

	return &Record{
		UnderlyingProgram:    keyFromArray(layout.UnderlyingProgram),
		UnderlyingInstance:   keyFromArray(layout.UnderlyingInstance),
		WrappedMint:          keyFromArray(layout.WrappedMint),
		Pool:                 keyFromArray(layout.Pool),
		RewardsDestination:   keyFromArray(layout.RewardsDestination),
		SelfBump:             SelfBump(layout.SelfBump),
		MintAuthorityBump:    MintAuthorityBump(layout.MintAuthorityBump),
		ReserveAuthorityBump: ReserveAuthorityBump(layout.ReserveAuthorityBump),
		PrimaryReserveBump:   PrimaryReserveBump(layout.PrimaryReserveBump),
		SecondaryReserveBump: SecondaryReserveBump(layout.SecondaryReserveBump),
		SwapAuthorityBump:    SwapAuthorityBump(layout.SwapAuthorityBump),
	}, nil
}

// Marshal encodes the record into a new RecordLen byte slice. Every key must
// be exactly ed25519.PublicKeySize bytes.
func (r *Record) Marshal() ([]byte, error) {
	layout := recordLayout{
		SelfBump:             uint8(r.SelfBump),
		MintAuthorityBump:    uint8(r.MintAuthorityBump),
		ReserveAuthorityBump: uint8(r.ReserveAuthorityBump),
		PrimaryReserveBump:   uint8(r.PrimaryReserveBump),
		SecondaryReserveBump: uint8(r.SecondaryReserveBump),
		SwapAuthorityBump:    uint8(r.SwapAuthorityBump),
	}
	for _, field := range []struct {
		name string
		dst  *[32]byte
		key  ed25519.PublicKey
	}{
		{"underlying_program", &layout.UnderlyingProgram, r.UnderlyingProgram},
		{"underlying_instance", &layout.UnderlyingInstance, r.UnderlyingInstance},
		{"wrapped_mint", &layout.WrappedMint, r.WrappedMint},
		{"pool", &layout.Pool, r.Pool},
		{"rewards_destination", &layout.RewardsDestination, r.RewardsDestination},
	} {
		if err := keyToArray(field.dst, field.name, field.key); err != nil {
			return nil, err
		}
	}

	data, err := borsh.Serialize(layout)
	if err != nil {
		return nil, errors.Wrap(err, "failed to serialize record")
	}
	if len(data) != RecordLen {
		return nil, errors.Wrapf(gate.ErrSchemaMismatch, "serialized %d bytes, expected %d", len(data), RecordLen)
	}
	return data, nil
}

// Save encodes the record into dst in place. dst must already be exactly
// RecordLen bytes.
func (r *Record) Save(dst []byte) error {
	if len(dst) != RecordLen {
		return errors.Wrapf(gate.ErrSchemaMismatch, "destination is %d bytes, expected %d", len(dst), RecordLen)
	}

	data, err := r.Marshal()
	if err != nil {
		return err
	}
	copy(dst, data)
	return nil
}

func (r *Record) String() string {
	return fmt.Sprintf(
		"Record{underlying_program=%s,underlying_instance=%s,wrapped_mint=%s,pool=%s,rewards_destination=%s,self_bump=%d,mint_authority_bump=%d,reserve_authority_bump=%d,primary_reserve_bump=%d,secondary_reserve_bump=%d,swap_authority_bump=%d}",
		base58.Encode(r.UnderlyingProgram),
		base58.Encode(r.UnderlyingInstance),
		base58.Encode(r.WrappedMint),
		base58.Encode(r.Pool),
		base58.Encode(r.RewardsDestination),
		r.SelfBump,
		r.MintAuthorityBump,
		r.ReserveAuthorityBump,
		r.PrimaryReserveBump,
		r.SecondaryReserveBump,
		r.SwapAuthorityBump,
	)
}

func keyFromArray(v [32]byte) ed25519.PublicKey {
	key := make(ed25519.PublicKey, ed25519.PublicKeySize)
	copy(key, v[:])
	return key
}

func keyToArray(dst *[32]byte, name string, key ed25519.PublicKey) error {
	if len(key) != ed25519.PublicKeySize {
		return errors.Wrapf(gate.ErrSchemaMismatch, "%s is %d bytes, expected %d", name, len(key), ed25519.PublicKeySize)
	}
	copy(dst[:], key)
	return nil
}
