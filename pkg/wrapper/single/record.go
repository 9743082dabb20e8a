package single

import (
	"crypto/ed25519"
	"fmt"

	"github.com/mr-tron/base58"
	"github.com/near/borsh-go"
	"github.com/pkg/errors"

	"github.com/stwrap/gatekeeper/pkg/gate"
)

// RecordLen is the exact serialized size of a Record.
const RecordLen = (32 + // wrapped_mint
	32 + // reserve_authority
	32 + // underlying_instance
	1 + // mint_authority_bump
	1 + // reserve_authority_bump
	1) // reserve_account_bump

// Record is the persisted configuration of a single-asset wrapper instance.
type Record struct {
	// The mint of the wrapped token this instance issues.
	WrappedMint ed25519.PublicKey
	// Owner of the reserve account.
	ReserveAuthority ed25519.PublicKey
	// The underlying protocol instance whose token is wrapped.
	UnderlyingInstance ed25519.PublicKey

	MintAuthorityBump    MintAuthorityBump
	ReserveAuthorityBump ReserveAuthorityBump
	ReserveAccountBump   ReserveAccountBump
}

type recordLayout struct {
	WrappedMint          [32]byte
	ReserveAuthority     [32]byte
	UnderlyingInstance   [32]byte
	MintAuthorityBump    uint8
	ReserveAuthorityBump uint8
	ReserveAccountBump   uint8
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
		WrappedMint:          keyFromArray(layout.WrappedMint),
		ReserveAuthority:     keyFromArray(layout.ReserveAuthority),
		UnderlyingInstance:   keyFromArray(layout.UnderlyingInstance),
		MintAuthorityBump:    MintAuthorityBump(layout.MintAuthorityBump),
		ReserveAuthorityBump: ReserveAuthorityBump(layout.ReserveAuthorityBump),
		ReserveAccountBump:   ReserveAccountBump(layout.ReserveAccountBump),
	}, nil
}

// Marshal encodes the record into a new RecordLen byte slice. Every key must
// be exactly ed25519.PublicKeySize bytes.
func (r *Record) Marshal() ([]byte, error) {
	layout := recordLayout{
		MintAuthorityBump:    uint8(r.MintAuthorityBump),
		ReserveAuthorityBump: uint8(r.ReserveAuthorityBump),
		ReserveAccountBump:   uint8(r.ReserveAccountBump),
	}
	for _, field := range []struct {
		name string
		dst  *[32]byte
		key  ed25519.PublicKey
	}{
		{"wrapped_mint", &layout.WrappedMint, r.WrappedMint},
		{"reserve_authority", &layout.ReserveAuthority, r.ReserveAuthority},
		{"underlying_instance", &layout.UnderlyingInstance, r.UnderlyingInstance},
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
// RecordLen bytes; the backing account is never resized.
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
		"Record{wrapped_mint=%s,reserve_authority=%s,underlying_instance=%s,mint_authority_bump=%d,reserve_authority_bump=%d,reserve_account_bump=%d}",
		base58.Encode(r.WrappedMint),
		base58.Encode(r.ReserveAuthority),
		base58.Encode(r.UnderlyingInstance),
		r.MintAuthorityBump,
		r.ReserveAuthorityBump,
		r.ReserveAccountBump,
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
