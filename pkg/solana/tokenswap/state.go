package tokenswap

import (
	"crypto/ed25519"
	"fmt"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"

	"github.com/stwrap/gatekeeper/pkg/solana/binary"
)

const (
	// SwapStateSize is the size of a SwapV1 state.
	SwapStateSize = (1 + // is_initialized
		1 + // bump_seed
		32 + // token_program_id
		32 + // token_a
		32 + // token_b
		32 + // pool_mint
		32 + // token_a_mint
		32 + // token_b_mint
		32 + // pool_fee_account
		FeesSize + // fees
		1 + // curve_type
		32) // curve calculator

	FeesSize = 8 * 8

	// PoolAccountSize is the size of a pool account, which prefixes the swap
	// state with a single version byte.
	PoolAccountSize = 1 + SwapStateSize
)

var (
	ErrInvalidAccountData = errors.New("invalid swap pool account data")
	ErrUninitialized      = errors.New("swap pool is not initialized")
)

type CurveType uint8

const (
	CurveTypeConstantProduct CurveType = iota
	CurveTypeConstantPrice
	CurveTypeStable
	CurveTypeOffset
)

type Fees struct {
	TradeFeeNumerator           uint64
	TradeFeeDenominator         uint64
	OwnerTradeFeeNumerator      uint64
	OwnerTradeFeeDenominator    uint64
	OwnerWithdrawFeeNumerator   uint64
	OwnerWithdrawFeeDenominator uint64
	HostFeeNumerator            uint64
	HostFeeDenominator          uint64
}

// SwapState is the state of a token-swap pool. TokenA / TokenB are the
// pool's reserve token accounts.
type SwapState struct {
	IsInitialized  bool
	BumpSeed       uint8
	TokenProgramID ed25519.PublicKey
	TokenA         ed25519.PublicKey
	TokenB         ed25519.PublicKey
	PoolMint       ed25519.PublicKey
	TokenAMint     ed25519.PublicKey
	TokenBMint     ed25519.PublicKey
	PoolFeeAccount ed25519.PublicKey
	Fees           Fees
	CurveType      CurveType
	Calculator     [32]byte
}

// UnmarshalAccount decodes the swap state from full pool account data,
// skipping the leading version byte.
func (obj *SwapState) UnmarshalAccount(data []byte) error {
	if len(data) < 1 {
		return ErrInvalidAccountData
	}
	return obj.Unmarshal(data[1:])
}

// Unmarshal decodes a SwapV1 state. The state must be exactly SwapStateSize
// bytes and initialized.
func (obj *SwapState) Unmarshal(data []byte) error {
	if len(data) != SwapStateSize {
		return ErrInvalidAccountData
	}

	var decoded SwapState
	var offset int

	var isInitialized uint8
	binary.GetUint8(data, &isInitialized, &offset)
	switch isInitialized {
	case 0:
		return ErrUninitialized
	case 1:
		decoded.IsInitialized = true
	default:
		return ErrInvalidAccountData
	}

	binary.GetUint8(data, &decoded.BumpSeed, &offset)
	binary.GetKey32(data, &decoded.TokenProgramID, &offset)
	binary.GetKey32(data, &decoded.TokenA, &offset)
	binary.GetKey32(data, &decoded.TokenB, &offset)
	binary.GetKey32(data, &decoded.PoolMint, &offset)
	binary.GetKey32(data, &decoded.TokenAMint, &offset)
	binary.GetKey32(data, &decoded.TokenBMint, &offset)
	binary.GetKey32(data, &decoded.PoolFeeAccount, &offset)
	getFees(data, &decoded.Fees, &offset)

	var curveType uint8
	binary.GetUint8(data, &curveType, &offset)
	if CurveType(curveType) > CurveTypeOffset {
		return ErrInvalidAccountData
	}
	decoded.CurveType = CurveType(curveType)
	copy(decoded.Calculator[:], data[offset:])

	*obj = decoded
	return nil
}

// MarshalAccount encodes the state as full pool account data with the given
// version byte.
func (obj *SwapState) MarshalAccount(version uint8) []byte {
	b := make([]byte, PoolAccountSize)

	var offset int
	binary.PutUint8(b, version, &offset)
	if obj.IsInitialized {
		binary.PutUint8(b, 1, &offset)
	} else {
		binary.PutUint8(b, 0, &offset)
	}
	binary.PutUint8(b, obj.BumpSeed, &offset)
	binary.PutKey32(b, obj.TokenProgramID, &offset)
	binary.PutKey32(b, obj.TokenA, &offset)
	binary.PutKey32(b, obj.TokenB, &offset)
	binary.PutKey32(b, obj.PoolMint, &offset)
	binary.PutKey32(b, obj.TokenAMint, &offset)
	binary.PutKey32(b, obj.TokenBMint, &offset)
	binary.PutKey32(b, obj.PoolFeeAccount, &offset)
	putFees(b, &obj.Fees, &offset)
	binary.PutUint8(b, uint8(obj.CurveType), &offset)
	copy(b[offset:], obj.Calculator[:])

	return b
}

func (obj *SwapState) String() string {
	return fmt.Sprintf(
		"SwapState{token_a=%s,token_b=%s,pool_mint=%s,token_a_mint=%s,token_b_mint=%s,pool_fee_account=%s,curve_type=%d}",
		base58.Encode(obj.TokenA),
		base58.Encode(obj.TokenB),
		base58.Encode(obj.PoolMint),
		base58.Encode(obj.TokenAMint),
		base58.Encode(obj.TokenBMint),
		base58.Encode(obj.PoolFeeAccount),
		obj.CurveType,
	)
}

func getFees(src []byte, dst *Fees, offset *int) {
	binary.GetUint64(src, &dst.TradeFeeNumerator, offset)
	binary.GetUint64(src, &dst.TradeFeeDenominator, offset)
	binary.GetUint64(src, &dst.OwnerTradeFeeNumerator, offset)
	binary.GetUint64(src, &dst.OwnerTradeFeeDenominator, offset)
	binary.GetUint64(src, &dst.OwnerWithdrawFeeNumerator, offset)
	binary.GetUint64(src, &dst.OwnerWithdrawFeeDenominator, offset)
	binary.GetUint64(src, &dst.HostFeeNumerator, offset)
	binary.GetUint64(src, &dst.HostFeeDenominator, offset)
}

func putFees(dst []byte, v *Fees, offset *int) {
	binary.PutUint64(dst, v.TradeFeeNumerator, offset)
	binary.PutUint64(dst, v.TradeFeeDenominator, offset)
	binary.PutUint64(dst, v.OwnerTradeFeeNumerator, offset)
	binary.PutUint64(dst, v.OwnerTradeFeeDenominator, offset)
	binary.PutUint64(dst, v.OwnerWithdrawFeeNumerator, offset)
	binary.PutUint64(dst, v.OwnerWithdrawFeeDenominator, offset)
	binary.PutUint64(dst, v.HostFeeNumerator, offset)
	binary.PutUint64(dst, v.HostFeeDenominator, offset)
}
