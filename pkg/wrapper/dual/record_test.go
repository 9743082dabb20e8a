package dual

import (
	"crypto/ed25519"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stwrap/gatekeeper/pkg/gate"
	"github.com/stwrap/gatekeeper/pkg/testutil"
)

func TestRecordLen(t *testing.T) {
	r, err := Load(make([]byte, RecordLen))
	require.NoError(t, err)
	data, err := r.Marshal()
	require.NoError(t, err)
	assert.Len(t, data, RecordLen)
	assert.Equal(t, 166, len(data))
}

func TestLoad_DefaultRecord(t *testing.T) {
	r, err := Load(make([]byte, RecordLen))
	require.NoError(t, err)
	assert.EqualValues(t, make([]byte, ed25519.PublicKeySize), r.Pool)
	assert.EqualValues(t, 0, r.SwapAuthorityBump)
}

func TestRecord_RoundTrip(t *testing.T) {
	for i := 0; i < 100; i++ {
		expected := &Record{
			UnderlyingProgram:    testutil.NewRandomKey(t),
			UnderlyingInstance:   testutil.NewRandomKey(t),
			WrappedMint:          testutil.NewRandomKey(t),
			Pool:                 testutil.NewRandomKey(t),
			RewardsDestination:   testutil.NewRandomKey(t),
			SelfBump:             SelfBump(i),
			MintAuthorityBump:    MintAuthorityBump(255 - i),
			ReserveAuthorityBump: ReserveAuthorityBump(i * 2),
			PrimaryReserveBump:   PrimaryReserveBump(i + 3),
			SecondaryReserveBump: SecondaryReserveBump(i + 4),
			SwapAuthorityBump:    SwapAuthorityBump(i + 5),
		}

		buf := make([]byte, RecordLen)
		require.NoError(t, expected.Save(buf))

		actual, err := Load(buf)
		require.NoError(t, err)
		assert.Equal(t, expected, actual)
	}
}

func TestRecord_Layout(t *testing.T) {
	r := &Record{
		UnderlyingProgram:    testutil.FilledKey(1),
		UnderlyingInstance:   testutil.FilledKey(2),
		WrappedMint:          testutil.FilledKey(3),
		Pool:                 testutil.FilledKey(4),
		RewardsDestination:   testutil.FilledKey(5),
		SelfBump:             6,
		MintAuthorityBump:    7,
		ReserveAuthorityBump: 8,
		PrimaryReserveBump:   9,
		SecondaryReserveBump: 10,
		SwapAuthorityBump:    11,
	}
	data, err := r.Marshal()
	require.NoError(t, err)

	assert.EqualValues(t, testutil.FilledKey(1), data[0:32])
	assert.EqualValues(t, testutil.FilledKey(2), data[32:64])
	assert.EqualValues(t, testutil.FilledKey(3), data[64:96])
	assert.EqualValues(t, testutil.FilledKey(4), data[96:128])
	assert.EqualValues(t, testutil.FilledKey(5), data[128:160])
	assert.Equal(t, []byte{6, 7, 8, 9, 10, 11}, data[160:])
}

func TestLoad_SchemaMismatch(t *testing.T) {
	for _, size := range []int{0, 1, 99, RecordLen - 1, RecordLen + 1, 2 * RecordLen} {
		_, err := Load(make([]byte, size))
		assert.True(t, errors.Is(err, gate.ErrSchemaMismatch), "size %d", size)
	}
}

func TestSave_RequiresExactBuffer(t *testing.T) {
	r := &Record{Pool: testutil.FilledKey(1)}

	for _, size := range []int{0, RecordLen - 1, RecordLen + 1} {
		buf := make([]byte, size)
		err := r.Save(buf)
		assert.True(t, errors.Is(err, gate.ErrSchemaMismatch), "size %d", size)
		assert.Equal(t, make([]byte, size), buf)
	}
}

func TestMarshal_InvalidKeyLength(t *testing.T) {
	newRecord := func() *Record {
		return &Record{
			UnderlyingProgram:  testutil.FilledKey(1),
			UnderlyingInstance: testutil.FilledKey(2),
			WrappedMint:        testutil.FilledKey(3),
			Pool:               testutil.FilledKey(4),
			RewardsDestination: testutil.FilledKey(5),
		}
	}

	for _, tc := range []struct {
		name  string
		apply func(r *Record, key ed25519.PublicKey)
	}{
		{"underlying_program", func(r *Record, key ed25519.PublicKey) { r.UnderlyingProgram = key }},
		{"underlying_instance", func(r *Record, key ed25519.PublicKey) { r.UnderlyingInstance = key }},
		{"wrapped_mint", func(r *Record, key ed25519.PublicKey) { r.WrappedMint = key }},
		{"pool", func(r *Record, key ed25519.PublicKey) { r.Pool = key }},
		{"rewards_destination", func(r *Record, key ed25519.PublicKey) { r.RewardsDestination = key }},
	} {
		for _, size := range []int{0, 5, ed25519.PublicKeySize - 1, ed25519.PublicKeySize + 1, 40} {
			r := newRecord()
			tc.apply(r, make(ed25519.PublicKey, size))

			data, err := r.Marshal()
			assert.Nil(t, data)
			assert.True(t, errors.Is(err, gate.ErrSchemaMismatch), "%s with %d bytes", tc.name, size)
			assert.Contains(t, err.Error(), tc.name)

			buf := make([]byte, RecordLen)
			assert.True(t, errors.Is(r.Save(buf), gate.ErrSchemaMismatch))
			assert.Equal(t, make([]byte, RecordLen), buf)
		}
	}
}

func TestRecord_String(t *testing.T) {
	r := &Record{Pool: testutil.FilledKey(4), SwapAuthorityBump: 254}
	assert.Contains(t, r.String(), "swap_authority_bump=254")
}
