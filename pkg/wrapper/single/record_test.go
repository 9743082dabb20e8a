package single

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
	assert.Equal(t, 99, RecordLen)
}

func TestRecord_RoundTrip(t *testing.T) {
	for i := 0; i < 100; i++ {
		expected := &Record{
			WrappedMint:          testutil.NewRandomKey(t),
			ReserveAuthority:     testutil.NewRandomKey(t),
			UnderlyingInstance:   testutil.NewRandomKey(t),
			MintAuthorityBump:    MintAuthorityBump(i),
			ReserveAuthorityBump: ReserveAuthorityBump(255 - i),
			ReserveAccountBump:   ReserveAccountBump(i * 2),
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
		WrappedMint:          testutil.FilledKey(1),
		ReserveAuthority:     testutil.FilledKey(2),
		UnderlyingInstance:   testutil.FilledKey(3),
		MintAuthorityBump:    4,
		ReserveAuthorityBump: 5,
		ReserveAccountBump:   6,
	}
	data, err := r.Marshal()
	require.NoError(t, err)

	assert.EqualValues(t, testutil.FilledKey(1), data[0:32])
	assert.EqualValues(t, testutil.FilledKey(2), data[32:64])
	assert.EqualValues(t, testutil.FilledKey(3), data[64:96])
	assert.Equal(t, []byte{4, 5, 6}, data[96:])
}

func TestLoad_SchemaMismatch(t *testing.T) {
	for _, size := range []int{0, 1, RecordLen - 1, RecordLen + 1, 2 * RecordLen} {
		_, err := Load(make([]byte, size))
		assert.True(t, errors.Is(err, gate.ErrSchemaMismatch), "size %d", size)
	}
}

func TestSave_RequiresExactBuffer(t *testing.T) {
	r := &Record{WrappedMint: testutil.FilledKey(1)}

	for _, size := range []int{0, RecordLen - 1, RecordLen + 1} {
		buf := make([]byte, size)
		err := r.Save(buf)
		assert.True(t, errors.Is(err, gate.ErrSchemaMismatch), "size %d", size)
		assert.Equal(t, make([]byte, size), buf)
	}
}

func TestMarshal_InvalidKeyLength(t *testing.T) {
	for _, size := range []int{0, 5, ed25519.PublicKeySize - 1, ed25519.PublicKeySize + 1, 40} {
		for _, r := range []*Record{
			{WrappedMint: make(ed25519.PublicKey, size), ReserveAuthority: testutil.FilledKey(2), UnderlyingInstance: testutil.FilledKey(3)},
			{WrappedMint: testutil.FilledKey(1), ReserveAuthority: make(ed25519.PublicKey, size), UnderlyingInstance: testutil.FilledKey(3)},
			{WrappedMint: testutil.FilledKey(1), ReserveAuthority: testutil.FilledKey(2), UnderlyingInstance: make(ed25519.PublicKey, size)},
		} {
			data, err := r.Marshal()
			assert.Nil(t, data)
			assert.True(t, errors.Is(err, gate.ErrSchemaMismatch), "size %d", size)

			buf := make([]byte, RecordLen)
			assert.True(t, errors.Is(r.Save(buf), gate.ErrSchemaMismatch))
			assert.Equal(t, make([]byte, RecordLen), buf)
		}
	}
}
