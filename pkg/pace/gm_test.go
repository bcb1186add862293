package pace

import (
	"math/big"
	"testing"

	"github.com/gregLibert/emrtd/pkg/dh"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapDH(t *testing.T) {
	static, err := dh.NewParameters(big.NewInt(23), big.NewInt(4), big.NewInt(11))
	require.NoError(t, err)
	pcd, err := dh.NewPrivateKey(static, []byte{3})
	require.NoError(t, err)
	picc, err := dh.NewPrivateKey(static, []byte{7})
	require.NoError(t, err)

	nonce := []byte{0x05}

	readerSide, err := MapDH(static, nonce, picc.PublicKey(), pcd)
	require.NoError(t, err)

	secret, ok := readerSide.SharedSecret()
	require.True(t, ok)
	assert.Equal(t, []byte{6}, secret)

	// 4^5 * 6 mod 23
	want, err := dh.NewParameters(big.NewInt(23), big.NewInt(3), big.NewInt(11))
	require.NoError(t, err)
	assert.True(t, want.Equal(readerSide.EphemeralParameters()))
	assert.Same(t, static, readerSide.StaticParameters())
	assert.True(t, readerSide.PCDMappingKeyPair().Equal(KeyPair{Private: pcd, Public: pcd.PublicKey()}))

	chipSide, err := MapDH(static, nonce, pcd.PublicKey(), picc)
	require.NoError(t, err)
	chipSecret, _ := chipSide.SharedSecret()
	assert.Equal(t, secret, chipSecret)
	assert.True(t, readerSide.EphemeralParameters().Equal(chipSide.EphemeralParameters()))
	assert.False(t, readerSide.Equal(chipSide))
}

func TestMapDH_Errors(t *testing.T) {
	static, err := dh.NewParameters(big.NewInt(23), big.NewInt(4), big.NewInt(11))
	require.NoError(t, err)
	other, err := dh.NewParameters(big.NewInt(23), big.NewInt(5), nil)
	require.NoError(t, err)

	pcd, _ := dh.NewPrivateKey(static, []byte{3})
	picc, _ := dh.NewPrivateKey(static, []byte{7})
	stranger, _ := dh.NewPrivateKey(other, []byte{3})

	t.Run("empty nonce", func(t *testing.T) {
		_, err := MapDH(static, nil, picc.PublicKey(), pcd)
		assert.ErrorIs(t, err, ErrMapping)
	})

	t.Run("missing parameters", func(t *testing.T) {
		_, err := MapDH(nil, []byte{1}, picc.PublicKey(), pcd)
		assert.ErrorIs(t, err, ErrMapping)
	})

	t.Run("reader key on other parameters", func(t *testing.T) {
		_, err := MapDH(static, []byte{5}, picc.PublicKey(), stranger)
		assert.ErrorIs(t, err, ErrMapping)
	})

	t.Run("chip key on other parameters", func(t *testing.T) {
		_, err := MapDH(static, []byte{5}, stranger.PublicKey(), pcd)
		assert.ErrorIs(t, err, ErrMapping)
		assert.ErrorIs(t, err, dh.ErrInvalidPublicKey)
	})

	t.Run("degenerate generator", func(t *testing.T) {
		// 4^1 * 6 = 1 mod 23
		_, err := MapDH(static, []byte{1}, picc.PublicKey(), pcd)
		assert.ErrorIs(t, err, ErrMapping)
		assert.ErrorIs(t, err, dh.ErrInvalidParameters)
	})
}
