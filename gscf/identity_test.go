package gscf

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDeviceID(t *testing.T) {
	require := require.New(t)

	t.Run("Known Digest", func(t *testing.T) {
		// md5("42" + "GSCF database Python API" + "alice")
		require.Equal("8d5e14ae97aa9e9a38eb33bb3d05afd5", DeviceID("42", "alice"))
		// md5("42" + "GSCF database Python API" + "bob")
		require.Equal("80f20b42f197f0dd3549fa96573d7ca6", DeviceID("42", "bob"))
	})

	t.Run("Deterministic", func(t *testing.T) {
		require.Equal(DeviceID("42", "alice"), DeviceID("42", "alice"))
	})

	t.Run("Distinct Usernames", func(t *testing.T) {
		require.NotEqual(DeviceID("42", "alice"), DeviceID("42", "bob"))
	})

	t.Run("Distinct Hosts", func(t *testing.T) {
		require.NotEqual(DeviceID("42", "alice"), DeviceID("43", "alice"))
	})

	t.Run("Empty Inputs Accepted", func(t *testing.T) {
		require.Len(DeviceID("", ""), 32)
	})
}

func TestNodeID(t *testing.T) {
	require := require.New(t)

	id := NodeID()
	require.NotEmpty(id)

	value, err := strconv.ParseUint(id, 10, 64)
	require.NoError(err)
	require.Less(value, uint64(1)<<48)
}

func TestHardwareAddrValue(t *testing.T) {
	require := require.New(t)

	addr := []byte{0x00, 0x16, 0x3e, 0x2a, 0x7b, 0x01}
	require.Equal(uint64(0x00163e2a7b01), hardwareAddrValue(addr))
}

func TestRandomNodeID(t *testing.T) {
	require := require.New(t)

	id := randomNodeID()
	require.NotZero(id & 1 << 40)
	require.Less(id, uint64(1)<<48)
}
