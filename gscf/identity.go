package gscf

import (
	"crypto/md5" //nolint:gosec // the GSCF device identity scheme is defined over MD5
	"crypto/rand"
	"encoding/binary"
	"encoding/hex"
	"io"
	"net"
	"strconv"
)

// deviceIDBaseString is part of the device identity digest input. The value
// is fixed by the GSCF API contract and must not change, or the server will
// no longer recognize previously registered devices.
const deviceIDBaseString = "GSCF database Python API"

// IdentityProvider returns a stable string identifying the host the client
// runs on. It feeds the device identity digest, so the returned value must
// not change between calls on the same host.
//
// NodeID is the default provider; tests and embedders can substitute a
// deterministic one via the client configuration.
type IdentityProvider func() string

// NodeID returns the host identity used for device registration: the 48-bit
// hardware address of the first non-loopback network interface, formatted as
// its decimal integer value.
//
// When no usable interface exists it falls back to a random 48-bit value
// with the multicast bit set, which marks the identity as not derived from
// real hardware. The fallback is random per call, so hosts without a
// hardware address get a fresh device identity per client.
func NodeID() string {
	ifaces, err := net.Interfaces()
	if err == nil {
		for _, iface := range ifaces {
			if iface.Flags&net.FlagLoopback != 0 || len(iface.HardwareAddr) < 6 {
				continue
			}
			return strconv.FormatUint(hardwareAddrValue(iface.HardwareAddr), 10)
		}
	}

	return strconv.FormatUint(randomNodeID(), 10)
}

// DeviceID derives the device identifier sent on every request:
// the hex MD5 digest of the host identity, the fixed base string and the
// username. Deterministic for a given (hostID, username) pair; no input
// validation is performed.
func DeviceID(hostID, username string) string {
	sum := md5.Sum([]byte(hostID + deviceIDBaseString + username)) //nolint:gosec
	return hex.EncodeToString(sum[:])
}

// hardwareAddrValue packs the first 6 bytes of a hardware address into one
// unsigned integer, big-endian.
func hardwareAddrValue(addr net.HardwareAddr) uint64 {
	var id uint64
	for _, b := range addr[:6] {
		id = id<<8 | uint64(b)
	}

	return id
}

// randomNodeID returns a random 48-bit value with the multicast bit set.
func randomNodeID() uint64 {
	var buf [8]byte
	_, _ = io.ReadFull(rand.Reader, buf[2:])
	return binary.BigEndian.Uint64(buf[:]) | 1<<40
}
