package gscf

import (
	"crypto/md5" //nolint:gosec // the GSCF validation scheme is defined over MD5
	"encoding/hex"
	"strconv"
)

// ValidationKey derives the per-call validation credential: the hex MD5
// digest of the session token, the sequence number in decimal and the API
// key. The credential is tied to the sequence value at the moment of
// computation; the server rejects a call whose sequence does not match its
// own counter for the session.
func ValidationKey(token string, sequence int64, apiKey string) string {
	sum := md5.Sum([]byte(token + strconv.FormatInt(sequence, 10) + apiKey)) //nolint:gosec
	return hex.EncodeToString(sum[:])
}
