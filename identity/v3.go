package identity

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/binary"

	"golang.org/x/crypto/pbkdf2"
)

// Identity V3 payload: marker 0x01, then a 12-byte parameter header (PRF
// code, iteration count, salt length, each a big-endian uint32), then the
// salt, then the subkey.  The subkey is every byte after the salt — the
// format stores no separate subkey length, and decoding must derive
// whatever length remains rather than assume 32 bytes, so hashes written
// with a different subkey size still verify.

const (
	markerV3    = 0x01
	v3HeaderLen = 1 + 4 + 4 + 4 // 13

	// Verification floor: 128-bit salt and subkey, per the reference
	// platform.  Shorter fields verify as a mismatch.
	v3MinSaltLen   = 16
	v3MinSubkeyLen = 16
)

// encodeV3 hashes password into a fresh V3 payload with the given
// iteration count, using HMAC-SHA256.
func encodeV3(password []byte, iterations int) ([]byte, error) {
	salt, err := randomBytes(saltLen)
	if err != nil {
		return nil, err
	}
	subkey := pbkdf2.Key(password, salt, iterations, subkeyLen, sha256.New)

	payload := make([]byte, 0, v3HeaderLen+len(salt)+len(subkey))
	payload = append(payload, markerV3)
	payload = binary.BigEndian.AppendUint32(payload, uint32(PRFHMACSHA256))
	payload = binary.BigEndian.AppendUint32(payload, uint32(iterations))
	payload = binary.BigEndian.AppendUint32(payload, uint32(len(salt)))
	payload = append(payload, salt...)
	payload = append(payload, subkey...)
	return payload, nil
}

// v3Header holds the parameters and raw fields parsed from a V3 payload.
type v3Header struct {
	prf        PRF
	iterations uint32
	salt       []byte
	subkey     []byte
}

// parseV3 splits a V3 payload into its fields.  It checks structure only
// (header present, salt within bounds); policy checks such as minimum
// field sizes belong to verifyV3, so that [Info] can still describe
// payloads a verifier would reject.
func parseV3(payload []byte) (v3Header, bool) {
	if len(payload) < v3HeaderLen {
		return v3Header{}, false
	}
	prf := PRF(binary.BigEndian.Uint32(payload[1:5]))
	iterations := binary.BigEndian.Uint32(payload[5:9])
	sl := binary.BigEndian.Uint32(payload[9:13])
	if uint64(sl) > uint64(len(payload)-v3HeaderLen) {
		return v3Header{}, false
	}
	return v3Header{
		prf:        prf,
		iterations: iterations,
		salt:       payload[v3HeaderLen : v3HeaderLen+sl],
		subkey:     payload[v3HeaderLen+sl:],
	}, true
}

// verifyV3 reports whether password matches the V3 payload, and on a
// match yields the embedded iteration count so the caller can decide
// whether a rehash toward current parameters is warranted.
func verifyV3(payload, password []byte) (iterations int, ok bool) {
	hdr, ok := parseV3(payload)
	if !ok {
		return 0, false
	}
	if len(hdr.salt) < v3MinSaltLen || len(hdr.subkey) < v3MinSubkeyLen {
		return 0, false
	}
	if hdr.iterations < 1 {
		return 0, false
	}
	newHash, ok := hdr.prf.hashNew()
	if !ok {
		// Unknown PRF code: representable, but never verifiable.
		return 0, false
	}

	derived := pbkdf2.Key(password, hdr.salt, int(hdr.iterations), len(hdr.subkey), newHash)
	if subtle.ConstantTimeCompare(derived, hdr.subkey) != 1 {
		return 0, false
	}
	return int(hdr.iterations), true
}
