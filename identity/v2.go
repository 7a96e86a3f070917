package identity

import (
	"crypto/sha1"
	"crypto/subtle"

	"golang.org/x/crypto/pbkdf2"
)

// Identity V2 payload: marker 0x00, 16-byte salt, 32-byte subkey derived
// with PBKDF2-HMAC-SHA1 at 1000 iterations.  Every parameter is fixed by
// the format, so the payload length is always exactly 49 bytes.

const (
	markerV2 = 0x00

	v2Iterations = 1000
	v2PayloadLen = 1 + saltLen + subkeyLen // 49
)

// encodeV2 hashes password into a fresh V2 payload.
func encodeV2(password []byte) ([]byte, error) {
	salt, err := randomBytes(saltLen)
	if err != nil {
		return nil, err
	}
	subkey := pbkdf2.Key(password, salt, v2Iterations, subkeyLen, sha1.New)

	payload := make([]byte, 0, v2PayloadLen)
	payload = append(payload, markerV2)
	payload = append(payload, salt...)
	payload = append(payload, subkey...)
	return payload, nil
}

// verifyV2 reports whether password matches the V2 payload.  Anything
// other than an exactly 49-byte payload is a mismatch.
func verifyV2(payload, password []byte) bool {
	if len(payload) != v2PayloadLen {
		return false
	}
	salt := payload[1 : 1+saltLen]
	expected := payload[1+saltLen:]

	derived := pbkdf2.Key(password, salt, v2Iterations, subkeyLen, sha1.New)
	return subtle.ConstantTimeCompare(derived, expected) == 1
}
