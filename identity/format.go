package identity

import (
	"encoding/base64"
	"fmt"
)

// FormatVersion identifies which payload layout a stored hash uses.
// The numeric value is the payload's marker byte.
type FormatVersion uint8

const (
	// FormatV2 is the legacy fixed-parameter layout (marker 0x00).
	FormatV2 FormatVersion = markerV2

	// FormatV3 is the self-describing layout (marker 0x01).
	FormatV3 FormatVersion = markerV3
)

// String implements [fmt.Stringer].
func (f FormatVersion) String() string {
	switch f {
	case FormatV2:
		return "identity-v2"
	case FormatV3:
		return "identity-v3"
	default:
		return fmt.Sprintf("FormatVersion(0x%02x)", uint8(f))
	}
}

// DetectFormat inspects a base64-encoded hash and returns the
// [FormatVersion] indicated by its marker byte.  It looks at the marker
// only and does not validate the rest of the payload.
//
// The second return value is false when the hash does not decode or the
// marker is not a known format.
func DetectFormat(encodedHash string) (FormatVersion, bool) {
	payload, err := base64.StdEncoding.DecodeString(encodedHash)
	if err != nil || len(payload) == 0 {
		return 0, false
	}
	switch payload[0] {
	case markerV2:
		return FormatV2, true
	case markerV3:
		return FormatV3, true
	default:
		return 0, false
	}
}

// HashInfo carries metadata parsed from an encoded hash, for auditing and
// migration tooling.
type HashInfo struct {
	// Format is the payload layout that produced the hash.
	Format FormatVersion

	// PRF is the HMAC variant used for key derivation.  For V3 payloads
	// this may be a code this package cannot verify; compare against the
	// named [PRF] constants before trusting it.
	PRF PRF

	// Iterations is the PBKDF2 iteration count.
	Iterations int

	// SaltLen and SubkeyLen are the stored field sizes in bytes.
	SaltLen   int
	SubkeyLen int
}

// Info extracts metadata from a base64-encoded hash without verifying it.
//
// Unlike [Hasher.Verify], Info is a diagnostic tool: structurally invalid
// input returns [ErrInvalidHash] with a description of what is wrong.
// A V3 payload with an unknown PRF code or undersized fields still parses
// — it is well-formed, merely unverifiable — and its actual values are
// reported as stored.
func Info(encodedHash string) (HashInfo, error) {
	payload, err := base64.StdEncoding.DecodeString(encodedHash)
	if err != nil {
		return HashInfo{}, fmt.Errorf("%w: bad base64: %v", ErrInvalidHash, err)
	}
	if len(payload) == 0 {
		return HashInfo{}, fmt.Errorf("%w: empty payload", ErrInvalidHash)
	}
	switch payload[0] {
	case markerV2:
		if len(payload) != v2PayloadLen {
			return HashInfo{}, fmt.Errorf("%w: v2 payload is %d bytes, want %d",
				ErrInvalidHash, len(payload), v2PayloadLen)
		}
		return HashInfo{
			Format:     FormatV2,
			PRF:        PRFHMACSHA1,
			Iterations: v2Iterations,
			SaltLen:    saltLen,
			SubkeyLen:  subkeyLen,
		}, nil
	case markerV3:
		hdr, ok := parseV3(payload)
		if !ok {
			return HashInfo{}, fmt.Errorf("%w: truncated v3 payload (%d bytes)",
				ErrInvalidHash, len(payload))
		}
		return HashInfo{
			Format:     FormatV3,
			PRF:        hdr.prf,
			Iterations: int(hdr.iterations),
			SaltLen:    len(hdr.salt),
			SubkeyLen:  len(hdr.subkey),
		}, nil
	default:
		return HashInfo{}, fmt.Errorf("%w: unknown format marker 0x%02x",
			ErrInvalidHash, payload[0])
	}
}
