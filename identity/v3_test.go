package identity_test

import (
	"crypto/sha256"
	"crypto/sha512"
	"encoding/base64"
	"encoding/binary"
	"hash"
	"testing"

	"golang.org/x/crypto/pbkdf2"

	"github.com/hasbyte1/go-aspnet-identity/identity"
)

// packV3 assembles a raw V3 payload from explicit fields and returns it
// base64-encoded.  It performs no validation, so tests can construct
// payloads the encoder would never emit.
func packV3(prf uint32, iterations uint32, salt, subkey []byte) string {
	payload := make([]byte, 0, 13+len(salt)+len(subkey))
	payload = append(payload, 0x01)
	payload = binary.BigEndian.AppendUint32(payload, prf)
	payload = binary.BigEndian.AppendUint32(payload, iterations)
	payload = binary.BigEndian.AppendUint32(payload, uint32(len(salt)))
	payload = append(payload, salt...)
	payload = append(payload, subkey...)
	return base64.StdEncoding.EncodeToString(payload)
}

// deriveV3 builds a payload whose subkey genuinely matches password, with
// full control over PRF, iteration count and field sizes.
func deriveV3(tb testing.TB, prf uint32, h func() hash.Hash, iterations int, salt []byte, subkeyLen int, password []byte) string {
	tb.Helper()
	subkey := pbkdf2.Key(password, salt, iterations, subkeyLen, h)
	return packV3(prf, uint32(iterations), salt, subkey)
}

func seqBytes(n int) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = byte(i)
	}
	return b
}

// ──────────────────────────────────────────────────────────────────────────────
// Self-describing decode
// ──────────────────────────────────────────────────────────────────────────────

// The decoder must honour the payload's own field sizes rather than
// assume the 16/32-byte values the encoder emits.
func TestVerifyV3_SelfDescribingLengths(t *testing.T) {
	h := newTestHasher(t, identity.ModeIdentityV3, testIterations)
	password := []byte("password")

	cases := []struct {
		name      string
		saltLen   int
		subkeyLen int
	}{
		{"32-byte salt", 32, 32},
		{"64-byte subkey", 16, 64},
		{"minimum fields", 16, 16},
		{"both oversized", 48, 48},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			encoded := deriveV3(t, 1, sha256.New, testIterations, seqBytes(tc.saltLen), tc.subkeyLen, password)
			res, err := h.Verify(encoded, password)
			if err != nil {
				t.Fatalf("Verify: %v", err)
			}
			if res != identity.Success {
				t.Errorf("Verify = %v, want Success", res)
			}
		})
	}
}

func TestVerifyV3_HMACSHA512Payload(t *testing.T) {
	h := newTestHasher(t, identity.ModeIdentityV3, testIterations)
	password := []byte("password")

	encoded := deriveV3(t, 2, sha512.New, testIterations, seqBytes(16), 64, password)
	res, err := h.Verify(encoded, password)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if res != identity.Success {
		t.Errorf("sha512 payload: Verify = %v, want Success", res)
	}
	if res, _ := h.Verify(encoded, []byte("wrong")); res != identity.Failed {
		t.Errorf("sha512 payload, wrong password: %v, want Failed", res)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Rejected payloads
// ──────────────────────────────────────────────────────────────────────────────

func TestVerifyV3_RejectedPayloads(t *testing.T) {
	h := newTestHasher(t, identity.ModeIdentityV3, testIterations)
	password := []byte("password")

	cases := []struct {
		name    string
		encoded string
	}{
		{
			// Correctly derived, but the 8-byte salt is below the floor.
			"short salt",
			deriveV3(t, 1, sha256.New, testIterations, seqBytes(8), 32, password),
		},
		{
			// Correctly derived, but the 8-byte subkey is below the floor.
			"short subkey",
			deriveV3(t, 1, sha256.New, testIterations, seqBytes(16), 8, password),
		},
		{
			// PRF code 7 is not a recognised algorithm.
			"unknown prf",
			packV3(7, testIterations, seqBytes(16), seqBytes(32)),
		},
		{
			// A zero iteration count is never valid PBKDF2 input.
			"zero iterations",
			packV3(1, 0, seqBytes(16), pbkdf2.Key(password, seqBytes(16), 1, 32, sha256.New)),
		},
		{
			// No bytes remain after the salt for a subkey.
			"empty subkey",
			packV3(1, testIterations, seqBytes(16), nil),
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res, err := h.Verify(tc.encoded, password)
			if err != nil {
				t.Fatalf("Verify: %v", err)
			}
			if res != identity.Failed {
				t.Errorf("Verify = %v, want Failed", res)
			}
		})
	}
}

func TestVerifyV3_SaltLengthFieldCorruption(t *testing.T) {
	h := newTestHasher(t, identity.ModeIdentityV3, testIterations)
	hash, err := h.Make([]byte("password"))
	if err != nil {
		t.Fatalf("Make: %v", err)
	}
	payload := decodePayload(t, hash)

	// Claim a salt longer than the whole payload.
	overrun := make([]byte, len(payload))
	copy(overrun, payload)
	binary.BigEndian.PutUint32(overrun[9:13], uint32(len(payload)))
	res, err := h.Verify(base64.StdEncoding.EncodeToString(overrun), []byte("password"))
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if res != identity.Failed {
		t.Errorf("overrun salt length: Verify = %v, want Failed", res)
	}

	// Claim a shorter salt: the boundary between salt and subkey shifts,
	// so the derived subkey no longer matches the stored remainder.
	shifted := make([]byte, len(payload))
	copy(shifted, payload)
	binary.BigEndian.PutUint32(shifted[9:13], 16+8)
	res, err = h.Verify(base64.StdEncoding.EncodeToString(shifted), []byte("password"))
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if res != identity.Failed {
		t.Errorf("shifted salt boundary: Verify = %v, want Failed", res)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Iteration count round trip
// ──────────────────────────────────────────────────────────────────────────────

func TestV3_EmbeddedIterationCount(t *testing.T) {
	for _, iter := range []int{1, 137, 10000} {
		h := newTestHasher(t, identity.ModeIdentityV3, iter)
		hash, err := h.Make([]byte("password"))
		if err != nil {
			t.Fatalf("iterations %d: Make: %v", iter, err)
		}
		info, err := identity.Info(hash)
		if err != nil {
			t.Fatalf("iterations %d: Info: %v", iter, err)
		}
		if info.Iterations != iter {
			t.Errorf("embedded iterations = %d, want %d", info.Iterations, iter)
		}
	}
}
