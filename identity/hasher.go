package identity

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"
)

// ──────────────────────────────────────────────────────────────────────────────
// Options
// ──────────────────────────────────────────────────────────────────────────────

// CompatibilityMode selects which payload format [Hasher.Make] produces.
// Verification always accepts both formats regardless of mode.
type CompatibilityMode string

const (
	// ModeIdentityV2 produces legacy V2 hashes: PBKDF2-HMAC-SHA1,
	// 1000 iterations, 16-byte salt, 32-byte subkey.  Only useful when
	// hashes must remain writable by an ASP.NET Identity v2 deployment.
	ModeIdentityV2 CompatibilityMode = "identity-v2"

	// ModeIdentityV3 produces V3 hashes: PBKDF2-HMAC-SHA256 with a
	// configurable iteration count (recommended).
	ModeIdentityV3 CompatibilityMode = "identity-v3"
)

const (
	// DefaultIterations is the V3 iteration count used by ASP.NET Core
	// Identity and by [DefaultOptions].  Increase it as hardware improves;
	// existing hashes keep verifying and report [SuccessRehashNeeded].
	DefaultIterations = 10000

	// saltLen and subkeyLen are the sizes both encoders emit.  V3 decoding
	// does not assume them; it trusts the payload's own header.
	saltLen   = 16
	subkeyLen = 32
)

// Options configures a [Hasher].
//
// Portability note: Mode and Iterations map 1-to-1 to the
// CompatibilityMode and IterationCount properties of ASP.NET Core's
// PasswordHasherOptions.
type Options struct {
	// Mode selects the payload format produced by Make.
	// Default: [ModeIdentityV3].
	Mode CompatibilityMode

	// Iterations is the PBKDF2 iteration count for V3 hashing.
	// Minimum: 1.  Default: [DefaultIterations] (10000).
	// Ignored in [ModeIdentityV2], whose iteration count is fixed at 1000.
	Iterations int
}

// DefaultOptions returns Options matching an out-of-the-box ASP.NET Core
// Identity deployment: V3 format at [DefaultIterations].
func DefaultOptions() Options {
	return Options{Mode: ModeIdentityV3, Iterations: DefaultIterations}
}

func validateOptions(opts Options) error {
	switch opts.Mode {
	case ModeIdentityV2:
		// Iterations is ignored; V2 parameters are fixed by the format.
	case ModeIdentityV3:
		if opts.Iterations < 1 {
			return fmt.Errorf("%w: v3 iteration count must be ≥ 1, got %d",
				ErrInvalidOption, opts.Iterations)
		}
	default:
		return fmt.Errorf("%w: unknown compatibility mode %q", ErrInvalidOption, opts.Mode)
	}
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// VerificationResult
// ──────────────────────────────────────────────────────────────────────────────

// VerificationResult is the three-valued outcome of [Hasher.Verify],
// mirroring ASP.NET's PasswordVerificationResult.
type VerificationResult int

const (
	// Failed means the password did not match, or the stored hash was
	// malformed.  The two cases are deliberately indistinguishable.
	Failed VerificationResult = iota

	// Success means the password matched and the stored hash meets the
	// hasher's current configuration.
	Success

	// SuccessRehashNeeded means the password matched but the stored hash
	// was produced with an older format or weaker parameters.  Callers
	// should re-hash the password and persist the result.
	SuccessRehashNeeded
)

// String implements [fmt.Stringer].
func (r VerificationResult) String() string {
	switch r {
	case Failed:
		return "Failed"
	case Success:
		return "Success"
	case SuccessRehashNeeded:
		return "SuccessRehashNeeded"
	default:
		return fmt.Sprintf("VerificationResult(%d)", int(r))
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Hasher
// ──────────────────────────────────────────────────────────────────────────────

// Hasher hashes and verifies passwords in ASP.NET Identity's V2 and V3
// payload formats.
//
// # Thread safety
//
// Hasher is immutable after construction and safe for concurrent use.
// Make and Verify share no mutable state; Make additionally consumes
// entropy from crypto/rand.
type Hasher struct {
	mode       CompatibilityMode
	iterations int
}

// New constructs a Hasher from opts.  Use [DefaultOptions] for the
// recommended defaults.  Returns [ErrInvalidOption] if the mode is
// unrecognised or a V3 iteration count is below 1.
func New(opts Options) (*Hasher, error) {
	if err := validateOptions(opts); err != nil {
		return nil, err
	}
	return &Hasher{mode: opts.Mode, iterations: opts.Iterations}, nil
}

// Mode returns the configured compatibility mode.
func (h *Hasher) Mode() CompatibilityMode { return h.mode }

// Iterations returns the configured V3 iteration count.
func (h *Hasher) Iterations() int { return h.iterations }

// Make hashes password and returns the base64-encoded payload in the
// configured format.  A fresh 16-byte random salt is generated for every
// call, so two calls with the same password produce different output.
//
// A nil password returns [ErrNilPassword]; an empty non-nil password is
// valid and hashes normally.
func (h *Hasher) Make(password []byte) (string, error) {
	if password == nil {
		return "", ErrNilPassword
	}
	var (
		payload []byte
		err     error
	)
	if h.mode == ModeIdentityV2 {
		payload, err = encodeV2(password)
	} else {
		payload, err = encodeV3(password, h.iterations)
	}
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(payload), nil
}

// Verify checks password against the base64-encoded encodedHash.
//
// The payload's leading marker byte selects the codec, so a single
// V3-mode Hasher verifies legacy V2 hashes too.  On a match, the result
// is [SuccessRehashNeeded] when the stored hash is weaker than the
// current configuration (a V2 hash under a V3-mode hasher, or a V3 hash
// whose embedded iteration count is below the configured one) and
// [Success] otherwise.
//
// Any structural problem — undecodable base64, empty payload, unknown
// marker, truncated or undersized fields — yields [Failed] with a nil
// error, exactly like a wrong password.  The only error condition is a
// nil password, which returns [ErrNilPassword].
func (h *Hasher) Verify(encodedHash string, password []byte) (VerificationResult, error) {
	if password == nil {
		return Failed, ErrNilPassword
	}
	payload, err := base64.StdEncoding.DecodeString(encodedHash)
	if err != nil || len(payload) == 0 {
		return Failed, nil
	}
	switch payload[0] {
	case markerV2:
		if !verifyV2(payload, password) {
			return Failed, nil
		}
		if h.mode == ModeIdentityV3 {
			// Legacy format under a V3 hasher: upgrade on next write.
			return SuccessRehashNeeded, nil
		}
		return Success, nil
	case markerV3:
		iter, ok := verifyV3(payload, password)
		if !ok {
			return Failed, nil
		}
		if h.mode == ModeIdentityV3 && iter < h.iterations {
			return SuccessRehashNeeded, nil
		}
		return Success, nil
	default:
		return Failed, nil
	}
}

// Check reports whether password matches encodedHash, collapsing the
// rehash signal.  It exists for callers written against a boolean
// Make/Check/NeedsRehash convention; new code should prefer [Hasher.Verify],
// which answers both questions with one key derivation.
func (h *Hasher) Check(password []byte, encodedHash string) (bool, error) {
	res, err := h.Verify(encodedHash, password)
	if err != nil {
		return false, err
	}
	return res != Failed, nil
}

// NeedsRehash reports whether encodedHash was produced with an older
// format or weaker parameters than the hasher's configuration.  It
// inspects format metadata only and performs no key derivation, so it is
// cheap enough to run against an entire credential store.
//
// Returns [ErrInvalidHash] when encodedHash cannot be parsed.
func (h *Hasher) NeedsRehash(encodedHash string) (bool, error) {
	info, err := Info(encodedHash)
	if err != nil {
		return false, err
	}
	if h.mode != ModeIdentityV3 {
		return false, nil
	}
	if info.Format == FormatV2 {
		return true, nil
	}
	return info.Iterations < h.iterations, nil
}

// randomBytes returns n cryptographically random bytes.
func randomBytes(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := io.ReadFull(rand.Reader, b); err != nil {
		return nil, fmt.Errorf("identity: failed to generate salt: %w", err)
	}
	return b, nil
}
