// Package identity provides password hashing and verification compatible
// with ASP.NET Core Identity's two on-disk hash formats, modelled after
// Microsoft.AspNetCore.Identity's PasswordHasher<TUser>.
//
// # Why this package exists
//
// When a server backend moves from C# to Go, the user table full of
// ASP.NET-issued password hashes moves with it.  This package reproduces
// both historical payload layouts bit-for-bit, so existing credentials
// keep verifying and no password reset campaign is needed.  Hashes issued
// by this package are equally verifiable by the original C# platform.
//
// # Architecture
//
// The central type is [Hasher], a stateless facade configured once with a
// [CompatibilityMode] and (for V3) an iteration count.  [Hasher.Make]
// produces a fresh salted hash; [Hasher.Verify] checks a candidate
// password against a stored hash and reports whether the stored hash
// should be upgraded, via the three-valued [VerificationResult].
//
// Internally Verify dispatches on the payload's leading marker byte to
// one of two codecs; callers never choose a codec for verification, so
// V2 and V3 hashes can coexist in the same credential store.
//
// # Wire formats
//
// Both formats are binary payloads, base64-encoded once at the public
// boundary.  All multi-byte integers are big-endian.
//
// Identity V2 (fixed parameters, 49 bytes):
//
//	0x00 | salt (16 bytes) | subkey (32 bytes)
//
// derived with PBKDF2-HMAC-SHA1 at 1000 iterations.
//
// Identity V3 (self-describing, variable length):
//
//	0x01 | prf (uint32) | iterations (uint32) | salt length (uint32) | salt | subkey
//
// derived with PBKDF2 using the embedded [PRF] and iteration count.  The
// subkey occupies every byte after the salt, so a V3 payload carries all
// parameters needed to verify it — raising the configured iteration count
// never invalidates previously issued hashes.
//
// # Quick start
//
//	h, err := identity.New(identity.DefaultOptions()) // V3, 10000 iterations
//	if err != nil { log.Fatal(err) }
//
//	hash, _ := h.Make([]byte("my-secret-password"))
//	res, _  := h.Verify(hash, []byte("my-secret-password")) // identity.Success
//
// # Rehash-on-login
//
// [Hasher.Verify] returns [SuccessRehashNeeded] when the password matched
// but the stored hash is weaker than the hasher's configuration: either a
// legacy V2 hash verified by a V3-mode hasher, or a V3 hash whose embedded
// iteration count is below the configured one.  Re-hash and persist on the
// next successful login:
//
//	res, _ := h.Verify(stored, password)
//	if res == identity.SuccessRehashNeeded {
//	    newHash, _ := h.Make(password)
//	    persist(userID, newHash)
//	}
//
// # Security properties
//
// Subkey comparison is constant time (crypto/subtle), so verification
// latency does not reveal where a mismatch occurs.  Malformed, truncated,
// or unrecognised payloads surface as [Failed] — never as an error — so a
// caller's control flow cannot become an oracle that distinguishes a
// corrupt hash from a wrong password.  [Info] is the deliberate exception:
// it is a diagnostic tool for auditing and migration and does explain
// parse failures.
//
// # Portability
//
// [Hasher.Make] corresponds to C#'s PasswordHasher<TUser>.HashPassword and
// [Hasher.Verify] to VerifyHashedPassword; [VerificationResult] mirrors
// PasswordVerificationResult member for member.  [Hasher.Check] and
// [Hasher.NeedsRehash] offer the same operations as a boolean pair for
// codebases written against that calling convention.
package identity
