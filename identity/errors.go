package identity

import "errors"

// Sentinel errors returned by this package.
//
// Use [errors.Is] for comparisons:
//
//	_, err := identity.New(opts)
//	if errors.Is(err, identity.ErrInvalidOption) {
//	    // construction arguments are out of range
//	}
var (
	// ErrInvalidOption is returned by [New] when the supplied options are
	// invalid: an unrecognised compatibility mode, or a V3 iteration count
	// below 1.
	ErrInvalidOption = errors.New("identity: invalid option value")

	// ErrNilPassword is returned by [Hasher.Make] and [Hasher.Verify] when
	// the password argument is a nil slice.  An empty (non-nil) password is
	// valid input; only absence is rejected.
	ErrNilPassword = errors.New("identity: password must not be nil")

	// ErrInvalidHash is returned by [Info] and [Hasher.NeedsRehash] when a
	// hash string cannot be parsed: bad base64, an unknown format marker,
	// or a truncated payload.
	//
	// [Hasher.Verify] never returns this error — structurally invalid input
	// verifies as [Failed], indistinguishable from a wrong password.
	ErrInvalidHash = errors.New("identity: invalid or unrecognised hash")
)
