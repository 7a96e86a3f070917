package identity

import (
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"fmt"
	"hash"
)

// PRF identifies the pseudo-random function (the HMAC hash variant) used
// inside PBKDF2.  V3 payloads store the PRF as a big-endian uint32, using
// the same numeric codes as ASP.NET Core's KeyDerivationPrf enum, so
// hashes remain decodable across algorithm upgrades.
//
// Encoding always uses [PRFHMACSHA256]; the other codes exist so that
// hashes issued by systems configured for a different PRF still verify.
type PRF uint32

const (
	// PRFHMACSHA1 selects HMAC-SHA1.  Used by the fixed-parameter V2
	// format; never embedded in payloads produced by this package.
	PRFHMACSHA1 PRF = 0

	// PRFHMACSHA256 selects HMAC-SHA256, the V3 default.
	PRFHMACSHA256 PRF = 1

	// PRFHMACSHA512 selects HMAC-SHA512.  Accepted on decode only.
	PRFHMACSHA512 PRF = 2
)

// hashNew maps the PRF code to its hash constructor.  The second return
// value is false for codes this package does not recognise, which lets a
// decoder treat an unknown code as a verification failure rather than an
// undefined lookup.
func (p PRF) hashNew() (func() hash.Hash, bool) {
	switch p {
	case PRFHMACSHA1:
		return sha1.New, true
	case PRFHMACSHA256:
		return sha256.New, true
	case PRFHMACSHA512:
		return sha512.New, true
	default:
		return nil, false
	}
}

// String returns the ASP.NET name of the PRF, e.g. "HMACSHA256".
func (p PRF) String() string {
	switch p {
	case PRFHMACSHA1:
		return "HMACSHA1"
	case PRFHMACSHA256:
		return "HMACSHA256"
	case PRFHMACSHA512:
		return "HMACSHA512"
	default:
		return fmt.Sprintf("PRF(%d)", uint32(p))
	}
}
