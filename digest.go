// digest.go -- adapter over the external hash primitives the engine uses
//
// Grounded on OSSLHasher.hpp/.cpp in original_source/src/R41N30W (a
// HashType enum plus a GetHashFunc/GetHashSize dispatch table). BLAKE2b-512
// is provided by golang.org/x/crypto/blake2b (see SnellerInc-sneller's
// go.mod for the same dependency and gtank-blake2/blake2b for the
// algorithm's idiomatic Go shape); SHA-1/SHA-256 come from stdlib since no
// repo in the example pack ships a third-party implementation of either.
//
// License GPLv2
//
// This software does not come with any express or implied
// warranty; it is provided "as is". No claim  is made to its
// suitability for any purpose.

package rainbow

import (
	"crypto/sha1"
	"crypto/sha256"
	"fmt"
	"strings"

	"golang.org/x/crypto/blake2b"
)

// HashType identifies one of the digest functions the engine supports.
type HashType uint32

const (
	// HashUnknown is the zero value; never a valid table parameter.
	HashUnknown HashType = 0
	// HashSHA1 selects SHA-1 (W=20).
	HashSHA1 HashType = 1
	// HashSHA256 selects SHA-256 (W=32).
	HashSHA256 HashType = 2
	// HashBLAKE512 selects BLAKE2b-512 (W=64).
	HashBLAKE512 HashType = 3
)

// String returns the canonical on-disk name of h ("SHA1", "SHA256",
// "BLAKE512"), matching the RTXT text format's hash-function line.
func (h HashType) String() string {
	switch h {
	case HashSHA1:
		return "SHA1"
	case HashSHA256:
		return "SHA256"
	case HashBLAKE512:
		return "BLAKE512"
	default:
		return "UNKNOWN"
	}
}

// ParseHashType maps a case-insensitive hash name to its HashType,
// returning HashUnknown if the name isn't recognized.
func ParseHashType(s string) HashType {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "SHA1":
		return HashSHA1
	case "SHA256":
		return HashSHA256
	case "BLAKE512":
		return HashBLAKE512
	default:
		return HashUnknown
	}
}

// Width returns the digest output width W, in bytes, for h. Returns 0 for
// an unknown hash type.
func (h HashType) Width() int {
	switch h {
	case HashSHA1:
		return sha1.Size
	case HashSHA256:
		return sha256.Size
	case HashBLAKE512:
		return 64
	default:
		return 0
	}
}

// Digest computes the h digest of plain, panicking if h is unknown (a
// Table never carries an unknown HashType past construction/load, so this
// is a programmer error, not a runtime condition to handle gracefully).
func (h HashType) Digest(plain []byte) []byte {
	switch h {
	case HashSHA1:
		sum := sha1.Sum(plain)
		return sum[:]
	case HashSHA256:
		sum := sha256.Sum256(plain)
		return sum[:]
	case HashBLAKE512:
		sum := blake2b.Sum512(plain)
		return sum[:]
	default:
		panic(fmt.Sprintf("rainbow: digest called with %s", h))
	}
}

// Valid reports whether h is one of the supported digest types.
func (h HashType) Valid() bool {
	switch h {
	case HashSHA1, HashSHA256, HashBLAKE512:
		return true
	default:
		return false
	}
}
