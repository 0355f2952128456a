// alphabet.go -- the fixed character set passwords and reductions draw from
//
// License GPLv2
//
// This software does not come with any express or implied
// warranty; it is provided "as is". No claim  is made to its
// suitability for any purpose.

package rainbow

import "fmt"

// Alphabet is the fixed, ordered character set used for password seeds
// and reduction outputs. Index i maps to Alphabet[i] and back via
// alphabetIndex.
const Alphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789._"

// AlphabetSize is the number of distinct characters in Alphabet.
const AlphabetSize = len(Alphabet)

var alphabetIndex [256]int8

func init() {
	for i := range alphabetIndex {
		alphabetIndex[i] = -1
	}
	for i := 0; i < AlphabetSize; i++ {
		alphabetIndex[Alphabet[i]] = int8(i)
	}
}

// alphabetChar returns the character of Alphabet at index i modulo
// AlphabetSize, so any uint32 is accepted; this is a hot path inside
// reductions.
func alphabetChar(i uint32) byte {
	return Alphabet[i%uint32(AlphabetSize)]
}

// ValidSeed reports whether s has length l and consists solely of
// characters drawn from Alphabet.
func ValidSeed(s string, l int) bool {
	if len(s) != l {
		return false
	}
	for i := 0; i < len(s); i++ {
		if alphabetIndex[s[i]] < 0 {
			return false
		}
	}
	return true
}

func validateSeed(s string, l int) error {
	if !ValidSeed(s, l) {
		return fmt.Errorf("%w: seed %q is not %d alphabet characters", ErrBadParams, s, l)
	}
	return nil
}
