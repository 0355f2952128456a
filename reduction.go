// reduction.go -- deterministic hash-to-plaintext folding functions
//
// Grounded on Reduction.cpp (Adrian/"simple" variant) and
// SaltedReduction.cpp in original_source/src/R41N30W. Per spec.md §4.2 and
// §9, every term of the salted variant is taken modulo W: the reference
// implementation's omission of that modulo is a latent bug for 5L > W,
// and this implementation applies the fix.
//
// License GPLv2
//
// This software does not come with any express or implied
// warranty; it is provided "as is". No claim  is made to its
// suitability for any purpose.

package rainbow

// ReductionFunc maps a chain-step salt, the target password length, and a
// hash to a plaintext of that length, all characters drawn from Alphabet.
type ReductionFunc func(salt uint32, l int, hash []byte) []byte

// ReduceSalted is the default reduction: each output byte folds five
// positions of the hash together with salt, wrapping every term modulo
// len(hash) so it tolerates hashes shorter than 5*l.
func ReduceSalted(salt uint32, l int, hash []byte) []byte {
	w := uint32(len(hash))
	out := make([]byte, l)
	ll := uint32(l)
	for i := uint32(0); i < ll; i++ {
		idx := uint32(hash[i%w]) +
			uint32(hash[(i+ll)%w]) +
			uint32(hash[(i+2*ll)%w]) +
			uint32(hash[(i+3*ll)%w]) +
			uint32(hash[(i+4*ll)%w]) +
			salt
		out[i] = alphabetChar(idx)
	}
	return out
}

// ReduceSimple ignores salt and row position entirely; each output byte
// depends only on the corresponding hash byte. Grounded on Reduction::Adrian.
func ReduceSimple(salt uint32, l int, hash []byte) []byte {
	out := make([]byte, l)
	for i := 0; i < l; i++ {
		out[i] = alphabetChar(uint32(hash[i]))
	}
	return out
}

// cantor computes the Cantor pairing of (r, s): a bijection from N x N to
// N, used to derive a distinct per-step salt for every (row, step) pair so
// that chains from different rows never merge at the same step purely by
// salt coincidence.
func cantor(r, s uint32) uint32 {
	sum := r + s
	return (sum*(sum+1))/2 + s
}
