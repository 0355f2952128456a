package rainbow

import "testing"

func TestReduceSaltedLength(t *testing.T) {
	assert := newAsserter(t)

	hash := HashSHA256.Digest([]byte("seed"))
	for _, l := range []int{1, 3, 8, 32} {
		plain := ReduceSalted(42, l, hash)
		assert(len(plain) == l, "ReduceSalted produced %d bytes, want %d", len(plain), l)
		for _, c := range plain {
			assert(alphabetIndex[c] >= 0, "byte %q is not in Alphabet", c)
		}
	}
}

func TestReduceSaltedToleratesShortHash(t *testing.T) {
	assert := newAsserter(t)

	// W=20 (SHA1), L=8: 5*L=40 > W, so every term must wrap mod W.
	hash := HashSHA1.Digest([]byte("x"))
	plain := ReduceSalted(0, 8, hash)
	assert(len(plain) == 8, "expected 8 bytes, got %d", len(plain))
}

func TestReduceSaltedDistinctSalts(t *testing.T) {
	assert := newAsserter(t)

	hash := HashSHA256.Digest([]byte("seed"))
	a := ReduceSalted(1, 8, hash)
	b := ReduceSalted(2, 8, hash)
	assert(string(a) != string(b), "different salts should (almost always) produce different output")
}

func TestReduceSimple(t *testing.T) {
	assert := newAsserter(t)

	hash := HashSHA256.Digest([]byte("seed"))
	plain := ReduceSimple(999, 4, hash)
	assert(len(plain) == 4, "ReduceSimple produced %d bytes, want 4", len(plain))
	for i, c := range plain {
		assert(c == alphabetChar(uint32(hash[i])), "ReduceSimple byte %d mismatch", i)
	}
}

func TestCantorDistinctPerRowStep(t *testing.T) {
	assert := newAsserter(t)

	seen := make(map[uint32]bool)
	for r := uint32(0); r < 8; r++ {
		for s := uint32(0); s < 8; s++ {
			v := cantor(r, s)
			assert(!seen[v], "cantor(%d,%d)=%d collided with an earlier pair", r, s, v)
			seen[v] = true
		}
	}
}
