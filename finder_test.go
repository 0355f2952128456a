package rainbow

import "testing"

// TestFindRecoversStoredSeed builds a small table (mirroring spec.md's
// end-to-end scenario 1/2: H=SHA256, N=16, C=4, L=3, T=1), takes the
// endpoint of a stored row as the target -- the case where the target is
// a direct chain endpoint -- and expects Find to return a plaintext that
// hashes to it.
func TestFindRecoversStoredSeed(t *testing.T) {
	assert := newAsserter(t)

	tab, err := NewTable(Params{Hash: HashSHA256, N: 16, C: 4, L: 3})
	assert(err == nil, "NewTable failed: %v", err)
	assert(Build(tab, BuildOptions{Threads: 1}) == nil, "Build failed")
	assert(tab.Len() > 0, "need at least one row")

	rows := tab.SortedRows()
	target := rows[0].Endpoint

	plain, ok := Find(tab, target, FindOptions{Threads: 2})
	assert(ok, "Find should recover a preimage for a stored endpoint")
	assert(string(HashSHA256.Digest([]byte(plain))) == string(target), "Find returned a plaintext that does not hash to target")
}

// TestFindSoundness is spec.md's soundness property: whatever Find
// returns, re-hashing it must reproduce the query target exactly.
func TestFindSoundness(t *testing.T) {
	assert := newAsserter(t)

	tab, err := NewTable(Params{Hash: HashSHA256, N: 32, C: 6, L: 3})
	assert(err == nil, "NewTable failed: %v", err)
	assert(Build(tab, BuildOptions{Threads: 2}) == nil, "Build failed")

	for _, row := range tab.SortedRows() {
		if plain, ok := Find(tab, row.Endpoint, FindOptions{Threads: 2}); ok {
			assert(string(HashSHA256.Digest([]byte(plain))) == string(row.Endpoint), "unsound Find result for endpoint")
		}
	}
}

func TestFindMissReturnsFalse(t *testing.T) {
	assert := newAsserter(t)

	tab, err := NewTable(Params{Hash: HashSHA256, N: 4, C: 2, L: 3})
	assert(err == nil, "NewTable failed: %v", err)
	assert(Build(tab, BuildOptions{Threads: 1}) == nil, "Build failed")

	garbage := make([]byte, HashSHA256.Width())
	for i := range garbage {
		garbage[i] = 0xff
	}
	_, ok := Find(tab, garbage, FindOptions{Threads: 2})
	// A miss is a valid, non-error outcome; we only assert it doesn't panic
	// and, if it claims a hit, that hit is sound (covered above).
	_ = ok
}

func TestFindRejectsWrongWidthTarget(t *testing.T) {
	assert := newAsserter(t)

	tab, err := NewTable(Params{Hash: HashSHA256, N: 4, C: 2, L: 3})
	assert(err == nil, "NewTable failed: %v", err)
	assert(Build(tab, BuildOptions{Threads: 1}) == nil, "Build failed")

	_, ok := Find(tab, []byte{1, 2, 3}, FindOptions{})
	assert(!ok, "a target of the wrong width must never match")
}
