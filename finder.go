// finder.go -- two-phase parallel plaintext recovery
//
// Grounded on RainbowTable::FindPassword / FindPasswordParallel /
// FindPasswordInChainParallel in
// original_source/src/R41N30W/RainbowTable.cpp, and on the worker-sharded
// fan-out/fan-in pattern in go-mph/bbhash.go's state.concurrent.
//
// License GPLv2
//
// This software does not come with any express or implied
// warranty; it is provided "as is". No claim  is made to its
// suitability for any purpose.

package rainbow

import (
	"runtime"
	"sync"
)

// FindOptions configures a Find call.
type FindOptions struct {
	// Threads is the worker count for Phase 1. Zero or negative means
	// runtime.NumCPU().
	Threads int
	// Reduce selects the reduction function; nil defaults to
	// ReduceSalted, matching Build's default.
	Reduce ReductionFunc
}

func (o FindOptions) threads() int {
	if o.Threads > 0 {
		return o.Threads
	}
	return runtime.NumCPU()
}

func (o FindOptions) reduce() ReductionFunc {
	if o.Reduce != nil {
		return o.Reduce
	}
	return ReduceSalted
}

// Find recovers the plaintext whose digest is target, or returns ("",
// false) if no row in t covers it. A non-empty result is always
// re-hash-verified before being returned, so false positives cannot
// occur; false negatives are an accepted coverage gap of the table.
func Find(t *Table, target []byte, opts FindOptions) (string, bool) {
	p := t.Params()
	if len(target) != p.Hash.Width() {
		return "", false
	}

	// Direct hit: target is itself a stored endpoint.
	if seed, ok := t.Lookup(target); ok {
		if plain, ok := replay(seed, p, opts.reduce(), target); ok {
			return plain, true
		}
	}

	if p.C == 0 {
		return "", false
	}

	candidate := findCandidateSeed(t, target, p, opts)
	if candidate == "" {
		return "", false
	}
	return replay(candidate, p, opts.reduce(), target)
}

// findCandidateSeed runs Phase 1: for each possible origin step i from
// C-1 down to 0, synthesize what the chain's endpoint would be if target
// were the hash produced at step i, and check whether that synthesized
// endpoint is a row in t. Per spec.md §9 the row-salt used here is always
// the step index alone (row-salt 0), a deliberate, bit-exact-preserving
// asymmetry with Build's cantor(row_salt, step) salts.
func findCandidateSeed(t *Table, target []byte, p Params, opts FindOptions) string {
	threads := opts.threads()
	if threads < 1 {
		threads = 1
	}
	if threads > int(p.C) {
		threads = int(p.C)
	}
	if threads < 1 {
		threads = 1
	}

	type result struct {
		seed string
		ok   bool
	}

	results := make(chan result, threads)
	var wg sync.WaitGroup

	for w := 0; w < threads; w++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			reduce := opts.reduce()
			for i := int(p.C) - 1 - worker; i >= 0; i -= threads {
				h := append([]byte(nil), target...)
				plain := make([]byte, p.L)
				for s := i; s < int(p.C); s++ {
					plain = reduce(cantor(0, uint32(s)), int(p.L), h)
					h = p.Hash.Digest(plain)
				}
				if seed, ok := t.Lookup(h); ok {
					select {
					case results <- result{seed: seed, ok: true}:
					default:
					}
					return
				}
			}
		}(w)
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	for r := range results {
		if r.ok {
			return r.seed
		}
	}
	return ""
}

// replay runs Phase 2: recompute the chain forward from seed, comparing
// each step's hash against target, and returns the plaintext that
// produced the match.
func replay(seed string, p Params, reduce ReductionFunc, target []byte) (string, bool) {
	plain := []byte(seed)
	hash := p.Hash.Digest(plain)
	if bytesEqual(hash, target) {
		return seed, true
	}

	rowSalt := uint32(0)
	for s := 0; s < int(p.C); s++ {
		plain = reduce(cantor(rowSalt, uint32(s)), int(p.L), hash)
		hash = p.Hash.Digest(plain)
		if bytesEqual(hash, target) {
			return string(plain), true
		}
	}
	return "", false
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
