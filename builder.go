// builder.go -- parallel row producer
//
// Grounded on the worker-sharding pattern in go-mph/bbhash.go's
// state.concurrent method (partition work across runtime.NumCPU goroutines,
// join with a sync.WaitGroup) and on RainbowTable::GenerateTable /
// GenerateTableThread in original_source/src/R41N30W/RainbowTable.cpp for
// the random/dictionary mode split, row-salt assignment and the 10-retry
// dedup rule.
//
// License GPLv2
//
// This software does not come with any express or implied
// warranty; it is provided "as is". No claim  is made to its
// suitability for any purpose.

package rainbow

import (
	"runtime"
	"sort"
	"sync"
	"time"
)

// maxDedupRetries bounds how many times a worker re-rolls a seed or
// retries a colliding endpoint before giving up on a row slot.
const maxDedupRetries = 10

// Progress describes build advancement, reported from worker 0 only.
type Progress struct {
	RowsDone  uint64
	RowsTotal uint64
	Elapsed   time.Duration
	ETA       time.Duration
}

// ProgressFunc receives periodic Progress reports during Build. It must
// return quickly; Build does not wait on it.
type ProgressFunc func(Progress)

// WarnFunc receives advisory diagnostics (row-count rounding, dedup
// exhaustion) that do not abort the build.
type WarnFunc func(format string, args ...interface{})

// BuildOptions configures a Build call.
type BuildOptions struct {
	// Threads is the worker count. Zero or negative means
	// runtime.NumCPU().
	Threads int
	// Reduce selects the reduction function; nil defaults to
	// ReduceSalted, the default reduction variant.
	Reduce ReductionFunc
	// Progress, if non-nil, is called periodically (every 200 rows) by
	// worker 0 with cumulative progress.
	Progress ProgressFunc
	// Warn, if non-nil, receives non-fatal diagnostics.
	Warn WarnFunc
}

func (o BuildOptions) threads() int {
	if o.Threads > 0 {
		return o.Threads
	}
	return runtime.NumCPU()
}

func (o BuildOptions) reduce() ReductionFunc {
	if o.Reduce != nil {
		return o.Reduce
	}
	return ReduceSalted
}

func (o BuildOptions) warnf(format string, args ...interface{}) {
	if o.Warn != nil {
		o.Warn(format, args...)
	}
}

// Build populates t with rows, using whatever seeds are already present
// in t (dictionary mode) or generating fresh random seeds (random mode).
// It returns once every worker has produced its share of rows; the final
// row count may be less than Params.N if dedup retries were exhausted.
func Build(t *Table, opts BuildOptions) error {
	p := t.Params()
	if err := p.validate(); err != nil {
		return err
	}

	existing := t.SeedCount()
	dictionary := existing > 0

	// Dictionary mode partitions the preloaded seed set into T contiguous
	// slices, one per worker. Go's map iteration order is randomized per
	// process, so t.Seeds() alone would make that partitioning differ
	// across runs of the very same dictionary; sorting gives each worker
	// the same slice, and each seed the same intra-slice row-salt, every
	// time this dictionary is built.
	var orderedSeeds []string
	if dictionary {
		orderedSeeds = t.Seeds()
		sort.Strings(orderedSeeds)

		if uint64(len(orderedSeeds)) < p.N {
			p.N = uint64(len(orderedSeeds))
		}
	}

	threads := opts.threads()
	if threads < 1 {
		threads = 1
	}
	if uint64(threads) > p.N && p.N > 0 {
		threads = int(p.N)
	}
	if threads < 1 {
		threads = 1
	}

	perWorker := p.N / uint64(threads)
	if perWorker == 0 {
		threads = 1
		perWorker = p.N
	}
	rounded := perWorker * uint64(threads)
	if rounded != p.N {
		opts.warnf("rainbow: N=%d is not divisible by T=%d; building %d rows instead", p.N, threads, rounded)
	}

	var (
		wg        sync.WaitGroup
		doneTotal uint64
		doneMu    sync.Mutex
		start     = time.Now()
	)

	reportEvery := uint64(200)

	for wt := 0; wt < threads; wt++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			reduce := opts.reduce()
			lastIndex := perWorker - 1

			var slice []string
			if dictionary {
				lo := uint64(worker) * perWorker
				hi := lo + perWorker
				slice = orderedSeeds[lo:hi]
			}

			var sinceReport uint64
			for i := uint64(0); i < perWorker; i++ {
				var seed string
				var rowSalt uint32

				if dictionary {
					seed = slice[i]
					rowSalt = uint32(i)
					endpoint := buildChain(seed, rowSalt, p.Hash, reduce, int(p.C), int(p.L))
					t.AddRow(endpoint, seed)
				} else {
					rowSalt = uint32(uint64(worker)*perWorker + (lastIndex - i))
					seed, ok := rollUniqueRandomSeed(t, int(p.L))
					if !ok {
						opts.warnf("rainbow: worker %d: exhausted %d retries selecting a unique seed", worker, maxDedupRetries)
						continue
					}
					inserted := false
					for attempt := 0; attempt < maxDedupRetries; attempt++ {
						endpoint := buildChain(seed, rowSalt, p.Hash, reduce, int(p.C), int(p.L))
						if t.AddRow(endpoint, seed) {
							inserted = true
							break
						}
						var ok2 bool
						seed, ok2 = rollUniqueRandomSeed(t, int(p.L))
						if !ok2 {
							break
						}
					}
					if !inserted {
						opts.warnf("rainbow: worker %d: exhausted %d retries on colliding endpoint, row index %d", worker, maxDedupRetries, i)
					}
				}

				sinceReport++
				if sinceReport >= reportEvery {
					sinceReport = 0
					doneMu.Lock()
					doneTotal += reportEvery
					done := doneTotal
					doneMu.Unlock()
					if worker != 0 || opts.Progress == nil {
						continue
					}
					elapsed := time.Since(start)
					var eta time.Duration
					if done > 0 {
						eta = time.Duration(float64(elapsed) * float64(rounded-done) / float64(done))
					}
					opts.Progress(Progress{RowsDone: done, RowsTotal: rounded, Elapsed: elapsed, ETA: eta})
				}
			}
		}(wt)
	}

	wg.Wait()
	return nil
}

// rollUniqueRandomSeed draws random L-character seeds until one is not
// already claimed in t.seeds, or gives up after maxDedupRetries attempts.
func rollUniqueRandomSeed(t *Table, l int) (string, bool) {
	for attempt := 0; attempt < maxDedupRetries; attempt++ {
		seed := randomSeed(l)
		if t.ClaimSeed(seed) {
			return seed, true
		}
	}
	return "", false
}

// randomSeed generates a uniformly random L-character string over
// Alphabet, drawing from crypto/rand via utils.go's randbytes.
func randomSeed(l int) string {
	raw := randbytes(l)
	out := make([]byte, l)
	for i := 0; i < l; i++ {
		out[i] = alphabetChar(uint32(raw[i]))
	}
	return string(out)
}
