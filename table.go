// table.go -- the in-memory rainbow table: rows, seeds and parameters
//
// Grounded on RainbowTable.hpp's mDictionary/mOriginalPasswords fields and
// on LoadPasswords/SavePasswords/LogTableInfo in
// original_source/src/R41N30W/RainbowTable.cpp. Rows are keyed by
// string(hashBytes): a Go string is an immutable byte sequence, so this
// satisfies spec.md §9's requirement to key by raw bytes internally
// without going through a hex intermediate, while still sorting naturally
// for codec.go's deterministic on-disk order.
//
// License GPLv2
//
// This software does not come with any express or implied
// warranty; it is provided "as is". No claim  is made to its
// suitability for any purpose.

package rainbow

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"sync"
)

// Params are the parameters of a Table, fixed at construction (or
// recovered from a loaded file). The one later change is LoadSeeds, which
// fills in N from the dictionary size when N is zero.
type Params struct {
	Hash HashType // H: digest function
	N    uint64   // vertical size: intended row count
	C    uint32   // horizontal size: chain steps
	L    uint32   // password length in characters
}

func (p Params) validate() error {
	if !p.Hash.Valid() {
		return fmt.Errorf("%w: %s", ErrUnknownHash, p.Hash)
	}
	if p.L == 0 {
		return fmt.Errorf("%w: password length must be >= 1", ErrBadParams)
	}
	return nil
}

// Row is a single chain's endpoint/seed pair, as persisted by Codec.
type Row struct {
	Endpoint []byte
	Seed     string
}

// Table is the ordered mapping from endpoint hash to seed, the starting
// password set used for dedup during build, and the table's parameters.
// It is safe for concurrent Builder workers to mutate (via AddRow /
// ClaimSeed) and for Codec to populate during Load. Once a Finder query
// begins the caller must not mutate the table further; Finder itself
// takes neither lock (see spec.md §5).
type Table struct {
	params Params

	rowsMu sync.Mutex
	rows   map[string]string // endpoint hash bytes -> seed

	seedsMu sync.Mutex
	seeds   map[string]struct{}

	closer io.Closer // non-nil for mmap-backed tables; released by Close
}

// NewTable creates an empty table with the given parameters.
func NewTable(p Params) (*Table, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}
	t := &Table{
		params: p,
		rows:   make(map[string]string, p.N),
		seeds:  make(map[string]struct{}, p.N),
	}
	return t, nil
}

// Params returns the table's parameters.
func (t *Table) Params() Params {
	return t.params
}

// Len returns the number of rows currently in the table.
func (t *Table) Len() int {
	t.rowsMu.Lock()
	n := len(t.rows)
	t.rowsMu.Unlock()
	return n
}

// AddRow attempts to insert endpoint -> seed. It returns false if endpoint
// is already present (a chain merge) without modifying the table.
func (t *Table) AddRow(endpoint []byte, seed string) bool {
	k := string(endpoint)
	t.rowsMu.Lock()
	defer t.rowsMu.Unlock()
	if _, ok := t.rows[k]; ok {
		return false
	}
	t.rows[k] = seed
	return true
}

// Lookup returns the seed stored for endpoint, and whether it was found.
// Per spec.md §5, Finder calls this without holding any lock: the table
// must be frozen (no concurrent Builder/Codec writers) before a query
// begins.
func (t *Table) Lookup(endpoint []byte) (string, bool) {
	seed, ok := t.rows[string(endpoint)]
	return seed, ok
}

// ClaimSeed attempts to reserve seed for use as a chain start. It returns
// false if seed has already been claimed by a previous call.
func (t *Table) ClaimSeed(seed string) bool {
	t.seedsMu.Lock()
	defer t.seedsMu.Unlock()
	if _, ok := t.seeds[seed]; ok {
		return false
	}
	t.seeds[seed] = struct{}{}
	return true
}

// SeedCount returns the number of distinct seeds claimed so far.
func (t *Table) SeedCount() int {
	t.seedsMu.Lock()
	n := len(t.seeds)
	t.seedsMu.Unlock()
	return n
}

// Seeds returns a snapshot slice of all claimed seeds. The order is
// unspecified (map iteration); callers needing a deterministic order
// should sort the result.
func (t *Table) Seeds() []string {
	t.seedsMu.Lock()
	defer t.seedsMu.Unlock()
	out := make([]string, 0, len(t.seeds))
	for s := range t.seeds {
		out = append(out, s)
	}
	return out
}

// SortedRows returns all rows ordered lexicographically by endpoint hash
// bytes -- the deterministic order Codec requires for reproducible saves.
func (t *Table) SortedRows() []Row {
	t.rowsMu.Lock()
	rows := make([]Row, 0, len(t.rows))
	for k, seed := range t.rows {
		rows = append(rows, Row{Endpoint: []byte(k), Seed: seed})
	}
	t.rowsMu.Unlock()

	sort.Slice(rows, func(i, j int) bool {
		return string(rows[i].Endpoint) < string(rows[j].Endpoint)
	})
	return rows
}

// LoadSeeds reads one password per line from r into the table's seed set,
// replacing whatever was there before. Following LoadPasswords in
// original_source, if the table's N is zero the loaded dictionary's size
// becomes N. L is not inferred in practice: NewTable rejects L=0, so
// every loaded line is validated against the table's configured L,
// unlike the original which trusts the first line's length.
func (t *Table) LoadSeeds(r io.Reader) (int, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	seeds := make(map[string]struct{})
	l := int(t.params.L)
	first := true
	for sc.Scan() {
		line := sc.Text()
		if line == "" {
			continue
		}
		if first {
			if l == 0 {
				l = len(line)
			}
			first = false
		}
		if !ValidSeed(line, l) {
			return 0, fmt.Errorf("%w: %q is not %d alphabet characters", ErrBadParams, line, l)
		}
		seeds[line] = struct{}{}
	}
	if err := sc.Err(); err != nil {
		return 0, err
	}

	t.seedsMu.Lock()
	t.seeds = seeds
	t.seedsMu.Unlock()

	if t.params.L == 0 {
		t.params.L = uint32(l)
	}
	if t.params.N == 0 {
		t.params.N = uint64(len(seeds))
	}
	return len(seeds), nil
}

// SaveSeeds writes every currently-claimed seed to w, one per line.
// Restores RainbowTable::SavePasswords from original_source, dropped by
// the distilled spec.
func (t *Table) SaveSeeds(w io.Writer) error {
	bw := bufio.NewWriter(w)
	for _, s := range t.Seeds() {
		if _, err := bw.WriteString(s); err != nil {
			return err
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// Describe writes a short human-readable summary of the table's
// parameters and current row count to w. Restores
// RainbowTable::Print/LogTableInfo from original_source.
func (t *Table) Describe(w io.Writer) {
	p := t.params
	fmt.Fprintf(w, "hash function:   %s\n", p.Hash)
	fmt.Fprintf(w, "vertical size:   %d\n", p.N)
	fmt.Fprintf(w, "chain steps:     %d\n", p.C)
	fmt.Fprintf(w, "password length: %d\n", p.L)
	fmt.Fprintf(w, "rows stored:     %d\n", t.Len())
}

// Close releases resources backing an mmap-loaded table. It is a no-op
// for tables not backed by a memory mapping.
func (t *Table) Close() error {
	if t.closer != nil {
		c := t.closer
		t.closer = nil
		return c.Close()
	}
	return nil
}
