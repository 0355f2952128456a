package rainbow

import (
	"bytes"
	"errors"
	"testing"
)

func buildTestTable(t *testing.T) *Table {
	tab, err := NewTable(Params{Hash: HashSHA256, N: 12, C: 3, L: 3})
	if err != nil {
		t.Fatalf("NewTable failed: %v", err)
	}
	if err := Build(tab, BuildOptions{Threads: 2}); err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if tab.Len() == 0 {
		t.Fatalf("build produced zero rows")
	}
	return tab
}

func TestTextRoundTrip(t *testing.T) {
	assert := newAsserter(t)

	tab := buildTestTable(t)

	var buf bytes.Buffer
	assert(SaveText(tab, &buf) == nil, "SaveText failed")

	loaded, err := LoadText(&buf)
	assert(err == nil, "LoadText failed: %v", err)
	assert(loaded.Params() == tab.Params(), "params mismatch after text round trip")
	assert(loaded.Len() == tab.Len(), "row count mismatch: got %d, want %d", loaded.Len(), tab.Len())

	orig := tab.SortedRows()
	got := loaded.SortedRows()
	for i := range orig {
		assert(string(orig[i].Endpoint) == string(got[i].Endpoint), "endpoint mismatch at row %d", i)
		assert(orig[i].Seed == got[i].Seed, "seed mismatch at row %d", i)
	}
}

func TestBinaryRoundTrip(t *testing.T) {
	assert := newAsserter(t)

	tab := buildTestTable(t)

	var buf bytes.Buffer
	assert(SaveBinary(tab, &buf) == nil, "SaveBinary failed")

	loaded, err := LoadBinary(&buf)
	assert(err == nil, "LoadBinary failed: %v", err)
	assert(loaded.Params() == tab.Params(), "params mismatch after binary round trip")
	assert(loaded.Len() == tab.Len(), "row count mismatch")
}

func TestTextAndBinaryAgree(t *testing.T) {
	assert := newAsserter(t)

	tab := buildTestTable(t)

	var tbuf, bbuf bytes.Buffer
	assert(SaveText(tab, &tbuf) == nil, "SaveText failed")
	assert(SaveBinary(tab, &bbuf) == nil, "SaveBinary failed")

	fromText, err := LoadText(&tbuf)
	assert(err == nil, "LoadText failed: %v", err)
	fromBin, err := LoadBinary(&bbuf)
	assert(err == nil, "LoadBinary failed: %v", err)

	tr := fromText.SortedRows()
	br := fromBin.SortedRows()
	assert(len(tr) == len(br), "row counts differ between formats")
	for i := range tr {
		assert(string(tr[i].Endpoint) == string(br[i].Endpoint), "endpoint mismatch at row %d", i)
		assert(tr[i].Seed == br[i].Seed, "seed mismatch at row %d", i)
	}
}

func TestSaveEmptyTableRejected(t *testing.T) {
	assert := newAsserter(t)

	tab, err := NewTable(Params{Hash: HashSHA256, N: 4, C: 2, L: 3})
	assert(err == nil, "NewTable failed: %v", err)

	var buf bytes.Buffer
	err = SaveText(tab, &buf)
	assert(errors.Is(err, ErrEmptyTable), "expected ErrEmptyTable, got %v", err)

	err = SaveBinary(tab, &buf)
	assert(errors.Is(err, ErrEmptyTable), "expected ErrEmptyTable, got %v", err)
}

func TestLoadBinaryTruncatedFails(t *testing.T) {
	assert := newAsserter(t)

	tab := buildTestTable(t)
	var buf bytes.Buffer
	assert(SaveBinary(tab, &buf) == nil, "SaveBinary failed")

	truncated := buf.Bytes()[:buf.Len()-4]
	_, err := LoadBinary(bytes.NewReader(truncated))
	assert(err != nil, "truncated binary file must fail to load")
}

func TestLoadBadMagicFails(t *testing.T) {
	assert := newAsserter(t)

	_, err := LoadBinary(bytes.NewReader([]byte("ZZZZ" + "\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00")))
	assert(errors.Is(err, ErrBadMagic), "expected ErrBadMagic, got %v", err)

	_, err = LoadText(bytes.NewReader([]byte("ZZZZ\n")))
	assert(errors.Is(err, ErrBadMagic), "expected ErrBadMagic, got %v", err)
}
