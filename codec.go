// codec.go -- RTXT/RBIN persistence
//
// RTXT is line oriented: a "RTXT" magic line, the hash function name, N,
// C and L each on their own decimal line, then one hex-endpoint/seed line
// pair per row.
//
// RBIN is a fixed 24-byte header (4-byte magic "RBIN", u32 LE hash id,
// u64 LE N, u32 LE C, u32 LE L) followed by N fixed-width records, each
// the endpoint (W bytes) immediately followed by the seed (L bytes).
//
// Grounded on RainbowTable::SaveText/LoadText/SaveBinary/LoadBinary in
// original_source/src/R41N30W/RainbowTable.cpp. The original's
// SaveBinary/LoadBinary were stubs; this is a from-scratch implementation
// of the RBIN layout above, bufio-buffered like the text codec and using
// the same error-wrapping idiom (sentinel errors from errors.go, wrapped
// with %w).
//
// License GPLv2
//
// This software does not come with any express or implied
// warranty; it is provided "as is". No claim  is made to its
// suitability for any purpose.

package rainbow

import (
	"bufio"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"io"
)

const (
	magicText   = "RTXT"
	magicBinary = "RBIN"
)

// SaveText writes t to w in the RTXT format: a magic line, the hash
// function name, N/C/L in decimal, then one hex-endpoint/seed line pair
// per row in deterministic (sorted by endpoint) order.
func SaveText(t *Table, w io.Writer) error {
	rows := t.SortedRows()
	if len(rows) == 0 {
		return ErrEmptyTable
	}

	p := t.Params()
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "%s\n", magicText)
	fmt.Fprintf(bw, "%s\n", p.Hash)
	fmt.Fprintf(bw, "%d\n", len(rows))
	fmt.Fprintf(bw, "%d\n", p.C)
	fmt.Fprintf(bw, "%d\n", p.L)

	for _, r := range rows {
		fmt.Fprintf(bw, "%s\n", hex.EncodeToString(r.Endpoint))
		fmt.Fprintf(bw, "%s\n", r.Seed)
	}

	return bw.Flush()
}

// LoadText reads an RTXT-formatted table from r into a freshly
// constructed Table.
func LoadText(r io.Reader) (*Table, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	readLine := func() (string, error) {
		if !sc.Scan() {
			if err := sc.Err(); err != nil {
				return "", err
			}
			return "", fmt.Errorf("%w: unexpected end of file", ErrTooSmall)
		}
		return sc.Text(), nil
	}

	magic, err := readLine()
	if err != nil {
		return nil, err
	}
	if magic != magicText {
		return nil, fmt.Errorf("%w: %q", ErrBadMagic, magic)
	}

	hashName, err := readLine()
	if err != nil {
		return nil, err
	}
	h := ParseHashType(hashName)
	if !h.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownHash, hashName)
	}

	var n, c, l uint64
	for _, dst := range []*uint64{&n, &c, &l} {
		line, err := readLine()
		if err != nil {
			return nil, err
		}
		if _, err := fmt.Sscanf(line, "%d", dst); err != nil {
			return nil, fmt.Errorf("%w: %q is not a decimal integer", ErrBadParams, line)
		}
	}

	t, err := NewTable(Params{Hash: h, N: n, C: uint32(c), L: uint32(l)})
	if err != nil {
		return nil, err
	}

	w := h.Width()
	for i := uint64(0); i < n; i++ {
		hexLine, err := readLine()
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: %v", ErrSizeMismatch, i, err)
		}
		endpoint, err := hex.DecodeString(hexLine)
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: %v", ErrBadParams, i, err)
		}
		if len(endpoint) != w {
			return nil, fmt.Errorf("%w: row %d: endpoint is %d bytes, want %d", ErrSizeMismatch, i, len(endpoint), w)
		}

		seed, err := readLine()
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: %v", ErrSizeMismatch, i, err)
		}
		if uint64(len(seed)) != l {
			return nil, fmt.Errorf("%w: row %d: seed is %d chars, want %d", ErrLengthMismatch, i, len(seed), l)
		}

		t.AddRow(endpoint, seed)
	}

	return t, nil
}

// SaveBinary writes t to w in the RBIN format documented at the top of
// this file:
// a 24-byte header (magic, hash id, N, C, L) followed by N fixed-width
// (endpoint, seed) records in deterministic order.
func SaveBinary(t *Table, w io.Writer) error {
	rows := t.SortedRows()
	if len(rows) == 0 {
		return ErrEmptyTable
	}

	p := t.Params()
	bw := bufio.NewWriter(w)

	var hdr [24]byte
	copy(hdr[0:4], magicBinary)
	binary.LittleEndian.PutUint32(hdr[4:8], uint32(p.Hash))
	binary.LittleEndian.PutUint64(hdr[8:16], uint64(len(rows)))
	binary.LittleEndian.PutUint32(hdr[16:20], p.C)
	binary.LittleEndian.PutUint32(hdr[20:24], p.L)
	if _, err := bw.Write(hdr[:]); err != nil {
		return err
	}

	for _, r := range rows {
		if _, err := bw.Write(r.Endpoint); err != nil {
			return err
		}
		if _, err := bw.WriteString(r.Seed); err != nil {
			return err
		}
	}

	return bw.Flush()
}

// LoadBinary reads an RBIN-formatted table from r into a freshly
// constructed Table, validating the header first. Rows are added as the
// records are read; if the data holds fewer or more than N records, the
// partly filled Table is discarded and ErrSizeMismatch is returned.
func LoadBinary(r io.Reader) (*Table, error) {
	var hdr [24]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTooSmall, err)
	}

	if string(hdr[0:4]) != magicBinary {
		return nil, fmt.Errorf("%w: %q", ErrBadMagic, hdr[0:4])
	}

	h := HashType(binary.LittleEndian.Uint32(hdr[4:8]))
	if !h.Valid() {
		return nil, fmt.Errorf("%w: id %d", ErrUnknownHash, h)
	}

	n := binary.LittleEndian.Uint64(hdr[8:16])
	c := binary.LittleEndian.Uint32(hdr[16:20])
	l := binary.LittleEndian.Uint32(hdr[20:24])

	t, err := NewTable(Params{Hash: h, N: n, C: c, L: l})
	if err != nil {
		return nil, err
	}

	w := h.Width()
	recSize := w + int(l)
	br := bufio.NewReaderSize(r, 1<<20)

	rec := make([]byte, recSize)
	for i := uint64(0); i < n; i++ {
		if _, err := io.ReadFull(br, rec); err != nil {
			return nil, fmt.Errorf("%w: row %d: %v", ErrSizeMismatch, i, err)
		}
		endpoint := append([]byte(nil), rec[:w]...)
		seed := string(rec[w:])
		t.AddRow(endpoint, seed)
	}

	// Any trailing bytes mean the declared N understates the data on
	// disk -- also a size mismatch.
	var extra [1]byte
	if n2, _ := br.Read(extra[:]); n2 > 0 {
		return nil, fmt.Errorf("%w: trailing data after %d rows", ErrSizeMismatch, n)
	}

	return t, nil
}
