// codec_mmap.go -- mmap-backed RBIN load
//
// Grounded on dbreader.go's use of opencoff/go-mmap to avoid a buffered
// copy of the whole file before parsing; table rows still require a copy
// into Go strings (map keys/values must own their storage), but the
// header and a table anywhere near RAM size benefits from avoiding an
// intermediate bufio.Reader allocation.
//
// License GPLv2
//
// This software does not come with any express or implied
// warranty; it is provided "as is". No claim  is made to its
// suitability for any purpose.

package rainbow

import (
	"encoding/binary"
	"fmt"
	"os"

	"github.com/opencoff/go-mmap"
)

// LoadBinaryMmap opens an RBIN file at path and memory-maps it for
// reading, validating the header exactly as LoadBinary does. The
// returned Table's Close method releases the mapping; callers must call
// it when done querying.
func LoadBinaryMmap(path string) (*Table, error) {
	fd, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	st, err := fd.Stat()
	if err != nil {
		fd.Close()
		return nil, err
	}
	if st.Size() < 24 {
		fd.Close()
		return nil, fmt.Errorf("%w: file is %d bytes", ErrTooSmall, st.Size())
	}

	mm := mmap.New(fd)
	mapping, err := mm.Map(st.Size(), 0, mmap.PROT_READ, mmap.F_READAHEAD)
	if err != nil {
		fd.Close()
		return nil, err
	}

	bs := mapping.Bytes()
	hdr := bs[:24]

	if string(hdr[0:4]) != magicBinary {
		mapping.Unmap()
		fd.Close()
		return nil, fmt.Errorf("%w: %q", ErrBadMagic, hdr[0:4])
	}

	h := HashType(binary.LittleEndian.Uint32(hdr[4:8]))
	if !h.Valid() {
		mapping.Unmap()
		fd.Close()
		return nil, fmt.Errorf("%w: id %d", ErrUnknownHash, h)
	}

	n := binary.LittleEndian.Uint64(hdr[8:16])
	c := binary.LittleEndian.Uint32(hdr[16:20])
	l := binary.LittleEndian.Uint32(hdr[20:24])

	w := h.Width()
	recSize := uint64(w + int(l))
	wantSize := int64(24) + int64(n*recSize)
	if wantSize != st.Size() {
		mapping.Unmap()
		fd.Close()
		return nil, fmt.Errorf("%w: declared %d rows implies %d bytes, file is %d", ErrSizeMismatch, n, wantSize, st.Size())
	}

	t, err := NewTable(Params{Hash: h, N: n, C: c, L: l})
	if err != nil {
		mapping.Unmap()
		fd.Close()
		return nil, err
	}

	data := bs[24:]
	for i := uint64(0); i < n; i++ {
		off := i * recSize
		endpoint := append([]byte(nil), data[off:off+uint64(w)]...)
		seed := string(data[off+uint64(w) : off+recSize])
		t.AddRow(endpoint, seed)
	}

	t.closer = mappingCloser{mapping: mapping, fd: fd}
	return t, nil
}

// mappingCloser adapts an opencoff/go-mmap Mapping and its backing file
// descriptor to io.Closer, for Table.Close.
type mappingCloser struct {
	mapping *mmap.Mapping
	fd      *os.File
}

func (m mappingCloser) Close() error {
	m.mapping.Unmap()
	return m.fd.Close()
}
