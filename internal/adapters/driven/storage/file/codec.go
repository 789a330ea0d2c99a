package file

import (
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"

	"github.com/custodia-labs/askpdf/internal/core/domain"
)

const (
	magic         = "ASKPDFIX"
	formatVersion = uint32(1)
	headerSize    = len(magic) + 4
	checksumSize  = 4
)

var errTruncated = errors.New("truncated")

// Encode serialises idx.
func Encode(idx *domain.Index) []byte {
	size := headerSize + 8 + checksumSize
	for _, f := range idx.Files {
		size += 4 + len(f)
	}
	for _, p := range idx.Pages {
		size += 4 + len(p)
	}

	out := make([]byte, 0, size)
	out = append(out, magic...)
	out = binary.LittleEndian.AppendUint32(out, formatVersion)
	out = appendStrings(out, idx.Files)
	out = appendStrings(out, idx.Pages)
	out = binary.LittleEndian.AppendUint32(out, crc32.ChecksumIEEE(out))
	return out
}

func appendStrings(out []byte, values []string) []byte {
	out = binary.LittleEndian.AppendUint32(out, uint32(len(values)))
	for _, v := range values {
		out = binary.LittleEndian.AppendUint32(out, uint32(len(v)))
		out = append(out, v...)
	}
	return out
}

// Decode parses bytes produced by Encode.
// Every failure wraps domain.ErrCorruptIndex.
func Decode(data []byte) (*domain.Index, error) {
	if len(data) < headerSize+8+checksumSize {
		return nil, fmt.Errorf("%w: %d bytes is too short", domain.ErrCorruptIndex, len(data))
	}
	if string(data[:len(magic)]) != magic {
		return nil, fmt.Errorf("%w: bad magic", domain.ErrCorruptIndex)
	}
	if v := binary.LittleEndian.Uint32(data[len(magic):headerSize]); v != formatVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", domain.ErrCorruptIndex, v)
	}

	body := data[:len(data)-checksumSize]
	want := binary.LittleEndian.Uint32(data[len(data)-checksumSize:])
	if got := crc32.ChecksumIEEE(body); got != want {
		return nil, fmt.Errorf("%w: checksum mismatch", domain.ErrCorruptIndex)
	}

	r := reader{buf: body[headerSize:]}
	files, err := r.strings()
	if err != nil {
		return nil, fmt.Errorf("%w: files: %v", domain.ErrCorruptIndex, err)
	}
	pages, err := r.strings()
	if err != nil {
		return nil, fmt.Errorf("%w: pages: %v", domain.ErrCorruptIndex, err)
	}
	if len(r.buf) != 0 {
		return nil, fmt.Errorf("%w: %d trailing bytes", domain.ErrCorruptIndex, len(r.buf))
	}
	return &domain.Index{Files: files, Pages: pages}, nil
}

type reader struct {
	buf []byte
}

func (r *reader) uint32() (uint32, error) {
	if len(r.buf) < 4 {
		return 0, errTruncated
	}
	v := binary.LittleEndian.Uint32(r.buf)
	r.buf = r.buf[4:]
	return v, nil
}

func (r *reader) strings() ([]string, error) {
	n, err := r.uint32()
	if err != nil {
		return nil, err
	}
	// Every entry needs at least its length prefix.
	if uint64(n)*4 > uint64(len(r.buf)) {
		return nil, fmt.Errorf("count %d exceeds remaining %d bytes", n, len(r.buf))
	}
	out := make([]string, n)
	for i := range out {
		size, err := r.uint32()
		if err != nil {
			return nil, err
		}
		if uint64(size) > uint64(len(r.buf)) {
			return nil, errTruncated
		}
		out[i] = string(r.buf[:size])
		r.buf = r.buf[size:]
	}
	return out, nil
}
