// Package capture opens capture files, undoing whatever compression they
// were stored with.
package capture

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
)

// Format is the container a capture is stored in.
type Format int

const (
	Raw Format = iota
	Gzip
	Zlib
	Zstd
	Snappy
)

var formatNames = [...]string{"raw", "gzip", "zlib", "zstd", "snappy"}

func (f Format) String() string {
	if int(f) < len(formatNames) {
		return formatNames[f]
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

var (
	gzipMagic   = []byte{0x1f, 0x8b}
	zstdMagic   = []byte{0x28, 0xb5, 0x2f, 0xfd}
	snappyMagic = []byte{0xff, 0x06, 0x00, 0x00, 's', 'N', 'a', 'P', 'p', 'Y'}
)

// sniffLen is the longest magic we look for
const sniffLen = 10

// Detect returns the format of a capture starting with prefix.
func Detect(prefix []byte) Format {
	switch {
	case bytes.HasPrefix(prefix, snappyMagic):
		return Snappy
	case bytes.HasPrefix(prefix, zstdMagic):
		return Zstd
	case bytes.HasPrefix(prefix, gzipMagic):
		return Gzip
	case isZlibHeader(prefix):
		return Zlib
	}
	return Raw
}

// zlib: CMF says deflate with a window of at most 32K, and CMF/FLG pass
// the header check
func isZlibHeader(b []byte) bool {
	if len(b) < 2 {
		return false
	}
	cmf, flg := b[0], b[1]
	return cmf&0x0f == 8 && cmf>>4 <= 7 && (uint16(cmf)<<8|uint16(flg))%31 == 0
}

// NewReader returns a reader of the decompressed contents of r.
func NewReader(r io.Reader) (io.ReadCloser, Format, error) {
	br := bufio.NewReader(r)
	prefix, err := br.Peek(sniffLen)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return nil, Raw, err
	}

	f := Detect(prefix)
	var rc io.ReadCloser
	switch f {
	case Gzip:
		rc, err = gzipReader(br)
	case Zlib:
		rc, err = zlibReader(br)
	case Zstd:
		rc, err = zstdReader(br)
	case Snappy:
		rc = snappyReader(br)
	default:
		rc = io.NopCloser(br)
	}
	if err != nil {
		return nil, f, fmt.Errorf("capture: open %s stream: %w", f, err)
	}
	return rc, f, nil
}

type fileReader struct {
	io.ReadCloser
	f *os.File
}

func (r fileReader) Close() error {
	err := r.ReadCloser.Close()
	if ferr := r.f.Close(); err == nil {
		err = ferr
	}
	return err
}

// Open opens the capture at path.
func Open(path string) (io.ReadCloser, Format, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, Raw, err
	}
	rc, format, err := NewReader(f)
	if err != nil {
		f.Close()
		return nil, format, err
	}
	return fileReader{ReadCloser: rc, f: f}, format, nil
}

// ReadAll reads and decompresses the whole capture at path.
func ReadAll(path string) ([]byte, error) {
	rc, _, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}
