package capture

import (
	"io"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zlib"
)

func zlibReader(r io.Reader) (io.ReadCloser, error) {
	return zlib.NewReader(r)
}

// gzipReader also reads concatenated members, as produced by appending to
// a rotated log.
func gzipReader(r io.Reader) (io.ReadCloser, error) {
	zr, err := gzip.NewReader(r)
	if err != nil {
		return nil, err
	}
	return zr, nil
}
