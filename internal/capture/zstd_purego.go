//go:build !clibs
// +build !clibs

package capture

import (
	"io"

	"github.com/klauspost/compress/zstd"
)

func zstdReader(r io.Reader) (io.ReadCloser, error) {
	dec, err := zstd.NewReader(r, zstd.WithDecoderConcurrency(1))
	if err != nil {
		return nil, err
	}
	return dec.IOReadCloser(), nil
}
