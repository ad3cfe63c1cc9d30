//go:build clibs
// +build clibs

package capture

import (
	"io"

	"github.com/DataDog/zstd"
)

func zstdReader(r io.Reader) (io.ReadCloser, error) {
	return zstd.NewReader(r), nil
}
