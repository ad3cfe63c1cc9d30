package capture

import (
	"io"

	"github.com/golang/snappy"
)

// snappyReader reads the snappy framing format, as written by snappy.NewBufferedWriter.
func snappyReader(r io.Reader) io.ReadCloser {
	return io.NopCloser(snappy.NewReader(r))
}
