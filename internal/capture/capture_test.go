package capture

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/golang/snappy"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zlib"
	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var payload = bytes.Repeat([]byte("[0000] 03 00 09 40 03 00 0B 40  ...@...@\n"), 64)

func compress(t *testing.T, f Format, b []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	var w io.WriteCloser
	var err error
	switch f {
	case Raw:
		return b
	case Gzip:
		w = gzip.NewWriter(&buf)
	case Zlib:
		w = zlib.NewWriter(&buf)
	case Zstd:
		w, err = zstd.NewWriter(&buf)
		require.NoError(t, err)
	case Snappy:
		w = snappy.NewBufferedWriter(&buf)
	}
	_, err = w.Write(b)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func TestNewReader(t *testing.T) {
	for _, f := range []Format{Raw, Gzip, Zlib, Zstd, Snappy} {
		t.Run(f.String(), func(t *testing.T) {
			rc, got, err := NewReader(bytes.NewReader(compress(t, f, payload)))
			require.NoError(t, err)
			defer rc.Close()
			assert.Equal(t, f, got)

			b, err := io.ReadAll(rc)
			require.NoError(t, err)
			assert.Equal(t, payload, b)
		})
	}
}

func TestDetect(t *testing.T) {
	tests := []struct {
		prefix []byte
		want   Format
	}{
		{nil, Raw},
		{[]byte{0x03, 0x00, 0x09, 0x40}, Raw},
		{[]byte("[2011/06/01 12:00:00"), Raw},
		{[]byte{0x1f, 0x8b, 0x08}, Gzip},
		{[]byte{0x78, 0x9c}, Zlib},
		{[]byte{0x78, 0x9d}, Raw},
		{[]byte{0x28, 0xb5, 0x2f, 0xfd, 0x00}, Zstd},
		{[]byte("\xff\x06\x00\x00sNaPpY"), Snappy},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Detect(tt.prefix), "prefix % x", tt.prefix)
	}
}

func TestShortInput(t *testing.T) {
	rc, f, err := NewReader(bytes.NewReader([]byte{0x03}))
	require.NoError(t, err)
	defer rc.Close()
	assert.Equal(t, Raw, f)
	b, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x03}, b)
}

func TestReadAll(t *testing.T) {
	path := filepath.Join(t.TempDir(), "samba.log.zst")
	require.NoError(t, os.WriteFile(path, compress(t, Zstd, payload), 0600))

	b, err := ReadAll(path)
	require.NoError(t, err)
	assert.Equal(t, payload, b)

	_, err = ReadAll(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}

func TestCorruptGzip(t *testing.T) {
	_, f, err := NewReader(bytes.NewReader([]byte{0x1f, 0x8b, 0xff, 0xff}))
	assert.Equal(t, Gzip, f)
	assert.Error(t, err)
}
