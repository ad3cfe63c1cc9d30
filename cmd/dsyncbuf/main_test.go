package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/openchange/syncbuffer"
	"github.com/openchange/syncbuffer/internal/config"
)

// StartTopFld, a PT_UNICODE "Inb" with a wrong declared length, EndFolder
var sampleBuffer = []byte{
	0x03, 0x00, 0x09, 0x40,
	0x1f, 0x00, 0x01, 0x30, 0x0e, 0x00, 0x00, 0x00, 0x49, 0x00, 0x6e, 0x00, 0x62, 0x00, 0x00, 0x00,
	0x03, 0x00, 0x0b, 0x40,
}

const sampleLog = `[2011/06/01 10:00:00,  0] oxcfxics.c:1234(EcDoRpc_RopFastTransferSourceGetBuffer)
      mapi_FastTransferSourceGetBuffer: struct FastTransferSourceGetBuffer_repl
          TransferStatus           : TransferStatus_Done (0x3)
          TransferBuffer           : DATA_BLOB length=24
[0000] 03 00 09 40 1F 00 01 30  0E 00 00 00 49 00 6E 00   ...@...0 ....I.n.
[0010] 62 00 00 00 03 00 0B 40                            b......@
      mapi_response: the end
`

func newTestDumper(t *testing.T, cfg config.Config) (*dumper, *bytes.Buffer) {
	var buf bytes.Buffer
	return newDumper(cfg, zaptest.NewLogger(t), bufio.NewWriter(&buf)), &buf
}

func TestTextFromLog(t *testing.T) {
	d, buf := newTestDumper(t, config.Default())
	d.printer.Names = syncbuffer.TagNames{0x3001001f: "PidTagDisplayName_UNICODE"}

	require.NoError(t, d.process("samba.log", strings.NewReader(sampleLog+sampleLog)))
	require.NoError(t, d.out.Flush())

	want := "# samba.log:2 (24 bytes)\n" +
		"* 40090003 (PidTagStartTopFld)\n" +
		`  3001001f (PidTagDisplayName_UNICODE, PT_UNICODE): (3 chars, 14 declared): "Inb"` + "\n" +
		"* 400b0003 (PidTagEndFolder)\n"
	assert.Equal(t, want, buf.String())

	assert.Equal(t, 1.0, testutil.ToFloat64(d.metrics.TransfersTotal.WithLabelValues("ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(d.metrics.TransfersTotal.WithLabelValues("duplicate")))
	assert.Equal(t, 24.0, testutil.ToFloat64(d.metrics.BytesDecoded))
}

func TestNoDedup(t *testing.T) {
	cfg := config.Default()
	cfg.Dedup = false
	d, buf := newTestDumper(t, cfg)

	require.NoError(t, d.process("samba.log", strings.NewReader(sampleLog+sampleLog)))
	require.NoError(t, d.out.Flush())
	assert.Equal(t, 2, strings.Count(buf.String(), "# samba.log:"))
}

func TestMalformedSkipped(t *testing.T) {
	cfg := config.Default()
	cfg.Raw = true
	d, buf := newTestDumper(t, cfg)

	require.NoError(t, d.process("bad.bin", bytes.NewReader(sampleBuffer[:10])))
	require.NoError(t, d.out.Flush())
	assert.Empty(t, buf.String())
	assert.Equal(t, 1.0, testutil.ToFloat64(d.metrics.DecodeErrors.WithLabelValues("truncated")))
}

func TestJSON(t *testing.T) {
	cfg := config.Default()
	cfg.Raw = true
	cfg.Format = config.FormatJSON
	d, buf := newTestDumper(t, cfg)

	require.NoError(t, d.process("buf.bin", bytes.NewReader(sampleBuffer)))
	require.NoError(t, d.out.Flush())

	var got jsonTransfer
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "buf.bin", got.Source)
	assert.True(t, got.Complete)
	require.Len(t, got.Nodes, 3)
	assert.Equal(t, "marker", got.Nodes[0].Kind)
	assert.Equal(t, "PidTagStartTopFld", got.Nodes[0].Name)
	assert.Equal(t, "0x3001001f", got.Nodes[1].Tag)
	assert.Equal(t, "PT_UNICODE", got.Nodes[1].Type)
	assert.Equal(t, "Inb", got.Nodes[1].Value)
	assert.Equal(t, 20, got.Nodes[2].Offset)
}

func TestSpew(t *testing.T) {
	cfg := config.Default()
	cfg.Raw = true
	cfg.Format = config.FormatSpew
	d, buf := newTestDumper(t, cfg)

	require.NoError(t, d.process("buf.bin", bytes.NewReader(sampleBuffer)))
	require.NoError(t, d.out.Flush())
	assert.Contains(t, buf.String(), "syncbuffer.Unicode")
}

func TestJSONValue(t *testing.T) {
	g := syncbuffer.GUID{1}
	tests := []struct {
		v    syncbuffer.Value
		want any
	}{
		{syncbuffer.Long(7), syncbuffer.Long(7)},
		{syncbuffer.Currency(-12345), "-1.2345"},
		{syncbuffer.Binary{0xde, 0xad}, "dead"},
		{syncbuffer.SysTime{}, nil},
		{syncbuffer.SizedXID{}, nil},
		{syncbuffer.Double(1.5), 1.5},
		{syncbuffer.Multi{Type: syncbuffer.PtString8, Values: []syncbuffer.Value{syncbuffer.String8{Value: "a"}}}, []any{"a"}},
		{syncbuffer.IDSet{{Replica: g, Ranges: syncbuffer.GLOBSet{{Low: 1, High: 2}}}}, []jsonReplica{{Replica: g.String(), Ranges: []jsonRange{{1, 2}}}}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, jsonValue(tt.v))
	}

	nan, err := json.Marshal(jsonValue(syncbuffer.Double(math.NaN())))
	require.NoError(t, err)
	assert.Equal(t, `"NaN"`, string(nan))
}
