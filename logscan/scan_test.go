package logscan

import (
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const replyHead = `[2011/06/01 10:00:00,  0] ../mapiproxy/servers/default/emsmdb/oxcfxics.c:1234(EcDoRpc_RopFastTransferSourceGetBuffer)
      mapi_FastTransferSourceGetBuffer: struct FastTransferSourceGetBuffer_repl
          TransferStatus           : %s (0x%d)
          InProgressCount          : 0x0000 (0)
          TotalStepCount           : 0x0000 (0)
          Reserved                 : 0x00 (0)
          TransferBuffer           : DATA_BLOB length=%d
`

func reply(status string, code, n int, dump string) string {
	head := strings.NewReplacer("%s", status, "%d)", strconv.Itoa(code)+")", "length=%d", "length="+strconv.Itoa(n)).Replace(replyHead)
	return head + dump + "      mapi_response: the end\n"
}

const dumpA = "[0000] 03 00 09 40 1F 00 01 30  0E 00 00 00 49 00 6E 00   ...@...0 ....I.n.\n" +
	"[0010] 62 00 00 00                                        b...\n"

const dumpB = "[0000] 03 00 0B 40                                        ...@\n"

func TestScanSingleReply(t *testing.T) {
	log := "noise\n" + reply("TransferStatus_Done", 3, 20, dumpA) + "trailing noise\n"

	s := NewScanner(strings.NewReader(log))
	require.True(t, s.Scan())
	tr := s.Transfer()
	assert.True(t, tr.Complete)
	assert.Equal(t, 3, tr.Line)
	assert.Equal(t, []int{0}, tr.Blocks)
	assert.Equal(t, []byte{
		0x03, 0x00, 0x09, 0x40, 0x1f, 0x00, 0x01, 0x30,
		0x0e, 0x00, 0x00, 0x00, 0x49, 0x00, 0x6e, 0x00,
		0x62, 0x00, 0x00, 0x00,
	}, tr.Data)

	assert.False(t, s.Scan())
	assert.NoError(t, s.Err())
}

func TestScanMergesPartialReplies(t *testing.T) {
	log := reply("TransferStatus_Partial", 1, 20, dumpA) +
		"unrelated line\n" +
		reply("TransferStatus_Done", 3, 4, dumpB)

	s := NewScanner(strings.NewReader(log))
	require.True(t, s.Scan())
	tr := s.Transfer()
	assert.True(t, tr.Complete)
	assert.Equal(t, []int{0, 20}, tr.Blocks)
	require.Len(t, tr.Data, 24)
	assert.Equal(t, []byte{0x03, 0x00, 0x0b, 0x40}, tr.Data[20:])
	assert.False(t, s.Scan())
}

func TestScanSeveralTransfers(t *testing.T) {
	log := reply("TransferStatus_Done", 3, 20, dumpA) + reply("TransferStatus_Done", 3, 4, dumpB)

	var got [][]byte
	s := NewScanner(strings.NewReader(log))
	for s.Scan() {
		got = append(got, s.Transfer().Data)
	}
	require.NoError(t, s.Err())
	require.Len(t, got, 2)
	assert.Len(t, got[0], 20)
	assert.Equal(t, []byte{0x03, 0x00, 0x0b, 0x40}, got[1])
}

func TestScanIncompleteAtEOF(t *testing.T) {
	log := reply("TransferStatus_Partial", 1, 20, dumpA)
	// cut the closing line so the log ends inside the hex dump
	log = log[:strings.LastIndex(log, "      mapi_response")]

	s := NewScanner(strings.NewReader(log))
	require.True(t, s.Scan())
	tr := s.Transfer()
	assert.False(t, tr.Complete)
	assert.Len(t, tr.Data, 20)
	assert.False(t, s.Scan())
}

func TestScanNothing(t *testing.T) {
	s := NewScanner(strings.NewReader("just\nsome\nlog lines\n"))
	assert.False(t, s.Scan())
	assert.Nil(t, s.Transfer())
	assert.NoError(t, s.Err())
}

func TestFingerprint(t *testing.T) {
	a := &Transfer{Data: []byte{1, 2, 3}}
	b := &Transfer{Data: []byte{1, 2, 3}}
	c := &Transfer{Data: []byte{1, 2, 4}}
	assert.Equal(t, a.Fingerprint(), b.Fingerprint())
	assert.NotEqual(t, a.Fingerprint(), c.Fingerprint())
}

func TestAppendHexLine(t *testing.T) {
	tests := []struct {
		line string
		want []byte
	}{
		{"[0000] 03 00 09 40 1F 00 01 30  0E 00 00 00 49 00 6E 00   ...@...0 ....I.n.", []byte{3, 0, 9, 0x40, 0x1f, 0, 1, 0x30, 0x0e, 0, 0, 0, 0x49, 0, 0x6e, 0}},
		{"[0010] 41 42                                              AB", []byte{0x41, 0x42}},
		{"[0010] 41 42 43 44 45 46 47 48  49                        ABCDEFGH I", []byte{0x41, 0x42, 0x43, 0x44, 0x45, 0x46, 0x47, 0x48, 0x49}},
		{"[0020]", nil},
		{"no bracket", nil},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, appendHexLine(nil, tt.line), tt.line)
	}
}

func TestMerger(t *testing.T) {
	m := NewMerger()
	require.NoError(t, m.Append([]byte{1, 2}))
	require.NoError(t, m.Append(nil))
	require.NoError(t, m.Append([]byte{3}))
	assert.Equal(t, 3, m.Blocks())
	assert.Equal(t, []int{0, 2, 2}, m.BlockOffsets())
	assert.Equal(t, []byte{1, 2, 3}, m.Finish())
	assert.Error(t, m.Append([]byte{4}))
}
