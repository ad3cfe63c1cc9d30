package syncbuffer

import (
	"encoding/binary"
	"fmt"
)

// GUID is a 16-byte GUID in its wire layout: a little-endian uint32 and two
// little-endian uint16s followed by 8 bytes in network order.
type GUID [guidSize]byte

// String returns the canonical {aaaaaaaa-bbbb-cccc-dddd-eeeeeeeeeeee} form.
func (g GUID) String() string {
	return fmt.Sprintf("{%08x-%04x-%04x-%04x-%04x%08x}",
		binary.LittleEndian.Uint32(g[0:4]),
		binary.LittleEndian.Uint16(g[4:6]),
		binary.LittleEndian.Uint16(g[6:8]),
		binary.BigEndian.Uint16(g[8:10]),
		binary.BigEndian.Uint16(g[10:12]),
		binary.BigEndian.Uint32(g[12:16]))
}

func readGUID(b []byte, pos int) (GUID, error) {
	var g GUID
	if err := need(b, pos, guidSize); err != nil {
		return g, err
	}
	copy(g[:], b[pos:pos+guidSize])
	return g, nil
}
