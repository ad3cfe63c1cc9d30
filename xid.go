package syncbuffer

import (
	"fmt"
	"strings"
)

// XID is a change identifier: a namespace GUID followed by a local id of
// up to 8 bytes.
type XID struct {
	Namespace GUID
	LocalID   []byte
}

// ParseXID parses b, the whole of an XID, whose size is len(b).
func ParseXID(b []byte) (XID, error) {
	if len(b) < guidSize {
		return XID{}, fmt.Errorf("%w: xid of %d bytes", ErrTruncated, len(b))
	}
	var x XID
	copy(x.Namespace[:], b[:guidSize])
	x.LocalID = append([]byte{}, b[guidSize:]...)
	return x, nil
}

// Counter returns the local id as an integer. The local id is stored least
// significant byte first; ids longer than 8 bytes keep their low 8 bytes.
func (x XID) Counter() uint64 {
	id := x.LocalID
	if len(id) > 8 {
		id = id[:8]
	}
	return leValue(id)
}

// LocalIDHex returns the local id as hex digits, most significant byte
// first.
func (x XID) LocalIDHex() string {
	var sb strings.Builder
	for i := len(x.LocalID) - 1; i >= 0; i-- {
		fmt.Fprintf(&sb, "%02x", x.LocalID[i])
	}
	return sb.String()
}

func (x XID) String() string {
	if len(x.LocalID) == 0 {
		return x.Namespace.String()
	}
	return x.Namespace.String() + ":0x" + x.LocalIDHex()
}

// decodeSizedXID reads a 4-byte length followed by that many bytes of XID.
func decodeSizedXID(b []byte, pos int) (SizedXID, int, error) {
	ln, err := readUint32(b, pos)
	if err != nil {
		return SizedXID{}, 0, err
	}
	v := SizedXID{Length: ln}
	if ln == 0 {
		return v, 4, nil
	}
	if err := need(b, pos+4, int(ln)); err != nil {
		return SizedXID{}, 0, err
	}
	v.XID, err = ParseXID(b[pos+4 : pos+4+int(ln)])
	if err != nil {
		return SizedXID{}, 0, err
	}
	return v, 4 + int(ln), nil
}

// decodePredecessorChangeList reads a 4-byte byte count followed by XIDs
// each prefixed by a 1-byte size.
func decodePredecessorChangeList(b []byte, pos int) (PredecessorChangeList, int, error) {
	ln, err := readUint32(b, pos)
	if err != nil {
		return nil, 0, err
	}
	if err := need(b, pos+4, int(ln)); err != nil {
		return nil, 0, err
	}

	body := b[:pos+4+int(ln)]
	list := PredecessorChangeList{}
	for idx := pos + 4; idx < len(body); {
		sz := int(body[idx])
		idx++
		if err := need(body, idx, sz); err != nil {
			return nil, 0, err
		}
		x, err := ParseXID(body[idx : idx+sz])
		if err != nil {
			return nil, 0, err
		}
		list = append(list, x)
		idx += sz
	}
	return list, 4 + int(ln), nil
}
