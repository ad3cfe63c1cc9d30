package syncbuffer

import (
	"encoding/binary"
	"unicode/utf16"
)

// builder appends wire encodings for tests.
type builder struct {
	b []byte
}

func (w *builder) bytes() []byte { return w.b }

func (w *builder) raw(b ...byte) *builder {
	w.b = append(w.b, b...)
	return w
}

func (w *builder) u16(v uint16) *builder {
	w.b = binary.LittleEndian.AppendUint16(w.b, v)
	return w
}

func (w *builder) u32(v uint32) *builder {
	w.b = binary.LittleEndian.AppendUint32(w.b, v)
	return w
}

func (w *builder) u64(v uint64) *builder {
	w.b = binary.LittleEndian.AppendUint64(w.b, v)
	return w
}

func (w *builder) tag(t Tag) *builder { return w.u32(uint32(t)) }

func (w *builder) guid(g GUID) *builder { return w.raw(g[:]...) }

// str8 appends a declared length and a NUL terminated string.
func (w *builder) str8(s string) *builder {
	w.u32(uint32(len(s) + 1))
	w.b = append(w.b, s...)
	return w.raw(0)
}

// unicode appends a declared byte length and a UTF-16LE string with its
// terminator.
func (w *builder) unicode(s string) *builder {
	units := utf16.Encode([]rune(s))
	w.u32(uint32(2*len(units) + 2))
	for _, u := range units {
		w.u16(u)
	}
	return w.u16(0)
}

func (w *builder) binary(b []byte) *builder {
	w.u32(uint32(len(b)))
	return w.raw(b...)
}

func testGUID() GUID {
	return GUID{0x33, 0x22, 0x11, 0x00, 0x55, 0x44, 0x77, 0x66, 0x88, 0x99, 0xaa, 0xbb, 0xcc, 0xdd, 0xee, 0xff}
}

const testGUIDString = "{00112233-4455-6677-8899-aabbccddeeff}"
