package syncbuffer

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"

	"go.uber.org/zap"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

// valueState decodes values out of one buffer. It is not shared between
// goroutines.
type valueState struct {
	b   []byte
	log *zap.Logger

	latin1 *encoding.Decoder
	utf16  *encoding.Decoder
}

func newValueState(b []byte, log *zap.Logger) *valueState {
	if log == nil {
		log = zap.NewNop()
	}
	return &valueState{b: b, log: log}
}

// DecodeValue decodes one value of type pt at b[pos:], and returns it with
// the number of bytes consumed. pt may carry MvFlag.
func DecodeValue(b []byte, pos int, pt PropType) (Value, int, error) {
	return newValueState(b, nil).decodeValue(pos, pt)
}

func (d *valueState) decodeValue(pos int, pt PropType) (Value, int, error) {
	if pt&MvFlag != 0 {
		return d.decodeMulti(pos, pt&^MvFlag)
	}

	b := d.b

	switch pt {
	case PtShort:
		v, err := readUint16(b, pos)
		return Short(v), 2, err

	case PtLong:
		v, err := readUint32(b, pos)
		return Long(v), 4, err

	case PtError:
		v, err := readUint32(b, pos)
		return ErrorCode(v), 4, err

	case PtFloat:
		v, err := readUint32(b, pos)
		return Float(math.Float32frombits(v)), 4, err

	case PtDouble:
		v, err := readUint64(b, pos)
		return Double(math.Float64frombits(v)), 8, err

	case PtCurrency:
		v, err := readUint64(b, pos)
		return Currency(int64(v)), 8, err

	case PtAppTime:
		v, err := readUint64(b, pos)
		return AppTime(math.Float64frombits(v)), 8, err

	case PtBool:
		// one byte flag padded to two
		if err := need(b, pos, 2); err != nil {
			return nil, 0, err
		}
		return Bool(b[pos] != 0), 2, nil

	case PtLong8:
		v, err := readUint64(b, pos)
		return Long8(v), 8, err

	case PtSysTime:
		v, err := readUint64(b, pos)
		return SysTime{Ticks: v}, 8, err

	case PtCLSID:
		g, err := readGUID(b, pos)
		return g, guidSize, err

	case PtBinary, PtSvrEID:
		ln, err := readUint32(b, pos)
		if err != nil {
			return nil, 0, err
		}
		if err := need(b, pos+4, int(ln)); err != nil {
			return nil, 0, err
		}
		return Binary(append([]byte{}, b[pos+4:pos+4+int(ln)]...)), 4 + int(ln), nil

	case PtString8:
		return d.decodeString8(pos)

	case PtUnicode:
		return d.decodeUnicode(pos)
	}

	return nil, 0, fmt.Errorf("%w 0x%04x", ErrUnhandledType, uint16(pt))
}

func (d *valueState) decodeMulti(pos int, pt PropType) (Value, int, error) {
	count, err := readUint32(d.b, pos)
	if err != nil {
		return nil, 0, err
	}

	m := Multi{Type: pt, Values: make([]Value, 0, min(int(count), 64))}
	idx := pos + 4
	for i := 0; i < int(count); i++ {
		v, sz, err := d.decodeValue(idx, pt)
		if err != nil {
			return nil, 0, fmt.Errorf("element %d: %w", i, err)
		}
		m.Values = append(m.Values, v)
		idx += sz
	}
	return m, idx - pos, nil
}

// decodeString8 reads a declared length followed by a NUL terminated
// string. The declared length is not trusted.
func (d *valueState) decodeString8(pos int) (Value, int, error) {
	declared, err := readUint32(d.b, pos)
	if err != nil {
		return nil, 0, err
	}
	start := pos + 4
	n := bytes.IndexByte(d.b[start:], 0)
	if n < 0 {
		return nil, 0, fmt.Errorf("%w: unterminated string at offset %d", ErrTruncated, start)
	}

	if d.latin1 == nil {
		d.latin1 = charmap.ISO8859_1.NewDecoder()
	}
	s, err := d.latin1.Bytes(d.b[start : start+n])
	if err != nil {
		return nil, 0, err
	}

	d.checkDeclared(pos, declared, n+1)
	return String8{Value: string(s), Declared: declared}, 5 + n, nil
}

// decodeUnicode reads a declared length followed by a UTF-16LE string whose
// terminator is a zero code unit on an even offset.
func (d *valueState) decodeUnicode(pos int) (Value, int, error) {
	declared, err := readUint32(d.b, pos)
	if err != nil {
		return nil, 0, err
	}
	start := pos + 4
	n := -1
	for i := start; i+1 < len(d.b); i += 2 {
		if d.b[i] == 0 && d.b[i+1] == 0 {
			n = i - start
			break
		}
	}
	if n < 0 {
		return nil, 0, fmt.Errorf("%w: unterminated unicode string at offset %d", ErrTruncated, start)
	}

	if d.utf16 == nil {
		d.utf16 = unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder()
	}
	s, err := d.utf16.Bytes(d.b[start : start+n])
	if err != nil {
		return nil, 0, err
	}

	d.checkDeclared(pos, declared, n+2)
	return Unicode{Value: string(s), Declared: declared, ByteLen: n}, 6 + n, nil
}

func (d *valueState) checkDeclared(pos int, declared uint32, actual int) {
	if int(declared) != actual {
		d.log.Debug("declared string length differs from terminator",
			zap.Int("offset", pos),
			zap.Uint32("declared", declared),
			zap.Int("actual", actual))
	}
}

// decodeNamed reads the name of a named property, then its value of type pt.
func (d *valueState) decodeNamed(pos int, pt PropType) (Value, int, error) {
	g, err := readGUID(d.b, pos)
	if err != nil {
		return nil, 0, err
	}
	idx := pos + guidSize

	if err := need(d.b, idx, 1); err != nil {
		return nil, 0, err
	}
	np := NamedProperty{GUID: g, Kind: NamedKind(d.b[idx])}
	idx++

	switch np.Kind {
	case NamedID:
		v, err := readUint32(d.b, idx)
		if err != nil {
			return nil, 0, err
		}
		np.ID = v
		idx += 4
	case NamedName:
		v, sz, err := d.decodeUnicode(idx)
		if err != nil {
			return nil, 0, err
		}
		np.Name = v.(Unicode).Value
		idx += sz
	default:
		return nil, 0, fmt.Errorf("%w: 0x%02x at offset %d", ErrNamedKind, byte(np.Kind), idx-1)
	}

	v, sz, err := d.decodeValue(idx, pt)
	if err != nil {
		return nil, 0, err
	}
	np.Value = v
	idx += sz

	return np, idx - pos, nil
}

func need(b []byte, pos, n int) error {
	if pos < 0 || n < 0 || pos > len(b) || n > len(b)-pos {
		have := len(b) - pos
		if have < 0 {
			have = 0
		}
		return truncated(pos, n, have)
	}
	return nil
}

func readUint16(b []byte, pos int) (uint16, error) {
	if err := need(b, pos, 2); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b[pos:]), nil
}

func readUint32(b []byte, pos int) (uint32, error) {
	if err := need(b, pos, 4); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b[pos:]), nil
}

func readUint64(b []byte, pos int) (uint64, error) {
	if err := need(b, pos, 8); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b[pos:]), nil
}
