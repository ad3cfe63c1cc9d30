package syncbuffer

import (
	"go.uber.org/zap"
)

// NodeKind says how a node's tag was dispatched.
type NodeKind uint8

const (
	KindMarker NodeKind = iota
	KindIDSet
	KindXID
	KindPredecessorChangeList
	KindProperty
)

var nodeKindNames = [...]string{
	KindMarker:                "marker",
	KindIDSet:                 "idset",
	KindXID:                   "xid",
	KindPredecessorChangeList: "predecessor_change_list",
	KindProperty:              "property",
}

func (k NodeKind) String() string {
	if int(k) < len(nodeKindNames) {
		return nodeKindNames[k]
	}
	return "unknown"
}

// Node is one tag of a transfer buffer and its payload.
type Node struct {
	Index  int // position in the stream
	Offset int // offset of the tag in the buffer
	Size   int // bytes consumed, including the 4-byte tag
	Tag    Tag
	Kind   NodeKind
	Value  Value // nil for markers
}

// Stream is the decoded form of a whole transfer buffer. The Size of its
// nodes adds up to the length of the buffer.
type Stream []Node

// A Decoder decodes transfer buffers. The zero value is ready to use, and a
// Decoder may be used from several goroutines at once.
type Decoder struct {
	// Logger receives decoding diagnostics. It may be nil.
	Logger *zap.Logger
}

// NewDecoder returns a decoder with default options
func NewDecoder() *Decoder {
	return &Decoder{}
}

// Decode decodes b with a default Decoder.
func Decode(b []byte) (Stream, error) {
	return NewDecoder().Decode(b)
}

// Decode decodes the whole of b. On failure it returns a *DecodeError and
// no stream; an empty b decodes to an empty, non-nil Stream.
func (d *Decoder) Decode(b []byte) (Stream, error) {
	st := newValueState(b, d.Logger)

	stream := Stream{}
	for idx := 0; idx < len(b); {
		n, err := st.decodeNode(len(stream), idx)
		if err != nil {
			return nil, err
		}
		stream = append(stream, n)
		idx += n.Size
	}
	return stream, nil
}

func (d *valueState) decodeNode(index, idx int) (Node, error) {
	n := Node{Index: index, Offset: idx}

	tag, err := readUint32(d.b, idx)
	if err != nil {
		return Node{}, &DecodeError{Index: index, Offset: idx, Err: err}
	}
	n.Tag = Tag(tag)

	var sz int
	pos := idx + 4

	switch {
	case isMarker(n.Tag):
		n.Kind = KindMarker

	case isIDSet(n.Tag):
		n.Kind = KindIDSet
		n.Value, sz, err = DecodeIDSet(d.b, pos)

	case isXID(n.Tag):
		n.Kind = KindXID
		n.Value, sz, err = decodeSizedXID(d.b, pos)

	case n.Tag == TagPredecessorChangeList:
		n.Kind = KindPredecessorChangeList
		n.Value, sz, err = decodePredecessorChangeList(d.b, pos)

	default:
		n.Kind = KindProperty
		pt := n.Tag.Type()
		if n.Tag.IsMulti() {
			pt |= MvFlag
		}
		if n.Tag.IsNamed() {
			n.Value, sz, err = d.decodeNamed(pos, pt)
		} else {
			n.Value, sz, err = d.decodeValue(pos, pt)
		}
	}

	if err != nil {
		return Node{}, &DecodeError{Index: index, Offset: idx, Tag: n.Tag, Err: err}
	}

	n.Size = 4 + sz
	return n, nil
}
