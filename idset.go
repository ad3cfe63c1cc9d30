package syncbuffer

// IDSetEntry is the GLOBSet of one replica.
type IDSetEntry struct {
	Replica GUID
	Ranges  GLOBSet
}

// IDSet is a sequence of per-replica GLOBSets.
type IDSet []IDSetEntry

// DecodeIDSet reads a 4-byte length L followed by L bytes of (GUID,
// GLOBSet) pairs. It returns the set and the number of bytes consumed,
// always 4+L on success.
//
// GLOBSets carry no length of their own; each one ends where its stack
// machine reaches an end command, and may not run past the L bytes.
func DecodeIDSet(b []byte, pos int) (IDSet, int, error) {
	ln, err := readUint32(b, pos)
	if err != nil {
		return nil, 0, err
	}
	if err := need(b, pos+4, int(ln)); err != nil {
		return nil, 0, err
	}

	body := b[:pos+4+int(ln)]
	set := IDSet{}
	for idx := pos + 4; idx < len(body); {
		replica, err := readGUID(body, idx)
		if err != nil {
			return nil, 0, &GlobsetError{Replica: len(set), Offset: idx, Err: err}
		}
		idx += guidSize

		ranges, sz, err := DecodeGLOBSet(body, idx)
		if err != nil {
			return nil, 0, &GlobsetError{Replica: len(set), Offset: idx, Err: err}
		}
		idx += sz

		set = append(set, IDSetEntry{Replica: replica, Ranges: ranges})
	}
	return set, 4 + int(ln), nil
}
