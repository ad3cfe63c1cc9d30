package logscan

import (
	"errors"
)

// A Merger joins the data blocks of consecutive GetBuffer replies into the
// transfer buffer they were cut from. Block boundaries carry no meaning in
// the stream and may fall anywhere, even inside a property value.
type Merger struct {
	blocks    []int
	finalized bool
	buf       []byte
}

// NewMerger returns an empty merger
func NewMerger() *Merger {
	return &Merger{buf: make([]byte, 0, 512)}
}

// Append adds the next block of the transfer.
func (m *Merger) Append(b []byte) error {
	if m.finalized {
		return errors.New("logscan: append to finished transfer")
	}
	m.buf = append(m.buf, b...)
	m.blocks = append(m.blocks, len(b))
	return nil
}

// Blocks returns the number of blocks appended so far.
func (m *Merger) Blocks() int { return len(m.blocks) }

// BlockOffsets returns the offset in the merged buffer at which each block
// starts.
func (m *Merger) BlockOffsets() []int {
	offs := make([]int, len(m.blocks))
	pos := 0
	for i, n := range m.blocks {
		offs[i] = pos
		pos += n
	}
	return offs
}

// Finish returns the merged buffer. No more blocks can be appended.
func (m *Merger) Finish() []byte {
	m.finalized = true
	return m.buf
}
