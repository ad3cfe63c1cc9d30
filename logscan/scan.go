package logscan

import (
	"bufio"
	"io"
	"strings"

	"github.com/dchest/siphash"
)

// markers of the reply structure in the log
const (
	replyStart     = "mapi_FastTransferSourceGetBuffer: struct FastTransferSourceGetBuffer_repl"
	transferStatus = "TransferStatus"
	statusDone     = "TransferStatus_Done"
	dataBlob       = "DATA_BLOB"
)

type state int

const (
	stateStart state = iota
	statePreResponse
	stateResponse
)

// Transfer is one ICS transfer buffer recovered from a log.
type Transfer struct {
	Line     int    // line number of the first reply, from 1
	Blocks   []int  // offset in Data of each reply's block
	Data     []byte // the merged buffer
	Complete bool   // the last reply had TransferStatus_Done
}

// fixed key: fingerprints only need to be stable within a process
const fpKey0, fpKey1 = 0x0706050403020100, 0x0f0e0d0c0b0a0908

// Fingerprint returns a 64-bit hash of the transfer data.
func (t *Transfer) Fingerprint() uint64 {
	return siphash.Hash(fpKey0, fpKey1, t.Data)
}

// Scanner reads Transfers out of a samba log, in the style of bufio.Scanner.
type Scanner struct {
	lines *bufio.Scanner
	line  int

	state     state
	lastBlock bool
	merger    *Merger
	block     []byte
	first     int

	cur *Transfer
	err error
}

// maxLine bounds the length of a single log line
const maxLine = 1 << 20

// NewScanner returns a Scanner reading from r.
func NewScanner(r io.Reader) *Scanner {
	ls := bufio.NewScanner(r)
	ls.Buffer(make([]byte, 0, 64*1024), maxLine)
	return &Scanner{lines: ls}
}

// Scan advances to the next transfer. It returns false at the end of the
// input or on a read error. A transfer still open at the end of the input is
// returned with Complete set to false.
func (s *Scanner) Scan() bool {
	s.cur = nil
	for s.lines.Scan() {
		s.line++
		if t := s.feed(s.lines.Text()); t != nil {
			s.cur = t
			return true
		}
	}
	if err := s.lines.Err(); err != nil {
		s.err = err
		return false
	}

	// flush a block or transfer cut short by the end of the log
	if s.state == stateResponse {
		s.endBlock()
	}
	if s.merger != nil && s.merger.Blocks() > 0 {
		s.cur = s.finish(false)
		return true
	}
	return false
}

// Transfer returns the transfer found by the last call to Scan.
func (s *Scanner) Transfer() *Transfer { return s.cur }

// Err returns the first read error.
func (s *Scanner) Err() error { return s.err }

func (s *Scanner) feed(line string) *Transfer {
	switch s.state {
	case stateStart:
		if strings.Contains(line, replyStart) {
			s.state = statePreResponse
			if s.merger == nil {
				s.merger = NewMerger()
				s.first = s.line
			}
		}

	case statePreResponse:
		if strings.Contains(line, transferStatus) {
			if strings.Contains(line, statusDone) {
				s.lastBlock = true
			}
		} else if strings.Contains(line, dataBlob) {
			s.state = stateResponse
			s.block = s.block[:0]
		}

	case stateResponse:
		if strings.HasPrefix(line, "[") {
			s.block = appendHexLine(s.block, line)
			return nil
		}
		s.endBlock()
		if s.lastBlock {
			return s.finish(true)
		}
		// the line closing a block may open the next reply
		return s.feed(line)
	}
	return nil
}

func (s *Scanner) endBlock() {
	s.merger.Append(s.block)
	s.block = s.block[:0]
	s.state = stateStart
}

func (s *Scanner) finish(complete bool) *Transfer {
	t := &Transfer{
		Line:     s.first,
		Blocks:   s.merger.BlockOffsets(),
		Data:     s.merger.Finish(),
		Complete: complete,
	}
	s.merger = nil
	s.lastBlock = false
	s.state = stateStart
	return t
}
