package syncbuffer

import "fmt"

// Range is a closed interval of 48-bit GLOBCNT values.
type Range struct {
	Low  uint64
	High uint64
}

// GLOBSet is a decoded set of GLOBCNT ranges, in the order they were encoded.
type GLOBSet []Range

// Contains reports whether v falls in any range of s.
func (s GLOBSet) Contains(v uint64) bool {
	for _, r := range s {
		if v >= r.Low && v <= r.High {
			return true
		}
	}
	return false
}

// globsetRunner executes the GLOBSet command stream. The stack holds the
// common high-order prefix of the values being emitted, least significant
// byte first, and never exceeds globcntSize bytes.
type globsetRunner struct {
	b     []byte
	start int
	pos   int

	stack  [globcntSize]byte
	depth  int              // bytes on the stack
	chunks [globcntSize]int // length of each pushed chunk
	nchunk int

	ranges GLOBSet
	done   bool
}

// DecodeGLOBSet runs the GLOBSet stack machine on b starting at pos and
// returns the decoded ranges and the number of bytes consumed, including the
// final end command.
func DecodeGLOBSet(b []byte, pos int) (GLOBSet, int, error) {
	r := globsetRunner{b: b, start: pos, pos: pos, ranges: GLOBSet{}}
	if err := r.run(); err != nil {
		return nil, 0, err
	}
	return r.ranges, r.pos - r.start, nil
}

func (r *globsetRunner) run() error {
	for !r.done {
		if err := need(r.b, r.pos, 1); err != nil {
			return err
		}
		cmd := r.b[r.pos]
		r.pos++

		var err error
		switch {
		case cmd >= globPush1 && cmd <= globPush6:
			err = r.push(int(cmd))
		case cmd == globPop:
			err = r.pop()
		case cmd == globRange:
			err = r.rangeCmd()
		case cmd == globBitmask:
			err = r.bitmask()
		case cmd == globEnd:
			err = r.end()
		default:
			err = fmt.Errorf("%w: 0x%02x at offset %d", ErrUnknownCommand, cmd, r.pos-1)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *globsetRunner) push(n int) error {
	if err := need(r.b, r.pos, n); err != nil {
		return err
	}
	if r.depth+n > globcntSize {
		return fmt.Errorf("%w: push of %d bytes onto %d stacked bytes", ErrNegativeRange, n, r.depth)
	}
	copy(r.stack[r.depth:], r.b[r.pos:r.pos+n])
	r.depth += n
	r.chunks[r.nchunk] = n
	r.nchunk++
	r.pos += n

	// a full stack is a singleton
	if r.depth == globcntSize {
		if err := r.rangeCmd(); err != nil {
			return err
		}
		return r.pop()
	}
	return nil
}

func (r *globsetRunner) pop() error {
	if r.nchunk == 0 {
		return fmt.Errorf("%w at offset %d", ErrStackUnderflow, r.pos-1)
	}
	r.nchunk--
	r.depth -= r.chunks[r.nchunk]
	return nil
}

func (r *globsetRunner) rangeCmd() error {
	missing := globcntSize - r.depth
	if missing < 0 {
		return fmt.Errorf("%w: %d", ErrNegativeRange, missing)
	}

	prefix := r.prefix()
	if missing == 0 {
		r.ranges = append(r.ranges, Range{prefix, prefix})
		return nil
	}

	if err := need(r.b, r.pos, 2*missing); err != nil {
		return err
	}
	low := prefix | leValue(r.b[r.pos:r.pos+missing])<<(8*uint(r.depth))
	r.pos += missing
	high := prefix | leValue(r.b[r.pos:r.pos+missing])<<(8*uint(r.depth))
	r.pos += missing

	r.ranges = append(r.ranges, Range{low, high})
	return nil
}

// bitmask emits the runs of set bits in the mask byte. Bit i stands for
// the value start+1+i, combined with the stacked prefix as high-order bytes.
func (r *globsetRunner) bitmask() error {
	if err := need(r.b, r.pos, 2); err != nil {
		return err
	}
	start := uint64(r.b[r.pos])
	mask := r.b[r.pos+1]
	r.pos += 2

	combined := r.prefix() << 8

	open := false
	var low, high uint64
	for i := uint(0); i < 8; i++ {
		if mask&(1<<i) != 0 {
			v := start + 1 + uint64(i)
			if !open {
				open = true
				low = v
			}
			high = v
			continue
		}
		if open {
			r.ranges = append(r.ranges, Range{combined | low, combined | high})
			open = false
		}
	}
	if open {
		r.ranges = append(r.ranges, Range{combined | low, combined | high})
	}
	return nil
}

func (r *globsetRunner) end() error {
	if r.nchunk != 0 {
		return fmt.Errorf("%w: %d bytes left", ErrUnbalancedStack, r.depth)
	}
	r.done = true
	return nil
}

func (r *globsetRunner) prefix() uint64 {
	return leValue(r.stack[:r.depth])
}

// leValue reads b as a little-endian unsigned integer of up to 8 bytes.
func leValue(b []byte) uint64 {
	var v uint64
	for i, c := range b {
		v |= uint64(c) << (8 * uint(i))
	}
	return v
}
