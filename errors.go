package syncbuffer

import (
	"errors"
	"fmt"
)

// Errors
var (
	ErrTruncated        = errors.New("syncbuffer: truncated stream")
	ErrUnhandledType    = errors.New("syncbuffer: unhandled property type")
	ErrUnknownCommand   = errors.New("syncbuffer: unknown globset command")
	ErrStackUnderflow   = errors.New("syncbuffer: globset stack underflow")
	ErrUnbalancedStack  = errors.New("syncbuffer: globset stack not empty at end")
	ErrNegativeRange    = errors.New("syncbuffer: negative globset range count")
	ErrNamedKind        = errors.New("syncbuffer: invalid named property kind")
	ErrMalformedGlobset = errors.New("syncbuffer: malformed globset")
)

// ErrUnknownType is returned by the dispatcher for a type code with no
// decoding rule. It is the same error as ErrUnhandledType.
var ErrUnknownType = ErrUnhandledType

// DecodeError is returned by Decode when a buffer could not be decoded. It
// records the node being decoded when the failure happened.
type DecodeError struct {
	Index  int // index of the node in the stream
	Offset int // byte offset of the node's tag
	Tag    Tag // zero if the tag itself could not be read
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("syncbuffer: node %d (tag 0x%08x) at offset %d: %v", e.Index, uint32(e.Tag), e.Offset, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// GlobsetError reports a stack machine failure inside an IDSet.
type GlobsetError struct {
	Replica int // index of the (GUID, GLOBSet) pair
	Offset  int // offset of the GLOBSet's first command
	Err     error
}

func (e *GlobsetError) Error() string {
	return fmt.Sprintf("%v: replica %d at offset %d: %v", ErrMalformedGlobset, e.Replica, e.Offset, e.Err)
}

func (e *GlobsetError) Unwrap() error { return e.Err }

func (e *GlobsetError) Is(target error) bool { return target == ErrMalformedGlobset }

func truncated(pos, want, have int) error {
	return fmt.Errorf("%w: need %d bytes at offset %d, have %d", ErrTruncated, want, pos, have)
}
