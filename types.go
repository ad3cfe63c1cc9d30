package syncbuffer

import (
	"math"
	"time"
)

// types for the values found in a transfer buffer

// Value is a decoded property value. The set of implementations is closed.
type Value interface {
	isValue()
}

// Short is a PT_SHORT value
type Short uint16

// Long is a PT_LONG value
type Long uint32

// ErrorCode is a PT_ERROR value
type ErrorCode uint32

// Float is a PT_FLOAT value
type Float float32

// Double is a PT_DOUBLE value
type Double float64

// Currency is a PT_CURRENCY value, in units of 1/10000
type Currency int64

// AppTime is a PT_APPTIME value: days since 1899-12-30 as an OLE
// automation date.
type AppTime float64

// Bool is a PT_BOOL value
type Bool bool

// Long8 is a PT_LONG8 value
type Long8 uint64

// Binary is a PT_BINARY or PT_SVREID value
type Binary []byte

// String8 is a PT_STRING8 value. Declared is the length field found on the
// wire, which is not used for parsing and may disagree with the string.
type String8 struct {
	Value    string
	Declared uint32
}

// Unicode is a PT_UNICODE value. ByteLen is the length of the string in
// bytes, without the terminator; Declared is the wire length field.
type Unicode struct {
	Value    string
	Declared uint32
	ByteLen  int
}

// SysTime is a PT_SYSTIME value in 100ns ticks since 1601-01-01 UTC.
type SysTime struct {
	Ticks uint64
}

// IsZero reports whether no time was set.
func (t SysTime) IsZero() bool { return t.Ticks == 0 }

// Unix returns the time in seconds since the Unix epoch.
func (t SysTime) Unix() int64 {
	return int64(t.Ticks/ticksPerSec) - filetimeUnix
}

// Time returns t as a time.Time, or the zero time.Time if no time is set.
func (t SysTime) Time() time.Time {
	if t.IsZero() {
		return time.Time{}
	}
	return time.Unix(t.Unix(), int64(t.Ticks%ticksPerSec)*100).UTC()
}

// oleEpoch is day zero of an OLE automation date
var oleEpoch = time.Date(1899, 12, 30, 0, 0, 0, 0, time.UTC)

// Time converts the OLE automation date to a time.Time.
func (a AppTime) Time() time.Time {
	days, frac := math.Modf(float64(a))
	return oleEpoch.AddDate(0, 0, int(days)).Add(time.Duration(math.Abs(frac) * float64(24*time.Hour)))
}

// Multi is a multi-valued property. Values all have the base type Type.
type Multi struct {
	Type   PropType
	Values []Value
}

// NamedKind says how a named property is identified within its GUID.
type NamedKind byte

const (
	NamedID   NamedKind = 0x00
	NamedName NamedKind = 0x01
)

// NamedProperty is a property identified by a GUID plus either a numeric
// id (Kind == NamedID) or a name (Kind == NamedName).
type NamedProperty struct {
	GUID  GUID
	Kind  NamedKind
	ID    uint32
	Name  string
	Value Value
}

// SizedXID is the payload of PidTagSourceKey, PidTagParentSourceKey and
// PidTagChangeKey. A zero Length means the property carried no XID.
type SizedXID struct {
	Length uint32
	XID    XID
}

// PredecessorChangeList is the payload of PidTagPredecessorChangeList.
type PredecessorChangeList []XID

func (Short) isValue()                 {}
func (Long) isValue()                  {}
func (ErrorCode) isValue()             {}
func (Float) isValue()                 {}
func (Double) isValue()                {}
func (Currency) isValue()              {}
func (AppTime) isValue()               {}
func (Bool) isValue()                  {}
func (Long8) isValue()                 {}
func (Binary) isValue()                {}
func (String8) isValue()               {}
func (Unicode) isValue()               {}
func (SysTime) isValue()               {}
func (GUID) isValue()                  {}
func (Multi) isValue()                 {}
func (NamedProperty) isValue()         {}
func (SizedXID) isValue()              {}
func (PredecessorChangeList) isValue() {}
func (IDSet) isValue()                 {}
