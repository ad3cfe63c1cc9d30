package syncbuffer

import "fmt"

// Type returns the tag's type code, without the multi-valued flag.
func (t Tag) Type() PropType { return PropType(t & typeMask) }

// IsMulti reports whether the tag has the multi-valued flag.
func (t Tag) IsMulti() bool { return t&MvFlag != 0 }

// IsNamed reports whether the tag is in the named property range.
func (t Tag) IsNamed() bool { return t >= namedFlag }

func (t Tag) String() string { return fmt.Sprintf("0x%08x", uint32(t)) }

func (p PropType) String() string {
	if s, ok := propTypeNames[p&typeMask]; ok {
		if p&MvFlag != 0 {
			return "MULTI-" + s
		}
		return s
	}
	return fmt.Sprintf("PT_0x%04x", uint16(p))
}

func isMarker(t Tag) bool {
	_, ok := markerTags[t]
	return ok
}

func isIDSet(t Tag) bool {
	_, ok := idsetTags[t]
	return ok
}

func isXID(t Tag) bool {
	_, ok := xidTags[t]
	return ok
}

// TagNames maps property tags to display names. Names only label output;
// a missing entry never changes how a tag is decoded.
type TagNames map[Tag]string

// Name returns the display name of t: from the protocol's own tables for
// markers and ICS properties, then from n.
func (n TagNames) Name(t Tag) (string, bool) {
	if s, ok := TagName(t); ok {
		return s, true
	}
	s, ok := n[t]
	return s, ok
}

// TagName returns the built-in name of a marker, ICS state or XID
// property tag.
func TagName(t Tag) (string, bool) {
	if s, ok := markerTags[t]; ok {
		return s, true
	}
	if s, ok := idsetTags[t]; ok {
		return s, true
	}
	if s, ok := xidTags[t]; ok {
		return s, true
	}
	if t == TagPredecessorChangeList {
		return "PidTagPredecessorChangeList", true
	}
	return "", false
}
