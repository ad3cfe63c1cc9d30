package syncbuffer

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strings"
	"time"
)

// Dump returns a human-readable dump of s.
func Dump(s Stream) string {
	var buf bytes.Buffer
	p := Printer{}
	p.Fprint(&buf, s)
	return buf.String()
}

// Printer renders a Stream as indented text, one line per marker or
// property.
type Printer struct {
	Names TagNames
	// Location is used to print PT_SYSTIME values. nil means time.Local.
	Location *time.Location
}

type printer struct {
	*Printer
	w *bufio.Writer
}

// Fprint writes the text form of s to w.
func (p *Printer) Fprint(w io.Writer, s Stream) error {
	pp := printer{Printer: p, w: bufio.NewWriter(w)}
	for _, n := range s {
		pp.node(n)
	}
	return pp.w.Flush()
}

func (p printer) printf(format string, args ...interface{}) {
	fmt.Fprintf(p.w, format, args...)
}

func (p printer) node(n Node) {
	name, known := p.Names.Name(n.Tag)

	switch n.Kind {
	case KindMarker:
		p.printf("* %08x (%s)\n", uint32(n.Tag), name)
		return

	case KindIDSet:
		p.printf("ICS %08x (%s): (%d bytes)\n", uint32(n.Tag), name, n.Size-8)
		p.idset(n.Value.(IDSet))
		return
	}

	label := n.Tag.Type()
	if n.Tag.IsMulti() {
		label |= MvFlag
	}
	if known {
		p.printf("  %08x (%s, %s): ", uint32(n.Tag), name, label)
	} else {
		p.printf("  %08x (%s): ", uint32(n.Tag), label)
	}

	switch v := n.Value.(type) {
	case SizedXID:
		if v.Length == 0 {
			p.printf("(length: 0, skipped)\n")
			return
		}
		p.printf("XID (%d):\n", v.Length)
		p.xid(v.XID)

	case PredecessorChangeList:
		p.printf("(%d bytes)\n", n.Size-8)
		for i, x := range v {
			p.printf("    XID %d:\n", i+1)
			p.xid(x)
		}

	case NamedProperty:
		p.printf("\n    named prop\n    guid: %s\n", v.GUID)
		if v.Kind == NamedID {
			p.printf("    dispid: 0x%08x\n", v.ID)
		} else {
			p.printf("    name: %q\n", v.Name)
		}
		p.printf("    ")
		p.value(v.Value)

	default:
		p.value(v)
	}
}

func (p printer) idset(set IDSet) {
	for i, e := range set {
		p.printf("  IDSET %d:\n", i)
		p.printf("    ReplGUID: %s\n", e.Replica)
		p.printf("     GLOBSET:\n")
		for j, r := range e.Ranges {
			p.printf("        %d: [0x%012x:0x%012x]\n", j, r.Low, r.High)
		}
	}
}

func (p printer) xid(x XID) {
	p.printf("      namespace GUID: %s\n", x.Namespace)
	if len(x.LocalID) > 0 {
		p.printf("             localid: 0x%s\n", x.LocalIDHex())
	}
}

func (p printer) value(v Value) {
	switch v := v.(type) {
	case Short:
		p.printf("0x%04x; %d\n", uint16(v), uint16(v))
	case Long:
		p.printf("0x%08x\n", uint32(v))
	case ErrorCode:
		p.printf("error 0x%08x\n", uint32(v))
	case Float:
		p.printf("%g\n", float32(v))
	case Double:
		p.printf("%g\n", float64(v))
	case Currency:
		c, sign := int64(v), ""
		if c < 0 {
			c, sign = -c, "-"
		}
		p.printf("%s%d.%04d\n", sign, c/10000, c%10000)
	case AppTime:
		p.printf("%s\n", v.Time().Format(time.RFC1123Z))
	case Bool:
		p.printf("%t\n", bool(v))
	case Long8:
		p.printf("0x%016x\n", uint64(v))
	case String8:
		p.printf("(%d chars, %d declared): %q\n", len([]rune(v.Value)), v.Declared, v.Value)
	case Unicode:
		p.printf("(%d chars, %d declared): %q\n", len([]rune(v.Value)), v.Declared, v.Value)
	case SysTime:
		if v.IsZero() {
			p.printf("empty time\n")
			return
		}
		loc := p.Location
		if loc == nil {
			loc = time.Local
		}
		p.printf("%s\n", v.Time().In(loc).Format(time.RFC1123Z))
	case GUID:
		p.printf("%s\n", v)
	case Binary:
		p.printf("(%d bytes)\n", len(v))
		p.hexRows(v)
	case Multi:
		p.printf("(%d entries)\n", len(v.Values))
		for i, e := range v.Values {
			p.printf("        %d> ", i)
			p.value(e)
		}
	default:
		p.printf("%v\n", v)
	}
}

// hexRows prints b eight bytes to a row, with a printable column.
func (p printer) hexRows(b []byte) {
	for len(b) > 0 {
		row := b
		if len(row) > 8 {
			row = row[:8]
		}
		b = b[len(row):]

		codes := make([]string, len(row))
		var chars strings.Builder
		for i, c := range row {
			codes[i] = fmt.Sprintf("%02x", c)
			if c > 31 && c < 128 {
				fmt.Fprintf(&chars, "%3c  ", c)
			} else {
				fmt.Fprintf(&chars, "\\x%02x ", c)
			}
		}
		pad := strings.Repeat("   ", 8-len(row))
		p.printf("            %s  %s|  %s\n", strings.Join(codes, " "), pad, chars.String())
	}
}
