package logscan

// appendHexLine appends the bytes of one hex dump line, such as
//
//	[0010] 1F 00 01 30 0E 00 00 00  49 00 6E 00 62 00 6F 00   ...0.... I.n.b.o.
//
// to b. At most 16 bytes are read. The byte columns end at the first token
// that is not two hex digits, or at a gap wider than the one separating the
// two groups of eight, which only appears before the character column.
func appendHexLine(b []byte, line string) []byte {
	i := 0
	for i < len(line) && line[i] != ']' {
		i++
	}
	i++

	const maxGap = 3
	for n := 0; n < 16 && i < len(line); n++ {
		gap := 0
		for i < len(line) && line[i] == ' ' {
			gap++
			i++
		}
		if gap == 0 || gap > maxGap || i+2 > len(line) {
			break
		}
		hi, ok1 := unhex(line[i])
		lo, ok2 := unhex(line[i+1])
		if !ok1 || !ok2 || (i+2 < len(line) && line[i+2] != ' ') {
			break
		}
		b = append(b, hi<<4|lo)
		i += 2
	}
	return b
}

func unhex(c byte) (byte, bool) {
	switch {
	case '0' <= c && c <= '9':
		return c - '0', true
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10, true
	case 'A' <= c && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}
