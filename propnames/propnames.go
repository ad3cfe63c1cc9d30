// Package propnames loads property tag names from an OpenChange
// mapi-properties definitions file.
//
// Lines that define a property start with the tag in hex, followed by
// blanks and the property's name; anything after the name is ignored, as
// are all other lines:
//
//	0x0037001e        PidTagSubject           PR_SUBJECT           ...
package propnames

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/openchange/syncbuffer"
)

// Load reads the definitions file at path.
func Load(path string) (syncbuffer.TagNames, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("propnames: %w", err)
	}
	defer f.Close()

	names, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("propnames: %s: %w", path, err)
	}
	return names, nil
}

// Parse reads definitions from r. Every PT_STRING8 property also gets a
// PT_UNICODE entry, named after it with a _UNICODE suffix.
func Parse(r io.Reader) (syncbuffer.TagNames, error) {
	names := make(syncbuffer.TagNames)

	sc := bufio.NewScanner(r)
	lineno := 0
	for sc.Scan() {
		lineno++
		line := sc.Text()
		if !strings.HasPrefix(line, "0x") {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		v, err := strconv.ParseUint(fields[0][2:], 16, 32)
		if err != nil {
			return nil, fmt.Errorf("line %d: bad tag %q: %w", lineno, fields[0], err)
		}

		tag := syncbuffer.Tag(v)
		names[tag] = fields[1]
		if tag.Type() == syncbuffer.PtString8 {
			names[tag&^0xffff|syncbuffer.Tag(syncbuffer.PtUnicode)] = fields[1] + "_UNICODE"
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return names, nil
}
