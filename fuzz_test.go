package syncbuffer

import (
	"testing"
)

func FuzzDecode(f *testing.F) {
	f.Add(sampleStream())
	f.Add([]byte{})
	f.Add(new(builder).tag(TagCnsetSeen).u32(24).guid(testGUID()).raw(singletonGLOBSet...).bytes())
	f.Add(new(builder).tag(0x8001101f).guid(testGUID()).raw(0x01).unicode("n").u32(1).unicode("v").bytes())

	f.Fuzz(func(t *testing.T, b []byte) {
		s, err := Decode(b)
		if err != nil {
			if s != nil {
				t.Fatalf("stream returned with error %v", err)
			}
			return
		}
		total := 0
		for _, n := range s {
			if n.Size < 4 {
				t.Fatalf("node %d has size %d", n.Index, n.Size)
			}
			total += n.Size
		}
		if total != len(b) {
			t.Fatalf("sizes add up to %d, buffer is %d bytes", total, len(b))
		}
		_ = Dump(s)
	})
}
