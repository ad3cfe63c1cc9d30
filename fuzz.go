//go:build gofuzz
// +build gofuzz

package syncbuffer

import (
	"github.com/google/go-cmp/cmp"
)

func Fuzz(data []byte) int {
	s, err := Decode(data)
	if err != nil {
		return 0
	}

	total := 0
	for _, n := range s {
		if n.Size <= 0 {
			panic("node consumed no bytes")
		}
		total += n.Size
	}
	if total != len(data) {
		panic("nodes do not cover the buffer")
	}

	// decoding is a pure function of the buffer
	s2, err := Decode(data)
	if err != nil {
		panic("second decode failed: " + err.Error())
	}
	if d := cmp.Diff(s, s2, nanEqual); d != "" {
		panic("decode is not deterministic: " + d)
	}

	return 1
}

// NaN payloads compare equal to themselves
var nanEqual = cmp.Options{
	cmp.Comparer(func(a, b Float) bool { return a == b || (a != a && b != b) }),
	cmp.Comparer(func(a, b Double) bool { return a == b || (a != a && b != b) }),
	cmp.Comparer(func(a, b AppTime) bool { return a == b || (a != a && b != b) }),
}
