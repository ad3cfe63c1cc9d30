// Command fuzzer feeds random transfer buffers to the decoder and printer,
// and minimises any input that makes them panic.
package main

import (
	"encoding/binary"
	"encoding/hex"
	"flag"
	"fmt"
	mrand "math/rand"
	"os"
	"time"

	"github.com/dgryski/go-ddmin"
	"go.uber.org/zap"

	"github.com/openchange/syncbuffer"
	"github.com/openchange/syncbuffer/internal/logging"
)

// tags worth hitting more often than chance would
var interesting = []syncbuffer.Tag{
	syncbuffer.TagStartMessage,
	syncbuffer.TagEndMessage,
	syncbuffer.TagIdsetGiven,
	syncbuffer.TagCnsetSeen,
	syncbuffer.TagSourceKey,
	syncbuffer.TagChangeKey,
	syncbuffer.TagPredecessorChangeList,
	0x0e080003, // long
	0x3001001f, // unicode
	0x0037001e, // string8
	0x30070040, // systime
	0x8001101f, // named multi unicode
	0x80020102, // named binary
}

func main() {
	iterations := flag.Int("n", 0, "number of inputs to try, 0 for no limit")
	seed := flag.Int64("seed", time.Now().UnixNano(), "random seed")
	maxLen := flag.Int("max", 200, "maximum input length")
	flag.Parse()

	log, err := logging.New(logging.ProfileRuntime, "info")
	if err != nil {
		fmt.Fprintln(os.Stderr, "fuzzer:", err)
		os.Exit(2)
	}
	defer log.Sync()

	rnd := mrand.New(mrand.NewSource(*seed))
	log.Info("fuzzing", zap.Int64("seed", *seed))

	var decoded, failed int
	for i := 0; *iterations == 0 || i < *iterations; i++ {
		doc := generate(rnd, *maxLen)
		crashed, err := check(doc)
		if crashed {
			small := ddmin.Minimize(doc, func(d []byte) ddmin.Result {
				if c, _ := check(d); c {
					return ddmin.Fail
				}
				return ddmin.Pass
			})
			log.Error("decoder panicked", zap.Int("iteration", i), zap.Error(err))
			fmt.Println(hex.Dump(small))
			os.Exit(1)
		}
		if err != nil {
			failed++
		} else {
			decoded++
		}
		if (i+1)%100000 == 0 {
			log.Info("progress", zap.Int("decoded", decoded), zap.Int("failed", failed))
		}
	}
	log.Info("done", zap.Int("decoded", decoded), zap.Int("failed", failed))
}

// check decodes and prints b, turning a panic into an error.
func check(b []byte) (crashed bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			crashed, err = true, fmt.Errorf("panic: %v", r)
		}
	}()
	s, err := syncbuffer.Decode(b)
	if err != nil {
		return false, err
	}
	_ = syncbuffer.Dump(s)
	return false, nil
}

// generate builds a stream of tags followed by short random payloads, with
// a bias towards lengths that fit the rest of the buffer.
func generate(rnd *mrand.Rand, maxLen int) []byte {
	var b []byte
	for len(b) < maxLen {
		var tag syncbuffer.Tag
		if rnd.Intn(4) == 0 {
			tag = syncbuffer.Tag(rnd.Uint32())
		} else {
			tag = interesting[rnd.Intn(len(interesting))]
		}
		b = binary.LittleEndian.AppendUint32(b, uint32(tag))

		n := rnd.Intn(40)
		if rnd.Intn(2) == 0 {
			b = binary.LittleEndian.AppendUint32(b, uint32(n))
		}
		payload := make([]byte, n)
		rnd.Read(payload)
		b = append(b, payload...)
	}
	return b
}
