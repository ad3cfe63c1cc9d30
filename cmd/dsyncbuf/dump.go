package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"github.com/davecgh/go-spew/spew"
	"go.uber.org/zap"

	"github.com/openchange/syncbuffer"
	"github.com/openchange/syncbuffer/internal/config"
	"github.com/openchange/syncbuffer/internal/telemetry"
	"github.com/openchange/syncbuffer/logscan"
)

// dumper decodes the transfers of its inputs and prints them to out.
type dumper struct {
	cfg     config.Config
	log     *zap.Logger
	dec     *syncbuffer.Decoder
	printer *syncbuffer.Printer
	metrics *telemetry.Metrics
	out     *bufio.Writer
	seen    map[uint64]struct{}
}

func newDumper(cfg config.Config, log *zap.Logger, out *bufio.Writer) *dumper {
	return &dumper{
		cfg:     cfg,
		log:     log,
		dec:     &syncbuffer.Decoder{Logger: log},
		printer: &syncbuffer.Printer{},
		metrics: telemetry.New(),
		out:     out,
		seen:    make(map[uint64]struct{}),
	}
}

// process prints every transfer read from r. A transfer that fails to
// decode is logged and skipped; only read errors are returned.
func (d *dumper) process(name string, r io.Reader) error {
	if d.cfg.Raw {
		b, err := io.ReadAll(r)
		if err != nil {
			return err
		}
		return d.transfer(name, &logscan.Transfer{Data: b, Blocks: []int{0}, Complete: true})
	}

	sc := logscan.NewScanner(r)
	for sc.Scan() {
		if err := d.transfer(name, sc.Transfer()); err != nil {
			return err
		}
	}
	return sc.Err()
}

func (d *dumper) transfer(name string, t *logscan.Transfer) error {
	log := d.log.With(zap.String("source", name), zap.Int("line", t.Line))

	if !t.Complete {
		log.Warn("transfer has no final block", zap.Int("blocks", len(t.Blocks)))
	}

	if d.cfg.Dedup {
		fp := t.Fingerprint()
		if _, ok := d.seen[fp]; ok {
			log.Debug("skipping repeated transfer", zap.Uint64("fingerprint", fp))
			d.metrics.ObserveSkipped("duplicate")
			return nil
		}
		d.seen[fp] = struct{}{}
	}

	s, err := d.dec.Decode(t.Data)
	if err != nil {
		log.Warn("skipping malformed transfer", zap.Int("bytes", len(t.Data)), zap.Error(err))
		d.metrics.ObserveError(err)
		return nil
	}
	d.metrics.Observe(s)

	switch d.cfg.Format {
	case config.FormatJSON:
		return json.NewEncoder(d.out).Encode(newJSONTransfer(name, t, s, d.printer.Names))
	case config.FormatSpew:
		fmt.Fprintf(d.out, "# %s:%d\n", name, t.Line)
		spew.Fdump(d.out, s)
		return nil
	default:
		fmt.Fprintf(d.out, "# %s:%d (%d bytes)\n", name, t.Line, len(t.Data))
		return d.printer.Fprint(d.out, s)
	}
}
