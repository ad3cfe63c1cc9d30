// Command dsyncbuf dumps ICS transfer buffers found in samba debug logs or in
// raw buffer files.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/openchange/syncbuffer/internal/capture"
	"github.com/openchange/syncbuffer/internal/config"
	"github.com/openchange/syncbuffer/internal/logging"
	"github.com/openchange/syncbuffer/propnames"
)

func main() {
	os.Exit(run())
}

func run() int {
	var (
		cfgPath     = flag.String("config", "", "TOML configuration file")
		props       = flag.String("props", "", "mapi-properties file naming property tags")
		format      = flag.String("format", config.FormatText, "output format: text, json or spew")
		raw         = flag.Bool("raw", false, "inputs are raw transfer buffers, not samba logs")
		dedup       = flag.Bool("dedup", true, "skip transfers already printed")
		metricsFile = flag.String("metrics-file", "", "write prometheus textfile metrics to this file")
		logLevel    = flag.String("log-level", "info", "debug, info, warn or error")
	)
	flag.Parse()

	cfg := config.Default()
	if *cfgPath != "" {
		var err error
		if cfg, err = config.Load(*cfgPath); err != nil {
			fmt.Fprintln(os.Stderr, "dsyncbuf:", err)
			return 2
		}
	}

	// flags given on the command line win over the file
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "props":
			cfg.PropertyFile = *props
		case "format":
			cfg.Format = *format
		case "raw":
			cfg.Raw = *raw
		case "dedup":
			cfg.Dedup = *dedup
		case "metrics-file":
			cfg.MetricsFile = *metricsFile
		case "log-level":
			cfg.LogLevel = *logLevel
		}
	})
	if err := config.Validate(cfg); err != nil {
		fmt.Fprintln(os.Stderr, "dsyncbuf:", err)
		return 2
	}

	log, err := logging.New(logging.ProfileRuntime, cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, "dsyncbuf:", err)
		return 2
	}
	defer log.Sync()

	out := bufio.NewWriter(os.Stdout)
	defer out.Flush()

	d := newDumper(cfg, log, out)
	if cfg.PropertyFile != "" {
		names, err := propnames.Load(cfg.PropertyFile)
		if err != nil {
			log.Error("cannot load property names", zap.Error(err))
			return 1
		}
		d.printer.Names = names
		log.Debug("loaded property names", zap.String("file", cfg.PropertyFile), zap.Int("count", len(names)))
	}

	status := 0
	if flag.NArg() == 0 {
		if err := d.processReader("stdin", os.Stdin); err != nil {
			log.Error("cannot process input", zap.String("source", "stdin"), zap.Error(err))
			status = 1
		}
	}
	for _, arg := range flag.Args() {
		if err := d.processFile(arg); err != nil {
			log.Error("cannot process input", zap.String("source", arg), zap.Error(err))
			status = 1
		}
	}

	if cfg.MetricsFile != "" {
		if err := d.metrics.WriteTextfile(cfg.MetricsFile); err != nil {
			log.Error("cannot write metrics", zap.String("file", cfg.MetricsFile), zap.Error(err))
			status = 1
		}
	}
	return status
}

func (d *dumper) processFile(path string) error {
	r, f, err := capture.Open(path)
	if err != nil {
		return err
	}
	defer r.Close()
	d.log.Debug("reading capture", zap.String("source", path), zap.Stringer("format", f))
	return d.process(path, r)
}

func (d *dumper) processReader(name string, in io.Reader) error {
	r, f, err := capture.NewReader(in)
	if err != nil {
		return err
	}
	defer r.Close()
	d.log.Debug("reading capture", zap.String("source", name), zap.Stringer("format", f))
	return d.process(name, r)
}
