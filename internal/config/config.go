package config

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

// output formats
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatSpew = "spew"
)

// Config holds the settings of dsyncbuf.
type Config struct {
	PropertyFile string
	Format       string
	Raw          bool
	Dedup        bool
	LogLevel     string
	MetricsFile  string
}

type fileConfig struct {
	PropertyFile string `toml:"property_file"`
	Format       string `toml:"format"`
	Raw          bool   `toml:"raw"`
	Dedup        bool   `toml:"dedup"`
	LogLevel     string `toml:"log_level"`
	MetricsFile  string `toml:"metrics_file"`
}

func Default() Config {
	return Config{
		Format:   FormatText,
		Dedup:    true,
		LogLevel: "info",
	}
}

// Load reads the TOML file at path over Default. Keys missing from the
// file keep their default.
func Load(path string) (Config, error) {
	cfg := Default()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	if undec := meta.Undecoded(); len(undec) > 0 {
		return Config{}, fmt.Errorf("load config: unknown key %q", undec[0].String())
	}

	if meta.IsDefined("property_file") {
		cfg.PropertyFile = strings.TrimSpace(raw.PropertyFile)
	}
	if meta.IsDefined("format") {
		cfg.Format = strings.ToLower(strings.TrimSpace(raw.Format))
	}
	if meta.IsDefined("raw") {
		cfg.Raw = raw.Raw
	}
	if meta.IsDefined("dedup") {
		cfg.Dedup = raw.Dedup
	}
	if meta.IsDefined("log_level") {
		cfg.LogLevel = strings.ToLower(strings.TrimSpace(raw.LogLevel))
	}
	if meta.IsDefined("metrics_file") {
		cfg.MetricsFile = strings.TrimSpace(raw.MetricsFile)
	}

	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func Validate(cfg Config) error {
	switch cfg.Format {
	case FormatText, FormatJSON, FormatSpew:
	default:
		return fmt.Errorf("config: unknown format %q", cfg.Format)
	}
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: unknown log level %q", cfg.LogLevel)
	}
	return nil
}
