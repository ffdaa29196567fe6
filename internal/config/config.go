// Package config loads cratefacts.toml together with .env and CRATEFACTS_*
// environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"cratefacts/internal/store"
	"cratefacts/internal/trace"
)

// FileName is the config file searched for upward from the working directory.
const FileName = "cratefacts.toml"

// Environment variables consulted by ApplyEnv.
const (
	EnvOut            = "CRATEFACTS_OUT"
	EnvFormat         = "CRATEFACTS_FORMAT"
	EnvArchive        = "CRATEFACTS_ARCHIVE"
	EnvArchiveExclude = "CRATEFACTS_ARCHIVE_EXCLUDE" // comma separated
	EnvTrace          = "CRATEFACTS_TRACE"
	EnvTraceLevel     = "CRATEFACTS_TRACE_LEVEL"
	EnvTraceFormat    = "CRATEFACTS_TRACE_FORMAT"
)

type Config struct {
	// Path is the file the config was read from; empty for defaults.
	Path    string        `toml:"-"`
	Output  OutputConfig  `toml:"output"`
	Archive ArchiveConfig `toml:"archive"`
	Trace   TraceConfig   `toml:"trace"`
}

type OutputConfig struct {
	Path   string `toml:"path"`
	Format string `toml:"format"` // msgpack | sqlite
}

type ArchiveConfig struct {
	Root    string   `toml:"root"` // directory or afs URL; empty disables archiving
	Exclude []string `toml:"exclude"`
}

type TraceConfig struct {
	Level  string `toml:"level"`
	Output string `toml:"output"` // "-" or empty for stderr
	Format string `toml:"format"`
}

// Default returns the configuration used when no file is found.
func Default() Config {
	return Config{
		Output: OutputConfig{Path: "facts.mp", Format: string(store.FormatMsgpack)},
		Trace:  TraceConfig{Level: "off", Format: "auto"},
	}
}

// Find walks up from startDir looking for FileName.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load reads the config at path, or searches for one from the working
// directory when path is empty. A .env next to the config (or in the working
// directory) is loaded first; variables already set in the environment win.
// Environment overrides are applied last.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		found, ok, err := Find(".")
		if err != nil {
			return Config{}, err
		}
		if ok {
			path = found
		}
	}

	envFile := ".env"
	if path != "" {
		envFile = filepath.Join(filepath.Dir(path), ".env")
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("%s: %w", envFile, err)
	}

	if path != "" {
		var err error
		cfg, err = LoadFile(path)
		if err != nil {
			return Config{}, err
		}
	}
	ApplyEnv(&cfg, os.LookupEnv)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadFile decodes one config file on top of the defaults. Relative paths in
// the file are taken relative to the file's directory.
func LoadFile(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return Config{}, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return Config{}, err
	}
	cfg.Path = abs
	dir := filepath.Dir(abs)
	if meta.IsDefined("output", "path") {
		cfg.Output.Path = relativeTo(dir, cfg.Output.Path)
	}
	if !strings.Contains(cfg.Archive.Root, "://") {
		cfg.Archive.Root = relativeTo(dir, cfg.Archive.Root)
	}
	if cfg.Trace.Output != "-" {
		cfg.Trace.Output = relativeTo(dir, cfg.Trace.Output)
	}
	return cfg, nil
}

func relativeTo(dir, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(dir, filepath.FromSlash(p))
}

// ApplyEnv overrides cfg with the CRATEFACTS_* variables lookup reports.
func ApplyEnv(cfg *Config, lookup func(string) (string, bool)) {
	set := func(key string, dst *string) {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			*dst = strings.TrimSpace(v)
		}
	}
	set(EnvOut, &cfg.Output.Path)
	set(EnvFormat, &cfg.Output.Format)
	set(EnvArchive, &cfg.Archive.Root)
	set(EnvTrace, &cfg.Trace.Output)
	set(EnvTraceLevel, &cfg.Trace.Level)
	set(EnvTraceFormat, &cfg.Trace.Format)

	if v, ok := lookup(EnvArchiveExclude); ok {
		var exclude []string
		for _, pattern := range strings.Split(v, ",") {
			if pattern = strings.TrimSpace(pattern); pattern != "" {
				exclude = append(exclude, pattern)
			}
		}
		cfg.Archive.Exclude = exclude
	}
}

// Validate checks the enumerated settings.
func (c Config) Validate() error {
	if c.Output.Path == "" {
		return errors.New("config: output path is empty")
	}
	if _, err := store.ParseFormat(c.Output.Format); err != nil {
		return fmt.Errorf("config: output format: %w", err)
	}
	if _, err := trace.ParseLevel(c.Trace.Level); err != nil {
		return fmt.Errorf("config: trace level: %w", err)
	}
	if _, err := trace.ParseFormat(c.Trace.Format); err != nil {
		return fmt.Errorf("config: trace format: %w", err)
	}
	return nil
}

// TracerConfig converts the trace section into a tracer configuration.
func (c Config) TracerConfig() (trace.Config, error) {
	level, err := trace.ParseLevel(c.Trace.Level)
	if err != nil {
		return trace.Config{}, err
	}
	format, err := trace.ParseFormat(c.Trace.Format)
	if err != nil {
		return trace.Config{}, err
	}
	return trace.Config{Level: level, Format: format, OutputPath: c.Trace.Output}, nil
}
