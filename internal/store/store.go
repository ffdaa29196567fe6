// Package store persists committed fact batches.
package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"cratefacts/internal/trap"
)

// ErrSchemaMismatch is returned when reading facts written under another
// schema version.
var ErrSchemaMismatch = errors.New("store: schema version mismatch")

// Store is a trap.Sink that can be closed.
type Store interface {
	trap.Sink
	Close() error
}

// Format selects a store implementation.
type Format string

const (
	FormatMsgpack Format = "msgpack"
	FormatSQLite  Format = "sqlite"
)

// ParseFormat accepts "msgpack" (or "mp") and "sqlite".
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "msgpack", "mp":
		return FormatMsgpack, nil
	case "sqlite", "sqlite3", "db":
		return FormatSQLite, nil
	}
	return "", fmt.Errorf("unknown output format %q (expected: msgpack|sqlite)", s)
}

// Open returns the store for format writing to path.
func Open(ctx context.Context, format Format, path string) (Store, error) {
	switch format {
	case FormatMsgpack:
		return NewFileStore(path), nil
	case FormatSQLite:
		return OpenSQLite(ctx, path)
	}
	return nil, fmt.Errorf("unknown output format %q", format)
}
