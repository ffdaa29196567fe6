package store

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/vmihailenco/msgpack/v5"

	"cratefacts/internal/facts"
	"cratefacts/internal/trap"
)

// fileHeader opens every fact file. Rows follow as (kind, row) pairs, then
// the locations.
type fileHeader struct {
	Schema    uint16 `msgpack:"schema"`
	Crate     string `msgpack:"crate"`
	RunID     string `msgpack:"run_id"`
	Rows      int    `msgpack:"rows"`
	Locations int    `msgpack:"locations"`
}

// FileStore writes a batch into one msgpack file. The file is replaced
// atomically: readers see either the previous content or the new batch.
type FileStore struct {
	path string
}

// NewFileStore returns a store writing to path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Write encodes b into a temp file next to the target and renames it into
// place.
func (s *FileStore) Write(ctx context.Context, b *trap.Batch) (err error) {
	if err = ctx.Err(); err != nil {
		return err
	}
	dir := filepath.Dir(s.path)
	if err = os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(dir, ".facts-*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer func() {
		if err != nil {
			_ = f.Close()
			_ = os.Remove(tmp)
		}
	}()

	w := bufio.NewWriter(f)
	if err = encodeBatch(w, b); err != nil {
		return fmt.Errorf("encode facts: %w", err)
	}
	if err = w.Flush(); err != nil {
		return err
	}
	if err = f.Sync(); err != nil {
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	// атомарная замена
	return os.Rename(tmp, s.path)
}

// Close does nothing; every Write is self-contained.
func (s *FileStore) Close() error { return nil }

func encodeBatch(w io.Writer, b *trap.Batch) error {
	enc := msgpack.NewEncoder(w)
	hdr := fileHeader{
		Schema:    b.Schema,
		Crate:     b.Crate,
		RunID:     b.RunID,
		Rows:      len(b.Rows),
		Locations: len(b.Locations),
	}
	if err := enc.Encode(&hdr); err != nil {
		return err
	}
	for _, row := range b.Rows {
		if err := enc.EncodeUint8(uint8(row.Kind())); err != nil {
			return err
		}
		if err := enc.Encode(row); err != nil {
			return fmt.Errorf("%s %s: %w", row.Kind(), row.Label(), err)
		}
	}
	for _, loc := range b.Locations {
		if err := enc.Encode(loc); err != nil {
			return err
		}
	}
	return nil
}

// ReadFile decodes a fact file written by FileStore.
func ReadFile(path string) (*trap.Batch, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	b, err := decodeBatch(bufio.NewReader(f))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return b, nil
}

func decodeBatch(r io.Reader) (*trap.Batch, error) {
	dec := msgpack.NewDecoder(r)
	var hdr fileHeader
	if err := dec.Decode(&hdr); err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	if hdr.Schema != trap.SchemaVersion {
		return nil, fmt.Errorf("%w: file has %d, want %d", ErrSchemaMismatch, hdr.Schema, trap.SchemaVersion)
	}

	b := &trap.Batch{
		Schema:    hdr.Schema,
		Crate:     hdr.Crate,
		RunID:     hdr.RunID,
		Rows:      make([]facts.Row, 0, hdr.Rows),
		Locations: make([]*facts.Location, 0, hdr.Locations),
	}
	for i := 0; i < hdr.Rows; i++ {
		kind, err := dec.DecodeUint8()
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		row, err := facts.New(facts.Kind(kind))
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		if err := dec.Decode(row); err != nil {
			return nil, fmt.Errorf("row %d (%s): %w", i, row.Kind(), err)
		}
		b.Rows = append(b.Rows, row)
	}
	for i := 0; i < hdr.Locations; i++ {
		loc := new(facts.Location)
		if err := dec.Decode(loc); err != nil {
			if errors.Is(err, io.EOF) {
				return nil, fmt.Errorf("location %d: %w", i, io.ErrUnexpectedEOF)
			}
			return nil, fmt.Errorf("location %d: %w", i, err)
		}
		b.Locations = append(b.Locations, loc)
	}
	return b, nil
}
