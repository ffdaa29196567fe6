// Package trap accumulates the facts of one crate and hands them to a store
// in a single terminal commit.
package trap

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"cratefacts/internal/facts"
	"cratefacts/internal/label"
	"cratefacts/internal/source"
)

// SchemaVersion is stamped on every batch; bump it when a row changes shape.
const SchemaVersion uint16 = 1

// ErrCommitted is returned when a buffer is used after Commit.
var ErrCommitted = errors.New("trap: buffer already committed")

// Batch is the complete fact set of one crate.
type Batch struct {
	Schema    uint16
	Crate     string
	RunID     string
	Rows      []facts.Row
	Locations []*facts.Location
}

// Sink persists a batch. Implementations must either store all of it or
// nothing.
type Sink interface {
	Write(ctx context.Context, b *Batch) error
}

// Buffer is an append-only, single-writer fact buffer.
type Buffer struct {
	alloc     label.Allocator
	batch     Batch
	counts    map[facts.Kind]int
	committed bool
}

// NewBuffer starts an empty fact set for crate.
func NewBuffer(crate string) *Buffer {
	return &Buffer{
		batch: Batch{
			Schema: SchemaVersion,
			Crate:  crate,
			RunID:  uuid.NewString(),
		},
		counts: make(map[facts.Kind]int),
	}
}

// Fresh allocates a label unique within this buffer.
func (b *Buffer) Fresh() label.Label {
	return b.alloc.Fresh()
}

// Emit appends row and returns its label. Locations go through
// EmitLocation.
func (b *Buffer) Emit(row facts.Row) label.Label {
	b.mustBeOpen()
	if !row.Label().IsValid() {
		panic(fmt.Sprintf("trap: %s row without a label", row.Kind()))
	}
	if loc, ok := row.(*facts.Location); ok {
		b.batch.Locations = append(b.batch.Locations, loc)
	} else {
		b.batch.Rows = append(b.batch.Rows, row)
	}
	b.counts[row.Kind()]++
	return row.Label()
}

// EmitLocation appends a Location row spanning start..end of file.
func (b *Buffer) EmitLocation(file label.Label, start, end source.LineCol) label.Label {
	return b.Emit(&facts.Location{
		Entity:      facts.Entity{ID: b.Fresh()},
		File:        file,
		StartLine:   start.Line,
		StartColumn: start.Col,
		EndLine:     end.Line,
		EndColumn:   end.Col,
	})
}

// Count returns how many rows of kind were emitted.
func (b *Buffer) Count(kind facts.Kind) int { return b.counts[kind] }

// Counts returns a copy of the per-kind row counts.
func (b *Buffer) Counts() map[facts.Kind]int {
	out := make(map[facts.Kind]int, len(b.counts))
	for k, v := range b.counts {
		out[k] = v
	}
	return out
}

// Len returns the number of rows emitted so far, locations included.
func (b *Buffer) Len() int { return len(b.batch.Rows) + len(b.batch.Locations) }

// Locations returns the Location rows emitted so far. The slice must not be
// modified.
func (b *Buffer) Locations() []*facts.Location { return b.batch.Locations }

// RunID identifies this run in the committed batch.
func (b *Buffer) RunID() string { return b.batch.RunID }

// Commit hands the whole batch to sink. The buffer is sealed afterwards
// whether or not the write succeeded.
func (b *Buffer) Commit(ctx context.Context, sink Sink) error {
	if b.committed {
		return ErrCommitted
	}
	b.committed = true
	if err := sink.Write(ctx, &b.batch); err != nil {
		return fmt.Errorf("commit %s: %w", b.batch.Crate, err)
	}
	return nil
}

func (b *Buffer) mustBeOpen() {
	if b.committed {
		panic(ErrCommitted)
	}
}
