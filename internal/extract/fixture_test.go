package extract_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"cratefacts/internal/facts"
	"cratefacts/internal/hir"
	"cratefacts/internal/label"
	"cratefacts/internal/source"
	"cratefacts/internal/trap"
)

type memFS struct {
	paths map[hir.FileID]string
	texts map[hir.FileID][]byte
}

func newMemFS() *memFS {
	return &memFS{paths: map[hir.FileID]string{}, texts: map[hir.FileID][]byte{}}
}

func (fs *memFS) FilePath(id hir.FileID) (string, bool) {
	p, ok := fs.paths[id]
	return p, ok
}

func (fs *memFS) FileText(id hir.FileID) ([]byte, error) {
	text, ok := fs.texts[id]
	if !ok {
		return nil, errors.New("no such file")
	}
	return text, nil
}

// addFile writes text to name under dir and registers it as id.
func (fs *memFS) addFile(t *testing.T, dir string, id hir.FileID, name, text string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(text), 0o644))
	fs.paths[id] = path
	fs.texts[id] = []byte(text)
	return path
}

type fnBody struct {
	body *hir.Body
	smap hir.SourceMap
}

type testCrate struct {
	name    string
	root    hir.FileID
	modules []*hir.Module
	bodies  map[hir.FunctionID]fnBody
}

func (c *testCrate) Name() string           { return c.name }
func (c *testCrate) RootFile() hir.FileID   { return c.root }
func (c *testCrate) Modules() []*hir.Module { return c.modules }

func (c *testCrate) BodyWithSourceMap(fn hir.FunctionID) (*hir.Body, hir.SourceMap, bool) {
	b, ok := c.bodies[fn]
	if !ok {
		return nil, nil, false
	}
	return b.body, b.smap, true
}

type captureSink struct {
	batches []*trap.Batch
	err     error
}

func (s *captureSink) Write(_ context.Context, b *trap.Batch) error {
	if s.err != nil {
		return s.err
	}
	s.batches = append(s.batches, b)
	return nil
}

func (s *captureSink) last(t *testing.T) *trap.Batch {
	t.Helper()
	require.NotEmpty(t, s.batches)
	return s.batches[len(s.batches)-1]
}

// index gives label lookups over a committed batch.
type index struct {
	rows map[label.Label]facts.Row
	locs map[label.Label]*facts.Location
}

func indexBatch(b *trap.Batch) *index {
	ix := &index{rows: map[label.Label]facts.Row{}, locs: map[label.Label]*facts.Location{}}
	for _, r := range b.Rows {
		ix.rows[r.Label()] = r
	}
	for _, l := range b.Locations {
		ix.locs[l.ID] = l
	}
	return ix
}

func (ix *index) ofKind(k facts.Kind) []facts.Row {
	var out []facts.Row
	for _, r := range ix.rows {
		if r.Kind() == k {
			out = append(out, r)
		}
	}
	return out
}

// span returns start line, start col, end line, end col of r's location.
func (ix *index) span(t *testing.T, r facts.Row) [4]uint32 {
	t.Helper()
	l, ok := ix.locs[r.Loc()]
	require.True(t, ok, "%s %s has no location", r.Kind(), r.Label())
	return [4]uint32{l.StartLine, l.StartColumn, l.EndLine, l.EndColumn}
}

// inText places the first occurrence of needle in text as a range of file.
func inText(t *testing.T, file hir.FileID, text, needle string) hir.InFile {
	t.Helper()
	off := strings.Index(text, needle)
	require.GreaterOrEqual(t, off, 0, "%q not in text", needle)
	return hir.InFile{
		File:  hir.RealFile(file),
		Range: source.NewRange(source.Offset(off), source.Offset(off+len(needle))),
	}
}

func canonical(t *testing.T, path string) string {
	t.Helper()
	p, err := source.Canonicalize(path)
	require.NoError(t, err)
	return p
}
