package extract

import (
	"context"

	"github.com/minio/highwayhash"

	"cratefacts/internal/archive"
	"cratefacts/internal/facts"
	"cratefacts/internal/hir"
	"cratefacts/internal/label"
	"cratefacts/internal/source"
	"cratefacts/internal/trace"
	"cratefacts/internal/trap"
)

// digestKey keys the content digest stored on File facts. Changing it
// changes every digest.
var digestKey = []byte("cratefacts.file.digest.v1.key.32")

// FileDescriptor is a resolved source file.
type FileDescriptor struct {
	Path   string // canonical path, or the path as given when it cannot be canonicalized
	Label  label.Label
	Lines  *source.LineIndex
	Digest uint64
}

// registry resolves file handles once per run and turns byte ranges into
// Location facts.
type registry struct {
	fs       hir.FileSystem
	buf      *trap.Buffer
	archiver *archive.Archiver
	tracer   trace.Tracer
	span     uint64

	byID   map[hir.FileID]*FileDescriptor // nil value: known unresolvable
	byPath map[string]*FileDescriptor
}

func newRegistry(fs hir.FileSystem, buf *trap.Buffer, ar *archive.Archiver, tracer trace.Tracer, span uint64) *registry {
	return &registry{
		fs:       fs,
		buf:      buf,
		archiver: ar,
		tracer:   tracer,
		span:     span,
		byID:     make(map[hir.FileID]*FileDescriptor),
		byPath:   make(map[string]*FileDescriptor),
	}
}

// FileLabel is the key-derived label of a file fact.
func FileLabel(canonicalPath string) label.Label {
	return label.Key(label.Text("file;"), label.Text(canonicalPath))
}

// Resolve maps a file handle to its descriptor. The first resolution of a
// canonical path archives the file, indexes its lines and emits its File
// fact; later ones, through any handle, return the same descriptor.
func (r *registry) Resolve(ctx context.Context, id hir.FileID) (*FileDescriptor, bool) {
	if desc, seen := r.byID[id]; seen {
		return desc, desc != nil
	}
	desc := r.resolve(ctx, id)
	r.byID[id] = desc
	return desc, desc != nil
}

func (r *registry) resolve(ctx context.Context, id hir.FileID) *FileDescriptor {
	path, ok := r.fs.FilePath(id)
	if !ok {
		trace.Pointf(r.tracer, trace.ScopeModule, r.span, "unresolved-file", "file %d has no path", id)
		return nil
	}

	canonical, err := source.Canonicalize(path)
	if err != nil {
		trace.Pointf(r.tracer, trace.ScopeModule, r.span, "canonicalize-fallback", "%s: %v", path, err)
	}
	if desc, ok := r.byPath[canonical]; ok {
		return desc
	}

	content, err := r.fs.FileText(id)
	if err != nil {
		trace.Pointf(r.tracer, trace.ScopeModule, r.span, "unreadable-file", "%s: %v", canonical, err)
		return nil
	}

	if _, err := r.archiver.Archive(ctx, canonical, content); err != nil {
		trace.Point(r.tracer, trace.ScopeModule, r.span, "archive-failed", err.Error())
	}

	desc := &FileDescriptor{
		Path:   canonical,
		Label:  FileLabel(canonical),
		Lines:  source.NewLineIndex(content),
		Digest: digest(content),
	}
	r.buf.Emit(&facts.File{
		Entity: facts.Entity{ID: desc.Label},
		Name:   canonical,
		Digest: desc.Digest,
	})
	r.byPath[canonical] = desc
	return desc
}

// LocationFor emits a Location for the half-open byte range rng. The end
// position is that of the last byte in the range; an empty range ends where
// it starts.
func (r *registry) LocationFor(desc *FileDescriptor, rng source.TextRange) label.Label {
	start, end := desc.Lines.Span(rng)
	return r.buf.EmitLocation(desc.Label, start, end)
}

// Locate emits a Location for src, or returns label.None when src lies in a
// macro expansion or an unresolvable file.
func (r *registry) Locate(ctx context.Context, src hir.InFile) label.Label {
	id, ok := src.File.FileID()
	if !ok {
		return label.None
	}
	desc, ok := r.Resolve(ctx, id)
	if !ok {
		return label.None
	}
	return r.LocationFor(desc, src.Range)
}

// Paths lists the distinct files registered so far.
func (r *registry) Paths() []string {
	out := make([]string, 0, len(r.byPath))
	for p := range r.byPath {
		out = append(out, p)
	}
	return out
}

func digest(content []byte) uint64 {
	h, err := highwayhash.New64(digestKey)
	if err != nil {
		// key length is fixed above
		panic(err)
	}
	_, _ = h.Write(content)
	return h.Sum64()
}
