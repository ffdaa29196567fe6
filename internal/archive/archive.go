// Package archive mirrors referenced source files into an archive tree.
package archive

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/viant/afs"
	"github.com/viant/afs/url"
)

// Archiver copies each canonical source path into root at most once.
// A nil *Archiver archives nothing.
type Archiver struct {
	fs      afs.Service
	root    string
	exclude []string
	done    map[string]bool
}

// New returns an Archiver writing under root, which is either a local
// directory or an afs URL such as mem://localhost/archive. Paths matching
// one of the exclude globs are never archived.
func New(root string, exclude []string) (*Archiver, error) {
	if strings.TrimSpace(root) == "" {
		return nil, fmt.Errorf("archive: empty root")
	}
	for _, pattern := range exclude {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("archive: invalid exclude pattern %q", pattern)
		}
	}
	if !strings.Contains(root, "://") {
		abs, err := filepath.Abs(root)
		if err != nil {
			return nil, err
		}
		root = "file://" + filepath.ToSlash(abs)
	}
	return &Archiver{
		fs:      afs.New(),
		root:    strings.TrimSuffix(root, "/"),
		exclude: exclude,
		done:    make(map[string]bool),
	}, nil
}

// Root returns the archive root URL.
func (a *Archiver) Root() string {
	if a == nil {
		return ""
	}
	return a.root
}

// URL returns where path is mirrored.
func (a *Archiver) URL(path string) string {
	return url.Join(a.root, mirrorPath(path))
}

// Archive stores content as the mirror of path. It reports whether a copy
// was written by this call; repeated and excluded paths report false.
func (a *Archiver) Archive(ctx context.Context, path string, content []byte) (bool, error) {
	if a == nil || a.done[path] {
		return false, nil
	}
	a.done[path] = true
	if a.excluded(path) {
		return false, nil
	}
	if err := a.fs.Upload(ctx, a.URL(path), 0o644, bytes.NewReader(content)); err != nil {
		return false, fmt.Errorf("archive %s: %w", path, err)
	}
	return true, nil
}

// Archived lists the paths handed to Archive, sorted.
func (a *Archiver) Archived() []string {
	if a == nil {
		return nil
	}
	out := make([]string, 0, len(a.done))
	for p := range a.done {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// Read returns the archived copy of path.
func (a *Archiver) Read(ctx context.Context, path string) ([]byte, error) {
	return a.fs.DownloadWithURL(ctx, a.URL(path))
}

func (a *Archiver) excluded(path string) bool {
	p := filepath.ToSlash(path)
	for _, pattern := range a.exclude {
		if ok, _ := doublestar.Match(pattern, p); ok {
			return true
		}
	}
	return false
}

// mirrorPath turns an absolute path into a relative one under the root;
// a Windows drive "C:" becomes the directory "C".
func mirrorPath(path string) string {
	p := filepath.ToSlash(path)
	if len(p) >= 2 && p[1] == ':' {
		p = p[:1] + p[2:]
	}
	return strings.TrimLeft(p, "/")
}
