// Package snapshot loads a resolved crate from a YAML document so the
// extractor can run without a compiler frontend. A snapshot lists the
// crate's files, its modules parent-first with their declarations, and the
// lowered body of every function together with node source ranges.
package snapshot

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"cratefacts/internal/hir"
)

// Snapshot is a crate read from a snapshot document. It serves both as the
// crate and as the file system the crate's handles refer to.
type Snapshot struct {
	name    string
	root    hir.FileID
	baseDir string
	files   map[hir.FileID]fileEntry
	modules []*hir.Module
	bodies  map[hir.FunctionID]builtBody
}

type builtBody struct {
	body *hir.Body
	smap *hir.MapSourceMap
}

var (
	_ hir.Crate      = (*Snapshot)(nil)
	_ hir.FileSystem = (*Snapshot)(nil)
)

// Load reads a snapshot file. Relative file paths inside it resolve against
// the directory holding the snapshot.
func Load(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(filepath.Dir(path))
	if err != nil {
		return nil, err
	}
	snap, err := Parse(data, abs)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return snap, nil
}

// Parse decodes a snapshot document. Unknown fields are rejected.
func Parse(data []byte, baseDir string) (*Snapshot, error) {
	var doc document
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	return build(&doc, baseDir)
}

func build(doc *document, baseDir string) (*Snapshot, error) {
	if doc.Crate == "" {
		return nil, errors.New("snapshot: crate name is required")
	}
	s := &Snapshot{
		name:    doc.Crate,
		root:    hir.FileID(doc.Root),
		baseDir: baseDir,
		files:   make(map[hir.FileID]fileEntry, len(doc.Files)),
		bodies:  make(map[hir.FunctionID]builtBody, len(doc.Bodies)),
	}
	for _, f := range doc.Files {
		if f.ID == 0 {
			return nil, errors.New("snapshot: file id 0 is reserved")
		}
		if _, dup := s.files[hir.FileID(f.ID)]; dup {
			return nil, fmt.Errorf("snapshot: duplicate file %d", f.ID)
		}
		s.files[hir.FileID(f.ID)] = f
	}

	seen := make(map[uint32]bool, len(doc.Modules))
	functions := make(map[uint32]bool)
	for _, m := range doc.Modules {
		if m.ID == 0 || seen[m.ID] {
			return nil, fmt.Errorf("snapshot: invalid or duplicate module id %d", m.ID)
		}
		seen[m.ID] = true
		mod := &hir.Module{
			ID:         hir.ModuleID(m.ID),
			Parent:     hir.ModuleID(m.Parent),
			Name:       m.Name,
			Definition: hir.RealFile(hir.FileID(m.File)),
		}
		if m.Macro {
			mod.Definition = hir.MacroFile(hir.FileID(m.File))
		}
		for _, it := range m.Items {
			def, err := buildItem(it, functions)
			if err != nil {
				return nil, fmt.Errorf("snapshot: module %d: %w", m.ID, err)
			}
			mod.Declarations = append(mod.Declarations, def)
		}
		s.modules = append(s.modules, mod)
	}

	for i := range doc.Bodies {
		entry := &doc.Bodies[i]
		if !functions[entry.Function] {
			return nil, fmt.Errorf("snapshot: body for undeclared function %d", entry.Function)
		}
		if _, dup := s.bodies[hir.FunctionID(entry.Function)]; dup {
			return nil, fmt.Errorf("snapshot: duplicate body for function %d", entry.Function)
		}
		body, smap, err := buildBody(entry, doc.LabelFaults)
		if err != nil {
			return nil, fmt.Errorf("snapshot: function %d: %w", entry.Function, err)
		}
		s.bodies[hir.FunctionID(entry.Function)] = builtBody{body: body, smap: smap}
	}
	return s, nil
}

func buildItem(it itemEntry, functions map[uint32]bool) (hir.Def, error) {
	kind, ok := hir.ParseDefKind(it.Kind)
	if !ok {
		return nil, fmt.Errorf("unknown item kind %q", it.Kind)
	}
	if kind != hir.DefFunction {
		return &hir.Item{Kind: kind, Name: it.Name}, nil
	}
	if it.ID == 0 || functions[it.ID] {
		return nil, fmt.Errorf("invalid or duplicate function id %d", it.ID)
	}
	functions[it.ID] = true
	fn := &hir.Function{ID: hir.FunctionID(it.ID), Name: it.Name}
	if it.At != nil {
		fn.Source = it.At.inFile()
		fn.HasSource = true
	}
	return fn, nil
}

func (s *Snapshot) Name() string { return s.name }

func (s *Snapshot) RootFile() hir.FileID { return s.root }

func (s *Snapshot) Modules() []*hir.Module { return s.modules }

func (s *Snapshot) BodyWithSourceMap(fn hir.FunctionID) (*hir.Body, hir.SourceMap, bool) {
	b, ok := s.bodies[fn]
	if !ok {
		return nil, nil, false
	}
	return b.body, b.smap, true
}

// FilePath resolves a file handle to an absolute path. Files listed without
// a path are virtual.
func (s *Snapshot) FilePath(id hir.FileID) (string, bool) {
	f, ok := s.files[id]
	if !ok || f.Path == "" {
		return "", false
	}
	if filepath.IsAbs(f.Path) {
		return filepath.Clean(f.Path), true
	}
	return filepath.Join(s.baseDir, filepath.FromSlash(f.Path)), true
}

// FileText returns the inline text of a file if the snapshot carries one,
// otherwise the file's content on disk.
func (s *Snapshot) FileText(id hir.FileID) ([]byte, error) {
	f, ok := s.files[id]
	if !ok {
		return nil, fmt.Errorf("snapshot: unknown file %d", id)
	}
	if f.Text != nil {
		return []byte(*f.Text), nil
	}
	path, ok := s.FilePath(id)
	if !ok {
		return nil, fmt.Errorf("snapshot: file %d has no path", id)
	}
	return os.ReadFile(path)
}
