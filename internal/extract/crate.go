// Package extract translates a resolved crate into facts.
//
// ExtractCrate registers the crate's root file, walks every module after its
// parent, lowers each function body into expression, pattern and statement
// rows and finally commits the whole fact set in one step. Files, modules
// and functions get key-derived labels that are stable across runs; all
// other rows get fresh labels.
package extract

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"

	"cratefacts/internal/archive"
	"cratefacts/internal/facts"
	"cratefacts/internal/hir"
	"cratefacts/internal/label"
	"cratefacts/internal/observ"
	"cratefacts/internal/trace"
	"cratefacts/internal/trap"
)

// ErrParentNotVisited is returned when a module is listed before its parent.
var ErrParentNotVisited = errors.New("extract: module listed before its parent")

// Options configures one extraction run.
type Options struct {
	// Sink receives the committed facts. Required.
	Sink trap.Sink
	// Archiver mirrors source files; nil disables archiving.
	Archiver *archive.Archiver
	// Timer records phase durations; may be nil.
	Timer *observ.Timer
}

// Result summarizes a committed run.
type Result struct {
	Crate     string
	RunID     string
	Facts     int
	Counts    map[facts.Kind]int
	Files     []string
	Modules   int
	Functions int
}

type extractor struct {
	crate  hir.Crate
	buf    *trap.Buffer
	reg    *registry
	tracer trace.Tracer
	span   uint64

	modules map[hir.ModuleID]label.Label
	stats   struct{ modules, functions int }
}

// ExtractCrate translates crate and commits its facts to opts.Sink. On any
// error nothing is committed.
func ExtractCrate(ctx context.Context, crate hir.Crate, fs hir.FileSystem, opts Options) (*Result, error) {
	if opts.Sink == nil {
		return nil, errors.New("extract: no sink configured")
	}
	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopeDriver, "extract:"+crate.Name(), trace.CurrentSpan(ctx))
	defer span.End("")

	buf := trap.NewBuffer(crate.Name())
	x := &extractor{
		crate:   crate,
		buf:     buf,
		reg:     newRegistry(fs, buf, opts.Archiver, tracer, span.ID()),
		tracer:  tracer,
		span:    span.ID(),
		modules: make(map[hir.ModuleID]label.Label),
	}

	idx := opts.Timer.Begin("root-file")
	if _, ok := x.reg.Resolve(ctx, crate.RootFile()); !ok {
		trace.Pointf(tracer, trace.ScopeDriver, span.ID(), "root-file", "root file %d is not resolvable", crate.RootFile())
	}
	opts.Timer.End(idx, "")

	idx = opts.Timer.Begin("modules")
	for _, m := range crate.Modules() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := x.emitModule(ctx, m); err != nil {
			opts.Timer.End(idx, "failed")
			return nil, err
		}
	}
	opts.Timer.End(idx, fmt.Sprintf("%d modules, %d functions", x.stats.modules, x.stats.functions))

	idx = opts.Timer.Begin("commit")
	err := buf.Commit(ctx, opts.Sink)
	opts.Timer.End(idx, strconv.Itoa(buf.Len())+" facts")
	if err != nil {
		return nil, err
	}

	files := x.reg.Paths()
	sort.Strings(files)
	span.WithExtra("facts", strconv.Itoa(buf.Len()))
	return &Result{
		Crate:     crate.Name(),
		RunID:     buf.RunID(),
		Facts:     buf.Len(),
		Counts:    buf.Counts(),
		Files:     files,
		Modules:   x.stats.modules,
		Functions: x.stats.functions,
	}, nil
}
