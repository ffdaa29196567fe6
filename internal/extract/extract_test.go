package extract_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cratefacts/internal/archive"
	"cratefacts/internal/extract"
	"cratefacts/internal/facts"
	"cratefacts/internal/hir"
	"cratefacts/internal/label"
	"cratefacts/internal/observ"
	"cratefacts/internal/store"
	"cratefacts/internal/trap"
)

const addOneSrc = "fn f(x: i32) -> i32 { x + 1 }\n"

// addOneCrate is a single-file crate whose root declares `f(x) { x + 1 }`.
func addOneCrate(t *testing.T) (*testCrate, *memFS, string) {
	t.Helper()
	fs := newMemFS()
	path := fs.addFile(t, t.TempDir(), 1, "lib.rs", addOneSrc)

	body := hir.NewBody()
	smap := hir.NewMapSourceMap()
	x := body.AddExpr(hir.PathData{Path: "x"})
	one := body.AddExpr(hir.LiteralData{Text: "1"})
	add := body.AddExpr(hir.BinaryOpData{Op: hir.BinaryAdd, Lhs: x, Rhs: one})
	block := body.AddExpr(hir.BlockData{Tail: add})
	body.Root = block
	body.Params = []hir.PatID{body.AddPat(hir.BindPatData{Binding: body.AddBinding("x")})}

	smap.Exprs[x] = narrow(inText(t, 1, addOneSrc, "x + 1"), 1)
	smap.Exprs[one] = narrow(inText(t, 1, addOneSrc, "1 }"), 1)
	smap.Exprs[add] = inText(t, 1, addOneSrc, "x + 1")
	smap.Exprs[block] = inText(t, 1, addOneSrc, "{ x + 1 }")

	crate := &testCrate{
		name: "demo",
		root: 1,
		modules: []*hir.Module{{
			ID:         1,
			Definition: hir.RealFile(1),
			Declarations: []hir.Def{&hir.Function{
				ID:        1,
				Name:      "f",
				Source:    inText(t, 1, addOneSrc, strings.TrimSpace(addOneSrc)),
				HasSource: true,
			}},
		}},
		bodies: map[hir.FunctionID]fnBody{1: {body: body, smap: smap}},
	}
	return crate, fs, path
}

func narrow(src hir.InFile, n uint32) hir.InFile {
	src.Range.End = src.Range.Start + n
	return src
}

func TestAddOneFunction(t *testing.T) {
	crate, fs, path := addOneCrate(t)
	sink := &captureSink{}

	res, err := extract.ExtractCrate(context.Background(), crate, fs, extract.Options{Sink: sink})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Functions)
	assert.Equal(t, 1, res.Modules)
	assert.Equal(t, []string{canonical(t, path)}, res.Files)

	ix := indexBatch(sink.last(t))
	fns := ix.ofKind(facts.KindFunction)
	require.Len(t, fns, 1)
	fn := fns[0].(*facts.Function)
	assert.Equal(t, "f", fn.Name)
	assert.Equal(t, [4]uint32{1, 1, 1, 29}, ix.span(t, fn))

	block, ok := ix.rows[fn.Body].(*facts.Block)
	require.True(t, ok, "body is %T", ix.rows[fn.Body])
	assert.Empty(t, block.Statements)
	assert.False(t, block.LabelRef.IsValid())
	assert.Equal(t, [4]uint32{1, 21, 1, 29}, ix.span(t, block))

	bin, ok := ix.rows[block.Tail].(*facts.BinaryOp)
	require.True(t, ok)
	assert.Equal(t, "+", bin.Op)
	assert.Equal(t, [4]uint32{1, 23, 1, 27}, ix.span(t, bin))

	lhs, ok := ix.rows[bin.Lhs].(*facts.Path)
	require.True(t, ok)
	assert.Equal(t, "x", lhs.Text)
	assert.Equal(t, [4]uint32{1, 23, 1, 23}, ix.span(t, lhs))

	rhs, ok := ix.rows[bin.Rhs].(*facts.Literal)
	require.True(t, ok)
	assert.Equal(t, "1", rhs.Text)
	assert.Equal(t, [4]uint32{1, 27, 1, 27}, ix.span(t, rhs))

	assert.Equal(t, 1, res.Counts[facts.KindFile])
	assert.Equal(t, 5, res.Counts[facts.KindLocation])
	for _, l := range ix.locs {
		assert.Equal(t, extract.FileLabel(canonical(t, path)), l.File)
	}
}

func TestChildrenPrecedeParents(t *testing.T) {
	crate, fs, _ := addOneCrate(t)
	sink := &captureSink{}
	_, err := extract.ExtractCrate(context.Background(), crate, fs, extract.Options{Sink: sink})
	require.NoError(t, err)
	assertNoForwardRefs(t, sink.last(t))
}

// assertNoForwardRefs checks that every label a row points at belongs to a
// location or to a row emitted earlier in the batch.
func assertNoForwardRefs(t *testing.T, b *trap.Batch) {
	t.Helper()
	seen := map[label.Label]bool{}
	for _, l := range b.Locations {
		seen[l.ID] = true
	}
	for _, r := range b.Rows {
		for _, ref := range refs(r) {
			if ref.IsValid() {
				assert.True(t, seen[ref], "%s %s references %s before it exists", r.Kind(), r.Label(), ref)
			}
		}
		seen[r.Label()] = true
	}
}

func refs(r facts.Row) []label.Label {
	out := []label.Label{r.Loc()}
	switch r := r.(type) {
	case *facts.File, *facts.Label, *facts.TypeRef,
		*facts.MissingExpr, *facts.Path, *facts.RecordLit, *facts.Literal, *facts.Underscore,
		*facts.MissingPat, *facts.WildPat, *facts.RecordPat, *facts.PathPat, *facts.TupleStructPat,
		*facts.ItemStmt:
	case *facts.Module:
		out = append(out, r.Declarations...)
	case *facts.Function:
		out = append(out, r.Body)
	case *facts.MatchArm:
		out = append(out, r.Pat, r.Guard, r.Expr)

	case *facts.If:
		out = append(out, r.Condition, r.Then, r.Else)
	case *facts.Let:
		out = append(out, r.Pat, r.Expr)
	case *facts.Block:
		out = append(out, blockRefs(r.BlockBody)...)
	case *facts.AsyncBlock:
		out = append(out, blockRefs(r.BlockBody)...)
	case *facts.ConstBlock:
		out = append(out, blockRefs(r.BlockBody)...)
	case *facts.UnsafeBlock:
		out = append(out, blockRefs(r.BlockBody)...)
	case *facts.Loop:
		out = append(out, r.Body, r.LabelRef)
	case *facts.Call:
		out = append(out, r.Callee)
		out = append(out, r.Args...)
	case *facts.MethodCall:
		out = append(out, r.Receiver)
		out = append(out, r.Args...)
	case *facts.Match:
		out = append(out, r.Expr)
		out = append(out, r.Branches...)
	case *facts.Continue:
		out = append(out, r.LabelRef)
	case *facts.Break:
		out = append(out, r.Expr, r.LabelRef)
	case *facts.Return:
		out = append(out, r.Expr)
	case *facts.Become:
		out = append(out, r.Expr)
	case *facts.Yield:
		out = append(out, r.Expr)
	case *facts.Yeet:
		out = append(out, r.Expr)
	case *facts.Field:
		out = append(out, r.Expr)
	case *facts.Await:
		out = append(out, r.Expr)
	case *facts.Cast:
		out = append(out, r.Expr, r.TypeRef)
	case *facts.Ref:
		out = append(out, r.Expr)
	case *facts.Box:
		out = append(out, r.Expr)
	case *facts.UnaryOp:
		out = append(out, r.Expr)
	case *facts.BinaryOp:
		out = append(out, r.Lhs, r.Rhs)
	case *facts.Range:
		out = append(out, r.Lhs, r.Rhs)
	case *facts.Index:
		out = append(out, r.Base, r.Index)
	case *facts.Closure:
		out = append(out, r.Body, r.RetType)
		out = append(out, r.Args...)
		out = append(out, r.ArgTypes...)
	case *facts.Tuple:
		out = append(out, r.Exprs...)
	case *facts.ElementList:
		out = append(out, r.Elements...)
	case *facts.Repeat:
		out = append(out, r.Initializer, r.Repeat)
	case *facts.OffsetOf:
		out = append(out, r.Container)
	case *facts.InlineAsm:
		out = append(out, r.Expr)

	case *facts.TuplePat:
		out = append(out, r.Args...)
	case *facts.OrPat:
		out = append(out, r.Args...)
	case *facts.RangePat:
		out = append(out, r.Start, r.End)
	case *facts.SlicePat:
		out = append(out, r.Slice)
		out = append(out, r.Prefix...)
		out = append(out, r.Suffix...)
	case *facts.LitPat:
		out = append(out, r.Expr)
	case *facts.BindPat:
		out = append(out, r.Subpat)
	case *facts.RefPat:
		out = append(out, r.Pat)
	case *facts.BoxPat:
		out = append(out, r.Inner)
	case *facts.ConstBlockPat:
		out = append(out, r.Expr)

	case *facts.LetStmt:
		out = append(out, r.Pat, r.TypeRef, r.Initializer, r.Else)
	case *facts.ExprStmt:
		out = append(out, r.Expr)
	default:
		panic(fmt.Sprintf("refs: unhandled row %T", r))
	}
	return out
}

func blockRefs(b facts.BlockBody) []label.Label {
	return append([]label.Label{b.Tail, b.LabelRef}, b.Statements...)
}

func TestSiblingModulesShareParentPrefix(t *testing.T) {
	fs := newMemFS()
	fs.addFile(t, t.TempDir(), 1, "lib.rs", "mod a {}\nmod b {}\n")
	crate := &testCrate{
		name: "demo",
		root: 1,
		modules: []*hir.Module{
			{ID: 1, Definition: hir.RealFile(1)},
			{ID: 2, Parent: 1, Name: "a", Definition: hir.RealFile(1)},
			{ID: 3, Parent: 1, Name: "b", Definition: hir.RealFile(1)},
		},
	}
	sink := &captureSink{}
	_, err := extract.ExtractCrate(context.Background(), crate, fs, extract.Options{Sink: sink})
	require.NoError(t, err)

	mods := map[string]*facts.Module{}
	for _, r := range indexBatch(sink.last(t)).ofKind(facts.KindModule) {
		m := r.(*facts.Module)
		mods[m.Name] = m
	}
	require.Len(t, mods, 3)

	a, b := mods["a"].ID.Key(), mods["b"].ID.Key()
	require.True(t, strings.HasSuffix(a, "a"))
	require.True(t, strings.HasSuffix(b, "b"))
	prefix := strings.TrimSuffix(a, "a")
	assert.Equal(t, prefix, strings.TrimSuffix(b, "b"))
	assert.True(t, strings.HasPrefix(prefix, mods[""].ID.KeyPart()))
	assert.NotEqual(t, mods["a"].ID, mods["b"].ID)
	assert.False(t, mods["a"].Loc().IsValid())
}

func TestStableLabelsAcrossRuns(t *testing.T) {
	crate, fs, _ := addOneCrate(t)
	stable := func() (map[label.Label]facts.Kind, string) {
		sink := &captureSink{}
		res, err := extract.ExtractCrate(context.Background(), crate, fs, extract.Options{Sink: sink})
		require.NoError(t, err)
		out := map[label.Label]facts.Kind{}
		for _, r := range sink.last(t).Rows {
			if r.Label().IsKeyed() {
				out[r.Label()] = r.Kind()
			}
		}
		return out, res.RunID
	}

	first, run1 := stable()
	second, run2 := stable()
	assert.Equal(t, first, second)
	assert.Len(t, first, 3) // file, module, function
	assert.NotEqual(t, run1, run2)
}

func TestParentMustPrecedeChild(t *testing.T) {
	fs := newMemFS()
	fs.addFile(t, t.TempDir(), 1, "lib.rs", "mod a;\n")
	crate := &testCrate{
		name: "demo",
		root: 1,
		modules: []*hir.Module{
			{ID: 2, Parent: 1, Name: "a", Definition: hir.RealFile(1)},
			{ID: 1, Definition: hir.RealFile(1)},
		},
	}
	sink := &captureSink{}
	res, err := extract.ExtractCrate(context.Background(), crate, fs, extract.Options{Sink: sink})
	require.ErrorIs(t, err, extract.ErrParentNotVisited)
	assert.Nil(t, res)
	assert.Empty(t, sink.batches)
}

func TestCommitFailureReturnsError(t *testing.T) {
	crate, fs, _ := addOneCrate(t)
	sink := &captureSink{err: errors.New("read-only file system")}
	res, err := extract.ExtractCrate(context.Background(), crate, fs, extract.Options{Sink: sink})
	require.Error(t, err)
	assert.Nil(t, res)
	assert.Contains(t, err.Error(), "read-only")
}

func TestMissingSink(t *testing.T) {
	crate, fs, _ := addOneCrate(t)
	_, err := extract.ExtractCrate(context.Background(), crate, fs, extract.Options{})
	assert.Error(t, err)
}

func TestCanceledContext(t *testing.T) {
	crate, fs, _ := addOneCrate(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	sink := &captureSink{}
	_, err := extract.ExtractCrate(ctx, crate, fs, extract.Options{Sink: sink})
	require.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, sink.batches)
}

func TestSkipsItemsAndBodylessFunctions(t *testing.T) {
	crate, fs, _ := addOneCrate(t)
	root := crate.modules[0]
	root.Declarations = append(root.Declarations,
		&hir.Item{Kind: hir.DefAdt, Name: "S"},
		&hir.Item{Kind: hir.DefTrait, Name: "T"},
		&hir.Function{ID: 2, Name: "extern_fn"},
		&hir.Item{Kind: hir.DefModule, Name: "inner"},
	)

	sink := &captureSink{}
	res, err := extract.ExtractCrate(context.Background(), crate, fs, extract.Options{Sink: sink})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Functions)

	mods := indexBatch(sink.last(t)).ofKind(facts.KindModule)
	require.Len(t, mods, 1)
	m := mods[0].(*facts.Module)
	require.Len(t, m.Declarations, 1)
	assert.Equal(t, extract.FunctionLabel(m.ID, "f"), m.Declarations[0])
}

func TestFunctionAndMacroModuleWithSameNameStayDistinct(t *testing.T) {
	crate, fs, _ := addOneCrate(t)
	crate.modules = append(crate.modules, &hir.Module{ID: 2, Parent: 1, Name: "f", Definition: hir.MacroFile(1)})

	sink := &captureSink{}
	_, err := extract.ExtractCrate(context.Background(), crate, fs, extract.Options{Sink: sink})
	require.NoError(t, err)
	batch := sink.last(t)

	idx := indexBatch(batch)
	fns := idx.ofKind(facts.KindFunction)
	require.Len(t, fns, 1)
	var child *facts.Module
	for _, r := range idx.ofKind(facts.KindModule) {
		if m := r.(*facts.Module); m.Name == "f" {
			child = m
		}
	}
	require.NotNil(t, child)
	assert.NotEqual(t, fns[0].(*facts.Function).ID, child.ID)

	db, err := store.OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "facts.db"))
	require.NoError(t, err)
	defer db.Close()
	require.NoError(t, db.Write(context.Background(), batch))
}

func TestSymlinkedFileIsRegisteredOnce(t *testing.T) {
	dir := t.TempDir()
	fs := newMemFS()
	real := fs.addFile(t, dir, 1, "lib.rs", addOneSrc)
	link := filepath.Join(dir, "alias.rs")
	if err := os.Symlink(real, link); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}
	fs.paths[2] = link
	fs.texts[2] = []byte(addOneSrc)

	crate := &testCrate{
		name: "demo",
		root: 1,
		modules: []*hir.Module{
			{ID: 1, Definition: hir.RealFile(1)},
			{ID: 2, Parent: 1, Name: "alias", Definition: hir.RealFile(2)},
		},
	}
	ar, err := archive.New("mem://localhost/symlink-dedup", nil)
	require.NoError(t, err)

	sink := &captureSink{}
	res, err := extract.ExtractCrate(context.Background(), crate, fs, extract.Options{Sink: sink, Archiver: ar})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Counts[facts.KindFile])
	assert.Equal(t, []string{canonical(t, real)}, ar.Archived())

	got, err := ar.Read(context.Background(), canonical(t, real))
	require.NoError(t, err)
	assert.Equal(t, addOneSrc, string(got))
}

func TestUnresolvableFilesDegrade(t *testing.T) {
	fs := newMemFS()
	body := hir.NewBody()
	smap := hir.NewMapSourceMap()
	lit := body.AddExpr(hir.LiteralData{Text: "0"})
	body.Root = lit
	smap.Exprs[lit] = hir.InFile{File: hir.RealFile(9)}

	crate := &testCrate{
		name: "virtual",
		root: 9,
		modules: []*hir.Module{{
			ID:           1,
			Definition:   hir.RealFile(9),
			Declarations: []hir.Def{&hir.Function{ID: 1, Name: "zero"}},
		}},
		bodies: map[hir.FunctionID]fnBody{1: {body: body, smap: smap}},
	}
	sink := &captureSink{}
	res, err := extract.ExtractCrate(context.Background(), crate, fs, extract.Options{Sink: sink})
	require.NoError(t, err)
	assert.Zero(t, res.Counts[facts.KindFile])
	assert.Zero(t, res.Counts[facts.KindLocation])
	assert.Equal(t, 1, res.Counts[facts.KindLiteral])

	mods := indexBatch(sink.last(t)).ofKind(facts.KindModule)
	require.Len(t, mods, 1)
	assert.Equal(t, label.Key(), mods[0].Label())
}

func TestMacroExpansionHasNoLocation(t *testing.T) {
	crate, fs, _ := addOneCrate(t)
	b := crate.bodies[1]
	smap := b.smap.(*hir.MapSourceMap)
	for id, src := range smap.Exprs {
		smap.Exprs[id] = hir.InFile{File: hir.MacroFile(src.File.File), Range: src.Range}
	}

	sink := &captureSink{}
	res, err := extract.ExtractCrate(context.Background(), crate, fs, extract.Options{Sink: sink})
	require.NoError(t, err)
	// only the function itself keeps its location
	assert.Equal(t, 1, res.Counts[facts.KindLocation])
}

func TestTimerRecordsPhases(t *testing.T) {
	crate, fs, _ := addOneCrate(t)
	timer := observ.NewTimer()
	_, err := extract.ExtractCrate(context.Background(), crate, fs, extract.Options{Sink: &captureSink{}, Timer: timer})
	require.NoError(t, err)
	for _, name := range []string{"root-file", "modules", "commit"} {
		_, ok := timer.Phase(name)
		assert.True(t, ok, name)
	}
}
