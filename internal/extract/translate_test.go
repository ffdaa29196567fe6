package extract_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cratefacts/internal/extract"
	"cratefacts/internal/facts"
	"cratefacts/internal/hir"
	"cratefacts/internal/source"
)

// singleBody wraps body into a one-function crate without source files.
func singleBody(body *hir.Body, smap hir.SourceMap) (*testCrate, *memFS) {
	return &testCrate{
		name: "body",
		root: 1,
		modules: []*hir.Module{{
			ID:           1,
			Definition:   hir.RealFile(1),
			Declarations: []hir.Def{&hir.Function{ID: 1, Name: "f"}},
		}},
		bodies: map[hir.FunctionID]fnBody{1: {body: body, smap: smap}},
	}, newMemFS()
}

func run(t *testing.T, crate *testCrate, fs *memFS) (*extract.Result, *index) {
	t.Helper()
	sink := &captureSink{}
	res, err := extract.ExtractCrate(context.Background(), crate, fs, extract.Options{Sink: sink})
	require.NoError(t, err)
	batch := sink.last(t)
	assertNoForwardRefs(t, batch)
	return res, indexBatch(batch)
}

func TestEveryExpressionKindIsLowered(t *testing.T) {
	body := hir.NewBody()
	leaf := func() hir.ExprID { return body.AddExpr(hir.LiteralData{Text: "0"}) }
	wild := func() hir.PatID { return body.AddPat(hir.WildPatData{}) }
	ty := &hir.TypeRef{Text: "u8"}

	samples := map[hir.ExprKind]hir.ExprData{
		hir.ExprMissing:     hir.MissingData{},
		hir.ExprPath:        hir.PathData{Path: "a::b"},
		hir.ExprIf:          hir.IfData{Condition: leaf(), Then: leaf(), Else: leaf()},
		hir.ExprLet:         hir.LetData{Pat: wild(), Expr: leaf()},
		hir.ExprBlock:       hir.BlockData{Variant: hir.BlockUnsafe, Tail: leaf()},
		hir.ExprLoop:        hir.LoopData{Body: leaf()},
		hir.ExprCall:        hir.CallData{Callee: leaf(), Args: []hir.ExprID{leaf()}},
		hir.ExprMethodCall:  hir.MethodCallData{Receiver: leaf(), MethodName: "len"},
		hir.ExprMatch:       hir.MatchData{Expr: leaf(), Arms: []hir.MatchArm{{Pat: wild(), Guard: leaf(), Expr: leaf()}}},
		hir.ExprContinue:    hir.ContinueData{},
		hir.ExprBreak:       hir.BreakData{Expr: leaf()},
		hir.ExprReturn:      hir.ReturnData{},
		hir.ExprBecome:      hir.BecomeData{Expr: leaf()},
		hir.ExprYield:       hir.YieldData{Expr: leaf()},
		hir.ExprYeet:        hir.YeetData{},
		hir.ExprRecordLit:   hir.RecordLitData{Path: "S", Fields: []hir.RecordField{{Name: "a", Expr: leaf()}}},
		hir.ExprField:       hir.FieldData{Expr: leaf(), Name: "a"},
		hir.ExprAwait:       hir.AwaitData{Expr: leaf()},
		hir.ExprCast:        hir.CastData{Expr: leaf(), Type: *ty},
		hir.ExprRef:         hir.RefData{Expr: leaf(), Rawness: hir.RefRaw, Mutability: hir.Mut},
		hir.ExprBox:         hir.BoxData{Expr: leaf()},
		hir.ExprUnaryOp:     hir.UnaryOpData{Op: hir.UnaryNot, Expr: leaf()},
		hir.ExprBinaryOp:    hir.BinaryOpData{Op: hir.BinaryShlAssign, Lhs: leaf(), Rhs: leaf()},
		hir.ExprRange:       hir.RangeData{Lhs: leaf(), Op: hir.RangeInclusive},
		hir.ExprIndex:       hir.IndexData{Base: leaf(), Index: leaf(), IsAssigneeExpr: true},
		hir.ExprClosure:     hir.ClosureData{Args: []hir.PatID{wild(), wild()}, ArgTypes: []*hir.TypeRef{ty, nil}, Body: leaf(), CaptureBy: hir.CaptureByValue},
		hir.ExprTuple:       hir.TupleData{Exprs: []hir.ExprID{leaf()}},
		hir.ExprArray:       hir.ArrayData{Elements: []hir.ExprID{leaf(), leaf()}},
		hir.ExprArrayRepeat: hir.ArrayRepeatData{Initializer: leaf(), Repeat: leaf()},
		hir.ExprLiteral:     hir.LiteralData{Text: "'c'"},
		hir.ExprUnderscore:  hir.UnderscoreData{},
		hir.ExprOffsetOf:    hir.OffsetOfData{Container: *ty, Fields: []string{"a", "b"}},
		hir.ExprInlineAsm:   hir.InlineAsmData{Expr: leaf()},
	}
	require.Len(t, samples, int(hir.NumExprKinds), "a new expression kind needs a sample")

	var all []hir.ExprID
	for k := hir.ExprKind(0); k < hir.NumExprKinds; k++ {
		all = append(all, body.AddExpr(samples[k]))
	}
	body.Root = body.AddExpr(hir.TupleData{Exprs: all})

	crate, fs := singleBody(body, hir.NewMapSourceMap())
	res, ix := run(t, crate, fs)
	for _, k := range []facts.Kind{
		facts.KindMissingExpr, facts.KindPath, facts.KindIf, facts.KindLet, facts.KindUnsafeBlock,
		facts.KindLoop, facts.KindCall, facts.KindMethodCall, facts.KindMatch, facts.KindMatchArm,
		facts.KindContinue, facts.KindBreak, facts.KindReturn, facts.KindBecome, facts.KindYield,
		facts.KindYeet, facts.KindRecordLit, facts.KindField, facts.KindAwait, facts.KindCast,
		facts.KindRef, facts.KindBox, facts.KindUnaryOp, facts.KindBinaryOp, facts.KindRange,
		facts.KindIndex, facts.KindClosure, facts.KindTuple, facts.KindElementList, facts.KindRepeat,
		facts.KindLiteral, facts.KindUnderscore, facts.KindOffsetOf, facts.KindInlineAsm,
	} {
		assert.NotZero(t, res.Counts[k], "no %s row", k)
	}

	bin := ix.ofKind(facts.KindBinaryOp)[0].(*facts.BinaryOp)
	assert.Equal(t, "<<=", bin.Op)
	un := ix.ofKind(facts.KindUnaryOp)[0].(*facts.UnaryOp)
	assert.Equal(t, "!", un.Op)
	ref := ix.ofKind(facts.KindRef)[0].(*facts.Ref)
	assert.True(t, ref.IsMut)
	assert.True(t, ref.IsRaw)
	rng := ix.ofKind(facts.KindRange)[0].(*facts.Range)
	assert.True(t, rng.IsInclusive)
	assert.False(t, rng.Rhs.IsValid())
	idx := ix.ofKind(facts.KindIndex)[0].(*facts.Index)
	assert.True(t, idx.IsAssigneeExpr)
	off := ix.ofKind(facts.KindOffsetOf)[0].(*facts.OffsetOf)
	assert.Equal(t, []string{"a", "b"}, off.Fields)
	assert.Equal(t, facts.KindTypeRef, ix.rows[off.Container].Kind())
	mc := ix.ofKind(facts.KindMethodCall)[0].(*facts.MethodCall)
	assert.Equal(t, "len", mc.MethodName)

	cl := ix.ofKind(facts.KindClosure)[0].(*facts.Closure)
	assert.True(t, cl.IsMove)
	require.Len(t, cl.Args, 2)
	require.Len(t, cl.ArgTypes, 2)
	assert.True(t, cl.ArgTypes[0].IsValid())
	assert.False(t, cl.ArgTypes[1].IsValid())
	assert.False(t, cl.RetType.IsValid())

	arm := ix.ofKind(facts.KindMatchArm)[0].(*facts.MatchArm)
	assert.True(t, arm.Guard.IsValid())
	assert.Equal(t, facts.KindWildPat, ix.rows[arm.Pat].Kind())
}

func TestEveryPatternKindIsLowered(t *testing.T) {
	body := hir.NewBody()
	wild := func() hir.PatID { return body.AddPat(hir.WildPatData{}) }
	leaf := func() hir.ExprID { return body.AddExpr(hir.LiteralData{Text: "0"}) }
	two := uint32(2)

	samples := map[hir.PatKind]hir.PatData{
		hir.PatMissing:     hir.MissingPatData{},
		hir.PatWild:        hir.WildPatData{},
		hir.PatTuple:       hir.TuplePatData{Args: []hir.PatID{wild(), wild()}, Ellipsis: &two},
		hir.PatOr:          hir.OrPatData{Args: []hir.PatID{wild(), wild()}},
		hir.PatRecord:      hir.RecordPatData{Path: "S", Args: []hir.RecordFieldPat{{Name: "a", Pat: wild()}}},
		hir.PatRange:       hir.RangePatData{Start: hir.LiteralBound{Text: "1"}, End: hir.ConstBound{Pat: body.AddPat(hir.PathPatData{Path: "MAX"})}},
		hir.PatSlice:       hir.SlicePatData{Prefix: []hir.PatID{wild()}, Slice: wild(), Suffix: []hir.PatID{wild()}},
		hir.PatPath:        hir.PathPatData{Path: "None"},
		hir.PatLit:         hir.LitPatData{Expr: leaf()},
		hir.PatBind:        hir.BindPatData{Binding: body.AddBinding("v"), Subpat: wild()},
		hir.PatTupleStruct: hir.TupleStructPatData{Path: "Some", Args: []hir.PatID{wild()}},
		hir.PatRef:         hir.RefPatData{Pat: wild(), Mutability: hir.Mut},
		hir.PatBox:         hir.BoxPatData{Inner: wild()},
		hir.PatConstBlock:  hir.ConstBlockPatData{Expr: leaf()},
	}
	require.Len(t, samples, int(hir.NumPatKinds), "a new pattern kind needs a sample")

	var pats []hir.PatID
	for k := hir.PatKind(0); k < hir.NumPatKinds; k++ {
		pats = append(pats, body.AddPat(samples[k]))
	}
	body.Root = body.AddExpr(hir.ClosureData{Args: pats, Body: leaf()})

	crate, fs := singleBody(body, hir.NewMapSourceMap())
	res, ix := run(t, crate, fs)
	for _, k := range []facts.Kind{
		facts.KindMissingPat, facts.KindWildPat, facts.KindTuplePat, facts.KindOrPat, facts.KindRecordPat,
		facts.KindRangePat, facts.KindSlicePat, facts.KindPathPat, facts.KindLitPat, facts.KindBindPat,
		facts.KindTupleStructPat, facts.KindRefPat, facts.KindBoxPat, facts.KindConstBlockPat,
	} {
		assert.NotZero(t, res.Counts[k], "no %s row", k)
	}

	tup := ix.ofKind(facts.KindTuplePat)[0].(*facts.TuplePat)
	require.NotNil(t, tup.Ellipsis)
	assert.Equal(t, uint32(2), *tup.Ellipsis)

	bind := ix.ofKind(facts.KindBindPat)[0].(*facts.BindPat)
	assert.Equal(t, "v", bind.BindingID)
	assert.True(t, bind.Subpat.IsValid())

	rp := ix.ofKind(facts.KindRangePat)[0].(*facts.RangePat)
	start, ok := ix.rows[rp.Start].(*facts.LitPat)
	require.True(t, ok, "literal bound is %T", ix.rows[rp.Start])
	lit, ok := ix.rows[start.Expr].(*facts.Literal)
	require.True(t, ok)
	assert.Equal(t, "1", lit.Text)
	assert.Equal(t, facts.KindPathPat, ix.rows[rp.End].Kind())

	slice := ix.ofKind(facts.KindSlicePat)[0].(*facts.SlicePat)
	assert.Len(t, slice.Prefix, 1)
	assert.Len(t, slice.Suffix, 1)
	assert.True(t, slice.Slice.IsValid())
}

func TestRangeLiteralBoundTakesRangeLocation(t *testing.T) {
	const src = "match n { 1..=9 => {} }"
	fs := newMemFS()
	fs.addFile(t, t.TempDir(), 1, "lib.rs", src)

	body := hir.NewBody()
	smap := hir.NewMapSourceMap()
	rp := body.AddPat(hir.RangePatData{Start: hir.LiteralBound{Text: "1"}, End: hir.LiteralBound{Text: "9"}})
	smap.Pats[rp] = inText(t, 1, src, "1..=9")
	arm := body.AddExpr(hir.BlockData{})
	n := body.AddExpr(hir.PathData{Path: "n"})
	body.Root = body.AddExpr(hir.MatchData{Expr: n, Arms: []hir.MatchArm{{Pat: rp, Expr: arm}}})

	crate, _ := singleBody(body, smap)
	_, ix := run(t, crate, fs)

	r := ix.ofKind(facts.KindRangePat)[0].(*facts.RangePat)
	want := ix.span(t, r)
	assert.Equal(t, [4]uint32{1, 11, 1, 15}, want)
	for _, bound := range []facts.Row{ix.rows[r.Start], ix.rows[r.End]} {
		lp := bound.(*facts.LitPat)
		assert.Equal(t, want, ix.span(t, lp))
		assert.False(t, ix.rows[lp.Expr].Loc().IsValid())
	}

	ma := ix.ofKind(facts.KindMatchArm)[0]
	assert.Equal(t, want, ix.span(t, ma))
}

func TestLabelLookupFaultIsContained(t *testing.T) {
	const src = "'outer: loop { break 'outer; }"
	fs := newMemFS()
	fs.addFile(t, t.TempDir(), 1, "lib.rs", src)

	body := hir.NewBody()
	smap := hir.NewMapSourceMap()
	smap.PanicOnMissingLabel = true

	outer := body.AddLabel("'outer")
	brk := body.AddExpr(hir.BreakData{Label: body.AddLabel("'outer")})
	block := body.AddExpr(hir.BlockData{Statements: []hir.Stmt{hir.NewStmt(hir.ExprStmtData{Expr: brk, HasSemi: true})}})
	loop := body.AddExpr(hir.LoopData{Body: block, Label: outer})
	body.Root = loop

	smap.Exprs[brk] = inText(t, 1, src, "break 'outer")
	smap.Exprs[block] = inText(t, 1, src, "{ break 'outer; }")
	smap.Exprs[loop] = inText(t, 1, src, src)

	crate, _ := singleBody(body, smap)
	res, ix := run(t, crate, fs)

	labels := ix.ofKind(facts.KindLabel)
	require.Len(t, labels, 2)
	for _, l := range labels {
		assert.False(t, l.Loc().IsValid())
		assert.Equal(t, "'outer", l.(*facts.Label).Name)
	}

	lp := ix.ofKind(facts.KindLoop)[0].(*facts.Loop)
	assert.True(t, lp.LabelRef.IsValid())
	assert.Equal(t, [4]uint32{1, 1, 1, 30}, ix.span(t, lp))
	b := ix.ofKind(facts.KindBreak)[0].(*facts.Break)
	assert.True(t, b.LabelRef.IsValid())
	assert.Equal(t, [4]uint32{1, 16, 1, 27}, ix.span(t, b))

	stmt := ix.ofKind(facts.KindExprStmt)[0].(*facts.ExprStmt)
	assert.True(t, stmt.HasSemi)
	assert.Equal(t, ix.span(t, b), ix.span(t, stmt))
	assert.Equal(t, 1, res.Functions)
}

func TestStatements(t *testing.T) {
	const src = "{\n    let (a, b): T = v else { return };\n    fn inner() {}\n}\n"
	fs := newMemFS()
	fs.addFile(t, t.TempDir(), 1, "lib.rs", src)

	body := hir.NewBody()
	smap := hir.NewMapSourceMap()
	pat := body.AddPat(hir.TuplePatData{Args: []hir.PatID{
		body.AddPat(hir.BindPatData{Binding: body.AddBinding("a")}),
		body.AddPat(hir.BindPatData{Binding: body.AddBinding("b")}),
	}})
	smap.Pats[pat] = inText(t, 1, src, "(a, b)")
	initializer := body.AddExpr(hir.PathData{Path: "v"})
	els := body.AddExpr(hir.ReturnData{})
	root := body.AddExpr(hir.BlockData{Statements: []hir.Stmt{
		hir.NewStmt(hir.LetStmtData{Pat: pat, Type: &hir.TypeRef{Text: "T"}, Initializer: initializer, Else: els}),
		hir.NewStmt(hir.ItemStmtData{}),
	}})
	smap.Exprs[root] = hir.InFile{File: hir.RealFile(1), Range: source.NewRange(0, source.Offset(len(src)-1))}
	body.Root = root

	crate, _ := singleBody(body, smap)
	_, ix := run(t, crate, fs)

	blk := ix.ofKind(facts.KindBlock)[0].(*facts.Block)
	require.Len(t, blk.Statements, 2)
	assert.Equal(t, [4]uint32{1, 1, 4, 1}, ix.span(t, blk))

	let := ix.rows[blk.Statements[0]].(*facts.LetStmt)
	assert.Equal(t, [4]uint32{2, 9, 2, 14}, ix.span(t, let))
	assert.Equal(t, facts.KindTypeRef, ix.rows[let.TypeRef].Kind())
	assert.Equal(t, facts.KindPath, ix.rows[let.Initializer].Kind())
	assert.Equal(t, facts.KindReturn, ix.rows[let.Else].Kind())
	assert.Equal(t, facts.KindTuplePat, ix.rows[let.Pat].Kind())

	item := ix.rows[blk.Statements[1]]
	assert.Equal(t, facts.KindItemStmt, item.Kind())
	assert.False(t, item.Loc().IsValid())
}

func TestBlockVariantsAndExprStatements(t *testing.T) {
	cases := []struct {
		variant hir.BlockVariant
		kind    facts.Kind
		semi    bool
	}{
		{hir.BlockPlain, facts.KindBlock, true},
		{hir.BlockAsync, facts.KindAsyncBlock, false},
		{hir.BlockConst, facts.KindConstBlock, true},
		{hir.BlockUnsafe, facts.KindUnsafeBlock, false},
	}
	for _, tc := range cases {
		t.Run(tc.variant.String(), func(t *testing.T) {
			body := hir.NewBody()
			call := body.AddExpr(hir.CallData{Callee: body.AddExpr(hir.PathData{Path: "g"})})
			tail := body.AddExpr(hir.LiteralData{Text: "0"})
			body.Root = body.AddExpr(hir.BlockData{
				Variant:    tc.variant,
				Statements: []hir.Stmt{hir.NewStmt(hir.ExprStmtData{Expr: call, HasSemi: tc.semi})},
				Tail:       tail,
			})

			crate, fs := singleBody(body, hir.NewMapSourceMap())
			res, ix := run(t, crate, fs)

			blocks := ix.ofKind(tc.kind)
			require.Len(t, blocks, 1)
			for _, other := range []facts.Kind{facts.KindBlock, facts.KindAsyncBlock, facts.KindConstBlock, facts.KindUnsafeBlock} {
				if other != tc.kind {
					assert.Zero(t, res.Counts[other], "unexpected %s row", other)
				}
			}

			var bb facts.BlockBody
			switch b := blocks[0].(type) {
			case *facts.Block:
				bb = b.BlockBody
			case *facts.AsyncBlock:
				bb = b.BlockBody
			case *facts.ConstBlock:
				bb = b.BlockBody
			case *facts.UnsafeBlock:
				bb = b.BlockBody
			}
			require.Len(t, bb.Statements, 1)
			assert.Equal(t, facts.KindLiteral, ix.rows[bb.Tail].Kind())

			stmt, ok := ix.rows[bb.Statements[0]].(*facts.ExprStmt)
			require.True(t, ok)
			assert.Equal(t, tc.semi, stmt.HasSemi)
			assert.Equal(t, facts.KindCall, ix.rows[stmt.Expr].Kind())
		})
	}
}
