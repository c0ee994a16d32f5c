package api_test

import (
	"context"
	"strings"
	"testing"

	"github.com/jsgen/jsgen/internal/js_ast"
	"github.com/jsgen/jsgen/internal/logger"
	"github.com/jsgen/jsgen/internal/sourcemap"
	"github.com/jsgen/jsgen/internal/test"
	"github.com/jsgen/jsgen/pkg/api"
)

func sum(b *js_ast.Builder) js_ast.Index {
	product := b.Binary(js_ast.BinOpMul, b.Ident("b"), b.Ident("c"))
	return b.Script(b.Expr(b.Binary(js_ast.BinOpAdd, b.Ident("a"), product)))
}

func expectRendered(t *testing.T, name string, build func(b *js_ast.Builder) js_ast.Index, options api.RenderOptions, expected string) {
	t.Helper()
	t.Run(name, func(t *testing.T) {
		t.Helper()
		b := js_ast.NewBuilder()
		root := build(b)
		result := api.Render(b.Tree, root, options)
		if len(result.Errors) > 0 {
			t.Fatalf("Unexpected error: %s", result.Errors[0].Text)
		}
		test.AssertEqualWithDiff(t, string(result.Code), expected)
	})
}

func expectRenderError(t *testing.T, name string, build func(b *js_ast.Builder) js_ast.Index, options api.RenderOptions, expected string) {
	t.Helper()
	t.Run(name, func(t *testing.T) {
		t.Helper()
		b := js_ast.NewBuilder()
		root := build(b)
		result := api.Render(b.Tree, root, options)
		if len(result.Errors) != 1 {
			t.Fatalf("Expected one error, got %d", len(result.Errors))
		}
		if !strings.Contains(result.Errors[0].Text, expected) {
			t.Fatalf("Expected %q in %q", expected, result.Errors[0].Text)
		}
		test.AssertEqual(t, len(result.Code), 0)
	})
}

func TestRender(t *testing.T) {
	expectRendered(t, "compact", sum, api.RenderOptions{}, "a+b*c")
	expectRendered(t, "pretty", sum, api.RenderOptions{Pretty: true}, "a + b * c;\n")

	expectRendered(t, "pretty block", func(b *js_ast.Builder) js_ast.Index {
		return b.Script(b.If(b.Ident("a"), b.Block(b.Expr(b.Call(b.Ident("b")))), js_ast.NoIndex))
	}, api.RenderOptions{Pretty: true}, "if (a) {\n  b();\n}\n")

	expectRendered(t, "charset", func(b *js_ast.Builder) js_ast.Index {
		return b.Script(b.Expr(b.Binary(js_ast.BinOpAssign, b.Ident("x"), b.Str("é"))))
	}, api.RenderOptions{Charset: "latin1"}, "x=\"é\"")

	expectRendered(t, "ascii", func(b *js_ast.Builder) js_ast.Index {
		return b.Script(b.Expr(b.Binary(js_ast.BinOpAssign, b.Ident("x"), b.Str("é"))))
	}, api.RenderOptions{}, "x=\"\\u00e9\"")

	expectRendered(t, "single quotes", func(b *js_ast.Builder) js_ast.Index {
		return b.Script(b.Expr(b.Str("a")))
	}, api.RenderOptions{PreferSingleQuotes: true}, "'a'")

	expectRendered(t, "validate", sum, api.RenderOptions{Validate: true}, "a+b*c")
}

func TestRenderErrors(t *testing.T) {
	binary := func(b *js_ast.Builder) js_ast.Index {
		node := js_ast.Node{Kind: js_ast.EBinary, Op: js_ast.BinOpAdd, Loc: logger.Loc{Line: 3, Column: 4}}
		return b.Script(b.Expr(b.Add(node, b.Ident("a"))))
	}

	expectRenderError(t, "malformed", binary, api.RenderOptions{}, "unexpected number of children 1")
	expectRenderError(t, "validate", binary, api.RenderOptions{Validate: true}, "Invalid tree: ")
	expectRenderError(t, "charset", sum, api.RenderOptions{Charset: "nope"}, "unsupported charset \"nope\"")
	expectRenderError(t, "line length", sum, api.RenderOptions{LineLengthThreshold: -1}, "Invalid line length threshold: -1")
	expectRenderError(t, "output limit", sum, api.RenderOptions{OutputLimit: -1}, "Invalid output limit: -1")
	expectRenderError(t, "source map without file", sum, api.RenderOptions{Sourcemap: api.SourceMapExternal}, "Must use \"sourcefile\"")

	t.Run("location", func(t *testing.T) {
		b := js_ast.NewBuilder()
		result := api.Render(b.Tree, binary(b), api.RenderOptions{Sourcefile: "in.json"})
		test.AssertEqual(t, len(result.Errors), 1)
		test.AssertEqual(t, *result.Errors[0].Location, api.Location{File: "in.json", Line: 3, Column: 4})
	})

	t.Run("nil tree", func(t *testing.T) {
		result := api.Render(nil, 1, api.RenderOptions{})
		test.AssertEqual(t, len(result.Errors), 1)
		test.AssertEqual(t, result.Errors[0].Text, "Cannot render a nil tree")
	})
}

func TestRenderJSON(t *testing.T) {
	result := api.RenderJSON([]byte(`{"kind": "SScript", "children": [
		{"kind": "SExpr", "children": [
			{"kind": "ECall", "children": [{"kind": "EIdentifier", "str": "f"}, {"kind": "ENumber", "num": 1}]}
		]}
	]}`), api.RenderOptions{})
	test.AssertEqual(t, len(result.Errors), 0)
	test.AssertEqualWithDiff(t, string(result.Code), "f(1)")

	result = api.RenderJSON([]byte(`{"kind": "Nope"}`), api.RenderOptions{Sourcefile: "in.json"})
	test.AssertEqual(t, len(result.Errors), 1)
	test.AssertEqual(t, strings.HasPrefix(result.Errors[0].Text, "Invalid JSON tree: "), true)
	test.AssertEqual(t, result.Errors[0].Location.File, "in.json")
}

func TestRenderJSONDeepChain(t *testing.T) {
	const count = 200000
	var sb strings.Builder
	sb.WriteString(`{"kind": "SScript", "children": [{"kind": "SExpr", "children": [`)
	for i := 0; i < count; i++ {
		sb.WriteString(`{"kind": "EBinary", "op": "-", "children": [`)
	}
	sb.WriteString(`{"kind": "EIdentifier", "str": "a"}`)
	for i := 0; i < count; i++ {
		sb.WriteString(`, {"kind": "EIdentifier", "str": "b"}]}`)
	}
	sb.WriteString(`]}]}`)

	result := api.RenderJSON([]byte(sb.String()), api.RenderOptions{Validate: true})
	if len(result.Errors) > 0 {
		t.Fatalf("Unexpected error: %s", result.Errors[0].Text)
	}
	if string(result.Code) != "a"+strings.Repeat("-b", count) {
		t.Fatalf("Unexpected output of length %d", len(result.Code))
	}
}

func TestSourceMaps(t *testing.T) {
	build := func(b *js_ast.Builder) js_ast.Index {
		a := b.Add(js_ast.Node{Kind: js_ast.EIdentifier, Str: "a", Loc: logger.Loc{Line: 2, Column: 6}})
		return b.Script(b.Expr(a))
	}

	b := js_ast.NewBuilder()
	result := api.Render(b.Tree, build(b), api.RenderOptions{Sourcemap: api.SourceMapExternal, Sourcefile: "in.json", Outfile: "out.js"})
	test.AssertEqual(t, len(result.Errors), 0)
	test.AssertEqualWithDiff(t, string(result.Code), "a")
	sm, err := sourcemap.Parse(result.SourceMap)
	test.AssertEqual(t, err, nil)
	test.AssertEqual(t, len(sm.Sources), 1)
	test.AssertEqual(t, sm.Sources[0], "in.json")
	test.AssertEqual(t, len(sm.Mappings), 1)
	test.AssertEqual(t, sm.Mappings[0], sourcemap.Mapping{OriginalLine: 1, OriginalColumn: 6, OriginalName: -1})

	b = js_ast.NewBuilder()
	result = api.Render(b.Tree, build(b), api.RenderOptions{Sourcemap: api.SourceMapInline, Sourcefile: "in.json"})
	test.AssertEqual(t, len(result.Errors), 0)
	test.AssertEqual(t, len(result.SourceMap), 0)
	test.AssertEqual(t, strings.HasPrefix(string(result.Code), "a\n//# sourceMappingURL=data:application/json;base64,"), true)
}

func TestCanceled(t *testing.T) {
	build := func(b *js_ast.Builder) js_ast.Index {
		var stmts []js_ast.Index
		for i := 0; i < 50; i++ {
			stmts = append(stmts, b.Expr(b.Call(b.Ident("f"))))
		}
		return b.Script(stmts...)
	}

	b := js_ast.NewBuilder()
	result := api.Render(b.Tree, build(b), api.RenderOptions{OutputLimit: 10})
	test.AssertEqual(t, len(result.Errors), 0)
	test.AssertEqual(t, result.Canceled, true)
	if len(result.Code) >= 50*4 {
		t.Fatalf("Expected partial output, got %d bytes", len(result.Code))
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	b = js_ast.NewBuilder()
	result = api.Render(b.Tree, build(b), api.RenderOptions{Context: ctx})
	test.AssertEqual(t, len(result.Errors), 0)
	test.AssertEqual(t, result.Canceled, true)
	test.AssertEqual(t, len(result.Code), 0)
}
