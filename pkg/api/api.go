package api

import (
	"context"

	"github.com/jsgen/jsgen/internal/js_ast"
)

type SourceMap uint8

const (
	SourceMapNone SourceMap = iota
	SourceMapInline
	SourceMapExternal
)

type Location struct {
	File   string
	Line   int // 1-based
	Column int // 0-based, in UTF-16 code units
}

type Message struct {
	Text     string
	Location *Location
}

type StderrColor uint8

const (
	ColorIfTerminal StderrColor = iota
	ColorNever
	ColorAlways
)

type LogLevel uint8

const (
	LogLevelSilent LogLevel = iota
	LogLevelInfo
	LogLevelWarning
	LogLevelError
)

////////////////////////////////////////////////////////////////////////////////
// Render API

type RenderOptions struct {
	Color      StderrColor
	ErrorLimit int
	LogLevel   LogLevel

	// Indent and put one statement per line instead of omitting all optional
	// whitespace
	Pretty bool

	PreferSingleQuotes bool

	// Only escape the sequences that could end a surrounding HTML script
	// element or comment. Otherwise "=", "&", "<" and ">" are always escaped.
	TrustedStrings bool

	// The output charset, such as "utf-8" or "latin1". Characters it can't
	// encode are escaped. The default is ASCII.
	Charset string

	PreserveTypeAnnotations bool
	QuoteKeywordProperties  bool
	UseOriginalName         bool
	PreserveExtraBlocks     bool

	// Compact output is cut into lines at statement boundaries once a line
	// is longer than this. Zero means never.
	LineLengthThreshold int

	Sourcemap  SourceMap
	Sourcefile string
	Outfile    string

	// Rendering stops early when this is done or when the output is longer
	// than OutputLimit bytes. The result is then marked as canceled.
	Context     context.Context
	OutputLimit int

	// Check the structure of the whole tree before printing any of it
	Validate bool
}

type RenderResult struct {
	Errors   []Message
	Warnings []Message

	Code      []byte
	SourceMap []byte

	// The output was cut short by the context or the output limit
	Canceled bool
}

// Render prints the subtree at "root" as source code. The root is printed as
// a statement. The tree is never modified, so one tree can be rendered any
// number of times, but not concurrently with changes to it.
func Render(tree *js_ast.Tree, root js_ast.Index, options RenderOptions) RenderResult {
	return renderImpl(tree, root, options)
}

// RenderJSON decodes a tree in the JSON interchange format and renders it
func RenderJSON(data []byte, options RenderOptions) RenderResult {
	return renderJSONImpl(data, options)
}
