package config

import (
	"context"

	"github.com/jsgen/jsgen/internal/helpers"
	"github.com/jsgen/jsgen/internal/js_output"
	"github.com/jsgen/jsgen/internal/js_printer"
)

type SourceMap uint8

const (
	SourceMapNone SourceMap = iota
	SourceMapInline
	SourceMapExternalWithoutComment
)

// Options is the validated form of the options for one render. The public
// API and the command-line tool both end up here.
type Options struct {
	// true: one statement per line with indentation
	// false: no optional whitespace at all
	Pretty bool

	PreferSingleQuotes      bool
	TrustedStrings          bool
	Charset                 helpers.Charset
	PreserveTypeAnnotations bool
	QuoteKeywordProperties  bool
	UseOriginalName         bool

	PreserveExtraBlocks bool
	LineLengthThreshold int
	OutputLimit         int

	// Check the structure of the whole tree before printing any of it. The
	// printer still checks each node it reaches either way.
	Validate bool

	SourceMap SourceMap

	// Used as the "sources" entry of the source map and for error locations
	SourceFile string

	// Used as the "file" entry of the source map
	OutputFile string
}

func (options *Options) PrinterOptions() js_printer.Options {
	return js_printer.Options{
		PreferSingleQuotes:      options.PreferSingleQuotes,
		TrustedStrings:          options.TrustedStrings,
		Charset:                 options.Charset,
		PreserveTypeAnnotations: options.PreserveTypeAnnotations,
		QuoteKeywordProperties:  options.QuoteKeywordProperties,
		UseOriginalName:         options.UseOriginalName,
	}
}

func (options *Options) OutputOptions(ctx context.Context) js_output.Options {
	return js_output.Options{
		Context:             ctx,
		OutputLimit:         options.OutputLimit,
		SourceMap:           options.SourceMap != SourceMapNone,
		LineLengthThreshold: options.LineLengthThreshold,
		PreserveExtraBlocks: options.PreserveExtraBlocks,
	}
}
