package api

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/jsgen/jsgen/internal/config"
	"github.com/jsgen/jsgen/internal/helpers"
	"github.com/jsgen/jsgen/internal/js_ast"
	"github.com/jsgen/jsgen/internal/js_output"
	"github.com/jsgen/jsgen/internal/js_printer"
	"github.com/jsgen/jsgen/internal/logger"
)

func validateSourceMap(value SourceMap) config.SourceMap {
	switch value {
	case SourceMapNone:
		return config.SourceMapNone
	case SourceMapInline:
		return config.SourceMapInline
	case SourceMapExternal:
		return config.SourceMapExternalWithoutComment
	default:
		panic("Invalid source map")
	}
}

func validateColor(value StderrColor) logger.UseColor {
	switch value {
	case ColorIfTerminal:
		return logger.ColorIfTerminal
	case ColorNever:
		return logger.ColorNever
	case ColorAlways:
		return logger.ColorAlways
	default:
		panic("Invalid color")
	}
}

func logLevel(value LogLevel) logger.LogLevel {
	switch value {
	case LogLevelInfo:
		return logger.LevelInfo
	case LogLevelWarning:
		return logger.LevelWarning
	case LogLevelError:
		return logger.LevelError
	case LogLevelSilent:
		return logger.LevelSilent
	default:
		panic("Invalid log level")
	}
}

func validateCharset(log logger.Log, label string) helpers.Charset {
	charset, err := helpers.LookupCharset(label)
	if err != nil {
		log.AddError("", logger.Loc{}, err.Error())
	}
	return charset
}

func validateNonNegative(log logger.Log, value int, name string) int {
	if value < 0 {
		log.AddError("", logger.Loc{}, fmt.Sprintf("Invalid %s: %d", name, value))
		return 0
	}
	return value
}

func messagesOfKind(kind logger.MsgKind, msgs []logger.Msg) []Message {
	var filtered []Message
	for _, msg := range msgs {
		if msg.Kind == kind {
			var location *Location

			if msg.Location != nil {
				location = &Location{
					File:   msg.Location.File,
					Line:   msg.Location.Line,
					Column: msg.Location.Column,
				}
			}

			filtered = append(filtered, Message{
				Text:     msg.Text,
				Location: location,
			})
		}
	}
	return filtered
}

func newLog(options RenderOptions) logger.Log {
	if options.LogLevel == LogLevelSilent {
		return logger.NewDeferLog()
	}
	return logger.NewStderrLog(logger.OutputOptions{
		ErrorLimit: options.ErrorLimit,
		Color:      validateColor(options.Color),
		LogLevel:   logLevel(options.LogLevel),
	})
}

func validateOptions(log logger.Log, options RenderOptions) config.Options {
	configOptions := config.Options{
		Pretty:                  options.Pretty,
		PreferSingleQuotes:      options.PreferSingleQuotes,
		TrustedStrings:          options.TrustedStrings,
		Charset:                 validateCharset(log, options.Charset),
		PreserveTypeAnnotations: options.PreserveTypeAnnotations,
		QuoteKeywordProperties:  options.QuoteKeywordProperties,
		UseOriginalName:         options.UseOriginalName,
		PreserveExtraBlocks:     options.PreserveExtraBlocks,
		LineLengthThreshold:     validateNonNegative(log, options.LineLengthThreshold, "line length threshold"),
		OutputLimit:             validateNonNegative(log, options.OutputLimit, "output limit"),
		Validate:                options.Validate,
		SourceMap:               validateSourceMap(options.Sourcemap),
		SourceFile:              options.Sourcefile,
		OutputFile:              options.Outfile,
	}
	if configOptions.SourceMap != config.SourceMapNone && configOptions.SourceFile == "" {
		log.AddError("", logger.Loc{},
			"Must use \"sourcefile\" with \"sourcemap\" to set the original file name")
	}
	return configOptions
}

func resultFromLog(log logger.Log) RenderResult {
	msgs := log.Done()
	return RenderResult{
		Errors:   messagesOfKind(logger.Error, msgs),
		Warnings: messagesOfKind(logger.Warning, msgs),
	}
}

type outputSink interface {
	js_printer.Sink
	Code() []byte
	SourceMap(file string, source string) []byte
	Canceled() bool
}

type renderOutput struct {
	code      []byte
	sourceMap []byte
	canceled  bool
}

func renderWithOptions(
	log logger.Log,
	tree *js_ast.Tree,
	root js_ast.Index,
	options config.Options,
	ctx context.Context,
) (out renderOutput) {
	// A panic other than the printer's own errors is a bug. Report it with a
	// stack trace instead of crashing the caller.
	defer func() {
		if r := recover(); r != nil {
			log.AddError(options.SourceFile, logger.Loc{},
				fmt.Sprintf("panic: %v\n%s", r, helpers.PrettyPrintedStack()))
			out = renderOutput{}
		}
	}()

	if tree == nil {
		log.AddError(options.SourceFile, logger.Loc{}, "Cannot render a nil tree")
		return
	}

	if options.Validate {
		if err := tree.Validate(root); err != nil {
			log.AddError(options.SourceFile, logger.Loc{}, fmt.Sprintf("Invalid tree: %s", err.Error()))
			return
		}
	}

	var sink outputSink
	if options.Pretty {
		sink = js_output.NewPretty(options.OutputOptions(ctx))
	} else {
		sink = js_output.NewCompact(options.OutputOptions(ctx))
	}

	if err := js_printer.NewPrinter(options.PrinterOptions()).Print(tree, root, js_printer.ContextStatement, sink); err != nil {
		log.AddError(options.SourceFile, locOfError(tree, err), err.Error())
		return
	}

	out.code = sink.Code()
	out.canceled = sink.Canceled()

	switch options.SourceMap {
	case config.SourceMapInline:
		data := sink.SourceMap(options.OutputFile, options.SourceFile)
		if n := len(out.code); n > 0 && out.code[n-1] != '\n' {
			out.code = append(out.code, '\n')
		}
		out.code = append(out.code, "//# sourceMappingURL=data:application/json;base64,"...)
		out.code = append(out.code, base64.StdEncoding.EncodeToString(data)...)
		out.code = append(out.code, '\n')

	case config.SourceMapExternalWithoutComment:
		out.sourceMap = sink.SourceMap(options.OutputFile, options.SourceFile)
	}
	return
}

// Errors about a node point at the position the node came from when it has one
func locOfError(tree *js_ast.Tree, err error) logger.Loc {
	var n js_ast.Index
	var invariant *js_printer.InvariantViolationError
	var unsupported *js_printer.UnsupportedConstructError
	switch {
	case errors.As(err, &invariant):
		n = invariant.Node
	case errors.As(err, &unsupported):
		n = unsupported.Node
	}
	if n.IsValid() && int(n) < len(tree.Nodes) {
		return tree.Nodes[n].Loc
	}
	return logger.Loc{}
}

////////////////////////////////////////////////////////////////////////////////
// Render API

func renderImpl(tree *js_ast.Tree, root js_ast.Index, options RenderOptions) RenderResult {
	// Convert and validate the options
	log := newLog(options)
	configOptions := validateOptions(log, options)

	// Stop now if there were errors
	if log.HasErrors() {
		return resultFromLog(log)
	}

	ctx := options.Context
	if ctx == nil {
		ctx = context.Background()
	}
	out := renderWithOptions(log, tree, root, configOptions, ctx)

	result := resultFromLog(log)
	if len(result.Errors) == 0 {
		result.Code = out.code
		result.SourceMap = out.sourceMap
		result.Canceled = out.canceled
	}
	return result
}

func renderJSONImpl(data []byte, options RenderOptions) RenderResult {
	tree, root, err := js_ast.DecodeJSON(data)
	if err != nil {
		log := newLog(options)
		log.AddError(options.Sourcefile, logger.Loc{}, fmt.Sprintf("Invalid JSON tree: %s", err.Error()))
		return resultFromLog(log)
	}
	return renderImpl(tree, root, options)
}
