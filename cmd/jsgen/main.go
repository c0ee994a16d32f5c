package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/jsgen/jsgen/internal/exitcode"
	"github.com/jsgen/jsgen/internal/helpers"
	"github.com/jsgen/jsgen/internal/logger"
	"github.com/jsgen/jsgen/pkg/api"
	"github.com/maloquacious/semver"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

var version = semver.Version{
	Major: 0,
	Minor: 1,
	Patch: 0,
	Build: semver.Commit(),
}

// Errors that were already written to the log only set the exit code
var errReported = errors.New("errors were reported")

func main() {
	err := newRootCommand(afero.NewOsFs()).Execute()
	if err != nil && !errors.Is(err, errReported) {
		logger.PrintErrorToStderr(os.Args, err.Error())
	}
	exitcode.Exit(err)
}

func usageError(format string, args ...interface{}) error {
	return exitcode.Set(fmt.Errorf(format, args...), 2)
}

type renderFlags struct {
	pretty         bool
	singleQuotes   bool
	trustedStrings bool
	charset        string
	preserveTypes  bool
	quoteKeywords  bool
	originalNames  bool
	preserveBlocks bool
	lineLength     int
	sourcemap      string
	outfile        string
	timeout        time.Duration
	logLevel       string
	color          bool
	errorLimit     int
	validate       bool
}

func (f *renderFlags) add(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.pretty, "pretty", f.pretty, "indent and put one statement per line")
	cmd.Flags().BoolVar(&f.singleQuotes, "single-quotes", f.singleQuotes, "prefer single quotes for strings")
	cmd.Flags().BoolVar(&f.trustedStrings, "trusted-strings", f.trustedStrings, "only escape what could end a script element")
	cmd.Flags().StringVar(&f.charset, "charset", f.charset, "output charset (utf-8, latin1, ...), default ascii")
	cmd.Flags().BoolVar(&f.preserveTypes, "preserve-types", f.preserveTypes, "keep type annotations in comments and casts")
	cmd.Flags().BoolVar(&f.quoteKeywords, "quote-keywords", f.quoteKeywords, "quote property names that are keywords")
	cmd.Flags().BoolVar(&f.originalNames, "original-names", f.originalNames, "print original names instead of renamed ones")
	cmd.Flags().BoolVar(&f.preserveBlocks, "preserve-blocks", f.preserveBlocks, "keep redundant blocks in compact output")
	cmd.Flags().IntVar(&f.lineLength, "line-length", f.lineLength, "break compact output after this many columns, 0 to disable")
	cmd.Flags().StringVar(&f.sourcemap, "sourcemap", "none", "emit a source map (none, inline, external)")
	cmd.Flags().StringVarP(&f.outfile, "outfile", "o", f.outfile, "write the output to this file instead of stdout")
	cmd.Flags().DurationVar(&f.timeout, "timeout", f.timeout, "stop rendering after this long, 0 to disable")
	cmd.Flags().StringVar(&f.logLevel, "log-level", "warning", "log level (info, warning, error, silent)")
	cmd.Flags().BoolVar(&f.color, "color", f.color, "force use of color terminal escapes")
	cmd.Flags().IntVar(&f.errorLimit, "error-limit", 10, "maximum error count, 0 to disable")
	cmd.Flags().BoolVar(&f.validate, "validate", f.validate, "check the whole tree before printing it")
}

func (f *renderFlags) outputOptions(cmd *cobra.Command) (logger.OutputOptions, error) {
	options := logger.OutputOptions{ErrorLimit: f.errorLimit}

	switch f.logLevel {
	case "info":
		options.LogLevel = logger.LevelInfo
	case "warning":
		options.LogLevel = logger.LevelWarning
	case "error":
		options.LogLevel = logger.LevelError
	case "silent":
		options.LogLevel = logger.LevelSilent
	default:
		return options, usageError("Invalid log level: %q (valid: info, warning, error, silent)", f.logLevel)
	}

	if cmd.Flags().Changed("color") {
		if f.color {
			options.Color = logger.ColorAlways
		} else {
			options.Color = logger.ColorNever
		}
	}

	if f.errorLimit < 0 {
		return options, usageError("Invalid error limit: %d", f.errorLimit)
	}
	return options, nil
}

func (f *renderFlags) renderOptions(ctx context.Context) (api.RenderOptions, error) {
	options := api.RenderOptions{
		// Messages go through the command's own log
		LogLevel: api.LogLevelSilent,

		Pretty:                  f.pretty,
		PreferSingleQuotes:      f.singleQuotes,
		TrustedStrings:          f.trustedStrings,
		Charset:                 f.charset,
		PreserveTypeAnnotations: f.preserveTypes,
		QuoteKeywordProperties:  f.quoteKeywords,
		UseOriginalName:         f.originalNames,
		PreserveExtraBlocks:     f.preserveBlocks,
		LineLengthThreshold:     f.lineLength,
		Outfile:                 f.outfile,
		Context:                 ctx,
		Validate:                f.validate,
	}

	switch f.sourcemap {
	case "none":
	case "inline":
		options.Sourcemap = api.SourceMapInline
	case "external":
		if f.outfile == "" {
			return options, usageError("Must use \"--outfile\" with \"--sourcemap=external\"")
		}
		options.Sourcemap = api.SourceMapExternal
	default:
		return options, usageError("Invalid source map: %q (valid: none, inline, external)", f.sourcemap)
	}

	if f.lineLength < 0 {
		return options, usageError("Invalid line length: %d", f.lineLength)
	}
	if f.timeout < 0 {
		return options, usageError("Invalid timeout: %s", f.timeout)
	}
	return options, nil
}

func newRootCommand(fs afero.Fs) *cobra.Command {
	var f renderFlags
	var cmd = &cobra.Command{
		Use:           "jsgen [flags] [file.json ...]",
		Short:         "render JavaScript from JSON syntax trees",
		Long:          `Render JavaScript and TypeScript source code from syntax trees in JSON. Reads stdin when no file is given.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		Args:          cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logOptions, err := f.outputOptions(cmd)
			if err != nil {
				return err
			}
			if f.outfile != "" && len(args) > 1 {
				return usageError("Must not use \"--outfile\" with more than one input file")
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			if f.timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, f.timeout)
				defer cancel()
			}

			options, err := f.renderOptions(ctx)
			if err != nil {
				return err
			}

			log := logger.NewStderrLog(logOptions)
			r := renderer{fs: fs, log: log, options: options}
			if len(args) == 0 {
				r.renderFile("<stdin>", func() ([]byte, error) { return io.ReadAll(cmd.InOrStdin()) })
			}
			for _, path := range args {
				r.renderFile(path, func() ([]byte, error) { return afero.ReadFile(fs, path) })
			}
			if !log.HasErrors() {
				r.write(cmd.OutOrStdout(), f.outfile)
			}

			hasErrors := log.HasErrors()
			log.Done()
			if hasErrors {
				return exitcode.Set(errReported, 1)
			}
			return nil
		},
	}
	cmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return exitcode.Set(err, 2)
	})
	f.add(cmd)
	cmd.AddCommand(newVersionCommand())
	return cmd
}

type renderer struct {
	fs        afero.Fs
	log       logger.Log
	options   api.RenderOptions
	code      helpers.Joiner
	sourceMap []byte
}

func (r *renderer) renderFile(name string, read func() ([]byte, error)) {
	data, err := read()
	if err != nil {
		r.log.AddError("", logger.Loc{}, fmt.Sprintf("Could not read from file: %s", name))
		return
	}

	options := r.options
	options.Sourcefile = name
	result := api.RenderJSON(data, options)
	for _, msg := range result.Errors {
		r.log.AddMsg(toLogMsg(logger.Error, msg))
	}
	for _, msg := range result.Warnings {
		r.log.AddMsg(toLogMsg(logger.Warning, msg))
	}
	if len(result.Errors) > 0 {
		return
	}
	if result.Canceled {
		r.log.AddError(name, logger.Loc{}, "Rendering stopped before the whole tree was printed")
		return
	}

	r.code.AddBytes(result.Code)
	r.code.EnsureNewlineAtEnd()
	r.sourceMap = result.SourceMap
}

func (r *renderer) write(stdout io.Writer, outfile string) {
	code := r.code.Done()
	if outfile == "" {
		if _, err := stdout.Write(code); err != nil {
			r.log.AddError("", logger.Loc{}, fmt.Sprintf("Failed to write to stdout: %s", err.Error()))
			return
		}
		r.log.AddInfo(fmt.Sprintf("<stdout>  %s", humanize.Bytes(uint64(len(code)))))
		return
	}

	r.writeFile(outfile, code)
	if r.sourceMap != nil {
		r.writeFile(outfile+".map", r.sourceMap)
	}
}

func (r *renderer) writeFile(path string, data []byte) {
	if err := afero.WriteFile(r.fs, path, data, 0o644); err != nil {
		r.log.AddError("", logger.Loc{}, fmt.Sprintf("Failed to write to output file: %s", err.Error()))
		return
	}
	r.log.AddInfo(fmt.Sprintf("%s  %s", path, humanize.Bytes(uint64(len(data)))))
}

func toLogMsg(kind logger.MsgKind, msg api.Message) logger.Msg {
	var location *logger.MsgLocation
	if msg.Location != nil {
		location = &logger.MsgLocation{
			File:   msg.Location.File,
			Line:   msg.Location.Line,
			Column: msg.Location.Column,
		}
	}
	return logger.Msg{Kind: kind, Text: msg.Text, Location: location}
}

func newVersionCommand() *cobra.Command {
	showBuildInfo := false
	var cmd = &cobra.Command{
		Use:   "version",
		Short: "display the version number",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if showBuildInfo {
				fmt.Fprintln(cmd.OutOrStdout(), version.String())
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), version.Core())
			return nil
		},
	}
	cmd.Flags().BoolVar(&showBuildInfo, "build-info", showBuildInfo, "show build information")
	return cmd
}
