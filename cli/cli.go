// SPDX-License-Identifier: MIT
// Package cli is the command-line surface: one invocation parses global
// flags, resolves the dotted function name, coerces the remaining tokens,
// invokes the callable and renders the result.
//
// Purpose:
//   - Exactly one resolve→dispatch→render cycle per process; all state is
//     per-App, nothing process-global.
//   - Every failure maps to a documented exit code; the error stream
//     carries the message, the exit code carries the class.
//
// Exit codes:
//   - 0 success
//   - 1 no function name given
//   - 2 dispatch/invocation failure
//   - 3 function name not found
//   - 4 invalid argument, slice or option
package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"

	"github.com/katalvlaran/matcli/coerce"
	"github.com/katalvlaran/matcli/dispatch"
	"github.com/katalvlaran/matcli/funcs"
	"github.com/katalvlaran/matcli/render"
	"github.com/katalvlaran/matcli/schema"
)

// Exit codes of one invocation.
const (
	ExitOK          = 0
	ExitUsage       = 1
	ExitInvocation  = 2
	ExitNotFound    = 3
	ExitBadArgument = 4
)

// ErrorSentinel is written to the primary output stream before an
// invocation failure is reported, so a downstream pipeline stage can
// detect the failure without reading the error stream.
const ErrorSentinel = "MATRIXERROR"

// Reserved function names handled by the surface itself.
const (
	nameHelp    = "help"
	nameVersion = "version"
)

// App is one CLI invocation: streams, registry and frozen configuration.
type App struct {
	out  io.Writer
	errw io.Writer
	pipe schema.LineSource

	registry dispatch.Registry
	cfg      *render.Config
	log      *zap.Logger

	// Flag state not living in the render config.
	configPath string
	writeDocs  string
	flatten    bool
	polyVar    string
	colsFlag   string
	rowsFlag   string
}

// Option adjusts an App before Execute runs; used by tests to substitute
// streams and piped input.
type Option func(*App)

// WithOutput redirects the primary output stream.
func WithOutput(w io.Writer) Option { return func(a *App) { a.out = w } }

// WithErrOutput redirects the error stream.
func WithErrOutput(w io.Writer) Option { return func(a *App) { a.errw = w } }

// WithPipe substitutes the piped-input line source. A nil source means
// interactive input.
func WithPipe(src schema.LineSource) Option { return func(a *App) { a.pipe = src } }

// New builds an App over the full function registry with the documented
// defaults.
func New(opts ...Option) *App {
	a := &App{
		out:      os.Stdout,
		errw:     os.Stderr,
		pipe:     stdinPipe(),
		registry: funcs.Registry(),
		cfg:      render.NewConfig(),
	}
	for _, opt := range opts {
		opt(a)
	}

	return a
}

// stdinPipe returns a line source over stdin when it is not a terminal.
func stdinPipe() schema.LineSource {
	if term.IsTerminal(int(os.Stdin.Fd())) {
		return nil
	}
	sc := bufio.NewScanner(os.Stdin)

	return func() (string, bool) {
		if !sc.Scan() {
			return "", false
		}
		return sc.Text(), true
	}
}

// Execute runs one invocation and returns its exit code.
func (a *App) Execute(args []string) int {
	root := a.rootCommand()
	root.SetArgs(args)
	root.SetOut(a.errw) // cobra usage/help text goes to the error stream
	root.SetErr(a.errw)

	if err := root.Execute(); err != nil {
		return a.report(err)
	}

	return ExitOK
}

// rootCommand declares the global flag surface and binds the run function.
func (a *App) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "matcli [flags] FUNCTION [ARG ...]",
		Short:         "schema-driven command-line front end to a numeric matrix library",
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, args)
		},
	}

	f := root.Flags()
	f.SetInterspersed(false) // flags before the function name only

	f.BoolVar(&a.cfg.Warn, "warn", false, "enable warning output")
	f.BoolVarP(&a.cfg.Quiet, "quiet", "q", false, "suppress error text (exit code still reports failure)")
	f.BoolVar(&a.cfg.Debug, "debug", false, "trace internal values")
	f.BoolVar(&a.cfg.Raise, "raise", false, "propagate failures instead of converting to an exit code")
	f.BoolVar(&a.flatten, "flatten", false, "join rows with ';' instead of newlines")
	f.BoolVarP(&a.cfg.Transpose, "transpose", "t", false, "transpose the result before rendering")
	f.StringVar(&a.colsFlag, "columns", "", "comma-separated column labels")
	f.StringVar(&a.rowsFlag, "rows", "", "comma-separated row labels")
	f.StringVar(&a.cfg.Corner, "name", "", "corner label, printed with both row and column labels")
	f.StringVar(&a.polyVar, "poly", "", "render coefficient rows as polynomials in the given variable")
	f.Lookup("poly").NoOptDefVal = render.DefaultPolyVar
	f.StringVar(&a.cfg.Slice, "slice", "", "default ROWS[,COLS] slice applied to matrix arguments")
	f.StringVar(&a.configPath, "config", "", "config file (default ~/"+configFileName+")")
	f.StringVar(&a.writeDocs, "write-docs", "", "regenerate documentation pages into the given directory")
	_ = f.MarkHidden("write-docs")

	return root
}

// run is the single resolve→dispatch→render cycle.
func (a *App) run(cmd *cobra.Command, args []string) error {
	if err := a.loadConfig(cmd); err != nil {
		return &codedError{code: ExitBadArgument, err: err}
	}
	a.applyFlags()
	a.log = a.buildLogger()
	defer a.log.Sync() //nolint:errcheck // stderr sync failure is uninteresting

	// Maintenance surface: regenerate docs and stop.
	if a.writeDocs != "" {
		return a.generateDocs(a.writeDocs)
	}

	if len(args) == 0 {
		_ = cmd.Usage()
		return &codedError{code: ExitUsage, err: errors.New("no function name given"), silent: true}
	}
	name, tokens := args[0], args[1:]

	switch name {
	case nameHelp:
		return a.runHelp(tokens)
	case nameVersion:
		return a.runVersion()
	}

	entry, err := a.registry.Resolve(name)
	if err != nil {
		return &codedError{code: ExitNotFound, err: err}
	}

	cc := coerce.NewContext(
		coerce.WithSlice(a.cfg.Slice),
		coerce.WithLogger(a.log),
	)
	resolved, err := schema.Resolve(entry.Schema, tokens, a.pipe, cc, a.log)
	if err != nil {
		return &codedError{code: ExitBadArgument, err: err}
	}

	result, err := dispatch.Invoke(entry, resolved, a.log)
	if err != nil {
		// The sentinel reaches the primary stream before any reporting,
		// and no partial numeric output precedes it.
		fmt.Fprintln(a.out, ErrorSentinel)
		return &codedError{code: ExitInvocation, err: err}
	}

	if err := render.New(a.out, a.cfg, a.log).Render(result); err != nil {
		return &codedError{code: ExitBadArgument, err: err}
	}

	return nil
}

// applyFlags folds flag-only state into the render configuration.
func (a *App) applyFlags() {
	if a.flatten {
		a.cfg.RowSep = render.FlattenRowSep
	}
	if a.polyVar != "" {
		a.cfg.PolyVar = a.polyVar
	}
	cc := coerce.NewContext()
	if a.colsFlag != "" {
		if v, err := coerce.StrList(cc, a.colsFlag); err == nil {
			a.cfg.Cols = v.([]string)
		}
	}
	if a.rowsFlag != "" {
		if v, err := coerce.StrList(cc, a.rowsFlag); err == nil {
			a.cfg.Rows = v.([]string)
		}
	}
}

// buildLogger returns a debug-level console logger on the error stream
// when tracing is enabled, a no-op logger otherwise.
func (a *App) buildLogger() *zap.Logger {
	if !a.cfg.Debug {
		return zap.NewNop()
	}

	enc := zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
	core := zapcore.NewCore(enc, zapcore.AddSync(writerSyncer{a.errw}), zapcore.DebugLevel)

	return zap.New(core)
}

type writerSyncer struct{ io.Writer }

func (writerSyncer) Sync() error { return nil }

// codedError carries the exit class alongside the failure; silent entries
// already produced their own output (usage text).
type codedError struct {
	code   int
	err    error
	silent bool
}

func (e *codedError) Error() string { return e.err.Error() }
func (e *codedError) Unwrap() error { return e.err }

// report prints the failure per the propagation policy and returns the
// exit code. Quiet suppresses the message, never the code; raise
// propagates the original failure after the message.
func (a *App) report(err error) int {
	var coded *codedError
	if !errors.As(err, &coded) {
		coded = &codedError{code: ExitBadArgument, err: err}
	}

	if !a.cfg.Quiet && !coded.silent {
		fmt.Fprintf(a.errw, "matcli: error: %v\n", coded.err)
	}
	if a.cfg.Raise {
		panic(coded.err)
	}

	return coded.code
}
