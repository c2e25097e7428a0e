// Package cli_test drives whole invocations through the command surface
// and asserts on streams and exit codes.
package cli_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/matcli/cli"
	"github.com/katalvlaran/matcli/schema"
)

// execute runs one invocation with captured streams and no piped input.
func execute(t *testing.T, args ...string) (code int, stdout, stderr string) {
	t.Helper()

	return executePiped(t, nil, args...)
}

// executePiped runs one invocation feeding the given lines as piped input.
func executePiped(t *testing.T, lines []string, args ...string) (code int, stdout, stderr string) {
	t.Helper()
	var out, errw strings.Builder

	var pipe schema.LineSource
	if lines != nil {
		i := 0
		pipe = func() (string, bool) {
			if i >= len(lines) {
				return "", false
			}
			line := lines[i]
			i++
			return line, true
		}
	}

	app := cli.New(
		cli.WithOutput(&out),
		cli.WithErrOutput(&errw),
		cli.WithPipe(pipe),
	)

	return app.Execute(args), out.String(), errw.String()
}

func TestExecute_Success(t *testing.T) {
	code, out, errw := execute(t, "matrix.add", "1,2;3,4", "10,20;30,40")
	require.Equal(t, cli.ExitOK, code)
	require.Equal(t, "11,22\n33,44\n", out)
	require.Empty(t, errw)
}

func TestExecute_FlattenFlag(t *testing.T) {
	code, out, _ := execute(t, "--flatten", "matrix.add", "1,2;3,4", "1,1;1,1")
	require.Equal(t, cli.ExitOK, code)
	require.Equal(t, "2,3;4,5\n", out)
}

func TestExecute_PolyFlagDefaultVariable(t *testing.T) {
	code, out, _ := execute(t, "--poly", "matrix.flatten", "2,-3,1")
	require.Equal(t, cli.ExitOK, code)
	require.Equal(t, "2-3x+1x^2\n", out)
}

func TestExecute_PolyFlagNamedVariable(t *testing.T) {
	code, out, _ := execute(t, "--poly=t", "matrix.flatten", "2,-3,1")
	require.Equal(t, cli.ExitOK, code)
	require.Equal(t, "2-3t+1t^2\n", out)
}

func TestExecute_HeaderFlags(t *testing.T) {
	code, out, _ := execute(t,
		"--columns", "a,b", "--rows", "r1,r2", "--name", "M",
		"matrix.add", "1,2;3,4", "0,0;0,0")
	require.Equal(t, cli.ExitOK, code)
	require.Equal(t, "M,a,b\nr1,1,2\nr2,3,4\n", out)
}

func TestExecute_SliceFlagAppliesToMatrixArgs(t *testing.T) {
	// Default slice picks the first row of each argument.
	code, out, _ := execute(t, "--slice", "0", "matrix.add", "1,2;3,4", "10,20;30,40")
	require.Equal(t, cli.ExitOK, code)
	require.Equal(t, "11,22\n", out)
}

func TestExecute_NoFunctionName(t *testing.T) {
	code, _, errw := execute(t)
	require.Equal(t, cli.ExitUsage, code)
	require.Contains(t, errw, "Usage")
}

func TestExecute_FunctionNotFound(t *testing.T) {
	code, _, errw := execute(t, "matrix.nope", "1,2")
	require.Equal(t, cli.ExitNotFound, code)
	require.Contains(t, errw, "matrix.nope")
}

func TestExecute_BadArgument(t *testing.T) {
	code, _, errw := execute(t, "matrix.reshape", "1,2,3,4", "not-a-shape")
	require.Equal(t, cli.ExitBadArgument, code)
	require.Contains(t, errw, "error")
}

func TestExecute_InvocationFailureEmitsSentinel(t *testing.T) {
	code, out, errw := execute(t, "matrix.dot", "1,2;3,4", "1,2,3")
	require.Equal(t, cli.ExitInvocation, code)
	// The sentinel is the whole primary output: nothing precedes it.
	require.Equal(t, cli.ErrorSentinel+"\n", out)
	require.Contains(t, errw, "matrix.dot")
}

func TestExecute_QuietSuppressesMessageNotCode(t *testing.T) {
	code, out, errw := execute(t, "--quiet", "matrix.dot", "1,2;3,4", "1,2,3")
	require.Equal(t, cli.ExitInvocation, code)
	require.Equal(t, cli.ErrorSentinel+"\n", out)
	require.Empty(t, errw)
}

func TestExecute_RaisePropagates(t *testing.T) {
	require.Panics(t, func() {
		execute(t, "--raise", "matrix.dot", "1,2;3,4", "1,2,3")
	})
}

func TestExecute_PipeFillsPositionals(t *testing.T) {
	code, out, _ := executePiped(t, []string{"1,2;3,4"}, "matrix.sum")
	require.Equal(t, cli.ExitOK, code)
	require.Equal(t, "10\n", out)
}

func TestExecute_HelpSummaryListsFunctions(t *testing.T) {
	code, out, _ := execute(t, "help")
	require.Equal(t, cli.ExitOK, code)
	require.Contains(t, out, "usage: matcli")
	require.Contains(t, out, "matrix.add")
	require.Contains(t, out, "linalg.svd")
}

func TestExecute_HelpSubstringMatches(t *testing.T) {
	code, out, _ := execute(t, "help", "stack")
	require.Equal(t, cli.ExitOK, code)
	require.Contains(t, out, "matrix.hstack")
	require.Contains(t, out, "matrix.vstack")
	require.NotContains(t, out, "linalg.det")
}

func TestExecute_HelpNoMatch(t *testing.T) {
	code, _, errw := execute(t, "help", "zzznothing")
	require.Equal(t, cli.ExitNotFound, code)
	require.Contains(t, errw, "zzznothing")
}

func TestExecute_Version(t *testing.T) {
	code, out, _ := execute(t, "version")
	require.Equal(t, cli.ExitOK, code)
	require.Contains(t, out, "matcli")
	require.Contains(t, out, "gonum.org/v1/gonum")
}

func TestExecute_WriteDocs(t *testing.T) {
	dir := t.TempDir()
	code, _, _ := execute(t, "--write-docs", dir)
	require.Equal(t, cli.ExitOK, code)

	raw, err := os.ReadFile(filepath.Join(dir, "matrix.md"))
	require.NoError(t, err)
	require.Contains(t, string(raw), "## matrix.add")

	for _, ns := range []string{"linalg", "poly", "random", "stats", "fft"} {
		_, err := os.Stat(filepath.Join(dir, ns+".md"))
		require.NoError(t, err)
	}
}

func TestExecute_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.yaml")
	require.NoError(t, os.WriteFile(path, []byte("flatten: true\n"), 0o644))

	code, out, _ := execute(t, "--config", path, "matrix.add", "1,2;3,4", "0,0;0,0")
	require.Equal(t, cli.ExitOK, code)
	require.Equal(t, "1,2;3,4\n", out)
}

func TestExecute_ConfigFileMissingExplicit(t *testing.T) {
	code, _, errw := execute(t, "--config", "/nonexistent/cfg.yaml", "version")
	require.Equal(t, cli.ExitBadArgument, code)
	require.Contains(t, errw, "config")
}

func TestExecute_DebugTracesToErrorStream(t *testing.T) {
	code, out, errw := execute(t, "--debug", "matrix.sum", "1,2;3,4")
	require.Equal(t, cli.ExitOK, code)
	require.Equal(t, "10\n", out)
	require.Contains(t, errw, "invoke")
}
