package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
	"github.com/thisisjab/exprzilla/interp"
	"github.com/thisisjab/exprzilla/source"
)

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	return out.String(), err
}

// resetFlags undoes the flag state a previous Execute left on the package
// level commands.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		f.Value.Set(f.DefValue) //nolint:errcheck
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)

	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestEvalCommand(t *testing.T) {
	out, err := execute(t, "", "eval", "-e", "(1 + 2) * 3")
	require.NoError(t, err)
	require.Equal(t, "9\n", out)
}

func TestEvalCommandFromStdinReportsFault(t *testing.T) {
	_, err := execute(t, "1 +\n  10 / 0", "eval", "-")
	require.Error(t, err)
	require.Contains(t, err.Error(), "eval error at 2:6: division by zero")
	require.Contains(t, err.Error(), "  10 / 0\n       ^")
}

func TestTokensCommandKeepGoing(t *testing.T) {
	out, err := execute(t, "", "tokens", "-k", "-e", "1 @ x")
	require.Error(t, err)
	require.Contains(t, err.Error(), "unknown symbol")
	require.Equal(t, "1:1\tINT(1)\n1:3\tILLEGAL(\"@\")\n1:5\tIDENT(x)\n1:6\tEOF\n", out)
}

func TestASTCommand(t *testing.T) {
	path := writeFile(t, "expr.txt", "1 + 2 * 3\n")

	out, err := execute(t, "", "ast", path)
	require.NoError(t, err)
	require.Equal(t, "(+ 1 (* 2 3))\n", out)
}

func TestBatchCommand(t *testing.T) {
	path := writeFile(t, "batch.txt", "1 + 1\n\n2 * 3\n4 / 0\n")

	out, err := execute(t, "", "batch", path)
	require.Error(t, err)
	require.Equal(t, "1 of 3 expressions failed", err.Error())

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	require.Equal(t, "1: 2", lines[0])
	require.Equal(t, "3: 6", lines[1])
	require.True(t, strings.HasPrefix(lines[2], "4: error: "), lines[2])
}

func TestExplicitMissingConfigFails(t *testing.T) {
	_, err := execute(t, "", "--config", filepath.Join(t.TempDir(), "missing.yaml"), "ast", "-")
	require.Error(t, err)
}

func TestReportSnapshotSplitsStreams(t *testing.T) {
	in := interp.New(interp.Options{}, nil)
	at := time.Date(2026, 10, 19, 9, 30, 15, 0, time.UTC)

	var out, errOut bytes.Buffer
	reportSnapshot(context.Background(), &out, &errOut, in, source.Snapshot{Content: "6 / 3", ReadAt: at})
	require.Equal(t, "[09:30:15] 2\n", out.String())
	require.Empty(t, errOut.String())

	out.Reset()
	reportSnapshot(context.Background(), &out, &errOut, in, source.Snapshot{Content: "6 / 0", ReadAt: at})
	require.Empty(t, out.String())
	require.Equal(t, "[09:30:15] eval error at 1:3: division by zero\n  6 / 0\n    ^\n", errOut.String())
}

func TestWatchCommandMissingFile(t *testing.T) {
	_, err := execute(t, "", "watch", filepath.Join(t.TempDir(), "typo.txt"))
	require.ErrorIs(t, err, os.ErrNotExist)
}
