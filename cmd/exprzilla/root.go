package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/thisisjab/exprzilla/config"
)

var (
	cfgPath string

	runtimeCfg *config.Runtime
	logger     *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "exprzilla",
	Short: "exprzilla - a tiny integer expression interpreter",
	Long: `exprzilla lexes, parses and evaluates integer arithmetic expressions.

Commands:
  eval    Evaluate one expression
  tokens  Print the token stream of a source
  ast     Print the syntax tree of a source
  batch   Evaluate every line of a file concurrently
  watch   Re-evaluate a file whenever it changes
  serve   Serve evaluation over HTTP
`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadConfig,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", config.DefaultPath, "path to config file")

	rootCmd.AddCommand(evalCmd, tokensCmd, astCmd, batchCmd, watchCmd, serveCmd)
}

// loadConfig reads the config file. The default path is optional; a path
// given explicitly with --config must exist.
func loadConfig(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		if cmd.Flags().Changed("config") || !errors.Is(err, os.ErrNotExist) {
			return err
		}
		cfg = config.Default()
	}

	rt, l, err := cfg.Parse()
	if err != nil {
		return fmt.Errorf("cannot parse config file: %w", err)
	}

	runtimeCfg = rt
	logger = l
	return nil
}

// signalContext is cancelled on SIGINT or SIGTERM.
func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		defer signal.Stop(sigChan)

		select {
		case sig := <-sigChan:
			logger.Info("received signal. shutting down.", "signal", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, cancel
}

// readSource returns the expression given with -e, or the content of the file
// named by the only argument. No argument or "-" reads stdin.
func readSource(cmd *cobra.Command, args []string, expr string, exprSet bool) (string, error) {
	if exprSet {
		if len(args) > 0 {
			return "", errors.New("cannot use both --expr and a file argument")
		}
		return expr, nil
	}

	if len(args) == 0 || args[0] == "-" {
		content, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("cannot read stdin: %w", err)
		}
		return string(content), nil
	}

	content, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("cannot read source file: %w", err)
	}
	return string(content), nil
}
