package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/thisisjab/exprzilla/fault"
	"github.com/thisisjab/exprzilla/interp"
	"github.com/thisisjab/exprzilla/source"
)

var watchCmd = &cobra.Command{
	Use:   "watch file",
	Short: "Re-evaluate a file every time it changes",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := signalContext(cmd.Context())
		defer cancel()

		src := source.NewFileSource(logger, args[0], runtimeCfg.WatchDebounce)
		in := interp.New(runtimeCfg.Interp, logger)

		snapshots := make(chan source.Snapshot)
		watchErr := make(chan error, 1)
		go func() {
			defer close(snapshots)
			watchErr <- src.Watch(ctx, snapshots)
		}()

		for snap := range snapshots {
			reportSnapshot(ctx, cmd.OutOrStdout(), cmd.ErrOrStderr(), in, snap)
		}

		if err := <-watchErr; err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	},
}

// reportSnapshot evaluates one snapshot. Values go to out, diagnostics to errOut.
func reportSnapshot(ctx context.Context, out, errOut io.Writer, in *interp.Interpreter, snap source.Snapshot) {
	stamp := snap.ReadAt.Format("15:04:05")

	res, err := in.Run(ctx, snap.Content)
	if err != nil {
		fmt.Fprintf(errOut, "[%s] %s\n", stamp, fault.Excerpt(snap.Content, err))
		return
	}
	fmt.Fprintf(out, "[%s] %d\n", stamp, res.Value)
}
