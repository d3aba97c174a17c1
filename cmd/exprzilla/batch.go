package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/thisisjab/exprzilla/engine"
	"github.com/thisisjab/exprzilla/interp"
)

var batchWorkers uint

var batchCmd = &cobra.Command{
	Use:   "batch [file]",
	Short: "Evaluate every non-blank line of a file as its own expression",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := readSource(cmd, args, "", false)
		if err != nil {
			return err
		}

		jobs, err := engine.JobsFromLines(text)
		if err != nil {
			return err
		}

		cfg := runtimeCfg.Engine
		if cmd.Flags().Changed("workers") {
			cfg.WorkersCount = batchWorkers
		}

		e, err := engine.New(cfg, interp.New(runtimeCfg.Interp, logger), logger)
		if err != nil {
			return err
		}

		ctx, cancel := signalContext(cmd.Context())
		defer cancel()

		results, err := e.Run(ctx, jobs)
		if err != nil {
			return err
		}

		failed := 0
		for _, r := range results {
			if r.Err != nil {
				failed++
				fmt.Fprintf(cmd.OutOrStdout(), "%d: error: %v\n", r.Job.Line, r.Err)
				continue
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d: %d\n", r.Job.Line, r.Value)
		}

		if failed > 0 {
			return fmt.Errorf("%d of %d expressions failed", failed, len(results))
		}
		return nil
	},
}

func init() {
	batchCmd.Flags().UintVarP(&batchWorkers, "workers", "w", 0, "number of workers, overrides the config file")
}
