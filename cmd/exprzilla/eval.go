package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/thisisjab/exprzilla/fault"
	"github.com/thisisjab/exprzilla/interp"
)

var evalExpr string

var evalCmd = &cobra.Command{
	Use:   "eval [file]",
	Short: "Evaluate one expression and print its value",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		src, err := readSource(cmd, args, evalExpr, cmd.Flags().Changed("expr"))
		if err != nil {
			return err
		}

		in := interp.New(runtimeCfg.Interp, logger)
		res, err := in.Run(cmd.Context(), src)
		if err != nil {
			return errors.New(fault.Excerpt(src, err))
		}

		fmt.Fprintln(cmd.OutOrStdout(), res.Value)
		return nil
	},
}

func init() {
	evalCmd.Flags().StringVarP(&evalExpr, "expr", "e", "", "expression to evaluate instead of a file")
}
