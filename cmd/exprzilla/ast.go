package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/thisisjab/exprzilla/fault"
	"github.com/thisisjab/exprzilla/interp"
	"gopkg.in/yaml.v3"
)

var (
	astExpr string
	astYAML bool
)

var astCmd = &cobra.Command{
	Use:   "ast [file]",
	Short: "Print the syntax tree of a source",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		src, err := readSource(cmd, args, astExpr, cmd.Flags().Changed("expr"))
		if err != nil {
			return err
		}

		tree, _, err := interp.New(runtimeCfg.Interp, logger).Parse(src)
		if err != nil {
			return errors.New(fault.Excerpt(src, err))
		}

		if !astYAML {
			fmt.Fprintln(cmd.OutOrStdout(), tree)
			return nil
		}

		out, err := yaml.Marshal(tree)
		if err != nil {
			return fmt.Errorf("cannot marshal tree: %w", err)
		}
		_, err = cmd.OutOrStdout().Write(out)
		return err
	},
}

func init() {
	astCmd.Flags().StringVarP(&astExpr, "expr", "e", "", "source to parse instead of a file")
	astCmd.Flags().BoolVar(&astYAML, "yaml", false, "print the tree as YAML")
}
