package main

import (
	"github.com/spf13/cobra"
	"github.com/thisisjab/exprzilla/api"
	"github.com/thisisjab/exprzilla/interp"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve expression evaluation over HTTP",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := runtimeCfg.API
		if serveAddr != "" {
			cfg.Addr = serveAddr
		}

		s, err := api.NewServer(cfg, interp.New(runtimeCfg.Interp, logger), logger)
		if err != nil {
			return err
		}

		ctx, cancel := signalContext(cmd.Context())
		defer cancel()

		return s.Serve(ctx)
	},
}

func init() {
	serveCmd.Flags().StringVarP(&serveAddr, "addr", "a", "", "listen address, overrides the config file")
}
