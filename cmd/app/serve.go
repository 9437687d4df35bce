package main

import (
	"github.com/spf13/cobra"

	"github.com/0x0FACED/fortune-sweep/pkg/server"
)

func newServeCmd(o *rootOpts) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the interactive page",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := o.load()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}
			if o.random > 0 || o.grid > 0 {
				points, err := o.points(cfg)
				if err != nil {
					return err
				}
				cfg.Sites = cfg.Sites[:0]
				for _, p := range points {
					cfg.Sites = append(cfg.Sites, configSite(p))
				}
			}

			log, err := newLogger(cfg, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer log.Sync()

			return server.New(cfg, log).ListenAndServe(cmd.Context())
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides server.addr)")
	return cmd
}
