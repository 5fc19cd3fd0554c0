package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kbukum/dataprovider/jsonserver"
)

func newServeCmd(a *app) *cobra.Command {
	var (
		addr string
		db   string
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve an in-memory json-server style REST backend",
		Long: `Serve starts a REST backend that follows json-server conventions. It is
seeded from --db (a JSON object of resource arrays) or with sample posts,
comments and users. Data lives in memory and is lost on exit.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store := jsonserver.NewStore(jsonserver.SampleData())
			if db != "" {
				var err error
				if store, err = jsonserver.LoadStoreFile(db); err != nil {
					return err
				}
			}

			srv := jsonserver.New(store, jsonserver.WithLogger(a.log))
			if err := srv.Start(cmd.Context(), addr); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "serving %v on http://%s\n", store.Resources(), srv.Addr())

			<-cmd.Context().Done()
			return srv.Stop(context.WithoutCancel(cmd.Context()))
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "127.0.0.1:3000", "listen address")
	cmd.Flags().StringVar(&db, "db", "", "JSON file to seed the store from")
	return cmd
}
