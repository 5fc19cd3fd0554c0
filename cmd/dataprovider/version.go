package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kbukum/dataprovider/version"
)

func newVersionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			info := version.Get()
			if a.jsonOutput {
				return printer{w: cmd.OutOrStdout(), json: true}.value(info)
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), info.String())
			return err
		},
	}
}
