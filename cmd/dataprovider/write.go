package main

import (
	"github.com/spf13/cobra"

	"github.com/kbukum/dataprovider/dataprovider"
)

func newCreateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "create <resource> <key=value>...",
		Short:   "Create a record",
		Example: `  dataprovider create posts title=hello body=world userId=1`,
		Args:    cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, rc := a.client.resolve(args[0])
			fields, err := parseAssignments(args[1:])
			if err != nil {
				return err
			}
			out, err := a.dp.Create(cmd.Context(), res, dataprovider.CreateParams{Data: fields})
			if err != nil {
				return err
			}
			return a.printer(cmd, rc).record(out.Data)
		},
	}
}

func newUpdateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "update <resource> <id> <key=value>...",
		Short: "Replace the fields of a record",
		Args:  cobra.MinimumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, rc := a.client.resolve(args[0])
			ids, err := parseIDs(args[1:2], a.numericIDs)
			if err != nil {
				return err
			}
			fields, err := parseAssignments(args[2:])
			if err != nil {
				return err
			}
			out, err := a.dp.Update(cmd.Context(), res, dataprovider.UpdateParams{ID: ids[0], Data: fields})
			if err != nil {
				return err
			}
			return a.printer(cmd, rc).record(out.Data)
		},
	}
}

func newUpdateManyCmd(a *app) *cobra.Command {
	var idList string
	cmd := &cobra.Command{
		Use:     "update-many <resource> --ids <id,id...> <key=value>...",
		Short:   "Apply the same fields to several records",
		Example: `  dataprovider update-many posts --ids 1,2,3 title=bulk`,
		Args:    cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, rc := a.client.resolve(args[0])
			ids, err := splitIDs(idList, a.numericIDs)
			if err != nil {
				return err
			}
			fields, err := parseAssignments(args[1:])
			if err != nil {
				return err
			}
			out, err := a.dp.UpdateMany(cmd.Context(), res, dataprovider.UpdateManyParams{IDs: ids, Data: fields})
			if err != nil {
				return err
			}
			return a.printer(cmd, rc).ids(out.Data)
		},
	}
	cmd.Flags().StringVar(&idList, "ids", "", "comma separated record ids")
	_ = cmd.MarkFlagRequired("ids")
	return cmd
}

func newDeleteCmd(a *app) *cobra.Command {
	var fetch bool
	cmd := &cobra.Command{
		Use:   "delete <resource> <id>",
		Short: "Delete a record",
		Long: `Delete removes one record and prints it. Backends that do not echo the
deleted record need --fetch, which reads the record before deleting it.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, rc := a.client.resolve(args[0])
			ids, err := parseIDs(args[1:], a.numericIDs)
			if err != nil {
				return err
			}
			params := dataprovider.DeleteParams{ID: ids[0]}
			if fetch {
				prev, err := a.dp.GetOne(cmd.Context(), res, dataprovider.GetOneParams{ID: ids[0]})
				if err != nil {
					return err
				}
				params.PreviousData = &prev.Data
			}
			out, err := a.dp.Delete(cmd.Context(), res, params)
			if err != nil {
				return err
			}
			return a.printer(cmd, rc).record(out.Data)
		},
	}
	cmd.Flags().BoolVar(&fetch, "fetch", false, "read the record first and use it as the previous data")
	return cmd
}

func newDeleteManyCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete-many <resource> <id>...",
		Short: "Delete several records",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, rc := a.client.resolve(args[0])
			ids, err := parseIDs(args[1:], a.numericIDs)
			if err != nil {
				return err
			}
			out, err := a.dp.DeleteMany(cmd.Context(), res, dataprovider.DeleteManyParams{IDs: ids})
			if err != nil {
				return err
			}
			return a.printer(cmd, rc).ids(out.Data)
		},
	}
}
