package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kbukum/dataprovider/dataprovider"
)

// listFlags are shared by list and refs.
type listFlags struct {
	page    int
	perPage int
	sort    string
	order   string
	filters []string
}

func (f *listFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&f.page, "page", 0, "1-based page number")
	cmd.Flags().IntVar(&f.perPage, "per-page", 0, "records per page")
	cmd.Flags().StringVar(&f.sort, "sort", "", "field to sort by")
	cmd.Flags().StringVar(&f.order, "order", "asc", "sort order: asc or desc")
	cmd.Flags().StringArrayVar(&f.filters, "filter", nil, "field=value filter, repeatable")
}

func (f *listFlags) pagination() *dataprovider.PaginationPayload {
	if f.page <= 0 && f.perPage <= 0 {
		return nil
	}
	return &dataprovider.PaginationPayload{Page: f.page, PerPage: f.perPage}
}

func (f *listFlags) sortBy() (*dataprovider.SortPayload, error) {
	if f.sort == "" {
		return nil, nil
	}
	order, err := dataprovider.ParseSortOrder(f.order)
	if err != nil {
		return nil, err
	}
	return &dataprovider.SortPayload{Field: f.sort, Order: order}, nil
}

func (f *listFlags) filter() (dataprovider.FilterPayload, error) {
	if len(f.filters) == 0 {
		return nil, nil
	}
	fields, err := parseAssignments(f.filters)
	if err != nil {
		return nil, err
	}
	return dataprovider.FilterPayload(fields), nil
}

func newResourcesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "resources",
		Short: "List the resources configured for the client",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			for _, rc := range a.client.Resources {
				fields := make([]string, len(rc.Fields))
				for i, f := range rc.Fields {
					fields[i] = f.Name
				}
				fmt.Fprintf(w, "%s\t%s\t%s\n", rc.Name, dataprovider.NewResource(rc.Resource), strings.Join(fields, ","))
			}
			return nil
		},
	}
}

func newListCmd(a *app) *cobra.Command {
	var lf listFlags
	cmd := &cobra.Command{
		Use:   "list <resource>",
		Short: "List records of a resource",
		Example: `  dataprovider list posts
  dataprovider list posts --page 2 --per-page 10 --sort title --filter userId=1`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, rc := a.client.resolve(args[0])
			sort, err := lf.sortBy()
			if err != nil {
				return err
			}
			filter, err := lf.filter()
			if err != nil {
				return err
			}
			out, err := a.dp.GetList(cmd.Context(), res, dataprovider.GetListParams{
				Pagination: lf.pagination(),
				Sort:       sort,
				Filter:     filter,
			})
			if err != nil {
				return err
			}
			return a.printer(cmd, rc).list(out.Data, out.Total, out.PageInfo)
		},
	}
	lf.register(cmd)
	return cmd
}

func newGetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <resource> <id>...",
		Short: "Get one record, or several when more ids are given",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, rc := a.client.resolve(args[0])
			ids, err := parseIDs(args[1:], a.numericIDs)
			if err != nil {
				return err
			}
			p := a.printer(cmd, rc)
			if len(ids) == 1 {
				out, err := a.dp.GetOne(cmd.Context(), res, dataprovider.GetOneParams{ID: ids[0]})
				if err != nil {
					return err
				}
				return p.record(out.Data)
			}
			out, err := a.dp.GetMany(cmd.Context(), res, dataprovider.GetManyParams{IDs: ids})
			if err != nil {
				return err
			}
			return p.records(out.Data)
		},
	}
}

func newRefsCmd(a *app) *cobra.Command {
	var lf listFlags
	cmd := &cobra.Command{
		Use:     "refs <resource> <id> <target>",
		Short:   "List records of target that belong to a record",
		Example: `  dataprovider refs posts 1 comments --per-page 10 --sort name`,
		Args:    cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, _ := a.client.resolve(args[0])
			ids, err := parseIDs(args[1:2], a.numericIDs)
			if err != nil {
				return err
			}
			target, rc := a.client.resolve(args[2])
			params := dataprovider.GetManyReferenceParams{Target: target.Name(), ID: ids[0]}
			if pg := lf.pagination(); pg != nil {
				params.Pagination = *pg
			}
			sort, err := lf.sortBy()
			if err != nil {
				return err
			}
			if sort != nil {
				params.Sort = *sort
			}
			if params.Filter, err = lf.filter(); err != nil {
				return err
			}

			out, err := a.dp.GetManyReference(cmd.Context(), res, params)
			if err != nil {
				return err
			}
			return a.printer(cmd, rc).list(out.Data, out.Total, out.PageInfo)
		},
	}
	lf.register(cmd)
	return cmd
}

func (a *app) printer(cmd *cobra.Command, rc *resourceConfig) printer {
	return printer{w: cmd.OutOrStdout(), json: a.jsonOutput, fields: rc.fieldNames()}
}
