package commands

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"assetdesk/internal/domain/export"
	"assetdesk/internal/domain/reports"
	"assetdesk/internal/infrastructure/source"
	"assetdesk/internal/metadata"
)

func newQueryCmd(load registryLoader) *cobra.Command {
	var (
		flags    pipelineFlags
		page     int
		pageSize int
		asJSON   bool
	)

	cmd := &cobra.Command{
		Use:   "query <report>",
		Short: "print one page of pipeline output",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, def, p, err := prepare(load, args[0], &flags)
			if err != nil {
				return err
			}

			out, err := svc.Query(cmd.Context(), def.Name, p.WithPage(page, pageSize))
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(out)
			}

			cols := metadata.ExportableColumns(def.Columns)
			table := export.FormatRows(out.Rows, cols)

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, strings.Join(table.Titles(), "\t"))
			for _, row := range table.Rows {
				cells := make([]string, len(row))
				for i, v := range row {
					cells[i] = v.String()
				}
				fmt.Fprintln(tw, strings.Join(cells, "\t"))
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "\npage %d of %d, %d rows, fingerprint %s\n", out.Page, out.TotalPages, out.Total, out.Fingerprint)
			return nil
		},
	}

	flags.bind(cmd)
	cmd.Flags().IntVar(&page, "page", 1, "page number")
	cmd.Flags().IntVar(&pageSize, "page-size", 10, "rows per page")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the page as JSON")
	return cmd
}

// prepare loads the report definition and rows and builds a service over them.
func prepare(load registryLoader, name string, flags *pipelineFlags) (*reports.Service, metadata.ReportDef, reports.Params, error) {
	reg, def, err := lookup(load, name)
	if err != nil {
		return nil, def, reports.Params{}, err
	}

	rows, err := source.ReadFile(flags.records, def.Envelope)
	if err != nil {
		return nil, def, reports.Params{}, err
	}

	p, err := flags.params()
	if err != nil {
		return nil, def, reports.Params{}, err
	}

	formatter := export.NewFormatter(export.DefaultOptions(), nil)
	svc := reports.NewService(reg, source.Static(rows), formatter, reports.Config{})
	return svc, def, p, nil
}
