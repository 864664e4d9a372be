package commands

import (
	"fmt"
	"maps"
	"slices"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"assetdesk/internal/metadata"
)

func newReportsCmd(load registryLoader) *cobra.Command {
	return &cobra.Command{
		Use:   "reports",
		Short: "list report definitions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			reg, err := load()
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tLABEL\tCOLUMNS\tENDPOINT")
			for _, def := range reg.List() {
				fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", def.Name, def.Label, len(metadata.ExportableColumns(def.Columns)), def.Endpoint)
			}
			return tw.Flush()
		},
	}
}

func newColumnsCmd(load registryLoader) *cobra.Command {
	return &cobra.Command{
		Use:   "columns <report>",
		Short: "list the columns and query fields of a report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, def, err := lookup(load, args[0])
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "KEY\tTITLE\tKIND")
			for _, c := range metadata.ExportableColumns(def.Columns) {
				kind := string(c.Kind)
				if kind == "" {
					kind = "auto"
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\n", c.Key, c.Title, kind)
			}
			if err := tw.Flush(); err != nil {
				return err
			}

			if len(def.Fields) > 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "\nQuery aliases:")
				for _, alias := range slices.Sorted(maps.Keys(def.Fields)) {
					fmt.Fprintf(cmd.OutOrStdout(), "  %s -> %s\n", alias, def.Fields[alias])
				}
			}
			if def.DateField != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "\nDate field: %s (accepts @Today, @Today-N, @Today+N)\n", def.DateField)
			}
			return nil
		},
	}
}
