// Package commands implements the reportctl command tree.
package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"assetdesk/internal/domain/assets"
	"assetdesk/internal/metadata"
	"assetdesk/pkg/logger"
)

const version = "0.1.0"

// NewRootCmd builds the reportctl command tree.
func NewRootCmd() *cobra.Command {
	var (
		definitions string
		verbose     bool
	)

	root := &cobra.Command{
		Use:     "reportctl",
		Short:   "Run asset console reports offline",
		Version: version,
		Long: `Run the asset console record pipeline over a JSON dump of report rows.

Rows go through the column filters, then the query clause chain, then the sort,
exactly as on the report screens. The result is printed or exported to Excel or PDF.`,
		Example: `  # List the available reports
  $ reportctl reports

  # Show active assets in Goa, most expensive first
  $ reportctl query asset-register --records assets.json \
      --filter status=Active --where "State = Goa" --sort purchase_cost:desc

  # Export everything changed this year as a compact PDF
  $ reportctl export asset-register --records assets.json \
      --between changed_on=2026-01-01..2026-12-31 --kind pdf-compact --out ./out`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			log := logger.Nop()
			if verbose {
				l, err := logger.New(logger.Config{Level: "debug", Development: true, OutputPaths: []string{"stderr"}})
				if err != nil {
					return err
				}
				log = l
			}
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			cmd.SetContext(logger.WithLogger(ctx, log))
			return nil
		},
	}

	root.CompletionOptions.DisableDefaultCmd = true
	root.PersistentFlags().StringVar(&definitions, "definitions", "", "YAML file with extra report definitions")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log pipeline activity to stderr")

	loadRegistry := func() (*metadata.Registry, error) {
		reg := metadata.NewRegistry()
		if err := assets.Register(reg); err != nil {
			return nil, err
		}
		if definitions != "" {
			if _, err := reg.LoadFile(definitions); err != nil {
				return nil, err
			}
		}
		return reg, nil
	}

	root.AddCommand(
		newReportsCmd(loadRegistry),
		newColumnsCmd(loadRegistry),
		newQueryCmd(loadRegistry),
		newExportCmd(loadRegistry),
	)
	return root
}

type registryLoader func() (*metadata.Registry, error)

// Execute runs the command tree with os.Args.
func Execute() error {
	return NewRootCmd().Execute()
}

func lookup(load registryLoader, name string) (*metadata.Registry, metadata.ReportDef, error) {
	reg, err := load()
	if err != nil {
		return nil, metadata.ReportDef{}, err
	}
	def, ok := reg.Get(name)
	if !ok {
		return nil, metadata.ReportDef{}, fmt.Errorf("unknown report %q (see 'reportctl reports')", name)
	}
	return reg, def, nil
}
