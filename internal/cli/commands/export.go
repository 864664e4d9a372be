package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"assetdesk/internal/domain/export"
)

func newExportCmd(load registryLoader) *cobra.Command {
	var (
		flags pipelineFlags
		kind  string
		out   string
	)

	cmd := &cobra.Command{
		Use:   "export <report>",
		Short: "export the whole pipeline output to Excel or PDF",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			k, ok := export.ParseKind(kind)
			if !ok || k == export.KindDashboard {
				return fmt.Errorf("--kind %q: expected excel, pdf or pdf-compact", kind)
			}

			svc, def, p, err := prepare(load, args[0], &flags)
			if err != nil {
				return err
			}

			art, res, err := svc.Export(cmd.Context(), def.Name, k, p, "")
			if err != nil {
				return err
			}
			if !res.Success {
				return errors.New(res.Error)
			}

			if err := os.MkdirAll(out, 0o755); err != nil {
				return fmt.Errorf("create output directory: %w", err)
			}
			path := filepath.Join(out, art.Filename)
			if err := os.WriteFile(path, art.Data, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", path, err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s (%d rows)\n", path, res.RecordCount)
			return nil
		},
	}

	flags.bind(cmd)
	cmd.Flags().StringVar(&kind, "kind", string(export.KindExcel), "excel, pdf or pdf-compact")
	cmd.Flags().StringVarP(&out, "out", "o", ".", "output directory")
	return cmd
}
