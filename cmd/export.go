package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/sadopc/tomato/internal/export"
	"github.com/sadopc/tomato/internal/logging"
)

func newExportCmd(rt *runtime) *cobra.Command {
	var (
		format string
		output string
		since  string
		preset string
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write finished sessions to a CSV, JSON or YAML file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			now := time.Now()

			f, err := export.ParseFormat(format)
			if err != nil {
				return err
			}
			filter, err := sessionFilter(since, preset, 0, now)
			if err != nil {
				return err
			}
			sessions, err := rt.store.ListSessions(filter)
			if err != nil {
				return err
			}

			path := output
			if path == "" {
				if err := os.MkdirAll(rt.cfg.ExportDir, 0o755); err != nil {
					return fmt.Errorf("create export directory: %w", err)
				}
				path = filepath.Join(rt.cfg.ExportDir, fmt.Sprintf("tomato-export-%s.%s", now.Format("2006-01-02"), f.Ext()))
			}

			if err := export.Write(f, sessions, path); err != nil {
				return err
			}
			logging.Info("export written",
				logging.KeyFormat, string(f),
				logging.KeyPath, path,
				logging.KeyCount, len(sessions),
			)
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d sessions to %s\n", len(sessions), path)
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "csv", "csv, json or yaml")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: export_dir/tomato-export-DATE.EXT)")
	cmd.Flags().StringVar(&since, "since", "", "only sessions after this time")
	cmd.Flags().StringVar(&preset, "preset", "", "only sessions of this preset")
	return cmd
}
