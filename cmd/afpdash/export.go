package main

import (
	"fmt"
	"time"

	"github.com/isaac24012000-oss/NOVIEMBRE-AFP-PRIMA/internal/cli"
	"github.com/isaac24012000-oss/NOVIEMBRE-AFP-PRIMA/internal/config"
	"github.com/isaac24012000-oss/NOVIEMBRE-AFP-PRIMA/internal/export"
	"github.com/isaac24012000-oss/NOVIEMBRE-AFP-PRIMA/internal/risk"
	"github.com/spf13/cobra"
)

func exportCmd() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the critical cases workbook",
		Long: `Write the styled critical cases workbook: priority 13 accounts with
direct contact and no payroll recovery, one row per account plus a
totals row.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			records, _, err := loadRecords(ctx)
			if err != nil {
				return err
			}

			generatedAt := time.Now()
			critical := risk.NewClassifier().Critical(records)

			path := out
			if path == "" {
				path = export.DefaultFilename(generatedAt)
			}
			path = config.ExpandPath(path)

			if err := export.NewWriter(nil).Save(path, critical, generatedAt); err != nil {
				return fmt.Errorf("failed to export critical cases: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Exported %d critical cases to %s", len(critical), path)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "output path (default: casos_criticos_<timestamp>.xlsx)")

	return cmd
}
