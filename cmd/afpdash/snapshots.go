package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/isaac24012000-oss/NOVIEMBRE-AFP-PRIMA/internal/cli"
	"github.com/spf13/cobra"
)

func snapshotsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "snapshots",
		Short: "Manage stored load snapshots",
	}

	cmd.AddCommand(listSnapshotsCmd())

	return cmd
}

func listSnapshotsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored load snapshots",
		Long:  `Display every stored workbook load, newest first.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStore(ctx)
			if err != nil {
				return err
			}
			defer func() {
				_ = store.Close()
			}()

			infos, err := store.ListSnapshots(ctx)
			if err != nil {
				return fmt.Errorf("failed to list snapshots: %w", err)
			}

			if len(infos) == 0 {
				fmt.Println(cli.FormatInfo("No snapshots stored yet. Run a report against a workbook first."))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer func() {
				_ = w.Flush()
			}()

			header := func(s string) string { return cli.TableHeaderStyle.Render(s) }
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				header("ID"), header("SOURCE"), header("LOADED"), header("RECORDS"))
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				strings.Repeat("-", 4), strings.Repeat("-", 30),
				strings.Repeat("-", 16), strings.Repeat("-", 7))

			for _, info := range infos {
				fmt.Fprintf(w, "%d\t%s\t%s\t%d\n",
					info.ID, info.Source,
					info.LoadedAt.Format("02/01/2006 15:04"), info.RecordCount)
			}
			return nil
		},
	}
}
