package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/templui/scheduletable/internal/ctxkeys"
	"github.com/templui/scheduletable/internal/grid"
	"github.com/templui/scheduletable/internal/repository"
	"github.com/templui/scheduletable/internal/service"
	"github.com/templui/scheduletable/internal/ui"
	"github.com/templui/scheduletable/internal/ui/pages"
)

func ExportCmd() *cobra.Command {
	var output string

	export := &cobra.Command{
		Use:   "export",
		Short: "Write an HTML snapshot of the schedule",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, database, err := openDB()
			if err != nil {
				return err
			}
			defer database.Close()

			svc := service.NewScheduleService(repository.NewScheduleEntryRepository(database), nil, nil)
			entries, err := svc.Snapshot()
			if err != nil {
				return err
			}

			ctx := ctxkeys.WithConfig(context.Background(), cfg.Sanitized())
			html, err := ui.Bytes(ctx, pages.Export(pages.ExportProps{
				View:        grid.Build(entries),
				GeneratedAt: time.Now(),
			}))
			if err != nil {
				return err
			}

			var w io.Writer = cmd.OutOrStdout()
			if output != "" {
				f, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("failed to create %s: %w", output, err)
				}
				defer f.Close()
				w = f
			}

			_, err = w.Write(html)
			return err
		},
	}

	export.Flags().StringVarP(&output, "output", "o", "", "write to file instead of stdout")
	return export
}
