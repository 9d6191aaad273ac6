package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"tableflip.dev/agenda/pkg/ics"
)

func addExport(topLevel *cobra.Command) {
	var path string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export all events as an iCalendar file",
		Example: `
agenda export
agenda export --file=calendar.ics
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, adapter, err := loadService()
			if err != nil {
				return err
			}
			defer adapter.Flush()

			events := svc.Store.Events()

			w := cmd.OutOrStdout()
			if path != "" {
				f, err := os.Create(path)
				if err != nil {
					return err
				}
				defer f.Close()
				w = f
			}

			if err := ics.Export(w, events); err != nil {
				return err
			}
			if path != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "wrote %d event(s) to %s\n", len(events), path)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&path, "file", "f", "", "Write to a file instead of stdout.")

	topLevel.AddCommand(cmd)
}
