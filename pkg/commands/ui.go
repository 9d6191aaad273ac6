package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/agenda/pkg/tui"
)

func addUI(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "ui",
		Short: "open the interactive calendar",
		Example: `
agenda ui
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, adapter, err := loadService()
			if err != nil {
				return err
			}
			defer adapter.Flush()
			return tui.Run(cmd.Context(), svc, adapter)
		},
	}

	topLevel.AddCommand(cmd)
}
