package commands

import (
	"github.com/spf13/cobra"
)

func addAdd(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add something",
		Example: `
agenda add event team standup --on=2020-2-28 --start=09:30 --end=10:00
agenda add task file expense report --on=2/28
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	addEvent(cmd)
	addTask(cmd)

	topLevel.AddCommand(cmd)
}
