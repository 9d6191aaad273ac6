package commands

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"tableflip.dev/agenda/pkg/clock"
	"tableflip.dev/agenda/pkg/item"
	"tableflip.dev/agenda/pkg/remind"
)

func addRemind(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "remind",
		Short: "Watch for due reminders and print them",
		Long: `Run in the foreground and print a line whenever an event with a
reminder window reaches its fire time. Stop with ctrl-c.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, adapter, err := loadService()
			if err != nil {
				return err
			}
			defer adapter.Flush()

			s := remind.NewScheduler(
				func() []*item.Event { return svc.Store.Events() },
				func(n remind.Notification) {
					lead := color.New(color.FgYellow).Sprint("reminder")
					fmt.Fprintf(cmd.OutOrStdout(), "%s %s at %s\n",
						lead, n.Event.Title, n.Event.StartTime.Format("15:04"))
				},
				clock.System{},
			)
			return s.Start(cmd.Context())
		},
	}

	topLevel.AddCommand(cmd)
}
