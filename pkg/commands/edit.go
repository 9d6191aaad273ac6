package commands

import (
	"errors"

	base "github.com/n3wscott/cli-base/pkg/commands/options"
	"github.com/spf13/cobra"

	"tableflip.dev/agenda/pkg/commands/options"
	"tableflip.dev/agenda/pkg/item"
	"tableflip.dev/agenda/pkg/printers"
)

func addEdit(topLevel *cobra.Command) {
	eo := &options.EventOptions{}
	oo := &options.OnOptions{}
	io := &options.IDOptions{}

	var title string

	cmd := &cobra.Command{
		Use:   "edit <event id>",
		Short: "Edit fields of an event",
		Example: `
agenda edit 8bfdb038 --title="moved standup" --start=10:00
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("requires exactly one event id")
			}
			io.ID = args[0]
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, adapter, err := loadService()
			if err != nil {
				return err
			}
			defer adapter.Flush()

			ev, ok := svc.EventByID(io.ID)
			if !ok {
				return output.HandleError(errors.New("no event with id " + io.ID))
			}
			ev = ev.Clone()

			if cmd.Flags().Changed("title") {
				ev.Title = title
			}
			if cmd.Flags().Changed("label") {
				ev.Label = eo.Label
			}
			if cmd.Flags().Changed("description") {
				ev.Description = eo.Description
			}
			if cmd.Flags().Changed("location") {
				ev.Location = eo.Location
			}
			if cmd.Flags().Changed("venue") {
				ev.VenueID = eo.Venue
			}
			if cmd.Flags().Changed("reminder") {
				ev.ReminderMinutes = eo.Reminder
			}
			if cmd.Flags().Changed("on") {
				day, err := oo.GetOnOrNow()
				if err != nil {
					return err
				}
				ev.Day = item.At(day)
			}
			if cmd.Flags().Changed("start") {
				t, err := options.ClockOn(ev.Day.Time, eo.Start)
				if err != nil {
					return err
				}
				ev.StartTime = item.At(t)
			}
			if cmd.Flags().Changed("end") {
				t, err := options.ClockOn(ev.Day.Time, eo.End)
				if err != nil {
					return err
				}
				ev.EndTime = item.At(t)
			}

			ev, err = svc.UpdateEvent(ev)
			if err != nil {
				return output.HandleError(err)
			}

			pp := printers.New()
			pp.ShowID = true
			pp.Title("Updated")
			pp.Events(ev)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Replace the event title.")
	options.AddOnArgs(cmd, oo)
	options.AddEventArgs(cmd, eo)
	base.AddOutputArg(cmd, output)

	topLevel.AddCommand(cmd)
}
