package commands

import (
	"errors"
	"strings"

	base "github.com/n3wscott/cli-base/pkg/commands/options"
	"github.com/spf13/cobra"

	"tableflip.dev/agenda/pkg/commands/options"
	"tableflip.dev/agenda/pkg/item"
	"tableflip.dev/agenda/pkg/printers"
)

func addEvent(topLevel *cobra.Command) {
	eo := &options.EventOptions{}
	oo := &options.OnOptions{}
	io := &options.IDOptions{}

	var title string

	cmd := &cobra.Command{
		Use:   "event",
		Short: "Add an event",
		Example: `
agenda add event a fun party --on=1999-12-31 --start=21:00 --label=purple
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 {
				return errors.New("requires an event title")
			}
			title = strings.Join(args, " ")
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, adapter, err := loadService()
			if err != nil {
				return err
			}
			defer adapter.Flush()

			day, err := oo.GetOnOrNow()
			if err != nil {
				return err
			}
			start, err := options.ClockOn(day, eo.Start)
			if err != nil {
				return err
			}
			end, err := options.ClockOn(day, eo.End)
			if err != nil {
				return err
			}

			ev := &item.Event{
				Title:           title,
				Description:     eo.Description,
				Location:        eo.Location,
				Label:           eo.Label,
				Day:             item.At(day),
				VenueID:         eo.Venue,
				ReminderMinutes: eo.Reminder,
			}
			if !start.IsZero() {
				ev.StartTime = item.At(start)
			}
			if !end.IsZero() {
				ev.EndTime = item.At(end)
			}

			ev, err = svc.AddEvent(ev)
			if err != nil {
				return output.HandleError(err)
			}

			pp := printers.New()
			pp.ShowID = io.ShowID
			pp.Title("Added")
			pp.Events(ev)
			return nil
		},
	}

	options.AddOnArgs(cmd, oo)
	options.AddEventArgs(cmd, eo)
	options.AddShowIDArgs(cmd, io)
	base.AddOutputArg(cmd, output)

	topLevel.AddCommand(cmd)
}
