package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/agenda/pkg/commands/options"
	"tableflip.dev/agenda/pkg/printers"
)

func addVenues(topLevel *cobra.Command) {
	oo := &options.OnOptions{}

	cmd := &cobra.Command{
		Use:   "venues",
		Short: "List venues with their bookings for a day",
		Example: `
agenda venues
agenda venues --on=2020-2-28
`,
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

			statuses := svc.VenueBookings(day)
			if output.JSON {
				return printJSON(statuses)
			}

			pp := printers.New()
			pp.Venues(day, statuses)
			return nil
		},
	}

	options.AddOnArgs(cmd, oo)

	topLevel.AddCommand(cmd)
}
