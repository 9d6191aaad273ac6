// Package options defines shared flag helpers for CLI commands.
package options

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/agenda/pkg/label"
)

const layoutClock = "15:04"

// EventOptions captures the event field flags shared by add and edit.
type EventOptions struct {
	Start       string
	End         string
	Label       string
	Description string
	Location    string
	Venue       string
	Reminder    int
}

func AddEventArgs(cmd *cobra.Command, o *EventOptions) {
	cmd.Flags().StringVar(&o.Start, "start", "",
		`Start time on the day, example: --start="09:30".`)
	cmd.Flags().StringVar(&o.End, "end", "",
		`End time on the day, example: --end="10:00".`)
	cmd.Flags().StringVarP(&o.Label, "label", "l", label.Palette[0],
		"Color label, one of: "+strings.Join(label.Palette, ", ")+".")
	cmd.Flags().StringVar(&o.Description, "description", "",
		"Longer event description.")
	cmd.Flags().StringVar(&o.Location, "location", "",
		"Free-form location text.")
	cmd.Flags().StringVar(&o.Venue, "venue", "",
		"Venue id to book.")
	cmd.Flags().IntVar(&o.Reminder, "reminder", 0,
		"Minutes of advance reminder, 0 for none.")
}

// ClockOn parses an HH:MM flag onto the given day, zero when unset.
func ClockOn(day time.Time, raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(layoutClock, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("bad time %q, expected HH:MM", raw)
	}
	return time.Date(day.Year(), day.Month(), day.Day(), t.Hour(), t.Minute(), 0, 0, day.Location()), nil
}
