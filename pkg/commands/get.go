package commands

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/fatih/color"
	base "github.com/n3wscott/cli-base/pkg/commands/options"
	"github.com/spf13/cobra"

	"tableflip.dev/agenda/pkg/commands/options"
	"tableflip.dev/agenda/pkg/printers"
)

func addGet(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "get",
		Short: "Get events, tasks, or a calendar",
		Example: `
agenda get events
agenda get tasks --on=2020-2-28
agenda get month
agenda get agenda --on=2020-3-1
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	addGetEvents(cmd)
	addGetTasks(cmd)
	addGetMonth(cmd)
	addGetAgenda(cmd)

	topLevel.AddCommand(cmd)
}

func addGetEvents(topLevel *cobra.Command) {
	oo := &options.OnOptions{}
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:     "events",
		Aliases: []string{"event"},
		Short:   "List events, all or for a day",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, adapter, err := loadService()
			if err != nil {
				return err
			}
			defer adapter.Flush()

			on, err := oo.GetOn()
			if err != nil {
				return err
			}

			events := svc.FilteredEvents()
			title := "Events"
			if on != nil {
				events = svc.EventsForDay(*on)
				title = "Events on " + on.Format("Jan 2 2006")
			}

			if output.JSON {
				return printJSON(events)
			}

			pp := printers.New()
			pp.ShowID = io.ShowID
			pp.TitleWithCount(title, len(events))
			pp.Events(events...)
			return nil
		},
	}

	options.AddOnArgs(cmd, oo)
	options.AddShowIDArgs(cmd, io)
	base.AddOutputArg(cmd, output)

	topLevel.AddCommand(cmd)
}

func addGetTasks(topLevel *cobra.Command) {
	oo := &options.OnOptions{}
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:     "tasks",
		Aliases: []string{"task"},
		Short:   "List tasks, all or for a day",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, adapter, err := loadService()
			if err != nil {
				return err
			}
			defer adapter.Flush()

			on, err := oo.GetOn()
			if err != nil {
				return err
			}

			tasks := svc.FilteredTasks()
			title := "Tasks"
			if on != nil {
				tasks = svc.TasksForDay(*on)
				title = "Tasks due " + on.Format("Jan 2 2006")
			}

			if output.JSON {
				return printJSON(tasks)
			}

			pp := printers.New()
			pp.ShowID = io.ShowID
			pp.TitleWithCount(title, len(tasks))
			pp.Tasks(tasks...)
			return nil
		},
	}

	options.AddOnArgs(cmd, oo)
	options.AddShowIDArgs(cmd, io)
	base.AddOutputArg(cmd, output)

	topLevel.AddCommand(cmd)
}

func addGetMonth(topLevel *cobra.Command) {
	oo := &options.OnOptions{}

	cmd := &cobra.Command{
		Use:   "month",
		Short: "Print a compact month calendar",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, adapter, err := loadService()
			if err != nil {
				return err
			}
			defer adapter.Flush()

			then, err := oo.GetOnOrNow()
			if err != nil {
				return err
			}

			pp := printers.New()
			pp.Month(then, time.Now(), svc.FilteredEvents(), svc.FilteredTasks())
			return nil
		},
	}

	options.AddOnArgs(cmd, oo)
	topLevel.AddCommand(cmd)
}

func addGetAgenda(topLevel *cobra.Command) {
	oo := &options.OnOptions{}
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:   "agenda",
		Short: "Print a month, one day per line, with its items",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, adapter, err := loadService()
			if err != nil {
				return err
			}
			defer adapter.Flush()

			then, err := oo.GetOnOrNow()
			if err != nil {
				return err
			}

			pp := printers.New()
			pp.ShowID = io.ShowID
			pp.Agenda(then, time.Now(), svc.FilteredEvents(), svc.FilteredTasks())
			return nil
		},
	}

	options.AddOnArgs(cmd, oo)
	options.AddShowIDArgs(cmd, io)
	topLevel.AddCommand(cmd)
}

func printJSON(v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(color.Output, string(b))
	return err
}
