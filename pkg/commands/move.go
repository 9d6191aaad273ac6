package commands

import (
	"errors"

	base "github.com/n3wscott/cli-base/pkg/commands/options"
	"github.com/spf13/cobra"

	"tableflip.dev/agenda/pkg/commands/options"
	"tableflip.dev/agenda/pkg/printers"
)

func addMove(topLevel *cobra.Command) {
	oo := &options.OnOptions{}
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:   "move <event id>",
		Short: "Move an event to another day, keeping its times",
		Example: `
agenda move 8bfdb038 --on=2020-3-2
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

			on, err := oo.GetOn()
			if err != nil {
				return err
			}
			if on == nil {
				return errors.New("requires --on")
			}

			ev, err := svc.MoveEvent(io.ID, *on)
			if err != nil {
				return output.HandleError(err)
			}

			pp := printers.New()
			pp.Title("Moved")
			pp.Events(ev)
			return nil
		},
	}

	options.AddOnArgs(cmd, oo)
	base.AddOutputArg(cmd, output)

	topLevel.AddCommand(cmd)
}
