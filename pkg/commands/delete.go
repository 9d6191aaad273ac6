package commands

import (
	"errors"
	"fmt"

	"github.com/manifoldco/promptui"
	base "github.com/n3wscott/cli-base/pkg/commands/options"
	"github.com/spf13/cobra"

	"tableflip.dev/agenda/pkg/app"
	"tableflip.dev/agenda/pkg/commands/options"
)

func addDelete(topLevel *cobra.Command) {
	io := &options.IDOptions{}
	var yes bool

	cmd := &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete an event or task",
		Example: `
agenda delete 8bfdb038
agenda delete 8bfdb038 --yes
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("requires exactly one id")
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

			title := ""
			if ev, ok := svc.EventByID(io.ID); ok {
				title = ev.Title
			} else if t, ok := svc.TaskByID(io.ID); ok {
				title = t.Title
			} else {
				return output.HandleError(errors.New("no event or task with id " + io.ID))
			}

			if !yes {
				prompt := promptui.Prompt{
					Label:     fmt.Sprintf("Delete %q", title),
					IsConfirm: true,
				}
				if _, err := prompt.Run(); err != nil {
					fmt.Println("cancelled")
					return nil
				}
			}

			if err := svc.DeleteEvent(io.ID); err != nil {
				if !errors.Is(err, app.ErrNotFound) {
					return output.HandleError(err)
				}
				if err := svc.DeleteTask(io.ID); err != nil {
					return output.HandleError(err)
				}
			}
			fmt.Printf("deleted %q\n", title)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt.")
	base.AddOutputArg(cmd, output)

	topLevel.AddCommand(cmd)
}
