package commands

import (
	"errors"
	"strings"

	base "github.com/n3wscott/cli-base/pkg/commands/options"
	"github.com/spf13/cobra"

	"tableflip.dev/agenda/pkg/commands/options"
	"tableflip.dev/agenda/pkg/item"
	"tableflip.dev/agenda/pkg/label"
	"tableflip.dev/agenda/pkg/printers"
)

func addTask(topLevel *cobra.Command) {
	oo := &options.OnOptions{}
	io := &options.IDOptions{}

	var title string
	var labelName string

	cmd := &cobra.Command{
		Use:   "task",
		Short: "Add a task",
		Example: `
agenda add task file expense report --on=2/28
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 {
				return errors.New("requires a task title")
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

			due, err := oo.GetOnOrNow()
			if err != nil {
				return err
			}

			t, err := svc.AddTask(&item.Task{
				Title:   title,
				Label:   labelName,
				DueDate: item.At(due),
			})
			if err != nil {
				return output.HandleError(err)
			}

			pp := printers.New()
			pp.ShowID = io.ShowID
			pp.Title("Added")
			pp.Tasks(t)
			return nil
		},
	}

	options.AddOnArgs(cmd, oo)
	options.AddShowIDArgs(cmd, io)
	cmd.Flags().StringVarP(&labelName, "label", "l", label.Palette[0],
		"Color label, one of: "+strings.Join(label.Palette, ", ")+".")
	base.AddOutputArg(cmd, output)

	topLevel.AddCommand(cmd)
}
