package commands

import (
	"errors"

	base "github.com/n3wscott/cli-base/pkg/commands/options"
	"github.com/spf13/cobra"

	"tableflip.dev/agenda/pkg/commands/options"
	"tableflip.dev/agenda/pkg/item"
	"tableflip.dev/agenda/pkg/printers"
)

func addLabels(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "labels",
		Short: "List or toggle the color labels in use",
		Example: `
agenda labels
agenda labels toggle red
agenda labels toggle green --kind=task
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, adapter, err := loadService()
			if err != nil {
				return err
			}
			defer adapter.Flush()

			pp := printers.New()
			pp.Title("Event labels")
			pp.Labels(svc.Store.EventLabels())
			pp.NewLine()
			pp.Title("Task labels")
			pp.Labels(svc.Store.TaskLabels())
			return nil
		},
	}

	addLabelsToggle(cmd)

	topLevel.AddCommand(cmd)
}

func addLabelsToggle(topLevel *cobra.Command) {
	ko := &options.KindOptions{}

	var name string

	cmd := &cobra.Command{
		Use:   "toggle <label>",
		Short: "Flip whether a label's items are shown",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("requires exactly one label name")
			}
			name = args[0]
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, adapter, err := loadService()
			if err != nil {
				return err
			}
			defer adapter.Flush()

			kinds, err := ko.Kinds()
			if err != nil {
				return err
			}

			for _, kind := range kinds {
				entries := svc.Store.EventLabels()
				if kind == item.KindTask {
					entries = svc.Store.TaskLabels()
				}
				for _, e := range entries {
					if e.Name != name {
						continue
					}
					if kind == item.KindTask {
						svc.Store.ToggleTaskLabel(name, !e.Checked)
					} else {
						svc.Store.ToggleEventLabel(name, !e.Checked)
					}
				}
			}

			pp := printers.New()
			pp.Title("Event labels")
			pp.Labels(svc.Store.EventLabels())
			pp.NewLine()
			pp.Title("Task labels")
			pp.Labels(svc.Store.TaskLabels())
			return nil
		},
	}

	options.AddKindArgs(cmd, ko)
	base.AddOutputArg(cmd, output)

	topLevel.AddCommand(cmd)
}
