package commands

import (
	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"
)

var (
	output = &base.OutputOptions{}
)

func New() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "agenda",
		Short: base.Wrap80("A calendar of events and tasks on the command line."),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addUI(topLevel)
	addAdd(topLevel)
	addGet(topLevel)
	addEdit(topLevel)
	addMove(topLevel)
	addDelete(topLevel)
	addLabels(topLevel)
	addVenues(topLevel)
	addExport(topLevel)
	addImport(topLevel)
	addRemind(topLevel)
	addMCP(topLevel)
	addCompletions(topLevel)
	addVersion(topLevel)
}
