package commands

import (
	"errors"
	"fmt"
	"os"

	base "github.com/n3wscott/cli-base/pkg/commands/options"
	"github.com/spf13/cobra"

	"tableflip.dev/agenda/pkg/ics"
	"tableflip.dev/agenda/pkg/printers"
	"tableflip.dev/agenda/pkg/store"
)

func addImport(topLevel *cobra.Command) {
	var path string

	cmd := &cobra.Command{
		Use:   "import <file.ics>",
		Short: "Import events from an iCalendar file",
		Example: `
agenda import calendar.ics
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("requires an ics file path")
			}
			path = args[0]
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			events, err := ics.Import(data)
			if err != nil {
				return output.HandleError(err)
			}

			svc, adapter, err := loadService()
			if err != nil {
				return err
			}
			defer adapter.Flush()

			added := 0
			for _, ev := range events {
				if _, err := svc.AddEvent(ev); err != nil {
					if errors.Is(err, store.ErrDuplicateID) {
						fmt.Fprintf(os.Stderr, "skipping %s: already present\n", ev.ID)
						continue
					}
					return output.HandleError(err)
				}
				added++
			}

			pp := printers.New()
			pp.TitleWithCount("Imported", added)
			return nil
		},
	}

	base.AddOutputArg(cmd, output)

	topLevel.AddCommand(cmd)
}
