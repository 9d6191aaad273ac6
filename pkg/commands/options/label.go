package options

import (
	"fmt"

	"github.com/spf13/cobra"

	"tableflip.dev/agenda/pkg/item"
)

// KindOptions selects events, tasks, or both.
type KindOptions struct {
	KindString string
}

func AddKindArgs(cmd *cobra.Command, o *KindOptions) {
	cmd.Flags().StringVar(&o.KindString, "kind", "",
		"Restrict to one kind: event or task.")
}

// Kinds resolves the flag to the kinds it names; both when unset.
func (o *KindOptions) Kinds() ([]item.Kind, error) {
	switch o.KindString {
	case "":
		return []item.Kind{item.KindEvent, item.KindTask}, nil
	case "event", "events":
		return []item.Kind{item.KindEvent}, nil
	case "task", "tasks":
		return []item.Kind{item.KindTask}, nil
	}
	return nil, fmt.Errorf("unknown kind %q (expected event or task)", o.KindString)
}
