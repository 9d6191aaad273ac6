package options

import (
	"time"

	"github.com/spf13/cobra"
)

const (
	layoutISO      = "2006-1-2"
	layoutISOShort = "1/2"
)

// OnOptions
type OnOptions struct {
	OnString string
}

func AddOnArgs(cmd *cobra.Command, o *OnOptions) {
	cmd.Flags().StringVar(&o.OnString, "on", "",
		`Specify a date, example: --on="2020-2-28" or --on="2/28".`)
}

// GetOn resolves the flag to a date, nil when unset. A short m/d form
// picks the next occurrence of that date.
func (o *OnOptions) GetOn() (*time.Time, error) {
	if o.OnString == "" {
		return nil, nil
	}
	t, err := time.Parse(layoutISO, o.OnString)
	if err != nil {
		t, err = time.Parse(layoutISOShort, o.OnString)
		if err != nil {
			return nil, err
		}
		t = t.AddDate(time.Now().Year(), 0, 0)
		if t.Before(time.Now()) {
			t = t.AddDate(1, 0, 0)
		}
	}
	return &t, nil
}

// GetOnOrNow is GetOn with today as the fallback.
func (o *OnOptions) GetOnOrNow() (time.Time, error) {
	t, err := o.GetOn()
	if err != nil {
		return time.Time{}, err
	}
	if t == nil {
		return time.Now(), nil
	}
	return *t, nil
}
