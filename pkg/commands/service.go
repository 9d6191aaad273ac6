package commands

import (
	"tableflip.dev/agenda/pkg/app"
	"tableflip.dev/agenda/pkg/layout"
	"tableflip.dev/agenda/pkg/store"
)

// loadService opens the configured disk store and wires the calendar
// service over it. Callers flush the adapter before exiting so queued
// writes reach disk.
func loadService() (*app.Service, *store.DiskAdapter, error) {
	adapter, err := store.OpenDisk(nil)
	if err != nil {
		return nil, nil, err
	}
	s := store.Open(adapter)
	svc := app.New(s, layout.New(layout.DefaultConfig()), nil, nil)
	return svc, adapter, nil
}
