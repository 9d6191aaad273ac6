package main

import (
	"time"

	"tableflip.dev/agenda/pkg/app"
	"tableflip.dev/agenda/pkg/item"
	"tableflip.dev/agenda/pkg/layout"
	"tableflip.dev/agenda/pkg/printers"
	"tableflip.dev/agenda/pkg/store"
)

// Seeds the configured store with a week of sample data, then prints
// the month. Handy for trying the ui without typing events in first.
func main() {
	adapter, err := store.OpenDisk(nil)
	if err != nil {
		panic(err)
	}
	svc := app.New(store.Open(adapter), layout.New(layout.DefaultConfig()), nil, nil)

	day := func(offset, h, m int) time.Time {
		t := time.Now().AddDate(0, 0, offset)
		return time.Date(t.Year(), t.Month(), t.Day(), h, m, 0, 0, t.Location())
	}

	events := []*item.Event{
		{Title: "standup", Label: "blue", Day: item.At(day(0, 0, 0)),
			StartTime: item.At(day(0, 9, 0)), EndTime: item.At(day(0, 9, 15)), ReminderMinutes: 5},
		{Title: "design review", Label: "purple", Day: item.At(day(0, 0, 0)),
			StartTime: item.At(day(0, 9, 0)), EndTime: item.At(day(0, 10, 30)), VenueID: "3"},
		{Title: "lunch with sam", Label: "green", Day: item.At(day(1, 0, 0)),
			StartTime: item.At(day(1, 12, 0)), EndTime: item.At(day(1, 13, 0))},
		{Title: "all hands", Label: "red", Day: item.At(day(2, 0, 0)),
			StartTime: item.At(day(2, 15, 0)), EndTime: item.At(day(2, 16, 0)), VenueID: "5"},
	}
	for _, ev := range events {
		if _, err := svc.AddEvent(ev); err != nil {
			panic(err)
		}
	}

	tasks := []*item.Task{
		{Title: "send weekly notes", Label: "blue", DueDate: item.At(day(0, 0, 0))},
		{Title: "book travel", Label: "gray", DueDate: item.At(day(3, 0, 0))},
	}
	for _, t := range tasks {
		if _, err := svc.AddTask(t); err != nil {
			panic(err)
		}
	}

	adapter.Flush()

	pp := printers.New()
	pp.Month(time.Now(), time.Now(), svc.FilteredEvents(), svc.FilteredTasks())
}
