// Package ics converts the event collection to and from iCalendar
// payloads for exchange with other calendar systems.
package ics

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	ical "github.com/arran4/golang-ical"

	"tableflip.dev/agenda/pkg/item"
	"tableflip.dev/agenda/pkg/label"
)

const prodID = "-//tableflip.dev//agenda//EN"

// Export serializes the events as a VCALENDAR.
func Export(w io.Writer, events []*item.Event) error {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(prodID)

	for _, ev := range events {
		start, end := ev.Interval()
		ve := cal.AddEvent(ev.ID)
		ve.SetSummary(ev.Title)
		ve.SetStartAt(start)
		ve.SetEndAt(end)
		if ev.Description != "" {
			ve.SetDescription(ev.Description)
		}
		if ev.Location != "" {
			ve.SetLocation(ev.Location)
		}
		if ev.Label != "" {
			ve.SetProperty(ical.ComponentPropertyCategories, ev.Label)
		}
	}

	return cal.SerializeTo(w)
}

// Import parses a VCALENDAR payload into events. A VEVENT that cannot
// be converted is reported to stderr and skipped so one bad record
// does not sink the rest of the file.
func Import(data []byte) ([]*item.Event, error) {
	if len(data) == 0 {
		return nil, errors.New("ics: empty payload")
	}
	cal, err := ical.ParseCalendar(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("ics: parse calendar: %w", err)
	}

	var events []*item.Event
	for _, ve := range cal.Events() {
		ev, err := fromVEvent(ve)
		if err != nil {
			fmt.Fprintf(os.Stderr, "ics: skipping event: %v\n", err)
			continue
		}
		events = append(events, ev)
	}
	return events, nil
}

func fromVEvent(ve *ical.VEvent) (*item.Event, error) {
	uid := ve.GetProperty(ical.ComponentPropertyUniqueId)
	id := item.NewID()
	if uid != nil && uid.Value != "" {
		id = uid.Value
	}

	summary := ve.GetProperty(ical.ComponentPropertySummary)
	if summary == nil || summary.Value == "" {
		return nil, fmt.Errorf("event %s: missing summary", id)
	}

	start, err := ve.GetStartAt()
	if err != nil {
		return nil, fmt.Errorf("event %s: start: %w", id, err)
	}
	end, err := ve.GetEndAt()
	if err != nil {
		end = start.Add(item.DefaultDuration)
	}

	ev := &item.Event{
		ID:        id,
		Title:     summary.Value,
		Label:     label.Palette[0],
		Day:       item.At(dayOf(start)),
		StartTime: item.At(start),
		EndTime:   item.At(end),
	}
	if p := ve.GetProperty(ical.ComponentPropertyDescription); p != nil {
		ev.Description = p.Value
	}
	if p := ve.GetProperty(ical.ComponentPropertyLocation); p != nil {
		ev.Location = p.Value
	}
	if p := ve.GetProperty(ical.ComponentPropertyCategories); p != nil && label.Known(p.Value) {
		ev.Label = p.Value
	}
	if err := ev.Validate(); err != nil {
		return nil, fmt.Errorf("event %s: %w", id, err)
	}
	return ev, nil
}

func dayOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
