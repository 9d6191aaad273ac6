// Package label tracks the fixed color palette, the per-collection
// derived label entries, and label-based filtering.
package label

import (
	"tableflip.dev/agenda/pkg/item"
)

// Entry is one derived label with its user-toggled visibility. Checked
// defaults to true the first time a label is seen and survives
// re-derivation for as long as the label exists in the collection.
type Entry struct {
	Name    string `json:"label"`
	Checked bool   `json:"checked"`
}

// Palette is the fixed set of label names. Items carrying any other
// label still render, with a neutral style, but are not offered by
// label pickers.
var Palette = []string{
	"indigo",
	"gray",
	"green",
	"blue",
	"red",
	"purple",
	"yellow",
	"pink",
	"teal",
}

// Known reports whether name is part of the palette.
func Known(name string) bool {
	for _, p := range Palette {
		if p == name {
			return true
		}
	}
	return false
}

// Derive computes one entry per distinct label in first-occurrence
// order, carrying Checked over from prev where the label was already
// present. Labels absent from labels are dropped.
func Derive(labels []string, prev []Entry) []Entry {
	checked := make(map[string]bool, len(prev))
	for _, e := range prev {
		checked[e.Name] = e.Checked
	}

	seen := make(map[string]bool, len(labels))
	out := make([]Entry, 0, len(labels))
	for _, name := range labels {
		if seen[name] {
			continue
		}
		seen[name] = true
		c, ok := checked[name]
		if !ok {
			c = true
		}
		out = append(out, Entry{Name: name, Checked: c})
	}
	return out
}

// Toggle returns entries with the named entry's Checked replaced.
// Unknown names leave the slice unchanged.
func Toggle(entries []Entry, name string, checked bool) []Entry {
	out := make([]Entry, len(entries))
	copy(out, entries)
	for i := range out {
		if out[i].Name == name {
			out[i].Checked = checked
		}
	}
	return out
}

// IsChecked reports whether name has a checked entry.
func IsChecked(entries []Entry, name string) bool {
	for _, e := range entries {
		if e.Name == name {
			return e.Checked
		}
	}
	return false
}

// FilterEvents keeps only events whose label has a checked entry.
func FilterEvents(events []*item.Event, entries []Entry) []*item.Event {
	out := make([]*item.Event, 0, len(events))
	for _, e := range events {
		if IsChecked(entries, e.Label) {
			out = append(out, e)
		}
	}
	return out
}

// FilterTasks keeps only tasks whose label has a checked entry.
func FilterTasks(tasks []*item.Task, entries []Entry) []*item.Task {
	out := make([]*item.Task, 0, len(tasks))
	for _, t := range tasks {
		if IsChecked(entries, t.Label) {
			out = append(out, t)
		}
	}
	return out
}

// EventLabels projects the label of every event, in collection order.
func EventLabels(events []*item.Event) []string {
	out := make([]string, len(events))
	for i, e := range events {
		out[i] = e.Label
	}
	return out
}

// TaskLabels projects the label of every task, in collection order.
func TaskLabels(tasks []*item.Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.Label
	}
	return out
}
