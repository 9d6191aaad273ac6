package label

import (
	"testing"

	"tableflip.dev/agenda/pkg/item"
)

func TestDeriveDefaultsChecked(t *testing.T) {
	entries := Derive([]string{"blue", "red", "blue"}, nil)
	if len(entries) != 2 {
		t.Fatalf("expected 2 distinct entries, got %d", len(entries))
	}
	if entries[0].Name != "blue" || entries[1].Name != "red" {
		t.Fatalf("expected first-occurrence order, got %+v", entries)
	}
	for _, e := range entries {
		if !e.Checked {
			t.Fatalf("expected %s checked by default", e.Name)
		}
	}
}

func TestDerivePreservesToggleState(t *testing.T) {
	prev := []Entry{{Name: "blue", Checked: false}, {Name: "red", Checked: true}}
	entries := Derive([]string{"red", "blue", "green"}, prev)
	if IsChecked(entries, "blue") {
		t.Fatal("expected blue to stay unchecked")
	}
	if !IsChecked(entries, "red") || !IsChecked(entries, "green") {
		t.Fatal("expected red to stay checked and green to default checked")
	}
}

func TestDeriveDropsVanishedLabels(t *testing.T) {
	prev := []Entry{{Name: "teal", Checked: false}}
	entries := Derive([]string{"pink"}, prev)
	if len(entries) != 1 || entries[0].Name != "pink" {
		t.Fatalf("expected only pink, got %+v", entries)
	}
}

func TestFilterMonotonic(t *testing.T) {
	events := []*item.Event{
		{ID: "1", Title: "a", Label: "blue"},
		{ID: "2", Title: "b", Label: "red"},
		{ID: "3", Title: "c", Label: "blue"},
	}
	entries := Derive(EventLabels(events), nil)

	all := FilterEvents(events, entries)
	if len(all) != 3 {
		t.Fatalf("expected all events, got %d", len(all))
	}

	entries = Toggle(entries, "blue", false)
	fewer := FilterEvents(events, entries)
	if len(fewer) != 1 || fewer[0].ID != "2" {
		t.Fatalf("expected only the red event, got %+v", fewer)
	}

	// Unchecking more labels never adds results.
	entries = Toggle(entries, "red", false)
	if got := FilterEvents(events, entries); len(got) != 0 {
		t.Fatalf("expected empty result, got %d", len(got))
	}
}

func TestFilterIdempotent(t *testing.T) {
	events := []*item.Event{
		{ID: "1", Title: "a", Label: "blue"},
		{ID: "2", Title: "b", Label: "red"},
	}
	entries := Toggle(Derive(EventLabels(events), nil), "red", false)
	once := FilterEvents(events, entries)
	twice := FilterEvents(once, entries)
	if len(once) != len(twice) {
		t.Fatalf("filter not idempotent: %d vs %d", len(once), len(twice))
	}
}

func TestStyleForUnknownLabel(t *testing.T) {
	s := StyleFor("chartreuse")
	if s.Name != "unknown" {
		t.Fatalf("expected neutral style, got %+v", s)
	}
	if Known("chartreuse") {
		t.Fatal("chartreuse must not be a palette label")
	}
	for _, name := range Palette {
		got := StyleFor(name)
		if got.Background == "" || got.Foreground == "" {
			t.Fatalf("palette label %s missing colors: %+v", name, got)
		}
	}
}
