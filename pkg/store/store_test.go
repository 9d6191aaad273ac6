package store

import (
	"encoding/json"
	"errors"
	"testing"

	"tableflip.dev/agenda/pkg/item"
)

type memAdapter struct {
	data  map[string][]byte
	saves int
	fail  error
}

func newMemAdapter() *memAdapter {
	return &memAdapter{data: map[string][]byte{}}
}

func (m *memAdapter) Load(key string) ([]byte, error) {
	if m.fail != nil {
		return nil, m.fail
	}
	return m.data[key], nil
}

func (m *memAdapter) Save(key string, data []byte) error {
	m.saves++
	m.data[key] = data
	return nil
}

func event(id, title, lbl string) *item.Event {
	return &item.Event{ID: id, Title: title, Label: lbl}
}

func TestOpenEmpty(t *testing.T) {
	s := Open(newMemAdapter())
	if got := len(s.Events()); got != 0 {
		t.Fatalf("expected no events, got %d", got)
	}
	if got := len(s.Tasks()); got != 0 {
		t.Fatalf("expected no tasks, got %d", got)
	}
	if s.Version() != 0 {
		t.Fatalf("fresh store version = %d, want 0", s.Version())
	}
}

func TestOpenMalformed(t *testing.T) {
	a := newMemAdapter()
	a.data[EventsKey] = []byte("{not json")
	a.data[TasksKey] = []byte(`[{"id":"t1","title":"pay rent","label":"red"}]`)

	s := Open(a)
	if got := len(s.Events()); got != 0 {
		t.Fatalf("malformed events should hydrate empty, got %d", got)
	}
	if got := len(s.Tasks()); got != 1 {
		t.Fatalf("tasks should survive, got %d", got)
	}
}

func TestOpenLoadError(t *testing.T) {
	a := newMemAdapter()
	a.fail = errors.New("disk gone")
	s := Open(a)
	if len(s.Events()) != 0 || len(s.Tasks()) != 0 {
		t.Fatal("load errors should hydrate empty collections")
	}
}

func TestPushUpdateDelete(t *testing.T) {
	a := newMemAdapter()
	s := Open(a)

	if err := s.DispatchEvent(Push, event("e1", "standup", "blue")); err != nil {
		t.Fatalf("push: %v", err)
	}
	if got := len(s.Events()); got != 1 {
		t.Fatalf("events after push = %d", got)
	}
	if s.Version() != 1 {
		t.Fatalf("version after push = %d, want 1", s.Version())
	}

	if err := s.DispatchEvent(Update, event("e1", "retro", "blue")); err != nil {
		t.Fatalf("update: %v", err)
	}
	if got := s.Events()[0].Title; got != "retro" {
		t.Fatalf("title after update = %q", got)
	}

	if err := s.DispatchEvent(Delete, event("e1", "", "")); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if got := len(s.Events()); got != 0 {
		t.Fatalf("events after delete = %d", got)
	}
	if s.Version() != 3 {
		t.Fatalf("version after three mutations = %d", s.Version())
	}
}

func TestPushDuplicateID(t *testing.T) {
	s := Open(newMemAdapter())
	if err := s.DispatchEvent(Push, event("e1", "standup", "blue")); err != nil {
		t.Fatalf("first push: %v", err)
	}
	err := s.DispatchEvent(Push, event("e1", "imposter", "red"))
	if !errors.Is(err, ErrDuplicateID) {
		t.Fatalf("duplicate push error = %v, want ErrDuplicateID", err)
	}
	if got := s.Events()[0].Title; got != "standup" {
		t.Fatalf("rejected push mutated collection: title = %q", got)
	}
	if s.Version() != 1 {
		t.Fatalf("rejected push bumped version to %d", s.Version())
	}
}

func TestUpdateDeleteMissingNoOp(t *testing.T) {
	s := Open(newMemAdapter())
	if err := s.DispatchEvent(Update, event("ghost", "x", "")); err != nil {
		t.Fatalf("update missing: %v", err)
	}
	if err := s.DispatchEvent(Delete, event("ghost", "", "")); err != nil {
		t.Fatalf("delete missing: %v", err)
	}
	if len(s.Events()) != 0 {
		t.Fatal("no-op mutations should leave the collection empty")
	}
}

func TestDispatchUnknownActionPanics(t *testing.T) {
	s := Open(newMemAdapter())
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic on unknown action")
		}
		err, ok := r.(error)
		if !ok || !errors.Is(err, ErrInvalidAction) {
			t.Fatalf("panic value = %v, want ErrInvalidAction", r)
		}
	}()
	_ = s.DispatchEvent(ActionType(42), event("e1", "x", ""))
}

func TestReducerLeavesOldSlice(t *testing.T) {
	s := Open(newMemAdapter())
	if err := s.DispatchEvent(Push, event("e1", "standup", "blue")); err != nil {
		t.Fatalf("push: %v", err)
	}
	before := s.Events()

	if err := s.DispatchEvent(Push, event("e2", "retro", "green")); err != nil {
		t.Fatalf("push: %v", err)
	}
	if len(before) != 1 || before[0].ID != "e1" {
		t.Fatal("held slice changed under a later mutation")
	}

	if err := s.DispatchEvent(Update, event("e1", "renamed", "blue")); err != nil {
		t.Fatalf("update: %v", err)
	}
	if before[0].Title != "standup" {
		t.Fatalf("update mutated the element in a held slice: %q", before[0].Title)
	}
}

func TestLabelsRederived(t *testing.T) {
	s := Open(newMemAdapter())
	must := func(err error) {
		t.Helper()
		if err != nil {
			t.Fatalf("dispatch: %v", err)
		}
	}
	must(s.DispatchEvent(Push, event("e1", "standup", "blue")))
	must(s.DispatchEvent(Push, event("e2", "retro", "green")))

	labels := s.EventLabels()
	if len(labels) != 2 || labels[0].Name != "blue" || labels[1].Name != "green" {
		t.Fatalf("labels = %+v", labels)
	}

	s.ToggleEventLabel("green", false)
	must(s.DispatchEvent(Delete, event("e1", "", "")))

	labels = s.EventLabels()
	if len(labels) != 1 || labels[0].Name != "green" {
		t.Fatalf("labels after delete = %+v", labels)
	}
	if labels[0].Checked {
		t.Fatal("toggle lost across mutation")
	}
}

func TestToggleBumpsVersionWithoutPersisting(t *testing.T) {
	a := newMemAdapter()
	s := Open(a)
	if err := s.DispatchEvent(Push, event("e1", "standup", "blue")); err != nil {
		t.Fatalf("push: %v", err)
	}

	notified := 0
	s.OnChange(func(Change) { notified++ })
	saves := a.saves

	s.ToggleEventLabel("blue", false)

	if s.Version() != 2 {
		t.Fatalf("version after toggle = %d, want 2", s.Version())
	}
	if notified != 1 {
		t.Fatalf("observer notifications after toggle = %d, want 1", notified)
	}
	if a.saves != saves {
		t.Fatal("toggle queued a persistence write")
	}
}

func TestPersistAfterMutation(t *testing.T) {
	a := newMemAdapter()
	s := Open(a)
	if err := s.DispatchEvent(Push, event("e1", "standup", "blue")); err != nil {
		t.Fatalf("push: %v", err)
	}
	if a.saves != 1 {
		t.Fatalf("saves after event push = %d, want 1", a.saves)
	}

	var events []*item.Event
	if err := json.Unmarshal(a.data[EventsKey], &events); err != nil {
		t.Fatalf("persisted payload: %v", err)
	}
	if len(events) != 1 || events[0].ID != "e1" {
		t.Fatalf("persisted events = %+v", events)
	}

	if err := s.DispatchTask(Push, &item.Task{ID: "t1", Title: "pay rent", Label: "red"}); err != nil {
		t.Fatalf("push task: %v", err)
	}
	if _, ok := a.data[TasksKey]; !ok {
		t.Fatal("task push never persisted under savedTasks")
	}
}

func TestObserverNotified(t *testing.T) {
	s := Open(newMemAdapter())
	var seen []Change
	s.OnChange(func(c Change) { seen = append(seen, c) })

	if err := s.DispatchEvent(Push, event("e1", "standup", "blue")); err != nil {
		t.Fatalf("push: %v", err)
	}
	if err := s.DispatchTask(Delete, &item.Task{ID: "ghost"}); err != nil {
		t.Fatalf("delete task: %v", err)
	}

	if len(seen) != 2 {
		t.Fatalf("observer calls = %d, want 2", len(seen))
	}
	if seen[0].Kind != item.KindEvent || seen[0].Type != Push {
		t.Fatalf("first change = %+v", seen[0])
	}
	if seen[1].Kind != item.KindTask || seen[1].Type != Delete {
		t.Fatalf("second change = %+v", seen[1])
	}
}

func TestReloadAfterExternalWrite(t *testing.T) {
	a := newMemAdapter()
	s := Open(a)
	s.OnChange(func(Change) {})

	a.data[EventsKey] = []byte(`[{"id":"e1","title":"standup","label":"blue"}]`)
	s.Reload(item.KindEvent)

	if got := len(s.Events()); got != 1 {
		t.Fatalf("events after reload = %d", got)
	}
	if s.Version() != 1 {
		t.Fatalf("version after reload = %d", s.Version())
	}
	if a.saves != 0 {
		t.Fatalf("reload wrote back to the adapter %d times", a.saves)
	}
}

func TestRoundTripReload(t *testing.T) {
	a := newMemAdapter()
	s := Open(a)
	if err := s.DispatchEvent(Push, event("e1", "standup", "blue")); err != nil {
		t.Fatalf("push: %v", err)
	}

	again := Open(a)
	events := again.Events()
	if len(events) != 1 || events[0].Title != "standup" {
		t.Fatalf("reloaded events = %+v", events)
	}
	labels := again.EventLabels()
	if len(labels) != 1 || labels[0].Name != "blue" || !labels[0].Checked {
		t.Fatalf("reloaded labels = %+v", labels)
	}
}
