package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/v2/textinput"
	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/agenda/pkg/app"
	"tableflip.dev/agenda/pkg/item"
	"tableflip.dev/agenda/pkg/label"
	"tableflip.dev/agenda/pkg/timeutil"
)

const (
	formDateLayout = "2006-01-02"
	formTimeLayout = "15:04"
)

type formField struct {
	name  string
	input textinput.Model
}

// form is the add/edit overlay. The same shape serves events and
// tasks; tasks just carry fewer fields.
type form struct {
	fields []formField
	focus  int

	labelIndex int
	isTask     bool
	editID     string
	day        time.Time

	errorMsg string
}

func newInput(placeholder, value string) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 256
	ti.Prompt = ""
	ti.SetValue(value)
	return ti
}

func newEventForm(day time.Time, ev *item.Event) *form {
	f := &form{day: day}
	title, desc, location, venue, startVal, endVal := "", "", "", "", "", ""
	dateVal := day.Format(formDateLayout)
	if ev != nil {
		f.editID = ev.ID
		title = ev.Title
		desc = ev.Description
		location = ev.Location
		venue = ev.VenueID
		dateVal = ev.Day.Format(formDateLayout)
		if !ev.StartTime.IsZero() {
			startVal = ev.StartTime.Format(formTimeLayout)
		}
		if !ev.EndTime.IsZero() {
			endVal = ev.EndTime.Format(formTimeLayout)
		}
		for i, name := range label.Palette {
			if name == ev.Label {
				f.labelIndex = i
			}
		}
	}
	f.fields = []formField{
		{name: "Title", input: newInput("Event title", title)},
		{name: "Date", input: newInput(formDateLayout, dateVal)},
		{name: "Start", input: newInput("09:00 (optional)", startVal)},
		{name: "End", input: newInput("10:00 (optional)", endVal)},
		{name: "Description", input: newInput("(optional)", desc)},
		{name: "Location", input: newInput("(optional)", location)},
		{name: "Venue", input: newInput("venue id (optional)", venue)},
	}
	return f
}

func newTaskForm(day time.Time) *form {
	return &form{
		day:    day,
		isTask: true,
		fields: []formField{
			{name: "Title", input: newInput("Task title", "")},
			{name: "Due", input: newInput(formDateLayout, day.Format(formDateLayout))},
		},
	}
}

// Focus activates the first field.
func (f *form) Focus() tea.Cmd {
	cmd := f.fields[0].input.Focus()
	return tea.Batch(cmd, textinput.Blink)
}

// Update routes keys to the focused field. Tab cycles fields; the
// label selector sits past the last text field and reacts to
// left/right.
func (f *form) Update(msg tea.Msg) tea.Cmd {
	key, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return nil
	}

	switch key.String() {
	case "tab", "shift+tab":
		delta := 1
		if key.String() == "shift+tab" {
			delta = len(f.fields)
		}
		if f.focus < len(f.fields) {
			f.fields[f.focus].input.Blur()
		}
		f.focus = (f.focus + delta) % (len(f.fields) + 1)
		if f.focus < len(f.fields) {
			return f.fields[f.focus].input.Focus()
		}
		return nil
	case "left":
		if f.focus == len(f.fields) {
			f.labelIndex = (f.labelIndex + len(label.Palette) - 1) % len(label.Palette)
			return nil
		}
	case "right":
		if f.focus == len(f.fields) {
			f.labelIndex = (f.labelIndex + 1) % len(label.Palette)
			return nil
		}
	}

	if f.focus < len(f.fields) {
		var cmd tea.Cmd
		f.fields[f.focus].input, cmd = f.fields[f.focus].input.Update(msg)
		return cmd
	}
	return nil
}

func (f *form) value(name string) string {
	for _, field := range f.fields {
		if field.name == name {
			return strings.TrimSpace(field.input.Value())
		}
	}
	return ""
}

// submit validates the fields and dispatches through the service.
func (f *form) submit(svc *app.Service) error {
	if f.isTask {
		due, err := time.ParseInLocation(formDateLayout, f.value("Due"), f.day.Location())
		if err != nil {
			return fmt.Errorf("due: %w", err)
		}
		_, err = svc.AddTask(&item.Task{
			Title:   f.value("Title"),
			Label:   label.Palette[f.labelIndex],
			DueDate: item.At(due),
		})
		return err
	}

	day, err := time.ParseInLocation(formDateLayout, f.value("Date"), f.day.Location())
	if err != nil {
		return fmt.Errorf("date: %w", err)
	}
	day = timeutil.StartOfDay(day)

	ev := &item.Event{
		ID:          f.editID,
		Title:       f.value("Title"),
		Description: f.value("Description"),
		Location:    f.value("Location"),
		VenueID:     f.value("Venue"),
		Label:       label.Palette[f.labelIndex],
		Day:         item.At(day),
	}
	if raw := f.value("Start"); raw != "" {
		at, err := clockOn(day, raw)
		if err != nil {
			return fmt.Errorf("start: %w", err)
		}
		ev.StartTime = item.At(at)
	}
	if raw := f.value("End"); raw != "" {
		at, err := clockOn(day, raw)
		if err != nil {
			return fmt.Errorf("end: %w", err)
		}
		ev.EndTime = item.At(at)
	}

	if f.editID == "" {
		_, err = svc.AddEvent(ev)
	} else {
		_, err = svc.UpdateEvent(ev)
	}
	return err
}

func clockOn(day time.Time, raw string) (time.Time, error) {
	t, err := time.ParseInLocation(formTimeLayout, raw, day.Location())
	if err != nil {
		return time.Time{}, err
	}
	return day.Add(time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute), nil
}

// View renders the form panel.
func (f *form) View(theme Theme) string {
	var b strings.Builder
	title := "New event"
	if f.isTask {
		title = "New task"
	}
	if f.editID != "" {
		title = "Edit event"
	}
	b.WriteString(theme.Title.Render(title) + "\n")

	for i, field := range f.fields {
		marker := "  "
		if i == f.focus {
			marker = "» "
		}
		fmt.Fprintf(&b, "%s%-12s %s\n", marker, field.name, field.input.View())
	}

	marker := "  "
	if f.focus == len(f.fields) {
		marker = "» "
	}
	name := label.Palette[f.labelIndex]
	chip := theme.Label(name).Render(" " + name + " ")
	fmt.Fprintf(&b, "%s%-12s %s (←/→)\n", marker, "Label", chip)

	if f.errorMsg != "" {
		b.WriteString(theme.NowLine.Render(f.errorMsg) + "\n")
	}
	b.WriteString(theme.Muted.Render("enter save · esc cancel · tab next field"))
	return theme.Frame.Render(b.String())
}
