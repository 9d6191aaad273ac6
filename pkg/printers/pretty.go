// Package printers renders collections for the CLI.
package printers

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/mattn/go-isatty"
	"github.com/muesli/reflow/truncate"

	"tableflip.dev/agenda/pkg/app"
	"tableflip.dev/agenda/pkg/item"
	"tableflip.dev/agenda/pkg/label"
)

const titleLimit = 40

type PrettyPrint struct {
	ShowID bool
}

// New builds a printer, disabling color when stdout is not a
// terminal so piped output stays clean.
func New() *PrettyPrint {
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		color.NoColor = true
	}
	return &PrettyPrint{}
}

var spacing = strings.Repeat(" ", len("171dff69-f8b9-9dca  "))

func (pp *PrettyPrint) NewLine() {
	fmt.Println("")
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)
	_, _ = t.Println(title)
}

func (pp *PrettyPrint) TitleWithCount(title string, count int) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	_, _ = t.Print(title)
	_, _ = c.Printf(" - %d", count)

	switch count {
	case 1:
		_, _ = c.Println(" item")
	default:
		_, _ = c.Println(" items")
	}
}

func (pp *PrettyPrint) none() {
	f := color.New(color.Faint, color.Italic)
	_, _ = f.Print(" none\n\n")
}

// Events prints one event per line with its label swatch and times.
func (pp *PrettyPrint) Events(events ...*item.Event) {
	if len(events) == 0 {
		pp.none()
		return
	}

	t := color.New()
	y := color.New(color.FgHiYellow, color.Italic, color.Faint)

	for _, e := range events {
		if pp.ShowID {
			_, _ = y.Print(e.ID)
			if pad := len(spacing) - len(e.ID); pad > 0 {
				_, _ = y.Print(strings.Repeat(" ", pad))
			}
		}
		start, end := e.Interval()
		_, _ = t.Printf("%s %s  %s-%s  %s\n",
			swatch(e.Label),
			start.Format("Mon Jan _2"),
			start.Format("15:04"),
			end.Format("15:04"),
			truncate.StringWithTail(e.Title, titleLimit, "…"))
	}
	_, _ = t.Println("")
}

// Tasks prints one task per line with its due date.
func (pp *PrettyPrint) Tasks(tasks ...*item.Task) {
	if len(tasks) == 0 {
		pp.none()
		return
	}

	t := color.New()
	y := color.New(color.FgHiYellow, color.Italic, color.Faint)

	for _, task := range tasks {
		if pp.ShowID {
			_, _ = y.Print(task.ID)
			if pad := len(spacing) - len(task.ID); pad > 0 {
				_, _ = y.Print(strings.Repeat(" ", pad))
			}
		}
		_, _ = t.Printf("%s due %s  %s\n",
			swatch(task.Label),
			task.DueDate.Format("Mon Jan _2"),
			truncate.StringWithTail(task.Title, titleLimit, "…"))
	}
	_, _ = t.Println("")
}

// Labels prints the label filter state as a table.
func (pp *PrettyPrint) Labels(entries []label.Entry) {
	bold := color.New(color.Bold)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("Label"), bold.Sprint("Shown"))
	for _, e := range entries {
		shown := "yes"
		if !e.Checked {
			shown = "no"
		}
		tbl.AddRow(fmt.Sprintf("%s %s", swatch(e.Name), e.Name), shown)
	}
	_, _ = fmt.Fprintln(color.Output, tbl)
}

// Venues prints the venue directory with availability for a day.
func (pp *PrettyPrint) Venues(day time.Time, statuses []app.VenueStatus) {
	bold := color.New(color.Bold)
	green := color.New(color.FgGreen)
	red := color.New(color.FgRed)

	pp.Title("Venues on " + day.Format("Mon Jan _2"))

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("Venue"), bold.Sprint("Floor"), bold.Sprint("Capacity"), bold.Sprint("Status"), bold.Sprint("Bookings"))
	for _, st := range statuses {
		status := green.Sprint("available")
		if !st.Available {
			status = red.Sprint("occupied")
		}
		tbl.AddRow(st.Venue.Name, st.Venue.Floor, st.Venue.Capacity, status, bookingSummary(st.Bookings))
	}
	tbl.RightAlign(2)
	_, _ = fmt.Fprintln(color.Output, tbl)
}

func bookingSummary(bookings []*item.Event) string {
	if len(bookings) == 0 {
		return "-"
	}
	parts := make([]string, 0, len(bookings))
	for _, ev := range bookings {
		start, end := ev.Interval()
		parts = append(parts, fmt.Sprintf("%s-%s %s",
			start.Format("15:04"), end.Format("15:04"),
			truncate.StringWithTail(ev.Title, 20, "…")))
	}
	return strings.Join(parts, ", ")
}

func swatch(name string) string {
	c, err := colorful.Hex(label.StyleFor(name).Background)
	if err != nil {
		return "■"
	}
	r, g, b := c.RGB255()
	return color.RGB(int(r), int(g), int(b)).Sprint("■")
}
