package printers

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/muesli/reflow/truncate"

	"tableflip.dev/agenda/pkg/item"
	"tableflip.dev/agenda/pkg/timeutil"
)

const weekWidth = len("11 12 13 14 15 16 17") // an example week

// Month prints a compact month grid. Days carrying at least one event
// or due task are highlighted.
func (pp *PrettyPrint) Month(then time.Time, now time.Time, events []*item.Event, tasks []*item.Task) {
	tf := color.New(color.FgWhite, color.Italic)

	m := then.Month().String()
	mid := (weekWidth - len(m)) / 2
	_, _ = tf.Printf("%s%s%s\n", strings.Repeat(" ", mid), m, strings.Repeat(" ", weekWidth-mid-len(m)))

	first := time.Date(then.Year(), then.Month(), 1, 0, 0, 0, 0, then.Location())
	days := daysIn(then)

	count := make([]int, days)
	for _, ev := range events {
		if ev.Day.SameMonth(then) {
			count[ev.Day.Day()-1]++
		}
	}
	for _, t := range tasks {
		if t.DueDate.SameMonth(then) {
			count[t.DueDate.Day()-1]++
		}
	}

	for i := time.Sunday; i < first.Weekday(); i++ {
		fmt.Print("   ")
	}

	quiet := color.New(color.Faint, color.FgWhite)
	busy := color.New(color.Bold, color.FgHiWhite)
	today := color.New(color.Bold, color.Underline, color.FgHiWhite)

	d := first.Weekday()
	for i := 0; i < days; i++ {
		printer := quiet
		if count[i] > 0 {
			printer = busy
		}
		if timeutil.SameDay(now, first.AddDate(0, 0, i)) {
			printer = today
		}
		_, _ = printer.Printf("%2d ", i+1)

		d++
		if d > time.Saturday {
			d = time.Sunday
			fmt.Print("\n")
		}
	}
	fmt.Print("\n\n")
}

// Agenda prints one line per day of the month with that day's events
// and due tasks, the long form of the month view.
func (pp *PrettyPrint) Agenda(then time.Time, now time.Time, events []*item.Event, tasks []*item.Task) {
	p := color.New()
	b := color.New(color.Bold)
	s := color.New(color.Underline)
	bs := color.New(color.Underline, color.Bold)

	first := time.Date(then.Year(), then.Month(), 1, 0, 0, 0, 0, then.Location())
	for i := 0; i < daysIn(then); i++ {
		day := first.AddDate(0, 0, i)

		printer := p
		if day.Weekday() == time.Sunday {
			printer = s
		}
		if timeutil.SameDay(now, day) {
			printer = b
			if day.Weekday() == time.Sunday {
				printer = bs
			}
		}
		_, _ = printer.Printf("%2d %s", i+1, day.Weekday().String()[0:1])

		wrote := false
		for _, ev := range events {
			if !ev.Day.SameDay(day) {
				continue
			}
			pp.agendaLine(&wrote)
			start, end := ev.Interval()
			_, _ = p.Printf("%s %s-%s %s\n", swatch(ev.Label),
				start.Format("15:04"), end.Format("15:04"),
				truncate.StringWithTail(ev.Title, titleLimit, "…"))
		}
		for _, t := range tasks {
			if !t.DueDate.SameDay(day) {
				continue
			}
			pp.agendaLine(&wrote)
			_, _ = p.Printf("%s due %s\n", swatch(t.Label),
				truncate.StringWithTail(t.Title, titleLimit, "…"))
		}
		if !wrote {
			_, _ = p.Printf("\n")
		}
	}
}

// agendaLine manages indentation for multiple items on one day row.
func (pp *PrettyPrint) agendaLine(wrote *bool) {
	if *wrote {
		fmt.Print("     ")
	} else {
		fmt.Print("  ")
		*wrote = true
	}
}

func daysIn(then time.Time) int {
	return time.Date(then.Year(), then.Month()+1, 0, 0, 0, 0, 0, then.Location()).Day()
}
