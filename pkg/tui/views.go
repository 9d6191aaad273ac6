package tui

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss/v2"

	"tableflip.dev/agenda/pkg/app"
	"tableflip.dev/agenda/pkg/item"
	"tableflip.dev/agenda/pkg/layout"
	"tableflip.dev/agenda/pkg/timeutil"
)

// View renders the full frame: header, active view beside the label
// sidebar, and the status footer.
func (m *Model) View() string {
	if m.width == 0 {
		return "loading..."
	}

	header := m.theme.Header.Render(m.periodLabel()) +
		m.theme.Muted.Render("  ["+m.view.String()+"]")

	var body string
	switch m.view {
	case app.ViewDay:
		body = m.viewDay()
	case app.ViewWeek:
		body = m.viewWeek()
	case app.ViewYear:
		body = m.viewYear()
	default:
		body = m.viewMonth()
	}

	main := lipgloss.JoinHorizontal(lipgloss.Top, body, " ", m.viewSidebar())
	frame := header + "\n\n" + main + "\n" + m.viewStatus()

	switch m.mode {
	case modeInsert:
		if m.form != nil {
			return frame + "\n" + m.form.View(m.theme)
		}
	case modeConfirm:
		if m.confirm != nil {
			prompt := fmt.Sprintf("Delete %q? (y/n)", m.confirm.Title)
			return frame + "\n" + m.theme.Frame.Render(prompt)
		}
	case modeHelp:
		if m.help != nil {
			return frame + "\n" + m.help.View()
		}
	}
	return frame
}

func (m *Model) viewStatus() string {
	modeStr := map[mode]string{
		modeNormal:  "NORMAL",
		modeInsert:  "INSERT",
		modeConfirm: "CONFIRM",
		modeHelp:    "HELP",
	}[m.mode]
	return m.theme.Status.Render(fmt.Sprintf("[%s] %s  (? for help)", modeStr, m.status))
}

func (m *Model) viewSidebar() string {
	var b strings.Builder
	b.WriteString(m.theme.Title.Render("Labels") + "\n")
	for i, e := range m.svc.Store.EventLabels() {
		mark := "x"
		if !e.Checked {
			mark = " "
		}
		chip := m.theme.Label(e.Name).Render(" ")
		fmt.Fprintf(&b, "%d [%s] %s %s\n", i+1, mark, chip, e.Name)
	}
	b.WriteString("\n")
	b.WriteString(m.theme.Muted.Render("m/w/d/y views") + "\n")
	b.WriteString(m.theme.Muted.Render("a add  T task") + "\n")
	b.WriteString(m.theme.Muted.Render("e edit  x delete") + "\n")
	b.WriteString(m.theme.Muted.Render("1-9 toggle label") + "\n")
	return m.theme.Sidebar.Width(sidebarWidth).Render(b.String())
}

// cell is one paintable slot of a grid row.
type cell struct {
	r     rune
	style *lipgloss.Style
}

func paint(canvas []cell, at int, text string, style *lipgloss.Style) {
	for i, r := range []rune(text) {
		if at+i < 0 || at+i >= len(canvas) {
			return
		}
		canvas[at+i] = cell{r: r, style: style}
	}
}

func renderCanvas(canvas []cell) string {
	var b strings.Builder
	for i := 0; i < len(canvas); {
		j := i
		for j < len(canvas) && canvas[j].style == canvas[i].style {
			j++
		}
		var run strings.Builder
		for _, c := range canvas[i:j] {
			run.WriteRune(c.r)
		}
		if canvas[i].style != nil {
			b.WriteString(canvas[i].style.Render(run.String()))
		} else {
			b.WriteString(run.String())
		}
		i = j
	}
	return b.String()
}

func (m *Model) viewDay() string {
	lane := m.laneWidth()
	boxes := m.dayBoxes()
	events := m.dayEvents()
	tasks := m.svc.TasksForDay(m.day)
	sameDay := timeutil.SameDay(m.now, m.day)
	nowRow := int(m.engine.TopFor(m.now))

	selectedID := ""
	if ev := m.selectedEvent(); ev != nil {
		selectedID = ev.ID
	}
	preview := m.drag.Preview()
	if preview != nil {
		// The in-flight item leaves the overlap computation so the
		// rest of the day holds still under the pointer.
		boxes = m.engine.Day(m.day, m.svc.EventsForDay(m.day), layout.Exclude(preview.ID))
	}

	var lines []string
	last := min(m.scroll+m.gridViewRows(), m.gridRows())
	for row := m.scroll; row < last; row++ {
		gutter := strings.Repeat(" ", gutterWidth)
		if row%int(rowsPerHour) == 0 {
			gutter = m.theme.Gutter.Render(fmt.Sprintf("%02d:00  ", row/int(rowsPerHour)))
		}

		canvas := make([]cell, lane)
		for i := range canvas {
			canvas[i] = cell{r: ' '}
		}
		if sameDay && row == nowRow {
			nowStyle := m.theme.NowLine
			for i := range canvas {
				canvas[i] = cell{r: '╌', style: &nowStyle}
			}
		}

		for _, ev := range events {
			shown := ev
			if preview != nil && preview.ID == ev.ID {
				shown = preview
			}
			b, ok := m.boxFor(shown, boxes, preview)
			if !ok {
				continue
			}
			m.paintEvent(canvas, row, lane, shown, b, shown.ID == selectedID)
		}

		for _, t := range tasks {
			tb := m.engine.TaskBox(m.day, t)
			if row != int(tb.Top) {
				continue
			}
			style := m.theme.Label(t.Label)
			paint(canvas, 0, fit("◆ "+t.Title, lane/2), &style)
		}

		lines = append(lines, gutter+renderCanvas(canvas))
	}
	return strings.Join(lines, "\n")
}

// boxFor resolves an event's geometry. The dragged item renders full
// width from its preview interval so the rest of the grid holds still.
func (m *Model) boxFor(ev *item.Event, boxes map[string]layout.Box, preview *item.Event) (layout.Box, bool) {
	if preview != nil && preview.ID == ev.ID {
		start, end := ev.Interval()
		top := m.engine.TopFor(start)
		height := m.engine.TopFor(end) - top
		if height < 1 {
			height = 1
		}
		return layout.Box{Top: top, Height: height, Column: 0, TotalColumns: 1}, true
	}
	b, ok := boxes[ev.ID]
	return b, ok
}

func (m *Model) paintEvent(canvas []cell, row, lane int, ev *item.Event, b layout.Box, selected bool) {
	top := int(b.Top)
	h := max(int(b.Height), 1)
	if row < top || row >= top+h {
		return
	}
	left := int(layout.LeftPercent(b.Column, b.TotalColumns) * float64(lane) / 100)
	w := max(int(layout.WidthPercent(b.TotalColumns)*float64(lane)/100), 1)

	style := m.theme.Label(ev.Label)
	if selected {
		style = style.Reverse(true)
	}

	text := strings.Repeat(" ", w)
	switch row - top {
	case 0:
		text = fit(" "+ev.Title, w)
	case 1:
		start, end := ev.Interval()
		text = fit(fmt.Sprintf(" %s-%s", start.Format("15:04"), end.Format("15:04")), w)
	}
	paint(canvas, left, text, &style)
}

func (m *Model) viewWeek() string {
	days := timeutil.DaysOfWeek(timeutil.StartOfWeek(m.day))
	colWidth := max(m.laneWidth()/7, 8)
	rows := m.gridViewRows()

	cols := make([]string, 0, len(days))
	for _, day := range days {
		var b strings.Builder

		header := day.Format("Mon 2")
		style := m.theme.DayNumber
		if timeutil.SameDay(m.now, day) {
			style = m.theme.Today
		}
		if timeutil.SameDay(m.day, day) {
			style = style.Reverse(true)
		}
		b.WriteString(style.Render(fit(header, colWidth-1)) + "\n")

		used := 1
		for _, t := range m.svc.TasksForDay(day) {
			if used >= rows {
				break
			}
			b.WriteString(m.theme.Label(t.Label).Render(fit("◆ "+t.Title, colWidth-1)) + "\n")
			used++
		}
		for _, ev := range sortedDayEvents(m.svc, m.engine, day) {
			if used >= rows {
				break
			}
			start, _ := ev.Interval()
			b.WriteString(m.theme.Label(ev.Label).Render(fit(start.Format("15:04")+" "+ev.Title, colWidth-1)) + "\n")
			used++
		}
		cols = append(cols, lipgloss.NewStyle().Width(colWidth).Height(rows).Render(b.String()))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cols...)
}

func (m *Model) viewMonth() string {
	grid := timeutil.MonthGrid(m.day)
	colWidth := max(m.laneWidth()/7, 6)
	cellRows := max(m.gridViewRows()/len(grid), 2)

	var weeks []string
	for _, week := range grid {
		cols := make([]string, 0, 7)
		for _, day := range week {
			var b strings.Builder

			numStyle := m.theme.DayNumber
			if day.Month() != m.day.Month() {
				numStyle = m.theme.Muted
			}
			if timeutil.SameDay(m.now, day) {
				numStyle = m.theme.Today
			}
			if timeutil.SameDay(m.day, day) {
				numStyle = numStyle.Reverse(true)
			}
			b.WriteString(numStyle.Render(fmt.Sprintf("%2d", day.Day())) + "\n")

			used := 1
			for _, ev := range sortedDayEvents(m.svc, m.engine, day) {
				if used >= cellRows {
					break
				}
				b.WriteString(m.theme.Label(ev.Label).Render(fit(ev.Title, colWidth-1)) + "\n")
				used++
			}
			for _, t := range m.svc.TasksForDay(day) {
				if used >= cellRows {
					break
				}
				b.WriteString(m.theme.Label(t.Label).Render(fit("◆ "+t.Title, colWidth-1)) + "\n")
				used++
			}
			cols = append(cols, lipgloss.NewStyle().Width(colWidth).Height(cellRows).Render(b.String()))
		}
		weeks = append(weeks, lipgloss.JoinHorizontal(lipgloss.Top, cols...))
	}
	return strings.Join(weeks, "\n")
}

func (m *Model) viewYear() string {
	months := timeutil.MonthsOfYear(m.day.Year(), m.day.Location())
	colWidth := max(m.laneWidth()/4, 14)

	counts := make(map[int]int, 12)
	for _, ev := range m.svc.FilteredEvents() {
		if ev.Day.Year() == m.day.Year() {
			counts[int(ev.Day.Month())]++
		}
	}

	var rows []string
	for i := 0; i < 12; i += 4 {
		cols := make([]string, 0, 4)
		for _, month := range months[i : i+4] {
			style := m.theme.DayNumber
			if month.Month() == m.now.Month() && month.Year() == m.now.Year() {
				style = m.theme.Today
			}
			if month.Month() == m.day.Month() {
				style = style.Reverse(true)
			}
			n := counts[int(month.Month())]
			line := fmt.Sprintf("%-9s %3d", month.Format("January"), n)
			cols = append(cols, lipgloss.NewStyle().Width(colWidth).Render(style.Render(line)))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cols...))
	}
	return strings.Join(rows, "\n\n")
}

// sortEventsByBox orders events by their grid position, top first then
// left to right, so the selection index follows the visual order.
func sortEventsByBox(events []*item.Event, boxes map[string]layout.Box) {
	sort.SliceStable(events, func(i, j int) bool {
		bi, bj := boxes[events[i].ID], boxes[events[j].ID]
		if bi.Top != bj.Top {
			return bi.Top < bj.Top
		}
		if bi.Column != bj.Column {
			return bi.Column < bj.Column
		}
		return events[i].ID < events[j].ID
	})
}

func sortedDayEvents(svc *app.Service, engine layout.Engine, day time.Time) []*item.Event {
	events := svc.EventsForDay(day)
	sortEventsByBox(events, engine.Day(day, events))
	return events
}

func fit(s string, w int) string {
	if w <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) > w {
		if w == 1 {
			return string(runes[:1])
		}
		return string(runes[:w-1]) + "…"
	}
	return s + strings.Repeat(" ", w-len(runes))
}
