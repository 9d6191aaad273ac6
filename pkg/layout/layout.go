// Package layout turns a day's events into non-overlapping grid
// geometry. The engine is a pure function of its inputs: identical item
// sets produce identical geometry regardless of input order.
package layout

import (
	"sort"
	"time"

	"tableflip.dev/agenda/pkg/item"
	"tableflip.dev/agenda/pkg/timeutil"
)

// Config fixes the vertical resolution of the grid.
type Config struct {
	// PixelsPerHour is the height of one hour.
	PixelsPerHour float64

	// MinEventPixels is the visual floor for very short events, so
	// they stay tappable. Zero means the 30-minute default.
	MinEventPixels float64

	// TaskPixels is the fixed height of a task marker.
	TaskPixels float64
}

// Defaults mirrored by every view.
const (
	DefaultPixelsPerHour = 60.0
	DefaultTaskPixels    = 25.0
)

// DefaultConfig is a 60px hour with a 30-minute visual floor.
func DefaultConfig() Config {
	return Config{PixelsPerHour: DefaultPixelsPerHour}
}

func (c Config) pixelsPerMinute() float64 {
	pph := c.PixelsPerHour
	if pph <= 0 {
		pph = DefaultPixelsPerHour
	}
	return pph / 60
}

func (c Config) minPixels() float64 {
	if c.MinEventPixels > 0 {
		return c.MinEventPixels
	}
	return 30 * c.pixelsPerMinute()
}

func (c Config) taskPixels() float64 {
	if c.TaskPixels > 0 {
		return c.TaskPixels
	}
	return DefaultTaskPixels
}

// Box is the geometry for one item, in the engine's pixel units.
// Column and TotalColumns resolve overlaps: callers derive width and
// left offset with WidthPercent and LeftPercent.
type Box struct {
	Top          float64
	Height       float64
	Column       int
	TotalColumns int
}

// WidthPercent is the width of one column as a percentage of the day
// lane, leaving a 5% gutter.
func WidthPercent(totalColumns int) float64 {
	if totalColumns < 1 {
		totalColumns = 1
	}
	return 95.0 / float64(totalColumns)
}

// LeftPercent is the left offset of a column as a percentage of the
// day lane.
func LeftPercent(column, totalColumns int) float64 {
	return float64(column) * WidthPercent(totalColumns)
}

// Engine computes grid geometry for one day at a fixed resolution.
type Engine struct {
	cfg Config
}

// New builds an engine. The zero Config selects the defaults.
func New(cfg Config) Engine {
	return Engine{cfg: cfg}
}

// Option narrows a single computation.
type Option func(*dayOptions)

type dayOptions struct {
	exclude map[string]bool
}

// Exclude leaves the named item out of the overlap computation, which
// keeps the rest of the day stable while that item is being dragged.
func Exclude(ids ...string) Option {
	return func(o *dayOptions) {
		if o.exclude == nil {
			o.exclude = make(map[string]bool, len(ids))
		}
		for _, id := range ids {
			o.exclude[id] = true
		}
	}
}

// span is an event's resolved interval in minutes from start of day.
type span struct {
	id       string
	startMin int
	endMin   int
	column   int
	group    int
}

// Day lays out the given events within their bucket day and returns a
// box per event id. Events whose bucket day differs from day are
// ignored. The function never fails: zero events yield an empty map
// and N fully-overlapping events yield N columns.
func (e Engine) Day(day time.Time, events []*item.Event, opts ...Option) map[string]Box {
	var o dayOptions
	for _, opt := range opts {
		opt(&o)
	}

	dayStart := timeutil.StartOfDay(day)
	spans := make([]*span, 0, len(events))
	for _, ev := range events {
		if ev == nil || o.exclude[ev.ID] {
			continue
		}
		if !ev.Day.SameDay(day) {
			continue
		}
		spans = append(spans, e.spanFor(dayStart, ev))
	}

	assignColumns(spans)

	boxes := make(map[string]Box, len(spans))
	ppm := e.cfg.pixelsPerMinute()
	for _, s := range spans {
		height := float64(s.endMin-s.startMin) * ppm
		if height < e.cfg.minPixels() {
			height = e.cfg.minPixels()
		}
		boxes[s.id] = Box{
			Top:          float64(s.startMin) * ppm,
			Height:       height,
			Column:       s.column,
			TotalColumns: s.group,
		}
	}
	return boxes
}

func (e Engine) spanFor(dayStart time.Time, ev *item.Event) *span {
	start, end := ev.Interval()
	startMin := clampMinutes(int(start.Sub(dayStart).Minutes()))
	endMin := clampMinutes(int(end.Sub(dayStart).Minutes()))
	if endMin < startMin {
		endMin = startMin
	}
	return &span{id: ev.ID, startMin: startMin, endMin: endMin}
}

func clampMinutes(m int) int {
	if m < 0 {
		return 0
	}
	if m > timeutil.MinutesPerDay {
		return timeutil.MinutesPerDay
	}
	return m
}

// overlaps uses half-open intervals: an item ending exactly when
// another starts does not overlap it.
func (a *span) overlaps(b *span) bool {
	return a.startMin < b.endMin && a.endMin > b.startMin
}

// assignColumns gives every span a column so that no two overlapping
// spans share one, and records each connected overlap group's width in
// span.group. Placement order is (start, id), which makes the result
// deterministic for equal input sets.
func assignColumns(spans []*span) {
	sort.Slice(spans, func(i, j int) bool {
		if spans[i].startMin != spans[j].startMin {
			return spans[i].startMin < spans[j].startMin
		}
		return spans[i].id < spans[j].id
	})

	// Column: smallest index not taken by an overlapping span that is
	// already placed. Counting predecessors instead would let two
	// overlapping spans share a column in a transitive chain.
	for i, s := range spans {
		used := make(map[int]bool)
		for _, prev := range spans[:i] {
			if s.overlaps(prev) {
				used[prev.column] = true
			}
		}
		col := 0
		for used[col] {
			col++
		}
		s.column = col
	}

	// Union spans into transitive overlap groups.
	parent := make([]int, len(spans))
	for i := range parent {
		parent[i] = i
	}
	var find func(int) int
	find = func(i int) int {
		for parent[i] != i {
			parent[i] = parent[parent[i]]
			i = parent[i]
		}
		return i
	}
	for i := range spans {
		for j := i + 1; j < len(spans); j++ {
			if spans[i].overlaps(spans[j]) {
				parent[find(j)] = find(i)
			}
		}
	}

	// Group width = widest member + 1.
	width := make(map[int]int)
	for i, s := range spans {
		root := find(i)
		if s.column+1 > width[root] {
			width[root] = s.column + 1
		}
	}
	for i, s := range spans {
		s.group = width[find(i)]
	}
}

// TaskBox places a task as a fixed-height marker at its due time.
// Tasks do not take part in the overlap computation.
func (e Engine) TaskBox(day time.Time, t *item.Task) Box {
	startMin := 0
	if t != nil {
		startMin = clampMinutes(timeutil.MinutesIntoDay(t.DueDate.Time))
	}
	return Box{
		Top:          float64(startMin) * e.cfg.pixelsPerMinute(),
		Height:       e.cfg.taskPixels(),
		Column:       0,
		TotalColumns: 1,
	}
}

// TopFor converts an instant to its vertical position within its day,
// used by the current-time indicator.
func (e Engine) TopFor(t time.Time) float64 {
	return float64(timeutil.MinutesIntoDay(t)) * e.cfg.pixelsPerMinute()
}

// PixelsPerMinute exposes the vertical scale so interaction code can
// convert pointer positions back to minutes.
func (e Engine) PixelsPerMinute() float64 {
	return e.cfg.pixelsPerMinute()
}
