// Package remind fires notifications ahead of event start times. The
// scan is pure and testable; the scheduler drives it once a minute.
package remind

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"

	"tableflip.dev/agenda/pkg/clock"
	"tableflip.dev/agenda/pkg/item"
)

// Notification is one reminder due in a scanned window.
type Notification struct {
	Event *item.Event
	At    time.Time
}

// Due returns notifications whose fire instant falls in the half-open
// window [from, to). The fire instant is the event start minus its
// reminder offset; events with no offset never fire.
func Due(events []*item.Event, from, to time.Time) []Notification {
	var out []Notification
	for _, ev := range events {
		if ev.ReminderMinutes <= 0 {
			continue
		}
		start, _ := ev.Interval()
		at := start.Add(-time.Duration(ev.ReminderMinutes) * time.Minute)
		if !at.Before(from) && at.Before(to) {
			out = append(out, Notification{Event: ev, At: at})
		}
	}
	return out
}

// EventsFunc supplies the current collection for each scan.
type EventsFunc func() []*item.Event

// NotifyFunc receives each due reminder.
type NotifyFunc func(Notification)

// Scheduler scans the collection once a minute, covering the minute
// that just elapsed so a reminder fires exactly once.
type Scheduler struct {
	events EventsFunc
	notify NotifyFunc
	clock  clock.Clock

	cron *cron.Cron
	last time.Time
}

// NewScheduler builds a stopped scheduler. A nil clock uses the
// system clock.
func NewScheduler(events EventsFunc, notify NotifyFunc, clk clock.Clock) *Scheduler {
	if clk == nil {
		clk = clock.System{}
	}
	return &Scheduler{
		events: events,
		notify: notify,
		clock:  clk,
	}
}

// Start begins the per-minute scan and blocks until ctx is cancelled.
func (s *Scheduler) Start(ctx context.Context) error {
	s.last = s.clock.Now()
	s.cron = cron.New()
	if _, err := s.cron.AddFunc("* * * * *", s.Scan); err != nil {
		return err
	}
	s.cron.Start()
	<-ctx.Done()
	<-s.cron.Stop().Done()
	return ctx.Err()
}

// Scan fires every reminder that became due since the previous scan.
func (s *Scheduler) Scan() {
	now := s.clock.Now()
	from := s.last
	s.last = now
	if !from.Before(now) {
		return
	}
	for _, n := range Due(s.events(), from, now) {
		s.notify(n)
	}
}
