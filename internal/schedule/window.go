// Package schedule holds the pure calendar arithmetic of the scheduling
// core: view windows and assignment diffs. No I/O.
package schedule

import "time"

// ViewMode selects the calendar grid being rendered.
type ViewMode string

const (
	ViewDay   ViewMode = "day"
	ViewWeek  ViewMode = "week"
	ViewMonth ViewMode = "month"
	ViewList  ViewMode = "list"
)

// Window is an inclusive date range. OpenEnded windows (list view) have no
// upper bound; To is meaningless then and left at the zero value.
type Window struct {
	From      time.Time
	To        time.Time
	OpenEnded bool
}

// ComputeWindow returns the date window for a view mode anchored at a date.
// Unknown modes fall back to the list window so the UI keeps a sane default
// instead of erroring.
func ComputeWindow(mode ViewMode, anchor time.Time) Window {
	day := truncateToDay(anchor)
	switch mode {
	case ViewDay:
		return Window{From: day, To: day}
	case ViewWeek:
		monday := day.AddDate(0, 0, -mondayOffset(day.Weekday()))
		return Window{From: monday, To: monday.AddDate(0, 0, 6)}
	case ViewMonth:
		first := time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, day.Location())
		return Window{From: first, To: first.AddDate(0, 1, -1)}
	default:
		first := time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, day.Location())
		return Window{From: first, OpenEnded: true}
	}
}

// Contains reports whether a calendar date falls inside the window.
func (w Window) Contains(d time.Time) bool {
	d = truncateToDay(d)
	if d.Before(w.From) {
		return false
	}
	return w.OpenEnded || !d.After(w.To)
}

// Overlaps reports whether the span [start, end] touches the window. Used
// for tasks: a multi-day task appears on every grid it touches.
func (w Window) Overlaps(start, end time.Time) bool {
	start = truncateToDay(start)
	end = truncateToDay(end)
	if w.OpenEnded {
		return !end.Before(w.From)
	}
	return !start.After(w.To) && !end.Before(w.From)
}

// mondayOffset: days back to Monday of the ISO week.
func mondayOffset(wd time.Weekday) int {
	if wd == time.Sunday {
		return 6
	}
	return int(wd) - 1
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
