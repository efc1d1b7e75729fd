package schedule

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestComputeWindowDay(t *testing.T) {
	anchor := time.Date(2024, time.March, 14, 17, 45, 0, 0, time.UTC)
	win := ComputeWindow(ViewDay, anchor)
	if !win.From.Equal(date(2024, time.March, 14)) || !win.To.Equal(date(2024, time.March, 14)) {
		t.Fatalf("day window = [%v, %v]", win.From, win.To)
	}
	if win.OpenEnded {
		t.Fatal("day window must be bounded")
	}
	// day mode never yields more than one calendar date
	if !win.From.Equal(win.To) {
		t.Fatal("day window spans more than one date")
	}
}

func TestComputeWindowWeek(t *testing.T) {
	cases := []struct {
		name   string
		anchor time.Time
		monday time.Time
	}{
		{"midweek", date(2024, time.March, 14), date(2024, time.March, 11)},
		{"monday", date(2024, time.March, 11), date(2024, time.March, 11)},
		{"sunday", date(2024, time.March, 17), date(2024, time.March, 11)},
		{"across month edge", date(2024, time.April, 1), date(2024, time.April, 1)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			win := ComputeWindow(ViewWeek, tc.anchor)
			if !win.From.Equal(tc.monday) {
				t.Errorf("from = %v, want %v", win.From, tc.monday)
			}
			if want := tc.monday.AddDate(0, 0, 6); !win.To.Equal(want) {
				t.Errorf("to = %v, want %v", win.To, want)
			}
		})
	}
}

func TestComputeWindowMonthLeapYear(t *testing.T) {
	win := ComputeWindow(ViewMonth, date(2024, time.February, 15))
	if !win.From.Equal(date(2024, time.February, 1)) {
		t.Errorf("from = %v", win.From)
	}
	if !win.To.Equal(date(2024, time.February, 29)) {
		t.Errorf("to = %v, want 2024-02-29", win.To)
	}
}

func TestComputeWindowList(t *testing.T) {
	win := ComputeWindow(ViewList, date(2024, time.March, 14))
	if !win.OpenEnded {
		t.Fatal("list window must be open-ended")
	}
	if !win.From.Equal(date(2024, time.March, 1)) {
		t.Errorf("from = %v, want month start", win.From)
	}
}

func TestComputeWindowUnknownModeFallsBackToList(t *testing.T) {
	win := ComputeWindow(ViewMode("agenda"), date(2024, time.March, 14))
	if !win.OpenEnded {
		t.Fatal("unknown mode must fall back to the list window")
	}
	if !win.From.Equal(date(2024, time.March, 1)) {
		t.Errorf("from = %v", win.From)
	}
}

func TestDayWindowIsWeekWindowIntersectedToOneDay(t *testing.T) {
	anchor := date(2024, time.March, 14)
	day := ComputeWindow(ViewDay, anchor)
	week := ComputeWindow(ViewWeek, anchor)
	if day.From.Before(week.From) || day.To.After(week.To) {
		t.Fatalf("day window [%v, %v] outside week window [%v, %v]", day.From, day.To, week.From, week.To)
	}
}

func TestWindowOverlaps(t *testing.T) {
	march := ComputeWindow(ViewMonth, date(2024, time.March, 10))
	april := ComputeWindow(ViewMonth, date(2024, time.April, 10))

	// task spanning the month boundary shows in both months
	start, end := date(2024, time.March, 28), date(2024, time.April, 2)
	if !march.Overlaps(start, end) {
		t.Error("span must overlap March")
	}
	if !april.Overlaps(start, end) {
		t.Error("span must overlap April")
	}

	// fully enclosing span
	week := ComputeWindow(ViewWeek, date(2024, time.March, 13))
	if !week.Overlaps(date(2024, time.March, 1), date(2024, time.March, 31)) {
		t.Error("enclosing span must overlap the week")
	}

	// disjoint span
	if march.Overlaps(date(2024, time.May, 1), date(2024, time.May, 3)) {
		t.Error("May span must not overlap March")
	}

	// open-ended list window
	list := ComputeWindow(ViewList, date(2024, time.March, 14))
	if !list.Overlaps(date(2024, time.February, 1), date(2024, time.March, 1)) {
		t.Error("span ending on window start must overlap")
	}
	if list.Overlaps(date(2024, time.January, 1), date(2024, time.February, 28)) {
		t.Error("span ending before window start must not overlap")
	}
}

func TestWindowContains(t *testing.T) {
	win := ComputeWindow(ViewWeek, date(2024, time.March, 14))
	if !win.Contains(date(2024, time.March, 11)) || !win.Contains(date(2024, time.March, 17)) {
		t.Error("week bounds must be inclusive")
	}
	if win.Contains(date(2024, time.March, 18)) {
		t.Error("next monday must be outside")
	}
}
