package schedule

import (
	"testing"
	"time"

	"dentalia/cmd/internal/domain/entity"
)

func TestMonthGrid_March2024(t *testing.T) {
	// March 2024 starts on a Friday: four leading blanks under a
	// Monday-first week, then 31 day cells and nothing after.
	ref := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	today := time.Date(2024, 3, 15, 12, 30, 0, 0, time.UTC)

	cells := MonthGrid(ref, today, nil)
	if len(cells) != 4+31 {
		t.Fatalf("expected 35 cells, got %d", len(cells))
	}
	for i := 0; i < 4; i++ {
		c := cells[i]
		if c.Day != 0 || c.CurrentMonth || c.CurrentDay || len(c.Events) != 0 || !c.Date.IsZero() {
			t.Fatalf("cell %d should be a blank padding cell, got %+v", i, c)
		}
	}
	if cells[4].Day != 1 || !cells[4].CurrentMonth {
		t.Fatalf("first real cell should be day 1 of the month, got %+v", cells[4])
	}
	if cells[len(cells)-1].Day != 31 {
		t.Fatalf("last cell should be day 31, got %+v", cells[len(cells)-1])
	}
}

func TestMonthGrid_CurrentDayFlag(t *testing.T) {
	ref := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	today := time.Date(2024, 3, 15, 9, 45, 0, 0, time.UTC)

	cells := MonthGrid(ref, today, nil)
	for _, c := range cells {
		if c.Day == 15 && !c.CurrentDay {
			t.Fatal("the 15th should be flagged as today")
		}
		if c.Day != 15 && c.CurrentDay {
			t.Fatalf("day %d wrongly flagged as today", c.Day)
		}
	}
}

func TestMonthGrid_EventsMatchedByDay(t *testing.T) {
	ref := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	appts := []*entity.Appointment{
		{ID: "a1", Date: time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC).UnixMilli()},
		{ID: "a2", Date: time.Date(2024, 3, 15, 17, 0, 0, 0, time.UTC).UnixMilli()},
		{ID: "a3", Date: time.Date(2024, 4, 15, 10, 0, 0, 0, time.UTC).UnixMilli()},
	}

	cells := MonthGrid(ref, ref, appts)
	for _, c := range cells {
		switch c.Day {
		case 15:
			if len(c.Events) != 2 {
				t.Fatalf("the 15th should carry two appointments, got %d", len(c.Events))
			}
		default:
			if len(c.Events) != 0 {
				t.Fatalf("day %d should carry no appointments, got %d", c.Day, len(c.Events))
			}
		}
	}
}

func TestMonthGrid_LeadingBlanksPerWeekday(t *testing.T) {
	tests := []struct {
		year   int
		month  time.Month
		blanks int
		days   int
	}{
		{2024, 1, 0, 31},  // January 2024 starts on Monday
		{2024, 9, 6, 30},  // September 2024 starts on Sunday
		{2024, 2, 3, 29},  // leap February starts on Thursday
		{2025, 2, 5, 28},  // February 2025 starts on Saturday
	}
	for _, tt := range tests {
		ref := time.Date(tt.year, tt.month, 10, 0, 0, 0, 0, time.UTC)
		cells := MonthGrid(ref, ref, nil)
		if len(cells) != tt.blanks+tt.days {
			t.Fatalf("%d-%02d: expected %d cells, got %d", tt.year, tt.month, tt.blanks+tt.days, len(cells))
		}
		if tt.blanks > 0 && cells[tt.blanks-1].Day != 0 {
			t.Fatalf("%d-%02d: cell %d should be blank", tt.year, tt.month, tt.blanks-1)
		}
		if cells[tt.blanks].Day != 1 {
			t.Fatalf("%d-%02d: day 1 misaligned", tt.year, tt.month)
		}
	}
}

func TestWeekGrid_SundayReference(t *testing.T) {
	// 2024-03-17 is a Sunday; its week runs Mon the 11th to Sun the 17th.
	ref := time.Date(2024, 3, 17, 0, 0, 0, 0, time.UTC)

	cells := WeekGrid(ref, ref, nil)
	if len(cells) != 7 {
		t.Fatalf("week grid must always have 7 cells, got %d", len(cells))
	}
	if cells[0].Day != 11 || cells[0].Date.Weekday() != time.Monday {
		t.Fatalf("week should start Mon the 11th, got day %d (%s)", cells[0].Day, cells[0].Date.Weekday())
	}
	if cells[6].Day != 17 || cells[6].Date.Weekday() != time.Sunday {
		t.Fatalf("week should end Sun the 17th, got day %d (%s)", cells[6].Day, cells[6].Date.Weekday())
	}
	if !cells[6].CurrentDay {
		t.Fatal("the reference Sunday should be flagged as today")
	}
}

func TestWeekGrid_SpansMonthBoundary(t *testing.T) {
	// 2024-04-01 is a Monday; the week is Apr 1..7 entirely in April,
	// while the week of 2024-03-31 (Sunday) starts in March.
	ref := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)

	cells := WeekGrid(ref, ref, nil)
	if cells[0].Day != 25 {
		t.Fatalf("week of Mar 31 should start Mon the 25th, got %d", cells[0].Day)
	}
	for i, c := range cells {
		if !c.CurrentMonth {
			t.Fatalf("cell %d (day %d) is in the reference month and should say so", i, c.Day)
		}
	}

	ref = time.Date(2024, 4, 3, 0, 0, 0, 0, time.UTC)
	cells = WeekGrid(ref, ref, nil)
	if cells[0].Day != 1 {
		t.Fatalf("week of Apr 3 should start Mon the 1st, got %d", cells[0].Day)
	}
}

func TestWeekGrid_AllWeekdays(t *testing.T) {
	// Whatever weekday the reference lands on, the grid is Mon..Sun of
	// the same week.
	for d := 11; d <= 17; d++ {
		ref := time.Date(2024, 3, d, 0, 0, 0, 0, time.UTC)
		cells := WeekGrid(ref, ref, nil)
		if cells[0].Day != 11 || cells[6].Day != 17 {
			t.Fatalf("reference %d: expected week 11..17, got %d..%d", d, cells[0].Day, cells[6].Day)
		}
	}
}
