package schedule

import (
	"time"

	"dentalia/cmd/internal/domain/entity"
)

// CalendarDay is one cell of a month or week grid. Leading padding
// cells of a month grid have Day == 0 and a zero Date.
type CalendarDay struct {
	Day          int
	Date         time.Time
	CurrentDay   bool
	CurrentMonth bool
	Events       []*entity.Appointment
}

// MonthGrid builds the cells for the month of ref: leading blank cells
// so day 1 lands under its weekday column (weeks start on Monday),
// then one cell per day of the month. No trailing padding is added.
func MonthGrid(ref, today time.Time, appts []*entity.Appointment) []CalendarDay {
	loc := ref.Location()
	first := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, loc)
	daysInMonth := first.AddDate(0, 1, -1).Day()

	// Go weekdays are Sunday=0; shift so Monday=0.
	blanks := (int(first.Weekday()) + 6) % 7

	cells := make([]CalendarDay, 0, blanks+daysInMonth)
	for i := 0; i < blanks; i++ {
		cells = append(cells, CalendarDay{})
	}

	today = today.In(loc)
	for d := 1; d <= daysInMonth; d++ {
		date := time.Date(ref.Year(), ref.Month(), d, 0, 0, 0, 0, loc)
		cells = append(cells, CalendarDay{
			Day:          d,
			Date:         date,
			CurrentDay:   SameDay(date, today),
			CurrentMonth: true,
			Events:       eventsOn(date, appts),
		})
	}
	return cells
}

// WeekGrid builds exactly seven cells, Monday through Sunday, for the
// week containing ref. CurrentMonth is judged against the month of ref
// so cells that spill into a neighbouring month can be greyed out.
func WeekGrid(ref, today time.Time, appts []*entity.Appointment) []CalendarDay {
	loc := ref.Location()

	// Treat Sunday as day 7 so the week always starts on Monday.
	wd := int(ref.Weekday())
	if wd == 0 {
		wd = 7
	}
	monday := time.Date(ref.Year(), ref.Month(), ref.Day(), 0, 0, 0, 0, loc).
		AddDate(0, 0, -(wd - 1))

	today = today.In(loc)
	cells := make([]CalendarDay, 0, 7)
	for i := 0; i < 7; i++ {
		date := monday.AddDate(0, 0, i)
		cells = append(cells, CalendarDay{
			Day:          date.Day(),
			Date:         date,
			CurrentDay:   SameDay(date, today),
			CurrentMonth: date.Month() == ref.Month() && date.Year() == ref.Year(),
			Events:       eventsOn(date, appts),
		})
	}
	return cells
}

// eventsOn filters the snapshot down to the appointments whose date
// falls on the given calendar day. The snapshot is never mutated.
func eventsOn(date time.Time, appts []*entity.Appointment) []*entity.Appointment {
	loc := date.Location()
	var matched []*entity.Appointment
	for _, appt := range appts {
		if appt == nil || appt.Date <= 0 {
			continue
		}
		if SameDay(time.UnixMilli(appt.Date).In(loc), date) {
			matched = append(matched, appt)
		}
	}
	return matched
}
