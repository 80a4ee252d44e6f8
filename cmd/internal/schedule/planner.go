package schedule

import (
	"fmt"
	"time"

	"dentalia/cmd/internal/domain/entity"
)

// View selects how a Planner lays out its grid.
type View string

const (
	ViewMonth View = "month"
	ViewWeek  View = "week"
)

var monthNames = [12]string{
	"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
	"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
}

// Planner carries the only mutable state of the calendar: the current
// reference date and the active view. Navigation shifts the reference
// by one month or one week depending on the view; switching view keeps
// the reference where it is.
type Planner struct {
	ref  time.Time
	view View

	// Now is injectable so grids can be built against a fixed "today"
	// in tests. Defaults to time.Now.
	Now func() time.Time
}

// NewPlanner creates a planner anchored at ref. An unknown view falls
// back to the month view.
func NewPlanner(ref time.Time, view View) *Planner {
	if view != ViewWeek {
		view = ViewMonth
	}
	return &Planner{ref: ref, view: view, Now: time.Now}
}

func (p *Planner) View() View          { return p.view }
func (p *Planner) Reference() time.Time { return p.ref }

// SetView switches between month and week layout. The reference date
// is unchanged; the caller rebuilds the grid afterwards.
func (p *Planner) SetView(view View) {
	if view == ViewMonth || view == ViewWeek {
		p.view = view
	}
}

// Previous moves the reference one month or one week back.
func (p *Planner) Previous() {
	p.shift(-1)
}

// Next moves the reference one month or one week forward.
func (p *Planner) Next() {
	p.shift(1)
}

func (p *Planner) shift(dir int) {
	if p.view == ViewWeek {
		p.ref = p.ref.AddDate(0, 0, 7*dir)
		return
	}
	p.ref = p.ref.AddDate(0, dir, 0)
}

// Build produces the grid for the current reference and view from the
// given appointment snapshot.
func (p *Planner) Build(appts []*entity.Appointment) []CalendarDay {
	if p.view == ViewWeek {
		return WeekGrid(p.ref, p.Now(), appts)
	}
	return MonthGrid(p.ref, p.Now(), appts)
}

// Label returns the header for the current view: "Marzo de 2024" for a
// month, "11/3/2024 - 17/3/2024" for a week.
func (p *Planner) Label() string {
	if p.view == ViewWeek {
		cells := WeekGrid(p.ref, p.ref, nil)
		monday, sunday := cells[0].Date, cells[6].Date
		return fmt.Sprintf("%s - %s", monday.Format("2/1/2006"), sunday.Format("2/1/2006"))
	}
	return fmt.Sprintf("%s de %d", monthNames[p.ref.Month()-1], p.ref.Year())
}
