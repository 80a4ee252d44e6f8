package schedule

import (
	"time"

	"dentalia/cmd/internal/domain/entity"
)

// SameDay reports whether two instants fall on the same calendar day,
// comparing year, month and day components. Both values must already
// be in the clinic location; time of day is ignored.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// AvailableSlots returns the catalog slots still free on the calendar
// day of date, in catalog order. Appointments on other days are
// ignored, as is the appointment matching excludeID (so an edit does
// not block its own original slot). Appointments without a usable
// timestamp are skipped instead of occupying anything.
func AvailableSlots(date time.Time, appts []*entity.Appointment, excludeID string) []string {
	loc := date.Location()

	occupied := make(map[string]bool)
	for _, appt := range appts {
		if appt == nil || appt.Date <= 0 {
			continue
		}
		if excludeID != "" && appt.ID == excludeID {
			continue
		}
		apptDate := time.UnixMilli(appt.Date).In(loc)
		if !SameDay(apptDate, date) {
			continue
		}
		occupied[SlotLabel(apptDate)] = true
	}

	free := make([]string, 0, 8)
	for _, slot := range BaseSlots() {
		if !occupied[slot] {
			free = append(free, slot)
		}
	}
	return free
}

// KeepCurrent prepends the currently selected slot label to the free
// list when it is not already there, so an edit form can keep showing
// a selection that is stale or outside the catalog (legacy data).
func KeepCurrent(slots []string, current string) []string {
	if current == "" {
		return slots
	}
	for _, s := range slots {
		if s == current {
			return slots
		}
	}
	return append([]string{current}, slots...)
}
