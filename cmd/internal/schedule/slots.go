// Package schedule holds the pure scheduling computations of the
// clinic: the bookable slot catalog, per-day availability and the
// month/week calendar grids. Nothing here touches storage; every
// function is deterministic over its inputs.
//
// All date arithmetic happens in the location of the date argument
// (the clinic timezone, loaded once at startup). Appointment
// timestamps are stored as epoch millis and converted into that
// location before comparing calendar days.
package schedule

import (
	"fmt"
	"time"
)

// BaseSlots enumerates the bookable times of a working day: a morning
// band (10:00-13:00) and an afternoon band (16:00-19:00), one hour
// each. The lunch gap and anything outside these bands is never
// bookable.
func BaseSlots() []string {
	slots := make([]string, 0, 8)
	for h := 10; h < 14; h++ {
		slots = append(slots, fmt.Sprintf("%02d:00", h))
	}
	for h := 16; h < 20; h++ {
		slots = append(slots, fmt.Sprintf("%02d:00", h))
	}
	return slots
}

// SlotLabel truncates a timestamp to its hour and formats it as the
// canonical "HH:00" slot label.
func SlotLabel(t time.Time) string {
	return fmt.Sprintf("%02d:00", t.Hour())
}

// SlotHour parses a canonical "HH:00" label and returns its hour.
// Labels with minutes are rejected, slots are always hour-aligned.
func SlotHour(label string) (int, error) {
	t, err := time.Parse("15:04", label)
	if err != nil {
		return 0, fmt.Errorf("invalid slot label %q: %w", label, err)
	}
	if t.Minute() != 0 {
		return 0, fmt.Errorf("invalid slot label %q: slots start on the hour", label)
	}
	return t.Hour(), nil
}

// InCatalog reports whether label is one of the bookable slots.
func InCatalog(label string) bool {
	for _, s := range BaseSlots() {
		if s == label {
			return true
		}
	}
	return false
}
