package utils

import (
	"testing"
	"time"
)

func TestIsHourExact(t *testing.T) {
	exact := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC).UnixMilli()
	if !IsHourExact(exact) {
		t.Fatal("10:00:00.000 should be hour exact")
	}
	if IsHourExact(exact + 1) {
		t.Fatal("one millisecond past the hour is not exact")
	}
}

func TestSanitize(t *testing.T) {
	type req struct {
		Name string
		Tags []string
		Num  int
	}
	r := &req{Name: "  Juan  ", Tags: []string{" a ", "b"}, Num: 3}
	Sanitize(r)
	if r.Name != "Juan" {
		t.Fatalf("Name = %q, want trimmed", r.Name)
	}
	if r.Tags[0] != "a" || r.Tags[1] != "b" {
		t.Fatalf("Tags = %v, want trimmed", r.Tags)
	}
	if r.Num != 3 {
		t.Fatal("non-string fields must be untouched")
	}
}

func TestFormatEpochIn(t *testing.T) {
	loc := time.FixedZone("CET", 3600)
	millis := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC).UnixMilli()
	if got := FormatEpochIn(millis, loc, "02/01/2006 15:04"); got != "15/03/2024 11:00" {
		t.Fatalf("FormatEpochIn = %q", got)
	}
}
