package domain

import (
	"fmt"
	"strings"
	"time"
)

// Slot labels are free-form strings of the form "HH:MM - HH:MM". Conflict
// detection compares them by exact string equality, so only the opening
// time is ever parsed here.

// SlotStart combines a booking date with the opening time of its slot
// label.
func SlotStart(date time.Time, slot string) (time.Time, error) {
	open, _, found := strings.Cut(slot, "-")
	if !found {
		return time.Time{}, fmt.Errorf("malformed time slot %q", slot)
	}
	t, err := time.Parse("15:04", strings.TrimSpace(open))
	if err != nil {
		return time.Time{}, fmt.Errorf("malformed time slot %q: %w", slot, err)
	}
	return time.Date(date.Year(), date.Month(), date.Day(), t.Hour(), t.Minute(), 0, 0, date.Location()), nil
}

// DateOnly strips the time of day. Maintenance and conflict checks compare
// calendar dates, never instants.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
