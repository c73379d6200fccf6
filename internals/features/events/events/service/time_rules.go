package service

import (
	"time"

	helper "sponsorku_backend/internals/helpers"
)

// ValidateEventTimes: end harus setelah start, start tidak boleh di masa lalu.
func ValidateEventTimes(start, end, now time.Time) error {
	if !end.After(start) {
		return helper.ErrValidation("End time must be after start time")
	}
	if start.Before(now) {
		return helper.ErrValidation("Start time cannot be in the past")
	}
	return nil
}
