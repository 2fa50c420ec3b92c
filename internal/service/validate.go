package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/tripfolio/backend/internal/domain"
)

// validateClockTime checks an optional "HH:mm" field. The zero-padded fixed
// width is load-bearing: timeline ordering compares these lexicographically.
func validateClockTime(field string, v *string) error {
	if v == nil {
		return nil
	}
	if _, err := time.Parse("15:04", *v); err != nil || len(*v) != 5 {
		return fmt.Errorf("%w: %s must be a zero-padded HH:mm time", domain.ErrValidation, field)
	}
	return nil
}

// validateLocation checks the all-or-nothing location rule. The pointer
// already makes lat/lng mandatory together; the label must not be blank.
func validateLocation(loc *domain.Location) error {
	if loc == nil {
		return nil
	}
	if strings.TrimSpace(loc.Label) == "" {
		return fmt.Errorf("%w: location label is required", domain.ErrValidation)
	}
	if loc.Lat < -90 || loc.Lat > 90 || loc.Lng < -180 || loc.Lng > 180 {
		return fmt.Errorf("%w: location coordinates out of range", domain.ErrValidation)
	}
	return nil
}

// validateTimeOrder checks that an optional end time does not precede an
// optional start time. Lexicographic comparison is valid for "HH:mm".
func validateTimeOrder(start, end *string) error {
	if start != nil && end != nil && *end < *start {
		return fmt.Errorf("%w: end time must not be before start time", domain.ErrValidation)
	}
	return nil
}

// validateCost rejects negative costs.
func validateCost(cost *float64) error {
	if cost != nil && *cost < 0 {
		return fmt.Errorf("%w: cost must not be negative", domain.ErrValidation)
	}
	return nil
}
