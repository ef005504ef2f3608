package survey

import (
	"fmt"
	"time"
)

// IsExpired reports whether expiresAt lies in the past. It reads the wall
// clock on every call and must not be cached.
func IsExpired(expiresAt *time.Time) bool {
	return IsExpiredAt(expiresAt, time.Now())
}

func IsExpiredAt(expiresAt *time.Time, now time.Time) bool {
	if expiresAt == nil {
		return false
	}
	return expiresAt.Before(now)
}

// ComputeExpiresAt returns now + value·unit, or nil when the survey has no
// response window.
func ComputeExpiresAt(now time.Time, value *int, unit DurationUnit) (*time.Time, error) {
	if unit == "" || unit == DurationNone {
		return nil, nil
	}
	if value == nil || *value <= 0 {
		return nil, fmt.Errorf("duration value must be positive for unit %q", unit)
	}

	var step time.Duration
	switch unit {
	case DurationMinutes:
		step = time.Minute
	case DurationHours:
		step = time.Hour
	case DurationDays:
		step = 24 * time.Hour
	default:
		return nil, fmt.Errorf("unknown duration unit %q", unit)
	}

	expiresAt := now.Add(time.Duration(*value) * step)
	return &expiresAt, nil
}
