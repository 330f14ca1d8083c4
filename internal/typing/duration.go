package typing

import (
	"fmt"
	"time"
)

// Default bounds for a "reasonable" practice duration. The lower bound is
// inclusive and the upper bound exclusive.
const (
	DefaultReasonableMin = time.Second
	DefaultReasonableMax = time.Hour
)

// Duration is an immutable, non-negative time interval in milliseconds.
type Duration struct {
	ms int64
}

// DurationFromMillis builds a Duration from milliseconds.
func DurationFromMillis(ms int64) (Duration, error) {
	if ms < 0 {
		return Duration{}, validationErr("duration", fmt.Sprintf("must not be negative, got %dms", ms))
	}
	return Duration{ms: ms}, nil
}

// DurationFromSeconds builds a Duration from whole seconds.
func DurationFromSeconds(s int64) (Duration, error) {
	if s < 0 {
		return Duration{}, validationErr("duration", fmt.Sprintf("must not be negative, got %ds", s))
	}
	return Duration{ms: s * 1000}, nil
}

// DurationBetween measures the elapsed time from start to end.
func DurationBetween(start, end time.Time) (Duration, error) {
	return DurationFromMillis(end.Sub(start).Milliseconds())
}

// Milliseconds returns the interval in milliseconds.
func (d Duration) Milliseconds() int64 {
	return d.ms
}

// Seconds returns the interval in seconds.
func (d Duration) Seconds() float64 {
	return float64(d.ms) / 1000.0
}

// Minutes returns the interval in minutes.
func (d Duration) Minutes() float64 {
	return float64(d.ms) / 60000.0
}

// Add returns the sum of two durations.
func (d Duration) Add(other Duration) Duration {
	return Duration{ms: d.ms + other.ms}
}

// IsReasonable reports whether the duration falls within the default quality
// gating bounds.
func (d Duration) IsReasonable() bool {
	return d.ReasonableWithin(DefaultReasonableMin, DefaultReasonableMax)
}

// ReasonableWithin reports whether min <= d < max.
func (d Duration) ReasonableWithin(min, max time.Duration) bool {
	return d.ms >= min.Milliseconds() && d.ms < max.Milliseconds()
}

// String renders the duration for display, e.g. "12.3s".
func (d Duration) String() string {
	return fmt.Sprintf("%.1fs", d.Seconds())
}
