package typing

import (
	"fmt"
	"math"
	"time"
)

// DefaultMinAccuracy is the accuracy floor for the quality-standards gate.
const DefaultMinAccuracy = 80.0

// QualityPolicy defines the thresholds a result must meet to count toward
// published statistics. Zero values are replaced by the defaults.
type QualityPolicy struct {
	MinAccuracy   float64
	ReasonableMin time.Duration
	ReasonableMax time.Duration
}

// DefaultQualityPolicy returns the standard quality gate.
func DefaultQualityPolicy() QualityPolicy {
	return QualityPolicy{
		MinAccuracy:   DefaultMinAccuracy,
		ReasonableMin: DefaultReasonableMin,
		ReasonableMax: DefaultReasonableMax,
	}
}

func (p QualityPolicy) normalized() QualityPolicy {
	out := p
	if out.MinAccuracy == 0 {
		out.MinAccuracy = DefaultMinAccuracy
	}
	if out.ReasonableMin == 0 {
		out.ReasonableMin = DefaultReasonableMin
	}
	if out.ReasonableMax == 0 {
		out.ReasonableMax = DefaultReasonableMax
	}
	return out
}

// Result is the frozen outcome of one completed typing attempt.
type Result struct {
	total    int
	correct  int
	duration Duration
}

// NewResult validates counts and builds an immutable Result.
func NewResult(total, correct int, duration Duration) (Result, error) {
	if total < 0 {
		return Result{}, validationErr("total", fmt.Sprintf("must not be negative, got %d", total))
	}
	if correct < 0 {
		return Result{}, validationErr("correct", fmt.Sprintf("must not be negative, got %d", correct))
	}
	if correct > total {
		return Result{}, validationErr("correct", fmt.Sprintf("must not exceed total (%d > %d)", correct, total))
	}
	return Result{total: total, correct: correct, duration: duration}, nil
}

// ResultFromComparison scores typed against target and builds a Result.
func ResultFromComparison(typed, target string, duration Duration) (Result, error) {
	cmp := Compare(typed, target)
	return NewResult(cmp.Total, cmp.Correct, duration)
}

// Total returns the number of target characters.
func (r Result) Total() int { return r.total }

// Correct returns the number of correctly typed characters.
func (r Result) Correct() int { return r.correct }

// Incorrect returns the number of missed or mistyped characters.
func (r Result) Incorrect() int { return r.total - r.correct }

// Duration returns the attempt duration.
func (r Result) Duration() Duration { return r.duration }

// Accuracy returns the percentage of correct characters over the full target,
// rounded half-up to two decimals. A zero-length target scores 0.
func (r Result) Accuracy() float64 {
	if r.total == 0 {
		return 0
	}
	return round2(float64(r.correct) / float64(r.total) * 100)
}

// ErrorRate returns 100 minus the accuracy.
func (r Result) ErrorRate() float64 {
	return round2(100 - r.Accuracy())
}

// WordsPerMinute returns the typing speed using the 5-characters-per-word
// convention. A zero duration scores 0.
func (r Result) WordsPerMinute() float64 {
	if r.duration.Milliseconds() == 0 {
		return 0
	}
	return (float64(r.correct) / 5.0) / r.duration.Minutes()
}

// MeetsQualityStandards reports whether the result passes the default
// quality gate. The engine only exposes the predicate; callers decide
// whether to filter.
func (r Result) MeetsQualityStandards() bool {
	return r.MeetsQuality(DefaultQualityPolicy())
}

// MeetsQuality reports whether the result passes the given policy.
func (r Result) MeetsQuality(policy QualityPolicy) bool {
	p := policy.normalized()
	return r.Accuracy() >= p.MinAccuracy && r.duration.ReasonableWithin(p.ReasonableMin, p.ReasonableMax)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
