package typing

import "time"

// DefaultTickInterval is how often the practice UI refreshes time-derived
// feedback (elapsed duration, live WPM) while a session is active.
const DefaultTickInterval = 100 * time.Millisecond

// Feedback is one observation of an in-flight attempt. Live accuracy uses
// the typed length as denominator, rewarding current-prefix correctness;
// the final Result divides by the target length instead and so penalizes
// incompleteness. The asymmetry is intentional.
type Feedback struct {
	TypedChars  int
	TargetChars int
	Correct     int
	Accuracy    float64
	Progress    float64
	Done        bool
}

// Snapshot recomputes live feedback for the current typed prefix. Pure and
// bounded by the prefix length, so it is safe to call on every keystroke
// and on every tick.
func Snapshot(typed, target string) Feedback {
	cmp := Compare(typed, target)
	typedLen := len([]rune(typed))

	accuracy := 0.0
	if typedLen > 0 {
		accuracy = round2(float64(cmp.Correct) / float64(typedLen) * 100)
	}
	progress := 0.0
	if cmp.Total > 0 {
		progress = float64(typedLen) / float64(cmp.Total)
		if progress > 1 {
			progress = 1
		}
	}
	return Feedback{
		TypedChars:  typedLen,
		TargetChars: cmp.Total,
		Correct:     cmp.Correct,
		Accuracy:    accuracy,
		Progress:    progress,
		Done:        typedLen >= cmp.Total,
	}
}

// LiveWPM derives the current typing speed from a feedback snapshot and the
// elapsed session duration.
func LiveWPM(fb Feedback, elapsed Duration) float64 {
	if elapsed.Milliseconds() == 0 {
		return 0
	}
	return (float64(fb.Correct) / 5.0) / elapsed.Minutes()
}
