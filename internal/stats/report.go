package stats

import (
	"context"
	"time"

	"github.com/sin1227488801/rct/internal/model"
	"github.com/sin1227488801/rct/internal/store"
)

// Report contains precomputed data for stats rendering.
type Report struct {
	Entries  []model.LogEntry
	Summary  Summary
	WPMCurve []float64
	AccCurve []float64
}

// BuildReport loads the filtered typing log and prepares it for rendering.
// Curves run chronologically, one point per attempt, before smoothing.
func BuildReport(ctx context.Context, st *store.Store, filter model.StatsFilter, opts Options) (Report, error) {
	entries, err := st.ListEntries(ctx, filter)
	if err != nil {
		return Report{}, err
	}
	if filter.QualityOnly {
		entries = FilterQuality(entries, opts.Quality)
	}
	if filter.Last > 0 && len(entries) > filter.Last {
		entries = entries[len(entries)-filter.Last:]
	}

	report := Report{
		Entries: entries,
		Summary: Aggregate(entries, opts),
	}
	report.WPMCurve, report.AccCurve = attemptCurves(entries)
	return report, nil
}

func attemptCurves(entries []model.LogEntry) (wpm, acc []float64) {
	wpm = make([]float64, 0, len(entries))
	acc = make([]float64, 0, len(entries))
	for _, entry := range entries {
		result, ok := EntryResult(entry)
		if !ok {
			continue
		}
		wpm = append(wpm, result.WordsPerMinute())
		acc = append(acc, result.Accuracy())
	}
	return wpm, acc
}

// MovingAverage computes a rolling mean over the provided window size.
func MovingAverage(values []float64, window int) []float64 {
	if window <= 1 || len(values) == 0 {
		out := make([]float64, len(values))
		copy(out, values)
		return out
	}
	out := make([]float64, len(values))
	var sum float64
	for i := 0; i < len(values); i++ {
		sum += values[i]
		if i >= window {
			sum -= values[i-window]
		}
		den := float64(i + 1)
		if i >= window {
			den = float64(window)
		}
		out[i] = sum / den
	}
	return out
}

// SessionGapFromMinutes converts a configured gap to Options, keeping the
// default when unset.
func SessionGapFromMinutes(minutes int) Options {
	if minutes <= 0 {
		return Options{}
	}
	return Options{SessionGap: time.Duration(minutes) * time.Minute}
}
