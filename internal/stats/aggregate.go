// Package stats contains statistics calculations and reporting.
package stats

import (
	"math"
	"sort"
	"time"

	"github.com/sin1227488801/rct/internal/model"
	"github.com/sin1227488801/rct/internal/typing"
)

// DefaultSessionGap is the idle time between attempt starts that separates
// two practice sessions.
const DefaultSessionGap = 5 * time.Minute

// Options tunes aggregation and reporting; zero values fall back to the
// defaults.
type Options struct {
	SessionGap time.Duration
	Quality    typing.QualityPolicy
}

// LanguageStats summarizes one language's attempts.
type LanguageStats struct {
	Lang            string
	Attempts        int
	AverageAccuracy float64
}

// Summary aggregates a user's typing log.
type Summary struct {
	TotalAttempts   int
	SessionCount    int
	AverageAccuracy float64
	BestAccuracy    float64
	AverageWPM      float64
	BestWPM         float64
	TotalDuration   typing.Duration
	Languages       []LanguageStats
	BestLanguage    string
	WorstLanguage   string
}

// Aggregate reduces a typing log into a Summary. Pure over an immutable
// snapshot; the input slice is never mutated. An empty log yields a zero
// Summary, not an error. Rows that cannot be rebuilt into a valid result
// are dropped before any counting or session grouping.
func Aggregate(entries []model.LogEntry, opts Options) Summary {
	gap := opts.SessionGap
	if gap <= 0 {
		gap = DefaultSessionGap
	}

	ordered := make([]model.LogEntry, 0, len(entries))
	for _, entry := range entries {
		if _, ok := EntryResult(entry); ok {
			ordered = append(ordered, entry)
		}
	}
	if len(ordered) == 0 {
		return Summary{}
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].StartedAt.Before(ordered[j].StartedAt)
	})

	summary := Summary{TotalAttempts: len(ordered)}
	var accSum, wpmSum float64
	langOrder := []string{}
	langAcc := map[string]float64{}
	langCount := map[string]int{}

	for i, entry := range ordered {
		result, _ := EntryResult(entry)
		acc := result.Accuracy()
		wpm := result.WordsPerMinute()
		accSum += acc
		wpmSum += wpm
		if acc > summary.BestAccuracy {
			summary.BestAccuracy = acc
		}
		if wpm > summary.BestWPM {
			summary.BestWPM = wpm
		}
		summary.TotalDuration = summary.TotalDuration.Add(result.Duration())

		if i == 0 || entry.StartedAt.Sub(ordered[i-1].StartedAt) > gap {
			summary.SessionCount++
		}

		if _, seen := langCount[entry.Lang]; !seen {
			langOrder = append(langOrder, entry.Lang)
		}
		langAcc[entry.Lang] += acc
		langCount[entry.Lang]++
	}

	count := float64(summary.TotalAttempts)
	summary.AverageAccuracy = round2(accSum / count)
	summary.AverageWPM = round2(wpmSum / count)

	summary.Languages = make([]LanguageStats, 0, len(langOrder))
	for _, lang := range langOrder {
		summary.Languages = append(summary.Languages, LanguageStats{
			Lang:            lang,
			Attempts:        langCount[lang],
			AverageAccuracy: round2(langAcc[lang] / float64(langCount[lang])),
		})
	}
	summary.BestLanguage, summary.WorstLanguage = bestWorstLanguage(summary.Languages)
	return summary
}

// bestWorstLanguage picks the extremes by average accuracy; ties keep the
// first-encountered language.
func bestWorstLanguage(langs []LanguageStats) (best, worst string) {
	if len(langs) == 0 {
		return "", ""
	}
	bestIdx, worstIdx := 0, 0
	for i, ls := range langs[1:] {
		idx := i + 1
		if ls.AverageAccuracy > langs[bestIdx].AverageAccuracy {
			bestIdx = idx
		}
		if ls.AverageAccuracy < langs[worstIdx].AverageAccuracy {
			worstIdx = idx
		}
	}
	return langs[bestIdx].Lang, langs[worstIdx].Lang
}

// FilterQuality keeps only entries whose result passes the quality gate.
// Aggregate never filters on its own; callers that publish statistics
// apply this first.
func FilterQuality(entries []model.LogEntry, policy typing.QualityPolicy) []model.LogEntry {
	out := make([]model.LogEntry, 0, len(entries))
	for _, entry := range entries {
		result, ok := EntryResult(entry)
		if !ok {
			continue
		}
		if result.MeetsQuality(policy) {
			out = append(out, entry)
		}
	}
	return out
}

// EntryResult rebuilds the engine Result from a persisted entry, so every
// derived metric comes from one implementation.
func EntryResult(entry model.LogEntry) (typing.Result, bool) {
	duration, err := typing.DurationFromMillis(entry.DurationMs)
	if err != nil {
		return typing.Result{}, false
	}
	result, err := typing.NewResult(entry.Total, entry.Correct, duration)
	if err != nil {
		return typing.Result{}, false
	}
	return result, true
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
