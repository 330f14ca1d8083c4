package stats

import (
	"testing"
	"time"

	"github.com/sin1227488801/rct/internal/model"
	"github.com/sin1227488801/rct/internal/typing"
)

var statsEpoch = time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

func entryAt(minutes int, lang string, total, correct int, durationMs int64) model.LogEntry {
	start := statsEpoch.Add(time.Duration(minutes) * time.Minute)
	return model.LogEntry{
		AttemptID:   "attempt",
		UserID:      "alice",
		Lang:        lang,
		StudyItemID: "item",
		StartedAt:   start,
		EndedAt:     start.Add(time.Duration(durationMs) * time.Millisecond),
		Total:       total,
		Correct:     correct,
		DurationMs:  durationMs,
	}
}

func TestAggregateEmpty(t *testing.T) {
	summary := Aggregate(nil, Options{})
	if summary.TotalAttempts != 0 || summary.SessionCount != 0 {
		t.Fatalf("expected zero summary, got %+v", summary)
	}
	if summary.BestLanguage != "" || summary.WorstLanguage != "" {
		t.Fatalf("expected no best/worst language, got %+v", summary)
	}
}

func TestAggregateSessionGrouping(t *testing.T) {
	// Attempts at minutes 0, 2, 4, 10: the 6-minute gap between 4 and 10
	// exceeds the 5-minute threshold, so two practice sessions.
	entries := []model.LogEntry{
		entryAt(0, "go", 100, 90, 30000),
		entryAt(2, "go", 100, 90, 30000),
		entryAt(4, "go", 100, 90, 30000),
		entryAt(10, "go", 100, 90, 30000),
	}
	summary := Aggregate(entries, Options{})
	if summary.TotalAttempts != 4 {
		t.Fatalf("expected 4 attempts, got %d", summary.TotalAttempts)
	}
	if summary.SessionCount != 2 {
		t.Fatalf("expected 2 sessions, got %d", summary.SessionCount)
	}
}

func TestAggregateSessionGapBoundary(t *testing.T) {
	// A gap of exactly 5 minutes does not split the session.
	entries := []model.LogEntry{
		entryAt(0, "go", 100, 90, 30000),
		entryAt(5, "go", 100, 90, 30000),
	}
	if got := Aggregate(entries, Options{}).SessionCount; got != 1 {
		t.Fatalf("expected 1 session at exact gap, got %d", got)
	}

	overridden := Aggregate(entries, Options{SessionGap: 4 * time.Minute})
	if overridden.SessionCount != 2 {
		t.Fatalf("expected 2 sessions with shorter gap, got %d", overridden.SessionCount)
	}
}

func TestAggregateUnorderedInput(t *testing.T) {
	entries := []model.LogEntry{
		entryAt(10, "go", 100, 90, 30000),
		entryAt(0, "go", 100, 90, 30000),
		entryAt(2, "go", 100, 90, 30000),
	}
	summary := Aggregate(entries, Options{})
	if summary.SessionCount != 2 {
		t.Fatalf("expected chronological grouping of unordered input, got %d sessions", summary.SessionCount)
	}
}

func TestAggregateReductions(t *testing.T) {
	entries := []model.LogEntry{
		entryAt(0, "go", 100, 80, 60000),  // 80%, 16 WPM
		entryAt(1, "go", 100, 100, 30000), // 100%, 40 WPM
	}
	summary := Aggregate(entries, Options{})
	if summary.AverageAccuracy != 90 {
		t.Fatalf("expected avg accuracy 90, got %v", summary.AverageAccuracy)
	}
	if summary.BestAccuracy != 100 {
		t.Fatalf("expected best accuracy 100, got %v", summary.BestAccuracy)
	}
	if summary.AverageWPM != 28 {
		t.Fatalf("expected avg WPM 28, got %v", summary.AverageWPM)
	}
	if summary.BestWPM != 40 {
		t.Fatalf("expected best WPM 40, got %v", summary.BestWPM)
	}
	if got := summary.TotalDuration.Milliseconds(); got != 90000 {
		t.Fatalf("expected total duration 90000ms, got %d", got)
	}
}

func TestAggregatePerLanguage(t *testing.T) {
	entries := []model.LogEntry{
		entryAt(0, "go", 100, 95, 30000),
		entryAt(1, "py", 100, 85, 30000),
		entryAt(2, "js", 100, 90, 30000),
		entryAt(3, "py", 100, 95, 30000),
	}
	summary := Aggregate(entries, Options{})
	if len(summary.Languages) != 3 {
		t.Fatalf("expected 3 languages, got %d", len(summary.Languages))
	}
	// Stable first-encounter order.
	if summary.Languages[0].Lang != "go" || summary.Languages[1].Lang != "py" || summary.Languages[2].Lang != "js" {
		t.Fatalf("unexpected language order: %+v", summary.Languages)
	}
	if summary.Languages[1].Attempts != 2 || summary.Languages[1].AverageAccuracy != 90 {
		t.Fatalf("unexpected py stats: %+v", summary.Languages[1])
	}
	if summary.BestLanguage != "go" {
		t.Fatalf("expected best language go, got %q", summary.BestLanguage)
	}
	// py and js tie at 90: worst keeps the first-encountered language.
	if summary.WorstLanguage != "py" {
		t.Fatalf("expected worst language py, got %q", summary.WorstLanguage)
	}
}

func TestAggregateDropsCorruptRows(t *testing.T) {
	// A row with correct > total cannot be rebuilt into a result. It must
	// not count toward attempts, dilute the averages, or anchor the
	// session-gap scan.
	entries := []model.LogEntry{
		entryAt(0, "go", 100, 90, 30000),
		entryAt(4, "go", 100, 120, 30000),
		entryAt(8, "go", 100, 80, 30000),
	}
	summary := Aggregate(entries, Options{})
	if summary.TotalAttempts != 2 {
		t.Fatalf("expected 2 attempts, got %d", summary.TotalAttempts)
	}
	if summary.AverageAccuracy != 85 {
		t.Fatalf("expected avg accuracy 85 over valid rows, got %v", summary.AverageAccuracy)
	}
	// The 8-minute gap between the two valid rows splits the session; the
	// corrupt row in between is not a bridge.
	if summary.SessionCount != 2 {
		t.Fatalf("expected 2 sessions, got %d", summary.SessionCount)
	}

	corruptOnly := Aggregate([]model.LogEntry{entryAt(0, "go", 100, 120, 30000)}, Options{})
	if corruptOnly.TotalAttempts != 0 || corruptOnly.SessionCount != 0 {
		t.Fatalf("expected zero summary for a corrupt-only log, got %+v", corruptOnly)
	}
}

func TestFilterQuality(t *testing.T) {
	entries := []model.LogEntry{
		entryAt(0, "go", 100, 95, 30000), // passes
		entryAt(1, "go", 100, 60, 30000), // accuracy too low
		entryAt(2, "go", 100, 95, 500),   // too fast
	}
	kept := FilterQuality(entries, typing.DefaultQualityPolicy())
	if len(kept) != 1 {
		t.Fatalf("expected 1 entry to pass quality gate, got %d", len(kept))
	}
	if kept[0].Correct != 95 || kept[0].DurationMs != 30000 {
		t.Fatalf("unexpected surviving entry: %+v", kept[0])
	}
}

func TestSnippetWeights(t *testing.T) {
	aggs := []model.SnippetAggregate{
		{StudyItemID: "easy", Attempts: 3, Total: 300, Correct: 300},
		{StudyItemID: "hard", Attempts: 3, Total: 300, Correct: 150},
	}
	weights := SnippetWeights(aggs, 2.0)
	if weights["easy"] != 1.0 {
		t.Fatalf("expected base weight for perfect snippet, got %v", weights["easy"])
	}
	if weights["hard"] != 2.0 {
		t.Fatalf("expected boosted weight for weak snippet, got %v", weights["hard"])
	}
	if SnippetWeights(aggs, 0) != nil {
		t.Fatalf("expected nil weights for zero factor")
	}
}
