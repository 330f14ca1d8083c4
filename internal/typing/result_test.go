package typing

import (
	"errors"
	"testing"
	"time"
)

func mustDuration(t *testing.T, ms int64) Duration {
	t.Helper()
	d, err := DurationFromMillis(ms)
	if err != nil {
		t.Fatalf("duration from %dms: %v", ms, err)
	}
	return d
}

func TestNewResultValidation(t *testing.T) {
	d := mustDuration(t, 5000)
	cases := []struct {
		name    string
		total   int
		correct int
	}{
		{"negative total", -1, 0},
		{"negative correct", 10, -1},
		{"correct exceeds total", 10, 11},
	}
	for _, tc := range cases {
		_, err := NewResult(tc.total, tc.correct, d)
		if err == nil {
			t.Fatalf("%s: expected validation error", tc.name)
		}
		var vErr *ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("%s: expected ValidationError, got %v", tc.name, err)
		}
	}
}

func TestAccuracyRounding(t *testing.T) {
	d := mustDuration(t, 10000)
	r, err := NewResult(11, 9, d)
	if err != nil {
		t.Fatalf("new result: %v", err)
	}
	if got := r.Accuracy(); got != 81.82 {
		t.Fatalf("expected 81.82, got %v", got)
	}
	if got := r.ErrorRate(); got != 18.18 {
		t.Fatalf("expected error rate 18.18, got %v", got)
	}
}

func TestAccuracyBounds(t *testing.T) {
	d := mustDuration(t, 10000)
	for total := 0; total <= 20; total++ {
		for correct := 0; correct <= total; correct++ {
			r, err := NewResult(total, correct, d)
			if err != nil {
				t.Fatalf("new result %d/%d: %v", correct, total, err)
			}
			acc := r.Accuracy()
			if acc < 0 || acc > 100 {
				t.Fatalf("accuracy out of range for %d/%d: %v", correct, total, acc)
			}
			if total > 0 && correct == total && acc != 100 {
				t.Fatalf("expected 100%% for %d/%d, got %v", correct, total, acc)
			}
			if total > 0 && correct < total && acc == 100 {
				t.Fatalf("expected less than 100%% for %d/%d", correct, total)
			}
		}
	}
}

func TestAccuracyZeroTotal(t *testing.T) {
	r, err := NewResult(0, 0, mustDuration(t, 1000))
	if err != nil {
		t.Fatalf("new result: %v", err)
	}
	if got := r.Accuracy(); got != 0 {
		t.Fatalf("expected 0 accuracy for empty target, got %v", got)
	}
}

func TestWordsPerMinute(t *testing.T) {
	r, err := NewResult(250, 250, mustDuration(t, 60000))
	if err != nil {
		t.Fatalf("new result: %v", err)
	}
	if got := r.WordsPerMinute(); got != 50.0 {
		t.Fatalf("expected 50 WPM, got %v", got)
	}
}

func TestWordsPerMinuteZeroDuration(t *testing.T) {
	r, err := NewResult(100, 100, mustDuration(t, 0))
	if err != nil {
		t.Fatalf("new result: %v", err)
	}
	if got := r.WordsPerMinute(); got != 0 {
		t.Fatalf("expected 0 WPM for zero duration, got %v", got)
	}
}

func TestWordsPerMinuteMonotonic(t *testing.T) {
	d := mustDuration(t, 30000)
	prev := -1.0
	for correct := 0; correct <= 100; correct += 10 {
		r, err := NewResult(100, correct, d)
		if err != nil {
			t.Fatalf("new result: %v", err)
		}
		wpm := r.WordsPerMinute()
		if wpm < prev {
			t.Fatalf("WPM decreased when correct grew: %v -> %v", prev, wpm)
		}
		prev = wpm
	}

	prev = -1.0
	for ms := int64(120000); ms >= 10000; ms -= 10000 {
		r, err := NewResult(100, 80, mustDuration(t, ms))
		if err != nil {
			t.Fatalf("new result: %v", err)
		}
		wpm := r.WordsPerMinute()
		if wpm < prev {
			t.Fatalf("WPM decreased when duration shrank: %v -> %v", prev, wpm)
		}
		prev = wpm
	}
}

func TestResultFromComparison(t *testing.T) {
	r, err := ResultFromComparison("Hello Wrold", "Hello World", mustDuration(t, 10000))
	if err != nil {
		t.Fatalf("from comparison: %v", err)
	}
	if r.Total() != 11 || r.Correct() != 9 || r.Incorrect() != 2 {
		t.Fatalf("unexpected counts: total=%d correct=%d incorrect=%d", r.Total(), r.Correct(), r.Incorrect())
	}
	if got := r.Accuracy(); got != 81.82 {
		t.Fatalf("expected 81.82, got %v", got)
	}
}

func TestMeetsQualityStandards(t *testing.T) {
	cases := []struct {
		name    string
		total   int
		correct int
		ms      int64
		want    bool
	}{
		{"accurate and reasonable", 100, 90, 30000, true},
		{"exactly 80 percent", 100, 80, 30000, true},
		{"inaccurate", 100, 79, 30000, false},
		{"too fast", 100, 95, 500, false},
		{"too slow", 100, 95, 3600000, false},
	}
	for _, tc := range cases {
		r, err := NewResult(tc.total, tc.correct, mustDuration(t, tc.ms))
		if err != nil {
			t.Fatalf("%s: new result: %v", tc.name, err)
		}
		if got := r.MeetsQualityStandards(); got != tc.want {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, got)
		}
	}
}

func TestMeetsQualityOverride(t *testing.T) {
	r, err := NewResult(100, 70, mustDuration(t, 500))
	if err != nil {
		t.Fatalf("new result: %v", err)
	}
	if r.MeetsQualityStandards() {
		t.Fatalf("expected default policy to reject")
	}
	policy := QualityPolicy{MinAccuracy: 60, ReasonableMin: 100 * time.Millisecond, ReasonableMax: time.Hour}
	if !r.MeetsQuality(policy) {
		t.Fatalf("expected relaxed policy to accept")
	}
}
