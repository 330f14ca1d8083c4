package tui

import (
	"strings"
	"testing"
	"time"

	"github.com/sin1227488801/rct/internal/stats"
	"github.com/sin1227488801/rct/internal/typing"
)

func TestLiveSegmentBeforeStart(t *testing.T) {
	got := liveSegment("", "hello", typing.Session{}, false)
	if !strings.Contains(got, "start typing") {
		t.Fatalf("liveSegment = %q, want start prompt", got)
	}
}

func TestLiveSegmentWhileTyping(t *testing.T) {
	start := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	session, err := typing.StartSession("a", "user", "item", start)
	if err != nil {
		t.Fatalf("failed to start session: %v", err)
	}
	got := liveSegment("hel", "hello", session, true)
	if !strings.Contains(got, "wpm") || !strings.Contains(got, "acc") {
		t.Fatalf("liveSegment = %q, want pace and accuracy", got)
	}
	if !strings.Contains(got, " 60%") {
		t.Fatalf("liveSegment = %q, want 60%% progress", got)
	}
}

func TestLastSegmentQuality(t *testing.T) {
	duration, err := typing.DurationFromMillis(60000)
	if err != nil {
		t.Fatalf("failed to build duration: %v", err)
	}
	good, err := typing.NewResult(100, 95, duration)
	if err != nil {
		t.Fatalf("failed to build result: %v", err)
	}
	if got := lastSegment(good, true); strings.Contains(got, "below standard") {
		t.Fatalf("lastSegment = %q, should not flag a quality attempt", got)
	}
	bad, err := typing.NewResult(100, 50, duration)
	if err != nil {
		t.Fatalf("failed to build result: %v", err)
	}
	if got := lastSegment(bad, false); !strings.Contains(got, "below standard") {
		t.Fatalf("lastSegment = %q, want quality warning", got)
	}
}

func TestAllTimeSegment(t *testing.T) {
	got := allTimeSegment(stats.Summary{
		TotalAttempts:   12,
		AverageWPM:      41.5,
		AverageAccuracy: 93.25,
	})
	for _, want := range []string{"41.5 wpm", "93.25% acc", "12 attempts"} {
		if !strings.Contains(got, want) {
			t.Fatalf("allTimeSegment = %q, missing %q", got, want)
		}
	}
}
