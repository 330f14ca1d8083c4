// Package model defines shared data structures.
package model

import "time"

// PracticeConfig defines practice settings.
type PracticeConfig struct {
	UserID     string
	Lang       string
	FocusWeak  bool
	WeakFactor float64
	WeakWindow int
}

// StatsFilter defines filters and options for stats output.
type StatsFilter struct {
	UserID      string
	Lang        string
	Since       *time.Time
	Last        int
	CurveWindow int
	QualityOnly bool
}

// StudyItem is one code snippet to practice, loaded from a snippet book.
type StudyItem struct {
	ID    string
	Lang  string
	Title string
	Text  string
}

// LogEntry records one completed typing attempt. Immutable once written;
// one row per attempt.
type LogEntry struct {
	ID          int64
	AttemptID   string
	UserID      string
	Lang        string
	StudyItemID string
	StartedAt   time.Time
	EndedAt     time.Time
	Total       int
	Correct     int
	DurationMs  int64
}

// SnippetAggregate accumulates attempt outcomes per study item, used for
// weakness-weighted snippet selection and reporting.
type SnippetAggregate struct {
	StudyItemID string
	Attempts    int
	Total       int
	Correct     int
}
