package typing

import "time"

// Session is one practice attempt. It starts Active and transitions to
// Completed exactly once; transition methods return a new value instead of
// mutating, so a stored session can never be half-completed. The clock is
// always passed in by the caller.
type Session struct {
	id          string
	userID      string
	studyItemID string
	startedAt   time.Time
	completedAt time.Time
	result      Result
	completed   bool
}

// StartSession begins a new attempt at the given instant.
func StartSession(id, userID, studyItemID string, now time.Time) (Session, error) {
	if id == "" {
		return Session{}, validationErr("session id", "must not be empty")
	}
	if userID == "" {
		return Session{}, validationErr("user id", "must not be empty")
	}
	if studyItemID == "" {
		return Session{}, validationErr("study item id", "must not be empty")
	}
	return Session{
		id:          id,
		userID:      userID,
		studyItemID: studyItemID,
		startedAt:   now,
	}, nil
}

// ID returns the session identity.
func (s Session) ID() string { return s.id }

// UserID returns the owning user.
func (s Session) UserID() string { return s.userID }

// StudyItemID returns the practiced study item.
func (s Session) StudyItemID() string { return s.studyItemID }

// StartedAt returns the start instant.
func (s Session) StartedAt() time.Time { return s.startedAt }

// Completed reports whether the session reached its terminal state.
func (s Session) Completed() bool { return s.completed }

// CompletedAt returns the completion instant and whether it is set.
func (s Session) CompletedAt() (time.Time, bool) {
	return s.completedAt, s.completed
}

// CurrentDuration returns the elapsed time at now while active, or the
// frozen duration once completed. Safe to poll; never negative.
func (s Session) CurrentDuration(now time.Time) Duration {
	end := now
	if s.completed {
		end = s.completedAt
	}
	ms := end.Sub(s.startedAt).Milliseconds()
	if ms < 0 {
		ms = 0
	}
	return Duration{ms: ms}
}

// Complete scores the typed text against the target and freezes the result.
func (s Session) Complete(typed, target string, now time.Time) (Session, error) {
	if s.completed {
		return s, ErrSessionCompleted
	}
	duration, err := DurationBetween(s.startedAt, now)
	if err != nil {
		return s, err
	}
	result, err := ResultFromComparison(typed, target, duration)
	if err != nil {
		return s, err
	}
	return s.withResult(result, now), nil
}

// CompleteWithResult freezes a result the caller already computed, e.g. from
// the live feedback loop, avoiding a recomparison.
func (s Session) CompleteWithResult(result Result, now time.Time) (Session, error) {
	if s.completed {
		return s, ErrSessionCompleted
	}
	return s.withResult(result, now), nil
}

func (s Session) withResult(result Result, now time.Time) Session {
	out := s
	out.result = result
	out.completedAt = now
	out.completed = true
	return out
}

// Result returns the frozen outcome; it does not exist while active.
func (s Session) Result() (Result, error) {
	if !s.completed {
		return Result{}, ErrSessionActive
	}
	return s.result, nil
}

// BelongsToUser reports whether the session is owned by the given user.
func (s Session) BelongsToUser(userID string) bool {
	return s.userID == userID
}

// IsForStudyItem reports whether the session practices the given item.
func (s Session) IsForStudyItem(studyItemID string) bool {
	return s.studyItemID == studyItemID
}
