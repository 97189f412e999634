package session

import "time"

// OpeningResult is the per-opening outcome of a completed session.
type OpeningResult struct {
	OpeningID    string
	Attempts     int
	Correct      int
	Accuracy     float64
	AvgTimeSecs  float64
	IntervalDays int
	NextReview   time.Time
}

// Summary reports a completed session back to the UI.
type Summary struct {
	SessionID   string
	Difficulty  float64
	StartedAt   time.Time
	FinishedAt  time.Time
	Questions   int
	Correct     int
	Accuracy    float64
	SkillBefore float64
	SkillAfter  float64
	Openings    []OpeningResult
}

// Duration is the wall-clock length of the session.
func (s *Summary) Duration() time.Duration {
	return s.FinishedAt.Sub(s.StartedAt)
}
