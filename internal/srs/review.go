package srs

import "time"

const (
	// InitialEase is the ease factor assigned on first encounter.
	InitialEase = 2.5

	// MinEase and MaxEase bound the ease factor on every update.
	MinEase = 1.3
	MaxEase = 2.5

	// InitialIntervalDays is the interval assigned on first encounter.
	InitialIntervalDays = 1
)

// ReviewItem holds the spaced repetition state for one (learner, opening) pair.
// It is created on the first training encounter and mutated only by
// CalculateNextReview; the historical record persists for the life of the pair.
type ReviewItem struct {
	UserID       string    `json:"user_id"`
	OpeningID    string    `json:"opening_id"`
	LastSeen     time.Time `json:"last_seen"`
	NextReview   time.Time `json:"next_review"`
	IntervalDays int       `json:"interval_days"`
	EaseFactor   float64   `json:"ease_factor"`
	Repetitions  int       `json:"repetitions"`
	Lapses       int       `json:"lapses"`
}

// NewReviewItem creates the review state for a first training encounter.
func NewReviewItem(userID, openingID string, now time.Time) ReviewItem {
	return ReviewItem{
		UserID:       userID,
		OpeningID:    openingID,
		LastSeen:     now,
		NextReview:   now.AddDate(0, 0, InitialIntervalDays),
		IntervalDays: InitialIntervalDays,
		EaseFactor:   InitialEase,
	}
}

// IsDue reports whether the item is at or past its scheduled review time.
func (r ReviewItem) IsDue(now time.Time) bool {
	return !now.Before(r.NextReview)
}

// OverdueDays returns how many days past due the item is. Returns 0 if not
// yet due.
func (r ReviewItem) OverdueDays(now time.Time) float64 {
	if now.Before(r.NextReview) {
		return 0
	}
	return now.Sub(r.NextReview).Hours() / 24.0
}

// DaysUntilReview returns the number of days until the next review.
// Returns 0 if already due.
func (r ReviewItem) DaysUntilReview(now time.Time) int {
	if r.IsDue(now) {
		return 0
	}
	return int(r.NextReview.Sub(now).Hours()/24.0) + 1
}
