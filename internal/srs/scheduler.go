package srs

import (
	"fmt"
	"math"
	"time"
)

// passingScore is the minimum SM-2 score counted as a successful recall.
const passingScore = 3

// lapseDamping shrinks interval growth for items with a lapse history.
const lapseDamping = 0.8

// CalculateNextReview applies one review outcome to an item and returns the
// updated state. The input is not mutated; callers persist the returned value.
//
// Simplified SM-2: the ease factor is recomputed on every call (pass or
// fail), failures reset the repetition streak and the interval to one day,
// and successes walk the 1-day / 6-day / interval*ease progression. Items
// with lapses grow their intervals more slowly.
func CalculateNextReview(item ReviewItem, quality Quality, now time.Time) (ReviewItem, error) {
	if !quality.IsValid() {
		return ReviewItem{}, fmt.Errorf("%w: %d", ErrInvalidQuality, int(quality))
	}

	score := quality.Score()
	item.EaseFactor = NextEase(item.EaseFactor, score)

	if score < passingScore {
		item.IntervalDays = 1
		item.Repetitions = 0
		if quality == Again {
			item.Lapses++
		}
	} else {
		switch item.Repetitions {
		case 0:
			item.IntervalDays = 1
		case 1:
			item.IntervalDays = 6
		default:
			item.IntervalDays = int(math.Round(float64(item.IntervalDays) * item.EaseFactor))
		}
		item.Repetitions++
	}

	if item.Lapses > 0 {
		damped := float64(item.IntervalDays) * math.Pow(lapseDamping, float64(item.Lapses))
		item.IntervalDays = int(math.Round(damped))
	}

	// Rounding can produce a 0-day interval; never schedule same-day reviews.
	if item.IntervalDays < 1 {
		item.IntervalDays = 1
	}

	item.LastSeen = now
	item.NextReview = now.AddDate(0, 0, item.IntervalDays)
	return item, nil
}
