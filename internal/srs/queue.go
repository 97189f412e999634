package srs

import (
	"errors"
	"fmt"
	"sort"
	"time"
)

// ErrInvalidLimit is returned when a schedule is requested with a daily
// limit below one.
var ErrInvalidLimit = errors.New("srs: daily limit must be at least 1")

// DateLayout is the civil-date key format used by OptimizeSchedule.
const DateLayout = "2006-01-02"

// SelectDue returns the items due for review at now, most overdue first,
// truncated to limit. Ties keep their input order. The input slice is not
// mutated; a limit below one yields an empty selection.
func SelectDue(items []ReviewItem, now time.Time, limit int) []ReviewItem {
	if limit <= 0 {
		return nil
	}

	due := make([]ReviewItem, 0, len(items))
	for _, item := range items {
		if item.IsDue(now) {
			due = append(due, item)
		}
	}

	sort.SliceStable(due, func(i, j int) bool {
		return due[i].OverdueDays(now) > due[j].OverdueDays(now)
	})

	if len(due) > limit {
		due = due[:limit]
	}
	return due
}

// OptimizeSchedule spreads items over consecutive calendar days starting at
// now's date, filling each day up to dailyLimit before advancing to the
// next. Items are taken most overdue first (the SelectDue ordering) and none
// are dropped. Keys use DateLayout.
func OptimizeSchedule(items []ReviewItem, now time.Time, dailyLimit int) (map[string][]ReviewItem, error) {
	if dailyLimit < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidLimit, dailyLimit)
	}

	ordered := make([]ReviewItem, len(items))
	copy(ordered, items)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].OverdueDays(now) > ordered[j].OverdueDays(now)
	})

	schedule := make(map[string][]ReviewItem)
	day := now
	for len(ordered) > 0 {
		n := dailyLimit
		if n > len(ordered) {
			n = len(ordered)
		}
		key := day.Format(DateLayout)
		schedule[key] = append(schedule[key], ordered[:n]...)
		ordered = ordered[n:]
		day = day.AddDate(0, 0, 1)
	}
	return schedule, nil
}
