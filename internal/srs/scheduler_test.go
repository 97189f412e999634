package srs

import (
	"errors"
	"testing"
	"time"
)

func testNow() time.Time {
	return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
}

func newItem() ReviewItem {
	return NewReviewItem("user-1", "sicilian-najdorf", testNow())
}

func TestNewReviewItem_Defaults(t *testing.T) {
	item := newItem()

	if item.EaseFactor != InitialEase {
		t.Errorf("EaseFactor = %v, want %v", item.EaseFactor, InitialEase)
	}
	if item.IntervalDays != 1 {
		t.Errorf("IntervalDays = %d, want 1", item.IntervalDays)
	}
	if item.Repetitions != 0 || item.Lapses != 0 {
		t.Errorf("Repetitions/Lapses = %d/%d, want 0/0", item.Repetitions, item.Lapses)
	}
	expectedNext := testNow().AddDate(0, 0, 1)
	if !item.NextReview.Equal(expectedNext) {
		t.Errorf("NextReview = %v, want %v", item.NextReview, expectedNext)
	}
}

func TestCalculateNextReview_GoodProgression(t *testing.T) {
	// First two successes use the fixed 1-day and 6-day intervals; the
	// third multiplies by the updated ease factor. "good" nudges ease down
	// by 0.14 per review (2.5 -> 2.36 -> 2.22 -> 2.08), so round(6*2.08)=12.
	item := newItem()
	now := testNow()

	item, err := CalculateNextReview(item, Good, now)
	if err != nil {
		t.Fatalf("CalculateNextReview: %v", err)
	}
	if item.IntervalDays != 1 || item.Repetitions != 1 {
		t.Errorf("after 1st good: interval=%d reps=%d, want 1/1", item.IntervalDays, item.Repetitions)
	}

	now = now.AddDate(0, 0, item.IntervalDays)
	item, err = CalculateNextReview(item, Good, now)
	if err != nil {
		t.Fatalf("CalculateNextReview: %v", err)
	}
	if item.IntervalDays != 6 || item.Repetitions != 2 {
		t.Errorf("after 2nd good: interval=%d reps=%d, want 6/2", item.IntervalDays, item.Repetitions)
	}

	now = now.AddDate(0, 0, item.IntervalDays)
	item, err = CalculateNextReview(item, Good, now)
	if err != nil {
		t.Fatalf("CalculateNextReview: %v", err)
	}
	if item.IntervalDays != 12 || item.Repetitions != 3 {
		t.Errorf("after 3rd good: interval=%d reps=%d, want 12/3", item.IntervalDays, item.Repetitions)
	}
	expectedNext := now.AddDate(0, 0, 12)
	if !item.NextReview.Equal(expectedNext) {
		t.Errorf("NextReview = %v, want %v", item.NextReview, expectedNext)
	}
	if !item.LastSeen.Equal(now) {
		t.Errorf("LastSeen = %v, want %v", item.LastSeen, now)
	}
}

func TestCalculateNextReview_AgainResets(t *testing.T) {
	item := newItem()
	now := testNow()

	var err error
	for i := 0; i < 3; i++ {
		item, err = CalculateNextReview(item, Good, now)
		if err != nil {
			t.Fatalf("CalculateNextReview: %v", err)
		}
		now = now.AddDate(0, 0, item.IntervalDays)
	}

	item, err = CalculateNextReview(item, Again, now)
	if err != nil {
		t.Fatalf("CalculateNextReview: %v", err)
	}
	if item.Repetitions != 0 {
		t.Errorf("Repetitions = %d, want 0", item.Repetitions)
	}
	if item.IntervalDays != 1 {
		t.Errorf("IntervalDays = %d, want 1", item.IntervalDays)
	}
	if item.Lapses != 1 {
		t.Errorf("Lapses = %d, want 1", item.Lapses)
	}
}

func TestCalculateNextReview_HardFailsWithoutLapse(t *testing.T) {
	item := newItem()

	item, err := CalculateNextReview(item, Hard, testNow())
	if err != nil {
		t.Fatalf("CalculateNextReview: %v", err)
	}
	if item.Repetitions != 0 {
		t.Errorf("Repetitions = %d, want 0", item.Repetitions)
	}
	if item.IntervalDays != 1 {
		t.Errorf("IntervalDays = %d, want 1", item.IntervalDays)
	}
	if item.Lapses != 0 {
		t.Errorf("Lapses = %d, want 0 (hard is not a lapse)", item.Lapses)
	}
}

func TestCalculateNextReview_LapsePenaltyDampensGrowth(t *testing.T) {
	item := newItem()
	item.Lapses = 2
	item.Repetitions = 2
	item.IntervalDays = 10
	item.EaseFactor = 2.0

	item, err := CalculateNextReview(item, Good, testNow())
	if err != nil {
		t.Fatalf("CalculateNextReview: %v", err)
	}
	// Ease drops to 1.86; round(10*1.86) = 19, then round(19*0.8^2) = 12.
	if item.IntervalDays != 12 {
		t.Errorf("IntervalDays = %d, want 12", item.IntervalDays)
	}
}

func TestCalculateNextReview_IntervalNeverBelowOne(t *testing.T) {
	item := newItem()
	item.Lapses = 10 // 0.8^10 rounds any small interval to 0

	for _, q := range []Quality{Again, Hard, Good, Easy} {
		updated, err := CalculateNextReview(item, q, testNow())
		if err != nil {
			t.Fatalf("CalculateNextReview(%v): %v", q, err)
		}
		if updated.IntervalDays < 1 {
			t.Errorf("quality %v: IntervalDays = %d, want >= 1", q, updated.IntervalDays)
		}
	}
}

func TestCalculateNextReview_EaseStaysInBounds(t *testing.T) {
	for _, start := range []float64{MinEase, 1.7, 2.1, MaxEase} {
		item := newItem()
		item.EaseFactor = start
		now := testNow()

		// Hammer each quality repeatedly; the ease must stay clamped.
		for _, q := range []Quality{Again, Again, Again, Easy, Easy, Easy, Hard, Good} {
			var err error
			item, err = CalculateNextReview(item, q, now)
			if err != nil {
				t.Fatalf("CalculateNextReview: %v", err)
			}
			if item.EaseFactor < MinEase || item.EaseFactor > MaxEase {
				t.Fatalf("start %v quality %v: ease %v out of [%v, %v]",
					start, q, item.EaseFactor, MinEase, MaxEase)
			}
			now = now.AddDate(0, 0, item.IntervalDays)
		}
	}
}

func TestCalculateNextReview_InvalidQuality(t *testing.T) {
	_, err := CalculateNextReview(newItem(), Quality(42), testNow())
	if !errors.Is(err, ErrInvalidQuality) {
		t.Errorf("err = %v, want ErrInvalidQuality", err)
	}
}

func TestNextEase_MonotonicInScore(t *testing.T) {
	for _, oldEase := range []float64{1.3, 1.8, 2.2, 2.5} {
		prev := -1.0
		for score := 0; score <= 5; score++ {
			ease := NextEase(oldEase, score)
			if ease < prev {
				t.Errorf("oldEase %v: ease(%d)=%v < ease(%d)=%v",
					oldEase, score, ease, score-1, prev)
			}
			prev = ease
		}
	}
}

func TestParseQuality(t *testing.T) {
	for _, want := range []Quality{Again, Hard, Good, Easy} {
		got, err := ParseQuality(want.String())
		if err != nil {
			t.Fatalf("ParseQuality(%q): %v", want.String(), err)
		}
		if got != want {
			t.Errorf("ParseQuality(%q) = %v, want %v", want.String(), got, want)
		}
	}

	if _, err := ParseQuality("perfect"); !errors.Is(err, ErrInvalidQuality) {
		t.Errorf("err = %v, want ErrInvalidQuality", err)
	}
}
