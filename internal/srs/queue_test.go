package srs

import (
	"errors"
	"testing"
	"time"
)

// itemDueDaysAgo builds an item whose review came due `daysAgo` days before now.
func itemDueDaysAgo(id string, daysAgo int, now time.Time) ReviewItem {
	item := NewReviewItem("user-1", id, now.AddDate(0, 0, -daysAgo-1))
	item.NextReview = now.AddDate(0, 0, -daysAgo)
	return item
}

func TestSelectDue_FiltersAndOrders(t *testing.T) {
	now := testNow()
	items := []ReviewItem{
		itemDueDaysAgo("ruy-lopez", 1, now),
		itemDueDaysAgo("caro-kann", 5, now),
		{OpeningID: "kings-indian", NextReview: now.AddDate(0, 0, 3)}, // not due
		itemDueDaysAgo("french-defense", 3, now),
	}

	due := SelectDue(items, now, 10)

	if len(due) != 3 {
		t.Fatalf("len(due) = %d, want 3", len(due))
	}
	wantOrder := []string{"caro-kann", "french-defense", "ruy-lopez"}
	for i, id := range wantOrder {
		if due[i].OpeningID != id {
			t.Errorf("due[%d] = %s, want %s", i, due[i].OpeningID, id)
		}
	}
	for _, item := range due {
		if item.NextReview.After(now) {
			t.Errorf("item %s not yet due was selected", item.OpeningID)
		}
	}
}

func TestSelectDue_RespectsLimit(t *testing.T) {
	now := testNow()
	var items []ReviewItem
	for i := 0; i < 8; i++ {
		items = append(items, itemDueDaysAgo("line", i, now))
	}

	due := SelectDue(items, now, 3)
	if len(due) != 3 {
		t.Errorf("len(due) = %d, want 3", len(due))
	}

	if got := SelectDue(items, now, 0); len(got) != 0 {
		t.Errorf("limit 0: len = %d, want 0", len(got))
	}
}

func TestSelectDue_DoesNotMutateInput(t *testing.T) {
	now := testNow()
	items := []ReviewItem{
		itemDueDaysAgo("a", 1, now),
		itemDueDaysAgo("b", 9, now),
		itemDueDaysAgo("c", 4, now),
	}

	SelectDue(items, now, 10)

	if items[0].OpeningID != "a" || items[1].OpeningID != "b" || items[2].OpeningID != "c" {
		t.Error("input slice order changed")
	}
}

func TestOptimizeSchedule_Buckets(t *testing.T) {
	now := testNow()
	var items []ReviewItem
	for i := 0; i < 25; i++ {
		items = append(items, itemDueDaysAgo("line", i, now))
	}

	schedule, err := OptimizeSchedule(items, now, 10)
	if err != nil {
		t.Fatalf("OptimizeSchedule: %v", err)
	}

	if len(schedule) != 3 {
		t.Fatalf("len(schedule) = %d, want 3 day buckets", len(schedule))
	}

	wantSizes := map[string]int{
		now.Format(DateLayout):                  10,
		now.AddDate(0, 0, 1).Format(DateLayout): 10,
		now.AddDate(0, 0, 2).Format(DateLayout): 5,
	}
	total := 0
	for date, size := range wantSizes {
		if len(schedule[date]) != size {
			t.Errorf("schedule[%s] = %d items, want %d", date, len(schedule[date]), size)
		}
		total += len(schedule[date])
	}
	if total != 25 {
		t.Errorf("scheduled %d items, want all 25", total)
	}

	// First bucket holds the most overdue items.
	first := schedule[now.Format(DateLayout)]
	if first[0].OverdueDays(now) < first[len(first)-1].OverdueDays(now) {
		t.Error("first bucket not ordered most-overdue-first")
	}
}

func TestOptimizeSchedule_InvalidLimit(t *testing.T) {
	_, err := OptimizeSchedule(nil, testNow(), 0)
	if !errors.Is(err, ErrInvalidLimit) {
		t.Errorf("err = %v, want ErrInvalidLimit", err)
	}
}
