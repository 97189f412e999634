package session

import (
	"github.com/nikostojak/repertoire/internal/openings"
	"github.com/nikostojak/repertoire/internal/srs"
)

// SlotCategory says why an opening was included in the plan.
type SlotCategory string

const (
	// CategoryReview slots hold openings whose scheduled review is due.
	CategoryReview SlotCategory = "review"

	// CategoryDiscover slots introduce openings the learner has never
	// trained.
	CategoryDiscover SlotCategory = "discover"
)

// PlanSlot is one opening the session will quiz.
type PlanSlot struct {
	Opening  openings.Opening
	Category SlotCategory
	Item     *srs.ReviewItem // nil for discover slots
}

// Plan is the ordered quiz for one training session: due reviews first,
// most overdue leading, then new material.
type Plan struct {
	SessionID  string
	Difficulty float64
	Slots      []PlanSlot
}

// ReviewCount returns the number of review slots in the plan.
func (p *Plan) ReviewCount() int {
	n := 0
	for _, s := range p.Slots {
		if s.Category == CategoryReview {
			n++
		}
	}
	return n
}
