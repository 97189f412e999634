package session

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/nikostojak/repertoire/internal/adaptive"
	"github.com/nikostojak/repertoire/internal/openings"
	"github.com/nikostojak/repertoire/internal/srs"
)

// ErrNothingToTrain is returned when neither due reviews nor new openings
// are available.
var ErrNothingToTrain = errors.New("session: nothing to train")

// Planner builds a session plan from the learner's current state.
type Planner struct {
	Catalog     *openings.Catalog
	Advisor     adaptive.Advisor
	SessionSize int
}

// NewPlanner creates a planner for the given catalog.
func NewPlanner(catalog *openings.Catalog, advisor adaptive.Advisor, sessionSize int) *Planner {
	return &Planner{Catalog: catalog, Advisor: advisor, SessionSize: sessionSize}
}

// BuildPlan picks the session difficulty and fills the session with due
// reviews (most overdue first), topping up with never-trained openings.
func (p *Planner) BuildPlan(profile adaptive.PlayerProfile, reviews map[string]srs.ReviewItem, now time.Time) (*Plan, error) {
	difficulty, err := p.Advisor.RecommendDifficulty(profile, "")
	if err != nil {
		return nil, err
	}

	items := make([]srs.ReviewItem, 0, len(reviews))
	tracked := make(map[string]bool, len(reviews))
	for id, item := range reviews {
		items = append(items, item)
		tracked[id] = true
	}

	plan := &Plan{
		SessionID:  uuid.New().String(),
		Difficulty: difficulty,
	}

	for _, item := range srs.SelectDue(items, now, p.SessionSize) {
		opening, err := p.Catalog.Get(item.OpeningID)
		if err != nil {
			// Review state can outlive a catalog entry; skip rather than fail.
			continue
		}
		item := item
		plan.Slots = append(plan.Slots, PlanSlot{
			Opening:  opening,
			Category: CategoryReview,
			Item:     &item,
		})
	}

	for _, opening := range p.Catalog.Untracked(tracked) {
		if len(plan.Slots) >= p.SessionSize {
			break
		}
		plan.Slots = append(plan.Slots, PlanSlot{
			Opening:  opening,
			Category: CategoryDiscover,
		})
	}

	if len(plan.Slots) == 0 {
		return nil, ErrNothingToTrain
	}
	return plan, nil
}
