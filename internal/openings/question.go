package openings

import (
	"fmt"
	"math/rand"
)

// Format selects how a question is answered in the trainer.
type Format string

const (
	FormatMultipleChoice Format = "multiple_choice"
	FormatTyped          Format = "typed"
)

// choiceCount is the number of options shown for multiple-choice questions.
const choiceCount = 4

// typedThreshold is the difficulty at and above which the learner must type
// the move instead of picking from choices.
const typedThreshold = 4.0

// Question is one quiz item: the learner sees the line prefix and recalls
// the next move.
type Question struct {
	OpeningID string
	Name      string
	ECO       string
	Prompt    string   // rendered PGN prefix
	Side      string   // whose move it is
	Answer    string   // the correct SAN move
	Choices   []string // populated for multiple choice, answer included
	Format    Format
	Ply       int // index of the probed move within the line
}

// BuildQuestion constructs a recall question for an opening at the given
// session difficulty. Harder sessions probe deeper into the line and demand
// a typed answer; distractors are drawn from moves other catalog lines play
// at nearby plies. rng drives distractor sampling only, so a fixed seed
// yields a reproducible quiz.
func (c *Catalog) BuildQuestion(openingID string, difficulty float64, rng *rand.Rand) (Question, error) {
	o, err := c.Get(openingID)
	if err != nil {
		return Question{}, err
	}

	ply := probePly(len(o.Moves), difficulty)
	q := Question{
		OpeningID: o.ID,
		Name:      o.Name,
		ECO:       o.ECO,
		Prompt:    o.PGN(ply),
		Side:      SideToMove(ply),
		Answer:    o.Moves[ply],
		Ply:       ply,
		Format:    FormatMultipleChoice,
	}

	if difficulty >= typedThreshold {
		q.Format = FormatTyped
		return q, nil
	}

	q.Choices = c.buildChoices(o, ply, rng)
	return q, nil
}

// probePly picks which move to quiz: difficulty 1 probes near the start of
// the line, difficulty 5 near the end. The result is always a legal index.
func probePly(lineLen int, difficulty float64) int {
	if difficulty < 1 {
		difficulty = 1
	}
	if difficulty > 5 {
		difficulty = 5
	}
	// Map [1,5] onto [2, lineLen-1].
	ply := 2 + int((difficulty-1)/4*float64(lineLen-3))
	if ply >= lineLen {
		ply = lineLen - 1
	}
	return ply
}

// buildChoices assembles the answer plus distractors sampled from other
// lines' moves at nearby plies, shuffled.
func (c *Catalog) buildChoices(o Opening, ply int, rng *rand.Rand) []string {
	seen := map[string]bool{o.Answer(ply): true}
	choices := []string{o.Answer(ply)}

	var pool []string
	for _, id := range c.order {
		other := c.byID[id]
		if other.ID == o.ID {
			continue
		}
		for d := -1; d <= 1; d++ {
			i := ply + d
			// Keep the side to move consistent so distractors look plausible.
			if i < 0 || i >= len(other.Moves) || i%2 != ply%2 {
				continue
			}
			if m := other.Moves[i]; !seen[m] {
				seen[m] = true
				pool = append(pool, m)
			}
		}
	}

	rng.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
	for _, m := range pool {
		if len(choices) == choiceCount {
			break
		}
		choices = append(choices, m)
	}

	rng.Shuffle(len(choices), func(i, j int) { choices[i], choices[j] = choices[j], choices[i] })
	return choices
}

// Answer returns the SAN move at ply i.
func (o Opening) Answer(i int) string {
	if i < 0 || i >= len(o.Moves) {
		return ""
	}
	return o.Moves[i]
}

// PromptText renders the question as a single line for plain output.
func (q Question) PromptText() string {
	if q.Prompt == "" {
		return fmt.Sprintf("%s (%s): what is %s's first move?", q.Name, q.ECO, q.Side)
	}
	return fmt.Sprintf("%s (%s): %s ... what does %s play next?", q.Name, q.ECO, q.Prompt, q.Side)
}
