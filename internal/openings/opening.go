package openings

import (
	"fmt"
	"strings"
)

// Opening is one line from the ECO opening catalog.
type Opening struct {
	ID         string   `json:"id"`
	ECO        string   `json:"eco"`
	Name       string   `json:"name"`
	Moves      []string `json:"moves"` // SAN, alternating white/black from move 1
	Difficulty float64  `json:"difficulty"`
}

// PGN renders the first n plies as numbered move text, e.g.
// "1. e4 c5 2. Nf3 d6". n is clamped to the line length.
func (o Opening) PGN(n int) string {
	if n > len(o.Moves) {
		n = len(o.Moves)
	}
	var b strings.Builder
	for i := 0; i < n; i++ {
		if i%2 == 0 {
			if i > 0 {
				b.WriteByte(' ')
			}
			fmt.Fprintf(&b, "%d.", i/2+1)
		}
		b.WriteByte(' ')
		b.WriteString(o.Moves[i])
	}
	return strings.TrimSpace(b.String())
}

// SideToMove returns "White" or "Black" for the ply at index i.
func SideToMove(i int) string {
	if i%2 == 0 {
		return "White"
	}
	return "Black"
}
