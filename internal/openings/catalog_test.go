package openings

import (
	"math/rand"
	"testing"
)

func TestDefaultCatalog_LoadsAndValidates(t *testing.T) {
	cat, err := Default()
	if err != nil {
		t.Fatalf("Default: %v", err)
	}
	if cat.Len() < 20 {
		t.Errorf("catalog has %d openings, want at least 20", cat.Len())
	}

	for _, o := range cat.All() {
		if len(o.Moves) < 4 {
			t.Errorf("%s: only %d moves", o.ID, len(o.Moves))
		}
		if o.Difficulty < 1 || o.Difficulty > 5 {
			t.Errorf("%s: difficulty %v out of range", o.ID, o.Difficulty)
		}
	}
}

func TestParse_RejectsInvalidCatalog(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"missing openings key", `{}`},
		{"bad eco code", `{"openings":[{"id":"x","eco":"Z99","name":"X","moves":["e4","e5","Nf3","Nc6"],"difficulty":2}]}`},
		{"too few moves", `{"openings":[{"id":"x","eco":"C20","name":"X","moves":["e4","e5"],"difficulty":2}]}`},
		{"difficulty out of range", `{"openings":[{"id":"x","eco":"C20","name":"X","moves":["e4","e5","Nf3","Nc6"],"difficulty":9}]}`},
		{"uppercase id", `{"openings":[{"id":"Bad-ID","eco":"C20","name":"X","moves":["e4","e5","Nf3","Nc6"],"difficulty":2}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.raw)); err == nil {
				t.Error("Parse accepted invalid catalog")
			}
		})
	}
}

func TestParse_RejectsDuplicateIDs(t *testing.T) {
	raw := `{"openings":[
		{"id":"x","eco":"C20","name":"X","moves":["e4","e5","Nf3","Nc6"],"difficulty":2},
		{"id":"x","eco":"C21","name":"X2","moves":["e4","e5","d4","exd4"],"difficulty":2}
	]}`
	if _, err := Parse([]byte(raw)); err == nil {
		t.Error("Parse accepted duplicate IDs")
	}
}

func TestUntracked_EasiestFirst(t *testing.T) {
	cat, err := Default()
	if err != nil {
		t.Fatalf("Default: %v", err)
	}

	tracked := map[string]bool{"italian-game": true, "london-system": true}
	untracked := cat.Untracked(tracked)

	if len(untracked) != cat.Len()-2 {
		t.Fatalf("len(untracked) = %d, want %d", len(untracked), cat.Len()-2)
	}
	for i := 1; i < len(untracked); i++ {
		if untracked[i].Difficulty < untracked[i-1].Difficulty {
			t.Fatal("untracked openings not sorted easiest first")
		}
	}
	for _, o := range untracked {
		if tracked[o.ID] {
			t.Errorf("tracked opening %s returned as untracked", o.ID)
		}
	}
}

func TestPGN(t *testing.T) {
	o := Opening{Moves: []string{"e4", "c5", "Nf3", "d6", "d4"}}

	tests := []struct {
		n    int
		want string
	}{
		{0, ""},
		{1, "1. e4"},
		{2, "1. e4 c5"},
		{5, "1. e4 c5 2. Nf3 d6 3. d4"},
		{99, "1. e4 c5 2. Nf3 d6 3. d4"},
	}
	for _, tt := range tests {
		if got := o.PGN(tt.n); got != tt.want {
			t.Errorf("PGN(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestBuildQuestion_MultipleChoice(t *testing.T) {
	cat, err := Default()
	if err != nil {
		t.Fatalf("Default: %v", err)
	}
	rng := rand.New(rand.NewSource(7))

	q, err := cat.BuildQuestion("ruy-lopez", 2, rng)
	if err != nil {
		t.Fatalf("BuildQuestion: %v", err)
	}

	if q.Format != FormatMultipleChoice {
		t.Errorf("Format = %v, want multiple choice at difficulty 2", q.Format)
	}
	if len(q.Choices) < 2 {
		t.Fatalf("only %d choices", len(q.Choices))
	}
	found := false
	for _, c := range q.Choices {
		if c == q.Answer {
			found = true
		}
	}
	if !found {
		t.Errorf("answer %q missing from choices %v", q.Answer, q.Choices)
	}

	o, _ := cat.Get("ruy-lopez")
	if q.Answer != o.Moves[q.Ply] {
		t.Errorf("Answer = %q, want move at ply %d (%q)", q.Answer, q.Ply, o.Moves[q.Ply])
	}
}

func TestBuildQuestion_TypedAtHighDifficulty(t *testing.T) {
	cat, err := Default()
	if err != nil {
		t.Fatalf("Default: %v", err)
	}
	rng := rand.New(rand.NewSource(7))

	q, err := cat.BuildQuestion("sicilian-najdorf", 5, rng)
	if err != nil {
		t.Fatalf("BuildQuestion: %v", err)
	}
	if q.Format != FormatTyped {
		t.Errorf("Format = %v, want typed at difficulty 5", q.Format)
	}
	if len(q.Choices) != 0 {
		t.Errorf("typed question carries %d choices", len(q.Choices))
	}
}

func TestBuildQuestion_HarderProbesDeeper(t *testing.T) {
	cat, err := Default()
	if err != nil {
		t.Fatalf("Default: %v", err)
	}
	rng := rand.New(rand.NewSource(7))

	easy, err := cat.BuildQuestion("kings-indian-defense", 1, rng)
	if err != nil {
		t.Fatalf("BuildQuestion: %v", err)
	}
	hard, err := cat.BuildQuestion("kings-indian-defense", 5, rng)
	if err != nil {
		t.Fatalf("BuildQuestion: %v", err)
	}
	if hard.Ply <= easy.Ply {
		t.Errorf("hard ply %d <= easy ply %d", hard.Ply, easy.Ply)
	}
}

func TestBuildQuestion_DeterministicWithSeed(t *testing.T) {
	cat, err := Default()
	if err != nil {
		t.Fatalf("Default: %v", err)
	}

	a, _ := cat.BuildQuestion("caro-kann", 2, rand.New(rand.NewSource(42)))
	b, _ := cat.BuildQuestion("caro-kann", 2, rand.New(rand.NewSource(42)))

	if a.Answer != b.Answer || a.Ply != b.Ply || len(a.Choices) != len(b.Choices) {
		t.Fatal("same seed produced different questions")
	}
	for i := range a.Choices {
		if a.Choices[i] != b.Choices[i] {
			t.Fatal("same seed produced different choice order")
		}
	}
}
