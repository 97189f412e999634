package srs

import (
	"errors"
	"fmt"
)

// ErrInvalidQuality is returned when a recall quality outside the
// again/hard/good/easy domain is passed to the scheduler.
var ErrInvalidQuality = errors.New("srs: invalid recall quality")

// Quality is the coarse recall-performance signal reported after a review.
type Quality int

const (
	Again Quality = iota // complete failure to recall the line
	Hard                 // recalled with significant difficulty
	Good                 // recalled with some effort
	Easy                 // recalled effortlessly
)

var qualityNames = [...]string{
	Again: "again",
	Hard:  "hard",
	Good:  "good",
	Easy:  "easy",
}

// qualityScores maps each quality to its SM-2 numeric score.
var qualityScores = [...]int{
	Again: 0,
	Hard:  2,
	Good:  3,
	Easy:  5,
}

// IsValid reports whether q is one of the four defined qualities.
func (q Quality) IsValid() bool {
	return q >= Again && q <= Easy
}

// Score returns the SM-2 numeric score for the quality (0, 2, 3 or 5).
func (q Quality) Score() int {
	if !q.IsValid() {
		return 0
	}
	return qualityScores[q]
}

// String returns the lowercase name of the quality.
// For invalid values it returns "quality(n)".
func (q Quality) String() string {
	if q.IsValid() {
		return qualityNames[q]
	}
	return fmt.Sprintf("quality(%d)", int(q))
}

// ParseQuality converts a quality name back into a Quality.
func ParseQuality(s string) (Quality, error) {
	for q, name := range qualityNames {
		if s == name {
			return Quality(q), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidQuality, s)
}
