// internal/game/scoring.go
//
// Pure scoring functions: accuracy from positional character comparison,
// and the final score from base + time bonus weighted by accuracy.

package game

import (
	"math"
	"strings"
)

// Score maps difficulty, accuracy, and elapsed time to an integer score:
//
//	round((base + max(0, maxTime-timeTaken)*2) * accuracy/100)
//
// The bonus floors at zero once the time budget is exceeded, so the result
// is non-negative, non-decreasing in accuracy, and non-increasing in
// timeTaken until the bonus bottoms out.
func Score(d Difficulty, accuracy float64, timeTaken, maxTime int) int {
	bonus := (maxTime - timeTaken) * 2
	if bonus < 0 {
		bonus = 0
	}
	s := int(math.Round(float64(d.BaseScore()+bonus) * accuracy / 100))
	if s < 0 {
		s = 0
	}
	return s
}

// accuracyFor compares the submitted code position by position against the
// generated one, case-insensitively, over the shorter of the two lengths.
// The denominator is always the generated length: a short submission cannot
// reach 100%, and trailing extra characters neither match nor dilute.
func accuracyFor(generated, submitted string) float64 {
	submitted = strings.ToUpper(submitted)
	matches := 0
	for i := 0; i < min(len(generated), len(submitted)); i++ {
		if generated[i] == submitted[i] {
			matches++
		}
	}
	return float64(matches) / float64(len(generated)) * 100
}
