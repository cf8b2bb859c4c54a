// internal/game/codes.go
//
// Challenge code generation.
// Codes are drawn character by character from a fixed 36-char alphabet
// (A–Z0–9, always upper case) with length set by the difficulty tier.
// The randomness source is injected so tests can supply a deterministic
// sequence and assert exact codes.

package game

import "math/rand"

// codeAlphabet is the character set codes are drawn from. Submissions are
// upper-cased before comparison, so the alphabet must stay upper case.
const codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// RandomSource yields uniform indices in [0, n). math/rand satisfies the
// uniformity requirement; Intn rejects rather than folding, so there is
// no modulo bias over the 36-char alphabet.
type RandomSource interface {
	Intn(n int) int
}

// mathSource delegates to the package-level math/rand generator, which is
// safe for concurrent use.
type mathSource struct{}

func (mathSource) Intn(n int) int { return rand.Intn(n) }

// Generator produces challenge codes.
type Generator struct {
	src RandomSource
}

// NewGenerator constructs a Generator. A nil src falls back to math/rand.
func NewGenerator(src RandomSource) *Generator {
	if src == nil {
		src = mathSource{}
	}
	return &Generator{src: src}
}

// Generate returns a fresh code for the given difficulty: 6 chars for easy,
// 9 for medium, 12 for hard, each drawn independently from the alphabet.
func (g *Generator) Generate(d Difficulty) (string, error) {
	if _, err := ParseDifficulty(string(d)); err != nil {
		return "", err
	}
	b := make([]byte, d.CodeLength())
	for i := range b {
		b[i] = codeAlphabet[g.src.Intn(len(codeAlphabet))]
	}
	return string(b), nil
}
