package game

import (
	"strings"
	"testing"
)

// seqSource replays a fixed sequence of draws.
type seqSource struct {
	vals []int
	i    int
}

func (s *seqSource) Intn(n int) int {
	v := s.vals[s.i%len(s.vals)] % n
	s.i++
	return v
}

func TestGenerateLengthAndAlphabet(t *testing.T) {
	tests := []struct {
		difficulty Difficulty
		length     int
	}{
		{Easy, 6},
		{Medium, 9},
		{Hard, 12},
	}
	g := NewGenerator(nil)
	for _, tt := range tests {
		t.Run(string(tt.difficulty), func(t *testing.T) {
			for i := 0; i < 100; i++ {
				code, err := g.Generate(tt.difficulty)
				if err != nil {
					t.Fatalf("Generate(%s) error: %v", tt.difficulty, err)
				}
				if len(code) != tt.length {
					t.Fatalf("Generate(%s) len = %d want %d", tt.difficulty, len(code), tt.length)
				}
				for _, r := range code {
					if !strings.ContainsRune(codeAlphabet, r) {
						t.Fatalf("Generate(%s) = %q contains %q outside alphabet", tt.difficulty, code, r)
					}
				}
			}
		})
	}
}

func TestGenerateDeterministicSource(t *testing.T) {
	// Indices 0, 1, 25, 26, 35 map to A, B, Z, 0, 9.
	g := NewGenerator(&seqSource{vals: []int{0, 1, 25, 26, 35, 0}})
	code, err := g.Generate(Easy)
	if err != nil {
		t.Fatal(err)
	}
	if code != "ABZ09A" {
		t.Fatalf("code = %q want %q", code, "ABZ09A")
	}
}

func TestGenerateInvalidDifficulty(t *testing.T) {
	g := NewGenerator(nil)
	if _, err := g.Generate(Difficulty("extreme")); err != ErrInvalidDifficulty {
		t.Fatalf("err = %v want ErrInvalidDifficulty", err)
	}
}

func TestParseDifficulty(t *testing.T) {
	for _, s := range []string{"easy", "medium", "hard"} {
		if _, err := ParseDifficulty(s); err != nil {
			t.Fatalf("ParseDifficulty(%q) error: %v", s, err)
		}
	}
	for _, s := range []string{"", "EASY", "impossible"} {
		if _, err := ParseDifficulty(s); err != ErrInvalidDifficulty {
			t.Fatalf("ParseDifficulty(%q) err = %v want ErrInvalidDifficulty", s, err)
		}
	}
}
