package board

import (
	"errors"
	"math/rand"
	"testing"
)

func TestAssignPairValuesProperties(t *testing.T) {
	tests := []struct {
		name     string
		total    int
		poolSize int
	}{
		{name: "2x2 board, 2 values", total: 4, poolSize: 2},
		{name: "4x4 board, 8 values", total: 16, poolSize: 8},
		{name: "4x4 board, 4 values", total: 16, poolSize: 4},
		{name: "3x4 board, 6 values", total: 12, poolSize: 6},
		{name: "6x6 board, 3 values", total: 36, poolSize: 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for seed := int64(0); seed < 50; seed++ {
				got, err := AssignPairValues(tt.total, tt.poolSize, rand.New(rand.NewSource(seed)))
				if err != nil {
					t.Fatalf("seed %d: %v", seed, err)
				}
				if len(got) != tt.total {
					t.Fatalf("seed %d: expected %d values, got %d", seed, tt.total, len(got))
				}
				counts := make(map[int]int)
				for i, v := range got {
					if v < 0 || v >= tt.poolSize {
						t.Fatalf("seed %d: value %d out of range", seed, v)
					}
					if i > 0 && got[i-1] == v {
						t.Fatalf("seed %d: adjacent repeat at %d in %v", seed, i, got)
					}
					counts[v]++
				}
				want := tt.total / tt.poolSize
				for v := 0; v < tt.poolSize; v++ {
					if counts[v] != want {
						t.Fatalf("seed %d: value %d used %d times, want %d", seed, v, counts[v], want)
					}
				}
			}
		})
	}
}

func TestAssignPairValuesDeterministicForSeed(t *testing.T) {
	a, _ := AssignPairValues(16, 8, rand.New(rand.NewSource(42)))
	b, _ := AssignPairValues(16, 8, rand.New(rand.NewSource(42)))
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("expected identical assignment for identical seed, got %v and %v", a, b)
		}
	}
}

// scripted replays a fixed sequence of draws.
type scripted struct {
	draws []int
	i     int
}

func (s *scripted) Intn(int) int {
	v := s.draws[s.i]
	s.i++
	return v
}

func TestAssignPairValuesRejectsImmediateRepeatAcrossRounds(t *testing.T) {
	// Round 1 ends on 1; the first draw of round 2 repeats it and must be rejected.
	src := &scripted{draws: []int{0, 0, 1, 1, 0, 1}}
	got, err := AssignPairValues(4, 2, src)
	if err != nil {
		t.Fatalf("assign: %v", err)
	}
	want := []int{0, 1, 0, 1}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
	if src.i != 6 {
		t.Fatalf("expected 6 draws including rejections, got %d", src.i)
	}
}

func TestAssignPairValuesConfigErrors(t *testing.T) {
	tests := []struct {
		name     string
		total    int
		poolSize int
	}{
		{name: "single value", total: 4, poolSize: 1},
		{name: "pool does not divide board", total: 10, poolSize: 4},
		{name: "odd count per value", total: 6, poolSize: 6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := AssignPairValues(tt.total, tt.poolSize, rand.New(rand.NewSource(1)))
			if !errors.Is(err, ErrInvalidConfig) {
				t.Fatalf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}
