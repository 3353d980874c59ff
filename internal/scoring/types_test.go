package scoring

import (
	"math"
	"testing"
)

func TestGradeFromScore(t *testing.T) {
	tests := []struct {
		name      string
		score     int
		wantGrade string
	}{
		{"A+ - exact boundary", 90, "A+"},
		{"A+ - perfect", 100, "A+"},
		{"A - exact boundary", 80, "A"},
		{"A - upper range", 89, "A"},
		{"B+ - exact boundary", 70, "B+"},
		{"B - exact boundary", 60, "B"},
		{"C+ - exact boundary", 50, "C+"},
		{"C - exact boundary", 40, "C"},
		{"D - exact boundary", 30, "D"},
		{"D - upper range", 39, "D"},
		{"F - boundary", 29, "F"},
		{"F - zero", 0, "F"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GradeFromScore(tt.score)
			if got != tt.wantGrade {
				t.Errorf("GradeFromScore(%d) = %q, want %q", tt.score, got, tt.wantGrade)
			}
		})
	}
}

func TestGradeFromScore_Monotonic(t *testing.T) {
	prev := GradeRank(GradeFromScore(0))
	for score := 1; score <= 100; score++ {
		rank := GradeRank(GradeFromScore(score))
		if rank < 0 {
			t.Fatalf("GradeFromScore(%d) returned unknown grade", score)
		}
		if rank < prev {
			t.Errorf("grade for %d ranks below grade for %d", score, score-1)
		}
		prev = rank
	}
}

func TestGradeRank(t *testing.T) {
	if got := GradeRank("F"); got != 0 {
		t.Errorf("GradeRank(F) = %d, want 0", got)
	}
	if got := GradeRank("A+"); got != 7 {
		t.Errorf("GradeRank(A+) = %d, want 7", got)
	}
	if got := GradeRank("Z"); got != -1 {
		t.Errorf("GradeRank(Z) = %d, want -1", got)
	}
}

func TestNewScore(t *testing.T) {
	tests := []struct {
		name       string
		points     int
		wantPoints int
		wantGrade  string
	}{
		{"in range", 75, 75, "B+"},
		{"clamped high", 130, 100, "A+"},
		{"clamped low", -20, 0, "F"},
		{"zero is measured", 0, 0, "F"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewScore(tt.points, nil)
			got, ok := s.Points()
			if !ok {
				t.Fatal("NewScore() produced an unmeasured score")
			}
			if got != tt.wantPoints {
				t.Errorf("Points() = %d, want %d", got, tt.wantPoints)
			}
			if s.Grade != tt.wantGrade {
				t.Errorf("Grade = %q, want %q", s.Grade, tt.wantGrade)
			}
		})
	}
}

func TestScore_Measured(t *testing.T) {
	nan := math.NaN()
	inf := math.Inf(1)
	zero := 0.0

	tests := []struct {
		name  string
		score *Score
		want  bool
	}{
		{"nil score", nil, false},
		{"nil value", &Score{}, false},
		{"NaN", &Score{Value: &nan}, false},
		{"infinity", &Score{Value: &inf}, false},
		{"zero", &Score{Value: &zero}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.score.Measured(); got != tt.want {
				t.Errorf("Measured() = %v, want %v", got, tt.want)
			}
			if _, ok := tt.score.Points(); ok != tt.want {
				t.Errorf("Points() ok = %v, want %v", ok, tt.want)
			}
		})
	}
}

func TestEvidence_String(t *testing.T) {
	if got := (Evidence{Check: CheckLists, Detail: "list absent"}).String(); got != "List usage: list absent" {
		t.Errorf("String() = %q", got)
	}
	if got := (Evidence{Detail: "bare"}).String(); got != "bare" {
		t.Errorf("String() = %q", got)
	}
}
