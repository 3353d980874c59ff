package scoring

import "math"

// Score is the result of a single scorer run.
// A nil *Score means the scorer could not measure the input at all,
// which is different from a measured score of 0.
type Score struct {
	Value    *float64   `json:"score"`
	Grade    string     `json:"grade"`
	Evidence []Evidence `json:"evidence,omitempty"`
}

// Evidence is one observation backing a score.
type Evidence struct {
	Check  string `json:"check"`  // Human-readable check name
	Detail string `json:"detail"` // What the check found
}

// String renders the evidence as "check: detail".
func (e Evidence) String() string {
	if e.Check == "" {
		return e.Detail
	}
	return e.Check + ": " + e.Detail
}

// NewScore clamps points to 0-100 and grades them.
func NewScore(points int, evidence []Evidence) *Score {
	points = clamp(points, 0, 100)
	v := float64(points)
	return &Score{
		Value:    &v,
		Grade:    GradeFromScore(points),
		Evidence: evidence,
	}
}

// Points returns the integer score and whether it is a finite number.
func (s *Score) Points() (int, bool) {
	if !s.Measured() {
		return 0, false
	}
	return int(math.Round(*s.Value)), true
}

// Measured reports whether the score is non-nil and holds a finite number.
// A score of 0 counts as measured.
func (s *Score) Measured() bool {
	if s == nil || s.Value == nil {
		return false
	}
	v := *s.Value
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// GradeFromScore maps a 0-100 score onto the eight letter grades.
func GradeFromScore(score int) string {
	switch {
	case score >= 90:
		return "A+"
	case score >= 80:
		return "A"
	case score >= 70:
		return "B+"
	case score >= 60:
		return "B"
	case score >= 50:
		return "C+"
	case score >= 40:
		return "C"
	case score >= 30:
		return "D"
	default:
		return "F"
	}
}

// grades lists every grade from worst to best.
var grades = []string{"F", "D", "C", "C+", "B", "B+", "A", "A+"}

// GradeRank returns the position of grade in the worst-to-best ordering,
// or -1 for an unknown grade.
func GradeRank(grade string) int {
	for i, g := range grades {
		if g == grade {
			return i
		}
	}
	return -1
}
