package evidence

import (
	"strings"

	"github.com/dotcommander/aeoscore/internal/scoring"
)

// MaxBullets caps every bullet list and both diff sides.
const MaxBullets = 7

// deficiencyMarkers flag an evidence detail as a structural deficiency.
var deficiencyMarkers = []string{
	"absent", "insufficient", "missing", "empty", "duplicate",
	"부재", "부족", "없음", "빈", "중복",
}

// Interpretation summarizes a diff by its counts.
type Interpretation string

const (
	InterpretImproving     Interpretation = "improving"
	InterpretRegressing    Interpretation = "regressing"
	InterpretNoChange      Interpretation = "no structural change, consider quality-level improvements"
	InterpretRestructuring Interpretation = "restructuring, verify intent"
	InterpretNoPrevious    Interpretation = "no previous snapshot"
)

// Diff is the bullet-level change between two snapshots.
type Diff struct {
	Added       []string `json:"added"`
	Removed     []string `json:"removed"`
	HasPrevious bool     `json:"hasPrevious"`
}

// Interpretation reads the diff. Without a previous snapshot the result is
// InterpretNoPrevious, never InterpretNoChange.
func (d Diff) Interpretation() Interpretation {
	if !d.HasPrevious {
		return InterpretNoPrevious
	}
	return Interpret(len(d.Added), len(d.Removed))
}

// Interpret maps added/removed counts onto an interpretation.
func Interpret(added, removed int) Interpretation {
	switch {
	case added > 0 && removed == 0:
		return InterpretImproving
	case added == 0 && removed > 0:
		return InterpretRegressing
	case added == 0 && removed == 0:
		return InterpretNoChange
	default:
		return InterpretRestructuring
	}
}

// Bullets extracts the content-structure deficiencies of entry.
func Bullets(entry *Entry) []string {
	if entry == nil {
		return []string{}
	}

	contentLabel := scoring.SlotContentStructureV2.Label()
	bullets := []string{}
	seen := make(map[string]bool)
	for _, it := range entry.Items {
		if it.Label != contentLabel {
			continue
		}
		detail := strings.TrimSpace(trimCheckPrefix(it.Detail, it.Title))
		if detail == "" || seen[detail] || !isDeficiency(detail) {
			continue
		}
		seen[detail] = true
		bullets = append(bullets, detail)
		if len(bullets) == MaxBullets {
			break
		}
	}
	return bullets
}

// trimCheckPrefix strips a leading "check: " from details written as one string.
func trimCheckPrefix(detail, check string) string {
	if check != "" {
		if rest, ok := strings.CutPrefix(detail, check+":"); ok {
			return rest
		}
	}
	if before, after, ok := strings.Cut(detail, ": "); ok && !strings.ContainsAny(before, "()") {
		return after
	}
	return detail
}

func isDeficiency(detail string) bool {
	lower := strings.ToLower(detail)
	for _, m := range deficiencyMarkers {
		if strings.Contains(lower, m) {
			return true
		}
	}
	return false
}

// Compare diffs current against previous. A nil previous yields every
// current bullet as added and HasPrevious false.
func Compare(current, previous *Entry) Diff {
	cur := Bullets(current)
	if previous == nil {
		return Diff{Added: cur, Removed: []string{}}
	}
	prev := Bullets(previous)

	return Diff{
		Added:       missingFrom(cur, prev),
		Removed:     missingFrom(prev, cur),
		HasPrevious: true,
	}
}

// missingFrom returns the items of a not present in b, capped at MaxBullets.
func missingFrom(a, b []string) []string {
	in := make(map[string]bool, len(b))
	for _, s := range b {
		in[s] = true
	}
	out := []string{}
	for _, s := range a {
		if !in[s] {
			out = append(out, s)
			if len(out) == MaxBullets {
				break
			}
		}
	}
	return out
}
