package reliability

import (
	"strings"

	"github.com/dotcommander/aeoscore/internal/scoring"
)

// MinimumSlotScore is the per-slot threshold a measured score must meet
// for the verdict to be high. Scores are clamped to >= 0, so today the
// check always passes; it stays a separate condition of the gate.
const MinimumSlotScore = 0

// Result is the reliability verdict for one set of score slots.
type Result struct {
	Level        Level                       `json:"level"`
	ReasonText   string                      `json:"reasonText"`
	SlotStatus   map[scoring.Slot]SlotStatus `json:"perSlotStatus"`
	MissingSlots []scoring.Slot              `json:"missingSlots"`
}

// HasContentEvidence reports whether the content slot carries any evidence.
func HasContentEvidence(slots scoring.ScoreSlots) bool {
	return slots.ContentStructureV2 != nil && len(slots.ContentStructureV2.Evidence) > 0
}

// Evaluate computes the reliability verdict.
//
// High is a hard gate: evidence must be present, all three slots measured
// and every score at or above MinimumSlotScore. Missing evidence or no
// measured slot at all forces low. Otherwise two or more missing slots give
// low and one missing slot (or a failed threshold) gives mid.
func Evaluate(slots scoring.ScoreSlots, hasContentEvidence bool) Result {
	status := make(map[scoring.Slot]SlotStatus, len(scoring.AllSlots))
	var missing []scoring.Slot
	measuredCount := 0

	for _, slot := range scoring.AllSlots {
		if slots.Get(slot).Measured() {
			status[slot] = StatusMeasured
			measuredCount++
		} else {
			status[slot] = StatusUnmeasured
			missing = append(missing, slot)
		}
	}

	hasEvidence := hasContentEvidence
	if content := slots.ContentStructureV2; content != nil && content.Evidence != nil {
		hasEvidence = hasEvidence && len(content.Evidence) > 0
	}

	allMeasured := len(missing) == 0
	canBeHigh := hasEvidence && allMeasured && meetsThreshold(slots)

	var level Level
	switch {
	case canBeHigh:
		level = LevelHigh
	case !hasEvidence || measuredCount == 0:
		level = LevelLow
	case len(missing) >= 2:
		level = LevelLow
	default:
		level = LevelMid
	}

	return Result{
		Level:        level,
		ReasonText:   reasonText(status, level, hasEvidence, allMeasured),
		SlotStatus:   status,
		MissingSlots: missing,
	}
}

// meetsThreshold checks every measured slot against MinimumSlotScore.
func meetsThreshold(slots scoring.ScoreSlots) bool {
	for _, slot := range scoring.AllSlots {
		points, ok := slots.Get(slot).Points()
		if ok && points < MinimumSlotScore {
			return false
		}
	}
	return true
}

func reasonText(status map[scoring.Slot]SlotStatus, level Level, hasEvidence, allMeasured bool) string {
	parts := make([]string, 0, len(scoring.AllSlots)+1)
	for _, slot := range scoring.AllSlots {
		parts = append(parts, slot.Label()+" "+string(status[slot]))
	}

	switch {
	case level == LevelHigh:
		parts = append(parts, "all three measured + threshold met")
	case allMeasured && hasEvidence:
		parts = append(parts, "threshold not met")
	case allMeasured:
		parts = append(parts, "content evidence missing")
	}

	return strings.Join(parts, " · ")
}
