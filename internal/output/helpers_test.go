package output

import (
	"time"

	"github.com/dotcommander/aeoscore/internal/evidence"
	"github.com/dotcommander/aeoscore/internal/reliability"
	"github.com/dotcommander/aeoscore/internal/report"
	"github.com/dotcommander/aeoscore/internal/scoring"
)

var fixedTime = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

// newTestReport builds a report the way report.Builder does, without storage.
func newTestReport(file string, slots scoring.ScoreSlots, d evidence.Diff) *report.Report {
	facts := reliability.Facts{URLConnection: reliability.ConnectionConnected}
	if slots.ContentStructureV2 != nil {
		facts.EvidenceCount = len(slots.ContentStructureV2.Evidence)
		facts.EvidenceCountKnown = true
	}
	why := reliability.BuildReasons(slots, facts)
	return &report.Report{
		File:        file,
		GeneratedAt: fixedTime,
		Scores:      slots,
		Reliability: reliability.Evaluate(slots, reliability.HasContentEvidence(slots)),
		Why:         why,
		ActionLine:  reliability.BuildActionLine(why, facts),
		EntryID:     "entry-1",
		Saved:       true,
		Diff:        d,
		Checklist:   []string{"Add an H1 heading", "Add a summary paragraph"},
		Facts:       facts,
	}
}

func fullReport() *report.Report {
	return newTestReport("page.html", scoring.ScoreSlots{
		Branding:           scoring.NewScore(90, []scoring.Evidence{{Check: "Mentions", Detail: "3 mentions"}}),
		ContentStructureV2: scoring.NewScore(72, []scoring.Evidence{{Check: "Headings", Detail: "H1 present"}}),
		URLStructureV1:     scoring.NewScore(80, []scoring.Evidence{{Check: "Path depth", Detail: "2 segments"}}),
	}, evidence.Diff{Added: []string{"H1 present"}, Removed: []string{"list missing"}, HasPrevious: true})
}

func partialReport() *report.Report {
	return newTestReport("draft.html", scoring.ScoreSlots{
		ContentStructureV2: scoring.NewScore(30, nil),
	}, evidence.Diff{})
}

func unmeasuredReport() *report.Report {
	return newTestReport("empty.html", scoring.ScoreSlots{}, evidence.Diff{})
}
