package reliability

import "github.com/dotcommander/aeoscore/internal/scoring"

// Facts are the evidence facts the why builder reads besides the slots.
type Facts struct {
	EvidenceCount      int        // Items in the current evidence snapshot
	EvidenceCountKnown bool       // False when no snapshot was available
	URLConnection      Connection // Tri-state; Unknown is not Disconnected
}

// Reason explains why one slot keeps reliability from going higher.
type Reason struct {
	Key    string `json:"key"`
	Title  string `json:"title"`
	Detail string `json:"detail"`
}

// Why is the level plus the reasons exposed for it.
type Why struct {
	Level      Level          `json:"level"`
	Reasons    []Reason       `json:"reasons"`
	Unmeasured []scoring.Slot `json:"unmeasured,omitempty"`
}

// hasEvidence prefers the snapshot count and falls back to the content slot.
func (f Facts) hasEvidence(slots scoring.ScoreSlots) bool {
	if f.EvidenceCountKnown {
		return f.EvidenceCount > 0
	}
	return HasContentEvidence(slots)
}

// BuildReasons derives the level-gated reasons for slots.
// High exposes no reasons, mid at most the brand and content reasons,
// low up to all three in brand > content > url order.
func BuildReasons(slots scoring.ScoreSlots, facts Facts) Why {
	result := Evaluate(slots, facts.hasEvidence(slots))

	var all []Reason
	if r, ok := brandReason(slots.Branding, facts); ok {
		all = append(all, r)
	}
	if r, ok := contentReason(slots.ContentStructureV2); ok {
		all = append(all, r)
	}
	if r, ok := urlReason(slots.URLStructureV1, facts.URLConnection); ok {
		all = append(all, r)
	}

	var reasons []Reason
	switch result.Level {
	case LevelHigh:
		reasons = []Reason{}
	case LevelMid:
		for _, r := range all {
			if (r.Key == "brand" || r.Key == "content") && len(reasons) < 2 {
				reasons = append(reasons, r)
			}
		}
	default:
		reasons = all
	}
	if reasons == nil {
		reasons = []Reason{}
	}

	return Why{
		Level:      result.Level,
		Reasons:    reasons,
		Unmeasured: result.MissingSlots,
	}
}

func brandReason(score *scoring.Score, facts Facts) (Reason, bool) {
	r := Reason{Key: "brand", Title: "Brand"}
	switch {
	case !score.Measured():
		r.Detail = "brand presence not yet measured"
	case facts.EvidenceCountKnown && facts.EvidenceCount == 0:
		r.Detail = "brand measured but 0 evidence items back it (few proper nouns or official links)"
	default:
		return Reason{}, false
	}
	return r, true
}

func contentReason(score *scoring.Score) (Reason, bool) {
	r := Reason{Key: "content", Title: "Content structure"}
	switch {
	case !score.Measured():
		r.Detail = "content structure not yet measured"
	case len(score.Evidence) == 0:
		r.Detail = "content structure measured with 0 evidence items (H3/list/FAQ structure unproven)"
	default:
		return Reason{}, false
	}
	return r, true
}

func urlReason(score *scoring.Score, conn Connection) (Reason, bool) {
	r := Reason{Key: "url", Title: "URL structure"}
	switch {
	case !score.Measured():
		r.Detail = "URL structure not yet measured"
	case conn == ConnectionUnknown:
		r.Detail = "URL connection status unknown"
	case conn == ConnectionDisconnected:
		r.Detail = "URL measured but the connection was not confirmed"
	default:
		return Reason{}, false
	}
	return r, true
}

// BuildActionLine returns exactly one actionable recommendation.
// Facts are inspected in a fixed order: URL connection, unmeasured slots,
// empty evidence, then the level default.
func BuildActionLine(why Why, facts Facts) string {
	switch facts.URLConnection {
	case ConnectionUnknown:
		return "Run the URL structure measurement with the page URL to confirm the connection."
	case ConnectionDisconnected:
		return "Fix the page URL so it parses, then re-run the analysis to connect URL structure."
	}

	if len(why.Unmeasured) > 0 {
		switch why.Unmeasured[0] {
		case scoring.SlotBranding:
			return "Supply the brand name so brand presence can be measured."
		case scoring.SlotContentStructureV2:
			return "Provide the page markup so content structure can be measured."
		default:
			return "Provide the page URL so URL structure can be measured."
		}
	}

	if facts.EvidenceCountKnown && facts.EvidenceCount == 0 {
		return "Add headings, lists and brand mentions to the page so the analysis has evidence to cite."
	}

	if why.Level == LevelHigh {
		return "Data is sufficient; focus on quality-level improvements to the content."
	}
	return "Work through the improvement checklist, then re-run the analysis to confirm the change."
}
