// Package report runs one analysis end to end and collects everything the
// formatters render.
package report

import (
	"strings"
	"time"

	"github.com/dotcommander/aeoscore/internal/evidence"
	"github.com/dotcommander/aeoscore/internal/improve"
	"github.com/dotcommander/aeoscore/internal/reliability"
	"github.com/dotcommander/aeoscore/internal/scoring"
)

// Report is the result of analyzing one document.
type Report struct {
	File        string             `json:"file,omitempty"`
	Brand       string             `json:"brand,omitempty"`
	URL         string             `json:"url,omitempty"`
	GeneratedAt time.Time          `json:"generatedAt"`
	Scores      scoring.ScoreSlots `json:"scores"`
	Reliability reliability.Result `json:"reliability"`
	Why         reliability.Why    `json:"why"`
	ActionLine  string             `json:"actionLine"`
	EntryID     string             `json:"entryId"`
	Saved       bool               `json:"saved"`
	Diff        evidence.Diff      `json:"diff"`
	Checklist   []string           `json:"checklist"`
	Facts       reliability.Facts  `json:"-"`
}

// Overall averages the measured slot scores. ok is false when no slot is measured.
func (r *Report) Overall() (score int, ok bool) {
	total, n := 0, 0
	for _, slot := range scoring.AllSlots {
		if p, measured := r.Scores.Get(slot).Points(); measured {
			total += p
			n++
		}
	}
	if n == 0 {
		return 0, false
	}
	return (total + n/2) / n, true
}

// Builder turns inputs into reports, recording a snapshot per analysis.
type Builder struct {
	Analyzer *scoring.Analyzer
	Store    *evidence.Store // nil disables history
	Now      func() time.Time
}

// NewBuilder creates a Builder with default scorers.
func NewBuilder(store *evidence.Store) *Builder {
	return &Builder{
		Analyzer: scoring.NewAnalyzer(),
		Store:    store,
		Now:      time.Now,
	}
}

// Build analyzes in. The snapshot is diffed against the entry that was
// current in file's own history and, when save is set, appended to it.
func (b *Builder) Build(file string, in scoring.Input, save bool) *Report {
	now := b.Now()
	slots := b.Analyzer.Analyze(in)
	entry := evidence.NewEntry(evidence.NewID(), now, slots)

	var previous *evidence.Entry
	saved := false
	if b.Store != nil {
		store := b.Store.For(HistoryDocument(file))
		if h := store.Load(); h != nil {
			previous = h.CurrentEntry()
		}
		if save {
			saved = store.Append(entry)
		}
	}

	var contentEvidence []scoring.Evidence
	if slots.ContentStructureV2 != nil {
		contentEvidence = slots.ContentStructureV2.Evidence
	}

	// Only content evidence counts; the gate reads the same set.
	facts := reliability.Facts{
		EvidenceCount:      len(contentEvidence),
		EvidenceCountKnown: true,
		URLConnection:      urlConnection(in.URL, slots.URLStructureV1),
	}
	why := reliability.BuildReasons(slots, facts)
	result := reliability.Evaluate(slots, reliability.HasContentEvidence(slots))

	return &Report{
		File:        file,
		Brand:       in.Brand,
		URL:         in.URL,
		GeneratedAt: now.UTC(),
		Scores:      slots,
		Reliability: result,
		Why:         why,
		ActionLine:  reliability.BuildActionLine(why, facts),
		EntryID:     entry.Meta.ID,
		Saved:       saved,
		Diff:        evidence.Compare(&entry, previous),
		Checklist:   improve.Checklist(contentEvidence, slots.URLStructureV1.Measured()),
		Facts:       facts,
	}
}

// HistoryDocument names the history a source is recorded in. Pseudo names
// such as "<text>" and stdin ("") share the base history.
func HistoryDocument(file string) string {
	if strings.HasPrefix(file, "<") {
		return ""
	}
	return file
}

// urlConnection is unknown without a URL and disconnected when a URL was
// given but could not be scored.
func urlConnection(raw string, score *scoring.Score) reliability.Connection {
	switch {
	case strings.TrimSpace(raw) == "":
		return reliability.ConnectionUnknown
	case score.Measured():
		return reliability.ConnectionConnected
	default:
		return reliability.ConnectionDisconnected
	}
}

// FromHistory rebuilds the comparison view for a stored entry: its diff
// against the entry before it.
func FromHistory(h *evidence.History, currentID, previousID string) (current *evidence.Entry, d evidence.Diff) {
	current = h.Resolve(currentID)
	if current == nil {
		return nil, evidence.Compare(nil, nil)
	}
	previous := h.Find(previousID)
	if previous == nil && previousID == "" {
		previous = h.Previous(current.Meta.ID)
	}
	return current, evidence.Compare(current, previous)
}
