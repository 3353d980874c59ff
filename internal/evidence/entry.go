// Package evidence records analysis snapshots, keeps a bounded history of
// them and diffs two snapshots by their structural deficiencies.
package evidence

import (
	"fmt"
	"time"

	"github.com/dotcommander/aeoscore/internal/scoring"
	"github.com/google/uuid"
)

// DefaultSource tags entries created by the analyzer.
const DefaultSource = "aeoscore-analyze"

// Meta identifies one snapshot.
type Meta struct {
	ID        string `json:"id"`
	CreatedAt string `json:"createdAt"` // RFC 3339
	Source    string `json:"source,omitempty"`
}

// Item is one evidence line of a snapshot.
type Item struct {
	ID     string `json:"id"`
	Label  string `json:"label"` // Slot label: BRAND, CONTENT or URL
	Title  string `json:"title"` // Check name
	Detail string `json:"detail"`
}

// Entry is an immutable snapshot of the evidence gathered by one analysis.
type Entry struct {
	Meta  Meta   `json:"meta"`
	Items []Item `json:"items"`
}

// NewID returns a time-ordered unique entry id.
func NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// NewEntry snapshots the evidence of every slot in slot order.
func NewEntry(id string, createdAt time.Time, slots scoring.ScoreSlots) Entry {
	items := []Item{}
	for _, slot := range scoring.AllSlots {
		score := slots.Get(slot)
		if score == nil {
			continue
		}
		for i, ev := range score.Evidence {
			items = append(items, Item{
				ID:     fmt.Sprintf("%s-%d", slot, i+1),
				Label:  slot.Label(),
				Title:  ev.Check,
				Detail: ev.Detail,
			})
		}
	}

	return Entry{
		Meta: Meta{
			ID:        id,
			CreatedAt: createdAt.UTC().Format(time.RFC3339),
			Source:    DefaultSource,
		},
		Items: items,
	}
}

// Evidence converts the items carrying label back into scorer evidence.
func (e *Entry) Evidence(label string) []scoring.Evidence {
	if e == nil {
		return nil
	}
	var out []scoring.Evidence
	for _, it := range e.Items {
		if it.Label == label {
			out = append(out, scoring.Evidence{Check: it.Title, Detail: it.Detail})
		}
	}
	return out
}

// Count returns the number of items in the entry; nil entries have none.
func (e *Entry) Count() int {
	if e == nil {
		return 0
	}
	return len(e.Items)
}
