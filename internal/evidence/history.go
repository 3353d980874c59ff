package evidence

// MaxSize is the number of snapshots a history keeps.
const MaxSize = 10

// History is the bounded, ordered list of snapshots, oldest first.
type History struct {
	CurrentID string  `json:"currentId"`
	Entries   []Entry `json:"history"`
}

// NewHistory returns an empty history.
func NewHistory() *History {
	return &History{Entries: []Entry{}}
}

// Find returns the entry with id, or nil.
func (h *History) Find(id string) *Entry {
	if h == nil || id == "" {
		return nil
	}
	for i := range h.Entries {
		if h.Entries[i].Meta.ID == id {
			return &h.Entries[i]
		}
	}
	return nil
}

// Append adds entry, evicts the oldest entries beyond MaxSize and makes the
// new entry current. Entries without an id or with an id already present
// are rejected, so appending is idempotent.
func (h *History) Append(entry Entry) bool {
	if entry.Meta.ID == "" || h.Find(entry.Meta.ID) != nil {
		return false
	}
	if entry.Items == nil {
		entry.Items = []Item{}
	}

	h.Entries = append(h.Entries, entry)
	if len(h.Entries) > MaxSize {
		h.Entries = append([]Entry(nil), h.Entries[len(h.Entries)-MaxSize:]...)
	}
	h.CurrentID = entry.Meta.ID
	return true
}

// Resolve picks the entry to show: selectedID when it exists, then
// CurrentID, then the newest entry. It returns nil only for an empty history.
func (h *History) Resolve(selectedID string) *Entry {
	if h == nil || len(h.Entries) == 0 {
		return nil
	}
	if e := h.Find(selectedID); e != nil {
		return e
	}
	if e := h.Find(h.CurrentID); e != nil {
		return e
	}
	return &h.Entries[len(h.Entries)-1]
}

// CurrentEntry resolves without an explicit selection.
func (h *History) CurrentEntry() *Entry {
	return h.Resolve("")
}

// Previous returns the entry recorded just before id, or nil.
func (h *History) Previous(id string) *Entry {
	if h == nil {
		return nil
	}
	for i := range h.Entries {
		if h.Entries[i].Meta.ID == id {
			if i == 0 {
				return nil
			}
			return &h.Entries[i-1]
		}
	}
	return nil
}

// Select makes id the current entry. It reports false when id is unknown.
func (h *History) Select(id string) bool {
	if h.Find(id) == nil {
		return false
	}
	h.CurrentID = id
	return true
}

// Len returns the number of entries; nil histories are empty.
func (h *History) Len() int {
	if h == nil {
		return 0
	}
	return len(h.Entries)
}
