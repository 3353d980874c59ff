// Package share keeps report snapshots for share links and serves them over HTTP.
package share

import (
	"encoding/json"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// SnapshotVersion is the schema version stamped on every snapshot.
const SnapshotVersion = 1

// Snapshot is a stored, sanitized report.
type Snapshot struct {
	Version     int            `json:"version"`
	CreatedAt   time.Time      `json:"createdAt"`
	ReportModel map[string]any `json:"reportModel"`
	Meta        map[string]any `json:"meta"`
}

// Stats describes the store contents.
type Stats struct {
	Count int      `json:"count"`
	IDs   []string `json:"ids"`
}

// Store is an in-memory snapshot store.
type Store struct {
	mu        sync.RWMutex
	snapshots map[string]Snapshot
	now       func() time.Time
}

// NewStore creates an empty Store
func NewStore() *Store {
	return &Store{
		snapshots: make(map[string]Snapshot),
		now:       time.Now,
	}
}

// Save stores a sanitized copy of report and returns its id.
func (s *Store) Save(report, meta map[string]any) string {
	if meta == nil {
		meta = map[string]any{}
	}
	id := uuid.NewString()
	snap := Snapshot{
		Version:     SnapshotVersion,
		CreatedAt:   s.now().UTC(),
		ReportModel: sanitize(report),
		Meta:        meta,
	}

	s.mu.Lock()
	s.snapshots[id] = snap
	s.mu.Unlock()
	return id
}

// Get returns the snapshot with id.
func (s *Store) Get(id string) (Snapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap, ok := s.snapshots[id]
	return snap, ok
}

// Delete removes the snapshot with id and reports whether it existed.
func (s *Store) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.snapshots[id]; !ok {
		return false
	}
	delete(s.snapshots, id)
	return true
}

// Stats lists the stored ids in sorted order.
func (s *Store) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.snapshots))
	for id := range s.snapshots {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return Stats{Count: len(ids), IDs: ids}
}

// sanitize copies report and blanks the raw input markup, which share
// pages never render.
func sanitize(report map[string]any) map[string]any {
	out := make(map[string]any, len(report))
	for k, v := range report {
		out[k] = v
	}
	if v, ok := out["input"]; ok && v != nil && v != "" {
		out["input"] = nil
	}
	return out
}

// decodeObject reports whether raw is a JSON object and decodes it.
func decodeObject(raw json.RawMessage) (map[string]any, bool) {
	if len(raw) == 0 {
		return nil, false
	}
	var obj map[string]any
	if err := json.Unmarshal(raw, &obj); err != nil || obj == nil {
		return nil, false
	}
	return obj, true
}
