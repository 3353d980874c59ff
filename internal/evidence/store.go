package evidence

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/dotcommander/aeoscore/internal/kv"
	"github.com/dotcommander/aeoscore/internal/schema"
	"github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"
)

// DefaultKey is the key the history blob lives under.
const DefaultKey = "__evidenceV1"

// Store persists a History as one JSON blob in a kv.Store.
//
// Storage is best effort: read and write failures are logged as warnings
// and the operation degrades to "no history" or a no-op. Read-modify-write
// cycles are serialized inside the process; separate processes sharing a
// backend are assumed to be a single writer.
type Store struct {
	kv        kv.Store
	key       string
	log       logrus.FieldLogger
	validator *schema.Validator
	mu        *sync.Mutex
}

// NewStore wraps backend. An empty key selects DefaultKey.
func NewStore(backend kv.Store, key string, log logrus.FieldLogger) *Store {
	if key == "" {
		key = DefaultKey
	}
	if log == nil {
		log = logrus.StandardLogger()
	}

	validator, err := schema.NewValidator()
	if err != nil {
		log.WithError(err).Warn("evidence schema unavailable, history blobs will not be validated")
	}

	return &Store{
		kv:        backend,
		key:       key,
		log:       log.WithField("key", key),
		validator: validator,
		mu:        &sync.Mutex{},
	}
}

// Key returns the kv key this store reads and writes.
func (s *Store) Key() string { return s.key }

// For returns the store of one document's own history, kept in the same
// backend under "<key>:<document>". An empty document is the base history.
// Derived stores share one lock.
func (s *Store) For(document string) *Store {
	if document == "" {
		return s
	}
	key := s.key + ":" + document
	return &Store{
		kv:        s.kv,
		key:       key,
		log:       s.log.WithField("key", key),
		validator: s.validator,
		mu:        s.mu,
	}
}

// Load reads the history. It returns nil when nothing is stored or the
// stored blob cannot be used.
func (s *Store) Load() *History {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

// Append adds entry to the stored history and persists it.
// It reports false for duplicate ids and for storage failures.
func (s *Store) Append(entry Entry) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	h := s.load()
	if h == nil {
		h = NewHistory()
	}
	if !h.Append(entry) {
		s.log.WithField("id", entry.Meta.ID).Debug("evidence entry already recorded, skipping append")
		return false
	}
	return s.save(h)
}

// Select makes id the stored current entry.
func (s *Store) Select(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	h := s.load()
	if h == nil || !h.Select(id) {
		return false
	}
	return s.save(h)
}

func (s *Store) load() *History {
	data, err := s.kv.Get(s.key)
	if errors.Is(err, kv.ErrNotFound) {
		return nil
	}
	if err != nil {
		s.log.WithError(err).Warn("evidence history unreadable, continuing without history")
		return nil
	}

	h, err := s.decode(data)
	if err != nil {
		s.log.WithError(err).Warn("evidence history corrupt, continuing without history")
		return nil
	}
	return h
}

func (s *Store) save(h *History) bool {
	if h.Entries == nil {
		h.Entries = []Entry{}
	}
	data, err := json.Marshal(h)
	if err != nil {
		s.log.WithError(err).Warn("evidence history not saved")
		return false
	}
	if err := s.kv.Set(s.key, data); err != nil {
		s.log.WithError(err).Warn("evidence history not saved")
		return false
	}
	return true
}

// decode parses a stored blob. A legacy single-entry object (no history
// and no currentId) is upgraded to a one-entry history.
func (s *Store) decode(data []byte) (*History, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("invalid JSON")
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return nil, fmt.Errorf("expected a JSON object, got %s", root.Type)
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode history: %w", err)
	}

	if !root.Get("history").Exists() && !root.Get("currentId").Exists() {
		if s.validator != nil {
			if err := s.validator.ValidateEntry(raw); err != nil {
				return nil, fmt.Errorf("legacy entry: %w", err)
			}
		}
		var entry Entry
		if err := json.Unmarshal(data, &entry); err != nil {
			return nil, fmt.Errorf("decode legacy entry: %w", err)
		}
		h := NewHistory()
		h.Append(entry)
		return h, nil
	}

	if s.validator != nil {
		if err := s.validator.ValidateHistory(raw); err != nil {
			return nil, err
		}
	}
	var h History
	if err := json.Unmarshal(data, &h); err != nil {
		return nil, fmt.Errorf("decode history: %w", err)
	}
	if h.Entries == nil {
		h.Entries = []Entry{}
	}
	return &h, nil
}
