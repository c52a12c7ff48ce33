// Package lookup is the read-only key to record store the argument resolver
// queries. Keys are normalized with textutil.Key; a miss is a normal result.
package lookup

import (
	"context"
	"sort"
	"sync"

	"github.com/Jaideep25/Pokedex/internal/textutil"
)

// Record is one known resource name.
type Record struct {
	Category Category `json:"category" yaml:"-"`
	Key      string   `json:"key" yaml:"-"`
	FlexForm string   `json:"flex" yaml:"flex"`
	Display  string   `json:"name" yaml:"name"`
}

// Store answers existence and key to API-form queries. Implementations must
// be safe for concurrent readers.
type Store interface {
	Get(ctx context.Context, cat Category, key string) (Record, bool, error)
	Keys(ctx context.Context, cat Category) ([]string, error)
}

// NewRecord builds a record from a display name and its API form.
// An empty flex form is derived from the display name.
func NewRecord(cat Category, display, flex string) Record {
	if flex == "" {
		flex = textutil.FlexForm(display)
	}
	return Record{
		Category: cat,
		Key:      textutil.Key(display),
		FlexForm: flex,
		Display:  display,
	}
}

// Memory is an in-process Store, used for tests and small seed sets.
type Memory struct {
	mu      sync.RWMutex
	records map[Category]map[string]Record
}

// NewMemory returns a store holding records.
func NewMemory(records ...Record) *Memory {
	m := &Memory{records: make(map[Category]map[string]Record)}
	m.Put(records...)
	return m
}

// Put adds or replaces records.
func (m *Memory) Put(records ...Record) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range records {
		byKey, ok := m.records[r.Category]
		if !ok {
			byKey = make(map[string]Record)
			m.records[r.Category] = byKey
		}
		byKey[r.Key] = r
	}
}

func (m *Memory) Get(_ context.Context, cat Category, key string) (Record, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.records[cat][key]
	return r, ok, nil
}

func (m *Memory) Keys(_ context.Context, cat Category) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	keys := make([]string, 0, len(m.records[cat]))
	for k := range m.records[cat] {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

// All returns every record, ordered by category then key.
func (m *Memory) All() []Record {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []Record
	for _, cat := range Categories {
		byKey := m.records[cat]
		keys := make([]string, 0, len(byKey))
		for k := range byKey {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			out = append(out, byKey[k])
		}
	}
	return out
}
