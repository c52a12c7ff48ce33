// Package storage keeps the per-scope invocation history on top of the JSON
// datastore. A scope is a guild, a direct-message channel or a CLI session.
package storage

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/Jaideep25/Pokedex/datastore"
)

const historyLimit = 20

const keyPrefix = "history:"

type Storage struct {
	ds *datastore.DataStore
}

// InvocationRecord is one handled command.
type InvocationRecord struct {
	ID        string        `json:"id"`
	Command   string        `json:"command"`
	Alias     string        `json:"alias,omitempty"`
	UserID    string        `json:"user_id,omitempty"`
	Username  string        `json:"username,omitempty"`
	ChannelID string        `json:"channel_id,omitempty"`
	Arguments []string      `json:"arguments"`
	Language  string        `json:"language"`
	Kind      string        `json:"kind"`
	Code      string        `json:"code,omitempty"`
	Duration  time.Duration `json:"duration"`
	Datetime  time.Time     `json:"datetime"`
}

type record struct {
	History []InvocationRecord `json:"history"`
}

// New opens the datastore at filePath.
func New(filePath string, log zerolog.Logger) (*Storage, error) {
	cfg := datastore.DefaultConfig(filePath)
	cfg.Logger = log
	ds, err := datastore.Open(cfg)
	if err != nil {
		return nil, err
	}
	return &Storage{ds: ds}, nil
}

func (s *Storage) Close() error {
	return s.ds.Close()
}

// AppendInvocation adds rec to the history of scope, keeping the newest entries.
func (s *Storage) AppendInvocation(scope string, rec InvocationRecord) error {
	err := datastore.Update(s.ds, keyPrefix+scope, func(cur record, _ bool) (record, error) {
		cur.History = append(cur.History, rec)
		if len(cur.History) > historyLimit {
			cur.History = cur.History[len(cur.History)-historyLimit:]
		}
		return cur, nil
	})
	if err != nil {
		return fmt.Errorf("append invocation: %w", err)
	}
	return nil
}

// History returns the invocations of scope, oldest first.
func (s *Storage) History(scope string) ([]InvocationRecord, error) {
	var rec record
	if _, err := s.ds.Get(keyPrefix+scope, &rec); err != nil {
		return nil, fmt.Errorf("fetch history: %w", err)
	}
	return rec.History, nil
}

// Scopes lists every scope with recorded history.
func (s *Storage) Scopes() []string {
	var scopes []string
	for _, k := range s.ds.Keys() {
		if scope, ok := strings.CutPrefix(k, keyPrefix); ok && scope != "" {
			scopes = append(scopes, scope)
		}
	}
	return scopes
}

// Clear forgets the whole history of scope.
func (s *Storage) Clear(scope string) error {
	if err := s.ds.Delete(keyPrefix + scope); err != nil {
		return fmt.Errorf("clear history: %w", err)
	}
	return nil
}

// Stats reports the size of the underlying datastore.
func (s *Storage) Stats() datastore.Stats {
	return s.ds.Stats()
}

// PruneOlderThan drops history entries recorded before cutoff and reports
// how many were removed. A scope left without entries is deleted.
func (s *Storage) PruneOlderThan(cutoff time.Time) (int, error) {
	removed := 0
	for _, scope := range s.Scopes() {
		err := datastore.Update(s.ds, keyPrefix+scope, func(cur record, _ bool) (record, error) {
			kept := cur.History[:0]
			for _, h := range cur.History {
				if h.Datetime.Before(cutoff) {
					removed++
					continue
				}
				kept = append(kept, h)
			}
			if len(kept) == 0 {
				return cur, datastore.ErrRemove
			}
			cur.History = kept
			return cur, nil
		})
		if err != nil {
			return removed, fmt.Errorf("prune %s: %w", scope, err)
		}
	}
	return removed, nil
}
