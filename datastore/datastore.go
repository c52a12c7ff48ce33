// Package datastore is a small JSON-file backed key/value store. Values live
// in memory and are flushed to disk periodically and on Close, with atomic
// writes and rotating backups.
package datastore

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

var (
	ErrClosed      = errors.New("datastore is closed")
	ErrMemoryLimit = errors.New("datastore memory limit exceeded")
)

// ErrRemove, returned by an Update callback, deletes the key instead of storing
// the returned value. Update itself then returns nil.
var ErrRemove = errors.New("datastore: remove key")

type Config struct {
	FilePath         string
	AutoSaveInterval time.Duration
	// MaxMemorySize caps the approximate JSON size of all values; 0 disables it.
	MaxMemorySize int64
	BackupCount   int
	Logger        zerolog.Logger
}

func DefaultConfig(filePath string) Config {
	return Config{
		FilePath:         filePath,
		AutoSaveInterval: 10 * time.Second,
		MaxMemorySize:    16 * 1024 * 1024,
		BackupCount:      3,
		Logger:           zerolog.Nop(),
	}
}

type DataStore struct {
	mu           sync.RWMutex
	data         map[string]json.RawMessage
	memorySize   int64
	lastChecksum string
	closed       bool

	cfg    Config
	cancel context.CancelFunc
	wg     sync.WaitGroup
	log    zerolog.Logger
}

// Open loads cfg.FilePath, creating it when missing, and starts auto-saving.
func Open(cfg Config) (*DataStore, error) {
	if cfg.FilePath == "" {
		return nil, errors.New("datastore: file path is required")
	}
	if cfg.AutoSaveInterval <= 0 {
		cfg.AutoSaveInterval = 10 * time.Second
	}
	if err := os.MkdirAll(filepath.Dir(cfg.FilePath), 0o755); err != nil {
		return nil, fmt.Errorf("datastore: create directory: %w", err)
	}

	ds := &DataStore{
		data: make(map[string]json.RawMessage),
		cfg:  cfg,
		log:  cfg.Logger.With().Str("component", "datastore").Logger(),
	}

	switch _, err := os.Stat(cfg.FilePath); {
	case errors.Is(err, os.ErrNotExist):
		if err := writeFileAtomic(cfg.FilePath, []byte("{}")); err != nil {
			return nil, fmt.Errorf("datastore: create file: %w", err)
		}
	case err != nil:
		return nil, fmt.Errorf("datastore: stat file: %w", err)
	default:
		if err := ds.load(); err != nil {
			return nil, err
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	ds.cancel = cancel
	ds.wg.Add(1)
	go ds.autoSave(ctx)

	return ds, nil
}

// Get decodes the value under key into v and reports whether it existed.
func (ds *DataStore) Get(key string, v any) (bool, error) {
	ds.mu.RLock()
	defer ds.mu.RUnlock()
	if ds.closed {
		return false, ErrClosed
	}

	raw, ok := ds.data[key]
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return true, fmt.Errorf("datastore: decode %q: %w", key, err)
	}
	return true, nil
}

// Put stores v under key.
func (ds *DataStore) Put(key string, v any) error {
	ds.mu.Lock()
	defer ds.mu.Unlock()
	return ds.putLocked(key, v)
}

// Update runs a read-modify-write on key under the store lock. fn receives
// the decoded current value (zero when absent) and returns the value to store.
func Update[T any](ds *DataStore, key string, fn func(cur T, found bool) (T, error)) error {
	ds.mu.Lock()
	defer ds.mu.Unlock()
	if ds.closed {
		return ErrClosed
	}

	var cur T
	raw, found := ds.data[key]
	if found {
		if err := json.Unmarshal(raw, &cur); err != nil {
			return fmt.Errorf("datastore: decode %q: %w", key, err)
		}
	}

	next, err := fn(cur, found)
	if errors.Is(err, ErrRemove) {
		ds.deleteLocked(key)
		return nil
	}
	if err != nil {
		return err
	}
	return ds.putLocked(key, next)
}

func (ds *DataStore) putLocked(key string, v any) error {
	if ds.closed {
		return ErrClosed
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("datastore: encode %q: %w", key, err)
	}

	size := ds.memorySize - int64(len(ds.data[key])) + int64(len(raw))
	if ds.cfg.MaxMemorySize > 0 && size > ds.cfg.MaxMemorySize {
		return ErrMemoryLimit
	}
	ds.memorySize = size
	ds.data[key] = raw
	return nil
}

// Delete removes key; a missing key is not an error.
func (ds *DataStore) Delete(key string) error {
	ds.mu.Lock()
	defer ds.mu.Unlock()
	if ds.closed {
		return ErrClosed
	}
	ds.deleteLocked(key)
	return nil
}

func (ds *DataStore) deleteLocked(key string) {
	if raw, ok := ds.data[key]; ok {
		ds.memorySize -= int64(len(raw))
		delete(ds.data, key)
	}
}

// Keys returns every key, sorted.
func (ds *DataStore) Keys() []string {
	ds.mu.RLock()
	defer ds.mu.RUnlock()
	keys := make([]string, 0, len(ds.data))
	for k := range ds.data {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Save flushes to disk now.
func (ds *DataStore) Save() error {
	ds.mu.RLock()
	closed := ds.closed
	ds.mu.RUnlock()
	if closed {
		return ErrClosed
	}
	return ds.save()
}

// Close stops auto-saving and writes a final snapshot.
func (ds *DataStore) Close() error {
	ds.mu.Lock()
	if ds.closed {
		ds.mu.Unlock()
		return nil
	}
	ds.closed = true
	ds.mu.Unlock()

	ds.cancel()
	ds.wg.Wait()
	return ds.save()
}

// Stats describes the store for diagnostics.
type Stats struct {
	Keys       int    `json:"keys"`
	MemorySize int64  `json:"memory_size"`
	FilePath   string `json:"file_path"`
	Saved      bool   `json:"saved"`
}

func (ds *DataStore) Stats() Stats {
	ds.mu.RLock()
	defer ds.mu.RUnlock()
	return Stats{
		Keys:       len(ds.data),
		MemorySize: ds.memorySize,
		FilePath:   ds.cfg.FilePath,
		Saved:      ds.lastChecksum != "",
	}
}

func (ds *DataStore) save() error {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	data, err := json.MarshalIndent(ds.data, "", "  ")
	if err != nil {
		return fmt.Errorf("datastore: marshal: %w", err)
	}
	sum := checksum(data)
	if sum == ds.lastChecksum {
		return nil
	}

	if ds.cfg.BackupCount > 0 {
		if err := ds.backup(); err != nil {
			ds.log.Warn().Err(err).Msg("backup failed")
		}
	}
	if err := writeFileAtomic(ds.cfg.FilePath, data); err != nil {
		return err
	}

	written, err := os.ReadFile(ds.cfg.FilePath)
	if err != nil {
		return fmt.Errorf("datastore: verify: %w", err)
	}
	if checksum(written) != sum {
		return errors.New("datastore: verify: checksum mismatch")
	}

	ds.lastChecksum = sum
	return nil
}

func (ds *DataStore) load() error {
	data, err := os.ReadFile(ds.cfg.FilePath)
	if err != nil {
		return fmt.Errorf("datastore: read: %w", err)
	}

	var m map[string]json.RawMessage
	if err := json.Unmarshal(data, &m); err != nil {
		return fmt.Errorf("datastore: invalid json in %s: %w", ds.cfg.FilePath, err)
	}
	if m == nil {
		m = make(map[string]json.RawMessage)
	}

	ds.data = m
	ds.memorySize = 0
	for _, raw := range m {
		ds.memorySize += int64(len(raw))
	}
	ds.lastChecksum = checksum(data)
	return nil
}

func (ds *DataStore) autoSave(ctx context.Context) {
	defer ds.wg.Done()

	ticker := time.NewTicker(ds.cfg.AutoSaveInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := ds.save(); err != nil {
				ds.log.Error().Err(err).Msg("auto-save failed")
			}
		}
	}
}

// backup copies the current file aside and prunes the oldest copies.
func (ds *DataStore) backup() error {
	src, err := os.Open(ds.cfg.FilePath)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	defer src.Close()

	name := fmt.Sprintf("%s.backup.%s", ds.cfg.FilePath, time.Now().Format("20060102_150405.000000"))
	dst, err := os.Create(name)
	if err != nil {
		return err
	}
	defer dst.Close()
	if _, err := io.Copy(dst, src); err != nil {
		return err
	}

	matches, err := filepath.Glob(ds.cfg.FilePath + ".backup.*")
	if err != nil || len(matches) <= ds.cfg.BackupCount {
		return err
	}
	// Timestamped names sort chronologically.
	sort.Strings(matches)
	for _, old := range matches[:len(matches)-ds.cfg.BackupCount] {
		os.Remove(old)
	}
	return nil
}

func writeFileAtomic(path string, data []byte) error {
	tmp := path + ".tmp"
	f, err := os.OpenFile(tmp, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("datastore: open temp file: %w", err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("datastore: write temp file: %w", err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("datastore: sync temp file: %w", err)
	}
	f.Close()

	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("datastore: rename temp file: %w", err)
	}
	return nil
}

func checksum(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
