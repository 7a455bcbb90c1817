package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"sync"
)

var (
	errStoreNotFound      = errors.New("database file not found")
	errStoreInvalidFormat = errors.New("invalid database format")
)

// recordStore persists one JSON array of flat records in a single file.
// The file is the sole source of truth: every operation reads it in full
// and every mutation rewrites it in full. mu is held across each whole
// load+mutate+save cycle so concurrent requests in this process cannot
// interleave on the same file; nothing guards against other processes.
type recordStore struct {
	path string
	mu   sync.Mutex
}

func newRecordStore(path string) *recordStore {
	return &recordStore{path: path}
}

func (s *recordStore) load() ([]record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked()
}

func (s *recordStore) loadLocked() ([]record, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", errStoreNotFound, s.path)
		}
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}
	var records []record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", errStoreInvalidFormat, s.path, err)
	}
	return records, nil
}

func (s *recordStore) save(records []record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveLocked(records)
}

func (s *recordStore) saveLocked(records []record) error {
	if records == nil {
		records = []record{}
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create %s: %w", filepath.Dir(s.path), err)
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", s.path, err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", s.path, err)
	}
	return nil
}

// findByID returns the first record whose idField equals id, or nil, nil
// when there is no match.
func (s *recordStore) findByID(idField, id string) (record, error) {
	records, err := s.load()
	if err != nil {
		return nil, err
	}
	for _, rec := range records {
		if rec[idField] == id {
			return rec, nil
		}
	}
	return nil, nil
}

// findByField returns every record whose field equals value, in file order.
func (s *recordStore) findByField(field string, value any) ([]record, error) {
	records, err := s.load()
	if err != nil {
		return nil, err
	}
	var matches []record
	for _, rec := range records {
		if rec[field] == value {
			matches = append(matches, rec)
		}
	}
	return matches, nil
}

func (s *recordStore) add(rec record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	records, err := s.loadLocked()
	if err != nil {
		return err
	}
	records = append(records, rec)
	return s.saveLocked(records)
}

// update overwrites the keys of fields that carry non-nil values on the
// first record matching id. It reports whether a match was found; the
// file is only rewritten on a match.
func (s *recordStore) update(idField, id string, fields record) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	records, err := s.loadLocked()
	if err != nil {
		return false, err
	}
	for _, rec := range records {
		if rec[idField] != id {
			continue
		}
		for key, value := range fields {
			if value == nil {
				continue
			}
			rec[key] = value
		}
		if err := s.saveLocked(records); err != nil {
			return false, err
		}
		return true, nil
	}
	return false, nil
}

func (s *recordStore) remove(idField, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	records, err := s.loadLocked()
	if err != nil {
		return false, err
	}
	for i, rec := range records {
		if rec[idField] != id {
			continue
		}
		records = append(records[:i], records[i+1:]...)
		if err := s.saveLocked(records); err != nil {
			return false, err
		}
		return true, nil
	}
	return false, nil
}

// nextID returns max(numeric idField values)+1 as a decimal string, "1"
// for an empty store. Records whose idField does not parse are skipped,
// not rejected.
func (s *recordStore) nextID(idField string) (string, error) {
	records, err := s.load()
	if err != nil {
		return "", err
	}
	maxID := 0
	for _, rec := range records {
		n, ok := numericID(rec[idField])
		if !ok {
			continue
		}
		if n > maxID {
			maxID = n
		}
	}
	return strconv.Itoa(maxID + 1), nil
}

// numericID interprets an id value as an integer. Stores written by this
// program hold string ids; float64 covers hand-edited files where bare
// JSON numbers slipped in.
func numericID(v any) (int, bool) {
	switch id := v.(type) {
	case string:
		n, err := strconv.Atoi(id)
		if err != nil {
			return 0, false
		}
		return n, true
	case float64:
		return int(id), true
	default:
		return 0, false
	}
}
