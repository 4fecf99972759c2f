// Package store keeps a bbolt-backed index of content digests so separate
// runs can tell whether a file's bytes changed between checks.
package store

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	bolt "go.etcd.io/bbolt"
)

const bucketDigests = "digests"

// Entry records the last known content digest for one file name.
type Entry struct {
	Hash      string    `json:"hash"`
	Algorithm string    `json:"algorithm"`
	FirstSeen time.Time `json:"first_seen"`
	LastSeen  time.Time `json:"last_seen"`
}

// DigestStore is a bbolt-backed digest index.
type DigestStore struct {
	db *bolt.DB
	mu sync.Mutex
}

// Open creates or opens the digest store at the given path.
func Open(path string) (*DigestStore, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("store: open %s: %w", path, err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketDigests))
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("store: init bucket: %w", err)
	}

	return &DigestStore{db: db}, nil
}

// Record stores the digest for name and returns the previously recorded
// entry, or nil on first sighting. FirstSeen survives updates so it marks
// the first time the name was ever recorded.
func (s *DigestStore) Record(name, hash, algorithm string) (*Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	var prev *Entry
	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketDigests))
		if raw := b.Get([]byte(name)); raw != nil {
			var e Entry
			if err := json.Unmarshal(raw, &e); err != nil {
				return fmt.Errorf("unmarshal entry %s: %w", name, err)
			}
			prev = &e
		}

		entry := Entry{Hash: hash, Algorithm: algorithm, FirstSeen: now, LastSeen: now}
		if prev != nil {
			entry.FirstSeen = prev.FirstSeen
		}
		raw, err := json.Marshal(entry)
		if err != nil {
			return fmt.Errorf("marshal entry %s: %w", name, err)
		}
		return b.Put([]byte(name), raw)
	})
	if err != nil {
		return nil, fmt.Errorf("store: record %s: %w", name, err)
	}
	return prev, nil
}

// Get returns the recorded entry for name, or nil when the name has never
// been recorded.
func (s *DigestStore) Get(name string) (*Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var entry *Entry
	err := s.db.View(func(tx *bolt.Tx) error {
		raw := tx.Bucket([]byte(bucketDigests)).Get([]byte(name))
		if raw == nil {
			return nil
		}
		var e Entry
		if err := json.Unmarshal(raw, &e); err != nil {
			return fmt.Errorf("unmarshal entry %s: %w", name, err)
		}
		entry = &e
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("store: get %s: %w", name, err)
	}
	return entry, nil
}

// Close releases the underlying database.
func (s *DigestStore) Close() error {
	return s.db.Close()
}
