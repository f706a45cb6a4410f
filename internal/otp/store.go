package otp

import (
	"hash/fnv"
	"sync"
	"time"
)

// Entry is one pending verification challenge for a key. The key is a
// phone number, or a derived key such as "reset_"+phone for password
// resets. At most one live entry exists per key; issuing a new code
// replaces any prior entry.
type Entry struct {
	Code      string
	ExpiresAt time.Time
	Verified  bool
}

// Expired reports whether the entry's lifetime has elapsed at now.
func (e Entry) Expired(now time.Time) bool {
	return now.After(e.ExpiresAt)
}

const shardCount = 16

type shard struct {
	mu      sync.RWMutex
	entries map[string]Entry
}

// Store is a process-wide keyed store of pending one-time codes.
// All operations are linearizable per key; distinct keys live on
// independent shards and proceed fully in parallel. Access is purely
// in-memory and never blocks on I/O.
type Store struct {
	shards [shardCount]*shard
}

// NewStore creates an empty OTP store.
func NewStore() *Store {
	s := &Store{}
	for i := range s.shards {
		s.shards[i] = &shard{entries: make(map[string]Entry)}
	}
	return s
}

func (s *Store) shardFor(key string) *shard {
	h := fnv.New32a()
	h.Write([]byte(key))
	return s.shards[h.Sum32()%shardCount]
}

// Put unconditionally replaces any existing entry for key.
// Overwrite is always legal; there is no accumulation of codes.
func (s *Store) Put(key, code string, expiresAt time.Time) {
	sh := s.shardFor(key)
	sh.mu.Lock()
	sh.entries[key] = Entry{Code: code, ExpiresAt: expiresAt}
	sh.mu.Unlock()
}

// Get returns the current entry for key and whether one exists.
func (s *Store) Get(key string) (Entry, bool) {
	sh := s.shardFor(key)
	sh.mu.RLock()
	e, ok := sh.entries[key]
	sh.mu.RUnlock()
	return e, ok
}

// MarkVerified sets the verified flag on the entry for key, preserving
// its code and expiry. Returns false if no entry exists for the key.
func (s *Store) MarkVerified(key string) bool {
	sh := s.shardFor(key)
	sh.mu.Lock()
	defer sh.mu.Unlock()
	e, ok := sh.entries[key]
	if !ok {
		return false
	}
	e.Verified = true
	sh.entries[key] = e
	return true
}

// Remove deletes the entry for key if present. Removing an absent key
// is a no-op.
func (s *Store) Remove(key string) {
	sh := s.shardFor(key)
	sh.mu.Lock()
	delete(sh.entries, key)
	sh.mu.Unlock()
}
