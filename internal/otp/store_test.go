package otp

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

func TestStore_PutOverwritesExistingEntry(t *testing.T) {
	store := NewStore()
	expiry := time.Now().Add(5 * time.Minute)

	store.Put("+1555", "111111", expiry)
	store.Put("+1555", "222222", expiry.Add(time.Minute))

	entry, ok := store.Get("+1555")
	if !ok {
		t.Fatal("expected entry to exist")
	}
	if entry.Code != "222222" {
		t.Errorf("expected code 222222, got %s", entry.Code)
	}
	if entry.Verified {
		t.Error("a fresh entry must not be verified")
	}
}

func TestStore_MarkVerifiedPreservesCodeAndExpiry(t *testing.T) {
	store := NewStore()
	expiry := time.Now().Add(5 * time.Minute)
	store.Put("+1555", "123456", expiry)

	if !store.MarkVerified("+1555") {
		t.Fatal("expected MarkVerified to succeed")
	}

	entry, ok := store.Get("+1555")
	if !ok {
		t.Fatal("expected entry to exist")
	}
	if !entry.Verified {
		t.Error("expected entry to be verified")
	}
	if entry.Code != "123456" {
		t.Errorf("code changed: got %s", entry.Code)
	}
	if !entry.ExpiresAt.Equal(expiry) {
		t.Errorf("expiry changed: got %v", entry.ExpiresAt)
	}
}

func TestStore_MarkVerifiedMissingKey(t *testing.T) {
	store := NewStore()

	if store.MarkVerified("missing") {
		t.Error("expected MarkVerified to report missing key")
	}
}

func TestStore_RemoveIsIdempotent(t *testing.T) {
	store := NewStore()
	store.Put("+1555", "123456", time.Now().Add(time.Minute))

	store.Remove("+1555")
	store.Remove("+1555") // second remove must not panic or error

	if _, ok := store.Get("+1555"); ok {
		t.Error("expected entry to be removed")
	}
}

func TestStore_ConcurrentAccessDistinctKeys(t *testing.T) {
	store := NewStore()
	expiry := time.Now().Add(5 * time.Minute)

	var wg sync.WaitGroup
	for i := 0; i < 64; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := fmt.Sprintf("+1555%03d", i)
			store.Put(key, "123456", expiry)
			store.MarkVerified(key)
			if entry, ok := store.Get(key); !ok || !entry.Verified {
				t.Errorf("key %s: lost update", key)
			}
			store.Remove(key)
		}(i)
	}
	wg.Wait()
}

func TestStore_ConcurrentAccessSameKey(t *testing.T) {
	store := NewStore()
	expiry := time.Now().Add(5 * time.Minute)
	store.Put("+1555", "123456", expiry)

	// Readers and writers on one key must never observe a torn entry.
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			store.Put("+1555", "654321", expiry)
		}()
		go func() {
			defer wg.Done()
			entry, ok := store.Get("+1555")
			if ok && entry.Code != "123456" && entry.Code != "654321" {
				t.Errorf("torn read: %q", entry.Code)
			}
		}()
	}
	wg.Wait()
}

func TestEntry_Expired(t *testing.T) {
	now := time.Now()
	entry := Entry{Code: "123456", ExpiresAt: now}

	if entry.Expired(now) {
		t.Error("entry must still be valid exactly at expiry")
	}
	if !entry.Expired(now.Add(time.Second)) {
		t.Error("entry must be expired one second past expiry")
	}
}
