package cache

import (
	"testing"
	"time"

	"veracity/internal/model"
)

func testEntry() model.CacheEntry {
	return model.CacheEntry{
		Structured: model.StructuredClaim{
			Claim:      "The Eiffel Tower is 330 meters tall",
			Entities:   []string{"Eiffel Tower"},
			TimePeriod: "unknown",
		},
		Verdict: model.Verdict{
			Status:      model.StatusTrue,
			Explanation: "Multiple sources confirm the height.",
			Sources:     []string{"https://example.com/eiffel"},
		},
	}
}

func TestStore_RoundTrip(t *testing.T) {
	store := NewStore(NewMemoryCache(1*time.Hour, 10*time.Minute), 1*time.Hour)
	key := Key("the eiffel tower is 330 meters tall")

	if _, found := store.Lookup(key); found {
		t.Fatal("expected miss before write")
	}

	if err := store.Write(key, testEntry()); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	entry, found := store.Lookup(key)
	if !found {
		t.Fatal("expected hit after write")
	}
	if entry.Key != key {
		t.Errorf("expected stored key %s, got %s", key, entry.Key)
	}
	if entry.CreatedAt.IsZero() {
		t.Error("expected CreatedAt to be stamped on write")
	}
	if entry.Verdict.Status != model.StatusTrue {
		t.Errorf("expected status True, got %s", entry.Verdict.Status)
	}
	if entry.Structured.Claim != "The Eiffel Tower is 330 meters tall" {
		t.Errorf("unexpected structured claim: %q", entry.Structured.Claim)
	}
}

func TestStore_CorruptEntryReadsAsMiss(t *testing.T) {
	mem := NewMemoryCache(1*time.Hour, 10*time.Minute)
	store := NewStore(mem, 1*time.Hour)
	key := Key("corrupt claim")

	if err := mem.Set(key, []byte("{not json"), 1*time.Hour); err != nil {
		t.Fatal(err)
	}

	if _, found := store.Lookup(key); found {
		t.Error("expected corrupt entry to read as a miss")
	}
	// The unreadable entry must also be evicted
	if _, found := mem.Get(key); found {
		t.Error("expected corrupt entry to be deleted")
	}
}

func TestStore_RejectionMarker(t *testing.T) {
	store := NewStore(NewMemoryCache(1*time.Hour, 10*time.Minute), 1*time.Hour)
	key := Key("blocked claim")

	if err := store.Write(key, model.CacheEntry{RejectedCategory: model.CategoryPII}); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	entry, found := store.Lookup(key)
	if !found {
		t.Fatal("expected hit")
	}
	if entry.RejectedCategory != model.CategoryPII {
		t.Errorf("expected rejection category pii, got %q", entry.RejectedCategory)
	}
	// Markers carry the decision only, never the blocked content
	if entry.Structured.Claim != "" || entry.Verdict.Explanation != "" {
		t.Error("rejection marker must not carry claim content")
	}
}

func TestStore_NilIsBypass(t *testing.T) {
	var store *Store

	if _, found := store.Lookup(Key("anything")); found {
		t.Error("nil store lookup must miss")
	}
	if err := store.Write(Key("anything"), testEntry()); err != nil {
		t.Errorf("nil store write must be a no-op, got %v", err)
	}
}
