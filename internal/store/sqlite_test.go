package store

import (
	"context"
	"path/filepath"
	"testing"

	"veracity/internal/model"
)

func openTestWriter(t *testing.T) *Writer {
	t.Helper()

	w, err := Open(filepath.Join(t.TempDir(), "checks.db"))
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	t.Cleanup(func() { _ = w.Close() })
	return w
}

func TestWriter_SaveAndRecent(t *testing.T) {
	w := openTestWriter(t)
	ctx := context.Background()

	responses := []model.CheckResponse{
		{ClaimText: "first claim", Status: model.StatusTrue, Explanation: "confirmed"},
		{ClaimText: "second claim", Status: model.StatusUnverified, Explanation: "no coverage"},
		{ClaimText: "third claim", Status: model.StatusFalse, Explanation: "contradicted"},
	}
	for i, resp := range responses {
		key := "v1-key-" + string(rune('a'+i))
		if err := w.Save(ctx, key, resp); err != nil {
			t.Fatalf("save %d failed: %v", i, err)
		}
	}

	records, err := w.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("recent failed: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}

	// Newest first
	if records[0].ClaimText != "third claim" {
		t.Errorf("expected newest record first, got %q", records[0].ClaimText)
	}
	if records[0].Status != model.StatusFalse {
		t.Errorf("unexpected status: %s", records[0].Status)
	}
	if records[0].CreatedAt.IsZero() {
		t.Error("expected a creation timestamp")
	}
}

func TestWriter_RecentLimit(t *testing.T) {
	w := openTestWriter(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		if err := w.Save(ctx, "k", model.CheckResponse{ClaimText: "claim", Status: model.StatusTrue}); err != nil {
			t.Fatal(err)
		}
	}

	records, err := w.Recent(ctx, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 2 {
		t.Errorf("expected 2 records, got %d", len(records))
	}

	// Non-positive limit falls back to the default
	records, err = w.Recent(ctx, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 5 {
		t.Errorf("expected 5 records with default limit, got %d", len(records))
	}
}

func TestWriter_EmptyHistory(t *testing.T) {
	w := openTestWriter(t)

	records, err := w.Recent(context.Background(), 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 0 {
		t.Errorf("expected no records, got %d", len(records))
	}
}

func TestOpen_CreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "checks.db")

	w, err := Open(path)
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	defer func() { _ = w.Close() }()

	if err := w.Save(context.Background(), "k", model.CheckResponse{ClaimText: "claim", Status: model.StatusTrue}); err != nil {
		t.Errorf("save failed: %v", err)
	}
}
