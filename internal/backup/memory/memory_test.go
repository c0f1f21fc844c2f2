package memory

import (
	"context"
	"testing"

	"lifelog/internal/backup"
	"lifelog/internal/core"
)

func TestMemoryStoreAppend(t *testing.T) {
	s := New()

	ref, err := s.Append(context.Background(), core.DomainExpenses, backup.Row{"2024-05-01", "20.00"})
	if err != nil || ref != "mem:expenses:1" {
		t.Fatalf("unexpected append: ref=%q err=%v", ref, err)
	}

	ref, err = s.Append(context.Background(), core.DomainExpenses, backup.Row{"2024-05-02", "5.00"})
	if err != nil || ref != "mem:expenses:2" {
		t.Fatalf("unexpected second append: ref=%q err=%v", ref, err)
	}

	if rows := s.Rows(core.DomainExpenses); len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	// Domains are isolated from each other.
	if rows := s.Rows(core.DomainSleep); len(rows) != 0 {
		t.Fatalf("expected no sleep rows, got %d", len(rows))
	}
}

func TestMemoryStoreRejectsEmptyRow(t *testing.T) {
	s := New()
	if _, err := s.Append(context.Background(), core.DomainStudy, nil); err == nil {
		t.Fatal("expected error for empty row")
	}
}
