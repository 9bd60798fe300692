package postgres

import (
	"database/sql"
	"fmt"
	"slices"
	"testing"

	"github.com/lib/pq"
)

func TestIsNotFound(t *testing.T) {
	t.Run("matches wrapped no rows", func(t *testing.T) {
		if !isNotFound(fmt.Errorf("select snapshot: %w", sql.ErrNoRows)) {
			t.Fatalf("expected true for wrapped sql.ErrNoRows")
		}
	})

	t.Run("ignores unrelated error", func(t *testing.T) {
		if isNotFound(fakeErr("pq: connection refused")) {
			t.Fatalf("expected false for unrelated error")
		}
	})
}

func TestIsUndefinedTable(t *testing.T) {
	t.Run("matches by code", func(t *testing.T) {
		if !isUndefinedTable(&pq.Error{Code: "42P01"}) {
			t.Fatalf("expected true for 42P01")
		}
	})

	t.Run("matches by message", func(t *testing.T) {
		if !isUndefinedTable(fakeErr("pq: relation \"day_snapshots\" does not exist")) {
			t.Fatalf("expected true for relation missing message")
		}
	})

	t.Run("ignores nil", func(t *testing.T) {
		if isUndefinedTable(nil) {
			t.Fatalf("expected false for nil")
		}
	})
}

func TestChunk(t *testing.T) {
	got := chunk([]int{1, 2, 3, 4, 5}, 2)
	if len(got) != 3 || !slices.Equal(got[2], []int{5}) {
		t.Fatalf("unexpected chunks: %v", got)
	}
	if len(chunk([]int{}, 2)) != 0 {
		t.Fatalf("empty input must produce no chunks")
	}
}

func TestUniqueInt64_KeepsFirstOccurrenceOrder(t *testing.T) {
	got := uniqueInt64([]int64{7, 3, 7, 1, 3})
	if !slices.Equal(got, []int64{7, 3, 1}) {
		t.Fatalf("unexpected unique ids: %v", got)
	}
}

func TestNullableString(t *testing.T) {
	if nullableString("  ") != nil {
		t.Fatalf("blank string must be nil")
	}
	if got := nullableString(" Wikidata "); got == nil || *got != "Wikidata" {
		t.Fatalf("unexpected value: %v", got)
	}
}

type fakeErr string

func (e fakeErr) Error() string { return string(e) }
