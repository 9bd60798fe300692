package app

import (
	"strings"
	"testing"
)

func TestFormatDBQueryForTrace(t *testing.T) {
	got := formatDBQueryForTrace(" SELECT   *\nFROM day_snapshots \t WHERE slot = $1 ")
	want := "SELECT * FROM day_snapshots WHERE slot = $1"
	if got != want {
		t.Fatalf("unexpected formatted query: %q", got)
	}

	long := formatDBQueryForTrace("SELECT " + strings.Repeat("a, ", 400) + "b FROM team_names")
	if len(long) != maxTracedQueryLength+3 || !strings.HasSuffix(long, "...") {
		t.Fatalf("expected truncated query, got len=%d", len(long))
	}
}
