package syncmeta

import (
	"errors"
	"testing"
	"time"
)

func TestDecode_RoundTripKeepsBounds(t *testing.T) {
	t.Parallel()

	first := time.Date(2026, 10, 17, 13, 0, 0, 0, time.UTC)
	last := first.Add(7 * time.Hour)
	payload, err := Encode(Meta{Date: "2026-10-17", FirstMatchAt: &first, LastMatchAt: &last, MatchCount: 9})
	if err != nil {
		t.Fatalf("Encode error: %v", err)
	}

	got, err := Decode(payload)
	if err != nil {
		t.Fatalf("Decode error: %v", err)
	}
	if !got.HasMatches() || !got.FirstMatchAt.Equal(first) || !got.LastMatchAt.Equal(last) {
		t.Fatalf("unexpected meta %+v", got)
	}
}

func TestDecode_Malformed(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"not json":       "{oops",
		"missing date":   `{"match_count":3}`,
		"negative count": `{"date":"2026-10-17","match_count":-1}`,
		"wrong type":     `{"date":"2026-10-17","first_match_at":"soon"}`,
	}
	for name, raw := range cases {
		if _, err := Decode([]byte(raw)); !errors.Is(err, ErrMalformed) {
			t.Fatalf("%s: expected ErrMalformed, got %v", name, err)
		}
	}
}

func TestMeta_HasMatches_EmptyDay(t *testing.T) {
	t.Parallel()

	if (Meta{Date: "2026-10-17"}).HasMatches() {
		t.Fatalf("a day without matches must not report bounds")
	}
}
