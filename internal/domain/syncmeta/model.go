package syncmeta

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bytedance/sonic"
)

// ErrMalformed is returned by repositories when the stored document cannot be decoded.
var ErrMalformed = errors.New("sync meta is malformed")

// Meta describes today's fixtures as of the last ingest. Bounds are nil on a day without matches.
type Meta struct {
	Date         string     `json:"date"`
	FirstMatchAt *time.Time `json:"first_match_at"`
	LastMatchAt  *time.Time `json:"last_match_at"`
	MatchCount   int        `json:"match_count"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

func (m Meta) HasMatches() bool {
	return m.MatchCount > 0 && m.FirstMatchAt != nil && m.LastMatchAt != nil
}

func Encode(meta Meta) ([]byte, error) {
	payload, err := sonic.Marshal(meta)
	if err != nil {
		return nil, fmt.Errorf("encode sync meta: %w", err)
	}
	return payload, nil
}

// Decode parses a stored document. Anything that is not a dated Meta is ErrMalformed.
func Decode(payload []byte) (Meta, error) {
	var meta Meta
	if err := sonic.Unmarshal(payload, &meta); err != nil {
		return Meta{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if strings.TrimSpace(meta.Date) == "" {
		return Meta{}, fmt.Errorf("%w: date is empty", ErrMalformed)
	}
	if meta.MatchCount < 0 {
		return Meta{}, fmt.Errorf("%w: negative match count", ErrMalformed)
	}
	return meta, nil
}
