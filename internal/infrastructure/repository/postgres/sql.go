package postgres

import (
	"database/sql"
	"errors"
	"strings"

	"github.com/lib/pq"
)

// insertChunkSize keeps multi-row inserts far below the postgres bind parameter limit.
const insertChunkSize = 500

func isNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

func isUndefinedTable(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "42P01"
	}
	return err != nil && strings.Contains(err.Error(), "does not exist") && strings.Contains(err.Error(), "relation")
}

func nullableString(value string) *string {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	return &value
}

func chunk[T any](items []T, size int) [][]T {
	if size <= 0 {
		size = insertChunkSize
	}
	out := make([][]T, 0, (len(items)+size-1)/size)
	for start := 0; start < len(items); start += size {
		end := min(start+size, len(items))
		out = append(out, items[start:end])
	}
	return out
}

func uniqueInt64(values []int64) []int64 {
	seen := make(map[int64]struct{}, len(values))
	out := make([]int64, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
