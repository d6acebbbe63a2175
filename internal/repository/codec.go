// internal/repository/codec.go
package repository

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/vapeshop/vapeshop-backend/internal/kvstore"
)

// The store is schemaless: every record field is a string. The decode side
// of each entity codec owns all type coercion, so malformed or missing
// fields collapse to zero values instead of scattering parse errors through
// the repositories.

const timeLayout = time.RFC3339Nano

func formatInt(n int64) string {
	return strconv.FormatInt(n, 10)
}

func parseInt(s string) int64 {
	n, _ := strconv.ParseInt(s, 10, 64)
	return n
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) time.Time {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

// loadRecords loads every record under an entity prefix, skipping the
// allocator counter key and records deleted between enumeration and read.
func loadRecords(ctx context.Context, s kvstore.Store, prefix string) ([]map[string]string, error) {
	keys, err := s.KeysWithPrefix(ctx, prefix)
	if err != nil {
		return nil, storeErr("keys", err)
	}

	records := make([]map[string]string, 0, len(keys))
	for _, key := range keys {
		if strings.HasSuffix(key, ":counter") {
			continue
		}
		fields, err := s.GetFields(ctx, key)
		if err != nil {
			return nil, storeErr("get", err)
		}
		if len(fields) == 0 {
			continue
		}
		records = append(records, fields)
	}
	return records, nil
}

// storedCreatedAt resolves the creation timestamp for a save that did not
// supply one: updates keep the originally stored value, new records get now.
func storedCreatedAt(ctx context.Context, s kvstore.Store, key string, now time.Time) (time.Time, error) {
	fields, err := s.GetFields(ctx, key)
	if err != nil {
		return time.Time{}, storeErr("get", err)
	}
	if ts := parseTime(fields["created_at"]); !ts.IsZero() {
		return ts, nil
	}
	return now, nil
}
