// internal/kvstore/memory.go
package kvstore

import (
	"context"
	"strconv"
	"strings"
	"sync"

	"github.com/puzpuzpuz/xsync/v3"
)

// counterField holds the value of plain counter keys inside the record map,
// mirroring how redis keeps them as string keys next to the hashes.
const counterField = "value"

type record struct {
	mu     sync.Mutex
	fields map[string]string
}

// MemoryStore is an in-process Store for tests and local development. It
// keeps the same semantics as the redis implementation, including atomic
// increments and empty-map reads for missing records.
type MemoryStore struct {
	records *xsync.MapOf[string, *record]
}

func NewMemory() *MemoryStore {
	return &MemoryStore{records: xsync.NewMapOf[string, *record]()}
}

func (s *MemoryStore) load(key string) *record {
	rec, _ := s.records.LoadOrCompute(key, func() *record {
		return &record{fields: make(map[string]string)}
	})
	return rec
}

func (s *MemoryStore) Increment(ctx context.Context, key string) (int64, error) {
	return s.IncrementField(ctx, key, counterField)
}

func (s *MemoryStore) IncrementField(_ context.Context, key, field string) (int64, error) {
	rec := s.load(key)
	rec.mu.Lock()
	defer rec.mu.Unlock()

	n, _ := strconv.ParseInt(rec.fields[field], 10, 64)
	n++
	rec.fields[field] = strconv.FormatInt(n, 10)
	return n, nil
}

func (s *MemoryStore) SetFields(_ context.Context, key string, fields map[string]string) error {
	if len(fields) == 0 {
		return nil
	}
	rec := s.load(key)
	rec.mu.Lock()
	defer rec.mu.Unlock()

	for k, v := range fields {
		rec.fields[k] = v
	}
	return nil
}

func (s *MemoryStore) GetFields(_ context.Context, key string) (map[string]string, error) {
	out := make(map[string]string)
	rec, ok := s.records.Load(key)
	if !ok {
		return out, nil
	}
	rec.mu.Lock()
	defer rec.mu.Unlock()

	for k, v := range rec.fields {
		out[k] = v
	}
	return out, nil
}

func (s *MemoryStore) DeleteKey(_ context.Context, key string) (bool, error) {
	_, existed := s.records.LoadAndDelete(key)
	return existed, nil
}

func (s *MemoryStore) KeysWithPrefix(_ context.Context, prefix string) ([]string, error) {
	var keys []string
	s.records.Range(func(key string, _ *record) bool {
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
		return true
	})
	return keys, nil
}

func (s *MemoryStore) ExistsKey(_ context.Context, key string) (bool, error) {
	_, ok := s.records.Load(key)
	return ok, nil
}
