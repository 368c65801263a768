package archive

import (
	"cmp"
	"context"
	"slices"
	"sync"
)

// Memory keeps records in process memory.
type Memory struct {
	mu      sync.Mutex
	records map[int]Record
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{records: make(map[int]Record)}
}

// Next returns one more than the highest recorded number.
func (m *Memory) Next(ctx context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.next(), nil
}

func (m *Memory) next() int {
	n := 0
	for k := range m.records {
		n = max(n, k)
	}
	return n + 1
}

// Record stores rec.
func (m *Memory) Record(ctx context.Context, rec *Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if rec.Number == 0 {
		rec.Number = m.next()
	}
	if _, ok := m.records[rec.Number]; ok {
		return ErrConflict
	}
	if err := prepare(ctx, m, rec); err != nil {
		return err
	}
	r := *rec
	r.Files = slices.Clone(rec.Files)
	m.records[r.Number] = r
	return nil
}

// Get returns a record by number.
func (m *Memory) Get(ctx context.Context, number int) (Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.records[number]
	if !ok {
		return Record{}, ErrNotFound
	}
	return r, nil
}

// List returns records newest first.
func (m *Memory) List(ctx context.Context, limit int) ([]Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Record, 0, len(m.records))
	for _, r := range m.records {
		out = append(out, r)
	}
	slices.SortFunc(out, func(a, b Record) int { return cmp.Compare(b.Number, a.Number) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Close does nothing.
func (m *Memory) Close() error { return nil }

var _ Store = (*Memory)(nil)
