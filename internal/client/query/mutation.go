package query

import "context"

// Mutation is a named write. On success it invalidates the declared key
// prefixes so dependent queries refetch without user action; on failure the
// cache is left untouched and the error propagates to the caller.
type Mutation[A, T any] struct {
	cache       *Cache
	run         func(ctx context.Context, arg A) (T, error)
	invalidates []string
}

func NewMutation[A, T any](cache *Cache, run func(ctx context.Context, arg A) (T, error), invalidates ...string) *Mutation[A, T] {
	return &Mutation[A, T]{cache: cache, run: run, invalidates: invalidates}
}

func (m *Mutation[A, T]) Do(ctx context.Context, arg A) (T, error) {
	result, err := m.run(ctx, arg)
	if err != nil {
		return result, err
	}
	for _, prefix := range m.invalidates {
		m.cache.Invalidate(prefix)
	}
	return result, nil
}
