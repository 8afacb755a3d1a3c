package query

import (
	"context"
	"time"
)

// Stop, returned by a Policy, halts interval-driven refetching. The query
// keeps responding to invalidation kicks until its context is cancelled.
const Stop time.Duration = 0

// Policy decides the delay before the next refetch from the latest outcome.
// This keeps state-dependent polling (e.g. "2s while processing, then stop")
// an explicit, testable function instead of a timer callback with embedded
// conditionals.
type Policy[T any] func(data T, err error) time.Duration

// Every polls at a fixed cadence regardless of the outcome.
func Every[T any](d time.Duration) Policy[T] {
	return func(T, error) time.Duration { return d }
}

// Once fetches a single time and then waits for invalidation.
func Once[T any]() Policy[T] {
	return func(T, error) time.Duration { return Stop }
}

// Result is one fetch outcome. Err is a value, never a panic; consumers
// render a fallback and keep going.
type Result[T any] struct {
	Data T
	Err  error
	At   time.Time
}

// Query binds a cache key, a fetch function, and a refetch policy.
type Query[T any] struct {
	key     string
	fetch   func(ctx context.Context) (T, error)
	refetch Policy[T]
	cache   *Cache
}

func New[T any](cache *Cache, key string, fetch func(ctx context.Context) (T, error), refetch Policy[T]) *Query[T] {
	return &Query[T]{key: key, fetch: fetch, refetch: refetch, cache: cache}
}

func (q *Query[T]) Key() string { return q.key }

// Cached returns the last successful payload stored under the query's key,
// if any, regardless of staleness.
func (q *Query[T]) Cached() (T, bool) {
	var zero T
	v, _ := q.cache.Get(q.key)
	if v == nil {
		return zero, false
	}
	data, ok := v.(T)
	if !ok {
		return zero, false
	}
	return data, true
}

// Run starts the query loop and returns its result channel. The loop fetches
// immediately, then sleeps per the policy; an invalidation of the key wakes
// it early. When ctx is cancelled the loop discards any in-flight response,
// delivers nothing further, and closes the channel — the owner can never be
// updated after unmount.
func (q *Query[T]) Run(ctx context.Context) <-chan Result[T] {
	out := make(chan Result[T], 1)
	kick := q.cache.register(q.key)

	go func() {
		defer close(out)
		defer q.cache.unregister(q.key, kick)

		timer := time.NewTimer(0)
		defer timer.Stop()
		armed := true

		for {
			if armed {
				select {
				case <-ctx.Done():
					return
				case <-kick:
					if !timer.Stop() {
						select {
						case <-timer.C:
						default:
						}
					}
					armed = false
				case <-timer.C:
					armed = false
				}
			} else {
				select {
				case <-ctx.Done():
					return
				case <-kick:
				}
			}

			data, err := q.fetch(ctx)
			if ctx.Err() != nil {
				return
			}
			if err == nil {
				q.cache.put(q.key, data)
			}

			select {
			case out <- Result[T]{Data: data, Err: err, At: time.Now()}:
			case <-ctx.Done():
				return
			}

			if delay := q.refetch(data, err); delay > 0 {
				timer.Reset(delay)
				armed = true
			} else {
				armed = false
			}
		}
	}()

	return out
}
