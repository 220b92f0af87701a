package ratelimit

import (
	"context"
	"math"
	"sync"
	"time"
)

// AttemptStore holds per-client attempt timestamps. Implementations must keep
// sequences ordered oldest first.
type AttemptStore interface {
	Attempts(ctx context.Context, key string) ([]time.Time, error)
	SetAttempts(ctx context.Context, key string, attempts []time.Time) error
	Clear(ctx context.Context, key string) error
}

type Result struct {
	Allowed    bool
	RetryAfter int // minutes until the oldest attempt leaves the window
}

// Limiter is a sliding-window counter over an injected store. Each feature
// (login, registration) gets its own Limiter with its own store, threshold and
// window. Checks for the same client key are serialized; distinct keys proceed
// in parallel.
type Limiter struct {
	store  AttemptStore
	limit  int
	window time.Duration

	mu    sync.Mutex
	locks map[string]*keyLock

	now func() time.Time
}

// keyLock serializes operations on one client key. Reference counting lets the
// map entry be dropped as soon as no operation is in flight, so the lock map
// never outgrows the set of concurrently active clients.
type keyLock struct {
	mu   sync.Mutex
	refs int
}

func New(store AttemptStore, limit int, window time.Duration) *Limiter {
	return &Limiter{
		store:  store,
		limit:  limit,
		window: window,
		locks:  make(map[string]*keyLock),
		now:    time.Now,
	}
}

func (l *Limiter) acquire(key string) *keyLock {
	l.mu.Lock()
	lk, ok := l.locks[key]
	if !ok {
		lk = &keyLock{}
		l.locks[key] = lk
	}
	lk.refs++
	l.mu.Unlock()
	lk.mu.Lock()
	return lk
}

func (l *Limiter) release(key string, lk *keyLock) {
	lk.mu.Unlock()
	l.mu.Lock()
	lk.refs--
	if lk.refs == 0 {
		delete(l.locks, key)
	}
	l.mu.Unlock()
}

// Check admits or denies one attempt for the client key. Stale entries are
// pruned and persisted immediately, so the retry estimate always derives from
// attempts still inside the window. Admitted attempts are recorded before
// returning.
func (l *Limiter) Check(ctx context.Context, key string) (Result, error) {
	lk := l.acquire(key)
	defer l.release(key, lk)

	now := l.now()
	windowStart := now.Add(-l.window)

	attempts, err := l.store.Attempts(ctx, key)
	if err != nil {
		return Result{}, err
	}

	valid := make([]time.Time, 0, len(attempts))
	for _, at := range attempts {
		if at.After(windowStart) {
			valid = append(valid, at)
		}
	}
	if len(valid) != len(attempts) {
		if err := l.store.SetAttempts(ctx, key, valid); err != nil {
			return Result{}, err
		}
	}

	if len(valid) >= l.limit {
		retry := int(math.Ceil(valid[0].Add(l.window).Sub(now).Minutes()))
		if retry < 1 {
			retry = 1
		}
		return Result{Allowed: false, RetryAfter: retry}, nil
	}

	valid = append(valid, now)
	if err := l.store.SetAttempts(ctx, key, valid); err != nil {
		return Result{}, err
	}
	return Result{Allowed: true}, nil
}

// Clear drops all recorded attempts for the key. Called on successful login.
func (l *Limiter) Clear(ctx context.Context, key string) error {
	lk := l.acquire(key)
	defer l.release(key, lk)
	return l.store.Clear(ctx, key)
}
