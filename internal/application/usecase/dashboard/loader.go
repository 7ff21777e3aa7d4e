// Package dashboard contains the monthly aggregation use case.
package dashboard

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// Loader memoizes snapshots within one logical request so repeated reads of
// the same (user, month, year) triple do not re-issue store queries.
//
// A Loader is created per request and discarded with it; sharing one across
// requests would leak snapshots between users and serve stale data.
type Loader struct {
	uc *GetDashboardUseCase

	mu    sync.Mutex
	cache map[loaderKey]*Snapshot
}

type loaderKey struct {
	userID uuid.UUID
	month  string
	year   string
}

// NewLoader creates a request-scoped memoizing view of the use case.
func (uc *GetDashboardUseCase) NewLoader() *Loader {
	return &Loader{
		uc:    uc,
		cache: make(map[loaderKey]*Snapshot),
	}
}

// Get returns the snapshot for the input, computing it at most once per
// Loader. Errors are not cached; a failed computation is retried on the next
// call.
func (l *Loader) Get(ctx context.Context, input GetDashboardInput) (*Snapshot, error) {
	key := loaderKey{userID: input.UserID, month: input.Month, year: input.Year}

	l.mu.Lock()
	if snapshot, ok := l.cache[key]; ok {
		l.mu.Unlock()
		return snapshot, nil
	}
	l.mu.Unlock()

	snapshot, err := l.uc.Execute(ctx, input)
	if err != nil {
		return nil, err
	}

	l.mu.Lock()
	l.cache[key] = snapshot
	l.mu.Unlock()

	return snapshot, nil
}
