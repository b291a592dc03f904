package delivery

import (
	"context"
	"sync"
)

// Ledger remembers which orders were assigned during a session so they can
// never be assigned again, even when a stale re-fetch still shows them
// without a carrier.
type Ledger interface {
	Has(ctx context.Context, orderID string) (bool, error)
	// Lookup reports, in one round trip, which of orderIDs were assigned.
	Lookup(ctx context.Context, orderIDs []string) (map[string]bool, error)
	Add(ctx context.Context, orderID string) error
}

// MemoryLedger lives and dies with the process.
type MemoryLedger struct {
	mu  sync.RWMutex
	ids map[string]struct{}
}

func NewMemoryLedger() *MemoryLedger {
	return &MemoryLedger{ids: make(map[string]struct{})}
}

func (l *MemoryLedger) Has(_ context.Context, orderID string) (bool, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	_, ok := l.ids[orderID]
	return ok, nil
}

func (l *MemoryLedger) Lookup(_ context.Context, orderIDs []string) (map[string]bool, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	found := make(map[string]bool, len(orderIDs))
	for _, id := range orderIDs {
		if _, ok := l.ids[id]; ok {
			found[id] = true
		}
	}
	return found, nil
}

func (l *MemoryLedger) Add(_ context.Context, orderID string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.ids[orderID] = struct{}{}
	return nil
}
