package handler

import (
	"context"
	"sync"
	"time"

	"marketplace-admin/internal/delivery"
	"marketplace-admin/internal/events"
	"marketplace-admin/internal/logger"
	"marketplace-admin/internal/metrics"
	"marketplace-admin/internal/notify"
	"marketplace-admin/internal/poller"
	"marketplace-admin/internal/session"
)

// LedgerFactory returns the assignment ledger for one operator.
type LedgerFactory func(scope string) delivery.Ledger

type WorkspaceConfig struct {
	Orders       delivery.OrderService
	Ledgers      LedgerFactory
	Hub          *notify.Hub
	Publisher    events.Publisher
	Metrics      *metrics.Registry
	PollInterval time.Duration
}

// Workspaces keeps one delivery workflow per session, refreshed in the
// background until the session ends.
type Workspaces struct {
	cfg  WorkspaceConfig
	base context.Context

	mu    sync.Mutex
	items map[string]*workspace
}

type workspace struct {
	wf    *delivery.Workflow
	ready chan struct{}
	stop  func()
}

func NewWorkspaces(base context.Context, cfg WorkspaceConfig) *Workspaces {
	if cfg.Ledgers == nil {
		cfg.Ledgers = func(string) delivery.Ledger { return delivery.NewMemoryLedger() }
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = 30 * time.Second
	}
	return &Workspaces{cfg: cfg, base: base, items: make(map[string]*workspace)}
}

// For returns the workflow of s, creating it on first use. It waits for the
// first refresh to finish or ctx to end.
func (ws *Workspaces) For(ctx context.Context, s *session.Session) *delivery.Workflow {
	ws.mu.Lock()
	w, ok := ws.items[s.Token]
	if !ok {
		w = ws.start(s)
		ws.items[s.Token] = w
	}
	ws.mu.Unlock()

	select {
	case <-w.ready:
	case <-ctx.Done():
	}
	return w.wf
}

// start must be called with mu held.
func (ws *Workspaces) start(s *session.Session) *workspace {
	var notifier notify.Notifier = notify.Discard
	if ws.cfg.Hub != nil {
		notifier = ws.cfg.Hub.Room(s.Key())
	}

	wf := delivery.NewWorkflow(ws.cfg.Orders, delivery.Options{
		Ledger:    ws.cfg.Ledgers(s.Key()),
		Notifier:  notifier,
		Publisher: ws.cfg.Publisher,
		Metrics:   ws.cfg.Metrics,
		Actor:     actorName(s),
	})

	w := &workspace{wf: wf, ready: make(chan struct{})}
	var once sync.Once
	refresh := func(ctx context.Context) error {
		defer once.Do(func() { close(w.ready) })
		return wf.Refresh(ctx)
	}

	pctx := session.WithSession(logger.WithActor(ws.base, s.Key()), s)
	w.stop = poller.Start(pctx, ws.cfg.PollInterval, "deliveries", refresh)
	return w
}

func actorName(s *session.Session) string {
	if s.User.Email != "" {
		return s.User.Email
	}
	return s.Key()
}

// Drop stops the workspace of the session. It does not wait: it may run on
// the poller's own goroutine when a refresh hits a 401.
func (ws *Workspaces) Drop(s *session.Session) {
	ws.mu.Lock()
	w, ok := ws.items[s.Token]
	delete(ws.items, s.Token)
	ws.mu.Unlock()

	if ok {
		go w.stop()
	}
}

func (ws *Workspaces) Len() int {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	return len(ws.items)
}

// Close stops every workspace and waits for the pollers to exit.
func (ws *Workspaces) Close() {
	ws.mu.Lock()
	items := ws.items
	ws.items = make(map[string]*workspace)
	ws.mu.Unlock()

	for _, w := range items {
		w.stop()
	}
}
