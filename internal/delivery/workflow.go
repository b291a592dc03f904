package delivery

import (
	"context"
	"fmt"
	"sync"

	"marketplace-admin/internal/api"
	"marketplace-admin/internal/events"
	"marketplace-admin/internal/logger"
	"marketplace-admin/internal/metrics"
	"marketplace-admin/internal/notify"
	"marketplace-admin/internal/order"

	"go.uber.org/zap"
)

// Metric names recorded by the workflow.
const (
	MetricAssigned     = "delivery.assigned"
	MetricAssignFailed = "delivery.assign_failed"
	MetricDuplicate    = "delivery.duplicate_blocked"
	MetricAssignTime   = "delivery.assign"
)

// OrderService is what the workflow needs from the order package.
type OrderService interface {
	GetOrders(ctx context.Context, q *order.Query) ([]order.Order, error)
	UpdateOrderStatus(ctx context.Context, orderID string, update order.StatusUpdate) (*order.Order, error)
}

type Options struct {
	Ledger    Ledger
	Notifier  notify.Notifier
	Publisher events.Publisher
	Metrics   *metrics.Registry
	// Actor is the admin the session belongs to; it ends up in events.
	Actor string
}

// View is one row of the delivery list.
type View struct {
	Order          order.Order `json:"order"`
	State          State       `json:"state"`
	ActionsEnabled bool        `json:"actionsEnabled"`
}

// Prompt is the pending confirmation for a carrier choice.
type Prompt struct {
	Carrier order.DeliveryMethod `json:"carrier"`
	Order   order.Order          `json:"order"`
}

// Workflow holds one admin session's view of the orders eligible for
// delivery and drives carrier assignment for them.
//
// The mutex guards local state only and is never held across a call to the
// order service or the ledger.
type Workflow struct {
	orders    OrderService
	ledger    Ledger
	notifier  notify.Notifier
	publisher events.Publisher
	metrics   *metrics.Registry
	actor     string

	mu       sync.Mutex
	list     []order.Order
	inFlight map[string]uint64
	clicked  map[string]struct{}
	prompt   *Prompt
	seq      uint64
	// gen advances on every local mutation; touched records the gen of the
	// last mutation per order so a refresh that started earlier leaves it alone.
	gen     uint64
	touched map[string]uint64
}

func NewWorkflow(orders OrderService, opts Options) *Workflow {
	w := &Workflow{
		orders:    orders,
		ledger:    opts.Ledger,
		notifier:  opts.Notifier,
		publisher: opts.Publisher,
		metrics:   opts.Metrics,
		actor:     opts.Actor,
		inFlight:  make(map[string]uint64),
		clicked:   make(map[string]struct{}),
		touched:   make(map[string]uint64),
	}
	if w.ledger == nil {
		w.ledger = NewMemoryLedger()
	}
	if w.notifier == nil {
		w.notifier = notify.Discard
	}
	if w.publisher == nil {
		w.publisher = events.Nop{}
	}
	return w
}

// Load replaces the local collection with the eligible subset of orders.
func (w *Workflow) Load(orders []order.Order) {
	eligible := order.FilterEligible(orders)

	w.mu.Lock()
	defer w.mu.Unlock()
	w.list = eligible
	w.dropStalePrompt()
}

// Refresh re-fetches the order list. Orders mutated locally after the fetch
// started keep their local record.
func (w *Workflow) Refresh(ctx context.Context) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "workflow"),
		zap.String("method", "Refresh"),
	)

	w.mu.Lock()
	started := w.gen
	w.mu.Unlock()

	fetched, err := w.orders.GetOrders(ctx, nil)
	if err != nil {
		log.Error("failed to refresh orders", zap.Error(err))
		return err
	}
	eligible := order.FilterEligible(fetched)

	ids := make([]string, len(eligible))
	for i, o := range eligible {
		ids[i] = o.ID
	}
	remembered, err := w.ledger.Lookup(ctx, ids)
	if err != nil {
		log.Warn("ledger lookup failed", zap.Int("orders", len(ids)), zap.Error(err))
		remembered = nil
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	local := make(map[string]order.Order, len(w.list))
	for _, o := range w.list {
		local[o.ID] = o
	}

	next := make([]order.Order, 0, len(eligible))
	seen := make(map[string]bool, len(eligible))
	kept := 0
	for _, o := range eligible {
		seen[o.ID] = true
		if prev, ok := local[o.ID]; ok && w.newerThan(o.ID, started) {
			next = append(next, prev)
			kept++
			continue
		}
		if remembered[o.ID] {
			w.clicked[o.ID] = struct{}{}
		}
		next = append(next, o)
	}
	// Assigned or in-flight orders the backend already moved on from stay
	// visible until the next refresh that starts after them.
	for _, o := range w.list {
		if !seen[o.ID] && w.newerThan(o.ID, started) {
			next = append(next, o)
			kept++
		}
	}

	w.list = next
	w.dropStalePrompt()

	log.Debug("orders refreshed", zap.Int("count", len(next)), zap.Int("kept_local", kept))
	return nil
}

func (w *Workflow) newerThan(id string, gen uint64) bool {
	if _, busy := w.inFlight[id]; busy {
		return true
	}
	return w.touched[id] > gen
}

// touch must be called with mu held.
func (w *Workflow) touch(id string) {
	w.gen++
	w.touched[id] = w.gen
}

// dropStalePrompt must be called with mu held.
func (w *Workflow) dropStalePrompt() {
	if w.prompt == nil {
		return
	}
	if _, ok := w.find(w.prompt.Order.ID); !ok {
		w.prompt = nil
	}
}

// find must be called with mu held.
func (w *Workflow) find(id string) (int, bool) {
	for i, o := range w.list {
		if o.ID == id {
			return i, true
		}
	}
	return -1, false
}

// stateOf must be called with mu held.
func (w *Workflow) stateOf(o order.Order) State {
	_, busy := w.inFlight[o.ID]
	_, done := w.clicked[o.ID]
	return DeriveState(o, busy, done)
}

// Views returns every eligible order with its derived state.
func (w *Workflow) Views() []View {
	w.mu.Lock()
	defer w.mu.Unlock()

	views := make([]View, 0, len(w.list))
	for _, o := range w.list {
		s := w.stateOf(o)
		views = append(views, View{Order: o, State: s, ActionsEnabled: s.ActionsEnabled()})
	}
	return views
}

// Orders returns a copy of the local collection.
func (w *Workflow) Orders() []order.Order {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]order.Order(nil), w.list...)
}

// State returns the derived state of one order.
func (w *Workflow) State(id string) (State, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	i, ok := w.find(id)
	if !ok {
		return "", ErrOrderNotFound
	}
	return w.stateOf(w.list[i]), nil
}

// Select opens the confirmation prompt for assigning carrier to the order.
// An open prompt for another order is replaced.
func (w *Workflow) Select(id string, carrier order.DeliveryMethod) (Prompt, error) {
	if !carrier.IsCarrier() {
		return Prompt{}, ErrInvalidCarrier
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	i, ok := w.find(id)
	if !ok {
		return Prompt{}, ErrOrderNotFound
	}
	o := w.list[i]
	if err := gate(w.stateOf(o)); err != nil {
		return Prompt{}, err
	}

	w.prompt = &Prompt{Carrier: carrier, Order: o}
	return *w.prompt, nil
}

// Prompt returns the open confirmation, if any.
func (w *Workflow) Prompt() (Prompt, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.prompt == nil {
		return Prompt{}, false
	}
	return *w.prompt, true
}

// Cancel closes the prompt. It reports whether one was open.
func (w *Workflow) Cancel() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	open := w.prompt != nil
	w.prompt = nil
	return open
}

// Confirm assigns the carrier held by the open prompt.
func (w *Workflow) Confirm(ctx context.Context) (*order.Order, error) {
	p, ok := w.Prompt()
	if !ok {
		return nil, ErrNoPrompt
	}
	return w.Assign(ctx, p.Order.ID, p.Carrier)
}

func gate(s State) error {
	switch s {
	case StateAssigning:
		return ErrAssignmentInFlight
	case StateAssigned:
		return ErrAlreadyAssigned
	case StateNotReady:
		return ErrNotReady
	}
	return nil
}

// Assign sets the order to shipped with the given carrier. Orders assigned
// earlier in the session are rejected without contacting the backend.
func (w *Workflow) Assign(ctx context.Context, id string, carrier order.DeliveryMethod) (*order.Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "workflow"),
		zap.String("method", "Assign"),
		zap.String("order_id", id),
		zap.String("carrier", string(carrier)),
	)

	if !carrier.IsCarrier() {
		return nil, ErrInvalidCarrier
	}

	w.mu.Lock()
	i, ok := w.find(id)
	if !ok {
		w.mu.Unlock()
		return nil, ErrOrderNotFound
	}
	o := w.list[i]
	if err := gate(w.stateOf(o)); err != nil {
		w.mu.Unlock()
		if err == ErrAlreadyAssigned {
			w.metrics.Counter(MetricDuplicate).Inc()
		}
		return nil, err
	}
	w.seq++
	seq := w.seq
	w.inFlight[id] = seq
	w.touch(id)
	w.mu.Unlock()

	done, err := w.ledger.Has(ctx, id)
	if err != nil {
		log.Warn("ledger lookup failed, continuing", zap.Error(err))
	}
	if done {
		w.mu.Lock()
		w.release(id, seq)
		w.clicked[id] = struct{}{}
		w.mu.Unlock()
		w.metrics.Counter(MetricDuplicate).Inc()
		log.Info("order already assigned in this session")
		return nil, ErrAlreadyAssigned
	}

	timer := metrics.StartTimer()
	updated, err := w.orders.UpdateOrderStatus(ctx, id, order.StatusUpdate{
		Status:         order.StatusShipped,
		DeliveryMethod: carrier,
	})
	w.metrics.Observe(MetricAssignTime, timer)
	if err != nil {
		w.fail(ctx, log, o, carrier, seq, err)
		return nil, err
	}
	return w.succeed(ctx, log, o, carrier, seq, updated), nil
}

// release must be called with mu held. It reports whether seq was the latest
// request for id.
func (w *Workflow) release(id string, seq uint64) bool {
	if w.inFlight[id] != seq {
		return false
	}
	delete(w.inFlight, id)
	w.touch(id)
	return true
}

func (w *Workflow) closePromptFor(id string) {
	if w.prompt != nil && w.prompt.Order.ID == id {
		w.prompt = nil
	}
}

func (w *Workflow) succeed(ctx context.Context, log *zap.Logger, o order.Order, carrier order.DeliveryMethod, seq uint64, updated *order.Order) *order.Order {
	merged := o
	merged.Status = order.StatusShipped
	merged.DeliveryMethod = carrier
	if updated != nil && updated.ID == o.ID {
		merged = *updated
	}

	w.mu.Lock()
	if w.release(o.ID, seq) {
		if i, ok := w.find(o.ID); ok {
			w.list[i] = merged
		}
	}
	w.clicked[o.ID] = struct{}{}
	w.closePromptFor(o.ID)
	w.mu.Unlock()

	if err := w.ledger.Add(ctx, o.ID); err != nil {
		log.Warn("failed to persist assignment in ledger", zap.Error(err))
	}

	w.metrics.Counter(MetricAssigned).Inc()
	w.notifier.Notify(ctx, notify.New(notify.KindSuccess, o.ID,
		fmt.Sprintf("Order %s assigned to %s", o.OrderNumber, carrier)))

	env, err := events.NewEnvelope(events.EventDeliveryAssigned, o.ID, logger.RequestIDFrom(ctx),
		events.DeliveryAssignedPayload{
			OrderID:     o.ID,
			OrderNumber: o.OrderNumber,
			Carrier:     string(carrier),
			AssignedBy:  w.actor,
		})
	if err == nil {
		err = w.publisher.Publish(ctx, env)
	}
	if err != nil {
		log.Warn("failed to publish delivery event", zap.Error(err))
	}

	log.Info("delivery assigned", zap.String("order_number", o.OrderNumber))
	return &merged
}

func (w *Workflow) fail(ctx context.Context, log *zap.Logger, o order.Order, carrier order.DeliveryMethod, seq uint64, cause error) {
	w.mu.Lock()
	w.release(o.ID, seq)
	w.closePromptFor(o.ID)
	w.mu.Unlock()

	w.metrics.Counter(MetricAssignFailed).Inc()
	log.Error("failed to assign delivery", zap.Error(cause))
	w.notifier.Notify(ctx, notify.New(notify.KindError, o.ID,
		fmt.Sprintf("Failed to assign order %s to %s: %s", o.OrderNumber, carrier, api.Reason(cause))))
}
